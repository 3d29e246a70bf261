// Package mcp provides an MCP (Model Context Protocol) server adapter
// for the library. It lets AI assistants browse, read, and search the
// local book collection.
package mcp

import "errors"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("mcp: library service is required")
