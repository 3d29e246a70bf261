package mcp

import (
	"github.com/foliolabs/folio/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library manages books and pages.
	Library driving.LibraryService

	// Highlights manages annotations.
	Highlights driving.HighlightService

	// Search provides full-text search over the library.
	Search driving.SearchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	// Highlights and Search are optional; their tools degrade gracefully.
	return nil
}
