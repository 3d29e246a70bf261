// Package driving defines interfaces that external actors (web UI, CLI,
// TUI, MCP) use to interact with core services. These are the "driving"
// ports in hexagonal architecture terminology - they drive the application.
//
// Implementations of these interfaces live in internal/core/services.
package driving
