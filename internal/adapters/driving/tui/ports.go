// Package tui provides an interactive terminal reader for folio.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/foliolabs/folio/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library manages books, pages, and reading positions.
	Library driving.LibraryService

	// Highlights manages annotations and renders highlighted pages.
	Highlights driving.HighlightService

	// Chat converses with the reading assistant. Optional; the chat
	// view reports the assistant as unavailable when nil.
	Chat driving.ChatService

	// Search provides full-text search over the library. Optional;
	// the search view reports search as unavailable when nil.
	Search driving.SearchService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	library driving.LibraryService,
	highlights driving.HighlightService,
	chat driving.ChatService,
	search driving.SearchService,
) *Ports {
	return &Ports{
		Library:    library,
		Highlights: highlights,
		Chat:       chat,
		Search:     search,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Highlights == nil {
		return ErrMissingHighlightService
	}
	return nil
}
