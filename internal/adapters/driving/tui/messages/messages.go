// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driving"
	"github.com/foliolabs/folio/internal/highlight"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLibrary is the book list view.
	ViewLibrary ViewType = iota
	// ViewReader is the page reading view.
	ViewReader
	// ViewChapters is the chapter navigation view.
	ViewChapters
	// ViewChat is the assistant conversation view.
	ViewChat
	// ViewSearch is the library search view.
	ViewSearch
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLibrary:
		return "library"
	case ViewReader:
		return "reader"
	case ViewChapters:
		return "chapters"
	case ViewChat:
		return "chat"
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// BooksLoaded carries the library contents from the service.
type BooksLoaded struct {
	Books []domain.Book
	Err   error
}

// BookSelected signals a book was chosen for reading.
type BookSelected struct {
	Book domain.Book
}

// BookDeleted signals a book was removed from the library.
type BookDeleted struct {
	ID  string
	Err error
}

// PageLoaded carries one rendered page back to the reader view.
type PageLoaded struct {
	BookID string
	Page   int
	Lines  []highlight.Line
	Err    error
}

// PositionSaved signals the reading position was persisted.
type PositionSaved struct {
	Book *domain.Book
	Err  error
}

// BookmarkToggled signals a page bookmark was flipped.
type BookmarkToggled struct {
	Page       int
	Bookmarked bool
	Err        error
}

// PageRequested signals a jump to a specific page of the open book.
type PageRequested struct {
	Page int
}

// OpenPage signals a book should be opened at a specific page,
// typically from a search result.
type OpenPage struct {
	BookID string
	Page   int
}

// ChatHistoryLoaded carries a book's conversation transcript.
type ChatHistoryLoaded struct {
	BookID   string
	Messages []domain.ChatMessage
	Err      error
}

// ChatReplyReceived carries the assistant's reply to a question.
type ChatReplyReceived struct {
	Reply *domain.ChatMessage
	Err   error
}

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Results []driving.SearchResult
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
