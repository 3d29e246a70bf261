package driving

import (
	"context"

	"github.com/foliolabs/folio/internal/core/domain"
)

// ChatService manages per-book conversations with the remote agent.
type ChatService interface {
	// Ask appends the user's question to the transcript, queries the
	// agent, appends and returns its reply. Agent failures come back
	// as a synthetic assistant message, never as an error, so the
	// transcript always records what the reader saw.
	Ask(ctx context.Context, bookID, question string) (*domain.ChatMessage, error)

	// History returns the transcript in creation order.
	History(ctx context.Context, bookID string) ([]domain.ChatMessage, error)
}

// SearchResult is one library search hit.
type SearchResult struct {
	// BookID is the matched book.
	BookID string

	// Title is the book title.
	Title string

	// Page is the zero-based page index of the match.
	Page int

	// Score is the relevance score, higher is better.
	Score float64

	// Fragments are term-highlighted snippets.
	Fragments []string
}

// SearchService provides full-text search across the library.
type SearchService interface {
	// Search returns the best-matching pages for a query.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}
