package driven

import "context"

// PageHit is one full-text search result.
type PageHit struct {
	// BookID is the book the match came from.
	BookID string

	// Title is the book title at index time.
	Title string

	// Page is the zero-based page index of the match.
	Page int

	// Score is the relevance score, higher is better.
	Score float64

	// Fragments are term-highlighted snippets from the page.
	Fragments []string
}

// SearchIndex provides full-text search over library pages.
// Optional: when nil, the search command reports the feature disabled.
type SearchIndex interface {
	// IndexBook indexes a book's pages, replacing prior entries.
	IndexBook(ctx context.Context, bookID, title string, pages []string) error

	// Search returns the best-matching pages for a query.
	Search(ctx context.Context, query string, limit int) ([]PageHit, error)

	// DeleteBook removes all of a book's pages from the index.
	DeleteBook(ctx context.Context, bookID string) error

	// Close releases the index.
	Close() error
}
