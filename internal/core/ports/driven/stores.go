package driven

import (
	"context"

	"github.com/foliolabs/folio/internal/core/domain"
)

// BookStore persists book records. Backed by SQLite.
type BookStore interface {
	// SaveBook stores or updates a book.
	SaveBook(ctx context.Context, book *domain.Book) error

	// GetBook retrieves a book by ID.
	GetBook(ctx context.Context, id string) (*domain.Book, error)

	// ListBooks returns all books, most recently uploaded first.
	ListBooks(ctx context.Context) ([]domain.Book, error)

	// DeleteBook removes a book record.
	DeleteBook(ctx context.Context, id string) error
}

// HighlightStore persists highlights.
type HighlightStore interface {
	// SaveHighlight stores or updates a highlight.
	SaveHighlight(ctx context.Context, h *domain.Highlight) error

	// ListHighlights returns a book's highlights in creation order.
	ListHighlights(ctx context.Context, bookID string) ([]domain.Highlight, error)

	// DeleteHighlight removes a single highlight.
	DeleteHighlight(ctx context.Context, id string) error

	// DeleteByBook removes all highlights owned by a book.
	DeleteByBook(ctx context.Context, bookID string) error
}

// ChatStore persists conversation transcripts. Transcripts are
// append-only; messages are never updated.
type ChatStore interface {
	// AppendMessage adds a message to a book's transcript.
	AppendMessage(ctx context.Context, msg *domain.ChatMessage) error

	// ListMessages returns a book's transcript in creation order.
	ListMessages(ctx context.Context, bookID string) ([]domain.ChatMessage, error)

	// DeleteByBook removes a book's entire transcript.
	DeleteByBook(ctx context.Context, bookID string) error
}

// BlobStore holds large binary payloads (PDF bytes, oversized HTML)
// keyed by book ID. Payloads are deliberately kept out of the
// structured store so oversized rows can never fail a metadata write.
type BlobStore interface {
	// Put stores a payload under a key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves a payload. Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a payload. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying store.
	Close() error
}
