package driving

import (
	"context"

	"github.com/foliolabs/folio/internal/core/domain"
)

// LibraryService manages the book library: ingestion, reading state,
// and deletion.
type LibraryService interface {
	// Import ingests uploaded bytes under their original file name.
	// The report callback receives human-readable progress strings and
	// may be nil. Unsupported extensions fail with
	// domain.ErrUnsupportedFileType before any processing; engine
	// failures abort the upload with no partial book persisted.
	Import(ctx context.Context, fileName string, content []byte, report func(status string)) (*domain.Book, error)

	// ImportFile ingests a file from disk.
	ImportFile(ctx context.Context, path string, report func(status string)) (*domain.Book, error)

	// List returns all books, most recently uploaded first.
	List(ctx context.Context) ([]domain.Book, error)

	// Get retrieves a book by ID.
	Get(ctx context.Context, id string) (*domain.Book, error)

	// Delete removes a book together with its highlights, chat
	// transcript, blob payload, and search index entries.
	Delete(ctx context.Context, id string) error

	// Page returns the raw text of one page.
	Page(ctx context.Context, id string, page int) (string, error)

	// GoToPage moves the reading position, clamped to the valid range,
	// updating progress and the last-read timestamp.
	GoToPage(ctx context.Context, id string, page int) (*domain.Book, error)

	// ToggleBookmark flips a page's bookmark and reports the new state.
	ToggleBookmark(ctx context.Context, id string, page int) (bool, error)

	// SetColor changes the book's library display color.
	SetColor(ctx context.Context, id, color string) error

	// Payload returns the book's stored binary payload (PDF bytes).
	Payload(ctx context.Context, id string) ([]byte, error)
}
