package driving

import (
	"context"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/highlight"
)

// HighlightService manages annotations and their page rendering.
type HighlightService interface {
	// Create records a highlight. The text must be a verbatim
	// substring of the stated page's content at creation time;
	// otherwise domain.ErrTextNotOnPage is returned.
	Create(ctx context.Context, bookID string, page int, text string, color domain.HighlightColor, note string) (*domain.Highlight, error)

	// List returns a book's highlights in creation order.
	List(ctx context.Context, bookID string) ([]domain.Highlight, error)

	// Delete removes a single highlight.
	Delete(ctx context.Context, id string) error

	// RenderPage returns one page segmented with its highlights
	// anchored. Highlights whose text is no longer found on the page
	// are silently omitted.
	RenderPage(ctx context.Context, bookID string, page int) ([]highlight.Line, error)

	// Export renders all of a book's annotations as plain text.
	Export(ctx context.Context, bookID string) (string, error)
}
