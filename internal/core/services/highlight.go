package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
	"github.com/foliolabs/folio/internal/core/ports/driving"
	"github.com/foliolabs/folio/internal/highlight"
)

// Ensure HighlightService implements the interface.
var _ driving.HighlightService = (*highlightService)(nil)

// highlightService manages annotations and their page rendering.
type highlightService struct {
	library    driving.LibraryService
	books      driven.BookStore
	highlights driven.HighlightStore
}

// NewHighlightService creates a new highlight service.
func NewHighlightService(
	library driving.LibraryService,
	books driven.BookStore,
	highlights driven.HighlightStore,
) driving.HighlightService {
	return &highlightService{
		library:    library,
		books:      books,
		highlights: highlights,
	}
}

// Create records a highlight after checking the text is a verbatim
// substring of the stated page.
func (s *highlightService) Create(ctx context.Context, bookID string, page int, text string, color domain.HighlightColor, note string) (*domain.Highlight, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("highlight text required: %w", domain.ErrInvalidInput)
	}
	if !color.Valid() {
		return nil, fmt.Errorf("color %q: %w", color, domain.ErrInvalidInput)
	}

	pageText, err := s.library.Page(ctx, bookID, page)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(pageText, text) {
		return nil, fmt.Errorf("%q: %w", text, domain.ErrTextNotOnPage)
	}

	h := &domain.Highlight{
		ID:        uuid.New().String(),
		BookID:    bookID,
		Text:      text,
		Color:     color,
		Note:      note,
		Page:      page,
		CreatedAt: time.Now(),
	}

	if err := s.highlights.SaveHighlight(ctx, h); err != nil {
		return nil, fmt.Errorf("save highlight: %w", err)
	}
	return h, nil
}

// List returns a book's highlights in creation order.
func (s *highlightService) List(ctx context.Context, bookID string) ([]domain.Highlight, error) {
	if _, err := s.books.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.highlights.ListHighlights(ctx, bookID)
}

// Delete removes a single highlight.
func (s *highlightService) Delete(ctx context.Context, id string) error {
	return s.highlights.DeleteHighlight(ctx, id)
}

// RenderPage returns one page segmented with its highlights anchored.
func (s *highlightService) RenderPage(ctx context.Context, bookID string, page int) ([]highlight.Line, error) {
	pageText, err := s.library.Page(ctx, bookID, page)
	if err != nil {
		return nil, err
	}

	all, err := s.highlights.ListHighlights(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list highlights: %w", err)
	}

	return highlight.AnchorPage(pageText, highlight.ForPage(all, page)), nil
}

// Export renders all of a book's annotations as plain text.
func (s *highlightService) Export(ctx context.Context, bookID string) (string, error) {
	book, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return "", err
	}

	all, err := s.highlights.ListHighlights(ctx, bookID)
	if err != nil {
		return "", fmt.Errorf("list highlights: %w", err)
	}

	return highlight.Export(book.Title, all), nil
}
