package sqlite

import (
	"context"
	"fmt"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// highlightStore implements driven.HighlightStore.
type highlightStore struct {
	store *Store
}

var _ driven.HighlightStore = (*highlightStore)(nil)

// SaveHighlight stores or updates a highlight.
func (s *highlightStore) SaveHighlight(ctx context.Context, h *domain.Highlight) error {
	if h == nil || h.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO highlights (id, book_id, text, color, note, page, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			color = excluded.color,
			note = excluded.note,
			page = excluded.page
	`, h.ID, h.BookID, h.Text, string(h.Color), h.Note, h.Page, h.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving highlight: %w", err)
	}
	return nil
}

// ListHighlights returns a book's highlights in creation order.
func (s *highlightStore) ListHighlights(ctx context.Context, bookID string) ([]domain.Highlight, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, book_id, text, color, note, page, created_at
		FROM highlights WHERE book_id = ? ORDER BY created_at, id
	`, bookID)
	if err != nil {
		return nil, fmt.Errorf("listing highlights: %w", err)
	}
	defer rows.Close()

	var out []domain.Highlight
	for rows.Next() {
		var (
			h     domain.Highlight
			color string
		)
		if err := rows.Scan(&h.ID, &h.BookID, &h.Text, &color, &h.Note, &h.Page, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning highlight: %w", err)
		}
		h.Color = domain.HighlightColor(color)
		out = append(out, h)
	}
	return out, rows.Err()
}

// DeleteHighlight removes a single highlight.
func (s *highlightStore) DeleteHighlight(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM highlights WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting highlight: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByBook removes all highlights owned by a book.
func (s *highlightStore) DeleteByBook(ctx context.Context, bookID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM highlights WHERE book_id = ?", bookID)
	if err != nil {
		return fmt.Errorf("deleting highlights for book: %w", err)
	}
	return nil
}
