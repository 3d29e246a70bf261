package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// Ensure HighlightStore implements the interface.
var _ driven.HighlightStore = (*HighlightStore)(nil)

// HighlightStore is an in-memory implementation of driven.HighlightStore.
type HighlightStore struct {
	mu         sync.RWMutex
	highlights map[string]domain.Highlight
}

// NewHighlightStore creates a new in-memory highlight store.
func NewHighlightStore() *HighlightStore {
	return &HighlightStore{highlights: make(map[string]domain.Highlight)}
}

// SaveHighlight stores or updates a highlight.
func (s *HighlightStore) SaveHighlight(_ context.Context, h *domain.Highlight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlights[h.ID] = *h
	return nil
}

// ListHighlights returns a book's highlights in creation order.
func (s *HighlightStore) ListHighlights(_ context.Context, bookID string) ([]domain.Highlight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Highlight
	for _, h := range s.highlights {
		if h.BookID == bookID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteHighlight removes a single highlight.
func (s *HighlightStore) DeleteHighlight(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.highlights[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.highlights, id)
	return nil
}

// DeleteByBook removes all highlights owned by a book.
func (s *HighlightStore) DeleteByBook(_ context.Context, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, h := range s.highlights {
		if h.BookID == bookID {
			delete(s.highlights, id)
		}
	}
	return nil
}
