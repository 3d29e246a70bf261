// Package memory provides in-memory implementations of the storage
// ports. Used by the test suite and as a fallback when no data
// directory is writable.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// Ensure BookStore implements the interface.
var _ driven.BookStore = (*BookStore)(nil)

// BookStore is an in-memory implementation of driven.BookStore.
type BookStore struct {
	mu    sync.RWMutex
	books map[string]domain.Book
}

// NewBookStore creates a new in-memory book store.
func NewBookStore() *BookStore {
	return &BookStore{books: make(map[string]domain.Book)}
}

// SaveBook stores or updates a book.
func (s *BookStore) SaveBook(_ context.Context, book *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[book.ID] = *book
	return nil
}

// GetBook retrieves a book by ID.
func (s *BookStore) GetBook(_ context.Context, id string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &book, nil
}

// ListBooks returns all books, most recently uploaded first.
func (s *BookStore) ListBooks(_ context.Context) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	books := make([]domain.Book, 0, len(s.books))
	for _, book := range s.books {
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].UploadedAt.After(books[j].UploadedAt)
	})
	return books, nil
}

// DeleteBook removes a book record.
func (s *BookStore) DeleteBook(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.books, id)
	return nil
}
