package memory

import (
	"context"
	"sync"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// Ensure ChatStore implements the interface.
var _ driven.ChatStore = (*ChatStore)(nil)

// ChatStore is an in-memory implementation of driven.ChatStore.
// Messages are kept in append order per book.
type ChatStore struct {
	mu       sync.RWMutex
	messages map[string][]domain.ChatMessage
}

// NewChatStore creates a new in-memory chat store.
func NewChatStore() *ChatStore {
	return &ChatStore{messages: make(map[string][]domain.ChatMessage)}
}

// AppendMessage adds a message to a book's transcript.
func (s *ChatStore) AppendMessage(_ context.Context, msg *domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[msg.BookID] = append(s.messages[msg.BookID], *msg)
	return nil
}

// ListMessages returns a book's transcript in creation order.
func (s *ChatStore) ListMessages(_ context.Context, bookID string) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[bookID]
	out := make([]domain.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

// DeleteByBook removes a book's entire transcript.
func (s *ChatStore) DeleteByBook(_ context.Context, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, bookID)
	return nil
}
