package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// chatStore implements driven.ChatStore.
type chatStore struct {
	store *Store
}

var _ driven.ChatStore = (*chatStore)(nil)

// AppendMessage adds a message to a book's transcript.
// Transcripts are append-only, so there is no update path.
func (s *chatStore) AppendMessage(ctx context.Context, msg *domain.ChatMessage) error {
	if msg == nil || msg.ID == "" {
		return domain.ErrInvalidInput
	}

	citationsJSON, err := json.Marshal(msg.Citations)
	if err != nil {
		return fmt.Errorf("marshalling citations: %w", err)
	}
	suggestionsJSON, err := json.Marshal(msg.Suggestions)
	if err != nil {
		return fmt.Errorf("marshalling suggestions: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, book_id, role, content, citations, suggestions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.BookID, string(msg.Role), msg.Content,
		string(citationsJSON), string(suggestionsJSON), msg.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("appending chat message: %w", err)
	}
	return nil
}

// ListMessages returns a book's transcript in creation order.
func (s *chatStore) ListMessages(ctx context.Context, bookID string) ([]domain.ChatMessage, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, book_id, role, content, citations, suggestions, created_at
		FROM chat_messages WHERE book_id = ? ORDER BY created_at, id
	`, bookID)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		var (
			msg             domain.ChatMessage
			role            string
			citationsJSON   string
			suggestionsJSON string
		)
		if err := rows.Scan(&msg.ID, &msg.BookID, &role, &msg.Content,
			&citationsJSON, &suggestionsJSON, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		msg.Role = domain.Role(role)
		if err := json.Unmarshal([]byte(citationsJSON), &msg.Citations); err != nil {
			return nil, fmt.Errorf("unmarshalling citations: %w", err)
		}
		if err := json.Unmarshal([]byte(suggestionsJSON), &msg.Suggestions); err != nil {
			return nil, fmt.Errorf("unmarshalling suggestions: %w", err)
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

// DeleteByBook removes a book's entire transcript.
func (s *chatStore) DeleteByBook(ctx context.Context, bookID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM chat_messages WHERE book_id = ?", bookID)
	if err != nil {
		return fmt.Errorf("deleting chat transcript: %w", err)
	}
	return nil
}
