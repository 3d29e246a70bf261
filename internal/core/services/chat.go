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
	"github.com/foliolabs/folio/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*chatService)(nil)

// unavailableReply is the synthetic assistant message used when the
// agent cannot be reached. The transcript must record what the reader
// saw, so failures become messages instead of errors.
const unavailableReply = "Sorry, I couldn't reach the reading assistant just now. Please try again in a moment."

// chatService manages per-book conversations with the remote agent.
type chatService struct {
	books     driven.BookStore
	chats     driven.ChatStore
	assistant driven.Assistant // optional, may be nil
	agentID   string
}

// NewChatService creates a new chat service. The assistant may be nil,
// in which case Ask fails with domain.ErrAssistantUnavailable.
func NewChatService(
	books driven.BookStore,
	chats driven.ChatStore,
	assistant driven.Assistant,
	agentID string,
) driving.ChatService {
	return &chatService{
		books:     books,
		chats:     chats,
		assistant: assistant,
		agentID:   agentID,
	}
}

// Ask appends the user's question, queries the agent, and appends its
// reply. Agent failures produce a synthetic assistant message.
func (s *chatService) Ask(ctx context.Context, bookID, question string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question required: %w", domain.ErrInvalidInput)
	}
	if s.assistant == nil {
		return nil, domain.ErrAssistantUnavailable
	}

	book, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.ChatMessage{
		ID:        uuid.New().String(),
		BookID:    bookID,
		Role:      domain.RoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	}
	if err := s.chats.AppendMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("append question: %w", err)
	}

	reply := &domain.ChatMessage{
		ID:     uuid.New().String(),
		BookID: bookID,
		Role:   domain.RoleAssistant,
	}

	answer, err := s.assistant.Ask(ctx, s.agentID, scopedQuestion(book.Title, question))
	if err != nil {
		logger.Warn("Agent request failed for %q: %v", book.Title, err)
		reply.Content = unavailableReply
	} else {
		reply.Content = answer.Answer
		reply.Citations = answer.Citations
		reply.Suggestions = answer.Suggestions
	}
	reply.CreatedAt = time.Now()

	if err := s.chats.AppendMessage(ctx, reply); err != nil {
		return nil, fmt.Errorf("append reply: %w", err)
	}
	return reply, nil
}

// scopedQuestion prefixes the question with the book it concerns so a
// shared agent can tell conversations apart.
func scopedQuestion(title, question string) string {
	return fmt.Sprintf("[Book: %s] %s", title, question)
}

// History returns the transcript in creation order.
func (s *chatService) History(ctx context.Context, bookID string) ([]domain.ChatMessage, error) {
	if _, err := s.books.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	return s.chats.ListMessages(ctx, bookID)
}
