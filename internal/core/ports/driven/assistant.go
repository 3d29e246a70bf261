package driven

import (
	"context"

	"github.com/foliolabs/folio/internal/core/domain"
)

// Assistant is the remote chat/indexing agent. This is an optional
// service: when nil, the chat panel is disabled and uploads simply
// skip the indexing submission.
type Assistant interface {
	// SubmitForIndexing sends a book's content to the remote service
	// so the agent can answer questions about it. Callers treat this
	// as fire-and-forget; failures are logged and swallowed.
	SubmitForIndexing(ctx context.Context, book *domain.Book) error

	// Ask poses a free-text question to the named agent and returns
	// its reply.
	Ask(ctx context.Context, agentID, question string) (*AssistantReply, error)

	// Close releases resources.
	Close() error
}

// AssistantReply is the agent's answer to one question.
type AssistantReply struct {
	// Answer is the reply text.
	Answer string

	// Citations are optional source references.
	Citations []domain.Citation

	// Suggestions are optional follow-up questions.
	Suggestions []string
}
