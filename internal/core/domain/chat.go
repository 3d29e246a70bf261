package domain

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	// RoleUser is a question typed by the reader.
	RoleUser Role = "user"

	// RoleAssistant is a reply from the remote agent, including the
	// synthetic messages that report agent failures.
	RoleAssistant Role = "assistant"
)

// Citation points at source material the agent used for an answer.
type Citation struct {
	// Source names the cited document or section.
	Source string

	// Snippet is an optional quoted passage.
	Snippet string
}

// ChatMessage is one entry in a book's conversation transcript.
// The transcript is append-only and ordered by CreatedAt.
type ChatMessage struct {
	// ID is the unique identifier for the message.
	ID string

	// BookID links to the Book the conversation is about.
	BookID string

	// Role is who authored the message.
	Role Role

	// Content is the message text.
	Content string

	// Citations are optional source references from the agent.
	Citations []Citation

	// Suggestions are optional follow-up questions from the agent.
	Suggestions []string

	// CreatedAt is when the message was appended.
	CreatedAt time.Time
}
