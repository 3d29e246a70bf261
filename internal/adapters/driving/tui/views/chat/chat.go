// Package chat provides the assistant conversation view component for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foliolabs/folio/internal/adapters/driving/tui/components/input"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/components/status"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/keymap"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driving"
)

// View is the per-book conversation view with the reading assistant.
type View struct {
	styles    *styles.Styles
	input     *input.PromptInput
	statusbar *status.Bar

	chatService driving.ChatService
	ctx         context.Context

	book     *domain.Book
	history  []domain.ChatMessage
	thinking bool
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:      s,
		input:       input.NewPromptInput(s, "Ask: ", "Ask about this book..."),
		statusbar:   status.NewBar(s, km),
		chatService: chatService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetBook sets the book being discussed and loads its transcript.
func (v *View) SetBook(book domain.Book) tea.Cmd {
	v.book = &book
	v.history = nil
	v.err = nil
	v.thinking = false
	v.input.SetValue("")
	v.input.Focus()
	return v.loadHistory()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// loadHistory returns a command that loads the conversation transcript.
func (v *View) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if v.book == nil {
			return messages.ChatHistoryLoaded{Err: fmt.Errorf("no book selected")}
		}
		if v.chatService == nil {
			// No assistant configured; start with an empty transcript.
			return messages.ChatHistoryLoaded{BookID: v.book.ID}
		}

		history, err := v.chatService.History(v.ctx, v.book.ID)
		return messages.ChatHistoryLoaded{BookID: v.book.ID, Messages: history, Err: err}
	}
}

// ask returns a command that submits a question to the assistant.
func (v *View) ask(question string) tea.Cmd {
	return func() tea.Msg {
		if v.book == nil || v.chatService == nil {
			return messages.ChatReplyReceived{Err: domain.ErrAssistantUnavailable}
		}

		reply, err := v.chatService.Ask(v.ctx, v.book.ID, question)
		return messages.ChatReplyReceived{Reply: reply, Err: err}
	}
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ChatHistoryLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.history = msg.Messages
		return v, nil

	case messages.ChatReplyReceived:
		v.thinking = false
		v.statusbar.SetState(status.StateReady)
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		// Reload the transcript; the service persisted both sides.
		return v, v.loadHistory()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward to input component
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewReader}
		}
	}

	if msg.Type == tea.KeyEnter {
		question := strings.TrimSpace(v.input.Value())
		if question == "" || v.thinking {
			return v, nil
		}

		// Echo the question immediately; the persisted copy arrives
		// with the transcript reload.
		v.history = append(v.history, domain.ChatMessage{
			Role:    domain.RoleUser,
			Content: question,
		})
		v.input.SetValue("")
		v.thinking = true
		v.statusbar.SetState(status.StateThinking)
		return v, v.ask(question)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	title := "Assistant"
	if v.book != nil {
		title = fmt.Sprintf("Assistant - %s", v.book.Title)
	}
	sections = append(sections, v.styles.Title.Render(title), "")

	if v.chatService == nil {
		sections = append(sections,
			v.styles.Muted.Render("Assistant not configured. Set agent.base_url in the config to enable it."),
			"")
	}

	sections = append(sections, v.renderTranscript())

	if v.thinking {
		sections = append(sections, v.styles.Muted.Render("  Thinking..."), "")
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.input.View(), "")
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTranscript renders the visible tail of the conversation.
func (v *View) renderTranscript() string {
	if len(v.history) == 0 {
		return v.styles.Muted.Render("  No conversation yet. Ask a question about this book.") + "\n"
	}

	var b strings.Builder
	visible := v.visibleMessages()
	start := 0
	if len(v.history) > visible {
		start = len(v.history) - visible
	}

	for _, m := range v.history[start:] {
		switch m.Role {
		case domain.RoleUser:
			b.WriteString(v.styles.Subtitle.Render("You: "))
		case domain.RoleAssistant:
			b.WriteString(v.styles.Success.Render("Assistant: "))
		}
		b.WriteString(v.styles.Normal.Render(wrap(m.Content, v.width-4)))
		b.WriteString("\n")

		for _, c := range m.Citations {
			b.WriteString(v.styles.Muted.Render("    source: " + c.Source))
			b.WriteString("\n")
		}
		if len(m.Suggestions) > 0 {
			b.WriteString(v.styles.Muted.Render("    try: " + strings.Join(m.Suggestions, " | ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// visibleMessages returns how many messages fit in the transcript area.
func (v *View) visibleMessages() int {
	// Roughly three lines per message after wrapping.
	n := (v.height - 10) / 3
	if n < 2 {
		n = 2
	}
	return n
}

// wrap breaks text into lines no longer than width.
func wrap(text string, width int) string {
	if width < 20 {
		width = 20
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if lineLen+len(w)+1 > width && lineLen > 0 {
			b.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Book returns the book being discussed.
func (v *View) Book() *domain.Book {
	return v.book
}

// History returns the transcript currently displayed.
func (v *View) History() []domain.ChatMessage {
	return v.history
}

// Thinking reports whether a question is awaiting its reply.
func (v *View) Thinking() bool {
	return v.thinking
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
