package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliolabs/folio/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/views/chapters"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/views/chat"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/views/library"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/views/reader"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/views/search"
	"github.com/foliolabs/folio/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// libraryView is the book list view.
	libraryView *library.View

	// readerView is the page reading view.
	readerView *reader.View

	// chaptersView is the chapter navigation view.
	chaptersView *chapters.View

	// chatView is the assistant conversation view.
	chatView *chat.View

	// searchView is the library search view.
	searchView *search.View

	// openBook tracks the book currently being read.
	openBook *domain.Book

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	libraryView := library.NewView(s, ports.Library)
	readerView := reader.NewView(s, ports.Library, ports.Highlights)
	chaptersView := chapters.NewView(s)
	chatView := chat.NewView(s, nil, ports.Chat)
	searchView := search.NewView(s, nil, ports.Search)

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		libraryView:  libraryView,
		readerView:   readerView,
		chaptersView: chaptersView,
		chatView:     chatView,
		searchView:   searchView,
		currentView:  messages.ViewLibrary, // Start with the library
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("folio - Personal Library"),
		a.libraryView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.libraryView.SetDimensions(msg.Width, msg.Height)
		a.readerView.SetDimensions(msg.Width, msg.Height)
		a.chaptersView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Help from the library view
		if msg.String() == "?" && a.currentView == messages.ViewLibrary {
			a.currentView = messages.ViewHelp
			return a, nil
		}

		// Forward key messages to the active view
		switch a.currentView {
		case messages.ViewLibrary:
			a.libraryView, cmd = a.libraryView.Update(msg)
			return a, cmd

		case messages.ViewReader:
			a.readerView, cmd = a.readerView.Update(msg)
			return a, cmd

		case messages.ViewChapters:
			a.chaptersView, cmd = a.chaptersView.Update(msg)
			return a, cmd

		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
			return a, cmd

		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes back to the library
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewLibrary
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewChapters:
			if a.openBook != nil {
				a.chaptersView.SetBook(*a.openBook)
			}
			return a, a.chaptersView.Init()
		case messages.ViewChat:
			if a.openBook != nil {
				return a, tea.Batch(a.chatView.SetBook(*a.openBook), a.chatView.Init())
			}
			return a, a.chatView.Init()
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewLibrary:
			return a, a.libraryView.Init()
		case messages.ViewReader, messages.ViewHelp:
			// Reader keeps its open book; help is static
		}
		return a, nil

	case messages.BookSelected:
		a.openBook = &msg.Book
		a.currentView = messages.ViewReader
		return a, a.readerView.SetBook(msg.Book)

	case messages.OpenPage:
		// Search result chosen: open the book at the matched page
		return a, a.openBookAt(msg.BookID, msg.Page)

	case messages.BooksLoaded, messages.BookDeleted:
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd

	case messages.PageLoaded, messages.PositionSaved, messages.BookmarkToggled, messages.PageRequested:
		a.readerView, cmd = a.readerView.Update(msg)
		if b := a.readerView.Book(); b != nil {
			a.openBook = b
		}
		return a, cmd

	case messages.ChatHistoryLoaded, messages.ChatReplyReceived:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to the current view
		switch a.currentView {
		case messages.ViewLibrary:
			a.libraryView, cmd = a.libraryView.Update(msg)
		case messages.ViewReader:
			a.readerView, cmd = a.readerView.Update(msg)
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewChapters, messages.ViewHelp:
			// These views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewLibrary:
		a.libraryView, cmd = a.libraryView.Update(msg)
	case messages.ViewReader:
		a.readerView, cmd = a.readerView.Update(msg)
	case messages.ViewChapters:
		a.chaptersView, cmd = a.chaptersView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// openBookAt loads the book and opens the reader at a specific page.
func (a *App) openBookAt(bookID string, page int) tea.Cmd {
	return func() tea.Msg {
		book, err := a.ports.Library.Get(a.ctx, bookID)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		b := *book
		b.CurrentPage = page
		return messages.BookSelected{Book: b}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewLibrary:
		return a.libraryView.View()
	case messages.ViewReader:
		return a.readerView.View()
	case messages.ViewChapters:
		return a.chaptersView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.libraryView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Library:
  j/k, ↑/↓    Navigate books
  enter       Book actions
  /           Search the library
  r           Reload
  q           Quit

Reader:
  ←/→, h/l    Turn page
  j/k, ↑/↓    Scroll within page
  g/G         First/last page
  b           Toggle bookmark
  c           Chapters
  a           Ask the assistant

Search:
  (type)      Enter query
  enter       Submit / open result
  n           New search

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// OpenBook returns the book currently being read.
func (a *App) OpenBook() *domain.Book {
	return a.openBook
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.libraryView.SetDimensions(width, height)
	a.readerView.SetDimensions(width, height)
	a.chaptersView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
}
