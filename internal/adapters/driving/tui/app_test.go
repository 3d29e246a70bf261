package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/internal/adapters/driven/storage/memory"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/services"
	"github.com/foliolabs/folio/internal/normalisers"
	"github.com/foliolabs/folio/internal/normalisers/plaintext"
)

const storyText = "Chapter 1: Openings\n\nIt was a dark and stormy night.\n\nChapter 2: Endings\n\nAnd then it was over."

func newTestPorts(t *testing.T) (*Ports, *domain.Book) {
	t.Helper()

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New(0))

	books := memory.NewBookStore()
	highlights := memory.NewHighlightStore()
	chats := memory.NewChatStore()
	blobs := memory.NewBlobStore()

	library := services.NewLibraryService(registry, books, highlights, chats, blobs, nil, nil, 0)
	highlightSvc := services.NewHighlightService(library, books, highlights)
	chatSvc := services.NewChatService(books, chats, nil, "reader")
	searchSvc := services.NewSearchService(nil)

	book, err := library.Import(context.Background(), "story.txt", []byte(storyText), nil)
	require.NoError(t, err)

	return NewPorts(library, highlightSvc, chatSvc, searchSvc), book
}

func TestNewApp(t *testing.T) {
	t.Run("nil library service returns error", func(t *testing.T) {
		app, err := NewApp(&Ports{})
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingLibraryService)
	})

	t.Run("nil highlight service returns error", func(t *testing.T) {
		ports, _ := newTestPorts(t)
		ports.Highlights = nil
		app, err := NewApp(ports)
		require.Error(t, err)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingHighlightService)
	})

	t.Run("valid ports creates app on the library view", func(t *testing.T) {
		ports, _ := newTestPorts(t)
		app, err := NewApp(ports)
		require.NoError(t, err)
		assert.Equal(t, messages.ViewLibrary, app.CurrentView())
	})
}

func TestApp_BookSelectedOpensReader(t *testing.T) {
	ports, book := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(80, 24)

	model, cmd := app.Update(messages.BookSelected{Book: *book})
	app = model.(*App)

	assert.Equal(t, messages.ViewReader, app.CurrentView())
	require.NotNil(t, cmd, "opening a book loads its current page")

	loaded, ok := cmd().(messages.PageLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, book.ID, loaded.BookID)
}

func TestApp_OpenPageFromSearch(t *testing.T) {
	ports, book := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(80, 24)

	model, cmd := app.Update(messages.OpenPage{BookID: book.ID, Page: 0})
	app = model.(*App)
	require.NotNil(t, cmd)

	selected, ok := cmd().(messages.BookSelected)
	require.True(t, ok)
	assert.Equal(t, book.ID, selected.Book.ID)
	assert.Equal(t, 0, selected.Book.CurrentPage)
	_ = app
}

func TestApp_ViewChanged(t *testing.T) {
	ports, book := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(80, 24)

	// Open a book first so the chapter view has context
	model, _ := app.Update(messages.BookSelected{Book: *book})
	app = model.(*App)

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewChapters})
	app = model.(*App)
	assert.Equal(t, messages.ViewChapters, app.CurrentView())
	assert.Contains(t, app.View(), "Chapters")

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewLibrary})
	app = model.(*App)
	assert.Equal(t, messages.ViewLibrary, app.CurrentView())
}

func TestApp_HelpAndBack(t *testing.T) {
	ports, _ := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(80, 24)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	app = model.(*App)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Turn page")

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.Equal(t, messages.ViewLibrary, app.CurrentView())
}

func TestApp_CtrlCQuits(t *testing.T) {
	ports, _ := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(80, 24)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_NotReadyBeforeFirstSize(t *testing.T) {
	ports, _ := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app = model.(*App)
	assert.True(t, app.Ready())
}
