package chapters

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio/internal/core/domain"
)

func bookWithChapters() domain.Book {
	return domain.Book{
		ID:        "book-1",
		Title:     "Moby Dick",
		PageCount: 30,
		Chapters: []domain.Chapter{
			{Title: "Loomings", StartPage: 0},
			{Title: "The Carpet-Bag", StartPage: 4},
			{Title: "The Spouter-Inn", StartPage: 9},
		},
	}
}

func TestChaptersView_SelectsCurrentChapter(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	v.SetDimensions(80, 24)

	book := bookWithChapters()
	book.CurrentPage = 6
	v.SetBook(book)

	// Page 6 falls inside the second chapter (starts on page 4)
	assert.Equal(t, 1, v.SelectedIndex())
}

func TestChaptersView_Navigation(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	v.SetDimensions(80, 24)
	v.SetBook(bookWithChapters())

	assert.Equal(t, 0, v.SelectedIndex())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, v.SelectedIndex())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, v.SelectedIndex(), "selection stops at the last chapter")
}

func TestChaptersView_JumpEmitsCommands(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	v.SetDimensions(80, 24)
	v.SetBook(bookWithChapters())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "enter on a chapter emits navigation commands")
}

func TestChaptersView_RendersChapterList(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	v.SetDimensions(80, 24)
	v.SetBook(bookWithChapters())

	out := v.View()
	assert.Contains(t, out, "Moby Dick")
	assert.Contains(t, out, "Loomings")
	assert.Contains(t, out, "The Spouter-Inn")
	assert.Contains(t, out, "p.10", "start pages are shown 1-based")
}

func TestChaptersView_EmptyState(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	v.SetDimensions(80, 24)
	v.SetBook(domain.Book{ID: "book-2", Title: "Notes", PageCount: 1})

	assert.Contains(t, v.View(), "No chapters detected")
}
