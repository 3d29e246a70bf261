package search

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio/internal/core/ports/driving"
)

// cannedSearch returns fixed results for every query.
type cannedSearch struct {
	results []driving.SearchResult
	query   string
	err     error
}

func (c *cannedSearch) Search(_ context.Context, query string, _ int) ([]driving.SearchResult, error) {
	c.query = query
	return c.results, c.err
}

func newSearchView(svc driving.SearchService) *View {
	v := NewView(styles.DefaultStyles(), nil, svc)
	v.SetDimensions(80, 24)
	return v
}

func typeString(v *View, s string) *View {
	for _, r := range s {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return v
}

func TestSearchView_SubmitsQuery(t *testing.T) {
	svc := &cannedSearch{
		results: []driving.SearchResult{
			{BookID: "book-1", Title: "Moby Dick", Page: 4, Score: 2.5, Fragments: []string{"the white whale"}},
		},
	}
	v := newSearchView(svc)

	v = typeString(v, "whale")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	completed, ok := cmd().(messages.SearchCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)
	assert.Equal(t, "whale", svc.query)

	v, _ = v.Update(completed)
	require.Len(t, v.Results(), 1)
	assert.False(t, v.InputFocused(), "focus moves to results after a search")
	assert.Contains(t, v.View(), "Moby Dick")
	assert.Contains(t, v.View(), "p.5")
}

func TestSearchView_EmptyQueryIgnored(t *testing.T) {
	v := newSearchView(&cannedSearch{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, v.InputFocused())
}

func TestSearchView_EnterOnResultOpensPage(t *testing.T) {
	svc := &cannedSearch{
		results: []driving.SearchResult{
			{BookID: "book-1", Title: "Moby Dick", Page: 4},
			{BookID: "book-2", Title: "Walden", Page: 0},
		},
	}
	v := newSearchView(svc)

	v = typeString(v, "pond")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd().(messages.SearchCompleted))

	// Move to the second result and open it
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	open, ok := cmd().(messages.OpenPage)
	require.True(t, ok)
	assert.Equal(t, "book-2", open.BookID)
	assert.Equal(t, 0, open.Page)
}

func TestSearchView_NoSearchService(t *testing.T) {
	v := newSearchView(nil)

	v = typeString(v, "whale")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	errMsg, ok := cmd().(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoSearchService)
	_ = v
}

func TestSearchView_NewSearchResetsFocus(t *testing.T) {
	svc := &cannedSearch{results: []driving.SearchResult{{BookID: "book-1", Title: "Moby Dick"}}}
	v := newSearchView(svc)

	v = typeString(v, "whale")
	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd().(messages.SearchCompleted))
	require.False(t, v.InputFocused())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Query())
}

func TestSearchView_EscReturnsToLibrary(t *testing.T) {
	v := newSearchView(&cannedSearch{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewLibrary, changed.View)
}
