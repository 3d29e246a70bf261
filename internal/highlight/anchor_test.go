package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/internal/core/domain"
)

func join(lines []Line) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, seg := range line {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

func countMarked(lines []Line, id string) int {
	n := 0
	for _, line := range lines {
		for _, seg := range line {
			if seg.HighlightID == id {
				n++
			}
		}
	}
	return n
}

func TestAnchorPage_RoundTrip(t *testing.T) {
	page := "It was the best of times,\nit was the worst of times."
	h := domain.Highlight{ID: "h1", Text: "best of times", Color: domain.ColorYellow}

	lines := AnchorPage(page, []domain.Highlight{h})

	// The selection appears marked exactly once.
	assert.Equal(t, 1, countMarked(lines, "h1"))
	// Concatenating segments reproduces the page verbatim.
	assert.Equal(t, page, join(lines))
}

func TestAnchorPage_NoHighlights(t *testing.T) {
	page := "plain text\nsecond line"
	lines := AnchorPage(page, nil)

	require.Len(t, lines, 2)
	for _, line := range lines {
		require.Len(t, line, 1)
		assert.False(t, line[0].Marked())
	}
	assert.Equal(t, page, join(lines))
}

func TestAnchorPage_FirstOccurrenceWins(t *testing.T) {
	// The text repeats on the line; the earlier occurrence is marked
	// even if the user selected the later one. Documented first-match
	// behaviour.
	page := "the cat sat on the cat mat"
	h := domain.Highlight{ID: "h1", Text: "the cat"}

	lines := AnchorPage(page, []domain.Highlight{h})

	require.Len(t, lines, 1)
	assert.Equal(t, 1, countMarked(lines, "h1"))
	assert.Equal(t, "the cat", lines[0][0].Text)
	assert.True(t, lines[0][0].Marked())
}

func TestAnchorPage_MultipleHighlightsOneLine(t *testing.T) {
	page := "alpha beta gamma delta"
	hs := []domain.Highlight{
		{ID: "h1", Text: "alpha", Color: domain.ColorGreen},
		{ID: "h2", Text: "delta", Color: domain.ColorPink},
	}

	lines := AnchorPage(page, hs)

	assert.Equal(t, 1, countMarked(lines, "h1"))
	assert.Equal(t, 1, countMarked(lines, "h2"))
	assert.Equal(t, page, join(lines))
}

func TestAnchorPage_TextNotOnPage(t *testing.T) {
	page := "nothing relevant here"
	h := domain.Highlight{ID: "h1", Text: "vanished selection"}

	lines := AnchorPage(page, []domain.Highlight{h})

	// Silently omitted, never an error.
	assert.Equal(t, 0, countMarked(lines, "h1"))
	assert.Equal(t, page, join(lines))
}

func TestAnchorPage_MultiLineSelectionNeverMatches(t *testing.T) {
	page := "first line\nsecond line"
	h := domain.Highlight{ID: "h1", Text: "first line\nsecond"}

	lines := AnchorPage(page, []domain.Highlight{h})
	assert.Equal(t, 0, countMarked(lines, "h1"))
}

func TestAnchorPage_OverlapDegradesToFirstCreated(t *testing.T) {
	page := "one two three four"
	hs := []domain.Highlight{
		{ID: "h1", Text: "two three"},
		{ID: "h2", Text: "three four"}, // overlaps h1's span
	}

	lines := AnchorPage(page, hs)

	assert.Equal(t, 1, countMarked(lines, "h1"))
	// h2's text no longer exists inside any single unmarked fragment.
	assert.Equal(t, 0, countMarked(lines, "h2"))
	assert.Equal(t, page, join(lines))
}

func TestAnchorPage_Idempotent(t *testing.T) {
	page := "some repeated words, some repeated words"
	hs := []domain.Highlight{
		{ID: "h1", Text: "repeated"},
		{ID: "h2", Text: "words"},
	}

	a := AnchorPage(page, hs)
	b := AnchorPage(page, hs)
	assert.Equal(t, a, b)
}

func TestForPage(t *testing.T) {
	hs := []domain.Highlight{
		{ID: "a", Page: 0},
		{ID: "b", Page: 2},
		{ID: "c", Page: 0},
	}

	got := ForPage(hs, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Empty(t, ForPage(hs, 5))
}
