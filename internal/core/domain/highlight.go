package domain

import "time"

// HighlightColor is one of the four annotation colors.
type HighlightColor string

const (
	ColorYellow HighlightColor = "yellow"
	ColorGreen  HighlightColor = "green"
	ColorBlue   HighlightColor = "blue"
	ColorPink   HighlightColor = "pink"
)

// HighlightColors lists the valid colors in display order.
var HighlightColors = []HighlightColor{ColorYellow, ColorGreen, ColorBlue, ColorPink}

// Valid reports whether the color is one of the four known values.
func (c HighlightColor) Valid() bool {
	switch c {
	case ColorYellow, ColorGreen, ColorBlue, ColorPink:
		return true
	}
	return false
}

// Highlight is a user annotation over a verbatim substring of one page.
//
// No character offset is persisted: the text is re-located by substring
// search at render time. When the text repeats on a line the first
// occurrence is the one marked, and when pagination shifts the text off
// its page the highlight silently stops rendering. Both are accepted
// behaviour, not defects.
type Highlight struct {
	// ID is the unique identifier for the highlight.
	ID string

	// BookID links to the owning Book.
	BookID string

	// Text is the exact substring selected, verbatim from the page
	// content at creation time.
	Text string

	// Color is the annotation color.
	Color HighlightColor

	// Note is an optional free-text note.
	Note string

	// Page is the zero-based page index at creation time.
	Page int

	// CreatedAt is when the highlight was made.
	CreatedAt time.Time
}
