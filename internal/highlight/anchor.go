// Package highlight re-locates stored highlight text on rendered pages
// and produces a segmented form renderers can mark up.
//
// Highlights carry no character offsets, only the verbatim selected
// text. Anchoring is a per-line, first-match substring search: when the
// text repeats on a line the earliest occurrence is marked, when the
// text spans a line break it never matches, and when re-pagination
// moved the text off its page the highlight silently does not render.
// All three are accepted behaviour.
package highlight

import (
	"strings"

	"github.com/foliolabs/folio/internal/core/domain"
)

// Segment is a run of page text, optionally owned by a highlight.
type Segment struct {
	// Text is the verbatim page text of the run.
	Text string

	// HighlightID is the owning highlight's ID, empty for plain text.
	HighlightID string

	// Color is the highlight color, set only when HighlightID is.
	Color domain.HighlightColor
}

// Marked reports whether the segment belongs to a highlight.
func (s Segment) Marked() bool {
	return s.HighlightID != ""
}

// Line is the segmented form of one page line.
type Line []Segment

// AnchorPage splits page text into lines and marks each highlight's
// first occurrence per line. Highlights must be given in creation
// order; later highlights are matched against the fragments left over
// by earlier ones, so several can coexist on a line as long as their
// spans do not collide.
//
// Anchoring is pure: the same page and highlight set always produce
// the same segmentation.
func AnchorPage(pageText string, highlights []domain.Highlight) []Line {
	rawLines := strings.Split(pageText, "\n")
	lines := make([]Line, len(rawLines))

	for i, raw := range rawLines {
		line := Line{Segment{Text: raw}}
		for _, h := range highlights {
			if h.Text == "" {
				continue
			}
			line = markFirst(line, h)
		}
		lines[i] = line
	}

	return lines
}

// markFirst marks the first occurrence of h.Text within the line's
// unmarked fragments. Already-marked spans are never re-split, so
// overlapping highlights degrade to whichever was created first.
func markFirst(line Line, h domain.Highlight) Line {
	for i, seg := range line {
		if seg.Marked() {
			continue
		}
		at := strings.Index(seg.Text, h.Text)
		if at < 0 {
			continue
		}

		out := make(Line, 0, len(line)+2)
		out = append(out, line[:i]...)
		if before := seg.Text[:at]; before != "" {
			out = append(out, Segment{Text: before})
		}
		out = append(out, Segment{Text: h.Text, HighlightID: h.ID, Color: h.Color})
		if after := seg.Text[at+len(h.Text):]; after != "" {
			out = append(out, Segment{Text: after})
		}
		out = append(out, line[i+1:]...)
		return out
	}
	// Not found: page boundaries shifted or the selection spans lines.
	// The highlight is omitted from this render.
	return line
}

// ForPage filters highlights recorded against the exact page index,
// preserving order.
func ForPage(highlights []domain.Highlight, page int) []domain.Highlight {
	var out []domain.Highlight
	for _, h := range highlights {
		if h.Page == page {
			out = append(out, h)
		}
	}
	return out
}
