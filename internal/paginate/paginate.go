// Package paginate splits normalised text into bounded-size pages,
// preserving paragraph boundaries.
package paginate

import (
	"regexp"
	"strings"
)

// DefaultPageSize is the nominal page size in characters for reflowed
// formats (TXT and DOCX). Chapter detection divides character offsets
// by this same constant, so the two must stay in sync.
const DefaultPageSize = 3000

// paragraphBreak matches one or more blank lines between paragraphs.
var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Split chunks text into pages of at most maxChars characters,
// greedily packing whole paragraphs. A single paragraph longer than
// maxChars is never split; it becomes an oversized page by itself.
//
// Split is pure and always returns at least one page: empty input
// yields a single empty page, so downstream page-index arithmetic
// never sees a zero page count.
func Split(text string, maxChars int) []string {
	if strings.TrimSpace(text) == "" {
		return []string{""}
	}

	paragraphs := paragraphBreak.Split(text, -1)

	var pages []string
	var buf strings.Builder

	for _, para := range paragraphs {
		if buf.Len() > 0 && buf.Len()+len(para)+2 > maxChars {
			pages = append(pages, buf.String())
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(para)
	}
	if buf.Len() > 0 {
		pages = append(pages, buf.String())
	}

	if len(pages) == 0 {
		return []string{""}
	}
	return pages
}

// PageForOffset converts a character offset within the full text into
// a page index, assuming uniform pages of nominal size pageSize.
//
// This is an approximation: Split packs whole paragraphs, so actual
// page boundaries drift from the nominal size and the result can be
// off by a page when paragraph lengths are uneven.
func PageForOffset(offset, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	if offset < 0 {
		return 0
	}
	return offset / pageSize
}
