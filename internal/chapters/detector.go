// Package chapters scans document text and HTML for chapter headings
// and records the page index each one starts on.
//
// For reflowed formats the page index is derived by dividing the
// heading's character offset by the nominal page size. The paginator
// packs whole paragraphs, so real page boundaries drift from the
// nominal size and a chapter marker can land one page off. PDF
// detection works on physical pages and is exact.
package chapters

import (
	"regexp"
	"strings"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/paginate"
)

// maxTitleLen bounds detected chapter titles.
const maxTitleLen = 80

var (
	// txtHeading matches plain-text heading lines: a keyword followed
	// by a numeral or letter and a separator ("Chapter 1:", "Part II -",
	// "Section 3.").
	txtHeading = regexp.MustCompile(`^(?i:chapter|part|section)\s+\S+`)

	// pdfHeadings are tried against each physical PDF page. Extracted
	// PDF text tends to shout, so uppercase forms and bare roman or
	// arabic numerals are accepted too.
	pdfHeadings = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*(?:CHAPTER|Chapter)\s+(?:[IVXLCDM]+|[0-9]+|[A-Za-z]+)\b[^\n]*`),
		regexp.MustCompile(`(?m)^\s*(?:PART|Part)\s+(?:[IVXLCDM]+|[0-9]+)\b[^\n]*`),
		regexp.MustCompile(`(?m)^\s*(?i:section)\s+[0-9]+(?:\.[0-9]+)*\b[^\n]*`),
	}
)

// DetectText scans plain text line by line for heading keywords and
// returns chapters in document order. Start pages are approximate
// (offset divided by pageSize). Duplicate start pages are kept.
func DetectText(text string, pageSize int) []domain.Chapter {
	var out []domain.Chapter

	offset := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if txtHeading.MatchString(trimmed) {
			out = append(out, domain.Chapter{
				Title:     truncate(trimmed, maxTitleLen),
				StartPage: paginate.PageForOffset(offset, pageSize),
			})
		}
		offset += len(line) + 1 // +1 for the split newline
	}

	return out
}

// DetectPDFPages runs one heading test per physical page, so the start
// index is the page position itself, not an approximation.
func DetectPDFPages(pages []string) []domain.Chapter {
	var out []domain.Chapter

	for i, page := range pages {
		for _, re := range pdfHeadings {
			m := re.FindString(page)
			if m == "" {
				continue
			}
			out = append(out, domain.Chapter{
				Title:     truncate(strings.TrimSpace(m), maxTitleLen),
				StartPage: i,
			})
			break // one chapter test per page
		}
	}

	return out
}

// truncate shortens s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
