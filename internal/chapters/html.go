package chapters

import (
	"regexp"
	"strings"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/htmltext"
	"github.com/foliolabs/folio/internal/paginate"
)

// htmlHeading matches <h1> through <h3> elements, capturing inner HTML.
var htmlHeading = regexp.MustCompile(`(?is)<h([1-3])[^>]*>(.*?)</h[1-3]>`)

// minHTMLTitleLen filters out decorative or empty headings.
const minHTMLTitleLen = 3

// DetectHTML scans converted DOCX HTML for <h1>-<h3> headings. The
// start page is derived from the plain-text length of the stripped
// prefix, using the same stripping rules the normaliser applied to
// produce the page text.
func DetectHTML(html string, pageSize int) []domain.Chapter {
	var out []domain.Chapter

	for _, idx := range htmlHeading.FindAllStringSubmatchIndex(html, -1) {
		inner := html[idx[4]:idx[5]]
		title := strings.TrimSpace(htmltext.StripInline(inner))
		if len(title) < minHTMLTitleLen {
			continue
		}

		offset := len(htmltext.Strip(html[:idx[0]]))
		out = append(out, domain.Chapter{
			Title:     truncate(title, maxTitleLen),
			StartPage: paginate.PageForOffset(offset, pageSize),
		})
	}

	return out
}
