package highlight

import (
	"fmt"
	"strings"
	"time"

	"github.com/foliolabs/folio/internal/core/domain"
)

// blockSeparator divides exported annotation blocks.
const blockSeparator = "---"

// Export renders highlights as a human-readable plain-text document:
// one block per highlight with the book title, color, page number,
// quoted text, optional note, and creation date, separated by "---"
// lines. Page numbers are printed one-based for readers.
func Export(bookTitle string, highlights []domain.Highlight) string {
	var sb strings.Builder

	for i, h := range highlights {
		if i > 0 {
			sb.WriteString(blockSeparator + "\n")
		}
		sb.WriteString(fmt.Sprintf("Book: %s\n", bookTitle))
		sb.WriteString(fmt.Sprintf("Color: %s\n", h.Color))
		sb.WriteString(fmt.Sprintf("Page: %d\n", h.Page+1))
		sb.WriteString(fmt.Sprintf("%q\n", h.Text))
		if h.Note != "" {
			sb.WriteString(fmt.Sprintf("Note: %s\n", h.Note))
		}
		sb.WriteString(fmt.Sprintf("Date: %s\n", h.CreatedAt.UTC().Format(time.RFC3339)))
	}

	return sb.String()
}
