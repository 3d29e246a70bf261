package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/highlight"
)

var readPage int

var readCmd = &cobra.Command{
	Use:   "read [book-id]",
	Short: "Read a page of a book",
	Long: `Prints a page of the book with highlights rendered in color.

Without --page, continues from the last reading position. The reading
position and progress are updated to the displayed page.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().IntVarP(&readPage, "page", "p", -1, "page number (1-based, default: current)")
	rootCmd.AddCommand(readCmd)
}

// highlightStyles maps annotation colors to terminal styles.
var highlightStyles = map[domain.HighlightColor]lipgloss.Style{
	domain.ColorYellow: lipgloss.NewStyle().Background(lipgloss.Color("11")).Foreground(lipgloss.Color("0")),
	domain.ColorGreen:  lipgloss.NewStyle().Background(lipgloss.Color("10")).Foreground(lipgloss.Color("0")),
	domain.ColorBlue:   lipgloss.NewStyle().Background(lipgloss.Color("12")).Foreground(lipgloss.Color("0")),
	domain.ColorPink:   lipgloss.NewStyle().Background(lipgloss.Color("13")).Foreground(lipgloss.Color("0")),
}

func runRead(cmd *cobra.Command, args []string) error {
	if libraryService == nil || highlightService == nil {
		return errors.New("library service not configured")
	}

	ctx := context.Background()
	bookID := args[0]

	book, err := libraryService.Get(ctx, bookID)
	if err != nil {
		return fmt.Errorf("get book: %w", err)
	}

	target := book.CurrentPage
	if readPage > 0 {
		target = readPage - 1
	}

	book, err = libraryService.GoToPage(ctx, bookID, target)
	if err != nil {
		return fmt.Errorf("go to page: %w", err)
	}

	lines, err := highlightService.RenderPage(ctx, bookID, book.CurrentPage)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	bookmark := ""
	if book.IsBookmarked(book.CurrentPage) {
		bookmark = "  [bookmarked]"
	}
	cmd.Printf("%s - page %d of %d (%d%%)%s\n\n", book.Title, book.CurrentPage+1, book.PageCount, book.Progress, bookmark)

	for _, line := range lines {
		cmd.Println(renderLine(line))
	}
	return nil
}

// renderLine flattens one anchored line into styled terminal text.
func renderLine(line highlight.Line) string {
	var out string
	for _, seg := range line {
		if seg.Marked() {
			out += highlightStyles[seg.Color].Render(seg.Text)
		} else {
			out += seg.Text
		}
	}
	return out
}
