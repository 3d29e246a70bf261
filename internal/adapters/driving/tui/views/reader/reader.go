// Package reader provides the page reading view component for the TUI.
package reader

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliolabs/folio/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driving"
	"github.com/foliolabs/folio/internal/highlight"
)

// View is the page reading view. It renders one page at a time with
// the book's highlights marked in their annotation colours.
type View struct {
	styles           *styles.Styles
	libraryService   driving.LibraryService
	highlightService driving.HighlightService

	book         *domain.Book
	page         int
	lines        []highlight.Line
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	statusNote   string
}

// NewView creates a new reader view.
func NewView(s *styles.Styles, libraryService driving.LibraryService, highlightService driving.HighlightService) *View {
	return &View{
		styles:           s,
		libraryService:   libraryService,
		highlightService: highlightService,
	}
}

// SetBook opens the book at its current reading position.
func (v *View) SetBook(book domain.Book) tea.Cmd {
	v.book = &book
	v.page = book.CurrentPage
	v.lines = nil
	v.scrollOffset = 0
	v.err = nil
	v.statusNote = ""
	return v.loadPage(v.page)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// loadPage returns a command that loads and renders one page.
func (v *View) loadPage(page int) tea.Cmd {
	return func() tea.Msg {
		if v.book == nil || v.highlightService == nil {
			return messages.PageLoaded{Err: fmt.Errorf("reader not available")}
		}

		v.loading = true
		lines, err := v.highlightService.RenderPage(context.Background(), v.book.ID, page)
		return messages.PageLoaded{
			BookID: v.book.ID,
			Page:   page,
			Lines:  lines,
			Err:    err,
		}
	}
}

// savePosition returns a command that persists the reading position.
func (v *View) savePosition(page int) tea.Cmd {
	return func() tea.Msg {
		if v.book == nil || v.libraryService == nil {
			return nil
		}

		book, err := v.libraryService.GoToPage(context.Background(), v.book.ID, page)
		return messages.PositionSaved{Book: book, Err: err}
	}
}

// toggleBookmark returns a command that flips the current page's bookmark.
func (v *View) toggleBookmark() tea.Cmd {
	page := v.page
	return func() tea.Msg {
		if v.book == nil || v.libraryService == nil {
			return nil
		}

		on, err := v.libraryService.ToggleBookmark(context.Background(), v.book.ID, page)
		return messages.BookmarkToggled{Page: page, Bookmarked: on, Err: err}
	}
}

// Update handles messages for the reader view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PageLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.page = msg.Page
		v.lines = msg.Lines
		v.scrollOffset = 0
		return v, v.savePosition(msg.Page)

	case messages.PositionSaved:
		if msg.Err == nil && msg.Book != nil {
			v.book = msg.Book
		}
		return v, nil

	case messages.BookmarkToggled:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		if msg.Bookmarked {
			v.statusNote = "Bookmarked"
		} else {
			v.statusNote = "Bookmark removed"
		}
		return v, v.refreshBook()

	case messages.PageRequested:
		return v, v.loadPage(msg.Page)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// refreshBook returns a command that reloads the book's metadata,
// keeping bookmark markers current.
func (v *View) refreshBook() tea.Cmd {
	return func() tea.Msg {
		if v.book == nil || v.libraryService == nil {
			return nil
		}
		book, err := v.libraryService.Get(context.Background(), v.book.ID)
		return messages.PositionSaved{Book: book, Err: err}
	}
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "right", "l", " ":
		if v.book != nil && v.page < v.book.PageCount-1 {
			return v, v.loadPage(v.page + 1)
		}
	case "left", "h":
		if v.page > 0 {
			return v, v.loadPage(v.page - 1)
		}
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "g":
		return v, v.loadPage(0)
	case "G":
		if v.book != nil {
			return v, v.loadPage(v.book.PageCount - 1)
		}
	case "b":
		return v, v.toggleBookmark()
	case "c":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewChapters}
		}
	case "a":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewChat}
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewLibrary}
		}
	}

	return v, nil
}

// visibleLines returns the number of text lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, footer, and padding
	reserved := 7
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	maxOffset := len(v.lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// bookmarked reports whether the current page carries a bookmark.
func (v *View) bookmarked() bool {
	if v.book == nil {
		return false
	}
	for _, p := range v.book.Bookmarks {
		if p == v.page {
			return true
		}
	}
	return false
}

// View renders the reader view.
func (v *View) View() string {
	var b strings.Builder

	title := "Reader"
	if v.book != nil {
		title = v.book.Title
	}
	b.WriteString(v.styles.Title.Render(title))
	if v.bookmarked() {
		b.WriteString(v.styles.Warning.Render("  ★"))
	}
	b.WriteString("\n")

	b.WriteString(strings.Repeat("─", minInt(v.width-4, 72)))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading page..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderFooter())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderFooter())
		return b.String()
	}

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(Blank page)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderFooter())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderLine(v.lines[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderFooter())

	return b.String()
}

// renderLine renders one segmented page line, marking highlighted runs.
func (v *View) renderLine(line highlight.Line) string {
	var b strings.Builder
	for _, seg := range line {
		if seg.Marked() {
			if style, ok := v.styles.Highlights[seg.Color]; ok {
				b.WriteString(style.Render(seg.Text))
				continue
			}
		}
		b.WriteString(v.styles.Normal.Render(seg.Text))
	}
	return b.String()
}

// renderFooter renders the page indicator and help footer.
func (v *View) renderFooter() string {
	var b strings.Builder

	if v.book != nil {
		position := fmt.Sprintf("Page %d of %d  (%d%%)", v.page+1, v.book.PageCount, v.book.Progress)
		if v.statusNote != "" {
			position += "  " + v.statusNote
		}
		b.WriteString(v.styles.Muted.Render(position))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("[←/→] turn page  [↑/↓] scroll  [b] bookmark  [c] chapters  [a] ask  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Book returns the open book.
func (v *View) Book() *domain.Book {
	return v.book
}

// Page returns the zero-based page being displayed.
func (v *View) Page() int {
	return v.page
}

// Lines returns the rendered page lines.
func (v *View) Lines() []highlight.Line {
	return v.lines
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
