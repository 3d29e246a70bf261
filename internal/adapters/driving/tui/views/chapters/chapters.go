// Package chapters provides the chapter navigation view component for the TUI.
package chapters

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliolabs/folio/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio/internal/core/domain"
)

// View is the chapter list view for the open book.
type View struct {
	styles *styles.Styles

	book         *domain.Book
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new chapters view.
func NewView(s *styles.Styles) *View {
	return &View{styles: s}
}

// SetBook sets the book whose chapters are listed. The selection moves
// to the chapter containing the current reading position.
func (v *View) SetBook(book domain.Book) {
	v.book = &book
	v.selected = 0
	v.scrollOffset = 0
	for i, ch := range book.Chapters {
		if ch.StartPage <= book.CurrentPage {
			v.selected = i
		}
	}
	v.adjustScroll()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the chapters view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.book != nil && v.selected < len(v.book.Chapters)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if v.book != nil && v.selected < len(v.book.Chapters) {
			page := v.book.Chapters[v.selected].StartPage
			return v, tea.Batch(
				func() tea.Msg { return messages.ViewChanged{View: messages.ViewReader} },
				func() tea.Msg { return messages.PageRequested{Page: page} },
			)
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewReader}
		}
	}

	return v, nil
}

// adjustScroll keeps the selected chapter visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of chapters that can be displayed.
func (v *View) visibleItemCount() int {
	reserved := 7
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the chapters view.
func (v *View) View() string {
	var b strings.Builder

	title := "Chapters"
	if v.book != nil {
		title = fmt.Sprintf("Chapters - %s", v.book.Title)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.book == nil || len(v.book.Chapters) == 0 {
		b.WriteString(v.styles.Muted.Render("No chapters detected in this book."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	chapters := v.book.Chapters
	for i := v.scrollOffset; i < len(chapters) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderChapter(i, chapters[i]))
		b.WriteString("\n")
	}

	if len(chapters) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(chapters)),
			len(chapters))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderChapter renders a single chapter line.
func (v *View) renderChapter(index int, ch domain.Chapter) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	title := ch.Title
	maxTitleLen := v.width - 16
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	page := fmt.Sprintf("p.%d", ch.StartPage+1)

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, page))
	}

	return v.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
		v.styles.Muted.Render(page)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] jump to chapter  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// SelectedIndex returns the currently selected chapter index.
func (v *View) SelectedIndex() int {
	return v.selected
}
