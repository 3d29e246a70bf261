// Package library provides the book list view component for the TUI.
package library

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foliolabs/folio/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio/internal/adapters/driving/tui/styles"
	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driving"
)

// ActionOption represents a book action.
type ActionOption int

const (
	ActionRead ActionOption = iota
	ActionChapters
	ActionChat
	ActionDelete
	ActionCancel
)

// View is the book list view.
type View struct {
	styles         *styles.Styles
	libraryService driving.LibraryService

	books        []domain.Book
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	showingMenu  bool
	menuSelected ActionOption
	scrollOffset int
}

// NewView creates a new library view.
func NewView(s *styles.Styles, libraryService driving.LibraryService) *View {
	return &View{
		styles:         s,
		libraryService: libraryService,
		books:          []domain.Book{},
	}
}

// Init initialises the view and triggers the first load.
func (v *View) Init() tea.Cmd {
	return v.loadBooks()
}

// loadBooks returns a command that loads the library contents.
func (v *View) loadBooks() tea.Cmd {
	return func() tea.Msg {
		if v.libraryService == nil {
			return messages.BooksLoaded{Err: fmt.Errorf("library service not available")}
		}

		v.loading = true
		books, err := v.libraryService.List(context.Background())
		return messages.BooksLoaded{Books: books, Err: err}
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		if v.showingMenu {
			return v.handleMenuKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.BooksLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.books = msg.Books
			v.err = nil
			if v.selected >= len(v.books) {
				v.selected = 0
				v.scrollOffset = 0
			}
		}
		return v, nil

	case messages.BookDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		// Reload after deletion
		return v, v.loadBooks()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.books)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if len(v.books) > 0 {
			v.showingMenu = true
			v.menuSelected = ActionRead
		}
	case "/":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	case "r":
		v.loading = true
		return v, v.loadBooks()
	case "q":
		return v, tea.Quit
	}

	return v, nil
}

// handleMenuKeyMsg handles key presses in action menu mode.
func (v *View) handleMenuKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.menuSelected > ActionRead {
			v.menuSelected--
		}
	case "down", "j":
		if v.menuSelected < ActionCancel {
			v.menuSelected++
		}
	case "enter":
		return v.handleMenuSelect()
	case "esc":
		v.showingMenu = false
	}

	return v, nil
}

// handleMenuSelect handles selection of an action.
func (v *View) handleMenuSelect() (*View, tea.Cmd) {
	if v.selected >= len(v.books) {
		v.showingMenu = false
		return v, nil
	}

	book := v.books[v.selected]
	v.showingMenu = false

	switch v.menuSelected {
	case ActionRead:
		return v, func() tea.Msg {
			return messages.BookSelected{Book: book}
		}
	case ActionChapters:
		return v, tea.Batch(
			func() tea.Msg { return messages.BookSelected{Book: book} },
			func() tea.Msg { return messages.ViewChanged{View: messages.ViewChapters} },
		)
	case ActionChat:
		return v, tea.Batch(
			func() tea.Msg { return messages.BookSelected{Book: book} },
			func() tea.Msg { return messages.ViewChanged{View: messages.ViewChat} },
		)
	case ActionDelete:
		return v, v.deleteBook(book.ID)
	case ActionCancel:
	}

	return v, nil
}

// deleteBook returns a command that deletes the book and its annotations.
func (v *View) deleteBook(id string) tea.Cmd {
	return func() tea.Msg {
		if v.libraryService == nil {
			return messages.BookDeleted{ID: id, Err: fmt.Errorf("library service not available")}
		}

		err := v.libraryService.Delete(context.Background(), id)
		return messages.BookDeleted{ID: id, Err: err}
	}
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the library view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Library (%d)", len(v.books))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading library..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.books) == 0 {
		b.WriteString(v.styles.Muted.Render("No books yet. Import one with: folio import <file>"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.showingMenu {
		b.WriteString(v.renderActionMenu())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.books) && i < v.scrollOffset+visibleItems; i++ {
		line := v.renderBook(i, &v.books[i])
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(v.books) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.books)),
			len(v.books))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderBook renders a single book line.
func (v *View) renderBook(index int, book *domain.Book) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	title := book.Title
	if title == "" {
		title = book.FileName
	}

	maxTitleLen := v.width/2 - 4
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	meta := fmt.Sprintf("%s  %d pages  %d%%", book.FileType, book.PageCount, book.Progress)
	if book.Author != "" {
		meta = book.Author + "  " + meta
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, meta))
	}

	return v.styles.Normal.Render(indicator) +
		v.styles.Normal.Render(fmt.Sprintf("%-*s  ", maxTitleLen, title)) +
		v.styles.Muted.Render(meta)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	var b strings.Builder

	if v.selected < len(v.books) {
		book := v.books[v.selected]
		title := book.Title
		if title == "" {
			title = book.FileName
		}
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Actions for: %s", title)))
		b.WriteString("\n\n")
	}

	options := []struct {
		action ActionOption
		label  string
	}{
		{ActionRead, "Read"},
		{ActionChapters, "Chapters"},
		{ActionChat, "Ask the Assistant"},
		{ActionDelete, "Delete"},
		{ActionCancel, "Cancel"},
	}

	for _, opt := range options {
		indicator := "  "
		if v.menuSelected == opt.action {
			indicator = "> "
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("%s%s", indicator, opt.label)))
		} else {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s%s", indicator, opt.label)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [/] search  [r] reload  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Books returns the current list of books.
func (v *View) Books() []domain.Book {
	return v.books
}

// SelectedIndex returns the currently selected book index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedBook returns the currently selected book.
func (v *View) SelectedBook() *domain.Book {
	if v.selected < len(v.books) {
		return &v.books[v.selected]
	}
	return nil
}

// IsShowingMenu returns true if the action menu is visible.
func (v *View) IsShowingMenu() bool {
	return v.showingMenu
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
