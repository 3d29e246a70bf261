package web

import (
	"time"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/highlight"
)

// bookDTO is the wire form of a book. Content is never included;
// pages are fetched individually.
type bookDTO struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Author      string       `json:"author,omitempty"`
	FileName    string       `json:"file_name"`
	FileType    string       `json:"file_type"`
	FileSize    int64        `json:"file_size"`
	HasPayload  bool         `json:"has_payload"`
	PageCount   int          `json:"page_count"`
	Chapters    []chapterDTO `json:"chapters"`
	CurrentPage int          `json:"current_page"`
	Progress    int          `json:"progress"`
	Bookmarks   []int        `json:"bookmarks"`
	Color       string       `json:"color"`
	UploadedAt  time.Time    `json:"uploaded_at"`
	LastReadAt  *time.Time   `json:"last_read_at,omitempty"`
}

type chapterDTO struct {
	Title     string `json:"title"`
	StartPage int    `json:"start_page"`
}

func toBookDTO(b *domain.Book) bookDTO {
	dto := bookDTO{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		FileName:    b.FileName,
		FileType:    string(b.FileType),
		FileSize:    b.FileSize,
		HasPayload:  b.HasPayload,
		PageCount:   b.PageCount,
		Chapters:    make([]chapterDTO, 0, len(b.Chapters)),
		CurrentPage: b.CurrentPage,
		Progress:    b.Progress,
		Bookmarks:   b.Bookmarks,
		Color:       b.Color,
		UploadedAt:  b.UploadedAt,
	}
	if dto.Bookmarks == nil {
		dto.Bookmarks = []int{}
	}
	for _, ch := range b.Chapters {
		dto.Chapters = append(dto.Chapters, chapterDTO{Title: ch.Title, StartPage: ch.StartPage})
	}
	if !b.LastReadAt.IsZero() {
		t := b.LastReadAt
		dto.LastReadAt = &t
	}
	return dto
}

// pageDTO carries one page's raw text plus its highlight segmentation,
// ready for span-wrapped rendering in the browser.
type pageDTO struct {
	Page  int         `json:"page"`
	Text  string      `json:"text"`
	Lines [][]segment `json:"lines"`
}

type segment struct {
	Text        string `json:"text"`
	HighlightID string `json:"highlight_id,omitempty"`
	Color       string `json:"color,omitempty"`
}

func toPageDTO(page int, text string, lines []highlight.Line) pageDTO {
	dto := pageDTO{Page: page, Text: text, Lines: make([][]segment, 0, len(lines))}
	for _, line := range lines {
		segs := make([]segment, 0, len(line))
		for _, s := range line {
			segs = append(segs, segment{
				Text:        s.Text,
				HighlightID: s.HighlightID,
				Color:       string(s.Color),
			})
		}
		dto.Lines = append(dto.Lines, segs)
	}
	return dto
}

type highlightDTO struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Text      string    `json:"text"`
	Color     string    `json:"color"`
	Note      string    `json:"note,omitempty"`
	Page      int       `json:"page"`
	CreatedAt time.Time `json:"created_at"`
}

func toHighlightDTO(h *domain.Highlight) highlightDTO {
	return highlightDTO{
		ID:        h.ID,
		BookID:    h.BookID,
		Text:      h.Text,
		Color:     string(h.Color),
		Note:      h.Note,
		Page:      h.Page,
		CreatedAt: h.CreatedAt,
	}
}

type chatMessageDTO struct {
	ID          string        `json:"id"`
	Role        string        `json:"role"`
	Content     string        `json:"content"`
	Citations   []citationDTO `json:"citations,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

type citationDTO struct {
	Source  string `json:"source"`
	Snippet string `json:"snippet,omitempty"`
}

func toChatMessageDTO(m *domain.ChatMessage) chatMessageDTO {
	dto := chatMessageDTO{
		ID:          m.ID,
		Role:        string(m.Role),
		Content:     m.Content,
		Suggestions: m.Suggestions,
		CreatedAt:   m.CreatedAt,
	}
	for _, c := range m.Citations {
		dto.Citations = append(dto.Citations, citationDTO{Source: c.Source, Snippet: c.Snippet})
	}
	return dto
}

type searchResultDTO struct {
	BookID    string   `json:"book_id"`
	Title     string   `json:"title"`
	Page      int      `json:"page"`
	Score     float64  `json:"score"`
	Fragments []string `json:"fragments,omitempty"`
}
