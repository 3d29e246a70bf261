package domain

import "time"

// FileType identifies the source format of an ingested file.
type FileType string

const (
	// FileTypePDF is a PDF file rendered from its native pages.
	FileTypePDF FileType = "pdf"

	// FileTypeDOCX is a Word document converted to HTML.
	FileTypeDOCX FileType = "docx"

	// FileTypeTXT is a plain text file.
	FileTypeTXT FileType = "txt"
)

// ParseFileType maps a file extension (without the dot, any case)
// to a FileType. Returns ErrUnsupportedFileType for anything else.
func ParseFileType(ext string) (FileType, error) {
	switch {
	case equalFold(ext, "pdf"):
		return FileTypePDF, nil
	case equalFold(ext, "docx"):
		return FileTypeDOCX, nil
	case equalFold(ext, "txt"):
		return FileTypeTXT, nil
	default:
		return "", ErrUnsupportedFileType
	}
}

// equalFold is an ASCII-only case-insensitive compare.
// Extensions are ASCII; avoids importing strings into domain for one call.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Chapter is a detected heading and the page index it starts on.
// Start indices are non-decreasing in detection order and may collide
// when several headings land on the same page.
type Chapter struct {
	// Title is the heading text, truncated to 80 characters at detection.
	Title string

	// StartPage is the zero-based page index the chapter begins on.
	// For reflowed formats this is an approximation derived from
	// character offsets; for PDF it is the physical page number.
	StartPage int
}

// Book represents an ingested document and its reading state.
type Book struct {
	// ID is the unique identifier for the book.
	ID string

	// Title is the human-readable title.
	Title string

	// Author is the document author, when the format carries one.
	Author string

	// FileName is the original upload file name.
	FileName string

	// FileType is the source format.
	FileType FileType

	// FileSize is the original file size in bytes.
	FileSize int64

	// Content is the full plain text after normalisation. For PDF it
	// contains literal "--- Page N ---" marker lines between pages.
	Content string

	// HTMLContent is the converted HTML for DOCX books, empty otherwise.
	HTMLContent string

	// HasPayload reports whether the blob store holds a binary payload
	// (the original PDF bytes) under this book's ID.
	HasPayload bool

	// PageCount is the derived number of pages. Always >= 1.
	PageCount int

	// Chapters are the detected chapters in document order.
	Chapters []Chapter

	// CurrentPage is the zero-based reading position,
	// always within [0, PageCount-1].
	CurrentPage int

	// Progress is the reading progress percentage (0-100),
	// derived from CurrentPage.
	Progress int

	// Bookmarks holds bookmarked page indices in ascending order.
	Bookmarks []int

	// Color is the display color used for the book's library card.
	Color string

	// UploadedAt is when the book was ingested.
	UploadedAt time.Time

	// LastReadAt is when a page was last viewed.
	LastReadAt time.Time
}

// ClampPage forces a page index into the book's valid range.
func (b *Book) ClampPage(page int) int {
	if page < 0 {
		return 0
	}
	if page >= b.PageCount {
		return b.PageCount - 1
	}
	return page
}

// SetCurrentPage moves the reading position and recomputes progress.
// The position is clamped so CurrentPage stays within [0, PageCount-1].
func (b *Book) SetCurrentPage(page int) {
	b.CurrentPage = b.ClampPage(page)
	if b.PageCount > 0 {
		b.Progress = (b.CurrentPage + 1) * 100 / b.PageCount
	}
}

// ToggleBookmark adds the page to the bookmark set, or removes it if
// already present. Returns true if the page is bookmarked afterwards.
func (b *Book) ToggleBookmark(page int) bool {
	for i, p := range b.Bookmarks {
		if p == page {
			b.Bookmarks = append(b.Bookmarks[:i], b.Bookmarks[i+1:]...)
			return false
		}
	}
	// Insert keeping ascending order.
	pos := len(b.Bookmarks)
	for i, p := range b.Bookmarks {
		if p > page {
			pos = i
			break
		}
	}
	b.Bookmarks = append(b.Bookmarks, 0)
	copy(b.Bookmarks[pos+1:], b.Bookmarks[pos:])
	b.Bookmarks[pos] = page
	return true
}

// IsBookmarked reports whether the page index is bookmarked.
func (b *Book) IsBookmarked(page int) bool {
	for _, p := range b.Bookmarks {
		if p == page {
			return true
		}
	}
	return false
}
