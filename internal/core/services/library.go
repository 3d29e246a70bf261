package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
	"github.com/foliolabs/folio/internal/core/ports/driving"
	"github.com/foliolabs/folio/internal/logger"
	"github.com/foliolabs/folio/internal/normalisers/pdf"
	"github.com/foliolabs/folio/internal/paginate"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*libraryService)(nil)

// maxStoredContent caps Content and HTMLContent on the degraded save
// path. A book whose full text cannot be written is retried once with
// truncated text and no binary payload; a second failure is logged and
// the book is kept in memory only.
const maxStoredContent = 100_000

// cardColors are the library card display colors, assigned round-robin
// style by title so re-imports keep their color.
var cardColors = []string{"indigo", "teal", "amber", "rose", "slate"}

// libraryService implements book ingestion, reading state, and deletion.
type libraryService struct {
	normalisers driven.NormaliserRegistry
	books       driven.BookStore
	highlights  driven.HighlightStore
	chats       driven.ChatStore
	blobs       driven.BlobStore
	index       driven.SearchIndex // optional, may be nil
	assistant   driven.Assistant   // optional, may be nil
	pageSize    int
}

// NewLibraryService creates a new library service. The index and
// assistant are optional; pass nil to disable search indexing and
// agent submissions. pageSize <= 0 selects the default.
func NewLibraryService(
	normalisers driven.NormaliserRegistry,
	books driven.BookStore,
	highlights driven.HighlightStore,
	chats driven.ChatStore,
	blobs driven.BlobStore,
	index driven.SearchIndex,
	assistant driven.Assistant,
	pageSize int,
) driving.LibraryService {
	if pageSize <= 0 {
		pageSize = paginate.DefaultPageSize
	}
	return &libraryService{
		normalisers: normalisers,
		books:       books,
		highlights:  highlights,
		chats:       chats,
		blobs:       blobs,
		index:       index,
		assistant:   assistant,
		pageSize:    pageSize,
	}
}

// Import ingests uploaded bytes under their original file name.
func (s *libraryService) Import(ctx context.Context, fileName string, content []byte, report func(status string)) (*domain.Book, error) {
	logger.Section("Import")
	logger.Debug("File: %s (%d bytes)", fileName, len(content))

	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	fileType, err := domain.ParseFileType(ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	raw := &domain.RawFile{
		FileName: fileName,
		FileType: fileType,
		Content:  content,
	}

	result, err := s.normalisers.Normalise(ctx, raw, report)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", fileName, err)
	}

	now := time.Now()
	book := &domain.Book{
		ID:          uuid.New().String(),
		Title:       result.Title,
		Author:      result.Author,
		FileName:    fileName,
		FileType:    fileType,
		FileSize:    int64(len(content)),
		Content:     result.PlainText,
		HTMLContent: result.HTML,
		PageCount:   result.PageCount,
		Chapters:    result.Chapters,
		Color:       pickColor(result.Title),
		UploadedAt:  now,
	}
	book.SetCurrentPage(0)

	if len(result.Binary) > 0 && s.blobs != nil {
		if err := s.blobs.Put(ctx, book.ID, result.Binary); err != nil {
			logger.Warn("Blob store failed for %s: %v", book.ID, err)
		} else {
			book.HasPayload = true
		}
	}

	s.saveWithFallback(ctx, book)

	pages := s.pageTexts(book)
	s.submitToIndex(ctx, book, pages)
	s.submitToAssistant(book)

	logger.Info("Imported %q: %d pages, %d chapters", book.Title, book.PageCount, len(book.Chapters))
	return book, nil
}

// ImportFile ingests a file from disk under its base name.
func (s *libraryService) ImportFile(ctx context.Context, path string, report func(status string)) (*domain.Book, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Import(ctx, filepath.Base(path), content, report)
}

// saveWithFallback persists the book, degrading once on failure by
// truncating text content and dropping the payload reference. A second
// failure is swallowed: the caller still gets a usable in-memory book.
func (s *libraryService) saveWithFallback(ctx context.Context, book *domain.Book) {
	err := s.books.SaveBook(ctx, book)
	if err == nil {
		return
	}
	logger.Warn("Save failed for %q, retrying truncated: %v", book.Title, err)

	book.Content = truncate(book.Content, maxStoredContent)
	book.HTMLContent = truncate(book.HTMLContent, maxStoredContent)

	// The payload reference is dropped, so the stored blob must go too
	// or it leaks under an ID nothing points at.
	if book.HasPayload && s.blobs != nil {
		if err := s.blobs.Delete(ctx, book.ID); err != nil {
			logger.Warn("Blob cleanup failed for %s: %v", book.ID, err)
		}
	}
	book.HasPayload = false

	if err := s.books.SaveBook(ctx, book); err != nil {
		logger.Warn("Degraded save failed for %q, keeping in memory only: %v", book.Title, err)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// pickColor derives a stable display color from the title.
func pickColor(title string) string {
	var sum int
	for _, r := range title {
		sum += int(r)
	}
	if sum < 0 {
		sum = -sum
	}
	return cardColors[sum%len(cardColors)]
}

// submitToIndex indexes the book's pages. Failures are logged, never
// surfaced: search lags behind the library rather than blocking it.
func (s *libraryService) submitToIndex(ctx context.Context, book *domain.Book, pages []string) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexBook(ctx, book.ID, book.Title, pages); err != nil {
		logger.Warn("Index submission failed for %q: %v", book.Title, err)
	}
}

// submitToAssistant sends the book to the remote agent for indexing.
// Fire-and-forget: runs detached from the import request.
func (s *libraryService) submitToAssistant(book *domain.Book) {
	if s.assistant == nil {
		return
	}
	snapshot := *book
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := s.assistant.SubmitForIndexing(ctx, &snapshot); err != nil {
			logger.Warn("Agent submission failed for %q: %v", snapshot.Title, err)
		}
	}()
}

// List returns all books, most recently uploaded first.
func (s *libraryService) List(ctx context.Context) ([]domain.Book, error) {
	return s.books.ListBooks(ctx)
}

// Get retrieves a book by ID.
func (s *libraryService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.books.GetBook(ctx, id)
}

// Delete removes a book and everything attached to it.
func (s *libraryService) Delete(ctx context.Context, id string) error {
	book, err := s.books.GetBook(ctx, id)
	if err != nil {
		return err
	}

	if err := s.highlights.DeleteByBook(ctx, id); err != nil {
		return fmt.Errorf("delete highlights: %w", err)
	}
	if err := s.chats.DeleteByBook(ctx, id); err != nil {
		return fmt.Errorf("delete chat transcript: %w", err)
	}
	if s.blobs != nil {
		if err := s.blobs.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete payload: %w", err)
		}
	}
	if s.index != nil {
		if err := s.index.DeleteBook(ctx, id); err != nil {
			logger.Warn("Index cleanup failed for %q: %v", book.Title, err)
		}
	}

	return s.books.DeleteBook(ctx, id)
}

// Page returns the raw text of one page.
func (s *libraryService) Page(ctx context.Context, id string, page int) (string, error) {
	book, err := s.books.GetBook(ctx, id)
	if err != nil {
		return "", err
	}

	if page < 0 || page >= book.PageCount {
		return "", fmt.Errorf("page %d of %d: %w", page, book.PageCount, domain.ErrPageOutOfRange)
	}

	pages := s.pageTexts(book)
	if page >= len(pages) {
		// Stored page count can exceed recoverable pages after a
		// degraded save truncated the content.
		return "", fmt.Errorf("page %d content unavailable: %w", page, domain.ErrPageOutOfRange)
	}
	return pages[page], nil
}

// GoToPage moves the reading position, clamped to the valid range.
func (s *libraryService) GoToPage(ctx context.Context, id string, page int) (*domain.Book, error) {
	book, err := s.books.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	book.SetCurrentPage(page)
	book.LastReadAt = time.Now()

	if err := s.books.SaveBook(ctx, book); err != nil {
		return nil, fmt.Errorf("save reading position: %w", err)
	}
	return book, nil
}

// ToggleBookmark flips a page's bookmark and reports the new state.
func (s *libraryService) ToggleBookmark(ctx context.Context, id string, page int) (bool, error) {
	book, err := s.books.GetBook(ctx, id)
	if err != nil {
		return false, err
	}

	if page < 0 || page >= book.PageCount {
		return false, fmt.Errorf("page %d of %d: %w", page, book.PageCount, domain.ErrPageOutOfRange)
	}

	marked := book.ToggleBookmark(page)
	if err := s.books.SaveBook(ctx, book); err != nil {
		return false, fmt.Errorf("save bookmarks: %w", err)
	}
	return marked, nil
}

// SetColor changes the book's library display color.
func (s *libraryService) SetColor(ctx context.Context, id, color string) error {
	if strings.TrimSpace(color) == "" {
		return fmt.Errorf("color required: %w", domain.ErrInvalidInput)
	}

	book, err := s.books.GetBook(ctx, id)
	if err != nil {
		return err
	}

	book.Color = color
	return s.books.SaveBook(ctx, book)
}

// Payload returns the book's stored binary payload.
func (s *libraryService) Payload(ctx context.Context, id string) ([]byte, error) {
	book, err := s.books.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if !book.HasPayload || s.blobs == nil {
		return nil, fmt.Errorf("book %s has no payload: %w", id, domain.ErrNotFound)
	}
	return s.blobs.Get(ctx, id)
}

// pageTexts recovers the per-page text for a book. PDF pages are
// delimited by marker lines in the stored content; reflowed formats
// re-run the deterministic paginator.
func (s *libraryService) pageTexts(book *domain.Book) []string {
	if book.FileType == domain.FileTypePDF {
		return pdf.SplitJoined(book.Content)
	}
	return paginate.Split(book.Content, s.pageSize)
}
