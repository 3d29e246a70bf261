package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/internal/adapters/driven/storage/memory"
	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
	"github.com/foliolabs/folio/internal/core/ports/driving"
	"github.com/foliolabs/folio/internal/normalisers"
	"github.com/foliolabs/folio/internal/normalisers/plaintext"
)

// fakeIndex records index calls for assertions.
type fakeIndex struct {
	mu      sync.Mutex
	indexed map[string][]string
	deleted []string
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: make(map[string][]string)}
}

func (f *fakeIndex) IndexBook(_ context.Context, bookID, _ string, pages []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed[bookID] = pages
	return nil
}

func (f *fakeIndex) Search(context.Context, string, int) ([]driven.PageHit, error) {
	return nil, nil
}

func (f *fakeIndex) DeleteBook(_ context.Context, bookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, bookID)
	return nil
}

func (f *fakeIndex) Close() error { return nil }

type libraryFixture struct {
	svc        driving.LibraryService
	books      *memory.BookStore
	highlights *memory.HighlightStore
	chats      *memory.ChatStore
	blobs      *memory.BlobStore
	index      *fakeIndex
}

func newLibraryFixture(t *testing.T) *libraryFixture {
	t.Helper()

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New(0))

	f := &libraryFixture{
		books:      memory.NewBookStore(),
		highlights: memory.NewHighlightStore(),
		chats:      memory.NewChatStore(),
		blobs:      memory.NewBlobStore(),
		index:      newFakeIndex(),
	}
	f.svc = NewLibraryService(registry, f.books, f.highlights, f.chats, f.blobs, f.index, nil, 0)
	return f
}

const sampleText = "Chapter 1: The Beginning\n\nIt was a dark and stormy night.\n\nChapter 2: The Middle\n\nThings happened."

func TestLibraryService_Import(t *testing.T) {
	f := newLibraryFixture(t)
	ctx := context.Background()

	var statuses []string
	book, err := f.svc.Import(ctx, "story.txt", []byte(sampleText), func(s string) {
		statuses = append(statuses, s)
	})

	require.NoError(t, err)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, domain.FileTypeTXT, book.FileType)
	assert.Equal(t, int64(len(sampleText)), book.FileSize)
	assert.GreaterOrEqual(t, book.PageCount, 1)
	assert.Len(t, book.Chapters, 2)
	assert.Equal(t, 0, book.CurrentPage)
	assert.NotEmpty(t, book.Color)
	assert.False(t, book.UploadedAt.IsZero())
	assert.NotEmpty(t, statuses)

	// Persisted.
	stored, err := f.books.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Title, stored.Title)

	// Indexed.
	assert.NotEmpty(t, f.index.indexed[book.ID])
}

func TestLibraryService_Import_UnsupportedExtension(t *testing.T) {
	f := newLibraryFixture(t)

	_, err := f.svc.Import(context.Background(), "photo.jpg", []byte("data"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	// Nothing persisted.
	books, err := f.books.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestLibraryService_ImportFile(t *testing.T) {
	f := newLibraryFixture(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleText), 0644))

	book, err := f.svc.ImportFile(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", book.FileName)
}

func TestLibraryService_Page(t *testing.T) {
	f := newLibraryFixture(t)
	ctx := context.Background()

	book, err := f.svc.Import(ctx, "story.txt", []byte(sampleText), nil)
	require.NoError(t, err)

	text, err := f.svc.Page(ctx, book.ID, 0)
	require.NoError(t, err)
	assert.Contains(t, text, "Chapter 1")

	_, err = f.svc.Page(ctx, book.ID, book.PageCount)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)

	_, err = f.svc.Page(ctx, book.ID, -1)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)

	_, err = f.svc.Page(ctx, "missing", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibraryService_GoToPage_ClampsAndTracks(t *testing.T) {
	f := newLibraryFixture(t)
	ctx := context.Background()

	// Force multiple pages with a tiny page size. The normaliser and
	// the service must share it.
	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New(40))
	svc := NewLibraryService(registry, f.books, f.highlights, f.chats, f.blobs, nil, nil, 40)

	book, err := svc.Import(ctx, "story.txt", []byte(sampleText), nil)
	require.NoError(t, err)
	require.Greater(t, book.PageCount, 1)

	// Beyond the end clamps to the last page.
	updated, err := svc.GoToPage(ctx, book.ID, 999)
	require.NoError(t, err)
	assert.Equal(t, book.PageCount-1, updated.CurrentPage)
	assert.Equal(t, 100, updated.Progress)
	assert.False(t, updated.LastReadAt.IsZero())

	// Negative clamps to the first.
	updated, err = svc.GoToPage(ctx, book.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentPage)
}

func TestLibraryService_CustomPageSize_EveryPageReachable(t *testing.T) {
	f := newLibraryFixture(t)
	ctx := context.Background()

	const pageSize = 100
	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New(pageSize))
	svc := NewLibraryService(registry, f.books, f.highlights, f.chats, f.blobs, nil, nil, pageSize)

	text := strings.Repeat("All work and no play makes Jack a dull boy.\n\n", 50)
	book, err := svc.Import(ctx, "shining.txt", []byte(text), nil)
	require.NoError(t, err)
	require.Greater(t, book.PageCount, 1)

	// The stored page count matches the pages actually served: every
	// page is readable and together they hold the full text.
	var pages []string
	for p := 0; p < book.PageCount; p++ {
		page, err := svc.Page(ctx, book.ID, p)
		require.NoError(t, err, "page %d", p)
		require.NotEmpty(t, strings.TrimSpace(page))
		pages = append(pages, page)
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(pages, " ")))

	_, err = svc.Page(ctx, book.ID, book.PageCount)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestLibraryService_ToggleBookmark(t *testing.T) {
	f := newLibraryFixture(t)
	ctx := context.Background()

	book, err := f.svc.Import(ctx, "story.txt", []byte(sampleText), nil)
	require.NoError(t, err)

	marked, err := f.svc.ToggleBookmark(ctx, book.ID, 0)
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = f.svc.ToggleBookmark(ctx, book.ID, 0)
	require.NoError(t, err)
	assert.False(t, marked)

	_, err = f.svc.ToggleBookmark(ctx, book.ID, book.PageCount)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestLibraryService_SetColor(t *testing.T) {
	f := newLibraryFixture(t)
	ctx := context.Background()

	book, err := f.svc.Import(ctx, "story.txt", []byte(sampleText), nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.SetColor(ctx, book.ID, "teal"))

	stored, err := f.books.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "teal", stored.Color)

	assert.ErrorIs(t, f.svc.SetColor(ctx, book.ID, "  "), domain.ErrInvalidInput)
}

func TestLibraryService_Delete_Cascades(t *testing.T) {
	f := newLibraryFixture(t)
	ctx := context.Background()

	book, err := f.svc.Import(ctx, "story.txt", []byte(sampleText), nil)
	require.NoError(t, err)

	require.NoError(t, f.highlights.SaveHighlight(ctx, &domain.Highlight{
		ID: "h1", BookID: book.ID, Text: "night", Color: domain.ColorYellow,
	}))
	require.NoError(t, f.chats.AppendMessage(ctx, &domain.ChatMessage{
		ID: "m1", BookID: book.ID, Role: domain.RoleUser, Content: "hi",
	}))

	require.NoError(t, f.svc.Delete(ctx, book.ID))

	_, err = f.books.GetBook(ctx, book.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	hs, err := f.highlights.ListHighlights(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, hs)

	msgs, err := f.chats.ListMessages(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	assert.Contains(t, f.index.deleted, book.ID)

	assert.ErrorIs(t, f.svc.Delete(ctx, book.ID), domain.ErrNotFound)
}

func TestLibraryService_Payload_MissingIsNotFound(t *testing.T) {
	f := newLibraryFixture(t)
	ctx := context.Background()

	book, err := f.svc.Import(ctx, "story.txt", []byte(sampleText), nil)
	require.NoError(t, err)

	_, err = f.svc.Payload(ctx, book.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// limitedBookStore rejects saves whose content exceeds a size limit,
// standing in for a metadata store with row-size restrictions.
type limitedBookStore struct {
	*memory.BookStore
	limit int
}

func (s *limitedBookStore) SaveBook(ctx context.Context, book *domain.Book) error {
	if len(book.Content) > s.limit {
		return assert.AnError
	}
	return s.BookStore.SaveBook(ctx, book)
}

func TestLibraryService_Import_DegradedSave(t *testing.T) {
	ctx := context.Background()

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New(0))

	books := &limitedBookStore{BookStore: memory.NewBookStore(), limit: maxStoredContent}
	svc := NewLibraryService(registry, books, memory.NewHighlightStore(), memory.NewChatStore(), memory.NewBlobStore(), nil, nil, 0)

	big := strings.Repeat("All work and no play makes Jack a dull boy.\n\n", 5000)
	require.Greater(t, len(big), maxStoredContent)

	book, err := svc.Import(ctx, "big.txt", []byte(big), nil)
	require.NoError(t, err)

	stored, err := books.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(stored.Content), maxStoredContent)
	assert.False(t, stored.HasPayload)
	// Page count reflects the full text even though content was cut.
	assert.Equal(t, book.PageCount, stored.PageCount)
}

// binaryNormaliser stands in for a format that keeps its raw bytes as
// a blob payload, like PDF.
type binaryNormaliser struct{}

func (binaryNormaliser) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeTXT}
}

func (binaryNormaliser) Normalise(_ context.Context, raw *domain.RawFile, _ driven.ProgressFunc) (*driven.NormaliseResult, error) {
	text := strings.Repeat(string(raw.Content), 5000)
	return &driven.NormaliseResult{
		Title:     "Binary Book",
		PlainText: text,
		Binary:    raw.Content,
		PageCount: 1,
	}, nil
}

func TestLibraryService_Import_DegradedSave_RemovesPayload(t *testing.T) {
	ctx := context.Background()

	registry := normalisers.NewRegistry()
	registry.Register(binaryNormaliser{})

	books := &limitedBookStore{BookStore: memory.NewBookStore(), limit: maxStoredContent}
	blobs := memory.NewBlobStore()
	svc := NewLibraryService(registry, books, memory.NewHighlightStore(), memory.NewChatStore(), blobs, nil, nil, 0)

	book, err := svc.Import(ctx, "big.txt", []byte("All work and no play.\n\n"), nil)
	require.NoError(t, err)

	// The degraded save dropped the payload reference, so the blob
	// itself must be gone as well.
	assert.False(t, book.HasPayload)
	_, err = blobs.Get(ctx, book.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "", truncate("", 5))
}

func TestPickColor_Stable(t *testing.T) {
	a := pickColor("Moby Dick")
	b := pickColor("Moby Dick")
	assert.Equal(t, a, b)
	assert.True(t, strings.TrimSpace(a) != "")
}
