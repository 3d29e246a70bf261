package mcp

import (
	"context"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driving"
	"github.com/foliolabs/folio/internal/highlight"
)

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	books   []domain.Book
	book    *domain.Book
	page    string
	payload []byte
	err     error
}

func (m *mockLibraryService) Import(_ context.Context, _ string, _ []byte, _ func(string)) (*domain.Book, error) {
	return m.book, m.err
}

func (m *mockLibraryService) ImportFile(_ context.Context, _ string, _ func(string)) (*domain.Book, error) {
	return m.book, m.err
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.Book, error) {
	return m.books, m.err
}

func (m *mockLibraryService) Get(_ context.Context, _ string) (*domain.Book, error) {
	return m.book, m.err
}

func (m *mockLibraryService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockLibraryService) Page(_ context.Context, _ string, _ int) (string, error) {
	return m.page, m.err
}

func (m *mockLibraryService) GoToPage(_ context.Context, _ string, _ int) (*domain.Book, error) {
	return m.book, m.err
}

func (m *mockLibraryService) ToggleBookmark(_ context.Context, _ string, _ int) (bool, error) {
	return false, m.err
}

func (m *mockLibraryService) SetColor(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockLibraryService) Payload(_ context.Context, _ string) ([]byte, error) {
	return m.payload, m.err
}

// mockHighlightService is a mock implementation of driving.HighlightService.
type mockHighlightService struct {
	highlights []domain.Highlight
	created    *domain.Highlight
	lines      []highlight.Line
	export     string
	err        error
}

func (m *mockHighlightService) Create(_ context.Context, _ string, _ int, _ string, _ domain.HighlightColor, _ string) (*domain.Highlight, error) {
	return m.created, m.err
}

func (m *mockHighlightService) List(_ context.Context, _ string) ([]domain.Highlight, error) {
	return m.highlights, m.err
}

func (m *mockHighlightService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockHighlightService) RenderPage(_ context.Context, _ string, _ int) ([]highlight.Line, error) {
	return m.lines, m.err
}

func (m *mockHighlightService) Export(_ context.Context, _ string) (string, error) {
	return m.export, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []driving.SearchResult
	err     error
}

func (m *mockSearchService) Search(_ context.Context, _ string, _ int) ([]driving.SearchResult, error) {
	return m.results, m.err
}
