package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/internal/core/domain"
)

func TestExtractPageRef(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		bookID string
		page   int
		ok     bool
	}{
		{
			name:   "valid page URI",
			uri:    "folio://books/book-123/pages/4",
			bookID: "book-123",
			page:   4,
			ok:     true,
		},
		{
			name: "invalid prefix",
			uri:  "file://books/book-123/pages/4",
		},
		{
			name: "non-numeric page",
			uri:  "folio://books/book-123/pages/four",
		},
		{
			name: "missing pages segment",
			uri:  "folio://books/book-123/highlights",
		},
		{
			name: "empty URI",
			uri:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookID, page, ok := extractPageRef(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.bookID, bookID)
			assert.Equal(t, tt.page, page)
		})
	}
}

func TestExtractHighlightsBookID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid highlights URI",
			uri:      "folio://books/book-123/highlights",
			expected: "book-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://books/book-123/highlights",
			expected: "",
		},
		{
			name:     "missing highlights suffix",
			uri:      "folio://books/book-123",
			expected: "",
		},
		{
			name:     "extra path segments",
			uri:      "folio://books/book-123/pages/2/highlights",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractHighlightsBookID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleBooksResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns books successfully", func(t *testing.T) {
		mockLibrary := &mockLibraryService{
			books: []domain.Book{
				{ID: "book-1", Title: "Moby Dick", FileType: domain.FileTypeTXT},
				{ID: "book-2", Title: "Walden", FileType: domain.FileTypePDF},
			},
		}

		ports := &Ports{Library: mockLibrary}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("folio://books")
		result, err := server.handleBooksResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "book-1")
		assert.Contains(t, result.Contents[0].Text, "Moby Dick")
		assert.Contains(t, result.Contents[0].Text, "Walden")
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		mockLibrary := &mockLibraryService{err: errors.New("database error")}

		ports := &Ports{Library: mockLibrary}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("folio://books")
		_, err = server.handleBooksResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing books")
	})
}

func TestServer_handlePageResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns page text", func(t *testing.T) {
		mockLibrary := &mockLibraryService{page: "Call me Ishmael."}

		ports := &Ports{Library: mockLibrary}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("folio://books/book-1/pages/0")
		result, err := server.handlePageResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "Call me Ishmael.", result.Contents[0].Text)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		ports := &Ports{Library: &mockLibraryService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("folio://invalid/uri")
		_, err = server.handlePageResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("returns error on page failure", func(t *testing.T) {
		mockLibrary := &mockLibraryService{err: domain.ErrPageOutOfRange}

		ports := &Ports{Library: mockLibrary}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("folio://books/book-1/pages/99")
		_, err = server.handlePageResource(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
	})
}

func TestServer_handleHighlightsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil highlight service returns empty list", func(t *testing.T) {
		ports := &Ports{Library: &mockLibraryService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("folio://books/book-1/highlights")
		result, err := server.handleHighlightsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns highlights successfully", func(t *testing.T) {
		mockHighlights := &mockHighlightService{
			highlights: []domain.Highlight{
				{ID: "hl-1", Page: 2, Text: "white whale", Color: domain.ColorYellow},
			},
		}

		ports := &Ports{Library: &mockLibraryService{}, Highlights: mockHighlights}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("folio://books/book-1/highlights")
		result, err := server.handleHighlightsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "hl-1")
		assert.Contains(t, result.Contents[0].Text, "white whale")
		assert.Contains(t, result.Contents[0].Text, "yellow")
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		ports := &Ports{Library: &mockLibraryService{}, Highlights: &mockHighlightService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("folio://books/book-1")
		_, err = server.handleHighlightsResource(ctx, req)

		require.Error(t, err)
	})
}
