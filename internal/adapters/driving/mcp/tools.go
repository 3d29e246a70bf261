package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/foliolabs/folio/internal/core/domain"
)

// SearchInput is the input schema for the search_library tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find pages"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_library tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	BookID    string   `json:"book_id"`
	Title     string   `json:"title"`
	Page      int      `json:"page"`
	Score     float64  `json:"score"`
	Fragments []string `json:"fragments,omitempty"`
}

// ReadPageInput is the input schema for the read_page tool.
type ReadPageInput struct {
	BookID string `json:"book_id" jsonschema:"the book identifier"`
	Page   int    `json:"page" jsonschema:"zero-based page index"`
}

// ReadPageOutput is the output schema for the read_page tool.
type ReadPageOutput struct {
	BookID    string `json:"book_id"`
	Title     string `json:"title"`
	Page      int    `json:"page"`
	PageCount int    `json:"page_count"`
	Text      string `json:"text"`
}

// ListBooksOutput is the output schema for the list_books tool.
type ListBooksOutput struct {
	Books []BookOutput `json:"books"`
	Count int          `json:"count"`
}

// BookOutput is one book entry.
type BookOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	FileType  string `json:"file_type"`
	PageCount int    `json:"page_count"`
	Progress  int    `json:"progress"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_library",
		Description: "Full-text search across every page of every book in the library",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_page",
		Description: "Read one page of a book by ID and page index",
	}, s.handleReadPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_books",
		Description: "List all books in the library",
	}, s.handleListBooks)
}

// handleSearch handles the search_library tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if s.ports.Search == nil {
		return nil, SearchOutput{}, errors.New("search is not configured")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	results, err := s.ports.Search.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			BookID:    results[i].BookID,
			Title:     results[i].Title,
			Page:      results[i].Page,
			Score:     results[i].Score,
			Fragments: results[i].Fragments,
		}
	}

	return nil, output, nil
}

// handleReadPage handles the read_page tool invocation.
func (s *Server) handleReadPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadPageInput,
) (*mcp.CallToolResult, ReadPageOutput, error) {
	book, err := s.ports.Library.Get(ctx, input.BookID)
	if err != nil {
		return nil, ReadPageOutput{}, err
	}

	text, err := s.ports.Library.Page(ctx, input.BookID, input.Page)
	if err != nil {
		return nil, ReadPageOutput{}, err
	}

	return nil, ReadPageOutput{
		BookID:    book.ID,
		Title:     book.Title,
		Page:      input.Page,
		PageCount: book.PageCount,
		Text:      text,
	}, nil
}

// handleListBooks handles the list_books tool invocation.
func (s *Server) handleListBooks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListBooksOutput, error) {
	books, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, ListBooksOutput{}, err
	}

	output := ListBooksOutput{
		Books: make([]BookOutput, len(books)),
		Count: len(books),
	}
	for i := range books {
		output.Books[i] = toBookOutput(&books[i])
	}
	return nil, output, nil
}

func toBookOutput(book *domain.Book) BookOutput {
	return BookOutput{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		FileType:  string(book.FileType),
		PageCount: book.PageCount,
		Progress:  book.Progress,
	}
}
