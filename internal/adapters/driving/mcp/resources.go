package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// URIScheme is the custom URI scheme for Folio resources.
	uriScheme = "folio://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing books.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "books",
		Name:        "books",
		Description: "List of all books in the library",
		MIMEType:    "application/json",
	}, s.handleBooksResource)

	// Template for page content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "books/{bookId}/pages/{page}",
		Name:        "book-page",
		Description: "Plain text of one page of a book",
		MIMEType:    "text/plain",
	}, s.handlePageResource)

	// Template for a book's highlights.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "books/{bookId}/highlights",
		Name:        "book-highlights",
		Description: "Annotations of a specific book",
		MIMEType:    "application/json",
	}, s.handleHighlightsResource)
}

// handleBooksResource returns a list of all books in the library.
func (s *Server) handleBooksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	books, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}

	infos := make([]BookOutput, len(books))
	for i := range books {
		infos[i] = toBookOutput(&books[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling books: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePageResource returns the plain text of one page.
func (s *Server) handlePageResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract from URI: folio://books/{bookId}/pages/{page}
	bookID, page, ok := extractPageRef(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	text, err := s.ports.Library.Page(ctx, bookID, page)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}, nil
}

// handleHighlightsResource returns a book's highlights.
func (s *Server) handleHighlightsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract bookId from URI: folio://books/{bookId}/highlights
	bookID := extractHighlightsBookID(req.Params.URI)
	if bookID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if s.ports.Highlights == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	highlights, err := s.ports.Highlights.List(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("listing highlights: %w", err)
	}

	type highlightInfo struct {
		ID    string `json:"id"`
		Page  int    `json:"page"`
		Text  string `json:"text"`
		Color string `json:"color"`
		Note  string `json:"note,omitempty"`
	}

	infos := make([]highlightInfo, len(highlights))
	for i := range highlights {
		infos[i] = highlightInfo{
			ID:    highlights[i].ID,
			Page:  highlights[i].Page,
			Text:  highlights[i].Text,
			Color: string(highlights[i].Color),
			Note:  highlights[i].Note,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling highlights: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPageRef parses a URI like folio://books/{bookId}/pages/{page}.
func extractPageRef(uri string) (bookID string, page int, ok bool) {
	const prefix = uriScheme + "books/"

	if !strings.HasPrefix(uri, prefix) {
		return "", 0, false
	}

	rest := strings.TrimPrefix(uri, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] != "pages" || parts[0] == "" {
		return "", 0, false
	}

	page, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, false
	}

	return parts[0], page, true
}

// extractHighlightsBookID parses a URI like folio://books/{bookId}/highlights.
func extractHighlightsBookID(uri string) string {
	const prefix = uriScheme + "books/"
	const suffix = "/highlights"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	id := strings.TrimSuffix(uri, suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
