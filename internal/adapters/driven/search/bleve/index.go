// Package bleve provides the full-text SearchIndex adapter backed by a
// Bleve index on disk. Each library page is indexed as its own
// document so search results land on a page, not just a book.
package bleve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	// Registers the "ansi" highlighter used for terminal fragments.
	_ "github.com/blevesearch/bleve/v2/search/highlight/highlighter/ansi"

	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SearchIndex = (*Index)(nil)

// DefaultIndexName is the index directory under the data dir.
const DefaultIndexName = "search.bleve"

// pageDocument is one indexed page.
type pageDocument struct {
	BookID string
	Title  string
	Page   int
	Text   string
}

// Index wraps a Bleve search index.
type Index struct {
	index bleve.Index
}

// Open opens or creates the index at path. An empty path defaults to
// ~/.folio/data/search.bleve.
func Open(path string) (*Index, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, ".folio", "data", DefaultIndexName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	return &Index{index: idx}, nil
}

// OpenInMemory creates a transient index, used in tests.
func OpenInMemory() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Index{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = "en"

	// Keyword-ish fields stay unanalysed enough for exact field
	// queries; BookID must match exactly for deletes.
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = "keyword"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("BookID", idFieldMapping)
	docMapping.AddFieldMappingsAt("Title", textFieldMapping)
	docMapping.AddFieldMappingsAt("Text", textFieldMapping)
	docMapping.AddFieldMappingsAt("Page", bleve.NewNumericFieldMapping())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}

// docID builds the per-page document identifier.
func docID(bookID string, page int) string {
	return bookID + ":" + strconv.Itoa(page)
}

// IndexBook indexes a book's pages, replacing prior entries.
func (i *Index) IndexBook(ctx context.Context, bookID, title string, pages []string) error {
	if err := i.DeleteBook(ctx, bookID); err != nil {
		return err
	}

	batch := i.index.NewBatch()
	for n, text := range pages {
		if strings.TrimSpace(text) == "" {
			continue
		}
		doc := pageDocument{BookID: bookID, Title: title, Page: n, Text: text}
		if err := batch.Index(docID(bookID, n), doc); err != nil {
			return fmt.Errorf("batch page %d: %w", n, err)
		}
	}

	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Search returns the best-matching pages for a query. The query string
// supports quotes, boolean operators and fuzzy ~ suffixes.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]driven.PageHit, error) {
	if limit <= 0 {
		limit = 10
	}

	q := bleve.NewQueryStringQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Highlight = bleve.NewHighlightWithStyle("ansi")
	req.Highlight.AddField("Text")
	req.Fields = []string{"BookID", "Title", "Page"}

	results, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var hits []driven.PageHit
	for _, hit := range results.Hits {
		out := driven.PageHit{Score: hit.Score}
		if id, ok := hit.Fields["BookID"].(string); ok {
			out.BookID = id
		}
		if title, ok := hit.Fields["Title"].(string); ok {
			out.Title = title
		}
		if page, ok := hit.Fields["Page"].(float64); ok {
			out.Page = int(page)
		}
		out.Fragments = hit.Fragments["Text"]
		hits = append(hits, out)
	}
	return hits, nil
}

// DeleteBook removes all of a book's pages from the index.
func (i *Index) DeleteBook(ctx context.Context, bookID string) error {
	q := bleve.NewTermQuery(bookID)
	q.SetField("BookID")

	req := bleve.NewSearchRequestOptions(q, 1000, 0, false)
	for {
		results, err := i.index.SearchInContext(ctx, req)
		if err != nil {
			return fmt.Errorf("find pages: %w", err)
		}
		if len(results.Hits) == 0 {
			return nil
		}

		batch := i.index.NewBatch()
		for _, hit := range results.Hits {
			batch.Delete(hit.ID)
		}
		if err := i.index.Batch(batch); err != nil {
			return fmt.Errorf("delete pages: %w", err)
		}
	}
}

// Count returns the number of indexed pages.
func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}
