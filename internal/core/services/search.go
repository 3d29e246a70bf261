package services

import (
	"context"
	"strings"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
	"github.com/foliolabs/folio/internal/core/ports/driving"
	"github.com/foliolabs/folio/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*searchService)(nil)

// searchService provides full-text search across the library.
type searchService struct {
	index driven.SearchIndex // optional, may be nil
}

// NewSearchService creates a new search service. The index may be nil,
// in which case Search fails with domain.ErrSearchUnavailable.
func NewSearchService(index driven.SearchIndex) driving.SearchService {
	return &searchService{index: index}
}

// Search returns the best-matching pages for a query.
func (s *searchService) Search(ctx context.Context, query string, limit int) ([]driving.SearchResult, error) {
	if s.index == nil {
		return nil, domain.ErrSearchUnavailable
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []driving.SearchResult{}, nil
	}

	logger.Debug("Search query: %q (limit %d)", query, limit)

	hits, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]driving.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, driving.SearchResult{
			BookID:    hit.BookID,
			Title:     hit.Title,
			Page:      hit.Page,
			Score:     hit.Score,
			Fragments: hit.Fragments,
		})
	}
	return results, nil
}
