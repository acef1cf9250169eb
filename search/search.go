// Package search supplies live web results for questions about current events.
//
// [Service] bundles the current-information heuristic, a result [Backend]
// and the prompt block that hands the results to a completion model. The
// bundled backend scrapes the DuckDuckGo HTML endpoint and needs no key.
package search

import (
	"context"
	"errors"
	"time"
)

// DefaultLimit is the number of hits requested when the caller passes none.
const DefaultLimit = 15

// ErrEmptyQuery is returned when Search is called with a blank query.
var ErrEmptyQuery = errors.New("search: empty query")

// Result is one web hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

// Backend fetches raw hits for a query.
type Backend interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// Service is the search collaborator consumed by the answer engine.
// Service is safe for concurrent use if its Backend is.
type Service struct {
	backend Backend
	now     func() time.Time
}

// NewService wraps backend.
func NewService(backend Backend) *Service {
	return &Service{backend: backend, now: time.Now}
}

// RequiresCurrentInfo reports whether query needs live results.
func (s *Service) RequiresCurrentInfo(query string) bool {
	return RequiresCurrentInfo(query)
}

// Search returns at most limit hits. A non-positive limit means DefaultLimit.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	results, err := s.backend.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// FormatForContext renders results as a system prompt block dated now.
func (s *Service) FormatForContext(results []Result) string {
	return FormatForContext(results, s.now())
}
