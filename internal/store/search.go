package store

import (
	"context"
	"fmt"
	"sync"
)

type searchAPI interface {
	SearchCities(ctx context.Context, query string) ([]string, error)
}

// SearchStore caches the last city search. Results are only committed while
// a query is set and the server returned something, so a stale late response
// never clobbers a cleared search box.
//
// Fetches run on command goroutines while the render loop keeps reading, so
// all state sits behind a mutex, same as the session store.
type SearchStore struct {
	api searchAPI

	mu      sync.RWMutex
	query   string
	results []string
}

// NewSearchStore creates a search store.
func NewSearchStore(api searchAPI) *SearchStore {
	return &SearchStore{api: api}
}

// SetSearchWord records the current query.
func (s *SearchStore) SetSearchWord(word string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = word
}

// Query returns the current query.
func (s *SearchStore) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetSearchResults fetches the cities matching word and commits them if the
// query is still active. The network call runs unlocked; only the commit
// takes the write lock.
func (s *SearchStore) SetSearchResults(ctx context.Context, word string) error {
	results, err := s.api.SearchCities(ctx, word)
	if err != nil {
		return fmt.Errorf("search cities: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.query != "" && len(results) > 0 {
		s.results = results
	}
	return nil
}

// Results returns the committed search results.
func (s *SearchStore) Results() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}

// Reset drops the query and results, e.g. on logout.
func (s *SearchStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.results = nil
}
