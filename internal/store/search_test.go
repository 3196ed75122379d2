package store

import (
	"context"
	"sync"
	"testing"
)

type fakeSearchAPI struct {
	results []string
	err     error
	calls   int
}

func (f *fakeSearchAPI) SearchCities(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.results, f.err
}

func TestSetSearchResultsCommitsWhileQueryActive(t *testing.T) {
	api := &fakeSearchAPI{results: []string{"Valencia", "Valladolid"}}
	s := NewSearchStore(api)
	s.SetSearchWord("val")

	if err := s.SetSearchResults(context.Background(), "val"); err != nil {
		t.Fatalf("SetSearchResults() error: %v", err)
	}
	if got := s.Results(); len(got) != 2 || got[0] != "Valencia" {
		t.Errorf("Results() = %v, want [Valencia Valladolid]", got)
	}
}

func TestSetSearchResultsSkipsWhenQueryCleared(t *testing.T) {
	api := &fakeSearchAPI{results: []string{"Valencia"}}
	s := NewSearchStore(api)
	// Query box already cleared by the time the response lands.
	s.SetSearchWord("")

	if err := s.SetSearchResults(context.Background(), "val"); err != nil {
		t.Fatalf("SetSearchResults() error: %v", err)
	}
	if got := s.Results(); got != nil {
		t.Errorf("Results() = %v, want nil when no query is active", got)
	}
}

func TestSetSearchResultsKeepsOldOnEmptyResponse(t *testing.T) {
	api := &fakeSearchAPI{results: []string{"Valencia"}}
	s := NewSearchStore(api)
	s.SetSearchWord("val")
	if err := s.SetSearchResults(context.Background(), "val"); err != nil {
		t.Fatal(err)
	}

	api.results = nil
	s.SetSearchWord("valx")
	if err := s.SetSearchResults(context.Background(), "valx"); err != nil {
		t.Fatal(err)
	}
	if got := s.Results(); len(got) != 1 || got[0] != "Valencia" {
		t.Errorf("Results() = %v, want previous results kept on empty response", got)
	}
}

func TestSearchReset(t *testing.T) {
	api := &fakeSearchAPI{results: []string{"Valencia"}}
	s := NewSearchStore(api)
	s.SetSearchWord("val")
	if err := s.SetSearchResults(context.Background(), "val"); err != nil {
		t.Fatal(err)
	}

	s.Reset()
	if s.Query() != "" || s.Results() != nil {
		t.Errorf("Reset() left query=%q results=%v", s.Query(), s.Results())
	}
}

func TestSearchStoreConcurrentFetchAndRead(t *testing.T) {
	api := &fakeSearchAPI{results: []string{"Valencia", "Valladolid"}}
	s := NewSearchStore(api)
	s.SetSearchWord("val")

	// A fetch runs on a command goroutine while the render loop keeps
	// calling Results(); both must be safe under the race detector.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if err := s.SetSearchResults(context.Background(), "val"); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	for i := 0; i < 200; i++ {
		_ = s.Results()
		_ = s.Query()
	}
	wg.Wait()

	if got := s.Results(); len(got) != 2 {
		t.Errorf("Results() = %v, want 2 committed cities", got)
	}
}
