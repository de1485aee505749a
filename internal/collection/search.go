package collection

import (
	"context"
	"errors"
	"strings"

	"github.com/pageza/recipeshare/backend/internal/model"
)

type searchState struct {
	query      string
	status     model.SearchStatus
	results    []model.SearchResult
	generation uint64
	cancel     context.CancelFunc
}

func (st *searchState) cancelPending() {
	if st.cancel != nil {
		st.cancel()
		st.cancel = nil
	}
}

// SearchSnapshot is the search panel read model
type SearchSnapshot struct {
	Query      string               `json:"query"`
	Status     model.SearchStatus   `json:"status"`
	Generation uint64               `json:"generation"`
	Results    []model.SearchResult `json:"results"`
}

// Search starts a search for query and returns its generation. A blank query
// clears the panel immediately. Only the most recent generation may resolve;
// results for older generations are discarded when they arrive.
func (s *Store) Search(ctx context.Context, query string) uint64 {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.search.cancelPending()
	gen := s.search.generation + 1

	if query == "" || s.closed {
		s.search = searchState{generation: gen, status: model.SearchIdle}
		s.notifyLocked()
		return gen
	}

	searchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.search = searchState{
		query:      query,
		status:     model.SearchPending,
		generation: gen,
		cancel:     cancel,
	}
	s.notifyLocked()

	go s.runSearch(searchCtx, gen, query)
	return gen
}

// ClearSearch resets the search panel and invalidates any pending search
func (s *Store) ClearSearch() uint64 {
	return s.Search(context.Background(), "")
}

func (s *Store) runSearch(ctx context.Context, gen uint64, query string) {
	results, err := s.searcher.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.search.generation != gen {
		s.log.Debug().
			Str("query", query).
			Uint64("generation", gen).
			Uint64("latest", s.search.generation).
			Msg("Discarding superseded search result")
		return
	}

	s.search.cancelPending()
	switch {
	case err != nil:
		if !errors.Is(err, context.Canceled) {
			s.log.Error().Err(err).Str("query", query).Msg("Search failed")
		}
		s.search.status = model.SearchNoResults
		s.search.results = nil
	case len(results) == 0:
		s.search.status = model.SearchNoResults
		s.search.results = nil
	default:
		s.search.status = model.SearchResults
		s.search.results = results
	}
	s.notifyLocked()
}

// SearchState returns the current search panel with active filters applied
func (s *Store) SearchState() SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchSnapshotLocked()
}

func (s *Store) searchSnapshotLocked() SearchSnapshot {
	snap := SearchSnapshot{
		Query:      s.search.query,
		Status:     s.search.status,
		Generation: s.search.generation,
		Results:    []model.SearchResult{},
	}
	if s.search.query != "" && s.search.status == model.SearchResults {
		snap.Results = applyFilters(s.search.results, s.filters)
		if len(snap.Results) == 0 {
			snap.Status = model.SearchNoResults
		}
	}
	return snap
}

// WaitSearch blocks until search generation gen is no longer pending, either
// because it resolved or because a newer request superseded it
func (s *Store) WaitSearch(ctx context.Context, gen uint64) (SearchSnapshot, error) {
	for {
		s.mu.Lock()
		snap := s.searchSnapshotLocked()
		ch := s.changed
		s.mu.Unlock()

		if snap.Generation != gen || snap.Status != model.SearchPending {
			return snap, nil
		}
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-ch:
		}
	}
}

// applyFilters keeps results matching every active facet. Difficulty tags
// match the result difficulty, any other tag matches the category.
func applyFilters(results []model.SearchResult, filters []string) []model.SearchResult {
	if len(filters) == 0 {
		return append([]model.SearchResult{}, results...)
	}

	difficulties := make(map[model.Difficulty]bool)
	var categories []string
	for _, tag := range filters {
		if d, ok := model.ParseDifficulty(tag); ok && d != model.DifficultyUnknown {
			difficulties[d] = true
			continue
		}
		categories = append(categories, tag)
	}

	out := []model.SearchResult{}
	for _, r := range results {
		if len(difficulties) > 0 && !difficulties[r.Difficulty] {
			continue
		}
		if len(categories) > 0 && !matchesAny(r.Category, categories) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesAny(category string, tags []string) bool {
	for _, tag := range tags {
		if strings.EqualFold(category, tag) {
			return true
		}
	}
	return false
}
