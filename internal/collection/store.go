// Package collection owns a user's favorites, bookmarks, search and filter
// state. A Store is the only place that state changes; readers take
// snapshots and subscribe to change notifications.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// MaxRecentSearches bounds the recent search list
const MaxRecentSearches = 5

// ErrUnknownRecipe is returned when an id does not reference a catalog recipe
var ErrUnknownRecipe = errors.New("recipe not found in catalog")

// Catalog is the read side of the recipe catalog the store validates against
type Catalog interface {
	Get(id string) (model.Recipe, bool)
	Has(id string) bool
}

// Store holds one user's collection state
type Store struct {
	catalog  Catalog
	searcher service.Searcher
	log      zerolog.Logger
	now      func() time.Time

	mu        sync.Mutex
	favorites map[string]struct{}
	bookmarks []model.Bookmark
	recent    []string
	filters   []string
	search    searchState
	version   uint64
	changed   chan struct{}
	closed    bool
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the time source used for bookmark timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store
func NewStore(catalog Catalog, searcher service.Searcher, opts ...Option) *Store {
	s := &Store{
		catalog:   catalog,
		searcher:  searcher,
		log:       zerolog.Nop(),
		now:       time.Now,
		favorites: make(map[string]struct{}),
		search:    searchState{status: model.SearchIdle},
		changed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// notifyLocked records a mutation and wakes every subscriber. s.mu must be held.
func (s *Store) notifyLocked() {
	s.version++
	close(s.changed)
	s.changed = make(chan struct{})
}

// Changed returns a channel that is closed on the next mutation
func (s *Store) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// Version returns the mutation counter
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// ToggleFavorite flips membership of id in the favorite set and returns the
// new membership
func (s *Store) ToggleFavorite(id string) (bool, error) {
	if !s.catalog.Has(id) {
		return false, fmt.Errorf("%w: %s", ErrUnknownRecipe, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, fav := s.favorites[id]
	if fav {
		delete(s.favorites, id)
	} else {
		s.favorites[id] = struct{}{}
	}
	s.notifyLocked()
	return !fav, nil
}

// IsFavorite reports whether id is favorited
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[id]
	return ok
}

// Favorites returns the favorite ids, sorted
func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoritesLocked()
}

func (s *Store) favoritesLocked() []string {
	ids := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AddBookmark saves a catalog recipe. Saving an id twice keeps the first entry.
func (s *Store) AddBookmark(id string) (model.Bookmark, error) {
	recipe, ok := s.catalog.Get(id)
	if !ok {
		return model.Bookmark{}, fmt.Errorf("%w: %s", ErrUnknownRecipe, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookmarks {
		if b.Recipe.ID == id {
			return b, nil
		}
	}
	b := newBookmark(recipe, s.now())
	s.bookmarks = append(s.bookmarks, b)
	s.notifyLocked()
	return b, nil
}

// RemoveBookmark deletes the entry for id. Missing ids are a no-op; the
// return value reports whether anything was removed.
func (s *Store) RemoveBookmark(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookmarks {
		if b.Recipe.ID != id {
			continue
		}
		s.bookmarks = append(s.bookmarks[:i:i], s.bookmarks[i+1:]...)
		s.notifyLocked()
		return true
	}
	return false
}

// Bookmarks returns the saved recipes in display order
func (s *Store) Bookmarks() []model.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Bookmark(nil), s.bookmarks...)
}

// AddRecentSearch puts query at the front of the recent list unless it is
// blank or already present, keeping at most MaxRecentSearches entries
func (s *Store) AddRecentSearch(query string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range s.recent {
		if q == query {
			return false
		}
	}
	next := make([]string, 0, MaxRecentSearches)
	next = append(next, query)
	for _, q := range s.recent {
		if len(next) == MaxRecentSearches {
			break
		}
		next = append(next, q)
	}
	s.recent = next
	s.notifyLocked()
	return true
}

// RecentSearches returns the recent queries, most recent first
func (s *Store) RecentSearches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.recent...)
}

// ToggleFilter activates tag if inactive and deactivates it otherwise.
// It returns whether the tag is active afterwards.
func (s *Store) ToggleFilter(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	defer s.notifyLocked()
	for i, f := range s.filters {
		if f == tag {
			s.filters = append(s.filters[:i:i], s.filters[i+1:]...)
			return false
		}
	}
	s.filters = append(s.filters, tag)
	return true
}

// ActiveFilters returns the active tags in activation order
func (s *Store) ActiveFilters() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.filters...)
}

// BookmarkView is a bookmark with its relative save label
type BookmarkView struct {
	model.Bookmark
	SavedLabel string `json:"saved_label"`
}

// View labels b against the store clock
func (s *Store) View(b model.Bookmark) BookmarkView {
	return BookmarkView{Bookmark: b, SavedLabel: b.SavedLabel(s.now())}
}

// Snapshot is the full read model rendered by clients
type Snapshot struct {
	Version        uint64         `json:"version"`
	Favorites      []string       `json:"favorites"`
	Bookmarks      []BookmarkView `json:"bookmarks"`
	Search         SearchSnapshot `json:"search"`
	RecentSearches []string       `json:"recent_searches"`
	ActiveFilters  []string       `json:"active_filters"`
}

// Snapshot returns a consistent copy of the whole state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	bookmarks := make([]BookmarkView, len(s.bookmarks))
	for i, b := range s.bookmarks {
		bookmarks[i] = BookmarkView{Bookmark: b, SavedLabel: b.SavedLabel(now)}
	}

	return Snapshot{
		Version:        s.version,
		Favorites:      s.favoritesLocked(),
		Bookmarks:      bookmarks,
		Search:         s.searchSnapshotLocked(),
		RecentSearches: append([]string{}, s.recent...),
		ActiveFilters:  append([]string{}, s.filters...),
	}
}

// Close discards any pending search. The store stays readable.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.search.cancelPending()
	s.search = searchState{generation: s.search.generation + 1, status: model.SearchIdle}
	s.notifyLocked()
}

// Wait blocks until the store version exceeds since or ctx is done
func (s *Store) Wait(ctx context.Context, since uint64) (uint64, error) {
	for {
		s.mu.Lock()
		v, ch := s.version, s.changed
		s.mu.Unlock()
		if v > since {
			return v, nil
		}
		select {
		case <-ctx.Done():
			return v, ctx.Err()
		case <-ch:
		}
	}
}

func newBookmark(recipe model.Recipe, savedAt time.Time) model.Bookmark {
	return model.Bookmark{Recipe: recipe, SavedAt: savedAt}
}
