package collection

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/service"
)

// SeedBookmark is a bookmark present when a user's state is first created
type SeedBookmark struct {
	RecipeID string
	Age      time.Duration
}

// Seed describes the initial state of a new Store
type Seed struct {
	Favorites      []string
	Bookmarks      []SeedBookmark
	RecentSearches []string
}

// DefaultSeed returns the state every new user starts with
func DefaultSeed() Seed {
	const day = 24 * time.Hour
	return Seed{
		Bookmarks: []SeedBookmark{
			{RecipeID: "4", Age: 2 * day},
			{RecipeID: "5", Age: 7 * day},
			{RecipeID: "6", Age: 3 * day},
		},
		RecentSearches: []string{
			"Chicken curry",
			"Pasta carbonara",
			"Chocolate cake",
			"Vegetarian tacos",
		},
	}
}

// Apply loads seed into an empty store without notifying subscribers
func (s *Store) Apply(seed Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, id := range seed.Favorites {
		if !s.catalog.Has(id) {
			return fmt.Errorf("seed favorite: %w: %s", ErrUnknownRecipe, id)
		}
		s.favorites[id] = struct{}{}
	}
	for _, sb := range seed.Bookmarks {
		recipe, ok := s.catalog.Get(sb.RecipeID)
		if !ok {
			return fmt.Errorf("seed bookmark: %w: %s", ErrUnknownRecipe, sb.RecipeID)
		}
		s.bookmarks = append(s.bookmarks, newBookmark(recipe, now.Add(-sb.Age)))
	}
	for _, q := range seed.RecentSearches {
		if len(s.recent) == MaxRecentSearches {
			break
		}
		s.recent = append(s.recent, q)
	}
	return nil
}

// Registry owns one Store per user
type Registry struct {
	catalog  Catalog
	searcher service.Searcher
	seed     Seed
	log      zerolog.Logger
	opts     []Option

	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry creates a registry whose stores start from seed
func NewRegistry(catalog Catalog, searcher service.Searcher, seed Seed, log zerolog.Logger, opts ...Option) *Registry {
	return &Registry{
		catalog:  catalog,
		searcher: searcher,
		seed:     seed,
		log:      log,
		opts:     opts,
		stores:   make(map[string]*Store),
	}
}

// Get returns the user's store, creating and seeding it on first use
func (r *Registry) Get(userID string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[userID]; ok {
		return s, nil
	}

	l := r.log.With().Str("user_id", userID).Logger()
	opts := append([]Option{WithLogger(l)}, r.opts...)
	s := NewStore(r.catalog, r.searcher, opts...)
	if err := s.Apply(r.seed); err != nil {
		return nil, err
	}
	r.stores[userID] = s
	l.Debug().Msg("Created collection state")
	return s, nil
}

// Drop closes and forgets the user's store. Dropping an unknown user is a no-op.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	s, ok := r.stores[userID]
	delete(r.stores, userID)
	r.mu.Unlock()

	if ok {
		s.Close()
		r.log.Debug().Str("user_id", userID).Msg("Dropped collection state")
	}
}

// Len returns the number of live stores
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
