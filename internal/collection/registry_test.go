package collection

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/catalog"
	"github.com/pageza/recipeshare/backend/internal/service"
)

func newTestRegistry(t *testing.T, now time.Time) *Registry {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return NewRegistry(c, service.NewMockSearcher(0), DefaultSeed(), zerolog.Nop(),
		WithClock(func() time.Time { return now }))
}

func TestRegistrySeedsNewUsers(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	r := newTestRegistry(t, now)

	s, err := r.Get("user-1")
	require.NoError(t, err)

	assert.Empty(t, s.Favorites())
	assert.Equal(t, []string{"Chicken curry", "Pasta carbonara", "Chocolate cake", "Vegetarian tacos"}, s.RecentSearches())

	snap := s.Snapshot()
	require.Len(t, snap.Bookmarks, 3)
	assert.Equal(t, "Grilled Salmon with Lemon", snap.Bookmarks[0].Recipe.Title)
	assert.Equal(t, "2 days ago", snap.Bookmarks[0].SavedLabel)
	assert.Equal(t, "Creamy Mushroom Risotto", snap.Bookmarks[1].Recipe.Title)
	assert.Equal(t, "1 week ago", snap.Bookmarks[1].SavedLabel)
	assert.Equal(t, "3 days ago", snap.Bookmarks[2].SavedLabel)
}

func TestRegistryIsolatesUsers(t *testing.T) {
	r := newTestRegistry(t, time.Now())

	a, err := r.Get("a")
	require.NoError(t, err)
	b, err := r.Get("b")
	require.NoError(t, err)

	_, err = a.ToggleFavorite("1")
	require.NoError(t, err)
	assert.True(t, a.IsFavorite("1"))
	assert.False(t, b.IsFavorite("1"))

	again, err := r.Get("a")
	require.NoError(t, err)
	assert.Same(t, a, again)
	assert.Equal(t, 2, r.Len())
}

func TestRegistryDropResetsState(t *testing.T) {
	r := newTestRegistry(t, time.Now())

	s, err := r.Get("a")
	require.NoError(t, err)
	_, err = s.ToggleFavorite("2")
	require.NoError(t, err)

	r.Drop("a")
	r.Drop("never-seen")
	assert.Equal(t, 0, r.Len())

	fresh, err := r.Get("a")
	require.NoError(t, err)
	assert.NotSame(t, s, fresh)
	assert.Empty(t, fresh.Favorites())
}

func TestApplyRejectsUnknownSeed(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	s := NewStore(c, service.NewMockSearcher(0))

	err = s.Apply(Seed{Bookmarks: []SeedBookmark{{RecipeID: "404"}}})
	assert.ErrorIs(t, err, ErrUnknownRecipe)
}
