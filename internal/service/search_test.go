package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/catalog"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/model"
)

func TestMockSearcherEmbedsQuery(t *testing.T) {
	s := NewMockSearcher(0)

	results, err := s.Search(context.Background(), " jollof ")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Delicious jollof Recipe", results[0].Title)
	assert.Equal(t, "Traditional jollof Dish", results[1].Title)
	assert.Equal(t, "Modern jollof Creation", results[2].Title)
}

func TestMockSearcherHonorsContext(t *testing.T) {
	s := NewMockSearcher(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, "rice")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalogSearcher(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	db, err := database.OpenCatalogIndex(c.All())
	require.NoError(t, err)

	s := NewCatalogSearcher(db, 0)

	results, err := s.Search(context.Background(), "RICE")
	require.NoError(t, err)
	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = r.Title
	}
	assert.Equal(t, []string{"Jollof Rice", "Fried Rice", "Creamy Mushroom Risotto"}, titles)

	results, err = s.Search(context.Background(), "chocolate")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.Search(context.Background(), "seafood")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "4", results[0].ID)
}

func TestCatalogSearcherMatchesWildcardsLiterally(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	db, err := database.OpenCatalogIndex(c.All())
	require.NoError(t, err)
	s := NewCatalogSearcher(db, 0)

	for _, q := range []string{"%", "_", `\`, "r_ce", "ri%"} {
		results, err := s.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, results, "query %q", q)
	}

	db, err = database.OpenCatalogIndex([]model.Recipe{
		{ID: "a", Title: "100% Whole Wheat Bread", Category: "Breakfast", Servings: 4},
		{ID: "b", Title: "1000 Island Dressing", Category: "Snacks", Servings: 2},
		{ID: "c", Title: "snake_case soup", Category: "Lunch", Servings: 2},
	})
	require.NoError(t, err)
	s = NewCatalogSearcher(db, 0)

	results, err := s.Search(context.Background(), "100%")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].ID)

	results, err = s.Search(context.Background(), "e_c")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c", results[0].ID)
}
