package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/model"
)

// Searcher produces search results for a query
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// MockSearcher simulates a remote search API: after a fixed latency it
// synthesizes three records whose titles embed the query.
type MockSearcher struct {
	Delay time.Duration
}

var _ Searcher = (*MockSearcher)(nil)

// NewMockSearcher creates a MockSearcher with the given latency
func NewMockSearcher(delay time.Duration) *MockSearcher {
	return &MockSearcher{Delay: delay}
}

// Search implements Searcher
func (s *MockSearcher) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	if err := wait(ctx, s.Delay); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	return []model.SearchResult{
		{
			ID:          "mock-1",
			Title:       fmt.Sprintf("Delicious %s Recipe", query),
			ImageURL:    "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg?auto=compress&cs=tinysrgb&w=300",
			CookTime:    "25 min",
			Difficulty:  model.DifficultyEasy,
			Rating:      4.2,
			Ingredients: []string{"Fresh herbs", "Olive oil", "Garlic"},
		},
		{
			ID:          "mock-2",
			Title:       fmt.Sprintf("Traditional %s Dish", query),
			ImageURL:    "https://images.pexels.com/photos/1279330/pexels-photo-1279330.jpeg?auto=compress&cs=tinysrgb&w=300",
			CookTime:    "40 min",
			Difficulty:  model.DifficultyMedium,
			Rating:      4.6,
			Ingredients: []string{"Tomatoes", "Cheese", "Basil"},
		},
		{
			ID:          "mock-3",
			Title:       fmt.Sprintf("Modern %s Creation", query),
			ImageURL:    "https://images.pexels.com/photos/2474661/pexels-photo-2474661.jpeg?auto=compress&cs=tinysrgb&w=300",
			CookTime:    "20 min",
			Difficulty:  model.DifficultyEasy,
			Rating:      4.1,
			Ingredients: []string{"Spices", "Coconut milk", "Vegetables"},
		},
	}, nil
}

// CatalogSearcher runs keyword searches against the in-memory catalog index
type CatalogSearcher struct {
	db    *gorm.DB
	delay time.Duration
}

var _ Searcher = (*CatalogSearcher)(nil)

// NewCatalogSearcher creates a searcher over an index opened with
// database.OpenCatalogIndex
func NewCatalogSearcher(db *gorm.DB, delay time.Duration) *CatalogSearcher {
	return &CatalogSearcher{db: db, delay: delay}
}

// likeEscaper makes LIKE wildcards in a query match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search implements Searcher
func (s *CatalogSearcher) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	if err := wait(ctx, s.delay); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	like := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	var rows []database.RecipeRow
	err := s.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR `+
			`LOWER(category) LIKE ? ESCAPE '\' OR LOWER(ingredients) LIKE ? ESCAPE '\'`,
			like, like, like, like).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}

	results := make([]model.SearchResult, len(rows))
	for i, row := range rows {
		results[i] = row.Result()
	}
	return results, nil
}
