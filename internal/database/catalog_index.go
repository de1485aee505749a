package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipeshare/backend/internal/model"
)

// RecipeRow is the searchable projection of a catalog recipe
type RecipeRow struct {
	ID          string  `gorm:"primaryKey;size:64"`
	Position    int     `gorm:"not null;index"`
	Title       string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text"`
	Category    string  `gorm:"size:50;index"`
	ImageURL    string  `gorm:"type:text"`
	CookTime    string  `gorm:"size:32"`
	Servings    int     `gorm:"not null"`
	Difficulty  string  `gorm:"size:16;index"`
	Rating      float64 `gorm:"type:float"`
	Ingredients string  `gorm:"type:text"`
}

// TableName keeps the table name stable regardless of the struct name
func (RecipeRow) TableName() string {
	return "recipes"
}

const ingredientSeparator = "\n"

// Result converts the row back into a search result
func (r RecipeRow) Result() model.SearchResult {
	d, _ := model.ParseDifficulty(r.Difficulty)
	var ingredients []string
	if r.Ingredients != "" {
		ingredients = strings.Split(r.Ingredients, ingredientSeparator)
	}
	return model.SearchResult{
		ID:          r.ID,
		Title:       r.Title,
		ImageURL:    r.ImageURL,
		CookTime:    r.CookTime,
		Difficulty:  d,
		Rating:      r.Rating,
		Ingredients: ingredients,
		Category:    r.Category,
	}
}

// OpenCatalogIndex loads recipes into a private in-memory sqlite database.
// The index lives only as long as the returned handle; nothing touches disk.
func OpenCatalogIndex(recipes []model.Recipe) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog index: %w", err)
	}

	// Every sqlite memory connection is its own database, so the pool is
	// pinned to a single connection that never expires.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access catalog index pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(&RecipeRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog index: %w", err)
	}

	if len(recipes) == 0 {
		return db, nil
	}

	rows := make([]RecipeRow, len(recipes))
	for i, r := range recipes {
		rows[i] = RecipeRow{
			ID:          r.ID,
			Position:    i,
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			ImageURL:    r.ImageURL,
			CookTime:    r.CookTime,
			Servings:    r.Servings,
			Difficulty:  r.Difficulty.String(),
			Rating:      r.Rating,
			Ingredients: strings.Join(r.Ingredients, ingredientSeparator),
		}
	}
	if err := db.Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog index: %w", err)
	}

	return db, nil
}
