// Package api exposes the per-user collection state over HTTP: read
// endpoints return snapshots, write endpoints carry user intents.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/collection"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/model"
)

// StateRegistry resolves a user's collection store
type StateRegistry interface {
	Get(userID string) (*collection.Store, error)
	Drop(userID string)
}

// RecipeCatalog is the catalog read side used by handlers
type RecipeCatalog interface {
	Get(id string) (model.Recipe, bool)
	All() []model.Recipe
	Popular() []model.Recipe
	Filter(category string, d model.Difficulty) []model.Recipe
}

// userStore loads the caller's store, writing an error response on failure
func userStore(c *gin.Context, states StateRegistry) (*collection.Store, bool) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	store, err := states.Get(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load collection state"})
		return nil, false
	}
	return store, true
}
