package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/collection"
	"github.com/pageza/recipeshare/backend/internal/model"
)

// RecipeView is a catalog recipe decorated for display
type RecipeView struct {
	model.Recipe
	DifficultyColor model.Color `json:"difficulty_color"`
	Favorite        bool        `json:"favorite"`
}

// DifficultyView is one row of the difficulty legend
type DifficultyView struct {
	Difficulty model.Difficulty `json:"difficulty"`
	Color      model.Color      `json:"color"`
}

type RecipeHandler struct {
	catalog RecipeCatalog
	states  StateRegistry
}

func NewRecipeHandler(catalog RecipeCatalog, states StateRegistry) *RecipeHandler {
	return &RecipeHandler{catalog: catalog, states: states}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/popular", h.PopularRecipes)
		recipes.GET("/:id", h.GetRecipe)
	}
	router.GET("/categories", h.ListCategories)
	router.GET("/difficulties", h.ListDifficulties)
}

func (h *RecipeHandler) views(store *collection.Store, recipes []model.Recipe) []RecipeView {
	out := make([]RecipeView, len(recipes))
	for i, r := range recipes {
		out[i] = RecipeView{
			Recipe:          r,
			DifficultyColor: model.DifficultyColor(r.Difficulty),
			Favorite:        store.IsFavorite(r.ID),
		}
	}
	return out
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}

	difficulty := model.DifficultyUnknown
	if raw := c.Query("difficulty"); raw != "" {
		d, ok := model.ParseDifficulty(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid difficulty", "field": "difficulty"})
			return
		}
		difficulty = d
	}

	recipes := h.catalog.Filter(c.Query("category"), difficulty)
	c.JSON(http.StatusOK, gin.H{"recipes": h.views(store, recipes)})
}

func (h *RecipeHandler) PopularRecipes(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": h.views(store, h.catalog.Popular())})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}

	recipe, found := h.catalog.Get(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, h.views(store, []model.Recipe{recipe})[0])
}

func (h *RecipeHandler) ListCategories(c *gin.Context) {
	categories := make([]model.CategoryView, 0, len(model.BrowseCategories))
	for _, bc := range model.BrowseCategories {
		categories = append(categories, bc.View())
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *RecipeHandler) ListDifficulties(c *gin.Context) {
	out := make([]DifficultyView, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		out = append(out, DifficultyView{Difficulty: d, Color: model.DifficultyColor(d)})
	}
	c.JSON(http.StatusOK, gin.H{"difficulties": out})
}
