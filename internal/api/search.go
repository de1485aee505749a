package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// MaxSearchWait caps how long GET /search?wait= blocks
const MaxSearchWait = 30 * time.Second

type SearchRequest struct {
	Query    string `json:"query"`
	Remember bool   `json:"remember"`
}

type RecentSearchRequest struct {
	Query string `json:"query" binding:"required"`
}

type SearchHandler struct {
	states StateRegistry
}

func NewSearchHandler(states StateRegistry) *SearchHandler {
	return &SearchHandler{states: states}
}

func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	search := router.Group("/search")
	{
		search.GET("", h.GetSearch)
		search.POST("", h.StartSearch)
		search.DELETE("", h.ClearSearch)
		search.GET("/recent", h.ListRecent)
		search.POST("/recent", h.AddRecent)
		search.POST("/filters/:tag/toggle", h.ToggleFilter)
	}
}

// GetSearch returns the search panel. With wait=<generation> it blocks until
// that search resolves or is superseded.
func (h *SearchHandler) GetSearch(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}

	raw := c.Query("wait")
	if raw == "" {
		c.JSON(http.StatusOK, store.SearchState())
		return
	}

	gen, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid generation", "field": "wait"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), MaxSearchWait)
	defer cancel()
	snap, err := store.WaitSearch(ctx, gen)
	if err != nil {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "search still pending", "search": snap})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *SearchHandler) StartSearch(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if req.Remember {
		store.AddRecentSearch(query)
	}
	gen := store.Search(c.Request.Context(), query)
	c.JSON(http.StatusAccepted, gin.H{"generation": gen, "search": store.SearchState()})
}

func (h *SearchHandler) ClearSearch(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}
	store.ClearSearch()
	c.JSON(http.StatusOK, store.SearchState())
}

func (h *SearchHandler) ListRecent(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"recent_searches": store.RecentSearches()})
}

func (h *SearchHandler) AddRecent(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}

	var req RecentSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required", "field": "query"})
		return
	}
	store.AddRecentSearch(req.Query)
	c.JSON(http.StatusOK, gin.H{"recent_searches": store.RecentSearches()})
}

func (h *SearchHandler) ToggleFilter(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}

	tag := c.Param("tag")
	active := store.ToggleFilter(tag)
	c.JSON(http.StatusOK, gin.H{
		"tag":            tag,
		"active":         active,
		"active_filters": store.ActiveFilters(),
		"search":         store.SearchState(),
	})
}
