package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/collection"
	"github.com/pageza/recipeshare/backend/internal/middleware"
)

// EventHeartbeat is how often an idle event stream sends a keepalive
const EventHeartbeat = 15 * time.Second

type CollectionHandler struct {
	states StateRegistry
	log    zerolog.Logger
}

func NewCollectionHandler(states StateRegistry, log zerolog.Logger) *CollectionHandler {
	return &CollectionHandler{states: states, log: log}
}

func (h *CollectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites")
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("/:id/toggle", h.ToggleFavorite)
	}

	bookmarks := router.Group("/bookmarks")
	{
		bookmarks.GET("", h.ListBookmarks)
		bookmarks.POST("/:id", h.AddBookmark)
		bookmarks.DELETE("/:id", h.RemoveBookmark)
	}

	state := router.Group("/state")
	{
		state.GET("", h.GetState)
		state.GET("/events", h.StreamState)
	}
}

func (h *CollectionHandler) ListFavorites(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": store.Favorites()})
}

func (h *CollectionHandler) ToggleFavorite(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}

	id := c.Param("id")
	favorite, err := store.ToggleFavorite(id)
	if err != nil {
		if errors.Is(err, collection.ErrUnknownRecipe) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "favorite": favorite})
}

func (h *CollectionHandler) ListBookmarks(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": store.Snapshot().Bookmarks})
}

func (h *CollectionHandler) AddBookmark(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}

	bookmark, err := store.AddBookmark(c.Param("id"))
	if err != nil {
		if errors.Is(err, collection.ErrUnknownRecipe) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}
	c.JSON(http.StatusCreated, store.View(bookmark))
}

func (h *CollectionHandler) RemoveBookmark(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}
	store.RemoveBookmark(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *CollectionHandler) GetState(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, store.Snapshot())
}

// StreamState sends a "state" event with the full snapshot now and after
// every change until the client disconnects
func (h *CollectionHandler) StreamState(c *gin.Context) {
	store, ok := userStore(c, h.states)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(EventHeartbeat)
	defer heartbeat.Stop()

	for {
		changed := store.Changed()
		c.SSEvent("state", store.Snapshot())
		c.Writer.Flush()

		for waiting := true; waiting; {
			select {
			case <-ctx.Done():
				h.log.Debug().Str("user_id", middleware.UserID(c)).Msg("State stream closed")
				return
			case <-changed:
				waiting = false
			case <-heartbeat.C:
				c.SSEvent("heartbeat", time.Now().Unix())
				c.Writer.Flush()
			}
		}
	}
}
