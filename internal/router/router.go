package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/identity"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/middleware"
)

// BlockedMessage is served on every route while the identity credential is missing
const BlockedMessage = "Configuration Error: identity provider key missing"

// Options configures the shared middleware chain
type Options struct {
	CORSOrigins []string
	Release     bool
}

// Handlers are the route groups mounted under /api/v1
type Handlers struct {
	Recipes    *api.RecipeHandler
	Collection *api.CollectionHandler
	Search     *api.SearchHandler
	Upload     *api.UploadHandler
	Profile    *api.ProfileHandler
}

func newEngine(opts Options, log zerolog.Logger) *gin.Engine {
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(logger.Component(log, "http")),
		middleware.CORS(opts.CORSOrigins),
	)
	return router
}

// SetupRouter configures the application routes
func SetupRouter(opts Options, log zerolog.Logger, provider identity.Provider, h Handlers) *gin.Engine {
	router := newEngine(opts, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Every API route sits behind the auth gate
	v1 := router.Group("/api/v1", middleware.AuthGate(provider))
	h.Recipes.RegisterRoutes(v1)
	h.Collection.RegisterRoutes(v1)
	h.Search.RegisterRoutes(v1)
	h.Upload.RegisterRoutes(v1)
	h.Profile.RegisterRoutes(v1)

	return router
}

// SetupBlockedRouter answers every request with a 503 configuration error
func SetupBlockedRouter(opts Options, log zerolog.Logger) *gin.Engine {
	router := newEngine(opts, log)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": BlockedMessage})
	})
	return router
}
