package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/catalog"
	"github.com/pageza/recipeshare/backend/internal/collection"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/identity"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/upload"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	log    zerolog.Logger

	index  *gorm.DB
	redis  *redis.Client
	states *collection.Registry
}

// New wires the catalog, search backend, per-user state and every route
func New(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	index, err := database.OpenCatalogIndex(cat.All())
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog index: %w", err)
	}

	searcher, err := newSearcher(cfg, index)
	if err != nil {
		if sqlDB, dbErr := index.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	s := &Server{cfg: cfg, log: log, index: index}

	var submitLimit api.SubmitLimiter
	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg, logger.Component(log, "redis"))
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, upload rate limiting disabled")
		} else {
			s.redis = client
			submitLimit = middleware.NewUploadRateLimiter(client, cfg.UploadRateLimit, cfg.UploadRateWindow, logger.Component(log, "rate_limit"))
		}
	}

	var signer upload.ImageSigner
	if cfg.S3BucketName != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Warn().Err(err).Msg("S3 unavailable, image upload URLs disabled")
		} else {
			signer = s3cfg
		}
	}

	provider := identity.NewJWTProvider(cfg.IdentitySecret)
	s.states = collection.NewRegistry(cat, searcher, collection.DefaultSeed(), logger.Component(log, "collection"))
	uploads := upload.NewService(logger.Component(log, "upload"), signer)

	s.router = router.SetupRouter(routerOptions(cfg), log, provider, router.Handlers{
		Recipes:    api.NewRecipeHandler(cat, s.states),
		Collection: api.NewCollectionHandler(s.states, logger.Component(log, "collection")),
		Search:     api.NewSearchHandler(s.states),
		Upload:     api.NewUploadHandler(uploads, submitLimit, signer != nil, logger.Component(log, "upload")),
		Profile:    api.NewProfileHandler(provider, logger.Component(log, "auth"), s.states, uploads),
	})
	return s, nil
}

// NewBlocked returns a server that answers every request with a 503
// configuration error and wires nothing else
func NewBlocked(cfg *config.Config, log zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		router: router.SetupBlockedRouter(routerOptions(cfg), log),
		log:    log,
	}
}

func routerOptions(cfg *config.Config) router.Options {
	return router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Release:     cfg.Environment == config.Production,
	}
}

func newSearcher(cfg *config.Config, index *gorm.DB) (service.Searcher, error) {
	switch cfg.SearchBackend {
	case "", "mock":
		return service.NewMockSearcher(cfg.SearchDelay), nil
	case "catalog":
		return service.NewCatalogSearcher(index, cfg.SearchDelay), nil
	}
	return nil, fmt.Errorf("unsupported search backend %q", cfg.SearchBackend)
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address until Shutdown
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info().Str("addr", s.http.Addr).Msg("Starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and releases the backing stores
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.index != nil {
		if sqlDB, err := s.index.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
