package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/logger"
	"github.com/pageza/recipeshare/backend/internal/server"
)

func main() {
	log := logger.New("recipeshare-api")

	// Initialize configuration
	cfg, err := config.LoadConfig()
	var cfgErr *config.ConfigurationError
	var srv *server.Server
	switch {
	case err == nil:
		srv, err = server.New(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to build server")
		}
	case errors.As(err, &cfgErr) && cfgErr.MissingCredential():
		log.Error().Err(err).Msg("Identity provider credential missing, serving configuration error")
		srv = server.NewBlocked(cfg, log)
	default:
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Received signal")
	}

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
