// Package server provides the HTTP API for unit resolution and staff search.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap"
	"github.com/agentstation/unitmap/cmd/application"
	"github.com/agentstation/unitmap/internal/server/cache"
	"github.com/agentstation/unitmap/internal/server/middleware"
	"github.com/agentstation/unitmap/pkg/constants"
	"github.com/agentstation/unitmap/pkg/directory"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app       application.Application
	unitmap   unitmap.Unitmap
	cache     *cache.Cache[*directory.SearchResult]
	limiter   *middleware.RateLimiter
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	logger.Debug().Msg("Creating new server instance")

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}
	if cfg.AuthEnabled && cfg.AuthAPIKey == "" {
		return nil, errors.New("auth enabled but no API key configured")
	}

	um, err := app.Unitmap()
	if err != nil {
		return nil, err
	}

	server := &Server{
		app:       app,
		unitmap:   um,
		cache:     cache.New[*directory.SearchResult](cfg.CacheTTL, constants.CacheCleanupInterval),
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		server.limiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	logger.Debug().
		Int("units", um.Catalog().Len()).
		Msg("Server instance created successfully")
	return server, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an *http.Server bound to the configured address.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown stops background services owned by the server.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	if s.limiter != nil {
		s.limiter.Stop()
	}
	return nil
}

// Cache returns the server's staff search cache.
func (s *Server) Cache() *cache.Cache[*directory.SearchResult] {
	return s.cache
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
