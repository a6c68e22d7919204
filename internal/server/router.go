package server

import (
	"net/http"

	"github.com/agentstation/unitmap/internal/server/handlers"
	"github.com/agentstation/unitmap/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.unitmap,
		s.cache,
		s.logger,
		s.app.Version(),
		s.startTime,
	)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints (no auth required)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Tool endpoints
	mux.HandleFunc("POST "+prefix+"/tools/resolve_unit", h.HandleResolveUnit)
	mux.HandleFunc("POST "+prefix+"/tools/staff_search", h.HandleStaffSearch)

	// Catalog endpoints
	mux.HandleFunc("GET "+prefix+"/units", h.HandleListUnits)
	mux.HandleFunc("GET "+prefix+"/units/suggest", h.HandleSuggestUnits)

	mux.HandleFunc("GET "+prefix+"/mcp/manifest", h.HandleManifest)
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	if s.limiter != nil {
		handler = middleware.RateLimit(s.limiter)(handler)
	}

	if cfg.AuthEnabled {
		handler = middleware.Auth(middleware.AuthConfig{
			APIKey:      cfg.AuthAPIKey,
			HeaderName:  cfg.AuthHeader,
			PublicPaths: []string{"/health", cfg.PathPrefix + "/health", cfg.PathPrefix + "/ready"},
		}, s.logger)(handler)
	}

	if cfg.CORSEnabled {
		handler = middleware.CORS(cfg.CORSOrigins)(handler)
	}

	// Request ID, logging and recovery are always enabled
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logger(s.logger),
	)(handler)
}
