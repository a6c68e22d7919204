// Package serve provides the HTTP server command for the unitmap CLI.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/unitmap/cmd/application"
	"github.com/agentstation/unitmap/internal/cmd/emoji"
	"github.com/agentstation/unitmap/internal/config"
	"github.com/agentstation/unitmap/internal/server"
	"github.com/agentstation/unitmap/pkg/constants"
)

// AppContext is what the serve command needs from the app.
type AppContext interface {
	application.Application
	APIKey() string
}

// NewCommand creates the serve command using app context.
func NewCommand(app AppContext) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Start the HTTP API server",
		Long: `Start the unitmap HTTP API.

Endpoints (under --prefix, default /api/v1):
  POST /tools/resolve_unit   resolve a unit name
  POST /tools/staff_search   resolve a faculty and search the staff directory
  GET  /units                list catalog units (?type=)
  GET  /units/suggest        autocomplete (?q=&limit=)
  GET  /mcp/manifest         tool definitions
  GET  /health, /ready       probes

Staff searches are cached in memory. The server shuts down gracefully on
SIGINT or SIGTERM.`,
		Example: `  unitmap serve
  unitmap serve --port 3000 --auth
  UNITMAP_API_KEY=secret unitmap serve --auth --cors-origins https://chat.example.edu`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd, app)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cmd, app, cfg)
		},
	}

	cmd.Flags().IntP("port", "p", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	cmd.Flags().Bool("auth", false, "Require an API key (UNITMAP_API_KEY or api_key in the config file)")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Authentication header name")

	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Staff search cache TTL")

	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

// parseConfig parses command flags into server configuration.
// HTTP_HOST and HTTP_PORT override the flags, for container platforms.
func parseConfig(cmd *cobra.Command, app AppContext) (server.Config, error) {
	cfg := server.Config{
		Host:         mustGetString(cmd, "host"),
		Port:         mustGetInt(cmd, "port"),
		PathPrefix:   mustGetString(cmd, "prefix"),
		CORSEnabled:  mustGetBool(cmd, "cors"),
		CORSOrigins:  mustGetStringSlice(cmd, "cors-origins"),
		AuthEnabled:  mustGetBool(cmd, "auth"),
		AuthAPIKey:   app.APIKey(),
		AuthHeader:   mustGetString(cmd, "auth-header"),
		RateLimit:    mustGetInt(cmd, "rate-limit"),
		CacheTTL:     mustGetDuration(cmd, "cache-ttl"),
		ReadTimeout:  mustGetDuration(cmd, "read-timeout"),
		WriteTimeout: mustGetDuration(cmd, "write-timeout"),
		IdleTimeout:  mustGetDuration(cmd, "idle-timeout"),
	}
	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}

	if envPort := config.GetString(nil, "HTTP_PORT"); envPort != "" {
		p, err := parsePort(envPort)
		if err != nil {
			return cfg, err
		}
		cfg.Port = p
	}
	if envHost := config.GetString(nil, "HTTP_HOST"); envHost != "" {
		cfg.Host = envHost
	}

	return cfg, nil
}

// parsePort safely parses a port string to integer.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}

// runServer starts the API server and blocks until ctx is cancelled.
func runServer(ctx context.Context, cmd *cobra.Command, app application.Application, cfg server.Config) error {
	logger := app.Logger()

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	logger.Info().
		Str("addr", addr).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting API server")

	return serveUntilDone(ctx, cmd, srv.HTTPServer(addr), srv, logger)
}

// serveUntilDone runs httpServer until it fails or ctx is cancelled, then
// drains connections and stops the server's background work.
func serveUntilDone(ctx context.Context, cmd *cobra.Command, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		cmd.Printf("%s API server listening on %s\n", emoji.Info, httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")

		// The parent context is already cancelled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}
		<-serverErr

		logger.Info().Msg("Server stopped gracefully")
		cmd.Printf("%s API server stopped\n", emoji.Success)
		return nil
	}
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetStringSlice retrieves a string slice flag value or panics if the flag doesn't exist.
func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetDuration retrieves a duration flag value or panics if the flag doesn't exist.
func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}
