// Package app provides the application context and dependency management
// for the unitmap CLI. It centralizes configuration, logging, and the
// shared unitmap instance that commands receive through
// application.Application.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap"
	"github.com/agentstation/unitmap/cmd/application"
	"github.com/agentstation/unitmap/pkg/directory"
	"github.com/agentstation/unitmap/pkg/errors"
	"github.com/agentstation/unitmap/pkg/resolver"
)

// App represents the unitmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Unitmap instance (lazy-initialized, singleton)
	mu      sync.RWMutex
	unitmap unitmap.Unitmap
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the default locations and can be
// replaced with functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// APIKey returns the key the server requires when authentication is on.
func (a *App) APIKey() string {
	return a.config.APIKey
}

// Unitmap returns the unitmap instance, creating it on first use.
func (a *App) Unitmap() (unitmap.Unitmap, error) {
	a.mu.RLock()
	if a.unitmap != nil {
		um := a.unitmap
		a.mu.RUnlock()
		return um, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.unitmap != nil {
		return a.unitmap, nil
	}

	opts, err := a.buildUnitmapOptions()
	if err != nil {
		return nil, err
	}
	um, err := unitmap.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "unitmap", a.config.Dataset, err)
	}

	a.unitmap = um
	return um, nil
}

// Shutdown releases application resources. The unitmap holds no background
// work, so this only drops the cached instance.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	a.unitmap = nil
	a.mu.Unlock()
	return nil
}

// buildUnitmapOptions constructs unitmap options from the app configuration.
func (a *App) buildUnitmapOptions() ([]unitmap.Option, error) {
	scorer, err := resolver.ScorerByName(a.config.Scorer)
	if err != nil {
		return nil, err
	}

	opts := []unitmap.Option{
		unitmap.WithLogger(a.logger),
		unitmap.WithScorer(scorer),
		unitmap.WithThreshold(a.config.Threshold),
		unitmap.WithMinSubstringLength(a.config.MinSubstringLength),
		unitmap.WithDirectoryClient(directory.NewClient(
			directory.WithBaseURL(a.config.DirectoryURL),
			directory.WithTimeout(a.config.DirectoryTimeout),
			directory.WithUserAgent(a.config.DirectoryUserAgent),
			directory.WithLogger(a.logger),
		)),
	}
	if a.config.Dataset != "" {
		opts = append(opts, unitmap.WithDatasetPath(a.config.Dataset))
	}
	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithUnitmap sets a custom unitmap instance (useful for testing).
func WithUnitmap(um unitmap.Unitmap) Option {
	return func(a *App) error {
		a.unitmap = um
		return nil
	}
}
