// Package logging configures zerolog for unitmap and carries request-scoped
// loggers through a context.Context.
//
//	logger := logging.NewLoggerFromConfig(&logging.Config{Level: "debug", Format: "json"})
//	ctx := logging.WithQuery(logging.WithLogger(ctx, &logger), "cancer researc")
//	logging.FromContext(ctx).Debug().Msg("Resolving unit")
package logging

import (
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	logger := NewLoggerFromConfig(ConfigFromEnv())
	defaultLogger.Store(&logger)
}

// Default returns the process-wide logger, configured from LOG_* variables
// until SetDefault replaces it.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger and zerolog's global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger.Store(&logger)
	log.Logger = logger
}
