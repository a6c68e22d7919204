// Package application provides the application interface for unitmap commands.
//
// Commands and the HTTP server accept this interface rather than the concrete
// App type, so they can be tested with internal/cmd/application.Mock.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            um, err := app.Unitmap()
//	            if err != nil {
//	                return err
//	            }
//	            res := um.Resolve(args[0])
//	            // ... print res
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap"
)

// Application provides what commands need from the running program.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Unitmap returns the shared unitmap instance, built on first use
	// from the configured dataset and resolver settings.
	Unitmap() (unitmap.Unitmap, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
