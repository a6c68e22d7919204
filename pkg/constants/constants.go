// Package constants provides shared constants used throughout the unitmap codebase.
// This includes timeouts, limits, file permissions, and the defaults for the
// staff directory collaborator that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for requests to the staff directory
	DefaultHTTPTimeout = 10 * time.Second

	// ShutdownTimeout is how long the API server waits for in-flight requests on shutdown
	ShutdownTimeout = 30 * time.Second

	// DefaultReadTimeout is the default HTTP server read timeout
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the default HTTP server write timeout
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the default HTTP server idle timeout
	DefaultIdleTimeout = 120 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// DefaultSuggestLimit is the number of suggestions returned when no limit is given
	DefaultSuggestLimit = 10

	// MaxSuggestLimit caps the number of suggestions a single call may return
	MaxSuggestLimit = 100

	// DefaultBatchWorkers is the default concurrency for batch resolution
	DefaultBatchWorkers = 8

	// MaxRequestBodyBytes caps JSON request bodies accepted by the API server
	MaxRequestBodyBytes = 1 << 20

	// MaxDirectoryResponseBytes caps the staff directory HTML read into memory
	MaxDirectoryResponseBytes = 8 << 20
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached staff search responses
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)

// Staff directory constants
const (
	// DirectoryURL is the staff directory search endpoint
	DirectoryURL = "https://www2.utar.edu.my/staffListSearchV2.jsp"

	// DirectoryService names the staff directory in errors and logs
	DirectoryService = "staff-directory"

	// DirectoryUserAgent is sent with outbound directory requests
	DirectoryUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// AllUnits is the form value that selects every faculty or department
	AllUnits = "All"

	// EmailDomain marks a table as a staff card when present in its text
	EmailDomain = "@utar.edu.my"
)

// Path constants
const (
	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".unitmap"

	// EnvPrefix is the environment variable prefix bound by the config layer
	EnvPrefix = "UNITMAP"
)
