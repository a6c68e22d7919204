package unitmap

import (
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap/pkg/directory"
	"github.com/agentstation/unitmap/pkg/errors"
	"github.com/agentstation/unitmap/pkg/resolver"
	"github.com/agentstation/unitmap/pkg/units"
)

// Option is a function that configures a Unitmap instance
type Option func(*config) error

// config holds the construction settings for a Unitmap
type config struct {
	datasetPath string
	datasetFS   fs.FS
	datasetName string
	records     []units.Unit
	hasRecords  bool

	scorer       resolver.Scorer
	threshold    int
	minSubstring int

	directory *directory.Client
	logger    *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		threshold:    resolver.DefaultThreshold,
		minSubstring: resolver.DefaultMinSubstringLength,
	}
}

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithDatasetPath loads the unit catalog from a JSON or YAML file
func WithDatasetPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("dataset", path, "path cannot be empty")
		}
		c.datasetPath = path
		return nil
	}
}

// WithDatasetFS loads the unit catalog from a file in fsys
func WithDatasetFS(fsys fs.FS, name string) Option {
	return func(c *config) error {
		if fsys == nil || name == "" {
			return errors.NewValidationError("dataset", name, "filesystem and name are required")
		}
		c.datasetFS = fsys
		c.datasetName = name
		return nil
	}
}

// WithUnits uses the given records as the unit catalog
func WithUnits(records []units.Unit) Option {
	return func(c *config) error {
		c.records = records
		c.hasRecords = true
		return nil
	}
}

// WithScorer configures the similarity scorer used by the resolver
func WithScorer(s resolver.Scorer) Option {
	return func(c *config) error {
		c.scorer = s
		return nil
	}
}

// WithThreshold configures the similarity score a match must exceed
func WithThreshold(threshold int) Option {
	return func(c *config) error {
		if threshold < 0 || threshold > 100 {
			return errors.NewValidationError("threshold", threshold, "must be between 0 and 100")
		}
		c.threshold = threshold
		return nil
	}
}

// WithMinSubstringLength configures the query length a substring match must exceed
func WithMinSubstringLength(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return errors.NewValidationError("min_substring_length", n, "cannot be negative")
		}
		c.minSubstring = n
		return nil
	}
}

// WithDirectoryClient configures the staff directory client
func WithDirectoryClient(client *directory.Client) Option {
	return func(c *config) error {
		c.directory = client
		return nil
	}
}

// WithLogger configures the logger shared by the catalog, resolver and directory client
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
