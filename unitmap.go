// Package unitmap resolves free-form organizational-unit names to the
// canonical units of a fixed catalog and uses the result to search the
// university staff directory.
//
// Basic usage:
//
//	um, err := unitmap.New()
//	if err != nil {
//		return err
//	}
//	res := um.Resolve("cancer researc")
//	if res.OK() {
//		fmt.Println(res.Canonical) // Centre for Cancer Research
//	}
package unitmap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap/internal/embedded"
	"github.com/agentstation/unitmap/pkg/directory"
	"github.com/agentstation/unitmap/pkg/resolver"
	"github.com/agentstation/unitmap/pkg/units"
)

// Unitmap resolves unit names and searches the staff directory
type Unitmap interface {
	// Catalog returns the loaded unit catalog
	Catalog() *units.Catalog

	// Resolver returns the unit resolver
	Resolver() *resolver.Resolver

	// Resolve maps a free-form unit name onto a catalog unit
	Resolve(query string) resolver.Result

	// Suggest returns autocomplete candidates for a partial unit name
	Suggest(prefix string, limit int) []resolver.Suggestion

	// SearchStaff resolves the query's faculty and searches the staff directory
	SearchStaff(ctx context.Context, q directory.Query) (*StaffSearch, error)

	// StaffParams resolves the query's faculty into directory parameters
	StaffParams(q directory.Query) (directory.Params, directory.Resolution)

	// SearchDirectory searches the staff directory with prebuilt parameters
	SearchDirectory(ctx context.Context, params directory.Params) (*directory.SearchResult, error)
}

// StaffSearch is the outcome of a staff directory search.
type StaffSearch struct {
	Query      directory.Query        `json:"query" yaml:"query"`
	Params     directory.Params       `json:"params" yaml:"params"`
	Resolution directory.Resolution   `json:"resolution" yaml:"resolution"`
	Staff      []directory.StaffEntry `json:"staff" yaml:"staff"`
	Skipped    int                    `json:"skipped" yaml:"skipped"`
}

// NewStaffSearch assembles the outcome of searching for q.
func NewStaffSearch(q directory.Query, params directory.Params, resolution directory.Resolution, result *directory.SearchResult) *StaffSearch {
	return &StaffSearch{
		Query:      q,
		Params:     params,
		Resolution: resolution,
		Staff:      result.Staff,
		Skipped:    result.Skipped,
	}
}

// unitmap is the internal implementation of the Unitmap interface
type unitmap struct {
	catalog   *units.Catalog
	resolver  *resolver.Resolver
	builder   *directory.ParamBuilder
	directory *directory.Client
	logger    *zerolog.Logger
}

// New creates a Unitmap. Without a dataset option the embedded dataset is used.
func New(opts ...Option) (Unitmap, error) {
	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	if cfg.logger == nil {
		nop := zerolog.Nop()
		cfg.logger = &nop
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading unit catalog: %w", err)
	}
	if report := catalog.Report(); report.SkippedCount() > 0 {
		cfg.logger.Warn().
			Str("source", report.Source).
			Int("skipped", report.SkippedCount()).
			Int("loaded", report.Loaded).
			Msg("Unit catalog loaded with skipped records")
	}

	ropts := []resolver.Option{
		resolver.WithThreshold(cfg.threshold),
		resolver.WithMinSubstringLength(cfg.minSubstring),
		resolver.WithLogger(cfg.logger),
	}
	if cfg.scorer != nil {
		ropts = append(ropts, resolver.WithScorer(cfg.scorer))
	}
	r := resolver.New(catalog, ropts...)

	client := cfg.directory
	if client == nil {
		client = directory.NewClient(directory.WithLogger(cfg.logger))
	}

	return &unitmap{
		catalog:   catalog,
		resolver:  r,
		builder:   directory.NewParamBuilder(r),
		directory: client,
		logger:    cfg.logger,
	}, nil
}

func loadCatalog(cfg *config) (*units.Catalog, error) {
	lopts := []units.LoadOption{units.WithLogger(cfg.logger)}
	switch {
	case cfg.hasRecords:
		return units.New(cfg.records, append(lopts, units.WithSource("memory"))...), nil
	case cfg.datasetPath != "":
		return units.Load(cfg.datasetPath, lopts...)
	case cfg.datasetFS != nil:
		return units.LoadFS(cfg.datasetFS, cfg.datasetName, lopts...)
	default:
		return units.LoadFS(embedded.FS, embedded.DatasetPath, lopts...)
	}
}

// Catalog returns the loaded unit catalog
func (u *unitmap) Catalog() *units.Catalog {
	return u.catalog
}

// Resolver returns the unit resolver
func (u *unitmap) Resolver() *resolver.Resolver {
	return u.resolver
}

// Resolve maps a free-form unit name onto a catalog unit
func (u *unitmap) Resolve(query string) resolver.Result {
	return u.resolver.Resolve(query)
}

// Suggest returns autocomplete candidates for a partial unit name
func (u *unitmap) Suggest(prefix string, limit int) []resolver.Suggestion {
	return u.resolver.Suggest(prefix, limit)
}

// SearchStaff resolves the query's faculty and searches the staff directory
func (u *unitmap) SearchStaff(ctx context.Context, q directory.Query) (*StaffSearch, error) {
	params, resolution := u.StaffParams(q)
	result, err := u.SearchDirectory(ctx, params)
	if err != nil {
		return nil, err
	}
	return NewStaffSearch(q, params, resolution, result), nil
}

// StaffParams resolves the query's faculty into directory parameters
func (u *unitmap) StaffParams(q directory.Query) (directory.Params, directory.Resolution) {
	params, resolution := u.builder.Build(q)
	if resolution.Faculty != nil && !resolution.Faculty.OK() {
		u.logger.Debug().Str("faculty", q.Faculty).Msg("Faculty not resolved, searching with raw value")
	}
	return params, resolution
}

// SearchDirectory searches the staff directory with prebuilt parameters
func (u *unitmap) SearchDirectory(ctx context.Context, params directory.Params) (*directory.SearchResult, error) {
	result, err := u.directory.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("searching staff directory: %w", err)
	}
	return result, nil
}
