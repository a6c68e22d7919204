package units

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap/pkg/errors"
)

// Catalog is the in-memory unit dataset plus its exact-lookup index.
type Catalog struct {
	records []Unit
	byKey   map[string]int
	keys    []string
	report  LoadReport
}

// SkippedRecord describes a dataset record that was not loaded.
type SkippedRecord struct {
	Index  int    `json:"index" yaml:"index"`
	Reason string `json:"reason" yaml:"reason"`
}

// Collision records a name that normalized to a key already owned by an
// earlier unit. The earlier unit keeps the key.
type Collision struct {
	Key      string `json:"key" yaml:"key"`
	Unit     string `json:"unit" yaml:"unit"`
	Owner    string `json:"owner" yaml:"owner"`
	Position int    `json:"position" yaml:"position"`
}

// LoadReport summarizes how a catalog was built.
type LoadReport struct {
	Source     string          `json:"source,omitempty" yaml:"source,omitempty"`
	Total      int             `json:"total" yaml:"total"`
	Loaded     int             `json:"loaded" yaml:"loaded"`
	Keys       int             `json:"keys" yaml:"keys"`
	Skipped    []SkippedRecord `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Collisions []Collision     `json:"collisions,omitempty" yaml:"collisions,omitempty"`
}

// SkippedCount returns the number of records that were not loaded.
func (r LoadReport) SkippedCount() int {
	return len(r.Skipped)
}

// LoadOption configures catalog construction.
type LoadOption func(*loadOptions)

type loadOptions struct {
	logger *zerolog.Logger
	source string
}

// WithLogger sets the logger used to report skipped records.
func WithLogger(logger *zerolog.Logger) LoadOption {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSource labels the catalog with the dataset it came from.
func WithSource(source string) LoadOption {
	return func(o *loadOptions) {
		o.source = source
	}
}

func applyLoadOptions(opts []LoadOption) *loadOptions {
	nop := zerolog.Nop()
	o := &loadOptions{logger: &nop}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// New builds a catalog from in-memory records. Records without a canonical
// name are skipped and reported; New never fails.
func New(records []Unit, opts ...LoadOption) *Catalog {
	return build(records, nil, opts)
}

// build indexes records. Entries in rejected are skipped with the given reason.
func build(records []Unit, rejected map[int]string, opts []LoadOption) *Catalog {
	o := applyLoadOptions(opts)
	c := &Catalog{
		byKey:  make(map[string]int),
		report: LoadReport{Source: o.source, Total: len(records)},
	}
	for i, u := range records {
		if reason, ok := rejected[i]; ok {
			c.skip(o.logger, i, reason)
			continue
		}
		if err := validate(u); err != nil {
			c.skip(o.logger, i, err.Error())
			continue
		}
		c.add(u.clone())
	}
	c.report.Loaded = len(c.records)
	c.report.Keys = len(c.keys)
	return c
}

func validate(u Unit) error {
	if strings.TrimSpace(u.Canonical) == "" {
		return errors.NewValidationError("canonical", u.Canonical, "canonical name is required")
	}
	return nil
}

func (c *Catalog) skip(logger *zerolog.Logger, index int, reason string) {
	c.report.Skipped = append(c.report.Skipped, SkippedRecord{Index: index, Reason: reason})
	logger.Warn().
		Int("index", index).
		Str("source", c.report.Source).
		Str("reason", reason).
		Msg("Skipping malformed unit record")
}

// add appends u and indexes its names. The first unit to claim a key keeps it.
func (c *Catalog) add(u Unit) {
	pos := len(c.records)
	c.records = append(c.records, u)
	for _, name := range u.Names() {
		key := Normalize(name)
		if key == "" {
			continue
		}
		if owner, exists := c.byKey[key]; exists {
			if owner != pos {
				c.report.Collisions = append(c.report.Collisions, Collision{
					Key:      name,
					Unit:     u.Canonical,
					Owner:    c.records[owner].Canonical,
					Position: pos,
				})
			}
			continue
		}
		c.byKey[key] = pos
		c.keys = append(c.keys, name)
	}
}

// Records returns a copy of the loaded units in dataset order.
func (c *Catalog) Records() []Unit {
	out := make([]Unit, len(c.records))
	for i, u := range c.records {
		out[i] = u.clone()
	}
	return out
}

// Keys returns the indexed names in their original case, in insertion order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Lookup finds the unit indexed under key after normalization.
func (c *Catalog) Lookup(key string) (Unit, bool) {
	pos, ok := c.byKey[Normalize(key)]
	if !ok {
		return Unit{}, false
	}
	return c.records[pos].clone(), true
}

// Get is like Lookup but returns a not-found error for unknown keys.
func (c *Catalog) Get(key string) (Unit, error) {
	u, ok := c.Lookup(key)
	if !ok {
		return Unit{}, errors.NewNotFoundError("unit", key)
	}
	return u, nil
}

// Len returns the number of loaded units.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Report returns the load report.
func (c *Catalog) Report() LoadReport {
	r := c.report
	r.Skipped = append([]SkippedRecord(nil), r.Skipped...)
	r.Collisions = append([]Collision(nil), r.Collisions...)
	return r
}

// Filter returns the units whose type equals typ, ignoring case.
// An empty typ returns every unit.
func (c *Catalog) Filter(typ string) []Unit {
	if strings.TrimSpace(typ) == "" {
		return c.Records()
	}
	want := Normalize(typ)
	var out []Unit
	for _, u := range c.records {
		if Normalize(u.Type) == want {
			out = append(out, u.clone())
		}
	}
	return out
}

// Types returns the distinct unit types in sorted order.
func (c *Catalog) Types() []string {
	seen := make(map[string]struct{})
	var types []string
	for _, u := range c.records {
		if u.Type == "" {
			continue
		}
		if _, ok := seen[u.Type]; ok {
			continue
		}
		seen[u.Type] = struct{}{}
		types = append(types, u.Type)
	}
	sort.Strings(types)
	return types
}
