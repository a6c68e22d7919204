// Package resolver maps free-form unit names onto catalog units.
//
// Resolve runs a fixed cascade and returns the first step that succeeds:
//
//  1. exact lookup of the normalized query
//  2. similarity ranking of every catalog key, accepted above a threshold
//  3. substring containment between normalized query and key
//
// When nothing matches the query is passed through unchanged with an error
// message, so callers can still use the raw input.
package resolver

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/agentstation/unitmap/pkg/units"
)

// Defaults for the cascade tuning knobs.
const (
	// DefaultThreshold is the similarity score a match must exceed.
	DefaultThreshold = 50
	// DefaultMinSubstringLength is the query length, in runes, a substring
	// match must exceed.
	DefaultMinSubstringLength = 3
)

// Index is the read-only view of a catalog the resolver needs.
type Index interface {
	Keys() []string
	Lookup(key string) (units.Unit, bool)
}

// Resolver resolves queries against an Index. It is immutable after New and
// safe for concurrent use.
type Resolver struct {
	index      Index
	keys       []string
	normalized []string

	scorer       Scorer
	threshold    int
	minSubstring int
	logger       *zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithScorer sets the similarity scorer. A nil scorer disables similarity ranking.
func WithScorer(s Scorer) Option {
	return func(r *Resolver) {
		if s == nil {
			s = NullScorer{}
		}
		r.scorer = s
	}
}

// WithThreshold sets the score a similarity match must exceed.
func WithThreshold(threshold int) Option {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// WithMinSubstringLength sets the query length a substring match must exceed.
func WithMinSubstringLength(n int) Option {
	return func(r *Resolver) {
		r.minSubstring = n
	}
}

// WithLogger sets the logger used for per-query debug output.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a resolver over index. The key list is captured once; the
// index must not change afterwards.
func New(index Index, opts ...Option) *Resolver {
	nop := zerolog.Nop()
	r := &Resolver{
		index:        index,
		scorer:       TokenSortScorer{},
		threshold:    DefaultThreshold,
		minSubstring: DefaultMinSubstringLength,
		logger:       &nop,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.keys = index.Keys()
	r.normalized = make([]string, len(r.keys))
	for i, k := range r.keys {
		r.normalized[i] = units.Normalize(k)
	}
	return r
}

// Threshold returns the similarity acceptance threshold.
func (r *Resolver) Threshold() int { return r.threshold }

// MinSubstringLength returns the substring length floor.
func (r *Resolver) MinSubstringLength() int { return r.minSubstring }

// Scorer returns the configured similarity scorer.
func (r *Resolver) Scorer() Scorer { return r.scorer }

// Resolve maps query onto a catalog unit. It never fails: an unresolvable
// query comes back as a pass-through result with Error set.
func (r *Resolver) Resolve(query string) Result {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return emptyQuery()
	}

	if u, ok := r.index.Lookup(trimmed); ok {
		r.logger.Debug().Str("query", query).Str("unit", u.Canonical).Msg("Exact match")
		return matched(u, MethodExact, trimmed, 0)
	}

	if res, ok := r.bySimilarity(trimmed); ok {
		return res
	}

	if res, ok := r.bySubstring(trimmed); ok {
		return res
	}

	r.logger.Debug().Str("query", query).Msg("No confident match")
	return noMatch(query)
}

func (r *Resolver) bySimilarity(query string) (Result, bool) {
	m, ok := r.scorer.ExtractOne(query, r.keys)
	if !ok {
		return Result{}, false
	}
	if m.Score <= r.threshold {
		r.logger.Debug().
			Str("query", query).
			Str("key", m.Choice).
			Int("score", m.Score).
			Int("threshold", r.threshold).
			Msg("Best similarity below threshold")
		return Result{}, false
	}
	u, ok := r.index.Lookup(m.Choice)
	if !ok {
		return Result{}, false
	}
	r.logger.Debug().Str("query", query).Str("key", m.Choice).Int("score", m.Score).Msg("Similarity match")
	return matched(u, MethodSimilarity, m.Choice, m.Score), true
}

func (r *Resolver) bySubstring(query string) (Result, bool) {
	if utf8.RuneCountInString(query) <= r.minSubstring {
		return Result{}, false
	}
	nq := units.Normalize(query)
	for i, nk := range r.normalized {
		if !strings.Contains(nk, nq) && !strings.Contains(nq, nk) {
			continue
		}
		u, ok := r.index.Lookup(r.keys[i])
		if !ok {
			continue
		}
		r.logger.Debug().Str("query", query).Str("key", r.keys[i]).Msg("Substring match")
		return matched(u, MethodSubstring, r.keys[i], 0), true
	}
	return Result{}, false
}
