package resolver

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/agentstation/unitmap/pkg/constants"
)

// Suggestion is an autocomplete candidate for a partially typed unit name.
type Suggestion struct {
	Key            string `json:"key" yaml:"key"`
	Canonical      string `json:"canonical" yaml:"canonical"`
	Acronym        string `json:"acronym,omitempty" yaml:"acronym,omitempty"`
	Type           string `json:"type,omitempty" yaml:"type,omitempty"`
	Score          int    `json:"score" yaml:"score"`
	MatchedIndexes []int  `json:"matched_indexes,omitempty" yaml:"matched_indexes,omitempty"`
}

// Suggest ranks catalog keys that contain prefix as a subsequence and returns
// at most limit suggestions, one per unit, best first. A limit of zero or less
// uses the default; limits above the maximum are clamped.
func (r *Resolver) Suggest(prefix string, limit int) []Suggestion {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil
	}
	switch {
	case limit <= 0:
		limit = constants.DefaultSuggestLimit
	case limit > constants.MaxSuggestLimit:
		limit = constants.MaxSuggestLimit
	}

	var out []Suggestion
	seen := make(map[string]struct{})
	for _, m := range fuzzy.Find(prefix, r.keys) {
		u, ok := r.index.Lookup(m.Str)
		if !ok {
			continue
		}
		if _, dup := seen[u.Canonical]; dup {
			continue
		}
		seen[u.Canonical] = struct{}{}

		s := Suggestion{
			Key:            m.Str,
			Canonical:      u.Canonical,
			Type:           u.Type,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
		if u.HasAcronym() {
			s.Acronym = u.Acronym
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
