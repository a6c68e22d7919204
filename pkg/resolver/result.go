package resolver

import (
	"github.com/agentstation/unitmap/internal/utils/ptr"
	"github.com/agentstation/unitmap/pkg/units"
)

// Method names the cascade step that produced a result.
type Method string

// Resolution methods.
const (
	MethodExact      Method = "exact"
	MethodSimilarity Method = "similarity"
	MethodSubstring  Method = "substring"
	MethodNone       Method = "none"
)

// Messages carried by unresolved results.
const (
	DetailEmptyQuery = "empty query"
	NoConfidentMatch = "no confident match found"
)

// Result is the outcome of resolving one query.
//
// A confident match carries the unit's canonical name, acronym and type.
// Otherwise Canonical echoes the original query unchanged and Error is set,
// so callers can fall back to the raw input.
type Result struct {
	Canonical string  `json:"canonical" yaml:"canonical"`
	Acronym   *string `json:"acronym" yaml:"acronym"`
	Type      *string `json:"type" yaml:"type"`
	Detail    string  `json:"detail,omitempty" yaml:"detail,omitempty"`
	Error     string  `json:"error,omitempty" yaml:"error,omitempty"`
	Method    Method  `json:"method" yaml:"method"`
	Score     int     `json:"score,omitempty" yaml:"score,omitempty"`
	Key       string  `json:"key,omitempty" yaml:"key,omitempty"`
}

// OK reports whether the result is a confident match.
func (r Result) OK() bool {
	return r.Method != MethodNone && r.Error == "" && r.Canonical != ""
}

func matched(u units.Unit, method Method, key string, score int) Result {
	res := Result{
		Canonical: u.Canonical,
		Method:    method,
		Key:       key,
		Score:     score,
	}
	if u.HasAcronym() {
		res.Acronym = ptr.String(u.Acronym)
	}
	if u.Type != "" {
		res.Type = ptr.String(u.Type)
	}
	return res
}

func emptyQuery() Result {
	return Result{Detail: DetailEmptyQuery, Method: MethodNone}
}

func noMatch(query string) Result {
	return Result{Canonical: query, Error: NoConfidentMatch, Method: MethodNone}
}
