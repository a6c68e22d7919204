// Package units holds the organizational-unit catalog: the records loaded
// from a dataset and the exact-lookup index built over their names.
//
// A Catalog is built once and is read-only afterwards, so it is safe for
// concurrent use without locks.
package units

import (
	"strings"

	"golang.org/x/text/cases"
)

// NullAcronym is the placeholder some datasets store in place of a missing acronym.
const NullAcronym = "NULL"

// Unit is a single organizational unit.
type Unit struct {
	Canonical string   `json:"canonical" yaml:"canonical"`
	Acronym   string   `json:"acronym,omitempty" yaml:"acronym,omitempty"`
	Type      string   `json:"type,omitempty" yaml:"type,omitempty"`
	Parent    string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Aliases   []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// HasAcronym reports whether the unit carries a usable acronym.
// The empty string and the NULL placeholder (any case) count as absent.
func (u Unit) HasAcronym() bool {
	a := strings.TrimSpace(u.Acronym)
	return a != "" && !strings.EqualFold(a, NullAcronym)
}

// Names returns the unit's lookup strings in insertion order:
// canonical, acronym when present, then each alias.
func (u Unit) Names() []string {
	names := make([]string, 0, 2+len(u.Aliases))
	names = append(names, u.Canonical)
	if u.HasAcronym() {
		names = append(names, u.Acronym)
	}
	return append(names, u.Aliases...)
}

func (u Unit) clone() Unit {
	if u.Aliases != nil {
		u.Aliases = append([]string(nil), u.Aliases...)
	}
	return u
}

// Normalize returns the lookup key for s: surrounding whitespace trimmed,
// then Unicode case-folded.
func Normalize(s string) string {
	// A Caser is stateful and must not be shared between goroutines.
	return cases.Fold().String(strings.TrimSpace(s))
}
