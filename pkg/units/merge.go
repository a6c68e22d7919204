package units

import (
	"strings"
)

// Unit types inferred from directory option labels.
const (
	TypeFaculty      = "Faculty"
	TypeInstitute    = "Institute"
	TypeCentre       = "Centre"
	TypeDivision     = "Administrative Division"
	TypeDepartment   = "Administrative Department"
	TypeOffice       = "Administrative Office"
	TypeLibrary      = "Library"
	TypeChancellery  = "Chancellery"
	TypeOrganisation = "Organisation Unit"
	TypeUnknown      = "Unknown"
)

// typeRules are checked in order; the first keyword found in a name wins.
var typeRules = []struct {
	keyword string
	typ     string
}{
	{"Faculty", TypeFaculty},
	{"Institute", TypeInstitute},
	{"Centre", TypeCentre},
	{"Division", TypeDivision},
	{"Department", TypeDepartment},
	{"Office", TypeOffice},
	{"Library", TypeLibrary},
	{"Chancellery", TypeChancellery},
}

// InferType guesses a unit type from its display name.
func InferType(name string) string {
	for _, rule := range typeRules {
		if strings.Contains(name, rule.keyword) {
			return rule.typ
		}
	}
	return TypeOrganisation
}

func isGenericType(t string) bool {
	return t == "" || t == TypeUnknown || t == TypeOrganisation
}

// MergeStats counts what Merge changed.
type MergeStats struct {
	Processed int `json:"processed" yaml:"processed"`
	Added     int `json:"added" yaml:"added"`
	Updated   int `json:"updated" yaml:"updated"`
}

// Merge folds incoming units into existing ones and returns the combined list.
//
// An incoming unit matches an existing one by canonical name, then by
// acronym, both compared case-insensitively. A match gains the incoming
// acronym if it had none, takes the incoming type if its own is generic, and
// gains the incoming canonical name and acronym as aliases. Unmatched units
// are appended. Neither input slice is modified.
func Merge(existing, incoming []Unit) ([]Unit, MergeStats) {
	out := make([]Unit, len(existing), len(existing)+len(incoming))
	index := make(map[string]int, 2*len(existing))
	for i, u := range existing {
		out[i] = u.clone()
		indexUnit(index, out[i], i)
	}

	stats := MergeStats{Processed: len(incoming)}
	for _, in := range incoming {
		pos, ok := index[strings.ToLower(in.Canonical)]
		if !ok && in.HasAcronym() {
			pos, ok = index[strings.ToLower(in.Acronym)]
		}
		if !ok {
			out = append(out, in.clone())
			indexUnit(index, in, len(out)-1)
			stats.Added++
			continue
		}

		match := &out[pos]
		if !match.HasAcronym() && in.HasAcronym() {
			match.Acronym = in.Acronym
			index[strings.ToLower(in.Acronym)] = pos
			stats.Updated++
		}
		if isGenericType(match.Type) && in.Type != "" {
			match.Type = in.Type
		}
		match.Aliases = appendMissing(match.Aliases, in.Canonical)
		if in.HasAcronym() {
			match.Aliases = appendMissing(match.Aliases, in.Acronym)
		}
	}
	return out, stats
}

func indexUnit(index map[string]int, u Unit, pos int) {
	if _, ok := index[strings.ToLower(u.Canonical)]; !ok {
		index[strings.ToLower(u.Canonical)] = pos
	}
	if u.HasAcronym() {
		if _, ok := index[strings.ToLower(u.Acronym)]; !ok {
			index[strings.ToLower(u.Acronym)] = pos
		}
	}
}

func appendMissing(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
