// Package directory talks to the university staff directory: it turns a
// staff query into the directory's search parameters, fetches the result
// page and extracts staff cards from it.
//
// It also reads the directory's unit drop-down so the unit catalog can be
// refreshed offline.
package directory

import (
	"net/url"
	"strings"

	"github.com/agentstation/unitmap/pkg/constants"
	"github.com/agentstation/unitmap/pkg/resolver"
)

// Directory form field names.
const (
	FieldDivision   = "searchDiv"
	FieldDepartment = "searchDept"
	FieldName       = "searchName"
)

// Query is a staff search as a user states it.
type Query struct {
	Faculty    string `json:"faculty,omitempty" yaml:"faculty,omitempty"`
	Department string `json:"department,omitempty" yaml:"department,omitempty"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Expertise  string `json:"expertise,omitempty" yaml:"expertise,omitempty"`
}

// Params are the directory's search form values.
type Params struct {
	Division   string `json:"searchDiv" yaml:"searchDiv"`
	Department string `json:"searchDept" yaml:"searchDept"`
	Name       string `json:"searchName" yaml:"searchName"`
	Expertise  string `json:"searchExpertise" yaml:"searchExpertise"`
}

// Values encodes p the way the directory form submits it. The form has two
// fields both named searchName: staff name first, expertise second.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set(FieldDivision, p.Division)
	v.Set(FieldDepartment, p.Department)
	v.Add(FieldName, p.Name)
	v.Add(FieldName, p.Expertise)
	return v
}

// Encode returns the URL-encoded query string for p.
func (p Params) Encode() string {
	return p.Values().Encode()
}

// UnitResolver resolves a unit name. *resolver.Resolver satisfies it.
type UnitResolver interface {
	Resolve(query string) resolver.Result
}

// Resolution reports how the faculty in a Query was resolved.
// Faculty is nil when no resolution was attempted.
type Resolution struct {
	Faculty *resolver.Result `json:"faculty,omitempty" yaml:"faculty,omitempty"`
}

// ParamBuilder turns queries into directory parameters.
type ParamBuilder struct {
	resolver UnitResolver
}

// NewParamBuilder creates a builder that resolves faculties with r.
// A nil r passes faculty names through unchanged.
func NewParamBuilder(r UnitResolver) *ParamBuilder {
	return &ParamBuilder{resolver: r}
}

// Build resolves q.Faculty and fills in directory defaults.
//
// A resolved faculty is sent as its acronym, which is the directory's option
// value, or as its canonical name when it has none. An unresolved faculty is
// sent exactly as given.
func (b *ParamBuilder) Build(q Query) (Params, Resolution) {
	p := Params{
		Division:   constants.AllUnits,
		Department: orAll(q.Department),
		Name:       strings.TrimSpace(q.Name),
		Expertise:  strings.TrimSpace(q.Expertise),
	}

	faculty := strings.TrimSpace(q.Faculty)
	switch {
	case faculty == "" || strings.EqualFold(faculty, constants.AllUnits):
		return p, Resolution{}
	case b.resolver == nil:
		p.Division = q.Faculty
		return p, Resolution{}
	}

	res := b.resolver.Resolve(q.Faculty)
	switch {
	case !res.OK():
		p.Division = q.Faculty
	case res.Acronym != nil:
		p.Division = *res.Acronym
	default:
		p.Division = res.Canonical
	}
	return p, Resolution{Faculty: &res}
}

func orAll(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return constants.AllUnits
	}
	return s
}
