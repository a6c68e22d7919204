package unitmap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/unitmap/pkg/directory"
	"github.com/agentstation/unitmap/pkg/errors"
	"github.com/agentstation/unitmap/pkg/resolver"
	"github.com/agentstation/unitmap/pkg/units"
)

func TestNewUsesEmbeddedDataset(t *testing.T) {
	um, err := New()
	require.NoError(t, err)

	assert.Greater(t, um.Catalog().Len(), 20)
	res := um.Resolve("CCR")
	assert.Equal(t, "Centre for Cancer Research", res.Canonical)
	assert.Equal(t, resolver.MethodExact, res.Method)
}

func TestNewWithDatasetPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- canonical: Library\n  acronym: LIB\n"), 0o644))

	um, err := New(WithDatasetPath(path))
	require.NoError(t, err)
	assert.Equal(t, 1, um.Catalog().Len())
	assert.Equal(t, "Library", um.Resolve("lib").Canonical)
}

func TestNewMissingDataset(t *testing.T) {
	_, err := New(WithDatasetPath(filepath.Join(t.TempDir(), "missing.json")))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestNewWithDatasetFS(t *testing.T) {
	fsys := fstest.MapFS{"units.json": {Data: []byte(`[{"canonical": "Division of Finance", "aliases": ["Finance"]}]`)}}

	um, err := New(WithDatasetFS(fsys, "units.json"))
	require.NoError(t, err)
	assert.Equal(t, "Division of Finance", um.Resolve("finance").Canonical)
}

func TestNewOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty dataset path", WithDatasetPath("")},
		{"nil dataset fs", WithDatasetFS(nil, "units.json")},
		{"threshold too high", WithThreshold(101)},
		{"negative threshold", WithThreshold(-1)},
		{"negative substring length", WithMinSubstringLength(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestResolverTuning(t *testing.T) {
	um, err := New(
		WithUnits([]units.Unit{{Canonical: "Library Services"}}),
		WithScorer(resolver.NullScorer{}),
		WithThreshold(70),
		WithMinSubstringLength(2),
	)
	require.NoError(t, err)

	r := um.Resolver()
	assert.Equal(t, 70, r.Threshold())
	assert.Equal(t, 2, r.MinSubstringLength())
	assert.Equal(t, resolver.ScorerNull, r.Scorer().Name())
	assert.Equal(t, resolver.MethodSubstring, um.Resolve("lib").Method)
}

func TestSuggest(t *testing.T) {
	um, err := New(WithUnits(units.NewTestCatalog().Records()))
	require.NoError(t, err)

	got := um.Suggest("FICT", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "FICT", got[0].Acronym)
}

func TestSearchStaff(t *testing.T) {
	var gotDiv string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDiv = r.URL.Query().Get("searchDiv")
		_, _ = w.Write([]byte(`<table><tr><td><b>Dr. Tan</b><i>Lecturer</i><a href="mailto:tan@utar.edu.my">tan@utar.edu.my</a></td></tr></table>`))
	}))
	defer srv.Close()

	um, err := New(
		WithUnits(units.NewTestCatalog().Records()),
		WithDirectoryClient(directory.NewClient(directory.WithBaseURL(srv.URL))),
	)
	require.NoError(t, err)

	got, err := um.SearchStaff(context.Background(), directory.Query{Faculty: "LKC FEC", Name: "Tan"})
	require.NoError(t, err)

	assert.Equal(t, "LKC FES", gotDiv)
	assert.Equal(t, "LKC FES", got.Params.Division)
	require.NotNil(t, got.Resolution.Faculty)
	assert.Equal(t, resolver.MethodSimilarity, got.Resolution.Faculty.Method)
	require.Len(t, got.Staff, 1)
	assert.Equal(t, "tan@utar.edu.my", got.Staff[0].Email)
}

func TestStaffParamsAndSearchDirectory(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`<table><tr><td><b>Dr. Lim</b><i>Lecturer</i><a href="mailto:lim@utar.edu.my">lim@utar.edu.my</a></td></tr></table>`))
	}))
	defer srv.Close()

	um, err := New(
		WithUnits(units.NewTestCatalog().Records()),
		WithDirectoryClient(directory.NewClient(directory.WithBaseURL(srv.URL))),
	)
	require.NoError(t, err)

	q := directory.Query{Faculty: "FICT", Name: "Lim"}
	params, resolution := um.StaffParams(q)
	assert.Equal(t, "FICT", params.Division)
	require.NotNil(t, resolution.Faculty)
	assert.Equal(t, resolver.MethodExact, resolution.Faculty.Method)
	assert.Zero(t, hits, "building params does not call the directory")

	result, err := um.SearchDirectory(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	got := NewStaffSearch(q, params, resolution, result)
	assert.Equal(t, q, got.Query)
	assert.Equal(t, params, got.Params)
	require.Len(t, got.Staff, 1)
	assert.Equal(t, "Dr. Lim", got.Staff[0].Name)
}

func TestSearchStaffUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	um, err := New(WithDirectoryClient(directory.NewClient(directory.WithBaseURL(srv.URL))))
	require.NoError(t, err)

	_, err = um.SearchStaff(context.Background(), directory.Query{})
	assert.True(t, errors.IsUnavailable(err))
}
