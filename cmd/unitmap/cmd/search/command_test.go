package search

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/unitmap"
	"github.com/agentstation/unitmap/internal/cmd/application"
	"github.com/agentstation/unitmap/pkg/directory"
	"github.com/agentstation/unitmap/pkg/errors"
	"github.com/agentstation/unitmap/pkg/units"
)

const page = `<table><tr><td><b>Dr. Tan Ah Kow</b><br><i>Professor</i>
<a href="mailto:tanak@utar.edu.my">tanak@utar.edu.my</a></td></tr></table>`

func run(t *testing.T, status int, format string, args ...string) (string, string, string, error) {
	t.Helper()
	var gotDiv atomic.Value
	gotDiv.Store("")
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDiv.Store(r.URL.Query().Get(directory.FieldDivision))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(page))
	}))
	defer upstream.Close()

	um, err := unitmap.New(
		unitmap.WithUnits(units.NewTestCatalog().Records()),
		unitmap.WithDirectoryClient(directory.NewClient(directory.WithBaseURL(upstream.URL))),
	)
	require.NoError(t, err)
	mock := &application.Mock{
		UnitmapFunc:      func() (unitmap.Unitmap, error) { return um, nil },
		OutputFormatFunc: func() string { return format },
	}

	root := &cobra.Command{Use: "unitmap"}
	root.AddGroup(&cobra.Group{ID: "core", Title: "Core"})
	root.AddCommand(NewCommand(mock))
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"search"}, args...))
	err = root.Execute()
	return out.String(), errOut.String(), gotDiv.Load().(string), err
}

func TestSearchResolvesFaculty(t *testing.T) {
	out, errOut, div, err := run(t, http.StatusOK, "table", "--faculty", "LKC FEC")
	require.NoError(t, err)

	assert.Equal(t, "LKC FES", div)
	assert.Contains(t, errOut, "resolved to Lee Kong Chian Faculty of Engineering and Science")
	assert.Contains(t, out, "Dr. Tan Ah Kow")
	assert.Contains(t, out, "tanak@utar.edu.my")
}

func TestSearchUnresolvedFacultyPassesThrough(t *testing.T) {
	_, errOut, div, err := run(t, http.StatusOK, "table", "--faculty", "zz")
	require.NoError(t, err)
	assert.Equal(t, "zz", div)
	assert.Contains(t, errOut, "not resolved")
}

func TestSearchJSON(t *testing.T) {
	out, _, div, err := run(t, http.StatusOK, "json")
	require.NoError(t, err)
	assert.Equal(t, "All", div)
	assert.Contains(t, out, `"searchDiv": "All"`)
	assert.Contains(t, out, `"name": "Dr. Tan Ah Kow"`)
}

func TestSearchUpstreamError(t *testing.T) {
	_, _, _, err := run(t, http.StatusServiceUnavailable, "table", "--faculty", "FICT")
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}
