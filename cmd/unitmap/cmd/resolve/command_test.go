package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/unitmap"
	"github.com/agentstation/unitmap/internal/cmd/application"
	"github.com/agentstation/unitmap/pkg/units"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	um, err := unitmap.New(unitmap.WithUnits(units.NewTestCatalog().Records()))
	require.NoError(t, err)

	mock := &application.Mock{
		UnitmapFunc:      func() (unitmap.Unitmap, error) { return um, nil },
		OutputFormatFunc: func() string { return "json" },
	}

	root := &cobra.Command{Use: "unitmap"}
	root.AddGroup(&cobra.Group{ID: "core", Title: "Core"})
	root.AddCommand(NewCommand(mock))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"resolve"}, args...))
	err = root.ExecuteContext(context.Background())
	return out.String(), err
}

type item struct {
	Query  string `json:"query"`
	Result struct {
		Canonical string `json:"canonical"`
		Method    string `json:"method"`
		Error     string `json:"error"`
	} `json:"result"`
}

func decode(t *testing.T, out string) []item {
	t.Helper()
	var items []item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	return items
}

func TestResolveJoinsArgs(t *testing.T) {
	out, err := run(t, "", "cancer", "researc")
	require.NoError(t, err)

	items := decode(t, out)
	require.Len(t, items, 1)
	assert.Equal(t, "cancer researc", items[0].Query)
	assert.Equal(t, "Centre for Cancer Research", items[0].Result.Canonical)
	assert.Equal(t, "similarity", items[0].Result.Method)
}

func TestResolveFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.txt")
	require.NoError(t, os.WriteFile(path, []byte("CCR\n\n  FICT  \nnothing like it\n"), 0o644))

	out, err := run(t, "", "--file", path)
	require.NoError(t, err)

	items := decode(t, out)
	require.Len(t, items, 3)
	assert.Equal(t, "exact", items[0].Result.Method)
	assert.Equal(t, "FICT", items[1].Query)
	assert.Equal(t, "none", items[2].Result.Method)
	assert.Equal(t, "nothing like it", items[2].Result.Canonical)
}

func TestResolveFromStdin(t *testing.T) {
	out, err := run(t, "CCR\nHuman Resource\n", "--file", "-")
	require.NoError(t, err)

	items := decode(t, out)
	require.Len(t, items, 2)
	assert.Equal(t, "Division of Human Resource", items[1].Result.Canonical)
}

func TestResolveArgumentErrors(t *testing.T) {
	_, err := run(t, "")
	assert.Error(t, err)

	_, err = run(t, "", "CCR", "--file", "x.txt")
	assert.Error(t, err)
}
