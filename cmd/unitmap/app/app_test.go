package app

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/unitmap"
	"github.com/agentstation/unitmap/pkg/units"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	um, err := unitmap.New(unitmap.WithUnits(units.NewTestCatalog().Records()))
	require.NoError(t, err)
	nop := zerolog.Nop()

	a, err := New("v1.2.3", "abc123", "2026-01-01", "test", WithUnitmap(um), WithLogger(&nop))
	require.NoError(t, err)
	return a
}

func execute(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAppAccessors(t *testing.T) {
	a := newTestApp(t)
	assert.Equal(t, "v1.2.3", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2026-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Config())

	um1, err := a.Unitmap()
	require.NoError(t, err)
	um2, err := a.Unitmap()
	require.NoError(t, err)
	assert.Same(t, um1, um2)
}

func TestAppBuildsUnitmapFromConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	a, err := New("dev", "", "", "")
	require.NoError(t, err)

	um, err := a.Unitmap()
	require.NoError(t, err)
	assert.Positive(t, um.Catalog().Len(), "embedded dataset is used by default")
	assert.Equal(t, a.Config().Threshold, um.Resolver().Threshold())
}

func TestAppUnitmapBadDataset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	a, err := New("dev", "", "", "")
	require.NoError(t, err)
	a.Config().Dataset = "/does/not/exist.json"

	_, err = a.Unitmap()
	assert.Error(t, err)
}

func TestExecuteResolve(t *testing.T) {
	a := newTestApp(t)
	out, err := execute(t, a, "resolve", "-o", "json", "LKC", "FEC")
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	result := items[0]["result"].(map[string]any)
	assert.Equal(t, "Lee Kong Chian Faculty of Engineering and Science", result["canonical"])
	assert.EqualValues(t, 86, result["score"])
}

func TestExecuteRejectsBadFormat(t *testing.T) {
	a := newTestApp(t)
	_, err := execute(t, a, "units", "-o", "xml")
	assert.Error(t, err)
}

func TestExecuteVersion(t *testing.T) {
	a := newTestApp(t)
	out, err := execute(t, a, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "unitmap v1.2.3")
	assert.Contains(t, out, "commit:   abc123")
}

func TestShutdownDropsInstance(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Shutdown(context.Background()))
	a.mu.RLock()
	defer a.mu.RUnlock()
	assert.Nil(t, a.unitmap)
}
