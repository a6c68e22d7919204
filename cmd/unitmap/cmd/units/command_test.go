package units

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/unitmap"
	"github.com/agentstation/unitmap/internal/cmd/application"
	catalog "github.com/agentstation/unitmap/pkg/units"
)

func run(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	um, err := unitmap.New(unitmap.WithUnits(catalog.NewTestCatalog().Records()))
	require.NoError(t, err)
	mock := &application.Mock{
		UnitmapFunc:      func() (unitmap.Unitmap, error) { return um, nil },
		OutputFormatFunc: func() string { return format },
	}

	root := &cobra.Command{Use: "unitmap"}
	root.AddGroup(&cobra.Group{ID: "core", Title: "Core"})
	root.AddCommand(NewCommand(mock))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"units"}, args...))
	err = root.Execute()
	return out.String(), err
}

func TestUnitsFilterByType(t *testing.T) {
	out, err := run(t, "json", "--type", "faculty")
	require.NoError(t, err)

	var records []catalog.Unit
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, catalog.TypeFaculty, r.Type)
	}
}

func TestUnitsMatchPattern(t *testing.T) {
	out, err := run(t, "json", "--match", "^(CCR|FICT)$")
	require.NoError(t, err)

	var records []catalog.Unit
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "CCR", records[0].Acronym)
	assert.Equal(t, "FICT", records[1].Acronym)

	_, err = run(t, "json", "--match", "[oops")
	assert.Error(t, err)
}

func TestUnitsUnknownType(t *testing.T) {
	_, err := run(t, "json", "--type", "Spaceport")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "known types")
}

func TestUnitsTypes(t *testing.T) {
	out, err := run(t, "table", "--types")
	require.NoError(t, err)
	assert.Contains(t, out, catalog.TypeCentre)
	assert.Contains(t, out, catalog.TypeDivision)
}

func TestUnitsTable(t *testing.T) {
	out, err := run(t, "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Centre for Cancer Research")
	assert.Contains(t, out, "LKC FES")
}
