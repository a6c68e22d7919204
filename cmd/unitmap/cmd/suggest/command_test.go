package suggest

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/unitmap"
	"github.com/agentstation/unitmap/internal/cmd/application"
	"github.com/agentstation/unitmap/pkg/resolver"
	"github.com/agentstation/unitmap/pkg/units"
)

func run(t *testing.T, args ...string) (string, error) {
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
	root.SetArgs(append([]string{"suggest"}, args...))
	err = root.Execute()
	return out.String(), err
}

func TestSuggest(t *testing.T) {
	out, err := run(t, "FIC")
	require.NoError(t, err)

	var got []resolver.Suggestion
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got)
	assert.Equal(t, "Faculty of Information and Communication Technology", got[0].Canonical)
}

func TestSuggestLimit(t *testing.T) {
	out, err := run(t, "c", "--limit", "1")
	require.NoError(t, err)

	var got []resolver.Suggestion
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 1)
}

func TestSuggestRequiresPrefix(t *testing.T) {
	_, err := run(t)
	assert.Error(t, err)
}
