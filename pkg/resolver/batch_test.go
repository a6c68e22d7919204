package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/unitmap/pkg/units"
)

func TestResolveAllPreservesOrder(t *testing.T) {
	r := New(units.NewTestCatalog())

	queries := make([]string, 0, 40)
	for i := 0; i < 10; i++ {
		queries = append(queries, "CCR", "LKC FEC", "", fmt.Sprintf("unknown %d", i))
	}

	got, err := r.ResolveAll(context.Background(), queries, 3)
	require.NoError(t, err)

	want := make([]Result, len(queries))
	for i, q := range queries {
		want[i] = r.Resolve(q)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveAllDefaultsWorkers(t *testing.T) {
	r := New(units.NewTestCatalog())
	got, err := r.ResolveAll(context.Background(), []string{"fict"}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Faculty of Information and Communication Technology", got[0].Canonical)
}

func TestResolveAllCanceled(t *testing.T) {
	r := New(units.NewTestCatalog())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := r.ResolveAll(ctx, []string{"CCR", "FICT"}, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestResolveAllEmpty(t *testing.T) {
	got, err := New(units.NewTestCatalog()).ResolveAll(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}
