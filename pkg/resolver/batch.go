package resolver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/unitmap/pkg/constants"
)

// ResolveAll resolves queries concurrently with at most workers goroutines.
// Results are returned in query order. The only possible error is
// cancellation of ctx, in which case no results are returned.
func (r *Resolver) ResolveAll(ctx context.Context, queries []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = constants.DefaultBatchWorkers
	}

	results := make([]Result, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.Resolve(q)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resolve batch: %w", err)
	}
	return results, nil
}
