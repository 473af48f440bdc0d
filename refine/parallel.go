package refine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/partiality"
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// ParallelRefine runs SelectRefinable then PostRefine for every crystal in
// crystals concurrently, bounded by GOMAXPROCS workers — the only stage of
// the merge pipeline that parallelises (§5). Crystal failures (NoRefinement,
// SolverFailed, Lost) are reported per-crystal in the returned slice and are
// never fatal; the returned error is non-nil only if ctx is cancelled.
//
// Each crystal's own Refl tree carries its own lock, so concurrent
// PostRefine calls on distinct crystals never contend; merged is read-only
// for the duration of this call.
func ParallelRefine(ctx context.Context, crystals []*crystal.Crystal, merged *refl.ReflList, pg *symmetry.PointGroup, model partiality.Model, opts Options) ([]Result, error) {
	results := make([]Result, len(crystals))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, c := range crystals {
		i, c := i, c
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			SelectRefinable(c, merged, pg, opts.ReferenceProvided)
			results[i] = PostRefine(c, merged, pg, model, opts)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
