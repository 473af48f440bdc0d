package partiality

import (
	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// Unity is the trivial partiality model: every reflection is assumed fully
// recorded. UpdatePartialities is a no-op, which in turn makes
// post-refinement a no-op under this model (invariant 3 in SPEC_FULL.md
// §8) — merging reduces to plain Monte-Carlo averaging across crystals.
type Unity struct{}

// Compute always returns p=1 and a unit Lorentz factor.
func (Unity) Compute(_ *crystal.Crystal, _ symmetry.HKL) Result {
	return Result{Partiality: 1, Lorentz: 1}
}

// UpdatePartialities does nothing and reports no change.
func (Unity) UpdatePartialities(_ *crystal.Crystal) UpdateResult {
	return UpdateResult{}
}
