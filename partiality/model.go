package partiality

import (
	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// Result is the per-reflection output of a Model's Compute.
type Result struct {
	Partiality float64 // p, in [0,1]
	Lorentz    float64 // > 0

	// ResidualFast/ResidualSlow are the predicted-minus-observed detector
	// position, in panel pixels. Detector geometry is an external
	// collaborator (§1 Non-goals); models that cannot project onto a
	// panel report a zero residual rather than guessing one.
	ResidualFast, ResidualSlow float64
}

// UpdateResult summarises one UpdatePartialities pass over a crystal's
// entire reflection list.
type UpdateResult struct {
	Gained        int     // now predicted, wasn't before
	Lost          int     // no longer predicted
	MeanAbsChange float64 // mean |delta p| over reflections present in both states
}

// Model is the partiality abstraction the rest of the pipeline depends on
// through this interface, never through a concrete type: a small virtual
// call per reflection is negligible next to the rest of the per-reflection
// work in scaling and post-refinement.
type Model interface {
	// Compute returns the partiality, Lorentz factor, and detector-position
	// residual for one Miller index under the crystal's current geometric
	// parameters.
	Compute(c *crystal.Crystal, m symmetry.HKL) Result

	// UpdatePartialities refreshes p (and Lorentz) for every reflection
	// already stored in c.Refl, in place, and reports how the set of
	// predicted reflections changed.
	UpdatePartialities(c *crystal.Crystal) UpdateResult
}
