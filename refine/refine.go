package refine

import (
	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/numeric"
	"github.com/xtalmerge/snapmerge/partiality"
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// Result summarises one crystal's post-refinement attempt.
type Result struct {
	CrystalID string
	Status    crystal.Status

	Refinable int
	partiality.UpdateResult

	// Params is the solved correction vector
	// [qx, qy, qz, strain, deltaProfileRadius, deltaDivergence], in the
	// same units and order PostRefine's residual function uses. Zero
	// value when the solver never ran.
	Params []float64
}

// observation is one refinable reflection snapshotted before the solve, so
// the residual closure never touches c.Refl's lock from inside LM's
// finite-difference loop.
type observation struct {
	hkl       symmetry.HKL
	intensity float64
	sigma     float64
	fValue    float64 // current merged "full" intensity at the asymmetric rep
}

// PostRefine refines c's orientation, isotropic cell strain, profile radius,
// and beam divergence against merged, using the reflections SelectRefinable
// most recently flagged. Model.UpdatePartialities is applied with the
// solved geometry once the solve completes, and c.Status is set to
// NoRefinement, SolverFailed, Lost, or OK accordingly (§4.8).
//
// PostRefine holds c.OSF fixed; scaling owns that parameter.
func PostRefine(c *crystal.Crystal, merged *refl.ReflList, pg *symmetry.PointGroup, model partiality.Model, opts Options) Result {
	obs, prevScalable := collectObservations(c, merged, pg)

	if len(obs) < opts.MinRefinable {
		c.Status = crystal.NoRefinement
		return Result{CrystalID: c.ID, Status: crystal.NoRefinement, Refinable: len(obs)}
	}

	baseCell := c.Cell
	baseBeam := c.Beam
	baseRadius := c.ProfileRadius

	residual := func(p []float64) []float64 {
		trial := *c
		trial.Cell = refinedCell(baseCell, p)
		trial.ProfileRadius = baseRadius + p[4]
		trial.Beam = baseBeam
		trial.Beam.DivergenceRad = baseBeam.DivergenceRad + p[5]

		r := make([]float64, len(obs))
		for i, o := range obs {
			pr := model.Compute(&trial, o.hkl)
			predicted := trial.OSF * pr.Partiality * o.fValue
			r[i] = (o.intensity - predicted) / o.sigma
		}
		return r
	}

	init := []float64{0, 0, 0, 0, 0, 0}
	initialCost := sumSquares(residual(init))
	lmResult := numeric.LevenbergMarquardt(residual, init, opts.LM)

	c.Cell = refinedCell(baseCell, lmResult.Params)
	c.ProfileRadius = baseRadius + lmResult.Params[4]
	c.Beam.DivergenceRad = baseBeam.DivergenceRad + lmResult.Params[5]

	upd := model.UpdatePartialities(c)

	// A solve that started essentially perfect (initialCost already near
	// zero) has nothing to improve; only flag SolverFailed when there was
	// real residual to reduce and the solver made no progress on it.
	const negligibleCost = 1e-12
	status := crystal.OK
	switch {
	case !lmResult.Improved && initialCost > negligibleCost:
		status = crystal.SolverFailed
	case prevScalable > 0 && float64(upd.Lost)/float64(prevScalable) > opts.LostFraction:
		status = crystal.Lost
	}
	c.Status = status

	return Result{
		CrystalID:    c.ID,
		Status:       status,
		Refinable:    len(obs),
		UpdateResult: upd,
		Params:       lmResult.Params,
	}
}

// collectObservations snapshots every refinable reflection on c against
// merged's current full intensities, and counts how many of c's
// reflections were scalable before this refinement pass (the denominator
// for the lost-fraction check).
func collectObservations(c *crystal.Crystal, merged *refl.ReflList, pg *symmetry.PointGroup) ([]observation, int) {
	var obs []observation
	prevScalable := 0

	c.Refl.ForEach(func(h refl.Handle) {
		if c.Refl.Scalable(h) {
			prevScalable++
		}
		if !c.Refl.Refinable(h) {
			return
		}

		hh, kk, ll := c.Refl.HKL(h)
		m := symmetry.HKL{H: hh, K: kk, L: ll}
		a := symmetry.Asymmetric(pg, m)
		fh, ok := merged.Find(a.H, a.K, a.L)
		if !ok {
			return
		}
		fValue := merged.Intensity(fh)
		if fValue <= 0 {
			return
		}

		sigma := c.Refl.Sigma(h)
		if sigma <= 0 {
			return
		}

		obs = append(obs, observation{
			hkl:       m,
			intensity: c.Refl.Intensity(h),
			sigma:     sigma,
			fValue:    fValue,
		})
	})

	return obs, prevScalable
}

// refinedCell applies p's small-angle orientation correction (qx,qy,qz) and
// isotropic strain (p[3]) to base, returning a new UnitCell. Axis vectors
// are scaled by hand rather than through a Vec3 method, since Vec3's
// arithmetic helpers are package-private to cell.
func refinedCell(base cell.UnitCell, p []float64) cell.UnitCell {
	q := cell.Quaternion{W: 1, X: p[0] / 2, Y: p[1] / 2, Z: p[2] / 2}.Normalized()
	rotated := base.Rotate(q)

	strain := 1 + p[3]
	a, b, c := rotated.Axes()
	strained, err := cell.FromAxes(scaleVec(a, strain), scaleVec(b, strain), scaleVec(c, strain))
	if err != nil {
		// A strain correction that degenerates the cell is never a
		// sane Gauss-Newton step; fall back to the unstrained rotation
		// so the residual function still returns a usable (if imperfect)
		// value and lets LM's cost check reject the step.
		return rotated
	}
	return strained
}

func scaleVec(v cell.Vec3, s float64) cell.Vec3 {
	return cell.Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s
}
