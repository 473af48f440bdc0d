package partiality

import (
	"math"

	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// Sphere is the closed-form Ewald sphere-shell partiality model: a
// reflection's reciprocal-lattice point is modelled as a ball of radius
// equal to the crystal's profile radius; the Ewald sphere is smeared by
// mosaicity and bandwidth into a shell. Partiality is the fraction of the
// ball's volume that falls inside the shell (the functional form pinned in
// SPEC_FULL.md §4, resolving the spec's open question on ball vs Gaussian
// vs Lorentzian profile shape).
type Sphere struct{}

// Compute returns the ball/shell volume-fraction partiality for m under c's
// current profile radius, mosaicity, bandwidth, and beam divergence.
func (Sphere) Compute(c *crystal.Crystal, m symmetry.HKL) Result {
	r := c.Cell.Resolution(m.H, m.K, m.L)
	p := sphereShellFraction(r, c.ProfileRadius, c.Beam.WavelengthM, c.Mosaicity, c.Beam.Bandwidth, c.Beam.DivergenceRad)
	lorentz := lorentzFactor(r, c.Beam.WavelengthM)
	return Result{Partiality: p, Lorentz: lorentz}
}

// UpdatePartialities recomputes p for every reflection currently stored on
// c, in place, and reports the resulting gain/loss/mean-change counters
// (§4.6).
func (Sphere) UpdatePartialities(c *crystal.Crystal) UpdateResult {
	const minPredicted = 1e-6

	var gained, lost, nBoth int
	var sumAbsChange float64

	c.Refl.ForEach(func(h refl.Handle) {
		hh, kk, ll := c.Refl.HKL(h)
		before := c.Refl.Partiality(h)
		after := (Sphere{}).Compute(c, symmetry.HKL{H: hh, K: kk, L: ll}).Partiality

		wasPredicted := before >= minPredicted
		isPredicted := after >= minPredicted
		switch {
		case isPredicted && !wasPredicted:
			gained++
		case wasPredicted && !isPredicted:
			lost++
		case wasPredicted && isPredicted:
			nBoth++
			sumAbsChange += math.Abs(after - before)
		}

		c.Refl.SetPartiality(h, after)
	})

	return UpdateResult{Gained: gained, Lost: lost, MeanAbsChange: meanOrZero(sumAbsChange, nBoth)}
}

func meanOrZero(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// sphereShellFraction returns the fraction of a ball of radius ballR,
// centred at reciprocal-space radius r from the origin, that lies within
// the Ewald shell [k-dk, k+dk], k=1/lambda, dk = k*(mosaicity + bandwidth/2
// + divergence/2) — mosaicity, chromatic spread, and beam divergence all
// broaden the shell the same way.
func sphereShellFraction(r, ballR, wavelengthM, mosaicity, bandwidth, divergence float64) float64 {
	if ballR <= 0 || wavelengthM <= 0 {
		return 0
	}
	k := 1 / wavelengthM
	dk := k * (mosaicity + bandwidth/2 + divergence/2)
	inner, outer := k-dk, k+dk
	if inner < 0 {
		inner = 0
	}

	ballVolume := 4.0 / 3.0 * math.Pi * ballR * ballR * ballR
	vOuter := sphereIntersectionVolume(r, ballR, outer)
	vInner := sphereIntersectionVolume(r, ballR, inner)
	shellVolume := vOuter - vInner
	if shellVolume < 0 {
		shellVolume = 0
	}
	if shellVolume > ballVolume {
		shellVolume = ballVolume
	}
	return shellVolume / ballVolume
}

// sphereIntersectionVolume returns the volume of intersection of two balls
// of radii r1 and r2 whose centres are separated by distance d — the
// classic "spherical lens" formula.
func sphereIntersectionVolume(d, r1, r2 float64) float64 {
	switch {
	case d >= r1+r2:
		return 0
	case d <= math.Abs(r1-r2):
		small := math.Min(r1, r2)
		return 4.0 / 3.0 * math.Pi * small * small * small
	default:
		return math.Pi * (r1 + r2 - d) * (r1 + r2 - d) *
			(d*d + 2*d*r2 - 3*r2*r2 + 2*d*r1 + 6*r1*r2 - 3*r1*r1) / (12 * d)
	}
}

// lorentzFactor returns the standard Lorentz factor 1/sin(2theta) for a
// reflection at resolution r under wavelength lambda.
func lorentzFactor(r, wavelengthM float64) float64 {
	sinTheta := r * wavelengthM / 2
	if sinTheta > 1 {
		sinTheta = 1
	}
	theta := math.Asin(sinTheta)
	sin2theta := math.Sin(2 * theta)
	if sin2theta < 1e-6 {
		return 1
	}
	return 1 / sin2theta
}
