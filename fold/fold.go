package fold

import (
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// ToAsymmetric builds a new ReflList keyed by the point group's asymmetric
// representative of each reflection in src. Multiple observations that fold
// onto the same representative (symmetry mates measured by the same
// crystal) collapse into one entry: intensity and sigma become the running
// mean across contributors weighted by each one's redundancy (an entry with
// redundancy 0 counts as one observation), and redundancy is the sum of
// those weights.
//
// Idempotent: folding an already-asymmetric list under the same point group
// returns a list with the same entries and values — every key already maps
// to itself (invariant 4 in SPEC_FULL.md §8).
func ToAsymmetric(src *refl.ReflList, pg *symmetry.PointGroup) *refl.ReflList {
	out := refl.NewReflList()

	src.ForEach(func(srcH refl.Handle) {
		h, k, l := src.HKL(srcH)
		a := symmetry.Asymmetric(pg, symmetry.HKL{H: h, K: k, L: l})

		dstH := out.Add(a.H, a.K, a.L)
		n := out.Redundancy(dstH)
		w := src.Redundancy(srcH)
		if w < 1 {
			w = 1
		}

		srcI, srcSigma := src.Intensity(srcH), src.Sigma(srcH)
		if n == 0 {
			out.SetIntensity(dstH, srcI)
			out.SetSigma(dstH, srcSigma)
			out.SetPartiality(dstH, src.Partiality(srcH))
			out.SetLorentz(dstH, src.Lorentz(srcH))
			out.SetPosition(dstH, src.Position(srcH))
			out.SetScalable(dstH, src.Scalable(srcH))
			out.SetRefinable(dstH, src.Refinable(srcH))
		} else {
			fn, fw := float64(n), float64(w)
			out.SetIntensity(dstH, (out.Intensity(dstH)*fn+srcI*fw)/(fn+fw))
			out.SetSigma(dstH, (out.Sigma(dstH)*fn+srcSigma*fw)/(fn+fw))
		}
		out.SetRedundancy(dstH, n+w)
	})

	return out
}
