package refine

import (
	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// SelectRefinable marks every reflection on c that is fit to constrain a
// post-refinement solve: scalable (set by scaling.Scale), with I/sigma >= 3,
// and whose asymmetric-unit representative appears in merged with
// redundancy >= 2 (so the merged "full" value it would be fit against is
// itself supported by more than this one crystal) — unless referenceProvided
// is true, in which case presence in merged is enough and the redundancy
// floor is waived (§4.8: "with any redundancy when an external reference is
// provided"). Returns the number of reflections marked refinable.
func SelectRefinable(c *crystal.Crystal, merged *refl.ReflList, pg *symmetry.PointGroup, referenceProvided bool) int {
	count := 0

	c.Refl.ForEach(func(h refl.Handle) {
		ok := c.Refl.Scalable(h)

		if ok {
			sigma := c.Refl.Sigma(h)
			if sigma <= 0 || c.Refl.Intensity(h)/sigma < 3 {
				ok = false
			}
		}

		if ok {
			hh, kk, ll := c.Refl.HKL(h)
			a := symmetry.Asymmetric(pg, symmetry.HKL{H: hh, K: kk, L: ll})
			fh, found := merged.Find(a.H, a.K, a.L)
			if !found || (!referenceProvided && merged.Redundancy(fh) < 2) {
				ok = false
			}
		}

		c.Refl.SetRefinable(h, ok)
		if ok {
			count++
		}
	})

	return count
}
