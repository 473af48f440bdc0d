package merge

import (
	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/scaling"
)

// WarningCounts tallies the numerical-warning classes §7 calls out as
// recoverable but worth surfacing every cycle: rare negative intensities,
// very low partialities, and crystals with too few refinable reflections
// to attempt a post-refinement solve. Matches partialator.c's running
// n_neg / n_low_frac counters.
type WarningCounts struct {
	NegativeIntensity int
	LowPartiality     int
	TooFewRefinable   int
}

// IterationReport summarises one merge iteration: the scaling report plus
// the warning counters accumulated while scanning that iteration's
// crystals.
type IterationReport struct {
	Iteration int
	Scaling   scaling.Report
	Warnings  WarningCounts
}

// scanWarnings counts negative-intensity and very-low-partiality
// observations across every crystal's reflection list.
func scanWarnings(crystals []*crystal.Crystal) (negIntensity, lowPartiality int) {
	for _, c := range crystals {
		c.Refl.ForEach(func(h refl.Handle) {
			if c.Refl.Intensity(h) < 0 {
				negIntensity++
			}
			if c.Refl.Partiality(h) < scaling.PMin {
				lowPartiality++
			}
		})
	}
	return negIntensity, lowPartiality
}
