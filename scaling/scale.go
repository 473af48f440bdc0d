package scaling

import (
	"math"
	"sort"

	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/numeric"
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// observation is one crystal's contribution to one merged reflection.
type observation struct {
	crystalIdx int
	handle     refl.Handle
	intensity  float64
	sigma      float64
	partiality float64
}

// Scale implements §4.7: it builds the merged, asymmetric-unit intensity
// list implied by crystals' current OSFs, then — unless opts.NoScale — it
// alternates a weighted least-squares solve of each crystal's log(OSF)
// against the current merged list with a recompute of the merged list
// against the updated OSFs, until the largest |delta log(OSF)| across
// crystals falls below opts.ConvergenceTol or opts.MaxIterations is spent.
//
// Crystals are scaled and merged asymmetric-unit reflections keyed by pg's
// representative; crystals' own lists are never folded in place — only the
// grouping below applies Asymmetric.
func Scale(crystals []*crystal.Crystal, pg *symmetry.PointGroup, opts Options) (*refl.ReflList, Report, error) {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultOptions().MaxIterations
	}
	if opts.ConvergenceTol <= 0 {
		opts.ConvergenceTol = DefaultOptions().ConvergenceTol
	}

	groups, order := groupByAsymmetric(crystals, pg, opts)
	if len(groups) == 0 {
		return nil, Report{}, ErrNoScalableObservations
	}

	logOSF := make([]float64, len(crystals))
	for i, c := range crystals {
		if opts.NoScale {
			continue // log(1.0): NoScale holds every OSF at 1.0
		}
		logOSF[i] = math.Log(c.OSF)
	}

	merged := recomputeMerged(groups, order, logOSF, opts.MinMeasurements)

	report := Report{ActiveCrystals: len(crystals)}
	for _, c := range crystals {
		if c.Status == crystal.SolverFailed {
			report.SolverFailedCrystals++
		}
	}
	for _, obs := range groups {
		report.ScalableObservations += len(obs)
	}

	if opts.NoScale {
		report.Converged = true
		applyOSF(crystals, logOSF)
		return merged, report, nil
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		report.Iterations = iter + 1

		newLogOSF, failed, err := solveLogOSF(groups, merged, order, logOSF, len(crystals))
		if err != nil {
			return nil, report, err
		}
		for _, ci := range failed {
			if crystals[ci].Status == crystal.OK {
				crystals[ci].Status = crystal.SolverFailed
			}
		}

		maxDelta := 0.0
		for i := range logOSF {
			d := math.Abs(newLogOSF[i] - logOSF[i])
			if d > maxDelta {
				maxDelta = d
			}
		}
		logOSF = newLogOSF
		report.MaxLogOSFDelta = maxDelta

		merged = recomputeMerged(groups, order, logOSF, opts.MinMeasurements)

		if maxDelta < opts.ConvergenceTol {
			report.Converged = true
			break
		}
	}

	applyOSF(crystals, logOSF)
	return merged, report, nil
}

// groupByAsymmetric partitions every crystal's scalable observations by the
// point group's asymmetric representative, marking each contributing
// reflection's Scalable flag along the way: an observation passes when its
// partiality is at least PMin and, if opts.Reference is set, its asymmetric
// index is present in the reference.
func groupByAsymmetric(crystals []*crystal.Crystal, pg *symmetry.PointGroup, opts Options) (map[symmetry.HKL][]observation, []symmetry.HKL) {
	groups := make(map[symmetry.HKL][]observation)

	for ci, c := range crystals {
		c.Refl.ForEach(func(h refl.Handle) {
			hh, kk, ll := c.Refl.HKL(h)
			p := c.Refl.Partiality(h)

			passes := p >= PMin
			if passes && opts.Reference != nil {
				a := symmetry.Asymmetric(pg, symmetry.HKL{H: hh, K: kk, L: ll})
				if _, ok := opts.Reference.Find(a.H, a.K, a.L); !ok {
					passes = false
				}
			}
			c.Refl.SetScalable(h, passes)
			if !passes {
				return
			}

			a := symmetry.Asymmetric(pg, symmetry.HKL{H: hh, K: kk, L: ll})
			groups[a] = append(groups[a], observation{
				crystalIdx: ci,
				handle:     h,
				intensity:  c.Refl.Intensity(h),
				sigma:      c.Refl.Sigma(h),
				partiality: p,
			})
		})
	}

	order := make([]symmetry.HKL, 0, len(groups))
	for k := range groups {
		order = append(order, k)
	}
	sort.Slice(order, func(i, j int) bool { return hklLess(order[i], order[j]) })

	return groups, order
}

func hklLess(a, b symmetry.HKL) bool {
	switch {
	case a.H != b.H:
		return a.H < b.H
	case a.K != b.K:
		return a.K < b.K
	default:
		return a.L < b.L
	}
}

// recomputeMerged recomputes the merged, asymmetric "full" intensity for
// every group under the current per-crystal log(OSF), dropping groups
// supported by fewer than minMeasurements crystals (§4.7 step 3).
// Per-reflection numerators and denominators are pairwise-summed in the
// fixed order groupByAsymmetric collected them (crystal order, then each
// crystal's list order), so repeated runs over the same crystals give
// bit-identical results (§5).
func recomputeMerged(groups map[symmetry.HKL][]observation, order []symmetry.HKL, logOSF []float64, minMeasurements int) *refl.ReflList {
	out := refl.NewReflList()

	for _, key := range order {
		obs := groups[key]
		if len(obs) < minMeasurements {
			continue
		}

		estimates := make([]float64, len(obs))
		weights := make([]float64, len(obs))
		num := make([]float64, len(obs))
		den := make([]float64, len(obs))

		for i, o := range obs {
			osf := math.Exp(logOSF[o.crystalIdx])
			scale := osf * o.partiality
			if scale <= 0 || o.sigma <= 0 {
				continue
			}
			est := o.intensity / scale
			w := (scale / o.sigma) * (scale / o.sigma)
			estimates[i] = est
			weights[i] = w
			num[i] = w * est
			den[i] = w
		}

		denSum := numeric.PairwiseSum(den)
		if denSum <= 0 {
			continue
		}
		numSum := numeric.PairwiseSum(num)
		mean := numSum / denSum

		h := out.Add(key.H, key.K, key.L)
		out.SetIntensity(h, mean)
		out.SetRedundancy(h, int32(len(obs)))
		out.SetSigma(h, pooledSigma(estimates, weights, mean, len(obs)))
	}

	return out
}

// pooledSigma returns the standard error of a group's weighted mean when
// redundancy > 1: the weighted standard deviation of the per-crystal
// intensity estimates, divided by sqrt(redundancy). It falls back to the
// single propagated sigma (1/sqrt(sum of weights)) when redundancy == 1.
func pooledSigma(estimates, weights []float64, mean float64, n int) float64 {
	if n <= 1 {
		w := numeric.PairwiseSum(weights)
		if w <= 0 {
			return 0
		}
		return 1 / math.Sqrt(w)
	}

	sqDiffs := make([]float64, len(estimates))
	for i := range estimates {
		d := estimates[i] - mean
		sqDiffs[i] = weights[i] * d * d
	}
	wSum := numeric.PairwiseSum(weights)
	if wSum <= 0 {
		return 0
	}
	variance := numeric.PairwiseSum(sqDiffs) / wSum
	return math.Sqrt(variance / float64(n))
}

// solveLogOSF refits each crystal's log(OSF) against the current merged
// list via a single-parameter weighted least squares regression
// log(I_obs) - log(p) - log(F) = log(OSF), solved per crystal (§4.7 step 2).
// A crystal with zero usable observations against the current merged list
// keeps its previous OSF and is flagged SolverFailed.
func solveLogOSF(groups map[symmetry.HKL][]observation, merged *refl.ReflList, order []symmetry.HKL, prevLogOSF []float64, nCrystals int) ([]float64, []int, error) {
	type accum struct {
		ys []float64
		ws []float64
	}
	perCrystal := make([]accum, nCrystals)

	for _, key := range order {
		fh, ok := merged.Find(key.H, key.K, key.L)
		if !ok {
			continue
		}
		fValue := merged.Intensity(fh)
		fSigma := merged.Sigma(fh)
		if fValue <= 0 {
			continue
		}

		for _, o := range groups[key] {
			if o.partiality <= 0 || o.intensity <= 0 || o.sigma <= 0 {
				continue
			}
			y := math.Log(o.intensity) - math.Log(o.partiality) - math.Log(fValue)
			sigmaRel := o.sigma / o.intensity
			if fSigma > 0 && fValue > 0 {
				sigmaRel = math.Hypot(sigmaRel, fSigma/fValue)
			}
			if sigmaRel <= 0 {
				continue
			}
			w := 1 / (sigmaRel * sigmaRel)

			perCrystal[o.crystalIdx].ys = append(perCrystal[o.crystalIdx].ys, y)
			perCrystal[o.crystalIdx].ws = append(perCrystal[o.crystalIdx].ws, w)
		}
	}

	result := make([]float64, nCrystals)
	copy(result, prevLogOSF)
	var failed []int
	for ci, acc := range perCrystal {
		if len(acc.ys) == 0 {
			failed = append(failed, ci)
			continue
		}
		wSum := numeric.PairwiseSum(acc.ws)
		if wSum <= 0 {
			failed = append(failed, ci)
			continue
		}
		wy := make([]float64, len(acc.ys))
		for i := range acc.ys {
			wy[i] = acc.ws[i] * acc.ys[i]
		}
		result[ci] = numeric.PairwiseSum(wy) / wSum
	}
	return result, failed, nil
}

// applyOSF writes back the solved log-scale factors as each crystal's OSF.
func applyOSF(crystals []*crystal.Crystal, logOSF []float64) {
	for i, c := range crystals {
		c.OSF = math.Exp(logOSF[i])
	}
}
