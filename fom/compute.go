package fom

import (
	"errors"
	"math"

	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// ErrPointGroupRequired is returned by Compute when kind is anomalous and pg
// is nil.
var ErrPointGroupRequired = errors.New("fom: anomalous figure of merit requires a point group")

// Result holds one Compute call's per-shell and overall value.
type Result struct {
	Kind     Kind
	Shells   []Shell
	PerShell []float64
	Overall  float64
}

// shellSums accumulates every raw sum Compute might need for one shell; only
// the fields relevant to the requested Kind are populated.
type shellSums struct {
	n int

	sumAbsDiff, sumI1       float64 // R1I; sumAbsDiff is also Rsplit's numerator
	sumSqrtAbsDiff, sumSqrtI1 float64 // R1F
	sumSqDiff, sumSqI1      float64 // R2
	sumIPlus                float64 // Rsplit denominator: sum(I1+I2)

	sumX, sumY, sumXY, sumX2, sumY2 float64 // CC / CCano Pearson sums

	sumAbsMeanDiff, sumMeanSum float64 // Rano

	sumPlus, sumSqPlus, sumMinus, sumSqMinus float64 // CRDano
	nAno                                              int

	matched, total int // D1Sigma / D2Sigma
}

func (a *shellSums) add(o shellSums) {
	a.n += o.n
	a.sumAbsDiff += o.sumAbsDiff
	a.sumI1 += o.sumI1
	a.sumSqrtAbsDiff += o.sumSqrtAbsDiff
	a.sumSqrtI1 += o.sumSqrtI1
	a.sumSqDiff += o.sumSqDiff
	a.sumSqI1 += o.sumSqI1
	a.sumIPlus += o.sumIPlus
	a.sumX += o.sumX
	a.sumY += o.sumY
	a.sumXY += o.sumXY
	a.sumX2 += o.sumX2
	a.sumY2 += o.sumY2
	a.sumAbsMeanDiff += o.sumAbsMeanDiff
	a.sumMeanSum += o.sumMeanSum
	a.sumPlus += o.sumPlus
	a.sumSqPlus += o.sumSqPlus
	a.sumMinus += o.sumMinus
	a.sumSqMinus += o.sumSqMinus
	a.nAno += o.nAno
	a.matched += o.matched
	a.total += o.total
}

// Compute evaluates kind between list1 and list2 (both keyed by the same
// asymmetric domain), binned into opts.Shells, applying Wilson scaling to a
// working copy of list2 first unless opts.NoWilson. pg is required only for
// anomalous kinds.
func Compute(list1, list2 *refl.ReflList, u cell.UnitCell, pg *symmetry.PointGroup, kind Kind, opts Options) (Result, error) {
	if kind.anomalous() && pg == nil {
		return Result{}, ErrPointGroupRequired
	}

	working2 := list2
	if !opts.NoWilson {
		working2 = cloneList(list2)
		if err := Wilson(list1, working2, u); err != nil {
			return Result{}, err
		}
	}

	sums := make([]shellSums, len(opts.Shells))

	if kind.anomalous() {
		accumulateAnomalous(list1, working2, u, pg, opts, sums)
	} else {
		accumulateDirect(list1, working2, u, opts, kind, sums)
	}

	overall := shellSums{}
	perShell := make([]float64, len(sums))
	for i, s := range sums {
		perShell[i] = evaluate(kind, s)
		overall.add(s)
	}

	return Result{
		Kind:     kind,
		Shells:   opts.Shells,
		PerShell: perShell,
		Overall:  evaluate(kind, overall),
	}, nil
}

func accumulateDirect(list1, list2 *refl.ReflList, u cell.UnitCell, opts Options, kind Kind, sums []shellSums) {
	list1.ForEach(func(h1 refl.Handle) {
		hh, kk, ll := list1.HKL(h1)
		h2, ok := list2.Find(hh, kk, ll)
		if !ok {
			return
		}

		i1, s1 := list1.Intensity(h1), list1.Sigma(h1)
		i2, s2 := list2.Intensity(h2), list2.Sigma(h2)
		d := u.Resolution(hh, kk, ll)

		if !opts.passesSelection(i1, s1, i2, s2, &d, list1.Redundancy(h1), list2.Redundancy(h2)) {
			return
		}
		idx, ok := Index(opts.Shells, d)
		if !ok {
			return
		}

		s := &sums[idx]
		s.n++
		diff := i1 - i2
		s.sumAbsDiff += math.Abs(diff)
		s.sumI1 += i1
		s.sumIPlus += i1 + i2

		if i1 >= 0 && i2 >= 0 {
			s.sumSqrtAbsDiff += math.Abs(math.Sqrt(i1) - math.Sqrt(i2))
			s.sumSqrtI1 += math.Sqrt(i1)
		}
		s.sumSqDiff += diff * diff
		s.sumSqI1 += i1 * i1

		s.sumX += i1
		s.sumY += i2
		s.sumXY += i1 * i2
		s.sumX2 += i1 * i1
		s.sumY2 += i2 * i2

		s.total++
		threshold := math.Sqrt(s1*s1 + s2*s2)
		k := 1.0
		if kind == D2Sigma {
			k = 2.0
		}
		if math.Abs(diff) < k*threshold {
			s.matched++
		}
	})
}

func accumulateAnomalous(list1, list2 *refl.ReflList, u cell.UnitCell, pg *symmetry.PointGroup, opts Options, sums []shellSums) {
	list1.ForEach(func(h1 refl.Handle) {
		hh, kk, ll := list1.HKL(h1)
		m := symmetry.HKL{H: hh, K: kk, L: ll}
		neg := m.Negate()

		if !hklLess(m, neg) {
			return // process each Bijvoet pair once, from its lexicographically-smaller member
		}
		if symmetry.IsCentric(pg, m) {
			return
		}

		negH1, ok := list1.Find(neg.H, neg.K, neg.L)
		if !ok {
			return
		}
		posH2, ok := list2.Find(hh, kk, ll)
		if !ok {
			return
		}
		negH2, ok := list2.Find(neg.H, neg.K, neg.L)
		if !ok {
			return
		}

		i1Pos, i1Neg := list1.Intensity(h1), list1.Intensity(negH1)
		i2Pos, i2Neg := list2.Intensity(posH2), list2.Intensity(negH2)
		s1Pos, s1Neg := list1.Sigma(h1), list1.Sigma(negH1)
		s2Pos, s2Neg := list2.Sigma(posH2), list2.Sigma(negH2)

		d := u.Resolution(hh, kk, ll)
		if !opts.passesSelection(i1Pos, s1Pos, i2Pos, s2Pos, &d, list1.Redundancy(h1), list2.Redundancy(posH2)) {
			return
		}
		if !opts.passesSelection(i1Neg, s1Neg, i2Neg, s2Neg, &d, list1.Redundancy(negH1), list2.Redundancy(negH2)) {
			return
		}
		idx, ok := Index(opts.Shells, d)
		if !ok {
			return
		}

		delta1 := i1Pos - i1Neg
		delta2 := i2Pos - i2Neg
		mean := (i1Pos + i2Pos) / 2
		meanBij := (i1Neg + i2Neg) / 2

		s := &sums[idx]
		s.n++
		s.sumX += delta1
		s.sumY += delta2
		s.sumXY += delta1 * delta2
		s.sumX2 += delta1 * delta1
		s.sumY2 += delta2 * delta2

		s.sumAbsMeanDiff += math.Abs(mean - meanBij)
		s.sumMeanSum += mean + meanBij

		plus := (delta1 + delta2) / math.Sqrt2
		minus := (delta1 - delta2) / math.Sqrt2
		s.sumPlus += plus
		s.sumSqPlus += plus * plus
		s.sumMinus += minus
		s.sumSqMinus += minus * minus
		s.nAno++

		s.sumAbsDiff += math.Abs(i1Pos - i2Pos)
		s.sumIPlus += i1Pos + i2Pos
	})
}

func pearson(s shellSums) float64 {
	n := float64(s.n)
	if n == 0 {
		return 0
	}
	cov := n*s.sumXY - s.sumX*s.sumY
	varX := n*s.sumX2 - s.sumX*s.sumX
	varY := n*s.sumY2 - s.sumY*s.sumY
	if varX <= 0 || varY <= 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func ccStar(cc float64) float64 {
	if 1+cc <= 0 {
		return 0
	}
	v := 2 * cc / (1 + cc)
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}

func variance(sum, sumSq float64, n int) float64 {
	if n == 0 {
		return 0
	}
	fn := float64(n)
	mean := sum / fn
	return sumSq/fn - mean*mean
}

func evaluate(kind Kind, s shellSums) float64 {
	switch kind {
	case R1I:
		return safeDiv(s.sumAbsDiff, s.sumI1)
	case R1F:
		return safeDiv(s.sumSqrtAbsDiff, s.sumSqrtI1)
	case R2:
		return math.Sqrt(safeDiv(s.sumSqDiff, s.sumSqI1))
	case Rsplit:
		return (2 / math.Sqrt2) * safeDiv(s.sumAbsDiff, s.sumIPlus)
	case CC:
		return pearson(s)
	case CCStar:
		return ccStar(pearson(s))
	case CCano:
		return pearson(s)
	case CRDano:
		return math.Sqrt(safeDiv(variance(s.sumPlus, s.sumSqPlus, s.nAno), variance(s.sumMinus, s.sumSqMinus, s.nAno)))
	case Rano:
		return 2 * safeDiv(s.sumAbsMeanDiff, s.sumMeanSum)
	case RanoOverRsplit:
		rano := 2 * safeDiv(s.sumAbsMeanDiff, s.sumMeanSum)
		rsplit := (2 / math.Sqrt2) * safeDiv(s.sumAbsDiff, s.sumIPlus)
		return safeDiv(rano, rsplit)
	case D1Sigma, D2Sigma:
		return safeDiv(float64(s.matched), float64(s.total))
	default:
		return 0
	}
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
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

// cloneList returns a value-for-value copy of src, used so Wilson's in-place
// rescale never mutates a caller's own merged list.
func cloneList(src *refl.ReflList) *refl.ReflList {
	out := refl.NewReflList()
	src.ForEach(func(h refl.Handle) {
		hh, kk, ll := src.HKL(h)
		dst := out.Add(hh, kk, ll)
		out.SetIntensity(dst, src.Intensity(h))
		out.SetSigma(dst, src.Sigma(h))
		out.SetPartiality(dst, src.Partiality(h))
		out.SetRedundancy(dst, src.Redundancy(h))
		out.SetLorentz(dst, src.Lorentz(h))
		out.SetPosition(dst, src.Position(h))
		out.SetScalable(dst, src.Scalable(h))
		out.SetRefinable(dst, src.Refinable(h))
	})
	return out
}
