package fom

import (
	"fmt"
	"math"

	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/numeric"
	"github.com/xtalmerge/snapmerge/refl"
)

// Wilson fits log(I1/I2) = log(G) + 2*B*(d*)^2 by weighted linear least
// squares over reflections present in both lists with positive intensity,
// then rescales list2's intensities and sigmas in place by
// G*exp(2*B*(d*)^2) at each reflection's own resolution (§4.10's
// pre-accumulation step). Returns ErrScalingFailed if fewer than two usable
// pairs are found or the normal-equations solve is singular.
func Wilson(list1, list2 *refl.ReflList, u cell.UnitCell) error {
	var xs, ys []float64

	list1.ForEach(func(h1 refl.Handle) {
		hh, kk, ll := list1.HKL(h1)
		h2, ok := list2.Find(hh, kk, ll)
		if !ok {
			return
		}
		i1, i2 := list1.Intensity(h1), list2.Intensity(h2)
		if i1 <= 0 || i2 <= 0 {
			return
		}
		d := u.Resolution(hh, kk, ll)
		xs = append(xs, d*d)
		ys = append(ys, math.Log(i1/i2))
	})

	if len(xs) < 2 {
		return fmt.Errorf("%w: only %d usable pairs", ErrScalingFailed, len(xs))
	}

	A, err := numeric.NewDense(len(xs), 2)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScalingFailed, err)
	}
	w := make([]float64, len(xs))
	for i, x := range xs {
		A.Set(i, 0, 1)
		A.Set(i, 1, 2*x)
		w[i] = 1
	}

	coef, err := numeric.WeightedLeastSquares(A, ys, w)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScalingFailed, err)
	}
	logG, b := coef[0], coef[1]

	list2.ForEach(func(h2 refl.Handle) {
		hh, kk, ll := list2.HKL(h2)
		d := u.Resolution(hh, kk, ll)
		scale := math.Exp(logG + 2*b*d*d)
		list2.SetIntensity(h2, list2.Intensity(h2)*scale)
		list2.SetSigma(h2, list2.Sigma(h2)*scale)
	})

	return nil
}
