package report

import (
	"fmt"
	"io"

	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// mergedFloatPrecision is the number of digits after the decimal point
// written for intensities and sigmas, chosen so that fixed-point notation
// (per §6.2: "floats in %f form") still preserves float64 round-trip
// fidelity for the magnitudes this package's own values take.
const mergedFloatPrecision = 10

// WriteMergedList writes one header line documenting the cell and point
// group, then one line per reflection: "h k l I sigma(I) redundancy", in
// the list's deterministic iteration order. Intensity and sigma are
// written in fixed-point %f form, never exponential notation, per §6.2.
func WriteMergedList(w io.Writer, list *refl.ReflList, u cell.UnitCell, pg *symmetry.PointGroup) error {
	p := u.ToParams()
	if _, err := fmt.Fprintf(w, "# cell %.6g %.6g %.6g %.6f %.6f %.6f point_group %s\n",
		p.A, p.B, p.C, p.Alpha, p.Beta, p.Gamma, pg.Name); err != nil {
		return err
	}

	var writeErr error
	list.ForEach(func(h refl.Handle) {
		if writeErr != nil {
			return
		}
		hh, kk, ll := list.HKL(h)
		_, writeErr = fmt.Fprintf(w, "%d %d %d %.*f %.*f %d\n",
			hh, kk, ll, mergedFloatPrecision, list.Intensity(h), mergedFloatPrecision, list.Sigma(h), list.Redundancy(h))
	})
	return writeErr
}
