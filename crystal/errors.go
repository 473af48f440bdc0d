package crystal

import (
	"errors"
	"math"

	"github.com/xtalmerge/snapmerge/cell"
)

// ErrMissingBeamParams is part of the §7 InputError taxonomy: a crystal
// record arrived without a usable wavelength. It is fatal for that crystal
// only — merge.Driver wraps it in merge.InputError and continues with the
// rest of the stream.
var ErrMissingBeamParams = errors.New("crystal: missing beam parameters")

// ErrDuplicateCell is part of the §7 InputError taxonomy: a crystal record
// reported two different cells, which the loader treats as malformed input.
var ErrDuplicateCell = errors.New("crystal: duplicate cell in one record")

// ErrCellMismatch is part of the §7 InputError taxonomy: a crystal's
// indexed cell deviates from a caller-supplied reference cell by more than
// ValidateAgainstReference's tolerance allows.
var ErrCellMismatch = errors.New("crystal: cell does not match reference cell")

// Validate checks the minimal preconditions a freshly loaded Crystal must
// satisfy before it can enter the pipeline.
func (c *Crystal) Validate() error {
	if c.Beam.WavelengthM <= 0 {
		return ErrMissingBeamParams
	}
	if c.OSF <= 0 {
		c.OSF = 1.0
	}
	return nil
}

// ValidateAgainstReference checks c's cell against a reference cell
// supplied by a merge.CellProvider, rejecting a crystal whose axis lengths
// deviate from the reference by more than the given relative tolerance
// (§3: the merge driver may be handed a reference cell to screen indexed
// crystals against before they enter scaling).
func (c *Crystal) ValidateAgainstReference(ref cell.UnitCell, tolerance float64) error {
	p, rp := c.Cell.ToParams(), ref.ToParams()
	for _, d := range [][2]float64{{p.A, rp.A}, {p.B, rp.B}, {p.C, rp.C}} {
		if d[1] == 0 {
			continue
		}
		if math.Abs(d[0]-d[1])/d[1] > tolerance {
			return ErrCellMismatch
		}
	}
	return nil
}
