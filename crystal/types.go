package crystal

import (
	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/refl"
)

// Beam holds the per-snapshot beam parameters the crystal source reports
// alongside each indexed crystal.
type Beam struct {
	WavelengthM   float64 // lambda, metres
	DivergenceRad float64 // beam angular divergence, radians
	Bandwidth     float64 // delta-lambda/lambda, dimensionless
}

// Crystal is a per-snapshot aggregate: an oriented unit cell (axes already
// rotated into the lab frame by indexing), beam parameters, the overall
// scale factor, mosaicity/profile-radius, and the crystal's own integrated
// reflection list. Crystal is created once per successfully indexed
// snapshot and destroyed at program end; all mutation during the merge
// loop happens in place on the fields below.
type Crystal struct {
	ID string

	Cell cell.UnitCell
	Beam Beam

	OSF           float64 // overall scale factor, > 0
	ProfileRadius float64 // m^-1
	Mosaicity     float64 // radians

	Refl *refl.ReflList

	Status Status
}

// NewCrystal returns a Crystal with OSF=1, status OK, and an empty
// reflection list, ready to receive integrated measurements from the
// crystal source.
func NewCrystal(id string, c cell.UnitCell, beam Beam) *Crystal {
	return &Crystal{
		ID:     id,
		Cell:   c,
		Beam:   beam,
		OSF:    1.0,
		Refl:   refl.NewReflList(),
		Status: OK,
	}
}
