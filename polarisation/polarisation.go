package polarisation

import (
	"math"

	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/refl"
)

// Mode selects the beam's polarisation model.
type Mode int

const (
	// Unpolarised treats the beam as unpolarised: factor = (1+cos^2(2θ))/2.
	Unpolarised Mode = iota
	// Linear treats the beam as linearly polarised with fraction Fraction
	// of the intensity polarised along ReferenceAngleRad.
	Linear
)

// Options configures the correction.
type Options struct {
	Mode Mode

	// WavelengthM is lambda in metres, needed to turn a reflection's
	// resolution into a scattering angle via Bragg's law.
	WavelengthM float64

	// Fraction is the polarised fraction for Mode == Linear, in [0,1].
	// Ignored for Unpolarised.
	Fraction float64

	// ReferenceAngleRad is the azimuthal angle of the polarisation plane,
	// measured the same way detector positions are (atan2(slow, fast)).
	// Ignored for Unpolarised.
	ReferenceAngleRad float64
}

// Correct divides every reflection's intensity in list by the polarisation
// factor implied by opts and the crystal's cell, in place. Intended to run
// exactly once, before the first scaling pass (§4.4).
func Correct(list *refl.ReflList, c cell.UnitCell, opts Options) {
	list.ForEach(func(h refl.Handle) {
		hh, kk, ll := list.HKL(h)
		d := c.Resolution(hh, kk, ll)
		factor := Factor(d, list.Position(h), opts)
		if factor <= 0 {
			return
		}
		list.SetIntensity(h, list.Intensity(h)/factor)
	})
}

// Factor returns the polarisation factor for a reflection at resolution d*
// (inverse metres) observed at detector position pos, under opts.
func Factor(dStar float64, pos refl.DetectorPosition, opts Options) float64 {
	sinTheta := dStar * opts.WavelengthM / 2
	if sinTheta > 1 {
		sinTheta = 1
	}
	if sinTheta < -1 {
		sinTheta = -1
	}
	theta := math.Asin(sinTheta)
	cos2theta := math.Cos(2 * theta)
	sin2theta2 := 1 - cos2theta*cos2theta

	if opts.Mode == Unpolarised {
		return (1 + cos2theta*cos2theta) / 2
	}

	phi := math.Atan2(pos.Slow, pos.Fast) - opts.ReferenceAngleRad
	horiz := 1 - sin2theta2*math.Cos(phi)*math.Cos(phi)
	vert := 1 - sin2theta2*math.Sin(phi)*math.Sin(phi)
	return opts.Fraction*horiz + (1-opts.Fraction)*vert
}
