package scaling

import (
	"errors"

	"github.com/xtalmerge/snapmerge/refl"
)

// PMin is the minimum partiality an observation must have to contribute to
// scaling (§4.7 step 1).
const PMin = 0.05

// ErrNoScalableObservations is the scaling-specific instance of the §7
// ScalingFailed taxonomy: no observation anywhere in the crystal set passed
// the partiality/reference filter, so there is nothing to scale against.
var ErrNoScalableObservations = errors.New("scaling: no scalable observations in any crystal")

// Options configures one Scale call.
type Options struct {
	// NoScale holds every OSF at 1.0 and performs only the full-intensity
	// recomputation, once (§4.7's final paragraph).
	NoScale bool

	// MinMeasurements drops merged reflections supported by fewer than
	// this many contributing crystals.
	MinMeasurements int

	// Reference, if non-nil, restricts contributing observations to
	// indices present in this externally supplied list. Scale does not
	// compare the merged list against it, and Report.RFree is not computed.
	Reference *refl.ReflList

	// MaxIterations caps the alternating OSF/full-intensity loop.
	MaxIterations int

	// ConvergenceTol is the maximum-|delta log(OSF)| threshold below which
	// the loop stops.
	ConvergenceTol float64
}

// DefaultOptions returns the values §4.7 and §6.3 specify as defaults.
func DefaultOptions() Options {
	return Options{
		MinMeasurements: 2,
		MaxIterations:   100,
		ConvergenceTol:  1e-5,
	}
}

// Report summarises one Scale call for the merge driver's per-iteration
// line (§6.2 "Scaling report").
type Report struct {
	Iterations            int
	ActiveCrystals        int
	SolverFailedCrystals  int
	ScalableObservations  int
	Converged             bool
	MaxLogOSFDelta        float64
	RFree                 float64 // not computed by Scale; always 0
}
