package polarisation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/polarisation"
	"github.com/xtalmerge/snapmerge/refl"
)

func TestFactor_UnpolarisedForwardScattering(t *testing.T) {
	// At d*=0 (forward direction), theta=0, cos2theta=1, factor should be 1.
	f := polarisation.Factor(0, refl.DetectorPosition{}, polarisation.Options{
		Mode:        polarisation.Unpolarised,
		WavelengthM: 1.3e-10,
	})
	require.InDelta(t, 1.0, f, 1e-9)
}

func TestCorrect_DividesIntensityInPlace(t *testing.T) {
	u, err := cell.FromParams(cell.Params{A: 1e-9, B: 1e-9, C: 1e-9, Alpha: math.Pi / 2, Beta: math.Pi / 2, Gamma: math.Pi / 2})
	require.NoError(t, err)

	list := refl.NewReflList()
	h := list.Add(1, 0, 0)
	list.SetIntensity(h, 100)

	polarisation.Correct(list, u, polarisation.Options{Mode: polarisation.Unpolarised, WavelengthM: 1.3e-10})
	// The unpolarised factor is at most 1, so dividing by it raises I.
	require.Greater(t, list.Intensity(h), 100.0)
	require.Greater(t, list.Intensity(h), 0.0)
}
