package partiality_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/partiality"
	"github.com/xtalmerge/snapmerge/symmetry"
)

func cubicCrystal(t *testing.T) *crystal.Crystal {
	u, err := cell.FromParams(cell.Params{A: 1e-9, B: 1e-9, C: 1e-9, Alpha: math.Pi / 2, Beta: math.Pi / 2, Gamma: math.Pi / 2})
	require.NoError(t, err)
	c := crystal.NewCrystal("x", u, crystal.Beam{WavelengthM: 1.3e-10, Bandwidth: 0.001})
	c.ProfileRadius = 1e7
	c.Mosaicity = 0.001
	return c
}

func TestUnity_AlwaysOne(t *testing.T) {
	c := cubicCrystal(t)
	m := symmetry.HKL{H: 1, K: 0, L: 0}
	res := partiality.Unity{}.Compute(c, m)
	require.Equal(t, 1.0, res.Partiality)
	require.Equal(t, 1.0, res.Lorentz)
}

func TestUnity_UpdateIsNoOp(t *testing.T) {
	c := cubicCrystal(t)
	h := c.Refl.Add(1, 0, 0)
	c.Refl.SetPartiality(h, 0.5)

	out := partiality.Unity{}.UpdatePartialities(c)
	require.Equal(t, partiality.UpdateResult{}, out)
	require.Equal(t, 0.5, c.Refl.Partiality(h))
}

func TestSphere_PartialityInRange(t *testing.T) {
	c := cubicCrystal(t)
	m := symmetry.HKL{H: 2, K: 0, L: 0}
	res := partiality.Sphere{}.Compute(c, m)
	require.GreaterOrEqual(t, res.Partiality, 0.0)
	require.LessOrEqual(t, res.Partiality, 1.0)
	require.Greater(t, res.Lorentz, 0.0)
}

func TestSphere_UpdatePartialities_StaysInRange(t *testing.T) {
	c := cubicCrystal(t)
	h := c.Refl.Add(1, 0, 0)
	c.Refl.SetPartiality(h, 0)

	out := partiality.Sphere{}.UpdatePartialities(c)
	_ = out
	require.GreaterOrEqual(t, c.Refl.Partiality(h), 0.0)
	require.LessOrEqual(t, c.Refl.Partiality(h), 1.0)
}
