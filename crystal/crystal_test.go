package crystal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/crystal"
)

func cubicCell(t *testing.T) cell.UnitCell {
	u, err := cell.FromParams(cell.Params{A: 1e-9, B: 1e-9, C: 1e-9, Alpha: math.Pi / 2, Beta: math.Pi / 2, Gamma: math.Pi / 2})
	require.NoError(t, err)
	return u
}

func TestNewCrystal_Defaults(t *testing.T) {
	c := crystal.NewCrystal("x1", cubicCell(t), crystal.Beam{WavelengthM: 1.3e-10})
	require.Equal(t, 1.0, c.OSF)
	require.Equal(t, crystal.OK, c.Status)
	require.Equal(t, 0, c.Refl.Count())
}

func TestValidate_MissingBeam(t *testing.T) {
	c := crystal.NewCrystal("x2", cubicCell(t), crystal.Beam{})
	require.ErrorIs(t, c.Validate(), crystal.ErrMissingBeamParams)
}

func TestStatus_DumpCharacter(t *testing.T) {
	require.Equal(t, "-", crystal.OK.String())
	require.Equal(t, "N", crystal.SolverFailed.String())
	require.Equal(t, "N", crystal.NoRefinement.String())
	require.Equal(t, "N", crystal.Lost.String())
}
