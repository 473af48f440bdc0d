package fom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// S5: CC* identity values.
func TestCCStar_Identities(t *testing.T) {
	require.InDelta(t, 1.0, ccStar(1), 1e-12)
	require.InDelta(t, 0.0, ccStar(0), 1e-12)
	require.InDelta(t, math.Sqrt(1.0/1.5), ccStar(0.5), 1e-9)
}

// S6: resolution binning boundary between shells 0 and 1, which is
// cbrt(0.1^3 + (1.0^3-0.1^3)/10) = cbrt(0.1009) ≈ 0.4655.
func TestShells_BoundaryMatchesFormula(t *testing.T) {
	shells := Shells(0.1, 1.0, 10)
	require.Len(t, shells, 10)
	require.InDelta(t, 0.4655, shells[0].DStarMax, 1e-3)
	require.InDelta(t, shells[0].DStarMax, shells[1].DStarMin, 1e-12)
}

// Invariant 11: a reflection exactly on a shared boundary is assigned to
// the lower-index shell.
func TestIndex_BoundaryGoesToLowerShell(t *testing.T) {
	shells := Shells(0.1, 1.0, 10)
	idx, ok := Index(shells, shells[0].DStarMax)
	require.True(t, ok)
	require.Equal(t, 0, idx)
}
