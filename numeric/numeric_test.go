package numeric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtalmerge/snapmerge/numeric"
)

func TestQR_ReconstructsInput(t *testing.T) {
	A, _ := numeric.NewDense(3, 3)
	vals := [][]float64{{4, 1, 2}, {1, 3, 0}, {2, 0, 5}}
	for i, row := range vals {
		for j, v := range row {
			A.Set(i, j, v)
		}
	}

	Qacc, R, err := numeric.QR(A)
	require.NoError(t, err)

	// A = Qtrue*R and Qacc == Qtrue^T, so Qacc^T * R must reconstruct A.
	Qtrue := Qacc.Transpose()
	recon, err := Qtrue.Mul(R)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.InDelta(t, A.At(i, j), recon.At(i, j), 1e-9)
		}
	}
}

func TestLinearSolve_IdentitySystem(t *testing.T) {
	A, _ := numeric.NewDense(2, 2)
	A.Set(0, 0, 1)
	A.Set(1, 1, 1)
	x, err := numeric.LinearSolve(A, []float64{3, -2})
	require.NoError(t, err)
	require.InDelta(t, 3.0, x[0], 1e-9)
	require.InDelta(t, -2.0, x[1], 1e-9)
}

func TestWeightedLeastSquares_RecoversLine(t *testing.T) {
	// y = 2x + 1, exact, weight 1 everywhere.
	n := 10
	A, _ := numeric.NewDense(n, 2)
	y := make([]float64, n)
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		A.Set(i, 0, x)
		A.Set(i, 1, 1)
		y[i] = 2*x + 1
		w[i] = 1
	}
	coef, err := numeric.WeightedLeastSquares(A, y, w)
	require.NoError(t, err)
	require.InDelta(t, 2.0, coef[0], 1e-6)
	require.InDelta(t, 1.0, coef[1], 1e-6)
}

func TestPairwiseSum_MatchesNaiveSumWithinTolerance(t *testing.T) {
	xs := make([]float64, 1000)
	var naive float64
	for i := range xs {
		xs[i] = float64(i%7) * 0.1
		naive += xs[i]
	}
	require.InDelta(t, naive, numeric.PairwiseSum(xs), 1e-6)
}

func TestPairwiseSum_DeterministicAcrossCalls(t *testing.T) {
	xs := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	require.Equal(t, numeric.PairwiseSum(xs), numeric.PairwiseSum(append([]float64{}, xs...)))
}

func TestLevenbergMarquardt_FitsQuadraticMinimum(t *testing.T) {
	// Minimise (x-3)^2 + (y+1)^2 expressed as two residuals.
	res := func(p []float64) []float64 {
		return []float64{p[0] - 3, p[1] + 1}
	}
	out := numeric.LevenbergMarquardt(res, []float64{0, 0}, numeric.DefaultLMOptions())
	require.True(t, out.Improved)
	require.InDelta(t, 3.0, out.Params[0], 1e-4)
	require.InDelta(t, -1.0, out.Params[1], 1e-4)
}

func TestKahanSum_AgreesWithPairwiseForWellConditionedInput(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	require.True(t, math.Abs(numeric.KahanSum(xs)-numeric.PairwiseSum(xs)) < 1e-9)
}
