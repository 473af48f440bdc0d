package numeric

import "fmt"

// backSubstitute solves the upper-triangular system R x = y.
func backSubstitute(R *Dense, y []float64) ([]float64, error) {
	n := R.Rows()
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		diag := R.At(i, i)
		if diag == 0 || (diag > -1e-14 && diag < 1e-14) {
			return nil, ErrSingular
		}
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= R.At(i, j) * x[j]
		}
		x[i] = sum / diag
	}
	return x, nil
}

// LinearSolve solves A x = b for a square A via QR decomposition.
//
// QR's accumulated Qacc equals (the true Q)^T by construction (see QR's
// doc comment), so the projection step is y = Qacc*b
// with no further transpose — a detail easy to get backwards, which is why
// it is spelled out here rather than left to callers.
func LinearSolve(A *Dense, b []float64) ([]float64, error) {
	Qacc, R, err := QR(A)
	if err != nil {
		return nil, fmt.Errorf("LinearSolve: %w", err)
	}
	y, err := Qacc.MulVec(b)
	if err != nil {
		return nil, fmt.Errorf("LinearSolve: %w", err)
	}
	return backSubstitute(R, y)
}

// WeightedNormalEquations builds the normal-equation system (A^T W A) x =
// A^T W y for a weighted linear least squares fit, given design matrix A
// (m x n, m >= n), observations y (length m), and weights w (length m).
func WeightedNormalEquations(A *Dense, y, w []float64) (*Dense, []float64, error) {
	m, n := A.Rows(), A.Cols()
	if len(y) != m || len(w) != m {
		return nil, nil, fmt.Errorf("WeightedNormalEquations: %w", ErrDimensionMismatch)
	}

	ata, err := NewDense(n, n)
	if err != nil {
		return nil, nil, err
	}
	atb := make([]float64, n)

	for row := 0; row < m; row++ {
		wi := w[row]
		if wi == 0 {
			continue
		}
		for i := 0; i < n; i++ {
			ai := A.At(row, i)
			if ai == 0 {
				continue
			}
			atb[i] += wi * ai * y[row]
			for j := 0; j < n; j++ {
				aj := A.At(row, j)
				ata.Set(i, j, ata.At(i, j)+wi*ai*aj)
			}
		}
	}
	return ata, atb, nil
}

// WeightedLeastSquares solves the weighted linear least squares problem
// min_x sum_i w_i (A_i . x - y_i)^2 via the normal equations, solved with
// LinearSolve.
func WeightedLeastSquares(A *Dense, y, w []float64) ([]float64, error) {
	ata, atb, err := WeightedNormalEquations(A, y, w)
	if err != nil {
		return nil, err
	}
	return LinearSolve(ata, atb)
}
