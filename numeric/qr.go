package numeric

import (
	"fmt"
	"math"
)

// normZero is the accumulator reset value for Householder norms, carried
// over from matrix/ops/qr.go's NormZero for readability, not behaviour.
const normZero = 0.0

// QR computes the QR decomposition of a square matrix m via Householder
// reflections, returning the accumulated reflector product Qacc and
// upper-triangular R such that Qacc*m = R. Qacc is orthogonal and is the
// transpose of the Q in m = Q*R. Adapted from matrix/ops/qr.go, retargeted
// at numeric.Dense.
//
// Complexity: O(n^3) time, O(n^2) memory, n = m.Rows().
func QR(m *Dense) (*Dense, *Dense, error) {
	rows, cols := m.Rows(), m.Cols()
	if rows != cols {
		return nil, nil, fmt.Errorf("QR: non-square %dx%d: %w", rows, cols, ErrDimensionMismatch)
	}
	n := rows

	A := m.Clone()
	Q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("QR: %w", err)
	}
	for i := 0; i < n; i++ {
		Q.Set(i, i, 1.0)
	}
	v := make([]float64, n)

	for k := 0; k < n; k++ {
		norm := normZero
		for i := k; i < n; i++ {
			val := A.At(i, k)
			norm += val * val
		}
		norm = math.Sqrt(norm)
		if norm == normZero {
			continue
		}
		alpha := -math.Copysign(norm, A.At(k, k))

		for i := 0; i < n; i++ {
			v[i] = normZero
		}
		for i := k; i < n; i++ {
			v[i] = A.At(i, k)
		}
		v[k] -= alpha

		beta := normZero
		for i := k; i < n; i++ {
			beta += v[i] * v[i]
		}
		if beta == 0 {
			continue
		}
		tau := 2.0 / beta

		for j := k; j < n; j++ {
			sum := normZero
			for i := k; i < n; i++ {
				sum += v[i] * A.At(i, j)
			}
			for i := k; i < n; i++ {
				A.Set(i, j, A.At(i, j)-tau*v[i]*sum)
			}
		}
		for j := 0; j < n; j++ {
			sum := normZero
			for i := k; i < n; i++ {
				sum += v[i] * Q.At(i, j)
			}
			for i := k; i < n; i++ {
				Q.Set(i, j, Q.At(i, j)-tau*v[i]*sum)
			}
		}
	}

	return Q, A, nil
}
