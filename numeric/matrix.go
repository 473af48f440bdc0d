package numeric

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates that requested matrix dimensions are
// non-positive — adapted from matrix/dense.go's own sentinel.
var ErrInvalidDimensions = errors.New("numeric: dimensions must be > 0")

// ErrDimensionMismatch indicates incompatible operand shapes.
var ErrDimensionMismatch = errors.New("numeric: dimension mismatch")

// ErrSingular is returned when a solve encounters a (numerically) zero
// pivot or diagonal entry.
var ErrSingular = errors.New("numeric: singular system")

// Dense is a row-major matrix of float64 values, trimmed from this pack's
// matrix.Dense down to what scaling and post-refinement actually need:
// construction, indexing, cloning, and multiplication.
type Dense struct {
	r, c int
	data []float64
}

// NewDense allocates an r x c matrix of zeros.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// At returns m[i][j].
func (m *Dense) At(i, j int) float64 {
	return m.data[i*m.c+j]
}

// Set assigns m[i][j] = v.
func (m *Dense) Set(i, j int, v float64) {
	m.data[i*m.c+j] = v
}

// Clone returns a deep copy of m.
func (m *Dense) Clone() *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

// Mul returns m * other. Returns ErrDimensionMismatch if m.Cols() !=
// other.Rows().
func (m *Dense) Mul(other *Dense) (*Dense, error) {
	if m.c != other.r {
		return nil, fmt.Errorf("Mul: %dx%d * %dx%d: %w", m.r, m.c, other.r, other.c, ErrDimensionMismatch)
	}
	out, err := NewDense(m.r, other.c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.r; i++ {
		for k := 0; k < m.c; k++ {
			mik := m.At(i, k)
			if mik == 0 {
				continue
			}
			for j := 0; j < other.c; j++ {
				out.Set(i, j, out.At(i, j)+mik*other.At(k, j))
			}
		}
	}
	return out, nil
}

// Transpose returns m^T.
func (m *Dense) Transpose() *Dense {
	out, _ := NewDense(m.c, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	return out
}

// MulVec returns m * v.
func (m *Dense) MulVec(v []float64) ([]float64, error) {
	if m.c != len(v) {
		return nil, fmt.Errorf("MulVec: %dx%d * %d: %w", m.r, m.c, len(v), ErrDimensionMismatch)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		var sum float64
		for j := 0; j < m.c; j++ {
			sum += m.At(i, j) * v[j]
		}
		out[i] = sum
	}
	return out, nil
}
