package cell

import "errors"

// ErrDegenerateCell is returned when a constructor would produce axis
// vectors that are degenerate (zero volume) or a cell with a non-positive
// determinant.
var ErrDegenerateCell = errors.New("cell: degenerate unit cell")

// Vec3 is a Cartesian vector, used for real- and reciprocal-space axes.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) add(o Vec3) Vec3    { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func norm(v Vec3) float64 {
	return dot(v, v)
}

// UnitCell is an immutable real-space lattice, stored as three Cartesian
// axis vectors (metres). Constructors validate that the implied volume is
// strictly positive before returning a value — there is no way to obtain a
// degenerate UnitCell through the public API.
type UnitCell struct {
	a, b, c Vec3
}

// Axes returns the cell's real-space axis vectors.
func (u UnitCell) Axes() (a, b, c Vec3) {
	return u.a, u.b, u.c
}

// Volume returns the real-space unit-cell volume, a . (b x c).
func (u UnitCell) Volume() float64 {
	return dot(u.a, cross(u.b, u.c))
}
