package cell

import "math"

// Params holds the six scalar unit-cell parameters. Angles are in radians.
type Params struct {
	A, B, C             float64
	Alpha, Beta, Gamma float64
}

// FromParams builds a UnitCell from six scalar parameters using the
// standard crystallographic convention: a along x, b in the xy-plane, c
// completing a right-handed system.
//
// Returns ErrDegenerateCell if any length is non-positive or the implied
// volume is not strictly positive (degenerate/left-handed input).
func FromParams(p Params) (UnitCell, error) {
	if p.A <= 0 || p.B <= 0 || p.C <= 0 {
		return UnitCell{}, ErrDegenerateCell
	}

	cosAlpha, cosBeta, cosGamma := math.Cos(p.Alpha), math.Cos(p.Beta), math.Cos(p.Gamma)
	sinGamma := math.Sin(p.Gamma)
	if math.Abs(sinGamma) < 1e-12 {
		return UnitCell{}, ErrDegenerateCell
	}

	a := Vec3{X: p.A, Y: 0, Z: 0}
	b := Vec3{X: p.B * cosGamma, Y: p.B * sinGamma, Z: 0}

	cx := p.C * cosBeta
	cy := p.C * (cosAlpha - cosBeta*cosGamma) / sinGamma
	cz2 := p.C*p.C - cx*cx - cy*cy
	if cz2 <= 0 {
		return UnitCell{}, ErrDegenerateCell
	}
	c := Vec3{X: cx, Y: cy, Z: math.Sqrt(cz2)}

	u := UnitCell{a: a, b: b, c: c}
	if u.Volume() <= 0 {
		return UnitCell{}, ErrDegenerateCell
	}
	return u, nil
}

// FromAxes builds a UnitCell directly from three Cartesian axis vectors.
// Returns ErrDegenerateCell if the implied volume is not strictly positive.
func FromAxes(a, b, c Vec3) (UnitCell, error) {
	u := UnitCell{a: a, b: b, c: c}
	if u.Volume() <= 0 {
		return UnitCell{}, ErrDegenerateCell
	}
	return u, nil
}

// ToParams converts the cell back to six scalar parameters (angles in
// radians). Useful for round-tripping and for the merged-list writer's
// header line.
func (u UnitCell) ToParams() Params {
	a, b, c := u.a, u.b, u.c
	la, lb, lc := math.Sqrt(norm(a)), math.Sqrt(norm(b)), math.Sqrt(norm(c))
	return Params{
		A: la, B: lb, C: lc,
		Alpha: math.Acos(dot(b, c) / (lb * lc)),
		Beta:  math.Acos(dot(a, c) / (la * lc)),
		Gamma: math.Acos(dot(a, b) / (la * lb)),
	}
}
