package cell

import "math"

// Quaternion is a unit quaternion (w,x,y,z) used to represent crystal
// orientation and small orientation corrections during post-refinement.
// The rotation formula below is the same quaternion-to-vector rotation
// used by rapid quaternion-based least-squares rotation fits.
type Quaternion struct {
	W, X, Y, Z float64
}

// IdentityQuaternion is the no-op rotation.
var IdentityQuaternion = Quaternion{W: 1}

// Normalized returns q scaled to unit length. A zero quaternion normalizes
// to the identity rather than dividing by zero.
func (q Quaternion) Normalized() Quaternion {
	n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if n < 1e-15 {
		return IdentityQuaternion
	}
	return Quaternion{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// Rotate applies the quaternion rotation v' = q v q^-1 to a Cartesian
// vector, using the standard expansion (avoids constructing a full
// rotation matrix for a single vector).
func (q Quaternion) Rotate(v Vec3) Vec3 {
	q = q.Normalized()
	uv := cross(Vec3{q.X, q.Y, q.Z}, v)
	uuv := cross(Vec3{q.X, q.Y, q.Z}, uv)
	return v.add(uv.scale(2 * q.W)).add(uuv.scale(2))
}

// Rotate returns a new UnitCell with all three axes rotated by the unit
// quaternion q, preserving lengths and angles.
func (u UnitCell) Rotate(q Quaternion) UnitCell {
	return UnitCell{
		a: q.Rotate(u.a),
		b: q.Rotate(u.b),
		c: q.Rotate(u.c),
	}
}
