package cell

// Reciprocal holds the reciprocal-space axes a*, b*, c* (units of inverse
// metres), derived from a UnitCell's real-space axes.
type Reciprocal struct {
	AStar, BStar, CStar Vec3
}

// Reciprocal computes a*, b*, c* from the cell's real-space axes:
//
//	a* = (b x c) / V,  b* = (c x a) / V,  c* = (a x b) / V,  V = a . (b x c)
func (u UnitCell) Reciprocal() Reciprocal {
	v := u.Volume()
	return Reciprocal{
		AStar: cross(u.b, u.c).scale(1 / v),
		BStar: cross(u.c, u.a).scale(1 / v),
		CStar: cross(u.a, u.b).scale(1 / v),
	}
}
