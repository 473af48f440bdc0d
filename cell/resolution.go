package cell

import "math"

// Resolution returns d*(h,k,l) = |h.a* + k.b* + l.c*| in inverse metres.
func (u UnitCell) Resolution(h, k, l int32) float64 {
	r := u.Reciprocal()
	v := r.AStar.scale(float64(h)).add(r.BStar.scale(float64(k))).add(r.CStar.scale(float64(l)))
	return math.Sqrt(norm(v))
}
