package symmetry

// Orbit enumerates the distinct images of m under every operator in pg, in
// deterministic order: operators are applied in list order and duplicates
// (special positions, where an operator stabilises m) are dropped on first
// occurrence. The identity is always ops[0], so Orbit(pg, m)[0] == m.
//
// Complexity: O(|pg.Ops|) time, O(|pg.Ops|) memory.
func Orbit(pg *PointGroup, m HKL) []HKL {
	out := make([]HKL, 0, len(pg.Ops))
	seen := make(map[HKL]bool, len(pg.Ops))
	for _, op := range pg.Ops {
		img := op.Apply(m)
		if !seen[img] {
			seen[img] = true
			out = append(out, img)
		}
	}
	return out
}

// NumEquivs returns the orbit size of m under pg — the number of distinct
// symmetry-equivalent indices, which may be smaller than len(pg.Ops) when an
// operator stabilises m (a "special position").
func NumEquivs(pg *PointGroup, m HKL) int {
	return len(Orbit(pg, m))
}

// GetEquiv returns the i'th distinct orbit member of m under pg, in the same
// deterministic order Orbit produces. i must be in [0, NumEquivs(pg,m)).
func GetEquiv(pg *PointGroup, m HKL, i int) HKL {
	return Orbit(pg, m)[i]
}

// IsCentric reports whether a proper rotation of pg (an operator with
// determinant +1) maps m onto its Bijvoet partner (-h,-k,-l). Improper
// operators, the inversion among them, are not part of the test, so under a
// centrosymmetric group such as mmm only the reflections its rotation
// subgroup sends to -h are centric: (0,0,4) is, (1,2,3) is not.
func IsCentric(pg *PointGroup, m HKL) bool {
	neg := m.Negate()
	for _, op := range pg.Ops {
		det := int(op[0][0])*(int(op[1][1])*int(op[2][2])-int(op[1][2])*int(op[2][1])) -
			int(op[0][1])*(int(op[1][0])*int(op[2][2])-int(op[1][2])*int(op[2][0])) +
			int(op[0][2])*(int(op[1][0])*int(op[2][1])-int(op[1][1])*int(op[2][0]))
		if det > 0 && op.Apply(m) == neg {
			return true
		}
	}
	return false
}

// less defines the fixed total order used to pick the asymmetric-unit
// representative: standard lexicographic comparison of (h,k,l), h most
// significant. Asymmetric always returns the *greatest* element under this
// order — see SPEC_FULL.md §4 for why this particular pin was chosen
// (any total order works; this one is simple and trivially reproducible).
func less(a, b HKL) bool {
	if a.H != b.H {
		return a.H < b.H
	}
	if a.K != b.K {
		return a.K < b.K
	}
	return a.L < b.L
}

// Asymmetric returns the canonical representative of m's orbit under pg: the
// lexicographically greatest triple in the orbit, by the fixed order `less`.
// Deterministic and stable across runs because Orbit's enumeration order is
// itself deterministic.
func Asymmetric(pg *PointGroup, m HKL) HKL {
	best := m
	for _, img := range Orbit(pg, m) {
		if less(best, img) {
			best = img
		}
	}
	return best
}
