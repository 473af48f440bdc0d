package symmetry

import "errors"

// ErrUnknownPointGroup is returned by Lookup when the requested point-group
// name has no registered generator table.
var ErrUnknownPointGroup = errors.New("symmetry: unknown point group")

// HKL is a signed Miller index triple.
type HKL struct {
	H, K, L int32
}

// Negate returns the Bijvoet partner of an index.
func (m HKL) Negate() HKL {
	return HKL{-m.H, -m.K, -m.L}
}

// SymOp is a 3x3 integer matrix acting on an HKL by left-multiplication on
// the column vector (h,k,l)^T. Point-group operators on an integer lattice
// always have integer entries in {-1,0,1}.
type SymOp [3][3]int8

// Apply returns op * hkl.
func (op SymOp) Apply(m HKL) HKL {
	h, k, l := int32(m.H), int32(m.K), int32(m.L)
	return HKL{
		H: int32(op[0][0])*h + int32(op[0][1])*k + int32(op[0][2])*l,
		K: int32(op[1][0])*h + int32(op[1][1])*k + int32(op[1][2])*l,
		L: int32(op[2][0])*h + int32(op[2][1])*k + int32(op[2][2])*l,
	}
}

// identityOp is the neutral element every PointGroup must contain.
var identityOp = SymOp{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// PointGroup is a finite ordered list of operators for one crystallographic
// point group. Register builds Ops as the identity plus the closure of its
// generators, so Ops contains the identity and, for a generator set that
// closes within 48 elements, is closed under composition; every built-in
// group's |Ops| divides 48. Register does not check these properties, and
// they are not re-checked per call.
type PointGroup struct {
	Name string
	Ops  []SymOp
}
