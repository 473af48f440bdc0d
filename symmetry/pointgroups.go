package symmetry

import "sync"

// registry holds every point group, keyed by its canonical name. init()
// fills it with the built-in groups, and Register may add or replace
// entries later, so Lookup reads under the read lock and Register writes
// under the write lock.
var (
	registryMu sync.RWMutex
	registry   = map[string]*PointGroup{}
)

// Lookup maps a canonical point-group name to its operator list.
// Returns ErrUnknownPointGroup if name is not registered.
func Lookup(name string) (*PointGroup, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	pg, ok := registry[name]
	if !ok {
		return nil, ErrUnknownPointGroup
	}
	return pg, nil
}

// Register installs a custom point group under name, computing the closure
// of gens under composition. It overwrites any existing entry of the same
// name. Intended for callers (tests, external point-group providers) that
// need a group outside the built-in ones (ten Laue classes, every one but
// m-3, plus 1, 3 and 3m).
func Register(name string, gens []SymOp) *PointGroup {
	pg := &PointGroup{Name: name, Ops: closure(gens)}

	registryMu.Lock()
	registry[name] = pg
	registryMu.Unlock()

	return pg
}

// closure computes the group generated by gens under matrix multiplication,
// always including the identity, in deterministic insertion order: the
// identity first, then each generator's orbit under repeated right
// multiplication by every generator, breadth-first. Expansion stops once 48
// or more elements (the largest crystallographic point-group order) have
// been collected; the check runs between breadth-first levels, so a
// generator set that does not close within 48 elements returns more than
// 48. Such a set is a programming error in the table below, not a runtime
// condition, so closure does not return an error.
func closure(gens []SymOp) []SymOp {
	ops := []SymOp{identityOp}
	seen := map[SymOp]bool{identityOp: true}

	frontier := append([]SymOp{}, ops...)
	for len(frontier) > 0 && len(ops) < 48 {
		var next []SymOp
		for _, a := range frontier {
			for _, g := range gens {
				c := mul(a, g)
				if !seen[c] {
					seen[c] = true
					ops = append(ops, c)
					next = append(next, c)
				}
			}
		}
		frontier = next
	}
	return ops
}

// mul returns the matrix product a*b.
func mul(a, b SymOp) SymOp {
	var out SymOp
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum int8
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func init() {
	// Named generators, one row per crystallographic axis/plane operation.
	inv := SymOp{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}}   // inversion
	m001 := SymOp{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}}    // mirror perp c
	two001 := SymOp{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}} // 2-fold along c
	two100 := SymOp{{1, 0, 0}, {0, -1, 0}, {0, 0, -1}} // 2-fold along a
	four001 := SymOp{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}} // 4-fold along c
	three111Hex := SymOp{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}}
	two110 := SymOp{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}}
	six001 := SymOp{{1, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	threeCubic := SymOp{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}
	two001Cubic := two001

	Register("1", []SymOp{identityOp})
	Register("-1", []SymOp{inv})
	Register("2/m", []SymOp{two001, inv})
	Register("mmm", []SymOp{two001, two100, inv})
	Register("4/m", []SymOp{four001, inv})
	Register("4/mmm", []SymOp{four001, two100, inv})
	Register("3", []SymOp{three111Hex})
	Register("-3", []SymOp{three111Hex, inv})
	Register("3m", []SymOp{three111Hex, two110})
	Register("-3m", []SymOp{three111Hex, two110, inv})
	Register("6/m", []SymOp{six001, inv})
	Register("6/mmm", []SymOp{six001, two110, inv})
	Register("m-3m", []SymOp{threeCubic, two001Cubic, m001, four001, inv})
}
