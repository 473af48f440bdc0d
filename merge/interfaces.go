package merge

import (
	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// CrystalSource streams indexed crystals from an external loader. Next
// returns io.EOF once the stream is exhausted.
type CrystalSource interface {
	Next() (*crystal.Crystal, error)
}

// CellProvider supplies a reference unit cell (§6.1) against which
// Driver.Run screens every loaded crystal's own indexed cell: a crystal
// whose axis lengths deviate from the reference by more than
// Options.CellTolerance is rejected as an InputError before it reaches
// polarisation correction or folding. Optional — Options.Cells may be nil.
type CellProvider interface {
	ReferenceCell() (cell.UnitCell, error)
}

// PointGroupProvider resolves a point-group name to its operator table.
// DefaultPointGroupProvider adapts symmetry.Lookup to this interface.
type PointGroupProvider interface {
	Lookup(name string) (*symmetry.PointGroup, error)
}

// lookupFunc adapts a plain function to PointGroupProvider.
type lookupFunc func(string) (*symmetry.PointGroup, error)

func (f lookupFunc) Lookup(name string) (*symmetry.PointGroup, error) { return f(name) }

// DefaultPointGroupProvider wraps symmetry.Lookup.
func DefaultPointGroupProvider() PointGroupProvider {
	return lookupFunc(symmetry.Lookup)
}
