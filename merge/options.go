package merge

import (
	"log/slog"

	"github.com/xtalmerge/snapmerge/partiality"
	"github.com/xtalmerge/snapmerge/refine"
	"github.com/xtalmerge/snapmerge/scaling"
)

// Options configures one Driver.Run call.
type Options struct {
	PointGroupName string
	PointGroups    PointGroupProvider

	// Cells, if non-nil, supplies a reference UnitCell (§6.1) that every
	// loaded crystal's own cell is screened against before it enters the
	// pipeline; crystals that deviate beyond CellTolerance are rejected as
	// an InputError. Optional — when nil, no cross-check is performed.
	Cells         CellProvider
	CellTolerance float64

	// Iterations is N in §4.9's outer "repeat N times" loop.
	Iterations int

	Model partiality.Model

	Scaling scaling.Options
	Refine  refine.Options

	Logger *slog.Logger
}

// DefaultOptions returns Iterations=10 (§6.3's documented default), the
// Unity partiality model, default scaling/refine options, the
// package-level symmetry.Lookup provider, no cell provider, and
// slog.Default() as the logger.
func DefaultOptions(pointGroupName string) Options {
	return Options{
		PointGroupName: pointGroupName,
		PointGroups:    DefaultPointGroupProvider(),
		CellTolerance:  0.02,
		Iterations:     10,
		Model:          partiality.Unity{},
		Scaling:        scaling.DefaultOptions(),
		Refine:         refine.DefaultOptions(),
		Logger:         slog.Default(),
	}
}
