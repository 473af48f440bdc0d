package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/fold"
	"github.com/xtalmerge/snapmerge/polarisation"
	"github.com/xtalmerge/snapmerge/refine"
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/scaling"
)

// Driver owns the outer merge loop described in §4.9. It is stateless
// between Run calls: all mutable state lives on the crystals supplied to
// Run and the *refl.ReflList it returns.
type Driver struct {
	Options Options
}

// NewDriver returns a Driver configured with opts.
func NewDriver(opts Options) *Driver {
	return &Driver{Options: opts}
}

// Run executes load -> polarisation-correct -> fold -> initial scale ->
// repeat{select-refinable -> parallel post-refine -> rescale} -> the final
// merged list, the surviving crystals, and one IterationReport per
// completed scaling pass (iteration 0 plus each refinement cycle) are
// returned to the caller for writing and inspection.
//
// On a fatal error (ScalingFailed, or an unknown point group surfaced up
// front) Run returns the last successfully completed iteration's merged
// list and reports alongside the error, so callers can still write(full)
// per §7's "flush the last completed iteration" rule. InputError is
// logged and skipped per crystal; it never aborts Run.
func (d *Driver) Run(ctx context.Context, source CrystalSource, polOpts polarisation.Options) (*refl.ReflList, []*crystal.Crystal, []IterationReport, error) {
	opts := d.Options
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	pg, err := opts.PointGroups.Lookup(opts.PointGroupName)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("merge: %w", err)
	}
	opts.Refine.ReferenceProvided = opts.Scaling.Reference != nil

	var refCell *cell.UnitCell
	if opts.Cells != nil {
		rc, err := opts.Cells.ReferenceCell()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("merge: loading reference cell: %w", err)
		}
		refCell = &rc
	}

	crystals, err := loadAll(source, polOpts, refCell, opts.CellTolerance, log)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, c := range crystals {
		c.Refl = fold.ToAsymmetric(c.Refl, pg)
	}

	full, report, err := scaling.Scale(crystals, pg, opts.Scaling)
	if err != nil {
		return nil, crystals, nil, &ScalingFailed{Iteration: 0, Err: err}
	}
	negIntensity, lowPartiality := scanWarnings(crystals)
	reports := []IterationReport{{
		Iteration: 0,
		Scaling:   report,
		Warnings:  WarningCounts{NegativeIntensity: negIntensity, LowPartiality: lowPartiality},
	}}
	logIteration(log, reports[0])

	for iter := 1; iter <= opts.Iterations; iter++ {
		tooFewRefinable := 0
		for _, c := range crystals {
			n := refine.SelectRefinable(c, full, pg, opts.Refine.ReferenceProvided)
			if n < opts.Refine.MinRefinable {
				tooFewRefinable++
			}
		}

		results, err := refine.ParallelRefine(ctx, crystals, full, pg, opts.Model, opts.Refine)
		for _, r := range results {
			if r.Status == crystal.SolverFailed {
				log.Warn("crystal failed to refine", "crystal", r.CrystalID, "iteration", iter)
			}
		}
		if err != nil {
			return full, crystals, reports, fmt.Errorf("merge: post-refinement cancelled at iteration %d: %w", iter, err)
		}

		if ctx.Err() != nil {
			return full, crystals, reports, ctx.Err()
		}

		nextFull, report, err := scaling.Scale(crystals, pg, opts.Scaling)
		if err != nil {
			return full, crystals, reports, &ScalingFailed{Iteration: iter, Err: err}
		}
		full = nextFull

		negIntensity, lowPartiality = scanWarnings(crystals)
		iterReport := IterationReport{
			Iteration: iter,
			Scaling:   report,
			Warnings: WarningCounts{
				NegativeIntensity: negIntensity,
				LowPartiality:     lowPartiality,
				TooFewRefinable:   tooFewRefinable,
			},
		}
		reports = append(reports, iterReport)
		logIteration(log, iterReport)
	}

	return full, crystals, reports, nil
}

func loadAll(source CrystalSource, polOpts polarisation.Options, refCell *cell.UnitCell, cellTolerance float64, log interface {
	Warn(msg string, args ...any)
}) ([]*crystal.Crystal, error) {
	var crystals []*crystal.Crystal

	for {
		c, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("merge: loading crystal stream: %w", err)
		}

		if verr := c.Validate(); verr != nil {
			ierr := &InputError{CrystalID: c.ID, Err: verr}
			log.Warn("crystal input rejected", "crystal", c.ID, "error", ierr)
			continue
		}

		if refCell != nil {
			if verr := c.ValidateAgainstReference(*refCell, cellTolerance); verr != nil {
				ierr := &InputError{CrystalID: c.ID, Err: verr}
				log.Warn("crystal input rejected", "crystal", c.ID, "error", ierr)
				continue
			}
		}

		localPol := polOpts
		localPol.WavelengthM = c.Beam.WavelengthM
		polarisation.Correct(c.Refl, c.Cell, localPol)

		crystals = append(crystals, c)
	}

	return crystals, nil
}

func logIteration(log interface {
	Info(msg string, args ...any)
}, rep IterationReport) {
	log.Info("scaling iteration complete",
		"iteration", rep.Iteration,
		"active_crystals", rep.Scaling.ActiveCrystals,
		"solver_failed", rep.Scaling.SolverFailedCrystals,
		"scalable_observations", rep.Scaling.ScalableObservations,
		"converged", rep.Scaling.Converged,
		"warn_negative_intensity", rep.Warnings.NegativeIntensity,
		"warn_low_partiality", rep.Warnings.LowPartiality,
		"warn_too_few_refinable", rep.Warnings.TooFewRefinable,
	)
}
