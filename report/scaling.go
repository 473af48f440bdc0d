package report

import (
	"fmt"
	"io"

	"github.com/xtalmerge/snapmerge/scaling"
)

// WriteScalingReport writes a one-line summary of a scaling.Report.
func WriteScalingReport(w io.Writer, rep scaling.Report) error {
	_, err := fmt.Fprintf(w, "scaling: iterations=%d active=%d solver_failed=%d observations=%d converged=%t max_delta=%.3g\n",
		rep.Iterations, rep.ActiveCrystals, rep.SolverFailedCrystals, rep.ScalableObservations, rep.Converged, rep.MaxLogOSFDelta)
	return err
}

// WriteIterationReport writes the merge driver's compact per-iteration
// recoverable-error summary: "n crystals could not be refined: a no-ref,
// b solve-failed, c lost" (§7's propagation rule), followed by the scaling
// report for the same iteration.
func WriteIterationReport(w io.Writer, iteration int, noRef, solverFailed, lost int, rep scaling.Report) error {
	if _, err := fmt.Fprintf(w, "iteration %d: %d crystals could not be refined: %d no-ref, %d solve-failed, %d lost\n",
		iteration, noRef+solverFailed+lost, noRef, solverFailed, lost); err != nil {
		return err
	}
	return WriteScalingReport(w, rep)
}
