// Package numeric provides the shared linear-algebra and nonlinear
// least-squares primitives used by scaling and post-refinement: a small
// dense matrix type, QR decomposition (adapted from this pack's own
// matrix/ops package), a weighted linear least-squares fit, a generic
// Levenberg-Marquardt minimiser, and deterministic summation helpers.
//
// Determinism matters here: §5 requires scaling's output to be
// bit-identical regardless of thread count, for a fixed summation order.
// PairwiseSum and KahanSum both fix that order; neither this package nor
// any caller may use a non-deterministic atomic float accumulator.
package numeric
