// Package refine implements §4.8: per-crystal post-refinement of
// orientation, cell strain, profile radius, and beam divergence
// against the current merged "full" intensity list, by nonlinear least
// squares. Refinement for distinct crystals is independent and is the one
// stage the merge driver parallelises (§5).
package refine
