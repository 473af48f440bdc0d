// Package snapmerge merges serial femtosecond crystallography snapshots
// into a single list of full reflection intensities.
//
// Each snapshot contributes a partial, per-crystal reflection list whose
// measured intensities are scaled by an unknown overall factor and damped
// by partiality — the fraction of a reflection's true intensity actually
// captured on that shot. snapmerge jointly estimates per-crystal scale
// factors, per-crystal geometric refinement parameters, and the merged
// "full" intensities, iterating scaling and post-refinement to convergence.
//
// Subpackages, leaves first:
//
//	symmetry/    — point-group operators, orbit enumeration, asymmetric unit
//	cell/        — unit cells, reciprocal space, resolution, orientation
//	refl/        — the symmetry-aware reflection list (arena AVL tree)
//	crystal/     — the per-snapshot aggregate: cell, beam, OSF, reflections
//	partiality/  — swappable partiality models (unity, sphere/Ewald-shell)
//	polarisation/ — detector polarisation correction
//	fold/        — folding a reflection list to its asymmetric unit
//	scaling/     — iterative weighted least squares for per-crystal OSFs
//	refine/      — per-crystal post-refinement by Levenberg-Marquardt
//	fom/         — resolution-binned figures of merit and Wilson scaling
//	merge/       — the outer driver orchestrating the stages above
//	report/      — plain-text output for merged lists and summaries
//
// File-format I/O, peak finding, indexing, and detector geometry are
// deliberately out of scope: callers supply a merge.CrystalSource that
// already produced oriented, integrated crystal.Crystal values.
package snapmerge
