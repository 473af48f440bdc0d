// Package partiality implements the §4.6 partiality model abstraction: a
// pure function from (crystal, Miller index) to the fraction of that
// reflection captured in one snapshot, plus an UpdatePartialities pass that
// refreshes every reflection already stored on a crystal.
//
// Two implementations are provided, selected through the Model interface
// rather than an enum+switch (see SPEC_FULL.md's Design Notes): Unity (p=1,
// a no-op update) and Sphere (a closed-form Ewald sphere-shell / reflection
// ball intersection).
package partiality
