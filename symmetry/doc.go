// Package symmetry provides crystallographic point-group operator lists and
// the Miller-index operations built on top of them: orbit enumeration,
// centricity testing, and reduction to a deterministic asymmetric-unit
// representative.
//
// A PointGroup is a finite, ordered list of 3x3 integer matrices (the point
// group's operators acting on reciprocal-lattice indices). Every list
// contains the identity and is closed under composition by construction —
// see pointgroups.go for the generator tables.
package symmetry
