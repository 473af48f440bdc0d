// Package cell implements the crystallographic unit cell: construction from
// either six scalar parameters or three Cartesian axis vectors, conversion
// between the two, reciprocal-space axes, and resolution d*(h,k,l).
//
// UnitCell is immutable after construction; every transform (reciprocal,
// Rotate) returns a new value rather than mutating the receiver.
package cell
