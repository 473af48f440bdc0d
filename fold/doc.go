// Package fold implements §4.5 asymmetric folding: reducing every
// reflection in a list to its point-group asymmetric representative and
// collapsing symmetry-equivalent observations from the same crystal into a
// single mean-intensity entry.
package fold
