// Package scaling implements §4.7: an iterative weighted linear
// least-squares solve, alternating between per-crystal log-scale factors
// and the merged "full" intensities they imply, in log-scale-factor space.
package scaling
