// Package crystal defines the per-snapshot aggregate the rest of the
// pipeline operates on: an indexed orientation and unit cell, beam
// parameters, an overall scale factor, and the crystal's own reflection
// list, plus the status it accumulates as scaling and post-refinement run.
package crystal
