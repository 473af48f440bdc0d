// Package merge implements §4.9: the outer MergeDriver loop that loads
// crystals from an external source, corrects and folds them, scales once,
// then alternates post-refinement and rescaling for a configured number of
// rounds before writing the final merged list.
package merge
