// Package refl implements ReflList, the indexed reflection container shared
// by every stage of the pipeline: an ordered map from a Miller index
// (h,k,l) to a mutable Reflection record, backed by an arena-allocated AVL
// tree rather than raw parent/child pointers (see SPEC_FULL.md's Design
// Notes on handle-based borrowing).
//
// A Handle is an opaque arena index, never a pointer: it is a borrow scoped
// to the owning ReflList and becomes invalid once FreeAll is called. All
// field access goes through ReflList methods that take a Handle, mirroring
// the opaque-handle pattern the pipeline's accessors use throughout.
package refl
