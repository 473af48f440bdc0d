package refl

import "errors"

// ErrNotFound names the condition of a reflection missing from a ReflList.
// No ReflList method returns it; Find reports absence through its bool
// result.
var ErrNotFound = errors.New("refl: reflection not found")

// Handle is an opaque reference to one Reflection stored in a ReflList. It
// is an arena index, not a pointer: valid only for the lifetime of the
// owning ReflList and only as long as the entry has not been removed.
type Handle int32

// noHandle is the sentinel for "no such node" inside the arena.
const noHandle Handle = -1

// DetectorPosition is the observed (fast-scan, slow-scan) pixel position of
// a reflection, in detector-panel coordinates.
type DetectorPosition struct {
	Fast, Slow float64
}

// Reflection is the mutable, per-(h,k,l) record stored in a ReflList.
// Fields are accessed and mutated only through ReflList's handle-scoped
// getters/setters (see methods.go); the struct itself is package-private
// storage, not part of the public surface, so future fields can be added
// without breaking callers.
type Reflection struct {
	h, k, l int32

	intensity  float64
	sigma      float64
	partiality float64
	redundancy int32
	lorentz    float64
	pos        DetectorPosition

	scalable  bool
	refinable bool
}
