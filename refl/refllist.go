package refl

import "sync"

// ReflList is an ordered map from a Miller index (h,k,l) to a Reflection,
// backed by an arena-allocated AVL tree (see avl.go) instead of raw
// parent/child pointers. Thread-safe: a single sync.RWMutex guards both the
// tree topology and the arena, mirroring core.Graph's locking discipline
// elsewhere in this pack.
//
// Add has upsert semantics: it creates the entry if (h,k,l) is absent and
// returns the existing Handle unchanged otherwise. This is the design
// decision recorded in DESIGN.md for the spec's documented-but-unpinned
// "insert-always vs upsert" choice — upsert is what keeps the "no duplicate
// keys" invariant relied on by fold, scaling, and merge intact.
type ReflList struct {
	mu    sync.RWMutex
	arena []node
	root  Handle
}

// NewReflList returns an empty reflection list.
func NewReflList() *ReflList {
	return &ReflList{root: noHandle}
}

// Add inserts (h,k,l) if absent and returns its Handle. If the key is
// already present, the existing Handle is returned and no new entry is
// created. Complexity: O(log n) amortized.
func (t *ReflList) Add(h, k, l int32) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing := t.findNode(h, k, l); existing != noHandle {
		return existing
	}
	return t.insertNode(h, k, l)
}

// Find returns the Handle for (h,k,l) and true, or (noHandle, false) if
// absent. Find performs no symmetry folding — callers fold first if that is
// what they want. Complexity: O(log n).
func (t *ReflList) Find(h, k, l int32) (Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.findNode(h, k, l)
	return n, n != noHandle
}

// Count returns the number of reflections currently stored.
func (t *ReflList) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.arena)
}

// First returns the Handle of the smallest-keyed reflection, in the tree's
// in-order sense, and false if the list is empty.
func (t *ReflList) First() (Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	h := t.leftmost(t.root)
	return h, h != noHandle
}

// Next returns the in-order successor of cur, and false if cur was the last
// reflection.
func (t *ReflList) Next(cur Handle) (Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	h := t.successor(cur)
	return h, h != noHandle
}

// ForEach visits every reflection in deterministic, tree-key order. fn must
// not call Add on the same list (it would invalidate the in-progress
// traversal); mutating an existing Handle's fields through the setters is
// safe.
func (t *ReflList) ForEach(fn func(Handle)) {
	for h, ok := t.First(); ok; h, ok = t.Next(h) {
		fn(h)
	}
}

// FreeAll discards every reflection, returning the list to its initial
// empty state. Outstanding Handles become invalid.
func (t *ReflList) FreeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.arena = nil
	t.root = noHandle
}
