package refl

// node is one arena slot: a Reflection payload plus AVL tree topology.
// Topology fields are Handles (arena indices); noHandle marks "no child".
type node struct {
	refl Reflection

	left, right, parent Handle
	height               int8
}

// cmp orders two Miller indices lexicographically, h most significant —
// the same total order used for ReflList iteration and for the fixed key
// comparator the tree is built on. symmetry.Asymmetric picks the greatest
// orbit member under the same lexicographic order; the two comparators are
// defined separately (one orders a tree, the other picks an orbit member).
func cmp(h1, k1, l1, h2, k2, l2 int32) int {
	switch {
	case h1 != h2:
		return int(h1 - h2)
	case k1 != k2:
		return int(k1 - k2)
	default:
		return int(l1 - l2)
	}
}

func (t *ReflList) heightOf(h Handle) int8 {
	if h == noHandle {
		return 0
	}
	return t.arena[h].height
}

func (t *ReflList) updateHeight(h Handle) {
	n := &t.arena[h]
	lh, rh := t.heightOf(n.left), t.heightOf(n.right)
	if lh > rh {
		n.height = lh + 1
	} else {
		n.height = rh + 1
	}
}

func (t *ReflList) balanceFactor(h Handle) int {
	n := &t.arena[h]
	return int(t.heightOf(n.left)) - int(t.heightOf(n.right))
}

// rotateLeft performs a left rotation around h, returning the new subtree
// root. h's parent pointer must be fixed up by the caller.
func (t *ReflList) rotateLeft(h Handle) Handle {
	n := &t.arena[h]
	r := n.right
	rn := &t.arena[r]

	n.right = rn.left
	if rn.left != noHandle {
		t.arena[rn.left].parent = h
	}
	rn.left = h
	rn.parent = n.parent
	n.parent = r

	t.updateHeight(h)
	t.updateHeight(r)
	return r
}

// rotateRight performs a right rotation around h, returning the new subtree
// root. h's parent pointer must be fixed up by the caller.
func (t *ReflList) rotateRight(h Handle) Handle {
	n := &t.arena[h]
	l := n.left
	ln := &t.arena[l]

	n.left = ln.right
	if ln.right != noHandle {
		t.arena[ln.right].parent = h
	}
	ln.right = h
	ln.parent = n.parent
	n.parent = l

	t.updateHeight(h)
	t.updateHeight(l)
	return l
}

// rebalance restores the AVL invariant at h and returns the (possibly new)
// subtree root.
func (t *ReflList) rebalance(h Handle) Handle {
	t.updateHeight(h)
	bf := t.balanceFactor(h)

	if bf > 1 {
		if t.balanceFactor(t.arena[h].left) < 0 {
			t.arena[h].left = t.rotateLeft(t.arena[h].left)
			t.arena[t.arena[h].left].parent = h
		}
		return t.rotateRight(h)
	}
	if bf < -1 {
		if t.balanceFactor(t.arena[h].right) > 0 {
			t.arena[h].right = t.rotateRight(t.arena[h].right)
			t.arena[t.arena[h].right].parent = h
		}
		return t.rotateLeft(h)
	}
	return h
}

// findNode returns the arena handle for (h,k,l), or noHandle if absent.
func (t *ReflList) findNode(h, k, l int32) Handle {
	cur := t.root
	for cur != noHandle {
		n := &t.arena[cur]
		c := cmp(h, k, l, n.refl.h, n.refl.k, n.refl.l)
		switch {
		case c == 0:
			return cur
		case c < 0:
			cur = n.left
		default:
			cur = n.right
		}
	}
	return noHandle
}

// insertNode inserts a fresh arena slot for (h,k,l) and returns its handle.
// Caller must have already confirmed (h,k,l) is absent via findNode.
func (t *ReflList) insertNode(h, k, l int32) Handle {
	newIdx := Handle(len(t.arena))
	t.arena = append(t.arena, node{
		refl:   Reflection{h: h, k: k, l: l, partiality: 1, lorentz: 1},
		left:   noHandle,
		right:  noHandle,
		parent: noHandle,
		height: 1,
	})

	if t.root == noHandle {
		t.root = newIdx
		return newIdx
	}

	// Standard BST descent, tracking the path for rebalancing afterward.
	var path []Handle
	cur := t.root
	for {
		path = append(path, cur)
		n := &t.arena[cur]
		c := cmp(h, k, l, n.refl.h, n.refl.k, n.refl.l)
		if c < 0 {
			if n.left == noHandle {
				n.left = newIdx
				t.arena[newIdx].parent = cur
				break
			}
			cur = n.left
		} else {
			if n.right == noHandle {
				n.right = newIdx
				t.arena[newIdx].parent = cur
				break
			}
			cur = n.right
		}
	}

	// Rebalance bottom-up along the insertion path.
	for i := len(path) - 1; i >= 0; i-- {
		p := path[i]
		newRoot := t.rebalance(p)
		if newRoot != p {
			// Relink newRoot into its parent (or make it the tree root).
			parent := t.arena[newRoot].parent
			if parent == noHandle {
				t.root = newRoot
			} else {
				pn := &t.arena[parent]
				if pn.left == p {
					pn.left = newRoot
				} else {
					pn.right = newRoot
				}
			}
		}
	}
	return newIdx
}

// leftmost returns the leftmost (smallest-keyed) descendant of h, or
// noHandle if h is noHandle.
func (t *ReflList) leftmost(h Handle) Handle {
	if h == noHandle {
		return noHandle
	}
	for t.arena[h].left != noHandle {
		h = t.arena[h].left
	}
	return h
}

// successor returns the in-order successor of h, or noHandle if h is the
// last node.
func (t *ReflList) successor(h Handle) Handle {
	n := &t.arena[h]
	if n.right != noHandle {
		return t.leftmost(n.right)
	}
	cur, parent := h, n.parent
	for parent != noHandle && cur == t.arena[parent].right {
		cur = parent
		parent = t.arena[parent].parent
	}
	return parent
}
