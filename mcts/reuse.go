package mcts

// Reuse re-roots the tree on the child reached by playing move m from the
// current root: that child's parent link is cleared, its move/prior fields
// no longer apply (it is now the root), and every sibling subtree is
// released back to the freelist. Returns the new root's visit count, which
// callers use as the driver's continued playout baseline.
func (t *Tree) Reuse(m int8) (newRootVisits uint32, ok bool) {
	root := t.Node(t.root)
	var chosen ref = nilRef
	for _, cref := range root.children {
		if t.Node(cref).move == m {
			chosen = cref
			break
		}
	}
	if chosen == nilRef {
		return 0, false
	}

	for _, cref := range root.children {
		if cref != chosen {
			t.free(cref)
		}
	}

	newRoot := t.Node(chosen)
	visits := newRoot.n
	newRoot.parent = nilRef
	newRoot.move = -1
	newRoot.p = 0

	t.freeNodeOnly(t.root) // old root itself; chosen has already been detached above
	t.root = chosen
	return visits, true
}

// freeNodeOnly returns a single node to the freelist without recursing into
// its children (used when a child has already been detached and must
// survive).
func (t *Tree) freeNodeOnly(r ref) {
	*t.Node(r) = Node{}
	t.freelist = append(t.freelist, r)
}
