package mcts

// Tree owns a root Node plus its reachable descendants in a flat arena, the
// same index-based allocation style as the reference engine's node arena:
// nodes are referenced by a small integer (ref) rather than a pointer, and
// freed nodes go back onto a freelist instead of being individually
// collected. Re-rooting (Reuse) transfers ownership to a subtree and
// releases the rest back onto the freelist.
type Tree struct {
	nodes    []Node
	freelist []ref
	root     ref
}

// NewTree creates a tree with a single, unexpanded root.
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.alloc(nilRef, -1, 0)
	return t
}

// Root returns the current root reference.
func (t *Tree) Root() ref { return t.root }

// Node dereferences r. Callers never retain refs across a Reuse of an
// ancestor of r.
func (t *Tree) Node(r ref) *Node { return &t.nodes[r] }

func (t *Tree) alloc(parent ref, move int8, prior float32) ref {
	if l := len(t.freelist); l > 0 {
		r := t.freelist[l-1]
		t.freelist = t.freelist[:l-1]
		t.nodes[r] = newNode(parent, move, prior)
		return r
	}
	t.nodes = append(t.nodes, newNode(parent, move, prior))
	return ref(len(t.nodes) - 1)
}

// free returns r, and everything reachable from it, to the freelist.
func (t *Tree) free(r ref) {
	if r == nilRef {
		return
	}
	n := t.Node(r)
	for _, c := range n.children {
		t.free(c)
	}
	*n = Node{}
	t.freelist = append(t.freelist, r)
}

// NodeCount returns the number of live (allocated, unfreed) nodes.
func (t *Tree) NodeCount() int {
	return len(t.nodes) - len(t.freelist)
}
