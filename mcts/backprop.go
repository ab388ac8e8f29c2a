package mcts

// Backpropagate walks a descent's path from leaf to root, incrementing N by
// one, adding the signed value to W, and decrementing VL by one at each
// node. The sign flips at every step so a node's parent observes the
// negation of what the node itself observed - value is the leaf's value
// for the side about to move at the leaf.
func (t *Tree) Backpropagate(path []ref, value float32) {
	v := value
	for i := len(path) - 1; i >= 0; i-- {
		n := t.Node(path[i])
		n.n++
		n.w += v
		n.vl--
		v = -v
	}
}

// TerminalValue is the deterministic value a terminal leaf back-propagates:
// the mover at that leaf sees a loss when the previous mover completed
// four-in-a-row, and a draw back-propagates 0.
func TerminalValue(terminalScore int8) float32 {
	s := terminalScore
	if s < 0 {
		s = -s
	}
	return -float32(s)
}
