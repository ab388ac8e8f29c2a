package mcts

import "github.com/chewxy/math32"

// ref indexes a Node in a Tree's arena. The root's parent and an absent
// child both use nilRef.
type ref int32

const nilRef ref = -1

// Node is one tree vertex: visit/value statistics, the prior the oracle
// assigned it, terminal status, and its place in the tree. Q is derived, not
// stored - see Node.Q.
type Node struct {
	move   int8 // incoming move column; -1 only at root
	parent ref
	children []ref

	p  float32 // prior probability, unset (0) at root
	n  uint32  // visit count
	w  float32 // cumulative backpropagated value
	vl int32   // virtual loss counter

	terminal      bool
	terminalScore int8 // 0 (draw) or +1 (win for the player who just moved)
	prune         bool // forced-losing branch, discounted in future selection
}

func newNode(parent ref, move int8, prior float32) Node {
	return Node{
		move:   move,
		parent: parent,
		p:      prior,
	}
}

// Q is the node's action value used by PUCT selection:
//   - if prune:          -2*N + (W-VL)/(N+VL)   (large negative, never selected)
//   - else if N+VL == 0: -1                      (first-play urgency)
//   - else:              (W-VL)/(N+VL)
func (n *Node) Q() float32 {
	denom := float32(n.n) + float32(n.vl)
	if n.prune {
		return -2*float32(n.n) + (n.w-float32(n.vl))/denom
	}
	if denom == 0 {
		return -1
	}
	return (n.w - float32(n.vl)) / denom
}

// expanded reports whether children have been attached.
func (n *Node) expanded() bool { return n.children != nil }

// isInf reports whether a PUCT score is the forced-win sentinel.
func isInf(f float32) bool { return math32.IsInf(f, 1) }
