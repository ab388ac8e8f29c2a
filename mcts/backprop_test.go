package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackpropagateUpdatesNWAndVL(t *testing.T) {
	tr := NewTree()
	root := tr.root
	c0 := tr.alloc(root, 0, 0.5)
	tr.Node(root).children = []ref{c0}
	tr.Node(root).vl = 1
	tr.Node(c0).vl = 1

	tr.Backpropagate([]ref{root, c0}, 0.7)

	rn := tr.Node(root)
	cn := tr.Node(c0)
	assert.Equal(t, uint32(1), rn.n)
	assert.Equal(t, uint32(1), cn.n)
	assert.Equal(t, int32(0), rn.vl)
	assert.Equal(t, int32(0), cn.vl)
	// value flips sign at each step up: leaf (last in path) keeps v, its
	// parent sees -v.
	assert.InDelta(t, 0.7, cn.w, 1e-6)
	assert.InDelta(t, -0.7, rn.w, 1e-6)
}

func TestTerminalValueIsNegativeMagnitude(t *testing.T) {
	assert.Equal(t, float32(-1), TerminalValue(1))
	assert.Equal(t, float32(0), TerminalValue(0))
	assert.Equal(t, float32(-1), TerminalValue(-1))
}
