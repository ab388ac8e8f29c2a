package mcts

import (
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/c4zero/engine/board"
	"github.com/c4zero/engine/oracle"
)

// Expand attaches children to a non-terminal leaf using the oracle's policy
// prior. For each legal column it plays the move on a scratch copy of b,
// checks the resulting position for terminality, and records that as the
// child's own terminal status - a win for the mover becomes terminal_score=1
// from the child's perspective, a draw becomes terminal_score=0 with
// terminal=true. Children are appended in ascending column order, so child
// count equals the number of legal columns and callers must re-index root
// policy reads by legality.
//
// Expand is a no-op if the node already has children (guards the "two
// descents landed on the same leaf" case - expand at most once).
func (t *Tree) Expand(leaf ref, priors [oracle.Columns]float32, b *board.Board) {
	n := t.Node(leaf)
	if n.expanded() {
		return
	}
	legal := b.LegalMoves()
	children := make([]ref, 0, board.Columns)
	for c := 0; c < board.Columns; c++ {
		if !legal[c] {
			continue
		}
		scratch := b.Clone()
		_ = scratch.Apply(c) // legal by construction
		outcome := scratch.CheckTerminal()

		isTerminal := outcome != board.None
		score := int8(0)
		if outcome == board.Win {
			score = 1
		}
		cref := t.alloc(leaf, int8(c), priors[c])
		child := t.Node(cref)
		child.terminal = isTerminal
		child.terminalScore = score
		children = append(children, cref)
	}
	n.children = children
}

// MixDirichletNoise blends Dirichlet(alpha) noise into priors over legal
// columns only, as 0.5*p + 0.5*noise, leaving illegal columns at exactly
// zero. src seeds the Dirichlet sampler.
func MixDirichletNoise(priors [oracle.Columns]float32, legal [board.Columns]bool, alpha float64, src distrand.Source) [oracle.Columns]float32 {
	legalCount := 0
	for _, ok := range legal {
		if ok {
			legalCount++
		}
	}
	if legalCount == 0 {
		return priors
	}

	alphaVec := make([]float64, legalCount)
	for i := range alphaVec {
		alphaVec[i] = alpha
	}
	dirichlet := distmv.NewDirichlet(alphaVec, src)
	sample := dirichlet.Rand(nil)

	var out [oracle.Columns]float32
	j := 0
	for c := 0; c < oracle.Columns; c++ {
		if !legal[c] {
			continue
		}
		out[c] = 0.5*priors[c] + float32(0.5*sample[j])
		j++
	}
	return out
}
