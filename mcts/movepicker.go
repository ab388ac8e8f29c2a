package mcts

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/c4zero/engine/board"
)

// rootVisitDistribution returns, for each column, child.N/root.N if the
// column is legal and expanded, else 0. Fails with EmptySearch if the root
// has not been visited, or every child visit count is zero.
func (t *Tree) rootVisitDistribution() ([board.Columns]float64, error) {
	var out [board.Columns]float64
	root := t.Node(t.root)
	if root.n == 0 {
		return out, EmptySearch
	}
	var any bool
	for _, cref := range root.children {
		c := t.Node(cref)
		out[c.move] = float64(c.n) / float64(root.n)
		any = any || c.n > 0
	}
	if !any {
		return out, EmptySearch
	}
	return out, nil
}

// argmaxLegal returns the index of the largest entry, ties broken by the
// lowest index.
func argmaxLegal(dist [board.Columns]float64) int {
	best := 0
	for i := 1; i < board.Columns; i++ {
		if dist[i] > dist[best] {
			best = i
		}
	}
	return best
}

// mixDirichletIntoDistribution blends Dirichlet(alpha) noise into the root
// visit distribution as 0.84*p + 0.16*noise, restricted to legal columns, so
// the selected move can never land on an illegal one.
func mixDirichletIntoDistribution(dist [board.Columns]float64, legal [board.Columns]bool, alpha float64, src distrand.Source) [board.Columns]float64 {
	legalCount := 0
	for _, ok := range legal {
		if ok {
			legalCount++
		}
	}
	if legalCount == 0 || alpha <= 0 {
		return dist
	}

	alphaVec := make([]float64, legalCount)
	for i := range alphaVec {
		alphaVec[i] = alpha
	}
	dirichlet := distmv.NewDirichlet(alphaVec, src)
	sample := dirichlet.Rand(nil)

	var out [board.Columns]float64
	j := 0
	for c := 0; c < board.Columns; c++ {
		if !legal[c] {
			continue
		}
		out[c] = 0.84*dist[c] + 0.16*sample[j]
		j++
	}
	return out
}

// PickMove converts a completed search's root statistics into a move.
//
// In deterministic mode it returns the argmax of the root visit
// distribution (ties broken by lowest index). In stochastic mode it
// optionally mixes Dirichlet(alpha) noise into the root distribution
// (weights 0.84/0.16), applies temperature via a numerically-stable
// softmax(log(p+1e-10)/temp) over the legal columns, and samples one column
// from the result.
func (d *Driver) PickMove(temperature float32) (int, error) {
	dist, err := d.tree.rootVisitDistribution()
	if err != nil {
		return 0, err
	}
	if !d.cfg.Stochastic {
		return argmaxLegal(dist), nil
	}
	if temperature <= 0 {
		return 0, errors.Wrap(ConfigInvalid, "temperature must be positive")
	}

	probs := dist
	legal := d.board.LegalMoves()
	if d.cfg.MixNoiseAtRoot {
		probs = mixDirichletIntoDistribution(probs, legal, d.cfg.DirAlpha, d.dirichletSrc)
	}

	legalCols := make([]int, 0, board.Columns)
	logits := make([]float32, 0, board.Columns)
	for c := 0; c < board.Columns; c++ {
		if !legal[c] {
			continue
		}
		legalCols = append(legalCols, c)
		logits = append(logits, math32.Log(float32(probs[c])+1e-10)/temperature)
	}
	weights := softmaxF32(logits)
	idx := sampleIndex(weights, d.rng.Float64())
	return legalCols[idx], nil
}

// softmaxF32 computes a numerically stable softmax via the
// exp(x-max(x))/sum(exp(x-max(x))) rearrangement.
func softmaxF32(x []float32) []float32 {
	max := x[0]
	for _, v := range x[1:] {
		if v > max {
			max = v
		}
	}
	out := make([]float32, len(x))
	var sum float32
	for i, v := range x {
		e := math32.Exp(v - max)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// sampleIndex draws an index from a (normalized) weight vector given a
// uniform [0,1) draw u.
func sampleIndex(weights []float32, u float64) int {
	var accum float32
	for i, w := range weights {
		accum += w
		if u < float64(accum) {
			return i
		}
	}
	return len(weights) - 1
}
