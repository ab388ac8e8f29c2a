package mcts

import (
	"github.com/chewxy/math32"

	"github.com/c4zero/engine/board"
)

// pruneDecision is a mutation the Selector wants to apply to the tree but
// that must wait until the current batch has fully back-propagated (spec
// section 9: marking a node terminal mid-batch risks double
// back-propagation). The Driver applies queued decisions after Backpropagate
// returns for every descent in the batch.
type pruneDecision struct {
	node     ref
	terminal bool
	prune    bool
}

// puctScore is the PUCT selection score for a child given its parent's visit
// count: Q(child) + scale*P(child)*sqrt(N(parent))/(1+N(child)+VL(child)),
// where scale = log((N(parent)+C_base+1)/C_base) + c_puct. A child that is
// terminal with a winning score scores +Inf: the mover must take an
// available winning reply.
//
// The exploration term's denominator folds in virtual loss alongside the
// real visit count: at W=0 the Q formula's (W-VL)/(N+VL) is exactly -1
// regardless of VL, so VL alone cannot spread descents across tied,
// unvisited siblings within one batch unless the exploration term also
// discounts a child currently being explored in-flight.
func puctScore(n *Node, parentN uint32, cPuct float32) float32 {
	if n.terminal && n.terminalScore == 1 {
		return math32.Inf(1)
	}
	scale := math32.Log((float32(parentN)+cPUCTBase+1)/cPUCTBase) + cPuct
	u := scale * n.p * math32.Sqrt(float32(parentN)) / (1 + float32(n.n) + float32(n.vl))
	return n.Q() + u
}

// Descend walks from the root to a leaf, applying each traversed move to b
// and incrementing virtual loss on every node visited (including the root).
// It stops at a node that is either unexpanded or terminal and returns it
// along with the full root-to-leaf path (used for back-propagation).
//
// If cfg.Prune is set, forced-loss/forced-win observations are queued rather
// than applied immediately; the caller must apply them (Tree.applyPruneQueue)
// only after the whole batch has been back-propagated.
func (t *Tree) Descend(cfg Config, b *board.Board, queue *[]pruneDecision) (leaf ref, path []ref) {
	cur := t.root
	t.Node(cur).vl++
	path = append(path, cur)

	for {
		n := t.Node(cur)
		if !n.expanded() || n.terminal {
			return cur, path
		}

		// Counting in-flight virtual loss alongside real visits keeps the
		// exploration term from going to zero on the very first descent of
		// a fresh batch (N(parent)=0 otherwise), which is what actually
		// spreads a batch of descents across tied, unvisited siblings.
		parentN := n.n + uint32(n.vl)
		bestScore := math32.Inf(-1)
		bestIdx := 0
		allLosing := true
		sawForcedLoss := false
		for i, cref := range n.children {
			c := t.Node(cref)
			s := puctScore(c, parentN, cfg.CPuct)
			if s > -1 {
				allLosing = false
			}
			if isInf(s) {
				sawForcedLoss = true
			}
			if s > bestScore {
				bestScore = s
				bestIdx = i
			}
		}

		if cfg.Prune {
			if allLosing {
				*queue = append(*queue, pruneDecision{node: cur, terminal: true})
				return cur, path
			}
			if sawForcedLoss {
				*queue = append(*queue, pruneDecision{node: cur, prune: true})
			}
		}

		chosen := n.children[bestIdx]
		cn := t.Node(chosen)
		if err := b.Apply(int(cn.move)); err != nil {
			panic("mcts: selected child's move was not legal on the descent board")
		}
		cn.vl++
		path = append(path, chosen)
		cur = chosen
	}
}

// applyPruneQueue commits deferred prune/terminal decisions gathered during
// one batch's descents, after that batch has been fully back-propagated.
func (t *Tree) applyPruneQueue(queue []pruneDecision) {
	for _, d := range queue {
		n := t.Node(d.node)
		if d.terminal {
			n.terminal = true
			n.terminalScore = 1
		}
		if d.prune {
			n.prune = true
		}
	}
}
