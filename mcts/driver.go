package mcts

import (
	"time"

	distrand "golang.org/x/exp/rand"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/c4zero/engine/board"
	"github.com/c4zero/engine/oracle"
)

// Driver runs playouts against one tree/board pair using an external oracle.
// It owns the only mutable state a search needs: the tree, the authoritative
// board the tree is rooted on, and the random sources used in stochastic
// mode (Dirichlet noise at expansion, mirror-augmentation coin flips, and,
// optionally, noise at move selection).
type Driver struct {
	tree  *Tree
	board *board.Board
	o     oracle.Oracle
	cfg   Config

	rng          *distrand.Rand
	dirichletSrc distrand.Source

	// mirrorRoll decides, once per batch in stochastic mode, whether to
	// mirror the batch before evaluation. It defaults to an unbiased coin
	// flip off d.rng and is overridable so tests can force mirroring on or
	// off deterministically.
	mirrorRoll func() bool

	stop bool
}

// NewDriver builds a Driver over b using o as the policy/value source. cfg is
// validated immediately; a malformed Config is rejected before any playout
// runs rather than failing mid-search. seed determines every random draw the
// driver makes (Dirichlet sampling, mirror coin flips, move sampling), so a
// fixed seed reproduces a search exactly given a deterministic oracle.
func NewDriver(b *board.Board, o oracle.Oracle, cfg Config, seed uint64) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.HistoryDepth != b.HistoryDepth() {
		return nil, errors.Wrapf(ConfigInvalid, "history_depth %d does not match board history depth %d", cfg.HistoryDepth, b.HistoryDepth())
	}
	d := &Driver{
		tree:         NewTree(),
		board:        b,
		o:            o,
		cfg:          cfg,
		rng:          distrand.New(distrand.NewSource(seed)),
		dirichletSrc: distrand.NewSource(seed ^ 0x9e3779b97f4a7c15),
	}
	d.mirrorRoll = func() bool { return d.rng.Float64() < 0.5 }
	return d, nil
}

// Tree exposes the underlying search tree (PrincipalVariation, ExportDOT,
// Reuse and similar read/reuse operations live on it).
func (d *Driver) Tree() *Tree { return d.tree }

// Board exposes the authoritative position the tree is rooted on.
func (d *Driver) Board() *board.Board { return d.board }

// SetMirrorHook overrides how the driver decides, per batch, whether to
// mirror before evaluation. Intended for deterministic tests; production
// callers should leave the default unbiased coin flip in place.
func (d *Driver) SetMirrorHook(hook func() bool) { d.mirrorRoll = hook }

// Stop requests that any in-progress Run/RunFor return after its current
// batch completes.
func (d *Driver) Stop() { d.stop = true }

func (d *Driver) rootN() int {
	return int(d.tree.Node(d.tree.root).n)
}

// ApplyAndReuse plays column on the authoritative board and re-roots the
// tree on the corresponding child. If the tree never expanded that column
// (e.g. zero playouts ran before this call), it starts a fresh tree rooted
// on the new position instead. Returns the number of visits the reused
// subtree already carries.
func (d *Driver) ApplyAndReuse(column int) (uint32, error) {
	if err := d.board.Apply(column); err != nil {
		return 0, err
	}
	visits, ok := d.tree.Reuse(int8(column))
	if !ok {
		d.tree = NewTree()
		return 0, nil
	}
	return visits, nil
}

// RootStat is one expanded root child's statistics.
type RootStat struct {
	Move int8
	N    uint32
	Q    float32
	P    float32
}

// RootStats returns one entry per expanded root child, in child order
// (ascending column).
func (d *Driver) RootStats() []RootStat {
	root := d.tree.Node(d.tree.root)
	out := make([]RootStat, 0, len(root.children))
	for _, cref := range root.children {
		c := d.tree.Node(cref)
		out = append(out, RootStat{Move: c.move, N: c.n, Q: c.Q(), P: c.p})
	}
	return out
}

// Run drives batches until at least cfg.Playouts visits have accrued at the
// root, then returns the resulting root visit distribution.
func (d *Driver) Run() ([board.Columns]float64, error) {
	for !d.stop && d.rootN() < d.cfg.Playouts {
		if err := d.runBatch(); err != nil {
			return [board.Columns]float64{}, err
		}
	}
	return d.tree.rootVisitDistribution()
}

// RunFor drives playouts until cfg.Playouts visits have accrued at the root
// AND deadline has elapsed since the call began. The deadline is checked
// only between batches, never inside one, so an in-flight batch always
// completes. Once both conditions hold it returns the root visit
// distribution; until the deadline passes it keeps extending its target so a
// generous deadline still buys extra search depth.
func (d *Driver) RunFor(deadline time.Duration) ([board.Columns]float64, error) {
	start := time.Now()
	target := d.cfg.Playouts
	for !d.stop {
		if d.rootN() >= target {
			if time.Since(start) >= deadline {
				break
			}
			target += 3 * d.cfg.BatchSize
			continue
		}
		if err := d.runBatch(); err != nil {
			return [board.Columns]float64{}, err
		}
	}
	return d.tree.rootVisitDistribution()
}

// batchDescent is one collected root-to-leaf walk awaiting evaluation.
type batchDescent struct {
	path     []ref
	leaf     ref
	leafBrd  *board.Board
	terminal bool
}

// runBatch collects up to cfg.BatchSize descents, evaluates every
// non-terminal leaf with a single oracle call, expands and back-propagates
// each descent, and only then commits any pruning decisions the descents
// queued - committing mid-batch risks double back-propagation on a node
// visited twice within the same batch.
func (d *Driver) runBatch() error {
	var queue []pruneDecision
	descents := make([]batchDescent, 0, d.cfg.BatchSize)

	for i := 0; i < d.cfg.BatchSize; i++ {
		scratch := d.board.Clone()
		leaf, path := d.tree.Descend(d.cfg, scratch, &queue)
		descents = append(descents, batchDescent{
			path:     path,
			leaf:     leaf,
			leafBrd:  scratch,
			terminal: d.tree.Node(leaf).terminal,
		})
	}

	var leafIdx []int
	var states []*tensor.Dense
	for i, de := range descents {
		if de.terminal {
			continue
		}
		leafIdx = append(leafIdx, i)
		states = append(states, de.leafBrd.StateTensor())
	}

	var values []float32
	var policies [][oracle.Columns]float32
	if len(states) > 0 {
		mirrored := d.cfg.Stochastic && d.mirrorRoll()
		if mirrored {
			for i, s := range states {
				states[i] = mirrorStateTensor(s)
			}
		}

		batch := oracle.NewBatch(states)
		var err error
		values, policies, err = d.o.Evaluate(batch)
		if err != nil {
			return err
		}
		if err := oracle.Validate(batch.Len(), values, policies); err != nil {
			return err
		}

		if mirrored {
			for i, p := range policies {
				policies[i] = mirrorPolicy(p)
			}
		}
	}

	for vi, i := range leafIdx {
		de := descents[i]
		priors := policies[vi]
		legal := de.leafBrd.LegalMoves()
		if d.cfg.Stochastic && d.cfg.DirAlpha > 0 {
			priors = MixDirichletNoise(priors, legal, d.cfg.DirAlpha, d.dirichletSrc)
		}
		d.tree.Expand(de.leaf, priors, de.leafBrd)
	}

	for i, de := range descents {
		var v float32
		if de.terminal {
			v = TerminalValue(d.tree.Node(de.leaf).terminalScore)
		} else {
			vi := indexOf(leafIdx, i)
			v = values[vi]
		}
		d.tree.Backpropagate(de.path, v)
	}

	d.tree.applyPruneQueue(queue)

	if d.cfg.Trace != nil {
		d.cfg.Trace(d.rootN(), len(descents))
	}
	return nil
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

// mirrorStateTensor reverses the column axis of a (Columns, Rows, depth)
// state tensor.
func mirrorStateTensor(t *tensor.Dense) *tensor.Dense {
	shape := t.Shape()
	cols, rows, depth := shape[0], shape[1], shape[2]
	data := t.Data().([]float32)
	out := make([]float32, len(data))
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			for p := 0; p < depth; p++ {
				src := (c*rows+r)*depth + p
				dst := ((cols-1-c)*rows+r)*depth + p
				out[dst] = data[src]
			}
		}
	}
	return tensor.New(tensor.WithShape(cols, rows, depth), tensor.WithBacking(out))
}

// mirrorPolicy reverses a seven-element policy so indices keep referring to
// the same (unmirrored) column from the caller's point of view.
func mirrorPolicy(p [oracle.Columns]float32) [oracle.Columns]float32 {
	var out [oracle.Columns]float32
	for i, v := range p {
		out[oracle.Columns-1-i] = v
	}
	return out
}
