package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c4zero/engine/board"
	"github.com/c4zero/engine/oracle"
)

func TestNewDriverRejectsInvalidConfig(t *testing.T) {
	b := board.New(1)
	cfg := DefaultConfig()
	cfg.Playouts = 0
	_, err := NewDriver(b, oracle.Uniform{}, cfg, 1)
	assert.ErrorIs(t, err, ConfigInvalid)
}

func TestRunReachesTargetVisits(t *testing.T) {
	b := board.New(1)
	cfg := DefaultConfig()
	cfg.Playouts = 32
	cfg.BatchSize = 4
	d, err := NewDriver(b, oracle.Uniform{}, cfg, 1)
	require.NoError(t, err)

	dist, err := d.Run()
	require.NoError(t, err)

	var sum float64
	for _, p := range dist {
		sum += p
	}
	// The first batch's 4 descents stop at the unexpanded root, so they count
	// toward root.N but toward no child: the entries sum to (32-4)/32.
	assert.InDelta(t, 28.0/32.0, sum, 1e-6)

	root := d.tree.Node(d.tree.root)
	assert.GreaterOrEqual(t, root.n, uint32(cfg.Playouts))
	assert.LessOrEqual(t, root.n, uint32(cfg.Playouts+cfg.BatchSize-1))
}

// After a completed batch, virtual loss on every node is back to zero.
func TestRunLeavesNoResidualVirtualLoss(t *testing.T) {
	b := board.New(1)
	cfg := DefaultConfig()
	cfg.Playouts = 40
	cfg.BatchSize = 8
	d, err := NewDriver(b, oracle.Uniform{}, cfg, 2)
	require.NoError(t, err)

	_, err = d.Run()
	require.NoError(t, err)

	for _, n := range d.tree.nodes {
		assert.Equal(t, int32(0), n.vl)
	}
}

// biasedOracle reports a strong prior on one column regardless of position,
// so a root with a one-move forced win is preferred over other replies.
type biasedOracle struct {
	favor int
}

func (o biasedOracle) Evaluate(batch *oracle.Batch) ([]float32, [][oracle.Columns]float32, error) {
	n := batch.Len()
	values := make([]float32, n)
	policies := make([][oracle.Columns]float32, n)
	for i := range policies {
		var p [oracle.Columns]float32
		rest := (1 - 0.9) / float32(oracle.Columns-1)
		for c := range p {
			p[c] = rest
		}
		p[o.favor] = 0.9
		policies[i] = p
	}
	return values, policies, nil
}

func TestPickMovePrefersForcedWin(t *testing.T) {
	b := board.New(1)
	for _, m := range []int{0, 1, 0, 1, 0, 1} {
		require.NoError(t, b.Apply(m))
	}
	require.Equal(t, board.A, b.Side())

	cfg := DefaultConfig()
	cfg.Playouts = 16
	cfg.BatchSize = 4
	d, err := NewDriver(b, biasedOracle{favor: 0}, cfg, 3)
	require.NoError(t, err)

	_, err = d.Run()
	require.NoError(t, err)

	move, err := d.PickMove(0)
	require.NoError(t, err)
	assert.Equal(t, 0, move)
}

func TestApplyAndReuseAdvancesBoardAndTree(t *testing.T) {
	b := board.New(1)
	cfg := DefaultConfig()
	cfg.Playouts = 16
	cfg.BatchSize = 4
	d, err := NewDriver(b, oracle.Uniform{}, cfg, 4)
	require.NoError(t, err)
	_, err = d.Run()
	require.NoError(t, err)

	_, err = d.ApplyAndReuse(3)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, d.board.MoveHistory())
	assert.Equal(t, int8(-1), d.tree.Node(d.tree.root).move)
}

func TestPickMoveFailsOnEmptySearch(t *testing.T) {
	b := board.New(1)
	cfg := DefaultConfig()
	d, err := NewDriver(b, oracle.Uniform{}, cfg, 5)
	require.NoError(t, err)

	_, err = d.PickMove(1)
	assert.ErrorIs(t, err, EmptySearch)
}
