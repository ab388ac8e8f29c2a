package c4zero

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c4zero/engine/board"
	"github.com/c4zero/engine/mcts"
	"github.com/c4zero/engine/oracle"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	b := board.New(1)
	cfg := mcts.DefaultConfig()
	cfg.BatchSize = 0
	_, err := New(b, oracle.Uniform{}, cfg, 1)
	assert.ErrorIs(t, err, mcts.ConfigInvalid)
}

func TestRunAndPickMove(t *testing.T) {
	b := board.New(1)
	cfg := mcts.DefaultConfig()
	cfg.Playouts = 32
	cfg.BatchSize = 4
	s, err := New(b, oracle.Uniform{}, cfg, 1)
	require.NoError(t, err)

	_, err = s.Run()
	require.NoError(t, err)

	move, err := s.PickMove(0)
	require.NoError(t, err)
	assert.True(t, move >= 0 && move < board.Columns)

	stats := s.RootStats()
	assert.Len(t, stats, board.Columns)
}

func TestRunForRespectsDeadline(t *testing.T) {
	b := board.New(1)
	cfg := mcts.DefaultConfig()
	cfg.Playouts = 4
	cfg.BatchSize = 4
	s, err := New(b, oracle.Uniform{}, cfg, 1)
	require.NoError(t, err)

	start := time.Now()
	_, err = s.RunFor(20 * time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestApplyAndReuseAdvancesSearch(t *testing.T) {
	b := board.New(1)
	cfg := mcts.DefaultConfig()
	cfg.Playouts = 16
	cfg.BatchSize = 4
	s, err := New(b, oracle.Uniform{}, cfg, 1)
	require.NoError(t, err)
	_, err = s.Run()
	require.NoError(t, err)

	_, err = s.ApplyAndReuse(2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, s.Board().MoveHistory())
}

func TestPrincipalVariationNonEmptyAfterRun(t *testing.T) {
	b := board.New(1)
	cfg := mcts.DefaultConfig()
	cfg.Playouts = 16
	cfg.BatchSize = 4
	s, err := New(b, oracle.Uniform{}, cfg, 1)
	require.NoError(t, err)
	_, err = s.Run()
	require.NoError(t, err)

	pv := s.PrincipalVariation()
	assert.NotEmpty(t, pv)
}
