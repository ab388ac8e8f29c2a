// Package c4zero is the external interface of the search core: a thin
// wrapper that pairs a mcts.Driver with the board it searches, so callers
// see run/pick/reuse as operations on a single Search value instead of
// juggling a tree, a board, and a driver separately.
package c4zero

import (
	"time"

	"github.com/c4zero/engine/board"
	"github.com/c4zero/engine/mcts"
	"github.com/c4zero/engine/oracle"
)

// Search wraps one mcts.Driver and the board position it is rooted on.
type Search struct {
	driver *mcts.Driver
	board  *board.Board
}

// New starts a search from b (Run and RunFor do not mutate it, since every
// descent clones it; ApplyAndReuse plays its move on b) using o as the
// policy/value oracle. seed fixes every
// random draw the search makes.
func New(b *board.Board, o oracle.Oracle, cfg mcts.Config, seed uint64) (*Search, error) {
	d, err := mcts.NewDriver(b, o, cfg, seed)
	if err != nil {
		return nil, err
	}
	return &Search{driver: d, board: b}, nil
}

// Run drives playouts to completion (cfg.Playouts visits at the root) and
// returns the root visit distribution over columns: child.N/root.N per
// column, 0 for illegal or unvisited columns. root.N also counts descents
// that ended at the root itself, so the entries can sum to less than 1.
func (s *Search) Run() ([board.Columns]float64, error) {
	return s.driver.Run()
}

// RunFor drives playouts for at least duration, checking the deadline only
// between batches.
func (s *Search) RunFor(duration time.Duration) ([board.Columns]float64, error) {
	return s.driver.RunFor(duration)
}

// PickMove converts the completed search's root statistics into a move:
// greedy argmax in deterministic mode, temperature-scaled sampling in
// stochastic mode. temperature is ignored in deterministic mode.
func (s *Search) PickMove(temperature float32) (int, error) {
	return s.driver.PickMove(temperature)
}

// PrincipalVariation follows the highest-N child from the root to a leaf.
func (s *Search) PrincipalVariation() []mcts.PVStep {
	return s.driver.Tree().PrincipalVariation()
}

// RootStat is one expanded root child's statistics.
type RootStat = mcts.RootStat

// RootStats returns one entry per expanded root child, in child order
// (ascending column).
func (s *Search) RootStats() []RootStat {
	return s.driver.RootStats()
}

// ApplyAndReuse plays column on the authoritative board and re-roots the
// search tree on the corresponding child, discarding the rest of the tree.
// It returns the number of visits the reused subtree already carries, which
// callers typically subtract from their next playout budget.
func (s *Search) ApplyAndReuse(column int) (uint32, error) {
	return s.driver.ApplyAndReuse(column)
}

// Stop requests that any in-progress Run/RunFor return after its current
// batch completes.
func (s *Search) Stop() { s.driver.Stop() }

// Board exposes the authoritative position the search is rooted on.
func (s *Search) Board() *board.Board { return s.board }
