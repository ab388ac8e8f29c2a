// Package board implements the Connect-Four game model the search core is
// built on top of: legal-move enumeration, terminal detection, an undo
// stack, a cloneable snapshot, and the fixed-shape state tensor fed to the
// policy/value oracle.
package board

import "strings"

// Columns and Rows are the fixed Connect-Four board dimensions.
const (
	Columns = 7
	Rows    = 6
)

// Cell is the occupant of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	A
	B
)

// Other returns the opposing side.
func (c Cell) Other() Cell {
	if c == A {
		return B
	}
	return A
}

// Outcome is the result of a terminal check.
type Outcome uint8

const (
	None Outcome = iota
	Draw
	Win
)

// Board is a 7x6 drop-piece grid plus enough history to answer state-tensor
// queries at any configured depth. The grid is column-major: grid[c][r] is
// the cell at column c, row r, with row 0 at the bottom. It is never mutated
// except through Apply/Undo.
type Board struct {
	grid       [Columns][Rows]Cell
	side       Cell
	historyDep int
	moveHist   []int
	posHistory [][Columns][Rows]Cell // snapshot after every move, index 0 is the position the board started from
}

// New creates an empty board with side A to move. historyDepth is the H used
// by StateTensor (the number of past positions it looks back through).
func New(historyDepth int) *Board {
	b := &Board{
		side:       A,
		historyDep: historyDepth,
	}
	b.posHistory = append(b.posHistory, b.grid)
	return b
}

// Side returns the side to move.
func (b *Board) Side() Cell { return b.side }

// HistoryDepth returns H, the number of past positions StateTensor looks
// back through (set at New).
func (b *Board) HistoryDepth() int { return b.historyDep }

// MoveHistory returns the column played at each ply so far, in order.
func (b *Board) MoveHistory() []int {
	out := make([]int, len(b.moveHist))
	copy(out, b.moveHist)
	return out
}

// At returns the occupant of column c, row r.
func (b *Board) At(c, r int) Cell { return b.grid[c][r] }

// LegalMoves returns, for each column 0..6, whether it is legal to drop a
// piece there (its topmost cell is empty).
func (b *Board) LegalMoves() [Columns]bool {
	var out [Columns]bool
	for c := 0; c < Columns; c++ {
		out[c] = b.grid[c][Rows-1] == Empty
	}
	return out
}

// LegalCount returns the number of legal columns.
func (b *Board) LegalCount() int {
	n := 0
	legal := b.LegalMoves()
	for _, ok := range legal {
		if ok {
			n++
		}
	}
	return n
}

// Apply drops the side-to-move's piece into column c, flips the side to
// move, and records the ply. It fails with IllegalMove if c is out of range
// or the column is full.
func (b *Board) Apply(c int) error {
	if c < 0 || c >= Columns {
		return IllegalMove
	}
	for r := 0; r < Rows; r++ {
		if b.grid[c][r] == Empty {
			b.grid[c][r] = b.side
			b.side = b.side.Other()
			b.moveHist = append(b.moveHist, c)
			b.posHistory = append(b.posHistory, b.grid)
			return nil
		}
	}
	return IllegalMove
}

// Undo reverses the last Apply. It fails with NoHistory if nothing has been
// played yet.
func (b *Board) Undo() error {
	n := len(b.moveHist)
	if n == 0 {
		return NoHistory
	}
	c := b.moveHist[n-1]
	for r := Rows - 1; r >= 0; r-- {
		if b.grid[c][r] != Empty {
			b.grid[c][r] = Empty
			break
		}
	}
	b.side = b.side.Other()
	b.moveHist = b.moveHist[:n-1]
	b.posHistory = b.posHistory[:len(b.posHistory)-1]
	return nil
}

// Clone returns an independent copy of the board, carrying its full history
// (enough to recompute the state tensor at any depth up to the game length).
func (b *Board) Clone() *Board {
	cp := &Board{
		grid:       b.grid,
		side:       b.side,
		historyDep: b.historyDep,
	}
	cp.moveHist = append([]int(nil), b.moveHist...)
	cp.posHistory = append([][Columns][Rows]Cell(nil), b.posHistory...)
	return cp
}

// findFour reports whether cells contains a contiguous run of four equal,
// non-empty entries.
func findFour(cells []Cell) bool {
	var run Cell
	count := 0
	for _, c := range cells {
		if c == Empty {
			run, count = Empty, 0
			continue
		}
		if c == run {
			count++
		} else {
			run, count = c, 1
		}
		if count >= 4 {
			return true
		}
	}
	return false
}

// CheckTerminal scans columns, then rows, then both diagonals for a
// four-in-a-row, returning Win on the first one found. If none exists and no
// legal move remains it returns Draw, otherwise None.
func (b *Board) CheckTerminal() Outcome {
	for c := 0; c < Columns; c++ {
		if findFour(b.grid[c][:]) {
			return Win
		}
	}
	for r := 0; r < Rows; r++ {
		row := make([]Cell, Columns)
		for c := 0; c < Columns; c++ {
			row[c] = b.grid[c][r]
		}
		if findFour(row) {
			return Win
		}
	}
	// diagonals, bottom-left to top-right
	for c := 0; c <= Columns-4; c++ {
		for r := 0; r <= Rows-4; r++ {
			v := b.grid[c][r]
			if v != Empty && v == b.grid[c+1][r+1] && v == b.grid[c+2][r+2] && v == b.grid[c+3][r+3] {
				return Win
			}
		}
	}
	// diagonals, top-left to bottom-right
	for c := 0; c <= Columns-4; c++ {
		for r := Rows - 1; r >= 3; r-- {
			v := b.grid[c][r]
			if v != Empty && v == b.grid[c+1][r-1] && v == b.grid[c+2][r-2] && v == b.grid[c+3][r-3] {
				return Win
			}
		}
	}
	if b.LegalCount() == 0 {
		return Draw
	}
	return None
}

// String renders the board bottom row last, as X for player A, O for player
// B, and blank for empty, matching the reference engine's debug print.
func (b *Board) String() string {
	var sb strings.Builder
	for r := Rows - 1; r >= 0; r-- {
		sb.WriteString("| ")
		for c := 0; c < Columns; c++ {
			switch b.grid[c][r] {
			case A:
				sb.WriteByte('X')
			case B:
				sb.WriteByte('O')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(" | ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  0   1   2   3   4   5   6")
	return sb.String()
}
