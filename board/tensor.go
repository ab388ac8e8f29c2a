package board

import "gorgonia.org/tensor"

// StateTensor encodes the board as the fixed-shape (Columns, Rows, 2H+1)
// tensor fed to the oracle: plane 0 is all-1 if A is to move else all-0, then
// for each of the last H positions (oldest first, zero-padded if the game is
// shorter than H) two planes marking A's and B's pieces.
//
// H is the board's configured history depth (set at New).
func (b *Board) StateTensor() *tensor.Dense {
	h := b.historyDep
	depth := 2*h + 1
	backing := make([]float32, Columns*Rows*depth)

	set := func(c, r, d int, v float32) {
		backing[(c*Rows+r)*depth+d] = v
	}

	var toMove float32
	if b.side == A {
		toMove = 1
	}
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			set(c, r, 0, toMove)
		}
	}

	frames := b.lastNPositions(h)
	for i, pos := range frames {
		aPlane := 1 + 2*i
		bPlane := 2 + 2*i
		for c := 0; c < Columns; c++ {
			for r := 0; r < Rows; r++ {
				switch pos[c][r] {
				case A:
					set(c, r, aPlane, 1)
				case B:
					set(c, r, bPlane, 1)
				}
			}
		}
	}

	return tensor.New(tensor.WithShape(Columns, Rows, depth), tensor.WithBacking(backing))
}

// lastNPositions returns the last h position snapshots (oldest first),
// zero-padding the front with empty boards if fewer than h exist.
func (b *Board) lastNPositions(h int) [][Columns][Rows]Cell {
	out := make([][Columns][Rows]Cell, h)
	have := len(b.posHistory)
	start := have - h
	for i := 0; i < h; i++ {
		idx := start + i
		if idx < 0 {
			continue // leave as zero value: all-empty
		}
		out[i] = b.posHistory[idx]
	}
	return out
}
