package board

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse builds a Board from a FEN-like position grammar: six slash-separated
// rows (top row first, as displayed), each row a sequence of 'X', 'O', or
// digits 1-6 meaning that many empty cells, followed by a side-to-move token
// 'X' or 'O'. Column indices run 0..6 left to right.
//
// The resulting board has no move history (StateTensor sees it as the only,
// current position); historyDepth configures how far StateTensor looks back.
func Parse(s string, historyDepth int) (*Board, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != Rows+1 {
		return nil, errors.Errorf("board: expected %d slash-separated fields, got %d", Rows+1, len(parts))
	}
	rows := parts[:Rows]
	sideTok := parts[Rows]

	grid := [Columns][Rows]Cell{}
	for displayRow, row := range rows {
		r := Rows - 1 - displayRow // row 0 is displayed last
		col := 0
		for _, ch := range row {
			if col >= Columns {
				return nil, errors.Errorf("board: row %q overflows %d columns", row, Columns)
			}
			switch {
			case ch == 'X':
				grid[col][r] = A
				col++
			case ch == 'O':
				grid[col][r] = B
				col++
			case ch >= '1' && ch <= '6':
				n := int(ch - '0')
				for i := 0; i < n; i++ {
					if col >= Columns {
						return nil, errors.Errorf("board: row %q overflows %d columns", row, Columns)
					}
					grid[col][r] = Empty
					col++
				}
			default:
				return nil, errors.Errorf("board: invalid token %q in row %q", ch, row)
			}
		}
		if col != Columns {
			return nil, errors.Errorf("board: row %q covers %d columns, want %d", row, col, Columns)
		}
	}

	var side Cell
	switch sideTok {
	case "X":
		side = A
	case "O":
		side = B
	default:
		return nil, errors.Errorf("board: invalid side-to-move token %q", sideTok)
	}

	b := &Board{grid: grid, side: side, historyDep: historyDepth}
	b.posHistory = append(b.posHistory, b.grid)
	return b, nil
}
