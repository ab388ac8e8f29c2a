package board

import "github.com/pkg/errors"

// Sentinel errors surfaced by the board. Hosts can compare with errors.Is
// against these, or errors.Cause to unwrap the stack pkg/errors attaches.
var (
	// IllegalMove is returned by Apply when the column is full or out of range.
	IllegalMove = errors.New("board: illegal move")
	// NoHistory is returned by Undo when there is nothing to undo.
	NoHistory = errors.New("board: no history to undo")
)
