package mcts

import "github.com/pkg/errors"

// EmptySearch is returned by the move picker when it is invoked before any
// playouts have completed, or when every root visit count is zero.
var EmptySearch = errors.New("mcts: move picker invoked on an empty search")
