package mcts

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ConfigInvalid is returned by Config.Validate. The underlying error is a
// *multierror.Error listing every violated constraint, not just the first.
var ConfigInvalid = errors.New("mcts: invalid configuration")

// cPUCTBase is C_base in the PUCT exploration scale, fixed per the
// AlphaZero paper's choice.
const cPUCTBase = 19652

// Config configures one Driver. It mirrors the reference engine's
// DefaultConfig/IsValid shape: a plain JSON-tagged struct, a constructor, and
// a validator that never panics.
type Config struct {
	Playouts  int     `json:"playouts"`   // target visits at root
	BatchSize int     `json:"batch_size"` // descents collected per oracle call
	CPuct     float32 `json:"c_puct"`

	Stochastic bool    `json:"stochastic"` // self-play mode: Dirichlet noise + temperature sampling
	DirAlpha   float64 `json:"dir_alpha"`  // Dirichlet concentration parameter

	// MixNoiseAtRoot additionally mixes Dirichlet noise into the root visit
	// distribution at move-selection time, independent of the
	// expansion-time mixing. Only one of the two is normally enabled at
	// once; both are offered, off by default here.
	MixNoiseAtRoot bool `json:"mix_noise_at_root"`

	// Prune turns on optional terminal-aware pruning. Off by default.
	Prune bool `json:"prune"`

	// HistoryDepth is H, the number of past positions encoded into the
	// state tensor. It must match the depth the search's board was built
	// with (board.New's argument) - NewDriver rejects a mismatch, since a
	// driver silently searching against a differently-shaped state tensor
	// than the board actually produces would corrupt every oracle call.
	HistoryDepth int `json:"history_depth"`

	// Trace, if set, is called once per completed batch with lightweight
	// counters. The core never logs on its own; this is the only
	// observability seam, and it never performs I/O itself.
	Trace func(rootN, batchLeaves int)
}

// DefaultConfig returns sane defaults for a single search: 800 playouts,
// batches of 8, c_puct=3, one history frame, deterministic play.
func DefaultConfig() Config {
	return Config{
		Playouts:     800,
		BatchSize:    8,
		CPuct:        3,
		DirAlpha:     0.3,
		HistoryDepth: 1,
	}
}

// Validate aggregates every violated constraint into one ConfigInvalid
// error, or returns nil.
func (c Config) Validate() error {
	var errs *multierror.Error
	if c.Playouts <= 0 {
		errs = multierror.Append(errs, errors.New("playouts must be positive"))
	}
	if c.BatchSize <= 0 {
		errs = multierror.Append(errs, errors.New("batch_size must be positive"))
	}
	if c.CPuct < 0 {
		errs = multierror.Append(errs, errors.New("c_puct must be non-negative"))
	}
	if c.Stochastic && c.DirAlpha <= 0 {
		errs = multierror.Append(errs, errors.New("dir_alpha must be positive in stochastic mode"))
	}
	if c.HistoryDepth < 0 {
		errs = multierror.Append(errs, errors.New("history_depth must be non-negative"))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return errors.Wrapf(ConfigInvalid, "%s", err)
	}
	return nil
}
