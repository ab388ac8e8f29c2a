// Package oracle defines the policy/value contract the search core consumes:
// an abstract, batched (state)->(value, policy) function. In production this
// is a learned neural network; the core treats it as a pure, external
// black box and never trains or otherwise mutates it.
package oracle

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Columns is the width of the policy vector an Oracle returns per state.
const Columns = 7

// OracleShape is returned when an Oracle's response doesn't match its
// request: wrong batch length, a policy vector not of length Columns, or a
// value outside [-1, 1].
var OracleShape = errors.New("oracle: malformed response shape")

// Batch stacks per-leaf state tensors (each Columns x Rows x planes) into one
// batched tensor for a single Oracle.Evaluate call.
type Batch struct {
	states []*tensor.Dense
}

// NewBatch collects state tensors for batched evaluation.
func NewBatch(states []*tensor.Dense) *Batch {
	return &Batch{states: states}
}

// Len reports how many states are in the batch.
func (b *Batch) Len() int { return len(b.states) }

// Stacked concatenates the batch's state tensors along a new leading
// dimension, the way a training pipeline would stack examples before
// calling a network: shape (N, Columns, Rows, planes).
func (b *Batch) Stacked() (*tensor.Dense, error) {
	if len(b.states) == 0 {
		return nil, errors.New("oracle: empty batch")
	}
	shape := b.states[0].Shape()
	var backing []float32
	for _, s := range b.states {
		if !shape.Eq(s.Shape()) {
			return nil, errors.New("oracle: inconsistent state tensor shapes in batch")
		}
		data, ok := s.Data().([]float32)
		if !ok {
			return nil, errors.New("oracle: state tensor is not float32-backed")
		}
		backing = append(backing, data...)
	}
	fullShape := append(tensor.Shape{len(b.states)}, shape...)
	return tensor.New(tensor.WithShape(fullShape...), tensor.WithBacking(backing)), nil
}

// Oracle is the policy/value function the search driver calls once per
// batch of non-terminal leaves. Evaluate must be a pure function of its
// input within a single search: identical batches yield identical outputs.
type Oracle interface {
	// Evaluate returns one value in [-1, 1] and one length-Columns
	// probability vector (summing to 1) per state in the batch, in batch
	// order.
	Evaluate(batch *Batch) (values []float32, policies [][Columns]float32, err error)
}

// Validate checks an Oracle's response against the request it answered,
// returning OracleShape (wrapped with detail) on any mismatch.
func Validate(requested int, values []float32, policies [][Columns]float32) error {
	if len(values) != requested || len(policies) != requested {
		return errors.Wrapf(OracleShape, "requested %d states, got %d values and %d policies", requested, len(values), len(policies))
	}
	for i, v := range values {
		if v < -1 || v > 1 {
			return errors.Wrapf(OracleShape, "value[%d]=%v outside [-1,1]", i, v)
		}
	}
	for i, p := range policies {
		var sum float32
		for _, pc := range p {
			if pc < 0 {
				return errors.Wrapf(OracleShape, "policy[%d] has negative entry", i)
			}
			sum += pc
		}
		const eps = 1e-3
		if sum < 1-eps || sum > 1+eps {
			return errors.Wrapf(OracleShape, "policy[%d] sums to %v, want ~1", i, sum)
		}
	}
	return nil
}
