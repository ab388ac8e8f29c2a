package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

func stateOf(c float32) *tensor.Dense {
	backing := make([]float32, Columns*6*3)
	for i := range backing {
		backing[i] = c
	}
	return tensor.New(tensor.WithShape(Columns, 6, 3), tensor.WithBacking(backing))
}

func TestUniformOracleEvaluate(t *testing.T) {
	batch := NewBatch([]*tensor.Dense{stateOf(0), stateOf(1)})
	values, policies, err := (Uniform{}).Evaluate(batch)
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.Len(t, policies, 2)
	for _, p := range policies {
		var sum float32
		for _, v := range p {
			sum += v
			assert.InDelta(t, 1.0/float64(Columns), v, 1e-6)
		}
		assert.InDelta(t, 1.0, sum, 1e-5)
	}
}

func TestBatchStacked(t *testing.T) {
	batch := NewBatch([]*tensor.Dense{stateOf(0), stateOf(1)})
	stacked, err := batch.Stacked()
	require.NoError(t, err)
	assert.Equal(t, []int{2, Columns, 6, 3}, []int(stacked.Shape()))
}

func TestBatchStackedRejectsEmpty(t *testing.T) {
	batch := NewBatch(nil)
	_, err := batch.Stacked()
	assert.Error(t, err)
}

func TestValidateShapeMismatch(t *testing.T) {
	err := Validate(2, []float32{0}, [][Columns]float32{{}})
	assert.ErrorIs(t, err, OracleShape)
}

func TestValidateValueOutOfRange(t *testing.T) {
	var p [Columns]float32
	p[0] = 1
	err := Validate(1, []float32{1.5}, [][Columns]float32{p})
	assert.ErrorIs(t, err, OracleShape)
}

func TestValidatePolicyMustSumToOne(t *testing.T) {
	var p [Columns]float32
	p[0] = 0.5 // sums to 0.5, not 1
	err := Validate(1, []float32{0}, [][Columns]float32{p})
	assert.ErrorIs(t, err, OracleShape)
}

func TestValidateAcceptsWellFormedResponse(t *testing.T) {
	var p [Columns]float32
	for i := range p {
		p[i] = 1.0 / float32(Columns)
	}
	err := Validate(1, []float32{0.2}, [][Columns]float32{p})
	assert.NoError(t, err)
}
