package oracle

// Uniform is the reference test double the design notes call for: "a test
// double implementing uniform priors, value=0 suffices to exercise every
// tree-shaping invariant". It ignores its input entirely.
type Uniform struct{}

// Evaluate returns a value of 0 and a uniform 1/7 policy for every state in
// the batch. Legality masking is the Expander's job, not the oracle's.
func (Uniform) Evaluate(batch *Batch) (values []float32, policies [][Columns]float32, err error) {
	n := batch.Len()
	values = make([]float32, n)
	policies = make([][Columns]float32, n)
	var uniform [Columns]float32
	for i := range uniform {
		uniform[i] = 1.0 / float32(Columns)
	}
	for i := 0; i < n; i++ {
		policies[i] = uniform
	}
	return values, policies, nil
}
