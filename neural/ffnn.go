package neural

import (
	"fmt"
	"math/rand"
)

// Default parameter range and mutation step.
const (
	DefaultWeightLimit   = 1.0
	DefaultMutationPower = 0.2

	// minStepFraction keeps a selected gene from receiving a vanishing perturbation.
	minStepFraction = 0.05
)

// Options configures parameter bounds and mutation strength.
type Options struct {
	WeightLimit   float32 // parameters stay in [-WeightLimit, WeightLimit]
	MutationPower float32 // maximum perturbation per mutated parameter
}

// DefaultOptions returns the default parameter bounds.
func DefaultOptions() Options {
	return Options{WeightLimit: DefaultWeightLimit, MutationPower: DefaultMutationPower}
}

// FFNN is a feedforward network with an optional tanh hidden layer and tanh outputs.
//
// All parameters live in one flat slice in genome order: layer-1 weights (one row
// per unit), layer-1 biases, layer-2 weights, layer-2 biases. W1, B1, W2 and B2 are
// views into it. With no hidden layer, W1/B1 map inputs straight to outputs and
// W2/B2 are empty.
type FFNN struct {
	W1 []float32
	B1 []float32
	W2 []float32
	B2 []float32

	in, hidden, out int
	opts            Options
	params          []float32
	scratch         []float32
}

var _ Controller = (*FFNN)(nil)

// NewFFNN creates a network with independent uniform random parameters in
// [-DefaultWeightLimit, DefaultWeightLimit]. hidden may be 0 for a single layer.
func NewFFNN(rng *rand.Rand, in, hidden, out int) *FFNN {
	return NewFFNNWithOptions(rng, in, hidden, out, DefaultOptions())
}

// NewFFNNWithOptions is NewFFNN with explicit bounds and mutation strength.
func NewFFNNWithOptions(rng *rand.Rand, in, hidden, out int, opts Options) *FFNN {
	if in <= 0 || out <= 0 || hidden < 0 {
		panic(fmt.Sprintf("neural: invalid shape %d-%d-%d", in, hidden, out))
	}
	if opts.WeightLimit <= 0 {
		opts.WeightLimit = DefaultWeightLimit
	}

	nn := &FFNN{in: in, hidden: hidden, out: out, opts: opts}
	nn.params = make([]float32, genomeLen(in, hidden, out))
	nn.bindViews()

	for i := range nn.params {
		nn.params[i] = (rng.Float32()*2 - 1) * opts.WeightLimit
	}
	return nn
}

func genomeLen(in, hidden, out int) int {
	if hidden == 0 {
		return in*out + out
	}
	return in*hidden + hidden + hidden*out + out
}

// bindViews points the layer slices into params.
func (nn *FFNN) bindViews() {
	first := nn.hidden
	if first == 0 {
		first = nn.out
	}
	p := nn.params
	nn.W1, p = p[:first*nn.in:first*nn.in], p[first*nn.in:]
	nn.B1, p = p[:first:first], p[first:]
	if nn.hidden == 0 {
		nn.W2, nn.B2 = nil, nil
		nn.scratch = nil
		return
	}
	nn.W2, p = p[:nn.out*nn.hidden:nn.out*nn.hidden], p[nn.out*nn.hidden:]
	nn.B2 = p[:nn.out:nn.out]
	nn.scratch = make([]float32, nn.hidden)
}

func (nn *FFNN) InputSize() int  { return nn.in }
func (nn *FFNN) HiddenSize() int { return nn.hidden }
func (nn *FFNN) OutputSize() int { return nn.out }
func (nn *FFNN) GenomeLen() int  { return len(nn.params) }

// Options returns the parameter bounds used by this network.
func (nn *FFNN) Options() Options { return nn.opts }

// ProcessChecked is Process with an explicit input length check.
func (nn *FFNN) ProcessChecked(inputs []float32) ([]float32, error) {
	if len(inputs) != nn.in {
		return nil, fmt.Errorf("got %d inputs, want %d: %w", len(inputs), nn.in, ErrInputSize)
	}
	return nn.Process(inputs), nil
}

// Process computes the network output. Missing inputs read as zero and extra
// inputs are ignored. Every output is in [-1, 1].
func (nn *FFNN) Process(inputs []float32) []float32 {
	outputs := make([]float32, nn.out)

	if nn.hidden == 0 {
		layer(nn.W1, nn.B1, inputs, nn.in, outputs)
		return outputs
	}

	layer(nn.W1, nn.B1, inputs, nn.in, nn.scratch)
	layer(nn.W2, nn.B2, nn.scratch, nn.hidden, outputs)
	return outputs
}

// layer computes dst[i] = tanh(b[i] + sum_j w[i*width+j] * src[j]).
func layer(w, b, src []float32, width int, dst []float32) {
	n := width
	if len(src) < n {
		n = len(src)
	}
	for i := range dst {
		row := w[i*width : i*width+n]
		sum := b[i]
		for j, wj := range row {
			sum += wj * src[j]
		}
		dst[i] = tanh(sum)
	}
}

// Mutate perturbs each parameter independently with probability rate.
// A selected parameter moves by a step of magnitude in
// [0.05*MutationPower, MutationPower] with random sign; a step that would leave
// [-WeightLimit, WeightLimit] is taken in the opposite direction instead, so a
// selected parameter always changes and always stays in range.
// rate <= 0 is a no-op and rate >= 1 perturbs every parameter.
func (nn *FFNN) Mutate(rng *rand.Rand, rate float64) int {
	if rate <= 0 {
		return 0
	}

	limit := nn.opts.WeightLimit
	power := nn.opts.MutationPower
	mutated := 0
	for i, v := range nn.params {
		if rate < 1 && rng.Float64() >= rate {
			continue
		}
		step := power * (minStepFraction + (1-minStepFraction)*rng.Float32())
		if rng.Intn(2) == 0 {
			step = -step
		}
		next := v + step
		if next > limit || next < -limit {
			next = v - step
		}
		nn.params[i] = clamp(next, -limit, limit)
		mutated++
	}
	return mutated
}

// Crossover returns a child where each parameter is copied from nn or other
// with equal probability.
func (nn *FFNN) Crossover(rng *rand.Rand, other Controller) (Controller, error) {
	o, ok := other.(*FFNN)
	if !ok || o.in != nn.in || o.hidden != nn.hidden || o.out != nn.out {
		return nil, fmt.Errorf("crossover %d-%d-%d with %T: %w", nn.in, nn.hidden, nn.out, other, ErrShapeMismatch)
	}

	child := nn.clone()
	for i := range child.params {
		if rng.Intn(2) == 1 {
			child.params[i] = o.params[i]
		}
	}
	return child, nil
}

// Genome returns a copy of all parameters in flattening order.
func (nn *FFNN) Genome() []float32 {
	genome := make([]float32, len(nn.params))
	copy(genome, nn.params)
	return genome
}

// ApplyGenome writes values in Genome order. When the lengths differ the
// overlapping prefix is still applied, leaving the remaining parameters
// unchanged, and an error wrapping ErrInvalidGenomeLength is returned.
func (nn *FFNN) ApplyGenome(values []float32) error {
	copy(nn.params, values)
	if len(values) != len(nn.params) {
		return fmt.Errorf("got %d values, want %d: %w", len(values), len(nn.params), ErrInvalidGenomeLength)
	}
	return nil
}

// Clone creates a deep copy of the network.
func (nn *FFNN) Clone() Controller {
	return nn.clone()
}

func (nn *FFNN) clone() *FFNN {
	c := &FFNN{in: nn.in, hidden: nn.hidden, out: nn.out, opts: nn.opts}
	c.params = make([]float32, len(nn.params))
	copy(c.params, nn.params)
	c.bindViews()
	return c
}

// tanh uses a fast rational approximation avoiding float64 conversion.
// The approximation overshoots slightly near |x| = 4, so it is clamped.
func tanh(x float32) float32 {
	if x > 4 {
		return 1
	}
	if x < -4 {
		return -1
	}
	x2 := x * x
	return clamp(x*(27+x2)/(27+9*x2), -1, 1)
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
