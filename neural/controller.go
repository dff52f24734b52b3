// Package neural provides evolvable feedforward controllers for agents.
package neural

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrInvalidGenomeLength is returned when a genome does not match the controller's parameter count.
	ErrInvalidGenomeLength = errors.New("neural: invalid genome length")
	// ErrShapeMismatch is returned when two controllers with different shapes are recombined.
	ErrShapeMismatch = errors.New("neural: controller shape mismatch")
	// ErrInputSize is returned when an input vector does not match the controller's input size.
	ErrInputSize = errors.New("neural: wrong input size")
)

// Controller is the decision function owned by an agent.
// Implementations must be deterministic: the same parameters and inputs
// always produce the same outputs.
type Controller interface {
	// Process runs a forward pass. Outputs are in [-1, 1].
	Process(inputs []float32) []float32
	// Mutate perturbs each parameter with probability rate and returns how many changed.
	Mutate(rng *rand.Rand, rate float64) int
	// Crossover returns a child whose every parameter is copied from one of the parents.
	Crossover(rng *rand.Rand, other Controller) (Controller, error)
	// Genome returns a copy of the flattened parameters.
	Genome() []float32
	// ApplyGenome writes flattened parameters in Genome order.
	ApplyGenome(values []float32) error
	GenomeLen() int
	InputSize() int
	OutputSize() int
	Clone() Controller
}

// SameShape reports whether two controllers can exchange genomes.
func SameShape(a, b Controller) bool {
	return a.InputSize() == b.InputSize() &&
		a.OutputSize() == b.OutputSize() &&
		a.GenomeLen() == b.GenomeLen()
}

// SinglePointCrossover builds a child from a random split point: genes before
// the point come from a, genes from the point onward come from b.
func SinglePointCrossover(rng *rand.Rand, a, b Controller) (Controller, error) {
	if !SameShape(a, b) {
		return nil, fmt.Errorf("single-point crossover %dx%d (%d genes) with %dx%d (%d genes): %w",
			a.InputSize(), a.OutputSize(), a.GenomeLen(),
			b.InputSize(), b.OutputSize(), b.GenomeLen(), ErrShapeMismatch)
	}

	genome := a.Genome()
	donor := b.Genome()
	point := rng.Intn(len(genome) + 1)
	copy(genome[point:], donor[point:])

	child := a.Clone()
	if err := child.ApplyGenome(genome); err != nil {
		return nil, fmt.Errorf("applying crossover genome: %w", err)
	}
	return child, nil
}
