package agent

import (
	"fmt"
	"math/rand"

	"github.com/tomingtoming/Geneuron/components"
	"github.com/tomingtoming/Geneuron/neural"
	"github.com/tomingtoming/Geneuron/systems"
)

// CanReproduceWith reports whether this agent and other may mate now:
// genders differ, both cooldowns have expired, both have enough energy and
// they are within the eligibility radius.
func (a *Agent) CanReproduceWith(other Summary, bounds systems.Bounds) bool {
	p := a.params
	if other.ID == a.ID || other.Gender == a.Gender {
		return false
	}
	if a.ReproductionCooldown > 0 || other.Cooldown > 0 {
		return false
	}
	if a.Body.Energy < p.ReproEnergy || other.Energy < p.ReproEnergy {
		return false
	}
	return bounds.Distance(a.Body.Position, other.Position) < p.EligibilityRadius
}

// PayReproductionCost starts the refractory period and deducts the energy cost.
func (a *Agent) PayReproductionCost() {
	a.ReproductionCooldown = a.params.ReproCooldown
	a.Body.Energy -= a.params.ReproCost
}

// Offspring creates the child of a and b: a single-point crossover of their
// genomes followed by mutation, placed at the parents' toroidal midpoint plus
// jitter, with fresh energy and a random gender. Both parents' child counts
// are incremented; their cooldowns and energy are untouched.
func Offspring(a, b *Agent, rng *rand.Rand, id uint32, bounds systems.Bounds) (*Agent, error) {
	brain, err := neural.SinglePointCrossover(rng, a.Brain, b.Brain)
	if err != nil {
		return nil, fmt.Errorf("offspring of %d and %d: %w", a.ID, b.ID, err)
	}
	p := a.params
	brain.Mutate(rng, p.MutationRate)

	mid := bounds.Midpoint(a.Body.Position, b.Body.Position)
	jitter := systems.Vec2{
		X: (rng.Float32()*2 - 1) * p.SpawnJitter,
		Y: (rng.Float32()*2 - 1) * p.SpawnJitter,
	}

	child := NewWithBrain(rng, id, brain, bounds.Wrap(mid.Add(jitter)), components.RandomGender(rng), p)
	child.Lineage = max(a.Lineage, b.Lineage) + 1

	a.Children++
	b.Children++
	return child, nil
}

// ReproduceWith creates a child with other and charges both parents.
func (a *Agent) ReproduceWith(other *Agent, rng *rand.Rand, id uint32, bounds systems.Bounds) (*Agent, error) {
	child, err := Offspring(a, other, rng, id, bounds)
	if err != nil {
		return nil, err
	}
	a.PayReproductionCost()
	other.PayReproductionCost()
	return child, nil
}
