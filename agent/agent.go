// Package agent implements a single creature: sensing, behavior state,
// neural decisions, movement and reproduction.
package agent

import (
	"math"
	"math/rand"

	"github.com/tomingtoming/Geneuron/components"
	"github.com/tomingtoming/Geneuron/neural"
	"github.com/tomingtoming/Geneuron/systems"
)

// Agent is one creature.
type Agent struct {
	ID     uint32
	Body   systems.Body
	Brain  neural.Controller
	Gender components.Gender
	State  components.BehaviorState

	Age                  float32 // seconds alive
	Fitness              float32 // food items eaten
	FoodEaten            float32 // cumulative food energy
	Children             int
	Lineage              int // 0 for random agents, max(parents)+1 for offspring
	ReproductionCooldown float32

	// Genome mirrors Brain.Genome() and is refreshed whenever the brain changes.
	Genome []float32

	// Last tick's controller activity, kept for inspection.
	Inputs     []float32
	Outputs    []float32
	Perception Perception

	behaviorTimer float32
	params        *Params
}

// New creates an agent with a random brain, heading and gender at pos.
func New(rng *rand.Rand, id uint32, pos systems.Vec2, params *Params) *Agent {
	brain := neural.NewFFNNWithOptions(rng, NumInputs, params.Hidden, NumOutputs, params.Neural)
	return NewWithBrain(rng, id, brain, pos, components.RandomGender(rng), params)
}

// NewWithBrain creates an agent around an existing controller.
func NewWithBrain(rng *rand.Rand, id uint32, brain neural.Controller, pos systems.Vec2, gender components.Gender, params *Params) *Agent {
	a := &Agent{
		ID:     id,
		Brain:  brain,
		Gender: gender,
		State:  components.Exploring,
		Body: systems.Body{
			Position: pos,
			Rotation: rng.Float32() * 2 * math.Pi,
			Energy:   params.InitialEnergy,
		},
		Inputs:  make([]float32, NumInputs),
		Outputs: make([]float32, NumOutputs),
		// First Step evaluates behavior immediately
		behaviorTimer: params.EvalInterval,
		params:        params,
	}
	a.refreshGenome()
	return a
}

// Params returns the shared agent parameters.
func (a *Agent) Params() *Params { return a.params }

// Step runs one tick for this agent: age, sense, update behavior, decide,
// apply force, integrate and pay the movement cost. food and agents are the
// tick's read-only snapshot of the neighborhood. Returns the energy charged.
func (a *Agent) Step(dt float32, food []systems.NearbyFood, agents []Summary, bounds systems.Bounds) float32 {
	a.Age += dt

	a.perceive(food, agents, bounds)
	a.UpdateBehavior(dt)
	a.encodeInputs()

	force, rotation := a.Decide()
	a.Body.ApplyForce(force, rotation, a.Body.Energy, a.params.Physics)
	a.Body.Integrate(dt, bounds, a.params.Drag)

	cost := a.Body.EnergyCost(dt, a.params.Physics)
	a.Body.Energy -= cost
	return cost
}

// Eat credits a consumed food item.
func (a *Agent) Eat(item systems.FoodItem) {
	a.Body.Energy += item.Energy
	a.FoodEaten += item.Energy
	a.Fitness++
}

// ClampEnergy caps energy at the configured maximum.
func (a *Agent) ClampEnergy() {
	if a.Body.Energy > a.params.MaxEnergy {
		a.Body.Energy = a.params.MaxEnergy
	}
}

// DecayCooldown lowers the reproduction cooldown by dt, floored at 0.
func (a *Agent) DecayCooldown(dt float32) {
	a.ReproductionCooldown -= dt
	if a.ReproductionCooldown < 0 {
		a.ReproductionCooldown = 0
	}
}

// Dead reports whether energy has reached the death threshold.
func (a *Agent) Dead() bool {
	return a.Body.Energy <= a.params.DeathThreshold
}

// Color returns the body color hint.
func (a *Agent) Color() components.Color {
	return components.GenderColor(a.Gender)
}

// StateColor returns the behavior marker color hint.
func (a *Agent) StateColor() components.Color {
	return components.StateColor(a.State)
}

// refreshGenome re-reads the genome mirror from the brain.
func (a *Agent) refreshGenome() {
	a.Genome = a.Brain.Genome()
}
