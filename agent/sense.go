package agent

import (
	"math"

	"github.com/tomingtoming/Geneuron/components"
	"github.com/tomingtoming/Geneuron/systems"
)

// Summary is the read-only view of another agent used for sensing and
// mate selection. Index is the agent's position in the simulation's agent
// slice and is valid only within the tick that produced it.
type Summary struct {
	Index    int
	ID       uint32
	Position systems.Vec2
	Gender   components.Gender
	Cooldown float32
	Energy   float32
}

// Summary returns this agent's snapshot at the given index.
func (a *Agent) Summary(index int) Summary {
	return Summary{
		Index:    index,
		ID:       a.ID,
		Position: a.Body.Position,
		Gender:   a.Gender,
		Cooldown: a.ReproductionCooldown,
		Energy:   a.Body.Energy,
	}
}

// Perception records what an agent sensed on its last Step.
// Distances are raw world units; angles are relative to the heading.
type Perception struct {
	HasFood      bool
	FoodDistance float32
	FoodAngle    float32
	FoodCount    int

	HasMate      bool
	MateIndex    int
	MateDistance float32
	MateAngle    float32

	HasKin      bool
	KinDistance float32
	KinAngle    float32
	KinCount    int // same-gender agents in range
}

// Sense builds the controller input vector from the neighborhood snapshot.
// The vector is, in order: energy, speed / ReferenceSpeed, rotation / 2*Pi,
// then distance and angle to the nearest food, eligible mate and same-gender
// agent. Distances are divided by the sensor radius and clamped to [0, 1],
// angles are divided by Pi. A missing target reads as (1, 0). The current
// behavior state halves the distance of the target it is seeking.
func (a *Agent) Sense(food []systems.NearbyFood, agents []Summary, bounds systems.Bounds) []float32 {
	a.perceive(food, agents, bounds)
	a.encodeInputs()
	return a.Inputs
}

// perceive finds the nearest food, mate and kin and counts what is in range.
func (a *Agent) perceive(food []systems.NearbyFood, agents []Summary, bounds systems.Bounds) {
	p := Perception{MateIndex: -1}
	foodRadius := a.params.FoodRadius
	agentRadius := a.params.AgentRadius

	for _, f := range food {
		if f.Distance > foodRadius {
			continue
		}
		p.FoodCount++
		if !p.HasFood || f.Distance < p.FoodDistance {
			p.HasFood = true
			p.FoodDistance, p.FoodAngle = a.Body.DirectionTo(f.Item.Position, bounds)
		}
	}

	for _, other := range agents {
		if other.ID == a.ID {
			continue
		}
		dist, angle := a.Body.DirectionTo(other.Position, bounds)
		if dist > agentRadius {
			continue
		}

		if other.Gender == a.Gender {
			p.KinCount++
			if !p.HasKin || dist < p.KinDistance {
				p.HasKin, p.KinDistance, p.KinAngle = true, dist, angle
			}
			continue
		}

		if a.isMateCandidate(other) && (!p.HasMate || dist < p.MateDistance) {
			p.HasMate, p.MateIndex, p.MateDistance, p.MateAngle = true, other.Index, dist, angle
		}
	}

	a.Perception = p
}

// isMateCandidate reports whether other could mate right now, ignoring distance.
func (a *Agent) isMateCandidate(other Summary) bool {
	return other.Gender != a.Gender &&
		other.Cooldown <= 0 &&
		other.Energy >= a.params.ReproEnergy
}

// encodeInputs writes the input vector from the last Perception.
func (a *Agent) encodeInputs() {
	p := a.Perception
	in := a.Inputs
	if len(in) != NumInputs {
		in = make([]float32, NumInputs)
	}

	in[0] = a.Body.Energy
	in[1] = 0
	if a.params.ReferenceSpeed > 0 {
		in[1] = a.Body.Speed() / a.params.ReferenceSpeed
	}
	in[2] = a.Body.Rotation / (2 * math.Pi)

	foodWeight, mateWeight, kinWeight := stateWeights(a.State)
	in[3], in[4] = target(p.HasFood, p.FoodDistance, p.FoodAngle, a.params.FoodRadius, foodWeight)
	in[5], in[6] = target(p.HasMate, p.MateDistance, p.MateAngle, a.params.AgentRadius, mateWeight)
	in[7], in[8] = target(p.HasKin, p.KinDistance, p.KinAngle, a.params.AgentRadius, kinWeight)

	a.Inputs = in
}

// stateWeights returns the distance multipliers for food, mate and kin.
func stateWeights(s components.BehaviorState) (food, mate, kin float32) {
	food, mate, kin = 1, 1, 1
	switch s {
	case components.Feeding:
		food = 0.5
	case components.Reproducing:
		mate = 0.5
	case components.Socializing, components.Resting:
		kin = 0.5
	}
	return food, mate, kin
}

// target normalizes one distance/angle pair. Absent targets use the (1, 0) sentinel.
func target(ok bool, dist, angle, radius, weight float32) (float32, float32) {
	if !ok || radius <= 0 {
		return 1, 0
	}
	d := dist / radius
	if d > 1 {
		d = 1
	}
	return d * weight, angle / math.Pi
}
