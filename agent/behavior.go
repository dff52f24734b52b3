package agent

import (
	"github.com/tomingtoming/Geneuron/components"
	"github.com/tomingtoming/Geneuron/systems"
)

// stateMotion holds the speed and turn multipliers of a behavior state.
type stateMotion struct {
	speed, turn float32
}

var motionByState = [components.NumBehaviorStates]stateMotion{
	components.Exploring:   {speed: 1.0, turn: 1.0},
	components.Feeding:     {speed: 1.1, turn: 1.2},
	components.Socializing: {speed: 0.7, turn: 0.8},
	components.Reproducing: {speed: 1.3, turn: 1.0},
	components.Resting:     {speed: 0.25, turn: 0.5},
}

// UpdateBehavior advances the behavior timer and, once every EvalInterval,
// re-selects the state from the last Perception.
func (a *Agent) UpdateBehavior(dt float32) {
	a.behaviorTimer += dt
	if a.behaviorTimer < a.params.EvalInterval {
		return
	}
	a.behaviorTimer = 0
	a.State = ChooseBehavior(a.Body.Energy, a.Perception, a.params)
}

// ChooseBehavior applies the behavior priority rules:
// starving agents feed, well-fed agents with a mate in range reproduce,
// tired agents in a group rest, then food, company and exploration.
func ChooseBehavior(energy float32, p Perception, params *Params) components.BehaviorState {
	crowded := params.CrowdSize > 0 && p.KinCount >= params.CrowdSize
	switch {
	case energy < params.HungryEnergy:
		return components.Feeding
	case energy >= params.ReproEnergy && p.HasMate:
		return components.Reproducing
	case energy < params.RestingEnergy && crowded:
		return components.Resting
	case p.HasFood:
		return components.Feeding
	case crowded:
		return components.Socializing
	default:
		return components.Exploring
	}
}

// Decide runs the controller on the last inputs. Output 0 in [-1, 1] becomes
// a forward speed in [0, MaxSpeed] along the heading, output 1 a turn rate in
// [-MaxTurnRate, MaxTurnRate]. Both are scaled by the behavior state, and
// speed drops sharply at critical energy.
func (a *Agent) Decide() (force systems.Vec2, rotationForce float32) {
	out := a.Brain.Process(a.Inputs)
	copy(a.Outputs, out)

	var o0, o1 float32
	if len(out) > 0 {
		o0 = out[0]
	}
	if len(out) > 1 {
		o1 = out[1]
	}

	m := motionByState[components.Exploring]
	if int(a.State) < len(motionByState) {
		m = motionByState[a.State]
	}

	energyFactor := float32(1)
	if a.Body.Energy < a.params.CriticalEnergy {
		energyFactor = a.params.CriticalSpeedFactor
	}

	speed := (o0 + 1) / 2 * a.params.Physics.MaxSpeed * m.speed * energyFactor
	force = systems.FromAngle(a.Body.Rotation, speed)
	rotationForce = o1 * a.params.Physics.MaxTurnRate * m.turn
	return force, rotationForce
}
