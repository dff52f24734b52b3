// Package components defines the small value types shared by the agent,
// simulation and renderer packages.
package components

import "math/rand"

// Gender is an agent's binary sex. Reproduction requires differing genders.
type Gender uint8

const (
	Female Gender = iota
	Male
)

// GenderNames returns display names indexed by Gender.
func GenderNames() []string {
	return []string{"female", "male"}
}

func (g Gender) String() string {
	names := GenderNames()
	if int(g) < len(names) {
		return names[g]
	}
	return "unknown"
}

// RandomGender draws either gender with equal probability.
func RandomGender(rng *rand.Rand) Gender {
	return Gender(rng.Intn(2))
}

// BehaviorState is the discrete mode that reweights sensing and scales movement.
type BehaviorState uint8

const (
	Exploring BehaviorState = iota
	Feeding
	Socializing
	Reproducing
	Resting

	NumBehaviorStates = 5
)

// BehaviorStateNames returns display names indexed by BehaviorState.
func BehaviorStateNames() []string {
	return []string{"exploring", "feeding", "socializing", "reproducing", "resting"}
}

func (s BehaviorState) String() string {
	names := BehaviorStateNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Color is an RGBA display hint.
type Color struct {
	R, G, B, A uint8
}

// GenderColor returns the body color hint for a gender.
func GenderColor(g Gender) Color {
	if g == Male {
		return Color{R: 90, G: 140, B: 255, A: 255}
	}
	return Color{R: 255, G: 110, B: 170, A: 255}
}

// StateColor returns the marker color hint for a behavior state.
func StateColor(s BehaviorState) Color {
	switch s {
	case Feeding:
		return Color{R: 80, G: 220, B: 90, A: 255}
	case Socializing:
		return Color{R: 240, G: 220, B: 70, A: 255}
	case Reproducing:
		return Color{R: 235, G: 70, B: 70, A: 255}
	case Resting:
		return Color{R: 150, G: 150, B: 170, A: 255}
	default:
		return Color{R: 240, G: 240, B: 240, A: 255}
	}
}
