package systems

import (
	"math"
	"testing"
)

func TestEnergyCostTiers(t *testing.T) {
	p := testParams()
	dt := float32(1)

	cost := func(ratio float32) float32 {
		b := Body{Velocity: Vec2{ratio * p.MaxSpeed, 0}}
		return b.EnergyCost(dt, p)
	}

	idle := cost(p.IdleSpeed / 2)
	if math.Abs(float64(idle-p.BaseCost)) > 1e-6 {
		t.Errorf("idle cost = %v, want base cost %v", idle, p.BaseCost)
	}

	r := (p.IdleSpeed + p.SprintSpeed) / 2
	linear := cost(r)
	want := p.BaseCost + p.MoveCost*r
	if math.Abs(float64(linear-want)) > 1e-6 {
		t.Errorf("cruise cost = %v, want %v", linear, want)
	}

	sprint := cost(1)
	over := 1 - p.SprintSpeed
	want = p.BaseCost + p.MoveCost + p.SprintCost*over*over
	if math.Abs(float64(sprint-want)) > 1e-6 {
		t.Errorf("sprint cost = %v, want %v", sprint, want)
	}

	// Faster-than-linear growth above the sprint threshold
	lowSprint := cost(p.SprintSpeed+0.1) - p.BaseCost
	highSprint := cost(p.SprintSpeed+0.3) - p.BaseCost
	if highSprint/lowSprint <= (p.SprintSpeed+0.3)/(p.SprintSpeed+0.1) {
		t.Errorf("sprint cost should grow faster than linear: %v vs %v", lowSprint, highSprint)
	}
}

func TestEnergyCostRotation(t *testing.T) {
	p := testParams()
	still := Body{}
	turning := Body{AngularMomentum: -2}

	diff := turning.EnergyCost(1, p) - still.EnergyCost(1, p)
	if math.Abs(float64(diff-2*p.RotationCost)) > 1e-6 {
		t.Errorf("rotation cost = %v, want %v", diff, 2*p.RotationCost)
	}
}
