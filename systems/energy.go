package systems

import "math"

// EnergyCost returns the energy spent over dt.
// Movement is free below IdleSpeed, linear up to SprintSpeed and gains a
// quadratic term beyond it; base metabolism and turning are always charged.
func (b *Body) EnergyCost(dt float32, p PhysicsParams) float32 {
	var ratio float32
	if p.MaxSpeed > 0 {
		ratio = b.Speed() / p.MaxSpeed
	}

	var move float32
	switch {
	case ratio < p.IdleSpeed:
		move = 0
	case ratio < p.SprintSpeed:
		move = p.MoveCost * ratio
	default:
		over := ratio - p.SprintSpeed
		move = p.MoveCost*ratio + p.SprintCost*over*over
	}

	turn := p.RotationCost * float32(math.Abs(float64(b.AngularMomentum)))
	return (p.BaseCost + move + turn) * dt
}
