// Package systems provides the physics, spatial and food primitives of the simulation.
package systems

import (
	"math"

	"github.com/tomingtoming/Geneuron/config"
)

// Bounds represents the simulation bounds. Both axes wrap.
type Bounds struct {
	Width, Height float32
}

// Wrap reduces p into [0, Width) x [0, Height).
func (b Bounds) Wrap(p Vec2) Vec2 {
	return Vec2{mod(p.X, b.Width), mod(p.Y, b.Height)}
}

// Delta returns the shortest offset from a to b.
func (b Bounds) Delta(from, to Vec2) Vec2 {
	dx, dy := ToroidalDelta(from.X, from.Y, to.X, to.Y, b.Width, b.Height)
	return Vec2{dx, dy}
}

// Distance returns the shortest distance between two points.
func (b Bounds) Distance(p, q Vec2) float32 {
	return b.Delta(p, q).Len()
}

// Midpoint returns the point halfway along the shortest path from p to q.
func (b Bounds) Midpoint(p, q Vec2) Vec2 {
	d := b.Delta(p, q)
	return b.Wrap(Vec2{p.X + d.X/2, p.Y + d.Y/2})
}

// Center returns the middle of the world.
func (b Bounds) Center() Vec2 {
	return Vec2{b.Width / 2, b.Height / 2}
}

// MaxDistance is the largest possible toroidal distance.
func (b Bounds) MaxDistance() float32 {
	return Vec2{b.Width / 2, b.Height / 2}.Len()
}

// ToroidalDelta returns the shortest path delta from (x1,y1) to (x2,y2).
// Each component is in [-w/2, w/2) and [-h/2, h/2), even for unwrapped inputs.
func ToroidalDelta(x1, y1, x2, y2, w, h float32) (dx, dy float32) {
	dx = mod(x2-x1+w/2, w) - w/2
	dy = mod(y2-y1+h/2, h) - h/2
	return dx, dy
}

// PhysicsParams holds the movement and energy constants used by Body.
type PhysicsParams struct {
	MinInertia     float32
	MaxInertia     float32
	MaxSpeed       float32
	MinSpeedFactor float32
	MaxTurnRate    float32
	RotationDecay  float32

	BaseCost     float32
	MoveCost     float32
	SprintCost   float32
	IdleSpeed    float32
	SprintSpeed  float32
	RotationCost float32
}

// NewPhysicsParams extracts physics constants from the config.
func NewPhysicsParams(cfg *config.Config) PhysicsParams {
	return PhysicsParams{
		MinInertia:     float32(cfg.Physics.MinInertia),
		MaxInertia:     float32(cfg.Physics.MaxInertia),
		MaxSpeed:       float32(cfg.Physics.MaxSpeed),
		MinSpeedFactor: float32(cfg.Physics.MinSpeedFactor),
		MaxTurnRate:    float32(cfg.Physics.MaxTurnRate),
		RotationDecay:  float32(cfg.Physics.RotationDecay),
		BaseCost:       float32(cfg.Energy.BaseCost),
		MoveCost:       float32(cfg.Energy.MoveCost),
		SprintCost:     float32(cfg.Energy.SprintCost),
		IdleSpeed:      float32(cfg.Energy.IdleSpeed),
		SprintSpeed:    float32(cfg.Energy.SprintSpeed),
		RotationCost:   float32(cfg.Energy.RotationCost),
	}
}

// Body is the kinematic state of an agent.
type Body struct {
	Position        Vec2
	Velocity        Vec2
	Rotation        float32 // radians, [0, 2*Pi)
	AngularMomentum float32 // radians per second
	Energy          float32
}

// Speed returns the magnitude of the velocity.
func (b *Body) Speed() float32 {
	return b.Velocity.Len()
}

// Integrate advances the body by dt seconds: position moves by velocity and
// wraps, rotation follows angular momentum, then velocity decays by
// exp(-drag*dt).
func (b *Body) Integrate(dt float32, bounds Bounds, drag float32) {
	b.Position = bounds.Wrap(b.Position.Add(b.Velocity.Scale(dt)))
	b.Rotation = NormalizeHeading(b.Rotation + b.AngularMomentum*dt)

	if drag > 0 {
		b.Velocity = b.Velocity.Scale(float32(math.Exp(float64(-drag * dt))))
	}
}

// ApplyForce blends the velocity toward force and accumulates rotationForce
// into angular momentum. Higher energyLevel lowers inertia and raises the
// speed and turn ceilings.
func (b *Body) ApplyForce(force Vec2, rotationForce, energyLevel float32, p PhysicsParams) {
	e := clamp01(energyLevel)
	inertia := lerp(p.MaxInertia, p.MinInertia, e)
	ceiling := lerp(p.MinSpeedFactor, 1, e)

	b.Velocity = b.Velocity.Scale(inertia).Add(force.Scale(1 - inertia))
	maxSpeed := p.MaxSpeed * ceiling
	if speed := b.Velocity.Len(); speed > maxSpeed && speed > 0 {
		b.Velocity = b.Velocity.Scale(maxSpeed / speed)
	}

	maxTurn := p.MaxTurnRate * ceiling
	m := b.AngularMomentum*p.RotationDecay + rotationForce*(1-p.RotationDecay)
	b.AngularMomentum = clampFloat(m, -maxTurn, maxTurn)
}

// DistanceTo returns the shortest toroidal distance to point.
func (b *Body) DistanceTo(point Vec2, bounds Bounds) float32 {
	return bounds.Distance(b.Position, point)
}

// DirectionTo returns the toroidal distance to point and the signed angle
// between the body's rotation and the bearing to point, in [-Pi, Pi].
// A point at zero distance has angle 0.
func (b *Body) DirectionTo(point Vec2, bounds Bounds) (dist, angle float32) {
	d := bounds.Delta(b.Position, point)
	dist = d.Len()
	if dist == 0 {
		return 0, 0
	}
	bearing := float32(math.Atan2(float64(d.Y), float64(d.X)))
	return dist, NormalizeAngle(bearing - b.Rotation)
}
