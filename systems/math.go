package systems

import "math"

const twoPi = 2 * math.Pi

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the magnitude of v.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// FromAngle returns a vector of the given length pointing along angle.
func FromAngle(angle, length float32) Vec2 {
	s, c := math.Sincos(float64(angle))
	return Vec2{float32(c) * length, float32(s) * length}
}

// Clamp functions for common value ranges

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	return clampFloat(v, 0, 1)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Angle normalization functions

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(angle float32) float32 {
	a := math.Mod(float64(angle)+math.Pi, twoPi)
	if a < 0 {
		a += twoPi
	}
	return float32(a - math.Pi)
}

// NormalizeHeading wraps a heading to [0, 2*Pi).
func NormalizeHeading(h float32) float32 {
	a := math.Mod(float64(h), twoPi)
	if a < 0 {
		a += twoPi
	}
	r := float32(a)
	// float32 rounding can land exactly on 2*Pi
	if r >= twoPi {
		r = 0
	}
	return r
}

// mod returns the positive remainder of x / m.
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	// float32 rounding of a tiny negative remainder can yield m
	if r >= m {
		r = 0
	}
	return r
}
