// Package camera maps a toroidal world onto the screen with pan, zoom and follow.
package camera

import (
	"github.com/tomingtoming/Geneuron/systems"
)

// Camera controls the viewport into the simulation world.
type Camera struct {
	// Center is the camera center in world coordinates
	Center systems.Vec2

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	World systems.Bounds

	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world at the largest zoom that
// keeps the viewport inside the world, capped at 1:1.
func New(viewportW, viewportH float32, world systems.Bounds) *Camera {
	c := &Camera{
		Center:    world.Center(),
		ViewportW: viewportW,
		ViewportH: viewportH,
		World:     world,
		MaxZoom:   4.0,
	}
	c.MinZoom = c.minZoom()
	c.Zoom = max(1, c.MinZoom)
	return c
}

// minZoom is the zoom at which the viewport shows exactly one world copy
// along its tighter axis.
func (c *Camera) minZoom() float32 {
	return max(c.ViewportW/c.World.Width, c.ViewportH/c.World.Height)
}

// WorldToScreen converts a world position to screen coordinates along the
// shortest toroidal path from the camera center.
func (c *Camera) WorldToScreen(p systems.Vec2) systems.Vec2 {
	d := c.World.Delta(c.Center, p)
	return systems.Vec2{
		X: c.ViewportW/2 + d.X*c.Zoom,
		Y: c.ViewportH/2 + d.Y*c.Zoom,
	}
}

// ScreenToWorld converts screen coordinates to a wrapped world position.
func (c *Camera) ScreenToWorld(s systems.Vec2) systems.Vec2 {
	return c.World.Wrap(systems.Vec2{
		X: c.Center.X + (s.X-c.ViewportW/2)/c.Zoom,
		Y: c.Center.Y + (s.Y-c.ViewportH/2)/c.Zoom,
	})
}

// IsVisible reports whether a circle at p could overlap the screen.
func (c *Camera) IsVisible(p systems.Vec2, radius float32) bool {
	d := c.World.Delta(c.Center, p)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return abs(d.X) <= halfW && abs(d.Y) <= halfH
}

// Ghosts returns extra screen positions for a circle straddling the view
// edge, so it is drawn on both sides of the wrap. At most three are returned.
func (c *Camera) Ghosts(p systems.Vec2, radius float32) []systems.Vec2 {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	d := c.World.Delta(c.Center, p)

	var shiftX, shiftY float32
	switch {
	case d.X > halfW-radius && d.X < halfW+radius:
		shiftX = -c.World.Width
	case d.X < -halfW+radius && d.X > -halfW-radius:
		shiftX = c.World.Width
	}
	switch {
	case d.Y > halfH-radius && d.Y < halfH+radius:
		shiftY = -c.World.Height
	case d.Y < -halfH+radius && d.Y > -halfH-radius:
		shiftY = c.World.Height
	}

	screen := func(dx, dy float32) systems.Vec2 {
		return systems.Vec2{X: c.ViewportW/2 + dx*c.Zoom, Y: c.ViewportH/2 + dy*c.Zoom}
	}

	var ghosts []systems.Vec2
	if shiftX != 0 {
		ghosts = append(ghosts, screen(d.X+shiftX, d.Y))
	}
	if shiftY != 0 {
		ghosts = append(ghosts, screen(d.X, d.Y+shiftY))
	}
	if shiftX != 0 && shiftY != 0 {
		ghosts = append(ghosts, screen(d.X+shiftX, d.Y+shiftY))
	}
	return ghosts
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.minZoom()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by a delta in screen pixels, wrapping around the world.
func (c *Camera) Pan(dx, dy float32) {
	c.Center = c.World.Wrap(systems.Vec2{
		X: c.Center.X + dx/c.Zoom,
		Y: c.Center.Y + dy/c.Zoom,
	})
}

// Follow moves the camera a fraction t of the way toward target along the
// shortest toroidal path. t = 1 snaps to the target.
func (c *Camera) Follow(target systems.Vec2, t float32) {
	d := c.World.Delta(c.Center, target)
	t = min(max(t, 0), 1)
	c.Center = c.World.Wrap(c.Center.Add(d.Scale(t)))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = min(max(zoom, c.MinZoom), c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the world center at 1:1 zoom.
func (c *Camera) Reset() {
	c.Center = c.World.Center()
	c.SetZoom(1)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
