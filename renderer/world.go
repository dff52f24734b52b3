package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tomingtoming/Geneuron/camera"
	"github.com/tomingtoming/Geneuron/game"
	"github.com/tomingtoming/Geneuron/systems"
	"github.com/tomingtoming/Geneuron/ui"
)

var (
	foodColor      = rl.Color{R: 120, G: 230, B: 110, A: 255}
	selectionColor = rl.Color{R: 255, G: 255, B: 255, A: 200}
)

// drawFood draws each visible item as a circle sized by its energy.
func drawFood(cam *camera.Camera, items []systems.FoodItem) {
	for _, item := range items {
		if !cam.IsVisible(item.Position, item.Size) {
			continue
		}
		r := item.Size * cam.Zoom
		p := cam.WorldToScreen(item.Position)
		rl.DrawCircleV(vec(p), r, foodColor)
		for _, g := range cam.Ghosts(item.Position, item.Size) {
			rl.DrawCircleV(vec(g), r, foodColor)
		}
	}
}

// drawAgents draws each visible agent as a triangle pointing along its
// heading, with a dot in its behavior state color.
func drawAgents(cam *camera.Camera, agents []game.AgentView) {
	for i := range agents {
		a := &agents[i]
		reach := a.Radius * 1.5
		if !cam.IsVisible(a.Position, reach) {
			continue
		}
		drawAgentAt(cam.WorldToScreen(a.Position), a, cam.Zoom)
		for _, g := range cam.Ghosts(a.Position, reach) {
			drawAgentAt(g, a, cam.Zoom)
		}
	}
}

func drawAgentAt(p systems.Vec2, a *game.AgentView, zoom float32) {
	r := a.Radius * zoom
	nose := p.Add(systems.FromAngle(a.Rotation, r*1.5))
	left := p.Add(systems.FromAngle(a.Rotation+2.4, r))
	right := p.Add(systems.FromAngle(a.Rotation-2.4, r))
	drawTriangle(nose, left, right, ui.ToRaylib(a.Color))
	rl.DrawCircleV(vec(p), max(r*0.3, 1.5), ui.ToRaylib(a.StateColor))
}

// drawSelection rings the selected agent and marks its sensing radius.
func drawSelection(cam *camera.Camera, a game.AgentView, senseRadius float32) {
	p := cam.WorldToScreen(a.Position)
	x, y := int32(p.X), int32(p.Y)
	rl.DrawCircleLines(x, y, a.Radius*2*cam.Zoom, selectionColor)
	rl.DrawCircleLines(x, y, senseRadius*cam.Zoom, rl.Color{R: 255, G: 255, B: 255, A: 50})
}

// drawTriangle fills a triangle regardless of winding. raylib culls
// clockwise triangles, which in y-down screen space have a positive cross product.
func drawTriangle(a, b, c systems.Vec2, color rl.Color) {
	if cross(a, b, c) > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(vec(a), vec(b), vec(c), color)
}

func cross(a, b, c systems.Vec2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func vec(p systems.Vec2) rl.Vector2 {
	return rl.Vector2{X: p.X, Y: p.Y}
}

// pickAgent returns the ID of the agent nearest to p within reach.
func pickAgent(agents []game.AgentView, p systems.Vec2, bounds systems.Bounds, reach float32) (uint32, bool) {
	best := float32(math.MaxFloat32)
	var id uint32
	found := false
	for i := range agents {
		d := bounds.Distance(p, agents[i].Position)
		if d <= reach && d < best {
			best, id, found = d, agents[i].ID, true
		}
	}
	return id, found
}

// findAgent returns the agent with the given ID, if it is still alive.
func findAgent(agents []game.AgentView, id uint32) (game.AgentView, bool) {
	for i := range agents {
		if agents[i].ID == id {
			return agents[i], true
		}
	}
	return game.AgentView{}, false
}
