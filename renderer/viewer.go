// Package renderer draws a running simulation with raylib and handles the
// viewer's keyboard and mouse input.
package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tomingtoming/Geneuron/camera"
	"github.com/tomingtoming/Geneuron/components"
	"github.com/tomingtoming/Geneuron/game"
	"github.com/tomingtoming/Geneuron/systems"
	"github.com/tomingtoming/Geneuron/ui"
)

const (
	maxStepsPerFrame = 10

	// fertilityCell is the world size of one fertility texel.
	fertilityCell = 20

	inspectorWidth = 240
)

var backgroundColor = rl.Color{R: 12, G: 16, B: 22, A: 255}

// ViewerOptions configures the interactive viewer.
type ViewerOptions struct {
	Title         string
	StepsPerFrame int
	MaxTicks      int64 // 0 = unlimited
}

// Viewer drives a simulation from the raylib frame loop. The window must be
// open before Run is called.
type Viewer struct {
	sim *game.Simulation
	cam *camera.Camera
	dt  float32

	hud       *ui.HUD
	controls  *ui.Controls
	inspector *ui.Inspector
	fertility *FertilityRenderer

	title         string
	stepsPerFrame int
	maxTicks      int64

	selectedID   uint32
	hasSelection bool
	following    bool

	// Per-frame snapshot
	agents   []game.AgentView
	selected game.AgentView
	inspect  ui.InspectorData
}

// NewViewer creates a viewer for sim sized to the current window.
func NewViewer(sim *game.Simulation, opts ViewerOptions) *Viewer {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	steps := opts.StepsPerFrame
	if steps < 1 {
		steps = 1
	}
	title := opts.Title
	if title == "" {
		title = "Geneuron"
	}

	return &Viewer{
		sim:           sim,
		cam:           camera.New(w, h, sim.Bounds()),
		dt:            sim.Config().Derived.DT32,
		hud:           ui.NewHUD(),
		controls:      ui.NewControls(10, 112),
		inspector:     ui.NewInspector(int32(w)-inspectorWidth-10, 10, inspectorWidth),
		fertility:     NewFertilityRenderer(rl.Color{R: 14, G: 20, B: 26, A: 255}, rl.Color{R: 30, G: 58, B: 36, A: 255}),
		title:         title,
		stepsPerFrame: min(steps, maxStepsPerFrame),
		maxTicks:      opts.MaxTicks,
	}
}

// Run loops until the window closes or the tick limit is reached.
func (v *Viewer) Run() {
	bounds := v.sim.Bounds()
	cols := max(1, int(bounds.Width/fertilityCell))
	rows := max(1, int(bounds.Height/fertilityCell))
	v.fertility.Init(v.sim.FertilityGrid(cols, rows), cols, rows)
	defer v.fertility.Unload()

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if v.maxTicks > 0 && v.sim.Tick() >= v.maxTicks {
			slog.Info("max ticks reached", "tick", v.sim.Tick())
			return
		}
	}
}

// Update handles input and advances the simulation for one frame.
func (v *Viewer) Update() {
	v.handleResize()
	v.handleInput()

	if !v.sim.Paused() {
		for i := 0; i < v.stepsPerFrame; i++ {
			v.sim.Update(v.dt)
		}
	}
	v.sim.RecordFrame()

	v.agents = v.sim.Agents()
	v.refreshSelection()
	if v.following && v.hasSelection {
		v.cam.Follow(v.selected.Position, 0.2)
	}
}

// refreshSelection resolves the selected ID against the current agents.
// Indices shift as agents die, IDs do not.
func (v *Viewer) refreshSelection() {
	if !v.hasSelection {
		return
	}
	a, ok := findAgent(v.agents, v.selectedID)
	if !ok {
		v.hasSelection = false
		v.following = false
		return
	}
	v.selected = a
	in, out, _ := v.sim.Controller(a.Index)
	v.inspect = ui.InspectorData{
		Agent:     a,
		MaxEnergy: float32(v.sim.Config().Agent.MaxEnergy),
		Inputs:    in,
		Outputs:   out,
	}
}

func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	v.cam.Resize(w, h)
	v.inspector.SetPosition(int32(w)-inspectorWidth-10, 10)
}

func (v *Viewer) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.apply(ui.ActionTogglePause)
	}
	if rl.IsKeyPressed(rl.KeyN) {
		v.apply(ui.ActionStep)
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		v.apply(ui.ActionSlower)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		v.apply(ui.ActionFaster)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.apply(ui.ActionResetView)
	}
	if rl.IsKeyPressed(rl.KeyF) && v.hasSelection {
		v.following = !v.following
	}

	v.handleCameraInput()
	v.handleSelection()
}

// apply performs a playback action from a key or a control button.
func (v *Viewer) apply(action ui.Action) {
	switch action {
	case ui.ActionTogglePause:
		v.sim.TogglePause()
	case ui.ActionStep:
		v.sim.Step(v.dt)
	case ui.ActionSlower:
		v.stepsPerFrame = max(1, v.stepsPerFrame-1)
	case ui.ActionFaster:
		v.stepsPerFrame = min(maxStepsPerFrame, v.stepsPerFrame+1)
	case ui.ActionResetView:
		v.cam.Reset()
		v.following = false
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (v *Viewer) handleCameraInput() {
	panSpeed := float32(8.0)
	if rl.IsKeyDown(rl.KeyRight) {
		v.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.cam.Pan(0, -panSpeed)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
		v.following = false
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.cam.ZoomBy(0.8)
	}
}

// handleSelection selects the agent under a left click, ignoring clicks on panels.
func (v *Viewer) handleSelection() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if v.controls.Contains(mouse) || (v.hasSelection && v.inspector.Contains(mouse, v.inspect)) {
		return
	}

	world := v.cam.ScreenToWorld(systems.Vec2{X: mouse.X, Y: mouse.Y})
	reach := 2 * float32(v.sim.Config().Agent.BodyRadius)
	if id, ok := pickAgent(v.agents, world, v.sim.Bounds(), reach); ok {
		v.selectedID = id
		v.hasSelection = true
		v.refreshSelection()
		return
	}
	v.hasSelection = false
	v.following = false
}

// Draw renders the world and the UI for one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(backgroundColor)
	v.fertility.Draw(v.cam)
	drawFood(v.cam, v.sim.Food())
	drawAgents(v.cam, v.agents)
	if v.hasSelection {
		drawSelection(v.cam, v.selected, float32(v.sim.Config().Sensors.FoodRadius))
	}

	v.drawUI()
}

func (v *Viewer) drawUI() {
	var females, males int
	for i := range v.agents {
		if v.agents[i].Gender == components.Female {
			females++
		} else {
			males++
		}
	}

	v.hud.Draw(ui.HUDData{
		Title:         v.title,
		Population:    len(v.agents),
		Females:       females,
		Males:         males,
		FoodCount:     v.sim.FoodCount(),
		Tick:          v.sim.Tick(),
		Generation:    v.sim.Generation(),
		Elapsed:       v.sim.ElapsedTime(),
		StepsPerFrame: v.stepsPerFrame,
		FPS:           rl.GetFPS(),
		Paused:        v.sim.Paused(),
		Following:     v.following,
	})
	v.hud.DrawHelp(int32(rl.GetScreenHeight()))

	if action := v.controls.Draw(v.sim.Paused(), v.stepsPerFrame); action != ui.ActionNone {
		v.apply(action)
	}

	if v.hasSelection {
		v.inspector.Draw(v.inspect)
	}
}
