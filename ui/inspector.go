package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tomingtoming/Geneuron/game"
)

// Controller labels, in network order.
var (
	inputLabels  = []string{"Energy", "Speed", "Heading", "Food d", "Food a", "Mate d", "Mate a", "Kin d", "Kin a"}
	outputLabels = []string{"Thrust", "Turn"}
)

// InspectorData holds all the data needed to render the inspector panel.
type InspectorData struct {
	Agent     game.AgentView
	MaxEnergy float32
	Inputs    []float32
	Outputs   []float32
}

// Inspector renders the selected agent's state and its last controller pass.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel and returns its height.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	contentWidth := ins.width - padding*2
	a := data.Agent

	height := ins.height(data)
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + padding
	y := ins.y + padding

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Agent #%d", a.ID))
	y = r.DrawColorSwatch(x, y, "Gender", a.Gender.String(), ToRaylib(a.Color))
	y = r.DrawColorSwatch(x, y, "State", a.State.String(), ToRaylib(a.StateColor))
	y = r.DrawEnergyBar(x, y, "Energy", a.Energy, data.MaxEnergy, contentWidth)
	y = r.DrawLabelValue(x, y, "Age", fmt.Sprintf("%.1fs", a.Age))
	y = r.DrawLabelValue(x, y, "Fitness", fmt.Sprintf("%.2f", a.Fitness))
	y = r.DrawLabelValue(x, y, "Lineage", fmt.Sprintf("%d", a.Lineage))
	y = r.DrawLabelValue(x, y, "Children", fmt.Sprintf("%d", a.Children))
	y = r.DrawLabelValue(x, y, "Eaten", fmt.Sprintf("%.2f", a.FoodEaten))
	y = r.DrawLabelValue(x, y, "Cooldown", fmt.Sprintf("%.1fs", a.ReproductionCooldown))
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.1f", a.Velocity.Len()))
	y += padding / 2

	if len(data.Inputs) > 0 {
		y = r.DrawSectionHeader(x, y, "Inputs")
		for i, v := range data.Inputs {
			y = r.DrawCenteredBar(x, y, label(inputLabels, "in", i), v, 1, contentWidth)
		}
		y += padding / 2
	}

	if len(data.Outputs) > 0 {
		y = r.DrawSectionHeader(x, y, "Outputs")
		for i, v := range data.Outputs {
			y = r.DrawCenteredBar(x, y, label(outputLabels, "out", i), v, 1, contentWidth)
		}
	}

	return height
}

// Rows drawn in the agent section of Draw.
const (
	swatchRows = 2 // gender, state
	infoRows   = 7 // age through speed
)

func (ins *Inspector) height(data InspectorData) int32 {
	t := ins.renderer.Theme
	h := 2*t.Padding + (t.LineHeight + 2) // header
	h += swatchRows*t.LineHeight + (t.LineHeight + 2) + infoRows*t.LineHeight + t.Padding/2
	if len(data.Inputs) > 0 {
		h += t.LineHeight + 2 + int32(len(data.Inputs))*(t.LineHeight+2) + t.Padding/2
	}
	if len(data.Outputs) > 0 {
		h += t.LineHeight + 2 + int32(len(data.Outputs))*(t.LineHeight+2)
	}
	return h
}

// Contains reports whether a screen point lies over the panel.
func (ins *Inspector) Contains(p rl.Vector2, data InspectorData) bool {
	return p.X >= float32(ins.x) && p.X <= float32(ins.x+ins.width) &&
		p.Y >= float32(ins.y) && p.Y <= float32(ins.y+ins.height(data))
}

func label(names []string, prefix string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s%d", prefix, i)
}
