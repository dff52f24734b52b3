package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a request raised by the playback controls.
type Action uint8

const (
	ActionNone Action = iota
	ActionTogglePause
	ActionStep
	ActionSlower
	ActionFaster
	ActionResetView
)

// Controls draws the playback buttons.
type Controls struct {
	X, Y float32
}

// NewControls creates controls anchored at the given screen position.
func NewControls(x, y float32) *Controls {
	return &Controls{X: x, Y: y}
}

// Draw renders the buttons and returns the action of the one clicked, if any.
func (c *Controls) Draw(paused bool, stepsPerFrame int) Action {
	const w, h, gap = 70, 24, 6
	x := c.X
	button := func(label string) bool {
		clicked := gui.Button(rl.Rectangle{X: x, Y: c.Y, Width: w, Height: h}, label)
		x += w + gap
		return clicked
	}

	action := ActionNone
	if button(toggleText(paused, "Resume", "Pause")) {
		action = ActionTogglePause
	}
	if button("Step") {
		action = ActionStep
	}
	if button("Slower") {
		action = ActionSlower
	}
	if button("Faster") {
		action = ActionFaster
	}
	if button("View") {
		action = ActionResetView
	}
	gui.Label(rl.Rectangle{X: x, Y: c.Y, Width: w, Height: h}, fmt.Sprintf("%dx", stepsPerFrame))
	return action
}

// Contains reports whether a screen point lies over the control strip.
func (c *Controls) Contains(p rl.Vector2) bool {
	return p.X >= c.X && p.X <= c.X+6*76 && p.Y >= c.Y && p.Y <= c.Y+24
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
