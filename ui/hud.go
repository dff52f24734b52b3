package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Population    int
	Females       int
	Males         int
	FoodCount     int
	Tick          int64
	Generation    int
	Elapsed       float64
	StepsPerFrame int
	FPS           int32
	Paused        bool
	Following     bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	r.DrawPanel(5, 5, 330, 100)

	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Agents: %d (F %d / M %d) | Food: %d", data.Population, data.Females, data.Males, data.FoodCount),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Gen: %d | Time: %s | Tick: %d", data.Generation, formatElapsed(data.Elapsed), data.Tick),
		10, 55, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Speed: %dx | FPS: %d", data.StepsPerFrame, data.FPS),
		10, 75, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Following {
		status += " | following"
	}
	rl.DrawText(status, 200, 75, 16, rl.Yellow)
}

// DrawHelp renders the key bindings in the bottom-left corner.
func (h *HUD) DrawHelp(screenH int32) {
	lines := []string{
		"SPACE pause  N step  , . speed",
		"click select  F follow  R reset view",
		"right-drag pan  wheel zoom",
	}
	y := screenH - int32(len(lines))*14 - 8
	for _, line := range lines {
		rl.DrawText(line, 10, y, 12, rl.Gray)
		y += 14
	}
}

func formatElapsed(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
