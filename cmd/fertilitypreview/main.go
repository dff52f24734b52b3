// Fertility map preview tool - interactive view of where food spawns.
//
// Usage: go run ./cmd/fertilitypreview
package main

import (
	"fmt"
	"image/color"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/tomingtoming/Geneuron/config"
	"github.com/tomingtoming/Geneuron/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewW     = 600
	panelWidth   = windowWidth - previewW - 30
	gridW        = 240
)

// FertilityParams holds the tunable food placement settings.
type FertilityParams struct {
	Scale float32
	Bias  float32
	Seed  int64
}

// foodYAML mirrors the food section of the config file.
type foodYAML struct {
	Food struct {
		FertilityBias  float64 `yaml:"fertility_bias"`
		FertilityScale float64 `yaml:"fertility_scale"`
	} `yaml:"food"`
}

func main() {
	cfg := config.Default()
	bounds := systems.Bounds{Width: cfg.Derived.WorldW32, Height: cfg.Derived.WorldH32}
	gridH := int(float32(gridW) * bounds.Height / bounds.Width)
	previewH := float32(previewW) * bounds.Height / bounds.Width

	defaults := FertilityParams{
		Scale: float32(cfg.Food.FertilityScale),
		Bias:  max(float32(cfg.Food.FertilityBias), 0.5),
		Seed:  42,
	}
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Fertility Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(texture, rl.FilterBilinear)
	defer rl.UnloadTexture(texture)

	var grid []float32
	var food []systems.FoodItem
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			field := newField(cfg, bounds, params)
			grid = field.FertilityGrid(gridW, gridH)
			food = field.Items()
			updateTexture(texture, grid)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Fertility map with a full food field placed on it
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridW, Height: float32(gridH)},
			rl.Rectangle{X: 10, Y: 10, Width: previewW, Height: previewH},
			rl.Vector2{},
			0,
			rl.White,
		)
		sx := previewW / bounds.Width
		sy := previewH / bounds.Height
		for _, item := range food {
			rl.DrawCircleV(rl.Vector2{X: 10 + item.Position.X*sx, Y: 10 + item.Position.Y*sy}, 2, rl.Red)
		}
		rl.DrawRectangleLines(10, 10, previewW, int32(previewH), rl.DarkGray)

		var fertile int
		for _, item := range food {
			if fertilityAt(grid, gridH, bounds, item.Position) >= 0.5 {
				fertile++
			}
		}
		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Food items: %d  on fertile ground: %d  coverage: %.0f%%",
			len(food), fertile, 100*coverage(grid)), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Food Fertility", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Scale (noise features per world width)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if v := slider(panelX, panelY, "0.5", "16", params.Scale, 0.5, 16, "%.1f"); v != params.Scale {
			params.Scale = v
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Bias (0 = uniform, 1 = fertile only)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if v := slider(panelX, panelY, "0", "1", params.Bias, 0, 1, "%.2f"); v != params.Bias {
			params.Bias = v
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		if v := slider(panelX, panelY, "0", "99999", float32(params.Seed), 0, 99999, "%.0f"); int64(v) != params.Seed {
			params.Seed = int64(v)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		snippet := paramsYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(snippet, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

// newField builds a food field filled to capacity so the bias is visible.
func newField(cfg *config.Config, bounds systems.Bounds, p FertilityParams) *systems.FoodField {
	fp := systems.NewFoodParams(cfg)
	fp.FertilityScale = p.Scale
	fp.FertilityBias = p.Bias
	fp.Initial = fp.Max
	return systems.NewFoodField(bounds, fp, rand.New(rand.NewSource(p.Seed)))
}

func slider(x, y float32, minText, maxText string, value, lo, hi float32, format string) float32 {
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		minText, maxText,
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	return v
}

func paramsYAML(p FertilityParams) string {
	var out foodYAML
	out.Food.FertilityBias = float64(p.Bias)
	out.Food.FertilityScale = float64(p.Scale)
	data, err := yaml.Marshal(out)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func fertilityAt(grid []float32, gridH int, bounds systems.Bounds, p systems.Vec2) float32 {
	c := min(int(p.X/bounds.Width*gridW), gridW-1)
	r := min(int(p.Y/bounds.Height*float32(gridH)), gridH-1)
	return grid[r*gridW+c]
}

func coverage(grid []float32) float32 {
	if len(grid) == 0 {
		return 0
	}
	var n int
	for _, v := range grid {
		if v >= 0.5 {
			n++
		}
	}
	return float32(n) / float32(len(grid))
}

// updateTexture updates the GPU texture from the grid values
func updateTexture(texture rl.Texture2D, grid []float32) {
	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		// Barren brown to lush green
		pixels[i] = color.RGBA{
			R: uint8(120 - v*90),
			G: uint8(90 + v*120),
			B: uint8(50 + v*10),
			A: 255,
		}
	}
	rl.UpdateTexture(texture, pixels)
}
