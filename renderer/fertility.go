package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tomingtoming/Geneuron/camera"
)

// FertilityRenderer draws the food fertility map as a tinted ground layer.
// The map is static, so it is sampled once into a repeating texture.
type FertilityRenderer struct {
	tex         rl.Texture2D
	texW, texH  int
	low, high   rl.Color
	initialized bool
}

// NewFertilityRenderer creates a renderer blending from low to high fertility colors.
func NewFertilityRenderer(low, high rl.Color) *FertilityRenderer {
	return &FertilityRenderer{low: low, high: high}
}

// Init uploads a cols x rows fertility grid (row-major, values in [0, 1]).
// Must be called after the raylib window is created.
func (r *FertilityRenderer) Init(grid []float32, cols, rows int) {
	if r.initialized || len(grid) != cols*rows || cols == 0 {
		return
	}
	r.texW, r.texH = cols, rows

	img := rl.GenImageColor(cols, rows, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterBilinear)
	rl.SetTextureWrap(r.tex, rl.WrapRepeat)
	rl.UnloadImage(img)

	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		pixels[i] = blend(r.low, r.high, v)
	}
	rl.UpdateTexture(r.tex, pixels)

	r.initialized = true
}

// Draw fills the screen with the part of the map the camera sees.
// The repeat wrap mode tiles it across the world seams.
func (r *FertilityRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		return
	}

	topLeft := cam.Center
	topLeft.X -= cam.ViewportW / (2 * cam.Zoom)
	topLeft.Y -= cam.ViewportH / (2 * cam.Zoom)

	sx := float32(r.texW) / cam.World.Width
	sy := float32(r.texH) / cam.World.Height
	src := rl.Rectangle{
		X:      topLeft.X * sx,
		Y:      topLeft.Y * sy,
		Width:  cam.ViewportW / cam.Zoom * sx,
		Height: cam.ViewportH / cam.Zoom * sy,
	}
	dst := rl.Rectangle{X: 0, Y: 0, Width: cam.ViewportW, Height: cam.ViewportH}
	rl.DrawTexturePro(r.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *FertilityRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}

func blend(a, b rl.Color, t float32) color.RGBA {
	t = min(max(t, 0), 1)
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
