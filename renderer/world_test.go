package renderer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tomingtoming/Geneuron/game"
	"github.com/tomingtoming/Geneuron/systems"
)

var bounds = systems.Bounds{Width: 800, Height: 600}

func TestPickAgent(t *testing.T) {
	agents := []game.AgentView{
		{ID: 1, Position: systems.Vec2{X: 100, Y: 100}},
		{ID: 2, Position: systems.Vec2{X: 110, Y: 100}},
		{ID: 3, Position: systems.Vec2{X: 795, Y: 300}},
	}

	tests := []struct {
		name   string
		p      systems.Vec2
		wantID uint32
		wantOK bool
	}{
		{"nearest of two", systems.Vec2{X: 108, Y: 100}, 2, true},
		{"across seam", systems.Vec2{X: 3, Y: 300}, 3, true},
		{"out of reach", systems.Vec2{X: 400, Y: 400}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := pickAgent(agents, tt.p, bounds, 20)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("pickAgent = (%d, %v), want (%d, %v)", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestFindAgent(t *testing.T) {
	agents := []game.AgentView{{Index: 0, ID: 7}, {Index: 1, ID: 9}}

	a, ok := findAgent(agents, 9)
	if !ok || a.Index != 1 {
		t.Errorf("findAgent(9) = (%+v, %v)", a, ok)
	}
	if _, ok := findAgent(agents, 8); ok {
		t.Error("findAgent(8) found a dead agent")
	}
}

func TestCrossWinding(t *testing.T) {
	a := systems.Vec2{X: 0, Y: 0}
	b := systems.Vec2{X: 10, Y: 0}
	c := systems.Vec2{X: 0, Y: 10}

	// Clockwise on screen with y pointing down
	if cross(a, b, c) <= 0 {
		t.Errorf("cross(a, b, c) = %v, want positive", cross(a, b, c))
	}
	if cross(a, c, b) >= 0 {
		t.Errorf("cross(a, c, b) = %v, want negative", cross(a, c, b))
	}
}

func TestBlend(t *testing.T) {
	low := rl.Color{R: 0, G: 100, B: 200, A: 255}
	high := rl.Color{R: 200, G: 100, B: 0, A: 255}

	tests := []struct {
		name string
		t    float32
		want uint8
	}{
		{"low", 0, 0},
		{"mid", 0.5, 100},
		{"high", 1, 200},
		{"clamped", 3, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blend(low, high, tt.t); got.R != tt.want || got.G != 100 {
				t.Errorf("blend(%v) = %+v, want R=%d", tt.t, got, tt.want)
			}
		})
	}
}
