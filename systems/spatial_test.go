package systems

import (
	"math/rand"
	"sort"
	"testing"
)

func bruteForceNeighbors(positions []Vec2, pos Vec2, radius float32, exclude int, bounds Bounds) []int {
	var out []int
	for i, p := range positions {
		if i == exclude {
			continue
		}
		if bounds.Distance(pos, p) <= radius {
			out = append(out, i)
		}
	}
	return out
}

func TestSpatialGridMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bounds := Bounds{Width: 2400, Height: 1800}
	grid := NewSpatialGrid(bounds, 100)

	positions := make([]Vec2, 300)
	for i := range positions {
		positions[i] = Vec2{rng.Float32() * bounds.Width, rng.Float32() * bounds.Height}
	}
	grid.Rebuild(positions)

	var buf []Neighbor
	for q := 0; q < 100; q++ {
		self := rng.Intn(len(positions))
		radius := 50 + rng.Float32()*250

		buf = grid.QueryRadiusInto(buf[:0], positions[self], radius, self)
		got := make([]int, len(buf))
		for i, n := range buf {
			got[i] = n.Index
		}
		sort.Ints(got)

		want := bruteForceNeighbors(positions, positions[self], radius, self, bounds)
		if len(got) != len(want) {
			t.Fatalf("query %d: got %d neighbors, want %d", q, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("query %d: neighbor %d = %d, want %d", q, i, got[i], want[i])
			}
		}
	}
}

func TestSpatialGridNoDuplicatesOnSmallWorld(t *testing.T) {
	bounds := Bounds{Width: 250, Height: 250}
	grid := NewSpatialGrid(bounds, 100)
	positions := []Vec2{{10, 10}, {240, 240}, {120, 130}}
	grid.Rebuild(positions)

	// Radius larger than the world: every cell is in range but must be visited once
	got := grid.QueryRadiusInto(nil, Vec2{125, 125}, 1000, -1)
	if len(got) != len(positions) {
		t.Errorf("got %d neighbors, want %d", len(got), len(positions))
	}
}

func TestSpatialGridWrapsSeam(t *testing.T) {
	bounds := Bounds{Width: 800, Height: 600}
	grid := NewSpatialGrid(bounds, 100)
	grid.Rebuild([]Vec2{{795, 300}, {5, 300}})

	got := grid.QueryRadiusInto(nil, Vec2{795, 300}, 20, 0)
	if len(got) != 1 || got[0].Index != 1 {
		t.Fatalf("expected neighbor across the seam, got %+v", got)
	}
	if got[0].DX < 9.9 || got[0].DX > 10.1 {
		t.Errorf("DX = %v, want ~10", got[0].DX)
	}
	if d := got[0].Dist(); d < 9.9 || d > 10.1 {
		t.Errorf("Dist = %v, want ~10", d)
	}
}

func BenchmarkSpatialGridQuery(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	bounds := Bounds{Width: 2400, Height: 1800}
	grid := NewSpatialGrid(bounds, 100)
	positions := make([]Vec2, 300)
	for i := range positions {
		positions[i] = Vec2{rng.Float32() * bounds.Width, rng.Float32() * bounds.Height}
	}
	grid.Rebuild(positions)

	var buf []Neighbor
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = grid.QueryRadiusInto(buf[:0], positions[i%len(positions)], 150, i%len(positions))
	}
}
