package systems

import (
	"math/rand"
	"testing"

	"github.com/tomingtoming/Geneuron/config"
)

func testFoodParams() FoodParams {
	return NewFoodParams(config.Default())
}

func TestNewFoodFieldInitial(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bounds := Bounds{Width: 800, Height: 600}
	p := testFoodParams()

	f := NewFoodField(bounds, p, rng)
	if f.Len() != p.Initial {
		t.Fatalf("Len = %d, want %d", f.Len(), p.Initial)
	}
	for i, item := range f.Items() {
		if item.Position.X < 0 || item.Position.X >= bounds.Width || item.Position.Y < 0 || item.Position.Y >= bounds.Height {
			t.Errorf("item %d at %v outside bounds", i, item.Position)
		}
		if item.Energy < p.MinEnergy || item.Energy > p.MaxEnergy {
			t.Errorf("item %d energy %v outside [%v, %v]", i, item.Energy, p.MinEnergy, p.MaxEnergy)
		}
		if item.Size <= 0 {
			t.Errorf("item %d has no size", i)
		}
	}
}

func TestFoodFieldRefillsToMin(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testFoodParams()
	p.Initial = 0
	p.ClusterChance = 0

	f := NewFoodField(Bounds{Width: 800, Height: 600}, p, rng)
	if f.Len() != 0 {
		t.Fatalf("Len = %d, want 0", f.Len())
	}

	spawned := f.Update(1.0/60, rng)
	if f.Len() != p.Min || spawned != p.Min {
		t.Errorf("after update Len = %d (spawned %d), want %d", f.Len(), spawned, p.Min)
	}
}

func TestFoodFieldNeverExceedsMax(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testFoodParams()
	p.ClusterChance = 1
	bounds := Bounds{Width: 800, Height: 600}

	f := NewFoodField(bounds, p, rng)
	for i := 0; i < 2000; i++ {
		f.Update(1.0/60, rng)
		if f.Len() > p.Max {
			t.Fatalf("tick %d: Len = %d exceeds max %d", i, f.Len(), p.Max)
		}
		if f.Len() < p.Min {
			t.Fatalf("tick %d: Len = %d below min %d", i, f.Len(), p.Min)
		}
	}
	if f.Len() != p.Max {
		t.Errorf("with certain clustering Len = %d, want to reach max %d", f.Len(), p.Max)
	}
	for i, item := range f.Items() {
		if item.Position.X < 0 || item.Position.X >= bounds.Width || item.Position.Y < 0 || item.Position.Y >= bounds.Height {
			t.Fatalf("item %d at %v outside bounds", i, item.Position)
		}
	}

	if _, ok := f.Spawn(Vec2{1, 1}, 0.3); ok {
		t.Error("Spawn into a full field should fail")
	}
}

func TestFoodFieldUpdateZeroDT(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testFoodParams()
	p.Initial = 0

	f := NewFoodField(Bounds{Width: 800, Height: 600}, p, rng)
	if n := f.Update(0, rng); n != 0 || f.Len() != 0 {
		t.Errorf("zero dt spawned %d items", n)
	}
}

func TestFindNearbyToroidal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testFoodParams()
	p.Initial = 0
	bounds := Bounds{Width: 800, Height: 600}

	f := NewFoodField(bounds, p, rng)
	f.Spawn(Vec2{5, 300}, 0.3)
	f.Spawn(Vec2{400, 300}, 0.3)
	f.Spawn(Vec2{795, 595}, 0.3)

	got := f.FindNearby(Vec2{790, 300}, 20)
	if len(got) != 1 || got[0].Index != 0 {
		t.Fatalf("FindNearby across seam = %+v, want item 0", got)
	}
	if got[0].Distance < 14.9 || got[0].Distance > 15.1 {
		t.Errorf("distance = %v, want 15", got[0].Distance)
	}

	if got := f.FindNearby(Vec2{5, 5}, 20); len(got) != 1 || got[0].Index != 2 {
		t.Errorf("FindNearby across corner = %+v, want item 2", got)
	}
}

func TestRemoveBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testFoodParams()
	p.Initial = 0

	f := NewFoodField(Bounds{Width: 800, Height: 600}, p, rng)
	for i := 0; i < 6; i++ {
		f.Spawn(Vec2{float32(i * 10), 0}, float32(i)/10)
	}

	removed := f.RemoveBatch([]int{1, 4, 1, 99, -1, 3})
	if removed != 3 {
		t.Errorf("removed %d, want 3", removed)
	}
	if f.Len() != 3 {
		t.Fatalf("Len = %d, want 3", f.Len())
	}

	// Survivors keep their relative order
	want := []float32{0, 20, 50}
	for i, item := range f.Items() {
		if item.Position.X != want[i] {
			t.Errorf("item %d at x=%v, want %v", i, item.Position.X, want[i])
		}
	}

	if f.Remove(10) {
		t.Error("Remove out of range should report false")
	}
}

func TestFertilityRangeAndSeams(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testFoodParams()
	p.Initial = 0
	bounds := Bounds{Width: 800, Height: 600}
	f := NewFoodField(bounds, p, rng)

	for i := 0; i < 500; i++ {
		v := f.Fertility(Vec2{rng.Float32() * bounds.Width, rng.Float32() * bounds.Height})
		if v < 0 || v > 1 {
			t.Fatalf("fertility %v outside [0,1]", v)
		}
	}

	// The map tiles: both sides of the seam agree
	left := f.Fertility(Vec2{0, 123})
	right := f.Fertility(Vec2{bounds.Width - 0.01, 123})
	if d := left - right; d > 0.01 || d < -0.01 {
		t.Errorf("fertility seam mismatch: %v vs %v", left, right)
	}
}

func TestFertilityBiasPrefersFertileGround(t *testing.T) {
	bounds := Bounds{Width: 800, Height: 600}
	p := testFoodParams()
	p.Initial = 400
	p.Max = 400

	uniform := NewFoodField(bounds, p, rand.New(rand.NewSource(7)))
	p.FertilityBias = 1
	biased := NewFoodField(bounds, p, rand.New(rand.NewSource(7)))

	mean := func(f *FoodField) float32 {
		var sum float32
		for _, item := range f.Items() {
			sum += f.Fertility(item.Position)
		}
		return sum / float32(f.Len())
	}

	if mean(biased) <= mean(uniform) {
		t.Errorf("biased mean fertility %v should exceed uniform %v", mean(biased), mean(uniform))
	}
}

func TestTotalEnergy(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testFoodParams()
	p.Initial = 0
	f := NewFoodField(Bounds{Width: 800, Height: 600}, p, rng)
	f.Spawn(Vec2{1, 1}, 0.25)
	f.Spawn(Vec2{2, 2}, 0.5)

	if got := f.TotalEnergy(); got != 0.75 {
		t.Errorf("TotalEnergy = %v, want 0.75", got)
	}
}

func TestFertilityGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bounds := Bounds{Width: 800, Height: 600}
	f := NewFoodField(bounds, testFoodParams(), rng)

	grid := f.FertilityGrid(8, 6)
	if len(grid) != 48 {
		t.Fatalf("len = %d, want 48", len(grid))
	}
	// Cell (2, 1) is centered at (250, 150)
	if got, want := grid[1*8+2], f.Fertility(Vec2{X: 250, Y: 150}); got != want {
		t.Errorf("grid[1][2] = %v, want %v", got, want)
	}
	if f.FertilityGrid(0, 6) != nil {
		t.Error("empty grid should be nil")
	}
}
