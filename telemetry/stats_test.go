package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	// Unsorted on purpose
	values := []float64{0.5, 0.1, 1.0, 0.3, 0.9, 0.2, 0.7, 0.4, 0.8, 0.6}
	d := ComputeDistribution(values)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"mean", d.Mean, 0.55},
		{"std", d.Std, math.Sqrt(0.0825)},
		{"p10", d.P10, 0.19},
		{"p50", d.P50, 0.55},
		{"p90", d.P90, 0.91},
		{"max", d.Max, 1.0},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.001 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if values[0] != 0.5 {
		t.Error("ComputeDistribution should not reorder its input")
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	if d := ComputeDistribution(nil); d != (Distribution{}) {
		t.Errorf("empty sample = %+v, want zeros", d)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(10)

	if c.ShouldFlush(9.9) {
		t.Error("window should not flush before its duration")
	}
	if !c.ShouldFlush(10) {
		t.Error("window should flush at its duration")
	}

	c.RecordBirth()
	c.RecordBirth()
	c.RecordDeath(DeathStarved, 12)
	c.RecordDeath(DeathStarved, 20)
	c.RecordDeath(DeathCulled, 3)
	c.RecordFoodEaten(0.25)
	c.RecordFoodEaten(0.5)
	c.RecordRepopulated(5)

	sample := PopulationSample{
		Tick:       600,
		SimTime:    10,
		Generation: 0,
		Energies:   []float64{0.5, 1.0},
		Ages:       []float64{4, 8},
		Females:    1,
		Males:      1,
		States:     [NumBehaviorStates]int{1, 0, 0, 0, 1},
		MaxLineage: 2,
		FoodCount:  60,
		FoodEnergy: 18,
	}
	s := c.Flush(sample)

	if s.WindowStartTick != 0 || s.WindowEndTick != 600 {
		t.Errorf("window ticks = [%d, %d], want [0, 600]", s.WindowStartTick, s.WindowEndTick)
	}
	if s.Births != 2 || s.Starved != 2 || s.Culled != 1 || s.Repopulated != 5 {
		t.Errorf("events = births %d starved %d culled %d repop %d", s.Births, s.Starved, s.Culled, s.Repopulated)
	}
	if s.FoodEaten != 2 || math.Abs(s.FoodEnergy-0.75) > 1e-9 {
		t.Errorf("food = %d / %v, want 2 / 0.75", s.FoodEaten, s.FoodEnergy)
	}
	if s.LifespanMean != 16 {
		t.Errorf("lifespan mean = %v, want 16 (culled agents excluded)", s.LifespanMean)
	}
	if s.Population != 2 || s.EnergyMean != 0.75 || s.AgeMax != 8 {
		t.Errorf("population %d energy mean %v age max %v", s.Population, s.EnergyMean, s.AgeMax)
	}
	if s.Exploring != 1 || s.Resting != 1 || s.FoodCount != 60 {
		t.Errorf("states/food = %d %d %d", s.Exploring, s.Resting, s.FoodCount)
	}

	// Counters reset and the next window starts where this one ended
	if c.ShouldFlush(15) {
		t.Error("next window should start at the flush time")
	}
	next := c.Flush(PopulationSample{Tick: 1200, SimTime: 20})
	if next.WindowStartTick != 600 || next.Births != 0 || next.FoodEaten != 0 || next.LifespanMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
