package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Generation      int     `csv:"generation"`

	// Population at window end
	Population int `csv:"population"`
	Females    int `csv:"females"`
	Males      int `csv:"males"`
	MaxLineage int `csv:"max_lineage"`

	// Events during window
	Births      int     `csv:"births"`
	Starved     int     `csv:"starved"`
	Culled      int     `csv:"culled"`
	Repopulated int     `csv:"repopulated"`
	FoodEaten   int     `csv:"food_eaten"`
	FoodEnergy  float64 `csv:"food_energy_eaten"`

	// Lifespan of agents that starved during the window
	LifespanMean float64 `csv:"lifespan_mean"`
	LifespanP50  float64 `csv:"lifespan_p50"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Age distribution (sampled at window end)
	AgeMean float64 `csv:"age_mean"`
	AgeP90  float64 `csv:"age_p90"`
	AgeMax  float64 `csv:"age_max"`

	// Behavior state histogram
	Exploring   int `csv:"exploring"`
	Feeding     int `csv:"feeding"`
	Socializing int `csv:"socializing"`
	Reproducing int `csv:"reproducing"`
	Resting     int `csv:"resting"`

	// Food field
	FoodCount      int     `csv:"food_count"`
	FoodFieldTotal float64 `csv:"food_field_energy"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeDistribution calculates mean, population std-dev, percentiles and max.
// An empty sample yields all zeros.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	// Sort for percentiles
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  floats.Max(sorted),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("generation", s.Generation),
		slog.Int("population", s.Population),
		slog.Int("females", s.Females),
		slog.Int("males", s.Males),
		slog.Int("max_lineage", s.MaxLineage),
		slog.Int("births", s.Births),
		slog.Int("starved", s.Starved),
		slog.Int("culled", s.Culled),
		slog.Int("repopulated", s.Repopulated),
		slog.Int("food_eaten", s.FoodEaten),
		slog.Float64("food_energy_eaten", s.FoodEnergy),
		slog.Float64("lifespan_mean", s.LifespanMean),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_max", s.AgeMax),
		slog.Int("food_count", s.FoodCount),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"generation", s.Generation,
		"population", s.Population,
		"births", s.Births,
		"starved", s.Starved,
		"culled", s.Culled,
		"repopulated", s.Repopulated,
		"food_eaten", s.FoodEaten,
		"energy_p50", s.EnergyP50,
		"age_max", s.AgeMax,
		"max_lineage", s.MaxLineage,
		"food_count", s.FoodCount,
		"states", []int{s.Exploring, s.Feeding, s.Socializing, s.Reproducing, s.Resting},
	)
}
