package main

import (
	"github.com/tomingtoming/Geneuron/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Food
			{Name: "food_max_energy", Path: "food.max_energy", Min: 0.2, Max: 0.8, Default: 0.4},
			{Name: "food_spawn_interval", Path: "food.spawn_interval", Min: 0.02, Max: 0.5, Default: 0.1},
			{Name: "food_cluster_chance", Path: "food.cluster_chance", Min: 0.0, Max: 1.0, Default: 0.3},
			{Name: "food_fertility_bias", Path: "food.fertility_bias", Min: 0.0, Max: 1.0, Default: 0.0},
			// Reproduction
			{Name: "repro_energy_threshold", Path: "reproduction.energy_threshold", Min: 0.4, Max: 1.2, Default: 0.7},
			{Name: "repro_cooldown", Path: "reproduction.cooldown", Min: 3.0, Max: 30.0, Default: 15.0},
			{Name: "repro_energy_cost", Path: "reproduction.energy_cost", Min: 0.05, Max: 0.5, Default: 0.2},
			{Name: "repro_radius", Path: "reproduction.eligibility_radius", Min: 15.0, Max: 80.0, Default: 30.0},
			// Mutation
			{Name: "mutation_rate", Path: "reproduction.mutation_rate", Min: 0.01, Max: 0.5, Default: 0.1},
			{Name: "mutation_power", Path: "neural.mutation_power", Min: 0.05, Max: 0.5, Default: 0.2},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct and recomputes
// derived values. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	i := 0

	// Food; min_energy follows max_energy down so the range stays valid
	cfg.Food.MaxEnergy = clamped[i]
	i++
	cfg.Food.MinEnergy = min(cfg.Food.MinEnergy, cfg.Food.MaxEnergy)
	cfg.Food.SpawnInterval = clamped[i]
	i++
	cfg.Food.ClusterChance = clamped[i]
	i++
	cfg.Food.FertilityBias = clamped[i]
	i++

	// Reproduction
	cfg.Reproduction.EnergyThreshold = clamped[i]
	i++
	cfg.Reproduction.Cooldown = clamped[i]
	i++
	cfg.Reproduction.EnergyCost = clamped[i]
	i++
	cfg.Reproduction.EligibilityRadius = clamped[i]
	i++

	// Mutation
	cfg.Reproduction.MutationRate = clamped[i]
	i++
	cfg.Neural.MutationPower = clamped[i]

	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		// Food
		cfg.Food.MaxEnergy,
		cfg.Food.SpawnInterval,
		cfg.Food.ClusterChance,
		cfg.Food.FertilityBias,
		// Reproduction
		cfg.Reproduction.EnergyThreshold,
		cfg.Reproduction.Cooldown,
		cfg.Reproduction.EnergyCost,
		cfg.Reproduction.EligibilityRadius,
		// Mutation
		cfg.Reproduction.MutationRate,
		cfg.Neural.MutationPower,
	}
}
