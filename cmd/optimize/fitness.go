package main

import (
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/tomingtoming/Geneuron/config"
	"github.com/tomingtoming/Geneuron/game"
	"github.com/tomingtoming/Geneuron/telemetry"
)

// invalidFitness is returned for parameter sets the config rejects.
const invalidFitness = 1.0

// Fitness component weights.
const (
	weightSustain     = 0.45
	weightSelfSupport = 0.35
	weightStability   = 0.20

	warmupWindows = 2 // skip first N windows while the founders settle
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality Quality // from most recent Evaluate call
}

// Quality breaks a run's score into its components, each in [0, 1].
type Quality struct {
	Sustain     float64 // mean population as a share of the ceiling
	SelfSupport float64 // share of new agents that were born rather than injected
	Stability   float64 // exp(-cv²) of the population series
}

// Score combines the components into a single value in [0, 1].
func (q Quality) Score() float64 {
	return weightSustain*q.Sustain + weightSelfSupport*q.SelfSupport + weightStability*q.Stability
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
	}
}

// LastQuality returns the seed-averaged quality from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() Quality {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated quality score averaged over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Validate(); err != nil {
		slog.Warn("rejected parameters", "error", err)
		return invalidFitness
	}

	// Each seed gets its own simulation, RNG and config copy
	results := make([]Quality, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = computeQuality(fe.runSimulation(cfg.Clone(), s), cfg.Population.Max)
		}(i, seed)
	}
	wg.Wait()

	var avg Quality
	for _, q := range results {
		avg.Sustain += q.Sustain
		avg.SelfSupport += q.SelfSupport
		avg.Stability += q.Stability
	}
	n := float64(len(results))
	avg.Sustain /= n
	avg.SelfSupport /= n
	avg.Stability /= n

	fe.mu.Lock()
	fe.lastQuality = avg
	fe.mu.Unlock()

	return -avg.Score()
}

// runSimulation executes a single headless run and returns its window stats.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) []telemetry.WindowStats {
	var windows []telemetry.WindowStats

	sim, err := game.NewSimulationWithOptions(cfg, rand.New(rand.NewSource(seed)), game.Options{
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		slog.Error("creating simulation", "seed", seed, "error", err)
		return nil
	}
	defer sim.Close()

	dt := cfg.Derived.DT32
	for sim.Tick() < fe.maxTicks {
		sim.Update(dt)
	}
	return windows
}

// computeQuality scores the window series of one run.
func computeQuality(windows []telemetry.WindowStats, maxPop int) Quality {
	if len(windows) <= warmupWindows || maxPop <= 0 {
		return Quality{}
	}
	valid := windows[warmupWindows:]

	pops := make([]float64, len(valid))
	var births, injected int
	for i, w := range valid {
		pops[i] = float64(w.Population)
		births += w.Births
		injected += w.Repopulated
	}

	mean, std := stat.MeanStdDev(pops, nil)

	var q Quality
	q.Sustain = clamp01(mean / float64(maxPop))
	if births+injected > 0 {
		q.SelfSupport = float64(births) / float64(births+injected)
	}
	if mean > 0 && len(pops) >= 2 {
		cv := std / mean
		q.Stability = math.Exp(-cv * cv)
	}
	return q
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
