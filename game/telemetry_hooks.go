package game

import (
	"log/slog"

	"github.com/tomingtoming/Geneuron/components"
	"github.com/tomingtoming/Geneuron/telemetry"
)

// flushTelemetry closes the stats window once enough simulated time has passed.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.elapsed) {
		return
	}

	stats := s.collector.Flush(s.samplePopulation())
	perfStats := s.perf.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.output != nil {
		if err := s.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// samplePopulation collects the end-of-window population state.
func (s *Simulation) samplePopulation() telemetry.PopulationSample {
	sample := telemetry.PopulationSample{
		Tick:       s.tick,
		SimTime:    s.elapsed,
		Generation: s.generation,
		Energies:   make([]float64, 0, len(s.agents)),
		Ages:       make([]float64, 0, len(s.agents)),
		FoodCount:  s.food.Len(),
		FoodEnergy: float64(s.food.TotalEnergy()),
	}

	for _, a := range s.agents {
		sample.Energies = append(sample.Energies, float64(a.Body.Energy))
		sample.Ages = append(sample.Ages, float64(a.Age))
		if a.Gender == components.Female {
			sample.Females++
		} else {
			sample.Males++
		}
		if int(a.State) < telemetry.NumBehaviorStates {
			sample.States[a.State]++
		}
		sample.MaxLineage = max(sample.MaxLineage, a.Lineage)
	}

	return sample
}

// PerfStats returns tick timing over the recent window.
func (s *Simulation) PerfStats() telemetry.PerfStats {
	return s.perf.Stats()
}

// RecordFrame feeds viewer frame timing into the perf collector.
func (s *Simulation) RecordFrame() {
	s.perf.RecordFrame()
}
