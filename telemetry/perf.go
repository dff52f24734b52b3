package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of a simulation tick.
type Phase uint8

// Tick phases in execution order.
const (
	PhaseCooldowns Phase = iota
	PhaseSpatialGrid
	PhaseAgents
	PhaseConsumption
	PhaseReproduction
	PhaseCleanup
	PhasePopulation
	PhaseFood
	PhaseTelemetry
	NumPhases
)

var phaseNames = [NumPhases]string{
	"cooldowns",
	"spatial_grid",
	"agents",
	"consumption",
	"reproduction",
	"cleanup",
	"population",
	"food",
	"telemetry",
}

func (p Phase) String() string {
	if p < NumPhases {
		return phaseNames[p]
	}
	return "unknown"
}

const noPhase = NumPhases

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       [NumPhases]time.Duration
}

// PerfCollector tracks tick timing over a rolling window of samples.
// A nil collector ignores every call.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    PerfSample
	tickStart  time.Time
	phaseStart time.Time
	lastPhase  Phase

	// Frame timing (viewer only)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		lastPhase:  noPhase,
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = time.Now()
	p.current = PerfSample{}
	p.lastPhase = noPhase
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != noPhase {
		p.current.Phases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := time.Now()
	if p.lastPhase != noPhase {
		p.current.Phases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = noPhase
	}
	p.current.TickDuration = now.Sub(p.tickStart)

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for the viewer.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Samples int

	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Average duration and share of tick time per phase
	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p == nil {
		return PerfStats{}
	}

	stats := PerfStats{
		Samples:       p.sampleCount,
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		stats.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	var phaseSum [NumPhases]time.Duration
	for i := 0; i < p.sampleCount; i++ {
		s := &p.samples[i]
		total += s.TickDuration
		if i == 0 || s.TickDuration < stats.MinTickDuration {
			stats.MinTickDuration = s.TickDuration
		}
		if s.TickDuration > stats.MaxTickDuration {
			stats.MaxTickDuration = s.TickDuration
		}
		for ph, d := range s.Phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.sampleCount)
	stats.AvgTickDuration = total / n
	for ph := range phaseSum {
		stats.PhaseAvg[ph] = phaseSum[ph] / n
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[ph] = float64(stats.PhaseAvg[ph]) / float64(stats.AvgTickDuration) * 100
		}
	}
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	return stats
}

// LogStats logs performance statistics, omitting phases under 0.1% of the tick.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, Phase(ph).String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd       int64   `csv:"window_end"`
	AvgTickUS       int64   `csv:"avg_tick_us"`
	MinTickUS       int64   `csv:"min_tick_us"`
	MaxTickUS       int64   `csv:"max_tick_us"`
	TicksPerSec     float64 `csv:"ticks_per_sec"`
	FPS             float64 `csv:"fps"`
	CooldownsPct    float64 `csv:"cooldowns_pct"`
	SpatialGridPct  float64 `csv:"spatial_grid_pct"`
	AgentsPct       float64 `csv:"agents_pct"`
	ConsumptionPct  float64 `csv:"consumption_pct"`
	ReproductionPct float64 `csv:"reproduction_pct"`
	CleanupPct      float64 `csv:"cleanup_pct"`
	PopulationPct   float64 `csv:"population_pct"`
	FoodPct         float64 `csv:"food_pct"`
	TelemetryPct    float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:       windowEnd,
		AvgTickUS:       s.AvgTickDuration.Microseconds(),
		MinTickUS:       s.MinTickDuration.Microseconds(),
		MaxTickUS:       s.MaxTickDuration.Microseconds(),
		TicksPerSec:     s.TicksPerSecond,
		FPS:             s.FPS,
		CooldownsPct:    s.PhasePct[PhaseCooldowns],
		SpatialGridPct:  s.PhasePct[PhaseSpatialGrid],
		AgentsPct:       s.PhasePct[PhaseAgents],
		ConsumptionPct:  s.PhasePct[PhaseConsumption],
		ReproductionPct: s.PhasePct[PhaseReproduction],
		CleanupPct:      s.PhasePct[PhaseCleanup],
		PopulationPct:   s.PhasePct[PhasePopulation],
		FoodPct:         s.PhasePct[PhaseFood],
		TelemetryPct:    s.PhasePct[PhaseTelemetry],
	}
}
