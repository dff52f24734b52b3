// Package telemetry aggregates simulation events into time windows and writes run output.
package telemetry

// DeathCause says why an agent was removed.
type DeathCause uint8

const (
	DeathStarved DeathCause = iota // energy reached the death threshold
	DeathCulled                    // removed by the population ceiling
)

// NumBehaviorStates is the width of the behavior histogram.
const NumBehaviorStates = 5

// PopulationSample is the state of the world at the end of a window.
type PopulationSample struct {
	Tick       int64
	SimTime    float64
	Generation int

	Energies []float64
	Ages     []float64
	Females  int
	Males    int
	States   [NumBehaviorStates]int

	MaxLineage int
	FoodCount  int
	FoodEnergy float64
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int64
	windowStartTime float64

	// Event counters for current window
	births      int
	starved     int
	culled      int
	repopulated int
	foodEaten   int
	foodEnergy  float64
	lifespans   []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death event with the agent's age in seconds.
func (c *Collector) RecordDeath(cause DeathCause, ageSec float64) {
	switch cause {
	case DeathCulled:
		c.culled++
	default:
		c.starved++
		c.lifespans = append(c.lifespans, ageSec)
	}
}

// RecordFoodEaten records one consumed food item.
func (c *Collector) RecordFoodEaten(energy float64) {
	c.foodEaten++
	c.foodEnergy += energy
}

// RecordRepopulated records agents injected by the population floor.
func (c *Collector) RecordRepopulated(n int) {
	c.repopulated += n
}

// ShouldFlush returns true if enough simulated time has passed to flush the window.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(sample PopulationSample) WindowStats {
	energy := ComputeDistribution(sample.Energies)
	age := ComputeDistribution(sample.Ages)
	lifespan := ComputeDistribution(c.lifespans)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   sample.Tick,
		SimTimeSec:      sample.SimTime,
		Generation:      sample.Generation,

		Population: len(sample.Energies),
		Females:    sample.Females,
		Males:      sample.Males,
		MaxLineage: sample.MaxLineage,

		Births:      c.births,
		Starved:     c.starved,
		Culled:      c.culled,
		Repopulated: c.repopulated,
		FoodEaten:   c.foodEaten,
		FoodEnergy:  c.foodEnergy,

		LifespanMean: lifespan.Mean,
		LifespanP50:  lifespan.P50,

		EnergyMean: energy.Mean,
		EnergyStd:  energy.Std,
		EnergyP10:  energy.P10,
		EnergyP50:  energy.P50,
		EnergyP90:  energy.P90,

		AgeMean: age.Mean,
		AgeP90:  age.P90,
		AgeMax:  age.Max,

		Exploring:   sample.States[0],
		Feeding:     sample.States[1],
		Socializing: sample.States[2],
		Reproducing: sample.States[3],
		Resting:     sample.States[4],

		FoodCount:      sample.FoodCount,
		FoodFieldTotal: sample.FoodEnergy,
	}

	// Reset for next window
	c.windowStartTick = sample.Tick
	c.windowStartTime = sample.SimTime
	c.births = 0
	c.starved = 0
	c.culled = 0
	c.repopulated = 0
	c.foodEaten = 0
	c.foodEnergy = 0
	c.lifespans = c.lifespans[:0]

	return stats
}

// WindowDuration returns the window length in simulated seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
