// Package game runs the world: agents, food and the fixed per-tick order
// that resolves eating, mating and death as deferred batches.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/tomingtoming/Geneuron/agent"
	"github.com/tomingtoming/Geneuron/config"
	"github.com/tomingtoming/Geneuron/systems"
	"github.com/tomingtoming/Geneuron/telemetry"
)

// Options configures telemetry around a simulation.
type Options struct {
	LogStats       bool                        // emit a slog record per stats window
	StatsWindowSec float64                     // 0 = use config
	OutputDir      string                      // CSV output directory; empty disables
	StatsCallback  func(telemetry.WindowStats) // called once per flushed window
}

// TickEvents counts what happened during one tick.
type TickEvents struct {
	Births      int
	Starved     int
	Culled      int
	Repopulated int
	FoodEaten   int
	FoodEnergy  float32
	FoodSpawned int
}

// mating is a queued reproduction between two agent indices.
type mating struct {
	initiator, partner int
}

// Simulation owns the agents and the food field and advances them together.
// It is not safe for concurrent use.
type Simulation struct {
	cfg    *config.Config
	rng    *rand.Rand
	params *agent.Params
	bounds systems.Bounds

	agents []*agent.Agent
	food   *systems.FoodField
	grid   *systems.SpatialGrid

	// State
	tick       int64
	elapsed    float64
	generation int
	paused     bool
	nextID     uint32
	repopTimer float32

	// Per-tick scratch, reused across ticks
	summaries  []agent.Summary
	positions  []systems.Vec2
	neighbors  []systems.Neighbor
	nearAgents []agent.Summary
	nearFood   []systems.NearbyFood
	claimed    []bool
	eaten      []int
	paired     []bool
	dead       []bool
	matings    []mating
	births     []*agent.Agent
	events     TickEvents

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewSimulation creates a world populated with cfg.Population.Initial random
// agents and an initial food field. rng is the only source of randomness.
func NewSimulation(cfg *config.Config, rng *rand.Rand) *Simulation {
	bounds := systems.Bounds{Width: cfg.Derived.WorldW32, Height: cfg.Derived.WorldH32}

	s := &Simulation{
		cfg:        cfg,
		rng:        rng,
		params:     agent.NewParams(cfg),
		bounds:     bounds,
		agents:     make([]*agent.Agent, 0, cfg.Population.Max),
		food:       systems.NewFoodField(bounds, systems.NewFoodParams(cfg), rng),
		grid:       systems.NewSpatialGrid(bounds, float32(cfg.Physics.GridCellSize)),
		repopTimer: float32(cfg.Population.RepopulateInterval),
		collector:  telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfSamples),
	}

	s.spawnInitialPopulation()
	return s
}

// NewSimulationWithOptions is NewSimulation with telemetry output wired in.
func NewSimulationWithOptions(cfg *config.Config, rng *rand.Rand, opts Options) (*Simulation, error) {
	s := NewSimulation(cfg, rng)
	s.logStats = opts.LogStats
	s.statsCallback = opts.StatsCallback
	if opts.StatsWindowSec > 0 {
		s.collector = telemetry.NewCollector(opts.StatsWindowSec)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("telemetry output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("telemetry output: %w", err)
	}
	s.output = output

	return s, nil
}

// Close flushes and closes telemetry output.
func (s *Simulation) Close() error {
	return s.output.Close()
}

// Update advances the world by dt seconds unless paused.
// A non-positive dt is a no-op.
func (s *Simulation) Update(dt float32) TickEvents {
	if s.paused {
		return TickEvents{}
	}
	return s.Step(dt)
}

// Step advances exactly one tick, even while paused.
func (s *Simulation) Step(dt float32) TickEvents {
	if dt <= 0 || math.IsNaN(float64(dt)) {
		return TickEvents{}
	}
	s.events = TickEvents{}
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseCooldowns)
	s.updateCooldowns(dt)

	s.perf.StartPhase(telemetry.PhaseSpatialGrid)
	s.snapshot()

	s.perf.StartPhase(telemetry.PhaseAgents)
	s.updateAgents(dt)

	s.perf.StartPhase(telemetry.PhaseConsumption)
	s.updateConsumption()

	s.perf.StartPhase(telemetry.PhaseReproduction)
	s.updateReproduction()
	s.markDead()

	s.perf.StartPhase(telemetry.PhaseCleanup)
	s.resolveEvents()

	s.perf.StartPhase(telemetry.PhasePopulation)
	s.repopulate(dt)
	s.enforceCeiling()

	s.perf.StartPhase(telemetry.PhaseFood)
	s.events.FoodSpawned = s.food.Update(dt, s.rng)
	s.food.WrapPositions()

	s.elapsed += float64(dt)
	s.generation = int(s.elapsed / s.cfg.Simulation.GenerationWindow)
	s.tick++

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perf.EndTick()
	return s.events
}

// updateCooldowns decays every reproduction cooldown, floored at 0.
func (s *Simulation) updateCooldowns(dt float32) {
	for _, a := range s.agents {
		a.DecayCooldown(dt)
	}
}

// snapshot records every agent's summary and rebuilds the spatial index.
// Everything agents perceive this tick comes from this snapshot.
func (s *Simulation) snapshot() {
	n := len(s.agents)
	s.summaries = s.summaries[:0]
	s.positions = s.positions[:0]
	for i, a := range s.agents {
		s.summaries = append(s.summaries, a.Summary(i))
		s.positions = append(s.positions, a.Body.Position)
	}
	s.grid.Rebuild(s.positions)

	s.paired = resetFlags(s.paired, n)
	s.dead = resetFlags(s.dead, n)
	s.claimed = resetFlags(s.claimed, s.food.Len())
	s.eaten = s.eaten[:0]
	s.matings = s.matings[:0]
}

// updateAgents runs sense, decide and move for every agent against the snapshot.
func (s *Simulation) updateAgents(dt float32) {
	agentRadius := s.params.AgentRadius
	foodRadius := s.params.FoodRadius

	for i, a := range s.agents {
		pos := s.summaries[i].Position

		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], pos, agentRadius, i)
		s.nearAgents = s.nearAgents[:0]
		for _, n := range s.neighbors {
			s.nearAgents = append(s.nearAgents, s.summaries[n.Index])
		}
		s.nearFood = s.food.FindNearbyInto(s.nearFood[:0], pos, foodRadius)

		a.Step(dt, s.nearFood, s.nearAgents, s.bounds)
		a.ClampEnergy()
	}
}

// updateConsumption lets each agent eat the food within its eating radius.
// A food item goes to the lowest-index agent that reaches it; removal is deferred.
func (s *Simulation) updateConsumption() {
	eatRadius := s.params.EatRadius

	for _, a := range s.agents {
		s.nearFood = s.food.FindNearbyInto(s.nearFood[:0], a.Body.Position, eatRadius)
		for _, f := range s.nearFood {
			if s.claimed[f.Index] {
				continue
			}
			s.claimed[f.Index] = true
			s.eaten = append(s.eaten, f.Index)

			a.Eat(f.Item)
			s.events.FoodEaten++
			s.events.FoodEnergy += f.Item.Energy
			s.collector.RecordFoodEaten(float64(f.Item.Energy))
		}
		a.ClampEnergy()
	}
}

// updateReproduction queues at most one mating per agent. The initiator pays
// the cost now; the partner pays when the birth is materialized.
func (s *Simulation) updateReproduction() {
	radius := s.params.EligibilityRadius

	for i, a := range s.agents {
		if s.paired[i] || a.ReproductionCooldown > 0 || a.Body.Energy < s.params.ReproEnergy {
			continue
		}

		partner := -1
		var best float32
		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], a.Body.Position, radius, i)
		for _, n := range s.neighbors {
			if s.paired[n.Index] || !a.CanReproduceWith(s.summaries[n.Index], s.bounds) {
				continue
			}
			if partner < 0 || n.DistSq < best || (n.DistSq == best && n.Index < partner) {
				partner, best = n.Index, n.DistSq
			}
		}
		if partner < 0 {
			continue
		}

		s.paired[i], s.paired[partner] = true, true
		a.PayReproductionCost()
		s.matings = append(s.matings, mating{initiator: i, partner: partner})
	}
}

// markDead flags agents at or below the death threshold.
func (s *Simulation) markDead() {
	for i, a := range s.agents {
		s.dead[i] = a.Dead()
	}
}

// resolveEvents applies the tick's deferred batches: births are created,
// eaten food and dead agents are removed by descending index, and newborns
// are appended.
func (s *Simulation) resolveEvents() {
	s.births = s.births[:0]
	for _, m := range s.matings {
		initiator, partner := s.agents[m.initiator], s.agents[m.partner]
		child, err := agent.Offspring(initiator, partner, s.rng, s.nextID, s.bounds)
		if err != nil {
			slog.Warn("reproduction_failed", "tick", s.tick, "error", err)
			continue
		}
		s.nextID++
		partner.PayReproductionCost()
		s.dead[m.partner] = partner.Dead()

		s.births = append(s.births, child)
		s.events.Births++
		s.collector.RecordBirth()
	}

	s.food.RemoveBatch(s.eaten)
	s.removeDead()
	s.agents = append(s.agents, s.births...)
	clear(s.births)
}

// resetFlags returns flags resized to n and cleared.
func resetFlags(flags []bool, n int) []bool {
	if cap(flags) < n {
		return make([]bool, n)
	}
	flags = flags[:n]
	clear(flags)
	return flags
}
