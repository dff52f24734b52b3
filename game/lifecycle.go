package game

import (
	"log/slog"
	"slices"

	"github.com/tomingtoming/Geneuron/agent"
	"github.com/tomingtoming/Geneuron/components"
	"github.com/tomingtoming/Geneuron/systems"
	"github.com/tomingtoming/Geneuron/telemetry"
)

// spawnInitialPopulation creates the starting agents uniformly over the world.
func (s *Simulation) spawnInitialPopulation() {
	for i := 0; i < s.cfg.Population.Initial && len(s.agents) < s.cfg.Population.Max; i++ {
		s.spawnRandom(s.randomPosition())
	}
}

// spawnRandom appends a fresh random agent at pos.
func (s *Simulation) spawnRandom(pos systems.Vec2) *agent.Agent {
	a := agent.New(s.rng, s.nextID, s.bounds.Wrap(pos), s.params)
	s.nextID++
	s.agents = append(s.agents, a)
	return a
}

// AddAgent appends a fresh random-brained agent of the given gender at pos
// and returns its index. The index is valid until the next tick.
func (s *Simulation) AddAgent(pos systems.Vec2, gender components.Gender) int {
	a := s.spawnRandom(pos)
	a.Gender = gender
	return len(s.agents) - 1
}

// SpawnFood places a food item at pos. It fails when the field is full.
func (s *Simulation) SpawnFood(pos systems.Vec2, energy float32) (int, bool) {
	return s.food.Spawn(pos, energy)
}

func (s *Simulation) randomPosition() systems.Vec2 {
	return systems.Vec2{
		X: s.rng.Float32() * s.bounds.Width,
		Y: s.rng.Float32() * s.bounds.Height,
	}
}

// removeDead deletes flagged agents in descending index order.
func (s *Simulation) removeDead() {
	for i := len(s.agents) - 1; i >= 0; i-- {
		if !s.dead[i] {
			continue
		}
		s.collector.RecordDeath(telemetry.DeathStarved, float64(s.agents[i].Age))
		s.events.Starved++
		s.agents = slices.Delete(s.agents, i, i+1)
	}
}

// repopulate injects a batch of random agents while the population is below
// its floor. Injections are at least RepopulateInterval seconds apart; the
// timer fills on every tick and resets only when agents are spawned.
// Newcomers appear near a random survivor, or anywhere if none are left.
func (s *Simulation) repopulate(dt float32) {
	pop := s.cfg.Population
	interval := float32(pop.RepopulateInterval)
	if s.repopTimer < interval {
		s.repopTimer += dt
	}

	deficit := pop.Min - len(s.agents)
	if deficit <= 0 || s.repopTimer < interval {
		return
	}
	n := min(deficit, pop.RepopulateBatch)
	if n <= 0 {
		return
	}
	s.repopTimer = 0

	survivors := len(s.agents)
	jitter := float32(pop.RepopulateJitter)
	for i := 0; i < n; i++ {
		pos := s.randomPosition()
		if survivors > 0 {
			anchor := s.agents[s.rng.Intn(survivors)].Body.Position
			pos = anchor.Add(systems.Vec2{
				X: (s.rng.Float32()*2 - 1) * jitter,
				Y: (s.rng.Float32()*2 - 1) * jitter,
			})
		}
		s.spawnRandom(pos)
	}

	s.events.Repopulated += n
	s.collector.RecordRepopulated(n)
	slog.Info("population_repopulated",
		"tick", s.tick,
		"count", n,
		"survivors", survivors,
		"population", len(s.agents),
	)
}

// enforceCeiling drops the newest agents beyond the population maximum.
func (s *Simulation) enforceCeiling() {
	limit := s.cfg.Population.Max
	if len(s.agents) <= limit {
		return
	}
	for _, a := range s.agents[limit:] {
		s.collector.RecordDeath(telemetry.DeathCulled, float64(a.Age))
	}
	culled := len(s.agents) - limit
	s.events.Culled += culled
	clear(s.agents[limit:])
	s.agents = s.agents[:limit]

	slog.Debug("population_culled", "tick", s.tick, "count", culled)
}
