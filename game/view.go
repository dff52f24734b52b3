package game

import (
	"slices"

	"github.com/tomingtoming/Geneuron/components"
	"github.com/tomingtoming/Geneuron/config"
	"github.com/tomingtoming/Geneuron/systems"
)

// AgentView is a read-only copy of one agent's observable state.
type AgentView struct {
	Index    int
	ID       uint32
	Position systems.Vec2
	Velocity systems.Vec2
	Rotation float32
	Energy   float32
	Age      float32
	Fitness  float32
	Gender   components.Gender
	State    components.BehaviorState

	Lineage              int
	Children             int
	FoodEaten            float32
	ReproductionCooldown float32
	Radius               float32

	Color      components.Color
	StateColor components.Color
}

// Agents returns a snapshot of every agent in index order.
func (s *Simulation) Agents() []AgentView {
	views := make([]AgentView, len(s.agents))
	for i := range s.agents {
		views[i] = s.view(i)
	}
	return views
}

// Agent returns the view of the agent at index, if it exists.
func (s *Simulation) Agent(index int) (AgentView, bool) {
	if index < 0 || index >= len(s.agents) {
		return AgentView{}, false
	}
	return s.view(index), true
}

// Controller returns a copy of the last inputs and outputs of the agent's brain.
func (s *Simulation) Controller(index int) (inputs, outputs []float32, ok bool) {
	if index < 0 || index >= len(s.agents) {
		return nil, nil, false
	}
	a := s.agents[index]
	return slices.Clone(a.Inputs), slices.Clone(a.Outputs), true
}

func (s *Simulation) view(i int) AgentView {
	a := s.agents[i]
	return AgentView{
		Index:                i,
		ID:                   a.ID,
		Position:             a.Body.Position,
		Velocity:             a.Body.Velocity,
		Rotation:             a.Body.Rotation,
		Energy:               a.Body.Energy,
		Age:                  a.Age,
		Fitness:              a.Fitness,
		Gender:               a.Gender,
		State:                a.State,
		Lineage:              a.Lineage,
		Children:             a.Children,
		FoodEaten:            a.FoodEaten,
		ReproductionCooldown: a.ReproductionCooldown,
		Radius:               s.params.BodyRadius,
		Color:                a.Color(),
		StateColor:           a.StateColor(),
	}
}

// Food returns a copy of the food items in index order.
func (s *Simulation) Food() []systems.FoodItem {
	return slices.Clone(s.food.Items())
}

// FertilityGrid samples the food fertility map on a cols x rows grid, row-major.
func (s *Simulation) FertilityGrid(cols, rows int) []float32 {
	return s.food.FertilityGrid(cols, rows)
}

// Bounds returns the world size.
func (s *Simulation) Bounds() systems.Bounds { return s.bounds }

// ElapsedTime returns simulated seconds since creation.
func (s *Simulation) ElapsedTime() float64 { return s.elapsed }

// Generation returns the generation counter derived from elapsed time.
func (s *Simulation) Generation() int { return s.generation }

// Tick returns the number of ticks executed.
func (s *Simulation) Tick() int64 { return s.tick }

// Population returns the number of living agents.
func (s *Simulation) Population() int { return len(s.agents) }

// FoodCount returns the number of food items.
func (s *Simulation) FoodCount() int { return s.food.Len() }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Paused reports whether Update is suspended.
func (s *Simulation) Paused() bool { return s.paused }

// Pause suspends Update. Step still advances.
func (s *Simulation) Pause() { s.paused = true }

// Resume re-enables Update.
func (s *Simulation) Resume() { s.paused = false }

// TogglePause flips the paused state.
func (s *Simulation) TogglePause() { s.paused = !s.paused }
