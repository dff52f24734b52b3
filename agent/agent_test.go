package agent

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomingtoming/Geneuron/components"
	"github.com/tomingtoming/Geneuron/config"
	"github.com/tomingtoming/Geneuron/neural"
	"github.com/tomingtoming/Geneuron/systems"
)

var testBounds = systems.Bounds{Width: 800, Height: 600}

func testParams() *Params {
	return NewParams(config.Default())
}

// fixedBrain is a controller with constant outputs.
type fixedBrain struct {
	out []float32
}

func (b *fixedBrain) Process([]float32) []float32 {
	return append([]float32(nil), b.out...)
}
func (b *fixedBrain) Mutate(*rand.Rand, float64) int { return 0 }
func (b *fixedBrain) Crossover(*rand.Rand, neural.Controller) (neural.Controller, error) {
	return b.Clone(), nil
}
func (b *fixedBrain) Genome() []float32          { return append([]float32(nil), b.out...) }
func (b *fixedBrain) ApplyGenome([]float32) error { return nil }
func (b *fixedBrain) GenomeLen() int              { return len(b.out) }
func (b *fixedBrain) InputSize() int              { return NumInputs }
func (b *fixedBrain) OutputSize() int             { return len(b.out) }
func (b *fixedBrain) Clone() neural.Controller    { return &fixedBrain{out: append([]float32(nil), b.out...)} }

func newTestAgent(rng *rand.Rand, id uint32, pos systems.Vec2, gender components.Gender, p *Params) *Agent {
	a := New(rng, id, pos, p)
	a.Gender = gender
	return a
}

func TestNewAgent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	a := New(rng, 7, systems.Vec2{X: 100, Y: 200}, p)

	if a.ID != 7 {
		t.Errorf("ID = %d, want 7", a.ID)
	}
	if a.Body.Energy != p.InitialEnergy {
		t.Errorf("energy = %v, want %v", a.Body.Energy, p.InitialEnergy)
	}
	if a.Body.Rotation < 0 || a.Body.Rotation >= 2*math.Pi {
		t.Errorf("rotation %v not in [0, 2Pi)", a.Body.Rotation)
	}
	if len(a.Genome) != a.Brain.GenomeLen() {
		t.Errorf("genome mirror has %d genes, brain has %d", len(a.Genome), a.Brain.GenomeLen())
	}
	if a.Brain.InputSize() != NumInputs || a.Brain.OutputSize() != NumOutputs {
		t.Errorf("brain shape %d->%d, want %d->%d", a.Brain.InputSize(), a.Brain.OutputSize(), NumInputs, NumOutputs)
	}
	if a.State != components.Exploring {
		t.Errorf("initial state = %v, want exploring", a.State)
	}
}

func TestCanReproduceWith(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()

	near := systems.Vec2{X: 110, Y: 100}
	far := systems.Vec2{X: 100 + p.EligibilityRadius + 5, Y: 100}

	tests := []struct {
		name          string
		selfCooldown  float32
		selfEnergy    float32
		otherGender   components.Gender
		otherCooldown float32
		otherEnergy   float32
		otherPos      systems.Vec2
		want          bool
	}{
		{"all conditions hold", 0, 1, components.Male, 0, 1, near, true},
		{"same gender", 0, 1, components.Female, 0, 1, near, false},
		{"own cooldown", 3, 1, components.Male, 0, 1, near, false},
		{"partner cooldown", 0, 1, components.Male, 0.1, 1, near, false},
		{"own energy low", 0, 0.69, components.Male, 0, 1, near, false},
		{"partner energy low", 0, 1, components.Male, 0, 0.5, near, false},
		{"too far", 0, 1, components.Male, 0, 1, far, false},
		{"exact threshold energy", 0, 0.7, components.Male, 0, 0.7, near, true},
		{"wrapped but too far", 0, 1, components.Male, 0, 1, systems.Vec2{X: 795, Y: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAgent(rng, 1, systems.Vec2{X: 100, Y: 100}, components.Female, p)
			a.ReproductionCooldown = tt.selfCooldown
			a.Body.Energy = tt.selfEnergy

			other := Summary{
				Index: 1, ID: 2, Position: tt.otherPos, Gender: tt.otherGender,
				Cooldown: tt.otherCooldown, Energy: tt.otherEnergy,
			}
			if got := a.CanReproduceWith(other, testBounds); got != tt.want {
				t.Errorf("CanReproduceWith = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanReproduceAcrossSeam(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	a := newTestAgent(rng, 1, systems.Vec2{X: 5, Y: 300}, components.Female, p)
	other := Summary{ID: 2, Position: systems.Vec2{X: 795, Y: 300}, Gender: components.Male, Energy: 1}

	if !a.CanReproduceWith(other, testBounds) {
		t.Error("agents 10 units apart across the seam should be eligible")
	}
}

func TestSenseSentinels(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	a := newTestAgent(rng, 1, systems.Vec2{X: 400, Y: 300}, components.Female, p)

	in := a.Sense(nil, nil, testBounds)
	if len(in) != NumInputs {
		t.Fatalf("got %d inputs, want %d", len(in), NumInputs)
	}
	for i := 3; i < NumInputs; i += 2 {
		if in[i] != 1 || in[i+1] != 0 {
			t.Errorf("inputs[%d:%d] = (%v, %v), want sentinel (1, 0)", i, i+2, in[i], in[i+1])
		}
	}
	if in[0] != a.Body.Energy {
		t.Errorf("energy input = %v, want %v", in[0], a.Body.Energy)
	}
	if in[2] < 0 || in[2] >= 1 {
		t.Errorf("rotation input %v not in [0, 1)", in[2])
	}
}

func TestSenseTargets(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	a := newTestAgent(rng, 1, systems.Vec2{X: 400, Y: 300}, components.Female, p)
	a.Body.Rotation = 0

	food := []systems.NearbyFood{
		{Index: 0, Item: systems.FoodItem{Position: systems.Vec2{X: 500, Y: 300}}, Distance: 100},
		{Index: 1, Item: systems.FoodItem{Position: systems.Vec2{X: 400, Y: 350}}, Distance: 50},
	}
	agents := []Summary{
		{Index: 0, ID: 1, Position: a.Body.Position, Gender: components.Female, Energy: 1}, // self
		{Index: 1, ID: 2, Position: systems.Vec2{X: 430, Y: 300}, Gender: components.Male, Energy: 1},
		{Index: 2, ID: 3, Position: systems.Vec2{X: 420, Y: 300}, Gender: components.Male, Energy: 0.2}, // not eligible
		{Index: 3, ID: 4, Position: systems.Vec2{X: 370, Y: 300}, Gender: components.Female, Energy: 1},
	}

	in := a.Sense(food, agents, testBounds)

	wantFood := float32(50) / p.FoodRadius
	if math.Abs(float64(in[3]-wantFood)) > 1e-5 {
		t.Errorf("food distance = %v, want %v", in[3], wantFood)
	}
	if math.Abs(float64(in[4]-0.5)) > 1e-5 {
		t.Errorf("food angle = %v, want 0.5 (quarter turn)", in[4])
	}

	wantMate := float32(30) / p.AgentRadius
	if math.Abs(float64(in[5]-wantMate)) > 1e-5 {
		t.Errorf("mate distance = %v, want %v (nearest eligible)", in[5], wantMate)
	}
	if a.Perception.MateIndex != 1 {
		t.Errorf("mate index = %d, want 1", a.Perception.MateIndex)
	}

	wantKin := float32(30) / p.AgentRadius
	if math.Abs(float64(in[7]-wantKin)) > 1e-5 {
		t.Errorf("kin distance = %v, want %v", in[7], wantKin)
	}
	if math.Abs(math.Abs(float64(in[8]))-1) > 1e-5 {
		t.Errorf("kin angle = %v, want +-1 (behind)", in[8])
	}
	if a.Perception.KinCount != 1 || a.Perception.FoodCount != 2 {
		t.Errorf("counts: kin %d food %d, want 1 and 2", a.Perception.KinCount, a.Perception.FoodCount)
	}
}

func TestSenseStateReweighting(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	a := newTestAgent(rng, 1, systems.Vec2{X: 400, Y: 300}, components.Female, p)
	food := []systems.NearbyFood{{Item: systems.FoodItem{Position: systems.Vec2{X: 500, Y: 300}}, Distance: 100}}

	a.State = components.Exploring
	exploring := a.Sense(food, nil, testBounds)[3]
	a.State = components.Feeding
	feeding := a.Sense(food, nil, testBounds)[3]

	if math.Abs(float64(feeding-exploring/2)) > 1e-6 {
		t.Errorf("feeding food distance = %v, want half of %v", feeding, exploring)
	}
}

func TestChooseBehavior(t *testing.T) {
	p := testParams()
	crowd := p.CrowdSize

	tests := []struct {
		name   string
		energy float32
		per    Perception
		want   components.BehaviorState
	}{
		{"starving beats mate", 0.2, Perception{HasMate: true, HasFood: true, KinCount: crowd}, components.Feeding},
		{"well fed with mate", 0.8, Perception{HasMate: true, HasFood: true, KinCount: crowd}, components.Reproducing},
		{"tired in a group", 0.4, Perception{HasFood: true, KinCount: crowd}, components.Resting},
		{"tired alone sees food", 0.4, Perception{HasFood: true, KinCount: crowd - 1}, components.Feeding},
		{"food nearby", 0.6, Perception{HasFood: true, KinCount: crowd}, components.Feeding},
		{"group without food", 0.6, Perception{KinCount: crowd}, components.Socializing},
		{"mate but not enough energy", 0.6, Perception{HasMate: true}, components.Exploring},
		{"nothing around", 0.9, Perception{}, components.Exploring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseBehavior(tt.energy, tt.per, p); got != tt.want {
				t.Errorf("ChooseBehavior = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateBehaviorTimer(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	a := newTestAgent(rng, 1, systems.Vec2{X: 400, Y: 300}, components.Female, p)
	a.Body.Energy = 0.1

	// New agents evaluate on their first update
	a.UpdateBehavior(0.01)
	if a.State != components.Feeding {
		t.Fatalf("state = %v, want feeding", a.State)
	}

	// Conditions change but the timer has not elapsed
	a.Body.Energy = 0.9
	a.UpdateBehavior(p.EvalInterval / 2)
	if a.State != components.Feeding {
		t.Errorf("state changed before interval: %v", a.State)
	}

	a.UpdateBehavior(p.EvalInterval / 2)
	if a.State != components.Exploring {
		t.Errorf("state = %v after interval, want exploring", a.State)
	}
}

func TestDecideScaling(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	brain := &fixedBrain{out: []float32{1, 0.5}}
	a := NewWithBrain(rng, 1, brain, systems.Vec2{X: 400, Y: 300}, components.Male, p)
	a.Body.Rotation = 0

	speedFor := func(state components.BehaviorState, energy float32) (float32, float32) {
		a.State = state
		a.Body.Energy = energy
		force, rot := a.Decide()
		return force.Len(), rot
	}

	explore, turn := speedFor(components.Exploring, 1)
	if math.Abs(float64(explore-p.Physics.MaxSpeed)) > 1e-3 {
		t.Errorf("exploring speed = %v, want %v", explore, p.Physics.MaxSpeed)
	}
	if math.Abs(float64(turn-0.5*p.Physics.MaxTurnRate)) > 1e-5 {
		t.Errorf("turn = %v, want %v", turn, 0.5*p.Physics.MaxTurnRate)
	}

	resting, _ := speedFor(components.Resting, 1)
	reproducing, _ := speedFor(components.Reproducing, 1)
	if !(resting < explore && explore < reproducing) {
		t.Errorf("state speeds out of order: resting %v exploring %v reproducing %v", resting, explore, reproducing)
	}

	critical, _ := speedFor(components.Exploring, p.CriticalEnergy/2)
	want := explore * p.CriticalSpeedFactor
	if math.Abs(float64(critical-want)) > 1e-3 {
		t.Errorf("critical speed = %v, want %v", critical, want)
	}

	// Output -1 means stand still
	brain.out[0] = -1
	still, _ := speedFor(components.Exploring, 1)
	if still != 0 {
		t.Errorf("speed for output -1 = %v, want 0", still)
	}
}

func TestStepChargesEnergyAndStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	a := newTestAgent(rng, 1, systems.Vec2{X: 799, Y: 599}, components.Female, p)

	dt := float32(1.0 / 60)
	var total float32
	for i := 0; i < 600; i++ {
		before := a.Body.Energy
		cost := a.Step(dt, nil, nil, testBounds)
		if cost <= 0 {
			t.Fatalf("tick %d: cost %v should be positive", i, cost)
		}
		if math.Abs(float64(before-cost-a.Body.Energy)) > 1e-6 {
			t.Fatalf("tick %d: energy %v -> %v does not match cost %v", i, before, a.Body.Energy, cost)
		}
		total += cost
		pos := a.Body.Position
		if pos.X < 0 || pos.X >= testBounds.Width || pos.Y < 0 || pos.Y >= testBounds.Height {
			t.Fatalf("tick %d: position %v out of bounds", i, pos)
		}
	}
	if math.Abs(float64(a.Age-600*dt)) > 1e-3 {
		t.Errorf("age = %v, want %v", a.Age, 600*dt)
	}
	if total <= 0 {
		t.Error("no energy was spent")
	}
}

func TestEat(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	a := newTestAgent(rng, 1, systems.Vec2{}, components.Female, p)

	a.Eat(systems.FoodItem{Energy: 0.3})
	a.Eat(systems.FoodItem{Energy: 0.2})

	if math.Abs(float64(a.Body.Energy-(p.InitialEnergy+0.5))) > 1e-6 {
		t.Errorf("energy = %v, want %v", a.Body.Energy, p.InitialEnergy+0.5)
	}
	if a.Fitness != 2 {
		t.Errorf("fitness = %v, want 2", a.Fitness)
	}
	if math.Abs(float64(a.FoodEaten-0.5)) > 1e-6 {
		t.Errorf("food eaten = %v, want 0.5", a.FoodEaten)
	}
}

func TestDecayCooldownAndDeath(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	a := newTestAgent(rng, 1, systems.Vec2{}, components.Female, p)

	a.ReproductionCooldown = 0.5
	a.DecayCooldown(1)
	if a.ReproductionCooldown != 0 {
		t.Errorf("cooldown = %v, want floor at 0", a.ReproductionCooldown)
	}

	a.Body.Energy = p.DeathThreshold + 0.01
	if a.Dead() {
		t.Error("agent above threshold reported dead")
	}
	a.Body.Energy = p.DeathThreshold
	if !a.Dead() {
		t.Error("agent at threshold should be dead")
	}

	a.Body.Energy = p.MaxEnergy + 1
	a.ClampEnergy()
	if a.Body.Energy != p.MaxEnergy {
		t.Errorf("energy = %v, want ceiling %v", a.Body.Energy, p.MaxEnergy)
	}
}
