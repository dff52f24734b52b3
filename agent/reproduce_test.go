package agent

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/tomingtoming/Geneuron/components"
	"github.com/tomingtoming/Geneuron/neural"
	"github.com/tomingtoming/Geneuron/systems"
)

func TestOffspring(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	p.MutationRate = 0

	a := newTestAgent(rng, 1, systems.Vec2{X: 100, Y: 100}, components.Female, p)
	b := newTestAgent(rng, 2, systems.Vec2{X: 120, Y: 110}, components.Male, p)
	a.Lineage, b.Lineage = 3, 5
	a.Body.Energy, b.Body.Energy = 0.9, 0.8

	child, err := Offspring(a, b, rng, 10, testBounds)
	if err != nil {
		t.Fatalf("Offspring error: %v", err)
	}

	if child.ID != 10 {
		t.Errorf("child ID = %d, want 10", child.ID)
	}
	if child.Lineage != 6 {
		t.Errorf("child lineage = %d, want 6", child.Lineage)
	}
	if child.Body.Energy != p.InitialEnergy {
		t.Errorf("child energy = %v, want %v", child.Body.Energy, p.InitialEnergy)
	}
	if a.Children != 1 || b.Children != 1 {
		t.Errorf("children counts = %d, %d, want 1, 1", a.Children, b.Children)
	}
	// Offspring alone does not charge the parents
	if a.Body.Energy != 0.9 || b.Body.Energy != 0.8 || a.ReproductionCooldown != 0 {
		t.Error("Offspring should not charge the parents")
	}

	mid := systems.Vec2{X: 110, Y: 105}
	jitter := p.SpawnJitter * float32(math.Sqrt2)
	if d := testBounds.Distance(child.Body.Position, mid); d > jitter+1e-3 {
		t.Errorf("child at %v is %v from midpoint, want <= %v", child.Body.Position, d, jitter)
	}

	// Without mutation every gene comes from one parent
	ga, gb := a.Brain.Genome(), b.Brain.Genome()
	for i, g := range child.Genome {
		if g != ga[i] && g != gb[i] {
			t.Fatalf("gene %d = %v from neither parent", i, g)
		}
	}
}

func TestOffspringAcrossSeam(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	p.SpawnJitter = 0

	a := newTestAgent(rng, 1, systems.Vec2{X: 790, Y: 300}, components.Female, p)
	b := newTestAgent(rng, 2, systems.Vec2{X: 10, Y: 300}, components.Male, p)

	child, err := Offspring(a, b, rng, 3, testBounds)
	if err != nil {
		t.Fatal(err)
	}
	x := child.Body.Position.X
	if x > 1e-3 && x < testBounds.Width-1e-3 {
		t.Errorf("child x = %v, want at the seam", x)
	}
}

func TestOffspringMutates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()
	p.MutationRate = 1

	a := newTestAgent(rng, 1, systems.Vec2{X: 100, Y: 100}, components.Female, p)
	b := newTestAgent(rng, 2, systems.Vec2{X: 110, Y: 100}, components.Male, p)

	child, err := Offspring(a, b, rng, 3, testBounds)
	if err != nil {
		t.Fatal(err)
	}
	ga, gb := a.Brain.Genome(), b.Brain.Genome()
	for i, g := range child.Genome {
		if g == ga[i] || g == gb[i] {
			t.Fatalf("gene %d unchanged at mutation rate 1", i)
		}
	}
}

func TestOffspringShapeMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()

	a := newTestAgent(rng, 1, systems.Vec2{}, components.Female, p)
	b := NewWithBrain(rng, 2, neural.NewFFNN(rng, NumInputs, p.Hidden+2, NumOutputs), systems.Vec2{}, components.Male, p)

	if _, err := Offspring(a, b, rng, 3, testBounds); !errors.Is(err, neural.ErrShapeMismatch) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
	if a.Children != 0 {
		t.Error("failed reproduction should not count a child")
	}
}

func TestReproduceWithChargesBothParents(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := testParams()

	a := newTestAgent(rng, 1, systems.Vec2{X: 100, Y: 100}, components.Female, p)
	b := newTestAgent(rng, 2, systems.Vec2{X: 110, Y: 100}, components.Male, p)
	if !a.CanReproduceWith(b.Summary(1), testBounds) {
		t.Fatal("test agents should be eligible")
	}

	child, err := a.ReproduceWith(b, rng, 3, testBounds)
	if err != nil || child == nil {
		t.Fatalf("ReproduceWith = %v, %v", child, err)
	}

	for _, parent := range []*Agent{a, b} {
		if parent.ReproductionCooldown != p.ReproCooldown {
			t.Errorf("parent %d cooldown = %v, want %v", parent.ID, parent.ReproductionCooldown, p.ReproCooldown)
		}
		if math.Abs(float64(parent.Body.Energy-(p.InitialEnergy-p.ReproCost))) > 1e-6 {
			t.Errorf("parent %d energy = %v, want %v", parent.ID, parent.Body.Energy, p.InitialEnergy-p.ReproCost)
		}
	}

	if a.CanReproduceWith(b.Summary(1), testBounds) {
		t.Error("parents should not be eligible again during cooldown")
	}
}
