package systems

import (
	"math/rand"
	"sort"

	perlin "github.com/aquilax/go-perlin"

	"github.com/tomingtoming/Geneuron/config"
)

// Perlin noise shape for the fertility map.
const (
	fertilityAlpha   = 2.0
	fertilityBeta    = 2.0
	fertilityOctaves = 3

	// maxPlacementTries bounds rejection sampling against the fertility map.
	maxPlacementTries = 8
)

// FoodItem is a point resource.
type FoodItem struct {
	Position Vec2
	Energy   float32
	Size     float32 // visual radius, grows with energy
}

// NearbyFood is a food item found by a radius query.
// Index is valid until the field is next modified.
type NearbyFood struct {
	Index    int
	Item     FoodItem
	Distance float32
}

// FoodParams holds the food spawn policy.
type FoodParams struct {
	Initial        int
	Min            int
	Max            int
	MinEnergy      float32
	MaxEnergy      float32
	SpawnInterval  float32
	ClusterChance  float32
	ClusterRadius  float32
	FertilityBias  float32
	FertilityScale float32
}

// NewFoodParams extracts food parameters from the config.
func NewFoodParams(cfg *config.Config) FoodParams {
	return FoodParams{
		Initial:        cfg.Food.Initial,
		Min:            cfg.Food.Min,
		Max:            cfg.Food.Max,
		MinEnergy:      float32(cfg.Food.MinEnergy),
		MaxEnergy:      float32(cfg.Food.MaxEnergy),
		SpawnInterval:  float32(cfg.Food.SpawnInterval),
		ClusterChance:  float32(cfg.Food.ClusterChance),
		ClusterRadius:  float32(cfg.Food.ClusterRadius),
		FertilityBias:  float32(cfg.Food.FertilityBias),
		FertilityScale: float32(cfg.Food.FertilityScale),
	}
}

// FoodField spawns, tracks and depletes food in a toroidal world.
type FoodField struct {
	items      []FoodItem
	bounds     Bounds
	params     FoodParams
	spawnTimer float32
	noise      *perlin.Perlin
}

// NewFoodField creates a field with params.Initial items placed by the
// uniform (fertility-weighted) policy, capped at params.Max.
func NewFoodField(bounds Bounds, params FoodParams, rng *rand.Rand) *FoodField {
	f := &FoodField{
		items:  make([]FoodItem, 0, params.Max),
		bounds: bounds,
		params: params,
		noise:  perlin.NewPerlin(fertilityAlpha, fertilityBeta, fertilityOctaves, rng.Int63()),
	}
	for i := 0; i < params.Initial && len(f.items) < params.Max; i++ {
		f.spawnUniform(rng)
	}
	return f
}

// Update advances the spawn policy by dt. Below Min the field is refilled
// uniformly; otherwise each elapsed SpawnInterval rolls ClusterChance for a
// new item near an existing one. The count never exceeds Max.
// Returns the number of items spawned.
func (f *FoodField) Update(dt float32, rng *rand.Rand) int {
	if dt <= 0 {
		return 0
	}

	spawned := 0
	for len(f.items) < f.params.Min && len(f.items) < f.params.Max {
		f.spawnUniform(rng)
		spawned++
	}

	rolls := 1
	if f.params.SpawnInterval > 0 {
		f.spawnTimer += dt
		rolls = int(f.spawnTimer / f.params.SpawnInterval)
		f.spawnTimer -= float32(rolls) * f.params.SpawnInterval
	}

	for ; rolls > 0; rolls-- {
		if len(f.items) == 0 || len(f.items) >= f.params.Max {
			break
		}
		if rng.Float32() < f.params.ClusterChance {
			f.spawnCluster(rng)
			spawned++
		}
	}
	return spawned
}

func (f *FoodField) randomEnergy(rng *rand.Rand) float32 {
	return f.params.MinEnergy + rng.Float32()*(f.params.MaxEnergy-f.params.MinEnergy)
}

// spawnUniform places an item anywhere, preferring fertile ground when
// FertilityBias > 0.
func (f *FoodField) spawnUniform(rng *rand.Rand) {
	var pos Vec2
	for try := 0; try < maxPlacementTries; try++ {
		pos = Vec2{rng.Float32() * f.bounds.Width, rng.Float32() * f.bounds.Height}
		accept := 1 - f.params.FertilityBias + f.params.FertilityBias*f.Fertility(pos)
		if rng.Float32() < accept {
			break
		}
	}
	f.add(pos, f.randomEnergy(rng))
}

// spawnCluster places an item within ClusterRadius of a random existing item.
func (f *FoodField) spawnCluster(rng *rand.Rand) {
	parent := f.items[rng.Intn(len(f.items))].Position
	r := f.params.ClusterRadius
	offset := Vec2{(rng.Float32()*2 - 1) * r, (rng.Float32()*2 - 1) * r}
	f.add(parent.Add(offset), f.randomEnergy(rng))
}

func (f *FoodField) add(pos Vec2, energy float32) {
	f.items = append(f.items, FoodItem{
		Position: f.bounds.Wrap(pos),
		Energy:   energy,
		Size:     foodSize(energy),
	})
}

func foodSize(energy float32) float32 {
	return 2 + 10*energy
}

// Spawn adds an item at pos. Returns its index, or false if the field is full.
func (f *FoodField) Spawn(pos Vec2, energy float32) (int, bool) {
	if len(f.items) >= f.params.Max {
		return -1, false
	}
	f.add(pos, energy)
	return len(f.items) - 1, true
}

// Fertility returns the soil quality at pos in [0, 1]. The noise is blended
// across the wrap seams so the map tiles the torus.
func (f *FoodField) Fertility(pos Vec2) float32 {
	w, h := float64(f.bounds.Width), float64(f.bounds.Height)
	x, y := float64(mod(pos.X, f.bounds.Width)), float64(mod(pos.Y, f.bounds.Height))
	scale := float64(f.params.FertilityScale) / w

	sample := func(sx, sy float64) float64 {
		return f.noise.Noise2D(sx*scale, sy*scale)
	}
	n := (sample(x, y)*(w-x)*(h-y) +
		sample(x-w, y)*x*(h-y) +
		sample(x, y-h)*(w-x)*y +
		sample(x-w, y-h)*x*y) / (w * h)

	return clamp01(float32(n + 0.5))
}

// FertilityGrid samples Fertility at the centers of a cols x rows grid
// covering the world, row-major. Non-positive sizes return nil.
func (f *FoodField) FertilityGrid(cols, rows int) []float32 {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cw := f.bounds.Width / float32(cols)
	ch := f.bounds.Height / float32(rows)
	out := make([]float32, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[r*cols+c] = f.Fertility(Vec2{X: (float32(c) + 0.5) * cw, Y: (float32(r) + 0.5) * ch})
		}
	}
	return out
}

// FindNearby returns all items within radius of pos, in index order.
func (f *FoodField) FindNearby(pos Vec2, radius float32) []NearbyFood {
	return f.FindNearbyInto(nil, pos, radius)
}

// FindNearbyInto is FindNearby appending to dst for reuse across calls.
func (f *FoodField) FindNearbyInto(dst []NearbyFood, pos Vec2, radius float32) []NearbyFood {
	radiusSq := radius * radius
	for i, item := range f.items {
		dx, dy := ToroidalDelta(pos.X, pos.Y, item.Position.X, item.Position.Y, f.bounds.Width, f.bounds.Height)
		distSq := dx*dx + dy*dy
		if distSq <= radiusSq {
			dst = append(dst, NearbyFood{Index: i, Item: item, Distance: Vec2{dx, dy}.Len()})
		}
	}
	return dst
}

// Remove deletes the item at index, keeping the order of the rest.
// Returns false if index is out of range.
func (f *FoodField) Remove(index int) bool {
	if index < 0 || index >= len(f.items) {
		return false
	}
	f.items = append(f.items[:index], f.items[index+1:]...)
	return true
}

// RemoveBatch deletes all listed items. Duplicates and out-of-range indices
// are ignored. Removal runs in descending index order so earlier indices
// stay valid. Returns the number removed.
func (f *FoodField) RemoveBatch(indices []int) int {
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	removed := 0
	last := -1
	for _, idx := range sorted {
		if idx == last {
			continue
		}
		last = idx
		if f.Remove(idx) {
			removed++
		}
	}
	return removed
}

// WrapPositions reduces every item position into bounds.
func (f *FoodField) WrapPositions() {
	for i := range f.items {
		f.items[i].Position = f.bounds.Wrap(f.items[i].Position)
	}
}

// Items returns the live item slice. Callers must not modify it.
func (f *FoodField) Items() []FoodItem { return f.items }

// Len returns the number of items.
func (f *FoodField) Len() int { return len(f.items) }

// Params returns the spawn policy.
func (f *FoodField) Params() FoodParams { return f.params }

// TotalEnergy returns the energy held by all items.
func (f *FoodField) TotalEnergy() float32 {
	var total float32
	for _, item := range f.items {
		total += item.Energy
	}
	return total
}
