// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Agent        AgentConfig        `yaml:"agent"`
	Energy       EnergyConfig       `yaml:"energy"`
	Behavior     BehaviorConfig     `yaml:"behavior"`
	Sensors      SensorsConfig      `yaml:"sensors"`
	Neural       NeuralConfig       `yaml:"neural"`
	Population   PopulationConfig   `yaml:"population"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Food         FoodConfig         `yaml:"food"`
	Simulation   SimulationConfig   `yaml:"simulation"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the windowed viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// The world is a torus and may be larger than the screen.
type WorldConfig struct {
	Width  float64 `yaml:"width"`  // 0 = use screen width
	Height float64 `yaml:"height"` // 0 = use screen height
}

// PhysicsConfig holds integration and movement parameters.
type PhysicsConfig struct {
	DT             float64 `yaml:"dt"`               // Fixed timestep used by the binaries
	Drag           float64 `yaml:"drag"`             // Continuous velocity drag per second
	MinInertia     float64 `yaml:"min_inertia"`      // Inertia at full energy (responsive)
	MaxInertia     float64 `yaml:"max_inertia"`      // Inertia at zero energy (sluggish)
	MaxSpeed       float64 `yaml:"max_speed"`        // Speed ceiling at full energy
	MinSpeedFactor float64 `yaml:"min_speed_factor"` // Fraction of ceilings kept at zero energy
	MaxTurnRate    float64 `yaml:"max_turn_rate"`    // Angular momentum ceiling (rad/s)
	RotationDecay  float64 `yaml:"rotation_decay"`   // Angular momentum retained per decision
	GridCellSize   float64 `yaml:"grid_cell_size"`
}

// AgentConfig holds per-agent lifecycle parameters.
type AgentConfig struct {
	InitialEnergy       float64 `yaml:"initial_energy"`
	MaxEnergy           float64 `yaml:"max_energy"`
	DeathThreshold      float64 `yaml:"death_threshold"`
	CriticalEnergy      float64 `yaml:"critical_energy"`       // Below this agents crawl
	CriticalSpeedFactor float64 `yaml:"critical_speed_factor"` // Speed multiplier when critical
	BodyRadius          float64 `yaml:"body_radius"`
	EatRadius           float64 `yaml:"eat_radius"`
}

// EnergyConfig holds the movement energy economy.
// All costs are per second of simulated time.
type EnergyConfig struct {
	BaseCost     float64 `yaml:"base_cost"`     // Metabolic cost for existing
	MoveCost     float64 `yaml:"move_cost"`     // Linear cost per unit speed ratio
	SprintCost   float64 `yaml:"sprint_cost"`   // Quadratic cost above sprint_speed
	IdleSpeed    float64 `yaml:"idle_speed"`    // Speed ratio below which movement is free
	SprintSpeed  float64 `yaml:"sprint_speed"`  // Speed ratio where costs turn quadratic
	RotationCost float64 `yaml:"rotation_cost"` // Cost per rad/s of angular momentum
}

// BehaviorConfig holds behavior state machine thresholds.
type BehaviorConfig struct {
	EvalInterval  float64 `yaml:"eval_interval"`  // Seconds between state re-evaluations
	HungryEnergy  float64 `yaml:"hungry_energy"`  // Below this always Feeding
	RestingEnergy float64 `yaml:"resting_energy"` // Below this crowds make agents rest
	CrowdSize     int     `yaml:"crowd_size"`     // Same-gender neighbours that form a group
}

// SensorsConfig holds perception parameters.
type SensorsConfig struct {
	FoodRadius     float64 `yaml:"food_radius"`     // Perception radius for food
	AgentRadius    float64 `yaml:"agent_radius"`    // Perception radius for other agents
	ReferenceSpeed float64 `yaml:"reference_speed"` // Speed that normalizes to 1.0
}

// NeuralConfig holds controller shape and mutation parameters.
type NeuralConfig struct {
	HiddenSize    int     `yaml:"hidden_size"` // 0 = single layer
	WeightLimit   float64 `yaml:"weight_limit"`
	MutationPower float64 `yaml:"mutation_power"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial            int     `yaml:"initial"`
	Min                int     `yaml:"min"`
	Max                int     `yaml:"max"`
	RepopulateBatch    int     `yaml:"repopulate_batch"`
	RepopulateInterval float64 `yaml:"repopulate_interval"` // Seconds between floor injections
	RepopulateJitter   float64 `yaml:"repopulate_jitter"`   // Spawn distance around survivors
}

// ReproductionConfig holds sexual reproduction parameters.
type ReproductionConfig struct {
	EnergyThreshold   float64 `yaml:"energy_threshold"`
	EligibilityRadius float64 `yaml:"eligibility_radius"`
	Cooldown          float64 `yaml:"cooldown"`
	EnergyCost        float64 `yaml:"energy_cost"`
	MutationRate      float64 `yaml:"mutation_rate"`
	SpawnJitter       float64 `yaml:"spawn_jitter"`
}

// FoodConfig holds food field parameters.
type FoodConfig struct {
	Initial        int     `yaml:"initial"`
	Min            int     `yaml:"min"`
	Max            int     `yaml:"max"`
	MinEnergy      float64 `yaml:"min_energy"`
	MaxEnergy      float64 `yaml:"max_energy"`
	SpawnInterval  float64 `yaml:"spawn_interval"` // Seconds between cluster spawn rolls
	ClusterChance  float64 `yaml:"cluster_chance"` // Probability per roll of a clustered spawn
	ClusterRadius  float64 `yaml:"cluster_radius"`
	FertilityBias  float64 `yaml:"fertility_bias"`  // 0 = uniform, 1 = only fertile ground
	FertilityScale float64 `yaml:"fertility_scale"` // Noise features per world width
}

// SimulationConfig holds global counters.
type SimulationConfig struct {
	GenerationWindow float64 `yaml:"generation_window"` // Seconds per generation
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
	PerfSamples int     `yaml:"perf_samples"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32     float32 // Physics.DT as float32
	WorldW32 float32 // Effective world width as float32
	WorldH32 float32 // Effective world height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults. It panics if the embedded file is broken,
// which can only happen at build time.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ComputeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after mutating a loaded config in place.
func (c *Config) ComputeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = float64(c.Screen.Width)
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = float64(c.Screen.Height)
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
}

// Validate reports every inconsistent setting, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Derived.WorldW32 > 0 && c.Derived.WorldH32 > 0, "world size must be positive, got %vx%v", c.Derived.WorldW32, c.Derived.WorldH32)
	check(c.Physics.DT > 0, "physics.dt must be positive, got %v", c.Physics.DT)
	check(c.Physics.MinInertia >= 0 && c.Physics.MaxInertia < 1 && c.Physics.MinInertia <= c.Physics.MaxInertia,
		"physics inertia must satisfy 0 <= min_inertia <= max_inertia < 1, got %v..%v", c.Physics.MinInertia, c.Physics.MaxInertia)
	check(c.Physics.GridCellSize > 0, "physics.grid_cell_size must be positive, got %v", c.Physics.GridCellSize)
	check(c.Agent.DeathThreshold < c.Agent.InitialEnergy, "agent.death_threshold (%v) must be below initial_energy (%v)", c.Agent.DeathThreshold, c.Agent.InitialEnergy)
	check(c.Agent.InitialEnergy <= c.Agent.MaxEnergy, "agent.initial_energy (%v) exceeds max_energy (%v)", c.Agent.InitialEnergy, c.Agent.MaxEnergy)
	check(c.Behavior.EvalInterval > 0, "behavior.eval_interval must be positive, got %v", c.Behavior.EvalInterval)
	check(c.Sensors.FoodRadius > 0 && c.Sensors.AgentRadius > 0, "sensor radii must be positive")
	check(c.Neural.HiddenSize >= 0, "neural.hidden_size must not be negative, got %d", c.Neural.HiddenSize)
	check(c.Neural.MutationPower > 0 && c.Neural.WeightLimit > c.Neural.MutationPower,
		"neural.mutation_power must be in (0, weight_limit=%v), got %v", c.Neural.WeightLimit, c.Neural.MutationPower)
	check(c.Population.Min >= 0 && c.Population.Min <= c.Population.Max, "population.min (%d) must be within [0, max=%d]", c.Population.Min, c.Population.Max)
	check(c.Population.RepopulateBatch > 0, "population.repopulate_batch must be positive, got %d", c.Population.RepopulateBatch)
	check(c.Population.RepopulateInterval > 0, "population.repopulate_interval must be positive, got %v", c.Population.RepopulateInterval)
	check(c.Reproduction.MutationRate >= 0 && c.Reproduction.MutationRate <= 1, "reproduction.mutation_rate must be in [0,1], got %v", c.Reproduction.MutationRate)
	check(c.Food.Min >= 0 && c.Food.Min <= c.Food.Max, "food.min (%d) must be within [0, max=%d]", c.Food.Min, c.Food.Max)
	check(c.Food.MinEnergy <= c.Food.MaxEnergy, "food.min_energy (%v) exceeds max_energy (%v)", c.Food.MinEnergy, c.Food.MaxEnergy)
	check(c.Food.FertilityBias >= 0 && c.Food.FertilityBias <= 1, "food.fertility_bias must be in [0,1], got %v", c.Food.FertilityBias)
	check(c.Simulation.GenerationWindow > 0, "simulation.generation_window must be positive, got %v", c.Simulation.GenerationWindow)

	return errors.Join(errs...)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
