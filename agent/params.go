package agent

import (
	"github.com/tomingtoming/Geneuron/config"
	"github.com/tomingtoming/Geneuron/neural"
	"github.com/tomingtoming/Geneuron/systems"
)

// Controller shape.
const (
	NumInputs  = 9 // energy, speed, rotation, food d/a, mate d/a, kin d/a
	NumOutputs = 2 // forward speed, rotation
)

// Params holds every constant an agent needs. One Params value is shared by
// all agents of a simulation.
type Params struct {
	Physics systems.PhysicsParams
	Drag    float32
	Neural  neural.Options
	Hidden  int

	// Lifecycle
	InitialEnergy       float32
	MaxEnergy           float32
	DeathThreshold      float32
	CriticalEnergy      float32
	CriticalSpeedFactor float32
	BodyRadius          float32
	EatRadius           float32

	// Behavior
	EvalInterval  float32
	HungryEnergy  float32
	RestingEnergy float32
	CrowdSize     int

	// Sensors
	FoodRadius     float32
	AgentRadius    float32
	ReferenceSpeed float32

	// Reproduction
	ReproEnergy       float32
	EligibilityRadius float32
	ReproCooldown     float32
	ReproCost         float32
	MutationRate      float64
	SpawnJitter       float32
}

// NewParams extracts agent parameters from the config.
func NewParams(cfg *config.Config) *Params {
	return &Params{
		Physics: systems.NewPhysicsParams(cfg),
		Drag:    float32(cfg.Physics.Drag),
		Neural: neural.Options{
			WeightLimit:   float32(cfg.Neural.WeightLimit),
			MutationPower: float32(cfg.Neural.MutationPower),
		},
		Hidden: cfg.Neural.HiddenSize,

		InitialEnergy:       float32(cfg.Agent.InitialEnergy),
		MaxEnergy:           float32(cfg.Agent.MaxEnergy),
		DeathThreshold:      float32(cfg.Agent.DeathThreshold),
		CriticalEnergy:      float32(cfg.Agent.CriticalEnergy),
		CriticalSpeedFactor: float32(cfg.Agent.CriticalSpeedFactor),
		BodyRadius:          float32(cfg.Agent.BodyRadius),
		EatRadius:           float32(cfg.Agent.EatRadius),

		EvalInterval:  float32(cfg.Behavior.EvalInterval),
		HungryEnergy:  float32(cfg.Behavior.HungryEnergy),
		RestingEnergy: float32(cfg.Behavior.RestingEnergy),
		CrowdSize:     cfg.Behavior.CrowdSize,

		FoodRadius:     float32(cfg.Sensors.FoodRadius),
		AgentRadius:    float32(cfg.Sensors.AgentRadius),
		ReferenceSpeed: float32(cfg.Sensors.ReferenceSpeed),

		ReproEnergy:       float32(cfg.Reproduction.EnergyThreshold),
		EligibilityRadius: float32(cfg.Reproduction.EligibilityRadius),
		ReproCooldown:     float32(cfg.Reproduction.Cooldown),
		ReproCost:         float32(cfg.Reproduction.EnergyCost),
		MutationRate:      cfg.Reproduction.MutationRate,
		SpawnJitter:       float32(cfg.Reproduction.SpawnJitter),
	}
}
