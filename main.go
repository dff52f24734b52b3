package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/tomingtoming/Geneuron/config"
	"github.com/tomingtoming/Geneuron/game"
	"github.com/tomingtoming/Geneuron/renderer"
)

type runOptions struct {
	configPath     string
	headless       bool
	seed           int64
	maxTicks       int64
	stepsPerUpdate int
	logStats       bool
	statsWindow    float64
	outputDir      string
}

func main() {
	var opts runOptions

	rootCmd := &cobra.Command{
		Use:   "geneuron",
		Short: "Neuroevolution sandbox of creatures on a toroidal world",
		Long: `geneuron evolves small neural-network controlled creatures that forage,
mate and die on a wrapping 2D world.

Without --headless it opens a window; Space pauses, N steps a single tick,
and , / . change how many ticks run per frame.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flags.BoolVar(&opts.headless, "headless", false, "Run without graphics")
	flags.Int64Var(&opts.seed, "seed", 0, "RNG seed (0 = time-based)")
	flags.Int64Var(&opts.maxTicks, "max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	flags.IntVar(&opts.stepsPerUpdate, "steps-per-update", 1, "Simulation ticks per frame")
	flags.BoolVar(&opts.logStats, "log-stats", false, "Output stats via slog")
	flags.Float64Var(&opts.statsWindow, "stats-window", 0, "Stats window size in seconds (0 = use config)")
	flags.StringVar(&opts.outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("geneuron failed", "error", err)
		os.Exit(1)
	}
}

func run(opts runOptions) error {
	// Set up slog (JSON to stdout for structured logging)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(opts.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sim, err := game.NewSimulationWithOptions(cfg, rng, game.Options{
		LogStats:       opts.logStats,
		StatsWindowSec: opts.statsWindow,
		OutputDir:      opts.outputDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := sim.Close(); err != nil {
			slog.Error("closing telemetry output", "error", err)
		}
	}()

	slog.Info("starting simulation",
		"seed", seed,
		"headless", opts.headless,
		"max_ticks", opts.maxTicks,
		"steps_per_update", opts.stepsPerUpdate,
		"world_width", cfg.Derived.WorldW32,
		"world_height", cfg.Derived.WorldH32,
	)

	if opts.headless {
		runHeadless(sim, opts)
		return nil
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Geneuron")
	defer rl.CloseWindow()
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	renderer.NewViewer(sim, renderer.ViewerOptions{
		Title:         "Geneuron",
		StepsPerFrame: opts.stepsPerUpdate,
		MaxTicks:      opts.maxTicks,
	}).Run()
	return nil
}

// runHeadless steps the simulation as fast as possible. Without a tick limit
// it runs until the process is killed.
func runHeadless(sim *game.Simulation, opts runOptions) {
	dt := sim.Config().Derived.DT32
	for {
		sim.Update(dt)

		if opts.maxTicks > 0 && sim.Tick() >= opts.maxTicks {
			slog.Info("max ticks reached", "tick", sim.Tick(), "population", sim.Population())
			return
		}
	}
}
