// Package main searches food, reproduction and mutation parameters with
// CMA-ES for configurations that sustain a self-reproducing population.
package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/optimize"

	"github.com/tomingtoming/Geneuron/config"
)

type optimizeOptions struct {
	configPath string
	maxTicks   int64
	seeds      int
	maxEvals   int
	population int
	outputDir  string
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	var opts optimizeOptions

	cmd := &cobra.Command{
		Use:          "optimize",
		Short:        "CMA-ES search for parameters that keep a population self-sustaining",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flags.Int64Var(&opts.maxTicks, "max-ticks", 36000, "Simulation length per run in ticks")
	flags.IntVar(&opts.seeds, "seeds", 3, "Number of seeds per evaluation")
	flags.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flags.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = auto)")
	flags.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	_ = cmd.MarkFlagRequired("output")

	if err := cmd.Execute(); err != nil {
		slog.Error("optimize failed", "error", err)
		os.Exit(1)
	}
}

func run(opts optimizeOptions) error {
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	baseCfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	params := NewParamVector()

	evalSeeds := make([]int64, max(opts.seeds, 1))
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, opts.maxTicks, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	logPath := filepath.Join(opts.outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "sustain", "self_support", "stability"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := logWriter.Write(header); err != nil {
		return fmt.Errorf("writing log header: %w", err)
	}

	// Evaluations run sequentially; seeds within one run in parallel
	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			quality := evaluator.LastQuality()
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			row := []string{
				strconv.Itoa(evalCount),
				fmt.Sprintf("%.6f", fitness),
				fmt.Sprintf("%.4f", quality.Sustain),
				fmt.Sprintf("%.4f", quality.SelfSupport),
				fmt.Sprintf("%.4f", quality.Stability),
			}
			for _, v := range clamped {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(opts.maxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: score=%.3f sustain=%.2f self=%.2f stable=%.2f (best=%.3f) | elapsed: %s, ETA: %s\n",
				evalCount, opts.maxEvals, -fitness, quality.Sustain, quality.SelfSupport, quality.Stability, -bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: opts.maxEvals,
		Concurrent:      0,
	}

	popSize := opts.population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, opts.maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", len(evalSeeds), opts.maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	// Best params may come from any evaluation, not just the final mean
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return fmt.Errorf("no evaluations completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best score: %.4f\n", -bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		return err
	}
	fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	return nil
}
