package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/signalnine/darwindeck/gosim/evolution"
	"github.com/signalnine/darwindeck/gosim/evolution/fitness"
	"github.com/signalnine/darwindeck/gosim/genome"
)

func evolveCommand() *cli.Command {
	flags := []cli.Flag{}
	flags = append(flags, runFlags()...)
	flags = append(flags, breedingFlags()...)
	flags = append(flags, skillFlags()...)
	flags = append(flags, outputFlags()...)
	flags = append(flags, backendFlags()...)
	return &cli.Command{
		Name:         "evolve",
		Usage:        "run an evolutionary search for playable games",
		Flags:        flags,
		Action:       runEvolve,
		OnUsageError: reportUsageError,
	}
}

// runFlags sizes the search itself.
func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "population",
			Value: 100,
			Usage: "individuals per generation",
		},
		&cli.IntFlag{
			Name:  "generations",
			Value: 100,
			Usage: "generation cap",
		},
		&cli.StringFlag{
			Name:    "style",
			Value:   "balanced",
			Usage:   "fitness preset: balanced, strategic, bluffing, party, trick-taking",
			Sources: cli.EnvVars("DARWINDECK_STYLE"),
		},
		&cli.IntFlag{
			Name:  "games-per-eval",
			Value: 100,
			Usage: "games behind each fitness score",
		},
		&cli.IntFlag{
			Name:  "seed",
			Value: 0,
			Usage: "random seed (0 seeds from the clock)",
		},
		&cli.FloatFlag{
			Name:  "seed-ratio",
			Value: 0.7,
			Usage: "share of the initial population dealt from the known-game catalogue",
		},
		&cli.IntFlag{
			Name:  "player-count",
			Value: 0,
			Usage: "only evolve games for this many seats (0 = any)",
		},
		&cli.IntFlag{
			Name:    "workers",
			Value:   0,
			Usage:   "evaluation workers (0 = one per CPU)",
			Sources: cli.EnvVars("DARWINDECK_WORKERS"),
		},
		&cli.BoolFlag{
			Name:  "use-mcts",
			Usage: "evaluate with search players instead of random ones (slow)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log per-generation detail instead of the progress bar",
		},
	}
}

// breedingFlags shape selection and recombination.
func breedingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:  "elitism",
			Value: 0.1,
			Usage: "top share copied unchanged into the next generation",
		},
		&cli.FloatFlag{
			Name:  "crossover",
			Value: 0.7,
			Usage: "chance a parent pair recombines",
		},
		&cli.IntFlag{
			Name:  "tournament",
			Value: 3,
			Usage: "selection tournament size",
		},
		&cli.IntFlag{
			Name:  "plateau",
			Value: 0,
			Usage: "stop after N generations without improvement (0 = run to the cap)",
		},
		&cli.FloatFlag{
			Name:  "improvement",
			Value: 0.005,
			Usage: "relative fitness gain that resets the plateau window",
		},
		&cli.FloatFlag{
			Name:  "diversity-floor",
			Value: evolution.DiversityFloor,
			Usage: "diversity below which mutation pressure turns aggressive",
		},
	}
}

// skillFlags control the final top-N skill re-evaluation.
func skillFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "skip-skill-eval",
			Usage: "skip the final skill re-evaluation (faster, less honest scores)",
		},
		&cli.IntFlag{
			Name:  "skill-top-n",
			Value: 5,
			Usage: "finalists re-scored against skill benchmarks",
		},
		&cli.IntFlag{
			Name:  "skill-games",
			Value: 200,
			Usage: "games per skill matchup",
		},
	}
}

// outputFlags say where results, checkpoints, and statistics land.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output-dir",
			Usage:   "directory for results (default output/run-TIMESTAMP)",
			Sources: cli.EnvVars("DARWINDECK_OUTPUT_DIR"),
		},
		&cli.IntFlag{
			Name:  "save-top-n",
			Value: 20,
			Usage: "finishers written out as genome JSON",
		},
		&cli.StringFlag{
			Name:  "checkpoint",
			Usage: "resume from this checkpoint file",
		},
		&cli.IntFlag{
			Name:  "checkpoint-interval",
			Value: 10,
			Usage: "checkpoint every N generations (0 = off)",
		},
		&cli.StringFlag{
			Name:    "stats-db",
			Usage:   "sqlite file recording per-generation statistics",
			Sources: cli.EnvVars("DARWINDECK_STATS_DB"),
		},
		&cli.BoolFlag{
			Name:  "no-progress",
			Usage: "suppress the progress bar",
		},
	}
}

// backendFlags pick and tune the GA backend.
func backendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "backend",
			Value: "house",
			Usage: "evolution backend: house or eaopt",
		},
		&cli.FloatFlag{
			Name:  "mutation-rate",
			Value: 0.9,
			Usage: "per-offspring mutation chance (eaopt backend)",
		},
		&cli.IntFlag{
			Name:  "hall-of-fame",
			Value: 5,
			Usage: "all-time leaders tracked (eaopt backend)",
		},
		&cli.IntFlag{
			Name:  "convergence",
			Value: 0,
			Usage: "eaopt early stop after N stale generations (0 = off)",
		},
	}
}

func runEvolve(ctx context.Context, cmd *cli.Command) error {
	outputDir := cmd.String("output-dir")
	if outputDir == "" {
		outputDir = filepath.Join("output", time.Now().Format("run-20060102-150405"))
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	switch backend := cmd.String("backend"); backend {
	case "house":
		return runHouseBackend(ctx, cmd, outputDir)
	case "eaopt":
		return runEaoptBackend(ctx, cmd, outputDir)
	default:
		return usageErrorf("unknown backend %q (house or eaopt)", backend)
	}
}

func configFromFlags(cmd *cli.Command) *evolution.EvolutionConfig {
	cfg := evolution.DefaultConfig()
	cfg.PopulationSize = int(cmd.Int("population"))
	cfg.Generations = int(cmd.Int("generations"))
	cfg.ElitismRate = cmd.Float("elitism")
	cfg.CrossoverRate = cmd.Float("crossover")
	cfg.TournamentSize = int(cmd.Int("tournament"))
	cfg.PlateauWindow = int(cmd.Int("plateau"))
	cfg.ImprovementThreshold = cmd.Float("improvement")
	cfg.DiversityFloor = cmd.Float("diversity-floor")
	cfg.SeedRatio = cmd.Float("seed-ratio")
	cfg.Seed = int64(cmd.Int("seed"))
	cfg.Style = cmd.String("style")
	cfg.PlayerCount = int(cmd.Int("player-count"))
	cfg.Workers = int(cmd.Int("workers"))
	cfg.GamesPerEval = int(cmd.Int("games-per-eval"))
	cfg.UseMCTS = cmd.Bool("use-mcts")
	cfg.SkipSkillEval = cmd.Bool("skip-skill-eval")
	cfg.SkillTopN = int(cmd.Int("skill-top-n"))
	cfg.SkillGames = int(cmd.Int("skill-games"))
	cfg.Verbose = cmd.Bool("verbose")
	return cfg
}

func runHouseBackend(ctx context.Context, cmd *cli.Command, outputDir string) error {
	var (
		engine *evolution.EvolutionEngine
		err    error
	)
	if path := cmd.String("checkpoint"); path != "" {
		engine, err = evolution.ResumeFromCheckpoint(path)
		if err != nil {
			return usageError{err}
		}
		// Flags given explicitly override the checkpointed config; the
		// rest of the run keeps its recorded settings.
		if cmd.IsSet("generations") {
			engine.Config.Generations = int(cmd.Int("generations"))
		}
		if cmd.IsSet("workers") {
			engine.Config.Workers = int(cmd.Int("workers"))
		}
		if cmd.IsSet("verbose") {
			engine.Config.Verbose = cmd.Bool("verbose")
		}
		fmt.Printf("resumed %s at generation %d\n", path, engine.Population.Generation)
	} else {
		engine, err = evolution.NewEvolutionEngine(configFromFlags(cmd))
		if err != nil {
			return usageError{err}
		}
	}

	fmt.Printf("population %d, cap %d generations, style %s, %d games/eval\n",
		engine.Config.PopulationSize, engine.Config.Generations,
		engine.Config.Style, engine.Config.GamesPerEval)

	var store *evolution.StatStore
	var runID int64
	if path := cmd.String("stats-db"); path != "" {
		store, err = evolution.OpenStatStore(path)
		if err != nil {
			return fmt.Errorf("stats db: %w", err)
		}
		defer store.Close()
		if runID, err = store.BeginRun(engine.Config); err != nil {
			return fmt.Errorf("stats db: %w", err)
		}
	}

	var checkpointer *evolution.AutoCheckpointer
	if interval := int(cmd.Int("checkpoint-interval")); interval > 0 {
		checkpointer = evolution.NewAutoCheckpointer(
			engine, filepath.Join(outputDir, "checkpoint.json"), interval)
	}

	var bar *progressbar.ProgressBar
	if !cmd.Bool("no-progress") && !engine.Config.Verbose {
		bar = progressbar.NewOptions(engine.Config.Generations,
			progressbar.OptionSetDescription("evolving"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
		)
	}

	engine.OnGenerationComplete = func(stats evolution.GenerationStats) {
		if bar != nil {
			bar.Describe(fmt.Sprintf("gen %d best %.3f avg %.3f",
				stats.Generation, stats.BestFitness, stats.AvgFitness))
			_ = bar.Set(stats.Generation + 1)
		}
		if checkpointer != nil {
			checkpointer.Tick(stats.Generation)
		}
		if store != nil {
			if err := store.RecordGeneration(runID, stats); err != nil {
				fmt.Fprintf(os.Stderr, "\nwarning: stats db: %v\n", err)
			}
		}
	}

	start := time.Now()
	err = engine.Evolve(ctx)
	if bar != nil {
		_ = bar.Exit()
		fmt.Fprintln(os.Stderr)
	}
	if checkpointer != nil && checkpointer.Err != nil {
		fmt.Fprintf(os.Stderr, "warning: checkpoint save failed during run: %v\n", checkpointer.Err)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			if checkpointer != nil {
				if cerr := checkpointer.SaveFinal(); cerr != nil {
					fmt.Fprintf(os.Stderr, "warning: checkpoint save failed: %v\n", cerr)
				} else {
					fmt.Printf("interrupted; resume with --checkpoint %s\n", checkpointer.Path)
				}
			}
			return errInterrupted
		}
		return fmt.Errorf("evolution: %w", err)
	}

	top := engine.TopGenomes(int(cmd.Int("save-top-n")))
	if err := saveTopGenomes(outputDir, top); err != nil {
		return err
	}
	if store != nil {
		if err := store.RecordTopGenomes(runID, engine.Population.Generation, top); err != nil {
			fmt.Fprintf(os.Stderr, "warning: stats db: %v\n", err)
		}
	}
	if checkpointer != nil {
		if err := checkpointer.SaveFinal(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: final checkpoint: %v\n", err)
		}
	}

	printRunSummary(engine, time.Since(start), outputDir)
	return nil
}

// runEaoptBackend trades checkpointing and the stats store for eaopt's
// loop; it shares the population, style, and breeding flags.
func runEaoptBackend(ctx context.Context, cmd *cli.Command, outputDir string) error {
	cfg := evolution.DefaultEaoptConfig()
	cfg.PopulationSize = int(cmd.Int("population"))
	cfg.Generations = int(cmd.Int("generations"))
	cfg.MutationRate = cmd.Float("mutation-rate")
	cfg.CrossoverRate = cmd.Float("crossover")
	cfg.EliteCount = int(float64(cfg.PopulationSize) * cmd.Float("elitism"))
	cfg.TournamentSize = int(cmd.Int("tournament"))
	cfg.HallOfFame = int(cmd.Int("hall-of-fame"))
	cfg.Convergence = int(cmd.Int("convergence"))
	cfg.Seed = int64(cmd.Int("seed"))
	cfg.Style = cmd.String("style")
	cfg.GamesPerEval = int(cmd.Int("games-per-eval"))
	cfg.Parallel = cmd.Int("workers") != 1
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if !cmd.Bool("no-progress") && !cmd.Bool("verbose") {
		bar = progressbar.NewOptions(cfg.Generations,
			progressbar.OptionSetDescription("evolving (eaopt)"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
		)
		cfg.Progress = func(generation uint, best, avg float64) {
			bar.Describe(fmt.Sprintf("gen %d best %.3f avg %.3f", generation, best, avg))
			_ = bar.Set(int(generation) + 1)
		}
	}

	start := time.Now()
	top, err := evolution.RunEaopt(cfg)
	if bar != nil {
		_ = bar.Exit()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("eaopt: %w", err)
	}

	if n := int(cmd.Int("save-top-n")); len(top) > n {
		top = top[:n]
	}
	if err := saveTopGenomes(outputDir, top); err != nil {
		return err
	}

	fmt.Printf("\n%s elapsed\n", time.Since(start).Round(time.Second))
	if len(top) > 0 {
		fmt.Printf("best: %s fitness %.4f\n", top[0].Genome.ID, top[0].Fitness)
	}
	fmt.Printf("results in %s\n", outputDir)
	return nil
}

// genomeResult is one line of the results index written next to the
// genome files.
type genomeResult struct {
	Rank    int              `json:"rank"`
	File    string           `json:"file"`
	ID      string           `json:"id"`
	Fitness float64          `json:"fitness"`
	Metrics *fitness.Metrics `json:"metrics,omitempty"`
}

// saveTopGenomes writes each finisher as plain genome JSON, loadable
// by playtest and rulebook, plus a results.json index carrying the
// scores.
func saveTopGenomes(dir string, top []*evolution.Individual) error {
	index := make([]genomeResult, 0, len(top))
	for i, ind := range top {
		name := fmt.Sprintf("rank%02d_%s.json", i+1, sanitizeFilename(ind.Genome.ID))
		data, err := genome.SaveGenomeToJSON(ind.Genome)
		if err != nil {
			return fmt.Errorf("encode %s: %w", ind.Genome.ID, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		index = append(index, genomeResult{
			Rank:    i + 1,
			File:    name,
			ID:      ind.Genome.ID,
			Fitness: ind.Fitness,
			Metrics: ind.Metrics,
		})
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results index: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "results.json"), data, 0o644)
}

func printRunSummary(engine *evolution.EvolutionEngine, elapsed time.Duration, outputDir string) {
	fmt.Printf("\n%d generations in %s\n", len(engine.History), elapsed.Round(time.Second))
	if engine.BestEver != nil {
		fmt.Printf("best: %s fitness %.4f\n", engine.BestEver.Genome.ID, engine.BestEver.Fitness)
		if m := engine.BestEver.Metrics; m != nil {
			fmt.Printf("  decisions %.2f skill %.2f tension %.2f interaction %.2f complexity %.2f\n",
				m.DecisionDensity, m.SkillVsLuck, m.TensionCurve,
				m.InteractionFrequency, m.RulesComplexity)
		}
	}
	fmt.Printf("results in %s\n", outputDir)
}

// sanitizeFilename keeps genome ids safe as file names.
func sanitizeFilename(id string) string {
	out := make([]byte, 0, len(id))
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			out = append(out, byte(c))
		case c == ' ':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "genome"
	}
	return string(out)
}
