package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/signalnine/darwindeck/gosim/evolution"
	"github.com/signalnine/darwindeck/gosim/evolution/fitness"
	"github.com/signalnine/darwindeck/gosim/genome"
)

func rulebookCommand() *cli.Command {
	return &cli.Command{
		Name:      "rulebook",
		Usage:     "print a genome as rules a person could learn",
		ArgsUsage: "<genome.json | known game id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "from-db",
				Usage:   "read the genome from a stats database instead of a file",
				Sources: cli.EnvVars("DARWINDECK_STATS_DB"),
			},
			&cli.IntFlag{
				Name:  "rank",
				Value: 1,
				Usage: "which finisher to print with --from-db (1 = best)",
			},
			&cli.BoolFlag{
				Name:  "complexity",
				Usage: "append the rules-complexity breakdown",
			},
		},
		Action:       runRulebook,
		OnUsageError: reportUsageError,
	}
}

func runRulebook(_ context.Context, cmd *cli.Command) error {
	var g *genome.GameGenome
	switch {
	case cmd.String("from-db") != "":
		var err error
		g, err = genomeFromDB(cmd.String("from-db"), int(cmd.Int("rank")))
		if err != nil {
			return err
		}
	case cmd.NArg() == 1:
		var err error
		g, err = loadGenomeArg(cmd.Args().First())
		if err != nil {
			return usageError{err}
		}
	default:
		return usageErrorf("rulebook needs a genome file, a known game, or --from-db")
	}

	fmt.Print(genome.Describe(g))
	if cmd.Bool("complexity") {
		printComplexity(g)
	}
	return nil
}

// genomeFromDB pulls the rank-th best genome out of the most recent
// recorded run.
func genomeFromDB(path string, rank int) (*genome.GameGenome, error) {
	if rank < 1 {
		return nil, usageErrorf("rank starts at 1")
	}
	store, err := evolution.OpenStatStore(path)
	if err != nil {
		return nil, usageError{err}
	}
	defer store.Close()

	runID, err := store.LatestRun()
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	best, err := store.BestGenomes(runID, rank)
	if err != nil {
		return nil, fmt.Errorf("load genomes: %w", err)
	}
	if len(best) < rank {
		return nil, fmt.Errorf("run %d holds only %d genomes", runID, len(best))
	}
	return best[rank-1].Genome, nil
}

func printComplexity(g *genome.GameGenome) {
	c := fitness.CalculateComplexity(g)
	fmt.Println("\nComplexity:")
	fmt.Printf("  phases          %.3f\n", c.PhaseCost)
	fmt.Printf("  conditions      %.3f\n", c.ConditionCost)
	fmt.Printf("  effects         %.3f\n", c.EffectsCost)
	fmt.Printf("  memory          %.3f\n", c.MemoryCost)
	fmt.Printf("  state tracking  %.3f\n", c.StateTrackingCost)
	fmt.Printf("  familiarity     -%.3f\n", c.FamiliarityDiscount)
	fmt.Printf("  total           %.3f (about %d rulebook sentences, score %.3f)\n",
		c.Total, c.Sentences, c.InvertedScore())
}
