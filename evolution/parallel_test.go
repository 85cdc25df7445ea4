package evolution

import (
	"testing"

	"github.com/signalnine/darwindeck/gosim/evolution/fitness"
	"github.com/signalnine/darwindeck/gosim/genome"
)

func balancedStyle(t *testing.T) fitness.Style {
	t.Helper()
	style, ok := fitness.ByName("balanced")
	if !ok {
		t.Fatal("balanced preset missing")
	}
	return style
}

func TestEvaluateGenomesKeepsInputOrder(t *testing.T) {
	style := balancedStyle(t)
	genomes := []*genome.GameGenome{
		genome.CreateWarGenome(),
		genome.CreateHeartsGenome(),
		genome.CreateCheatGenome(),
	}
	spec := BatchSpec{Games: 4, Seed: 31}

	metrics := NewEvaluator(style, 3).EvaluateGenomes(genomes, spec)
	if len(metrics) != 3 {
		t.Fatalf("Got %d metrics for 3 genomes", len(metrics))
	}
	for i, m := range metrics {
		if m == nil {
			t.Fatalf("Slot %d is nil", i)
		}
		if m.Games == 0 {
			t.Errorf("Slot %d ran no games", i)
		}
	}
}

func TestEvaluateGenomesWorkerCountInvariant(t *testing.T) {
	// Per-genome seeds derive from the index, so the worker count must
	// not change a single score.
	style := balancedStyle(t)
	genomes := []*genome.GameGenome{
		genome.CreateWarGenome(),
		genome.CreateHeartsGenome(),
		genome.CreateScotchWhistGenome(),
		genome.CreateCheatGenome(),
	}
	spec := BatchSpec{Games: 6, Seed: 99}

	serial := NewEvaluator(style, 1).EvaluateGenomes(genomes, spec)
	pooled := NewEvaluator(style, 4).EvaluateGenomes(genomes, spec)

	for i := range genomes {
		if serial[i].Total != pooled[i].Total {
			t.Errorf("Genome %d scored %f serial but %f pooled",
				i, serial[i].Total, pooled[i].Total)
		}
	}
}

func TestEvaluateGenomesShortCircuitsBroken(t *testing.T) {
	style := balancedStyle(t)

	invalid := genome.CreateWarGenome()
	invalid.TurnStructure.MaxTurns = 0 // structurally invalid

	incoherent := genome.CreateWarGenome()
	incoherent.Setup.StartingChips = 500 // chips with no betting phase

	metrics := NewEvaluator(style, 1).EvaluateGenomes(
		[]*genome.GameGenome{invalid, incoherent}, BatchSpec{Games: 4, Seed: 5})

	for i, m := range metrics {
		if m.Total != 0 || m.Valid {
			t.Errorf("Broken genome %d reached evaluation: total %f valid %v",
				i, m.Total, m.Valid)
		}
		if m.Games != 0 {
			t.Errorf("Broken genome %d ran %d games", i, m.Games)
		}
	}
}

func TestEvaluateIndividuals(t *testing.T) {
	style := balancedStyle(t)
	individuals := []*Individual{
		{Genome: genome.CreateWarGenome()},
		{Genome: genome.CreateCheatGenome()},
	}

	NewEvaluator(style, 2).EvaluateIndividuals(individuals, BatchSpec{Games: 4, Seed: 17})

	for i, ind := range individuals {
		if !ind.Evaluated {
			t.Errorf("Individual %d not marked evaluated", i)
		}
		if ind.Metrics == nil {
			t.Fatalf("Individual %d has no metrics", i)
		}
		if ind.Fitness != ind.Metrics.Total {
			t.Errorf("Individual %d fitness %f disagrees with metrics total %f",
				i, ind.Fitness, ind.Metrics.Total)
		}
	}
}

func TestEvaluateGenomesEmpty(t *testing.T) {
	style := balancedStyle(t)
	if m := NewEvaluator(style, 2).EvaluateGenomes(nil, BatchSpec{Games: 1}); m != nil {
		t.Errorf("Expected nil metrics for empty input, got %v", m)
	}
}
