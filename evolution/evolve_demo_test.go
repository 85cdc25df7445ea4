package evolution

import (
	"context"
	"fmt"
	"testing"
)

// TestEvolveFiveGenerations is the end-to-end loop check: five
// generations on a small population, every individual scored through
// the real compile-and-simulate path, history and best-ever consistent
// at the end. Run alone with: go test ./evolution -v -run FiveGenerations
func TestEvolveFiveGenerations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping full evolution loop in short mode")
	}

	cfg := &EvolutionConfig{
		PopulationSize:       10,
		Generations:          5,
		ElitismRate:          0.2,
		CrossoverRate:        0.7,
		TournamentSize:       3,
		ImprovementThreshold: 0.005,
		DiversityFloor:       DiversityFloor,
		SeedRatio:            0.8,
		Seed:                 424242,
		Style:                "balanced",
		GamesPerEval:         20,
		Workers:              2,
		SkipSkillEval:        true,
	}

	engine, err := NewEvolutionEngine(cfg)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	var callbacks int
	engine.OnGenerationComplete = func(stats GenerationStats) {
		callbacks++
		t.Logf("gen %d: best %.4f (%s) avg %.4f diversity %.4f",
			stats.Generation, stats.BestFitness, stats.BestID,
			stats.AvgFitness, stats.Diversity)
	}

	if err := engine.Evolve(context.Background()); err != nil {
		t.Fatalf("evolve: %v", err)
	}

	if len(engine.History) != 5 {
		t.Fatalf("Expected 5 recorded generations, got %d", len(engine.History))
	}
	if callbacks != 5 {
		t.Errorf("Callback fired %d times, want 5", callbacks)
	}

	if engine.BestEver == nil {
		t.Fatal("No best-ever after a full run")
	}
	if engine.BestEver.Fitness <= 0 {
		t.Errorf("Best fitness %.4f; the catalogue alone scores above zero", engine.BestEver.Fitness)
	}
	// Best-ever never falls below any generation's champion.
	for _, st := range engine.History {
		if engine.BestEver.Fitness < st.BestFitness {
			t.Errorf("Best-ever %.4f below gen %d best %.4f",
				engine.BestEver.Fitness, st.Generation, st.BestFitness)
		}
	}

	for i, st := range engine.History {
		if st.Generation != i {
			t.Errorf("History entry %d records generation %d", i, st.Generation)
		}
		if st.Evaluated != cfg.PopulationSize {
			t.Errorf("Gen %d evaluated %d of %d", i, st.Evaluated, cfg.PopulationSize)
		}
		if st.Diversity < 0 || st.Diversity > 1 {
			t.Errorf("Gen %d diversity %.4f out of range", i, st.Diversity)
		}
	}

	top := engine.TopGenomes(5)
	if len(top) == 0 {
		t.Fatal("No finishers reported")
	}
	for i, ind := range top {
		line := ""
		if ind.Metrics != nil {
			line = fmt.Sprintf(" (decisions %.2f, skill %.2f, complexity %.2f)",
				ind.Metrics.DecisionDensity, ind.Metrics.SkillVsLuck, ind.Metrics.RulesComplexity)
		}
		t.Logf("%d. %s: %.4f%s", i+1, ind.Genome.ID, ind.Fitness, line)
	}
	if top[0].Fitness != engine.BestEver.Fitness {
		t.Error("Shortlist does not lead with the best-ever fitness")
	}
}
