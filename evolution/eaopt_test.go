package evolution

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/MaxHalford/eaopt"

	"github.com/signalnine/darwindeck/gosim/evolution/operators"
	"github.com/signalnine/darwindeck/gosim/genome"
)

func TestDefaultEaoptConfigValidates(t *testing.T) {
	if err := DefaultEaoptConfig().Validate(); err != nil {
		t.Fatalf("Default eaopt config rejected: %v", err)
	}
}

func TestEaoptConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*EaoptConfig)
		want   string
	}{
		{"tiny population", func(c *EaoptConfig) { c.PopulationSize = 1 }, "population"},
		{"zero generations", func(c *EaoptConfig) { c.Generations = 0 }, "generations"},
		{"mutation above one", func(c *EaoptConfig) { c.MutationRate = 1.5 }, "mutation"},
		{"negative crossover", func(c *EaoptConfig) { c.CrossoverRate = -0.2 }, "crossover"},
		{"elite swallows population", func(c *EaoptConfig) { c.EliteCount = c.PopulationSize }, "elite"},
		{"zero tournament", func(c *EaoptConfig) { c.TournamentSize = 0 }, "tournament"},
		{"empty hall of fame", func(c *EaoptConfig) { c.HallOfFame = 0 }, "hall of fame"},
		{"negative convergence", func(c *EaoptConfig) { c.Convergence = -1 }, "convergence"},
		{"zero games", func(c *EaoptConfig) { c.GamesPerEval = 0 }, "games"},
		{"unknown style", func(c *EaoptConfig) { c.Style = "vibes" }, "style"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultEaoptConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestElitismModelValidate(t *testing.T) {
	good := elitismModel{
		Selector:  eaopt.SelTournament{NContestants: 3},
		Elite:     2,
		MutRate:   0.9,
		CrossRate: 0.7,
	}
	if err := good.Validate(); err != nil {
		t.Errorf("Valid model rejected: %v", err)
	}

	if err := (elitismModel{MutRate: 0.5}).Validate(); err == nil {
		t.Error("Nil selector accepted")
	}
	bad := good
	bad.MutRate = 2
	if err := bad.Validate(); err == nil {
		t.Error("Mutation rate above one accepted")
	}
}

func testGaGenome(t *testing.T, g *genome.GameGenome) *gaGenome {
	t.Helper()
	return &gaGenome{
		g:        g,
		eval:     NewEvaluator(balancedStyle(t), 1),
		games:    4,
		seed:     77,
		pipeline: operators.NewDefaultPipeline(),
		xover:    NewSinglePointCrossover(0.7),
	}
}

func TestGaGenomeClone(t *testing.T) {
	original := testGaGenome(t, genome.CreateWarGenome())

	clone, ok := original.Clone().(*gaGenome)
	if !ok {
		t.Fatal("Clone returned a different concrete type")
	}
	if clone.g == original.g {
		t.Error("Clone shares the genome pointer")
	}
	if clone.g.ID != original.g.ID {
		t.Error("Clone changed the genome id")
	}

	clone.g.TurnStructure.MaxTurns = 1
	if original.g.TurnStructure.MaxTurns == 1 {
		t.Error("Editing the clone reached the original")
	}
}

func TestGaGenomeEvaluateNegates(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping simulation-backed evaluation in short mode")
	}

	score, err := testGaGenome(t, genome.CreateWarGenome()).Evaluate()
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	// eaopt minimises; a playable genome must land strictly below zero.
	if score >= 0 {
		t.Errorf("Expected negated fitness below zero, got %f", score)
	}
}

func TestGaGenomeCrossoverStaysPlayable(t *testing.T) {
	x := testGaGenome(t, genome.CreateWarGenome())
	o := testGaGenome(t, genome.CreateBettingWarGenome())

	for s := 0; s < 30; s++ {
		rng := rand.New(rand.NewSource(int64(s)))
		x.Crossover(o, rng)
		for name, g := range map[string]*genome.GameGenome{"receiver": x.g, "partner": o.g} {
			if !genome.IsValid(g) {
				t.Fatalf("seed %d: %s left invalid", s, name)
			}
			if !operators.Coherent(g) {
				t.Fatalf("seed %d: %s left incoherent", s, name)
			}
		}
	}
}

func TestGaGenomeMutateAppliesPipeline(t *testing.T) {
	x := testGaGenome(t, genome.CreateHeartsGenome())
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 10; i++ {
		x.Mutate(rng)
		if !genome.IsValid(x.g) || !operators.Coherent(x.g) {
			t.Fatalf("Mutation round %d broke the genome", i)
		}
	}
}

func TestRunEaoptSmoke(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping eaopt run in short mode")
	}

	var progressCalls int
	cfg := &EaoptConfig{
		PopulationSize: 8,
		Generations:    2,
		MutationRate:   0.5,
		CrossoverRate:  0.5,
		EliteCount:     2,
		TournamentSize: 2,
		HallOfFame:     3,
		Seed:           99,
		Style:          "balanced",
		GamesPerEval:   4,
		Parallel:       false,
		Progress: func(gen uint, best, avg float64) {
			progressCalls++
			t.Logf("eaopt gen %d: best %.4f avg %.4f", gen, best, avg)
		},
	}

	hall, err := RunEaopt(cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(hall) == 0 {
		t.Fatal("Empty hall of fame")
	}
	if progressCalls == 0 {
		t.Error("Progress callback never fired")
	}

	for i, ind := range hall {
		if !ind.Evaluated {
			t.Errorf("Hall entry %d not marked evaluated", i)
		}
		if ind.Genome == nil {
			t.Fatalf("Hall entry %d has no genome", i)
		}
	}
	// Best first, signs restored.
	for i := 0; i < len(hall)-1; i++ {
		if hall[i].Fitness < hall[i+1].Fitness {
			t.Errorf("Hall order broken at %d: %f < %f", i, hall[i].Fitness, hall[i+1].Fitness)
		}
	}
	if hall[0].Fitness <= 0 {
		t.Errorf("Catalogue-seeded hall leader scored %f", hall[0].Fitness)
	}
}

func TestRunEaoptRejectsBadConfig(t *testing.T) {
	cfg := DefaultEaoptConfig()
	cfg.PopulationSize = 0
	if _, err := RunEaopt(cfg); err == nil {
		t.Error("Expected config rejection")
	}
}
