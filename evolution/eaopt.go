package evolution

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/MaxHalford/eaopt"

	"github.com/signalnine/darwindeck/gosim/evolution/fitness"
	"github.com/signalnine/darwindeck/gosim/evolution/operators"
	"github.com/signalnine/darwindeck/gosim/genome"
)

// EaoptConfig sizes a run on the eaopt backend. It trades the house
// loop's checkpointing and diversity pressure for eaopt's machinery;
// selection, elitism, and the mutation catalogue stay the same.
type EaoptConfig struct {
	PopulationSize int
	Generations    int
	// MutationRate is the per-offspring chance eaopt calls Mutate; the
	// catalogue's per-operator rates apply on top.
	MutationRate  float64
	CrossoverRate float64
	EliteCount    int
	TournamentSize int
	// HallOfFame is how many all-time leaders eaopt tracks and returns.
	HallOfFame int
	// Convergence stops after this many generations without the hall
	// of fame improving. 0 disables.
	Convergence int
	Seed        int64
	Style       string
	GamesPerEval int
	// Parallel lets eaopt evaluate individuals concurrently.
	Parallel bool

	// Progress, when set, fires once per generation.
	Progress func(generation uint, best, avg float64)
}

// DefaultEaoptConfig mirrors the house loop's defaults.
func DefaultEaoptConfig() *EaoptConfig {
	return &EaoptConfig{
		PopulationSize: 100,
		Generations:    100,
		MutationRate:   0.9,
		CrossoverRate:  0.7,
		EliteCount:     10,
		TournamentSize: 3,
		HallOfFame:     5,
		Style:          "balanced",
		GamesPerEval:   100,
		Parallel:       true,
	}
}

func (c *EaoptConfig) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("population size must be at least 2, got %d", c.PopulationSize)
	}
	if c.Generations < 1 {
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be in [0,1], got %f", c.MutationRate)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be in [0,1], got %f", c.CrossoverRate)
	}
	if c.EliteCount < 0 || c.EliteCount >= c.PopulationSize {
		return fmt.Errorf("elite count must be in [0,%d), got %d", c.PopulationSize, c.EliteCount)
	}
	if c.TournamentSize < 1 || c.TournamentSize > c.PopulationSize {
		return fmt.Errorf("tournament size must be in [1,%d], got %d", c.PopulationSize, c.TournamentSize)
	}
	if c.HallOfFame < 1 {
		return fmt.Errorf("hall of fame must hold at least 1, got %d", c.HallOfFame)
	}
	if c.Convergence < 0 {
		return fmt.Errorf("convergence must be non-negative, got %d", c.Convergence)
	}
	if c.GamesPerEval < 1 {
		return fmt.Errorf("games per evaluation must be positive, got %d", c.GamesPerEval)
	}
	if _, ok := fitness.ByName(c.Style); !ok {
		return fmt.Errorf("unknown fitness style %q", c.Style)
	}
	return nil
}

// gaGenome adapts a game genome to eaopt's Genome interface. eaopt
// minimises, so Evaluate hands back the negated fitness. All genomes
// share one batch seed: evaluating every candidate on the same deals
// keeps score differences about the rules, not the shuffle.
type gaGenome struct {
	g        *genome.GameGenome
	eval     *Evaluator
	games    int
	seed     uint64
	pipeline *operators.MutationPipeline
	xover    *SinglePointCrossover
}

func (x *gaGenome) Evaluate() (float64, error) {
	m := x.eval.evaluateOne(x.g, BatchSpec{Games: x.games}, x.seed)
	return -m.Total, nil
}

func (x *gaGenome) Mutate(rng *rand.Rand) {
	x.pipeline.Apply(x.g, rng)
}

func (x *gaGenome) Crossover(other eaopt.Genome, rng *rand.Rand) {
	o, ok := other.(*gaGenome)
	if !ok {
		return
	}
	c1, c2 := x.xover.Crossover(x.g, o.g, rng)
	if genome.IsValid(c1) && operators.Coherent(c1) {
		x.g = c1
	}
	if genome.IsValid(c2) && operators.Coherent(c2) {
		o.g = c2
	}
}

func (x *gaGenome) Clone() eaopt.Genome {
	clone := *x
	clone.g = x.g.Clone()
	return &clone
}

// elitismModel is a generational model with the top slice carried over
// unchanged. eaopt's stock models lack elitism, which the loop needs so
// a lucky catalogue seed cannot be bred away before it reproduces.
type elitismModel struct {
	Selector  eaopt.Selector
	Elite     uint
	MutRate   float64
	CrossRate float64
}

func (mod elitismModel) Apply(pop *eaopt.Population) error {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	elite := mod.Elite
	if elite > uint(len(pop.Individuals)) {
		elite = uint(len(pop.Individuals))
	}

	pop.Individuals.SortByFitness()

	var elites eaopt.Individuals
	if elite > 0 {
		elites = pop.Individuals[:elite].Clone(pop.RNG)
	}

	want := uint(len(pop.Individuals)) - elite
	if want > 0 {
		offspring := make(eaopt.Individuals, 0, want)
		for uint(len(offspring)) < want {
			selected, _, err := mod.Selector.Apply(2, pop.Individuals, pop.RNG)
			if err != nil {
				return err
			}
			if pop.RNG.Float64() < mod.CrossRate {
				selected[0].Crossover(selected[1], pop.RNG)
			}
			offspring = append(offspring, selected[0])
			if uint(len(offspring)) < want {
				offspring = append(offspring, selected[1])
			}
		}
		if mod.MutRate > 0 {
			offspring.Mutate(mod.MutRate, pop.RNG)
		}
		copy(pop.Individuals, elites)
		copy(pop.Individuals[elite:], offspring)
		return nil
	}

	copy(pop.Individuals, elites)
	return nil
}

func (mod elitismModel) Validate() error {
	if mod.Selector == nil {
		return fmt.Errorf("selector cannot be nil")
	}
	if err := mod.Selector.Validate(); err != nil {
		return err
	}
	if mod.MutRate < 0 || mod.MutRate > 1 {
		return fmt.Errorf("mutation rate must be in [0,1], got %f", mod.MutRate)
	}
	if mod.CrossRate < 0 || mod.CrossRate > 1 {
		return fmt.Errorf("crossover rate must be in [0,1], got %f", mod.CrossRate)
	}
	return nil
}

// RunEaopt evolves on the eaopt backend and returns the hall of fame,
// best first, with fitness signs restored.
func RunEaopt(cfg *EaoptConfig) ([]*Individual, error) {
	if cfg == nil {
		cfg = DefaultEaoptConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("eaopt config: %w", err)
	}

	style, _ := fitness.ByName(cfg.Style)
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	evaluator := NewEvaluator(style, 0)
	pipeline := operators.NewDefaultPipeline()
	xover := NewSinglePointCrossover(cfg.CrossoverRate)
	seeds := genome.GetSeedGenomes()

	var (
		bestScore    = math.Inf(-1)
		lastImproved uint
	)

	gaConfig := eaopt.GAConfig{
		NPops:        1,
		PopSize:      uint(cfg.PopulationSize),
		NGenerations: uint(cfg.Generations),
		HofSize:      uint(cfg.HallOfFame),
		Model: elitismModel{
			Selector:  eaopt.SelTournament{NContestants: uint(cfg.TournamentSize)},
			Elite:     uint(cfg.EliteCount),
			MutRate:   cfg.MutationRate,
			CrossRate: cfg.CrossoverRate,
		},
		ParallelEval: cfg.Parallel,
		RNG:          rng,
		Callback: func(ga *eaopt.GA) {
			if cfg.Progress == nil || len(ga.HallOfFame) == 0 || len(ga.Populations) == 0 {
				return
			}
			cfg.Progress(ga.Generations,
				-ga.HallOfFame[0].Fitness,
				-ga.Populations[0].Individuals.FitAvg())
		},
		EarlyStop: func(ga *eaopt.GA) bool {
			if len(ga.HallOfFame) == 0 {
				return false
			}
			if current := -ga.HallOfFame[0].Fitness; current > bestScore {
				bestScore = current
				lastImproved = ga.Generations
			}
			return cfg.Convergence > 0 && ga.Generations >= lastImproved+uint(cfg.Convergence)
		},
	}

	ga, err := gaConfig.NewGA()
	if err != nil {
		return nil, fmt.Errorf("eaopt setup: %w", err)
	}

	// The factory deals the catalogue first, then mutants of it; same
	// warm start as the house loop with SeedRatio pinned by catalogue
	// size.
	next := 0
	batchSeed := uint64(seed)
	factory := func(rng *rand.Rand) eaopt.Genome {
		var g *genome.GameGenome
		if next < len(seeds) {
			g = seeds[next].Clone()
			next++
		} else {
			base := seeds[rng.Intn(len(seeds))]
			g = base.Clone()
			g.ID = fmt.Sprintf("ea-%08x", rng.Uint32())
			g.ParentIDs = []string{base.ID}
			for r, rounds := 0, 1+rng.Intn(3); r < rounds; r++ {
				pipeline.Apply(g, rng)
			}
		}
		return &gaGenome{
			g:        g,
			eval:     evaluator,
			games:    cfg.GamesPerEval,
			seed:     batchSeed,
			pipeline: pipeline,
			xover:    xover,
		}
	}

	if err := ga.Minimize(factory); err != nil {
		return nil, fmt.Errorf("eaopt run: %w", err)
	}

	hall := make([]*Individual, 0, len(ga.HallOfFame))
	for _, indi := range ga.HallOfFame {
		wrapped, ok := indi.Genome.(*gaGenome)
		if !ok || wrapped.g == nil {
			continue
		}
		hall = append(hall, &Individual{
			Genome:    wrapped.g.Clone(),
			Fitness:   -indi.Fitness,
			Evaluated: true,
		})
	}
	if len(hall) == 0 {
		return nil, fmt.Errorf("eaopt run produced no finishers")
	}
	return hall, nil
}
