package evolution

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/signalnine/darwindeck/gosim/evolution/fitness"
	"github.com/signalnine/darwindeck/gosim/evolution/operators"
	"github.com/signalnine/darwindeck/gosim/genome"
)

// EvolutionConfig holds the knobs for one evolutionary run.
type EvolutionConfig struct {
	// PopulationSize is the number of individuals per generation.
	PopulationSize int
	// Generations caps the run; plateau detection may stop it earlier.
	Generations int
	// ElitismRate is the top share copied unchanged into the next
	// generation, keeping their fitness scores.
	ElitismRate float64
	// CrossoverRate is the chance a parent pair recombines; pairs that
	// skip it contribute mutated clones instead.
	CrossoverRate float64
	// TournamentSize is the selection tournament's sample size.
	TournamentSize int
	// PlateauWindow stops the run after this many generations without
	// the best fitness improving by ImprovementThreshold. 0 disables.
	PlateauWindow        int
	ImprovementThreshold float64
	// DiversityFloor switches the mutation registry to the aggressive
	// rates while population diversity sits below it.
	DiversityFloor float64
	// SeedRatio is the share of the initial population dealt as plain
	// replicas of the known-game catalogue; the rest are mutants of it.
	SeedRatio float64
	// Seed fixes the run's randomness. 0 draws from the clock.
	Seed int64
	// Style names the fitness preset (balanced, strategic, bluffing,
	// party, trick-taking).
	Style string
	// PlayerCount filters the seed catalogue to games with this many
	// seats. 0 keeps every seed.
	PlayerCount int
	// Workers sizes the evaluation pool. 0 means one per CPU.
	Workers int
	// GamesPerEval is the batch size behind each fitness score.
	GamesPerEval int
	// UseMCTS evaluates with search players instead of random ones.
	// Slower, but decision metrics stop underrating deep games.
	UseMCTS bool
	// SkipSkillEval drops the final top-N skill re-evaluation.
	SkipSkillEval bool
	// SkillTopN and SkillGames size that re-evaluation.
	SkillTopN  int
	SkillGames int
	Verbose    bool
}

// DefaultConfig returns a runnable starting point.
func DefaultConfig() *EvolutionConfig {
	return &EvolutionConfig{
		PopulationSize:       100,
		Generations:          100,
		ElitismRate:          0.1,
		CrossoverRate:        0.7,
		TournamentSize:       3,
		PlateauWindow:        0,
		ImprovementThreshold: 0.005,
		DiversityFloor:       DiversityFloor,
		SeedRatio:            0.7,
		Style:                "balanced",
		GamesPerEval:         100,
		SkillTopN:            5,
		SkillGames:           200,
	}
}

// Validate rejects configurations the loop cannot run.
func (c *EvolutionConfig) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("population size must be at least 2, got %d", c.PopulationSize)
	}
	if c.Generations < 1 {
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	}
	if c.ElitismRate < 0 || c.ElitismRate >= 1 {
		return fmt.Errorf("elitism rate must be in [0,1), got %f", c.ElitismRate)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be in [0,1], got %f", c.CrossoverRate)
	}
	if c.TournamentSize < 1 || c.TournamentSize > c.PopulationSize {
		return fmt.Errorf("tournament size must be in [1,%d], got %d", c.PopulationSize, c.TournamentSize)
	}
	if c.SeedRatio < 0 || c.SeedRatio > 1 {
		return fmt.Errorf("seed ratio must be in [0,1], got %f", c.SeedRatio)
	}
	if c.PlateauWindow < 0 {
		return fmt.Errorf("plateau window must be non-negative, got %d", c.PlateauWindow)
	}
	if c.ImprovementThreshold < 0 {
		return fmt.Errorf("improvement threshold must be non-negative, got %f", c.ImprovementThreshold)
	}
	if c.GamesPerEval < 1 {
		return fmt.Errorf("games per evaluation must be positive, got %d", c.GamesPerEval)
	}
	if c.PlayerCount != 0 && (c.PlayerCount < 2 || c.PlayerCount > genome.MaxPlayers) {
		return fmt.Errorf("player count must be 0 or 2..%d, got %d", genome.MaxPlayers, c.PlayerCount)
	}
	if _, ok := fitness.ByName(c.Style); !ok {
		return fmt.Errorf("unknown fitness style %q", c.Style)
	}
	if !c.SkipSkillEval {
		if c.SkillTopN < 1 {
			return fmt.Errorf("skill top-n must be positive, got %d", c.SkillTopN)
		}
		if c.SkillGames < 2 {
			return fmt.Errorf("skill games must be at least 2, got %d", c.SkillGames)
		}
	}
	return nil
}

// GenerationStats is one generation's summary line.
type GenerationStats struct {
	Generation  int       `json:"generation"`
	BestFitness float64   `json:"best_fitness"`
	BestID      string    `json:"best_id"`
	AvgFitness  float64   `json:"avg_fitness"`
	Diversity   float64   `json:"diversity"`
	Evaluated   int       `json:"evaluated"`
	Aggressive  bool      `json:"aggressive"`
	Timestamp   time.Time `json:"timestamp"`
}

// EvolutionEngine drives the loop: evaluate, record, select, recombine,
// mutate, repeat.
type EvolutionEngine struct {
	Config     *EvolutionConfig
	Population *Population
	History    []GenerationStats
	BestEver   *Individual

	// OnGenerationComplete fires after each generation's bookkeeping,
	// before the next is bred. Progress bars and the stats store hang
	// off this.
	OnGenerationComplete func(GenerationStats)

	rng        *rand.Rand
	style      fitness.Style
	evaluator  *Evaluator
	pipeline   *operators.MutationPipeline
	single     *SinglePointCrossover
	uniform    *UniformCrossover
	aggressive bool

	// Plateau bookkeeping: the generation whose best-ever improvement
	// last cleared the threshold.
	lastImproved int
}

// NewEvolutionEngine validates the config and wires the loop together.
func NewEvolutionEngine(config *EvolutionConfig) (*EvolutionEngine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("evolution config: %w", err)
	}

	style, _ := fitness.ByName(config.Style)

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &EvolutionEngine{
		Config:    config,
		History:   make([]GenerationStats, 0, config.Generations),
		rng:       rand.New(rand.NewSource(seed)),
		style:     style,
		evaluator: NewEvaluator(style, config.Workers),
		pipeline:  operators.NewDefaultPipeline(),
		single:    NewSinglePointCrossover(config.CrossoverRate),
		uniform:   NewUniformCrossover(config.CrossoverRate),
	}, nil
}

// InitializePopulation deals the starting population: SeedRatio worth
// of catalogue replicas, the rest mutants bred from random seeds with
// one to three mutation rounds.
func (e *EvolutionEngine) InitializePopulation() error {
	seeds := genome.GetSeedGenomes()
	if e.Config.PlayerCount > 0 {
		filtered := seeds[:0]
		for _, s := range seeds {
			if s.Players() == e.Config.PlayerCount {
				filtered = append(filtered, s)
			}
		}
		seeds = filtered
	}
	if len(seeds) == 0 {
		return fmt.Errorf("no seed genomes for %d players", e.Config.PlayerCount)
	}

	size := e.Config.PopulationSize
	replicas := int(float64(size) * e.Config.SeedRatio)
	if replicas > size {
		replicas = size
	}

	individuals := make([]*Individual, 0, size)
	for i := 0; i < replicas; i++ {
		g := seeds[i%len(seeds)].Clone()
		if i >= len(seeds) {
			g.ID = fmt.Sprintf("%s-r%d", g.ID, i/len(seeds))
		}
		individuals = append(individuals, &Individual{Genome: g})
	}

	for len(individuals) < size {
		base := seeds[e.rng.Intn(len(seeds))]
		g := base.Clone()
		g.ID = fmt.Sprintf("mut-%08x", e.rng.Uint32())
		g.ParentIDs = []string{base.ID}

		rounds := 1 + e.rng.Intn(3)
		for r := 0; r < rounds; r++ {
			e.pipeline.Apply(g, e.rng)
		}
		individuals = append(individuals, &Individual{Genome: g})
	}

	e.Population = NewPopulation(individuals)

	if e.Config.Verbose {
		log.Printf("population seeded: %d replicas of %d known games, %d mutants",
			replicas, len(seeds), size-replicas)
	}
	return nil
}

// EvaluatePopulation scores every pending individual.
func (e *EvolutionEngine) EvaluatePopulation() {
	pending := e.Population.Unevaluated()
	if len(pending) == 0 {
		return
	}
	e.evaluator.EvaluateIndividuals(pending, BatchSpec{
		Games:   e.Config.GamesPerEval,
		UseMCTS: e.Config.UseMCTS,
		Seed:    e.rng.Uint64(),
	})
	if e.Config.Verbose {
		log.Printf("evaluated %d individuals, avg fitness %.3f",
			len(pending), e.Population.AverageFitness())
	}
}

// Evolve runs the loop until the generation cap, a plateau, or ctx
// cancellation. The population left on the engine is always evaluated,
// so a cancelled run still checkpoints and reports cleanly.
func (e *EvolutionEngine) Evolve(ctx context.Context) error {
	if e.Population == nil {
		if err := e.InitializePopulation(); err != nil {
			return err
		}
	}
	e.EvaluatePopulation()

	for gen := e.Population.Generation; gen < e.Config.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		stats := e.recordGeneration(gen)
		if e.OnGenerationComplete != nil {
			e.OnGenerationComplete(stats)
		}
		if e.Config.Verbose {
			log.Printf("gen %d: best %.4f avg %.4f diversity %.4f",
				gen, stats.BestFitness, stats.AvgFitness, stats.Diversity)
		}

		e.adjustPressure(stats.Diversity)

		if e.plateaued(gen) {
			if e.Config.Verbose {
				log.Printf("plateau: no improvement for %d generations, stopping", e.Config.PlateauWindow)
			}
			break
		}

		e.Population = NewPopulation(e.breed())
		e.Population.Generation = gen + 1
		e.EvaluatePopulation()
	}

	if !e.Config.SkipSkillEval {
		if err := e.rescoreFinalists(ctx); err != nil {
			return err
		}
	}
	return nil
}

// recordGeneration snapshots the generation and advances the best-ever
// and plateau bookkeeping.
func (e *EvolutionEngine) recordGeneration(gen int) GenerationStats {
	best := e.Population.Best()
	stats := GenerationStats{
		Generation: gen,
		AvgFitness: e.Population.AverageFitness(),
		Diversity:  e.Population.Diversity(),
		Evaluated:  e.Population.Size(),
		Aggressive: e.aggressive,
		Timestamp:  time.Now(),
	}
	if best != nil {
		stats.BestFitness = best.Fitness
		stats.BestID = best.Genome.ID

		if e.BestEver == nil {
			e.BestEver = best.Clone()
			e.lastImproved = gen
		} else if best.Fitness > e.BestEver.Fitness {
			prev := e.BestEver.Fitness
			if prev <= 0 || (best.Fitness-prev)/prev >= e.Config.ImprovementThreshold {
				e.lastImproved = gen
			}
			e.BestEver = best.Clone()
		}
	}
	e.History = append(e.History, stats)
	return stats
}

// adjustPressure flips the mutation registry between the default and
// aggressive rates around the diversity floor. The switch back waits
// for half again the floor so a population sitting on the line does not
// thrash between registries.
func (e *EvolutionEngine) adjustPressure(diversity float64) {
	floor := e.Config.DiversityFloor
	switch {
	case !e.aggressive && diversity < floor:
		e.aggressive = true
		e.pipeline = operators.NewAggressivePipeline()
		if e.Config.Verbose {
			log.Printf("diversity %.4f below floor %.4f, mutation pressure up", diversity, floor)
		}
	case e.aggressive && diversity > floor*1.5:
		e.aggressive = false
		e.pipeline = operators.NewDefaultPipeline()
		if e.Config.Verbose {
			log.Printf("diversity recovered to %.4f, mutation pressure normal", diversity)
		}
	}
}

func (e *EvolutionEngine) plateaued(gen int) bool {
	return e.Config.PlateauWindow > 0 && gen-e.lastImproved >= e.Config.PlateauWindow
}

// breed builds the next generation: elites carried as-is, the rest bred
// by tournament pairs. Recombined children that fail the structural or
// coherence check fall back to a clone of their primary parent; the
// mutation pipeline gates itself.
func (e *EvolutionEngine) breed() []*Individual {
	size := e.Config.PopulationSize
	next := make([]*Individual, 0, size)

	for _, elite := range SelectEliteByRate(e.Population, e.Config.ElitismRate) {
		next = append(next, elite.Clone())
	}

	for len(next) < size {
		p1 := TournamentSelection(e.Population, e.Config.TournamentSize, e.rng)
		p2 := TournamentSelection(e.Population, e.Config.TournamentSize, e.rng)

		var c1, c2 *genome.GameGenome
		if e.rng.Float64() < e.Config.CrossoverRate {
			if e.rng.Float64() < 0.5 {
				c1, c2 = e.single.Crossover(p1.Genome, p2.Genome, e.rng)
			} else {
				c1, c2 = e.uniform.Crossover(p1.Genome, p2.Genome, e.rng)
			}
			if !genome.IsValid(c1) || !operators.Coherent(c1) {
				c1 = cloneChild(p1.Genome, e.rng)
			}
			if !genome.IsValid(c2) || !operators.Coherent(c2) {
				c2 = cloneChild(p2.Genome, e.rng)
			}
		} else {
			c1 = cloneChild(p1.Genome, e.rng)
			c2 = cloneChild(p2.Genome, e.rng)
		}

		e.pipeline.Apply(c1, e.rng)
		e.pipeline.Apply(c2, e.rng)

		next = append(next, &Individual{Genome: c1})
		if len(next) < size {
			next = append(next, &Individual{Genome: c2})
		}
	}
	return next[:size]
}

// rescoreFinalists reruns the top finishers against skill benchmarks
// and applies the luck and seat-bias penalties to their fitness.
func (e *EvolutionEngine) rescoreFinalists(ctx context.Context) error {
	finalists := SelectElite(e.Population, e.Config.SkillTopN)
	if len(finalists) == 0 {
		return nil
	}
	if e.Config.Verbose {
		log.Printf("skill re-evaluation of top %d", len(finalists))
	}

	reports, err := RankSkill(ctx, finalists, SkillSpec{
		Games:   e.Config.SkillGames,
		Workers: e.Config.Workers,
		Seed:    e.rng.Uint64(),
	})
	if err != nil {
		return fmt.Errorf("skill evaluation: %w", err)
	}

	for i, ind := range finalists {
		mult := reports[i].Penalty()
		if mult == 1.0 {
			continue
		}
		ind.Fitness *= mult
		if e.BestEver != nil && e.BestEver.Genome.ID == ind.Genome.ID {
			e.BestEver.Fitness = ind.Fitness
		}
		if e.Config.Verbose {
			log.Printf("%s: skill %.2f/%.2f fpa %+.2f, fitness cut to %.4f",
				ind.Genome.ID, reports[i].GreedyWinRate, reports[i].MCTSWinRate,
				reports[i].FirstPlayerAdvantage, ind.Fitness)
		}
	}
	return nil
}

// TopGenomes returns up to n distinct finishers, best-ever first, then
// the current population by fitness with duplicate ids skipped.
func (e *EvolutionEngine) TopGenomes(n int) []*Individual {
	if e.Population == nil {
		return nil
	}

	seen := make(map[string]bool)
	top := make([]*Individual, 0, n)
	if e.BestEver != nil {
		seen[e.BestEver.Genome.ID] = true
		top = append(top, e.BestEver)
	}
	for _, ind := range e.Population.Ranked() {
		if len(top) >= n {
			break
		}
		if seen[ind.Genome.ID] {
			continue
		}
		seen[ind.Genome.ID] = true
		top = append(top, ind)
	}
	return top
}
