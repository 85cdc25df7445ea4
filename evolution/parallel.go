package evolution

import (
	"runtime"
	"sync"

	"github.com/signalnine/darwindeck/gosim/evolution/fitness"
	"github.com/signalnine/darwindeck/gosim/evolution/operators"
	"github.com/signalnine/darwindeck/gosim/genome"
	"github.com/signalnine/darwindeck/gosim/simulation"
)

// BatchSpec sizes one round of fitness evaluation. Seed fans out to
// per-genome seeds, so a round is reproducible for a given spec.
type BatchSpec struct {
	Games   int
	UseMCTS bool
	Seed    uint64
}

// Evaluator scores genomes against a fitness style, fanning the work
// across a goroutine pool. Genomes are independent, so workers share
// nothing but the task channel.
type Evaluator struct {
	Style   fitness.Style
	Workers int
}

// NewEvaluator builds an evaluator. workers <= 0 means one per CPU.
func NewEvaluator(style fitness.Style, workers int) *Evaluator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Evaluator{Style: style, Workers: workers}
}

type evalTask struct {
	index int
	g     *genome.GameGenome
	seed  uint64
}

type evalResult struct {
	index   int
	metrics *fitness.Metrics
}

// EvaluateGenomes scores a slice of genomes, returning metrics in input
// order.
func (ev *Evaluator) EvaluateGenomes(genomes []*genome.GameGenome, spec BatchSpec) []*fitness.Metrics {
	if len(genomes) == 0 {
		return nil
	}

	tasks := make(chan evalTask, len(genomes))
	results := make(chan evalResult, len(genomes))

	workers := ev.Workers
	if workers > len(genomes) {
		workers = len(genomes)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				results <- evalResult{
					index:   task.index,
					metrics: ev.evaluateOne(task.g, spec, task.seed),
				}
			}
		}()
	}

	// Per-genome seeds derive from the batch seed by index, not by
	// scheduling order, so worker count cannot change the scores.
	for i, g := range genomes {
		tasks <- evalTask{index: i, g: g, seed: spec.Seed + uint64(i)*0x9e3779b97f4a7c15}
	}
	close(tasks)

	go func() {
		wg.Wait()
		close(results)
	}()

	metrics := make([]*fitness.Metrics, len(genomes))
	for res := range results {
		metrics[res.index] = res.metrics
	}
	return metrics
}

// evaluateOne scores a single genome. Structural or coherence failures
// short-circuit to a zero score without touching the VM; compile
// failures land the same way.
func (ev *Evaluator) evaluateOne(g *genome.GameGenome, spec BatchSpec, seed uint64) *fitness.Metrics {
	if !genome.IsValid(g) || !operators.Coherent(g) {
		return &fitness.Metrics{}
	}

	seat := simulation.AIConfig{Policy: simulation.PolicyRandom}
	if spec.UseMCTS {
		seat = simulation.AIConfig{Policy: simulation.PolicyMCTS, MCTSIterations: 100}
	}

	// Workers: 1 keeps each batch on its own goroutine; the pool above
	// already owns the parallelism.
	stats, err := simulation.RunGenomeBatch(g, simulation.Options{
		Games:   spec.Games,
		Seats:   []simulation.AIConfig{seat},
		Seed:    seed,
		Workers: 1,
	})
	if err != nil {
		return &fitness.Metrics{}
	}

	return fitness.Compute(g, &stats, ev.Style)
}

// EvaluateIndividuals scores the given individuals in place.
func (ev *Evaluator) EvaluateIndividuals(individuals []*Individual, spec BatchSpec) {
	if len(individuals) == 0 {
		return
	}

	genomes := make([]*genome.GameGenome, len(individuals))
	for i, ind := range individuals {
		genomes[i] = ind.Genome
	}

	for i, m := range ev.EvaluateGenomes(genomes, spec) {
		individuals[i].Fitness = m.Total
		individuals[i].Metrics = m
		individuals[i].Evaluated = true
	}
}
