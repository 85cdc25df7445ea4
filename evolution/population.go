package evolution

import (
	"math"
	"sort"

	"github.com/signalnine/darwindeck/gosim/evolution/fitness"
	"github.com/signalnine/darwindeck/gosim/genome"
)

// DiversityFloor is the population diversity below which the engine
// switches to the aggressive mutation registry.
const DiversityFloor = 0.1

// Pairwise distance over more individuals than this gets quadratic;
// larger populations are strided down to this many before comparing.
const diversitySample = 64

// Individual pairs a genome with its evaluation.
type Individual struct {
	Genome    *genome.GameGenome
	Fitness   float64
	Evaluated bool
	Metrics   *fitness.Metrics
}

// Clone deep-copies the individual, including its metrics snapshot.
func (ind *Individual) Clone() *Individual {
	c := &Individual{
		Genome:    ind.Genome.Clone(),
		Fitness:   ind.Fitness,
		Evaluated: ind.Evaluated,
	}
	if ind.Metrics != nil {
		m := *ind.Metrics
		c.Metrics = &m
	}
	return c
}

// Population is one generation's worth of individuals.
type Population struct {
	Individuals []*Individual
	Generation  int
}

func NewPopulation(individuals []*Individual) *Population {
	return &Population{Individuals: individuals}
}

func (p *Population) Size() int {
	return len(p.Individuals)
}

// Best returns the highest-fitness individual, or nil when empty.
func (p *Population) Best() *Individual {
	var best *Individual
	for _, ind := range p.Individuals {
		if best == nil || ind.Fitness > best.Fitness {
			best = ind
		}
	}
	return best
}

// AverageFitness averages over evaluated individuals only, so a
// half-evaluated generation does not read as a collapse.
func (p *Population) AverageFitness() float64 {
	var sum float64
	var n int
	for _, ind := range p.Individuals {
		if ind.Evaluated {
			sum += ind.Fitness
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Unevaluated returns the individuals still waiting on a fitness score.
func (p *Population) Unevaluated() []*Individual {
	var pending []*Individual
	for _, ind := range p.Individuals {
		if !ind.Evaluated {
			pending = append(pending, ind)
		}
	}
	return pending
}

// Ranked returns a copy of the individuals sorted best-first. Ties keep
// their population order so elitism is stable across runs.
func (p *Population) Ranked() []*Individual {
	ranked := make([]*Individual, len(p.Individuals))
	copy(ranked, p.Individuals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})
	return ranked
}

// Diversity is the mean pairwise structural distance, 0 for a converged
// population. Sampling is strided rather than random so the figure is
// reproducible for a given population.
func (p *Population) Diversity() float64 {
	inds := p.Individuals
	if len(inds) < 2 {
		return 0
	}
	if len(inds) > diversitySample {
		step := len(inds) / diversitySample
		sampled := make([]*Individual, 0, diversitySample)
		for i := 0; i < len(inds) && len(sampled) < diversitySample; i += step {
			sampled = append(sampled, inds[i])
		}
		inds = sampled
	}

	var total float64
	var pairs int
	for i := 0; i < len(inds); i++ {
		for j := i + 1; j < len(inds); j++ {
			total += GenomeDistance(inds[i].Genome, inds[j].Genome)
			pairs++
		}
	}
	return total / float64(pairs)
}

// GenomeDistance measures structural distance between two genomes in
// [0,1]. It reads the rule shape, not provenance: two clones score 0
// whatever their ids say.
func GenomeDistance(a, b *genome.GameGenome) float64 {
	var d, features float64

	// Phase shape: positional type mismatches against the longer list.
	// Catches reorderings that a plain length comparison misses.
	pa, pb := a.TurnStructure.Phases, b.TurnStructure.Phases
	longer := len(pa)
	if len(pb) > longer {
		longer = len(pb)
	}
	if longer > 0 {
		mismatches := 0
		for i := 0; i < longer; i++ {
			if i >= len(pa) || i >= len(pb) || pa[i].PhaseType() != pb[i].PhaseType() {
				mismatches++
			}
		}
		d += float64(mismatches) / float64(longer)
	}
	features++

	if a.TurnStructure.TableauMode != b.TurnStructure.TableauMode {
		d++
	}
	features++

	d += winTypeDistance(a, b)
	features++

	d += math.Min(1, math.Abs(float64(a.TurnStructure.MaxTurns)-float64(b.TurnStructure.MaxTurns))/1000)
	features++

	d += math.Min(1, math.Abs(float64(a.Setup.CardsPerPlayer-b.Setup.CardsPerPlayer))/26)
	features++

	if (a.Setup.StartingChips > 0) != (b.Setup.StartingChips > 0) {
		d++
	}
	features++

	if teamPlay(a) != teamPlay(b) {
		d++
	}
	features++

	d += math.Min(1, math.Abs(float64(len(a.SpecialEffects)-len(b.SpecialEffects)))/3)
	features++

	d += math.Min(1, math.Abs(float64(len(a.CardScoring)-len(b.CardScoring)))/4)
	features++

	return d / features
}

func teamPlay(g *genome.GameGenome) bool {
	return g.Teams != nil && g.Teams.Enabled
}

// winTypeDistance is the Jaccard distance over win condition types.
func winTypeDistance(a, b *genome.GameGenome) float64 {
	types := make(map[genome.WinConditionType]uint8)
	for _, w := range a.WinConditions {
		types[w.Type] |= 1
	}
	for _, w := range b.WinConditions {
		types[w.Type] |= 2
	}
	if len(types) == 0 {
		return 0
	}
	shared := 0
	for _, mask := range types {
		if mask == 3 {
			shared++
		}
	}
	return 1 - float64(shared)/float64(len(types))
}
