// Package evolution runs the genetic loop over game genomes: seeding,
// tournament selection, elitism, crossover, mutation, diversity
// maintenance, checkpointing, and skill re-evaluation of finalists.
package evolution

import (
	"fmt"
	"math/rand"

	"github.com/signalnine/darwindeck/gosim/genome"
)

// Offspring phase lists stay inside this band. Mutation can grow a
// genome past it, but a crossover cut that would produce a sprawling or
// empty turn structure is re-rolled instead.
const (
	crossMinPhases = 1
	crossMaxPhases = 5
)

// CrossoverOperator recombines two parents into two children.
type CrossoverOperator interface {
	Crossover(p1, p2 *genome.GameGenome, rng *rand.Rand) (*genome.GameGenome, *genome.GameGenome)
	Probability() float64
}

// newChild clones base as offspring of the pair: fresh id, both parents
// recorded, generation bumped past the older parent.
func newChild(base, other *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	child := base.Clone()
	child.ID = fmt.Sprintf("cross-%08x", rng.Uint32())
	child.ParentIDs = []string{base.ID, other.ID}
	gen := base.Generation
	if other.Generation > gen {
		gen = other.Generation
	}
	child.Generation = gen + 1
	return child
}

// cloneChild is the no-crossover offspring: one parent, fresh id.
func cloneChild(parent *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	child := parent.Clone()
	child.ID = fmt.Sprintf("clone-%08x", rng.Uint32())
	child.ParentIDs = []string{parent.ID}
	child.Generation = parent.Generation + 1
	return child
}

// deriveTrickFlag recomputes the trick marker from the phases actually
// present. Crossover assembles phase lists from both parents, so a flag
// copied from either one can be stale.
func deriveTrickFlag(g *genome.GameGenome) {
	g.TurnStructure.IsTrickBased = g.HasPhase(genome.PhaseTypeTrick)
}

// splicePhases cuts both parents' phase lists at random points and
// swaps the tails. Cut pairs whose children would leave the phase band
// are re-rolled; ok reports false when no legal pair turned up and the
// caller should keep the parents' own lists.
func splicePhases(p1, p2 *genome.GameGenome, rng *rand.Rand) ([]genome.Phase, []genome.Phase, bool) {
	ph1, ph2 := p1.TurnStructure.Phases, p2.TurnStructure.Phases
	if len(ph1) == 0 || len(ph2) == 0 {
		return nil, nil, false
	}

	for try := 0; try < 8; try++ {
		cut1 := rng.Intn(len(ph1) + 1)
		cut2 := rng.Intn(len(ph2) + 1)
		n1 := cut1 + len(ph2) - cut2
		n2 := cut2 + len(ph1) - cut1
		if n1 < crossMinPhases || n1 > crossMaxPhases ||
			n2 < crossMinPhases || n2 > crossMaxPhases {
			continue
		}

		c1 := make([]genome.Phase, 0, n1)
		for _, p := range ph1[:cut1] {
			c1 = append(c1, genome.ClonePhase(p))
		}
		for _, p := range ph2[cut2:] {
			c1 = append(c1, genome.ClonePhase(p))
		}

		c2 := make([]genome.Phase, 0, n2)
		for _, p := range ph2[:cut2] {
			c2 = append(c2, genome.ClonePhase(p))
		}
		for _, p := range ph1[cut1:] {
			c2 = append(c2, genome.ClonePhase(p))
		}
		return c1, c2, true
	}
	return nil, nil, false
}

// SinglePointCrossover swaps phase-list tails at one cut per parent.
// Everything outside the turn structure stays with its own parent.
type SinglePointCrossover struct {
	probability float64
}

func NewSinglePointCrossover(probability float64) *SinglePointCrossover {
	return &SinglePointCrossover{probability: probability}
}

func (c *SinglePointCrossover) Probability() float64 {
	return c.probability
}

func (c *SinglePointCrossover) Crossover(p1, p2 *genome.GameGenome, rng *rand.Rand) (*genome.GameGenome, *genome.GameGenome) {
	child1 := newChild(p1, p2, rng)
	child2 := newChild(p2, p1, rng)

	if ph1, ph2, ok := splicePhases(p1, p2, rng); ok {
		child1.TurnStructure.Phases = ph1
		child2.TurnStructure.Phases = ph2
	}

	deriveTrickFlag(child1)
	deriveTrickFlag(child2)
	return child1, child2
}

// UniformCrossover swaps each rule block between the children with even
// odds, with the phase lists recombined by the same bounded splice.
type UniformCrossover struct {
	probability float64
}

func NewUniformCrossover(probability float64) *UniformCrossover {
	return &UniformCrossover{probability: probability}
}

func (c *UniformCrossover) Probability() float64 {
	return c.probability
}

func (c *UniformCrossover) Crossover(p1, p2 *genome.GameGenome, rng *rand.Rand) (*genome.GameGenome, *genome.GameGenome) {
	child1 := newChild(p1, p2, rng)
	child2 := newChild(p2, p1, rng)

	if rng.Float64() < 0.5 {
		child1.Setup.CardsPerPlayer, child2.Setup.CardsPerPlayer =
			child2.Setup.CardsPerPlayer, child1.Setup.CardsPerPlayer
	}
	if rng.Float64() < 0.5 {
		child1.Setup.DealToTableau, child2.Setup.DealToTableau =
			child2.Setup.DealToTableau, child1.Setup.DealToTableau
	}
	if rng.Float64() < 0.5 {
		child1.Setup.TableauSize, child2.Setup.TableauSize =
			child2.Setup.TableauSize, child1.Setup.TableauSize
	}
	if rng.Float64() < 0.5 {
		child1.TurnStructure.MaxTurns, child2.TurnStructure.MaxTurns =
			child2.TurnStructure.MaxTurns, child1.TurnStructure.MaxTurns
	}
	if rng.Float64() < 0.5 {
		child1.TurnStructure.TableauMode, child2.TurnStructure.TableauMode =
			child2.TurnStructure.TableauMode, child1.TurnStructure.TableauMode
	}
	if rng.Float64() < 0.5 {
		child1.TurnStructure.SequenceDirection, child2.TurnStructure.SequenceDirection =
			child2.TurnStructure.SequenceDirection, child1.TurnStructure.SequenceDirection
	}

	if ph1, ph2, ok := splicePhases(p1, p2, rng); ok {
		child1.TurnStructure.Phases = ph1
		child2.TurnStructure.Phases = ph2
	}

	if rng.Float64() < 0.5 {
		child1.WinConditions, child2.WinConditions =
			child2.WinConditions, child1.WinConditions
	}
	if rng.Float64() < 0.5 {
		child1.CardScoring, child2.CardScoring =
			child2.CardScoring, child1.CardScoring
	}
	if rng.Float64() < 0.5 {
		child1.SpecialEffects, child2.SpecialEffects =
			child2.SpecialEffects, child1.SpecialEffects
	}

	// The economy travels as one unit: splitting chips from betting
	// phases breeds incoherent children the offspring gate then burns.
	if rng.Float64() < 0.5 {
		child1.Setup.StartingChips, child2.Setup.StartingChips =
			child2.Setup.StartingChips, child1.Setup.StartingChips
		swapPhaseKind(child1, child2, genome.PhaseTypeBetting)
	}

	// Hand evaluation rides with the win conditions it backs only when
	// both parents carry one; otherwise swapping strands a showdown win.
	if child1.HandEvaluation != nil && child2.HandEvaluation != nil && rng.Float64() < 0.5 {
		child1.HandEvaluation, child2.HandEvaluation =
			child2.HandEvaluation, child1.HandEvaluation
	}
	if rng.Float64() < 0.5 {
		child1.Teams, child2.Teams = child2.Teams, child1.Teams
	}

	deriveTrickFlag(child1)
	deriveTrickFlag(child2)
	return child1, child2
}

// swapPhaseKind moves every phase of one type from each child to the
// other, keeping list order otherwise.
func swapPhaseKind(a, b *genome.GameGenome, tag uint8) {
	fromA, restA := extractPhases(a.TurnStructure.Phases, tag)
	fromB, restB := extractPhases(b.TurnStructure.Phases, tag)
	a.TurnStructure.Phases = append(fromB, restA...)
	b.TurnStructure.Phases = append(fromA, restB...)
}

func extractPhases(phases []genome.Phase, tag uint8) (matched, rest []genome.Phase) {
	for _, p := range phases {
		if p.PhaseType() == tag {
			matched = append(matched, p)
		} else {
			rest = append(rest, p)
		}
	}
	return matched, rest
}
