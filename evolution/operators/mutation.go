// Package operators provides the genetic mutation operators that evolve
// card game genomes. Every operator clones its input, changes one aspect
// of the rules, and hands the candidate back; the registry only keeps
// candidates that still describe a playable, coherent game.
package operators

import (
	"math/rand"

	"github.com/signalnine/darwindeck/gosim/genome"
)

// MutationOperator is one heritable rule change.
type MutationOperator interface {
	// Mutate returns a mutated copy of g. The input genome is never
	// modified. Operators that do not apply to g (removing a phase a
	// genome does not have, say) return an unchanged clone.
	Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome

	// Probability is the per-genome chance of this operator firing.
	Probability() float64

	// Name identifies the operator in logs and stats.
	Name() string
}

// BaseMutation carries the probability and name every operator shares.
type BaseMutation struct {
	probability float64
	name        string
}

// Probability returns the mutation probability.
func (m *BaseMutation) Probability() float64 {
	return m.probability
}

// Name returns the mutation name.
func (m *BaseMutation) Name() string {
	return m.name
}

// ShouldApply rolls the operator's probability.
func (m *BaseMutation) ShouldApply(rng *rand.Rand) bool {
	return rng.Float64() < m.probability
}

// Registry holds the available mutation operators in application order.
type Registry struct {
	operators []MutationOperator
}

// NewRegistry creates an empty mutation operator registry.
func NewRegistry() *Registry {
	return &Registry{
		operators: make([]MutationOperator, 0),
	}
}

// Register appends a mutation operator to the registry.
func (r *Registry) Register(op MutationOperator) {
	r.operators = append(r.operators, op)
}

// Operators returns all registered operators.
func (r *Registry) Operators() []MutationOperator {
	return r.operators
}

// ApplyAll rolls every registered operator against its probability and
// folds the hits into the genome in registration order. Each candidate
// is gated: one that fails the structural validator or the coherence
// check is discarded and the previous genome kept, so mutation can only
// step between playable rule sets.
func (r *Registry) ApplyAll(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	mutated := g
	for _, op := range r.operators {
		if rng.Float64() >= op.Probability() {
			continue
		}
		candidate := op.Mutate(mutated, rng)
		if candidate == nil {
			continue
		}
		if !genome.IsValid(candidate) || !Coherent(candidate) {
			continue
		}
		mutated = candidate
	}
	return mutated
}

// MutationPipeline wraps a Registry behind an in-place Apply.
type MutationPipeline struct {
	registry *Registry
}

// NewMutationPipeline creates a mutation pipeline from a registry.
func NewMutationPipeline(registry *Registry) *MutationPipeline {
	return &MutationPipeline{registry: registry}
}

// Apply mutates the genome in place.
func (p *MutationPipeline) Apply(g *genome.GameGenome, rng *rand.Rand) {
	mutated := p.registry.ApplyAll(g, rng)
	*g = *mutated
}

// NewDefaultPipeline assembles the full operator set at the default
// rates.
func NewDefaultPipeline() *MutationPipeline {
	registry := NewRegistry()

	RegisterSetupMutations(registry)
	RegisterPhaseMutations(registry)
	RegisterConditionMutations(registry)

	return NewMutationPipeline(registry)
}

// NewAggressivePipeline assembles the operator set at roughly doubled
// rates. The engine switches to it when population diversity drops.
func NewAggressivePipeline() *MutationPipeline {
	registry := NewRegistry()

	registry.Register(NewCardsPerPlayerMutation(0.2))
	registry.Register(NewMaxTurnsMutation(0.1))
	registry.Register(NewStartingChipsMutation(0.1))
	registry.Register(NewTableauSizeMutation(0.15))
	registry.Register(NewDealToTableauMutation(0.1))
	registry.Register(NewTableauModeMutation(0.1))
	registry.Register(NewSequenceDirectionMutation(0.1))
	registry.Register(NewTeamPlayMutation(0.08))

	registry.Register(NewAddDrawPhaseMutation(0.1))
	registry.Register(NewAddPlayPhaseMutation(0.1))
	registry.Register(NewAddDiscardPhaseMutation(0.1))
	registry.Register(NewAddTrickPhaseMutation(0.06))
	registry.Register(NewAddBettingPhaseMutation(0.1))
	registry.Register(NewAddBiddingPhaseMutation(0.04))
	registry.Register(NewAddClaimPhaseMutation(0.04))
	registry.Register(NewRemovePhaseMutation(0.15))
	registry.Register(NewRemoveBettingMutation(0.06))
	registry.Register(NewSwapPhaseOrderMutation(0.1))
	registry.Register(NewModifyDrawPhaseMutation(0.1))
	registry.Register(NewModifyPlayPhaseMutation(0.15))
	registry.Register(NewModifyTrickPhaseMutation(0.1))
	registry.Register(NewModifyBettingPhaseMutation(0.1))
	registry.Register(NewModifyBiddingPhaseMutation(0.06))

	registry.Register(NewAddConditionMutation(0.1))
	registry.Register(NewRemoveConditionMutation(0.1))
	registry.Register(NewModifyConditionMutation(0.15))
	registry.Register(NewModifyWinConditionMutation(0.15))
	registry.Register(NewAddWinConditionMutation(0.06))
	registry.Register(NewRemoveWinConditionMutation(0.06))
	registry.Register(NewAddCardScoringMutation(0.1))
	registry.Register(NewRemoveCardScoringMutation(0.06))
	registry.Register(NewModifyCardScoringMutation(0.1))
	registry.Register(NewAddSpecialEffectMutation(0.1))
	registry.Register(NewRemoveSpecialEffectMutation(0.06))

	return NewMutationPipeline(registry)
}
