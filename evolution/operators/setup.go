package operators

import (
	"math/rand"

	"github.com/signalnine/darwindeck/gosim/genome"
)

// CardsPerPlayerMutation changes how many cards each player is dealt.
type CardsPerPlayerMutation struct {
	BaseMutation
}

// NewCardsPerPlayerMutation creates a cards-per-player mutation.
func NewCardsPerPlayerMutation(probability float64) *CardsPerPlayerMutation {
	return &CardsPerPlayerMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "CardsPerPlayer",
		},
	}
}

// Mutate nudges the hand size, keeping the deal inside the deck for the
// genome's own seat count.
func (m *CardsPerPlayerMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	delta := rng.Intn(5) - 2 // -2 to +2
	if delta == 0 {
		delta = 1
	}

	maxCards := (genome.StandardDeckSize - clone.Setup.DealToTableau) / clone.Players()
	newValue := clone.Setup.CardsPerPlayer + delta
	if newValue < 1 {
		newValue = 1
	}
	if newValue > maxCards {
		newValue = maxCards
	}

	clone.Setup.CardsPerPlayer = newValue
	return clone
}

// MaxTurnsMutation rescales the turn cap.
type MaxTurnsMutation struct {
	BaseMutation
	minTurns int32
	maxTurns int32
}

// NewMaxTurnsMutation creates a max-turns mutation.
func NewMaxTurnsMutation(probability float64) *MaxTurnsMutation {
	return &MaxTurnsMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "MaxTurns",
		},
		minTurns: 10,
		maxTurns: 2000,
	}
}

// Mutate rescales the turn cap multiplicatively; the cap spans two
// orders of magnitude so additive steps would barely move it.
func (m *MaxTurnsMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	factor := 0.8 + rng.Float64()*0.4 // 0.8x to 1.2x
	newValue := int32(float64(clone.TurnStructure.MaxTurns) * factor)
	if newValue < m.minTurns {
		newValue = m.minTurns
	}
	if newValue > m.maxTurns {
		newValue = m.maxTurns
	}

	clone.TurnStructure.MaxTurns = newValue
	return clone
}

// StartingChipsMutation changes the chip stack. Flipping a chipless game
// to a chipped one also deals in a betting round, because a stack no
// phase can bet is dead weight.
type StartingChipsMutation struct {
	BaseMutation
	maxChips int32
}

// NewStartingChipsMutation creates a starting-chips mutation.
func NewStartingChipsMutation(probability float64) *StartingChipsMutation {
	return &StartingChipsMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "StartingChips",
		},
		maxChips: 5000,
	}
}

// Mutate adjusts the starting chips.
func (m *StartingChipsMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if clone.Setup.StartingChips == 0 {
		clone.Setup.StartingChips = int32(rng.Intn(9)+1) * 100 // 100-900
		if !clone.HasPhase(genome.PhaseTypeBetting) {
			insertPhase(clone, randomBettingPhase(rng), rng)
		}
		return clone
	}

	factor := 0.7 + rng.Float64()*0.6 // 0.7x to 1.3x
	chips := int32(float64(clone.Setup.StartingChips) * factor)
	if chips > m.maxChips {
		chips = m.maxChips
	}

	// Keep the stack deep enough that the steepest minimum bet stays
	// legal.
	floor := int32(20)
	for _, p := range clone.TurnStructure.Phases {
		if bp, ok := p.(*genome.BettingPhase); ok && bp.MinBet*2 > floor {
			floor = bp.MinBet * 2
		}
	}
	if chips < floor {
		chips = floor
	}

	clone.Setup.StartingChips = chips
	return clone
}

// TableauSizeMutation changes the shared tableau's card capacity.
type TableauSizeMutation struct {
	BaseMutation
	minSize int
	maxSize int
}

// NewTableauSizeMutation creates a tableau size mutation.
func NewTableauSizeMutation(probability float64) *TableauSizeMutation {
	return &TableauSizeMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "TableauSize",
		},
		minSize: 0,
		maxSize: 10,
	}
}

// Mutate adjusts the tableau size by one either way.
func (m *TableauSizeMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	delta := rng.Intn(3) - 1 // -1 to +1
	newValue := clone.Setup.TableauSize + delta
	if newValue < m.minSize {
		newValue = m.minSize
	}
	if newValue > m.maxSize {
		newValue = m.maxSize
	}

	clone.Setup.TableauSize = newValue
	return clone
}

// DealToTableauMutation changes how many cards the deal seeds the
// tableau with.
type DealToTableauMutation struct {
	BaseMutation
}

// NewDealToTableauMutation creates a deal-to-tableau mutation.
func NewDealToTableauMutation(probability float64) *DealToTableauMutation {
	return &DealToTableauMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "DealToTableau",
		},
	}
}

// Mutate adjusts the tableau deal by one either way.
func (m *DealToTableauMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	delta := rng.Intn(3) - 1 // -1 to +1
	newValue := clone.Setup.DealToTableau + delta
	if newValue < 0 {
		newValue = 0
	}
	if newValue > 10 {
		newValue = 10
	}

	clone.Setup.DealToTableau = newValue
	return clone
}

// TableauModeMutation switches how plays against the tableau resolve:
// war comparison, rank matching, sequence building, or nothing.
type TableauModeMutation struct {
	BaseMutation
}

// NewTableauModeMutation creates a tableau mode mutation.
func NewTableauModeMutation(probability float64) *TableauModeMutation {
	return &TableauModeMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "TableauMode",
		},
	}
}

// Mutate picks a different tableau mode.
func (m *TableauModeMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	modes := []genome.TableauMode{
		genome.TableauNone,
		genome.TableauWar,
		genome.TableauMatchRank,
		genome.TableauSequence,
	}

	current := clone.TurnStructure.TableauMode
	for {
		next := modes[rng.Intn(len(modes))]
		if next != current {
			clone.TurnStructure.TableauMode = next
			break
		}
	}

	return clone
}

// SequenceDirectionMutation flips which way sequence tableaus build.
type SequenceDirectionMutation struct {
	BaseMutation
}

// NewSequenceDirectionMutation creates a sequence direction mutation.
func NewSequenceDirectionMutation(probability float64) *SequenceDirectionMutation {
	return &SequenceDirectionMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "SequenceDirection",
		},
	}
}

// Mutate picks a different sequence direction.
func (m *SequenceDirectionMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	directions := []genome.SequenceDirection{
		genome.SequenceAscending,
		genome.SequenceDescending,
		genome.SequenceBoth,
	}

	current := clone.TurnStructure.SequenceDirection
	for {
		next := directions[rng.Intn(len(directions))]
		if next != current {
			clone.TurnStructure.SequenceDirection = next
			break
		}
	}

	return clone
}

// TeamPlayMutation turns partnership play on or off, or reshuffles the
// partnerships. Partnerships only make sense at four seats; at two or
// three the mutation is a no-op.
type TeamPlayMutation struct {
	BaseMutation
}

// NewTeamPlayMutation creates a team play mutation.
func NewTeamPlayMutation(probability float64) *TeamPlayMutation {
	return &TeamPlayMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "TeamPlay",
		},
	}
}

// Mutate enables, disables, or reassigns partnerships.
func (m *TeamPlayMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if clone.Players() != 4 {
		return clone
	}

	if clone.Teams == nil || !clone.Teams.Enabled {
		clone.Teams = &genome.TeamConfig{
			Enabled: true,
			Teams:   randomPartnership(rng),
		}
		return clone
	}

	if rng.Float64() < 0.5 {
		clone.Teams = nil
		return clone
	}

	clone.Teams.Teams = randomPartnership(rng)
	return clone
}

// randomPartnership picks one of the three ways four seats pair into
// two teams. Opposite seats come first out of habit.
func randomPartnership(rng *rand.Rand) [][]int {
	pairings := [][][]int{
		{{0, 2}, {1, 3}},
		{{0, 1}, {2, 3}},
		{{0, 3}, {1, 2}},
	}
	return pairings[rng.Intn(len(pairings))]
}

// RegisterSetupMutations adds the deal and table parameter mutations to
// a registry.
func RegisterSetupMutations(r *Registry) {
	r.Register(NewCardsPerPlayerMutation(0.1))
	r.Register(NewMaxTurnsMutation(0.05))
	r.Register(NewStartingChipsMutation(0.05))
	r.Register(NewTableauSizeMutation(0.08))
	r.Register(NewDealToTableauMutation(0.05))
	r.Register(NewTableauModeMutation(0.05))
	r.Register(NewSequenceDirectionMutation(0.05))
	r.Register(NewTeamPlayMutation(0.04))
}
