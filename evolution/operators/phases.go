package operators

import (
	"math/rand"

	"github.com/signalnine/darwindeck/gosim/genome"
)

const (
	maxPhases = 8
	minPhases = 1
)

// insertPhase splices p into the turn order at a random position and
// re-derives the trick-based marker.
func insertPhase(g *genome.GameGenome, p genome.Phase, rng *rand.Rand) {
	phases := g.TurnStructure.Phases
	pos := rng.Intn(len(phases) + 1)
	phases = append(phases, nil)
	copy(phases[pos+1:], phases[pos:])
	phases[pos] = p
	g.TurnStructure.Phases = phases
	syncTrickFlag(g)
}

// removePhaseAt drops the phase at index i and re-derives the
// trick-based marker.
func removePhaseAt(g *genome.GameGenome, i int) {
	phases := g.TurnStructure.Phases
	g.TurnStructure.Phases = append(phases[:i], phases[i+1:]...)
	syncTrickFlag(g)
}

// syncTrickFlag keeps the trick-based marker in line with the phases
// actually present. The flag is derived metadata; letting it drift from
// the phase list would hand evolution a dial that changes the fitness
// heuristics without changing the game.
func syncTrickFlag(g *genome.GameGenome) {
	g.TurnStructure.IsTrickBased = g.HasPhase(genome.PhaseTypeTrick)
}

// randomBettingPhase rolls a betting round at one of the usual stakes.
func randomBettingPhase(rng *rand.Rand) *genome.BettingPhase {
	stakes := []int32{5, 10, 20, 25}
	return &genome.BettingPhase{
		MinBet:    stakes[rng.Intn(len(stakes))],
		MaxRaises: rng.Intn(4) + 1,
	}
}

// AddDrawPhaseMutation adds a draw phase to the turn.
type AddDrawPhaseMutation struct {
	BaseMutation
}

// NewAddDrawPhaseMutation creates an add-draw-phase mutation.
func NewAddDrawPhaseMutation(probability float64) *AddDrawPhaseMutation {
	return &AddDrawPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddDrawPhase",
		},
	}
}

// Mutate inserts a draw phase with random parameters.
func (m *AddDrawPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.TurnStructure.Phases) >= maxPhases {
		return clone
	}

	phase := &genome.DrawPhase{
		Source:    genome.LocationDeck,
		Count:     rng.Intn(3) + 1,
		Mandatory: rng.Float64() < 0.5,
	}
	if rng.Float64() < 0.2 {
		phase.Source = genome.LocationDiscard
	}
	if rng.Float64() < 0.3 {
		cond := randomStateCondition(rng)
		phase.Condition = &cond
	}

	insertPhase(clone, phase, rng)
	return clone
}

// AddPlayPhaseMutation adds a play phase to the turn.
type AddPlayPhaseMutation struct {
	BaseMutation
}

// NewAddPlayPhaseMutation creates an add-play-phase mutation.
func NewAddPlayPhaseMutation(probability float64) *AddPlayPhaseMutation {
	return &AddPlayPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddPlayPhase",
		},
	}
}

// Mutate inserts a play phase with random parameters. PassIfUnable is
// always set so a dry hand stalls the phase rather than the game.
func (m *AddPlayPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.TurnStructure.Phases) >= maxPhases {
		return clone
	}

	phase := &genome.PlayPhase{
		Target:       genome.LocationDiscard,
		MinCards:     1,
		MaxCards:     1,
		Mandatory:    rng.Float64() < 0.7,
		PassIfUnable: true,
	}
	if rng.Float64() < 0.3 {
		phase.Target = genome.LocationTableau
	}
	if rng.Float64() < 0.3 {
		phase.MaxCards = rng.Intn(3) + 1
	}
	if rng.Float64() < 0.3 {
		cond := randomCardCondition(rng)
		phase.ValidPlayCondition = &cond
	}

	insertPhase(clone, phase, rng)
	return clone
}

// AddDiscardPhaseMutation adds a discard phase to the turn.
type AddDiscardPhaseMutation struct {
	BaseMutation
}

// NewAddDiscardPhaseMutation creates an add-discard-phase mutation.
func NewAddDiscardPhaseMutation(probability float64) *AddDiscardPhaseMutation {
	return &AddDiscardPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddDiscardPhase",
		},
	}
}

// Mutate inserts a discard phase with random parameters.
func (m *AddDiscardPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.TurnStructure.Phases) >= maxPhases {
		return clone
	}

	phase := &genome.DiscardPhase{
		Target:    genome.LocationDiscard,
		Count:     rng.Intn(2) + 1,
		Mandatory: rng.Float64() < 0.3,
	}

	insertPhase(clone, phase, rng)
	return clone
}

// AddTrickPhaseMutation adds a trick-taking phase to the turn.
type AddTrickPhaseMutation struct {
	BaseMutation
}

// NewAddTrickPhaseMutation creates an add-trick-phase mutation.
func NewAddTrickPhaseMutation(probability float64) *AddTrickPhaseMutation {
	return &AddTrickPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddTrickPhase",
		},
	}
}

// Mutate inserts a trick phase with random trump and follow rules.
func (m *AddTrickPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.TurnStructure.Phases) >= maxPhases {
		return clone
	}

	phase := &genome.TrickPhase{
		LeadSuitRequired: rng.Float64() < 0.7,
		TrumpSuit:        genome.SuitAny,
		HighCardWins:     rng.Float64() < 0.9,
		BreakingSuit:     genome.SuitAny,
	}
	if rng.Float64() < 0.5 {
		phase.TrumpSuit = genome.Suit(rng.Intn(4))
	}
	if rng.Float64() < 0.2 {
		phase.BreakingSuit = genome.Suit(rng.Intn(4))
	}

	insertPhase(clone, phase, rng)
	return clone
}

// AddBettingPhaseMutation adds a betting round, seeding chip stacks if
// the game had none.
type AddBettingPhaseMutation struct {
	BaseMutation
}

// NewAddBettingPhaseMutation creates an add-betting-phase mutation.
func NewAddBettingPhaseMutation(probability float64) *AddBettingPhaseMutation {
	return &AddBettingPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddBettingPhase",
		},
	}
}

// Mutate inserts a betting phase.
func (m *AddBettingPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.TurnStructure.Phases) >= maxPhases {
		return clone
	}

	if clone.Setup.StartingChips == 0 {
		clone.Setup.StartingChips = int32(rng.Intn(9)+1) * 100
	}

	insertPhase(clone, randomBettingPhase(rng), rng)
	return clone
}

// AddBiddingPhaseMutation bolts a contract onto a trick game: players
// bid their tricks up front and the hand scores against the bids.
type AddBiddingPhaseMutation struct {
	BaseMutation
}

// NewAddBiddingPhaseMutation creates an add-bidding-phase mutation.
func NewAddBiddingPhaseMutation(probability float64) *AddBiddingPhaseMutation {
	return &AddBiddingPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddBiddingPhase",
		},
	}
}

// Mutate prepends a bidding phase when the game plays tricks and has no
// contract yet. Bids are taken before any card hits the table.
func (m *AddBiddingPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if !clone.HasPhase(genome.PhaseTypeTrick) || clone.HasPhase(genome.PhaseTypeBidding) {
		return clone
	}
	if len(clone.TurnStructure.Phases) >= maxPhases {
		return clone
	}

	maxBid := clone.Setup.CardsPerPlayer
	if maxBid < 1 {
		maxBid = 1
	}
	if maxBid > 13 {
		maxBid = 13
	}

	phase := &genome.BiddingPhase{
		MinBid:            rng.Intn(2),
		MaxBid:            maxBid,
		AllowNil:          rng.Float64() < 0.5,
		PointsPerTrickBid: 10,
		OvertrickPoints:   1,
		FailedPenalty:     10,
	}
	if phase.AllowNil {
		phase.NilBonus = 100
		phase.NilPenalty = 100
	}
	if rng.Float64() < 0.5 {
		phase.BagLimit = 10
		phase.BagPenalty = 100
	}

	clone.TurnStructure.Phases = append([]genome.Phase{phase}, clone.TurnStructure.Phases...)
	return clone
}

// AddClaimPhaseMutation adds a face-down claim phase, the bluffing core
// of Cheat. One per game; stacked claims add nothing.
type AddClaimPhaseMutation struct {
	BaseMutation
}

// NewAddClaimPhaseMutation creates an add-claim-phase mutation.
func NewAddClaimPhaseMutation(probability float64) *AddClaimPhaseMutation {
	return &AddClaimPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddClaimPhase",
		},
	}
}

// Mutate inserts a claim phase when the game has none.
func (m *AddClaimPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if clone.HasPhase(genome.PhaseTypeClaim) {
		return clone
	}
	if len(clone.TurnStructure.Phases) >= maxPhases {
		return clone
	}

	insertPhase(clone, &genome.ClaimPhase{}, rng)
	return clone
}

// RemovePhaseMutation drops a random phase from the turn.
type RemovePhaseMutation struct {
	BaseMutation
}

// NewRemovePhaseMutation creates a remove-phase mutation.
func NewRemovePhaseMutation(probability float64) *RemovePhaseMutation {
	return &RemovePhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "RemovePhase",
		},
	}
}

// Mutate removes one phase, keeping at least one.
func (m *RemovePhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.TurnStructure.Phases) <= minPhases {
		return clone
	}

	removePhaseAt(clone, rng.Intn(len(clone.TurnStructure.Phases)))
	return clone
}

// RemoveBettingMutation takes a betting round out, and with the last
// one the chips go too. Removing them separately would strand one half
// past the coherence gate.
type RemoveBettingMutation struct {
	BaseMutation
}

// NewRemoveBettingMutation creates a remove-betting mutation.
func NewRemoveBettingMutation(probability float64) *RemoveBettingMutation {
	return &RemoveBettingMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "RemoveBetting",
		},
	}
}

// Mutate removes one betting phase, zeroing the stacks when no betting
// remains.
func (m *RemoveBettingMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.TurnStructure.Phases) <= minPhases {
		return clone
	}

	var betting []int
	for i, p := range clone.TurnStructure.Phases {
		if _, ok := p.(*genome.BettingPhase); ok {
			betting = append(betting, i)
		}
	}
	if len(betting) == 0 {
		return clone
	}

	removePhaseAt(clone, betting[rng.Intn(len(betting))])
	if !clone.HasPhase(genome.PhaseTypeBetting) {
		clone.Setup.StartingChips = 0
	}
	return clone
}

// SwapPhaseOrderMutation exchanges two phases in the turn order.
type SwapPhaseOrderMutation struct {
	BaseMutation
}

// NewSwapPhaseOrderMutation creates a swap-phase-order mutation.
func NewSwapPhaseOrderMutation(probability float64) *SwapPhaseOrderMutation {
	return &SwapPhaseOrderMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "SwapPhaseOrder",
		},
	}
}

// Mutate swaps two random phases.
func (m *SwapPhaseOrderMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	phases := clone.TurnStructure.Phases
	if len(phases) < 2 {
		return clone
	}

	i := rng.Intn(len(phases))
	j := rng.Intn(len(phases))
	for j == i {
		j = rng.Intn(len(phases))
	}
	phases[i], phases[j] = phases[j], phases[i]

	return clone
}

// ModifyDrawPhaseMutation tweaks one knob of an existing draw phase.
type ModifyDrawPhaseMutation struct {
	BaseMutation
}

// NewModifyDrawPhaseMutation creates a modify-draw-phase mutation.
func NewModifyDrawPhaseMutation(probability float64) *ModifyDrawPhaseMutation {
	return &ModifyDrawPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyDrawPhase",
		},
	}
}

// Mutate changes count, obligation, or source of a random draw phase.
func (m *ModifyDrawPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	var draws []*genome.DrawPhase
	for _, p := range clone.TurnStructure.Phases {
		if dp, ok := p.(*genome.DrawPhase); ok {
			draws = append(draws, dp)
		}
	}
	if len(draws) == 0 {
		return clone
	}

	dp := draws[rng.Intn(len(draws))]
	switch rng.Intn(3) {
	case 0:
		dp.Count += rng.Intn(3) - 1
		if dp.Count < 1 {
			dp.Count = 1
		}
		if dp.Count > 5 {
			dp.Count = 5
		}
	case 1:
		dp.Mandatory = !dp.Mandatory
	default:
		if dp.Source == genome.LocationDeck {
			dp.Source = genome.LocationDiscard
		} else {
			dp.Source = genome.LocationDeck
		}
	}

	return clone
}

// ModifyPlayPhaseMutation tweaks one knob of an existing play phase.
type ModifyPlayPhaseMutation struct {
	BaseMutation
}

// NewModifyPlayPhaseMutation creates a modify-play-phase mutation.
func NewModifyPlayPhaseMutation(probability float64) *ModifyPlayPhaseMutation {
	return &ModifyPlayPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyPlayPhase",
		},
	}
}

// Mutate changes card counts, obligation, passing, or target of a
// random play phase.
func (m *ModifyPlayPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	var plays []*genome.PlayPhase
	for _, p := range clone.TurnStructure.Phases {
		if pp, ok := p.(*genome.PlayPhase); ok {
			plays = append(plays, pp)
		}
	}
	if len(plays) == 0 {
		return clone
	}

	pp := plays[rng.Intn(len(plays))]
	switch rng.Intn(5) {
	case 0:
		pp.MaxCards += rng.Intn(3) - 1
		if pp.MaxCards < 1 {
			pp.MaxCards = 1
		}
		if pp.MaxCards > 4 {
			pp.MaxCards = 4
		}
		if pp.MinCards > pp.MaxCards {
			pp.MinCards = pp.MaxCards
		}
	case 1:
		pp.MinCards += rng.Intn(3) - 1
		if pp.MinCards < 1 {
			pp.MinCards = 1
		}
		if pp.MinCards > pp.MaxCards {
			pp.MinCards = pp.MaxCards
		}
	case 2:
		pp.Mandatory = !pp.Mandatory
	case 3:
		pp.PassIfUnable = !pp.PassIfUnable
	default:
		if pp.Target == genome.LocationDiscard {
			pp.Target = genome.LocationTableau
		} else {
			pp.Target = genome.LocationDiscard
		}
	}

	return clone
}

// ModifyTrickPhaseMutation tweaks one knob of an existing trick phase.
type ModifyTrickPhaseMutation struct {
	BaseMutation
}

// NewModifyTrickPhaseMutation creates a modify-trick-phase mutation.
func NewModifyTrickPhaseMutation(probability float64) *ModifyTrickPhaseMutation {
	return &ModifyTrickPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyTrickPhase",
		},
	}
}

// Mutate changes follow rules, trump, win direction, or breaking suit
// of a random trick phase.
func (m *ModifyTrickPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	var tricks []*genome.TrickPhase
	for _, p := range clone.TurnStructure.Phases {
		if tp, ok := p.(*genome.TrickPhase); ok {
			tricks = append(tricks, tp)
		}
	}
	if len(tricks) == 0 {
		return clone
	}

	tp := tricks[rng.Intn(len(tricks))]
	switch rng.Intn(4) {
	case 0:
		tp.LeadSuitRequired = !tp.LeadSuitRequired
	case 1:
		// Rotate trump: no trump and the four suits.
		options := []genome.Suit{genome.SuitAny, genome.SuitHearts, genome.SuitDiamonds, genome.SuitClubs, genome.SuitSpades}
		for {
			next := options[rng.Intn(len(options))]
			if next != tp.TrumpSuit {
				tp.TrumpSuit = next
				break
			}
		}
	case 2:
		tp.HighCardWins = !tp.HighCardWins
	default:
		if tp.BreakingSuit == genome.SuitAny {
			tp.BreakingSuit = genome.Suit(rng.Intn(4))
		} else {
			tp.BreakingSuit = genome.SuitAny
		}
	}

	return clone
}

// ModifyBettingPhaseMutation tweaks one knob of an existing betting
// phase.
type ModifyBettingPhaseMutation struct {
	BaseMutation
}

// NewModifyBettingPhaseMutation creates a modify-betting-phase mutation.
func NewModifyBettingPhaseMutation(probability float64) *ModifyBettingPhaseMutation {
	return &ModifyBettingPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyBettingPhase",
		},
	}
}

// Mutate rescales the stake or adjusts the raise cap of a random
// betting phase.
func (m *ModifyBettingPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	var rounds []*genome.BettingPhase
	for _, p := range clone.TurnStructure.Phases {
		if bp, ok := p.(*genome.BettingPhase); ok {
			rounds = append(rounds, bp)
		}
	}
	if len(rounds) == 0 {
		return clone
	}

	bp := rounds[rng.Intn(len(rounds))]
	if rng.Float64() < 0.5 {
		factor := 0.5 + rng.Float64()*1.5 // 0.5x to 2x
		minBet := int32(float64(bp.MinBet) * factor)
		if minBet < 1 {
			minBet = 1
		}
		if limit := clone.Setup.StartingChips / 2; limit > 0 && minBet > limit {
			minBet = limit
		}
		bp.MinBet = minBet
	} else {
		bp.MaxRaises += rng.Intn(3) - 1
		if bp.MaxRaises < 0 {
			bp.MaxRaises = 0
		}
		if bp.MaxRaises > 5 {
			bp.MaxRaises = 5
		}
	}

	return clone
}

// ModifyBiddingPhaseMutation tweaks the contract terms of an existing
// bidding phase.
type ModifyBiddingPhaseMutation struct {
	BaseMutation
}

// NewModifyBiddingPhaseMutation creates a modify-bidding-phase mutation.
func NewModifyBiddingPhaseMutation(probability float64) *ModifyBiddingPhaseMutation {
	return &ModifyBiddingPhaseMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyBiddingPhase",
		},
	}
}

// Mutate adjusts one contract term: trick value, penalty, overtricks,
// nil, sandbagging, or the bid ceiling.
func (m *ModifyBiddingPhaseMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	var bids []*genome.BiddingPhase
	for _, p := range clone.TurnStructure.Phases {
		if bp, ok := p.(*genome.BiddingPhase); ok {
			bids = append(bids, bp)
		}
	}
	if len(bids) == 0 {
		return clone
	}

	bp := bids[rng.Intn(len(bids))]
	switch rng.Intn(6) {
	case 0:
		bp.PointsPerTrickBid += int32(rng.Intn(5) - 2)
		if bp.PointsPerTrickBid < 1 {
			bp.PointsPerTrickBid = 1
		}
		if bp.PointsPerTrickBid > 20 {
			bp.PointsPerTrickBid = 20
		}
	case 1:
		bp.FailedPenalty += int32(rng.Intn(5) - 2)
		if bp.FailedPenalty < 1 {
			bp.FailedPenalty = 1
		}
		if bp.FailedPenalty > 20 {
			bp.FailedPenalty = 20
		}
	case 2:
		bp.OvertrickPoints += int32(rng.Intn(3) - 1)
		if bp.OvertrickPoints < 0 {
			bp.OvertrickPoints = 0
		}
		if bp.OvertrickPoints > 5 {
			bp.OvertrickPoints = 5
		}
	case 3:
		bp.AllowNil = !bp.AllowNil
		if bp.AllowNil && bp.NilBonus == 0 {
			bp.NilBonus = 100
			bp.NilPenalty = 100
		}
	case 4:
		// Sandbagging on or off.
		if bp.BagLimit == 0 {
			bp.BagLimit = 10
			bp.BagPenalty = 100
		} else {
			bp.BagLimit = 0
			bp.BagPenalty = 0
		}
	default:
		bp.MaxBid += rng.Intn(3) - 1
		if bp.MaxBid < 1 {
			bp.MaxBid = 1
		}
		if bp.MaxBid > 13 {
			bp.MaxBid = 13
		}
		if bp.MinBid > bp.MaxBid {
			bp.MinBid = bp.MaxBid
		}
	}

	return clone
}

// RegisterPhaseMutations adds the turn structure mutations to a
// registry.
func RegisterPhaseMutations(r *Registry) {
	r.Register(NewAddDrawPhaseMutation(0.05))
	r.Register(NewAddPlayPhaseMutation(0.05))
	r.Register(NewAddDiscardPhaseMutation(0.05))
	r.Register(NewAddTrickPhaseMutation(0.03))
	r.Register(NewAddBettingPhaseMutation(0.05))
	r.Register(NewAddBiddingPhaseMutation(0.02))
	r.Register(NewAddClaimPhaseMutation(0.02))
	r.Register(NewRemovePhaseMutation(0.08))
	r.Register(NewRemoveBettingMutation(0.03))
	r.Register(NewSwapPhaseOrderMutation(0.05))
	r.Register(NewModifyDrawPhaseMutation(0.05))
	r.Register(NewModifyPlayPhaseMutation(0.08))
	r.Register(NewModifyTrickPhaseMutation(0.05))
	r.Register(NewModifyBettingPhaseMutation(0.05))
	r.Register(NewModifyBiddingPhaseMutation(0.03))
}
