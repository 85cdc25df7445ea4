package operators

import (
	"math/rand"

	"github.com/signalnine/darwindeck/gosim/genome"
)

const (
	maxWinConditions = 3
	maxScoringRules  = 6
	maxEffects       = 8
)

// randomCompare picks a comparison operator.
func randomCompare(rng *rand.Rand) genome.CompareOp {
	ops := []genome.CompareOp{
		genome.CmpEQ, genome.CmpNE, genome.CmpLT,
		genome.CmpGT, genome.CmpLE, genome.CmpGE,
	}
	return ops[rng.Intn(len(ops))]
}

// randomStateCondition builds a game-state gate for draw phases: hand
// size or pile size checks.
func randomStateCondition(rng *rand.Rand) genome.Condition {
	switch rng.Intn(3) {
	case 0:
		return genome.Condition{
			OpCode:   genome.OpCheckHandSize,
			Operator: randomCompare(rng),
			Value:    int32(rng.Intn(8)),
		}
	case 1:
		locations := []genome.Location{
			genome.LocationDiscard, genome.LocationTableau, genome.LocationDeck,
		}
		return genome.Condition{
			OpCode:   genome.OpCheckLocationSize,
			Operator: randomCompare(rng),
			Value:    int32(rng.Intn(11)),
			RefLoc:   locations[rng.Intn(len(locations))],
		}
	default:
		// Refill idiom: draw only when the hand is out.
		return genome.Condition{
			OpCode:   genome.OpCheckHandSize,
			Operator: genome.CmpEQ,
			Value:    0,
		}
	}
}

// randomCardCondition builds a per-card legality test for play phases.
func randomCardCondition(rng *rand.Rand) genome.Condition {
	pick := rng.Float64()
	switch {
	case pick < 0.20:
		// Crazy-eights shape: match the discard by rank or by suit.
		return genome.Condition{
			OpCode: genome.OpOr,
			Children: []genome.Condition{
				{OpCode: genome.OpCheckCardMatchesRank, RefLoc: genome.LocationDiscard},
				{OpCode: genome.OpCheckCardMatchesSuit, RefLoc: genome.LocationDiscard},
			},
		}
	case pick < 0.40:
		return genome.Condition{
			OpCode: genome.OpCheckCardMatchesRank,
			RefLoc: genome.LocationDiscard,
		}
	case pick < 0.55:
		return genome.Condition{
			OpCode: genome.OpCheckCardMatchesSuit,
			RefLoc: genome.LocationDiscard,
		}
	case pick < 0.75:
		return genome.Condition{
			OpCode: genome.OpCheckCardBeatsTop,
			RefLoc: genome.LocationDiscard,
		}
	case pick < 0.90:
		return genome.Condition{
			OpCode:   genome.OpCheckCardRank,
			Operator: randomCompare(rng),
			Value:    int32(rng.Intn(13)),
		}
	default:
		return genome.Condition{
			OpCode:   genome.OpCheckCardSuit,
			Operator: genome.CmpEQ,
			Value:    int32(rng.Intn(4)),
		}
	}
}

// mutateCondition nudges one knob of an existing condition, recursing
// into a random child of a compound.
func mutateCondition(c *genome.Condition, rng *rand.Rand) {
	if c.IsCompound() && len(c.Children) > 0 {
		mutateCondition(&c.Children[rng.Intn(len(c.Children))], rng)
		return
	}
	if rng.Float64() < 0.5 {
		c.Operator = randomCompare(rng)
		return
	}
	c.Value += int32(rng.Intn(5) - 2)
	if c.Value < 0 {
		c.Value = 0
	}
	if c.Value > 51 {
		c.Value = 51
	}
}

// AddConditionMutation gates an unconditioned draw or play phase.
type AddConditionMutation struct {
	BaseMutation
}

// NewAddConditionMutation creates an add-condition mutation.
func NewAddConditionMutation(probability float64) *AddConditionMutation {
	return &AddConditionMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddCondition",
		},
	}
}

// Mutate attaches a condition to a random phase that lacks one. Draw
// phases take a state gate, play phases a per-card test.
func (m *AddConditionMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	var open []int
	for i, phase := range clone.TurnStructure.Phases {
		switch p := phase.(type) {
		case *genome.DrawPhase:
			if p.Condition == nil {
				open = append(open, i)
			}
		case *genome.PlayPhase:
			if p.ValidPlayCondition == nil {
				open = append(open, i)
			}
		}
	}
	if len(open) == 0 {
		return clone
	}

	switch p := clone.TurnStructure.Phases[open[rng.Intn(len(open))]].(type) {
	case *genome.DrawPhase:
		cond := randomStateCondition(rng)
		p.Condition = &cond
	case *genome.PlayPhase:
		cond := randomCardCondition(rng)
		p.ValidPlayCondition = &cond
	}

	return clone
}

// RemoveConditionMutation strips a condition from a phase.
type RemoveConditionMutation struct {
	BaseMutation
}

// NewRemoveConditionMutation creates a remove-condition mutation.
func NewRemoveConditionMutation(probability float64) *RemoveConditionMutation {
	return &RemoveConditionMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "RemoveCondition",
		},
	}
}

// Mutate removes the condition from a random conditioned phase.
func (m *RemoveConditionMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	var gated []int
	for i, phase := range clone.TurnStructure.Phases {
		switch p := phase.(type) {
		case *genome.DrawPhase:
			if p.Condition != nil {
				gated = append(gated, i)
			}
		case *genome.PlayPhase:
			if p.ValidPlayCondition != nil {
				gated = append(gated, i)
			}
		}
	}
	if len(gated) == 0 {
		return clone
	}

	switch p := clone.TurnStructure.Phases[gated[rng.Intn(len(gated))]].(type) {
	case *genome.DrawPhase:
		p.Condition = nil
	case *genome.PlayPhase:
		p.ValidPlayCondition = nil
	}

	return clone
}

// ModifyConditionMutation reshapes an existing phase condition.
type ModifyConditionMutation struct {
	BaseMutation
}

// NewModifyConditionMutation creates a modify-condition mutation.
func NewModifyConditionMutation(probability float64) *ModifyConditionMutation {
	return &ModifyConditionMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyCondition",
		},
	}
}

// Mutate nudges a random existing condition, or occasionally replaces
// it outright with a fresh one of the right family.
func (m *ModifyConditionMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	var gated []int
	for i, phase := range clone.TurnStructure.Phases {
		switch p := phase.(type) {
		case *genome.DrawPhase:
			if p.Condition != nil {
				gated = append(gated, i)
			}
		case *genome.PlayPhase:
			if p.ValidPlayCondition != nil {
				gated = append(gated, i)
			}
		}
	}
	if len(gated) == 0 {
		return clone
	}

	replace := rng.Float64() < 0.3
	switch p := clone.TurnStructure.Phases[gated[rng.Intn(len(gated))]].(type) {
	case *genome.DrawPhase:
		if replace {
			cond := randomStateCondition(rng)
			p.Condition = &cond
		} else {
			mutateCondition(p.Condition, rng)
		}
	case *genome.PlayPhase:
		if replace {
			cond := randomCardCondition(rng)
			p.ValidPlayCondition = &cond
		} else {
			mutateCondition(p.ValidPlayCondition, rng)
		}
	}

	return clone
}

// scoreBacked reports whether the genome can produce scores for a
// score-based win: explicit scoring rules or a bidding contract.
func scoreBacked(g *genome.GameGenome) bool {
	return len(g.CardScoring) > 0 || g.HasPhase(genome.PhaseTypeBidding)
}

// ensureScoreSource backfills a scoring rule when a score-based win has
// nothing to score from. Win-condition mutations call it so the repair
// travels with the mutation instead of leaning on rejection.
func ensureScoreSource(g *genome.GameGenome, rng *rand.Rand) {
	for _, wc := range g.WinConditions {
		switch wc.Type {
		case genome.WinHighScore, genome.WinLowScore, genome.WinFirstToScore:
			if !scoreBacked(g) {
				g.CardScoring = append(g.CardScoring, randomCardScoringRule(g, rng))
			}
			return
		}
	}
}

// randomWinType picks a win condition type the genome's mechanics can
// actually reach. Best-hand wins are never rolled: they only work with
// a full hand-evaluation spec, which mutation does not invent.
func randomWinType(g *genome.GameGenome, rng *rand.Rand) genome.WinConditionType {
	types := []genome.WinConditionType{
		genome.WinEmptyHand,
		genome.WinHighScore,
		genome.WinLowScore,
		genome.WinFirstToScore,
	}
	if capturesCards(g) {
		types = append(types, genome.WinCaptureAll, genome.WinMostCaptured)
	}
	return types[rng.Intn(len(types))]
}

// ensureThreshold gives score-race wins a target when they have none.
func ensureThreshold(wc *genome.WinCondition, rng *rand.Rand) {
	switch wc.Type {
	case genome.WinHighScore, genome.WinLowScore, genome.WinFirstToScore:
		if wc.Threshold == 0 {
			wc.Threshold = int32((rng.Intn(10) + 1) * 10)
		}
	}
}

// ModifyWinConditionMutation rewrites how the game is won.
type ModifyWinConditionMutation struct {
	BaseMutation
}

// NewModifyWinConditionMutation creates a modify-win-condition mutation.
func NewModifyWinConditionMutation(probability float64) *ModifyWinConditionMutation {
	return &ModifyWinConditionMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyWinCondition",
		},
	}
}

// Mutate retypes a random win condition or nudges its score target,
// backfilling a scoring rule when the new type needs one.
func (m *ModifyWinConditionMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.WinConditions) == 0 {
		wc := genome.WinCondition{Type: randomWinType(clone, rng)}
		ensureThreshold(&wc, rng)
		clone.WinConditions = append(clone.WinConditions, wc)
		ensureScoreSource(clone, rng)
		return clone
	}

	wc := &clone.WinConditions[rng.Intn(len(clone.WinConditions))]
	if wc.Threshold > 0 && rng.Float64() < 0.5 {
		wc.Threshold += int32((rng.Intn(3) - 1) * 10)
		if wc.Threshold < 10 {
			wc.Threshold = 10
		}
		return clone
	}

	wc.Type = randomWinType(clone, rng)
	wc.Threshold = 0
	ensureThreshold(wc, rng)
	ensureScoreSource(clone, rng)
	return clone
}

// AddWinConditionMutation adds an alternative way to win.
type AddWinConditionMutation struct {
	BaseMutation
}

// NewAddWinConditionMutation creates an add-win-condition mutation.
func NewAddWinConditionMutation(probability float64) *AddWinConditionMutation {
	return &AddWinConditionMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddWinCondition",
		},
	}
}

// Mutate appends a win condition of a type the genome does not already
// have.
func (m *AddWinConditionMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.WinConditions) >= maxWinConditions {
		return clone
	}

	t := randomWinType(clone, rng)
	if clone.HasWinCondition(t) {
		return clone
	}

	wc := genome.WinCondition{Type: t}
	ensureThreshold(&wc, rng)
	clone.WinConditions = append(clone.WinConditions, wc)
	ensureScoreSource(clone, rng)
	return clone
}

// RemoveWinConditionMutation drops an alternative way to win.
type RemoveWinConditionMutation struct {
	BaseMutation
}

// NewRemoveWinConditionMutation creates a remove-win-condition mutation.
func NewRemoveWinConditionMutation(probability float64) *RemoveWinConditionMutation {
	return &RemoveWinConditionMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "RemoveWinCondition",
		},
	}
}

// Mutate removes one win condition, keeping at least one.
func (m *RemoveWinConditionMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.WinConditions) <= 1 {
		return clone
	}

	i := rng.Intn(len(clone.WinConditions))
	clone.WinConditions = append(clone.WinConditions[:i], clone.WinConditions[i+1:]...)
	return clone
}

// randomCardScoringRule invents a scoring rule whose trigger the
// genome's mechanics can fire.
func randomCardScoringRule(g *genome.GameGenome, rng *rand.Rand) genome.CardScoringRule {
	triggers := []genome.ScoringTrigger{
		genome.TriggerPlay, genome.TriggerHandEnd, genome.TriggerSetComplete,
	}
	if g.HasPhase(genome.PhaseTypeTrick) {
		triggers = append(triggers, genome.TriggerTrickWin)
	}
	if capturesCards(g) {
		triggers = append(triggers, genome.TriggerCapture)
	}

	rule := genome.CardScoringRule{
		Suit:    genome.SuitAny,
		Rank:    genome.RankAny,
		Points:  int16(rng.Intn(5) + 1),
		Trigger: triggers[rng.Intn(len(triggers))],
	}
	if rng.Float64() < 0.5 {
		rule.Suit = genome.Suit(rng.Intn(4))
	}
	if rng.Float64() < 0.5 {
		rule.Rank = genome.Rank(rng.Intn(13))
		rule.Points = int16(rng.Intn(13) + 1)
	}
	if rng.Float64() < 0.15 {
		rule.Points = -rule.Points // penalty card
	}
	return rule
}

// AddCardScoringMutation adds a card scoring rule.
type AddCardScoringMutation struct {
	BaseMutation
}

// NewAddCardScoringMutation creates an add-card-scoring mutation.
func NewAddCardScoringMutation(probability float64) *AddCardScoringMutation {
	return &AddCardScoringMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddCardScoring",
		},
	}
}

// Mutate appends a random scoring rule.
func (m *AddCardScoringMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.CardScoring) >= maxScoringRules {
		return clone
	}

	clone.CardScoring = append(clone.CardScoring, randomCardScoringRule(clone, rng))
	return clone
}

// RemoveCardScoringMutation drops a card scoring rule.
type RemoveCardScoringMutation struct {
	BaseMutation
}

// NewRemoveCardScoringMutation creates a remove-card-scoring mutation.
func NewRemoveCardScoringMutation(probability float64) *RemoveCardScoringMutation {
	return &RemoveCardScoringMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "RemoveCardScoring",
		},
	}
}

// Mutate removes one scoring rule. Stripping the last rule from under a
// score-based win leaves the candidate structurally invalid, and the
// registry gate throws it away.
func (m *RemoveCardScoringMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.CardScoring) == 0 {
		return clone
	}

	i := rng.Intn(len(clone.CardScoring))
	clone.CardScoring = append(clone.CardScoring[:i], clone.CardScoring[i+1:]...)
	return clone
}

// ModifyCardScoringMutation tweaks an existing scoring rule.
type ModifyCardScoringMutation struct {
	BaseMutation
}

// NewModifyCardScoringMutation creates a modify-card-scoring mutation.
func NewModifyCardScoringMutation(probability float64) *ModifyCardScoringMutation {
	return &ModifyCardScoringMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "ModifyCardScoring",
		},
	}
}

// Mutate adjusts the points, rank filter, or suit filter of a random
// scoring rule.
func (m *ModifyCardScoringMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.CardScoring) == 0 {
		return clone
	}

	rule := &clone.CardScoring[rng.Intn(len(clone.CardScoring))]
	switch rng.Intn(3) {
	case 0:
		rule.Points += int16(rng.Intn(7) - 3)
		if rule.Points == 0 {
			rule.Points = 1
		}
		if rule.Points > 26 {
			rule.Points = 26
		}
		if rule.Points < -26 {
			rule.Points = -26
		}
	case 1:
		if rule.Rank == genome.RankAny {
			rule.Rank = genome.Rank(rng.Intn(13))
		} else {
			rule.Rank = genome.RankAny
		}
	default:
		if rule.Suit == genome.SuitAny {
			rule.Suit = genome.Suit(rng.Intn(4))
		} else {
			rule.Suit = genome.SuitAny
		}
	}

	return clone
}

// randomSpecialEffect wires a rank to one of the wild-card effects with
// a target that suits the effect.
func randomSpecialEffect(rng *rand.Rand) genome.SpecialEffect {
	rank := genome.Rank(rng.Intn(13))
	switch rng.Intn(6) {
	case 0:
		return genome.SpecialEffect{TriggerRank: rank, Effect: genome.EffectSkipNext, Target: genome.TargetNextPlayer, Value: 1}
	case 1:
		return genome.SpecialEffect{TriggerRank: rank, Effect: genome.EffectReverse, Target: genome.TargetAllOpponents, Value: 1}
	case 2:
		return genome.SpecialEffect{TriggerRank: rank, Effect: genome.EffectDrawCards, Target: genome.TargetNextPlayer, Value: uint8(rng.Intn(4) + 1)}
	case 3:
		return genome.SpecialEffect{TriggerRank: rank, Effect: genome.EffectExtraTurn, Target: genome.TargetSelf, Value: 1}
	case 4:
		return genome.SpecialEffect{TriggerRank: rank, Effect: genome.EffectForceDiscard, Target: genome.TargetNextPlayer, Value: uint8(rng.Intn(2) + 1)}
	default:
		return genome.SpecialEffect{TriggerRank: rank, Effect: genome.EffectWild, Target: genome.TargetSelf, Value: 1}
	}
}

// AddSpecialEffectMutation gives a rank a special effect.
type AddSpecialEffectMutation struct {
	BaseMutation
}

// NewAddSpecialEffectMutation creates an add-special-effect mutation.
func NewAddSpecialEffectMutation(probability float64) *AddSpecialEffectMutation {
	return &AddSpecialEffectMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "AddSpecialEffect",
		},
	}
}

// Mutate appends a random effect unless the same rank already carries
// the same effect.
func (m *AddSpecialEffectMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.SpecialEffects) >= maxEffects {
		return clone
	}

	effect := randomSpecialEffect(rng)
	for _, e := range clone.SpecialEffects {
		if e.TriggerRank == effect.TriggerRank && e.Effect == effect.Effect {
			return clone
		}
	}

	clone.SpecialEffects = append(clone.SpecialEffects, effect)
	return clone
}

// RemoveSpecialEffectMutation strips a special effect.
type RemoveSpecialEffectMutation struct {
	BaseMutation
}

// NewRemoveSpecialEffectMutation creates a remove-special-effect
// mutation.
func NewRemoveSpecialEffectMutation(probability float64) *RemoveSpecialEffectMutation {
	return &RemoveSpecialEffectMutation{
		BaseMutation: BaseMutation{
			probability: probability,
			name:        "RemoveSpecialEffect",
		},
	}
}

// Mutate removes one special effect.
func (m *RemoveSpecialEffectMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()

	if len(clone.SpecialEffects) == 0 {
		return clone
	}

	i := rng.Intn(len(clone.SpecialEffects))
	clone.SpecialEffects = append(clone.SpecialEffects[:i], clone.SpecialEffects[i+1:]...)
	return clone
}

// RegisterConditionMutations adds the condition, win-condition, scoring,
// and effect mutations to a registry.
func RegisterConditionMutations(r *Registry) {
	r.Register(NewAddConditionMutation(0.05))
	r.Register(NewRemoveConditionMutation(0.05))
	r.Register(NewModifyConditionMutation(0.08))
	r.Register(NewModifyWinConditionMutation(0.10))
	r.Register(NewAddWinConditionMutation(0.03))
	r.Register(NewRemoveWinConditionMutation(0.03))
	r.Register(NewAddCardScoringMutation(0.05))
	r.Register(NewRemoveCardScoringMutation(0.03))
	r.Register(NewModifyCardScoringMutation(0.05))
	r.Register(NewAddSpecialEffectMutation(0.05))
	r.Register(NewRemoveSpecialEffectMutation(0.03))
}
