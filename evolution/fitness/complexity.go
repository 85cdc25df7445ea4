package fitness

import (
	"math"

	"github.com/signalnine/darwindeck/gosim/genome"
)

// ComplexityBreakdown itemises where a ruleset's cognitive load comes
// from. The rulebook surfaces it so a human can see what made a genome
// expensive to teach.
type ComplexityBreakdown struct {
	PhaseCost           float64
	ConditionCost       float64
	EffectsCost         float64
	MemoryCost          float64
	StateTrackingCost   float64
	FamiliarityDiscount float64

	// Total runs 0 (trivial) to 1 (nobody is learning this).
	Total     float64
	Sentences int
}

// InvertedScore converts complexity into a fitness term where simpler
// is better.
func (c *ComplexityBreakdown) InvertedScore() float64 {
	return math.Max(0.0, 1.0-c.Total)
}

// ComputeRulesComplexity is the fitness-facing wrapper around the full
// breakdown.
func ComputeRulesComplexity(g *genome.GameGenome) float64 {
	return CalculateComplexity(g).InvertedScore()
}

// CalculateComplexity models how hard a ruleset is to teach: the cost
// of explaining each phase, the conditions and special cases riding on
// them, what players must hold in memory, and the running state they
// must track, less a discount for patterns card players already know.
func CalculateComplexity(g *genome.GameGenome) *ComplexityBreakdown {
	phases := phaseCost(g)
	conditions := conditionCost(g)
	effects := effectsCost(g)
	memory := memoryCost(g)
	state := stateTrackingCost(g)
	implicit := implicitCost(g)
	discount := familiarityDiscount(g)

	raw := phases*0.22 +
		math.Min(1.0, conditions/0.40)*0.20 +
		math.Min(1.0, effects/0.15)*0.15 +
		memory*0.18 +
		math.Min(1.0, state/0.40)*0.10 +
		implicit*0.15

	total := raw * (1.0 - math.Min(0.40, discount*0.50))
	// Spread the midfield apart; untransformed scores bunch up.
	total = math.Min(1.0, math.Pow(total, 0.6))

	return &ComplexityBreakdown{
		PhaseCost:           phases,
		ConditionCost:       conditions,
		EffectsCost:         effects,
		MemoryCost:          memory,
		StateTrackingCost:   state,
		FamiliarityDiscount: discount,
		Total:               total,
		Sentences:           explanationSentences(g),
	}
}

// phaseCost charges each phase by how long its rules take to say out
// loud, with surcharges for the variants that need extra caveats.
func phaseCost(g *genome.GameGenome) float64 {
	base := func(tag uint8) float64 {
		switch tag {
		case genome.PhaseTypeDraw:
			return 0.08
		case genome.PhaseTypePlay:
			return 0.15
		case genome.PhaseTypeDiscard:
			return 0.10
		case genome.PhaseTypeTrick:
			// Lead, follow suit, trump, highest wins, scoring.
			return 0.45
		case genome.PhaseTypeBetting:
			return 0.50
		case genome.PhaseTypeClaim:
			return 0.55
		case genome.PhaseTypeBidding:
			return 0.40
		}
		return 0.10
	}

	cost := 0.0
	distinct := make(map[uint8]bool)
	for _, p := range g.TurnStructure.Phases {
		tag := p.PhaseType()
		distinct[tag] = true
		c := base(tag)

		switch phase := p.(type) {
		case *genome.DrawPhase:
			if phase.Source == genome.LocationOpponentHand {
				c += 0.15
			}
			if !phase.Mandatory {
				c += 0.05
			}
			if phase.Condition != nil {
				c += 0.12
			}
		case *genome.PlayPhase:
			if phase.ValidPlayCondition != nil {
				c += 0.15
			}
		case *genome.DiscardPhase:
			if phase.Count > 1 {
				c += 0.10
			}
		}
		cost += c
	}

	// A repeated phase type is one explanation reused.
	if dup := len(g.TurnStructure.Phases) - len(distinct); dup > 0 {
		cost = math.Max(0.1, cost-float64(dup)*0.10)
	}
	cost += float64(len(distinct)) * 0.06

	return math.Min(1.0, cost)
}

func conditionCost(g *genome.GameGenome) float64 {
	clauses := 0
	conditions := 0
	for _, p := range g.TurnStructure.Phases {
		switch phase := p.(type) {
		case *genome.DrawPhase:
			if phase.Condition != nil {
				conditions++
				clauses += countClauses(phase.Condition)
			}
		case *genome.PlayPhase:
			if phase.ValidPlayCondition != nil {
				conditions++
				clauses += countClauses(phase.ValidPlayCondition)
			}
		}
	}

	// Each special effect is one more "except when" to remember.
	clauses += len(g.SpecialEffects)

	if conditions == 0 && len(g.SpecialEffects) == 0 {
		return 0.0
	}

	presence := math.Min(0.4, 0.15+float64(conditions)*0.08)
	clauseScore := math.Min(1.0, float64(clauses)/8.0)
	return presence*0.50 + clauseScore*0.50
}

// countClauses counts the leaves of a condition tree.
func countClauses(c *genome.Condition) int {
	if c == nil {
		return 0
	}
	if len(c.Children) == 0 {
		return 1
	}
	n := 0
	for i := range c.Children {
		n += countClauses(&c.Children[i])
	}
	return n
}

func effectsCost(g *genome.GameGenome) float64 {
	if len(g.SpecialEffects) == 0 {
		return 0.0
	}

	types := make(map[genome.EffectType]bool)
	for _, e := range g.SpecialEffects {
		types[e.Effect] = true
	}

	cost := float64(len(types)) * 0.15
	if extra := len(g.SpecialEffects) - len(types); extra > 0 {
		cost += float64(extra) * 0.05
	}
	return math.Min(1.0, cost)
}

// memoryCost charges for what players must carry in their heads: hand
// rankings, point values, card counting, opponents' tells.
func memoryCost(g *genome.GameGenome) float64 {
	cost := 0.08 // hidden hands are the baseline

	for _, wc := range g.WinConditions {
		switch wc.Type {
		case genome.WinMostCaptured:
			cost += 0.20
		case genome.WinLowScore:
			cost += 0.15
		case genome.WinBestHand:
			cost += 0.35
		}
	}

	for _, p := range g.TurnStructure.Phases {
		switch phase := p.(type) {
		case *genome.TrickPhase:
			cost += 0.30
		case *genome.ClaimPhase:
			cost += 0.25
		case *genome.BettingPhase:
			cost += 0.15
		case *genome.DiscardPhase:
			if phase.Count > 1 {
				cost += 0.15
			}
		}
	}

	return math.Min(1.0, cost)
}

func stateTrackingCost(g *genome.GameGenome) float64 {
	cost := 0.0
	for _, p := range g.TurnStructure.Phases {
		switch p.(type) {
		case *genome.TrickPhase:
			cost += 0.15
		case *genome.BettingPhase:
			cost += 0.20
		}
	}
	for _, e := range g.SpecialEffects {
		switch e.Effect {
		case genome.EffectReverse:
			cost += 0.10
		case genome.EffectSkipNext:
			cost += 0.05
		}
	}
	return math.Min(1.0, cost)
}

// implicitCost covers rules the genome implies rather than states,
// like poker hand rankings behind a best-hand win.
func implicitCost(g *genome.GameGenome) float64 {
	cost := 0.0
	for _, wc := range g.WinConditions {
		switch wc.Type {
		case genome.WinBestHand:
			cost += 0.50
		case genome.WinLowScore:
			cost += 0.20
		case genome.WinMostCaptured:
			cost += 0.15
		}
	}

	for _, p := range g.TurnStructure.Phases {
		if phase, ok := p.(*genome.PlayPhase); ok {
			if phase.Target == genome.LocationTableau && phase.MaxCards > 1 {
				cost += 0.25
				break
			}
		}
	}

	cost += float64(len(g.CardScoring)) * 0.10
	return math.Min(1.0, cost)
}

// familiarityDiscount credits shapes players already know from Hearts,
// Crazy Eights, Poker, or War.
func familiarityDiscount(g *genome.GameGenome) float64 {
	var hasTrick, hasDraw, hasPlay, hasBetting bool
	for _, p := range g.TurnStructure.Phases {
		switch p.(type) {
		case *genome.TrickPhase:
			hasTrick = true
		case *genome.DrawPhase:
			hasDraw = true
		case *genome.PlayPhase:
			hasPlay = true
		case *genome.BettingPhase:
			hasBetting = true
		}
	}

	discount := 0.0
	if hasTrick {
		discount += 0.15
	}
	if hasDraw && hasPlay && len(g.TurnStructure.Phases) <= 3 {
		discount += 0.10
	}
	if hasBetting {
		discount += 0.08
	}
	if len(g.TurnStructure.Phases) == 1 {
		if _, ok := g.TurnStructure.Phases[0].(*genome.PlayPhase); ok {
			discount += 0.25
		}
	}
	return math.Min(1.0, discount)
}

// explanationSentences estimates how many sentences a rulebook needs
// for this genome. Drives nothing in fitness; the rulebook prints it.
func explanationSentences(g *genome.GameGenome) int {
	sentences := 2 // setup and goal

	for _, p := range g.TurnStructure.Phases {
		switch phase := p.(type) {
		case *genome.DrawPhase:
			sentences++
		case *genome.PlayPhase:
			sentences += 2
			if phase.ValidPlayCondition != nil {
				sentences++
			}
		case *genome.DiscardPhase:
			sentences++
		case *genome.TrickPhase:
			sentences += 5
		case *genome.BettingPhase:
			sentences += 4
		case *genome.ClaimPhase:
			sentences += 3
		case *genome.BiddingPhase:
			sentences += 3
		default:
			sentences++
		}
	}

	if len(g.SpecialEffects) > 0 {
		types := make(map[genome.EffectType]bool)
		for _, e := range g.SpecialEffects {
			types[e.Effect] = true
		}
		sentences += len(types) * 2
	}

	return sentences + len(g.WinConditions)
}
