// Package fitness scores simulated rulesets. Each metric reads the
// aggregated batch statistics, the style preset weighs them, and
// quality gates knock down genomes that technically play but would
// bore or frustrate a table.
package fitness

import (
	"math"

	"github.com/signalnine/darwindeck/gosim/genome"
	"github.com/signalnine/darwindeck/gosim/simulation"
)

// Metrics is one genome's full evaluation. Total already includes the
// quality gates and the coherence penalty; SessionLength is reported
// but acts only as a validity gate, never as a weighted term.
type Metrics struct {
	DecisionDensity      float64
	ComebackPotential    float64
	TensionCurve         float64
	InteractionFrequency float64
	RulesComplexity      float64
	SessionLength        float64
	SkillVsLuck          float64
	BluffingDepth        float64
	BettingEngagement    float64

	Total float64
	Games int
	Valid bool
}

// Compute evaluates one genome against its batch statistics under a
// style preset. A genome that errors in more than half its games, or
// whose estimated session blows the style's window, comes back invalid
// with a zero total.
func Compute(g *genome.GameGenome, st *simulation.Stats, style Style) *Metrics {
	games := int(st.TotalGames)
	if games == 0 || int(st.Errors) > games/2 {
		return &Metrics{Games: games}
	}

	sessionLength, ok := sessionScore(st, style)
	if !ok {
		return &Metrics{Games: games}
	}

	m := &Metrics{
		DecisionDensity:      decisionDensity(g, st),
		ComebackPotential:    comebackPotential(st),
		TensionCurve:         tensionCurve(st),
		InteractionFrequency: interactionFrequency(g, st),
		RulesComplexity:      ComputeRulesComplexity(g),
		SessionLength:        sessionLength,
		BluffingDepth:        bluffingDepth(st),
		BettingEngagement:    bettingEngagement(st),
		Games:                games,
		Valid:                st.Errors == 0,
	}
	m.SkillVsLuck = skillProxy(g, st, m.ComebackPotential, style)

	// Tension only matters where there are decisions to feel tense
	// about, hence the interaction term.
	effectiveTension := m.TensionCurve * m.DecisionDensity

	w := style.Weights
	weighted := w.DecisionDensity*m.DecisionDensity +
		w.ComebackPotential*m.ComebackPotential +
		w.TensionCurve*effectiveTension +
		w.InteractionFrequency*m.InteractionFrequency +
		w.RulesComplexity*m.RulesComplexity +
		w.SkillVsLuck*m.SkillVsLuck +
		w.BluffingDepth*m.BluffingDepth +
		w.BettingEngagement*m.BettingEngagement
	if sum := w.Sum(); sum > 0 {
		weighted /= sum
	}

	weighted *= qualityMultiplier(g, st, m)
	m.Total = weighted
	return m
}

// qualityMultiplier stacks the gates: hopeless comebacks, pure luck,
// one-sided matchups, and incoherent rule combinations each shave the
// total.
func qualityMultiplier(g *genome.GameGenome, st *simulation.Stats, m *Metrics) float64 {
	mult := 1.0
	if m.ComebackPotential < 0.15 {
		mult *= 0.5
	}
	if m.SkillVsLuck < 0.15 {
		mult *= 0.7
	}
	if st.TotalGames > 0 && len(st.Wins) >= 2 {
		var maxWins uint32
		for _, w := range st.Wins {
			if w > maxWins {
				maxWins = w
			}
		}
		if float64(maxWins)/float64(st.TotalGames) > 0.80 {
			mult *= 0.6
		}
	}
	return mult * (1.0 - coherencePenalty(g))
}

// decisionDensity rates how often play offers a real choice. With live
// instrumentation it blends raw option counts, hand filtering, option
// variety, and the inverse forced-move ratio; without it, it falls
// back to a structural guess from the phase list.
func decisionDensity(g *genome.GameGenome, st *simulation.Stats) float64 {
	d := &st.Decisions
	if d.Decisions > 0 {
		avgValidMoves := float64(d.ValidMoves) / float64(d.Decisions)
		forcedRatio := float64(d.Forced) / float64(d.Decisions)

		var filteringScore, varietyScore float64
		if d.HandSizes > 0 {
			movesPerCard := float64(d.ValidMoves) / float64(d.HandSizes)
			if movesPerCard <= 1.0 {
				// Conditions are pruning the hand: that pruning is
				// itself interesting.
				filteringScore = 1.0 - movesPerCard
			} else {
				filteringScore = 0.3
				varietyScore = math.Min(0.5, (movesPerCard-1.0)*0.15)
			}
		}

		rawChoice := math.Min(1.0, (avgValidMoves-1)/6.0)
		constraint := 0.2 + filteringScore*0.8
		choiceScore := rawChoice * constraint

		return math.Min(1.0,
			choiceScore*0.35+
				filteringScore*0.30+
				varietyScore+
				(1.0-forcedRatio)*0.20)
	}

	optionalPhases := 0
	conditioned := 0
	for _, p := range g.TurnStructure.Phases {
		switch phase := p.(type) {
		case *genome.DrawPhase:
			if !phase.Mandatory {
				optionalPhases++
			}
			if phase.Condition != nil {
				conditioned++
			}
		case *genome.PlayPhase:
			if !phase.Mandatory {
				optionalPhases++
			}
			if phase.ValidPlayCondition != nil {
				conditioned++
			}
		}
	}
	phaseCount := len(g.TurnStructure.Phases)
	return math.Min(1.0,
		math.Min(1.0, float64(phaseCount)/6.0)*0.5+
			math.Min(1.0, float64(optionalPhases)/3.0)*0.3+
			math.Min(1.0, float64(conditioned)/3.0)*0.2)
}

// comebackPotential blends how often the eventual winner trailed at
// midpoint with how evenly wins spread across the seats.
func comebackPotential(st *simulation.Stats) float64 {
	if st.PlayerCount == 0 {
		return 0.0
	}

	expectedRate := 1.0 / float64(st.PlayerCount)
	maxDeviation := 1.0 - expectedRate

	var avgDeviation float64
	if st.TotalGames > 0 && len(st.Wins) > 0 {
		var total float64
		for _, wins := range st.Wins {
			rate := float64(wins) / float64(st.TotalGames)
			if maxDeviation > 0 {
				total += math.Abs(rate-expectedRate) / maxDeviation
			}
		}
		avgDeviation = total / float64(len(st.Wins))
	}
	balanceScore := 1.0 - avgDeviation

	decisive := int(st.TotalGames) - int(st.Draws) - int(st.Errors)
	trailingScore := balanceScore
	if decisive > 0 && st.TrailingWinners > 0 {
		freq := float64(st.TrailingWinners) / float64(decisive)
		trailingScore = 1.0 - math.Abs(0.5-freq)*2
	}

	return trailingScore*0.6 + balanceScore*0.4
}

// tensionCurve rates drama. Lead-change tracking is the primary
// signal; betting games without it fall back to pot dynamics, and
// anything else to margins or plain game length.
func tensionCurve(st *simulation.Stats) float64 {
	avgTurns := float64(st.AvgTurns)
	tracked := st.LeadChangesPerGame > 0

	if st.Betting.Bets > 0 && !tracked {
		decided := float64(max(1, int(st.TotalGames)-int(st.Draws)-int(st.Errors)))
		betsPerGame := float64(st.Betting.Bets) / decided
		allInRate := float64(st.Betting.AllIns) / decided
		showdownRate := float64(st.Betting.ShowdownWins) / decided

		return math.Min(1.0, betsPerGame/3.0)*0.4 +
			math.Min(1.0, allInRate*2)*0.3 +
			math.Min(1.0, showdownRate)*0.3
	}

	if tracked {
		// One lead change every twenty turns reads as a tight game.
		expected := math.Max(1, avgTurns/20.0)
		leadScore := math.Min(1.0, float64(st.LeadChangesPerGame)/expected)
		return leadScore*0.4 + float64(st.DecisivePct)*0.4 + (1.0-float64(st.ClosestMargin))*0.2
	}

	if st.ClosestMargin > 0 && st.ClosestMargin < 1.0 {
		return (1.0-float64(st.ClosestMargin))*0.5 + float64(st.DecisivePct)*0.5
	}

	turnScore := math.Min(1.0, avgTurns/100.0)
	lengthBonus := math.Min(1.0, math.Max(0.0, (avgTurns-20)/50.0))
	return math.Min(0.6, turnScore*0.6+lengthBonus*0.4)
}

// interactionFrequency prefers the probe counters when the runner
// collected them, then the per-move interaction ratio, then a guess
// from the genome's structure.
func interactionFrequency(g *genome.GameGenome, st *simulation.Stats) float64 {
	if st.Contact.OpponentTurns > 0 {
		turns := float64(st.Contact.OpponentTurns)
		disruption := math.Min(1.0, float64(st.Contact.Disruptions)/turns)
		forced := math.Min(1.0, float64(st.Contact.ForcedResponses)/turns)

		var contention float64
		if st.Decisions.Actions > 0 {
			contention = math.Min(1.0, float64(st.Contact.Contentions)/float64(st.Decisions.Actions))
		}
		return (disruption + contention + forced) / 3.0
	}

	if st.Decisions.Actions > 0 {
		return math.Min(1.0, float64(st.Decisions.Interactions)/float64(st.Decisions.Actions))
	}

	effectsScore := math.Min(1.0, float64(len(g.SpecialEffects))/3.0)
	var trickScore float64
	if g.TurnStructure.IsTrickBased {
		trickScore = 0.3
	}
	phaseScore := math.Min(0.4, float64(len(g.TurnStructure.Phases))/10.0)
	return math.Min(1.0, effectsScore*0.4+trickScore+phaseScore)
}

// sessionScore estimates table time from the turn count and gates on
// the style window. Shorter than optimal only lowers the score; longer
// than the maximum invalidates the genome.
func sessionScore(st *simulation.Stats, style Style) (float64, bool) {
	est := float64(st.AvgTurns) * TurnSeconds
	optimal := style.OptimalMinutes * 60
	limit := style.MaxMinutes * 60
	if optimal <= 0 {
		optimal = Balanced.OptimalMinutes * 60
	}
	if limit <= 0 {
		limit = Balanced.MaxMinutes * 60
	}

	if est > limit {
		return 0.0, false
	}
	if est < optimal {
		return est / optimal, true
	}
	return 1.0 - (est-optimal)/(limit-optimal)*0.5, true
}

// skillProxy is the cheap in-loop stand-in for the skill evaluator:
// longer, better-balanced, structurally richer games tend to reward
// skill. The matchup-based measurement replaces it for finalists.
func skillProxy(g *genome.GameGenome, st *simulation.Stats, comeback float64, style Style) float64 {
	lengthFactor := math.Min(1.0, float64(st.AvgTurns)/80.0)

	complexity := len(g.TurnStructure.Phases) + len(g.SpecialEffects)
	if g.TurnStructure.IsTrickBased {
		complexity++
	}
	complexityFactor := math.Min(1.0, float64(complexity)/8.0)

	skill := math.Min(1.0, lengthFactor*0.4+comeback*0.3+complexityFactor*0.3)
	if style.InvertSkill {
		skill = 1.0 - skill
	}
	return skill
}

// bluffingDepth rates deception quality. Claim games target a 60%
// bluff rate, a 40% challenge rate, and an even split of bluffs landed
// versus caught; betting games rate bluff-bet frequency, fold-win
// share, and all-in restraint.
func bluffingDepth(st *simulation.Stats) float64 {
	if st.Bluffing.Claims > 0 {
		claims := float64(st.Bluffing.Claims)
		bluffRate := float64(st.Bluffing.Bluffs) / claims
		challengeRate := float64(st.Bluffing.Challenges) / claims

		bluffScore := clamp01(1.0 - math.Abs(bluffRate-0.6)*2)
		challengeScore := clamp01(1.0 - math.Abs(challengeRate-0.4)*2)

		var balanceScore float64
		if outcomes := st.Bluffing.BluffsLanded + st.Bluffing.Catches; outcomes > 0 {
			landedRate := float64(st.Bluffing.BluffsLanded) / float64(outcomes)
			balanceScore = clamp01(1.0 - math.Abs(landedRate-0.5)*2)
		}

		return bluffScore*0.3 + challengeScore*0.3 + balanceScore*0.4
	}

	if st.Betting.Bets > 0 {
		bets := float64(st.Betting.Bets)
		bluffScore := clamp01(1.0 - math.Abs(float64(st.Betting.Bluffs)/bets-0.3)*3)

		var foldScore float64
		if wins := st.Betting.FoldWins + st.Betting.ShowdownWins; wins > 0 {
			foldRate := float64(st.Betting.FoldWins) / float64(wins)
			foldScore = clamp01(1.0 - math.Abs(foldRate-0.35)*3)
		}

		allInScore := clamp01(1.0 - math.Abs(float64(st.Betting.AllIns)/bets-0.10)*10)

		return bluffScore*0.35 + foldScore*0.40 + allInScore*0.25
	}

	return 0.0
}

// bettingEngagement rates how alive a betting game feels: hands that
// resolve, occasional all-in drama, steady action, spread-out wins,
// and showdowns outnumbering folds roughly three to one.
func bettingEngagement(st *simulation.Stats) float64 {
	if st.Betting.Bets == 0 {
		return 0.0
	}

	games := float64(st.TotalGames)
	var totalWins uint32
	var maxWins uint32
	for _, w := range st.Wins {
		totalWins += w
		if w > maxWins {
			maxWins = w
		}
	}

	var resolutionScore float64
	if games > 0 {
		resolutionScore = math.Min(1.0, float64(totalWins)/games*1.5)
	}

	var dramaScore float64
	if games > 0 {
		allInRate := float64(st.Betting.AllIns) / games
		switch {
		case allInRate < 0.05:
			dramaScore = allInRate / 0.05
		case allInRate <= 0.25:
			dramaScore = 1.0
		default:
			dramaScore = math.Max(0.3, 1.0-(allInRate-0.25)*2)
		}
	}

	var activityScore float64
	if games > 0 {
		betsPerGame := float64(st.Betting.Bets) / games
		switch {
		case betsPerGame < 2:
			activityScore = betsPerGame / 2
		case betsPerGame <= 20:
			activityScore = 1.0
		default:
			activityScore = math.Max(0.5, 1.0-(betsPerGame-20)/50)
		}
	}

	varianceScore := 0.5
	if totalWins > 0 {
		varianceScore = (1.0 - float64(maxWins)/float64(totalWins)) * 2
	}

	showdownScore := 0.5
	if resolved := st.Betting.FoldWins + st.Betting.ShowdownWins; resolved > 0 {
		showdownRate := float64(st.Betting.ShowdownWins) / float64(resolved)
		showdownScore = clamp01(1.0 - math.Abs(showdownRate-0.75)*2)
	}

	return resolutionScore*0.30 +
		dramaScore*0.20 +
		activityScore*0.15 +
		varianceScore*0.15 +
		showdownScore*0.20
}

// coherencePenalty punishes rule pairings that play out degenerately:
// war hands grow rather than empty, and capture modes recycle cards so
// capture-all never fires.
func coherencePenalty(g *genome.GameGenome) float64 {
	winTypes := make(map[genome.WinConditionType]bool, len(g.WinConditions))
	for _, wc := range g.WinConditions {
		winTypes[wc.Type] = true
	}

	penalty := 0.0
	switch g.TurnStructure.TableauMode {
	case genome.TableauWar:
		if winTypes[genome.WinEmptyHand] {
			penalty += 0.30
		}
	case genome.TableauMatchRank:
		if winTypes[genome.WinCaptureAll] {
			penalty += 0.20
		}
	case genome.TableauSequence:
		if winTypes[genome.WinCaptureAll] {
			penalty += 0.30
		}
	}
	return math.Min(penalty, 0.50)
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
