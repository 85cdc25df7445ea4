package genome

import (
	"fmt"
	"sort"
	"strings"
)

// Describe renders a genome as a plain-text rulebook a playtester can
// follow. It walks the typed phases rather than the bytecode: the
// typed layer still knows intent (draw, bid, claim) where the VM only
// sees offsets, and a genome that fails to compile can still be read.
func Describe(g *GameGenome) string {
	var b strings.Builder

	title := g.ID
	if title == "" {
		title = "unnamed variant"
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	fmt.Fprintf(&b, "Players: %d", g.Players())
	if teams := describeTeams(g); teams != "" {
		b.WriteString(teams)
	}
	b.WriteString("\n\n")

	writeSetup(&b, g)
	writeTurnStructure(&b, g)
	writeSpecialEffects(&b, g)
	writeScoring(&b, g)
	writeWinning(&b, g)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func describeTeams(g *GameGenome) string {
	if g.Teams == nil || !g.Teams.Enabled {
		return ""
	}
	parts := make([]string, 0, len(g.Teams.Teams))
	for _, team := range g.Teams.Teams {
		seats := make([]string, len(team))
		for i, seat := range team {
			seats[i] = fmt.Sprintf("%d", seat+1)
		}
		parts = append(parts, strings.Join(seats, " and "))
	}
	return ", in partnerships (seats " + strings.Join(parts, " vs ") + ")"
}

func writeSetup(b *strings.Builder, g *GameGenome) {
	b.WriteString("Setup\n-----\n")
	fmt.Fprintf(b, "Deal %s to each player.\n", countNoun(g.Setup.CardsPerPlayer, "card"))
	if g.Setup.DealToTableau > 0 {
		fmt.Fprintf(b, "Deal %s face up to the tableau.\n", countNoun(g.Setup.DealToTableau, "card"))
	}
	if g.Setup.StartingChips > 0 {
		fmt.Fprintf(b, "Each player starts with %d chips.\n", g.Setup.StartingChips)
	}
	b.WriteString("\n")
}

func writeTurnStructure(b *strings.Builder, g *GameGenome) {
	b.WriteString("On your turn\n------------\n")
	for i, p := range g.TurnStructure.Phases {
		fmt.Fprintf(b, "%d. %s\n", i+1, describePhase(p))
	}

	if mode := describeTableauMode(g.TurnStructure); mode != "" {
		b.WriteString(mode + "\n")
	}
	if g.TurnStructure.MaxTurns > 0 {
		fmt.Fprintf(b, "The game ends after %d turns if nobody has won by then.\n", g.TurnStructure.MaxTurns)
	}
	if g.MinTurns > 0 {
		fmt.Fprintf(b, "No winner is declared before turn %d.\n", g.MinTurns)
	}
	b.WriteString("\n")
}

func describeTableauMode(ts TurnStructure) string {
	switch ts.TableauMode {
	case TableauWar:
		return "Tableau plays resolve as a battle: the highest card captures everything played, ties escalate."
	case TableauMatchRank:
		return "Cards played to the tableau must match the rank of the card on top."
	case TableauSequence:
		switch ts.SequenceDirection {
		case SequenceDescending:
			return "Cards played to the tableau must continue the sequence downward."
		case SequenceBoth:
			return "Cards played to the tableau must continue the sequence in either direction."
		default:
			return "Cards played to the tableau must continue the sequence upward."
		}
	default:
		return ""
	}
}

func describePhase(p Phase) string {
	switch ph := p.(type) {
	case *DrawPhase:
		s := fmt.Sprintf("Draw %s from %s.", countNoun(ph.Count, "card"), locationNoun(ph.Source))
		if !ph.Mandatory {
			s += " (Optional.)"
		}
		if ph.Condition != nil {
			s += " Only when " + describeCondition(ph.Condition) + "."
		}
		return s

	case *PlayPhase:
		var s string
		if ph.MinCards == ph.MaxCards {
			s = fmt.Sprintf("Play %s to %s.", countNoun(ph.MinCards, "card"), locationNoun(ph.Target))
		} else {
			s = fmt.Sprintf("Play %d to %d cards to %s.", ph.MinCards, ph.MaxCards, locationNoun(ph.Target))
		}
		if ph.ValidPlayCondition != nil {
			s += " A card is playable only when " + describeCondition(ph.ValidPlayCondition) + "."
		}
		if ph.PassIfUnable {
			s += " Pass if you cannot play."
		} else if !ph.Mandatory {
			s += " (Optional.)"
		}
		return s

	case *DiscardPhase:
		s := fmt.Sprintf("Discard %s to %s.", countNoun(ph.Count, "card"), locationNoun(ph.Target))
		if !ph.Mandatory {
			s += " (Optional.)"
		}
		return s

	case *TrickPhase:
		parts := []string{"Everyone plays one card into a trick"}
		if ph.LeadSuitRequired {
			parts = append(parts, "follow the led suit if you can")
		}
		if ph.TrumpSuit != SuitAny {
			parts = append(parts, suitToString(ph.TrumpSuit)+" are trump")
		}
		if ph.HighCardWins {
			parts = append(parts, "the highest card takes the trick")
		} else {
			parts = append(parts, "the lowest card takes the trick")
		}
		s := strings.Join(parts, "; ") + "."
		if ph.BreakingSuit != SuitAny {
			s += fmt.Sprintf(" %s may not lead until the suit has been played to a trick.",
				titleCase(suitToString(ph.BreakingSuit)))
		}
		return s

	case *BettingPhase:
		s := fmt.Sprintf("A betting round: check, bet, call, raise, or fold. The minimum bet is %d chips", ph.MinBet)
		if ph.MaxRaises > 0 {
			s += fmt.Sprintf(", with at most %s", countNoun(ph.MaxRaises, "raise"))
		}
		return s + "."

	case *ClaimPhase:
		return "Play a card face down and claim it matches the round's rank. Any opponent may challenge; the loser of a challenge takes the pile."

	case *BiddingPhase:
		s := fmt.Sprintf("Bid how many tricks you will take, from %d to %d.", ph.MinBid, ph.MaxBid)
		if ph.AllowNil {
			s += " A nil bid promises to take none."
		}
		if ph.PointsPerTrickBid > 0 {
			s += fmt.Sprintf(" Making your bid scores %d per trick bid", ph.PointsPerTrickBid)
			if ph.OvertrickPoints > 0 {
				s += fmt.Sprintf(" plus %d per overtrick", ph.OvertrickPoints)
			}
			s += "."
		}
		if ph.FailedPenalty != 0 {
			s += fmt.Sprintf(" A failed contract scores %d per trick bid.", ph.FailedPenalty)
		}
		if ph.AllowNil && ph.NilBonus != 0 {
			s += fmt.Sprintf(" A made nil is worth %d, a broken one %d.", ph.NilBonus, ph.NilPenalty)
		}
		if ph.BagLimit > 0 {
			s += fmt.Sprintf(" Every %d overtricks cost %d.", ph.BagLimit, ph.BagPenalty)
		}
		return s

	default:
		return "Unknown phase."
	}
}

func writeSpecialEffects(b *strings.Builder, g *GameGenome) {
	if len(g.SpecialEffects) == 0 {
		return
	}
	b.WriteString("Special cards\n-------------\n")
	for _, se := range g.SpecialEffects {
		rank := rankToString(se.TriggerRank)
		fmt.Fprintf(b, "Playing %s %s: %s.\n", article(rank), rank, describeEffect(se))
	}
	b.WriteString("\n")
}

func describeEffect(se SpecialEffect) string {
	switch se.Effect {
	case EffectReverse:
		return "the direction of play reverses"
	case EffectDrawCards:
		return fmt.Sprintf("%s must draw %s", effectTargetNoun(se.Target), countNoun(int(se.Value), "card"))
	case EffectExtraTurn:
		return "take another turn"
	case EffectForceDiscard:
		return fmt.Sprintf("%s must discard %s", effectTargetNoun(se.Target), countNoun(int(se.Value), "card"))
	case EffectWild:
		return "it counts as any suit"
	default:
		return fmt.Sprintf("%s skips a turn", effectTargetNoun(se.Target))
	}
}

func effectTargetNoun(t EffectTarget) string {
	switch t {
	case TargetAllOpponents:
		return "every opponent"
	case TargetSelf:
		return "you"
	default:
		return "the next player"
	}
}

func writeScoring(b *strings.Builder, g *GameGenome) {
	if len(g.CardScoring) == 0 && g.HandEvaluation == nil {
		return
	}
	b.WriteString("Scoring\n-------\n")

	for _, cs := range g.CardScoring {
		fmt.Fprintf(b, "%s %s: %s.\n", scoredCardNoun(cs), scoringTriggerClause(cs.Trigger),
			countNoun(int(cs.Points), "point"))
	}
	if h := g.HandEvaluation; h != nil {
		writeHandEvaluation(b, h)
	}
	b.WriteString("\n")
}

func scoredCardNoun(cs CardScoringRule) string {
	switch {
	case cs.Suit == SuitAny && cs.Rank == RankAny:
		return "Every card"
	case cs.Rank == RankAny:
		return "Each " + strings.TrimSuffix(suitToString(cs.Suit), "s")
	case cs.Suit == SuitAny:
		return "Each " + rankToString(cs.Rank)
	default:
		return fmt.Sprintf("The %s of %s", rankToString(cs.Rank), suitToString(cs.Suit))
	}
}

func scoringTriggerClause(t ScoringTrigger) string {
	switch t {
	case TriggerCapture:
		return "captured"
	case TriggerPlay:
		return "when played"
	case TriggerHandEnd:
		return "left in hand at the end"
	case TriggerSetComplete:
		return "in a completed set"
	default:
		return "taken in a trick"
	}
}

func writeHandEvaluation(b *strings.Builder, h *HandEvaluation) {
	switch h.Method {
	case HandEvalHighCard:
		b.WriteString("At the showdown, the highest card wins.\n")

	case HandEvalPointTotal:
		fmt.Fprintf(b, "At the showdown, hands score by card points; closest to %d wins", h.TargetValue)
		if h.BustThreshold > 0 {
			fmt.Fprintf(b, ", over %d busts", h.BustThreshold)
		}
		b.WriteString(".\n")
		if len(h.CardValues) > 0 {
			entries := make([]string, 0, len(h.CardValues))
			for _, cv := range h.CardValues {
				e := fmt.Sprintf("%s %d", rankToString(cv.Rank), cv.Value)
				if cv.AltValue > 0 {
					e += fmt.Sprintf(" or %d", cv.AltValue)
				}
				entries = append(entries, e)
			}
			b.WriteString("Card points: " + strings.Join(entries, ", ") + ".\n")
		}

	case HandEvalPatternMatch:
		b.WriteString("At the showdown, hands are ranked by pattern, strongest first:\n")
		patterns := append([]HandPattern(nil), h.Patterns...)
		sort.SliceStable(patterns, func(i, j int) bool {
			return patterns[i].Priority > patterns[j].Priority
		})
		for _, pat := range patterns {
			fmt.Fprintf(b, "  - %s\n", describePattern(pat))
		}

	case HandEvalCardCount:
		b.WriteString("At the showdown, the largest hand wins.\n")
	}
}

func describePattern(pat HandPattern) string {
	if pat.Name != "" {
		return pat.Name
	}
	var parts []string
	if pat.SameSuitCount > 0 {
		parts = append(parts, fmt.Sprintf("%d of one suit", pat.SameSuitCount))
	}
	if pat.SequenceLength > 0 {
		parts = append(parts, fmt.Sprintf("a run of %d", pat.SequenceLength))
	}
	for _, n := range pat.SameRankGroups {
		parts = append(parts, fmt.Sprintf("%d of a kind", n))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("any %s", countNoun(pat.RequiredCount, "card"))
	}
	return strings.Join(parts, " and ")
}

func writeWinning(b *strings.Builder, g *GameGenome) {
	b.WriteString("Winning\n-------\n")
	if len(g.WinConditions) > 1 {
		b.WriteString("Conditions are checked in order; the first met ends the game.\n")
	}
	for _, wc := range g.WinConditions {
		b.WriteString(describeWinCondition(wc) + "\n")
	}
}

func describeWinCondition(wc WinCondition) string {
	switch wc.Type {
	case WinHighScore:
		if wc.Threshold > 0 {
			return fmt.Sprintf("When a player reaches %d points, the highest score wins.", wc.Threshold)
		}
		return "The highest score at the end wins."
	case WinFirstToScore:
		return fmt.Sprintf("The first player to reach %d points wins.", wc.Threshold)
	case WinCaptureAll:
		return "Capture every card to win."
	case WinLowScore:
		if wc.Threshold > 0 {
			return fmt.Sprintf("When a player reaches %d points, the lowest score wins.", wc.Threshold)
		}
		return "The lowest score at the end wins."
	case WinAllHandsEmpty:
		return "When every hand is empty, the hand ends and scores settle it."
	case WinBestHand:
		return "The best hand at the showdown takes the game."
	case WinMostCaptured:
		return "Whoever captured the most cards wins."
	default:
		return "The first player to empty their hand wins."
	}
}

// describeCondition spells a gate condition as a clause that follows
// "only when". Compounds are one level deep, matching the bytecode.
func describeCondition(c *Condition) string {
	if c == nil {
		return ""
	}
	switch c.OpCode {
	case OpAnd, OpOr:
		joiner := " and "
		if c.OpCode == OpOr {
			joiner = " or "
		}
		parts := make([]string, len(c.Children))
		for i := range c.Children {
			parts[i] = describeCondition(&c.Children[i])
		}
		return strings.Join(parts, joiner)

	case OpCheckHandSize:
		return "your hand " + containsPhrase(c.Operator, countNoun(int(c.Value), "card"))
	case OpCheckCardRank:
		return "the card's rank " + amountPhrase(c.Operator, rankToString(Rank(c.Value)))
	case OpCheckCardSuit:
		return "the card's suit is " + suitToString(Suit(c.Value))
	case OpCheckLocationSize:
		return locationNoun(c.RefLoc) + " " + containsPhrase(c.Operator, countNoun(int(c.Value), "card"))
	case OpCheckSequence:
		return "the card continues the tableau sequence"
	case OpCheckHasSetOfN:
		return fmt.Sprintf("you hold %d of a kind", c.Value)
	case OpCheckHasRunOfN:
		return fmt.Sprintf("you hold a run of %d", c.Value)
	case OpCheckHasMatchingPair:
		return "you hold a matching pair"
	case OpCheckChipCount:
		return "your chip count " + amountPhrase(c.Operator, fmt.Sprintf("%d", c.Value))
	case OpCheckPotSize:
		return "the pot " + amountPhrase(c.Operator, fmt.Sprintf("%d", c.Value))
	case OpCheckCurrentBet:
		return "the current bet " + amountPhrase(c.Operator, fmt.Sprintf("%d", c.Value))
	case OpCheckCanAfford:
		return "you can cover the bet"
	case OpCheckCardMatchesRank:
		return "the card matches the rank of the pile's top card"
	case OpCheckCardMatchesSuit:
		return "the card matches the suit of the pile's top card"
	case OpCheckCardBeatsTop:
		return "the card beats the pile's top card"
	default:
		return "an unknown condition holds"
	}
}

func containsPhrase(op CompareOp, quantity string) string {
	switch op {
	case CmpNE:
		return "does not hold " + quantity
	case CmpLT:
		return "holds fewer than " + quantity
	case CmpGT:
		return "holds more than " + quantity
	case CmpLE:
		return "holds at most " + quantity
	case CmpGE:
		return "holds at least " + quantity
	default:
		return "holds exactly " + quantity
	}
}

func amountPhrase(op CompareOp, quantity string) string {
	switch op {
	case CmpNE:
		return "is not " + quantity
	case CmpLT:
		return "is below " + quantity
	case CmpGT:
		return "is above " + quantity
	case CmpLE:
		return "is at most " + quantity
	case CmpGE:
		return "is at least " + quantity
	default:
		return "is " + quantity
	}
}

func locationNoun(loc Location) string {
	switch loc {
	case LocationHand:
		return "your hand"
	case LocationDiscard:
		return "the discard pile"
	case LocationTableau:
		return "the tableau"
	case LocationOpponentHand:
		return "an opponent's hand"
	case LocationCaptured:
		return "your captured pile"
	default:
		return "the deck"
	}
}

func countNoun(n int, noun string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func article(noun string) string {
	switch {
	case noun == "":
		return "a"
	case strings.ContainsRune("aeiou", rune(noun[0])):
		return "an"
	default:
		return "a"
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
