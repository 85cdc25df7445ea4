package engine

// compare applies a comparison operator offset to two ints.
func compare(operator uint8, left, right int) bool {
	switch operator {
	case CmpEQ:
		return left == right
	case CmpNE:
		return left != right
	case CmpLT:
		return left < right
	case CmpGT:
		return left > right
	case CmpLE:
		return left <= right
	case CmpGE:
		return left >= right
	}
	return false
}

// referencedCard resolves a condition's reference location to the card
// it names. Reference 1 is a legacy alias for the discard top; 2 is
// the discard top, 3 the top of the first occupied tableau pile.
func referencedCard(s *GameState, refLoc uint8) (Card, bool) {
	switch refLoc {
	case 1, LocationDiscard:
		if n := len(s.Discard); n > 0 {
			return s.Discard[n-1], true
		}
	case LocationTableau:
		for i := range s.Tableau {
			if n := len(s.Tableau[i]); n > 0 {
				return s.Tableau[i][n-1], true
			}
		}
	}
	return Card{}, false
}

// locationSize returns the number of cards at a location from the
// perspective of a player. Tableau size reads the first pile, which is
// what sequence and shedding rules key off.
func locationSize(s *GameState, loc uint8, player uint8) int {
	switch loc {
	case LocationDeck:
		return len(s.Deck)
	case LocationHand:
		return len(s.Players[player].Hand)
	case LocationDiscard:
		return len(s.Discard)
	case LocationTableau:
		if len(s.Tableau) > 0 {
			return len(s.Tableau[0])
		}
	case LocationOpponentHand:
		opp := nextActivePlayer(s, player)
		if opp != int(player) {
			return len(s.Players[opp].Hand)
		}
	}
	return 0
}

// EvaluateCondition checks a player-level predicate against the state.
func EvaluateCondition(s *GameState, p *Program, cond *Condition, player uint8) bool {
	if cond == nil {
		return true
	}
	switch cond.OpCode {
	case uint8(OpAnd):
		for i := range cond.Children {
			if !EvaluateCondition(s, p, &cond.Children[i], player) {
				return false
			}
		}
		return true
	case uint8(OpOr):
		for i := range cond.Children {
			if EvaluateCondition(s, p, &cond.Children[i], player) {
				return true
			}
		}
		return false
	}
	return evaluateLeaf(s, p, cond, player)
}

func evaluateLeaf(s *GameState, p *Program, cond *Condition, player uint8) bool {
	pp := &s.Players[player]
	switch OpCode(cond.OpCode) {
	case OpCheckHandSize:
		return compare(cond.Operator, len(pp.Hand), int(cond.Value))
	case OpCheckCardRank:
		if ref, ok := referencedCard(s, cond.RefLoc); ok {
			return compare(cond.Operator, int(ref.Rank), int(cond.Value))
		}
		return false
	case OpCheckCardSuit:
		if ref, ok := referencedCard(s, cond.RefLoc); ok {
			return compare(cond.Operator, int(ref.Suit), int(cond.Value))
		}
		return false
	case OpCheckLocationSize:
		return compare(cond.Operator, locationSize(s, cond.RefLoc, player), int(cond.Value))
	case OpCheckSequence:
		for _, c := range pp.Hand {
			if sequencePlayable(s, p, c) {
				return true
			}
		}
		return false
	case OpCheckHasSetOfN:
		return hasSetOfN(pp.Hand, int(cond.Value))
	case OpCheckHasRunOfN:
		return hasRunOfN(pp.Hand, int(cond.Value))
	case OpCheckHasMatchingPair:
		return hasMatchingPair(pp.Hand)
	case OpCheckChipCount:
		return compare(cond.Operator, int(pp.Chips), int(cond.Value))
	case OpCheckPotSize:
		return compare(cond.Operator, int(s.Pot), int(cond.Value))
	case OpCheckCurrentBet:
		return compare(cond.Operator, int(s.TableBet), int(cond.Value))
	case OpCheckCanAfford:
		return pp.Chips >= cond.Value
	case OpCheckCardMatchesRank, OpCheckCardMatchesSuit, OpCheckCardBeatsTop:
		// Card opcodes at player level: true if any hand card passes.
		for _, c := range pp.Hand {
			if EvaluateCardCondition(s, p, cond, player, c) {
				return true
			}
		}
		return false
	}
	return false
}

// EvaluateCardCondition checks whether a specific candidate card
// satisfies a condition. A card-matching opcode with no reference card
// on the table accepts any card, so opening plays are always legal.
// Opcodes that do not inspect a card defer to player-level evaluation.
func EvaluateCardCondition(s *GameState, p *Program, cond *Condition, player uint8, card Card) bool {
	if cond == nil {
		return true
	}
	switch cond.OpCode {
	case uint8(OpAnd):
		for i := range cond.Children {
			if !EvaluateCardCondition(s, p, &cond.Children[i], player, card) {
				return false
			}
		}
		return true
	case uint8(OpOr):
		for i := range cond.Children {
			if EvaluateCardCondition(s, p, &cond.Children[i], player, card) {
				return true
			}
		}
		return false
	}

	switch OpCode(cond.OpCode) {
	case OpCheckCardRank:
		return compare(cond.Operator, int(card.Rank), int(cond.Value))
	case OpCheckCardSuit:
		return compare(cond.Operator, int(card.Suit), int(cond.Value))
	case OpCheckCardMatchesRank:
		ref, ok := referencedCard(s, cond.RefLoc)
		if !ok {
			return true
		}
		return card.Rank == ref.Rank
	case OpCheckCardMatchesSuit:
		ref, ok := referencedCard(s, cond.RefLoc)
		if !ok {
			return true
		}
		if card.Suit == ref.Suit {
			return true
		}
		// A wild card on the pile lifts the suit requirement for the
		// play that follows it.
		if e := p.EffectFor(ref.Rank); e != nil && e.Type == EffectWild {
			return true
		}
		return false
	case OpCheckCardBeatsTop:
		ref, ok := referencedCard(s, cond.RefLoc)
		if !ok {
			return true
		}
		// Equal rank may be played on equal rank.
		return card.Value() >= ref.Value()
	}
	return evaluateLeaf(s, p, cond, player)
}

// hasSetOfN reports whether the hand holds n cards of one rank.
func hasSetOfN(hand []Card, n int) bool {
	if n <= 0 {
		return true
	}
	var counts [13]int
	for _, c := range hand {
		if c.Rank < 13 {
			counts[c.Rank]++
			if counts[c.Rank] >= n {
				return true
			}
		}
	}
	return false
}

// hasRunOfN reports whether the hand holds n consecutive rank indices,
// suits ignored, duplicates collapsed.
func hasRunOfN(hand []Card, n int) bool {
	if n <= 1 {
		return len(hand) >= n
	}
	var present [13]bool
	for _, c := range hand {
		if c.Rank < 13 {
			present[c.Rank] = true
		}
	}
	runLen := 0
	for r := 0; r < 13; r++ {
		if present[r] {
			runLen++
			if runLen >= n {
				return true
			}
		} else {
			runLen = 0
		}
	}
	return false
}

// hasMatchingPair reports whether the hand holds two cards of the same
// rank and the same colour. Hearts and diamonds are suits 0 and 1, so
// colour is the suit index halved.
func hasMatchingPair(hand []Card) bool {
	// seen[rank][colour]
	var seen [13][2]bool
	for _, c := range hand {
		if c.Rank >= 13 || c.Suit >= 4 {
			continue
		}
		colour := c.Suit / 2
		if seen[c.Rank][colour] {
			return true
		}
		seen[c.Rank][colour] = true
	}
	return false
}

// sequencePlayable reports whether a card can legally land on any
// tableau pile under the program's sequence direction, or start a new
// pile when an empty slot exists.
func sequencePlayable(s *GameState, p *Program, card Card) bool {
	for i := range s.Tableau {
		if len(s.Tableau[i]) == 0 {
			return true
		}
		if sequenceExtends(p, s.Tableau[i][len(s.Tableau[i])-1], card) {
			return true
		}
	}
	return false
}

// sequenceExtends reports whether next may be placed on top in
// sequence mode. Same suit, adjacent ace-high value, no wrapping.
func sequenceExtends(p *Program, top, next Card) bool {
	if top.Suit != next.Suit {
		return false
	}
	diff := next.Value() - top.Value()
	switch p.SequenceDir {
	case SequenceAscending:
		return diff == 1
	case SequenceDescending:
		return diff == -1
	case SequenceBoth:
		return diff == 1 || diff == -1
	}
	return false
}

// nextActivePlayer returns the next active seat after player in play
// direction, or player itself when alone.
func nextActivePlayer(s *GameState, player uint8) int {
	n := s.NumPlayers
	dir := int(s.PlayDirection)
	cur := int(player)
	for i := 0; i < n; i++ {
		cur = (cur + dir + n) % n
		if s.Players[cur].Active && cur != int(player) {
			return cur
		}
	}
	return int(player)
}
