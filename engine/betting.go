package engine

import "sort"

// appendBettingMoves emits the actions open to the current player in
// an unresolved betting round. A player facing a bet they cannot call
// may only push all-in or fold; raises stop once the cap is reached.
func appendBettingMoves(moves []LegalMove, s *GameState, idx uint8, ph *PhaseInfo) []LegalMove {
	pp := &s.Players[s.CurrentPlayer]
	if pp.Folded || pp.AllIn || pp.Chips <= 0 {
		return moves
	}

	toCall := s.TableBet - pp.RoundBet
	if toCall <= 0 {
		moves = append(moves, encodeBettingMove(idx, BetCheck))
		if pp.Chips >= ph.MinBet {
			moves = append(moves, encodeBettingMove(idx, BetBet))
		} else {
			moves = append(moves, encodeBettingMove(idx, BetAllIn))
		}
		return moves
	}

	if pp.Chips >= toCall {
		moves = append(moves, encodeBettingMove(idx, BetCall))
		if pp.Chips >= toCall+ph.MinBet && s.RaiseCount < ph.MaxRaises {
			moves = append(moves, encodeBettingMove(idx, BetRaise))
		}
	} else {
		moves = append(moves, encodeBettingMove(idx, BetAllIn))
	}
	moves = append(moves, encodeBettingMove(idx, BetFold))
	return moves
}

// applyBettingMove performs one betting action and the round
// bookkeeping around it: chip movement, re-opening on a raise,
// rotation to the next actor, and closing the round when every live
// player has matched. Chips only ever move between a player and the
// pot, so their sum is invariant.
func applyBettingMove(s *GameState, ph *PhaseInfo, action BettingAction) {
	player := s.CurrentPlayer
	pp := &s.Players[player]

	commit := func(amount int32) {
		if amount > pp.Chips {
			amount = pp.Chips
		}
		pp.Chips -= amount
		pp.RoundBet += amount
		s.Pot += amount
		if pp.Chips == 0 {
			pp.AllIn = true
		}
	}

	raised := false
	switch action {
	case BetCheck:
	case BetBet:
		commit(ph.MinBet)
		if pp.RoundBet > s.TableBet {
			s.TableBet = pp.RoundBet
			raised = true
		}
	case BetCall:
		commit(s.TableBet - pp.RoundBet)
	case BetRaise:
		commit(s.TableBet - pp.RoundBet + ph.MinBet)
		if pp.RoundBet > s.TableBet {
			s.TableBet = pp.RoundBet
			s.RaiseCount++
			raised = true
		}
	case BetAllIn:
		commit(pp.Chips)
		if pp.RoundBet > s.TableBet {
			s.TableBet = pp.RoundBet
			raised = true
		}
	case BetFold:
		pp.Folded = true
	}

	pp.Acted = true
	if raised {
		for i := range s.Players {
			if uint8(i) != player && s.Players[i].Active {
				s.Players[i].Acted = false
			}
		}
	}

	if closeBettingIfDone(s) {
		return
	}

	// Rotate to the next player who can still act.
	n := s.NumPlayers
	cur := int(player)
	for i := 0; i < n; i++ {
		cur = (cur + 1) % n
		q := &s.Players[cur]
		if q.Active && !q.Folded && !q.AllIn {
			s.CurrentPlayer = uint8(cur)
			return
		}
	}
	// Nobody left to act.
	s.BettingClosed = true
	s.CurrentPlayer = s.BettingOpener
}

// closeBettingIfDone closes the round when one player remains or all
// live players have matched the table bet. A round won by everyone
// else folding pays the pot immediately and decides the game.
func closeBettingIfDone(s *GameState) bool {
	unfolded := -1
	unfoldedCount := 0
	for i := range s.Players {
		if s.Players[i].Active && !s.Players[i].Folded {
			unfolded = i
			unfoldedCount++
		}
	}

	if unfoldedCount <= 1 {
		s.BettingClosed = true
		if unfolded >= 0 {
			AwardPot(s, uint8(unfolded))
			s.Winner = int8(unfolded)
			s.FoldWin = true
			if s.TeamOf != nil {
				s.WinningTeam = s.TeamOf[unfolded]
			}
		}
		return true
	}

	for i := range s.Players {
		pp := &s.Players[i]
		if !pp.Active || pp.Folded || pp.AllIn {
			continue
		}
		if !pp.Acted || pp.RoundBet != s.TableBet {
			return false
		}
	}
	s.BettingClosed = true
	s.CurrentPlayer = s.BettingOpener
	return true
}

// AwardPot pays the whole pot to one player.
func AwardPot(s *GameState, winner uint8) {
	if int(winner) >= len(s.Players) {
		return
	}
	s.Players[winner].Chips += s.Pot
	s.Pot = 0
}

// ResolveShowdown compares the unfolded hands under the program's hand
// evaluation and pays the pot to the best one. Ties go to the lowest
// seat. Returns the winner, or -1 when nobody qualifies.
func ResolveShowdown(s *GameState, p *Program) int8 {
	winner := int8(-1)
	best := -1 << 62
	for i := range s.Players {
		pp := &s.Players[i]
		if !pp.Active || pp.Folded {
			continue
		}
		score, ok := scoreHand(pp.Hand, p.HandEval)
		if !ok {
			continue
		}
		if score > best {
			best = score
			winner = int8(i)
		}
	}
	if winner >= 0 && s.Pot > 0 {
		AwardPot(s, uint8(winner))
	}
	return winner
}

// scoreHand rates a hand for showdown comparison. The bool result is
// false when the hand is disqualified (busted past the threshold).
func scoreHand(hand []Card, he *HandEval) (int, bool) {
	if he == nil {
		return highCardScore(hand), true
	}
	switch he.Method {
	case HandEvalPointTotal:
		total := PointTotal(hand, he)
		if he.BustThreshold > 0 && total > he.BustThreshold {
			return 0, false
		}
		return total, true
	case HandEvalPatternMatch:
		// Priority dominates; high card breaks pattern ties.
		return int(EvaluateHandPattern(hand, he))*1000 + highCardScore(hand), true
	case HandEvalCardCount:
		return len(hand), true
	default:
		return highCardScore(hand), true
	}
}

func highCardScore(hand []Card) int {
	best := 0
	for _, c := range hand {
		if v := c.Value(); v > best {
			best = v
		}
	}
	return best
}

// EvaluateHandStrength gives a 0..1 heuristic used by the greedy
// policy to size its betting: pairs and trips push it up, then the
// highest card.
func EvaluateHandStrength(hand []Card) float64 {
	if len(hand) == 0 {
		return 0
	}
	var counts [13]int
	maxCount := 0
	maxValue := 0
	for _, c := range hand {
		if c.Rank < 13 {
			counts[c.Rank]++
			if counts[c.Rank] > maxCount {
				maxCount = counts[c.Rank]
			}
		}
		if v := c.Value(); v > maxValue {
			maxValue = v
		}
	}
	strength := float64(maxCount-1)*0.2 + float64(maxValue)/14.0*0.4
	if strength > 1 {
		strength = 1
	}
	return strength
}

// EvaluateHandPattern returns the priority of the best pattern the
// hand matches, or 0 when none do. Patterns are ordered best-first by
// the parser, so the first hit wins.
func EvaluateHandPattern(hand []Card, he *HandEval) int {
	if he == nil || he.Method != HandEvalPatternMatch {
		return 0
	}
	for i := range he.Patterns {
		if matchesPattern(hand, &he.Patterns[i]) {
			return he.Patterns[i].Priority
		}
	}
	return 0
}

func matchesPattern(hand []Card, pat *HandPattern) bool {
	if pat.RequiredCount > 0 && len(hand) != pat.RequiredCount {
		return false
	}

	if pat.SameSuitCount > 0 {
		var suitCounts [4]int
		maxSuit := 0
		for _, c := range hand {
			if c.Suit < 4 {
				suitCounts[c.Suit]++
				if suitCounts[c.Suit] > maxSuit {
					maxSuit = suitCounts[c.Suit]
				}
			}
		}
		if maxSuit < pat.SameSuitCount {
			return false
		}
	}

	if len(pat.Groups) > 0 {
		var rankCounts [13]int
		for _, c := range hand {
			if c.Rank < 13 {
				rankCounts[c.Rank]++
			}
		}
		counts := make([]int, 0, 13)
		for _, n := range rankCounts {
			if n > 0 {
				counts = append(counts, n)
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(counts)))
		for i, required := range pat.Groups {
			if i >= len(counts) || counts[i] < required {
				return false
			}
		}
	}

	if pat.SeqLen > 0 && !isSequence(hand, pat.SeqLen, pat.SeqWrap) {
		return false
	}

	if len(pat.Ranks) > 0 {
		var present [13]bool
		for _, c := range hand {
			if c.Rank < 13 {
				present[c.Rank] = true
			}
		}
		for _, r := range pat.Ranks {
			if r >= 13 || !present[r] {
				return false
			}
		}
	}

	return true
}

// isSequence looks for a straight of the given length using ace-high
// values. With wrap enabled the ace may also sit low (A-2-3-4-5).
func isSequence(hand []Card, length int, wrap bool) bool {
	if length <= 0 || len(hand) < length {
		return false
	}

	var present [15]bool // values 2..14
	hasAce := false
	for _, c := range hand {
		v := c.Value()
		if v >= 2 && v <= 14 {
			present[v] = true
		}
		if c.Rank == RankAce {
			hasAce = true
		}
	}

	run := 0
	for v := 2; v <= 14; v++ {
		if present[v] {
			run++
			if run >= length {
				return true
			}
		} else {
			run = 0
		}
	}

	if wrap && hasAce {
		// Ace played low: needs 2..length to complete the straight.
		for v := 2; v <= length; v++ {
			if !present[v] {
				return false
			}
		}
		return true
	}
	return false
}
