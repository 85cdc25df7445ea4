package engine

// ApplyMove executes one legal move for the current player, resolves
// anything it triggers (battles, captures, tricks, claims, effects),
// and advances the turn. Moves must come from GenerateLegalMoves on
// the same state; the turn counter increments exactly once per call.
func ApplyMove(s *GameState, p *Program, move LegalMove) {
	if int(move.PhaseIndex) >= len(p.Phases) {
		s.Turn++
		return
	}
	ph := &p.Phases[move.PhaseIndex]

	switch ph.Tag {
	case PhaseBetting:
		if IsBettingMove(move.CardIndex) {
			applyBettingMove(s, ph, DecodeBettingAction(move.CardIndex))
		}
	case PhaseBidding:
		if IsBidMove(move.CardIndex) {
			applyBidMove(s, ph, move)
		}
	case PhaseDraw:
		applyDrawMove(s, ph, move)
	case PhasePlay:
		applyPlayMove(s, p, ph, move)
	case PhaseDiscard:
		applyDiscardMove(s, ph, move)
	case PhaseTrick:
		applyTrickMove(s, p, ph, move)
	case PhaseClaim:
		applyClaimMove(s, move)
	}
	s.Turn++
}

// removeHandCard takes the card at idx out of a player's hand,
// preserving the order of the rest.
func removeHandCard(s *GameState, player uint8, idx int) Card {
	hand := s.Players[player].Hand
	card := hand[idx]
	s.Players[player].Hand = append(hand[:idx], hand[idx+1:]...)
	return card
}

func applyDrawMove(s *GameState, ph *PhaseInfo, move LegalMove) {
	player := s.CurrentPlayer
	pp := &s.Players[player]

	if move.CardIndex == MoveStand {
		pp.Stood = true
		AdvanceTurn(s)
		return
	}

	count := ph.DrawCount
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		switch ph.DrawSource {
		case LocationDeck:
			if len(s.Deck) == 0 && !reshuffleFromDiscard(s) {
				break
			}
			if len(s.Deck) > 0 {
				card := s.Deck[len(s.Deck)-1]
				s.Deck = s.Deck[:len(s.Deck)-1]
				pp.Hand = append(pp.Hand, card)
			}
		case LocationDiscard:
			if n := len(s.Discard); n > 0 {
				card := s.Discard[n-1]
				s.Discard = s.Discard[:n-1]
				pp.Hand = append(pp.Hand, card)
			}
		case LocationOpponentHand:
			opp := nextActivePlayer(s, player)
			if opp != int(player) {
				if n := len(s.Players[opp].Hand); n > 0 {
					card := s.Players[opp].Hand[n-1]
					s.Players[opp].Hand = s.Players[opp].Hand[:n-1]
					pp.Hand = append(pp.Hand, card)
				}
			}
		case LocationTableau:
			for t := range s.Tableau {
				if n := len(s.Tableau[t]); n > 0 {
					card := s.Tableau[t][n-1]
					s.Tableau[t] = s.Tableau[t][:n-1]
					pp.Hand = append(pp.Hand, card)
					break
				}
			}
		}
	}
	AdvanceTurn(s)
}

func applyPlayMove(s *GameState, p *Program, ph *PhaseInfo, move LegalMove) {
	player := s.CurrentPlayer

	if move.CardIndex == MovePlayPass {
		AdvanceTurn(s)
		return
	}

	if IsRankSetMove(move.CardIndex) {
		applyRankSetPlay(s, p, ph, move)
		AdvanceTurn(s)
		return
	}

	if int(move.CardIndex) >= len(s.Players[player].Hand) {
		AdvanceTurn(s)
		return
	}
	card := removeHandCard(s, player, int(move.CardIndex))

	switch move.TargetLoc {
	case LocationTableau:
		placeOnTableau(s, p, player, card)
	default:
		s.Discard = append(s.Discard, card)
	}

	scoreCardTrigger(s, p, player, card, TriggerPlay)
	if e := p.EffectFor(card.Rank); e != nil {
		ApplyEffect(s, e)
	}
	AdvanceTurn(s)
}

// applyRankSetPlay sheds every card of the chosen rank, up to the
// phase maximum. The whole set lands on the target in hand order and
// the rank's effect fires once.
func applyRankSetPlay(s *GameState, p *Program, ph *PhaseInfo, move LegalMove) {
	player := s.CurrentPlayer
	rank := DecodeRankSet(move.CardIndex)

	limit := ph.MaxCards
	if limit < ph.MinCards {
		limit = ph.MinCards
	}

	hand := s.Players[player].Hand
	kept := hand[:0]
	played := make([]Card, 0, 4)
	for _, c := range hand {
		if c.Rank == rank && len(played) < limit {
			played = append(played, c)
		} else {
			kept = append(kept, c)
		}
	}
	s.Players[player].Hand = kept

	for _, c := range played {
		if move.TargetLoc == LocationTableau {
			placeOnTableau(s, p, player, c)
		} else {
			s.Discard = append(s.Discard, c)
		}
		scoreCardTrigger(s, p, player, c, TriggerSetComplete)
	}
	if len(played) > 0 {
		if e := p.EffectFor(rank); e != nil {
			ApplyEffect(s, e)
		}
	}
}

// placeOnTableau routes a played card through the tableau mode: war
// piles, match-rank capture, sequence building, or a plain stack.
func placeOnTableau(s *GameState, p *Program, player uint8, card Card) {
	if len(s.Tableau) == 0 {
		s.Discard = append(s.Discard, card)
		return
	}

	switch p.TableauMode {
	case TableauWar:
		pile := int(player)
		if pile >= len(s.Tableau) {
			pile = 0
		}
		s.Tableau[pile] = append(s.Tableau[pile], card)
		resolveWarBattle(s)

	case TableauMatchRank:
		for t := range s.Tableau {
			if n := len(s.Tableau[t]); n > 0 && s.Tableau[t][n-1].Rank == card.Rank {
				captured := s.Tableau[t][n-1]
				s.Tableau[t] = s.Tableau[t][:n-1]
				s.Discard = append(s.Discard, captured, card)
				s.AddScore(player, 2)
				scoreCardTrigger(s, p, player, captured, TriggerCapture)
				scoreCardTrigger(s, p, player, card, TriggerCapture)
				return
			}
		}
		s.Tableau[0] = append(s.Tableau[0], card)

	case TableauSequence:
		for t := range s.Tableau {
			if n := len(s.Tableau[t]); n > 0 && sequenceExtends(p, s.Tableau[t][n-1], card) {
				s.Tableau[t] = append(s.Tableau[t], card)
				return
			}
		}
		for t := range s.Tableau {
			if len(s.Tableau[t]) == 0 {
				s.Tableau[t] = append(s.Tableau[t], card)
				return
			}
		}
		s.Tableau[0] = append(s.Tableau[0], card)

	default:
		s.Tableau[0] = append(s.Tableau[0], card)
	}
}

// resolveWarBattle compares pile tops once every live player has
// flipped. Players with no hand and no pile are out of the battle;
// ties alternate by battle number so repeated ties cannot stall the
// game. The winner gathers every pile into their hand.
func resolveWarBattle(s *GameState) {
	participants := make([]int, 0, MaxPlayers)
	for i := 0; i < s.NumPlayers; i++ {
		if !s.Players[i].Active {
			continue
		}
		pile := i
		if pile >= len(s.Tableau) {
			continue
		}
		if len(s.Tableau[pile]) > 0 {
			participants = append(participants, i)
		} else if len(s.Players[i].Hand) > 0 {
			// Still owes a flip; battle not ready.
			return
		}
	}
	if len(participants) == 0 {
		return
	}

	best := make([]int, 0, MaxPlayers)
	bestValue := -1
	for _, i := range participants {
		pile := s.Tableau[i]
		v := pile[len(pile)-1].Value()
		switch {
		case v > bestValue:
			bestValue = v
			best = best[:0]
			best = append(best, i)
		case v == bestValue:
			best = append(best, i)
		}
	}

	winner := best[int(s.Battles)%len(best)]
	s.Battles++

	for _, i := range participants {
		s.Players[winner].Hand = append(s.Players[winner].Hand, s.Tableau[i]...)
		s.Tableau[i] = s.Tableau[i][:0]
	}
}

func applyDiscardMove(s *GameState, ph *PhaseInfo, move LegalMove) {
	player := s.CurrentPlayer
	if move.CardIndex >= 0 && int(move.CardIndex) < len(s.Players[player].Hand) {
		card := removeHandCard(s, player, int(move.CardIndex))
		s.Discard = append(s.Discard, card)
	}
	AdvanceTurn(s)
}

func applyTrickMove(s *GameState, p *Program, ph *PhaseInfo, move LegalMove) {
	player := s.CurrentPlayer
	if move.CardIndex < 0 || int(move.CardIndex) >= len(s.Players[player].Hand) {
		AdvanceTurn(s)
		return
	}
	card := removeHandCard(s, player, int(move.CardIndex))
	s.Trick = append(s.Trick, PlayedCard{Player: player, Card: card})

	if ph.BreakingSuit != SuitAny && card.Suit == ph.BreakingSuit {
		s.SuitBroken = true
	}

	if len(s.Trick) >= s.NumPlayers {
		resolveTrick(s, p, ph)
		return
	}
	// Trick play runs in seat order regardless of direction effects.
	s.CurrentPlayer = uint8((int(player) + 1) % s.NumPlayers)
}

// resolveTrick picks the winner of a completed trick, scores its
// cards, and hands the winner the lead. Trump beats plain suits; among
// comparable cards rank decides, inverted when HighCardWins is off.
func resolveTrick(s *GameState, p *Program, ph *PhaseInfo) {
	if len(s.Trick) == 0 {
		return
	}

	leadSuit := s.Trick[0].Card.Suit
	winIdx := 0
	winning := s.Trick[0].Card

	for i := 1; i < len(s.Trick); i++ {
		card := s.Trick[i].Card
		if trickBeats(ph, leadSuit, winning, card) {
			winIdx = i
			winning = card
		}
	}

	winner := s.Trick[winIdx].Player
	s.Players[winner].TricksWon++

	if p.hasTrickScoring() {
		for _, tc := range s.Trick {
			for i := range p.CardScores {
				rule := &p.CardScores[i]
				if rule.Trigger == TriggerTrickWin && rule.Matches(tc.Card) {
					s.AddScore(winner, int32(rule.Points))
				}
			}
		}
	} else {
		// Hearts-style default: one point per breaking-suit card,
		// thirteen for the queen of spades.
		points := int32(0)
		for _, tc := range s.Trick {
			if ph.BreakingSuit != SuitAny && tc.Card.Suit == ph.BreakingSuit {
				points++
			}
			if tc.Card.Suit == SuitSpades && tc.Card.Rank == RankQueen {
				points += 13
			}
		}
		if points != 0 {
			s.AddScore(winner, points)
		}
	}

	// Trick cards leave play through the discard pile.
	for _, tc := range s.Trick {
		s.Discard = append(s.Discard, tc.Card)
	}
	s.Trick = s.Trick[:0]

	s.CurrentPlayer = winner
	s.TrickLeader = winner
}

// trickBeats reports whether challenger beats the current winning card
// given the lead suit and phase rules.
func trickBeats(ph *PhaseInfo, leadSuit uint8, winning, challenger Card) bool {
	higher := func(a, b Card) bool {
		if ph.HighCardWins {
			return a.Value() > b.Value()
		}
		return a.Value() < b.Value()
	}

	if ph.TrumpSuit != SuitAny {
		winnerTrump := winning.Suit == ph.TrumpSuit
		challengerTrump := challenger.Suit == ph.TrumpSuit
		switch {
		case challengerTrump && !winnerTrump:
			return true
		case challengerTrump && winnerTrump:
			return higher(challenger, winning)
		case !challengerTrump && winnerTrump:
			return false
		}
	}

	if challenger.Suit != leadSuit {
		return false
	}
	if winning.Suit != leadSuit {
		return true
	}
	return higher(challenger, winning)
}

func applyClaimMove(s *GameState, move LegalMove) {
	player := s.CurrentPlayer

	switch move.CardIndex {
	case MoveChallenge:
		resolveChallenge(s, player)
		AdvanceTurn(s)
		return
	case MoveAccept:
		s.PendingClaim.Active = false
		s.PendingClaim.Cards = s.PendingClaim.Cards[:0]
		AdvanceTurn(s)
		return
	}

	if move.CardIndex < 0 || int(move.CardIndex) >= len(s.Players[player].Hand) {
		AdvanceTurn(s)
		return
	}

	card := removeHandCard(s, player, int(move.CardIndex))
	s.Discard = append(s.Discard, card)
	s.PendingClaim.Player = player
	s.PendingClaim.Rank = ClaimedRank(s.Turn)
	s.PendingClaim.Count = 1
	s.PendingClaim.Cards = append(s.PendingClaim.Cards[:0], card)
	s.PendingClaim.Active = true
	AdvanceTurn(s)
}

// ClaimedRank is the rank a face-down play asserts on a given turn.
// It walks the rank cycle so every rank comes up in order.
func ClaimedRank(turn int32) uint8 {
	if turn < 0 {
		turn = -turn
	}
	return uint8(turn % 13)
}

// ClaimIsTruthful verifies a pending claim against the cards actually
// played.
func ClaimIsTruthful(c *Claim) bool {
	if len(c.Cards) == 0 {
		return false
	}
	for _, card := range c.Cards {
		if card.Rank != c.Rank {
			return false
		}
	}
	return true
}

// resolveChallenge settles a challenge: a liar picks up the whole
// discard pile, a wrong challenger picks it up instead.
func resolveChallenge(s *GameState, challenger uint8) {
	claim := &s.PendingClaim
	if !claim.Active {
		return
	}

	loser := claim.Player
	if ClaimIsTruthful(claim) {
		loser = challenger
	}

	s.Players[loser].Hand = append(s.Players[loser].Hand, s.Discard...)
	s.Discard = s.Discard[:0]

	claim.Active = false
	claim.Cards = claim.Cards[:0]
}

func applyBidMove(s *GameState, ph *PhaseInfo, move LegalMove) {
	player := s.CurrentPlayer
	pp := &s.Players[player]

	bid := DecodeBid(move.CardIndex)
	pp.Bid = int8(bid)
	pp.NilBid = ph.AllowNil && bid == 0 && move.TargetLoc == LocationDiscard

	// Seat order; bidding closes when every seat has spoken.
	for i := 1; i <= s.NumPlayers; i++ {
		next := (int(player) + i) % s.NumPlayers
		if s.Players[next].Active && s.Players[next].Bid < 0 {
			s.CurrentPlayer = uint8(next)
			return
		}
	}
	s.BiddingClosed = true
	s.CurrentPlayer = s.TrickLeader
}

// scoreCardTrigger awards every matching scoring rule for one card
// event.
func scoreCardTrigger(s *GameState, p *Program, player uint8, card Card, trigger uint8) {
	for i := range p.CardScores {
		rule := &p.CardScores[i]
		if rule.Trigger == trigger && rule.Matches(card) {
			s.AddScore(player, int32(rule.Points))
		}
	}
}

// ApplyHandEndScoring fires hand-end scoring rules once per game,
// charging each player for the matching cards still in hand. Returns
// true if anything was scored.
func ApplyHandEndScoring(s *GameState, p *Program) bool {
	if s.HandEndScored {
		return false
	}
	applied := false
	for i := range s.Players {
		pp := &s.Players[i]
		if !pp.Active {
			continue
		}
		for _, c := range pp.Hand {
			for j := range p.CardScores {
				rule := &p.CardScores[j]
				if rule.Trigger == TriggerHandEnd && rule.Matches(c) {
					s.AddScore(uint8(i), int32(rule.Points))
					applied = true
				}
			}
		}
	}
	s.HandEndScored = true
	return applied
}
