package engine

// LegalMove is one action the current player may take. CardIndex is a
// hand index for card plays; non-card actions use the negative
// encodings below.
type LegalMove struct {
	PhaseIndex uint8
	CardIndex  int16
	TargetLoc  uint8
}

// Non-card CardIndex encodings. Claim challenges reuse -1: a draw
// phase never has a pending claim and a claim phase never draws.
const (
	MoveDraw      int16 = -1
	MoveChallenge int16 = -1
	MoveAccept    int16 = -2
	MoveStand     int16 = -3
	MovePlayPass  int16 = -4

	// Betting actions encode as moveBetBase - action.
	moveBetBase int16 = -10

	// Bids encode as MoveBidBase - bid. A nil bid additionally sets
	// TargetLoc to LocationDiscard.
	MoveBidBase int16 = -20

	// Multi-card plays encode the rank as MoveRankSetBase - rank.
	MoveRankSetBase int16 = -100
)

// BettingAction enumerates the table actions in a betting round.
type BettingAction uint8

const (
	BetCheck BettingAction = 0
	BetBet   BettingAction = 1
	BetCall  BettingAction = 2
	BetRaise BettingAction = 3
	BetAllIn BettingAction = 4
	BetFold  BettingAction = 5
)

// IsBettingMove reports whether the encoded card index is a betting
// action.
func IsBettingMove(idx int16) bool {
	return idx <= moveBetBase && idx > MoveBidBase
}

// DecodeBettingAction extracts the action from a betting move.
func DecodeBettingAction(idx int16) BettingAction {
	return BettingAction(moveBetBase - idx)
}

func encodeBettingMove(phase uint8, action BettingAction) LegalMove {
	return LegalMove{PhaseIndex: phase, CardIndex: moveBetBase - int16(action)}
}

// IsBidMove reports whether the encoded card index is a bid.
func IsBidMove(idx int16) bool {
	return idx <= MoveBidBase && idx > MoveRankSetBase
}

// DecodeBid extracts the bid value from a bid move.
func DecodeBid(idx int16) int {
	return int(MoveBidBase - idx)
}

// IsRankSetMove reports whether the encoded card index plays a whole
// rank set.
func IsRankSetMove(idx int16) bool {
	return idx <= MoveRankSetBase
}

// DecodeRankSet extracts the rank from a rank-set move.
func DecodeRankSet(idx int16) uint8 {
	return uint8(MoveRankSetBase - idx)
}

// GenerateLegalMoves returns every action open to the current player.
// An open betting or bidding round, or a pending claim against the
// player, preempts normal phase actions until resolved.
func GenerateLegalMoves(s *GameState, p *Program) []LegalMove {
	moves := make([]LegalMove, 0, 16)
	player := s.CurrentPlayer
	pp := &s.Players[player]

	if !s.BettingClosed {
		if idx, ph := findPhaseIndex(p, PhaseBetting); ph != nil {
			if !pp.Folded && !pp.AllIn {
				return appendBettingMoves(moves, s, uint8(idx), ph)
			}
			return moves
		}
	}

	if !s.BiddingClosed {
		if idx, ph := findPhaseIndex(p, PhaseBidding); ph != nil {
			if pp.Bid < 0 {
				return appendBidMoves(moves, uint8(idx), ph)
			}
			return moves
		}
	}

	if s.PendingClaim.Active && s.PendingClaim.Player != player {
		if idx, ph := findPhaseIndex(p, PhaseClaim); ph != nil {
			moves = append(moves,
				LegalMove{PhaseIndex: uint8(idx), CardIndex: MoveChallenge},
				LegalMove{PhaseIndex: uint8(idx), CardIndex: MoveAccept},
			)
			return moves
		}
	}

	for i := range p.Phases {
		ph := &p.Phases[i]
		idx := uint8(i)
		switch ph.Tag {
		case PhaseDraw:
			moves = appendDrawMoves(moves, s, p, idx, ph)
		case PhasePlay:
			moves = appendPlayMoves(moves, s, p, idx, ph)
		case PhaseDiscard:
			moves = appendDiscardMoves(moves, s, idx, ph)
		case PhaseTrick:
			moves = appendTrickMoves(moves, s, idx, ph)
		case PhaseClaim:
			moves = appendClaimMoves(moves, s, idx)
		}
	}
	return moves
}

func findPhaseIndex(p *Program, tag uint8) (int, *PhaseInfo) {
	for i := range p.Phases {
		if p.Phases[i].Tag == tag {
			return i, &p.Phases[i]
		}
	}
	return -1, nil
}

func appendDrawMoves(moves []LegalMove, s *GameState, p *Program, idx uint8, ph *PhaseInfo) []LegalMove {
	player := s.CurrentPlayer
	if s.Players[player].Stood {
		return moves
	}
	if ph.Condition != nil && !EvaluateCondition(s, p, ph.Condition, player) {
		return moves
	}

	canDraw := false
	switch ph.DrawSource {
	case LocationDeck:
		// An empty deck can be rebuilt from the discard pile.
		canDraw = len(s.Deck) > 0 || len(s.Discard) > 1
	case LocationDiscard:
		canDraw = len(s.Discard) > 0
	case LocationOpponentHand:
		opp := nextActivePlayer(s, player)
		canDraw = opp != int(player) && len(s.Players[opp].Hand) > 0
	case LocationTableau:
		for i := range s.Tableau {
			if len(s.Tableau[i]) > 0 {
				canDraw = true
				break
			}
		}
	}
	if !canDraw {
		return moves
	}

	moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: MoveDraw, TargetLoc: ph.DrawSource})
	if !ph.Mandatory {
		moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: MoveStand})
	}
	return moves
}

func appendPlayMoves(moves []LegalMove, s *GameState, p *Program, idx uint8, ph *PhaseInfo) []LegalMove {
	player := s.CurrentPlayer
	hand := s.Players[player].Hand
	if len(hand) == 0 {
		return moves
	}

	// War flips are forced: one face-down card onto the player's own
	// pile, and only when that pile awaits a card.
	if p.TableauMode == TableauWar && ph.PlayTarget == LocationTableau {
		if int(player) < len(s.Tableau) && len(s.Tableau[player]) == 0 {
			moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: 0, TargetLoc: LocationTableau})
		}
		return moves
	}

	start := len(moves)

	if ph.MinCards > 1 {
		var counts [13]int
		for _, c := range hand {
			if c.Rank < 13 {
				counts[c.Rank]++
			}
		}
		for rank := 0; rank < 13; rank++ {
			if counts[rank] >= ph.MinCards {
				moves = append(moves, LegalMove{
					PhaseIndex: idx,
					CardIndex:  MoveRankSetBase - int16(rank),
					TargetLoc:  ph.PlayTarget,
				})
			}
		}
	} else {
		sequence := p.TableauMode == TableauSequence && ph.PlayTarget == LocationTableau
		for i, c := range hand {
			if sequence {
				if !sequencePlayable(s, p, c) {
					continue
				}
			} else if ph.Condition != nil && !EvaluateCardCondition(s, p, ph.Condition, player, c) {
				continue
			}
			moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: int16(i), TargetLoc: ph.PlayTarget})
		}
	}

	if len(moves) == start && ph.PassIfUnable {
		moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: MovePlayPass})
	}
	return moves
}

func appendDiscardMoves(moves []LegalMove, s *GameState, idx uint8, ph *PhaseInfo) []LegalMove {
	hand := s.Players[s.CurrentPlayer].Hand
	for i := range hand {
		moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: int16(i), TargetLoc: ph.DiscardTarget})
	}
	return moves
}

func appendTrickMoves(moves []LegalMove, s *GameState, idx uint8, ph *PhaseInfo) []LegalMove {
	player := s.CurrentPlayer
	hand := s.Players[player].Hand
	if len(hand) == 0 {
		return moves
	}

	if len(s.Trick) == 0 {
		// Leading. The breaking suit stays unleadable until broken,
		// unless it is all the player holds.
		restrict := false
		if ph.BreakingSuit != SuitAny && !s.SuitBroken {
			for _, c := range hand {
				if c.Suit != ph.BreakingSuit {
					restrict = true
					break
				}
			}
		}
		for i, c := range hand {
			if restrict && c.Suit == ph.BreakingSuit {
				continue
			}
			moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: int16(i), TargetLoc: LocationTableau})
		}
		return moves
	}

	// Following.
	leadSuit := s.Trick[0].Card.Suit
	if ph.LeadSuitRequired {
		hasLead := false
		for _, c := range hand {
			if c.Suit == leadSuit {
				hasLead = true
				break
			}
		}
		if hasLead {
			for i, c := range hand {
				if c.Suit == leadSuit {
					moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: int16(i), TargetLoc: LocationTableau})
				}
			}
			return moves
		}
	}
	for i := range hand {
		moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: int16(i), TargetLoc: LocationTableau})
	}
	return moves
}

func appendClaimMoves(moves []LegalMove, s *GameState, idx uint8) []LegalMove {
	if s.PendingClaim.Active {
		// Responses are generated before the phase loop; the claimant
		// has no claim action while their own claim is unanswered.
		return moves
	}
	hand := s.Players[s.CurrentPlayer].Hand
	for i := range hand {
		moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: int16(i), TargetLoc: LocationDiscard})
	}
	return moves
}

func appendBidMoves(moves []LegalMove, idx uint8, ph *PhaseInfo) []LegalMove {
	lo, hi := ph.MinBid, ph.MaxBid
	if hi < lo {
		hi = lo
	}
	for b := lo; b <= hi; b++ {
		moves = append(moves, LegalMove{PhaseIndex: idx, CardIndex: MoveBidBase - int16(b)})
	}
	if ph.AllowNil {
		moves = append(moves, LegalMove{
			PhaseIndex: idx,
			CardIndex:  MoveBidBase,
			TargetLoc:  LocationDiscard,
		})
	}
	return moves
}
