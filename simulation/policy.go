// Package simulation plays compiled rulesets to completion and
// aggregates the per-game instrumentation the fitness evaluator runs
// on: decision counts, opponent contact, tension figures, and the
// bluffing and betting tallies.
package simulation

import (
	"math/rand"

	"github.com/signalnine/darwindeck/gosim/engine"
	"github.com/signalnine/darwindeck/gosim/mcts"
)

// Policy names a move-selection strategy for one seat.
type Policy uint8

const (
	PolicyRandom Policy = 0
	PolicyGreedy Policy = 1
	PolicyMCTS   Policy = 2
)

// AIConfig is one seat's move selection setup. MCTSIterations only
// matters for PolicyMCTS; zero falls back to the search default.
type AIConfig struct {
	Policy         Policy
	MCTSIterations int
}

// AIConfigFromWire maps the supervisor's ai_player_type byte onto a
// config: 0 random, 1 greedy, 2 through 5 MCTS at fixed iteration
// budgets. Unknown bytes play random.
func AIConfigFromWire(b uint8) AIConfig {
	switch b {
	case 1:
		return AIConfig{Policy: PolicyGreedy}
	case 2:
		return AIConfig{Policy: PolicyMCTS, MCTSIterations: 100}
	case 3:
		return AIConfig{Policy: PolicyMCTS, MCTSIterations: 500}
	case 4:
		return AIConfig{Policy: PolicyMCTS, MCTSIterations: 1000}
	case 5:
		return AIConfig{Policy: PolicyMCTS, MCTSIterations: 2000}
	default:
		return AIConfig{Policy: PolicyRandom}
	}
}

// selectMove picks one of moves for the current player. rng drives
// both the random policy and MCTS playouts, so one game seed fixes the
// whole game.
func selectMove(s *engine.GameState, prog *engine.Program, moves []engine.LegalMove, cfg AIConfig, rng *rand.Rand) engine.LegalMove {
	if len(moves) == 1 {
		return moves[0]
	}
	switch cfg.Policy {
	case PolicyGreedy:
		return greedyMove(s, prog, moves)
	case PolicyMCTS:
		if move, ok := mcts.Search(s, prog, mcts.Params{Iterations: cfg.MCTSIterations}, rng); ok {
			return move
		}
		return moves[0]
	default:
		return moves[rng.Intn(len(moves))]
	}
}

// greedyMove takes the best move under a cheap heuristic: shed high
// cards, grab captures, size bets by hand strength, and play the
// fixed hit-or-stand threshold in point-total games.
func greedyMove(s *engine.GameState, prog *engine.Program, moves []engine.LegalMove) engine.LegalMove {
	if engine.IsPointTotalGame(prog) {
		if idx := engine.SelectPointTotalMove(s, prog.HandEval, moves); idx >= 0 {
			return moves[idx]
		}
	}

	if engine.IsBettingMove(moves[0].CardIndex) {
		return greedyBettingMove(s, moves)
	}

	// Claim responses come before generic scoring because the
	// challenge encoding collides with the draw encoding.
	if s.PendingClaim.Active && s.PendingClaim.Player != s.CurrentPlayer {
		return greedyClaimResponse(s, moves)
	}

	best := moves[0]
	bestScore := greedyScore(s, prog, moves[0])
	for _, m := range moves[1:] {
		if score := greedyScore(s, prog, m); score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best
}

func greedyScore(s *engine.GameState, prog *engine.Program, m engine.LegalMove) float64 {
	hand := s.Players[s.CurrentPlayer].Hand

	switch {
	case m.CardIndex >= 0:
		// Playing a card beats standing around; prefer shedding the
		// highest rank, and pounce on match-rank captures.
		score := 10.0
		if int(m.CardIndex) < len(hand) {
			card := hand[m.CardIndex]
			score += float64(card.Rank)
			if prog.TableauMode == engine.TableauMatchRank && m.TargetLoc == engine.LocationTableau {
				for _, pile := range s.Tableau {
					if n := len(pile); n > 0 && pile[n-1].Rank == card.Rank {
						score += 25
						break
					}
				}
			}
		}
		return score
	case engine.IsRankSetMove(m.CardIndex):
		return 12 + float64(engine.DecodeRankSet(m.CardIndex))
	case engine.IsBidMove(m.CardIndex):
		return greedyBidScore(s, m)
	case m.CardIndex == engine.MoveDraw:
		return 5
	default:
		return 0
	}
}

// greedyBidScore prefers the bid closest to a crude trick estimate,
// one expected trick per queen or better.
func greedyBidScore(s *engine.GameState, m engine.LegalMove) float64 {
	est := 0
	for _, c := range s.Players[s.CurrentPlayer].Hand {
		if c.Value() >= 12 {
			est++
		}
	}
	diff := est - engine.DecodeBid(m.CardIndex)
	if diff < 0 {
		diff = -diff
	}
	return 10 - float64(diff)
}

// greedyClaimResponse challenges a claim the player can see is
// unlikely: holding two or more of the claimed rank leaves at most two
// copies for everyone else.
func greedyClaimResponse(s *engine.GameState, moves []engine.LegalMove) engine.LegalMove {
	held := 0
	for _, c := range s.Players[s.CurrentPlayer].Hand {
		if c.Rank == s.PendingClaim.Rank {
			held++
		}
	}
	want := engine.MoveAccept
	if held >= 2 {
		want = engine.MoveChallenge
	}
	for _, m := range moves {
		if m.CardIndex == want {
			return m
		}
	}
	return moves[0]
}

// greedyBettingMove sizes aggression by hand strength: push strong
// hands, call medium ones, check or fold weak ones.
func greedyBettingMove(s *engine.GameState, moves []engine.LegalMove) engine.LegalMove {
	strength := engine.EvaluateHandStrength(s.Players[s.CurrentPlayer].Hand)

	pick := func(wanted ...engine.BettingAction) (engine.LegalMove, bool) {
		for _, w := range wanted {
			for _, m := range moves {
				if engine.DecodeBettingAction(m.CardIndex) == w {
					return m, true
				}
			}
		}
		return engine.LegalMove{}, false
	}

	switch {
	case strength >= 0.7:
		if m, ok := pick(engine.BetRaise, engine.BetBet, engine.BetAllIn, engine.BetCall, engine.BetCheck); ok {
			return m
		}
	case strength >= 0.3:
		if m, ok := pick(engine.BetCall, engine.BetCheck, engine.BetBet); ok {
			return m
		}
	default:
		if m, ok := pick(engine.BetCheck, engine.BetFold); ok {
			return m
		}
	}
	return moves[0]
}

// seatConfig resolves the policy for a seat. A single-entry slice is
// broadcast to every seat.
func seatConfig(seats []AIConfig, seat uint8) AIConfig {
	if len(seats) == 0 {
		return AIConfig{}
	}
	if int(seat) < len(seats) {
		return seats[seat]
	}
	return seats[0]
}
