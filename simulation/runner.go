package simulation

import (
	"math/rand"
	"time"

	"github.com/signalnine/darwindeck/gosim/engine"
)

// DefaultGameTimeout caps one game's wall time. Evolved rulesets can
// loop well inside their turn budget, so the cap is aggressive.
const DefaultGameTimeout = 100 * time.Millisecond

// staleStateLimit is how many consecutive no-progress moves count as a
// deadlock. The fingerprint ignores the turn counter, so a repeat
// means the position genuinely did not change.
const staleStateLimit = 8

// DecisionCounters capture how much real choice a game offered.
type DecisionCounters struct {
	Decisions    uint64
	ValidMoves   uint64
	Forced       uint64
	HandSizes    uint64
	Actions      uint64
	Interactions uint64
}

// ContactCounters capture how much one player's moves bear on the
// next opponent's options, probed before and after each move.
type ContactCounters struct {
	Disruptions     uint64
	Contentions     uint64
	ForcedResponses uint64
	OpponentTurns   uint64
}

// BluffCounters tally claim-phase deception. BluffsLanded counts lies
// that were accepted; Catches counts lies that were challenged.
type BluffCounters struct {
	Claims       uint64
	Bluffs       uint64
	Challenges   uint64
	BluffsLanded uint64
	Catches      uint64
}

// BetCounters tally betting activity. Bluffs are bets or raises made
// on a weak hand.
type BetCounters struct {
	Bets         uint64
	Bluffs       uint64
	AllIns       uint64
	FoldWins     uint64
	ShowdownWins uint64
}

// TensionFigures summarise how contested one game was.
type TensionFigures struct {
	LeadChanges   uint32
	ClosestMargin float32
	DecisivePct   float32
	Trailing      bool
}

// GameRecord is the complete outcome of one game.
type GameRecord struct {
	Winner      int8
	WinningTeam int8
	Turns       int32
	Duration    time.Duration
	Err         string

	Decisions DecisionCounters
	Contact   ContactCounters
	Bluffing  BluffCounters
	Betting   BetCounters
	Tension   TensionFigures
}

// PlayGame runs one game of prog to completion under the per-seat
// policies and returns its record. The same seed always produces the
// same game. A zero timeout uses DefaultGameTimeout.
func PlayGame(prog *engine.Program, seats []AIConfig, seed uint64, timeout time.Duration) GameRecord {
	start := time.Now()
	if timeout <= 0 {
		timeout = DefaultGameTimeout
	}

	s := engine.GetState(prog.PlayerCount)
	defer engine.PutState(s)
	engine.SetupGame(s, prog, seed)

	rng := rand.New(rand.NewSource(int64(seed)))
	detector := engine.SelectLeaderDetector(prog)
	meter := engine.NewTensionMeter()

	rec := GameRecord{Winner: -1, WinningTeam: -1}

	finish := func(errMsg string) GameRecord {
		rec.Winner = s.Winner
		rec.WinningTeam = s.WinningTeam
		rec.Turns = s.Turn
		rec.Duration = time.Since(start)
		rec.Err = errMsg

		meter.Finalize(int(s.Winner))
		rec.Tension = TensionFigures{
			LeadChanges:   uint32(meter.LeadChanges),
			ClosestMargin: meter.ClosestMargin,
			DecisivePct:   meter.DecisiveTurnPct(),
			Trailing:      meter.WinnerWasTrailing,
		}

		if prog.HasPhase(engine.PhaseBetting) && s.Winner >= 0 {
			if s.FoldWin {
				rec.Betting.FoldWins++
			} else if s.BettingClosed {
				rec.Betting.ShowdownWins++
			}
		}
		return rec
	}

	var lastFP uint64
	stale := 0

	for s.Turn < prog.MaxTurns {
		if time.Since(start) > timeout {
			return finish("timeout")
		}
		if w := engine.CheckWin(s, prog); w >= 0 {
			return finish("")
		}

		moves := engine.GenerateLegalMoves(s, prog)
		if len(moves) == 0 {
			// A finished hand may still resolve through end scoring,
			// and a seat that stood or emptied out parks with no moves
			// while others can still act.
			if engine.ApplyHandEndScoring(s, prog) {
				continue
			}
			if rotateToLiveSeat(s, prog) {
				continue
			}
			return finish("no legal moves")
		}

		mover := s.CurrentPlayer
		rec.Decisions.Decisions++
		rec.Decisions.ValidMoves += uint64(len(moves))
		rec.Decisions.HandSizes += uint64(len(s.Players[mover].Hand))
		if len(moves) == 1 {
			rec.Decisions.Forced++
		}

		move := selectMove(s, prog, moves, seatConfig(seats, mover), rng)

		// Deception bookkeeping reads the pre-move hand and claim.
		observeMove(s, prog, move, &rec)

		rec.Decisions.Actions++
		if isInteraction(prog, move) {
			rec.Decisions.Interactions++
		}

		// Snapshot the next opponent's options, apply, then compare.
		probe := probeOpponent(s, prog, mover)
		engine.ApplyMove(s, prog, move)
		probe.settle(s, prog, move, &rec.Contact)

		meter.Update(s, detector)

		fp := s.Fingerprint()
		if fp == lastFP {
			stale++
			if stale >= staleStateLimit {
				return finish("repeating state")
			}
		} else {
			lastFP, stale = fp, 0
		}
	}

	// Turn cap: a draw unless a win rule fires on the final position.
	engine.CheckWin(s, prog)
	return finish("")
}

// rotateToLiveSeat hands the turn to the next seat that has a legal
// move, in play order. Returns false when no seat can act, leaving the
// current player unchanged.
func rotateToLiveSeat(s *engine.GameState, prog *engine.Program) bool {
	orig := int(s.CurrentPlayer)
	n := s.NumPlayers
	for i := 1; i < n; i++ {
		seat := ((orig+int(s.PlayDirection)*i)%n + n) % n
		if !s.Players[seat].Active || s.Players[seat].Folded {
			continue
		}
		s.CurrentPlayer = uint8(seat)
		if len(engine.GenerateLegalMoves(s, prog)) > 0 {
			return true
		}
	}
	s.CurrentPlayer = uint8(orig)
	return false
}

// observeMove books the bluff and bet counters for a move before it is
// applied.
func observeMove(s *engine.GameState, prog *engine.Program, move engine.LegalMove, rec *GameRecord) {
	if int(move.PhaseIndex) >= len(prog.Phases) {
		return
	}
	mover := s.CurrentPlayer

	switch prog.Phases[move.PhaseIndex].Tag {
	case engine.PhaseClaim:
		switch {
		case move.CardIndex >= 0:
			rec.Bluffing.Claims++
			hand := s.Players[mover].Hand
			if int(move.CardIndex) < len(hand) && hand[move.CardIndex].Rank != engine.ClaimedRank(s.Turn) {
				rec.Bluffing.Bluffs++
			}
		case move.CardIndex == engine.MoveChallenge && s.PendingClaim.Active:
			rec.Bluffing.Challenges++
			if !engine.ClaimIsTruthful(&s.PendingClaim) {
				rec.Bluffing.Catches++
			}
		case move.CardIndex == engine.MoveAccept && s.PendingClaim.Active:
			if !engine.ClaimIsTruthful(&s.PendingClaim) {
				rec.Bluffing.BluffsLanded++
			}
		}

	case engine.PhaseBetting:
		if !engine.IsBettingMove(move.CardIndex) {
			return
		}
		switch action := engine.DecodeBettingAction(move.CardIndex); action {
		case engine.BetBet, engine.BetRaise, engine.BetAllIn:
			rec.Betting.Bets++
			if engine.EvaluateHandStrength(s.Players[mover].Hand) < 0.3 {
				rec.Betting.Bluffs++
			}
			if action == engine.BetAllIn {
				rec.Betting.AllIns++
			}
		}
	}
}

// isInteraction reports whether a move reaches beyond the mover's own
// cards by its nature: tricks, claims, and bets always touch the
// table, plays only when they hit the tableau, draws only when they
// raid an opponent's hand.
func isInteraction(prog *engine.Program, move engine.LegalMove) bool {
	if int(move.PhaseIndex) >= len(prog.Phases) {
		return false
	}
	switch prog.Phases[move.PhaseIndex].Tag {
	case engine.PhaseTrick, engine.PhaseClaim, engine.PhaseBetting:
		return true
	case engine.PhaseDraw:
		return move.TargetLoc == engine.LocationOpponentHand
	case engine.PhasePlay:
		return move.TargetLoc == engine.LocationTableau
	}
	return false
}

// opponentProbe is a before snapshot of the next opponent's options.
// Settling it against the after picture yields the contact counters.
type opponentProbe struct {
	seat    int
	count   int
	hash    uint64
	targets uint8
	ok      bool
}

// probeOpponent snapshots the legal moves of the next live seat after
// mover. Costs one extra move generation per turn.
func probeOpponent(s *engine.GameState, prog *engine.Program, mover uint8) opponentProbe {
	var pr opponentProbe
	if s.NumPlayers < 2 {
		return pr
	}
	opp := -1
	for i := 1; i < s.NumPlayers; i++ {
		cand := (int(mover) + i) % s.NumPlayers
		if s.Players[cand].Active && !s.Players[cand].Folded {
			opp = cand
			break
		}
	}
	if opp < 0 {
		return pr
	}
	pr.seat = opp
	pr.count, pr.hash, pr.targets = movesSignature(s, prog, uint8(opp))
	pr.ok = true
	return pr
}

// settle compares the opponent's options after the move against the
// snapshot: a changed move set is a disruption, acting on a pile the
// opponent could also reach is contention, and shrinking them to a
// single option is a forced response.
func (pr opponentProbe) settle(s *engine.GameState, prog *engine.Program, move engine.LegalMove, cc *ContactCounters) {
	if !pr.ok {
		return
	}
	cc.OpponentTurns++

	count, hash, _ := movesSignature(s, prog, uint8(pr.seat))
	if count != pr.count || hash != pr.hash {
		cc.Disruptions++
	}
	if move.CardIndex >= 0 && move.TargetLoc < 8 && pr.targets&(1<<move.TargetLoc) != 0 {
		cc.Contentions++
	}
	if pr.count > 1 && count == 1 {
		cc.ForcedResponses++
	}
}

// movesSignature reduces one seat's legal moves to a count, an
// order-independent hash, and a bitmask of target locations. The seat
// swap is temporary and the state is otherwise untouched.
func movesSignature(s *engine.GameState, prog *engine.Program, seat uint8) (int, uint64, uint8) {
	saved := s.CurrentPlayer
	s.CurrentPlayer = seat
	moves := engine.GenerateLegalMoves(s, prog)
	s.CurrentPlayer = saved

	var hash uint64
	var targets uint8
	for _, m := range moves {
		x := uint64(m.PhaseIndex)<<24 | uint64(uint16(m.CardIndex))<<8 | uint64(m.TargetLoc)
		x ^= x >> 33
		x *= 0xff51afd7ed558ccd
		x ^= x >> 33
		hash ^= x
		if m.TargetLoc < 8 {
			targets |= 1 << m.TargetLoc
		}
	}
	return len(moves), hash, targets
}
