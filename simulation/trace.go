package simulation

import (
	"context"
	"math/rand"

	"github.com/signalnine/darwindeck/gosim/engine"
)

// TraceResult summarises one traced game.
type TraceResult struct {
	Winner      int8
	WinningTeam int8
	Turns       int32
	Scores      []int32
	Err         string
}

// TraceGame plays one game under the per-seat policies, handing each
// chosen move to observe together with the live pre-apply state, so a
// renderer can resolve card indices against the mover's hand. The
// state is pooled and only valid for the duration of the call. The
// callback blocks the loop, so pacing belongs to the caller; there is
// no wall-clock timeout here, only ctx, the turn cap, and the
// repeating-state guard.
func TraceGame(ctx context.Context, prog *engine.Program, seats []AIConfig, seed uint64, observe func(s *engine.GameState, move engine.LegalMove)) TraceResult {
	s := engine.GetState(prog.PlayerCount)
	defer engine.PutState(s)
	engine.SetupGame(s, prog, seed)

	rng := rand.New(rand.NewSource(int64(seed)))

	finish := func(errMsg string) TraceResult {
		scores := make([]int32, s.NumPlayers)
		for i := range scores {
			scores[i] = s.Players[i].Score
		}
		return TraceResult{
			Winner:      s.Winner,
			WinningTeam: s.WinningTeam,
			Turns:       s.Turn,
			Scores:      scores,
			Err:         errMsg,
		}
	}

	var lastFP uint64
	stale := 0

	for s.Turn < prog.MaxTurns {
		if ctx.Err() != nil {
			return finish("canceled")
		}
		if w := engine.CheckWin(s, prog); w >= 0 {
			return finish("")
		}

		moves := engine.GenerateLegalMoves(s, prog)
		if len(moves) == 0 {
			if engine.ApplyHandEndScoring(s, prog) {
				continue
			}
			if rotateToLiveSeat(s, prog) {
				continue
			}
			return finish("no legal moves")
		}

		move := selectMove(s, prog, moves, seatConfig(seats, s.CurrentPlayer), rng)
		if observe != nil {
			observe(s, move)
		}
		engine.ApplyMove(s, prog, move)

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
