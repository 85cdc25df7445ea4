package mcts

import (
	"math"
	"math/rand"

	"github.com/signalnine/darwindeck/gosim/engine"
)

const (
	// DefaultExploration is the UCB1 exploration constant.
	DefaultExploration = math.Sqrt2

	// DefaultIterations bounds a search when the caller does not.
	DefaultIterations = 100
)

// Params tunes a search. Zero values fall back to the defaults above.
type Params struct {
	Iterations  int
	Exploration float64
}

func (p Params) normalized() Params {
	if p.Iterations <= 0 {
		p.Iterations = DefaultIterations
	}
	if p.Exploration <= 0 {
		p.Exploration = DefaultExploration
	}
	return p
}

// Search runs UCT from state and returns the move the root visited
// most. ok is false when the seat to act has no legal moves. The
// caller's state is never touched; the tree and all its cloned states
// are released before returning. rng drives expansion order and
// playouts, so a fixed seed gives a fixed search.
func Search(state *engine.GameState, prog *engine.Program, params Params, rng *rand.Rand) (engine.LegalMove, bool) {
	params = params.normalized()

	root := newNode()
	defer releaseTree(root)
	root.state = state.Clone()
	root.seat = state.CurrentPlayer
	root.untried = engine.GenerateLegalMoves(root.state, prog)
	if len(root.untried) == 0 {
		return engine.LegalMove{}, false
	}

	for i := 0; i < params.Iterations; i++ {
		n := root

		// Selection: descend through fully expanded nodes by UCB1.
		for !n.terminal() && len(n.untried) == 0 && len(n.children) > 0 {
			n = n.selectChild(params.Exploration)
		}

		// Expansion: branch on one untried move.
		if !n.terminal() && len(n.untried) > 0 {
			n = expand(n, prog, rng)
		}

		// Rollout and backpropagation. Each node banks wins for the
		// seat that made the move into it, which is the seat choosing
		// among its siblings one level up.
		winner := playout(n.state, prog, rng)
		for ; n != nil; n = n.parent {
			n.visits++
			if credited(prog, winner, n.seat) {
				n.wins++
			}
		}
	}

	best := root.bestByVisits()
	if best == nil {
		moves := engine.GenerateLegalMoves(state, prog)
		if len(moves) == 0 {
			return engine.LegalMove{}, false
		}
		return moves[0], true
	}
	return best.move, true
}

// expand pops a random untried move, applies it to a cloned state, and
// attaches the resulting child.
func expand(n *node, prog *engine.Program, rng *rand.Rand) *node {
	idx := rng.Intn(len(n.untried))
	move := n.untried[idx]
	n.untried[idx] = n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]

	mover := n.state.CurrentPlayer
	childState := n.state.Clone()
	engine.ApplyMove(childState, prog, move)
	engine.CheckWin(childState, prog)

	child := newNode()
	child.state = childState
	child.move = move
	child.parent = n
	child.seat = mover
	child.untried = engine.GenerateLegalMoves(childState, prog)

	n.children = append(n.children, child)
	return child
}

// playout plays uniformly random moves from a copy of s until someone
// wins, the game stalls, or twice the turn cap passes. Returns the
// winning seat or -1 for an unresolved game.
func playout(s *engine.GameState, prog *engine.Program, rng *rand.Rand) int8 {
	sim := s.Clone()
	defer engine.PutState(sim)

	limit := int(prog.MaxTurns) * 2
	for i := 0; i < limit; i++ {
		if w := engine.CheckWin(sim, prog); w >= 0 {
			return w
		}
		moves := engine.GenerateLegalMoves(sim, prog)
		if len(moves) == 0 {
			// A stalled hand can still resolve through end scoring.
			if engine.ApplyHandEndScoring(sim, prog) {
				continue
			}
			return -1
		}
		engine.ApplyMove(sim, prog, moves[rng.Intn(len(moves))])
	}
	return -1
}

// credited reports whether a playout win counts for seat. In team
// games a partner's win counts too.
func credited(prog *engine.Program, winner int8, seat uint8) bool {
	if winner < 0 {
		return false
	}
	if uint8(winner) == seat {
		return true
	}
	if int(winner) < len(prog.Teams) && int(seat) < len(prog.Teams) {
		return prog.Teams[winner] == prog.Teams[seat]
	}
	return false
}
