// Package mcts implements Monte Carlo tree search over a compiled
// game program. Trees are built from pooled nodes and torn down when
// the search returns, so the thousands of searches inside an
// evaluation batch reuse the same memory instead of churning the
// allocator.
package mcts

import (
	"math"
	"sync"

	"github.com/signalnine/darwindeck/gosim/engine"
)

// node is one position in the search tree. move is the edge that led
// here from the parent and seat is the player who made it; on the
// root both are placeholders. untried holds legal moves not yet
// expanded into children.
type node struct {
	state    *engine.GameState
	move     engine.LegalMove
	parent   *node
	children []*node
	untried  []engine.LegalMove
	visits   int
	wins     float64
	seat     uint8
}

var nodePool = sync.Pool{
	New: func() any {
		return &node{children: make([]*node, 0, 8)}
	},
}

func newNode() *node {
	n := nodePool.Get().(*node)
	n.state = nil
	n.move = engine.LegalMove{}
	n.parent = nil
	n.children = n.children[:0]
	n.untried = nil
	n.visits = 0
	n.wins = 0
	n.seat = 0
	return n
}

// releaseTree returns every node under root to the node pool and every
// cloned state to the engine's state pool. Iterative so a degenerate
// deep tree cannot exhaust the stack.
func releaseTree(root *node) {
	if root == nil {
		return
	}
	stack := []*node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, n.children...)
		if n.state != nil {
			engine.PutState(n.state)
			n.state = nil
		}
		n.parent = nil
		n.children = n.children[:0]
		n.untried = nil
		nodePool.Put(n)
	}
}

// ucb scores this node from its parent's point of view using UCB1.
// Unvisited nodes rank first so every child gets sampled once.
func (n *node) ucb(c float64) float64 {
	if n.visits == 0 {
		return math.Inf(1)
	}
	exploit := n.wins / float64(n.visits)
	explore := c * math.Sqrt(math.Log(float64(n.parent.visits))/float64(n.visits))
	return exploit + explore
}

func (n *node) selectChild(c float64) *node {
	best := n.children[0]
	bestScore := best.ucb(c)
	for _, ch := range n.children[1:] {
		if score := ch.ucb(c); score > bestScore {
			bestScore = score
			best = ch
		}
	}
	return best
}

// bestByVisits picks the most sampled child, the conventional final
// move choice. Returns nil when the node was never expanded.
func (n *node) bestByVisits() *node {
	if len(n.children) == 0 {
		return nil
	}
	best := n.children[0]
	for _, ch := range n.children[1:] {
		if ch.visits > best.visits {
			best = ch
		}
	}
	return best
}

func (n *node) terminal() bool {
	return n.state == nil || n.state.Winner >= 0
}
