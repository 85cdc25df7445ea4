// Package game carries a hand-coded War implementation used as a
// baseline when pricing the rule VM. The loop below plays the same
// battles the bytecode path derives from the catalogue's War rules,
// with parsing, condition evaluation, and move generation stripped
// out; benchmarking the two side by side isolates what the VM's
// generality costs.
package game

import (
	"github.com/signalnine/darwindeck/gosim/engine"
)

// WarResult is one game's outcome.
type WarResult struct {
	Winner int // seat index, -1 for a draw at the turn cap
	Turns  int
}

// WarGame is a two-seat battle in flight. Hands act as queues: flips
// come off the front, captures go on the back.
type WarGame struct {
	hands   [2][]engine.Card
	piles   [2][]engine.Card
	battles int
	turns   int
}

// NewWarGame deals a seeded game. The deck, shuffle, and round-robin
// deal match the VM's setup exactly, so both paths see the same
// opening hands for a given seed.
func NewWarGame(seed uint64) *WarGame {
	deck := engine.NewDeck()
	engine.ShuffleDeck(deck, seed)

	g := &WarGame{}
	for len(deck) > 0 {
		for seat := 0; seat < 2 && len(deck) > 0; seat++ {
			card := deck[len(deck)-1]
			deck = deck[:len(deck)-1]
			g.hands[seat] = append(g.hands[seat], card)
		}
	}
	return g
}

// PlayBattle flips one card per seat and resolves. Ties alternate by
// battle number, the same rule the VM uses, so repeated ties cannot
// stall the game.
func (g *WarGame) PlayBattle() {
	for seat := 0; seat < 2; seat++ {
		if len(g.hands[seat]) == 0 {
			continue
		}
		g.piles[seat] = append(g.piles[seat], g.hands[seat][0])
		g.hands[seat] = g.hands[seat][1:]
		g.turns++
	}

	flipped := make([]int, 0, 2)
	for seat := 0; seat < 2; seat++ {
		if len(g.piles[seat]) > 0 {
			flipped = append(flipped, seat)
		}
	}
	if len(flipped) == 0 {
		return
	}

	best := flipped[:1]
	bestValue := topValue(g.piles[flipped[0]])
	for _, seat := range flipped[1:] {
		switch v := topValue(g.piles[seat]); {
		case v > bestValue:
			bestValue = v
			best = []int{seat}
		case v == bestValue:
			best = append(best, seat)
		}
	}

	winner := best[g.battles%len(best)]
	g.battles++

	for seat := 0; seat < 2; seat++ {
		g.hands[winner] = append(g.hands[winner], g.piles[seat]...)
		g.piles[seat] = g.piles[seat][:0]
	}
}

func topValue(pile []engine.Card) int {
	return pile[len(pile)-1].Value()
}

// Over reports whether a seat has run out of cards.
func (g *WarGame) Over() bool {
	return len(g.hands[0]) == 0 || len(g.hands[1]) == 0
}

// Winner returns the seat holding more cards, or -1 on an exact
// split.
func (g *WarGame) Winner() int {
	switch a, b := len(g.hands[0]), len(g.hands[1]); {
	case a > b:
		return 0
	case b > a:
		return 1
	default:
		return -1
	}
}

// CardCount sums cards across hands and piles. Battles move cards
// around but never create or destroy them.
func (g *WarGame) CardCount() int {
	n := 0
	for seat := 0; seat < 2; seat++ {
		n += len(g.hands[seat]) + len(g.piles[seat])
	}
	return n
}

// PlayWarGame runs one game to completion or the turn cap. Each flip
// counts as a turn, matching how the VM meters its turn limit.
func PlayWarGame(seed uint64, maxTurns int) WarResult {
	g := NewWarGame(seed)
	for !g.Over() && g.turns < maxTurns {
		g.PlayBattle()
	}
	return WarResult{Winner: g.Winner(), Turns: g.turns}
}
