package engine

import "testing"

// TestRankValueAceHigh verifies the ace outranks every other card
// while the rest follow their face order.
func TestRankValueAceHigh(t *testing.T) {
	if RankValue(RankAce) != 14 {
		t.Errorf("Expected ace value 14, got %d", RankValue(RankAce))
	}
	if RankValue(RankKing) != 13 {
		t.Errorf("Expected king value 13, got %d", RankValue(RankKing))
	}
	if RankValue(RankTwo) != 2 {
		t.Errorf("Expected two value 2, got %d", RankValue(RankTwo))
	}

	ace := Card{Rank: RankAce, Suit: SuitHearts}
	king := Card{Rank: RankKing, Suit: SuitSpades}
	if !ace.Beats(king) {
		t.Error("Expected ace to beat king")
	}
	if king.Beats(ace) {
		t.Error("Expected king not to beat ace")
	}
}

// TestNewDeckComplete verifies a fresh deck holds all 52 distinct
// cards.
func TestNewDeckComplete(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("Expected %d cards, got %d", DeckSize, len(deck))
	}

	seen := make(map[Card]bool, DeckSize)
	for _, c := range deck {
		if c.Suit > 3 || c.Rank > 12 {
			t.Errorf("Card out of range: %v", c)
		}
		if seen[c] {
			t.Errorf("Duplicate card: %v", c)
		}
		seen[c] = true
	}
}

// TestShuffleDeterministic verifies the same seed produces the same
// order and different seeds diverge.
func TestShuffleDeterministic(t *testing.T) {
	a := NewDeck()
	b := NewDeck()
	ShuffleDeck(a, 42)
	ShuffleDeck(b, 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Same seed diverged at index %d: %v vs %v", i, a[i], b[i])
		}
	}

	c := NewDeck()
	ShuffleDeck(c, 43)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds produced identical order")
	}
}

// TestCardString spot-checks the display names used by the rulebook
// renderer.
func TestCardString(t *testing.T) {
	qs := Card{Rank: RankQueen, Suit: SuitSpades}
	if qs.String() != "Queen of Spades" {
		t.Errorf("Expected 'Queen of Spades', got %q", qs.String())
	}
	ah := Card{Rank: RankAce, Suit: SuitHearts}
	if ah.String() != "Ace of Hearts" {
		t.Errorf("Expected 'Ace of Hearts', got %q", ah.String())
	}
}
