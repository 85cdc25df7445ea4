package engine

import "testing"

// TestSetupDealsRoundRobin verifies hand sizes and the remaining deck
// after the deal.
func TestSetupDealsRoundRobin(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	p := &Program{
		PlayerCount: 2,
		Setup:       SetupInfo{CardsPerPlayer: 7},
	}

	SetupGame(s, p, 42)

	if len(s.Players[0].Hand) != 7 || len(s.Players[1].Hand) != 7 {
		t.Errorf("Expected 7 cards each, got %d and %d",
			len(s.Players[0].Hand), len(s.Players[1].Hand))
	}
	if len(s.Deck) != 38 {
		t.Errorf("Expected 38 cards left, got %d", len(s.Deck))
	}
	if s.CountCards() != DeckSize {
		t.Errorf("Expected all 52 cards accounted for, got %d", s.CountCards())
	}
}

// TestSetupWarPiles verifies war games get one pile per seat even when
// the setup declares none.
func TestSetupWarPiles(t *testing.T) {
	s := GetState(3)
	defer PutState(s)
	p := &Program{
		PlayerCount: 3,
		TableauMode: TableauWar,
		Setup:       SetupInfo{CardsPerPlayer: 17},
	}

	SetupGame(s, p, 1)

	if len(s.Tableau) != 3 {
		t.Errorf("Expected 3 war piles, got %d", len(s.Tableau))
	}
}

// TestSetupDealsToTableau verifies tableau cards spread across piles.
func TestSetupDealsToTableau(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	p := &Program{
		PlayerCount: 2,
		Setup:       SetupInfo{CardsPerPlayer: 5, DealToTableau: 3, TableauSize: 2},
	}

	SetupGame(s, p, 9)

	if len(s.Tableau) != 2 {
		t.Fatalf("Expected 2 piles, got %d", len(s.Tableau))
	}
	if len(s.Tableau[0]) != 2 || len(s.Tableau[1]) != 1 {
		t.Errorf("Expected piles of 2 and 1, got %d and %d",
			len(s.Tableau[0]), len(s.Tableau[1]))
	}
}

// TestSetupChipsAndTeams verifies starting chips and team tables.
func TestSetupChipsAndTeams(t *testing.T) {
	s := GetState(4)
	defer PutState(s)
	p := &Program{
		PlayerCount: 4,
		Setup:       SetupInfo{CardsPerPlayer: 13, StartingChips: 1000},
		Teams:       []int8{0, 1, 0, 1},
	}

	SetupGame(s, p, 3)

	for i := range s.Players {
		if s.Players[i].Chips != 1000 {
			t.Errorf("Expected seat %d to start with 1000 chips, got %d", i, s.Players[i].Chips)
		}
	}
	if len(s.TeamScores) != 2 || len(s.TeamBags) != 2 {
		t.Errorf("Expected two team slots, got %d and %d",
			len(s.TeamScores), len(s.TeamBags))
	}
	if s.TeamFor(2) != 0 || s.TeamFor(3) != 1 {
		t.Error("Expected seats mapped to their teams")
	}
}

// TestSetupDeterministic verifies one seed always deals one game.
func TestSetupDeterministic(t *testing.T) {
	p := &Program{PlayerCount: 2, Setup: SetupInfo{CardsPerPlayer: 10}}

	a := GetState(2)
	defer PutState(a)
	b := GetState(2)
	defer PutState(b)

	SetupGame(a, p, 77)
	SetupGame(b, p, 77)

	for i := range a.Players[0].Hand {
		if a.Players[0].Hand[i] != b.Players[0].Hand[i] {
			t.Fatal("Expected identical deals from one seed")
		}
	}

	c := GetState(2)
	defer PutState(c)
	SetupGame(c, p, 78)
	same := true
	for i := range a.Players[0].Hand {
		if a.Players[0].Hand[i] != c.Players[0].Hand[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected a different seed to deal a different hand")
	}
}

// TestReshuffleKeepsTopDiscard verifies the rebuilt deck leaves the
// reference card in place.
func TestReshuffleKeepsTopDiscard(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Discard = append(s.Discard,
		Card{Rank: RankTwo, Suit: SuitHearts},
		Card{Rank: RankFive, Suit: SuitClubs},
		Card{Rank: RankNine, Suit: SuitSpades},
	)

	if !reshuffleFromDiscard(s) {
		t.Fatal("Expected the reshuffle to run")
	}
	if len(s.Discard) != 1 || s.Discard[0] != (Card{Rank: RankNine, Suit: SuitSpades}) {
		t.Errorf("Expected the nine kept on the discard, got %v", s.Discard)
	}
	if len(s.Deck) != 2 {
		t.Errorf("Expected two cards back in the deck, got %d", len(s.Deck))
	}

	s.Discard = s.Discard[:1]
	if reshuffleFromDiscard(s) {
		t.Error("Expected no reshuffle from a single discard")
	}
}
