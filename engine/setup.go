package engine

// SetupGame deals a fresh game from the program's setup section. The
// deck is shuffled with the given seed, hands are dealt round-robin,
// and tableau piles, chips, and teams are initialised. The state must
// come from GetState sized to p.PlayerCount.
func SetupGame(s *GameState, p *Program, seed uint64) {
	deck := NewDeck()
	ShuffleDeck(deck, seed)

	s.Deck = append(s.Deck[:0], deck...)

	// Tableau piles exist before dealing so DealToTableau has a home.
	slots := p.Setup.TableauSize
	if p.TableauMode == TableauWar && slots < s.NumPlayers {
		slots = s.NumPlayers
	}
	if slots > 0 {
		if cap(s.Tableau) < slots {
			s.Tableau = make([][]Card, slots)
		} else {
			s.Tableau = s.Tableau[:slots]
			for i := range s.Tableau {
				s.Tableau[i] = s.Tableau[i][:0]
			}
		}
	}

	for i := 0; i < p.Setup.CardsPerPlayer; i++ {
		for seat := 0; seat < s.NumPlayers; seat++ {
			if len(s.Deck) == 0 {
				break
			}
			card := s.Deck[len(s.Deck)-1]
			s.Deck = s.Deck[:len(s.Deck)-1]
			s.Players[seat].Hand = append(s.Players[seat].Hand, card)
		}
	}

	for i := 0; i < p.Setup.DealToTableau && len(s.Deck) > 0; i++ {
		card := s.Deck[len(s.Deck)-1]
		s.Deck = s.Deck[:len(s.Deck)-1]
		if len(s.Tableau) > 0 {
			pile := i % len(s.Tableau)
			s.Tableau[pile] = append(s.Tableau[pile], card)
		} else {
			s.Discard = append(s.Discard, card)
		}
	}

	if p.Setup.StartingChips > 0 {
		for seat := 0; seat < s.NumPlayers; seat++ {
			s.Players[seat].Chips = p.Setup.StartingChips
		}
	}

	if p.Teams != nil {
		s.TeamOf = p.Teams
		teams := 0
		for _, t := range p.Teams {
			if int(t)+1 > teams {
				teams = int(t) + 1
			}
		}
		s.TeamScores = make([]int32, teams)
		s.TeamBags = make([]int32, teams)
	}
}

// reshuffleFromDiscard rebuilds the deck from the discard pile when a
// draw finds the deck empty. The top discard stays in place so games
// that key plays off it keep their reference card. The shuffle seed is
// derived from the turn so replays stay deterministic.
func reshuffleFromDiscard(s *GameState) bool {
	if len(s.Discard) <= 1 {
		return false
	}
	top := s.Discard[len(s.Discard)-1]
	s.Deck = append(s.Deck, s.Discard[:len(s.Discard)-1]...)
	s.Discard = s.Discard[:0]
	s.Discard = append(s.Discard, top)
	ShuffleDeck(s.Deck, uint64(s.Turn)*shuffleMul+shuffleInc)
	return true
}
