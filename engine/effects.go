package engine

// ApplyEffect mutates the state for one triggered special effect.
// Wild is resolved at play-legality time and changes nothing here.
func ApplyEffect(s *GameState, e *EffectRule) {
	switch e.Type {
	case EffectSkipNext:
		s.SkipCount += int(e.Value)
		if max := s.NumPlayers - 1; s.SkipCount > max {
			s.SkipCount = max
		}

	case EffectReverse:
		s.PlayDirection = -s.PlayDirection

	case EffectDrawCards:
		for _, target := range effectTargets(s, e.Target) {
			for i := uint8(0); i < e.Value; i++ {
				if len(s.Deck) == 0 && !reshuffleFromDiscard(s) {
					return
				}
				if len(s.Deck) == 0 {
					return
				}
				card := s.Deck[len(s.Deck)-1]
				s.Deck = s.Deck[:len(s.Deck)-1]
				s.Players[target].Hand = append(s.Players[target].Hand, card)
			}
		}

	case EffectExtraTurn:
		// Skipping every other seat lands the turn back here.
		s.SkipCount = s.NumPlayers - 1

	case EffectForceDiscard:
		for _, target := range effectTargets(s, e.Target) {
			for i := uint8(0); i < e.Value; i++ {
				hand := s.Players[target].Hand
				if len(hand) == 0 {
					break
				}
				card := hand[len(hand)-1]
				s.Players[target].Hand = hand[:len(hand)-1]
				s.Discard = append(s.Discard, card)
			}
		}

	case EffectWild:
	}
}

// effectTargets resolves an effect target selector to player indices,
// relative to the current player and direction of play.
func effectTargets(s *GameState, target uint8) []int {
	switch target {
	case TargetSelf:
		return []int{int(s.CurrentPlayer)}
	case TargetAllOpponents:
		out := make([]int, 0, s.NumPlayers-1)
		for i := 0; i < s.NumPlayers; i++ {
			if i != int(s.CurrentPlayer) && s.Players[i].Active {
				out = append(out, i)
			}
		}
		return out
	default:
		next := nextActivePlayer(s, s.CurrentPlayer)
		if next == int(s.CurrentPlayer) {
			return nil
		}
		return []int{next}
	}
}

// AdvanceTurn moves play to the next seat, consuming any pending
// skips. Folded and eliminated players never take a turn.
func AdvanceTurn(s *GameState) {
	steps := 1 + s.SkipCount
	s.SkipCount = 0

	cur := int(s.CurrentPlayer)
	for i := 0; i < steps; i++ {
		for j := 0; j < s.NumPlayers; j++ {
			cur = (cur + int(s.PlayDirection) + s.NumPlayers) % s.NumPlayers
			if s.Players[cur].Active && !s.Players[cur].Folded {
				break
			}
		}
	}
	s.CurrentPlayer = uint8(cur)
}
