package engine

// CheckWin evaluates the win conditions in declaration order and
// returns the winning seat, or -1 while the game is still live. A
// winner is stamped onto the state together with their team.
func CheckWin(s *GameState, p *Program) int8 {
	if s.Winner >= 0 {
		return s.Winner
	}

	winner := int8(-1)
	for i := range p.WinRules {
		winner = checkWinRule(s, p, &p.WinRules[i])
		if winner >= 0 {
			break
		}
	}
	if winner >= 0 {
		s.Winner = winner
		s.WinningTeam = s.TeamFor(uint8(winner))
	}
	return winner
}

func checkWinRule(s *GameState, p *Program, rule *WinRule) int8 {
	switch rule.Kind {
	case WinEmptyHand:
		for i := 0; i < s.NumPlayers; i++ {
			if s.Players[i].Active && len(s.Players[i].Hand) == 0 {
				return int8(i)
			}
		}

	case WinHighScore:
		if anyScoreAtLeast(s, rule.Threshold) {
			return highestScore(s)
		}

	case WinFirstToScore:
		for i := 0; i < s.NumPlayers; i++ {
			if s.Players[i].Score >= rule.Threshold {
				return int8(i)
			}
		}

	case WinCaptureAll:
		for i := 0; i < s.NumPlayers; i++ {
			if len(s.Players[i].Hand) == 52 {
				return int8(i)
			}
		}

	case WinLowScore:
		if anyScoreAtLeast(s, rule.Threshold) {
			return lowestScore(s)
		}

	case WinAllHandsEmpty:
		if !allHandsEmpty(s) {
			return -1
		}
		settlePendingContracts(s, p)
		if s.ContractsApplied {
			return highestScore(s)
		}
		return lowestScore(s)

	case WinBestHand:
		if !showdownReady(s, p) {
			return -1
		}
		return ResolveShowdown(s, p)

	case WinMostCaptured:
		if len(s.Deck) == 0 && allHandsEmpty(s) {
			settlePendingContracts(s, p)
			return highestScore(s)
		}
	}
	return -1
}

func allHandsEmpty(s *GameState) bool {
	for i := 0; i < s.NumPlayers; i++ {
		if len(s.Players[i].Hand) > 0 {
			return false
		}
	}
	return true
}

func anyScoreAtLeast(s *GameState, threshold int32) bool {
	for i := 0; i < s.NumPlayers; i++ {
		if s.Players[i].Score >= threshold {
			return true
		}
	}
	return false
}

// highestScore returns the best-scoring seat, ties to the lowest
// index.
func highestScore(s *GameState) int8 {
	winner := int8(-1)
	best := int32(-1 << 31)
	for i := 0; i < s.NumPlayers; i++ {
		if s.Players[i].Score > best {
			best = s.Players[i].Score
			winner = int8(i)
		}
	}
	return winner
}

func lowestScore(s *GameState) int8 {
	winner := int8(-1)
	best := int32(1<<31 - 1)
	for i := 0; i < s.NumPlayers; i++ {
		if s.Players[i].Score < best {
			best = s.Players[i].Score
			winner = int8(i)
		}
	}
	return winner
}

// settlePendingContracts applies bid scoring when a hand ends in a
// bidding game. Safe to call repeatedly.
func settlePendingContracts(s *GameState, p *Program) {
	if s.ContractsApplied || !s.BiddingClosed {
		return
	}
	ph := ContractPhase(p)
	if ph == nil {
		return
	}
	EvaluateContracts(s, &ph.Contract)
}

// showdownReady gates best-hand resolution. Betting games resolve when
// the round closes; stand-or-draw games when every live player stands;
// everything else once each seat has moved and holds enough cards to
// evaluate.
func showdownReady(s *GameState, p *Program) bool {
	if p.HasPhase(PhaseBetting) {
		return s.BettingClosed
	}

	canStand := false
	for i := range p.Phases {
		if p.Phases[i].Tag == PhaseDraw && !p.Phases[i].Mandatory {
			canStand = true
			break
		}
	}
	if canStand {
		for i := 0; i < s.NumPlayers; i++ {
			if s.Players[i].Active && !s.Players[i].Stood {
				return false
			}
		}
		return true
	}

	if s.Turn < int32(s.NumPlayers) {
		return false
	}
	need := requiredShowdownSize(p)
	for i := 0; i < s.NumPlayers; i++ {
		if s.Players[i].Active && len(s.Players[i].Hand) < need {
			return false
		}
	}
	return true
}

// requiredShowdownSize is the smallest hand that the evaluation can
// rate meaningfully: enough cards for the cheapest pattern, or a
// single card for the value methods.
func requiredShowdownSize(p *Program) int {
	if p.HandEval == nil || len(p.HandEval.Patterns) == 0 {
		return 1
	}
	need := 0
	for i := range p.HandEval.Patterns {
		pat := &p.HandEval.Patterns[i]
		n := pat.RequiredCount
		if pat.SeqLen > n {
			n = pat.SeqLen
		}
		if pat.SameSuitCount > n {
			n = pat.SameSuitCount
		}
		sum := 0
		for _, g := range pat.Groups {
			sum += g
		}
		if sum > n {
			n = sum
		}
		if n < 1 {
			n = 1
		}
		if need == 0 || n < need {
			need = n
		}
	}
	return need
}
