package engine

import "testing"

func bettingProgram(minBet int32, maxRaises int) *Program {
	return &Program{
		PlayerCount: 2,
		MaxTurns:    100,
		Phases: []PhaseInfo{
			{Tag: PhaseBetting, MinBet: minBet, MaxRaises: maxRaises},
		},
		WinRules: []WinRule{{Kind: WinBestHand}},
	}
}

func bettingState(chips int32) *GameState {
	s := GetState(2)
	for i := range s.Players {
		s.Players[i].Chips = chips
	}
	return s
}

// TestBettingChecksCloseRound verifies a round of checks closes with
// no chips moved and play back at the opener.
func TestBettingChecksCloseRound(t *testing.T) {
	s := bettingState(1000)
	defer PutState(s)
	p := bettingProgram(10, 3)

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: moveBetBase - int16(BetCheck)})
	if s.BettingClosed {
		t.Fatal("Expected round still open after one check")
	}
	if s.CurrentPlayer != 1 {
		t.Fatalf("Expected seat 1 to act, got %d", s.CurrentPlayer)
	}

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: moveBetBase - int16(BetCheck)})
	if !s.BettingClosed {
		t.Error("Expected round closed after both checks")
	}
	if s.Pot != 0 {
		t.Errorf("Expected empty pot, got %d", s.Pot)
	}
	if s.CurrentPlayer != s.BettingOpener {
		t.Errorf("Expected play back at the opener, got seat %d", s.CurrentPlayer)
	}
}

// TestBetThenCall verifies chip movement through a bet and a call.
func TestBetThenCall(t *testing.T) {
	s := bettingState(1000)
	defer PutState(s)
	p := bettingProgram(10, 3)

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: moveBetBase - int16(BetBet)})
	if s.TableBet != 10 || s.Pot != 10 {
		t.Fatalf("Expected table bet 10 and pot 10, got %d and %d", s.TableBet, s.Pot)
	}

	moves := GenerateLegalMoves(s, p)
	if len(moves) != 3 {
		t.Fatalf("Expected call, raise, and fold, got %d moves", len(moves))
	}

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: moveBetBase - int16(BetCall)})
	if !s.BettingClosed {
		t.Error("Expected round closed once the call matches")
	}
	if s.Pot != 20 {
		t.Errorf("Expected pot 20, got %d", s.Pot)
	}
	if s.Players[0].Chips != 990 || s.Players[1].Chips != 990 {
		t.Errorf("Expected 990 chips each, got %d and %d",
			s.Players[0].Chips, s.Players[1].Chips)
	}
}

// TestRaiseReopensAction verifies a raise forces the original bettor
// to act again and that the raise cap removes the raise option.
func TestRaiseReopensAction(t *testing.T) {
	s := bettingState(1000)
	defer PutState(s)
	p := bettingProgram(10, 1)

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: moveBetBase - int16(BetBet)})
	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: moveBetBase - int16(BetRaise)})

	if s.BettingClosed {
		t.Fatal("Expected the raise to reopen the round")
	}
	if s.CurrentPlayer != 0 {
		t.Fatalf("Expected seat 0 to face the raise, got %d", s.CurrentPlayer)
	}
	if s.RaiseCount != 1 || s.TableBet != 20 {
		t.Fatalf("Expected one raise to 20, got %d raises at %d", s.RaiseCount, s.TableBet)
	}

	moves := GenerateLegalMoves(s, p)
	for _, m := range moves {
		if DecodeBettingAction(m.CardIndex) == BetRaise {
			t.Error("Expected no raise option past the cap")
		}
	}

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: moveBetBase - int16(BetCall)})
	if !s.BettingClosed {
		t.Error("Expected round closed after the call")
	}
	if s.Pot != 40 {
		t.Errorf("Expected pot 40, got %d", s.Pot)
	}
}

// TestFoldWinDecidesGame verifies the last unfolded player takes the
// pot and the game immediately.
func TestFoldWinDecidesGame(t *testing.T) {
	s := bettingState(1000)
	defer PutState(s)
	p := bettingProgram(10, 3)

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: moveBetBase - int16(BetBet)})
	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: moveBetBase - int16(BetFold)})

	if s.Winner != 0 || !s.FoldWin {
		t.Errorf("Expected seat 0 to win by fold, got winner %d", s.Winner)
	}
	if s.Players[0].Chips != 1000 {
		t.Errorf("Expected the bet returned with the pot, got %d", s.Players[0].Chips)
	}
	if s.Pot != 0 {
		t.Errorf("Expected pot paid out, got %d", s.Pot)
	}
}

// TestShortStackAllIn verifies a player who cannot call is offered
// only all-in or fold, and an all-in closes their action.
func TestShortStackAllIn(t *testing.T) {
	s := bettingState(1000)
	defer PutState(s)
	s.Players[1].Chips = 5
	p := bettingProgram(10, 3)

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: moveBetBase - int16(BetBet)})

	moves := GenerateLegalMoves(s, p)
	if len(moves) != 2 {
		t.Fatalf("Expected all-in and fold only, got %d moves", len(moves))
	}
	if DecodeBettingAction(moves[0].CardIndex) != BetAllIn {
		t.Errorf("Expected all-in first, got action %d", DecodeBettingAction(moves[0].CardIndex))
	}

	ApplyMove(s, p, moves[0])
	if !s.Players[1].AllIn || s.Players[1].Chips != 0 {
		t.Errorf("Expected seat 1 all-in with no chips, got %d", s.Players[1].Chips)
	}
	if !s.BettingClosed {
		t.Error("Expected round closed with nobody left to act")
	}
	if s.Pot != 15 {
		t.Errorf("Expected pot 15, got %d", s.Pot)
	}
}

// TestChipConservation verifies chips plus pot stay constant through a
// full betting round.
func TestChipConservation(t *testing.T) {
	s := bettingState(500)
	defer PutState(s)
	p := bettingProgram(25, 3)

	total := func() int32 {
		sum := s.Pot
		for i := range s.Players {
			sum += s.Players[i].Chips
		}
		return sum
	}
	start := total()

	for i := 0; i < 20 && !s.BettingClosed; i++ {
		moves := GenerateLegalMoves(s, p)
		if len(moves) == 0 {
			break
		}
		ApplyMove(s, p, moves[0])
		if total() != start {
			t.Fatalf("Expected %d chips in play, got %d", start, total())
		}
	}
}

// TestShowdownPointTotal verifies the showdown pays the best total and
// skips busted hands.
func TestShowdownPointTotal(t *testing.T) {
	s := bettingState(0)
	defer PutState(s)
	s.Pot = 100
	s.Players[0].Hand = []Card{
		{Rank: RankKing, Suit: SuitHearts},
		{Rank: RankQueen, Suit: SuitClubs},
	}
	s.Players[1].Hand = []Card{
		{Rank: RankKing, Suit: SuitSpades},
		{Rank: RankQueen, Suit: SuitDiamonds},
		{Rank: RankFive, Suit: SuitHearts},
	}

	p := bettingProgram(10, 3)
	p.HandEval = &HandEval{Method: HandEvalPointTotal, TargetValue: 21, BustThreshold: 21}

	winner := ResolveShowdown(s, p)
	if winner != 0 {
		t.Fatalf("Expected seat 0 on twenty against a bust, got %d", winner)
	}
	if s.Players[0].Chips != 100 {
		t.Errorf("Expected seat 0 paid the pot, got %d", s.Players[0].Chips)
	}
	if s.Pot != 0 {
		t.Errorf("Expected pot cleared, got %d", s.Pot)
	}
}

// TestShowdownFoldedHandIgnored verifies folded players never win the
// showdown regardless of cards.
func TestShowdownFoldedHandIgnored(t *testing.T) {
	s := bettingState(0)
	defer PutState(s)
	s.Pot = 50
	s.Players[0].Hand = []Card{{Rank: RankAce, Suit: SuitSpades}}
	s.Players[0].Folded = true
	s.Players[1].Hand = []Card{{Rank: RankTwo, Suit: SuitHearts}}

	p := bettingProgram(10, 3)

	if winner := ResolveShowdown(s, p); winner != 1 {
		t.Errorf("Expected the unfolded seat to win, got %d", winner)
	}
}

// TestHandStrengthOrdering verifies pairs outrate lone high cards.
func TestHandStrengthOrdering(t *testing.T) {
	pair := EvaluateHandStrength([]Card{
		{Rank: RankAce, Suit: SuitHearts},
		{Rank: RankAce, Suit: SuitSpades},
	})
	high := EvaluateHandStrength([]Card{
		{Rank: RankTwo, Suit: SuitClubs},
	})
	if pair <= high {
		t.Errorf("Expected a pair of aces above a lone two, got %f vs %f", pair, high)
	}
	if pair > 1 {
		t.Errorf("Expected strength capped at 1, got %f", pair)
	}
}

// TestPatternPriorityPicksBest verifies pattern evaluation returns the
// first matching priority.
func TestPatternPriorityPicksBest(t *testing.T) {
	he := &HandEval{
		Method: HandEvalPatternMatch,
		Patterns: []HandPattern{
			{Priority: 5, SameSuitCount: 5},
			{Priority: 1, Groups: []int{2}},
		},
	}

	flush := []Card{
		{Rank: RankTwo, Suit: SuitHearts},
		{Rank: RankFive, Suit: SuitHearts},
		{Rank: RankSeven, Suit: SuitHearts},
		{Rank: RankNine, Suit: SuitHearts},
		{Rank: RankKing, Suit: SuitHearts},
	}
	if got := EvaluateHandPattern(flush, he); got != 5 {
		t.Errorf("Expected flush priority 5, got %d", got)
	}

	pairHand := []Card{
		{Rank: RankNine, Suit: SuitHearts},
		{Rank: RankNine, Suit: SuitClubs},
		{Rank: RankTwo, Suit: SuitSpades},
	}
	if got := EvaluateHandPattern(pairHand, he); got != 1 {
		t.Errorf("Expected pair priority 1, got %d", got)
	}

	junk := []Card{
		{Rank: RankTwo, Suit: SuitHearts},
		{Rank: RankNine, Suit: SuitClubs},
	}
	if got := EvaluateHandPattern(junk, he); got != 0 {
		t.Errorf("Expected no pattern, got %d", got)
	}
}

// TestSequenceWrapAceLow verifies the wheel straight only counts when
// wrapping is allowed.
func TestSequenceWrapAceLow(t *testing.T) {
	wheel := []Card{
		{Rank: RankAce, Suit: SuitHearts},
		{Rank: RankTwo, Suit: SuitClubs},
		{Rank: RankThree, Suit: SuitSpades},
		{Rank: RankFour, Suit: SuitDiamonds},
		{Rank: RankFive, Suit: SuitHearts},
	}
	if !isSequence(wheel, 5, true) {
		t.Error("Expected ace-low straight with wrap enabled")
	}
	if isSequence(wheel, 5, false) {
		t.Error("Expected no straight without wrap")
	}

	straight := []Card{
		{Rank: RankNine, Suit: SuitHearts},
		{Rank: RankTen, Suit: SuitClubs},
		{Rank: RankJack, Suit: SuitSpades},
		{Rank: RankQueen, Suit: SuitDiamonds},
		{Rank: RankKing, Suit: SuitHearts},
	}
	if !isSequence(straight, 5, false) {
		t.Error("Expected nine-to-king straight without wrap")
	}
}
