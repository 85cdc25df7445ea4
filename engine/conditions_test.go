package engine

import "testing"

// TestCompareOperators exercises every comparison offset.
func TestCompareOperators(t *testing.T) {
	cases := []struct {
		op   uint8
		l, r int
		want bool
	}{
		{CmpEQ, 3, 3, true},
		{CmpEQ, 3, 4, false},
		{CmpNE, 3, 4, true},
		{CmpLT, 2, 3, true},
		{CmpLT, 3, 3, false},
		{CmpGT, 4, 3, true},
		{CmpLE, 3, 3, true},
		{CmpGE, 2, 3, false},
	}
	for _, c := range cases {
		if got := compare(c.op, c.l, c.r); got != c.want {
			t.Errorf("compare(%d, %d, %d) = %v, want %v", c.op, c.l, c.r, got, c.want)
		}
	}
}

// TestHandSizeCondition verifies the hand-size leaf against a live
// state.
func TestHandSizeCondition(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	p := &Program{}

	s.Players[0].Hand = []Card{{Rank: RankFive, Suit: SuitClubs}, {Rank: RankSix, Suit: SuitClubs}}

	cond := &Condition{OpCode: uint8(OpCheckHandSize), Operator: CmpGT, Value: 1}
	if !EvaluateCondition(s, p, cond, 0) {
		t.Error("Expected hand size 2 > 1 to hold")
	}
	cond.Value = 2
	if EvaluateCondition(s, p, cond, 0) {
		t.Error("Expected hand size 2 > 2 to fail")
	}
}

// TestCompoundConditions verifies AND shortcuts on failure and OR on
// success.
func TestCompoundConditions(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	p := &Program{}
	s.Players[0].Hand = []Card{{Rank: RankFive, Suit: SuitClubs}}

	and := &Condition{
		OpCode: uint8(OpAnd),
		Children: []Condition{
			{OpCode: uint8(OpCheckHandSize), Operator: CmpEQ, Value: 1},
			{OpCode: uint8(OpCheckHandSize), Operator: CmpEQ, Value: 2},
		},
	}
	if EvaluateCondition(s, p, and, 0) {
		t.Error("Expected AND with one false child to fail")
	}

	or := &Condition{
		OpCode: uint8(OpOr),
		Children: []Condition{
			{OpCode: uint8(OpCheckHandSize), Operator: CmpEQ, Value: 9},
			{OpCode: uint8(OpCheckHandSize), Operator: CmpEQ, Value: 1},
		},
	}
	if !EvaluateCondition(s, p, or, 0) {
		t.Error("Expected OR with one true child to hold")
	}
}

// TestCardMatchConditionsOnEmptyPile verifies an opening play is legal
// when there is no reference card yet.
func TestCardMatchConditionsOnEmptyPile(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	p := &Program{}

	card := Card{Rank: RankNine, Suit: SuitHearts}
	cond := &Condition{OpCode: uint8(OpCheckCardMatchesRank), RefLoc: LocationDiscard}
	if !EvaluateCardCondition(s, p, cond, 0, card) {
		t.Error("Expected rank match to pass with empty discard")
	}

	s.Discard = append(s.Discard, Card{Rank: RankNine, Suit: SuitSpades})
	if !EvaluateCardCondition(s, p, cond, 0, card) {
		t.Error("Expected nine to match nine on discard")
	}

	s.Discard[0].Rank = RankTen
	if EvaluateCardCondition(s, p, cond, 0, card) {
		t.Error("Expected nine not to match ten")
	}
}

// TestWildLiftsSuitMatch verifies a wild rank on the pile admits any
// suit.
func TestWildLiftsSuitMatch(t *testing.T) {
	s := GetState(2)
	defer PutState(s)

	p := &Program{}
	p.Effects[RankEight] = &EffectRule{TriggerRank: RankEight, Type: EffectWild}

	s.Discard = append(s.Discard, Card{Rank: RankEight, Suit: SuitSpades})
	cond := &Condition{OpCode: uint8(OpCheckCardMatchesSuit), RefLoc: LocationDiscard}

	offSuit := Card{Rank: RankThree, Suit: SuitHearts}
	if !EvaluateCardCondition(s, p, cond, 0, offSuit) {
		t.Error("Expected wild eight to admit an off-suit play")
	}

	s.Discard[0] = Card{Rank: RankNine, Suit: SuitSpades}
	if EvaluateCardCondition(s, p, cond, 0, offSuit) {
		t.Error("Expected plain nine to enforce the suit")
	}
}

// TestCardBeatsTopAllowsEqual verifies equal ranks may stack, as in
// climbing games.
func TestCardBeatsTopAllowsEqual(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	p := &Program{}

	s.Discard = append(s.Discard, Card{Rank: RankSeven, Suit: SuitClubs})
	cond := &Condition{OpCode: uint8(OpCheckCardBeatsTop), RefLoc: LocationDiscard}

	if !EvaluateCardCondition(s, p, cond, 0, Card{Rank: RankSeven, Suit: SuitHearts}) {
		t.Error("Expected equal rank to be playable")
	}
	if !EvaluateCardCondition(s, p, cond, 0, Card{Rank: RankEight, Suit: SuitHearts}) {
		t.Error("Expected higher rank to be playable")
	}
	if EvaluateCardCondition(s, p, cond, 0, Card{Rank: RankSix, Suit: SuitHearts}) {
		t.Error("Expected lower rank to be rejected")
	}
	// Ace is high.
	if !EvaluateCardCondition(s, p, cond, 0, Card{Rank: RankAce, Suit: SuitHearts}) {
		t.Error("Expected ace to beat seven")
	}
}

// TestHasSetAndRun verifies set and run detection over rank indices.
func TestHasSetAndRun(t *testing.T) {
	hand := []Card{
		{Rank: RankFour, Suit: SuitHearts},
		{Rank: RankFour, Suit: SuitClubs},
		{Rank: RankFour, Suit: SuitSpades},
		{Rank: RankFive, Suit: SuitHearts},
		{Rank: RankSix, Suit: SuitDiamonds},
	}
	if !hasSetOfN(hand, 3) {
		t.Error("Expected set of three fours")
	}
	if hasSetOfN(hand, 4) {
		t.Error("Did not expect set of four")
	}
	if !hasRunOfN(hand, 3) {
		t.Error("Expected run four-five-six across suits")
	}
	if hasRunOfN(hand, 4) {
		t.Error("Did not expect run of four")
	}
}

// TestMatchingPairNeedsColour verifies rank alone is not enough for an
// Old Maid pair.
func TestMatchingPairNeedsColour(t *testing.T) {
	redAndBlack := []Card{
		{Rank: RankQueen, Suit: SuitHearts},
		{Rank: RankQueen, Suit: SuitSpades},
	}
	if hasMatchingPair(redAndBlack) {
		t.Error("Red queen and black queen should not pair")
	}

	bothRed := []Card{
		{Rank: RankQueen, Suit: SuitHearts},
		{Rank: RankQueen, Suit: SuitDiamonds},
	}
	if !hasMatchingPair(bothRed) {
		t.Error("Two red queens should pair")
	}
}

// TestSequenceExtends verifies suit-bound adjacency in each direction.
func TestSequenceExtends(t *testing.T) {
	up := &Program{SequenceDir: SequenceAscending}
	down := &Program{SequenceDir: SequenceDescending}
	both := &Program{SequenceDir: SequenceBoth}

	five := Card{Rank: RankFive, Suit: SuitClubs}
	six := Card{Rank: RankSix, Suit: SuitClubs}
	offSuitSix := Card{Rank: RankSix, Suit: SuitHearts}

	if !sequenceExtends(up, five, six) {
		t.Error("Expected six on five ascending")
	}
	if sequenceExtends(up, six, five) {
		t.Error("Did not expect five on six ascending")
	}
	if !sequenceExtends(down, six, five) {
		t.Error("Expected five on six descending")
	}
	if !sequenceExtends(both, six, five) || !sequenceExtends(both, five, six) {
		t.Error("Expected either direction with SequenceBoth")
	}
	if sequenceExtends(up, five, offSuitSix) {
		t.Error("Did not expect off-suit card to extend")
	}
}
