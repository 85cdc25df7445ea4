package engine

import "testing"

// TestSelectLeaderDetector verifies each game family gets the matching
// detector.
func TestSelectLeaderDetector(t *testing.T) {
	betting := &Program{Phases: []PhaseInfo{{Tag: PhaseBetting}}}
	if _, ok := SelectLeaderDetector(betting).(ChipLeader); !ok {
		t.Error("Expected ChipLeader for a betting game")
	}

	hearts := &Program{
		Phases:   []PhaseInfo{{Tag: PhaseTrick}},
		WinRules: []WinRule{{Kind: WinLowScore, Threshold: 100}},
	}
	if _, ok := SelectLeaderDetector(hearts).(TrickAvoidanceLeader); !ok {
		t.Error("Expected TrickAvoidanceLeader for penalty tricks")
	}

	spades := &Program{
		Phases:   []PhaseInfo{{Tag: PhaseTrick}},
		WinRules: []WinRule{{Kind: WinHighScore, Threshold: 200}},
	}
	if _, ok := SelectLeaderDetector(spades).(TrickLeader); !ok {
		t.Error("Expected TrickLeader for scoring tricks")
	}

	shedding := &Program{
		Phases:   []PhaseInfo{{Tag: PhasePlay}},
		WinRules: []WinRule{{Kind: WinEmptyHand}},
	}
	if _, ok := SelectLeaderDetector(shedding).(HandSizeLeader); !ok {
		t.Error("Expected HandSizeLeader for a shedding game")
	}

	other := &Program{WinRules: []WinRule{{Kind: WinHighScore, Threshold: 50}}}
	if _, ok := SelectLeaderDetector(other).(ScoreLeader); !ok {
		t.Error("Expected ScoreLeader as the fallback")
	}
}

// TestScoreLeaderTies verifies a tie for first reads as no leader.
func TestScoreLeaderTies(t *testing.T) {
	s := GetState(3)
	defer PutState(s)
	s.Players[0].Score = 10
	s.Players[1].Score = 10

	if got := (ScoreLeader{}).Leader(s); got != -1 {
		t.Errorf("Expected no leader on a tie, got %d", got)
	}

	s.Players[1].Score = 20
	if got := (ScoreLeader{}).Leader(s); got != 1 {
		t.Errorf("Expected seat 1 ahead, got %d", got)
	}
}

// TestHandSizeLeaderMargin verifies shedding leads and their margin.
func TestHandSizeLeaderMargin(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Hand = []Card{{Rank: RankTwo, Suit: SuitHearts}}
	s.Players[1].Hand = NewDeck()[:10]

	if got := (HandSizeLeader{}).Leader(s); got != 0 {
		t.Errorf("Expected the short hand to lead, got %d", got)
	}
	m := (HandSizeLeader{}).Margin(s)
	if m <= 0.8 || m > 1 {
		t.Errorf("Expected a wide margin near 0.9, got %f", m)
	}
}

// TestChipLeaderMargin verifies the normalised chip gap.
func TestChipLeaderMargin(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Chips = 600
	s.Players[1].Chips = 400

	if got := (ChipLeader{}).Leader(s); got != 0 {
		t.Errorf("Expected the big stack to lead, got %d", got)
	}
	m := (ChipLeader{}).Margin(s)
	if m < 0.33 || m > 0.34 {
		t.Errorf("Expected a third of the stack as margin, got %f", m)
	}
}

// TestTensionLeadChanges verifies flips are counted and ties ignored.
func TestTensionLeadChanges(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	meter := NewTensionMeter()
	d := ScoreLeader{}

	s.Players[0].Score = 10
	meter.Update(s, d)
	s.Players[1].Score = 20
	meter.Update(s, d)
	s.Players[1].Score = 10 // tie, no change
	meter.Update(s, d)
	s.Players[0].Score = 30
	meter.Update(s, d)

	if meter.LeadChanges != 2 {
		t.Errorf("Expected 2 lead changes, got %d", meter.LeadChanges)
	}
	if meter.ClosestMargin != 0 {
		t.Errorf("Expected the tie to zero the closest margin, got %f", meter.ClosestMargin)
	}
}

// TestTensionDecisiveTurn verifies the decisive point is the start of
// the winner's final run.
func TestTensionDecisiveTurn(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	meter := NewTensionMeter()
	d := ScoreLeader{}

	// Seat 1 leads for three samples, then seat 0 takes over for good.
	s.Players[1].Score = 10
	meter.Update(s, d)
	meter.Update(s, d)
	meter.Update(s, d)
	s.Players[0].Score = 20
	meter.Update(s, d)

	meter.Finalize(0)
	if pct := meter.DecisiveTurnPct(); pct != 0.75 {
		t.Errorf("Expected the lead settled at the last sample, got %f", pct)
	}
	if !meter.WinnerWasTrailing {
		t.Error("Expected a come-from-behind winner")
	}
}

// TestTensionWireToWire verifies an uncontested lead reads as decided
// from the start.
func TestTensionWireToWire(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	meter := NewTensionMeter()
	d := ScoreLeader{}

	s.Players[0].Score = 50
	for i := 0; i < 4; i++ {
		meter.Update(s, d)
	}

	meter.Finalize(0)
	if meter.LeadChanges != 0 {
		t.Errorf("Expected no lead changes, got %d", meter.LeadChanges)
	}
	if pct := meter.DecisiveTurnPct(); pct != 0 {
		t.Errorf("Expected the game decided from the first sample, got %f", pct)
	}
	if meter.WinnerWasTrailing {
		t.Error("Expected a wire-to-wire winner")
	}
}

// TestTensionFinalizeNoWinner verifies draws leave the meter at its
// defaults.
func TestTensionFinalizeNoWinner(t *testing.T) {
	meter := NewTensionMeter()
	meter.Finalize(-1)
	if pct := meter.DecisiveTurnPct(); pct != 0 {
		t.Errorf("Expected no decisive turn for a draw, got %f", pct)
	}
}
