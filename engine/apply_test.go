package engine

import "testing"

// TestWarBattleHighCardTakesAll verifies a completed battle hands both
// flips to the higher card.
func TestWarBattleHighCardTakesAll(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Tableau = append(s.Tableau, []Card{}, []Card{})
	s.Players[0].Hand = []Card{{Rank: RankKing, Suit: SuitClubs}}
	s.Players[1].Hand = []Card{{Rank: RankThree, Suit: SuitHearts}}

	p := playProgram()
	p.TableauMode = TableauWar
	p.Phases[0].PlayTarget = LocationTableau

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})
	if len(s.Tableau[0]) != 1 {
		t.Fatalf("Expected first flip to wait on the pile, got %d", len(s.Tableau[0]))
	}

	s.CurrentPlayer = 1
	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})

	if len(s.Players[0].Hand) != 2 {
		t.Errorf("Expected winner to hold both cards, got %d", len(s.Players[0].Hand))
	}
	if len(s.Players[1].Hand) != 0 {
		t.Errorf("Expected loser to hold nothing, got %d", len(s.Players[1].Hand))
	}
	if len(s.Tableau[0]) != 0 || len(s.Tableau[1]) != 0 {
		t.Error("Expected both piles cleared after the battle")
	}
}

// TestWarBattleTieAlternates verifies tied battles do not always go to
// the same seat.
func TestWarBattleTieAlternates(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Tableau = append(s.Tableau, []Card{}, []Card{})

	p := playProgram()
	p.TableauMode = TableauWar
	p.Phases[0].PlayTarget = LocationTableau

	winners := make([]int, 0, 2)
	for round := 0; round < 2; round++ {
		s.Players[0].Hand = []Card{{Rank: RankSeven, Suit: SuitClubs}}
		s.Players[1].Hand = []Card{{Rank: RankSeven, Suit: SuitHearts}}
		s.CurrentPlayer = 0
		ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})
		s.CurrentPlayer = 1
		ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})

		for i := range s.Players {
			if len(s.Players[i].Hand) == 2 {
				winners = append(winners, i)
				s.Players[i].Hand = s.Players[i].Hand[:0]
			}
		}
	}

	if len(winners) != 2 {
		t.Fatalf("Expected two resolved battles, got %d", len(winners))
	}
	if winners[0] == winners[1] {
		t.Errorf("Expected tie winners to alternate, got %v", winners)
	}
}

// TestMatchRankCapture verifies a matching play captures the tableau
// card, scores two, and sends both cards to the discard.
func TestMatchRankCapture(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Tableau = append(s.Tableau, []Card{{Rank: RankSeven, Suit: SuitDiamonds}})
	s.Players[0].Hand = []Card{{Rank: RankSeven, Suit: SuitClubs}}

	p := playProgram()
	p.TableauMode = TableauMatchRank
	p.Phases[0].PlayTarget = LocationTableau

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})

	if s.Players[0].Score != 2 {
		t.Errorf("Expected capture to score 2, got %d", s.Players[0].Score)
	}
	if len(s.Tableau[0]) != 0 {
		t.Errorf("Expected captured pile empty, got %d", len(s.Tableau[0]))
	}
	if len(s.Discard) != 2 {
		t.Errorf("Expected both cards in discard, got %d", len(s.Discard))
	}
}

// TestMatchRankNoMatchStays verifies a non-matching play just sits on
// the tableau.
func TestMatchRankNoMatchStays(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Tableau = append(s.Tableau, []Card{{Rank: RankSeven, Suit: SuitDiamonds}})
	s.Players[0].Hand = []Card{{Rank: RankNine, Suit: SuitClubs}}

	p := playProgram()
	p.TableauMode = TableauMatchRank
	p.Phases[0].PlayTarget = LocationTableau

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})

	if s.Players[0].Score != 0 {
		t.Errorf("Expected no score, got %d", s.Players[0].Score)
	}
	if len(s.Tableau[0]) != 2 {
		t.Errorf("Expected card stacked on tableau, got %d", len(s.Tableau[0]))
	}
}

// TestSequencePlacement verifies a card extends a matching pile and
// otherwise opens an empty one.
func TestSequencePlacement(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Tableau = append(s.Tableau, []Card{{Rank: RankFive, Suit: SuitClubs}}, []Card{})
	s.Players[0].Hand = []Card{
		{Rank: RankSix, Suit: SuitClubs},
		{Rank: RankNine, Suit: SuitHearts},
	}

	p := playProgram()
	p.TableauMode = TableauSequence
	p.SequenceDir = SequenceAscending
	p.Phases[0].PlayTarget = LocationTableau

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})
	if len(s.Tableau[0]) != 2 {
		t.Fatalf("Expected six to extend the five pile, got %d", len(s.Tableau[0]))
	}

	s.CurrentPlayer = 0
	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})
	if len(s.Tableau[1]) != 1 {
		t.Errorf("Expected nine to open the empty pile, got %d", len(s.Tableau[1]))
	}
}

// TestTrickResolutionWinnerLeads verifies trick winner collection,
// count, and lead.
func TestTrickResolutionWinnerLeads(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Hand = []Card{{Rank: RankTwo, Suit: SuitClubs}}
	s.Players[1].Hand = []Card{{Rank: RankNine, Suit: SuitClubs}, {Rank: RankFour, Suit: SuitHearts}}

	p := &Program{
		PlayerCount: 2,
		Phases: []PhaseInfo{
			{Tag: PhaseTrick, LeadSuitRequired: true, HighCardWins: true, TrumpSuit: SuitAny, BreakingSuit: SuitAny},
		},
	}

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})
	if len(s.Trick) != 1 || s.CurrentPlayer != 1 {
		t.Fatalf("Expected trick open and seat 1 to follow, got %d cards, seat %d",
			len(s.Trick), s.CurrentPlayer)
	}

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})

	if s.Players[1].TricksWon != 1 {
		t.Errorf("Expected seat 1 to take the trick, got %d", s.Players[1].TricksWon)
	}
	if s.CurrentPlayer != 1 || s.TrickLeader != 1 {
		t.Errorf("Expected winner to lead, got seat %d", s.CurrentPlayer)
	}
	if len(s.Trick) != 0 {
		t.Errorf("Expected trick cleared, got %d", len(s.Trick))
	}
	if len(s.Discard) != 2 {
		t.Errorf("Expected trick cards discarded, got %d", len(s.Discard))
	}
}

// TestTrumpBeatsLead verifies trump outranks the led suit regardless
// of value.
func TestTrumpBeatsLead(t *testing.T) {
	ph := &PhaseInfo{Tag: PhaseTrick, HighCardWins: true, TrumpSuit: SuitSpades}

	lead := Card{Rank: RankAce, Suit: SuitHearts}
	smallTrump := Card{Rank: RankTwo, Suit: SuitSpades}
	if !trickBeats(ph, SuitHearts, lead, smallTrump) {
		t.Error("Expected the two of trumps to beat the ace of hearts")
	}
	if trickBeats(ph, SuitHearts, smallTrump, lead) {
		t.Error("Expected the ace of hearts not to beat a trump")
	}

	bigTrump := Card{Rank: RankNine, Suit: SuitSpades}
	if !trickBeats(ph, SuitHearts, smallTrump, bigTrump) {
		t.Error("Expected the higher trump to win")
	}
}

// TestHeartsFallbackScoring verifies the default penalty of one per
// breaking-suit card and thirteen for the queen of spades.
func TestHeartsFallbackScoring(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Hand = []Card{{Rank: RankAce, Suit: SuitHearts}}
	s.Players[1].Hand = []Card{{Rank: RankQueen, Suit: SuitSpades}, {Rank: RankTwo, Suit: SuitClubs}}

	p := &Program{
		PlayerCount: 2,
		Phases: []PhaseInfo{
			{Tag: PhaseTrick, LeadSuitRequired: true, HighCardWins: true, TrumpSuit: SuitAny, BreakingSuit: SuitHearts},
		},
	}

	s.SuitBroken = true
	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})
	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})

	// Seat 0 led the ace of hearts; seat 1 had no heart and dumped the
	// queen of spades. Seat 0 takes the trick: 1 + 13 points.
	if s.Players[0].TricksWon != 1 {
		t.Fatalf("Expected seat 0 to take the trick, got %d tricks", s.Players[0].TricksWon)
	}
	if s.Players[0].Score != 14 {
		t.Errorf("Expected 14 penalty points, got %d", s.Players[0].Score)
	}
}

// TestExplicitTrickScoringOverridesFallback verifies card scoring
// rules replace the default penalties.
func TestExplicitTrickScoringOverridesFallback(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Hand = []Card{{Rank: RankAce, Suit: SuitHearts}}
	s.Players[1].Hand = []Card{{Rank: RankTwo, Suit: SuitHearts}}

	p := &Program{
		PlayerCount: 2,
		Phases: []PhaseInfo{
			{Tag: PhaseTrick, LeadSuitRequired: true, HighCardWins: true, TrumpSuit: SuitAny, BreakingSuit: SuitHearts},
		},
		CardScores: []CardScore{
			{Suit: SuitHearts, Rank: RankAny, Points: 5, Trigger: TriggerTrickWin},
		},
	}

	s.SuitBroken = true
	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})
	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: 0, TargetLoc: LocationTableau})

	if s.Players[0].Score != 10 {
		t.Errorf("Expected 5 points per heart from explicit rules, got %d", s.Players[0].Score)
	}
}

// TestRankSetPlayShedsAllCopies verifies a rank-set move plays every
// copy up to the phase maximum and fires the effect once.
func TestRankSetPlayShedsAllCopies(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Hand = []Card{
		{Rank: RankFour, Suit: SuitHearts},
		{Rank: RankNine, Suit: SuitSpades},
		{Rank: RankFour, Suit: SuitClubs},
	}

	p := playProgram()
	p.Phases[0].MinCards = 2
	p.Phases[0].MaxCards = 4
	p.Effects[RankFour] = &EffectRule{TriggerRank: RankFour, Type: EffectSkipNext, Value: 1}

	ApplyMove(s, p, LegalMove{
		PhaseIndex: 0,
		CardIndex:  MoveRankSetBase - int16(RankFour),
		TargetLoc:  LocationDiscard,
	})

	if len(s.Players[0].Hand) != 1 || s.Players[0].Hand[0].Rank != RankNine {
		t.Errorf("Expected only the nine left, got %v", s.Players[0].Hand)
	}
	if len(s.Discard) != 2 {
		t.Errorf("Expected both fours discarded, got %d", len(s.Discard))
	}
}

// TestClaimChallengeLiarTakesPile verifies a successful challenge
// dumps the discard on the claimant.
func TestClaimChallengeLiarTakesPile(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Discard = append(s.Discard,
		Card{Rank: RankTwo, Suit: SuitHearts},
		Card{Rank: RankSix, Suit: SuitClubs},
	)
	s.PendingClaim = Claim{
		Player: 1,
		Rank:   RankKing,
		Count:  1,
		Cards:  []Card{{Rank: RankSix, Suit: SuitClubs}},
		Active: true,
	}

	p := &Program{PlayerCount: 2, Phases: []PhaseInfo{{Tag: PhaseClaim}}}

	s.CurrentPlayer = 0
	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: MoveChallenge})

	if len(s.Players[1].Hand) != 2 {
		t.Errorf("Expected the liar to take the pile, got %d", len(s.Players[1].Hand))
	}
	if len(s.Discard) != 0 {
		t.Errorf("Expected discard emptied, got %d", len(s.Discard))
	}
	if s.PendingClaim.Active {
		t.Error("Expected the claim to be resolved")
	}
}

// TestClaimChallengeWrongChallengerTakesPile verifies a failed
// challenge punishes the challenger instead.
func TestClaimChallengeWrongChallengerTakesPile(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Discard = append(s.Discard, Card{Rank: RankKing, Suit: SuitClubs})
	s.PendingClaim = Claim{
		Player: 1,
		Rank:   RankKing,
		Count:  1,
		Cards:  []Card{{Rank: RankKing, Suit: SuitClubs}},
		Active: true,
	}

	p := &Program{PlayerCount: 2, Phases: []PhaseInfo{{Tag: PhaseClaim}}}

	s.CurrentPlayer = 0
	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: MoveChallenge})

	if len(s.Players[0].Hand) != 1 {
		t.Errorf("Expected the challenger to take the pile, got %d", len(s.Players[0].Hand))
	}
}

// TestClaimAcceptClears verifies accepting a claim leaves cards where
// they are.
func TestClaimAcceptClears(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Discard = append(s.Discard, Card{Rank: RankSix, Suit: SuitClubs})
	s.PendingClaim = Claim{
		Player: 1,
		Rank:   RankKing,
		Count:  1,
		Cards:  []Card{{Rank: RankSix, Suit: SuitClubs}},
		Active: true,
	}

	p := &Program{PlayerCount: 2, Phases: []PhaseInfo{{Tag: PhaseClaim}}}

	ApplyMove(s, p, LegalMove{PhaseIndex: 0, CardIndex: MoveAccept})

	if s.PendingClaim.Active {
		t.Error("Expected claim cleared after acceptance")
	}
	if len(s.Discard) != 1 {
		t.Errorf("Expected discard untouched, got %d", len(s.Discard))
	}
}

// TestClaimedRankCycles verifies the asserted rank follows the turn
// counter.
func TestClaimedRankCycles(t *testing.T) {
	if ClaimedRank(0) != 0 || ClaimedRank(13) != 0 {
		t.Error("Expected rank cycle to restart every 13 turns")
	}
	if ClaimedRank(5) != 5 {
		t.Errorf("Expected rank 5 on turn 5, got %d", ClaimedRank(5))
	}
}

// TestHandEndScoringChargesHeldCards verifies hand-end rules fire once
// against remaining hands.
func TestHandEndScoringChargesHeldCards(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Hand = []Card{{Rank: RankAce, Suit: SuitSpades}}
	s.Players[1].Hand = []Card{{Rank: RankTwo, Suit: SuitHearts}}

	p := &Program{
		PlayerCount: 2,
		CardScores: []CardScore{
			{Suit: SuitAny, Rank: RankAce, Points: -15, Trigger: TriggerHandEnd},
		},
	}

	if !ApplyHandEndScoring(s, p) {
		t.Fatal("Expected hand-end scoring to apply")
	}
	if s.Players[0].Score != -15 {
		t.Errorf("Expected -15 for the held ace, got %d", s.Players[0].Score)
	}
	if s.Players[1].Score != 0 {
		t.Errorf("Expected no charge for the two, got %d", s.Players[1].Score)
	}
	if ApplyHandEndScoring(s, p) {
		t.Error("Expected second application to be a no-op")
	}
}
