package genome

// Seed genomes for the initial population. Each is a hand-written
// encoding of a known card game, kept simple enough to survive the
// structural gate while still exercising a distinct mechanic. Seeds
// carry stable IDs so lineage queries can tell evolved descendants
// from their hand-written ancestors.

// CreateWarGenome encodes War: flip, compare, winner takes the pile.
// Zero meaningful decisions, which makes it the fitness floor.
func CreateWarGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-war",
		Setup: SetupRules{
			CardsPerPlayer: 26,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:   LocationTableau,
					MinCards: 1,
					MaxCards: 1,
				},
			},
			MaxTurns:    2000,
			TableauMode: TableauWar,
		},
		WinConditions: []WinCondition{
			{Type: WinCaptureAll},
		},
		PlayerCount: 2,
	}
}

// CreateBettingWarGenome is War with a chip round in front of every
// flip. The cards are still pure luck; the betting is not.
func CreateBettingWarGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-betting-war",
		Setup: SetupRules{
			CardsPerPlayer: 26,
			StartingChips:  500,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&BettingPhase{
					MinBet:    10,
					MaxRaises: 2,
				},
				&PlayPhase{
					Target:   LocationTableau,
					MinCards: 1,
					MaxCards: 1,
				},
			},
			MaxTurns:    2000,
			TableauMode: TableauWar,
		},
		WinConditions: []WinCondition{
			{Type: WinCaptureAll},
		},
		HandEvaluation: &HandEvaluation{
			Method: HandEvalHighCard,
		},
		PlayerCount: 2,
	}
}

// CreateHeartsGenome encodes four-player Hearts: follow suit, hearts
// stay unled until broken, every heart taken costs a point and the
// queen of spades costs thirteen. Lowest score wins the hand.
func CreateHeartsGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-hearts",
		Setup: SetupRules{
			CardsPerPlayer: 13,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&TrickPhase{
					LeadSuitRequired: true,
					TrumpSuit:        SuitAny,
					HighCardWins:     true,
					BreakingSuit:     SuitHearts,
				},
			},
			MaxTurns:     200,
			IsTrickBased: true,
		},
		WinConditions: []WinCondition{
			{Type: WinLowScore, Threshold: 100},
			{Type: WinAllHandsEmpty},
		},
		CardScoring: []CardScoringRule{
			{Suit: SuitHearts, Rank: RankAny, Points: 1, Trigger: TriggerTrickWin},
			{Suit: SuitSpades, Rank: RankQueen, Points: 13, Trigger: TriggerTrickWin},
		},
		PlayerCount: 4,
	}
}

// CreateScotchWhistGenome encodes Scotch Whist, also called Catch the
// Ten: spades trump, and the trump honours carry the points. The full
// deal lets the capture count settle the hand.
func CreateScotchWhistGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-scotch-whist",
		Setup: SetupRules{
			CardsPerPlayer: 13,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&TrickPhase{
					LeadSuitRequired: true,
					TrumpSuit:        SuitSpades,
					HighCardWins:     true,
					BreakingSuit:     SuitAny,
				},
			},
			MaxTurns:     200,
			IsTrickBased: true,
		},
		WinConditions: []WinCondition{
			{Type: WinMostCaptured},
			{Type: WinAllHandsEmpty},
		},
		CardScoring: []CardScoringRule{
			{Suit: SuitSpades, Rank: RankJack, Points: 11, Trigger: TriggerTrickWin},
			{Suit: SuitSpades, Rank: RankTen, Points: 10, Trigger: TriggerTrickWin},
			{Suit: SuitSpades, Rank: RankAce, Points: 4, Trigger: TriggerTrickWin},
			{Suit: SuitSpades, Rank: RankKing, Points: 3, Trigger: TriggerTrickWin},
			{Suit: SuitSpades, Rank: RankQueen, Points: 2, Trigger: TriggerTrickWin},
		},
		PlayerCount: 4,
	}
}

// CreateKnockoutWhistGenome encodes a whist hand with hearts trump and
// a point per card taken. Dealt to the full deck so the game ends on
// capture count rather than the empty-hand fallback.
func CreateKnockoutWhistGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-knockout-whist",
		Setup: SetupRules{
			CardsPerPlayer: 13,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&TrickPhase{
					LeadSuitRequired: true,
					TrumpSuit:        SuitHearts,
					HighCardWins:     true,
					BreakingSuit:     SuitAny,
				},
			},
			MaxTurns:     200,
			IsTrickBased: true,
		},
		WinConditions: []WinCondition{
			{Type: WinMostCaptured},
			{Type: WinAllHandsEmpty},
		},
		CardScoring: []CardScoringRule{
			{Suit: SuitAny, Rank: RankAny, Points: 1, Trigger: TriggerTrickWin},
		},
		PlayerCount: 4,
	}
}

// spadesContract is the classic Spades bidding contract: ten a trick,
// one per overtrick, sandbagging at ten bags, nil worth a hundred
// either way.
func spadesContract() *BiddingPhase {
	return &BiddingPhase{
		MinBid:            1,
		MaxBid:            13,
		AllowNil:          true,
		PointsPerTrickBid: 10,
		OvertrickPoints:   1,
		FailedPenalty:     10,
		NilBonus:          100,
		NilPenalty:        100,
		BagLimit:          10,
		BagPenalty:        100,
	}
}

// CreateSpadesGenome encodes cutthroat Spades: bid your tricks, spades
// trump and stay unled until broken, contracts settle when the hands
// run out.
func CreateSpadesGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-spades",
		Setup: SetupRules{
			CardsPerPlayer: 13,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				spadesContract(),
				&TrickPhase{
					LeadSuitRequired: true,
					TrumpSuit:        SuitSpades,
					HighCardWins:     true,
					BreakingSuit:     SuitSpades,
				},
			},
			MaxTurns:     200,
			IsTrickBased: true,
		},
		WinConditions: []WinCondition{
			{Type: WinFirstToScore, Threshold: 500},
			{Type: WinAllHandsEmpty},
		},
		PlayerCount: 4,
	}
}

// CreatePartnershipSpadesGenome is Spades in fixed partnerships,
// seats 0 and 2 against 1 and 3, with team contracts.
func CreatePartnershipSpadesGenome() *GameGenome {
	g := CreateSpadesGenome()
	g.ID = "seed-partnership-spades"
	g.Teams = &TeamConfig{
		Enabled: true,
		Teams:   [][]int{{0, 2}, {1, 3}},
	}
	return g
}

// CreateCrazyEightsGenome encodes Crazy Eights: match the discard by
// rank or suit, eights go on anything and make the pile wild, first
// empty hand wins. The stock is always available as a fallback.
func CreateCrazyEightsGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-crazy-eights",
		Setup: SetupRules{
			CardsPerPlayer: 10,
			DealToTableau:  1,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{
					Source:    LocationDeck,
					Count:     1,
					Mandatory: true,
				},
				&PlayPhase{
					Target:       LocationDiscard,
					MinCards:     1,
					MaxCards:     1,
					Mandatory:    true,
					PassIfUnable: true,
					ValidPlayCondition: &Condition{
						OpCode: OpOr,
						Children: []Condition{
							{OpCode: OpCheckCardMatchesRank, RefLoc: LocationDiscard},
							{OpCode: OpCheckCardMatchesSuit, RefLoc: LocationDiscard},
							{OpCode: OpCheckCardRank, Operator: CmpEQ, Value: int32(RankEight)},
						},
					},
				},
			},
			MaxTurns: 500,
		},
		WinConditions: []WinCondition{
			{Type: WinEmptyHand},
		},
		SpecialEffects: []SpecialEffect{
			{TriggerRank: RankEight, Effect: EffectWild, Target: TargetSelf, Value: 1},
		},
		PlayerCount: 2,
	}
}

// CreateOldMaidGenome encodes Old Maid: one card short of an even
// deal, draw from your opponent, shed what you can, empty hand wins.
func CreateOldMaidGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-old-maid",
		Setup: SetupRules{
			CardsPerPlayer: 13,
			DealToTableau:  1,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{
					Source:    LocationOpponentHand,
					Count:     1,
					Mandatory: true,
				},
				&DiscardPhase{
					Target:    LocationDiscard,
					Count:     2,
					Mandatory: false,
				},
			},
			MaxTurns: 300,
		},
		WinConditions: []WinCondition{
			{Type: WinEmptyHand},
		},
		PlayerCount: 2,
	}
}

// CreatePresidentGenome encodes the climbing core of President: each
// play must at least match the pile top, pass when it cannot, first
// empty hand wins.
func CreatePresidentGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-president",
		Setup: SetupRules{
			CardsPerPlayer: 13,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:       LocationDiscard,
					MinCards:     1,
					MaxCards:     1,
					Mandatory:    true,
					PassIfUnable: true,
					ValidPlayCondition: &Condition{
						OpCode: OpCheckCardBeatsTop,
						RefLoc: LocationDiscard,
					},
				},
			},
			MaxTurns: 300,
		},
		WinConditions: []WinCondition{
			{Type: WinEmptyHand},
		},
		PlayerCount: 4,
	}
}

// CreateFanTanGenome encodes Fan Tan: four sequence piles built up and
// down in suit, play if you can, first empty hand wins.
func CreateFanTanGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-fan-tan",
		Setup: SetupRules{
			CardsPerPlayer: 10,
			TableauSize:    4,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:       LocationTableau,
					MinCards:     1,
					MaxCards:     1,
					Mandatory:    true,
					PassIfUnable: true,
				},
				&DrawPhase{
					Source:    LocationDeck,
					Count:     1,
					Mandatory: false,
				},
			},
			MaxTurns:          150,
			TableauMode:       TableauSequence,
			SequenceDirection: SequenceBoth,
		},
		WinConditions: []WinCondition{
			{Type: WinEmptyHand},
		},
		PlayerCount: 4,
	}
}

// CreateUnoStyleGenome encodes an Uno-like shedding game: match the
// pile by rank or suit, twos punish, jacks skip, queens reverse.
func CreateUnoStyleGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-uno-style",
		Setup: SetupRules{
			CardsPerPlayer: 7,
			DealToTableau:  1,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:       LocationDiscard,
					MinCards:     1,
					MaxCards:     1,
					Mandatory:    false,
					PassIfUnable: true,
					ValidPlayCondition: &Condition{
						OpCode: OpOr,
						Children: []Condition{
							{OpCode: OpCheckCardMatchesRank, RefLoc: LocationDiscard},
							{OpCode: OpCheckCardMatchesSuit, RefLoc: LocationDiscard},
						},
					},
				},
				&DrawPhase{
					Source:    LocationDeck,
					Count:     1,
					Mandatory: true,
				},
			},
			MaxTurns: 500,
		},
		WinConditions: []WinCondition{
			{Type: WinEmptyHand},
		},
		SpecialEffects: []SpecialEffect{
			{TriggerRank: RankTwo, Effect: EffectDrawCards, Target: TargetNextPlayer, Value: 2},
			{TriggerRank: RankJack, Effect: EffectSkipNext, Target: TargetNextPlayer, Value: 1},
			{TriggerRank: RankQueen, Effect: EffectReverse, Target: TargetSelf, Value: 1},
		},
		PlayerCount: 4,
	}
}

// CreateGinRummyGenome encodes a stripped Gin Rummy loop: draw, lay
// off what you can, discard, race to an empty hand.
func CreateGinRummyGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-gin-rummy",
		Setup: SetupRules{
			CardsPerPlayer: 10,
			DealToTableau:  1,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{
					Source:    LocationDeck,
					Count:     1,
					Mandatory: true,
				},
				&PlayPhase{
					Target:    LocationTableau,
					MinCards:  0,
					MaxCards:  10,
					Mandatory: false,
				},
				&DiscardPhase{
					Target:    LocationDiscard,
					Count:     1,
					Mandatory: true,
				},
			},
			MaxTurns: 100,
		},
		WinConditions: []WinCondition{
			{Type: WinEmptyHand},
		},
		PlayerCount: 2,
	}
}

// CreateGoFishGenome encodes Go Fish by its endgame: draw every turn,
// table pairs and books as rank sets, a point a card when a set goes
// down, first to ten points or an empty hand.
func CreateGoFishGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-go-fish",
		Setup: SetupRules{
			CardsPerPlayer: 10,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{
					Source:    LocationDeck,
					Count:     1,
					Mandatory: true,
				},
				&PlayPhase{
					Target:   LocationTableau,
					MinCards: 2,
					MaxCards: 4,
				},
				&PlayPhase{
					Target:   LocationDiscard,
					MinCards: 4,
					MaxCards: 4,
				},
				&DiscardPhase{
					Target:    LocationDiscard,
					Count:     1,
					Mandatory: false,
				},
			},
			MaxTurns: 200,
		},
		WinConditions: []WinCondition{
			{Type: WinHighScore, Threshold: 10},
			{Type: WinEmptyHand},
		},
		CardScoring: []CardScoringRule{
			{Suit: SuitAny, Rank: RankAny, Points: 1, Trigger: TriggerSetComplete},
		},
		PlayerCount: 2,
	}
}

// standardPokerPatterns is the usual poker ladder, royal flush down to
// high card. Emission order follows priority, so the strongest match
// decides a showdown.
func standardPokerPatterns() []HandPattern {
	return []HandPattern{
		{Name: "Royal Flush", Priority: 100, RequiredCount: 5, SameSuitCount: 5, SequenceLength: 5,
			RequiredRanks: []Rank{RankTen, RankJack, RankQueen, RankKing, RankAce}},
		{Name: "Straight Flush", Priority: 90, RequiredCount: 5, SameSuitCount: 5, SequenceLength: 5},
		{Name: "Four of a Kind", Priority: 80, RequiredCount: 5, SameRankGroups: []int{4}},
		{Name: "Full House", Priority: 70, RequiredCount: 5, SameRankGroups: []int{3, 2}},
		{Name: "Flush", Priority: 60, RequiredCount: 5, SameSuitCount: 5},
		{Name: "Straight", Priority: 50, RequiredCount: 5, SequenceLength: 5, SequenceWrap: true},
		{Name: "Three of a Kind", Priority: 40, RequiredCount: 5, SameRankGroups: []int{3}},
		{Name: "Two Pair", Priority: 30, RequiredCount: 5, SameRankGroups: []int{2, 2}},
		{Name: "One Pair", Priority: 20, RequiredCount: 5, SameRankGroups: []int{2}},
		{Name: "High Card", Priority: 10, RequiredCount: 5},
	}
}

// CreateSimplePokerGenome encodes five-card showdown poker: one
// betting round, best hand takes the pot.
func CreateSimplePokerGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-simple-poker",
		Setup: SetupRules{
			CardsPerPlayer: 5,
			StartingChips:  1000,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&BettingPhase{
					MinBet:    10,
					MaxRaises: 3,
				},
			},
			MaxTurns: 10,
		},
		WinConditions: []WinCondition{
			{Type: WinBestHand},
		},
		HandEvaluation: &HandEvaluation{
			Method:   HandEvalPatternMatch,
			Patterns: standardPokerPatterns(),
		},
		PlayerCount: 2,
	}
}

// CreateCheatGenome encodes Cheat: every play is a face-down claim the
// opponent may call. Liars and wrong accusers eat the pile.
func CreateCheatGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-cheat",
		Setup: SetupRules{
			CardsPerPlayer: 26,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&ClaimPhase{},
			},
			MaxTurns: 2000,
		},
		WinConditions: []WinCondition{
			{Type: WinEmptyHand},
		},
		PlayerCount: 2,
	}
}

// CreateScopaGenome encodes the capture core of Scopa: four table
// cards, play onto the table and take any rank match, refill a spent
// hand from the stock, most captures wins.
func CreateScopaGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-scopa",
		Setup: SetupRules{
			CardsPerPlayer: 3,
			DealToTableau:  4,
			TableauSize:    4,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&PlayPhase{
					Target:   LocationTableau,
					MinCards: 1,
					MaxCards: 1,
				},
				&DrawPhase{
					Source:    LocationDeck,
					Count:     3,
					Mandatory: true,
					Condition: &Condition{
						OpCode:   OpCheckHandSize,
						Operator: CmpEQ,
						Value:    0,
					},
				},
			},
			MaxTurns:    100,
			TableauMode: TableauMatchRank,
		},
		WinConditions: []WinCondition{
			{Type: WinMostCaptured},
		},
		PlayerCount: 2,
	}
}

// CreateDrawPokerGenome is poker with a discard-and-draw written into
// the turn, betting up front at a stiffer stake.
func CreateDrawPokerGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-draw-poker",
		Setup: SetupRules{
			CardsPerPlayer: 5,
			StartingChips:  1000,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&BettingPhase{
					MinBet:    20,
					MaxRaises: 3,
				},
				&DiscardPhase{
					Target:    LocationDiscard,
					Count:     3,
					Mandatory: false,
				},
				&DrawPhase{
					Source:    LocationDeck,
					Count:     3,
					Mandatory: false,
					Condition: &Condition{
						OpCode:   OpCheckHandSize,
						Operator: CmpLT,
						Value:    5,
					},
				},
			},
			MaxTurns: 20,
		},
		WinConditions: []WinCondition{
			{Type: WinBestHand},
		},
		HandEvaluation: &HandEvaluation{
			Method:   HandEvalPatternMatch,
			Patterns: standardPokerPatterns(),
		},
		PlayerCount: 2,
	}
}

// CreateBlackjackGenome encodes twenty-one as a draw-or-stand race:
// hit as long as you dare, stand to lock your total, best unbusted
// hand wins the showdown.
func CreateBlackjackGenome() *GameGenome {
	return &GameGenome{
		ID: "seed-blackjack",
		Setup: SetupRules{
			CardsPerPlayer: 2,
		},
		TurnStructure: TurnStructure{
			Phases: []Phase{
				&DrawPhase{
					Source:    LocationDeck,
					Count:     1,
					Mandatory: false,
				},
			},
			MaxTurns: 100,
		},
		WinConditions: []WinCondition{
			{Type: WinBestHand},
		},
		HandEvaluation: &HandEvaluation{
			Method:        HandEvalPointTotal,
			TargetValue:   21,
			BustThreshold: 21,
			CardValues: []CardValue{
				{Rank: RankAce, Value: 11, AltValue: 1},
				{Rank: RankTwo, Value: 2},
				{Rank: RankThree, Value: 3},
				{Rank: RankFour, Value: 4},
				{Rank: RankFive, Value: 5},
				{Rank: RankSix, Value: 6},
				{Rank: RankSeven, Value: 7},
				{Rank: RankEight, Value: 8},
				{Rank: RankNine, Value: 9},
				{Rank: RankTen, Value: 10},
				{Rank: RankJack, Value: 10},
				{Rank: RankQueen, Value: 10},
				{Rank: RankKing, Value: 10},
			},
		},
		PlayerCount: 2,
	}
}

// GetSeedGenomes returns the nineteen hand-written games the first
// generation starts from:
//   - Luck-bound: War, Betting War
//   - Trick-taking: Hearts, Scotch Whist, Knockout Whist, Spades,
//     Partnership Spades
//   - Shedding and matching: Crazy Eights, Old Maid, President,
//     Fan Tan, Uno-style
//   - Set collection: Gin Rummy, Go Fish
//   - Showdowns: Simple Poker, Draw Poker, Blackjack
//   - Capture and bluff: Scopa, Cheat
func GetSeedGenomes() []*GameGenome {
	return []*GameGenome{
		CreateWarGenome(),
		CreateBettingWarGenome(),
		CreateHeartsGenome(),
		CreateScotchWhistGenome(),
		CreateKnockoutWhistGenome(),
		CreateSpadesGenome(),
		CreatePartnershipSpadesGenome(),
		CreateCrazyEightsGenome(),
		CreateOldMaidGenome(),
		CreatePresidentGenome(),
		CreateFanTanGenome(),
		CreateUnoStyleGenome(),
		CreateGinRummyGenome(),
		CreateGoFishGenome(),
		CreateSimplePokerGenome(),
		CreateCheatGenome(),
		CreateScopaGenome(),
		CreateDrawPokerGenome(),
		CreateBlackjackGenome(),
	}
}
