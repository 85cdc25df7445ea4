package engine

import "testing"

func spadesContract() *ContractScoring {
	return &ContractScoring{
		PointsPerTrickBid: 10,
		OvertrickPoints:   1,
		FailedPenalty:     10,
		NilBonus:          100,
		NilPenalty:        100,
		BagLimit:          10,
		BagPenalty:        100,
	}
}

// TestContractMadeWithOvertricks verifies made contracts pay per bid
// trick plus bags.
func TestContractMadeWithOvertricks(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Bid = 3
	s.Players[0].TricksWon = 5
	s.Players[1].Bid = 4
	s.Players[1].TricksWon = 2

	EvaluateContracts(s, spadesContract())

	if s.Players[0].Score != 32 {
		t.Errorf("Expected 30 plus 2 bags, got %d", s.Players[0].Score)
	}
	if s.Players[0].Bags != 2 {
		t.Errorf("Expected 2 bags recorded, got %d", s.Players[0].Bags)
	}
	if s.Players[1].Score != -40 {
		t.Errorf("Expected failed contract at -40, got %d", s.Players[1].Score)
	}
}

// TestContractNilBids verifies nil bids pay the bonus only on zero
// tricks.
func TestContractNilBids(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Bid = 0
	s.Players[0].NilBid = true
	s.Players[0].TricksWon = 0
	s.Players[1].Bid = 0
	s.Players[1].NilBid = true
	s.Players[1].TricksWon = 1

	EvaluateContracts(s, spadesContract())

	if s.Players[0].Score != 100 {
		t.Errorf("Expected nil bonus, got %d", s.Players[0].Score)
	}
	if s.Players[1].Score != -100 {
		t.Errorf("Expected broken nil penalty, got %d", s.Players[1].Score)
	}
}

// TestContractBagPenalty verifies accumulated bags trade for a penalty
// at the limit.
func TestContractBagPenalty(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Bid = 1
	s.Players[0].TricksWon = 4
	s.Players[0].Bags = 8

	EvaluateContracts(s, spadesContract())

	// 10 for the bid, 3 overtrick points, then 8+3 bags crosses the
	// limit of 10 for a -100.
	if s.Players[0].Score != -87 {
		t.Errorf("Expected -87 after the bag penalty, got %d", s.Players[0].Score)
	}
	if s.Players[0].Bags != 1 {
		t.Errorf("Expected 1 bag carried over, got %d", s.Players[0].Bags)
	}
}

// TestContractAppliesOnce verifies settlement is idempotent.
func TestContractAppliesOnce(t *testing.T) {
	s := GetState(2)
	defer PutState(s)
	s.Players[0].Bid = 2
	s.Players[0].TricksWon = 2

	sc := spadesContract()
	EvaluateContracts(s, sc)
	EvaluateContracts(s, sc)

	if s.Players[0].Score != 20 {
		t.Errorf("Expected a single settlement of 20, got %d", s.Players[0].Score)
	}
}

// TestTeamContractPoolsBids verifies partners settle one combined
// contract and share the score.
func TestTeamContractPoolsBids(t *testing.T) {
	s := GetState(4)
	defer PutState(s)
	s.TeamOf = []int8{0, 1, 0, 1}
	s.TeamScores = make([]int32, 2)
	s.TeamBags = make([]int32, 2)

	// Team 0 bids 2+3 and takes 6 tricks; team 1 bids 4+1 and takes 7.
	s.Players[0].Bid = 2
	s.Players[0].TricksWon = 2
	s.Players[2].Bid = 3
	s.Players[2].TricksWon = 4
	s.Players[1].Bid = 4
	s.Players[1].TricksWon = 5
	s.Players[3].Bid = 1
	s.Players[3].TricksWon = 2

	EvaluateContracts(s, spadesContract())

	// Team 0: contract 5, tricks 6 -> 50 + 1 bag point.
	if s.TeamScores[0] != 51 {
		t.Errorf("Expected team 0 at 51, got %d", s.TeamScores[0])
	}
	if s.Players[0].Score != 51 || s.Players[2].Score != 51 {
		t.Errorf("Expected partners to share 51, got %d and %d",
			s.Players[0].Score, s.Players[2].Score)
	}
	// Team 1: contract 5, tricks 7 -> 50 + 2.
	if s.TeamScores[1] != 52 {
		t.Errorf("Expected team 1 at 52, got %d", s.TeamScores[1])
	}
	if s.TeamBags[0] != 1 || s.TeamBags[1] != 2 {
		t.Errorf("Expected team bags 1 and 2, got %d and %d",
			s.TeamBags[0], s.TeamBags[1])
	}
}

// TestTeamNilSettlesAlone verifies a nil bid inside a team settles for
// that player while the partner carries the contract.
func TestTeamNilSettlesAlone(t *testing.T) {
	s := GetState(4)
	defer PutState(s)
	s.TeamOf = []int8{0, 1, 0, 1}
	s.TeamScores = make([]int32, 2)
	s.TeamBags = make([]int32, 2)

	s.Players[0].Bid = 0
	s.Players[0].NilBid = true
	s.Players[0].TricksWon = 0
	s.Players[2].Bid = 4
	s.Players[2].TricksWon = 4

	EvaluateContracts(s, spadesContract())

	// Nil bonus 100 plus the made contract 40, both team-wide.
	if s.TeamScores[0] != 140 {
		t.Errorf("Expected team 0 at 140, got %d", s.TeamScores[0])
	}
	if s.Players[0].Score != s.Players[2].Score {
		t.Errorf("Expected partners level, got %d and %d",
			s.Players[0].Score, s.Players[2].Score)
	}
}

// TestTeamFailedContract verifies a combined miss charges the failure
// penalty once.
func TestTeamFailedContract(t *testing.T) {
	s := GetState(4)
	defer PutState(s)
	s.TeamOf = []int8{0, 1, 0, 1}
	s.TeamScores = make([]int32, 2)
	s.TeamBags = make([]int32, 2)

	s.Players[0].Bid = 4
	s.Players[0].TricksWon = 1
	s.Players[2].Bid = 3
	s.Players[2].TricksWon = 2

	EvaluateContracts(s, spadesContract())

	if s.TeamScores[0] != -70 {
		t.Errorf("Expected -70 for the failed seven bid, got %d", s.TeamScores[0])
	}
}

// TestContractPhaseLookup verifies the bidding phase carries the
// contract parameters.
func TestContractPhaseLookup(t *testing.T) {
	p := &Program{
		Phases: []PhaseInfo{
			{Tag: PhaseDraw},
			{Tag: PhaseBidding, Contract: ContractScoring{PointsPerTrickBid: 10}},
		},
	}
	ph := ContractPhase(p)
	if ph == nil || ph.Contract.PointsPerTrickBid != 10 {
		t.Error("Expected the bidding phase with its contract scoring")
	}
	if ContractPhase(&Program{}) != nil {
		t.Error("Expected nil without a bidding phase")
	}
}
