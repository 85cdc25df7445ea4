package operators

import (
	"math/rand"
	"testing"

	"github.com/signalnine/darwindeck/gosim/genome"
)

// chipOrphanMutation always produces an incoherent candidate: chips
// with no betting phase to spend them in.
type chipOrphanMutation struct {
	BaseMutation
}

func newChipOrphanMutation() *chipOrphanMutation {
	return &chipOrphanMutation{
		BaseMutation: BaseMutation{probability: 1.0, name: "ChipOrphan"},
	}
}

func (m *chipOrphanMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()
	clone.Setup.StartingChips = 500
	return clone
}

// turnStripMutation always produces a structurally invalid candidate.
type turnStripMutation struct {
	BaseMutation
}

func newTurnStripMutation() *turnStripMutation {
	return &turnStripMutation{
		BaseMutation: BaseMutation{probability: 1.0, name: "TurnStrip"},
	}
}

func (m *turnStripMutation) Mutate(g *genome.GameGenome, rng *rand.Rand) *genome.GameGenome {
	clone := g.Clone()
	clone.TurnStructure.MaxTurns = 0
	return clone
}

func TestRegistryRejectsUnplayableCandidates(t *testing.T) {
	registry := NewRegistry()
	registry.Register(newChipOrphanMutation())
	registry.Register(newTurnStripMutation())

	original := genome.CreateWarGenome()
	rng := rand.New(rand.NewSource(1))

	mutated := registry.ApplyAll(original, rng)

	if mutated.Setup.StartingChips != 0 {
		t.Errorf("incoherent candidate survived the gate: chips = %d", mutated.Setup.StartingChips)
	}
	if mutated.TurnStructure.MaxTurns != original.TurnStructure.MaxTurns {
		t.Errorf("invalid candidate survived the gate: max_turns = %d", mutated.TurnStructure.MaxTurns)
	}
}

func TestRegistryAppliesValidCandidates(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewMaxTurnsMutation(1.0))

	original := genome.CreateWarGenome()
	rng := rand.New(rand.NewSource(7))

	mutated := registry.ApplyAll(original, rng)

	if mutated == original {
		t.Fatal("expected a mutated copy, got the input back")
	}
	if !genome.IsValid(mutated) || !Coherent(mutated) {
		t.Error("registry let an unplayable genome through")
	}
}

func TestCardsPerPlayerStaysInsideDeck(t *testing.T) {
	mutation := NewCardsPerPlayerMutation(1.0)

	original := genome.CreateHeartsGenome() // four seats, thirteen each
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		mutated := mutation.Mutate(original, rng)

		if mutated.Setup.CardsPerPlayer < 1 {
			t.Fatalf("seed %d: hand size dropped to %d", seed, mutated.Setup.CardsPerPlayer)
		}
		if mutated.Setup.CardsPerPlayer*mutated.Players() > genome.StandardDeckSize {
			t.Fatalf("seed %d: deal outgrew the deck: %d per seat",
				seed, mutated.Setup.CardsPerPlayer)
		}
	}
}

func TestMaxTurnsMutation(t *testing.T) {
	mutation := NewMaxTurnsMutation(1.0)

	original := genome.CreateWarGenome()
	rng := rand.New(rand.NewSource(12345))

	mutated := mutation.Mutate(original, rng)

	if mutated.TurnStructure.MaxTurns < 10 || mutated.TurnStructure.MaxTurns > 2000 {
		t.Errorf("max turns out of range: %d", mutated.TurnStructure.MaxTurns)
	}
}

func TestStartingChipsMutationDealsInBetting(t *testing.T) {
	mutation := NewStartingChipsMutation(1.0)

	original := genome.CreateWarGenome() // chipless, no betting
	rng := rand.New(rand.NewSource(12345))

	mutated := mutation.Mutate(original, rng)

	if mutated.Setup.StartingChips == 0 {
		t.Fatal("expected chips to be granted from zero")
	}
	if !mutated.HasPhase(genome.PhaseTypeBetting) {
		t.Error("chips granted without a betting phase to spend them in")
	}
	if !genome.IsValid(mutated) || !Coherent(mutated) {
		t.Errorf("zero-to-chips mutation produced an unplayable genome: %v %v",
			genome.ValidateGenome(mutated), CoherenceIssues(mutated))
	}
}

func TestStartingChipsRescaleKeepsStakesLegal(t *testing.T) {
	mutation := NewStartingChipsMutation(1.0)

	original := genome.CreateBettingWarGenome()
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		mutated := mutation.Mutate(original, rng)

		if errs := genome.ValidateGenome(mutated); len(errs) > 0 {
			t.Fatalf("seed %d: rescaled chips broke validation: %v", seed, errs)
		}
	}
}

func TestRemoveBettingZeroesChips(t *testing.T) {
	mutation := NewRemoveBettingMutation(1.0)

	original := genome.CreateBettingWarGenome()
	rng := rand.New(rand.NewSource(3))

	mutated := mutation.Mutate(original, rng)

	if mutated.HasPhase(genome.PhaseTypeBetting) {
		t.Fatal("betting phase survived removal")
	}
	if mutated.Setup.StartingChips != 0 {
		t.Errorf("chips left behind after the last betting phase: %d", mutated.Setup.StartingChips)
	}
	if !Coherent(mutated) {
		t.Errorf("betting removal left an incoherent genome: %v", CoherenceIssues(mutated))
	}
}

func TestTeamPlayMutationFourSeatsOnly(t *testing.T) {
	mutation := NewTeamPlayMutation(1.0)
	rng := rand.New(rand.NewSource(5))

	twoSeat := genome.CreateWarGenome()
	if mutated := mutation.Mutate(twoSeat, rng); mutated.Teams != nil {
		t.Error("partnerships enabled at two seats")
	}

	fourSeat := genome.CreateHeartsGenome()
	mutated := mutation.Mutate(fourSeat, rng)
	if mutated.Teams == nil || !mutated.Teams.Enabled {
		t.Fatal("expected partnerships to be enabled at four seats")
	}
	if len(mutated.Teams.Teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(mutated.Teams.Teams))
	}
	seen := make(map[int]bool)
	for _, team := range mutated.Teams.Teams {
		if len(team) != 2 {
			t.Errorf("expected 2 seats per team, got %d", len(team))
		}
		for _, seat := range team {
			seen[seat] = true
		}
	}
	for seat := 0; seat < 4; seat++ {
		if !seen[seat] {
			t.Errorf("seat %d missing from the partnership", seat)
		}
	}
	if !genome.IsValid(mutated) {
		t.Errorf("partnership mutation broke validation: %v", genome.ValidateGenome(mutated))
	}
}

func TestTeamPlayMutationOnTeams(t *testing.T) {
	mutation := NewTeamPlayMutation(1.0)

	original := genome.CreatePartnershipSpadesGenome()
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		mutated := mutation.Mutate(original, rng)

		if errs := genome.ValidateGenome(mutated); len(errs) > 0 {
			t.Fatalf("seed %d: team mutation broke validation: %v", seed, errs)
		}
	}
}

func TestAddDrawPhaseMutation(t *testing.T) {
	mutation := NewAddDrawPhaseMutation(1.0)

	original := genome.CreateWarGenome()
	originalPhaseCount := len(original.TurnStructure.Phases)
	rng := rand.New(rand.NewSource(12345))

	mutated := mutation.Mutate(original, rng)

	if len(mutated.TurnStructure.Phases) != originalPhaseCount+1 {
		t.Errorf("expected %d phases, got %d",
			originalPhaseCount+1, len(mutated.TurnStructure.Phases))
	}
}

func TestAddPlayPhaseMutation(t *testing.T) {
	mutation := NewAddPlayPhaseMutation(1.0)

	original := genome.CreateWarGenome()
	originalPhaseCount := len(original.TurnStructure.Phases)
	rng := rand.New(rand.NewSource(12345))

	mutated := mutation.Mutate(original, rng)

	if len(mutated.TurnStructure.Phases) != originalPhaseCount+1 {
		t.Errorf("expected %d phases, got %d",
			originalPhaseCount+1, len(mutated.TurnStructure.Phases))
	}
}

func TestAddTrickPhaseSetsTrickFlag(t *testing.T) {
	mutation := NewAddTrickPhaseMutation(1.0)

	original := genome.CreateWarGenome()
	rng := rand.New(rand.NewSource(12345))

	mutated := mutation.Mutate(original, rng)

	if !mutated.HasPhase(genome.PhaseTypeTrick) {
		t.Fatal("expected a trick phase")
	}
	if !mutated.TurnStructure.IsTrickBased {
		t.Error("trick flag not derived from the new phase")
	}
}

func TestRemovePhaseClearsTrickFlag(t *testing.T) {
	g := genome.CreateScotchWhistGenome()
	g.TurnStructure.Phases = append(g.TurnStructure.Phases,
		&genome.DrawPhase{Source: genome.LocationDeck, Count: 1})

	removePhaseAt(g, 0) // the trick phase

	if g.TurnStructure.IsTrickBased {
		t.Error("trick flag survived the last trick phase")
	}
}

func TestAddBiddingPhaseMutation(t *testing.T) {
	mutation := NewAddBiddingPhaseMutation(1.0)
	rng := rand.New(rand.NewSource(9))

	war := genome.CreateWarGenome()
	if mutated := mutation.Mutate(war, rng); mutated.HasPhase(genome.PhaseTypeBidding) {
		t.Error("bidding added to a game without tricks")
	}

	whist := genome.CreateScotchWhistGenome()
	mutated := mutation.Mutate(whist, rng)
	if !mutated.HasPhase(genome.PhaseTypeBidding) {
		t.Fatal("expected a bidding phase on a trick game")
	}
	first, ok := mutated.TurnStructure.Phases[0].(*genome.BiddingPhase)
	if !ok {
		t.Fatal("bidding phase should lead the turn")
	}
	if first.MinBid > first.MaxBid {
		t.Errorf("bid range inverted: %d..%d", first.MinBid, first.MaxBid)
	}
	if first.MaxBid > 13 {
		t.Errorf("bid ceiling above a full hand: %d", first.MaxBid)
	}
	if !genome.IsValid(mutated) {
		t.Errorf("contract broke validation: %v", genome.ValidateGenome(mutated))
	}

	spades := genome.CreateSpadesGenome()
	mutated = mutation.Mutate(spades, rng)
	if mutated.CountPhases(genome.PhaseTypeBidding) != 1 {
		t.Error("second bidding phase stacked onto a contracted game")
	}
}

func TestAddClaimPhaseMutation(t *testing.T) {
	mutation := NewAddClaimPhaseMutation(1.0)
	rng := rand.New(rand.NewSource(4))

	war := genome.CreateWarGenome()
	mutated := mutation.Mutate(war, rng)
	if !mutated.HasPhase(genome.PhaseTypeClaim) {
		t.Error("expected a claim phase")
	}

	cheat := genome.CreateCheatGenome()
	mutated = mutation.Mutate(cheat, rng)
	if mutated.CountPhases(genome.PhaseTypeClaim) != 1 {
		t.Error("second claim phase stacked onto a claim game")
	}
}

func TestRemovePhaseMutation(t *testing.T) {
	mutation := NewRemovePhaseMutation(1.0)

	original := genome.CreateDrawPokerGenome() // three phases
	originalPhaseCount := len(original.TurnStructure.Phases)
	rng := rand.New(rand.NewSource(12345))

	mutated := mutation.Mutate(original, rng)

	if len(mutated.TurnStructure.Phases) != originalPhaseCount-1 {
		t.Errorf("expected %d phases, got %d",
			originalPhaseCount-1, len(mutated.TurnStructure.Phases))
	}
}

func TestRemovePhaseMutationKeepsLastPhase(t *testing.T) {
	mutation := NewRemovePhaseMutation(1.0)

	original := genome.CreateWarGenome() // single phase
	rng := rand.New(rand.NewSource(12345))

	mutated := mutation.Mutate(original, rng)

	if len(mutated.TurnStructure.Phases) != 1 {
		t.Errorf("expected 1 phase (minimum), got %d", len(mutated.TurnStructure.Phases))
	}
}

func TestSwapPhaseOrderMutation(t *testing.T) {
	mutation := NewSwapPhaseOrderMutation(1.0)

	original := &genome.GameGenome{
		ID: "swap-test",
		TurnStructure: genome.TurnStructure{
			Phases: []genome.Phase{
				&genome.DrawPhase{Source: genome.LocationDeck, Count: 1},
				&genome.PlayPhase{Target: genome.LocationDiscard, MinCards: 1, MaxCards: 1},
				&genome.DrawPhase{Source: genome.LocationDiscard, Count: 2},
			},
			MaxTurns: 100,
		},
		WinConditions: []genome.WinCondition{{Type: genome.WinEmptyHand}},
		PlayerCount:   2,
	}
	rng := rand.New(rand.NewSource(12345))

	shape := func(g *genome.GameGenome) []int {
		var s []int
		for _, p := range g.TurnStructure.Phases {
			n := int(p.PhaseType())
			if dp, ok := p.(*genome.DrawPhase); ok {
				n = n*10 + dp.Count
			}
			s = append(s, n)
		}
		return s
	}

	before := shape(original)
	mutated := mutation.Mutate(original, rng)
	after := shape(mutated)

	same := len(before) == len(after)
	if same {
		for i := range before {
			if before[i] != after[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("swap left the phase order unchanged")
	}
}

func TestModifyDrawPhaseMutation(t *testing.T) {
	mutation := NewModifyDrawPhaseMutation(1.0)

	original := &genome.GameGenome{
		ID: "modify-draw-test",
		TurnStructure: genome.TurnStructure{
			Phases: []genome.Phase{
				&genome.DrawPhase{Source: genome.LocationDeck, Count: 2, Mandatory: true},
			},
			MaxTurns: 100,
		},
		WinConditions: []genome.WinCondition{{Type: genome.WinEmptyHand}},
		PlayerCount:   2,
	}
	rng := rand.New(rand.NewSource(12345))

	modified := false
	for i := 0; i < 10; i++ {
		mutated := mutation.Mutate(original, rng)
		dp := mutated.TurnStructure.Phases[0].(*genome.DrawPhase)
		op := original.TurnStructure.Phases[0].(*genome.DrawPhase)

		if dp.Source != op.Source || dp.Count != op.Count || dp.Mandatory != op.Mandatory {
			modified = true
			break
		}
	}

	if !modified {
		t.Error("expected the draw phase to change within 10 attempts")
	}
}

func TestModifyWinConditionRepairsScoring(t *testing.T) {
	mutation := NewModifyWinConditionMutation(1.0)

	for seed := int64(0); seed < 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		mutated := mutation.Mutate(genome.CreateCheatGenome(), rng)

		for _, wc := range mutated.WinConditions {
			switch wc.Type {
			case genome.WinHighScore, genome.WinLowScore, genome.WinFirstToScore:
				if len(mutated.CardScoring) == 0 {
					t.Fatalf("seed %d: score win with nothing to score", seed)
				}
				if wc.Threshold <= 0 {
					t.Fatalf("seed %d: score win without a target", seed)
				}
			}
		}
		if errs := genome.ValidateGenome(mutated); len(errs) > 0 {
			t.Fatalf("seed %d: win mutation broke validation: %v", seed, errs)
		}
	}
}

func TestRandomWinTypeRespectsMechanics(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	war := genome.CreateWarGenome()
	seen := make(map[genome.WinConditionType]bool)
	for i := 0; i < 200; i++ {
		seen[randomWinType(war, rng)] = true
	}
	if !seen[genome.WinCaptureAll] {
		t.Error("capture win never rolled for a war tableau")
	}

	cheat := genome.CreateCheatGenome()
	seen = make(map[genome.WinConditionType]bool)
	for i := 0; i < 200; i++ {
		seen[randomWinType(cheat, rng)] = true
	}
	if seen[genome.WinCaptureAll] || seen[genome.WinMostCaptured] {
		t.Error("capture win rolled for a game with no capture mechanic")
	}
}

func TestAddConditionMutation(t *testing.T) {
	mutation := NewAddConditionMutation(1.0)

	original := &genome.GameGenome{
		ID: "add-condition-test",
		TurnStructure: genome.TurnStructure{
			Phases: []genome.Phase{
				&genome.DrawPhase{Source: genome.LocationDeck, Count: 1},
			},
			MaxTurns: 100,
		},
		WinConditions: []genome.WinCondition{{Type: genome.WinEmptyHand}},
		PlayerCount:   2,
	}
	rng := rand.New(rand.NewSource(12345))

	mutated := mutation.Mutate(original, rng)

	dp := mutated.TurnStructure.Phases[0].(*genome.DrawPhase)
	if dp.Condition == nil {
		t.Error("expected a condition on the draw phase")
	}
}

func TestAddCardScoringMutation(t *testing.T) {
	mutation := NewAddCardScoringMutation(1.0)

	original := genome.CreateWarGenome()
	rng := rand.New(rand.NewSource(12345))

	mutated := mutation.Mutate(original, rng)

	if len(mutated.CardScoring) != len(original.CardScoring)+1 {
		t.Errorf("expected %d scoring rules, got %d",
			len(original.CardScoring)+1, len(mutated.CardScoring))
	}
}

func TestAddSpecialEffectMutation(t *testing.T) {
	mutation := NewAddSpecialEffectMutation(1.0)

	original := genome.CreateWarGenome()
	rng := rand.New(rand.NewSource(12345))

	mutated := mutation.Mutate(original, rng)

	if len(mutated.SpecialEffects) != len(original.SpecialEffects)+1 {
		t.Errorf("expected %d effects, got %d",
			len(original.SpecialEffects)+1, len(mutated.SpecialEffects))
	}
}

func TestMutationsKeepSeedsPlayable(t *testing.T) {
	registry := NewRegistry()
	RegisterSetupMutations(registry)
	RegisterPhaseMutations(registry)
	RegisterConditionMutations(registry)

	rng := rand.New(rand.NewSource(12345))

	for _, g := range genome.GetSeedGenomes() {
		t.Run(g.ID, func(t *testing.T) {
			if !genome.IsValid(g) || !Coherent(g) {
				t.Fatalf("seed starts unplayable: %v %v",
					genome.ValidateGenome(g), CoherenceIssues(g))
			}

			mutated := g
			for i := 0; i < 10; i++ {
				mutated = registry.ApplyAll(mutated, rng)
			}

			if errs := genome.ValidateGenome(mutated); len(errs) > 0 {
				t.Errorf("mutation broke validation: %v", errs)
			}
			if issues := CoherenceIssues(mutated); len(issues) > 0 {
				t.Errorf("mutation broke coherence: %v", issues)
			}
			if len(mutated.TurnStructure.Phases) == 0 {
				t.Error("mutation stripped every phase")
			}
		})
	}
}

func TestPipelineApplyInPlace(t *testing.T) {
	pipeline := NewDefaultPipeline()

	g := genome.CreateHeartsGenome()
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 5; i++ {
		pipeline.Apply(g, rng)
	}

	if !genome.IsValid(g) || !Coherent(g) {
		t.Errorf("pipeline left genome unplayable: %v %v",
			genome.ValidateGenome(g), CoherenceIssues(g))
	}
}

func TestAllMutationsRegistered(t *testing.T) {
	registry := NewRegistry()
	RegisterSetupMutations(registry)
	RegisterPhaseMutations(registry)
	RegisterConditionMutations(registry)

	operators := registry.Operators()

	if len(operators) < 30 {
		t.Errorf("expected at least 30 mutations registered, got %d", len(operators))
	}

	t.Logf("registered %d mutations:", len(operators))
	for _, op := range operators {
		t.Logf("  - %s (p=%.2f)", op.Name(), op.Probability())
	}
}
