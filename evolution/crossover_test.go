package evolution

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/signalnine/darwindeck/gosim/evolution/operators"
	"github.com/signalnine/darwindeck/gosim/genome"
)

func TestSinglePointCrossoverProvenance(t *testing.T) {
	p1 := genome.CreateWarGenome()
	p1.Generation = 3
	p2 := genome.CreateHeartsGenome()
	p2.Generation = 7
	rng := rand.New(rand.NewSource(12345))

	child1, child2 := NewSinglePointCrossover(1.0).Crossover(p1, p2, rng)

	for i, child := range []*genome.GameGenome{child1, child2} {
		if child == nil {
			t.Fatalf("Child %d is nil", i)
		}
		if child.ID == p1.ID || child.ID == p2.ID {
			t.Errorf("Child %d kept a parent id %q", i, child.ID)
		}
		if len(child.ParentIDs) != 2 {
			t.Fatalf("Child %d has %d parent ids, want 2", i, len(child.ParentIDs))
		}
		if child.Generation != 8 {
			t.Errorf("Child %d generation %d, want 8 (older parent + 1)", i, child.Generation)
		}
	}
	if child1.ID == child2.ID {
		t.Error("Siblings share an id")
	}

	// Both parents recorded, order starting with the primary.
	if child1.ParentIDs[0] != p1.ID || child1.ParentIDs[1] != p2.ID {
		t.Errorf("Child1 parent ids %v", child1.ParentIDs)
	}
	if child2.ParentIDs[0] != p2.ID || child2.ParentIDs[1] != p1.ID {
		t.Errorf("Child2 parent ids %v", child2.ParentIDs)
	}
}

func TestSinglePointCrossoverPhaseBand(t *testing.T) {
	seeds := genome.GetSeedGenomes()
	op := NewSinglePointCrossover(1.0)

	for s := 0; s < 50; s++ {
		rng := rand.New(rand.NewSource(int64(s)))
		p1 := seeds[s%len(seeds)]
		p2 := seeds[(s+3)%len(seeds)]

		c1, c2 := op.Crossover(p1, p2, rng)
		for i, c := range []*genome.GameGenome{c1, c2} {
			n := c.CountPhases()
			if n < crossMinPhases || n > crossMaxPhases {
				t.Errorf("seed %d child %d has %d phases, want %d..%d",
					s, i, n, crossMinPhases, crossMaxPhases)
			}
		}
	}
}

func TestCrossoverLeavesParentsUntouched(t *testing.T) {
	p1 := genome.CreateScotchWhistGenome()
	p2 := genome.CreateDrawPokerGenome()

	before1, err := json.Marshal(p1)
	if err != nil {
		t.Fatalf("marshal parent: %v", err)
	}
	before2, _ := json.Marshal(p2)

	rng := rand.New(rand.NewSource(99))
	c1, c2 := NewUniformCrossover(1.0).Crossover(p1, p2, rng)

	// Scribble on the children; shared pointers would leak this into a
	// parent.
	for _, c := range []*genome.GameGenome{c1, c2} {
		c.Setup.CardsPerPlayer = 1
		c.TurnStructure.MaxTurns = 1
		for _, ph := range c.TurnStructure.Phases {
			if dp, ok := ph.(*genome.DrawPhase); ok {
				dp.Count = 99
			}
		}
	}

	after1, _ := json.Marshal(p1)
	after2, _ := json.Marshal(p2)
	if string(before1) != string(after1) {
		t.Error("Crossover or child edits mutated parent 1")
	}
	if string(before2) != string(after2) {
		t.Error("Crossover or child edits mutated parent 2")
	}
}

func TestCrossoverDerivesTrickFlag(t *testing.T) {
	trick := genome.CreateScotchWhistGenome()
	flat := genome.CreateWarGenome()

	ops := []CrossoverOperator{
		NewSinglePointCrossover(1.0),
		NewUniformCrossover(1.0),
	}
	for _, op := range ops {
		for s := 0; s < 50; s++ {
			rng := rand.New(rand.NewSource(int64(s)))
			c1, c2 := op.Crossover(trick, flat, rng)
			for i, c := range []*genome.GameGenome{c1, c2} {
				want := c.HasPhase(genome.PhaseTypeTrick)
				if c.TurnStructure.IsTrickBased != want {
					t.Errorf("seed %d child %d trick flag %v, phases say %v",
						s, i, c.TurnStructure.IsTrickBased, want)
				}
			}
		}
	}
}

func TestUniformCrossoverMixesFields(t *testing.T) {
	p1 := genome.CreateWarGenome()    // 26 cards each, MaxTurns 2000
	p2 := genome.CreateHeartsGenome() // 13 cards each, MaxTurns 200
	op := NewUniformCrossover(1.0)

	swappedCards := false
	swappedTurns := false
	for s := 0; s < 20; s++ {
		rng := rand.New(rand.NewSource(int64(1000 + s)))
		c1, _ := op.Crossover(p1, p2, rng)
		if c1.Setup.CardsPerPlayer == p2.Setup.CardsPerPlayer {
			swappedCards = true
		}
		if c1.TurnStructure.MaxTurns == p2.TurnStructure.MaxTurns {
			swappedTurns = true
		}
	}
	if !swappedCards {
		t.Error("CardsPerPlayer never crossed over in 20 tries")
	}
	if !swappedTurns {
		t.Error("MaxTurns never crossed over in 20 tries")
	}
}

func TestUniformCrossoverKeepsEconomyWhole(t *testing.T) {
	// Chips without a betting phase (or the reverse) must never survive
	// the coherence gate, whatever recombination produced.
	p1 := genome.CreateWarGenome()
	p2 := genome.CreateBettingWarGenome()
	op := NewUniformCrossover(1.0)

	for s := 0; s < 100; s++ {
		rng := rand.New(rand.NewSource(int64(s)))
		c1, c2 := op.Crossover(p1, p2, rng)
		for i, c := range []*genome.GameGenome{c1, c2} {
			if !operators.Coherent(c) {
				continue // the breeding gate discards these
			}
			hasChips := c.Setup.StartingChips > 0
			hasBetting := c.HasPhase(genome.PhaseTypeBetting)
			if hasChips != hasBetting {
				t.Errorf("seed %d child %d passed coherence with chips=%v betting=%v",
					s, i, hasChips, hasBetting)
			}
		}
	}
}

func TestSplicePhasesRespectsBand(t *testing.T) {
	// Two five-phase parents can produce cuts from zero to ten; every
	// accepted pair must land inside the band.
	build := func(id string) *genome.GameGenome {
		g := genome.CreateWarGenome()
		g.ID = id
		g.TurnStructure.Phases = []genome.Phase{
			&genome.DrawPhase{Source: genome.LocationDeck, Count: 1},
			&genome.PlayPhase{Target: genome.LocationDiscard, MinCards: 1, MaxCards: 1},
			&genome.DrawPhase{Source: genome.LocationDiscard, Count: 1},
			&genome.PlayPhase{Target: genome.LocationTableau, MinCards: 1, MaxCards: 1},
			&genome.DrawPhase{Source: genome.LocationDeck, Count: 2},
		}
		return g
	}
	p1, p2 := build("five-a"), build("five-b")

	for s := 0; s < 100; s++ {
		rng := rand.New(rand.NewSource(int64(s)))
		c1, c2, ok := splicePhases(p1, p2, rng)
		if !ok {
			continue
		}
		if len(c1) < crossMinPhases || len(c1) > crossMaxPhases {
			t.Errorf("seed %d: child1 got %d phases", s, len(c1))
		}
		if len(c2) < crossMinPhases || len(c2) > crossMaxPhases {
			t.Errorf("seed %d: child2 got %d phases", s, len(c2))
		}
		// Phase totals are conserved across the swap.
		if len(c1)+len(c2) != 10 {
			t.Errorf("seed %d: splice lost phases, %d+%d != 10", s, len(c1), len(c2))
		}
	}
}

func TestSwapPhaseKind(t *testing.T) {
	a := genome.CreateBettingWarGenome()
	b := genome.CreateWarGenome()
	if !a.HasPhase(genome.PhaseTypeBetting) || b.HasPhase(genome.PhaseTypeBetting) {
		t.Fatal("Fixture expectations changed")
	}
	aTotal := a.CountPhases()
	bTotal := b.CountPhases()

	swapPhaseKind(a, b, genome.PhaseTypeBetting)

	if a.HasPhase(genome.PhaseTypeBetting) {
		t.Error("Betting stayed on the giving side")
	}
	if !b.HasPhase(genome.PhaseTypeBetting) {
		t.Error("Betting never arrived on the receiving side")
	}
	if a.CountPhases()+b.CountPhases() != aTotal+bTotal {
		t.Error("Phase swap lost or duplicated phases")
	}
}

func TestCloneChildProvenance(t *testing.T) {
	parent := genome.CreateCheatGenome()
	parent.Generation = 4
	rng := rand.New(rand.NewSource(5))

	child := cloneChild(parent, rng)

	if child.ID == parent.ID {
		t.Error("Clone kept the parent id")
	}
	if len(child.ParentIDs) != 1 || child.ParentIDs[0] != parent.ID {
		t.Errorf("Clone parent ids %v, want [%s]", child.ParentIDs, parent.ID)
	}
	if child.Generation != 5 {
		t.Errorf("Clone generation %d, want 5", child.Generation)
	}
}
