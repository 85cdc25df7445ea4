package fitness

import (
	"math"
	"testing"

	"github.com/signalnine/darwindeck/gosim/genome"
	"github.com/signalnine/darwindeck/gosim/simulation"
)

func evenWarStats() *simulation.Stats {
	return &simulation.Stats{
		TotalGames:  100,
		Wins:        []uint32{50, 50},
		PlayerCount: 2,
		AvgTurns:    52.0,
	}
}

func TestComputeEvenWar(t *testing.T) {
	m := Compute(genome.CreateWarGenome(), evenWarStats(), Balanced)

	if !m.Valid {
		t.Fatal("expected a clean even batch to be valid")
	}
	if m.Games != 100 {
		t.Errorf("Games = %d, want 100", m.Games)
	}
	if m.ComebackPotential < 0.5 {
		t.Errorf("ComebackPotential = %f, want >= 0.5 for even wins", m.ComebackPotential)
	}
	if m.Total <= 0 || m.Total > 1.0 {
		t.Errorf("Total = %f, want in (0, 1]", m.Total)
	}
}

func TestComputeZeroGames(t *testing.T) {
	m := Compute(genome.CreateWarGenome(), &simulation.Stats{}, Balanced)
	if m.Valid {
		t.Error("expected an empty batch to be invalid")
	}
	if m.Total != 0 {
		t.Errorf("Total = %f, want 0", m.Total)
	}
}

func TestComputeErrorMajority(t *testing.T) {
	st := evenWarStats()
	st.Wins = []uint32{10, 10}
	st.Errors = 60

	m := Compute(genome.CreateWarGenome(), st, Balanced)
	if m.Valid {
		t.Error("expected a mostly-errored batch to be invalid")
	}
	if m.Total != 0 {
		t.Errorf("Total = %f, want 0", m.Total)
	}
}

func TestComputeFewErrorsScoresButFlags(t *testing.T) {
	st := evenWarStats()
	st.Wins = []uint32{48, 48}
	st.Draws = 2
	st.Errors = 2

	m := Compute(genome.CreateWarGenome(), st, Balanced)
	if m.Valid {
		t.Error("any errored game should clear the Valid flag")
	}
	if m.Total <= 0 {
		t.Errorf("Total = %f, want > 0 when errors stay under half", m.Total)
	}
}

func TestComputeOneSidedPenalised(t *testing.T) {
	even := Compute(genome.CreateWarGenome(), evenWarStats(), Balanced)

	st := evenWarStats()
	st.Wins = []uint32{90, 10}
	lopsided := Compute(genome.CreateWarGenome(), st, Balanced)

	if lopsided.ComebackPotential > 0.5 {
		t.Errorf("ComebackPotential = %f, want <= 0.5 for 90/10 wins", lopsided.ComebackPotential)
	}
	if lopsided.Total >= even.Total {
		t.Errorf("one-sided Total %f should trail even Total %f", lopsided.Total, even.Total)
	}
}

func TestSessionWindowPerStyle(t *testing.T) {
	// 2000 turns comes out near 67 minutes of table time. That busts
	// the balanced and party windows but fits a strategic session.
	st := evenWarStats()
	st.AvgTurns = 2000

	g := genome.CreateWarGenome()
	if m := Compute(g, st, Balanced); m.Valid || m.Total != 0 {
		t.Errorf("balanced: got valid=%v total=%f, want invalid zero", m.Valid, m.Total)
	}
	if m := Compute(g, st, Party); m.Valid || m.Total != 0 {
		t.Errorf("party: got valid=%v total=%f, want invalid zero", m.Valid, m.Total)
	}
	if m := Compute(g, st, Strategic); !m.Valid {
		t.Error("strategic: 67 minute sessions should still be valid")
	}
}

func TestSessionScoreRampsBelowOptimal(t *testing.T) {
	atOptimal := evenWarStats()
	atOptimal.AvgTurns = 450 // 900 seconds, the balanced optimum

	short := evenWarStats()
	short.AvgTurns = 100

	long := Compute(genome.CreateWarGenome(), atOptimal, Balanced)
	quick := Compute(genome.CreateWarGenome(), short, Balanced)

	if long.SessionLength < 0.99 {
		t.Errorf("SessionLength = %f at the optimum, want ~1.0", long.SessionLength)
	}
	if quick.SessionLength >= long.SessionLength {
		t.Errorf("short session %f should score below optimal %f", quick.SessionLength, long.SessionLength)
	}
	if !quick.Valid {
		t.Error("short sessions ramp down but stay valid")
	}
}

func TestDecisionDensityFromCounters(t *testing.T) {
	st := evenWarStats()
	st.Decisions = simulation.DecisionCounters{
		Decisions:  100,
		ValidMoves: 400,
		Forced:     10,
		HandSizes:  500,
	}

	density := decisionDensity(genome.CreateWarGenome(), st)
	if density < 0.25 || density > 0.35 {
		t.Errorf("density = %f, want ~0.30 for 4 options with hand filtering", density)
	}

	structural := decisionDensity(genome.CreateWarGenome(), evenWarStats())
	if structural >= density {
		t.Errorf("single forced-play structure %f should trail instrumented %f", structural, density)
	}
}

func TestDecisionDensityStructuralFallback(t *testing.T) {
	g := &genome.GameGenome{
		TurnStructure: genome.TurnStructure{
			Phases: []genome.Phase{
				&genome.DrawPhase{Source: genome.LocationDeck, Count: 1},
				&genome.PlayPhase{Target: genome.LocationDiscard},
				&genome.PlayPhase{Target: genome.LocationTableau},
			},
			MaxTurns: 100,
		},
		WinConditions: []genome.WinCondition{{Type: genome.WinEmptyHand}},
	}

	density := decisionDensity(g, &simulation.Stats{})
	if density < 0.3 {
		t.Errorf("density = %f, want >= 0.3 for three optional phases", density)
	}
}

func TestComebackPotentialSpread(t *testing.T) {
	even := comebackPotential(&simulation.Stats{
		TotalGames: 100, Wins: []uint32{50, 50}, PlayerCount: 2,
	})
	if even < 0.8 {
		t.Errorf("even wins comeback = %f, want >= 0.8", even)
	}

	runaway := comebackPotential(&simulation.Stats{
		TotalGames: 100, Wins: []uint32{95, 5}, PlayerCount: 2,
	})
	if runaway > 0.4 {
		t.Errorf("95/5 comeback = %f, want <= 0.4", runaway)
	}
}

func TestComebackPotentialTrailingWinners(t *testing.T) {
	flat := &simulation.Stats{
		TotalGames: 100, Wins: []uint32{70, 30}, PlayerCount: 2,
	}
	withTrailing := &simulation.Stats{
		TotalGames: 100, Wins: []uint32{70, 30}, PlayerCount: 2,
		TrailingWinners: 50,
	}

	if a, b := comebackPotential(flat), comebackPotential(withTrailing); b <= a {
		t.Errorf("midpoint-trailing winners should lift comeback: %f vs %f", a, b)
	}
}

func TestTensionCurveTrackedLeads(t *testing.T) {
	tracked := tensionCurve(&simulation.Stats{
		TotalGames:         100,
		AvgTurns:           100,
		LeadChangesPerGame: 5,
		DecisivePct:        1.0,
		ClosestMargin:      0.1,
	})
	if tracked < 0.9 {
		t.Errorf("tension = %f, want >= 0.9 for a lead-swapping decisive game", tracked)
	}

	fallback := tensionCurve(&simulation.Stats{TotalGames: 100, AvgTurns: 100})
	if fallback > 0.6 {
		t.Errorf("length-only tension = %f, capped at 0.6", fallback)
	}
	if fallback >= tracked {
		t.Errorf("fallback %f should trail tracked %f", fallback, tracked)
	}
}

func TestTensionCurveBettingFallback(t *testing.T) {
	tension := tensionCurve(&simulation.Stats{
		TotalGames: 100,
		Draws:      10,
		Betting: simulation.BetCounters{
			Bets:         270,
			AllIns:       45,
			ShowdownWins: 90,
		},
	})
	if tension < 0.99 {
		t.Errorf("tension = %f, want ~1.0 for three bets a game with showdowns", tension)
	}
}

func TestBluffingDepthAtTargets(t *testing.T) {
	st := &simulation.Stats{
		Bluffing: simulation.BluffCounters{
			Claims:       100,
			Bluffs:       60,
			Challenges:   40,
			BluffsLanded: 25,
			Catches:      25,
		},
	}
	if depth := bluffingDepth(st); math.Abs(depth-1.0) > 1e-9 {
		t.Errorf("depth = %f, want 1.0 at the target rates", depth)
	}
}

func TestBluffingDepthDegenerate(t *testing.T) {
	// Nobody ever lies and every claim gets challenged anyway.
	st := &simulation.Stats{
		Bluffing: simulation.BluffCounters{
			Claims:     100,
			Challenges: 100,
		},
	}
	if depth := bluffingDepth(st); depth != 0 {
		t.Errorf("depth = %f, want 0 for a lie-free table", depth)
	}
}

func TestBluffingDepthBettingFallback(t *testing.T) {
	st := &simulation.Stats{
		Betting: simulation.BetCounters{
			Bets:         100,
			Bluffs:       30,
			AllIns:       10,
			FoldWins:     35,
			ShowdownWins: 65,
		},
	}
	if depth := bluffingDepth(st); math.Abs(depth-1.0) > 1e-9 {
		t.Errorf("depth = %f, want 1.0 at the betting targets", depth)
	}
}

func TestBettingEngagement(t *testing.T) {
	st := &simulation.Stats{
		TotalGames: 100,
		Wins:       []uint32{50, 50},
		Betting: simulation.BetCounters{
			Bets:         500,
			AllIns:       15,
			FoldWins:     25,
			ShowdownWins: 70,
		},
	}
	if engagement := bettingEngagement(st); engagement < 0.9 {
		t.Errorf("engagement = %f, want >= 0.9 for a lively table", engagement)
	}

	if engagement := bettingEngagement(&simulation.Stats{TotalGames: 100}); engagement != 0 {
		t.Errorf("engagement = %f, want 0 without betting", engagement)
	}
}

func TestCoherencePenaltyPairs(t *testing.T) {
	cases := []struct {
		name    string
		mode    genome.TableauMode
		win     genome.WinConditionType
		penalty float64
	}{
		{"war cannot empty hands", genome.TableauWar, genome.WinEmptyHand, 0.30},
		{"match recycles captures", genome.TableauMatchRank, genome.WinCaptureAll, 0.20},
		{"sequence recycles captures", genome.TableauSequence, genome.WinCaptureAll, 0.30},
		{"plain discard is fine", genome.TableauNone, genome.WinEmptyHand, 0.0},
		{"war with capture-all is war", genome.TableauWar, genome.WinCaptureAll, 0.0},
	}

	for _, tc := range cases {
		g := &genome.GameGenome{
			TurnStructure: genome.TurnStructure{TableauMode: tc.mode},
			WinConditions: []genome.WinCondition{{Type: tc.win}},
		}
		if got := coherencePenalty(g); math.Abs(got-tc.penalty) > 1e-9 {
			t.Errorf("%s: penalty = %f, want %f", tc.name, got, tc.penalty)
		}
	}
}

func TestSkillProxyPartyInverts(t *testing.T) {
	g := genome.CreateWarGenome()
	st := evenWarStats()

	straight := skillProxy(g, st, 0.5, Balanced)
	inverted := skillProxy(g, st, 0.5, Party)
	if math.Abs(straight+inverted-1.0) > 1e-9 {
		t.Errorf("party skill should mirror: %f + %f != 1", straight, inverted)
	}
}
