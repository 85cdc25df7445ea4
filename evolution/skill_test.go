package evolution

import (
	"context"
	"math"
	"testing"

	"github.com/signalnine/darwindeck/gosim/genome"
	"github.com/signalnine/darwindeck/gosim/simulation"
)

func TestSwappedWinRate(t *testing.T) {
	fwd := &simulation.Stats{TotalGames: 100, Wins: []uint32{60, 40}}
	rev := &simulation.Stats{TotalGames: 100, Wins: []uint32{45, 55}}

	// Seat 0 forward plus seat 1 reverse: (60+55)/200.
	got := swappedWinRate(fwd, rev)
	want := 0.575
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("swappedWinRate = %f, want %f", got, want)
	}
}

func TestSwappedWinRateCountsDraws(t *testing.T) {
	// 10 games, 2 drawn: the drawn games stay in the denominator.
	fwd := &simulation.Stats{TotalGames: 10, Wins: []uint32{4, 4}, Draws: 2}
	rev := &simulation.Stats{TotalGames: 10, Wins: []uint32{5, 5}}

	got := swappedWinRate(fwd, rev)
	want := float64(4+5) / 20
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("swappedWinRate = %f, want %f", got, want)
	}
}

func TestSwappedWinRateExcludesErrors(t *testing.T) {
	fwd := &simulation.Stats{TotalGames: 10, Wins: []uint32{4, 2}, Errors: 4}
	rev := &simulation.Stats{TotalGames: 10, Wins: []uint32{3, 3}, Errors: 4}

	got := swappedWinRate(fwd, rev)
	want := float64(4+3) / 12
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("swappedWinRate = %f, want %f", got, want)
	}
}

func TestSeatBiasCancelsPolicyStrength(t *testing.T) {
	// The stronger policy wins 70% from either seat: no seat advantage.
	fwd := &simulation.Stats{TotalGames: 100, Wins: []uint32{70, 30}}
	rev := &simulation.Stats{TotalGames: 100, Wins: []uint32{30, 70}}

	if bias := seatBias(fwd, rev); math.Abs(bias) > 1e-9 {
		t.Errorf("Expected zero bias when only policy differs, got %f", bias)
	}
}

func TestSeatBiasSeesTurnOrder(t *testing.T) {
	// Seat 0 wins 80% no matter who sits there: pure turn-order edge.
	fwd := &simulation.Stats{TotalGames: 100, Wins: []uint32{80, 20}}
	rev := &simulation.Stats{TotalGames: 100, Wins: []uint32{80, 20}}

	bias := seatBias(fwd, rev)
	if math.Abs(bias-0.6) > 1e-9 {
		t.Errorf("Expected bias 0.6, got %f", bias)
	}
}

func TestSkillReportPenalty(t *testing.T) {
	cases := []struct {
		name   string
		report SkillReport
		want   float64
	}{
		{"skill and fair seats", SkillReport{GreedyWinRate: 0.7, MCTSWinRate: 0.5, FirstPlayerAdvantage: 0.1}, 1.0},
		{"mcts alone clears the bar", SkillReport{GreedyWinRate: 0.4, MCTSWinRate: 0.65}, 1.0},
		{"no skill signal", SkillReport{GreedyWinRate: 0.5, MCTSWinRate: 0.55}, 0.8},
		{"seat decides games", SkillReport{GreedyWinRate: 0.7, MCTSWinRate: 0.6, FirstPlayerAdvantage: 0.4}, 0.8},
		{"second seat favored", SkillReport{GreedyWinRate: 0.7, MCTSWinRate: 0.6, FirstPlayerAdvantage: -0.4}, 0.8},
		{"luck and bias", SkillReport{GreedyWinRate: 0.5, MCTSWinRate: 0.5, FirstPlayerAdvantage: -0.5}, 0.64},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.report.Penalty(); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Penalty() = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestEvaluateSkillOnCatalogue(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping simulation-backed skill check in short mode")
	}

	report, err := EvaluateSkill(genome.CreateWarGenome(), 8, 7)
	if err != nil {
		t.Fatalf("skill eval: %v", err)
	}

	for name, rate := range map[string]float64{
		"greedy": report.GreedyWinRate,
		"mcts":   report.MCTSWinRate,
	} {
		if rate < 0 || rate > 1 {
			t.Errorf("%s win rate %f out of range", name, rate)
		}
	}
	if report.FirstPlayerAdvantage < -1 || report.FirstPlayerAdvantage > 1 {
		t.Errorf("First-player advantage %f out of range", report.FirstPlayerAdvantage)
	}
}

func TestRankSkill(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping simulation-backed skill check in short mode")
	}

	finalists := []*Individual{
		{Genome: genome.CreateWarGenome()},
		{Genome: genome.CreateCheatGenome()},
	}

	reports, err := RankSkill(context.Background(), finalists, SkillSpec{
		Games:   8,
		Workers: 2,
		Seed:    11,
	})
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(reports) != len(finalists) {
		t.Fatalf("Got %d reports for %d finalists", len(reports), len(finalists))
	}
}

func TestRankSkillHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finalists := []*Individual{{Genome: genome.CreateWarGenome()}}
	if _, err := RankSkill(ctx, finalists, SkillSpec{Games: 4, Workers: 1}); err == nil {
		t.Error("Expected cancelled context to abort ranking")
	}
}
