package simulation

import (
	"testing"

	"github.com/signalnine/darwindeck/gosim/genome"
)

// Spades hands run exactly 56 moves: four bids, then 52 card plays.
// The 500-point threshold is out of reach in one hand, so every game
// resolves through the all-hands-empty condition.

func TestSpadesGamesComplete(t *testing.T) {
	g := genome.CreateSpadesGenome()
	stats, err := RunGenomeBatch(g, Options{Games: 6, Seats: []AIConfig{{Policy: PolicyRandom}}, Seed: 8811, Workers: 1})
	if err != nil {
		t.Fatalf("RunGenomeBatch failed: %v", err)
	}
	if stats.Errors != 0 {
		t.Fatalf("Spades games errored: %d of %d", stats.Errors, stats.TotalGames)
	}
	if stats.AvgTurns < 50 || stats.AvgTurns > 60 {
		t.Errorf("Expected ~56 turns per hand, got %.1f", stats.AvgTurns)
	}
	if stats.TeamWins != nil {
		t.Error("Free-for-all spades should not report team wins")
	}
}

func TestSpadesGreedyBidsAndPlays(t *testing.T) {
	g := genome.CreateSpadesGenome()
	stats, err := RunGenomeBatch(g, Options{Games: 4, Seats: []AIConfig{{Policy: PolicyGreedy}}, Seed: 4242, Workers: 1})
	if err != nil {
		t.Fatalf("RunGenomeBatch failed: %v", err)
	}
	if stats.Errors != 0 {
		t.Fatalf("Greedy spades games errored: %d of %d", stats.Errors, stats.TotalGames)
	}
	if stats.Decisions.Decisions == 0 {
		t.Error("Expected decision instrumentation for bidding games")
	}
}

func TestPartnershipSpadesTeamWins(t *testing.T) {
	g := genome.CreatePartnershipSpadesGenome()
	stats, err := RunGenomeBatch(g, Options{Games: 6, Seats: []AIConfig{{Policy: PolicyRandom}}, Seed: 6001, Workers: 1})
	if err != nil {
		t.Fatalf("RunGenomeBatch failed: %v", err)
	}
	if stats.Errors != 0 {
		t.Fatalf("Partnership games errored: %d of %d", stats.Errors, stats.TotalGames)
	}
	if len(stats.TeamWins) != 2 {
		t.Fatalf("Expected 2 team-win buckets, got %d", len(stats.TeamWins))
	}

	decided := uint32(0)
	for _, w := range stats.Wins {
		decided += w
	}
	teamTotal := stats.TeamWins[0] + stats.TeamWins[1]
	if teamTotal != decided {
		t.Errorf("Team wins (%d) should match decided games (%d)", teamTotal, decided)
	}
}
