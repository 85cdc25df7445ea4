package fitness

import (
	"math"
	"testing"

	"github.com/signalnine/darwindeck/gosim/genome"
	"github.com/signalnine/darwindeck/gosim/simulation"
)

func TestByNameResolvesPresets(t *testing.T) {
	for _, want := range Presets() {
		got, ok := ByName(want.Name)
		if !ok {
			t.Errorf("ByName(%q) not found", want.Name)
			continue
		}
		if got.Name != want.Name {
			t.Errorf("ByName(%q) resolved %q", want.Name, got.Name)
		}
	}

	if s, ok := ByName("  Trick-Taking "); !ok || s.Name != "trick-taking" {
		t.Error("ByName should trim and lowercase its argument")
	}
	if _, ok := ByName("speedrun"); ok {
		t.Error("ByName should reject unknown styles")
	}
}

func TestPresetWeightsNormalised(t *testing.T) {
	for _, s := range Presets() {
		if sum := s.Weights.Sum(); math.Abs(sum-1.0) > 0.01 {
			t.Errorf("style %q weights sum to %f, want ~1.0", s.Name, sum)
		}
	}
}

func TestPresetSessionWindows(t *testing.T) {
	for _, s := range Presets() {
		if s.OptimalMinutes <= 0 {
			t.Errorf("style %q has no optimal session length", s.Name)
		}
		if s.MaxMinutes <= s.OptimalMinutes {
			t.Errorf("style %q window %f..%f is inverted", s.Name, s.OptimalMinutes, s.MaxMinutes)
		}
	}

	for _, s := range Presets() {
		if s.MaxMinutes > Strategic.MaxMinutes {
			t.Errorf("style %q outlasts strategic, which should carry the longest window", s.Name)
		}
	}
}

func TestPartyStylePrefersSimpleLuck(t *testing.T) {
	if Party.Weights.RulesComplexity < 0.4 {
		t.Errorf("party rules weight = %f, want >= 0.4", Party.Weights.RulesComplexity)
	}
	if Party.Weights.SkillVsLuck > 0.1 {
		t.Errorf("party skill weight = %f, want <= 0.1", Party.Weights.SkillVsLuck)
	}

	for _, s := range Presets() {
		if s.InvertSkill != (s.Name == "party") {
			t.Errorf("style %q InvertSkill = %v", s.Name, s.InvertSkill)
		}
	}
}

func TestStrategicStyleWeightsSkill(t *testing.T) {
	if Strategic.Weights.SkillVsLuck < 0.2 {
		t.Errorf("strategic skill weight = %f, want >= 0.2", Strategic.Weights.SkillVsLuck)
	}
}

func TestBluffingStyleOwnsDeception(t *testing.T) {
	if Bluffing.Weights.BluffingDepth < 0.1 {
		t.Errorf("bluffing depth weight = %f, want >= 0.1", Bluffing.Weights.BluffingDepth)
	}
	if Bluffing.Weights.BettingEngagement < 0.1 {
		t.Errorf("betting engagement weight = %f, want >= 0.1", Bluffing.Weights.BettingEngagement)
	}

	for _, s := range Presets() {
		if s.Name != "bluffing" && s.Weights.BluffingDepth > 0 {
			t.Errorf("style %q weights bluffing depth; only the bluffing preset should", s.Name)
		}
	}
}

func TestStylesDiverge(t *testing.T) {
	g := genome.CreateWarGenome()
	st := &simulation.Stats{
		TotalGames:  100,
		Wins:        []uint32{50, 50},
		PlayerCount: 2,
		AvgTurns:    52.0,
	}

	balanced := Compute(g, st, Balanced).Total
	party := Compute(g, st, Party).Total
	strategic := Compute(g, st, Strategic).Total

	if math.Abs(balanced-party) < 0.001 && math.Abs(balanced-strategic) < 0.001 {
		t.Error("presets should rank the same batch differently")
	}
}
