package fitness

import "strings"

// Weights is a style's weight vector over the fitness metrics. The
// total renormalises by the sum, so vectors need not add up to one.
type Weights struct {
	DecisionDensity      float64
	ComebackPotential    float64
	TensionCurve         float64
	InteractionFrequency float64
	RulesComplexity      float64
	SkillVsLuck          float64
	BluffingDepth        float64
	BettingEngagement    float64
}

// Sum returns the renormalisation divisor.
func (w Weights) Sum() float64 {
	return w.DecisionDensity + w.ComebackPotential + w.TensionCurve +
		w.InteractionFrequency + w.RulesComplexity + w.SkillVsLuck +
		w.BluffingDepth + w.BettingEngagement
}

// Style bundles a weight vector with the session window the validity
// gate enforces. All of it is tuning data: presets below are starting
// points, not constants the rest of the code depends on.
type Style struct {
	Name    string
	Weights Weights

	// Session window in minutes. Estimated duration beyond MaxMinutes
	// invalidates the genome; shorter than OptimalMinutes only ramps
	// the reported session score down.
	OptimalMinutes float64
	MaxMinutes     float64

	// Party-style games want luck, so the skill metric flips.
	InvertSkill bool
}

// TurnSeconds is the empirical human turn time behind the session
// estimate. Calibrated against playtest recordings, not simulation.
var TurnSeconds = 2.0

// Rules complexity is weighted hard across every preset: complex games
// don't get played, because nobody learns rules they can't pick up in
// a couple of minutes.
var (
	Balanced = Style{
		Name: "balanced",
		Weights: Weights{
			DecisionDensity:      0.25,
			SkillVsLuck:          0.20,
			RulesComplexity:      0.18,
			ComebackPotential:    0.12,
			InteractionFrequency: 0.10,
			TensionCurve:         0.08,
			BettingEngagement:    0.07,
		},
		OptimalMinutes: 15,
		MaxMinutes:     60,
	}

	Strategic = Style{
		Name: "strategic",
		Weights: Weights{
			RulesComplexity:      0.30,
			SkillVsLuck:          0.27,
			DecisionDensity:      0.20,
			InteractionFrequency: 0.10,
			ComebackPotential:    0.08,
			TensionCurve:         0.05,
		},
		OptimalMinutes: 30,
		MaxMinutes:     90,
	}

	Bluffing = Style{
		Name: "bluffing",
		Weights: Weights{
			RulesComplexity:      0.35,
			BettingEngagement:    0.19,
			BluffingDepth:        0.18,
			InteractionFrequency: 0.08,
			DecisionDensity:      0.05,
			ComebackPotential:    0.05,
			TensionCurve:         0.05,
			SkillVsLuck:          0.05,
		},
		OptimalMinutes: 15,
		MaxMinutes:     45,
	}

	Party = Style{
		Name: "party",
		Weights: Weights{
			RulesComplexity:      0.50,
			InteractionFrequency: 0.14,
			ComebackPotential:    0.12,
			BettingEngagement:    0.10,
			TensionCurve:         0.06,
			DecisionDensity:      0.04,
			SkillVsLuck:          0.04,
		},
		OptimalMinutes: 10,
		MaxMinutes:     30,
		InvertSkill:    true,
	}

	TrickTaking = Style{
		Name: "trick-taking",
		Weights: Weights{
			RulesComplexity:      0.30,
			InteractionFrequency: 0.18,
			DecisionDensity:      0.15,
			SkillVsLuck:          0.15,
			TensionCurve:         0.12,
			ComebackPotential:    0.10,
		},
		OptimalMinutes: 20,
		MaxMinutes:     60,
	}
)

// Presets lists the built-in styles.
func Presets() []Style {
	return []Style{Balanced, Strategic, Bluffing, Party, TrickTaking}
}

// ByName resolves a style preset, case-insensitively. Unknown names
// report false.
func ByName(name string) (Style, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range Presets() {
		if s.Name == key {
			return s, true
		}
	}
	return Style{}, false
}
