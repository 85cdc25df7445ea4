package operators

import (
	"fmt"

	"github.com/signalnine/darwindeck/gosim/genome"
)

// CoherenceIssues lists the cross-mechanic contradictions in a genome:
// rule combinations that are individually legal but can never interact.
// The structural validator catches games the VM cannot run; this check
// catches games that run but whose parts ignore each other, like a
// capture win in a game where nothing captures.
func CoherenceIssues(g *genome.GameGenome) []string {
	var issues []string

	wantsCapture := g.HasWinCondition(genome.WinCaptureAll) ||
		g.HasWinCondition(genome.WinMostCaptured)
	if wantsCapture && !capturesCards(g) {
		issues = append(issues,
			"capture win condition but no mechanic captures cards (needs a war or match-rank tableau, or tricks)")
	}

	if g.Setup.StartingChips > 0 && !g.HasPhase(genome.PhaseTypeBetting) {
		issues = append(issues, fmt.Sprintf(
			"starting_chips %d but no betting phase to spend them in", g.Setup.StartingChips))
	}

	return issues
}

// Coherent reports whether the genome is free of cross-mechanic
// contradictions.
func Coherent(g *genome.GameGenome) bool {
	return len(CoherenceIssues(g)) == 0
}

// capturesCards reports whether any mechanic in the genome moves cards
// to the captured pile: war and match-rank tableaus capture on play,
// tricks capture when won.
func capturesCards(g *genome.GameGenome) bool {
	return g.TurnStructure.TableauMode == genome.TableauWar ||
		g.TurnStructure.TableauMode == genome.TableauMatchRank ||
		g.HasPhase(genome.PhaseTypeTrick)
}
