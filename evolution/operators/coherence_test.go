package operators

import (
	"testing"

	"github.com/signalnine/darwindeck/gosim/genome"
)

func TestCoherenceFlagsOrphanedCaptureWin(t *testing.T) {
	g := genome.CreateWarGenome()
	g.TurnStructure.TableauMode = genome.TableauNone

	issues := CoherenceIssues(g)
	if len(issues) == 0 {
		t.Fatal("capture win with no capture mechanic went unflagged")
	}
}

func TestCoherenceAcceptsTricksAsCaptureSource(t *testing.T) {
	// Whist-style games capture through tricks, not the tableau.
	g := genome.CreateScotchWhistGenome()
	if g.TurnStructure.TableauMode != genome.TableauNone {
		t.Fatal("test wants a game that captures only through tricks")
	}

	if issues := CoherenceIssues(g); len(issues) > 0 {
		t.Errorf("trick capture flagged as orphaned: %v", issues)
	}
}

func TestCoherenceFlagsOrphanedChips(t *testing.T) {
	g := genome.CreateWarGenome()
	g.Setup.StartingChips = 500

	issues := CoherenceIssues(g)
	if len(issues) == 0 {
		t.Fatal("chips with no betting phase went unflagged")
	}
	if Coherent(g) {
		t.Error("Coherent disagrees with CoherenceIssues")
	}
}

func TestSeedGenomesAreCoherent(t *testing.T) {
	for _, g := range genome.GetSeedGenomes() {
		if issues := CoherenceIssues(g); len(issues) > 0 {
			t.Errorf("%s: %v", g.ID, issues)
		}
	}
}
