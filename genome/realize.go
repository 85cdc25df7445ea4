package genome

import (
	"fmt"

	"github.com/signalnine/darwindeck/gosim/engine"
)

// Realize compiles a genome and parses the result into a runnable
// program. The round trip through bytecode keeps the typed layer and
// the wire format from drifting apart: whatever the simulator runs is
// exactly what an exported artefact would replay.
//
// Team assignments do not travel in bytecode; they are attached to the
// parsed program as a dense seat-to-team table.
func Realize(g *GameGenome, playerCount int) (*engine.Program, error) {
	code, err := Compile(g, playerCount)
	if err != nil {
		return nil, err
	}
	prog, err := engine.ParseProgram(code)
	if err != nil {
		return nil, fmt.Errorf("parse compiled genome: %w", err)
	}

	if g.Teams != nil && g.Teams.Enabled {
		teams := make([]int8, prog.PlayerCount)
		for i := range teams {
			teams[i] = -1
		}
		for ti, seats := range g.Teams.Teams {
			for _, seat := range seats {
				if seat < 0 || seat >= prog.PlayerCount {
					return nil, compileErrorf("teams", "seat %d outside player count %d", seat, prog.PlayerCount)
				}
				if teams[seat] != -1 {
					return nil, compileErrorf("teams", "seat %d assigned to two teams", seat)
				}
				teams[seat] = int8(ti)
			}
		}
		prog.Teams = teams
	}
	return prog, nil
}
