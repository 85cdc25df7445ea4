package simulation

import (
	"fmt"

	"github.com/signalnine/darwindeck/gosim/genome"
)

// RunGenomeBatch compiles a typed genome down to a program and plays a
// batch of it. This is the evolution loop's entry point; the compile
// step is cheap next to the games it feeds.
func RunGenomeBatch(g *genome.GameGenome, opts Options) (Stats, error) {
	prog, err := genome.Realize(g, g.Players())
	if err != nil {
		return Stats{}, fmt.Errorf("realize genome %s: %w", g.ID, err)
	}
	return RunBatchParallel(prog, opts), nil
}

// RunMatchup plays a batch with seat 0 under one policy and every
// other seat under another. Skill measurement runs this twice with the
// policies swapped to cancel out the first-player advantage.
func RunMatchup(g *genome.GameGenome, games int, seat0, others AIConfig, seed uint64) (Stats, error) {
	prog, err := genome.Realize(g, g.Players())
	if err != nil {
		return Stats{}, fmt.Errorf("realize genome %s: %w", g.ID, err)
	}

	seats := make([]AIConfig, prog.PlayerCount)
	seats[0] = seat0
	for i := 1; i < len(seats); i++ {
		seats[i] = others
	}
	return RunBatchParallel(prog, Options{Games: games, Seats: seats, Seed: seed}), nil
}
