package evolution

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/signalnine/darwindeck/gosim/genome"
	"github.com/signalnine/darwindeck/gosim/simulation"
)

// SkillSpec sizes a skill re-evaluation round.
type SkillSpec struct {
	// Games is the budget per measurement; each win rate splits it
	// across the two seat orders.
	Games   int
	Workers int
	Seed    uint64
}

// SkillReport holds one genome's benchmark results. Win rates are
// seat-order corrected: the measured policy plays seat 0 in half the
// games and the remaining seats in the other half, which puts the
// no-skill baseline at 0.5 regardless of player count.
type SkillReport struct {
	GreedyWinRate        float64
	MCTSWinRate          float64
	FirstPlayerAdvantage float64
}

// Penalty converts the report into a fitness multiplier: 20% off when
// neither baseline clears the skill bar, another 20% when seat order
// decides games.
func (r SkillReport) Penalty() float64 {
	mult := 1.0
	if math.Max(r.GreedyWinRate, r.MCTSWinRate) < 0.6 {
		mult *= 0.8
	}
	if math.Abs(r.FirstPlayerAdvantage) > 0.3 {
		mult *= 0.8
	}
	return mult
}

// EvaluateSkill benchmarks one genome: greedy against random, search
// against random, and the first-player advantage left over once policy
// strength cancels across the swapped runs.
func EvaluateSkill(g *genome.GameGenome, games int, seed uint64) (SkillReport, error) {
	half := games / 2
	if half < 1 {
		half = 1
	}

	random := simulation.AIConfig{Policy: simulation.PolicyRandom}
	greedy := simulation.AIConfig{Policy: simulation.PolicyGreedy}
	search := simulation.AIConfig{Policy: simulation.PolicyMCTS, MCTSIterations: 100}

	greedyFwd, err := simulation.RunMatchup(g, half, greedy, random, seed)
	if err != nil {
		return SkillReport{}, err
	}
	greedyRev, err := simulation.RunMatchup(g, half, random, greedy, seed+1)
	if err != nil {
		return SkillReport{}, err
	}
	searchFwd, err := simulation.RunMatchup(g, half, search, random, seed+2)
	if err != nil {
		return SkillReport{}, err
	}
	searchRev, err := simulation.RunMatchup(g, half, random, search, seed+3)
	if err != nil {
		return SkillReport{}, err
	}

	return SkillReport{
		GreedyWinRate:        swappedWinRate(&greedyFwd, &greedyRev),
		MCTSWinRate:          swappedWinRate(&searchFwd, &searchRev),
		FirstPlayerAdvantage: seatBias(&greedyFwd, &greedyRev),
	}, nil
}

// swappedWinRate credits the measured policy with seat 0's wins in the
// forward run and every other seat's wins in the reverse run. Draws
// count as games without counting as wins.
func swappedWinRate(fwd, rev *simulation.Stats) float64 {
	var wins, decided uint32

	decided += fwd.TotalGames - fwd.Errors
	if len(fwd.Wins) > 0 {
		wins += fwd.Wins[0]
	}

	decided += rev.TotalGames - rev.Errors
	for seat := 1; seat < len(rev.Wins); seat++ {
		wins += rev.Wins[seat]
	}

	if decided == 0 {
		return 0
	}
	return float64(wins) / float64(decided)
}

// seatBias is the seat-0 minus seat-1 win rate averaged over both seat
// orders. Each seat hosts each policy once across the pair, so what
// remains is turn-order advantage, not policy strength.
func seatBias(fwd, rev *simulation.Stats) float64 {
	rate := func(st *simulation.Stats, seat int) float64 {
		decided := st.TotalGames - st.Errors
		if decided == 0 || seat >= len(st.Wins) {
			return 0
		}
		return float64(st.Wins[seat]) / float64(decided)
	}
	seat0 := (rate(fwd, 0) + rate(rev, 0)) / 2
	seat1 := (rate(fwd, 1) + rate(rev, 1)) / 2
	return seat0 - seat1
}

// RankSkill benchmarks the finalists concurrently, one report per
// individual in input order. The first failure cancels the rest.
func RankSkill(ctx context.Context, finalists []*Individual, spec SkillSpec) ([]SkillReport, error) {
	reports := make([]SkillReport, len(finalists))

	workers := spec.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, ind := range finalists {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Four runs per report, so seeds step by four.
			rep, err := EvaluateSkill(ind.Genome, spec.Games, spec.Seed+uint64(i)*4)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
