package simulation

import (
	"sort"
	"time"

	"github.com/signalnine/darwindeck/gosim/engine"
)

// Options configure a batch run. Seats assigns one policy per seat; a
// single entry is broadcast to every seat. Workers only matters for
// the parallel entry points.
type Options struct {
	Games   int
	Seats   []AIConfig
	Seed    uint64
	Timeout time.Duration
	Workers int
}

// Stats aggregates a batch of games into the shape the fitness
// evaluator and the supervisor consume. Counter blocks are summed
// across games; the tension figures are per-game means plus a count
// of comeback wins.
type Stats struct {
	TotalGames  uint32
	Wins        []uint32
	Draws       uint32
	Errors      uint32
	PlayerCount uint8
	AvgTurns    float32
	MedianTurns uint32
	AvgDuration time.Duration

	Decisions DecisionCounters
	Contact   ContactCounters
	Bluffing  BluffCounters
	Betting   BetCounters

	LeadChangesPerGame float32
	ClosestMargin      float32
	DecisivePct        float32
	TrailingWinners    uint32

	// TeamWins is nil for free-for-all rulesets.
	TeamWins []uint32
}

// LeadChangesTotal reconstructs the summed lead-change count for wire
// formats that carry totals rather than means.
func (st *Stats) LeadChangesTotal() uint32 {
	decided := st.TotalGames - st.Errors
	return uint32(st.LeadChangesPerGame * float32(decided))
}

// RunBatch plays opts.Games games of prog serially and aggregates
// them. Game seeds derive from opts.Seed, so a batch is reproducible
// regardless of worker count.
func RunBatch(prog *engine.Program, opts Options) Stats {
	seeds := gameSeeds(opts.Seed, opts.Games)
	records := make([]GameRecord, opts.Games)
	for i := range records {
		records[i] = PlayGame(prog, opts.Seats, seeds[i], opts.Timeout)
	}
	return Aggregate(prog, records)
}

// gameSeeds expands one batch seed into per-game seeds.
func gameSeeds(seed uint64, n int) []uint64 {
	seeds := make([]uint64, n)
	x := seed
	for i := range seeds {
		// splitmix64 step
		x += 0x9e3779b97f4a7c15
		z := x
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		seeds[i] = z ^ (z >> 31)
	}
	return seeds
}

// Aggregate folds game records into batch statistics.
func Aggregate(prog *engine.Program, records []GameRecord) Stats {
	st := Stats{
		TotalGames:  uint32(len(records)),
		PlayerCount: uint8(prog.PlayerCount),
		Wins:        make([]uint32, prog.PlayerCount),
	}
	if len(prog.Teams) > 0 {
		teams := 0
		for _, t := range prog.Teams {
			if int(t)+1 > teams {
				teams = int(t) + 1
			}
		}
		st.TeamWins = make([]uint32, teams)
	}

	turns := make([]int32, 0, len(records))
	var totalTurns, totalDuration uint64
	var tensionGames uint32
	var leadChanges, closestMargin, decisivePct float64

	for i := range records {
		rec := &records[i]
		if rec.Err != "" {
			st.Errors++
			continue
		}

		if rec.Winner >= 0 && int(rec.Winner) < len(st.Wins) {
			st.Wins[rec.Winner]++
			if st.TeamWins != nil && rec.WinningTeam >= 0 && int(rec.WinningTeam) < len(st.TeamWins) {
				st.TeamWins[rec.WinningTeam]++
			}
		} else {
			st.Draws++
		}

		turns = append(turns, rec.Turns)
		totalTurns += uint64(rec.Turns)
		totalDuration += uint64(rec.Duration)

		addDecisions(&st.Decisions, &rec.Decisions)
		addContact(&st.Contact, &rec.Contact)
		addBluffing(&st.Bluffing, &rec.Bluffing)
		addBetting(&st.Betting, &rec.Betting)

		tensionGames++
		leadChanges += float64(rec.Tension.LeadChanges)
		closestMargin += float64(rec.Tension.ClosestMargin)
		decisivePct += float64(rec.Tension.DecisivePct)
		if rec.Winner >= 0 && rec.Tension.Trailing {
			st.TrailingWinners++
		}
	}

	if n := len(turns); n > 0 {
		st.AvgTurns = float32(totalTurns) / float32(n)
		sort.Slice(turns, func(i, j int) bool { return turns[i] < turns[j] })
		mid := n / 2
		if n%2 == 0 {
			st.MedianTurns = uint32(turns[mid-1]+turns[mid]) / 2
		} else {
			st.MedianTurns = uint32(turns[mid])
		}
	}
	if st.TotalGames > 0 {
		st.AvgDuration = time.Duration(totalDuration / uint64(st.TotalGames))
	}
	if tensionGames > 0 {
		st.LeadChangesPerGame = float32(leadChanges / float64(tensionGames))
		st.ClosestMargin = float32(closestMargin / float64(tensionGames))
		st.DecisivePct = float32(decisivePct / float64(tensionGames))
	}
	return st
}

func addDecisions(dst, src *DecisionCounters) {
	dst.Decisions += src.Decisions
	dst.ValidMoves += src.ValidMoves
	dst.Forced += src.Forced
	dst.HandSizes += src.HandSizes
	dst.Actions += src.Actions
	dst.Interactions += src.Interactions
}

func addContact(dst, src *ContactCounters) {
	dst.Disruptions += src.Disruptions
	dst.Contentions += src.Contentions
	dst.ForcedResponses += src.ForcedResponses
	dst.OpponentTurns += src.OpponentTurns
}

func addBluffing(dst, src *BluffCounters) {
	dst.Claims += src.Claims
	dst.Bluffs += src.Bluffs
	dst.Challenges += src.Challenges
	dst.BluffsLanded += src.BluffsLanded
	dst.Catches += src.Catches
}

func addBetting(dst, src *BetCounters) {
	dst.Bets += src.Bets
	dst.Bluffs += src.Bluffs
	dst.AllIns += src.AllIns
	dst.FoldWins += src.FoldWins
	dst.ShowdownWins += src.ShowdownWins
}
