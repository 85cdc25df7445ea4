// The cgo bridge exports batch simulation to the Python supervisor as
// a C shared library. One call carries a BatchRequest of compiled
// bytecode programs in and a BatchResponse of aggregated stats out;
// the supervisor never sees genome JSON or per-game records.
package main

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"
import (
	"unsafe"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/signalnine/darwindeck/gosim/bindings/cardsim"
	"github.com/signalnine/darwindeck/gosim/engine"
	"github.com/signalnine/darwindeck/gosim/simulation"
)

//export SimulateBatch
func SimulateBatch(requestPtr unsafe.Pointer, requestLen C.int, responseLen *C.int) unsafe.Pointer {
	requestBytes := C.GoBytes(requestPtr, requestLen)
	batch := cardsim.GetRootAsBatchRequest(requestBytes, 0)

	builder := flatbuffers.NewBuilder(1024)

	// Requests run sequentially and each batch runs single-worker.
	// The supervisor already fans genomes out across worker processes,
	// and goroutines spawned under a forked CPython have hung before,
	// so parallelism stays on the Python side of this boundary.
	count := batch.RequestsLength()
	results := make([]flatbuffers.UOffsetT, count)
	for i := 0; i < count; i++ {
		req := new(cardsim.SimulationRequest)
		if !batch.Requests(req, i) {
			continue
		}
		results[i] = runRequest(builder, req)
	}

	cardsim.BatchResponseStartResultsVector(builder, count)
	for i := count - 1; i >= 0; i-- {
		builder.PrependUOffsetT(results[i])
	}
	resultsVec := builder.EndVector(count)

	cardsim.BatchResponseStart(builder)
	cardsim.BatchResponseAddBatchId(builder, batch.BatchId())
	cardsim.BatchResponseAddResults(builder, resultsVec)
	builder.Finish(cardsim.BatchResponseEnd(builder))

	responseBytes := builder.FinishedBytes()
	*responseLen = C.int(len(responseBytes))

	// The response crosses the language boundary in C memory; the
	// caller frees it through FreeResponse.
	cBytes := C.malloc(C.size_t(len(responseBytes)))
	if cBytes == nil {
		*responseLen = 0
		return nil
	}
	C.memcpy(cBytes, unsafe.Pointer(&responseBytes[0]), C.size_t(len(responseBytes)))
	return cBytes
}

//export FreeResponse
func FreeResponse(ptr unsafe.Pointer) {
	C.free(ptr)
}

// runRequest plays one request's batch and serializes the aggregate.
// A bad request reports every game as an error rather than failing the
// whole batch; the supervisor scores such genomes, it does not crash.
func runRequest(builder *flatbuffers.Builder, req *cardsim.SimulationRequest) flatbuffers.UOffsetT {
	prog, err := engine.ParseProgram(req.GenomeBytecodeBytes())
	if err != nil {
		return serializeStats(builder, simulation.Stats{
			TotalGames: req.NumGames(),
			Errors:     req.NumGames(),
		})
	}

	// The bytecode bakes in its own player count. A request compiled
	// for a different table size would deal the wrong hands, so a
	// mismatch is an error, not a fallback.
	if pc := int(req.PlayerCount()); pc != 0 && pc != prog.PlayerCount {
		return serializeStats(builder, simulation.Stats{
			TotalGames:  req.NumGames(),
			Errors:      req.NumGames(),
			PlayerCount: uint8(prog.PlayerCount),
		})
	}

	st := simulation.RunBatch(prog, simulation.Options{
		Games:   int(req.NumGames()),
		Seats:   requestSeats(req, prog.PlayerCount),
		Seed:    req.RandomSeed(),
		Workers: 1,
	})
	return serializeStats(builder, st)
}

// requestSeats resolves the per-seat AI configs. The ai_types vector
// wins over the legacy two-seat fields; both store wire tag plus one
// so that zero can mean "use the batch default".
func requestSeats(req *cardsim.SimulationRequest, playerCount int) []simulation.AIConfig {
	base := seatFromWire(req.AiPlayerType(), int(req.MctsIterations()))
	seats := make([]simulation.AIConfig, playerCount)
	for p := range seats {
		seats[p] = base
	}

	if n := req.AiTypesLength(); n > 0 {
		for p := 0; p < playerCount && p < n; p++ {
			if tag := req.AiTypes(p); tag > 0 {
				seats[p] = seatFromWire(tag-1, int(req.MctsIterations()))
			}
		}
		return seats
	}

	if tag := req.Player0AiType(); tag > 0 {
		seats[0] = seatFromWire(tag-1, int(req.MctsIterations()))
	}
	if tag := req.Player1AiType(); tag > 0 && playerCount > 1 {
		seats[1] = seatFromWire(tag-1, int(req.MctsIterations()))
	}
	return seats
}

// seatFromWire decodes one ai tag. An explicit iteration budget in the
// request overrides the tag's built-in one.
func seatFromWire(tag uint8, mctsIterations int) simulation.AIConfig {
	cfg := simulation.AIConfigFromWire(tag)
	if cfg.Policy == simulation.PolicyMCTS && mctsIterations > 0 {
		cfg.MCTSIterations = mctsIterations
	}
	return cfg
}

// serializeStats writes one aggregate into the builder. Vectors must
// be built before the table starts.
func serializeStats(builder *flatbuffers.Builder, st simulation.Stats) flatbuffers.UOffsetT {
	var winsOffset flatbuffers.UOffsetT
	if len(st.Wins) > 0 {
		cardsim.AggregatedStatsStartWinsVector(builder, len(st.Wins))
		for i := len(st.Wins) - 1; i >= 0; i-- {
			builder.PrependUint32(st.Wins[i])
		}
		winsOffset = builder.EndVector(len(st.Wins))
	}
	var teamWinsOffset flatbuffers.UOffsetT
	if len(st.TeamWins) > 0 {
		cardsim.AggregatedStatsStartTeamWinsVector(builder, len(st.TeamWins))
		for i := len(st.TeamWins) - 1; i >= 0; i-- {
			builder.PrependUint32(st.TeamWins[i])
		}
		teamWinsOffset = builder.EndVector(len(st.TeamWins))
	}

	// Old supervisors read the two-seat pair instead of the vector.
	var player0Wins, player1Wins uint32
	if len(st.Wins) > 0 {
		player0Wins = st.Wins[0]
	}
	if len(st.Wins) > 1 {
		player1Wins = st.Wins[1]
	}

	cardsim.AggregatedStatsStart(builder)
	cardsim.AggregatedStatsAddTotalGames(builder, st.TotalGames)
	cardsim.AggregatedStatsAddPlayer0Wins(builder, player0Wins)
	cardsim.AggregatedStatsAddPlayer1Wins(builder, player1Wins)
	cardsim.AggregatedStatsAddDraws(builder, st.Draws)
	cardsim.AggregatedStatsAddAvgTurns(builder, st.AvgTurns)
	cardsim.AggregatedStatsAddMedianTurns(builder, st.MedianTurns)
	cardsim.AggregatedStatsAddAvgDurationNs(builder, uint64(st.AvgDuration))
	cardsim.AggregatedStatsAddErrors(builder, st.Errors)
	cardsim.AggregatedStatsAddTotalDecisions(builder, st.Decisions.Decisions)
	cardsim.AggregatedStatsAddTotalValidMoves(builder, st.Decisions.ValidMoves)
	cardsim.AggregatedStatsAddForcedDecisions(builder, st.Decisions.Forced)
	cardsim.AggregatedStatsAddTotalHandSize(builder, st.Decisions.HandSizes)
	cardsim.AggregatedStatsAddTotalInteractions(builder, st.Decisions.Interactions)
	cardsim.AggregatedStatsAddTotalActions(builder, st.Decisions.Actions)
	cardsim.AggregatedStatsAddTotalClaims(builder, st.Bluffing.Claims)
	cardsim.AggregatedStatsAddTotalBluffs(builder, st.Bluffing.Bluffs)
	cardsim.AggregatedStatsAddTotalChallenges(builder, st.Bluffing.Challenges)
	cardsim.AggregatedStatsAddSuccessfulBluffs(builder, st.Bluffing.BluffsLanded)
	cardsim.AggregatedStatsAddSuccessfulCatches(builder, st.Bluffing.Catches)
	cardsim.AggregatedStatsAddTotalBets(builder, st.Betting.Bets)
	cardsim.AggregatedStatsAddBettingBluffs(builder, st.Betting.Bluffs)
	cardsim.AggregatedStatsAddFoldWins(builder, st.Betting.FoldWins)
	cardsim.AggregatedStatsAddShowdownWins(builder, st.Betting.ShowdownWins)
	cardsim.AggregatedStatsAddAllInCount(builder, st.Betting.AllIns)
	cardsim.AggregatedStatsAddLeadChanges(builder, st.LeadChangesTotal())
	cardsim.AggregatedStatsAddDecisiveTurnPct(builder, st.DecisivePct)
	cardsim.AggregatedStatsAddClosestMargin(builder, st.ClosestMargin)
	cardsim.AggregatedStatsAddTrailingWinners(builder, st.TrailingWinners)
	cardsim.AggregatedStatsAddMoveDisruptionEvents(builder, st.Contact.Disruptions)
	cardsim.AggregatedStatsAddContentionEvents(builder, st.Contact.Contentions)
	cardsim.AggregatedStatsAddForcedResponseEvents(builder, st.Contact.ForcedResponses)
	cardsim.AggregatedStatsAddOpponentTurnCount(builder, st.Contact.OpponentTurns)
	if winsOffset > 0 {
		cardsim.AggregatedStatsAddWins(builder, winsOffset)
	}
	cardsim.AggregatedStatsAddPlayerCount(builder, st.PlayerCount)
	if teamWinsOffset > 0 {
		cardsim.AggregatedStatsAddTeamWins(builder, teamWinsOffset)
	}
	return cardsim.AggregatedStatsEnd(builder)
}

func main() {} // Required for CGo
