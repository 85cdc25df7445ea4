package simulation

import (
	"testing"

	"github.com/signalnine/darwindeck/gosim/engine"
	"github.com/signalnine/darwindeck/gosim/genome"
)

func benchProgram(b *testing.B) *engine.Program {
	b.Helper()
	prog, err := genome.Realize(genome.CreateWarGenome(), 2)
	if err != nil {
		b.Fatalf("Realize failed: %v", err)
	}
	return prog
}

// Serial and parallel batches at the sizes the evaluator actually uses.

func BenchmarkSerialBatch10(b *testing.B) {
	prog := benchProgram(b)
	opts := Options{Games: 10, Seats: []AIConfig{{Policy: PolicyRandom}}, Seed: 42}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunBatch(prog, opts)
	}
}

func BenchmarkSerialBatch100(b *testing.B) {
	prog := benchProgram(b)
	opts := Options{Games: 100, Seats: []AIConfig{{Policy: PolicyRandom}}, Seed: 42}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunBatch(prog, opts)
	}
}

func BenchmarkParallelBatch100(b *testing.B) {
	prog := benchProgram(b)
	opts := Options{Games: 100, Seats: []AIConfig{{Policy: PolicyRandom}}, Seed: 42}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunBatchParallel(prog, opts)
	}
}

func BenchmarkParallelBatch1000(b *testing.B) {
	prog := benchProgram(b)
	opts := Options{Games: 1000, Seats: []AIConfig{{Policy: PolicyRandom}}, Seed: 42}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunBatchParallel(prog, opts)
	}
}

// Policy comparison on a ruleset with real branching. War is all forced
// flips, so search policies only earn their keep on Crazy Eights.

func BenchmarkGreedyBatch100(b *testing.B) {
	prog, err := genome.Realize(genome.CreateCrazyEightsGenome(), 2)
	if err != nil {
		b.Fatalf("Realize failed: %v", err)
	}
	opts := Options{Games: 100, Seats: []AIConfig{{Policy: PolicyGreedy}}, Seed: 42}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunBatch(prog, opts)
	}
}

func BenchmarkMCTSBatch10(b *testing.B) {
	prog, err := genome.Realize(genome.CreateCrazyEightsGenome(), 2)
	if err != nil {
		b.Fatalf("Realize failed: %v", err)
	}
	opts := Options{Games: 10, Seats: []AIConfig{{Policy: PolicyMCTS, MCTSIterations: 100}}, Seed: 42}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunBatch(prog, opts)
	}
}

func BenchmarkThroughput(b *testing.B) {
	prog := benchProgram(b)
	opts := Options{Games: 1000, Seats: []AIConfig{{Policy: PolicyRandom}}, Seed: 42}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunBatchParallel(prog, opts)
	}
	b.StopTimer()
	gamesPerSec := float64(b.N*opts.Games) / b.Elapsed().Seconds()
	b.ReportMetric(gamesPerSec, "games/sec")
}
