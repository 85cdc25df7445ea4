package simulation

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/signalnine/darwindeck/gosim/engine"
)

// RunBatchParallel plays a batch across opts.Workers goroutines and
// aggregates the results. Per-game seeds are fixed up front, so the
// outcome matches RunBatch for the same options regardless of worker
// count. Zero workers means one per CPU.
//
// When the process runs under an external process pool (the Python
// supervisor forks one worker per core), callers should pass
// Workers=1 and let the pool own the parallelism.
func RunBatchParallel(prog *engine.Program, opts Options) Stats {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > opts.Games {
		workers = opts.Games
	}
	if workers <= 1 {
		return RunBatch(prog, opts)
	}

	seeds := gameSeeds(opts.Seed, opts.Games)
	records := make([]GameRecord, opts.Games)

	var g errgroup.Group
	chunk := (opts.Games + workers - 1) / workers
	for lo := 0; lo < opts.Games; lo += chunk {
		lo, hi := lo, lo+chunk
		if hi > opts.Games {
			hi = opts.Games
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				records[i] = PlayGame(prog, opts.Seats, seeds[i], opts.Timeout)
			}
			return nil
		})
	}
	// Workers never fail; the group is only a join point.
	_ = g.Wait()

	return Aggregate(prog, records)
}
