// Command darwindeck evolves playable card games and inspects the
// results. evolve runs the search, playtest renders one game of a
// saved genome move by move, and rulebook prints a genome as rules a
// person could learn.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// usageError marks a complaint about the invocation, as opposed to a
// failure of the run itself. Exit codes: 0 success, 1 usage, 2
// internal; an interrupted run exits 130 after checkpointing.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// errInterrupted reports a run stopped by a signal after its
// checkpoint was saved.
var errInterrupted = errors.New("interrupted")

func reportUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return usageError{err}
}

func exitCode(err error) int {
	var ue usageError
	switch {
	case errors.Is(err, errInterrupted):
		return 130
	case errors.As(err, &ue):
		return 1
	default:
		return 2
	}
}

func main() {
	root := &cli.Command{
		Name:  "darwindeck",
		Usage: "evolve card games and inspect the results",
		Commands: []*cli.Command{
			evolveCommand(),
			playtestCommand(),
			rulebookCommand(),
		},
		OnUsageError: reportUsageError,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "darwindeck: %v\n", err)
		os.Exit(exitCode(err))
	}
}
