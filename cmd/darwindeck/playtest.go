package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/ratelimit"

	"github.com/signalnine/darwindeck/gosim/engine"
	"github.com/signalnine/darwindeck/gosim/genome"
	"github.com/signalnine/darwindeck/gosim/simulation"
)

func playtestCommand() *cli.Command {
	return &cli.Command{
		Name:      "playtest",
		Usage:     "watch one auto-played game of a genome",
		ArgsUsage: "<genome.json | known game id>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "game seed",
			},
			&cli.IntFlag{
				Name:  "speed",
				Value: 4,
				Usage: "moves rendered per second (0 = no pacing)",
			},
			&cli.StringFlag{
				Name:  "ai",
				Value: "greedy",
				Usage: "policy for every seat: random, greedy, or mcts",
			},
			&cli.IntFlag{
				Name:  "mcts-iterations",
				Value: 200,
				Usage: "search budget per move with --ai mcts",
			},
		},
		Action:       runPlaytest,
		OnUsageError: reportUsageError,
	}
}

func runPlaytest(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return usageErrorf("playtest needs a genome file or a known game id")
	}
	g, err := loadGenomeArg(cmd.Args().First())
	if err != nil {
		return usageError{err}
	}

	prog, err := genome.Realize(g, g.Players())
	if err != nil {
		return fmt.Errorf("compile %s: %w", g.ID, err)
	}

	seat, err := seatFromName(cmd.String("ai"), int(cmd.Int("mcts-iterations")))
	if err != nil {
		return usageError{err}
	}

	title := g.ID
	if title == "" {
		title = "unnamed variant"
	}
	fmt.Printf("%s: %d players, seed %d, %s seats\n\n",
		title, prog.PlayerCount, cmd.Int("seed"), cmd.String("ai"))

	limiter := pacer(int(cmd.Int("speed")))
	moveNo := 0
	res := simulation.TraceGame(ctx, prog, []simulation.AIConfig{seat}, uint64(cmd.Int("seed")),
		func(s *engine.GameState, move engine.LegalMove) {
			limiter.Take()
			moveNo++
			fmt.Printf("%4d  %s\n", moveNo, renderMove(s, prog, move))
		})

	fmt.Println()
	switch {
	case res.Err == "canceled":
		return errInterrupted
	case res.WinningTeam >= 0:
		fmt.Printf("team %d wins after %d turns\n", res.WinningTeam+1, res.Turns)
	case res.Winner >= 0:
		fmt.Printf("player %d wins after %d turns\n", res.Winner+1, res.Turns)
	case res.Err != "":
		fmt.Printf("no result after %d turns (%s)\n", res.Turns, res.Err)
	default:
		fmt.Printf("draw after %d turns\n", res.Turns)
	}
	printScores(res.Scores)
	return nil
}

// pacer builds the move-rate limiter. Zero or negative speed renders
// as fast as the terminal accepts.
func pacer(speed int) ratelimit.Limiter {
	if speed <= 0 {
		return ratelimit.NewUnlimited()
	}
	return ratelimit.New(speed)
}

func seatFromName(name string, mctsIterations int) (simulation.AIConfig, error) {
	switch name {
	case "random":
		return simulation.AIConfig{Policy: simulation.PolicyRandom}, nil
	case "greedy":
		return simulation.AIConfig{Policy: simulation.PolicyGreedy}, nil
	case "mcts":
		return simulation.AIConfig{Policy: simulation.PolicyMCTS, MCTSIterations: mctsIterations}, nil
	default:
		return simulation.AIConfig{}, fmt.Errorf("unknown ai %q (random, greedy, or mcts)", name)
	}
}

// loadGenomeArg loads a genome from a JSON file, or from the seed
// catalogue when the argument names a known game instead of a file.
func loadGenomeArg(arg string) (*genome.GameGenome, error) {
	data, err := os.ReadFile(arg)
	switch {
	case err == nil:
		g, perr := genome.LoadGenomeFromJSON(data)
		if perr != nil {
			return nil, fmt.Errorf("parse %s: %w", arg, perr)
		}
		return g, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", arg, err)
	}

	for _, g := range genome.GetSeedGenomes() {
		if g.ID == arg || g.ID == "seed-"+arg {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%q is neither a genome file nor a known game", arg)
}

func printScores(scores []int32) {
	any := false
	for _, sc := range scores {
		if sc != 0 {
			any = true
			break
		}
	}
	if !any {
		return
	}
	parts := make([]string, len(scores))
	for i, sc := range scores {
		parts[i] = fmt.Sprintf("player %d: %d", i+1, sc)
	}
	fmt.Printf("scores: %s\n", strings.Join(parts, ", "))
}

// renderMove puts one chosen move into words. It reads the pre-apply
// state, so hand indices still point at the cards about to leave.
func renderMove(s *engine.GameState, prog *engine.Program, move engine.LegalMove) string {
	seat := int(s.CurrentPlayer) + 1
	idx := move.CardIndex

	switch {
	case engine.IsBettingMove(idx):
		return fmt.Sprintf("player %d %s", seat, bettingVerb(engine.DecodeBettingAction(idx)))
	case engine.IsRankSetMove(idx):
		rank := strings.ToLower(engine.RankName(engine.DecodeRankSet(idx)))
		return fmt.Sprintf("player %d plays a set of %ss", seat, rank)
	case engine.IsBidMove(idx):
		bid := engine.DecodeBid(idx)
		if bid == 0 && move.TargetLoc == engine.LocationDiscard {
			return fmt.Sprintf("player %d bids nil", seat)
		}
		return fmt.Sprintf("player %d bids %d", seat, bid)
	}

	var tag uint8
	if int(move.PhaseIndex) < len(prog.Phases) {
		tag = prog.Phases[move.PhaseIndex].Tag
	}

	switch idx {
	case engine.MoveDraw: // MoveChallenge shares the encoding
		if tag == engine.PhaseClaim {
			return fmt.Sprintf("player %d challenges the claim", seat)
		}
		return fmt.Sprintf("player %d draws from %s", seat, pileName(prog.Phases[move.PhaseIndex].DrawSource))
	case engine.MoveAccept:
		return fmt.Sprintf("player %d lets the claim stand", seat)
	case engine.MoveStand:
		return fmt.Sprintf("player %d stands", seat)
	case engine.MovePlayPass:
		return fmt.Sprintf("player %d passes", seat)
	}

	card := "a card"
	if hand := s.Players[s.CurrentPlayer].Hand; int(idx) < len(hand) {
		card = hand[idx].String()
	}
	switch tag {
	case engine.PhaseTrick:
		return fmt.Sprintf("player %d plays %s to the trick", seat, card)
	case engine.PhaseDiscard:
		return fmt.Sprintf("player %d discards %s", seat, card)
	case engine.PhaseClaim:
		claimed := strings.ToLower(engine.RankName(engine.ClaimedRank(s.Turn)))
		return fmt.Sprintf("player %d plays face down, claiming a %s", seat, claimed)
	default:
		return fmt.Sprintf("player %d plays %s to %s", seat, card, pileName(move.TargetLoc))
	}
}

func bettingVerb(action engine.BettingAction) string {
	switch action {
	case engine.BetCheck:
		return "checks"
	case engine.BetBet:
		return "bets"
	case engine.BetCall:
		return "calls"
	case engine.BetRaise:
		return "raises"
	case engine.BetAllIn:
		return "goes all in"
	case engine.BetFold:
		return "folds"
	default:
		return "acts"
	}
}

func pileName(loc uint8) string {
	switch loc {
	case engine.LocationDeck:
		return "the deck"
	case engine.LocationHand:
		return "an opponent's hand"
	case engine.LocationDiscard:
		return "the discard pile"
	case engine.LocationTableau:
		return "the tableau"
	default:
		return "the table"
	}
}
