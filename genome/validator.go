package genome

import (
	"fmt"
)

// StandardDeckSize is the number of cards in a standard deck.
const StandardDeckSize = 52

// DefaultPlayerCount is used when a genome does not specify one.
const DefaultPlayerCount = 2

// MaxPlayers is the most seats a game can deal.
const MaxPlayers = 4

// ValidationError is one structural problem found in a genome.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// GenomeValidator runs the structural gate: checks that a genome
// describes a game the bytecode VM can run at all. Genomes that fail
// are assigned zero fitness without ever reaching the simulator.
// Cross-mechanic coherence (capture wins without a capturing tableau
// and the like) is the evolution layer's coherence checker's concern.
type GenomeValidator struct{}

// Validate returns every structural error found; an empty slice means
// the genome is structurally sound.
func (v *GenomeValidator) Validate(genome *GameGenome) []ValidationError {
	var errors []ValidationError

	playerCount := genome.Players()
	if playerCount < 2 || playerCount > MaxPlayers {
		errors = append(errors, ValidationError{
			Field:   "player_count",
			Message: fmt.Sprintf("player count %d out of range 2..%d", playerCount, MaxPlayers),
		})
	}

	if genome.TurnStructure.MaxTurns <= 0 {
		errors = append(errors, ValidationError{
			Field:   "turn_structure.max_turns",
			Message: "max_turns must be positive",
		})
	}

	// The deal cannot exceed the deck.
	cardsNeeded := genome.Setup.CardsPerPlayer*playerCount + genome.Setup.DealToTableau
	if cardsNeeded > StandardDeckSize {
		errors = append(errors, ValidationError{
			Field:   "setup.cards_per_player",
			Message: fmt.Sprintf("setup deals %d cards but the deck only has %d", cardsNeeded, StandardDeckSize),
		})
	}

	if len(genome.WinConditions) == 0 {
		errors = append(errors, ValidationError{
			Field:   "win_conditions",
			Message: "at least one win condition is required",
		})
	}

	winTypes := make(map[WinConditionType]bool)
	for _, wc := range genome.WinConditions {
		winTypes[wc.Type] = true
	}

	// Score-based wins need something that produces scores: explicit
	// card scoring rules or contract scoring from a bidding phase.
	hasScoreWin := winTypes[WinHighScore] || winTypes[WinLowScore] || winTypes[WinFirstToScore]
	if hasScoreWin && len(genome.CardScoring) == 0 && !genome.HasPhase(PhaseTypeBidding) {
		errors = append(errors, ValidationError{
			Field:   "win_conditions",
			Message: "score-based win condition requires card_scoring or contract scoring",
		})
	}

	// A best-hand showdown needs a way to rate hands.
	if winTypes[WinBestHand] {
		hasEval := genome.HandEvaluation != nil && genome.HandEvaluation.Method != HandEvalNone
		if !hasEval {
			errors = append(errors, ValidationError{
				Field:   "win_conditions",
				Message: "best_hand win condition requires a hand_evaluation method",
			})
		}
	}

	// Betting is meaningless without chips to bet.
	if genome.HasPhase(PhaseTypeBetting) && genome.Setup.StartingChips <= 0 {
		errors = append(errors, ValidationError{
			Field:   "setup.starting_chips",
			Message: "betting phase requires setup.starting_chips > 0",
		})
	}

	// Hand patterns must be internally consistent.
	if genome.HandEvaluation != nil {
		for _, pattern := range genome.HandEvaluation.Patterns {
			if len(pattern.SameRankGroups) > 0 && pattern.RequiredCount > 0 {
				groupSum := 0
				for _, g := range pattern.SameRankGroups {
					groupSum += g
				}
				if groupSum > pattern.RequiredCount {
					errors = append(errors, ValidationError{
						Field: "hand_evaluation.patterns",
						Message: fmt.Sprintf("pattern %q: same_rank_groups sum (%d) exceeds required_count (%d)",
							pattern.Name, groupSum, pattern.RequiredCount),
					})
				}
			}
		}
	}

	// The game has to move cards; betting and bidding alone make a
	// staring contest. Exception: a pure showdown game (deal, bet,
	// compare hands) never moves a card and is still a game.
	hasCardPlay := false
	for _, phase := range genome.TurnStructure.Phases {
		switch phase.(type) {
		case *PlayPhase, *DrawPhase, *DiscardPhase, *TrickPhase, *ClaimPhase:
			hasCardPlay = true
		}
	}
	isShowdown := genome.HasPhase(PhaseTypeBetting) && winTypes[WinBestHand]
	if !hasCardPlay && !isShowdown {
		errors = append(errors, ValidationError{
			Field:   "turn_structure.phases",
			Message: "game has no card-moving phases",
		})
	}

	// A minimum bet above half the stack kills betting after one round.
	for _, phase := range genome.TurnStructure.Phases {
		if bp, ok := phase.(*BettingPhase); ok {
			starting := genome.Setup.StartingChips
			if starting > 0 && bp.MinBet > starting/2 {
				errors = append(errors, ValidationError{
					Field: "betting_phase.min_bet",
					Message: fmt.Sprintf("min_bet (%d) too high for starting_chips (%d)",
						bp.MinBet, starting),
				})
			}
		}
	}

	errors = append(errors, v.validateTeams(genome, playerCount)...)
	errors = append(errors, v.validateBidding(genome)...)

	return errors
}

// validateTeams checks that team assignments cover every seat exactly
// once.
func (v *GenomeValidator) validateTeams(genome *GameGenome, playerCount int) []ValidationError {
	var errors []ValidationError

	if genome.Teams == nil || !genome.Teams.Enabled {
		return errors
	}

	if len(genome.Teams.Teams) < 2 {
		errors = append(errors, ValidationError{
			Field:   "teams",
			Message: fmt.Sprintf("team mode requires at least 2 teams, got %d", len(genome.Teams.Teams)),
		})
		return errors
	}

	assigned := make(map[int]bool)
	for teamIdx, team := range genome.Teams.Teams {
		if len(team) == 0 {
			errors = append(errors, ValidationError{
				Field:   "teams",
				Message: fmt.Sprintf("team %d is empty", teamIdx),
			})
			continue
		}
		for _, seat := range team {
			if seat < 0 || seat >= playerCount {
				errors = append(errors, ValidationError{
					Field:   "teams",
					Message: fmt.Sprintf("seat %d out of range [0, %d)", seat, playerCount),
				})
			}
			if assigned[seat] {
				errors = append(errors, ValidationError{
					Field:   "teams",
					Message: fmt.Sprintf("seat %d appears in multiple teams", seat),
				})
			}
			assigned[seat] = true
		}
	}

	for i := 0; i < playerCount; i++ {
		if !assigned[i] {
			errors = append(errors, ValidationError{
				Field:   "teams",
				Message: fmt.Sprintf("seat %d not assigned to any team", i),
			})
		}
	}

	return errors
}

// validateBidding rejects bids with nothing to bid on: contracts are
// settled in tricks.
func (v *GenomeValidator) validateBidding(genome *GameGenome) []ValidationError {
	var errors []ValidationError

	if genome.HasPhase(PhaseTypeBidding) && !genome.HasPhase(PhaseTypeTrick) {
		errors = append(errors, ValidationError{
			Field:   "turn_structure.phases",
			Message: "bidding phase requires a trick phase",
		})
	}

	return errors
}

// ValidateGenome runs the structural gate with a fresh validator.
func ValidateGenome(genome *GameGenome) []ValidationError {
	v := &GenomeValidator{}
	return v.Validate(genome)
}

// IsValid reports whether the genome passes the structural gate.
func IsValid(genome *GameGenome) bool {
	return len(ValidateGenome(genome)) == 0
}
