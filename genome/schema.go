// Package genome holds the typed representation of an evolved card
// game: setup rules, turn phases, win conditions, special effects,
// scoring, and hand evaluation. A genome is the unit the evolutionary
// loop mutates and breeds; Compile lowers it to engine bytecode and
// Realize parses that into a runnable engine.Program. All enum values
// here match the bytecode wire encoding byte for byte.
package genome

// Suits. Values match the engine's wire encoding.
type Suit uint8

const (
	SuitHearts   Suit = 0
	SuitDiamonds Suit = 1
	SuitClubs    Suit = 2
	SuitSpades   Suit = 3
	SuitAny      Suit = 255
)

// Ranks are indices 0..12 with ace first. RankAny matches any rank in
// scoring rules and effect triggers.
type Rank uint8

const (
	RankAce   Rank = 0
	RankTwo   Rank = 1
	RankThree Rank = 2
	RankFour  Rank = 3
	RankFive  Rank = 4
	RankSix   Rank = 5
	RankSeven Rank = 6
	RankEight Rank = 7
	RankNine  Rank = 8
	RankTen   Rank = 9
	RankJack  Rank = 10
	RankQueen Rank = 11
	RankKing  Rank = 12
	RankAny   Rank = 255
)

// Location names a card pile a phase or condition refers to.
type Location uint8

const (
	LocationDeck         Location = 0
	LocationHand         Location = 1
	LocationDiscard      Location = 2
	LocationTableau      Location = 3
	LocationOpponentHand Location = 4
	LocationCaptured     Location = 5
)

// TableauMode selects how cards played to the tableau resolve.
type TableauMode uint8

const (
	TableauNone      TableauMode = 0
	TableauWar       TableauMode = 1
	TableauMatchRank TableauMode = 2
	TableauSequence  TableauMode = 3
)

// SequenceDirection constrains sequence-mode tableau plays.
type SequenceDirection uint8

const (
	SequenceAscending  SequenceDirection = 0
	SequenceDescending SequenceDirection = 1
	SequenceBoth       SequenceDirection = 2
)

// WinConditionType enumerates the ways a game can end.
type WinConditionType uint8

const (
	WinEmptyHand     WinConditionType = 0
	WinHighScore     WinConditionType = 1
	WinFirstToScore  WinConditionType = 2
	WinCaptureAll    WinConditionType = 3
	WinLowScore      WinConditionType = 4
	WinAllHandsEmpty WinConditionType = 5
	WinBestHand      WinConditionType = 6
	WinMostCaptured  WinConditionType = 7
)

// EffectType enumerates what a special effect does when triggered.
type EffectType uint8

const (
	EffectSkipNext     EffectType = 0
	EffectReverse      EffectType = 1
	EffectDrawCards    EffectType = 2
	EffectExtraTurn    EffectType = 3
	EffectForceDiscard EffectType = 4
	EffectWild         EffectType = 5
)

// EffectTarget selects who a special effect lands on.
type EffectTarget uint8

const (
	TargetNextPlayer   EffectTarget = 0
	TargetAllOpponents EffectTarget = 1
	TargetSelf         EffectTarget = 2
)

// ScoringTrigger is the game event a card scoring rule fires on.
type ScoringTrigger uint8

const (
	TriggerTrickWin    ScoringTrigger = 0
	TriggerCapture     ScoringTrigger = 1
	TriggerPlay        ScoringTrigger = 2
	TriggerHandEnd     ScoringTrigger = 3
	TriggerSetComplete ScoringTrigger = 4
)

// HandEvalMethod selects how showdown hands are rated.
type HandEvalMethod uint8

const (
	HandEvalNone         HandEvalMethod = 0
	HandEvalHighCard     HandEvalMethod = 1
	HandEvalPointTotal   HandEvalMethod = 2
	HandEvalPatternMatch HandEvalMethod = 3
	HandEvalCardCount    HandEvalMethod = 4
)

// ConditionOp is a condition opcode. Leaf opcodes occupy 0..14;
// OpAnd and OpOr combine leaves into one-level compounds.
type ConditionOp uint8

const (
	OpCheckHandSize        ConditionOp = 0
	OpCheckCardRank        ConditionOp = 1
	OpCheckCardSuit        ConditionOp = 2
	OpCheckLocationSize    ConditionOp = 3
	OpCheckSequence        ConditionOp = 4
	OpCheckHasSetOfN       ConditionOp = 5
	OpCheckHasRunOfN       ConditionOp = 6
	OpCheckHasMatchingPair ConditionOp = 7
	OpCheckChipCount       ConditionOp = 8
	OpCheckPotSize         ConditionOp = 9
	OpCheckCurrentBet      ConditionOp = 10
	OpCheckCanAfford       ConditionOp = 11
	OpCheckCardMatchesRank ConditionOp = 12
	OpCheckCardMatchesSuit ConditionOp = 13
	OpCheckCardBeatsTop    ConditionOp = 14

	OpAnd ConditionOp = 40
	OpOr  ConditionOp = 41
)

// CompareOp is a comparison operator as stored in condition records.
type CompareOp uint8

const (
	CmpEQ CompareOp = 0
	CmpNE CompareOp = 1
	CmpLT CompareOp = 2
	CmpGT CompareOp = 3
	CmpLE CompareOp = 4
	CmpGE CompareOp = 5
)

// Phase tags. Values match the bytecode phase encoding.
const (
	PhaseTypeDraw    uint8 = 1
	PhaseTypePlay    uint8 = 2
	PhaseTypeDiscard uint8 = 3
	PhaseTypeTrick   uint8 = 4
	PhaseTypeBetting uint8 = 5
	PhaseTypeClaim   uint8 = 6
	PhaseTypeBidding uint8 = 7
)

// Condition gates a draw phase or constrains which cards a play phase
// accepts. A leaf compares a state quantity against Value; OpAnd and
// OpOr nodes hold leaves in Children and ignore the scalar fields.
// Nesting deeper than one level is not representable in bytecode.
type Condition struct {
	OpCode   ConditionOp `json:"opcode"`
	Operator CompareOp   `json:"operator"`
	Value    int32       `json:"value"`
	RefLoc   Location    `json:"ref_location,omitempty"`
	Children []Condition `json:"children,omitempty"`
}

// IsCompound reports whether the condition combines sub-conditions.
func (c *Condition) IsCompound() bool {
	return c.OpCode == OpAnd || c.OpCode == OpOr
}

// SetupRules describe the deal: hand sizes, tableau seeding, and
// starting chips for betting games.
type SetupRules struct {
	CardsPerPlayer int   `json:"cards_per_player"`
	DealToTableau  int   `json:"deal_to_tableau"`
	TableauSize    int   `json:"tableau_size"`
	StartingChips  int32 `json:"starting_chips"`
}

// TurnStructure is the ordered phase list one turn walks through plus
// the tableau rules those phases play against.
type TurnStructure struct {
	Phases            []Phase           `json:"-"`
	MaxTurns          int32             `json:"max_turns"`
	TableauMode       TableauMode       `json:"tableau_mode"`
	SequenceDirection SequenceDirection `json:"sequence_direction"`
	IsTrickBased      bool              `json:"is_trick_based"`
}

// Phase is one step of a turn. Concrete phase types carry their own
// parameters; PhaseType returns the wire tag.
type Phase interface {
	PhaseType() uint8
	phaseMarker()
}

// DrawPhase moves cards from a source pile into the hand. An optional
// leaf condition gates whether the draw is offered at all.
type DrawPhase struct {
	Source    Location   `json:"source"`
	Count     int        `json:"count"`
	Mandatory bool       `json:"mandatory"`
	Condition *Condition `json:"condition,omitempty"`
}

func (p *DrawPhase) PhaseType() uint8 { return PhaseTypeDraw }
func (p *DrawPhase) phaseMarker()     {}

// PlayPhase moves cards from the hand to a target pile. The optional
// condition is evaluated per candidate card; PassIfUnable lets the
// player pass instead of stalling when nothing qualifies.
type PlayPhase struct {
	Target             Location   `json:"target"`
	MinCards           int        `json:"min_cards"`
	MaxCards           int        `json:"max_cards"`
	Mandatory          bool       `json:"mandatory"`
	PassIfUnable       bool       `json:"pass_if_unable"`
	ValidPlayCondition *Condition `json:"valid_play_condition,omitempty"`
}

func (p *PlayPhase) PhaseType() uint8 { return PhaseTypePlay }
func (p *PlayPhase) phaseMarker()     {}

// DiscardPhase moves cards from the hand to a discard target.
type DiscardPhase struct {
	Target    Location `json:"target"`
	Count     int      `json:"count"`
	Mandatory bool     `json:"mandatory"`
}

func (p *DiscardPhase) PhaseType() uint8 { return PhaseTypeDiscard }
func (p *DiscardPhase) phaseMarker()     {}

// TrickPhase plays one card per seat into a trick and awards it to the
// strongest play. SuitAny as TrumpSuit means no trump; BreakingSuit
// names a suit that may not lead until it has been played off-suit
// onto a trick.
type TrickPhase struct {
	LeadSuitRequired bool `json:"lead_suit_required"`
	TrumpSuit        Suit `json:"trump_suit"`
	HighCardWins     bool `json:"high_card_wins"`
	BreakingSuit     Suit `json:"breaking_suit"`
}

func (p *TrickPhase) PhaseType() uint8 { return PhaseTypeTrick }
func (p *TrickPhase) phaseMarker()     {}

// BettingPhase runs a chip betting round: bet, call, raise, or fold.
type BettingPhase struct {
	MinBet    int32 `json:"min_bet"`
	MaxRaises int   `json:"max_raises"`
}

func (p *BettingPhase) PhaseType() uint8 { return PhaseTypeBetting }
func (p *BettingPhase) phaseMarker()     {}

// ClaimPhase plays cards face down under a rank claim that opponents
// may challenge. The claimed rank cycles with the turn number.
type ClaimPhase struct{}

func (p *ClaimPhase) PhaseType() uint8 { return PhaseTypeClaim }
func (p *ClaimPhase) phaseMarker()     {}

// BiddingPhase collects a trick bid from every seat before play and
// scores the round against those bids using the contract parameters.
type BiddingPhase struct {
	MinBid   int  `json:"min_bid"`
	MaxBid   int  `json:"max_bid"`
	AllowNil bool `json:"allow_nil"`

	PointsPerTrickBid int32 `json:"points_per_trick_bid"`
	OvertrickPoints   int32 `json:"overtrick_points"`
	FailedPenalty     int32 `json:"failed_penalty"`
	NilBonus          int32 `json:"nil_bonus"`
	NilPenalty        int32 `json:"nil_penalty"`
	BagLimit          int32 `json:"bag_limit"`
	BagPenalty        int32 `json:"bag_penalty"`
}

func (p *BiddingPhase) PhaseType() uint8 { return PhaseTypeBidding }
func (p *BiddingPhase) phaseMarker()     {}

// WinCondition ends the game when its check passes. Conditions are
// checked in declaration order; the first hit decides the winner.
type WinCondition struct {
	Type      WinConditionType `json:"type"`
	Threshold int32            `json:"threshold"`
}

// SpecialEffect fires when a card of TriggerRank is played: skips,
// reversals, forced draws, extra turns, forced discards, or marking
// the rank wild.
type SpecialEffect struct {
	TriggerRank Rank         `json:"trigger_rank"`
	Effect      EffectType   `json:"effect"`
	Target      EffectTarget `json:"target"`
	Value       uint8        `json:"value"`
}

// CardScoringRule awards points when a matching card meets its
// trigger. SuitAny and RankAny act as wildcards.
type CardScoringRule struct {
	Suit    Suit           `json:"suit"`
	Rank    Rank           `json:"rank"`
	Points  int16          `json:"points"`
	Trigger ScoringTrigger `json:"trigger"`
}

// CardValue assigns a point value to a rank for point-total hands.
// AltValue is the fallback used when the primary total would bust,
// e.g. an ace counting 11 or 1.
type CardValue struct {
	Rank     Rank `json:"rank"`
	Value    int  `json:"value"`
	AltValue int  `json:"alt_value,omitempty"`
}

// HandPattern is one ranked shape for pattern-match evaluation. Higher
// priority beats lower; the shape fields compose, so a straight flush
// sets both SameSuitCount and SequenceLength.
type HandPattern struct {
	Name           string `json:"name"`
	Priority       int    `json:"priority"`
	RequiredCount  int    `json:"required_count"`
	SameSuitCount  int    `json:"same_suit_count,omitempty"`
	SequenceLength int    `json:"sequence_length,omitempty"`
	SequenceWrap   bool   `json:"sequence_wrap,omitempty"`
	SameRankGroups []int  `json:"same_rank_groups,omitempty"`
	RequiredRanks  []Rank `json:"required_ranks,omitempty"`
}

// HandEvaluation configures showdown hand rating for best-hand wins.
type HandEvaluation struct {
	Method        HandEvalMethod `json:"method"`
	TargetValue   int            `json:"target_value,omitempty"`
	BustThreshold int            `json:"bust_threshold,omitempty"`
	CardValues    []CardValue    `json:"card_values,omitempty"`
	Patterns      []HandPattern  `json:"patterns,omitempty"`
}

// TeamConfig fixes partnerships. Teams lists seat indices per team;
// every seat must appear in exactly one team when Enabled.
type TeamConfig struct {
	Enabled bool    `json:"enabled"`
	Teams   [][]int `json:"teams"`
}

// GameGenome is a complete evolvable rule set. ID, ParentIDs, and
// Generation are provenance and do not affect the content hash or the
// compiled bytecode.
type GameGenome struct {
	ID         string   `json:"id"`
	ParentIDs  []string `json:"parent_ids,omitempty"`
	Generation int      `json:"generation"`

	Setup          SetupRules        `json:"setup"`
	TurnStructure  TurnStructure     `json:"turn_structure"`
	WinConditions  []WinCondition    `json:"win_conditions"`
	SpecialEffects []SpecialEffect   `json:"special_effects,omitempty"`
	CardScoring    []CardScoringRule `json:"card_scoring,omitempty"`
	HandEvaluation *HandEvaluation   `json:"hand_evaluation,omitempty"`
	Teams          *TeamConfig       `json:"teams,omitempty"`

	MinTurns    int `json:"min_turns,omitempty"`
	PlayerCount int `json:"player_count"`
}

// HasPhase reports whether any phase carries the given tag.
func (g *GameGenome) HasPhase(tag uint8) bool {
	for _, p := range g.TurnStructure.Phases {
		if p.PhaseType() == tag {
			return true
		}
	}
	return false
}

// CountPhases returns how many phases carry the given tag.
func (g *GameGenome) CountPhases(tag uint8) int {
	n := 0
	for _, p := range g.TurnStructure.Phases {
		if p.PhaseType() == tag {
			n++
		}
	}
	return n
}

// HasWinCondition reports whether a win condition of the given type
// is declared.
func (g *GameGenome) HasWinCondition(t WinConditionType) bool {
	for _, w := range g.WinConditions {
		if w.Type == t {
			return true
		}
	}
	return false
}

// Players returns the genome's player count, falling back to the
// default when the field was never set.
func (g *GameGenome) Players() int {
	if g.PlayerCount <= 0 {
		return DefaultPlayerCount
	}
	return g.PlayerCount
}

// Clone returns a deep copy. Mutation operators work on clones so the
// parent generation stays intact.
func (g *GameGenome) Clone() *GameGenome {
	c := &GameGenome{
		ID:          g.ID,
		Generation:  g.Generation,
		Setup:       g.Setup,
		MinTurns:    g.MinTurns,
		PlayerCount: g.PlayerCount,
	}
	if g.ParentIDs != nil {
		c.ParentIDs = append([]string(nil), g.ParentIDs...)
	}

	c.TurnStructure = TurnStructure{
		MaxTurns:          g.TurnStructure.MaxTurns,
		TableauMode:       g.TurnStructure.TableauMode,
		SequenceDirection: g.TurnStructure.SequenceDirection,
		IsTrickBased:      g.TurnStructure.IsTrickBased,
	}
	for _, p := range g.TurnStructure.Phases {
		c.TurnStructure.Phases = append(c.TurnStructure.Phases, clonePhase(p))
	}

	if g.WinConditions != nil {
		c.WinConditions = append([]WinCondition(nil), g.WinConditions...)
	}
	if g.SpecialEffects != nil {
		c.SpecialEffects = append([]SpecialEffect(nil), g.SpecialEffects...)
	}
	if g.CardScoring != nil {
		c.CardScoring = append([]CardScoringRule(nil), g.CardScoring...)
	}
	c.HandEvaluation = cloneHandEvaluation(g.HandEvaluation)
	c.Teams = cloneTeamConfig(g.Teams)
	return c
}

// ClonePhase returns a deep copy of a single phase. Crossover splices
// phase lists between genomes and must not share condition pointers.
func ClonePhase(p Phase) Phase {
	return clonePhase(p)
}

func clonePhase(p Phase) Phase {
	switch ph := p.(type) {
	case *DrawPhase:
		c := *ph
		c.Condition = cloneCondition(ph.Condition)
		return &c
	case *PlayPhase:
		c := *ph
		c.ValidPlayCondition = cloneCondition(ph.ValidPlayCondition)
		return &c
	case *DiscardPhase:
		c := *ph
		return &c
	case *TrickPhase:
		c := *ph
		return &c
	case *BettingPhase:
		c := *ph
		return &c
	case *ClaimPhase:
		c := *ph
		return &c
	case *BiddingPhase:
		c := *ph
		return &c
	}
	return p
}

func cloneCondition(c *Condition) *Condition {
	if c == nil {
		return nil
	}
	out := *c
	if c.Children != nil {
		out.Children = append([]Condition(nil), c.Children...)
	}
	return &out
}

func cloneHandEvaluation(h *HandEvaluation) *HandEvaluation {
	if h == nil {
		return nil
	}
	out := &HandEvaluation{
		Method:        h.Method,
		TargetValue:   h.TargetValue,
		BustThreshold: h.BustThreshold,
	}
	if h.CardValues != nil {
		out.CardValues = append([]CardValue(nil), h.CardValues...)
	}
	for _, p := range h.Patterns {
		out.Patterns = append(out.Patterns, cloneHandPattern(p))
	}
	return out
}

func cloneHandPattern(p HandPattern) HandPattern {
	out := p
	if p.SameRankGroups != nil {
		out.SameRankGroups = append([]int(nil), p.SameRankGroups...)
	}
	if p.RequiredRanks != nil {
		out.RequiredRanks = append([]Rank(nil), p.RequiredRanks...)
	}
	return out
}

func cloneTeamConfig(t *TeamConfig) *TeamConfig {
	if t == nil {
		return nil
	}
	out := &TeamConfig{Enabled: t.Enabled}
	for _, team := range t.Teams {
		out.Teams = append(out.Teams, append([]int(nil), team...))
	}
	return out
}
