package genome

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Two JSON layouts are in circulation. The native layout nests each
// phase under a {"type", "data"} envelope and keeps tableau settings
// in turn_structure. The legacy flat layout, produced by the lineage
// this system grew out of, spells phases as flat objects with
// PascalCase type names, hangs tableau settings off setup, and hoists
// max_turns to the top level. Unmarshaling accepts both; marshaling
// always emits the native layout.

// PhaseJSON carries one phase in either layout.
type PhaseJSON struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`

	// Legacy flat fields.
	Source             string         `json:"source,omitempty"`
	Target             string         `json:"target,omitempty"`
	Count              int            `json:"count,omitempty"`
	Mandatory          bool           `json:"mandatory,omitempty"`
	MinCards           int            `json:"min_cards,omitempty"`
	MaxCards           int            `json:"max_cards,omitempty"`
	ValidPlayCondition *ConditionJSON `json:"valid_play_condition,omitempty"`
	Condition          *ConditionJSON `json:"condition,omitempty"`
	LeadSuitRequired   bool           `json:"lead_suit_required,omitempty"`
	TrumpSuit          *string        `json:"trump_suit,omitempty"`
	HighCardWins       bool           `json:"high_card_wins,omitempty"`
	BreakingSuit       *string        `json:"breaking_suit,omitempty"`
	MinBet             int            `json:"min_bet,omitempty"`
	MaxRaises          int            `json:"max_raises,omitempty"`
	MinBid             int            `json:"min_bid,omitempty"`
	MaxBid             int            `json:"max_bid,omitempty"`
	AllowNil           bool           `json:"allow_nil,omitempty"`
}

// TurnStructureJSON carries the turn structure in either layout.
type TurnStructureJSON struct {
	Phases            []json.RawMessage `json:"phases"`
	MaxTurns          int32             `json:"max_turns,omitempty"`
	TableauMode       string            `json:"tableau_mode,omitempty"`
	SequenceDirection string            `json:"sequence_direction,omitempty"`
	IsTrickBased      bool              `json:"is_trick_based,omitempty"`

	// Legacy field, ignored: trick counting is derived from phases.
	TricksPerHand *int `json:"tricks_per_hand,omitempty"`
}

// SetupRulesJSON carries setup in either layout. The legacy layout
// stores tableau_mode and sequence_direction here instead of in
// turn_structure.
type SetupRulesJSON struct {
	CardsPerPlayer int `json:"cards_per_player"`
	TableauSize    int `json:"tableau_size,omitempty"`
	StartingChips  int `json:"starting_chips,omitempty"`
	DealToTableau  int `json:"deal_to_tableau,omitempty"`

	// Legacy fields.
	InitialDeck         string `json:"initial_deck,omitempty"`
	InitialDiscardCount int    `json:"initial_discard_count,omitempty"`
	TrumpSuit           string `json:"trump_suit,omitempty"`
	TableauMode         string `json:"tableau_mode,omitempty"`
	SequenceDirection   string `json:"sequence_direction,omitempty"`
}

// GameGenomeJSON is the top-level envelope for either layout.
type GameGenomeJSON struct {
	ID         string   `json:"id,omitempty"`
	ParentIDs  []string `json:"parent_ids,omitempty"`
	Generation int      `json:"generation,omitempty"`

	Setup          json.RawMessage     `json:"setup"`
	TurnStructure  TurnStructureJSON   `json:"turn_structure"`
	WinConditions  []WinConditionJSON  `json:"win_conditions"`
	SpecialEffects []SpecialEffectJSON `json:"special_effects,omitempty"`
	CardScoring    []CardScoringJSON   `json:"card_scoring,omitempty"`
	HandEvaluation *HandEvaluationJSON `json:"hand_evaluation,omitempty"`
	Teams          *TeamConfig         `json:"teams,omitempty"`
	MinTurns       int                 `json:"min_turns,omitempty"`
	PlayerCount    int                 `json:"player_count,omitempty"`

	// Legacy fields.
	SchemaVersion   string               `json:"schema_version,omitempty"`
	GenomeID        string               `json:"genome_id,omitempty"`
	MaxTurns        int32                `json:"max_turns,omitempty"`
	ContractScoring *ContractScoringJSON `json:"contract_scoring,omitempty"`
}

// WinConditionJSON spells the win type as a string.
type WinConditionJSON struct {
	Type      string `json:"type"`
	Threshold int32  `json:"threshold,omitempty"`
}

// SpecialEffectJSON spells ranks and effect names as strings.
type SpecialEffectJSON struct {
	TriggerRank string `json:"trigger_rank"`
	EffectType  string `json:"effect_type"`
	Target      string `json:"target"`
	Value       int    `json:"value,omitempty"`
}

// CardScoringJSON spells suits, ranks, and triggers as strings.
type CardScoringJSON struct {
	Suit    string `json:"suit"`
	Rank    string `json:"rank"`
	Points  int16  `json:"points"`
	Trigger string `json:"trigger"`
}

// HandEvaluationJSON spells the method and card ranks as strings.
type HandEvaluationJSON struct {
	Method        string            `json:"method"`
	TargetValue   int               `json:"target_value,omitempty"`
	BustThreshold int               `json:"bust_threshold,omitempty"`
	CardValues    []CardValueJSON   `json:"card_values,omitempty"`
	Patterns      []HandPatternJSON `json:"patterns,omitempty"`
}

// CardValueJSON is one rank's point assignment.
type CardValueJSON struct {
	Rank     string `json:"rank"`
	Value    int    `json:"value"`
	AltValue int    `json:"alt_value,omitempty"`
}

// HandPatternJSON is one showdown pattern.
type HandPatternJSON struct {
	Name           string   `json:"name,omitempty"`
	Priority       int      `json:"priority"`
	RequiredCount  int      `json:"required_count"`
	SameSuitCount  int      `json:"same_suit_count,omitempty"`
	SequenceLength int      `json:"sequence_length,omitempty"`
	SequenceWrap   bool     `json:"sequence_wrap,omitempty"`
	SameRankGroups []int    `json:"same_rank_groups,omitempty"`
	RequiredRanks  []string `json:"required_ranks,omitempty"`
}

// ContractScoringJSON is the legacy top-level contract block. It folds
// into the bidding phase on load.
type ContractScoringJSON struct {
	PointsPerTrickBid     int32 `json:"points_per_trick_bid,omitempty"`
	OvertrickPoints       int32 `json:"overtrick_points,omitempty"`
	FailedPenalty         int32 `json:"failed_penalty,omitempty"`
	FailedContractPenalty int32 `json:"failed_contract_penalty,omitempty"`
	NilBonus              int32 `json:"nil_bonus,omitempty"`
	NilPenalty            int32 `json:"nil_penalty,omitempty"`
	BagLimit              int32 `json:"bag_limit,omitempty"`
	BagPenalty            int32 `json:"bag_penalty,omitempty"`
}

// ConditionJSON carries a condition in either layout. The native
// layout uses opcode/operator/value/ref_location with children for
// compounds; the legacy layout uses type/condition_type/reference with
// a logic field over a conditions list.
type ConditionJSON struct {
	OpCode      string          `json:"opcode,omitempty"`
	Operator    string          `json:"operator,omitempty"`
	Value       int32           `json:"value,omitempty"`
	RefLocation string          `json:"ref_location,omitempty"`
	Children    []ConditionJSON `json:"children,omitempty"`

	// Legacy fields.
	Type          string          `json:"type,omitempty"`
	ConditionType string          `json:"condition_type,omitempty"`
	Reference     interface{}     `json:"reference,omitempty"`
	Logic         string          `json:"logic,omitempty"`
	Conditions    []ConditionJSON `json:"conditions,omitempty"`
}

// UnmarshalJSON decodes a genome from either JSON layout.
func (g *GameGenome) UnmarshalJSON(data []byte) error {
	var jg GameGenomeJSON
	if err := json.Unmarshal(data, &jg); err != nil {
		return fmt.Errorf("unmarshal genome: %w", err)
	}

	g.ID = jg.ID
	if g.ID == "" {
		g.ID = jg.GenomeID
	}
	g.ParentIDs = jg.ParentIDs
	g.Generation = jg.Generation
	g.MinTurns = jg.MinTurns
	g.PlayerCount = jg.PlayerCount

	var setupJSON SetupRulesJSON
	if len(jg.Setup) > 0 {
		if err := json.Unmarshal(jg.Setup, &setupJSON); err != nil {
			return fmt.Errorf("unmarshal setup: %w", err)
		}
	}
	g.Setup = SetupRules{
		CardsPerPlayer: setupJSON.CardsPerPlayer,
		TableauSize:    setupJSON.TableauSize,
		StartingChips:  int32(setupJSON.StartingChips),
		DealToTableau:  setupJSON.DealToTableau,
	}

	g.TurnStructure.MaxTurns = jg.TurnStructure.MaxTurns
	if g.TurnStructure.MaxTurns == 0 && jg.MaxTurns > 0 {
		g.TurnStructure.MaxTurns = jg.MaxTurns
	}
	g.TurnStructure.IsTrickBased = jg.TurnStructure.IsTrickBased

	// The legacy layout keeps tableau settings under setup.
	if setupJSON.TableauMode != "" {
		g.TurnStructure.TableauMode = parseTableauMode(setupJSON.TableauMode)
	} else {
		g.TurnStructure.TableauMode = parseTableauMode(jg.TurnStructure.TableauMode)
	}
	if setupJSON.SequenceDirection != "" {
		g.TurnStructure.SequenceDirection = parseSequenceDirection(setupJSON.SequenceDirection)
	} else {
		g.TurnStructure.SequenceDirection = parseSequenceDirection(jg.TurnStructure.SequenceDirection)
	}

	phases := make([]Phase, 0, len(jg.TurnStructure.Phases))
	for i, phaseRaw := range jg.TurnStructure.Phases {
		var pj PhaseJSON
		if err := json.Unmarshal(phaseRaw, &pj); err != nil {
			return fmt.Errorf("unmarshal phase %d: %w", i, err)
		}
		phase, err := parsePhase(pj)
		if err != nil {
			return fmt.Errorf("parse phase %d: %w", i, err)
		}
		phases = append(phases, phase)
	}
	g.TurnStructure.Phases = phases

	g.WinConditions = make([]WinCondition, len(jg.WinConditions))
	for i, wc := range jg.WinConditions {
		g.WinConditions[i] = WinCondition{
			Type:      parseWinConditionType(wc.Type),
			Threshold: wc.Threshold,
		}
	}

	g.SpecialEffects = nil
	for _, se := range jg.SpecialEffects {
		g.SpecialEffects = append(g.SpecialEffects, parseSpecialEffect(se))
	}

	g.CardScoring = nil
	for _, cs := range jg.CardScoring {
		g.CardScoring = append(g.CardScoring, CardScoringRule{
			Suit:    parseSuit(cs.Suit),
			Rank:    parseRank(cs.Rank),
			Points:  cs.Points,
			Trigger: parseTrigger(cs.Trigger),
		})
	}

	g.HandEvaluation = parseHandEvaluation(jg.HandEvaluation)
	g.Teams = jg.Teams

	if jg.ContractScoring != nil {
		if err := foldContractScoring(g, jg.ContractScoring); err != nil {
			return err
		}
	}
	return nil
}

// foldContractScoring merges the legacy top-level contract block into
// the bidding phase. A contract without a bidding phase has nothing to
// score, so it is rejected at load time.
func foldContractScoring(g *GameGenome, cs *ContractScoringJSON) error {
	failed := cs.FailedPenalty
	if failed == 0 {
		failed = cs.FailedContractPenalty
	}
	for _, p := range g.TurnStructure.Phases {
		if bp, ok := p.(*BiddingPhase); ok {
			bp.PointsPerTrickBid = cs.PointsPerTrickBid
			bp.OvertrickPoints = cs.OvertrickPoints
			bp.FailedPenalty = failed
			bp.NilBonus = cs.NilBonus
			bp.NilPenalty = cs.NilPenalty
			bp.BagLimit = cs.BagLimit
			bp.BagPenalty = cs.BagPenalty
			return nil
		}
	}
	return fmt.Errorf("contract_scoring declared without a bidding phase")
}

// MarshalJSON encodes a genome in the native layout.
func (g *GameGenome) MarshalJSON() ([]byte, error) {
	setupBytes, err := json.Marshal(SetupRulesJSON{
		CardsPerPlayer: g.Setup.CardsPerPlayer,
		TableauSize:    g.Setup.TableauSize,
		StartingChips:  int(g.Setup.StartingChips),
		DealToTableau:  g.Setup.DealToTableau,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal setup: %w", err)
	}

	jg := GameGenomeJSON{
		ID:          g.ID,
		ParentIDs:   g.ParentIDs,
		Generation:  g.Generation,
		Setup:       setupBytes,
		Teams:       g.Teams,
		MinTurns:    g.MinTurns,
		PlayerCount: g.PlayerCount,
	}

	jg.TurnStructure.MaxTurns = g.TurnStructure.MaxTurns
	jg.TurnStructure.TableauMode = tableauModeToString(g.TurnStructure.TableauMode)
	jg.TurnStructure.SequenceDirection = sequenceDirectionToString(g.TurnStructure.SequenceDirection)
	jg.TurnStructure.IsTrickBased = g.TurnStructure.IsTrickBased

	jg.TurnStructure.Phases = make([]json.RawMessage, len(g.TurnStructure.Phases))
	for i, phase := range g.TurnStructure.Phases {
		pj, err := marshalPhase(phase)
		if err != nil {
			return nil, fmt.Errorf("marshal phase %d: %w", i, err)
		}
		phaseBytes, err := json.Marshal(pj)
		if err != nil {
			return nil, fmt.Errorf("serialize phase %d: %w", i, err)
		}
		jg.TurnStructure.Phases[i] = phaseBytes
	}

	jg.WinConditions = make([]WinConditionJSON, len(g.WinConditions))
	for i, wc := range g.WinConditions {
		jg.WinConditions[i] = WinConditionJSON{
			Type:      winConditionTypeToString(wc.Type),
			Threshold: wc.Threshold,
		}
	}

	for _, se := range g.SpecialEffects {
		jg.SpecialEffects = append(jg.SpecialEffects, SpecialEffectJSON{
			TriggerRank: rankToString(se.TriggerRank),
			EffectType:  effectTypeToString(se.Effect),
			Target:      targetToString(se.Target),
			Value:       int(se.Value),
		})
	}

	for _, cs := range g.CardScoring {
		jg.CardScoring = append(jg.CardScoring, CardScoringJSON{
			Suit:    suitToString(cs.Suit),
			Rank:    rankToString(cs.Rank),
			Points:  cs.Points,
			Trigger: triggerToString(cs.Trigger),
		})
	}

	jg.HandEvaluation = marshalHandEvaluation(g.HandEvaluation)

	return json.Marshal(jg)
}

func parsePhase(pj PhaseJSON) (Phase, error) {
	// The legacy layout names phases in PascalCase with a Phase
	// suffix; normalise before matching.
	phaseType := strings.ToLower(pj.Type)
	phaseType = strings.TrimSuffix(phaseType, "phase")

	native := len(pj.Data) > 0

	switch phaseType {
	case "draw":
		if native {
			var dp struct {
				Source    string         `json:"source"`
				Count     int            `json:"count"`
				Mandatory bool           `json:"mandatory"`
				Condition *ConditionJSON `json:"condition,omitempty"`
			}
			if err := json.Unmarshal(pj.Data, &dp); err != nil {
				return nil, fmt.Errorf("invalid draw phase: %w", err)
			}
			return &DrawPhase{
				Source:    parseLocation(dp.Source),
				Count:     dp.Count,
				Mandatory: dp.Mandatory,
				Condition: parseCondition(dp.Condition),
			}, nil
		}
		return &DrawPhase{
			Source:    parseLocation(pj.Source),
			Count:     pj.Count,
			Mandatory: pj.Mandatory,
			Condition: parseCondition(pj.Condition),
		}, nil

	case "play":
		if native {
			var pp struct {
				Target             string         `json:"target"`
				MinCards           int            `json:"min_cards"`
				MaxCards           int            `json:"max_cards"`
				Mandatory          bool           `json:"mandatory"`
				PassIfUnable       bool           `json:"pass_if_unable"`
				ValidPlayCondition *ConditionJSON `json:"valid_play_condition,omitempty"`
			}
			if err := json.Unmarshal(pj.Data, &pp); err != nil {
				return nil, fmt.Errorf("invalid play phase: %w", err)
			}
			return &PlayPhase{
				Target:             parseLocation(pp.Target),
				MinCards:           pp.MinCards,
				MaxCards:           pp.MaxCards,
				Mandatory:          pp.Mandatory,
				PassIfUnable:       pp.PassIfUnable,
				ValidPlayCondition: parseCondition(pp.ValidPlayCondition),
			}, nil
		}
		// The flat layout has no pass flag; optional plays may pass.
		return &PlayPhase{
			Target:             parseLocation(pj.Target),
			MinCards:           pj.MinCards,
			MaxCards:           pj.MaxCards,
			Mandatory:          pj.Mandatory,
			PassIfUnable:       !pj.Mandatory,
			ValidPlayCondition: parseCondition(pj.ValidPlayCondition),
		}, nil

	case "discard":
		if native {
			var dp struct {
				Target    string `json:"target"`
				Count     int    `json:"count"`
				Mandatory bool   `json:"mandatory"`
			}
			if err := json.Unmarshal(pj.Data, &dp); err != nil {
				return nil, fmt.Errorf("invalid discard phase: %w", err)
			}
			return &DiscardPhase{
				Target:    parseLocation(dp.Target),
				Count:     dp.Count,
				Mandatory: dp.Mandatory,
			}, nil
		}
		return &DiscardPhase{
			Target:    parseLocation(pj.Target),
			Count:     pj.Count,
			Mandatory: pj.Mandatory,
		}, nil

	case "trick":
		if native {
			var tp struct {
				LeadSuitRequired bool   `json:"lead_suit_required"`
				TrumpSuit        string `json:"trump_suit,omitempty"`
				HighCardWins     bool   `json:"high_card_wins"`
				BreakingSuit     string `json:"breaking_suit,omitempty"`
			}
			if err := json.Unmarshal(pj.Data, &tp); err != nil {
				return nil, fmt.Errorf("invalid trick phase: %w", err)
			}
			return &TrickPhase{
				LeadSuitRequired: tp.LeadSuitRequired,
				TrumpSuit:        parseSuit(tp.TrumpSuit),
				HighCardWins:     tp.HighCardWins,
				BreakingSuit:     parseSuit(tp.BreakingSuit),
			}, nil
		}
		trumpSuit := ""
		if pj.TrumpSuit != nil {
			trumpSuit = *pj.TrumpSuit
		}
		breakingSuit := ""
		if pj.BreakingSuit != nil {
			breakingSuit = *pj.BreakingSuit
		}
		return &TrickPhase{
			LeadSuitRequired: pj.LeadSuitRequired,
			TrumpSuit:        parseSuit(trumpSuit),
			HighCardWins:     pj.HighCardWins,
			BreakingSuit:     parseSuit(breakingSuit),
		}, nil

	case "betting":
		if native {
			var bp struct {
				MinBet    int32 `json:"min_bet"`
				MaxRaises int   `json:"max_raises"`
			}
			if err := json.Unmarshal(pj.Data, &bp); err != nil {
				return nil, fmt.Errorf("invalid betting phase: %w", err)
			}
			return &BettingPhase{MinBet: bp.MinBet, MaxRaises: bp.MaxRaises}, nil
		}
		return &BettingPhase{MinBet: int32(pj.MinBet), MaxRaises: pj.MaxRaises}, nil

	case "claim":
		return &ClaimPhase{}, nil

	case "bidding":
		if native {
			var bp struct {
				MinBid            int   `json:"min_bid"`
				MaxBid            int   `json:"max_bid"`
				AllowNil          bool  `json:"allow_nil"`
				PointsPerTrickBid int32 `json:"points_per_trick_bid,omitempty"`
				OvertrickPoints   int32 `json:"overtrick_points,omitempty"`
				FailedPenalty     int32 `json:"failed_penalty,omitempty"`
				NilBonus          int32 `json:"nil_bonus,omitempty"`
				NilPenalty        int32 `json:"nil_penalty,omitempty"`
				BagLimit          int32 `json:"bag_limit,omitempty"`
				BagPenalty        int32 `json:"bag_penalty,omitempty"`
			}
			if err := json.Unmarshal(pj.Data, &bp); err != nil {
				return nil, fmt.Errorf("invalid bidding phase: %w", err)
			}
			return &BiddingPhase{
				MinBid:            bp.MinBid,
				MaxBid:            bp.MaxBid,
				AllowNil:          bp.AllowNil,
				PointsPerTrickBid: bp.PointsPerTrickBid,
				OvertrickPoints:   bp.OvertrickPoints,
				FailedPenalty:     bp.FailedPenalty,
				NilBonus:          bp.NilBonus,
				NilPenalty:        bp.NilPenalty,
				BagLimit:          bp.BagLimit,
				BagPenalty:        bp.BagPenalty,
			}, nil
		}
		// Legacy contract parameters arrive in the top-level
		// contract_scoring block and are folded in afterwards.
		return &BiddingPhase{
			MinBid:   pj.MinBid,
			MaxBid:   pj.MaxBid,
			AllowNil: pj.AllowNil,
		}, nil

	default:
		return nil, fmt.Errorf("unknown phase type: %s", pj.Type)
	}
}

func marshalPhase(phase Phase) (PhaseJSON, error) {
	var pj PhaseJSON
	var data interface{}

	switch p := phase.(type) {
	case *DrawPhase:
		pj.Type = "draw"
		data = struct {
			Source    string         `json:"source"`
			Count     int            `json:"count"`
			Mandatory bool           `json:"mandatory"`
			Condition *ConditionJSON `json:"condition,omitempty"`
		}{locationToString(p.Source), p.Count, p.Mandatory, marshalCondition(p.Condition)}

	case *PlayPhase:
		pj.Type = "play"
		data = struct {
			Target             string         `json:"target"`
			MinCards           int            `json:"min_cards"`
			MaxCards           int            `json:"max_cards"`
			Mandatory          bool           `json:"mandatory"`
			PassIfUnable       bool           `json:"pass_if_unable"`
			ValidPlayCondition *ConditionJSON `json:"valid_play_condition,omitempty"`
		}{locationToString(p.Target), p.MinCards, p.MaxCards, p.Mandatory, p.PassIfUnable, marshalCondition(p.ValidPlayCondition)}

	case *DiscardPhase:
		pj.Type = "discard"
		data = struct {
			Target    string `json:"target"`
			Count     int    `json:"count"`
			Mandatory bool   `json:"mandatory"`
		}{locationToString(p.Target), p.Count, p.Mandatory}

	case *TrickPhase:
		pj.Type = "trick"
		data = struct {
			LeadSuitRequired bool   `json:"lead_suit_required"`
			TrumpSuit        string `json:"trump_suit"`
			HighCardWins     bool   `json:"high_card_wins"`
			BreakingSuit     string `json:"breaking_suit"`
		}{p.LeadSuitRequired, suitToString(p.TrumpSuit), p.HighCardWins, suitToString(p.BreakingSuit)}

	case *BettingPhase:
		pj.Type = "betting"
		data = struct {
			MinBet    int32 `json:"min_bet"`
			MaxRaises int   `json:"max_raises"`
		}{p.MinBet, p.MaxRaises}

	case *ClaimPhase:
		pj.Type = "claim"
		data = struct{}{}

	case *BiddingPhase:
		pj.Type = "bidding"
		data = struct {
			MinBid            int   `json:"min_bid"`
			MaxBid            int   `json:"max_bid"`
			AllowNil          bool  `json:"allow_nil"`
			PointsPerTrickBid int32 `json:"points_per_trick_bid,omitempty"`
			OvertrickPoints   int32 `json:"overtrick_points,omitempty"`
			FailedPenalty     int32 `json:"failed_penalty,omitempty"`
			NilBonus          int32 `json:"nil_bonus,omitempty"`
			NilPenalty        int32 `json:"nil_penalty,omitempty"`
			BagLimit          int32 `json:"bag_limit,omitempty"`
			BagPenalty        int32 `json:"bag_penalty,omitempty"`
		}{p.MinBid, p.MaxBid, p.AllowNil, p.PointsPerTrickBid, p.OvertrickPoints, p.FailedPenalty, p.NilBonus, p.NilPenalty, p.BagLimit, p.BagPenalty}

	default:
		return pj, fmt.Errorf("unknown phase type: %T", phase)
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return pj, err
	}
	pj.Data = rawData
	return pj, nil
}

func parseCondition(cj *ConditionJSON) *Condition {
	if cj == nil {
		return nil
	}

	// Legacy layouts mark conditions with a type discriminator.
	if cj.ConditionType != "" || strings.EqualFold(cj.Type, "simple") {
		return normalizeRefLoc(parseLegacyLeaf(cj))
	}
	if strings.EqualFold(cj.Type, "compound") || cj.Logic != "" {
		op := OpAnd
		if strings.EqualFold(cj.Logic, "or") {
			op = OpOr
		}
		out := &Condition{OpCode: op}
		for i := range cj.Conditions {
			if child := parseCondition(&cj.Conditions[i]); child != nil {
				out.Children = append(out.Children, *child)
			}
		}
		return out
	}

	op := parseOpCode(cj.OpCode)
	if op == OpAnd || op == OpOr {
		out := &Condition{OpCode: op}
		for i := range cj.Children {
			if child := parseCondition(&cj.Children[i]); child != nil {
				out.Children = append(out.Children, *child)
			}
		}
		return out
	}

	return normalizeRefLoc(&Condition{
		OpCode:   op,
		Operator: parseOperator(cj.Operator),
		Value:    cj.Value,
		RefLoc:   parseLocation(cj.RefLocation),
	})
}

// parseLegacyLeaf converts a flat-layout simple condition. The
// reference field may hold a number, a suit or rank name, or a pile
// name depending on the opcode.
func parseLegacyLeaf(cj *ConditionJSON) *Condition {
	c := &Condition{
		OpCode:   parseLegacyConditionType(cj.ConditionType),
		Operator: parseOperator(cj.Operator),
		Value:    cj.Value,
	}
	switch v := cj.Reference.(type) {
	case string:
		switch c.OpCode {
		case OpCheckCardMatchesRank, OpCheckCardMatchesSuit, OpCheckCardBeatsTop, OpCheckLocationSize:
			c.RefLoc = parseLocation(v)
		default:
			if suit := parseSuit(v); suit != SuitAny {
				c.Value = int32(suit)
			} else {
				c.Value = int32(parseRank(v))
			}
		}
	case float64:
		c.Value = int32(v)
	}
	return c
}

// normalizeRefLoc defaults the reference pile to the discard for
// opcodes that compare against a face-up card. A deck reference is
// meaningless there and would make the condition pass vacuously.
func normalizeRefLoc(c *Condition) *Condition {
	switch c.OpCode {
	case OpCheckCardMatchesRank, OpCheckCardMatchesSuit, OpCheckCardBeatsTop:
		if c.RefLoc == LocationDeck {
			c.RefLoc = LocationDiscard
		}
	}
	return c
}

func parseLegacyConditionType(s string) ConditionOp {
	switch strings.ToUpper(s) {
	case "HAND_SIZE":
		return OpCheckHandSize
	case "CARD_RANK":
		return OpCheckCardRank
	case "CARD_SUIT":
		return OpCheckCardSuit
	case "LOCATION_SIZE":
		return OpCheckLocationSize
	case "SEQUENCE":
		return OpCheckSequence
	case "HAS_SET":
		return OpCheckHasSetOfN
	case "HAS_RUN":
		return OpCheckHasRunOfN
	case "HAS_PAIR":
		return OpCheckHasMatchingPair
	case "CHIP_COUNT":
		return OpCheckChipCount
	case "POT_SIZE":
		return OpCheckPotSize
	case "CURRENT_BET":
		return OpCheckCurrentBet
	case "CAN_AFFORD":
		return OpCheckCanAfford
	case "MATCH_RANK":
		return OpCheckCardMatchesRank
	case "MATCH_SUIT":
		return OpCheckCardMatchesSuit
	case "BEATS_TOP":
		return OpCheckCardBeatsTop
	default:
		return OpCheckHandSize
	}
}

func marshalCondition(c *Condition) *ConditionJSON {
	if c == nil {
		return nil
	}
	if c.IsCompound() {
		out := &ConditionJSON{OpCode: opCodeToString(c.OpCode)}
		for i := range c.Children {
			child := c.Children[i]
			out.Children = append(out.Children, *marshalCondition(&child))
		}
		return out
	}
	return &ConditionJSON{
		OpCode:      opCodeToString(c.OpCode),
		Operator:    operatorToString(c.Operator),
		Value:       c.Value,
		RefLocation: locationToString(c.RefLoc),
	}
}

func parseSpecialEffect(se SpecialEffectJSON) SpecialEffect {
	effect := parseEffectType(se.EffectType)
	value := se.Value
	if value == 0 {
		// Older names baked the draw count into the effect name.
		switch strings.ToUpper(se.EffectType) {
		case "DRAW_TWO":
			value = 2
		case "DRAW_FOUR":
			value = 4
		}
	}
	return SpecialEffect{
		TriggerRank: parseRank(se.TriggerRank),
		Effect:      effect,
		Target:      parseTarget(se.Target),
		Value:       uint8(value),
	}
}

func parseHandEvaluation(hj *HandEvaluationJSON) *HandEvaluation {
	if hj == nil {
		return nil
	}
	h := &HandEvaluation{
		Method:        parseHandEvalMethod(hj.Method),
		TargetValue:   hj.TargetValue,
		BustThreshold: hj.BustThreshold,
	}
	for _, cv := range hj.CardValues {
		h.CardValues = append(h.CardValues, CardValue{
			Rank:     parseRank(cv.Rank),
			Value:    cv.Value,
			AltValue: cv.AltValue,
		})
	}
	for _, pj := range hj.Patterns {
		p := HandPattern{
			Name:           pj.Name,
			Priority:       pj.Priority,
			RequiredCount:  pj.RequiredCount,
			SameSuitCount:  pj.SameSuitCount,
			SequenceLength: pj.SequenceLength,
			SequenceWrap:   pj.SequenceWrap,
		}
		if pj.SameRankGroups != nil {
			p.SameRankGroups = append([]int(nil), pj.SameRankGroups...)
		}
		for _, r := range pj.RequiredRanks {
			p.RequiredRanks = append(p.RequiredRanks, parseRank(r))
		}
		h.Patterns = append(h.Patterns, p)
	}
	return h
}

func marshalHandEvaluation(h *HandEvaluation) *HandEvaluationJSON {
	if h == nil {
		return nil
	}
	hj := &HandEvaluationJSON{
		Method:        handEvalMethodToString(h.Method),
		TargetValue:   h.TargetValue,
		BustThreshold: h.BustThreshold,
	}
	for _, cv := range h.CardValues {
		hj.CardValues = append(hj.CardValues, CardValueJSON{
			Rank:     rankToString(cv.Rank),
			Value:    cv.Value,
			AltValue: cv.AltValue,
		})
	}
	for _, p := range h.Patterns {
		pj := HandPatternJSON{
			Name:           p.Name,
			Priority:       p.Priority,
			RequiredCount:  p.RequiredCount,
			SameSuitCount:  p.SameSuitCount,
			SequenceLength: p.SequenceLength,
			SequenceWrap:   p.SequenceWrap,
		}
		if p.SameRankGroups != nil {
			pj.SameRankGroups = append([]int(nil), p.SameRankGroups...)
		}
		for _, r := range p.RequiredRanks {
			pj.RequiredRanks = append(pj.RequiredRanks, rankToString(r))
		}
		hj.Patterns = append(hj.Patterns, pj)
	}
	return hj
}

func parseLocation(s string) Location {
	switch strings.ToLower(s) {
	case "deck":
		return LocationDeck
	case "hand":
		return LocationHand
	case "discard", "discard_pile":
		return LocationDiscard
	case "tableau":
		return LocationTableau
	case "opponent_hand":
		return LocationOpponentHand
	case "captured", "opponent_discard":
		return LocationCaptured
	default:
		return LocationDeck
	}
}

func locationToString(loc Location) string {
	switch loc {
	case LocationHand:
		return "hand"
	case LocationDiscard:
		return "discard"
	case LocationTableau:
		return "tableau"
	case LocationOpponentHand:
		return "opponent_hand"
	case LocationCaptured:
		return "captured"
	default:
		return "deck"
	}
}

func parseSuit(s string) Suit {
	switch strings.ToLower(s) {
	case "hearts":
		return SuitHearts
	case "diamonds":
		return SuitDiamonds
	case "clubs":
		return SuitClubs
	case "spades":
		return SuitSpades
	default:
		return SuitAny
	}
}

func suitToString(suit Suit) string {
	switch suit {
	case SuitHearts:
		return "hearts"
	case SuitDiamonds:
		return "diamonds"
	case SuitClubs:
		return "clubs"
	case SuitSpades:
		return "spades"
	default:
		return "none"
	}
}

// parseRank accepts word names, numerals, and single-letter court
// abbreviations, case-insensitively.
func parseRank(s string) Rank {
	switch strings.ToUpper(s) {
	case "ACE", "A":
		return RankAce
	case "TWO", "2":
		return RankTwo
	case "THREE", "3":
		return RankThree
	case "FOUR", "4":
		return RankFour
	case "FIVE", "5":
		return RankFive
	case "SIX", "6":
		return RankSix
	case "SEVEN", "7":
		return RankSeven
	case "EIGHT", "8":
		return RankEight
	case "NINE", "9":
		return RankNine
	case "TEN", "10", "T":
		return RankTen
	case "JACK", "J":
		return RankJack
	case "QUEEN", "Q":
		return RankQueen
	case "KING", "K":
		return RankKing
	case "ANY", "*":
		return RankAny
	default:
		return RankAce
	}
}

func rankToString(r Rank) string {
	switch r {
	case RankAce:
		return "ace"
	case RankTwo:
		return "two"
	case RankThree:
		return "three"
	case RankFour:
		return "four"
	case RankFive:
		return "five"
	case RankSix:
		return "six"
	case RankSeven:
		return "seven"
	case RankEight:
		return "eight"
	case RankNine:
		return "nine"
	case RankTen:
		return "ten"
	case RankJack:
		return "jack"
	case RankQueen:
		return "queen"
	case RankKing:
		return "king"
	default:
		return "any"
	}
}

func parseTableauMode(s string) TableauMode {
	switch strings.ToLower(s) {
	case "war":
		return TableauWar
	case "match_rank":
		return TableauMatchRank
	case "sequence":
		return TableauSequence
	default:
		return TableauNone
	}
}

func tableauModeToString(mode TableauMode) string {
	switch mode {
	case TableauWar:
		return "war"
	case TableauMatchRank:
		return "match_rank"
	case TableauSequence:
		return "sequence"
	default:
		return "none"
	}
}

func parseSequenceDirection(s string) SequenceDirection {
	switch strings.ToLower(s) {
	case "descending":
		return SequenceDescending
	case "both":
		return SequenceBoth
	default:
		return SequenceAscending
	}
}

func sequenceDirectionToString(dir SequenceDirection) string {
	switch dir {
	case SequenceDescending:
		return "descending"
	case SequenceBoth:
		return "both"
	default:
		return "ascending"
	}
}

func parseWinConditionType(s string) WinConditionType {
	switch strings.ToLower(s) {
	case "high_score":
		return WinHighScore
	case "first_to_score":
		return WinFirstToScore
	case "capture_all":
		return WinCaptureAll
	case "low_score":
		return WinLowScore
	case "all_hands_empty":
		return WinAllHandsEmpty
	case "best_hand":
		return WinBestHand
	case "most_captured":
		return WinMostCaptured
	default:
		return WinEmptyHand
	}
}

func winConditionTypeToString(wct WinConditionType) string {
	switch wct {
	case WinHighScore:
		return "high_score"
	case WinFirstToScore:
		return "first_to_score"
	case WinCaptureAll:
		return "capture_all"
	case WinLowScore:
		return "low_score"
	case WinAllHandsEmpty:
		return "all_hands_empty"
	case WinBestHand:
		return "best_hand"
	case WinMostCaptured:
		return "most_captured"
	default:
		return "empty_hand"
	}
}

func parseEffectType(s string) EffectType {
	switch strings.ToUpper(s) {
	case "REVERSE":
		return EffectReverse
	case "DRAW_CARDS", "DRAW_TWO", "DRAW_FOUR":
		return EffectDrawCards
	case "EXTRA_TURN":
		return EffectExtraTurn
	case "FORCE_DISCARD", "DISCARD":
		return EffectForceDiscard
	case "WILD":
		return EffectWild
	default:
		return EffectSkipNext
	}
}

func effectTypeToString(e EffectType) string {
	switch e {
	case EffectReverse:
		return "reverse"
	case EffectDrawCards:
		return "draw_cards"
	case EffectExtraTurn:
		return "extra_turn"
	case EffectForceDiscard:
		return "force_discard"
	case EffectWild:
		return "wild"
	default:
		return "skip_next"
	}
}

func parseTarget(s string) EffectTarget {
	switch strings.ToUpper(s) {
	case "ALL_OPPONENTS", "ALL", "ALL_PLAYERS":
		return TargetAllOpponents
	case "SELF":
		return TargetSelf
	default:
		return TargetNextPlayer
	}
}

func targetToString(t EffectTarget) string {
	switch t {
	case TargetAllOpponents:
		return "all_opponents"
	case TargetSelf:
		return "self"
	default:
		return "next_player"
	}
}

func parseTrigger(s string) ScoringTrigger {
	switch strings.ToLower(s) {
	case "trick_win":
		return TriggerTrickWin
	case "capture":
		return TriggerCapture
	case "hand_end":
		return TriggerHandEnd
	case "set_complete":
		return TriggerSetComplete
	default:
		return TriggerPlay
	}
}

func triggerToString(t ScoringTrigger) string {
	switch t {
	case TriggerTrickWin:
		return "trick_win"
	case TriggerCapture:
		return "capture"
	case TriggerHandEnd:
		return "hand_end"
	case TriggerSetComplete:
		return "set_complete"
	default:
		return "play"
	}
}

func parseHandEvalMethod(s string) HandEvalMethod {
	switch strings.ToLower(s) {
	case "high_card":
		return HandEvalHighCard
	case "point_total":
		return HandEvalPointTotal
	case "pattern_match":
		return HandEvalPatternMatch
	case "card_count":
		return HandEvalCardCount
	default:
		return HandEvalNone
	}
}

func handEvalMethodToString(m HandEvalMethod) string {
	switch m {
	case HandEvalHighCard:
		return "high_card"
	case HandEvalPointTotal:
		return "point_total"
	case HandEvalPatternMatch:
		return "pattern_match"
	case HandEvalCardCount:
		return "card_count"
	default:
		return "none"
	}
}

func parseOpCode(s string) ConditionOp {
	switch strings.ToLower(s) {
	case "check_card_rank":
		return OpCheckCardRank
	case "check_card_suit":
		return OpCheckCardSuit
	case "check_location_size":
		return OpCheckLocationSize
	case "check_sequence":
		return OpCheckSequence
	case "check_has_set_of_n":
		return OpCheckHasSetOfN
	case "check_has_run_of_n":
		return OpCheckHasRunOfN
	case "check_has_matching_pair":
		return OpCheckHasMatchingPair
	case "check_chip_count":
		return OpCheckChipCount
	case "check_pot_size":
		return OpCheckPotSize
	case "check_current_bet":
		return OpCheckCurrentBet
	case "check_can_afford":
		return OpCheckCanAfford
	case "check_card_matches_rank":
		return OpCheckCardMatchesRank
	case "check_card_matches_suit":
		return OpCheckCardMatchesSuit
	case "check_card_beats_top":
		return OpCheckCardBeatsTop
	case "and":
		return OpAnd
	case "or":
		return OpOr
	default:
		return OpCheckHandSize
	}
}

func opCodeToString(op ConditionOp) string {
	switch op {
	case OpCheckCardRank:
		return "check_card_rank"
	case OpCheckCardSuit:
		return "check_card_suit"
	case OpCheckLocationSize:
		return "check_location_size"
	case OpCheckSequence:
		return "check_sequence"
	case OpCheckHasSetOfN:
		return "check_has_set_of_n"
	case OpCheckHasRunOfN:
		return "check_has_run_of_n"
	case OpCheckHasMatchingPair:
		return "check_has_matching_pair"
	case OpCheckChipCount:
		return "check_chip_count"
	case OpCheckPotSize:
		return "check_pot_size"
	case OpCheckCurrentBet:
		return "check_current_bet"
	case OpCheckCanAfford:
		return "check_can_afford"
	case OpCheckCardMatchesRank:
		return "check_card_matches_rank"
	case OpCheckCardMatchesSuit:
		return "check_card_matches_suit"
	case OpCheckCardBeatsTop:
		return "check_card_beats_top"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "check_hand_size"
	}
}

// parseOperator accepts short names, spelled-out names, and symbols.
func parseOperator(s string) CompareOp {
	switch strings.ToUpper(s) {
	case "NE", "NOT_EQUALS", "!=":
		return CmpNE
	case "LT", "LESS_THAN", "<":
		return CmpLT
	case "GT", "GREATER_THAN", ">":
		return CmpGT
	case "LE", "LESS_EQUAL", "<=":
		return CmpLE
	case "GE", "GREATER_EQUAL", ">=":
		return CmpGE
	default:
		return CmpEQ
	}
}

func operatorToString(op CompareOp) string {
	switch op {
	case CmpNE:
		return "ne"
	case CmpLT:
		return "lt"
	case CmpGT:
		return "gt"
	case CmpLE:
		return "le"
	case CmpGE:
		return "ge"
	default:
		return "eq"
	}
}

// LoadGenomeFromJSON parses a genome from JSON bytes in either layout.
func LoadGenomeFromJSON(data []byte) (*GameGenome, error) {
	var genome GameGenome
	if err := json.Unmarshal(data, &genome); err != nil {
		return nil, err
	}
	return &genome, nil
}

// SaveGenomeToJSON serialises a genome to indented native-layout JSON.
func SaveGenomeToJSON(genome *GameGenome) ([]byte, error) {
	return json.MarshalIndent(genome, "", "  ")
}
