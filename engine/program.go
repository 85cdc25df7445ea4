package engine

import (
	"encoding/binary"
	"fmt"
)

// Bytecode versions. V2 adds a one-byte version prefix, tableau mode,
// sequence direction, and offsets for card scoring and hand evaluation.
const (
	BytecodeVersion1 = 1
	BytecodeVersion2 = 2

	HeaderSizeV1 = 36
	HeaderSizeV2 = 47
)

// Phase tags as they appear on the wire.
const (
	PhaseDraw    uint8 = 1
	PhasePlay    uint8 = 2
	PhaseDiscard uint8 = 3
	PhaseTrick   uint8 = 4
	PhaseBetting uint8 = 5
	PhaseClaim   uint8 = 6
	PhaseBidding uint8 = 7
)

// Legacy tags: version 1 streams had no trick or bidding phases and
// numbered betting and claim differently.
const (
	legacyPhaseBetting uint8 = 4
	legacyPhaseClaim   uint8 = 5
)

// Locations referenced by phases and conditions.
const (
	LocationDeck            uint8 = 0
	LocationHand            uint8 = 1
	LocationDiscard         uint8 = 2
	LocationTableau         uint8 = 3
	LocationOpponentHand    uint8 = 4
	LocationOpponentDiscard uint8 = 5
)

// Tableau resolution modes.
const (
	TableauNone      uint8 = 0
	TableauWar       uint8 = 1
	TableauMatchRank uint8 = 2
	TableauSequence  uint8 = 3
)

// Sequence directions for TableauSequence.
const (
	SequenceAscending  uint8 = 0
	SequenceDescending uint8 = 1
	SequenceBoth       uint8 = 2
)

// Win condition kinds.
const (
	WinEmptyHand     uint8 = 0
	WinHighScore     uint8 = 1
	WinFirstToScore  uint8 = 2
	WinCaptureAll    uint8 = 3
	WinLowScore      uint8 = 4
	WinAllHandsEmpty uint8 = 5
	WinBestHand      uint8 = 6
	WinMostCaptured  uint8 = 7
)

// OpCode is one slot in the instruction space. Conditions occupy
// 0..14, actions 20..35, control flow 40..41, comparison operators
// 50..55. Everything else is reserved.
type OpCode uint8

const (
	// Conditions.
	OpCheckHandSize        OpCode = 0
	OpCheckCardRank        OpCode = 1
	OpCheckCardSuit        OpCode = 2
	OpCheckLocationSize    OpCode = 3
	OpCheckSequence        OpCode = 4
	OpCheckHasSetOfN       OpCode = 5
	OpCheckHasRunOfN       OpCode = 6
	OpCheckHasMatchingPair OpCode = 7
	OpCheckChipCount       OpCode = 8
	OpCheckPotSize         OpCode = 9
	OpCheckCurrentBet      OpCode = 10
	OpCheckCanAfford       OpCode = 11
	OpCheckCardMatchesRank OpCode = 12
	OpCheckCardMatchesSuit OpCode = 13
	OpCheckCardBeatsTop    OpCode = 14

	// Actions.
	OpDrawCards        OpCode = 20
	OpPlayCard         OpCode = 21
	OpDiscardCard      OpCode = 22
	OpSkipTurn         OpCode = 23
	OpReverseOrder     OpCode = 24
	OpDrawFromOpponent OpCode = 25
	OpDiscardPairs     OpCode = 26
	OpBet              OpCode = 27
	OpCall             OpCode = 28
	OpRaise            OpCode = 29
	OpFold             OpCode = 30
	OpCheck            OpCode = 31
	OpAllIn            OpCode = 32
	OpClaim            OpCode = 33
	OpChallenge        OpCode = 34
	OpReveal           OpCode = 35

	// Control flow.
	OpAnd OpCode = 40
	OpOr  OpCode = 41

	// Comparison operators. Stored in condition records as an offset
	// from OpEQ.
	OpEQ OpCode = 50
	OpNE OpCode = 51
	OpLT OpCode = 52
	OpGT OpCode = 53
	OpLE OpCode = 54
	OpGE OpCode = 55

	// Sentinel opening the special-effects section.
	OpEffectHeader OpCode = 60
)

// Comparison operator offsets as stored in condition records.
const (
	CmpEQ uint8 = 0
	CmpNE uint8 = 1
	CmpLT uint8 = 2
	CmpGT uint8 = 3
	CmpLE uint8 = 4
	CmpGE uint8 = 5
)

// Condition is a decoded predicate. Leaf conditions compare a state
// quantity against Value; compound conditions (OpAnd/OpOr) hold their
// leaves in Children and ignore the other fields.
type Condition struct {
	OpCode   uint8
	Operator uint8
	Value    int32
	RefLoc   uint8
	Children []Condition
}

// IsCompound reports whether the condition combines sub-conditions.
func (c *Condition) IsCompound() bool {
	return c.OpCode == uint8(OpAnd) || c.OpCode == uint8(OpOr)
}

// EffectType enumerates what a triggered special effect does.
type EffectType uint8

const (
	EffectSkipNext     EffectType = 0
	EffectReverse      EffectType = 1
	EffectDrawCards    EffectType = 2
	EffectExtraTurn    EffectType = 3
	EffectForceDiscard EffectType = 4
	EffectWild         EffectType = 5
)

// Effect targets.
const (
	TargetNextPlayer   uint8 = 0
	TargetAllOpponents uint8 = 1
	TargetSelf         uint8 = 2
)

// EffectRule fires when a card of TriggerRank is played.
type EffectRule struct {
	TriggerRank uint8
	Type        EffectType
	Target      uint8
	Value       uint8
}

// Card scoring triggers.
const (
	TriggerTrickWin    uint8 = 0
	TriggerCapture     uint8 = 1
	TriggerPlay        uint8 = 2
	TriggerHandEnd     uint8 = 3
	TriggerSetComplete uint8 = 4
)

// CardScore awards points when a matching card meets its trigger.
// Suit or rank of 255 match anything.
type CardScore struct {
	Suit    uint8
	Rank    uint8
	Points  int16
	Trigger uint8
}

// Matches reports whether the rule applies to a card.
func (cs *CardScore) Matches(c Card) bool {
	if cs.Suit != SuitAny && cs.Suit != c.Suit {
		return false
	}
	if cs.Rank != RankAny && cs.Rank != c.Rank {
		return false
	}
	return true
}

// Hand evaluation methods.
const (
	HandEvalNone         uint8 = 0
	HandEvalHighCard     uint8 = 1
	HandEvalPointTotal   uint8 = 2
	HandEvalPatternMatch uint8 = 3
	HandEvalCardCount    uint8 = 4
)

// HandPattern describes one ranked shape for pattern-match evaluation,
// e.g. a flush is SameSuitCount=5, a full house Groups=[3,2].
type HandPattern struct {
	Priority      int
	RequiredCount int
	SameSuitCount int
	SeqLen        int
	SeqWrap       bool
	Groups        []int
	Ranks         []uint8
}

// HandEval holds everything needed to rate a hand at showdown.
// CardValues maps rank index to point value; AltValues holds the
// fallback value used when the primary total would bust.
type HandEval struct {
	Method        uint8
	TargetValue   int
	BustThreshold int
	HasValues     bool
	CardValues    [13]int
	AltValues     [13]int
	Patterns      []HandPattern
}

// ContractScoring parameterises bid-based scoring at round end.
type ContractScoring struct {
	PointsPerTrickBid int32
	OvertrickPoints   int32
	FailedPenalty     int32
	NilBonus          int32
	NilPenalty        int32
	BagLimit          int32
	BagPenalty        int32
}

// PhaseInfo is one decoded turn phase. Tag selects which field group
// is meaningful; the rest stay at their zero values.
type PhaseInfo struct {
	Tag uint8

	// Draw.
	DrawSource uint8
	DrawCount  int

	// Play.
	PlayTarget   uint8
	MinCards     int
	MaxCards     int
	PassIfUnable bool

	// Discard.
	DiscardTarget uint8
	DiscardCount  int

	// Shared by draw and discard.
	Mandatory bool

	// Draw guard or per-card play requirement.
	Condition *Condition

	// Trick.
	LeadSuitRequired bool
	TrumpSuit        uint8
	HighCardWins     bool
	BreakingSuit     uint8

	// Betting.
	MinBet    int32
	MaxRaises int

	// Bidding.
	MinBid   int
	MaxBid   int
	AllowNil bool
	Contract ContractScoring
}

// SetupInfo mirrors the setup section of the bytecode.
type SetupInfo struct {
	CardsPerPlayer int
	DealToTableau  int
	TableauSize    int
	StartingChips  int32
}

// WinRule is one decoded win condition, checked in declaration order.
type WinRule struct {
	Kind      uint8
	Threshold int32
}

// Program is a fully decoded rule set ready to run. It is immutable
// once parsed; any number of games may share one Program.
type Program struct {
	Version        uint8
	ContentVersion uint32
	GenomeHash     uint64
	PlayerCount    int
	MaxTurns       int32
	TableauMode    uint8
	SequenceDir    uint8

	Setup      SetupInfo
	Phases     []PhaseInfo
	WinRules   []WinRule
	Effects    [13]*EffectRule
	CardScores []CardScore
	HandEval   *HandEval

	// Teams is seat -> team, populated by the typed genome layer.
	// It does not travel in bytecode; batch requests run teamless.
	Teams []int8
}

// EffectFor returns the effect triggered by a rank, or nil.
func (p *Program) EffectFor(rank uint8) *EffectRule {
	if rank >= 13 {
		return nil
	}
	return p.Effects[rank]
}

// HasPhase reports whether any phase carries the given tag.
func (p *Program) HasPhase(tag uint8) bool {
	for i := range p.Phases {
		if p.Phases[i].Tag == tag {
			return true
		}
	}
	return false
}

// FindPhase returns the first phase with the given tag, or nil.
func (p *Program) FindPhase(tag uint8) *PhaseInfo {
	for i := range p.Phases {
		if p.Phases[i].Tag == tag {
			return &p.Phases[i]
		}
	}
	return nil
}

// HasWinRule reports whether a win condition of the given kind exists.
func (p *Program) HasWinRule(kind uint8) bool {
	for i := range p.WinRules {
		if p.WinRules[i].Kind == kind {
			return true
		}
	}
	return false
}

// hasTrickScoring reports whether any scoring rule fires on trick wins.
func (p *Program) hasTrickScoring() bool {
	for i := range p.CardScores {
		if p.CardScores[i].Trigger == TriggerTrickWin {
			return true
		}
	}
	return false
}

// reader walks a byte buffer with bounds checking. Every accessor
// returns an error instead of panicking on truncated input.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) u8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, fmt.Errorf("bytecode truncated at offset %d", r.pos)
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, fmt.Errorf("bytecode truncated at offset %d", r.pos)
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, fmt.Errorf("bytecode truncated at offset %d", r.pos)
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if r.remaining() < 8 {
		return 0, fmt.Errorf("bytecode truncated at offset %d", r.pos)
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *reader) i16() (int16, error) {
	v, err := r.u16()
	return int16(v), err
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) seek(offset uint32) error {
	if int(offset) > len(r.buf) {
		return fmt.Errorf("section offset %d beyond bytecode length %d", offset, len(r.buf))
	}
	r.pos = int(offset)
	return nil
}

// ParseProgram decodes bytecode into a Program. Version 2 streams are
// recognised by their leading version byte; anything else is parsed
// with the version 1 layout. Unknown phase tags and out-of-range
// offsets are fatal.
func ParseProgram(bytecode []byte) (*Program, error) {
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("empty bytecode")
	}
	if bytecode[0] == BytecodeVersion2 {
		return parseV2(bytecode)
	}
	return parseV1(bytecode)
}

func parseV2(buf []byte) (*Program, error) {
	if len(buf) < HeaderSizeV2 {
		return nil, fmt.Errorf("bytecode too short for v2 header: %d bytes", len(buf))
	}

	r := &reader{buf: buf, pos: 1} // version byte already checked
	p := &Program{Version: BytecodeVersion2}

	var err error
	if p.ContentVersion, err = r.u32(); err != nil {
		return nil, err
	}
	if p.GenomeHash, err = r.u64(); err != nil {
		return nil, err
	}
	pc, err := r.u32()
	if err != nil {
		return nil, err
	}
	p.PlayerCount = int(pc)
	if p.MaxTurns, err = r.i32(); err != nil {
		return nil, err
	}

	setupOff, err := r.u32()
	if err != nil {
		return nil, err
	}
	turnOff, err := r.u32()
	if err != nil {
		return nil, err
	}
	winOff, err := r.u32()
	if err != nil {
		return nil, err
	}
	effectsOff, err := r.u32()
	if err != nil {
		return nil, err
	}
	if p.TableauMode, err = r.u8(); err != nil {
		return nil, err
	}
	if p.SequenceDir, err = r.u8(); err != nil {
		return nil, err
	}
	cardScoringOff, err := r.u32()
	if err != nil {
		return nil, err
	}
	handEvalOff, err := r.u32()
	if err != nil {
		return nil, err
	}

	if p.PlayerCount < 1 || p.PlayerCount > MaxPlayers {
		return nil, fmt.Errorf("player count %d out of range", p.PlayerCount)
	}
	if p.TableauMode > TableauSequence {
		return nil, fmt.Errorf("unknown tableau mode %d", p.TableauMode)
	}

	if err := parseSetup(r, setupOff, p); err != nil {
		return nil, err
	}
	if err := parsePhases(r, turnOff, p, false); err != nil {
		return nil, err
	}
	if err := parseWinRules(r, winOff, p); err != nil {
		return nil, err
	}
	if err := parseEffects(r, effectsOff, p); err != nil {
		return nil, err
	}
	if cardScoringOff != 0 {
		if err := parseCardScoring(r, cardScoringOff, p); err != nil {
			return nil, err
		}
	}
	if handEvalOff != 0 {
		if err := parseHandEval(r, handEvalOff, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// parseV1 handles the original layout: no version prefix, no tableau
// byte, no card scoring or hand evaluation sections.
func parseV1(buf []byte) (*Program, error) {
	if len(buf) < HeaderSizeV1 {
		return nil, fmt.Errorf("bytecode too short for header: %d bytes", len(buf))
	}

	r := &reader{buf: buf}
	p := &Program{Version: BytecodeVersion1}

	var err error
	if p.ContentVersion, err = r.u32(); err != nil {
		return nil, err
	}
	if p.GenomeHash, err = r.u64(); err != nil {
		return nil, err
	}
	pc, err := r.u32()
	if err != nil {
		return nil, err
	}
	p.PlayerCount = int(pc)
	if p.MaxTurns, err = r.i32(); err != nil {
		return nil, err
	}

	setupOff, err := r.u32()
	if err != nil {
		return nil, err
	}
	turnOff, err := r.u32()
	if err != nil {
		return nil, err
	}
	winOff, err := r.u32()
	if err != nil {
		return nil, err
	}
	effectsOff, err := r.u32()
	if err != nil {
		return nil, err
	}

	if p.PlayerCount < 1 || p.PlayerCount > MaxPlayers {
		return nil, fmt.Errorf("player count %d out of range", p.PlayerCount)
	}

	if err := parseSetup(r, setupOff, p); err != nil {
		return nil, err
	}
	if err := parsePhases(r, turnOff, p, true); err != nil {
		return nil, err
	}
	if err := parseWinRules(r, winOff, p); err != nil {
		return nil, err
	}
	if err := parseEffects(r, effectsOff, p); err != nil {
		return nil, err
	}
	return p, nil
}

func parseSetup(r *reader, offset uint32, p *Program) error {
	if err := r.seek(offset); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	cpp, err := r.u32()
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	dtt, err := r.u32()
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	ts, err := r.u32()
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	chips, err := r.i32()
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	p.Setup = SetupInfo{
		CardsPerPlayer: int(cpp),
		DealToTableau:  int(dtt),
		TableauSize:    int(ts),
		StartingChips:  chips,
	}
	return nil
}

func parsePhases(r *reader, offset uint32, p *Program, legacy bool) error {
	if err := r.seek(offset); err != nil {
		return fmt.Errorf("turn structure: %w", err)
	}
	count, err := r.u32()
	if err != nil {
		return fmt.Errorf("turn structure: %w", err)
	}
	if count > 64 {
		return fmt.Errorf("turn structure: phase count %d unreasonable", count)
	}

	p.Phases = make([]PhaseInfo, 0, count)
	for i := uint32(0); i < count; i++ {
		tag, err := r.u8()
		if err != nil {
			return fmt.Errorf("phase %d: %w", i, err)
		}
		if legacy {
			switch tag {
			case legacyPhaseBetting:
				tag = PhaseBetting
			case legacyPhaseClaim:
				tag = PhaseClaim
			case PhaseDraw, PhasePlay, PhaseDiscard:
			default:
				return fmt.Errorf("phase %d: unknown legacy phase tag %d", i, tag)
			}
		}

		ph := PhaseInfo{Tag: tag}
		switch tag {
		case PhaseDraw:
			if err := parseDrawPhase(r, &ph); err != nil {
				return fmt.Errorf("phase %d: %w", i, err)
			}
		case PhasePlay:
			if err := parsePlayPhase(r, &ph, legacy); err != nil {
				return fmt.Errorf("phase %d: %w", i, err)
			}
		case PhaseDiscard:
			if err := parseDiscardPhase(r, &ph); err != nil {
				return fmt.Errorf("phase %d: %w", i, err)
			}
		case PhaseTrick:
			if err := parseTrickPhase(r, &ph); err != nil {
				return fmt.Errorf("phase %d: %w", i, err)
			}
		case PhaseBetting:
			if err := parseBettingPhase(r, &ph, legacy); err != nil {
				return fmt.Errorf("phase %d: %w", i, err)
			}
		case PhaseClaim:
			// Ten reserved bytes.
			for j := 0; j < 10; j++ {
				if _, err := r.u8(); err != nil {
					return fmt.Errorf("phase %d: %w", i, err)
				}
			}
		case PhaseBidding:
			if err := parseBiddingPhase(r, &ph); err != nil {
				return fmt.Errorf("phase %d: %w", i, err)
			}
		default:
			return fmt.Errorf("phase %d: unknown phase tag %d", i, tag)
		}
		p.Phases = append(p.Phases, ph)
	}
	return nil
}

func parseDrawPhase(r *reader, ph *PhaseInfo) error {
	src, err := r.u8()
	if err != nil {
		return err
	}
	count, err := r.u32()
	if err != nil {
		return err
	}
	mandatory, err := r.u8()
	if err != nil {
		return err
	}
	hasCond, err := r.u8()
	if err != nil {
		return err
	}
	ph.DrawSource = src
	ph.DrawCount = int(count)
	ph.Mandatory = mandatory == 1
	if hasCond == 1 {
		cond, err := parseLeafCondition(r)
		if err != nil {
			return err
		}
		ph.Condition = cond
	}
	return nil
}

func parsePlayPhase(r *reader, ph *PhaseInfo, legacy bool) error {
	target, err := r.u8()
	if err != nil {
		return err
	}
	minCards, err := r.u8()
	if err != nil {
		return err
	}
	maxCards, err := r.u8()
	if err != nil {
		return err
	}
	mandatory, err := r.u8()
	if err != nil {
		return err
	}
	pass := uint8(0)
	if !legacy {
		if pass, err = r.u8(); err != nil {
			return err
		}
	}
	condLen, err := r.u32()
	if err != nil {
		return err
	}

	ph.PlayTarget = target
	ph.MinCards = int(minCards)
	ph.MaxCards = int(maxCards)
	ph.Mandatory = mandatory == 1
	ph.PassIfUnable = pass == 1

	if condLen > 0 {
		if int(condLen) > r.remaining() {
			return fmt.Errorf("play condition length %d exceeds bytecode", condLen)
		}
		start := r.pos
		cond, err := parseCondition(r)
		if err != nil {
			return err
		}
		if consumed := r.pos - start; consumed != int(condLen) {
			return fmt.Errorf("play condition consumed %d bytes, declared %d", consumed, condLen)
		}
		ph.Condition = cond
	}
	return nil
}

func parseDiscardPhase(r *reader, ph *PhaseInfo) error {
	target, err := r.u8()
	if err != nil {
		return err
	}
	count, err := r.u32()
	if err != nil {
		return err
	}
	mandatory, err := r.u8()
	if err != nil {
		return err
	}
	ph.DiscardTarget = target
	ph.DiscardCount = int(count)
	ph.Mandatory = mandatory == 1
	return nil
}

func parseTrickPhase(r *reader, ph *PhaseInfo) error {
	lead, err := r.u8()
	if err != nil {
		return err
	}
	trump, err := r.u8()
	if err != nil {
		return err
	}
	high, err := r.u8()
	if err != nil {
		return err
	}
	breaking, err := r.u8()
	if err != nil {
		return err
	}
	ph.LeadSuitRequired = lead == 1
	ph.TrumpSuit = trump
	ph.HighCardWins = high == 1
	ph.BreakingSuit = breaking
	return nil
}

func parseBettingPhase(r *reader, ph *PhaseInfo, legacy bool) error {
	minBet, err := r.i32()
	if err != nil {
		return err
	}
	maxRaises, err := r.u32()
	if err != nil {
		return err
	}
	ph.MinBet = minBet
	ph.MaxRaises = int(maxRaises)
	if legacy {
		// The old encoder padded betting phases to 21 bytes.
		for j := 0; j < 13; j++ {
			if _, err := r.u8(); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseBiddingPhase(r *reader, ph *PhaseInfo) error {
	minBid, err := r.u8()
	if err != nil {
		return err
	}
	maxBid, err := r.u8()
	if err != nil {
		return err
	}
	allowNil, err := r.u8()
	if err != nil {
		return err
	}
	ph.MinBid = int(minBid)
	ph.MaxBid = int(maxBid)
	ph.AllowNil = allowNil == 1

	fields := []*int32{
		&ph.Contract.PointsPerTrickBid,
		&ph.Contract.OvertrickPoints,
		&ph.Contract.FailedPenalty,
		&ph.Contract.NilBonus,
		&ph.Contract.NilPenalty,
		&ph.Contract.BagLimit,
		&ph.Contract.BagPenalty,
	}
	for _, f := range fields {
		v, err := r.i32()
		if err != nil {
			return err
		}
		*f = v
	}
	return nil
}

// parseCondition reads either a 7-byte leaf or a compound header
// followed by nested leaves.
func parseCondition(r *reader) (*Condition, error) {
	op, err := r.u8()
	if err != nil {
		return nil, err
	}
	if op == uint8(OpAnd) || op == uint8(OpOr) {
		count, err := r.u32()
		if err != nil {
			return nil, err
		}
		if count == 0 || count > 16 {
			return nil, fmt.Errorf("compound condition with %d children", count)
		}
		cond := &Condition{OpCode: op, Children: make([]Condition, 0, count)}
		for i := uint32(0); i < count; i++ {
			leaf, err := parseLeafCondition(r)
			if err != nil {
				return nil, err
			}
			cond.Children = append(cond.Children, *leaf)
		}
		return cond, nil
	}
	r.pos-- // rewind the opcode for the leaf reader
	return parseLeafCondition(r)
}

func parseLeafCondition(r *reader) (*Condition, error) {
	op, err := r.u8()
	if err != nil {
		return nil, err
	}
	if op > uint8(OpCheckCardBeatsTop) {
		return nil, fmt.Errorf("unknown condition opcode %d", op)
	}
	operator, err := r.u8()
	if err != nil {
		return nil, err
	}
	if operator > CmpGE {
		return nil, fmt.Errorf("unknown comparison operator %d", operator)
	}
	value, err := r.i32()
	if err != nil {
		return nil, err
	}
	refLoc, err := r.u8()
	if err != nil {
		return nil, err
	}
	return &Condition{OpCode: op, Operator: operator, Value: value, RefLoc: refLoc}, nil
}

func parseWinRules(r *reader, offset uint32, p *Program) error {
	if err := r.seek(offset); err != nil {
		return fmt.Errorf("win conditions: %w", err)
	}
	count, err := r.u32()
	if err != nil {
		return fmt.Errorf("win conditions: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("win conditions: none declared")
	}
	if count > 16 {
		return fmt.Errorf("win conditions: count %d unreasonable", count)
	}
	p.WinRules = make([]WinRule, 0, count)
	for i := uint32(0); i < count; i++ {
		kind, err := r.u8()
		if err != nil {
			return fmt.Errorf("win condition %d: %w", i, err)
		}
		if kind > WinMostCaptured {
			return fmt.Errorf("win condition %d: unknown kind %d", i, kind)
		}
		threshold, err := r.i32()
		if err != nil {
			return fmt.Errorf("win condition %d: %w", i, err)
		}
		p.WinRules = append(p.WinRules, WinRule{Kind: kind, Threshold: threshold})
	}
	return nil
}

func parseEffects(r *reader, offset uint32, p *Program) error {
	if offset == 0 || int(offset) >= len(r.buf) {
		return nil
	}
	if err := r.seek(offset); err != nil {
		return fmt.Errorf("effects: %w", err)
	}
	sentinel, err := r.u8()
	if err != nil {
		return fmt.Errorf("effects: %w", err)
	}
	if sentinel != uint8(OpEffectHeader) {
		return fmt.Errorf("effects: expected header opcode %d, got %d", OpEffectHeader, sentinel)
	}
	count, err := r.u8()
	if err != nil {
		return fmt.Errorf("effects: %w", err)
	}
	for i := uint8(0); i < count; i++ {
		rank, err := r.u8()
		if err != nil {
			return fmt.Errorf("effect %d: %w", i, err)
		}
		etype, err := r.u8()
		if err != nil {
			return fmt.Errorf("effect %d: %w", i, err)
		}
		target, err := r.u8()
		if err != nil {
			return fmt.Errorf("effect %d: %w", i, err)
		}
		value, err := r.u8()
		if err != nil {
			return fmt.Errorf("effect %d: %w", i, err)
		}
		if rank >= 13 {
			return fmt.Errorf("effect %d: trigger rank %d out of range", i, rank)
		}
		if etype > uint8(EffectWild) {
			return fmt.Errorf("effect %d: unknown effect type %d", i, etype)
		}
		p.Effects[rank] = &EffectRule{
			TriggerRank: rank,
			Type:        EffectType(etype),
			Target:      target,
			Value:       value,
		}
	}
	return nil
}

func parseCardScoring(r *reader, offset uint32, p *Program) error {
	if err := r.seek(offset); err != nil {
		return fmt.Errorf("card scoring: %w", err)
	}
	count, err := r.u16()
	if err != nil {
		return fmt.Errorf("card scoring: %w", err)
	}
	p.CardScores = make([]CardScore, 0, count)
	for i := uint16(0); i < count; i++ {
		suit, err := r.u8()
		if err != nil {
			return fmt.Errorf("card scoring rule %d: %w", i, err)
		}
		rank, err := r.u8()
		if err != nil {
			return fmt.Errorf("card scoring rule %d: %w", i, err)
		}
		points, err := r.i16()
		if err != nil {
			return fmt.Errorf("card scoring rule %d: %w", i, err)
		}
		trigger, err := r.u8()
		if err != nil {
			return fmt.Errorf("card scoring rule %d: %w", i, err)
		}
		if trigger > TriggerSetComplete {
			return fmt.Errorf("card scoring rule %d: unknown trigger %d", i, trigger)
		}
		p.CardScores = append(p.CardScores, CardScore{
			Suit:    suit,
			Rank:    rank,
			Points:  points,
			Trigger: trigger,
		})
	}
	return nil
}

func parseHandEval(r *reader, offset uint32, p *Program) error {
	if err := r.seek(offset); err != nil {
		return fmt.Errorf("hand eval: %w", err)
	}
	method, err := r.u8()
	if err != nil {
		return fmt.Errorf("hand eval: %w", err)
	}
	if method == HandEvalNone {
		return nil
	}
	if method > HandEvalCardCount {
		return fmt.Errorf("hand eval: unknown method %d", method)
	}

	he := &HandEval{Method: method}
	target, err := r.u8()
	if err != nil {
		return fmt.Errorf("hand eval: %w", err)
	}
	bust, err := r.u8()
	if err != nil {
		return fmt.Errorf("hand eval: %w", err)
	}
	he.TargetValue = int(target)
	he.BustThreshold = int(bust)

	valueCount, err := r.u8()
	if err != nil {
		return fmt.Errorf("hand eval: %w", err)
	}
	for i := uint8(0); i < valueCount; i++ {
		rank, err := r.u8()
		if err != nil {
			return fmt.Errorf("hand eval value %d: %w", i, err)
		}
		value, err := r.u8()
		if err != nil {
			return fmt.Errorf("hand eval value %d: %w", i, err)
		}
		alt, err := r.u8()
		if err != nil {
			return fmt.Errorf("hand eval value %d: %w", i, err)
		}
		if rank >= 13 {
			return fmt.Errorf("hand eval value %d: rank %d out of range", i, rank)
		}
		he.CardValues[rank] = int(value)
		he.AltValues[rank] = int(alt)
		he.HasValues = true
	}

	patternCount, err := r.u8()
	if err != nil {
		return fmt.Errorf("hand eval: %w", err)
	}
	for i := uint8(0); i < patternCount; i++ {
		pat := HandPattern{}
		priority, err := r.u8()
		if err != nil {
			return fmt.Errorf("hand pattern %d: %w", i, err)
		}
		required, err := r.u8()
		if err != nil {
			return fmt.Errorf("hand pattern %d: %w", i, err)
		}
		sameSuit, err := r.u8()
		if err != nil {
			return fmt.Errorf("hand pattern %d: %w", i, err)
		}
		seqLen, err := r.u8()
		if err != nil {
			return fmt.Errorf("hand pattern %d: %w", i, err)
		}
		seqWrap, err := r.u8()
		if err != nil {
			return fmt.Errorf("hand pattern %d: %w", i, err)
		}
		pat.Priority = int(priority)
		pat.RequiredCount = int(required)
		pat.SameSuitCount = int(sameSuit)
		pat.SeqLen = int(seqLen)
		pat.SeqWrap = seqWrap == 1

		groupCount, err := r.u8()
		if err != nil {
			return fmt.Errorf("hand pattern %d: %w", i, err)
		}
		for j := uint8(0); j < groupCount; j++ {
			g, err := r.u8()
			if err != nil {
				return fmt.Errorf("hand pattern %d group %d: %w", i, j, err)
			}
			pat.Groups = append(pat.Groups, int(g))
		}

		rankCount, err := r.u8()
		if err != nil {
			return fmt.Errorf("hand pattern %d: %w", i, err)
		}
		for j := uint8(0); j < rankCount; j++ {
			rk, err := r.u8()
			if err != nil {
				return fmt.Errorf("hand pattern %d rank %d: %w", i, j, err)
			}
			pat.Ranks = append(pat.Ranks, rk)
		}
		he.Patterns = append(he.Patterns, pat)
	}

	p.HandEval = he
	return nil
}
