package genome

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"sort"
)

// Bytecode layout constants. These mirror the engine's parser; the
// compiler always emits version 2.
const (
	bytecodeVersion2 = 2
	headerSizeV2     = 47

	// contentVersion is baked into every header. It tracks the content
	// encoding, not the container layout, and has never needed a bump.
	contentVersion = 1

	maxPhases            = 64
	maxWinConditions     = 16
	maxConditionChildren = 16
)

// CompileError reports a genome field the bytecode encoding cannot
// represent.
type CompileError struct {
	Field   string
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %s", e.Field, e.Message)
}

func compileErrorf(field, format string, args ...interface{}) error {
	return &CompileError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// writer builds a big-endian byte stream. The zero buffer grows as
// sections are appended; header fields are patched in place once the
// section offsets are known.
type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) u16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}

func (w *writer) u32(v uint32) {
	w.buf = append(w.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (w *writer) i16(v int16) {
	w.u16(uint16(v))
}

func (w *writer) i32(v int32) {
	w.u32(uint32(v))
}

func (w *writer) bool(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *writer) patchU32(offset int, v uint32) {
	binary.BigEndian.PutUint32(w.buf[offset:offset+4], v)
}

// Compile lowers a genome to version 2 bytecode. playerCount overrides
// the genome's own player count when positive; the result is baked
// into the header. Compilation fails only on fields the wire format
// cannot carry; rule coherence is the validator's concern.
func Compile(g *GameGenome, playerCount int) ([]byte, error) {
	pc := playerCount
	if pc <= 0 {
		pc = g.Players()
	}
	if pc < 2 || pc > MaxPlayers {
		return nil, compileErrorf("player_count", "player count %d out of range 2..%d", pc, MaxPlayers)
	}

	if err := checkSetup(&g.Setup, pc); err != nil {
		return nil, err
	}
	if g.TurnStructure.MaxTurns <= 0 {
		return nil, compileErrorf("turn_structure.max_turns", "max turns %d must be positive", g.TurnStructure.MaxTurns)
	}
	if g.TurnStructure.TableauMode > TableauSequence {
		return nil, compileErrorf("turn_structure.tableau_mode", "unknown tableau mode %d", g.TurnStructure.TableauMode)
	}
	if g.TurnStructure.SequenceDirection > SequenceBoth {
		return nil, compileErrorf("turn_structure.sequence_direction", "unknown sequence direction %d", g.TurnStructure.SequenceDirection)
	}
	if len(g.TurnStructure.Phases) > maxPhases {
		return nil, compileErrorf("turn_structure.phases", "%d phases exceed the limit of %d", len(g.TurnStructure.Phases), maxPhases)
	}
	if len(g.WinConditions) == 0 {
		return nil, compileErrorf("win_conditions", "at least one win condition is required")
	}
	if len(g.WinConditions) > maxWinConditions {
		return nil, compileErrorf("win_conditions", "%d win conditions exceed the limit of %d", len(g.WinConditions), maxWinConditions)
	}

	w := &writer{buf: make([]byte, headerSizeV2, 512)}
	w.buf[0] = bytecodeVersion2
	binary.BigEndian.PutUint32(w.buf[1:5], contentVersion)
	binary.BigEndian.PutUint64(w.buf[5:13], ContentHash(g))
	binary.BigEndian.PutUint32(w.buf[13:17], uint32(pc))
	binary.BigEndian.PutUint32(w.buf[17:21], uint32(g.TurnStructure.MaxTurns))
	w.buf[37] = uint8(g.TurnStructure.TableauMode)
	w.buf[38] = uint8(g.TurnStructure.SequenceDirection)

	w.patchU32(21, uint32(len(w.buf)))
	emitSetup(w, &g.Setup)

	w.patchU32(25, uint32(len(w.buf)))
	if err := emitPhases(w, g.TurnStructure.Phases); err != nil {
		return nil, err
	}

	w.patchU32(29, uint32(len(w.buf)))
	if err := emitWinConditions(w, g.WinConditions); err != nil {
		return nil, err
	}

	w.patchU32(33, uint32(len(w.buf)))
	if err := emitEffects(w, g.SpecialEffects); err != nil {
		return nil, err
	}

	if len(g.CardScoring) > 0 {
		w.patchU32(39, uint32(len(w.buf)))
		if err := emitCardScoring(w, g.CardScoring); err != nil {
			return nil, err
		}
	}

	if g.HandEvaluation != nil && g.HandEvaluation.Method != HandEvalNone {
		w.patchU32(43, uint32(len(w.buf)))
		if err := emitHandEvaluation(w, g.HandEvaluation); err != nil {
			return nil, err
		}
	}

	return w.buf, nil
}

func checkSetup(s *SetupRules, pc int) error {
	if s.CardsPerPlayer < 0 {
		return compileErrorf("setup.cards_per_player", "negative card count %d", s.CardsPerPlayer)
	}
	if s.DealToTableau < 0 {
		return compileErrorf("setup.deal_to_tableau", "negative card count %d", s.DealToTableau)
	}
	if s.TableauSize < 0 {
		return compileErrorf("setup.tableau_size", "negative pile count %d", s.TableauSize)
	}
	if s.StartingChips < 0 {
		return compileErrorf("setup.starting_chips", "negative chip count %d", s.StartingChips)
	}
	if dealt := s.CardsPerPlayer*pc + s.DealToTableau; dealt > StandardDeckSize {
		return compileErrorf("setup.cards_per_player", "deal consumes %d cards, deck holds %d", dealt, StandardDeckSize)
	}
	return nil
}

func emitSetup(w *writer, s *SetupRules) {
	w.u32(uint32(s.CardsPerPlayer))
	w.u32(uint32(s.DealToTableau))
	w.u32(uint32(s.TableauSize))
	w.i32(s.StartingChips)
}

func emitPhases(w *writer, phases []Phase) error {
	w.u32(uint32(len(phases)))
	for i, p := range phases {
		field := fmt.Sprintf("turn_structure.phases[%d]", i)
		w.u8(p.PhaseType())
		var err error
		switch ph := p.(type) {
		case *DrawPhase:
			err = emitDrawPhase(w, ph, field)
		case *PlayPhase:
			err = emitPlayPhase(w, ph, field)
		case *DiscardPhase:
			err = emitDiscardPhase(w, ph, field)
		case *TrickPhase:
			err = emitTrickPhase(w, ph, field)
		case *BettingPhase:
			err = emitBettingPhase(w, ph, field)
		case *ClaimPhase:
			// Ten reserved bytes.
			for j := 0; j < 10; j++ {
				w.u8(0)
			}
		case *BiddingPhase:
			err = emitBiddingPhase(w, ph, field)
		default:
			err = compileErrorf(field, "unknown phase type %d", p.PhaseType())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func emitDrawPhase(w *writer, p *DrawPhase, field string) error {
	if p.Source > LocationCaptured {
		return compileErrorf(field+".source", "unknown location %d", p.Source)
	}
	if p.Count < 0 {
		return compileErrorf(field+".count", "negative draw count %d", p.Count)
	}
	w.u8(uint8(p.Source))
	w.u32(uint32(p.Count))
	w.bool(p.Mandatory)
	if p.Condition == nil {
		w.u8(0)
		return nil
	}
	// Draw guards travel as a single leaf on the wire.
	if p.Condition.IsCompound() || len(p.Condition.Children) > 0 {
		return compileErrorf(field+".condition", "draw conditions cannot be compound")
	}
	w.u8(1)
	return emitLeafCondition(w, p.Condition, field+".condition")
}

func emitPlayPhase(w *writer, p *PlayPhase, field string) error {
	if p.Target > LocationCaptured {
		return compileErrorf(field+".target", "unknown location %d", p.Target)
	}
	if p.MinCards < 0 || p.MinCards > 255 {
		return compileErrorf(field+".min_cards", "card count %d out of range 0..255", p.MinCards)
	}
	if p.MaxCards < 0 || p.MaxCards > 255 {
		return compileErrorf(field+".max_cards", "card count %d out of range 0..255", p.MaxCards)
	}
	w.u8(uint8(p.Target))
	w.u8(uint8(p.MinCards))
	w.u8(uint8(p.MaxCards))
	w.bool(p.Mandatory)
	w.bool(p.PassIfUnable)

	if p.ValidPlayCondition == nil {
		w.u32(0)
		return nil
	}
	lenAt := len(w.buf)
	w.u32(0)
	start := len(w.buf)
	if err := emitCondition(w, p.ValidPlayCondition, field+".valid_play_condition"); err != nil {
		return err
	}
	w.patchU32(lenAt, uint32(len(w.buf)-start))
	return nil
}

func emitDiscardPhase(w *writer, p *DiscardPhase, field string) error {
	if p.Target > LocationCaptured {
		return compileErrorf(field+".target", "unknown location %d", p.Target)
	}
	if p.Count < 0 {
		return compileErrorf(field+".count", "negative discard count %d", p.Count)
	}
	w.u8(uint8(p.Target))
	w.u32(uint32(p.Count))
	w.bool(p.Mandatory)
	return nil
}

func emitTrickPhase(w *writer, p *TrickPhase, field string) error {
	if err := checkSuit(p.TrumpSuit, field+".trump_suit"); err != nil {
		return err
	}
	if err := checkSuit(p.BreakingSuit, field+".breaking_suit"); err != nil {
		return err
	}
	w.bool(p.LeadSuitRequired)
	w.u8(uint8(p.TrumpSuit))
	w.bool(p.HighCardWins)
	w.u8(uint8(p.BreakingSuit))
	return nil
}

func emitBettingPhase(w *writer, p *BettingPhase, field string) error {
	if p.MinBet < 0 {
		return compileErrorf(field+".min_bet", "negative bet %d", p.MinBet)
	}
	if p.MaxRaises < 0 {
		return compileErrorf(field+".max_raises", "negative raise count %d", p.MaxRaises)
	}
	w.i32(p.MinBet)
	w.u32(uint32(p.MaxRaises))
	return nil
}

func emitBiddingPhase(w *writer, p *BiddingPhase, field string) error {
	if p.MinBid < 0 || p.MinBid > 255 {
		return compileErrorf(field+".min_bid", "bid %d out of range 0..255", p.MinBid)
	}
	if p.MaxBid < 0 || p.MaxBid > 255 {
		return compileErrorf(field+".max_bid", "bid %d out of range 0..255", p.MaxBid)
	}
	if p.MinBid > p.MaxBid {
		return compileErrorf(field+".min_bid", "minimum bid %d exceeds maximum %d", p.MinBid, p.MaxBid)
	}
	w.u8(uint8(p.MinBid))
	w.u8(uint8(p.MaxBid))
	w.bool(p.AllowNil)
	w.i32(p.PointsPerTrickBid)
	w.i32(p.OvertrickPoints)
	w.i32(p.FailedPenalty)
	w.i32(p.NilBonus)
	w.i32(p.NilPenalty)
	w.i32(p.BagLimit)
	w.i32(p.BagPenalty)
	return nil
}

func emitCondition(w *writer, c *Condition, field string) error {
	if !c.IsCompound() {
		return emitLeafCondition(w, c, field)
	}
	if len(c.Children) == 0 || len(c.Children) > maxConditionChildren {
		return compileErrorf(field, "compound condition needs 1..%d children, has %d", maxConditionChildren, len(c.Children))
	}
	w.u8(uint8(c.OpCode))
	w.u32(uint32(len(c.Children)))
	for i := range c.Children {
		child := &c.Children[i]
		childField := fmt.Sprintf("%s.children[%d]", field, i)
		if child.IsCompound() || len(child.Children) > 0 {
			return compileErrorf(childField, "conditions nest at most one level")
		}
		if err := emitLeafCondition(w, child, childField); err != nil {
			return err
		}
	}
	return nil
}

func emitLeafCondition(w *writer, c *Condition, field string) error {
	if c.OpCode > OpCheckCardBeatsTop {
		return compileErrorf(field+".opcode", "unknown condition opcode %d", c.OpCode)
	}
	if c.Operator > CmpGE {
		return compileErrorf(field+".operator", "unknown comparison operator %d", c.Operator)
	}
	if c.RefLoc > LocationCaptured {
		return compileErrorf(field+".ref_location", "unknown location %d", c.RefLoc)
	}
	w.u8(uint8(c.OpCode))
	w.u8(uint8(c.Operator))
	w.i32(c.Value)
	w.u8(uint8(c.RefLoc))
	return nil
}

func emitWinConditions(w *writer, wins []WinCondition) error {
	w.u32(uint32(len(wins)))
	for i, wc := range wins {
		if wc.Type > WinMostCaptured {
			return compileErrorf(fmt.Sprintf("win_conditions[%d].type", i), "unknown win condition %d", wc.Type)
		}
		w.u8(uint8(wc.Type))
		w.i32(wc.Threshold)
	}
	return nil
}

// emitEffects writes the special-effects section. The section is
// always present, possibly with a zero count, so the header offset
// never dangles. Rules are sorted so equivalent genomes yield
// identical bytes.
func emitEffects(w *writer, effects []SpecialEffect) error {
	if len(effects) > 13 {
		return compileErrorf("special_effects", "%d effects exceed one per rank", len(effects))
	}
	sorted := sortedEffects(effects)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].TriggerRank == sorted[i-1].TriggerRank {
			return compileErrorf("special_effects", "duplicate effect for rank %d", sorted[i].TriggerRank)
		}
	}

	w.u8(60) // section sentinel
	w.u8(uint8(len(sorted)))
	for i, e := range sorted {
		field := fmt.Sprintf("special_effects[%d]", i)
		if e.TriggerRank >= 13 {
			return compileErrorf(field+".trigger_rank", "trigger rank %d out of range", e.TriggerRank)
		}
		if e.Effect > EffectWild {
			return compileErrorf(field+".effect", "unknown effect type %d", e.Effect)
		}
		if e.Target > TargetSelf {
			return compileErrorf(field+".target", "unknown target %d", e.Target)
		}
		w.u8(uint8(e.TriggerRank))
		w.u8(uint8(e.Effect))
		w.u8(uint8(e.Target))
		w.u8(e.Value)
	}
	return nil
}

func emitCardScoring(w *writer, rules []CardScoringRule) error {
	if len(rules) > 65535 {
		return compileErrorf("card_scoring", "%d rules exceed the wire limit", len(rules))
	}
	sorted := sortedScoring(rules)
	w.u16(uint16(len(sorted)))
	for i, r := range sorted {
		field := fmt.Sprintf("card_scoring[%d]", i)
		if err := checkSuit(r.Suit, field+".suit"); err != nil {
			return err
		}
		if err := checkRank(r.Rank, field+".rank"); err != nil {
			return err
		}
		if r.Trigger > TriggerSetComplete {
			return compileErrorf(field+".trigger", "unknown trigger %d", r.Trigger)
		}
		w.u8(uint8(r.Suit))
		w.u8(uint8(r.Rank))
		w.i16(r.Points)
		w.u8(uint8(r.Trigger))
	}
	return nil
}

func emitHandEvaluation(w *writer, h *HandEvaluation) error {
	if h.Method > HandEvalCardCount {
		return compileErrorf("hand_evaluation.method", "unknown method %d", h.Method)
	}
	if h.TargetValue < 0 || h.TargetValue > 255 {
		return compileErrorf("hand_evaluation.target_value", "value %d out of range 0..255", h.TargetValue)
	}
	if h.BustThreshold < 0 || h.BustThreshold > 255 {
		return compileErrorf("hand_evaluation.bust_threshold", "value %d out of range 0..255", h.BustThreshold)
	}
	w.u8(uint8(h.Method))
	w.u8(uint8(h.TargetValue))
	w.u8(uint8(h.BustThreshold))

	if len(h.CardValues) > 13 {
		return compileErrorf("hand_evaluation.card_values", "%d values exceed one per rank", len(h.CardValues))
	}
	w.u8(uint8(len(h.CardValues)))
	seen := [13]bool{}
	for i, cv := range h.CardValues {
		field := fmt.Sprintf("hand_evaluation.card_values[%d]", i)
		if cv.Rank >= 13 {
			return compileErrorf(field+".rank", "rank %d out of range", cv.Rank)
		}
		if seen[cv.Rank] {
			return compileErrorf(field+".rank", "duplicate value for rank %d", cv.Rank)
		}
		seen[cv.Rank] = true
		if cv.Value < 0 || cv.Value > 255 {
			return compileErrorf(field+".value", "value %d out of range 0..255", cv.Value)
		}
		if cv.AltValue < 0 || cv.AltValue > 255 {
			return compileErrorf(field+".alt_value", "value %d out of range 0..255", cv.AltValue)
		}
		w.u8(uint8(cv.Rank))
		w.u8(uint8(cv.Value))
		w.u8(uint8(cv.AltValue))
	}

	if len(h.Patterns) > 255 {
		return compileErrorf("hand_evaluation.patterns", "%d patterns exceed the wire limit", len(h.Patterns))
	}
	// The runtime takes the first matching pattern, so emission order
	// is strongest first.
	sorted := sortedPatterns(h.Patterns)
	w.u8(uint8(len(sorted)))
	for i, p := range sorted {
		field := fmt.Sprintf("hand_evaluation.patterns[%d]", i)
		if err := emitHandPattern(w, &p, field); err != nil {
			return err
		}
	}
	return nil
}

func emitHandPattern(w *writer, p *HandPattern, field string) error {
	if p.Priority < 0 || p.Priority > 255 {
		return compileErrorf(field+".priority", "value %d out of range 0..255", p.Priority)
	}
	if p.RequiredCount < 0 || p.RequiredCount > 255 {
		return compileErrorf(field+".required_count", "value %d out of range 0..255", p.RequiredCount)
	}
	if p.SameSuitCount < 0 || p.SameSuitCount > 255 {
		return compileErrorf(field+".same_suit_count", "value %d out of range 0..255", p.SameSuitCount)
	}
	if p.SequenceLength < 0 || p.SequenceLength > 255 {
		return compileErrorf(field+".sequence_length", "value %d out of range 0..255", p.SequenceLength)
	}
	w.u8(uint8(p.Priority))
	w.u8(uint8(p.RequiredCount))
	w.u8(uint8(p.SameSuitCount))
	w.u8(uint8(p.SequenceLength))
	w.bool(p.SequenceWrap)

	if len(p.SameRankGroups) > 255 {
		return compileErrorf(field+".same_rank_groups", "%d groups exceed the wire limit", len(p.SameRankGroups))
	}
	w.u8(uint8(len(p.SameRankGroups)))
	for i, g := range p.SameRankGroups {
		if g < 0 || g > 255 {
			return compileErrorf(fmt.Sprintf("%s.same_rank_groups[%d]", field, i), "group size %d out of range 0..255", g)
		}
		w.u8(uint8(g))
	}

	if len(p.RequiredRanks) > 255 {
		return compileErrorf(field+".required_ranks", "%d ranks exceed the wire limit", len(p.RequiredRanks))
	}
	w.u8(uint8(len(p.RequiredRanks)))
	for i, r := range p.RequiredRanks {
		if r >= 13 {
			return compileErrorf(fmt.Sprintf("%s.required_ranks[%d]", field, i), "rank %d out of range", r)
		}
		w.u8(uint8(r))
	}
	return nil
}

func checkSuit(s Suit, field string) error {
	if s > SuitSpades && s != SuitAny {
		return compileErrorf(field, "unknown suit %d", s)
	}
	return nil
}

func checkRank(r Rank, field string) error {
	if r > RankKing && r != RankAny {
		return compileErrorf(field, "unknown rank %d", r)
	}
	return nil
}

func sortedEffects(effects []SpecialEffect) []SpecialEffect {
	out := append([]SpecialEffect(nil), effects...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].TriggerRank != out[j].TriggerRank {
			return out[i].TriggerRank < out[j].TriggerRank
		}
		if out[i].Effect != out[j].Effect {
			return out[i].Effect < out[j].Effect
		}
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func sortedScoring(rules []CardScoringRule) []CardScoringRule {
	out := append([]CardScoringRule(nil), rules...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Trigger != out[j].Trigger {
			return out[i].Trigger < out[j].Trigger
		}
		if out[i].Suit != out[j].Suit {
			return out[i].Suit < out[j].Suit
		}
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].Points < out[j].Points
	})
	return out
}

func sortedPatterns(patterns []HandPattern) []HandPattern {
	out := append([]HandPattern(nil), patterns...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// ContentHash folds the rule content of a genome into a stable 64-bit
// FNV-1a digest. Provenance fields and pattern display names are
// skipped, and order-independent rule lists are sorted first, so
// equivalent genomes hash alike across processes and platforms.
func ContentHash(g *GameGenome) uint64 {
	h := fnv.New64a()
	hw := &hashWriter{h: h}

	hw.i64(int64(g.Players()))
	hw.i64(int64(g.MinTurns))

	hw.i64(int64(g.Setup.CardsPerPlayer))
	hw.i64(int64(g.Setup.DealToTableau))
	hw.i64(int64(g.Setup.TableauSize))
	hw.i64(int64(g.Setup.StartingChips))

	hw.i64(int64(g.TurnStructure.MaxTurns))
	hw.u8(uint8(g.TurnStructure.TableauMode))
	hw.u8(uint8(g.TurnStructure.SequenceDirection))
	hw.bool(g.TurnStructure.IsTrickBased)

	hw.i64(int64(len(g.TurnStructure.Phases)))
	for _, p := range g.TurnStructure.Phases {
		hashPhase(hw, p)
	}

	hw.i64(int64(len(g.WinConditions)))
	for _, wc := range g.WinConditions {
		hw.u8(uint8(wc.Type))
		hw.i64(int64(wc.Threshold))
	}

	effects := sortedEffects(g.SpecialEffects)
	hw.i64(int64(len(effects)))
	for _, e := range effects {
		hw.u8(uint8(e.TriggerRank))
		hw.u8(uint8(e.Effect))
		hw.u8(uint8(e.Target))
		hw.u8(e.Value)
	}

	scoring := sortedScoring(g.CardScoring)
	hw.i64(int64(len(scoring)))
	for _, r := range scoring {
		hw.u8(uint8(r.Suit))
		hw.u8(uint8(r.Rank))
		hw.i64(int64(r.Points))
		hw.u8(uint8(r.Trigger))
	}

	if g.HandEvaluation == nil || g.HandEvaluation.Method == HandEvalNone {
		hw.u8(0)
	} else {
		he := g.HandEvaluation
		hw.u8(uint8(he.Method))
		hw.i64(int64(he.TargetValue))
		hw.i64(int64(he.BustThreshold))
		hw.i64(int64(len(he.CardValues)))
		for _, cv := range he.CardValues {
			hw.u8(uint8(cv.Rank))
			hw.i64(int64(cv.Value))
			hw.i64(int64(cv.AltValue))
		}
		patterns := sortedPatterns(he.Patterns)
		hw.i64(int64(len(patterns)))
		for _, p := range patterns {
			hw.i64(int64(p.Priority))
			hw.i64(int64(p.RequiredCount))
			hw.i64(int64(p.SameSuitCount))
			hw.i64(int64(p.SequenceLength))
			hw.bool(p.SequenceWrap)
			hw.i64(int64(len(p.SameRankGroups)))
			for _, grp := range p.SameRankGroups {
				hw.i64(int64(grp))
			}
			hw.i64(int64(len(p.RequiredRanks)))
			for _, r := range p.RequiredRanks {
				hw.u8(uint8(r))
			}
		}
	}

	if g.Teams == nil || !g.Teams.Enabled {
		hw.u8(0)
	} else {
		hw.u8(1)
		hw.i64(int64(len(g.Teams.Teams)))
		for _, team := range g.Teams.Teams {
			hw.i64(int64(len(team)))
			for _, seat := range team {
				hw.i64(int64(seat))
			}
		}
	}

	return h.Sum64()
}

func hashPhase(hw *hashWriter, p Phase) {
	hw.u8(p.PhaseType())
	switch ph := p.(type) {
	case *DrawPhase:
		hw.u8(uint8(ph.Source))
		hw.i64(int64(ph.Count))
		hw.bool(ph.Mandatory)
		hashCondition(hw, ph.Condition)
	case *PlayPhase:
		hw.u8(uint8(ph.Target))
		hw.i64(int64(ph.MinCards))
		hw.i64(int64(ph.MaxCards))
		hw.bool(ph.Mandatory)
		hw.bool(ph.PassIfUnable)
		hashCondition(hw, ph.ValidPlayCondition)
	case *DiscardPhase:
		hw.u8(uint8(ph.Target))
		hw.i64(int64(ph.Count))
		hw.bool(ph.Mandatory)
	case *TrickPhase:
		hw.bool(ph.LeadSuitRequired)
		hw.u8(uint8(ph.TrumpSuit))
		hw.bool(ph.HighCardWins)
		hw.u8(uint8(ph.BreakingSuit))
	case *BettingPhase:
		hw.i64(int64(ph.MinBet))
		hw.i64(int64(ph.MaxRaises))
	case *BiddingPhase:
		hw.i64(int64(ph.MinBid))
		hw.i64(int64(ph.MaxBid))
		hw.bool(ph.AllowNil)
		hw.i64(int64(ph.PointsPerTrickBid))
		hw.i64(int64(ph.OvertrickPoints))
		hw.i64(int64(ph.FailedPenalty))
		hw.i64(int64(ph.NilBonus))
		hw.i64(int64(ph.NilPenalty))
		hw.i64(int64(ph.BagLimit))
		hw.i64(int64(ph.BagPenalty))
	}
}

func hashCondition(hw *hashWriter, c *Condition) {
	if c == nil {
		hw.u8(0)
		return
	}
	hw.u8(1)
	hw.u8(uint8(c.OpCode))
	hw.u8(uint8(c.Operator))
	hw.i64(int64(c.Value))
	hw.u8(uint8(c.RefLoc))
	hw.i64(int64(len(c.Children)))
	for i := range c.Children {
		child := c.Children[i]
		hw.u8(uint8(child.OpCode))
		hw.u8(uint8(child.Operator))
		hw.i64(int64(child.Value))
		hw.u8(uint8(child.RefLoc))
	}
}

// hashWriter feeds fixed-width big-endian values into an FNV state.
type hashWriter struct {
	h       hash.Hash64
	scratch [8]byte
}

func (hw *hashWriter) u8(v uint8) {
	hw.scratch[0] = v
	hw.h.Write(hw.scratch[:1])
}

func (hw *hashWriter) bool(v bool) {
	if v {
		hw.u8(1)
	} else {
		hw.u8(0)
	}
}

func (hw *hashWriter) i64(v int64) {
	binary.BigEndian.PutUint64(hw.scratch[:], uint64(v))
	hw.h.Write(hw.scratch[:])
}
