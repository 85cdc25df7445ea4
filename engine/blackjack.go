package engine

// Classic twenty-one values: ace counts high until the total would
// bust, then demotes to its alternate value one ace at a time.
const (
	blackjackTarget = 21
	aceHigh         = 11
	aceLow          = 1
)

// PointTotal sums a hand under a point-total evaluation. Cards whose
// alternate value is lower demote one at a time while the total sits
// above the target, which is how aces flip from 11 to 1. A nil or
// valueless evaluation falls back to the classic table.
func PointTotal(hand []Card, he *HandEval) int {
	if he == nil || !he.HasValues {
		return classicPointTotal(hand)
	}

	target := he.TargetValue
	if target <= 0 {
		target = blackjackTarget
	}

	total := 0
	demotions := make([]int, 0, 4)
	for _, c := range hand {
		if c.Rank >= 13 {
			continue
		}
		v := he.CardValues[c.Rank]
		alt := he.AltValues[c.Rank]
		total += v
		if alt < v {
			demotions = append(demotions, v-alt)
		}
	}
	for i := 0; i < len(demotions) && total > target; i++ {
		total -= demotions[i]
	}
	return total
}

func classicPointTotal(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		switch {
		case c.Rank == RankAce:
			aces++
			total += aceHigh
		case c.Rank >= 10:
			total += 10
		default:
			total += int(c.Rank) + 1
		}
	}
	for aces > 0 && total > blackjackTarget {
		total -= aceHigh - aceLow
		aces--
	}
	return total
}

// BestPointTotal returns the seat with the highest non-busted total,
// or -1 when everyone busted. Folded and eliminated players are
// skipped; ties go to the lowest seat.
func BestPointTotal(s *GameState, he *HandEval) int8 {
	bust := blackjackTarget
	if he != nil && he.BustThreshold > 0 {
		bust = he.BustThreshold
	}

	winner := int8(-1)
	best := 0
	for i := 0; i < s.NumPlayers; i++ {
		pp := &s.Players[i]
		if !pp.Active || pp.Folded || len(pp.Hand) == 0 {
			continue
		}
		total := PointTotal(pp.Hand, he)
		if total > bust {
			continue
		}
		if total > best {
			best = total
			winner = int8(i)
		}
	}
	return winner
}

// SelectPointTotalMove picks hit or stand for a draw-or-stand game:
// hit below 17, stand at 17 or more. Returns an index into moves, or
// -1 when the slice is empty.
func SelectPointTotalMove(s *GameState, he *HandEval, moves []LegalMove) int {
	if len(moves) == 0 {
		return -1
	}

	total := PointTotal(s.Players[s.CurrentPlayer].Hand, he)

	hitIdx := -1
	standIdx := -1
	for i := range moves {
		switch moves[i].CardIndex {
		case MoveDraw:
			hitIdx = i
		case MoveStand:
			standIdx = i
		}
	}

	if total >= 17 && standIdx >= 0 {
		return standIdx
	}
	if total < 17 && hitIdx >= 0 {
		return hitIdx
	}
	return 0
}

// IsPointTotalGame reports whether the ruleset plays like twenty-one:
// a point-total hand evaluation with optional stand on the draw.
func IsPointTotalGame(p *Program) bool {
	return p.HandEval != nil && p.HandEval.Method == HandEvalPointTotal
}
