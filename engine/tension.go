package engine

// LeaderDetector answers who is winning mid-game for one family of
// rulesets. Leader returns a seat or -1 for a tie; Margin is the
// normalised gap between first and second place, 0 meaning tied.
type LeaderDetector interface {
	Leader(s *GameState) int
	Margin(s *GameState) float32
}

// SelectLeaderDetector picks the detector that matches how a ruleset
// is actually won: chips for betting games, tricks taken or avoided
// for trick games, hand size for shedding games, score otherwise.
func SelectLeaderDetector(p *Program) LeaderDetector {
	if p.HasPhase(PhaseBetting) {
		return ChipLeader{}
	}
	if p.HasPhase(PhaseTrick) {
		if p.HasWinRule(WinLowScore) || p.HasWinRule(WinAllHandsEmpty) {
			return TrickAvoidanceLeader{}
		}
		return TrickLeader{}
	}
	if p.HasWinRule(WinEmptyHand) {
		return HandSizeLeader{}
	}
	return ScoreLeader{}
}

// leaderOf scans one int32 metric per seat and returns the best seat,
// or -1 on a tie for first.
func leaderOf(s *GameState, higherWins bool, metric func(i int) int32) int {
	leader := -1
	var best int32
	tied := false
	for i := 0; i < s.NumPlayers; i++ {
		v := metric(i)
		if leader == -1 {
			leader, best = i, v
			continue
		}
		better := v > best
		if !higherWins {
			better = v < best
		}
		switch {
		case better:
			leader, best = i, v
			tied = false
		case v == best:
			tied = true
		}
	}
	if tied {
		return -1
	}
	return leader
}

// marginOf returns the normalised first-to-second gap for one metric.
// denom scales the gap; zero denominators collapse to a zero margin.
func marginOf(s *GameState, higherWins bool, metric func(i int) int32) float32 {
	if s.NumPlayers < 2 {
		return 0
	}
	values := make([]int32, 0, MaxPlayers)
	for i := 0; i < s.NumPlayers; i++ {
		v := metric(i)
		if !higherWins {
			v = -v
		}
		values = append(values, v)
	}
	first, second := values[0], int32(-1<<31)
	if values[1] > first {
		first, second = values[1], values[0]
	} else {
		second = values[1]
	}
	for _, v := range values[2:] {
		if v > first {
			second, first = first, v
		} else if v > second {
			second = v
		}
	}
	gap := first - second
	span := first
	if span < 0 {
		span = -span
	}
	if span == 0 {
		return 0
	}
	m := float32(gap) / float32(span)
	if m > 1 {
		m = 1
	}
	return m
}

// ScoreLeader: highest score is winning.
type ScoreLeader struct{}

func (ScoreLeader) Leader(s *GameState) int {
	return leaderOf(s, true, func(i int) int32 { return s.Players[i].Score })
}

func (ScoreLeader) Margin(s *GameState) float32 {
	return marginOf(s, true, func(i int) int32 { return s.Players[i].Score })
}

// HandSizeLeader: fewest cards in hand is winning, for shedding games.
type HandSizeLeader struct{}

func (HandSizeLeader) Leader(s *GameState) int {
	return leaderOf(s, false, func(i int) int32 { return int32(len(s.Players[i].Hand)) })
}

func (HandSizeLeader) Margin(s *GameState) float32 {
	max := int32(0)
	for i := 0; i < s.NumPlayers; i++ {
		if n := int32(len(s.Players[i].Hand)); n > max {
			max = n
		}
	}
	if max == 0 {
		return 0
	}
	sizes := make([]int32, 0, MaxPlayers)
	for i := 0; i < s.NumPlayers; i++ {
		sizes = append(sizes, int32(len(s.Players[i].Hand)))
	}
	first, second := sizes[0], int32(1<<31-1)
	if sizes[1] < first {
		first, second = sizes[1], sizes[0]
	} else {
		second = sizes[1]
	}
	for _, v := range sizes[2:] {
		if v < first {
			second, first = first, v
		} else if v < second {
			second = v
		}
	}
	return float32(second-first) / float32(max)
}

// TrickLeader: most tricks taken is winning.
type TrickLeader struct{}

func (TrickLeader) Leader(s *GameState) int {
	return leaderOf(s, true, func(i int) int32 { return s.Players[i].TricksWon })
}

func (TrickLeader) Margin(s *GameState) float32 {
	return marginOf(s, true, func(i int) int32 { return s.Players[i].TricksWon })
}

// TrickAvoidanceLeader: lowest penalty score is winning, for games
// where taken cards hurt.
type TrickAvoidanceLeader struct{}

func (TrickAvoidanceLeader) Leader(s *GameState) int {
	return leaderOf(s, false, func(i int) int32 { return s.Players[i].Score })
}

func (TrickAvoidanceLeader) Margin(s *GameState) float32 {
	return marginOf(s, false, func(i int) int32 { return s.Players[i].Score })
}

// ChipLeader: biggest stack is winning.
type ChipLeader struct{}

func (ChipLeader) Leader(s *GameState) int {
	return leaderOf(s, true, func(i int) int32 { return s.Players[i].Chips })
}

func (ChipLeader) Margin(s *GameState) float32 {
	return marginOf(s, true, func(i int) int32 { return s.Players[i].Chips })
}

// TensionMeter records how contested a game was: how often the lead
// flipped, the closest the race got, when the winner's lead became
// permanent, and whether the winner came from behind.
type TensionMeter struct {
	LeadChanges       int
	ClosestMargin     float32
	WinnerWasTrailing bool

	current      int
	history      []int
	decisiveTurn int
}

func NewTensionMeter() *TensionMeter {
	return &TensionMeter{
		ClosestMargin: 1,
		current:       -1,
		history:       make([]int, 0, 128),
		decisiveTurn:  -1,
	}
}

// Update samples the leader after a move has been applied.
func (t *TensionMeter) Update(s *GameState, d LeaderDetector) {
	leader := d.Leader(s)
	if leader != -1 && leader != t.current {
		if t.current != -1 {
			t.LeadChanges++
		}
		t.current = leader
	}
	t.history = append(t.history, leader)

	if m := d.Margin(s); m < t.ClosestMargin {
		t.ClosestMargin = m
	}
}

// Finalize locks in the end-of-game figures. The decisive turn is the
// first turn of the winner's permanent lead; a winner who was not
// leading at the midpoint counts as trailing.
func (t *TensionMeter) Finalize(winner int) {
	if winner < 0 || len(t.history) == 0 {
		return
	}

	t.decisiveTurn = 0
	for i := len(t.history) - 1; i >= 0; i-- {
		if t.history[i] != winner && t.history[i] != -1 {
			t.decisiveTurn = i + 1
			break
		}
	}

	mid := len(t.history) / 2
	if mid < len(t.history) {
		at := t.history[mid]
		t.WinnerWasTrailing = at != winner && at != -1
	}
}

// DecisiveTurnPct is how far through the game the outcome settled,
// 0..1. A 1 means the lead was contested to the very last move.
func (t *TensionMeter) DecisiveTurnPct() float32 {
	if t.decisiveTurn < 0 || len(t.history) == 0 {
		return 0
	}
	return float32(t.decisiveTurn) / float32(len(t.history))
}
