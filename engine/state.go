package engine

import "sync"

// MaxPlayers bounds the seat count supported by the engine.
const MaxPlayers = 4

// PlayedCard records one card placed into the current trick.
type PlayedCard struct {
	Player uint8
	Card   Card
}

// Claim tracks a face-down play awaiting acceptance or a challenge.
// Cards holds the actual cards in play order so a challenge can be
// verified against what was really played.
type Claim struct {
	Player uint8
	Rank   uint8
	Count  uint8
	Cards  []Card
	Active bool
}

// PlayerState is the per-seat slice of game state.
type PlayerState struct {
	Hand   []Card
	Score  int32
	Active bool

	// Betting.
	Chips    int32
	RoundBet int32
	Folded   bool
	AllIn    bool
	Acted    bool

	// Bidding and tricks.
	Bid       int8 // -1 until a bid is placed
	NilBid    bool
	TricksWon int32
	Bags      int32

	// Point-total games: the player has stopped drawing.
	Stood bool
}

// GameState is the complete mutable state of one game in progress.
// It carries no rules; those live in the Program that produced it.
type GameState struct {
	Players    []PlayerState
	NumPlayers int

	Deck    []Card
	Discard []Card
	Tableau [][]Card

	CurrentPlayer uint8
	Turn          int32
	Winner        int8 // -1 while the game is running

	PlayDirection int8 // +1 or -1
	SkipCount     int

	// Betting round.
	Pot           int32
	TableBet      int32
	RaiseCount    int
	BettingClosed bool
	BettingOpener uint8
	FoldWin       bool

	// Trick play.
	Trick       []PlayedCard
	TrickLeader uint8
	SuitBroken  bool
	Battles     int32

	PendingClaim Claim

	BiddingClosed    bool
	ContractsApplied bool
	HandEndScored    bool

	// Teams. TeamOf is nil for free-for-all games; otherwise it maps
	// seat -> team and teammate scores move together.
	TeamOf      []int8
	TeamScores  []int32
	TeamBags    []int32
	WinningTeam int8
}

var statePool = sync.Pool{
	New: func() any { return newGameState() },
}

func newGameState() *GameState {
	s := &GameState{
		Players: make([]PlayerState, MaxPlayers),
		Deck:    make([]Card, 0, DeckSize),
		Discard: make([]Card, 0, DeckSize),
		Trick:   make([]PlayedCard, 0, MaxPlayers),
	}
	for i := range s.Players {
		s.Players[i].Hand = make([]Card, 0, DeckSize)
	}
	s.PendingClaim.Cards = make([]Card, 0, 4)
	return s
}

// GetState takes a reset state from the pool, sized for numPlayers.
func GetState(numPlayers int) *GameState {
	s := statePool.Get().(*GameState)
	s.Reset(numPlayers)
	return s
}

// PutState returns a state to the pool. The caller must not touch it
// afterwards.
func PutState(s *GameState) {
	if s == nil {
		return
	}
	statePool.Put(s)
}

// Reset clears every field and resizes the seat slice. Backing arrays
// are kept so pooled states do not reallocate.
func (s *GameState) Reset(numPlayers int) {
	if numPlayers < 1 {
		numPlayers = 1
	}
	if numPlayers > MaxPlayers {
		numPlayers = MaxPlayers
	}

	s.Players = s.Players[:cap(s.Players)]
	for i := range s.Players {
		p := &s.Players[i]
		p.Hand = p.Hand[:0]
		p.Score = 0
		p.Active = i < numPlayers
		p.Chips = 0
		p.RoundBet = 0
		p.Folded = false
		p.AllIn = false
		p.Acted = false
		p.Bid = -1
		p.NilBid = false
		p.TricksWon = 0
		p.Bags = 0
		p.Stood = false
	}
	s.Players = s.Players[:numPlayers]
	s.NumPlayers = numPlayers

	s.Deck = s.Deck[:0]
	s.Discard = s.Discard[:0]
	s.Tableau = s.Tableau[:0]

	s.CurrentPlayer = 0
	s.Turn = 0
	s.Winner = -1
	s.PlayDirection = 1
	s.SkipCount = 0

	s.Pot = 0
	s.TableBet = 0
	s.RaiseCount = 0
	s.BettingClosed = false
	s.BettingOpener = 0
	s.FoldWin = false

	s.Trick = s.Trick[:0]
	s.TrickLeader = 0
	s.SuitBroken = false
	s.Battles = 0

	s.PendingClaim.Active = false
	s.PendingClaim.Player = 0
	s.PendingClaim.Rank = 0
	s.PendingClaim.Count = 0
	s.PendingClaim.Cards = s.PendingClaim.Cards[:0]

	s.BiddingClosed = false
	s.ContractsApplied = false
	s.HandEndScored = false

	s.TeamOf = nil
	s.TeamScores = nil
	s.TeamBags = nil
	s.WinningTeam = -1
}

// Clone produces a deep copy from the pool. Used by tree search; the
// copy must be released with PutState.
func (s *GameState) Clone() *GameState {
	c := GetState(s.NumPlayers)

	for i := range s.Players {
		src := &s.Players[i]
		dst := &c.Players[i]
		dst.Hand = append(dst.Hand[:0], src.Hand...)
		dst.Score = src.Score
		dst.Active = src.Active
		dst.Chips = src.Chips
		dst.RoundBet = src.RoundBet
		dst.Folded = src.Folded
		dst.AllIn = src.AllIn
		dst.Acted = src.Acted
		dst.Bid = src.Bid
		dst.NilBid = src.NilBid
		dst.TricksWon = src.TricksWon
		dst.Bags = src.Bags
		dst.Stood = src.Stood
	}

	c.Deck = append(c.Deck[:0], s.Deck...)
	c.Discard = append(c.Discard[:0], s.Discard...)
	if len(s.Tableau) > 0 {
		if cap(c.Tableau) < len(s.Tableau) {
			c.Tableau = make([][]Card, len(s.Tableau))
		} else {
			c.Tableau = c.Tableau[:len(s.Tableau)]
		}
		for i := range s.Tableau {
			c.Tableau[i] = append([]Card(nil), s.Tableau[i]...)
		}
	}

	c.CurrentPlayer = s.CurrentPlayer
	c.Turn = s.Turn
	c.Winner = s.Winner
	c.PlayDirection = s.PlayDirection
	c.SkipCount = s.SkipCount

	c.Pot = s.Pot
	c.TableBet = s.TableBet
	c.RaiseCount = s.RaiseCount
	c.BettingClosed = s.BettingClosed
	c.BettingOpener = s.BettingOpener
	c.FoldWin = s.FoldWin

	c.Trick = append(c.Trick[:0], s.Trick...)
	c.TrickLeader = s.TrickLeader
	c.SuitBroken = s.SuitBroken
	c.Battles = s.Battles

	c.PendingClaim.Player = s.PendingClaim.Player
	c.PendingClaim.Rank = s.PendingClaim.Rank
	c.PendingClaim.Count = s.PendingClaim.Count
	c.PendingClaim.Cards = append(c.PendingClaim.Cards[:0], s.PendingClaim.Cards...)
	c.PendingClaim.Active = s.PendingClaim.Active

	c.BiddingClosed = s.BiddingClosed
	c.ContractsApplied = s.ContractsApplied
	c.HandEndScored = s.HandEndScored

	if s.TeamOf != nil {
		c.TeamOf = append([]int8(nil), s.TeamOf...)
		c.TeamScores = append([]int32(nil), s.TeamScores...)
		c.TeamBags = append([]int32(nil), s.TeamBags...)
	}
	c.WinningTeam = s.WinningTeam

	return c
}

// AddScore credits points to a player. In team games every teammate's
// score moves together with the team total, so partners always read
// the same number.
func (s *GameState) AddScore(player uint8, points int32) {
	if int(player) >= len(s.Players) {
		return
	}
	if s.TeamOf == nil {
		s.Players[player].Score += points
		return
	}
	t := s.TeamOf[player]
	if t < 0 || int(t) >= len(s.TeamScores) {
		s.Players[player].Score += points
		return
	}
	for i := range s.Players {
		if i < len(s.TeamOf) && s.TeamOf[i] == t {
			s.Players[i].Score += points
		}
	}
	s.TeamScores[t] += points
}

// TeamFor returns the team of a player, or -1 in free-for-all games.
func (s *GameState) TeamFor(player uint8) int8 {
	if s.TeamOf == nil || int(player) >= len(s.TeamOf) {
		return -1
	}
	return s.TeamOf[player]
}

// CountCards totals every card visible to the state. Game rules must
// keep this equal to the dealt deck size. Claim cards are not counted;
// they already sit in the discard pile.
func (s *GameState) CountCards() int {
	n := len(s.Deck) + len(s.Discard) + len(s.Trick)
	for i := range s.Players {
		n += len(s.Players[i].Hand)
	}
	for i := range s.Tableau {
		n += len(s.Tableau[i])
	}
	return n
}

// Fingerprint hashes the fields that distinguish one position from
// another, excluding the turn counter. Two equal fingerprints in a row
// mean the last move changed nothing observable.
func (s *GameState) Fingerprint() uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	mix := func(v uint64) {
		h ^= v
		h *= prime64
	}
	mix(uint64(s.CurrentPlayer))
	mix(uint64(len(s.Deck)))
	mix(uint64(len(s.Discard)))
	mix(uint64(len(s.Trick)))
	mix(uint64(s.Pot))
	mix(uint64(s.TableBet))
	for i := range s.Players {
		p := &s.Players[i]
		mix(uint64(len(p.Hand)))
		mix(uint64(uint32(p.Score)))
		mix(uint64(uint32(p.Chips)))
		var flags uint64
		if p.Folded {
			flags |= 1
		}
		if p.AllIn {
			flags |= 2
		}
		if p.Stood {
			flags |= 4
		}
		mix(flags)
	}
	for i := range s.Tableau {
		mix(uint64(len(s.Tableau[i])))
		if n := len(s.Tableau[i]); n > 0 {
			top := s.Tableau[i][n-1]
			mix(uint64(top.Rank)<<8 | uint64(top.Suit))
		}
	}
	if n := len(s.Discard); n > 0 {
		top := s.Discard[n-1]
		mix(uint64(top.Rank)<<8 | uint64(top.Suit))
	}
	return h
}
