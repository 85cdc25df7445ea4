package engine

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// Suits. Hearts and diamonds are red, clubs and spades black.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3
	SuitAny      uint8 = 255
)

// Ranks are stored as indices 0..12 with ace first. Magnitude
// comparisons go through RankValue, which treats the ace as high.
const (
	RankAce   uint8 = 0
	RankTwo   uint8 = 1
	RankThree uint8 = 2
	RankFour  uint8 = 3
	RankFive  uint8 = 4
	RankSix   uint8 = 5
	RankSeven uint8 = 6
	RankEight uint8 = 7
	RankNine  uint8 = 8
	RankTen   uint8 = 9
	RankJack  uint8 = 10
	RankQueen uint8 = 11
	RankKing  uint8 = 12
	RankAny   uint8 = 255
)

// Card is a single playing card. The zero value is the ace of hearts.
type Card struct {
	Rank uint8
	Suit uint8
}

// rankValues maps a rank index to its ace-high comparison value (2..14).
var rankValues = [13]int{14, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

// RankValue returns the ace-high value of a rank index. Out-of-range
// ranks evaluate to 0 so they lose every comparison.
func RankValue(rank uint8) int {
	if rank >= 13 {
		return 0
	}
	return rankValues[rank]
}

// Value returns the card's ace-high comparison value.
func (c Card) Value() int {
	return RankValue(c.Rank)
}

// Beats reports whether c outranks other, ignoring suit.
func (c Card) Beats(other Card) bool {
	return c.Value() > other.Value()
}

// NewDeck returns the 52 cards in suit-major order: all hearts ace
// through king, then diamonds, clubs, spades.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// LCG constants shared with the reference shuffler. Changing these
// breaks replay compatibility with recorded seeds.
const (
	shuffleMul uint64 = 6364136223846793005
	shuffleInc uint64 = 1442695040888963407
)

// ShuffleDeck performs a seeded Fisher-Yates shuffle in place. The
// generator is a plain LCG stepped once per swap so that one seed
// always yields one ordering, regardless of platform.
func ShuffleDeck(cards []Card, seed uint64) {
	rng := seed
	for i := len(cards) - 1; i > 0; i-- {
		rng = rng*shuffleMul + shuffleInc
		j := int(rng % uint64(i+1))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

var rankNames = [13]string{
	"Ace", "2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King",
}

var suitNames = [4]string{"Hearts", "Diamonds", "Clubs", "Spades"}

// RankName returns a display name for a rank index.
func RankName(rank uint8) string {
	if rank == RankAny {
		return "any rank"
	}
	if rank >= 13 {
		return "?"
	}
	return rankNames[rank]
}

// SuitName returns a display name for a suit index.
func SuitName(suit uint8) string {
	if suit == SuitAny {
		return "any suit"
	}
	if suit >= 4 {
		return "?"
	}
	return suitNames[suit]
}

func (c Card) String() string {
	return RankName(c.Rank) + " of " + SuitName(c.Suit)
}
