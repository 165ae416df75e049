package engine

import "fmt"

// Suit constants, packed into the upper 4 bits of Card.
const (
	SuitHearts     uint8 = 0
	SuitDiamonds   uint8 = 1
	SuitClubs      uint8 = 2
	SuitSpades     uint8 = 3
	SuitRedJoker   uint8 = 4
	SuitBlackJoker uint8 = 5
)

// Rank constants, packed into the lower 4 bits of Card. Non-joker ranks carry
// their printed value directly (Ace=1 .. King=13); the joker has no printed
// rank and resolves its value through a JokerValueStrategy at deal time.
const (
	RankJoker uint8 = 0
	RankAce   uint8 = 1
	RankTwo   uint8 = 2
	RankThree uint8 = 3
	RankFour  uint8 = 4
	RankFive  uint8 = 5
	RankSix   uint8 = 6
	RankSeven uint8 = 7
	RankEight uint8 = 8
	RankNine  uint8 = 9
	RankTen   uint8 = 10
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13

	// MaxRankValue is the highest resolvable card value.
	MaxRankValue int8 = 13
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
// Card encodes identity only; the per-deal resolved value and the revealed
// flag live in the owning Deck so that no card state is aliased between
// collections.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// IsJoker reports whether the card is one of the two jokers.
func (c Card) IsJoker() bool { return c.Rank() == RankJoker }

// IsRed reports whether the card belongs to the red pile.
func (c Card) IsRed() bool {
	s := c.Suit()
	return s == SuitHearts || s == SuitDiamonds || s == SuitRedJoker
}

// BaseValue returns the printed rank value (1–13), or 0 for a joker, whose
// value is assigned by strategy instead.
func (c Card) BaseValue() int8 {
	if c.IsJoker() {
		return 0
	}
	return int8(c.Rank())
}

var suitInitials = [6]byte{'H', 'D', 'C', 'S', 'J', 'J'}

var rankLabels = [14]string{"Jo", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// String renders the card identity, e.g. "QS", "10H", or "Jo" for a joker.
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	if c.IsJoker() {
		return "Jo"
	}
	return fmt.Sprintf("%s%c", rankLabels[c.Rank()], suitInitials[c.Suit()])
}

// Label renders the card the way the table shows it: the resolved value plus
// a suit initial when the card is face-up, a mask otherwise.
func (c Card) Label(value int8, open bool) string {
	if !open {
		return "?"
	}
	return fmt.Sprintf("%d %c", value, suitInitials[c.Suit()])
}

// PileSize is the number of cards in one color's pile: 13 ranks × 2 suits + 1 joker.
const PileSize = 27

// RedPile returns the fixed red 27-card allotment: the red joker followed by
// every rank of hearts and diamonds.
func RedPile() [PileSize]Card {
	return buildPile(SuitRedJoker, SuitHearts, SuitDiamonds)
}

// BlackPile returns the fixed black 27-card allotment: the black joker
// followed by every rank of clubs and spades.
func BlackPile() [PileSize]Card {
	return buildPile(SuitBlackJoker, SuitClubs, SuitSpades)
}

func buildPile(jokerSuit uint8, suits ...uint8) [PileSize]Card {
	var pile [PileSize]Card
	pile[0] = NewCard(jokerSuit, RankJoker)
	idx := 1
	for _, suit := range suits {
		for rank := RankAce; rank <= RankKing; rank++ {
			pile[idx] = NewCard(suit, rank)
			idx++
		}
	}
	return pile
}
