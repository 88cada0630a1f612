package entities

import "fmt"

// Suit represents a card suit

type Suit string

const (
	Hearts   Suit = "HEARTS"
	Diamonds Suit = "DIAMONDS"
	Clubs    Suit = "CLUBS"
	Spades   Suit = "SPADES"
)

// Suits lists the four suits in deck-build order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Rank represents a card rank

type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Ranks lists the thirteen ranks in deck-build order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

var rankValues = map[Rank]int{
	Ace: 11, Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7,
	Eight: 8, Nine: 9, Ten: 10, Jack: 10, Queen: 10, King: 10,
}

// Card represents a playing card. Cards are built once per shoe and never mutated.

type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card

func NewCard(suit Suit, rank Rank) *Card {
	return &Card{
		Suit: suit,
		Rank: rank,
	}
}

// Value returns the card's blackjack value. Aces count as 11 here; the
// soft-ace reduction happens at the hand level, never the card level.
func (c *Card) Value() int {
	return rankValues[c.Rank]
}

// IsAce reports whether the card is an ace.
func (c *Card) IsAce() bool {
	return c.Rank == Ace
}

// String returns the string representation of the card

func (c *Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Short returns a compact two or three character form like "AS" or "10H".
func (c *Card) Short() string {
	return string(c.Rank) + string(c.Suit[0])
}
