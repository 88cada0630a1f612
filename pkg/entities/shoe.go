package entities

import (
	"errors"
	"math/rand"
	"time"
)

// ErrEmptyShoe is returned when drawing from an exhausted shoe. The round
// state machine reshuffles before any round that could exhaust the shoe, so
// seeing this error means a caller skipped that check.
var ErrEmptyShoe = errors.New("shoe is empty")

// minDecksRemaining is the floor for DecksRemaining. Below half a deck the
// true count is unreliable, so the remainder is counted generously rather
// than letting the true-count division blow up.
const minDecksRemaining = 0.5

// Shoe is a shuffled multi-deck sequence of cards. Cards are removed
// strictly from the front as dealt and never reordered mid-shoe.
type Shoe struct {
	Cards       []*Card
	NumDecks    int
	Penetration float64

	dealt int
	rng   *rand.Rand
}

// NewShoe builds and shuffles a shoe of numDecks decks. Penetration is the
// fraction of the shoe dealt before NeedsReshuffle reports true.
func NewShoe(numDecks int, penetration float64) *Shoe {
	s := &Shoe{
		NumDecks:    numDecks,
		Penetration: penetration,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.Reshuffle()
	return s
}

// Reshuffle regenerates the full NumDecks*52 card set, applies an unbiased
// Fisher-Yates permutation, and resets the dealt counter.
func (s *Shoe) Reshuffle() {
	cards := make([]*Card, 0, s.NumDecks*52)
	for d := 0; d < s.NumDecks; d++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				cards = append(cards, NewCard(suit, rank))
			}
		}
	}

	s.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	s.Cards = cards
	s.dealt = 0
}

// Draw removes and returns the next card from the front of the shoe.
func (s *Shoe) Draw() (*Card, error) {
	if len(s.Cards) == 0 {
		return nil, ErrEmptyShoe
	}
	card := s.Cards[0]
	s.Cards = s.Cards[1:]
	s.dealt++
	return card, nil
}

// CardsRemaining returns the number of undealt cards.
func (s *Shoe) CardsRemaining() int {
	return len(s.Cards)
}

// CardsDealt returns the number of cards drawn since the last reshuffle.
func (s *Shoe) CardsDealt() int {
	return s.dealt
}

// TotalCards returns the full shoe size.
func (s *Shoe) TotalCards() int {
	return s.NumDecks * 52
}

// DecksRemaining returns the undealt portion of the shoe in deck units,
// floored at half a deck. Every true-count division reads this value.
func (s *Shoe) DecksRemaining() float64 {
	decks := float64(len(s.Cards)) / 52.0
	if decks < minDecksRemaining {
		return minDecksRemaining
	}
	return decks
}

// NeedsReshuffle reports whether play has passed the penetration point.
func (s *Shoe) NeedsReshuffle() bool {
	return float64(s.dealt) >= float64(s.TotalCards())*s.Penetration
}
