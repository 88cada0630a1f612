package blackjack

import (
	"github.com/blackjacklab/trainer/pkg/entities"
)

// HandStatus represents the terminal (or in-progress) state of a hand. It
// is set exactly once when play on the hand ends.
type HandStatus string

const (
	StatusPlaying     HandStatus = "PLAYING"
	StatusStand       HandStatus = "STAND"
	StatusBust        HandStatus = "BUST"
	StatusBlackjack   HandStatus = "BLACKJACK"
	StatusSurrendered HandStatus = "SURRENDERED"
)

// Terminal reports whether play on a hand with this status has ended.
func (s HandStatus) Terminal() bool {
	return s != StatusPlaying
}

// Hand is an ordered sequence of cards plus its wager. FromSplit marks
// hands that did not originate from the initial two-card deal; it excludes
// a two-card 21 from the blackjack bonus at payout time.

type Hand struct {
	Cards       []*entities.Card
	Bet         int64
	Status      HandStatus
	FromSplit   bool
	DoubledDown bool
}

// NewHand creates an in-progress hand carrying the given bet.
func NewHand(bet int64) *Hand {
	return &Hand{
		Cards:  make([]*entities.Card, 0, 4),
		Bet:    bet,
		Status: StatusPlaying,
	}
}

// AddCard appends a card and busts the hand when it goes over 21.
func (h *Hand) AddCard(card *entities.Card) {
	h.Cards = append(h.Cards, card)
	if IsBust(h.Cards) {
		h.Status = StatusBust
	}
}

// Total returns the hand's best non-bust total.
func (h *Hand) Total() int {
	total, _ := HandTotal(h.Cards)
	return total
}

// IsSoft reports whether an ace is still counted as 11 in the best total.
func (h *Hand) IsSoft() bool {
	_, soft := HandTotal(h.Cards)
	return soft
}

// HandTotal computes the best total for a card sequence: all cards at full
// value, then 10 subtracted per ace while the total busts and an ace
// remains counted as 11. The second return is true while at least one ace
// is still counted as 11.
func HandTotal(cards []*entities.Card) (int, bool) {
	total := 0
	aces := 0
	for _, c := range cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// IsBust checks if a hand exceeds 21
func IsBust(cards []*entities.Card) bool {
	total, _ := HandTotal(cards)
	return total > 21
}

// IsBlackjack reports a two-card 21. This is purely structural; whether a
// split hand's two-card 21 earns the bonus is decided by the isSplitHand
// flag at comparison time, not here.
func IsBlackjack(cards []*entities.Card) bool {
	if len(cards) != 2 {
		return false
	}
	total, _ := HandTotal(cards)
	return total == 21
}

// CanSplit reports whether a two-card hand is a splittable pair. Any two
// ten-valued cards count as a pair, so a king and a queen split as tens.
func CanSplit(cards []*entities.Card) bool {
	if len(cards) != 2 {
		return false
	}
	return cards[0].Value() == cards[1].Value()
}
