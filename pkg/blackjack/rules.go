package blackjack

import (
	"fmt"

	"github.com/blackjacklab/trainer/pkg/strategy"
)

// Rules is the table configuration for a session. It is immutable per
// round: strategy lookups are parameterized by it, and it never changes
// between placing a bet and resolving the round.
type Rules struct {
	NumDecks         int
	Penetration      float64
	DealerHitsSoft17 bool
	DoubleAfterSplit bool
	AllowSurrender   bool
	BlackjackPayout  float64
	MaxSplits        int
	MinBet           int64
	StartingBankroll int64
}

// DefaultRules returns the standard trainer table: six decks, 75%
// penetration, dealer stands on soft 17, double after split, late
// surrender, 3:2 blackjack, three splits beyond the original hand.
func DefaultRules() Rules {
	return Rules{
		NumDecks:         6,
		Penetration:      0.75,
		DealerHitsSoft17: false,
		DoubleAfterSplit: true,
		AllowSurrender:   true,
		BlackjackPayout:  1.5,
		MaxSplits:        3,
		MinBet:           10,
		StartingBankroll: 1000,
	}
}

// Validate rejects configurations the engine cannot honor.
func (r Rules) Validate() error {
	if r.NumDecks < 1 || r.NumDecks > 8 {
		return NewGameError(ErrInvalidConfig, fmt.Sprintf("numDecks must be 1-8, got %d", r.NumDecks))
	}
	if r.Penetration <= 0 || r.Penetration > 1 {
		return NewGameError(ErrInvalidConfig, fmt.Sprintf("penetration must be in (0,1], got %v", r.Penetration))
	}
	if r.BlackjackPayout < 1 {
		return NewGameError(ErrInvalidConfig, fmt.Sprintf("blackjackPayout must be at least 1, got %v", r.BlackjackPayout))
	}
	if r.MaxSplits < 0 {
		return NewGameError(ErrInvalidConfig, fmt.Sprintf("maxSplits must not be negative, got %d", r.MaxSplits))
	}
	if r.MinBet < 1 {
		return NewGameError(ErrInvalidConfig, fmt.Sprintf("minBet must be positive, got %d", r.MinBet))
	}
	if r.StartingBankroll < r.MinBet {
		return NewGameError(ErrInvalidConfig, "startingBankroll must cover at least one minimum bet")
	}
	return nil
}

// Variant returns the strategy-table variant these rules select.
func (r Rules) Variant() strategy.Variant {
	return strategy.Variant{
		DealerHitsSoft17: r.DealerHitsSoft17,
		DoubleAfterSplit: r.DoubleAfterSplit,
	}
}
