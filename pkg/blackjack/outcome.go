package blackjack

import (
	"math"

	"github.com/blackjacklab/trainer/pkg/entities"
)

// Outcome represents the result of one hand against the dealer
type Outcome string

const (
	OutcomeBust      Outcome = "BUST"
	OutcomeBlackjack Outcome = "BLACKJACK"
	OutcomePush      Outcome = "PUSH"
	OutcomeWin       Outcome = "WIN"
	OutcomeLose      Outcome = "LOSE"
	OutcomeSurrender Outcome = "SURRENDER"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// IsWin returns true if this outcome represents a win
func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomeBlackjack
}

// CompareHands resolves a player hand against the final dealer hand.
// Precedence: player bust, both blackjack push, player blackjack (unless
// the hand came from a split), dealer blackjack, dealer bust, then the
// numeric totals with equal totals pushing.
func CompareHands(player, dealer []*entities.Card, isSplitHand bool) Outcome {
	if IsBust(player) {
		return OutcomeBust
	}

	playerBJ := IsBlackjack(player) && !isSplitHand
	dealerBJ := IsBlackjack(dealer)

	switch {
	case playerBJ && dealerBJ:
		return OutcomePush
	case playerBJ:
		return OutcomeBlackjack
	case dealerBJ:
		return OutcomeLose
	case IsBust(dealer):
		return OutcomeWin
	}

	playerTotal, _ := HandTotal(player)
	dealerTotal, _ := HandTotal(dealer)
	switch {
	case playerTotal > dealerTotal:
		return OutcomeWin
	case playerTotal < dealerTotal:
		return OutcomeLose
	default:
		return OutcomePush
	}
}

// CalculatePayout returns the net change the wager produces: the blackjack
// bonus at the configured multiplier (floored), plus or minus the bet, or
// zero on a push. Surrender settles outside this function at a flat half
// bet regardless of the multiplier.
func CalculatePayout(outcome Outcome, bet int64, blackjackPayout float64) int64 {
	switch outcome {
	case OutcomeBlackjack:
		return int64(math.Floor(float64(bet) * blackjackPayout))
	case OutcomeWin:
		return bet
	case OutcomeLose, OutcomeBust:
		return -bet
	default:
		return 0
	}
}

// SurrenderRefund is the amount returned to the bankroll when a hand
// surrenders: half the bet, rounded down.
func SurrenderRefund(bet int64) int64 {
	return bet / 2
}
