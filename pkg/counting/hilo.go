// Package counting implements Hi-Lo card counting arithmetic: per-card
// values, running-count accumulation, and true-count derivation.
package counting

import (
	"math"

	"github.com/blackjacklab/trainer/pkg/entities"
)

// HiLoValue returns the Hi-Lo count value for a card: +1 for 2-6, 0 for
// 7-9, -1 for tens, faces and aces.
func HiLoValue(card *entities.Card) int {
	switch card.Rank {
	case entities.Two, entities.Three, entities.Four, entities.Five, entities.Six:
		return 1
	case entities.Seven, entities.Eight, entities.Nine:
		return 0
	default:
		return -1
	}
}

// UpdateRunningCount folds a batch of newly exposed cards into the running
// count. Every card that becomes visible to the player must pass through
// here exactly once.
func UpdateRunningCount(count int, cards ...*entities.Card) int {
	for _, c := range cards {
		count += HiLoValue(c)
	}
	return count
}

// TrueCount normalizes the running count by decks remaining. Callers pass
// the already-floored decksRemaining from the shoe; full float precision is
// retained so deviation threshold comparisons don't misfire by a fraction.
func TrueCount(runningCount int, decksRemaining float64) float64 {
	return float64(runningCount) / decksRemaining
}

// DisplayTrueCount rounds a true count to one decimal place. Only
// presentation surfaces use this; threshold comparisons never do.
func DisplayTrueCount(trueCount float64) float64 {
	return math.Round(trueCount*10) / 10
}
