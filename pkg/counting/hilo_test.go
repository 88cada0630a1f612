package counting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackjacklab/trainer/pkg/entities"
)

func TestHiLoValue(t *testing.T) {
	tests := []struct {
		rank     entities.Rank
		expected int
	}{
		{entities.Two, 1},
		{entities.Three, 1},
		{entities.Four, 1},
		{entities.Five, 1},
		{entities.Six, 1},
		{entities.Seven, 0},
		{entities.Eight, 0},
		{entities.Nine, 0},
		{entities.Ten, -1},
		{entities.Jack, -1},
		{entities.Queen, -1},
		{entities.King, -1},
		{entities.Ace, -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.rank), func(t *testing.T) {
			card := entities.NewCard(entities.Clubs, tt.rank)
			assert.Equal(t, tt.expected, HiLoValue(card))
		})
	}
}

func TestFullDeckIsBalanced(t *testing.T) {
	count := 0
	for _, suit := range entities.Suits {
		for _, rank := range entities.Ranks {
			count = UpdateRunningCount(count, entities.NewCard(suit, rank))
		}
	}
	assert.Equal(t, 0, count, "a complete deck must sum to zero")
}

func TestUpdateRunningCount(t *testing.T) {
	cards := []*entities.Card{
		entities.NewCard(entities.Hearts, entities.Five), // +1
		entities.NewCard(entities.Spades, entities.King), // -1
		entities.NewCard(entities.Clubs, entities.Two),   // +1
		entities.NewCard(entities.Hearts, entities.Nine), // 0
	}
	assert.Equal(t, 1, UpdateRunningCount(0, cards...))
	assert.Equal(t, 4, UpdateRunningCount(3, cards...))
}

func TestTrueCount(t *testing.T) {
	assert.InDelta(t, 3.0, TrueCount(12, 4.0), 1e-9)
	assert.InDelta(t, -2.5, TrueCount(-5, 2.0), 1e-9)

	// At the half-deck floor the running count is doubled, not divided away.
	assert.InDelta(t, 6.0, TrueCount(3, 0.5), 1e-9)
}

func TestDisplayTrueCount(t *testing.T) {
	assert.InDelta(t, 1.7, DisplayTrueCount(5.0/3.0), 1e-9)
	assert.InDelta(t, -0.3, DisplayTrueCount(-1.0/3.0), 1e-9)
	assert.InDelta(t, 2.0, DisplayTrueCount(2.04), 1e-9)
}
