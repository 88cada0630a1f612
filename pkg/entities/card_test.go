package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardValue(t *testing.T) {
	tests := []struct {
		name     string
		rank     Rank
		expected int
	}{
		{"ace counts as eleven", Ace, 11},
		{"number card counts face value", Seven, 7},
		{"ten counts as ten", Ten, 10},
		{"jack counts as ten", Jack, 10},
		{"queen counts as ten", Queen, 10},
		{"king counts as ten", King, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewCard(Spades, tt.rank)
			assert.Equal(t, tt.expected, card.Value())
		})
	}
}

func TestCardIsAce(t *testing.T) {
	assert.True(t, NewCard(Hearts, Ace).IsAce())
	assert.False(t, NewCard(Hearts, King).IsAce())
}

func TestCardString(t *testing.T) {
	card := NewCard(Spades, Ace)
	assert.Equal(t, "A of SPADES", card.String())
	assert.Equal(t, "AS", card.Short())

	ten := NewCard(Hearts, Ten)
	assert.Equal(t, "10H", ten.Short())
}
