package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoeComposition(t *testing.T) {
	shoe := NewShoe(6, 0.75)

	require.Len(t, shoe.Cards, 6*52)
	assert.Equal(t, 6*52, shoe.TotalCards())

	// Exactly numDecks copies of every suit/rank combination.
	seen := make(map[string]int)
	for _, card := range shoe.Cards {
		seen[card.Short()]++
	}
	require.Len(t, seen, 52)
	for combo, count := range seen {
		assert.Equal(t, 6, count, "combination %s", combo)
	}
}

func TestShoeShuffleUniformity(t *testing.T) {
	// Every card should land in the first position with roughly equal
	// frequency. 5200 shuffles of a single deck put the expected count at
	// 100 per card; the bounds sit more than six standard deviations out.
	shoe := NewShoe(1, 1.0)

	counts := make(map[string]int)
	const shuffles = 5200
	for i := 0; i < shuffles; i++ {
		shoe.Reshuffle()
		counts[shoe.Cards[0].Short()]++
	}

	require.Len(t, counts, 52, "every card reaches the first position")
	for combo, count := range counts {
		assert.Greater(t, count, 35, "card %s starves the first position", combo)
		assert.Less(t, count, 175, "card %s dominates the first position", combo)
	}
}

func TestShoeDraw(t *testing.T) {
	shoe := NewShoe(1, 1.0)

	first := shoe.Cards[0]
	card, err := shoe.Draw()
	require.NoError(t, err)
	assert.Equal(t, first, card)
	assert.Equal(t, 1, shoe.CardsDealt())
	assert.Equal(t, 51, shoe.CardsRemaining())
}

func TestShoeDrawExhausted(t *testing.T) {
	shoe := NewShoe(1, 1.0)
	for i := 0; i < 52; i++ {
		_, err := shoe.Draw()
		require.NoError(t, err)
	}

	_, err := shoe.Draw()
	assert.ErrorIs(t, err, ErrEmptyShoe)
}

func TestShoeDealtPlusRemainingInvariant(t *testing.T) {
	shoe := NewShoe(2, 0.5)
	for i := 0; i < 30; i++ {
		_, err := shoe.Draw()
		require.NoError(t, err)
		assert.Equal(t, shoe.TotalCards(), shoe.CardsDealt()+shoe.CardsRemaining())
	}
}

func TestShoeNeedsReshuffle(t *testing.T) {
	shoe := NewShoe(1, 0.5)

	for i := 0; i < 25; i++ {
		_, err := shoe.Draw()
		require.NoError(t, err)
	}
	assert.False(t, shoe.NeedsReshuffle())

	_, err := shoe.Draw()
	require.NoError(t, err)
	assert.True(t, shoe.NeedsReshuffle(), "26 of 52 dealt crosses 50% penetration")
}

func TestShoeReshuffleResetsDealt(t *testing.T) {
	shoe := NewShoe(1, 0.5)
	for i := 0; i < 30; i++ {
		_, err := shoe.Draw()
		require.NoError(t, err)
	}

	shoe.Reshuffle()
	assert.Equal(t, 0, shoe.CardsDealt())
	assert.Equal(t, 52, shoe.CardsRemaining())
	assert.False(t, shoe.NeedsReshuffle())
}

func TestShoeDecksRemainingFloor(t *testing.T) {
	shoe := NewShoe(1, 1.0)
	assert.InDelta(t, 1.0, shoe.DecksRemaining(), 1e-9)

	// Deal down to 13 cards: a quarter deck, below the half-deck floor.
	for i := 0; i < 39; i++ {
		_, err := shoe.Draw()
		require.NoError(t, err)
	}
	assert.InDelta(t, 0.5, shoe.DecksRemaining(), 1e-9)
}
