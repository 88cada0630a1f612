package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackjacklab/trainer/pkg/entities"
	"github.com/blackjacklab/trainer/pkg/strategy"
)

// riggedGame replaces the shoe contents with a known card order. Cards are
// dealt player, player, dealer upcard, dealer hole, then in draw order.
func riggedGame(t *testing.T, rules Rules, stack ...*entities.Card) *Game {
	t.Helper()
	g, err := NewGame(rules)
	require.NoError(t, err)
	g.shoe.Cards = stack
	return g
}

func TestNewGameValidatesRules(t *testing.T) {
	rules := DefaultRules()
	rules.NumDecks = 0

	_, err := NewGame(rules)
	require.Error(t, err)
	assert.True(t, IsGameError(err, ErrInvalidConfig))
}

func TestPlaceBetDealsRound(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Seven), // player 17
		card(entities.Nine), card(entities.Eight), // dealer 9 up, 8 hole
	)

	snap, err := g.PlaceBet(100)
	require.NoError(t, err)

	assert.Equal(t, PhasePlayerTurn, snap.Phase)
	assert.Equal(t, int64(900), snap.Bankroll)
	require.Len(t, snap.Hands, 1)
	assert.Equal(t, 17, snap.Hands[0].Total)
	assert.True(t, snap.Hands[0].Active)
	assert.True(t, snap.DealerHoleHidden)
	assert.Equal(t, 0, snap.DealerTotal, "dealer total is hidden with the hole card")

	// 10 (-1), 7 (0), 9 (0) exposed; the hole card is not counted yet.
	assert.Equal(t, -1, snap.RunningCount)
}

func TestPlaceBetRejections(t *testing.T) {
	t.Run("below minimum", func(t *testing.T) {
		g := riggedGame(t, DefaultRules())
		_, err := g.PlaceBet(5)
		assert.True(t, IsGameError(err, ErrBetTooSmall))
		assert.Equal(t, PhaseBetting, g.Snapshot().Phase)
		assert.Equal(t, int64(1000), g.Snapshot().Bankroll)
	})

	t.Run("exceeds bankroll", func(t *testing.T) {
		g := riggedGame(t, DefaultRules())
		_, err := g.PlaceBet(5000)
		assert.True(t, IsGameError(err, ErrInsufficientFunds))
		assert.Equal(t, int64(1000), g.Snapshot().Bankroll)
	})

	t.Run("mid-round", func(t *testing.T) {
		g := riggedGame(t, DefaultRules(),
			card(entities.Ten), card(entities.Seven),
			card(entities.Nine), card(entities.Eight),
		)
		_, err := g.PlaceBet(100)
		require.NoError(t, err)

		_, err = g.PlaceBet(100)
		assert.True(t, IsGameError(err, ErrInvalidPhase))
		assert.Equal(t, PhasePlayerTurn, g.Snapshot().Phase)
	})
}

func TestWinPaysEvenMoney(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Nine), // player 19
		card(entities.Ten), card(entities.Eight), // dealer 18
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	snap, err := g.Stand()
	require.NoError(t, err)

	assert.Equal(t, PhaseRoundOver, snap.Phase)
	require.Len(t, snap.Results, 1)
	assert.Equal(t, OutcomeWin, snap.Results[0].Outcome)
	assert.Equal(t, int64(100), snap.Results[0].Net)
	assert.Equal(t, int64(1100), snap.Bankroll)
	assert.Equal(t, 1, snap.Stats.Wins)
}

func TestBlackjackPaysThreeToTwo(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ace), card(entities.King), // player blackjack
		card(entities.Nine), card(entities.Eight), // dealer 17
	)

	snap, err := g.PlaceBet(100)
	require.NoError(t, err)

	assert.Equal(t, PhaseRoundOver, snap.Phase, "naturals resolve without a player turn")
	require.Len(t, snap.Results, 1)
	assert.Equal(t, OutcomeBlackjack, snap.Results[0].Outcome)
	assert.Equal(t, int64(150), snap.Results[0].Net)
	assert.Equal(t, int64(1150), snap.Bankroll)
	assert.Equal(t, 1, snap.Stats.Blackjacks)
}

func TestSurrenderReturnsHalfTheBet(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Six), // player 16
		card(entities.Ten), card(entities.Nine), // dealer 19
	)

	_, err := g.PlaceBet(50)
	require.NoError(t, err)
	snap, err := g.Surrender()
	require.NoError(t, err)

	assert.Equal(t, PhaseRoundOver, snap.Phase)
	require.Len(t, snap.Results, 1)
	assert.Equal(t, OutcomeSurrender, snap.Results[0].Outcome)
	assert.Equal(t, int64(-25), snap.Results[0].Net)
	assert.Equal(t, int64(975), snap.Bankroll)
	assert.Equal(t, 1, snap.Stats.Surrenders)
}

func TestInsuranceBreaksEvenAgainstDealerBlackjack(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Nine), // player 19
		card(entities.Ace), card(entities.King), // dealer blackjack
	)

	snap, err := g.PlaceBet(100)
	require.NoError(t, err)
	assert.Equal(t, PhaseInsurance, snap.Phase)
	assert.True(t, snap.InsuranceOffered)

	snap, err = g.TakeInsurance(true)
	require.NoError(t, err)

	// Lose 100 on the hand, win 100 net on insurance: dead even.
	assert.Equal(t, PhaseRoundOver, snap.Phase)
	assert.Equal(t, OutcomeLose, snap.Results[0].Outcome)
	assert.Equal(t, int64(1000), snap.Bankroll)
	assert.Equal(t, 1, snap.Stats.Insurances)
}

func TestInsuranceDeclinedAgainstDealerBlackjack(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Nine),
		card(entities.Ace), card(entities.King),
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	snap, err := g.TakeInsurance(false)
	require.NoError(t, err)

	assert.Equal(t, PhaseRoundOver, snap.Phase)
	assert.Equal(t, int64(900), snap.Bankroll)
	assert.Equal(t, 0, snap.Stats.Insurances)
}

func TestInsuranceForfeitedWithoutDealerBlackjack(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Nine), // player 19
		card(entities.Ace), card(entities.Nine), // dealer A-9, no blackjack
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	snap, err := g.TakeInsurance(true)
	require.NoError(t, err)

	assert.Equal(t, PhasePlayerTurn, snap.Phase, "play continues after the side bet settles")
	assert.Equal(t, int64(850), snap.Bankroll, "the 50 insurance stake is gone")
}

func TestSplitAcesGetOneCardEach(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ace), card(entities.Ace), // player A-A
		card(entities.Nine), card(entities.Eight), // dealer 17
		card(entities.King), card(entities.Seven), // one card to each split hand
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	snap, err := g.Split()
	require.NoError(t, err)

	// Both hands stood automatically, so the round ran to completion.
	assert.Equal(t, PhaseRoundOver, snap.Phase)
	require.Len(t, snap.Hands, 2)
	for _, hand := range snap.Hands {
		assert.Len(t, hand.Cards, 2, "split aces take exactly one card")
		assert.True(t, hand.FromSplit)
		assert.Equal(t, StatusStand, hand.Status)
	}

	// A-K totals 21 but came from a split: a plain win, not a blackjack.
	require.Len(t, snap.Results, 2)
	assert.Equal(t, OutcomeWin, snap.Results[0].Outcome)
	assert.Equal(t, int64(100), snap.Results[0].Net)
	assert.Equal(t, OutcomeWin, snap.Results[1].Outcome) // 18 beats 17

	// 1000 - 200 staked + 2x200 returned.
	assert.Equal(t, int64(1200), snap.Bankroll)
	assert.Equal(t, 1, snap.Stats.Splits)
	assert.Equal(t, 2, snap.Stats.HandsPlayed)
}

func TestSplitRejectedOnNonPair(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Seven),
		card(entities.Nine), card(entities.Eight),
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	_, err = g.Split()
	assert.True(t, IsGameError(err, ErrSplitNotAllowed))
	assert.Equal(t, PhasePlayerTurn, g.Snapshot().Phase)
	assert.Len(t, g.Snapshot().Hands, 1)
}

func TestDoubleDown(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Five), card(entities.Six), // player 11
		card(entities.Nine), card(entities.Nine), // dealer 18
		card(entities.Ten), // the double card
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	snap, err := g.Double()
	require.NoError(t, err)

	assert.Equal(t, PhaseRoundOver, snap.Phase)
	assert.True(t, snap.Hands[0].DoubledDown)
	assert.Equal(t, 21, snap.Hands[0].Total)
	assert.Equal(t, OutcomeWin, snap.Results[0].Outcome)
	assert.Equal(t, int64(200), snap.Results[0].Net, "the doubled bet wins even money")
	assert.Equal(t, int64(1200), snap.Bankroll)
	assert.Equal(t, 1, snap.Stats.DoubleDowns)
}

func TestDoubleRejectedAfterHit(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Five), card(entities.Three), // player 8
		card(entities.Nine), card(entities.Nine),
		card(entities.Two), // hit card, player 10
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	_, err = g.Hit()
	require.NoError(t, err)

	_, err = g.Double()
	assert.True(t, IsGameError(err, ErrDoubleNotAllowed))
	assert.Equal(t, int64(900), g.Snapshot().Bankroll, "the failed double changes nothing")
}

func TestSurrenderRejectedAfterHit(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Five), card(entities.Three),
		card(entities.Nine), card(entities.Nine),
		card(entities.Two),
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	_, err = g.Hit()
	require.NoError(t, err)

	_, err = g.Surrender()
	assert.True(t, IsGameError(err, ErrSurrenderNotAllowed))
}

func TestHitToBustEndsHand(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Six), // player 16
		card(entities.Nine), card(entities.Eight), // dealer 17
		card(entities.King), // bust card
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	snap, err := g.Hit()
	require.NoError(t, err)

	assert.Equal(t, PhaseRoundOver, snap.Phase)
	assert.Equal(t, OutcomeBust, snap.Results[0].Outcome)
	assert.Equal(t, int64(-100), snap.Results[0].Net)
	assert.Equal(t, int64(900), snap.Bankroll)
	assert.Equal(t, 1, snap.Stats.Busts)
	assert.Equal(t, 1, snap.Stats.Losses)
}

func TestDealerSoft17ByVariant(t *testing.T) {
	stack := func() []*entities.Card {
		return []*entities.Card{
			card(entities.Ten), card(entities.Queen), // player 20
			card(entities.Six), card(entities.Ace), // dealer soft 17
			card(entities.Three), // H17 draw card
		}
	}

	t.Run("dealer stands on soft 17", func(t *testing.T) {
		g := riggedGame(t, DefaultRules(), stack()...)
		_, err := g.PlaceBet(100)
		require.NoError(t, err)
		snap, err := g.Stand()
		require.NoError(t, err)

		assert.Equal(t, 17, snap.DealerTotal)
		assert.Equal(t, OutcomeWin, snap.Results[0].Outcome)
	})

	t.Run("dealer hits soft 17", func(t *testing.T) {
		rules := DefaultRules()
		rules.DealerHitsSoft17 = true
		g := riggedGame(t, rules, stack()...)
		_, err := g.PlaceBet(100)
		require.NoError(t, err)
		snap, err := g.Stand()
		require.NoError(t, err)

		assert.Equal(t, 20, snap.DealerTotal, "soft 17 drew a 3")
		assert.Equal(t, OutcomePush, snap.Results[0].Outcome)
	})
}

func TestDealerDrawFromEmptyShoeFailsLoudly(t *testing.T) {
	// Exactly four cards: the dealer sits on 16 and must draw, but the
	// shoe is empty. The round must not settle against the unfinished
	// dealer hand.
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Nine), // player 19
		card(entities.Ten), card(entities.Six), // dealer 16
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)

	_, err = g.Stand()
	require.Error(t, err)
	assert.True(t, IsGameError(err, ErrShoeExhausted))

	snap := g.Snapshot()
	assert.NotEqual(t, PhaseRoundOver, snap.Phase, "no settlement without a finished dealer hand")
	assert.Empty(t, snap.Results)
	assert.Equal(t, int64(900), snap.Bankroll, "no payout was fabricated")
	assert.Equal(t, 0, snap.Stats.HandsPlayed)
}

func TestDoubleDrawFromEmptyShoeFailsLoudly(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Five), card(entities.Six), // player 11
		card(entities.Nine), card(entities.Nine), // dealer 18
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)

	_, err = g.Double()
	require.Error(t, err)
	assert.True(t, IsGameError(err, ErrShoeExhausted))
	assert.Empty(t, g.Snapshot().Results)
}

func TestInsuranceRejectedWhenBankrollCannotCoverIt(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Nine), // player 19
		card(entities.Ace), card(entities.King), // dealer blackjack
	)

	// The whole bankroll is on the bet, so the half-bet stake is uncovered.
	_, err := g.PlaceBet(1000)
	require.NoError(t, err)

	_, err = g.TakeInsurance(true)
	require.Error(t, err)
	assert.True(t, IsGameError(err, ErrInsuranceTooLarge))
	assert.Equal(t, PhaseInsurance, g.Snapshot().Phase, "the offer stays open")
	assert.Equal(t, int64(0), g.Snapshot().Bankroll)

	// Declining is still possible and resolves the round.
	snap, err := g.TakeInsurance(false)
	require.NoError(t, err)
	assert.Equal(t, PhaseRoundOver, snap.Phase)
}

func TestDealerDoesNotDrawWhenEveryHandLost(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Six), // player 16
		card(entities.Six), card(entities.Ten), // dealer 16, would have to draw
		card(entities.King), // player bust card
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	snap, err := g.Hit()
	require.NoError(t, err)

	assert.Equal(t, PhaseRoundOver, snap.Phase)
	assert.Equal(t, 16, snap.DealerTotal, "dealer reveals but stands pat over a dead table")
	assert.Len(t, snap.DealerCards, 2)
}

func TestHoleCardCountedExactlyOnce(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Nine), // -1, 0
		card(entities.Ten), card(entities.Six), // -1 up, +1 hole
		card(entities.Five), // +1 dealer draw to 21
	)

	snap, err := g.PlaceBet(100)
	require.NoError(t, err)
	assert.Equal(t, -2, snap.RunningCount, "hole card invisible, not counted")

	snap, err = g.Stand()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.RunningCount, "hole card and dealer draw counted at reveal")
	assert.Equal(t, 21, snap.DealerTotal)
}

func TestRecommendationMatchesTables(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Six), // player 16
		card(entities.Ten), card(entities.Nine), // dealer shows 10
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)

	// The running count is negative after the deal, so the 16 vs 10 index
	// play does not fire and basic strategy surrenders.
	rec, err := g.Recommendation()
	require.NoError(t, err)
	assert.Equal(t, strategy.ActionSurrender, rec.Action)
	assert.False(t, rec.IsDeviation)
}

func TestRecommendationRejectedOutsidePlayerTurn(t *testing.T) {
	g := riggedGame(t, DefaultRules())
	_, err := g.Recommendation()
	assert.True(t, IsGameError(err, ErrInvalidPhase))
}

func TestStartNextRoundOnlyAfterRoundOver(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Nine),
		card(entities.Ten), card(entities.Eight),
	)

	_, err := g.StartNextRound()
	assert.True(t, IsGameError(err, ErrInvalidPhase))

	_, err = g.PlaceBet(100)
	require.NoError(t, err)
	_, err = g.StartNextRound()
	assert.True(t, IsGameError(err, ErrInvalidPhase))

	_, err = g.Stand()
	require.NoError(t, err)
	snap, err := g.StartNextRound()
	require.NoError(t, err)
	assert.Equal(t, PhaseBetting, snap.Phase)
}

func TestReshuffleNowRejectedMidRound(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		card(entities.Ten), card(entities.Nine),
		card(entities.Ten), card(entities.Eight),
	)

	_, err := g.PlaceBet(100)
	require.NoError(t, err)
	_, err = g.ReshuffleNow()
	assert.True(t, IsGameError(err, ErrInvalidPhase))
}

func TestReshuffleNowResetsTheCount(t *testing.T) {
	g, err := NewGame(DefaultRules())
	require.NoError(t, err)
	g.runningCount = 7

	snap, err := g.ReshuffleNow()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.RunningCount)
	assert.Equal(t, 6*52, g.shoe.CardsRemaining())
}

func TestPenetrationTriggersReshuffleBeforeDeal(t *testing.T) {
	rules := DefaultRules()
	rules.NumDecks = 1
	rules.Penetration = 0.5
	g, err := NewGame(rules)
	require.NoError(t, err)

	// Burn past the penetration point between rounds.
	for i := 0; i < 30; i++ {
		_, err := g.shoe.Draw()
		require.NoError(t, err)
	}
	g.runningCount = 9
	require.True(t, g.shoe.NeedsReshuffle())

	snap, err := g.PlaceBet(100)
	require.NoError(t, err)

	// The shoe was rebuilt and the count reset before the four deal cards
	// came off it.
	assert.Equal(t, 52-4, g.shoe.CardsRemaining())
	expected := counted(g.hands[0].Cards...) + counted(g.dealer[0])
	if g.holeRevealed {
		// A natural resolved the round immediately and revealed the hole.
		expected += counted(g.dealer[1])
	}
	assert.Equal(t, expected, snap.RunningCount)
}

func counted(cards ...*entities.Card) int {
	total := 0
	for _, c := range cards {
		switch c.Value() {
		case 2, 3, 4, 5, 6:
			total++
		case 10, 11:
			total--
		}
	}
	return total
}
