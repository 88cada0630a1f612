package blackjack

import (
	"github.com/blackjacklab/trainer/pkg/counting"
	"github.com/blackjacklab/trainer/pkg/entities"
)

// HandView is the externally visible state of one player hand.
type HandView struct {
	Cards       []*entities.Card
	Bet         int64
	Status      HandStatus
	Total       int
	IsSoft      bool
	FromSplit   bool
	DoubledDown bool
	Active      bool
}

// Snapshot is the full externally visible game state after a command. The
// dealer's hole card is present but flagged hidden until the dealer turn,
// so rendering layers know not to show it.
type Snapshot struct {
	Phase            Phase
	Hands            []HandView
	DealerCards      []*entities.Card
	DealerHoleHidden bool
	DealerTotal      int // zero while the hole card is hidden
	Bankroll         int64
	RunningCount     int
	TrueCount        float64 // rounded to one decimal for display
	DecksRemaining   float64
	InsuranceOffered bool
	InsuranceAdvised bool
	Results          []HandResult
	Stats            Stats
	Message          string
}

// Snapshot builds the externally visible state. It never mutates the game.
func (g *Game) Snapshot() *Snapshot {
	snap := &Snapshot{
		Phase:            g.phase,
		Bankroll:         g.bankroll,
		RunningCount:     g.runningCount,
		TrueCount:        counting.DisplayTrueCount(g.trueCount()),
		DecksRemaining:   g.shoe.DecksRemaining(),
		InsuranceOffered: g.phase == PhaseInsurance,
		InsuranceAdvised: g.InsuranceAdvised(),
		Results:          g.results,
		Stats:            g.stats,
		Message:          g.message,
	}

	for i, hand := range g.hands {
		total, soft := HandTotal(hand.Cards)
		snap.Hands = append(snap.Hands, HandView{
			Cards:       hand.Cards,
			Bet:         hand.Bet,
			Status:      hand.Status,
			Total:       total,
			IsSoft:      soft,
			FromSplit:   hand.FromSplit,
			DoubledDown: hand.DoubledDown,
			Active:      g.phase == PhasePlayerTurn && i == g.activeHand,
		})
	}

	if len(g.dealer) > 0 {
		snap.DealerCards = g.dealer
		snap.DealerHoleHidden = !g.holeRevealed
		if g.holeRevealed {
			snap.DealerTotal, _ = HandTotal(g.dealer)
		}
	}

	return snap
}
