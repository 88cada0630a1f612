package blackjack

import (
	"fmt"

	"github.com/blackjacklab/trainer/pkg/counting"
	"github.com/blackjacklab/trainer/pkg/entities"
	"github.com/blackjacklab/trainer/pkg/strategy"
)

// Phase is the round state machine position.
type Phase string

const (
	PhaseBetting Phase = "BETTING"
	// PhaseDealing is transient: dealing completes synchronously inside
	// PlaceBet, so snapshots never observe it.
	PhaseDealing    Phase = "DEALING"
	PhaseInsurance  Phase = "INSURANCE_OFFER"
	PhasePlayerTurn Phase = "PLAYER_TURN"
	// PhaseDealerTurn is transient: the dealer plays automatically as soon
	// as the last player hand resolves.
	PhaseDealerTurn Phase = "DEALER_TURN"
	PhaseRoundOver  Phase = "ROUND_OVER"
)

// Stats aggregates results across rounds of one game instance. Counters
// are owned by the instance and reset only by creating a new game.
type Stats struct {
	HandsPlayed int
	Wins        int
	Losses      int
	Pushes      int
	Blackjacks  int
	Busts       int
	Surrenders  int
	Splits      int
	DoubleDowns int
	Insurances  int
}

// HandResult records one hand's settlement.
type HandResult struct {
	HandIndex int
	Cards     []*entities.Card
	Bet       int64
	Outcome   Outcome
	Net       int64 // net bankroll change for the wager, insurance excluded
}

// Game is a single-player blackjack round state machine with Hi-Lo
// counting. It is synchronous and single-threaded: exactly one round is in
// flight, mutated only by the caller's command methods, each of which
// applies all card and count updates atomically before returning a
// snapshot.
//
// Abandoning a game mid-round (dropping the instance) forfeits any bet
// already deducted from the bankroll; the engine never refunds implicitly.
type Game struct {
	rules Rules
	shoe  *entities.Shoe

	phase      Phase
	hands      []*Hand
	dealer     []*entities.Card
	activeHand int
	splitCount int

	holeRevealed   bool
	insuranceBet   int64
	insuranceTaken bool

	bankroll     int64
	runningCount int

	message string
	results []HandResult
	stats   Stats
}

// NewGame validates the rules, builds a shuffled shoe, and starts in the
// betting phase.
func NewGame(rules Rules) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Game{
		rules:    rules,
		shoe:     entities.NewShoe(rules.NumDecks, rules.Penetration),
		phase:    PhaseBetting,
		bankroll: rules.StartingBankroll,
		message:  "place a bet",
	}, nil
}

// Rules returns the game's rule configuration.
func (g *Game) Rules() Rules {
	return g.rules
}

// PlaceBet deducts the bet, reshuffles first if the shoe has passed its
// penetration point, deals the round, and advances to the insurance
// offer, an immediate natural resolution, or the player turn.
func (g *Game) PlaceBet(amount int64) (*Snapshot, error) {
	if g.phase != PhaseBetting {
		return nil, NewGameError(ErrInvalidPhase, fmt.Sprintf("cannot bet during %s", g.phase))
	}
	if amount < g.rules.MinBet {
		return nil, NewGameError(ErrBetTooSmall, fmt.Sprintf("bet %d is below the %d minimum", amount, g.rules.MinBet))
	}
	if amount > g.bankroll {
		return nil, NewGameError(ErrInsufficientFunds, fmt.Sprintf("bet %d exceeds bankroll %d", amount, g.bankroll))
	}

	// Never reshuffle mid-round: the penetration check happens here, before
	// any card of the new round is dealt.
	if g.shoe.NeedsReshuffle() {
		g.shoe.Reshuffle()
		g.runningCount = 0
	}

	g.bankroll -= amount
	g.hands = []*Hand{NewHand(amount)}
	g.dealer = nil
	g.activeHand = 0
	g.splitCount = 0
	g.holeRevealed = false
	g.insuranceBet = 0
	g.insuranceTaken = false
	g.results = nil
	g.phase = PhaseDealing

	// Player two cards, then dealer upcard and hole card. The hole card is
	// not exposed yet, so it is not counted here.
	for i := 0; i < 2; i++ {
		card, err := g.draw()
		if err != nil {
			return nil, err
		}
		g.hands[0].AddCard(card)
		g.expose(card)
	}
	up, err := g.draw()
	if err != nil {
		return nil, err
	}
	hole, err := g.draw()
	if err != nil {
		return nil, err
	}
	g.dealer = []*entities.Card{up, hole}
	g.expose(up)

	if up.IsAce() {
		g.phase = PhaseInsurance
		g.message = "dealer shows an ace: insurance?"
		return g.Snapshot(), nil
	}

	if IsBlackjack(g.hands[0].Cards) || IsBlackjack(g.dealer) {
		if IsBlackjack(g.hands[0].Cards) {
			g.hands[0].Status = StatusBlackjack
		}
		g.resolveRound()
		return g.Snapshot(), nil
	}

	g.phase = PhasePlayerTurn
	g.message = "your turn"
	return g.Snapshot(), nil
}

// TakeInsurance accepts or declines the insurance offer and resolves it.
// Insurance is half the original bet and pays 2:1 when the dealer has
// blackjack.
func (g *Game) TakeInsurance(take bool) (*Snapshot, error) {
	if g.phase != PhaseInsurance {
		return nil, NewGameError(ErrInvalidPhase, "no insurance offer is open")
	}

	hand := g.hands[0]
	if take {
		amount := hand.Bet / 2
		if amount > g.bankroll {
			return nil, NewGameError(ErrInsuranceTooLarge, fmt.Sprintf("insurance %d exceeds bankroll %d", amount, g.bankroll))
		}
		g.bankroll -= amount
		g.insuranceBet = amount
		g.insuranceTaken = true
		g.stats.Insurances++
	}

	if IsBlackjack(g.dealer) {
		if g.insuranceTaken {
			// Stake back plus the 2:1 win.
			g.bankroll += g.insuranceBet * 3
		}
		if IsBlackjack(hand.Cards) {
			hand.Status = StatusBlackjack
		}
		g.resolveRound()
		return g.Snapshot(), nil
	}

	// No dealer blackjack: insurance (if taken) is forfeited.
	if IsBlackjack(hand.Cards) {
		hand.Status = StatusBlackjack
		g.resolveRound()
		return g.Snapshot(), nil
	}

	g.phase = PhasePlayerTurn
	g.message = "no dealer blackjack: your turn"
	return g.Snapshot(), nil
}

// Hit draws one card into the active hand.
func (g *Game) Hit() (*Snapshot, error) {
	hand, err := g.actionableHand()
	if err != nil {
		return nil, err
	}

	card, err := g.draw()
	if err != nil {
		return nil, err
	}
	hand.AddCard(card)
	g.expose(card)

	if hand.Status == StatusBust {
		g.stats.Busts++
		g.message = fmt.Sprintf("bust with %d", hand.Total())
		if err := g.advance(); err != nil {
			return nil, err
		}
	} else {
		g.message = fmt.Sprintf("drew %s", card)
	}
	return g.Snapshot(), nil
}

// Stand ends play on the active hand.
func (g *Game) Stand() (*Snapshot, error) {
	hand, err := g.actionableHand()
	if err != nil {
		return nil, err
	}
	hand.Status = StatusStand
	g.message = fmt.Sprintf("stand on %d", hand.Total())
	if err := g.advance(); err != nil {
		return nil, err
	}
	return g.Snapshot(), nil
}

// Double doubles the bet on an untouched two-card hand, draws exactly one
// card, and ends play on the hand.
func (g *Game) Double() (*Snapshot, error) {
	hand, err := g.actionableHand()
	if err != nil {
		return nil, err
	}
	if len(hand.Cards) != 2 || hand.DoubledDown {
		return nil, NewGameError(ErrDoubleNotAllowed, "double is only allowed on an untouched two-card hand")
	}
	if hand.FromSplit && !g.rules.DoubleAfterSplit {
		return nil, NewGameError(ErrDoubleNotAllowed, "doubling after a split is not allowed by the table rules")
	}
	if hand.Bet > g.bankroll {
		return nil, NewGameError(ErrInsufficientFunds, "bankroll cannot cover the double")
	}

	g.bankroll -= hand.Bet
	hand.Bet *= 2
	hand.DoubledDown = true
	g.stats.DoubleDowns++

	card, err := g.draw()
	if err != nil {
		return nil, err
	}
	hand.AddCard(card)
	g.expose(card)

	if hand.Status == StatusBust {
		g.stats.Busts++
		g.message = fmt.Sprintf("doubled and bust with %d", hand.Total())
	} else {
		hand.Status = StatusStand
		g.message = fmt.Sprintf("doubled to %d", hand.Total())
	}
	if err := g.advance(); err != nil {
		return nil, err
	}
	return g.Snapshot(), nil
}

// Split turns a pair into two hands, each taking one fresh card. The new
// hand is inserted immediately after its parent so the player plays them
// in sequence; active-hand indices stay stable because the list only ever
// grows by that insertion. Split aces receive one card each and are stood
// automatically.
func (g *Game) Split() (*Snapshot, error) {
	hand, err := g.actionableHand()
	if err != nil {
		return nil, err
	}
	if !CanSplit(hand.Cards) {
		return nil, NewGameError(ErrSplitNotAllowed, "hand is not a splittable pair")
	}
	if g.splitCount >= g.rules.MaxSplits {
		return nil, NewGameError(ErrSplitNotAllowed, fmt.Sprintf("maximum of %d splits reached", g.rules.MaxSplits))
	}
	if hand.Bet > g.bankroll {
		return nil, NewGameError(ErrInsufficientFunds, "bankroll cannot cover the split bet")
	}

	g.bankroll -= hand.Bet
	g.splitCount++
	g.stats.Splits++

	wasAces := hand.Cards[0].IsAce()

	second := NewHand(hand.Bet)
	second.FromSplit = true
	second.AddCard(hand.Cards[1])
	hand.Cards = hand.Cards[:1]
	hand.FromSplit = true

	// Each hand's fresh card was not seen before, so each is counted once.
	for _, h := range []*Hand{hand, second} {
		card, err := g.draw()
		if err != nil {
			return nil, err
		}
		h.AddCard(card)
		g.expose(card)
	}

	// Insert the new hand right after its parent.
	idx := g.activeHand
	g.hands = append(g.hands[:idx+1], append([]*Hand{second}, g.hands[idx+1:]...)...)

	if wasAces {
		// One card per split ace, then both hands are done.
		hand.Status = StatusStand
		second.Status = StatusStand
		g.message = "split aces: one card each"
		if err := g.advance(); err != nil {
			return nil, err
		}
	} else {
		g.message = fmt.Sprintf("split into %d hands", len(g.hands))
	}
	return g.Snapshot(), nil
}

// Surrender gives up an initial two-card hand for half the bet back.
func (g *Game) Surrender() (*Snapshot, error) {
	hand, err := g.actionableHand()
	if err != nil {
		return nil, err
	}
	if !g.rules.AllowSurrender {
		return nil, NewGameError(ErrSurrenderNotAllowed, "surrender is not allowed by the table rules")
	}
	if hand.FromSplit || len(hand.Cards) != 2 || hand.DoubledDown {
		return nil, NewGameError(ErrSurrenderNotAllowed, "surrender is only allowed on the initial two-card hand")
	}

	g.bankroll += SurrenderRefund(hand.Bet)
	hand.Status = StatusSurrendered
	g.stats.Surrenders++
	g.message = "surrendered"
	if err := g.advance(); err != nil {
		return nil, err
	}
	return g.Snapshot(), nil
}

// StartNextRound returns to the betting phase. The machine never advances
// out of ROUND_OVER on its own.
func (g *Game) StartNextRound() (*Snapshot, error) {
	if g.phase != PhaseRoundOver {
		return nil, NewGameError(ErrInvalidPhase, "the round is not over")
	}
	g.phase = PhaseBetting
	g.message = "place a bet"
	return g.Snapshot(), nil
}

// ReshuffleNow rebuilds the shoe between rounds and resets the running
// count.
func (g *Game) ReshuffleNow() (*Snapshot, error) {
	if g.phase != PhaseBetting && g.phase != PhaseRoundOver {
		return nil, NewGameError(ErrInvalidPhase, "cannot reshuffle mid-round")
	}
	g.shoe.Reshuffle()
	g.runningCount = 0
	g.message = "fresh shoe"
	return g.Snapshot(), nil
}

// Recommendation returns the strategy-table action for the active hand
// without mutating any state. It may be consulted any number of times.
func (g *Game) Recommendation() (strategy.Recommendation, error) {
	if g.phase != PhasePlayerTurn {
		return strategy.Recommendation{}, NewGameError(ErrInvalidPhase, "no hand is awaiting a decision")
	}

	hand := g.hands[g.activeHand]
	total, soft := HandTotal(hand.Cards)
	sit := strategy.Situation{
		PlayerTotal:  total,
		IsSoft:       soft,
		IsPair:       CanSplit(hand.Cards),
		DealerUpcard: g.dealer[0].Value(),
		CanDouble:    g.canDouble(hand),
		CanSplit:     g.canSplitHand(hand),
		CanSurrender: g.canSurrender(hand),
		TrueCount:    g.trueCount(),
	}
	if sit.IsPair {
		sit.PairCardValue = hand.Cards[0].Value()
	}
	return strategy.Recommend(sit, g.rules.Variant()), nil
}

// InsuranceAdvised reports whether the count says to take the open
// insurance offer.
func (g *Game) InsuranceAdvised() bool {
	return g.phase == PhaseInsurance && strategy.TakeInsurance(g.trueCount())
}

// Stats returns a copy of the aggregate counters.
func (g *Game) Stats() Stats {
	return g.stats
}

// LastResults returns the settlements of the most recently resolved round.
func (g *Game) LastResults() []HandResult {
	return g.results
}

func (g *Game) actionableHand() (*Hand, error) {
	if g.phase != PhasePlayerTurn {
		return nil, NewGameError(ErrInvalidPhase, fmt.Sprintf("no player action is possible during %s", g.phase))
	}
	hand := g.hands[g.activeHand]
	if hand.Status.Terminal() {
		return nil, NewGameError(ErrHandNotActionable, "the active hand is already resolved")
	}
	return hand, nil
}

func (g *Game) canDouble(h *Hand) bool {
	return len(h.Cards) == 2 && !h.DoubledDown && h.Bet <= g.bankroll &&
		(!h.FromSplit || g.rules.DoubleAfterSplit)
}

func (g *Game) canSplitHand(h *Hand) bool {
	return CanSplit(h.Cards) && h.Bet <= g.bankroll && g.splitCount < g.rules.MaxSplits
}

func (g *Game) canSurrender(h *Hand) bool {
	return g.rules.AllowSurrender && !h.FromSplit && !h.DoubledDown && len(h.Cards) == 2
}

// draw pulls the next card. An empty shoe mid-round is an invariant
// violation, not a playable condition, so it surfaces as a loud error.
func (g *Game) draw() (*entities.Card, error) {
	card, err := g.shoe.Draw()
	if err != nil {
		return nil, WrapError(ErrShoeExhausted, "shoe exhausted mid-round", err)
	}
	return card, nil
}

// expose folds newly visible cards into the running count. Every visible
// card passes through here exactly once.
func (g *Game) expose(cards ...*entities.Card) {
	g.runningCount = counting.UpdateRunningCount(g.runningCount, cards...)
}

func (g *Game) trueCount() float64 {
	return counting.TrueCount(g.runningCount, g.shoe.DecksRemaining())
}

// advance moves to the next unresolved hand, or hands control to the
// dealer when none remains.
func (g *Game) advance() error {
	for i := g.activeHand + 1; i < len(g.hands); i++ {
		if g.hands[i].Status == StatusPlaying {
			g.activeHand = i
			return nil
		}
	}
	return g.playDealer()
}

// playDealer reveals the hole card and draws to the house total, then
// settles the round. When every player hand has already lost, the dealer
// reveals but does not draw. An exhausted shoe mid-draw is an invariant
// violation and surfaces as an error; the round never settles against an
// unfinished dealer hand.
func (g *Game) playDealer() error {
	g.phase = PhaseDealerTurn
	g.revealHole()

	needsPlay := false
	for _, h := range g.hands {
		if h.Status == StatusStand {
			needsPlay = true
			break
		}
	}

	if needsPlay {
		for {
			total, soft := HandTotal(g.dealer)
			if total < 17 || (total == 17 && soft && g.rules.DealerHitsSoft17) {
				card, err := g.draw()
				if err != nil {
					return err
				}
				g.dealer = append(g.dealer, card)
				g.expose(card)
				continue
			}
			break
		}
	}

	g.resolveRound()
	return nil
}

// revealHole counts the dealer's hole card the moment it becomes visible.
func (g *Game) revealHole() {
	if g.holeRevealed {
		return
	}
	g.holeRevealed = true
	g.expose(g.dealer[1])
}

// resolveRound settles every hand against the dealer and updates the
// aggregate stats once per hand.
func (g *Game) resolveRound() {
	g.revealHole()

	g.results = make([]HandResult, 0, len(g.hands))
	for i, hand := range g.hands {
		result := HandResult{HandIndex: i, Cards: hand.Cards, Bet: hand.Bet}

		if hand.Status == StatusSurrendered {
			result.Outcome = OutcomeSurrender
			result.Net = SurrenderRefund(hand.Bet) - hand.Bet
		} else {
			outcome := CompareHands(hand.Cards, g.dealer, hand.FromSplit)
			result.Outcome = outcome
			result.Net = CalculatePayout(outcome, hand.Bet, g.rules.BlackjackPayout)
			// The stake was deducted when bet, so the settlement credit is
			// the stake plus the net result, except on a loss.
			g.bankroll += hand.Bet + result.Net
		}

		g.stats.HandsPlayed++
		switch result.Outcome {
		case OutcomeWin:
			g.stats.Wins++
		case OutcomeBlackjack:
			g.stats.Wins++
			g.stats.Blackjacks++
		case OutcomeLose, OutcomeBust:
			g.stats.Losses++
		case OutcomePush:
			g.stats.Pushes++
		}

		g.results = append(g.results, result)
	}

	g.phase = PhaseRoundOver
	g.message = g.summarize()
}

func (g *Game) summarize() string {
	if len(g.results) == 1 {
		return fmt.Sprintf("%s (net %+d)", g.results[0].Outcome, g.results[0].Net)
	}
	var net int64
	for _, r := range g.results {
		net += r.Net
	}
	return fmt.Sprintf("%d hands settled (net %+d)", len(g.results), net)
}
