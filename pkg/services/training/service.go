// Package training wraps a blackjack game with decision grading and
// persistence. Every player action is compared against the strategy
// recommendation before it runs, and resolved rounds are written to the
// session repository.
package training

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/blackjacklab/trainer/pkg/blackjack"
	"github.com/blackjacklab/trainer/pkg/entities"
	"github.com/blackjacklab/trainer/pkg/repositories/session"
	"github.com/blackjacklab/trainer/pkg/strategy"
)

// Grade is the verdict on one graded player decision.
type Grade struct {
	Action      strategy.Action
	Recommended strategy.Action
	Correct     bool
	IsDeviation bool
	Reason      string
}

// Service runs one training session: a single game instance, a session ID,
// and the repository that receives round history and statistics.
type Service struct {
	sessionID string
	game      *blackjack.Game
	repo      session.Repository
	logger    *log.Logger

	decisions    int
	correctMoves int
	totalBet     int64
	handsSettled int // settlements already persisted, keyed off stats.HandsPlayed
}

// NewService creates a game from the rules and starts a fresh session.
func NewService(rules blackjack.Rules, repo session.Repository, logger *log.Logger) (*Service, error) {
	game, err := blackjack.NewGame(rules)
	if err != nil {
		return nil, err
	}

	s := &Service{
		sessionID: uuid.New().String(),
		game:      game,
		repo:      repo,
		logger:    logger,
	}
	s.logger.Info("session started", "session_id", s.sessionID,
		"decks", rules.NumDecks, "bankroll", rules.StartingBankroll)
	return s, nil
}

// SessionID returns the identifier under which this session is persisted.
func (s *Service) SessionID() string {
	return s.sessionID
}

// Game exposes the underlying game for read-only inspection.
func (s *Service) Game() *blackjack.Game {
	return s.game
}

// Snapshot returns the current game state.
func (s *Service) Snapshot() *blackjack.Snapshot {
	return s.game.Snapshot()
}

// PlaceBet starts a round. Bets are not graded decisions.
func (s *Service) PlaceBet(ctx context.Context, amount int64) (*blackjack.Snapshot, error) {
	snap, err := s.game.PlaceBet(amount)
	if err != nil {
		return nil, err
	}
	s.totalBet += amount
	s.afterCommand(ctx, snap)
	return snap, nil
}

// TakeInsurance answers the insurance offer and grades it against the
// count-based advice.
func (s *Service) TakeInsurance(ctx context.Context, take bool) (*blackjack.Snapshot, *Grade, error) {
	advised := s.game.InsuranceAdvised()

	snap, err := s.game.TakeInsurance(take)
	if err != nil {
		return nil, nil, err
	}

	grade := &Grade{Correct: take == advised}
	if advised {
		grade.Reason = "true count at or above the insurance index"
	} else {
		grade.Reason = "count does not justify insurance"
	}
	s.recordGrade(grade)

	s.afterCommand(ctx, snap)
	return snap, grade, nil
}

// Play executes one graded player action. The recommendation is captured
// before the action runs so the grade reflects the situation the player
// actually faced; actions the game rejects are not counted.
func (s *Service) Play(ctx context.Context, action strategy.Action) (*blackjack.Snapshot, *Grade, error) {
	rec, recErr := s.game.Recommendation()

	var snap *blackjack.Snapshot
	var err error
	switch action {
	case strategy.ActionHit:
		snap, err = s.game.Hit()
	case strategy.ActionStand:
		snap, err = s.game.Stand()
	case strategy.ActionDouble:
		snap, err = s.game.Double()
	case strategy.ActionSplit:
		snap, err = s.game.Split()
	case strategy.ActionSurrender:
		snap, err = s.game.Surrender()
	default:
		return nil, nil, blackjack.NewGameError(blackjack.ErrInvalidPhase, "unknown action")
	}
	if err != nil {
		return nil, nil, err
	}

	var grade *Grade
	if recErr == nil {
		grade = &Grade{
			Action:      action,
			Recommended: rec.Action,
			Correct:     action == rec.Action,
			IsDeviation: rec.IsDeviation,
			Reason:      rec.Reason,
		}
		s.recordGrade(grade)
	}

	s.afterCommand(ctx, snap)
	return snap, grade, nil
}

// StartNextRound returns to the betting phase.
func (s *Service) StartNextRound() (*blackjack.Snapshot, error) {
	return s.game.StartNextRound()
}

// ReshuffleNow rebuilds the shoe between rounds.
func (s *Service) ReshuffleNow() (*blackjack.Snapshot, error) {
	return s.game.ReshuffleNow()
}

// Recommendation returns the strategy advice for the active hand.
func (s *Service) Recommendation() (strategy.Recommendation, error) {
	return s.game.Recommendation()
}

// Statistics merges the game's counters with the session's grading
// tallies into the persisted statistics shape.
func (s *Service) Statistics() *entities.SessionStatistics {
	gs := s.game.Stats()
	snap := s.game.Snapshot()
	return &entities.SessionStatistics{
		SessionID:    s.sessionID,
		HandsPlayed:  gs.HandsPlayed,
		Wins:         gs.Wins,
		Losses:       gs.Losses,
		Pushes:       gs.Pushes,
		Blackjacks:   gs.Blackjacks,
		Busts:        gs.Busts,
		Surrenders:   gs.Surrenders,
		Splits:       gs.Splits,
		DoubleDowns:  gs.DoubleDowns,
		Insurances:   gs.Insurances,
		Decisions:    s.decisions,
		CorrectMoves: s.correctMoves,
		TotalBet:     s.totalBet,
		NetResult:    snap.Bankroll - s.game.Rules().StartingBankroll,
		LastUpdated:  time.Now(),
	}
}

// History returns the most recent persisted rounds for this session.
func (s *Service) History(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	return s.repo.GetSessionRounds(ctx, s.sessionID, limit)
}

func (s *Service) recordGrade(g *Grade) {
	s.decisions++
	if g.Correct {
		s.correctMoves++
	}
}

// afterCommand persists the round once it resolves. Persistence failures
// are logged and swallowed so a storage hiccup never blocks play.
func (s *Service) afterCommand(ctx context.Context, snap *blackjack.Snapshot) {
	if snap.Phase != blackjack.PhaseRoundOver {
		return
	}
	// A command can return ROUND_OVER more than once (snapshots after the
	// fact); only persist when new settlements exist.
	if snap.Stats.HandsPlayed == s.handsSettled {
		return
	}
	s.handsSettled = snap.Stats.HandsPlayed

	record := s.buildRecord(snap)
	if err := s.repo.SaveRound(ctx, record); err != nil {
		s.logger.Error("failed to save round", "session_id", s.sessionID, "error", err)
	}
	if err := s.repo.SaveStatistics(ctx, s.Statistics()); err != nil {
		s.logger.Error("failed to save statistics", "session_id", s.sessionID, "error", err)
	}

	s.logger.Info("round resolved", "session_id", s.sessionID,
		"hands", len(snap.Results), "running_count", snap.RunningCount,
		"bankroll", snap.Bankroll)
}

func (s *Service) buildRecord(snap *blackjack.Snapshot) *entities.RoundRecord {
	record := &entities.RoundRecord{
		ID:           uuid.New().String(),
		SessionID:    s.sessionID,
		CompletedAt:  time.Now(),
		DealerTotal:  snap.DealerTotal,
		RunningCount: snap.RunningCount,
		TrueCount:    snap.TrueCount,
	}

	for _, card := range snap.DealerCards {
		record.DealerCards = append(record.DealerCards, card.Short())
	}

	for _, result := range snap.Results {
		hr := entities.HandRecord{
			Bet:     result.Bet,
			Outcome: string(result.Outcome),
			Net:     result.Net,
		}
		for _, card := range result.Cards {
			hr.Cards = append(hr.Cards, card.Short())
		}
		if result.HandIndex < len(snap.Hands) {
			hr.FromSplit = snap.Hands[result.HandIndex].FromSplit
			hr.DoubledDown = snap.Hands[result.HandIndex].DoubledDown
		}
		record.Hands = append(record.Hands, hr)
	}
	return record
}
