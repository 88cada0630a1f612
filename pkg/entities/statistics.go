package entities

import "time"

// SessionStatistics represents aggregated results for one training session
type SessionStatistics struct {
	SessionID    string
	HandsPlayed  int
	Wins         int
	Losses       int
	Pushes       int
	Blackjacks   int
	Busts        int
	Surrenders   int
	Splits       int
	DoubleDowns  int
	Insurances   int
	Decisions    int
	CorrectMoves int
	TotalBet     int64
	NetResult    int64
	LastUpdated  time.Time
}

// Accuracy calculates how often the player's decision matched the
// strategy recommendation, as a percentage.
func (s *SessionStatistics) Accuracy() float64 {
	if s.Decisions == 0 {
		return 0.0
	}
	return float64(s.CorrectMoves) / float64(s.Decisions) * 100.0
}

// WinRate calculates the session win rate as a percentage.
func (s *SessionStatistics) WinRate() float64 {
	if s.HandsPlayed == 0 {
		return 0.0
	}
	return float64(s.Wins) / float64(s.HandsPlayed) * 100.0
}
