package entities

import "time"

// HandRecord is one settled hand inside a round record. Cards are stored
// in compact form ("AS", "10H") so records stay storage-friendly.
type HandRecord struct {
	Cards       []string `json:"cards"`
	Bet         int64    `json:"bet"`
	Outcome     string   `json:"outcome"`
	Net         int64    `json:"net"`
	FromSplit   bool     `json:"from_split"`
	DoubledDown bool     `json:"doubled_down"`
}

// RoundRecord captures one resolved round for later review: the cards,
// the settlements, and the count at resolution time.
type RoundRecord struct {
	ID           string       `json:"id"`
	SessionID    string       `json:"session_id"`
	CompletedAt  time.Time    `json:"completed_at"`
	DealerCards  []string     `json:"dealer_cards"`
	DealerTotal  int          `json:"dealer_total"`
	RunningCount int          `json:"running_count"`
	TrueCount    float64      `json:"true_count"`
	Hands        []HandRecord `json:"hands"`
}
