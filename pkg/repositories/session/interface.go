// Package session persists training-session rounds and aggregate
// statistics behind a storage-agnostic Repository interface.
package session

import (
	"context"

	"github.com/blackjacklab/trainer/pkg/entities"
)

// Repository defines storage operations for round history and session
// statistics
type Repository interface {
	// Round history
	SaveRound(ctx context.Context, record *entities.RoundRecord) error
	GetSessionRounds(ctx context.Context, sessionID string, limit int) ([]*entities.RoundRecord, error)

	// Aggregate statistics
	SaveStatistics(ctx context.Context, stats *entities.SessionStatistics) error
	GetStatistics(ctx context.Context, sessionID string) (*entities.SessionStatistics, error)
	ListStatistics(ctx context.Context) ([]*entities.SessionStatistics, error)

	// Close closes any resources used by the repository
	Close() error
}
