package mock

import (
	"context"

	"github.com/blackjacklab/trainer/pkg/entities"
	"github.com/stretchr/testify/mock"
)

// Repository is a mock implementation of session.Repository
type Repository struct {
	mock.Mock
}

func New() *Repository {
	return &Repository{}
}

func (r *Repository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	args := r.Called(ctx, record)
	return args.Error(0)
}

func (r *Repository) GetSessionRounds(ctx context.Context, sessionID string, limit int) ([]*entities.RoundRecord, error) {
	args := r.Called(ctx, sessionID, limit)
	if records, ok := args.Get(0).([]*entities.RoundRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (r *Repository) SaveStatistics(ctx context.Context, stats *entities.SessionStatistics) error {
	args := r.Called(ctx, stats)
	return args.Error(0)
}

func (r *Repository) GetStatistics(ctx context.Context, sessionID string) (*entities.SessionStatistics, error) {
	args := r.Called(ctx, sessionID)
	if stats, ok := args.Get(0).(*entities.SessionStatistics); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (r *Repository) ListStatistics(ctx context.Context) ([]*entities.SessionStatistics, error) {
	args := r.Called(ctx)
	if all, ok := args.Get(0).([]*entities.SessionStatistics); ok {
		return all, args.Error(1)
	}
	return nil, args.Error(1)
}

func (r *Repository) Close() error {
	args := r.Called()
	return args.Error(0)
}
