package session

import (
	"context"
	"sync"

	"github.com/blackjacklab/trainer/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// Map of sessionID to round records
	rounds map[string][]*entities.RoundRecord
	// Map of sessionID to statistics
	stats map[string]*entities.SessionStatistics
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rounds: make(map[string][]*entities.RoundRecord),
		stats:  make(map[string]*entities.SessionStatistics),
	}
}

// SaveRound stores a round record for a session
func (r *MemoryRepository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rounds[record.SessionID] = append(r.rounds[record.SessionID], record)
	return nil
}

// GetSessionRounds retrieves the most recent round records for a session
func (r *MemoryRepository) GetSessionRounds(ctx context.Context, sessionID string, limit int) ([]*entities.RoundRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.rounds[sessionID]
	if records == nil {
		return []*entities.RoundRecord{}, nil
	}

	if limit > 0 && len(records) > limit {
		return records[len(records)-limit:], nil
	}
	return records, nil
}

// SaveStatistics stores aggregate statistics for a session
func (r *MemoryRepository) SaveStatistics(ctx context.Context, stats *entities.SessionStatistics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *stats
	r.stats[stats.SessionID] = &copied
	return nil
}

// GetStatistics retrieves statistics for a session
func (r *MemoryRepository) GetStatistics(ctx context.Context, sessionID string) (*entities.SessionStatistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, exists := r.stats[sessionID]
	if !exists {
		// Return empty statistics if not found
		return &entities.SessionStatistics{SessionID: sessionID}, nil
	}
	copied := *stats
	return &copied, nil
}

// ListStatistics retrieves statistics for all sessions
func (r *MemoryRepository) ListStatistics(ctx context.Context) ([]*entities.SessionStatistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entities.SessionStatistics, 0, len(r.stats))
	for _, stats := range r.stats {
		copied := *stats
		all = append(all, &copied)
	}
	return all, nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}
