package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blackjacklab/trainer/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite table schemas
const (
	createRoundsTableSQL = `
	CREATE TABLE IF NOT EXISTS rounds (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		completed_at TIMESTAMP NOT NULL,
		dealer_cards TEXT NOT NULL,  -- JSON array of card strings
		dealer_total INTEGER NOT NULL,
		running_count INTEGER NOT NULL,
		true_count REAL NOT NULL,
		hands TEXT NOT NULL,  -- JSON array of hand records
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_rounds_session ON rounds(session_id)`

	createStatisticsTableSQL = `
	CREATE TABLE IF NOT EXISTS session_statistics (
		session_id TEXT PRIMARY KEY,
		hands_played INTEGER NOT NULL,
		wins INTEGER NOT NULL,
		losses INTEGER NOT NULL,
		pushes INTEGER NOT NULL,
		blackjacks INTEGER NOT NULL,
		busts INTEGER NOT NULL,
		surrenders INTEGER NOT NULL,
		splits INTEGER NOT NULL,
		double_downs INTEGER NOT NULL,
		insurances INTEGER NOT NULL,
		decisions INTEGER NOT NULL,
		correct_moves INTEGER NOT NULL,
		total_bet INTEGER NOT NULL,
		net_result INTEGER NOT NULL,
		last_updated TIMESTAMP NOT NULL
	)`
)

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Ensure the directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	// Open the database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Create tables
	for _, schema := range []string{createRoundsTableSQL, createStatisticsTableSQL} {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("error creating tables: %w", err)
		}
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveRound stores a round record for a session
func (r *SQLiteRepository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	dealerJSON, err := json.Marshal(record.DealerCards)
	if err != nil {
		return fmt.Errorf("failed to marshal dealer cards: %w", err)
	}
	handsJSON, err := json.Marshal(record.Hands)
	if err != nil {
		return fmt.Errorf("failed to marshal hands: %w", err)
	}

	query := `
		INSERT INTO rounds (id, session_id, completed_at, dealer_cards, dealer_total, running_count, true_count, hands)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		record.ID, record.SessionID, record.CompletedAt,
		dealerJSON, record.DealerTotal, record.RunningCount, record.TrueCount, handsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}
	return nil
}

// GetSessionRounds retrieves the most recent round records for a session
func (r *SQLiteRepository) GetSessionRounds(ctx context.Context, sessionID string, limit int) ([]*entities.RoundRecord, error) {
	query := `
		SELECT id, session_id, completed_at, dealer_cards, dealer_total, running_count, true_count, hands
		FROM rounds
		WHERE session_id = ?
		ORDER BY completed_at DESC
		LIMIT ?`

	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	var records []*entities.RoundRecord
	for rows.Next() {
		var record entities.RoundRecord
		var dealerJSON, handsJSON []byte
		if err := rows.Scan(
			&record.ID, &record.SessionID, &record.CompletedAt,
			&dealerJSON, &record.DealerTotal, &record.RunningCount, &record.TrueCount, &handsJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		if err := json.Unmarshal(dealerJSON, &record.DealerCards); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dealer cards: %w", err)
		}
		if err := json.Unmarshal(handsJSON, &record.Hands); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hands: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rounds: %w", err)
	}
	return records, nil
}

// SaveStatistics upserts aggregate statistics for a session
func (r *SQLiteRepository) SaveStatistics(ctx context.Context, stats *entities.SessionStatistics) error {
	query := `
		INSERT INTO session_statistics (
			session_id, hands_played, wins, losses, pushes, blackjacks, busts,
			surrenders, splits, double_downs, insurances, decisions,
			correct_moves, total_bet, net_result, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			hands_played = excluded.hands_played,
			wins = excluded.wins,
			losses = excluded.losses,
			pushes = excluded.pushes,
			blackjacks = excluded.blackjacks,
			busts = excluded.busts,
			surrenders = excluded.surrenders,
			splits = excluded.splits,
			double_downs = excluded.double_downs,
			insurances = excluded.insurances,
			decisions = excluded.decisions,
			correct_moves = excluded.correct_moves,
			total_bet = excluded.total_bet,
			net_result = excluded.net_result,
			last_updated = excluded.last_updated`

	_, err := r.db.ExecContext(ctx, query,
		stats.SessionID, stats.HandsPlayed, stats.Wins, stats.Losses, stats.Pushes,
		stats.Blackjacks, stats.Busts, stats.Surrenders, stats.Splits,
		stats.DoubleDowns, stats.Insurances, stats.Decisions, stats.CorrectMoves,
		stats.TotalBet, stats.NetResult, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save statistics: %w", err)
	}
	return nil
}

// GetStatistics retrieves statistics for a session
func (r *SQLiteRepository) GetStatistics(ctx context.Context, sessionID string) (*entities.SessionStatistics, error) {
	query := `
		SELECT session_id, hands_played, wins, losses, pushes, blackjacks, busts,
		       surrenders, splits, double_downs, insurances, decisions,
		       correct_moves, total_bet, net_result, last_updated
		FROM session_statistics
		WHERE session_id = ?`

	var stats entities.SessionStatistics
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&stats.SessionID, &stats.HandsPlayed, &stats.Wins, &stats.Losses, &stats.Pushes,
		&stats.Blackjacks, &stats.Busts, &stats.Surrenders, &stats.Splits,
		&stats.DoubleDowns, &stats.Insurances, &stats.Decisions, &stats.CorrectMoves,
		&stats.TotalBet, &stats.NetResult, &stats.LastUpdated,
	)

	if err == sql.ErrNoRows {
		// Return empty statistics if not found
		return &entities.SessionStatistics{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}
	return &stats, nil
}

// ListStatistics retrieves statistics for all sessions
func (r *SQLiteRepository) ListStatistics(ctx context.Context) ([]*entities.SessionStatistics, error) {
	query := `
		SELECT session_id, hands_played, wins, losses, pushes, blackjacks, busts,
		       surrenders, splits, double_downs, insurances, decisions,
		       correct_moves, total_bet, net_result, last_updated
		FROM session_statistics
		ORDER BY last_updated DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer rows.Close()

	var all []*entities.SessionStatistics
	for rows.Next() {
		var stats entities.SessionStatistics
		if err := rows.Scan(
			&stats.SessionID, &stats.HandsPlayed, &stats.Wins, &stats.Losses, &stats.Pushes,
			&stats.Blackjacks, &stats.Busts, &stats.Surrenders, &stats.Splits,
			&stats.DoubleDowns, &stats.Insurances, &stats.Decisions, &stats.CorrectMoves,
			&stats.TotalBet, &stats.NetResult, &stats.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan statistics: %w", err)
		}
		all = append(all, &stats)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statistics: %w", err)
	}
	return all, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
