package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisabuddy/paisabuddy/internal/models"
)

// CreateJournalEntry inserts a recorded trade.
func (db *DB) CreateJournalEntry(e *models.JournalEntry) error {
	query := `
		INSERT INTO trade_journal (
			event_id, session_id, ticker, name, side, quantity, price, total,
			executed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	now := time.Now()
	executedAt := e.ExecutedAt
	if executedAt.IsZero() {
		executedAt = now
	}

	err := db.conn.QueryRow(query,
		e.EventID, e.SessionID, e.Ticker, e.Name, e.Side, e.Quantity,
		e.Price, e.Total, executedAt, now,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	e.ExecutedAt = executedAt
	e.CreatedAt = now
	return nil
}

// JournalEntryExists reports whether an event has already been recorded.
func (db *DB) JournalEntryExists(eventID string) (bool, error) {
	var exists bool
	err := db.conn.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM trade_journal WHERE event_id = $1)`, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check journal entry: %w", err)
	}
	return exists, nil
}

// GetJournalBySession retrieves the most recent trades for a session.
func (db *DB) GetJournalBySession(sessionID string, limit int) ([]*models.JournalEntry, error) {
	query := `
		SELECT id, event_id, session_id, ticker, name, side, quantity, price, total,
		       executed_at, created_at
		FROM trade_journal
		WHERE session_id = $1
		ORDER BY executed_at DESC
		LIMIT $2
	`
	rows, err := db.conn.Query(query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		err := rows.Scan(
			&e.ID, &e.EventID, &e.SessionID, &e.Ticker, &e.Name, &e.Side,
			&e.Quantity, &e.Price, &e.Total, &e.ExecutedAt, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, nil
}

// JournalStats aggregates a session's trading activity.
type JournalStats struct {
	TotalTrades int             `json:"total_trades"`
	Buys        int             `json:"buys"`
	Sells       int             `json:"sells"`
	Invested    decimal.Decimal `json:"invested"`
	Proceeds    decimal.Decimal `json:"proceeds"`
}

// GetJournalStats returns aggregate trade statistics for a session.
func (db *DB) GetJournalStats(sessionID string) (*JournalStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_trades,
			COUNT(*) FILTER (WHERE side = 'BUY') AS buys,
			COUNT(*) FILTER (WHERE side = 'SELL') AS sells,
			COALESCE(SUM(total) FILTER (WHERE side = 'BUY'), 0) AS invested,
			COALESCE(SUM(total) FILTER (WHERE side = 'SELL'), 0) AS proceeds
		FROM trade_journal
		WHERE session_id = $1
	`
	var stats JournalStats
	err := db.conn.QueryRow(query, sessionID).Scan(
		&stats.TotalTrades, &stats.Buys, &stats.Sells, &stats.Invested, &stats.Proceeds,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get journal stats: %w", err)
	}
	return &stats, nil
}
