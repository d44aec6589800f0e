package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paisabuddy/paisabuddy/internal/models"
)

// ErrStaleSnapshot is returned when a snapshot write presents a version
// that no longer matches the stored session. The caller must re-read and
// retry with the current snapshot.
var ErrStaleSnapshot = errors.New("stale snapshot")

// CreateSession stores a new portfolio session at version 1.
func (db *DB) CreateSession(id string, snap models.Snapshot) error {
	holdings, err := json.Marshal(snap.Holdings)
	if err != nil {
		return fmt.Errorf("failed to encode holdings: %w", err)
	}

	query := `
		INSERT INTO portfolio_sessions (id, holdings, cash, version, created_at, updated_at)
		VALUES ($1, $2, $3, 1, $4, $4)
	`
	now := time.Now()
	if _, err := db.conn.Exec(query, id, holdings, snap.Cash, now); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a portfolio session by ID.
func (db *DB) GetSession(id string) (*models.PortfolioSession, error) {
	query := `
		SELECT id, holdings, cash, version, created_at, updated_at
		FROM portfolio_sessions
		WHERE id = $1
	`
	var s models.PortfolioSession
	var holdings []byte

	err := db.conn.QueryRow(query, id).Scan(
		&s.ID, &holdings, &s.Snapshot.Cash, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := json.Unmarshal(holdings, &s.Snapshot.Holdings); err != nil {
		return nil, fmt.Errorf("failed to decode holdings: %w", err)
	}
	return &s, nil
}

// SaveSnapshot replaces the session snapshot, but only when the stored
// version still matches expectedVersion. It returns the new version, or
// ErrStaleSnapshot when another writer got there first.
func (db *DB) SaveSnapshot(id string, snap models.Snapshot, expectedVersion int64) (int64, error) {
	holdings, err := json.Marshal(snap.Holdings)
	if err != nil {
		return 0, fmt.Errorf("failed to encode holdings: %w", err)
	}

	query := `
		UPDATE portfolio_sessions
		SET holdings = $2, cash = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $5
		RETURNING version
	`
	var version int64
	err = db.conn.QueryRow(query, id, holdings, snap.Cash, time.Now(), expectedVersion).Scan(&version)
	if err == sql.ErrNoRows {
		// Either the session is gone or the version moved on. Distinguish
		// so callers can 404 missing sessions instead of retrying forever.
		var exists bool
		if checkErr := db.conn.QueryRow(
			`SELECT EXISTS (SELECT 1 FROM portfolio_sessions WHERE id = $1)`, id,
		).Scan(&exists); checkErr != nil {
			return 0, fmt.Errorf("failed to save snapshot: %w", checkErr)
		}
		if !exists {
			return 0, fmt.Errorf("session not found: %s", id)
		}
		return 0, ErrStaleSnapshot
	}
	if err != nil {
		return 0, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return version, nil
}

// DeleteSession removes a portfolio session.
func (db *DB) DeleteSession(id string) error {
	result, err := db.conn.Exec(`DELETE FROM portfolio_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}
