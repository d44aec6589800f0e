package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/paisabuddy/paisabuddy/internal/models"
)

// CreateBudgetEntry records an expense.
func (db *DB) CreateBudgetEntry(e *models.BudgetEntry) error {
	query := `
		INSERT INTO budget_entries (session_id, category, amount, note, spent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	now := time.Now()
	spentAt := e.SpentAt
	if spentAt.IsZero() {
		spentAt = now
	}

	err := db.conn.QueryRow(query,
		e.SessionID, e.Category, e.Amount, e.Note, spentAt, now,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create budget entry: %w", err)
	}

	e.SpentAt = spentAt
	e.CreatedAt = now
	return nil
}

// GetBudgetEntries retrieves the most recent expenses for a session.
func (db *DB) GetBudgetEntries(sessionID string, limit int) ([]*models.BudgetEntry, error) {
	query := `
		SELECT id, session_id, category, amount, note, spent_at, created_at
		FROM budget_entries
		WHERE session_id = $1
		ORDER BY spent_at DESC
		LIMIT $2
	`
	rows, err := db.conn.Query(query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.BudgetEntry
	for rows.Next() {
		var e models.BudgetEntry
		var note sql.NullString
		err := rows.Scan(&e.ID, &e.SessionID, &e.Category, &e.Amount, &note, &e.SpentAt, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget entry: %w", err)
		}
		if note.Valid {
			e.Note = note.String
		}
		entries = append(entries, &e)
	}
	return entries, nil
}

// UpsertBudgetTarget creates or replaces the monthly target for a category.
func (db *DB) UpsertBudgetTarget(t *models.BudgetTarget) error {
	query := `
		INSERT INTO budget_targets (session_id, category, monthly)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, category) DO UPDATE SET
			monthly = EXCLUDED.monthly
	`
	if _, err := db.conn.Exec(query, t.SessionID, t.Category, t.Monthly); err != nil {
		return fmt.Errorf("failed to upsert budget target: %w", err)
	}
	return nil
}

// UpsertBudgetProfile creates or replaces the income and savings goal.
func (db *DB) UpsertBudgetProfile(p *models.BudgetProfile) error {
	query := `
		INSERT INTO budget_profiles (session_id, income, savings_goal, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id) DO UPDATE SET
			income = EXCLUDED.income,
			savings_goal = EXCLUDED.savings_goal,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	if _, err := db.conn.Exec(query, p.SessionID, p.Income, p.SavingsGoal, now); err != nil {
		return fmt.Errorf("failed to upsert budget profile: %w", err)
	}
	p.UpdatedAt = now
	return nil
}

// GetBudgetSummary aggregates spending against targets for a session.
// Categories appear when they have either recorded spending or a target.
func (db *DB) GetBudgetSummary(sessionID string) (*models.BudgetSummary, error) {
	var summary models.BudgetSummary

	profileQuery := `
		SELECT income, savings_goal
		FROM budget_profiles
		WHERE session_id = $1
	`
	err := db.conn.QueryRow(profileQuery, sessionID).Scan(&summary.Income, &summary.SavingsGoal)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get budget profile: %w", err)
	}

	categoryQuery := `
		SELECT
			COALESCE(e.category, t.category) AS category,
			COALESCE(e.spent, 0) AS spent,
			COALESCE(t.monthly, 0) AS target
		FROM (
			SELECT category, SUM(amount) AS spent
			FROM budget_entries
			WHERE session_id = $1
			GROUP BY category
		) e
		FULL OUTER JOIN (
			SELECT category, monthly
			FROM budget_targets
			WHERE session_id = $1
		) t ON e.category = t.category
		ORDER BY category
	`
	rows, err := db.conn.Query(categoryQuery, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.CategorySummary
		if err := rows.Scan(&c.Category, &c.Spent, &c.Target); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		summary.TotalSpent = summary.TotalSpent.Add(c.Spent)
		summary.Categories = append(summary.Categories, c)
	}

	summary.Saved = summary.Income.Sub(summary.TotalSpent)
	return &summary, nil
}
