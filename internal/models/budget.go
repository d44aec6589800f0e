package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetEntry is a single recorded expense.
type BudgetEntry struct {
	ID        int             `json:"id"`
	SessionID string          `json:"session_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	SpentAt   time.Time       `json:"spent_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// BudgetTarget is the monthly spending target for one category.
type BudgetTarget struct {
	SessionID string          `json:"session_id"`
	Category  string          `json:"category"`
	Monthly   decimal.Decimal `json:"monthly"`
}

// BudgetProfile holds the per-session income and savings goal.
type BudgetProfile struct {
	SessionID   string          `json:"session_id"`
	Income      decimal.Decimal `json:"income"`
	SavingsGoal decimal.Decimal `json:"savings_goal"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CategorySummary aggregates spending against the target for one category.
type CategorySummary struct {
	Category string          `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
	Target   decimal.Decimal `json:"target"`
}

// BudgetSummary is the overview the budgeting tracker renders: income,
// total spent, the amount saved and per-category breakdown.
type BudgetSummary struct {
	Income      decimal.Decimal   `json:"income"`
	TotalSpent  decimal.Decimal   `json:"total_spent"`
	Saved       decimal.Decimal   `json:"saved"`
	SavingsGoal decimal.Decimal   `json:"savings_goal"`
	Categories  []CategorySummary `json:"categories"`
}
