package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding represents a position in one tradable instrument.
// JSON field names match the payload round-tripped by the app client.
type Holding struct {
	Ticker   string          `json:"ticker"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	AvgPrice decimal.Decimal `json:"avgPrice"`
}

// Snapshot is an immutable view of a portfolio at one instant:
// the holdings collection and the available cash balance.
type Snapshot struct {
	Holdings []Holding       `json:"holdings"`
	Cash     decimal.Decimal `json:"cash"`
}

// PortfolioSession is a persisted snapshot with an optimistic-concurrency
// version. Writers must present the version they read.
type PortfolioSession struct {
	ID        string    `json:"id"`
	Snapshot  Snapshot  `json:"snapshot"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
