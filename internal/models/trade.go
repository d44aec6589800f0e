package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade side constants
const (
	TradeSideBuy  = "BUY"
	TradeSideSell = "SELL"
)

// Event type published for every executed session trade
const EventTradeExecuted = "TRADE_EXECUTED"

// TradeEvent is the Kafka payload for an executed trade.
type TradeEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	SessionID string          `json:"session_id"`
	Ticker    string          `json:"ticker"`
	Name      string          `json:"name"`
	Side      string          `json:"side"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// JournalEntry is a recorded trade in the audit journal.
type JournalEntry struct {
	ID         int             `json:"id"`
	EventID    string          `json:"event_id"`
	SessionID  string          `json:"session_id"`
	Ticker     string          `json:"ticker"`
	Name       string          `json:"name"`
	Side       string          `json:"side"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	ExecutedAt time.Time       `json:"executed_at"`
	CreatedAt  time.Time       `json:"created_at"`
}
