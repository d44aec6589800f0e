package models

import "github.com/shopspring/decimal"

// Instrument identifies a tradable instrument in a quote request.
type Instrument struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// Quote is a priced instrument returned by the market data service.
// Change is the difference against the previously observed price; it is
// nil when no prior observation exists for the ticker.
type Quote struct {
	Ticker string           `json:"ticker"`
	Name   string           `json:"name"`
	Price  decimal.Decimal  `json:"price"`
	Change *decimal.Decimal `json:"change,omitempty"`
}
