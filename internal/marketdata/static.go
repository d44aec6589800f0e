package marketdata

import (
	"context"

	"github.com/shopspring/decimal"
)

// staticBasePrices are the demo prices used when no quote API is
// configured. Unknown tickers fall back to defaultStaticPrice.
var staticBasePrices = map[string]float64{
	"RELIANCE.NS":  2950,
	"TCS.NS":       3850,
	"HDFCBANK.NS":  1680,
	"INFY.NS":      1630,
	"ICICIBANK.NS": 1150,
}

const defaultStaticPrice = 1000

// StaticProvider serves a fixed price table. It exists so the simulator
// works offline and so demos are reproducible; prices are deterministic
// rather than jittered.
type StaticProvider struct{}

// NewStaticProvider creates a provider backed by the demo price table.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Price returns the table price for ticker.
func (p *StaticProvider) Price(_ context.Context, ticker string) (decimal.Decimal, error) {
	if base, ok := staticBasePrices[ticker]; ok {
		return decimal.NewFromFloat(base), nil
	}
	return decimal.NewFromInt(defaultStaticPrice), nil
}
