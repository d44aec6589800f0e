package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultFMPBaseURL is the financialmodelingprep quote endpoint.
const DefaultFMPBaseURL = "https://financialmodelingprep.com/api/v3/quote-short"

// Provider returns the current market price for a single ticker.
type Provider interface {
	Price(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// FMPProvider fetches quotes from the financialmodelingprep API.
type FMPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewFMPProvider creates a provider against the public FMP endpoint.
func NewFMPProvider(apiKey string) *FMPProvider {
	return NewFMPProviderWithBaseURL(DefaultFMPBaseURL, apiKey)
}

// NewFMPProviderWithBaseURL creates a provider against a custom endpoint,
// used by tests.
func NewFMPProviderWithBaseURL(baseURL, apiKey string) *FMPProvider {
	return &FMPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type fmpQuote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// Price returns the latest quote for ticker.
func (p *FMPProvider) Price(ctx context.Context, ticker string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/%s?apikey=%s", p.baseURL, url.PathEscape(ticker), url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("quote request for %s returned status %d", ticker, resp.StatusCode)
	}

	var quotes []fmpQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if len(quotes) == 0 {
		return decimal.Zero, fmt.Errorf("no quote returned for %s", ticker)
	}

	price := decimal.NewFromFloat(quotes[0].Price)
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive quote for %s", ticker)
	}
	return price, nil
}
