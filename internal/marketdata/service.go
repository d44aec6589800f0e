package marketdata

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/paisabuddy/paisabuddy/internal/models"
)

// PriceCache is the subset of the Redis cache the service needs; tests
// substitute an in-memory implementation.
type PriceCache interface {
	LastPrice(ctx context.Context, ticker string) (decimal.Decimal, bool, error)
	StorePrice(ctx context.Context, ticker string, price decimal.Decimal) error
}

// Service produces batch quotes with per-ticker failure isolation.
type Service struct {
	provider Provider
	cache    PriceCache
	log      *logrus.Logger
}

// NewService creates a quote service. cache may be nil, in which case no
// change figures are reported.
func NewService(provider Provider, cache PriceCache, log *logrus.Logger) *Service {
	return &Service{provider: provider, cache: cache, log: log}
}

// Quotes fetches prices for the requested instruments concurrently.
// A ticker whose fetch fails is dropped from the result; the batch never
// fails as a whole. The result is a subset of the request with no
// ordering guarantee.
func (s *Service) Quotes(ctx context.Context, instruments []models.Instrument) []models.Quote {
	quotes := make([]models.Quote, 0, len(instruments))

	var mu sync.Mutex
	var wg sync.WaitGroup
	failed := 0

	for _, inst := range instruments {
		wg.Add(1)
		go func(inst models.Instrument) {
			defer wg.Done()

			price, err := s.provider.Price(ctx, inst.Ticker)
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"ticker": inst.Ticker,
					"error":  err,
				}).Warn("quote fetch failed, dropping ticker from batch")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			quote := models.Quote{Ticker: inst.Ticker, Name: inst.Name, Price: price}
			if s.cache != nil {
				if prev, ok, err := s.cache.LastPrice(ctx, inst.Ticker); err != nil {
					s.log.WithFields(logrus.Fields{
						"ticker": inst.Ticker,
						"error":  err,
					}).Warn("failed to read previous quote")
				} else if ok {
					change := price.Sub(prev)
					quote.Change = &change
				}
				if err := s.cache.StorePrice(ctx, inst.Ticker, price); err != nil {
					s.log.WithFields(logrus.Fields{
						"ticker": inst.Ticker,
						"error":  err,
					}).Warn("failed to cache quote")
				}
			}

			mu.Lock()
			quotes = append(quotes, quote)
			mu.Unlock()
		}(inst)
	}
	wg.Wait()

	if failed > 0 {
		s.log.WithFields(logrus.Fields{
			"requested": len(instruments),
			"failed":    failed,
		}).Warn("quote batch completed with failures")
	}
	return quotes
}
