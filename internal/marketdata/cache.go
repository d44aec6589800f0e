package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Cache stores the last observed price per ticker in Redis. The previous
// observation is what the service diffs against to report a change.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a price cache with the given retention.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func quoteKey(ticker string) string {
	return "quote:" + ticker
}

// LastPrice returns the cached price for ticker, or false when none is
// cached.
func (c *Cache) LastPrice(ctx context.Context, ticker string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, quoteKey(ticker)).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to read cached quote: %w", err)
	}

	price, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("malformed cached quote for %s: %w", ticker, err)
	}
	return price, true, nil
}

// StorePrice records the latest observed price for ticker.
func (c *Cache) StorePrice(ctx context.Context, ticker string, price decimal.Decimal) error {
	if err := c.client.Set(ctx, quoteKey(ticker), price.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache quote: %w", err)
	}
	return nil
}
