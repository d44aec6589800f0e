package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFMPProvider(t *testing.T) {
	t.Run("parses a quote", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/RELIANCE.NS", r.URL.Path)
			assert.Equal(t, "demo", r.URL.Query().Get("apikey"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"symbol":"RELIANCE.NS","price":2954.35,"volume":7042382}]`))
		}))
		defer srv.Close()

		provider := NewFMPProviderWithBaseURL(srv.URL, "demo")
		price, err := provider.Price(context.Background(), "RELIANCE.NS")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(2954.35).Equal(price), "price %s", price)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		provider := NewFMPProviderWithBaseURL(srv.URL, "demo")
		_, err := provider.Price(context.Background(), "TCS.NS")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("empty payload is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		provider := NewFMPProviderWithBaseURL(srv.URL, "demo")
		_, err := provider.Price(context.Background(), "INFY.NS")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no quote returned")
	})

	t.Run("zero price is rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"symbol":"INFY.NS","price":0,"volume":0}]`))
		}))
		defer srv.Close()

		provider := NewFMPProviderWithBaseURL(srv.URL, "demo")
		_, err := provider.Price(context.Background(), "INFY.NS")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-positive quote")
	})
}
