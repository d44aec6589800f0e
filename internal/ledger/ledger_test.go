package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisabuddy/paisabuddy/internal/models"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestBuy(t *testing.T) {
	t.Run("first purchase opens a holding", func(t *testing.T) {
		snap := models.Snapshot{Cash: d(50000)}

		next, err := Buy(snap, "RELIANCE.NS", "Reliance Industries", d(2800), 10)
		require.NoError(t, err)

		require.Len(t, next.Holdings, 1)
		h := next.Holdings[0]
		assert.Equal(t, "RELIANCE.NS", h.Ticker)
		assert.Equal(t, "Reliance Industries", h.Name)
		assert.Equal(t, int64(10), h.Quantity)
		assert.True(t, d(2800).Equal(h.AvgPrice), "avg price %s", h.AvgPrice)
		assert.True(t, d(22000).Equal(next.Cash), "cash %s", next.Cash)
	})

	t.Run("repeat purchase blends the cost basis", func(t *testing.T) {
		snap := models.Snapshot{Cash: d(50000)}
		snap, err := Buy(snap, "RELIANCE.NS", "Reliance Industries", d(2800), 10)
		require.NoError(t, err)

		next, err := Buy(snap, "RELIANCE.NS", "Reliance Industries", d(3000), 5)
		require.NoError(t, err)

		require.Len(t, next.Holdings, 1)
		h := next.Holdings[0]
		assert.Equal(t, int64(15), h.Quantity)
		// (2800*10 + 3000*5) / 15
		assert.InDelta(t, 2866.67, h.AvgPrice.InexactFloat64(), 0.01)
		assert.True(t, d(7000).Equal(next.Cash), "cash %s", next.Cash)
	})

	t.Run("other tickers are untouched", func(t *testing.T) {
		snap := models.Snapshot{
			Holdings: []models.Holding{
				{Ticker: "TCS.NS", Name: "Tata Consultancy", Quantity: 5, AvgPrice: d(3500)},
			},
			Cash: d(50000),
		}

		next, err := Buy(snap, "INFY.NS", "Infosys", d(1630), 2)
		require.NoError(t, err)

		require.Len(t, next.Holdings, 2)
		assert.Equal(t, int64(5), next.Holdings[0].Quantity)
		assert.True(t, d(3500).Equal(next.Holdings[0].AvgPrice))
	})

	t.Run("insufficient funds rejects without mutation", func(t *testing.T) {
		snap := models.Snapshot{Cash: d(1000)}

		_, err := Buy(snap, "RELIANCE.NS", "Reliance Industries", d(2800), 1)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Empty(t, snap.Holdings)
		assert.True(t, d(1000).Equal(snap.Cash))
	})

	t.Run("cost exactly equal to cash is allowed", func(t *testing.T) {
		snap := models.Snapshot{Cash: d(2800)}

		next, err := Buy(snap, "RELIANCE.NS", "Reliance Industries", d(2800), 1)
		require.NoError(t, err)
		assert.True(t, next.Cash.IsZero(), "cash %s", next.Cash)
	})

	t.Run("zero and negative quantity are validation errors", func(t *testing.T) {
		snap := models.Snapshot{Cash: d(50000)}

		_, err := Buy(snap, "RELIANCE.NS", "Reliance Industries", d(2800), 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = Buy(snap, "RELIANCE.NS", "Reliance Industries", d(2800), -3)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("negative price is a validation error", func(t *testing.T) {
		snap := models.Snapshot{Cash: d(50000)}

		_, err := Buy(snap, "RELIANCE.NS", "Reliance Industries", d(-1), 1)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestSell(t *testing.T) {
	base := func() models.Snapshot {
		return models.Snapshot{
			Holdings: []models.Holding{
				{Ticker: "TCS.NS", Name: "Tata Consultancy", Quantity: 5, AvgPrice: d(3500)},
			},
			Cash: d(1000),
		}
	}

	t.Run("partial sale keeps the cost basis", func(t *testing.T) {
		next, err := Sell(base(), "TCS.NS", d(3600), 2)
		require.NoError(t, err)

		require.Len(t, next.Holdings, 1)
		h := next.Holdings[0]
		assert.Equal(t, int64(3), h.Quantity)
		assert.True(t, d(3500).Equal(h.AvgPrice), "avg price %s", h.AvgPrice)
		assert.True(t, d(8200).Equal(next.Cash), "cash %s", next.Cash)
	})

	t.Run("full sale removes the holding", func(t *testing.T) {
		next, err := Sell(base(), "TCS.NS", d(3600), 5)
		require.NoError(t, err)

		assert.Empty(t, next.Holdings)
		assert.True(t, d(19000).Equal(next.Cash), "cash %s", next.Cash)
	})

	t.Run("unknown ticker rejects without mutation", func(t *testing.T) {
		snap := models.Snapshot{Cash: d(1000)}

		_, err := Sell(snap, "INFY.NS", d(1630), 1)
		assert.ErrorIs(t, err, ErrNoSuchHolding)
		assert.Empty(t, snap.Holdings)
		assert.True(t, d(1000).Equal(snap.Cash))
	})

	t.Run("overselling rejects without mutation", func(t *testing.T) {
		snap := base()

		_, err := Sell(snap, "TCS.NS", d(3600), 6)
		assert.ErrorIs(t, err, ErrInsufficientQuantity)
		assert.Equal(t, int64(5), snap.Holdings[0].Quantity)
		assert.True(t, d(1000).Equal(snap.Cash))
	})

	t.Run("zero and negative quantity are validation errors", func(t *testing.T) {
		_, err := Sell(base(), "TCS.NS", d(3600), 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = Sell(base(), "TCS.NS", d(3600), -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("selling at zero price only shrinks the position", func(t *testing.T) {
		next, err := Sell(base(), "TCS.NS", decimal.Zero, 2)
		require.NoError(t, err)
		assert.True(t, d(1000).Equal(next.Cash))
		assert.Equal(t, int64(3), next.Holdings[0].Quantity)
	})
}

func TestInputSnapshotNeverMutated(t *testing.T) {
	snap := models.Snapshot{
		Holdings: []models.Holding{
			{Ticker: "TCS.NS", Name: "Tata Consultancy", Quantity: 5, AvgPrice: d(3500)},
		},
		Cash: d(10000),
	}

	_, err := Buy(snap, "TCS.NS", "Tata Consultancy", d(3600), 1)
	require.NoError(t, err)
	_, err = Sell(snap, "TCS.NS", d(3600), 5)
	require.NoError(t, err)

	require.Len(t, snap.Holdings, 1)
	assert.Equal(t, int64(5), snap.Holdings[0].Quantity)
	assert.True(t, d(3500).Equal(snap.Holdings[0].AvgPrice))
	assert.True(t, d(10000).Equal(snap.Cash))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ErrInvalidQuantity))
	assert.True(t, IsValidation(ErrInvalidPrice))
	assert.False(t, IsValidation(ErrInsufficientFunds))
	assert.False(t, IsValidation(ErrNoSuchHolding))
	assert.False(t, IsValidation(ErrInsufficientQuantity))
}
