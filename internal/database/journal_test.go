package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisabuddy/paisabuddy/internal/models"
)

func TestTradeJournal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	entry := func(eventID, side string, quantity int64, price float64) *models.JournalEntry {
		p := decimal.NewFromFloat(price)
		return &models.JournalEntry{
			EventID:   eventID,
			SessionID: "sess-1",
			Ticker:    "RELIANCE.NS",
			Name:      "Reliance Industries",
			Side:      side,
			Quantity:  quantity,
			Price:     p,
			Total:     p.Mul(decimal.NewFromInt(quantity)),
		}
	}

	t.Run("CreateJournalEntry assigns ID and timestamps", func(t *testing.T) {
		testDB.TruncateAll(t)

		e := entry("evt-1", models.TradeSideBuy, 10, 2800)
		require.NoError(t, testDB.CreateJournalEntry(e))
		assert.NotZero(t, e.ID)
		assert.False(t, e.ExecutedAt.IsZero())
		assert.False(t, e.CreatedAt.IsZero())
	})

	t.Run("JournalEntryExists detects duplicates", func(t *testing.T) {
		testDB.TruncateAll(t)

		exists, err := testDB.JournalEntryExists("evt-1")
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, testDB.CreateJournalEntry(entry("evt-1", models.TradeSideBuy, 10, 2800)))

		exists, err = testDB.JournalEntryExists("evt-1")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("GetJournalBySession orders newest first", func(t *testing.T) {
		testDB.TruncateAll(t)

		older := entry("evt-1", models.TradeSideBuy, 10, 2800)
		older.ExecutedAt = time.Now().Add(-time.Hour)
		require.NoError(t, testDB.CreateJournalEntry(older))
		require.NoError(t, testDB.CreateJournalEntry(entry("evt-2", models.TradeSideSell, 4, 2900)))

		entries, err := testDB.GetJournalBySession("sess-1", 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "evt-2", entries[0].EventID)
		assert.Equal(t, "evt-1", entries[1].EventID)

		entries, err = testDB.GetJournalBySession("sess-1", 1)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		entries, err = testDB.GetJournalBySession("other", 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("GetJournalStats aggregates buys and sells", func(t *testing.T) {
		testDB.TruncateAll(t)

		require.NoError(t, testDB.CreateJournalEntry(entry("evt-1", models.TradeSideBuy, 10, 2800)))
		require.NoError(t, testDB.CreateJournalEntry(entry("evt-2", models.TradeSideBuy, 5, 3000)))
		require.NoError(t, testDB.CreateJournalEntry(entry("evt-3", models.TradeSideSell, 4, 2900)))

		stats, err := testDB.GetJournalStats("sess-1")
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalTrades)
		assert.Equal(t, 2, stats.Buys)
		assert.Equal(t, 1, stats.Sells)
		assert.True(t, decimal.NewFromInt(43000).Equal(stats.Invested), "invested %s", stats.Invested)
		assert.True(t, decimal.NewFromInt(11600).Equal(stats.Proceeds), "proceeds %s", stats.Proceeds)
	})
}
