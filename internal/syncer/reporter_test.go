package syncer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DulinaPathirana/tradingview-notion-sync/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// mockClient is a test double for the Notion client.
type mockClient struct {
	created     int
	failSymbols map[string]bool
}

func (m *mockClient) CreatePage(ctx context.Context, trade *models.Trade) (string, error) {
	if m.failSymbols[trade.Symbol] {
		return "", errors.New("boom")
	}
	m.created++
	return fmt.Sprintf("page-%d", m.created), nil
}

func setupJournal(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.SyncRecord{}))
	return db
}

func makeTrade(symbol string, entryPrice, exitPrice, qty float64) *models.Trade {
	return &models.Trade{
		Symbol: symbol,
		Buy: &models.Order{
			Symbol:      symbol,
			Side:        models.SideBuy,
			Qty:         qty,
			FillPrice:   entryPrice,
			ClosingTime: time.Date(2025, 10, 30, 10, 0, 0, 0, time.UTC),
		},
		Sell: &models.Order{
			Symbol:      symbol,
			Side:        models.SideSell,
			Qty:         qty,
			FillPrice:   exitPrice,
			ClosingTime: time.Date(2025, 10, 30, 11, 0, 0, 0, time.UTC),
		},
		MatchedQty: qty,
	}
}

func TestRun(t *testing.T) {
	t.Run("SyncsAllTradesAndRecordsJournal", func(t *testing.T) {
		db := setupJournal(t)
		client := &mockClient{}
		reporter := NewReporter(zap.NewNop(), client, db)

		trades := []*models.Trade{
			makeTrade("AAPL", 100, 110, 10),
			makeTrade("TSLA", 250, 249.99, 3),
		}

		summary := reporter.Run(context.Background(), trades)

		assert.Equal(t, 2, summary.Synced)
		assert.Equal(t, 0, summary.Failed)

		var records []models.SyncRecord
		assert.NoError(t, db.Find(&records).Error)
		assert.Len(t, records, 2)
		assert.Equal(t, "AAPL", records[0].Symbol)
		assert.Equal(t, "page-1", records[0].NotionPageID)
		assert.Equal(t, 100.0, records[0].PnLDollars)
		assert.Equal(t, "Win", records[0].Result)
		// Journal stores the same rounded values that went to Notion.
		assert.InDelta(t, -0.03, records[1].PnLDollars, 1e-9)
		assert.Equal(t, "Loss", records[1].Result)
	})

	t.Run("FailureOnOneTradeDoesNotStopTheRun", func(t *testing.T) {
		db := setupJournal(t)
		client := &mockClient{failSymbols: map[string]bool{"TSLA": true}}
		reporter := NewReporter(zap.NewNop(), client, db)

		trades := []*models.Trade{
			makeTrade("AAPL", 100, 110, 10),
			makeTrade("TSLA", 250, 260, 3),
			makeTrade("MSFT", 400, 395, 2),
		}

		summary := reporter.Run(context.Background(), trades)

		assert.Equal(t, 2, summary.Synced)
		assert.Equal(t, 1, summary.Failed)

		var records []models.SyncRecord
		assert.NoError(t, db.Find(&records).Error)
		assert.Len(t, records, 2)
	})

	t.Run("CancelledContextStopsEarly", func(t *testing.T) {
		db := setupJournal(t)
		client := &mockClient{}
		reporter := NewReporter(zap.NewNop(), client, db)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		summary := reporter.Run(ctx, []*models.Trade{makeTrade("AAPL", 100, 110, 10)})

		assert.Equal(t, 0, summary.Synced)
		assert.Equal(t, 0, summary.Failed)
		assert.Equal(t, 0, client.created)
	})

	t.Run("NoTrades", func(t *testing.T) {
		db := setupJournal(t)
		reporter := NewReporter(zap.NewNop(), &mockClient{}, db)

		summary := reporter.Run(context.Background(), nil)

		assert.Equal(t, 0, summary.Synced)
		assert.Equal(t, 0, summary.Failed)
	})
}
