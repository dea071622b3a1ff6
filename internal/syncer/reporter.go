package syncer

import (
	"context"
	"time"

	"github.com/DulinaPathirana/tradingview-notion-sync/internal/models"
	"github.com/DulinaPathirana/tradingview-notion-sync/internal/notion"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reporter pushes matched trades to Notion and records each success in the
// local sync journal.
type Reporter struct {
	logger *zap.Logger
	client notion.ClientInterface
	db     *gorm.DB
}

// Summary counts the outcome of one sync run.
type Summary struct {
	Synced int
	Failed int
}

// NewReporter creates a new Reporter.
func NewReporter(logger *zap.Logger, client notion.ClientInterface, db *gorm.DB) *Reporter {
	return &Reporter{
		logger: logger,
		client: client,
		db:     db,
	}
}

// Run reports trades one by one, in the order the matcher produced them.
// A failure on one trade is logged and counted but does not stop the run;
// only context cancellation does. Trade content never depends on reporting
// order, so a partial run can simply be re-run.
func (r *Reporter) Run(ctx context.Context, trades []*models.Trade) Summary {
	var summary Summary

	for _, trade := range trades {
		if ctx.Err() != nil {
			r.logger.Warn("Sync cancelled",
				zap.Int("synced", summary.Synced),
				zap.Int("remaining", len(trades)-summary.Synced-summary.Failed),
			)
			break
		}

		l := r.logger.With(
			zap.String("symbol", trade.Symbol),
			zap.Float64("pnl_dollars", notion.Round2(trade.PnLDollars())),
			zap.String("result", string(trade.Result())),
		)

		pageID, err := r.client.CreatePage(ctx, trade)
		if err != nil {
			l.Error("Failed to sync trade", zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Synced++
		l.Info("Synced trade", zap.String("page_id", pageID))

		record := models.SyncRecord{
			Symbol:       trade.Symbol,
			EntryPrice:   trade.EntryPrice(),
			ExitPrice:    trade.ExitPrice(),
			PositionSize: trade.PositionSize(),
			PnLDollars:   notion.Round2(trade.PnLDollars()),
			PnLPercent:   notion.Round2(trade.PnLPercent()),
			Result:       string(trade.Result()),
			EntryDate:    trade.EntryDate(),
			ExitDate:     trade.ExitDate(),
			NotionPageID: pageID,
			SyncedAt:     time.Now(),
		}
		if err := r.db.Create(&record).Error; err != nil {
			// The page already exists in Notion; losing the journal row is
			// not worth failing the trade over.
			l.Error("Failed to save sync record to journal", zap.Error(err))
		}
	}

	r.logger.Info("Sync run complete",
		zap.Int("synced", summary.Synced),
		zap.Int("failed", summary.Failed),
		zap.Int("total", len(trades)),
	)
	return summary
}
