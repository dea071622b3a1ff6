package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DulinaPathirana/tradingview-notion-sync/internal/config"
	"github.com/DulinaPathirana/tradingview-notion-sync/internal/database"
	"github.com/DulinaPathirana/tradingview-notion-sync/internal/ledger"
	"github.com/DulinaPathirana/tradingview-notion-sync/internal/logger"
	"github.com/DulinaPathirana/tradingview-notion-sync/internal/matcher"
	"github.com/DulinaPathirana/tradingview-notion-sync/internal/notion"
	"github.com/DulinaPathirana/tradingview-notion-sync/internal/syncer"
	"go.uber.org/zap"
)

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		panic(fmt.Sprintf("could not load config: %v", err))
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Required environment variables:")
		fmt.Fprintln(os.Stderr, "  NOTION_API_KEY     - Notion integration token")
		fmt.Fprintln(os.Stderr, "  NOTION_DATABASE_ID - Target Notion database ID")
		fmt.Fprintln(os.Stderr, "Optional:")
		fmt.Fprintln(os.Stderr, "  CSV_FILE_PATH      - TradingView export to import (default: trades.csv)")
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Initialize the sync journal
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open sync journal", zap.Error(err))
	}

	// Parse the TradingView export
	orders, err := ledger.NewParser(log).ParseFile(cfg.CSV.FilePath)
	if err != nil {
		log.Fatal("Failed to read ledger", zap.Error(err), zap.String("path", cfg.CSV.FilePath))
	}
	if len(orders) == 0 {
		log.Info("No filled orders found in CSV, nothing to do")
		return
	}

	// Match buys and sells into round-trip trades
	trades := matcher.MatchAll(matcher.Partition(orders))
	if len(trades) == 0 {
		log.Info("No complete trades found")
		return
	}
	log.Info("Matched complete trades", zap.Int("count", len(trades)))

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, stopping sync...")
		cancel()
	}()

	// Report trades to Notion
	client := notion.NewClient(&cfg.Notion, log)
	summary := syncer.NewReporter(log, client, db).Run(ctx, trades)

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
