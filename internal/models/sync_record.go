package models

import (
	"time"

	"gorm.io/gorm"
)

// SyncRecord is one successfully synced trade, persisted to the local journal.
// P/L values are stored rounded to two decimals, matching what was sent to
// Notion.
type SyncRecord struct {
	gorm.Model
	Symbol       string    `json:"symbol"`
	EntryPrice   float64   `json:"entry_price"`
	ExitPrice    float64   `json:"exit_price"`
	PositionSize float64   `json:"position_size"`
	PnLDollars   float64   `json:"pnl_dollars"`
	PnLPercent   float64   `json:"pnl_percent"`
	Result       string    `json:"result"`
	EntryDate    time.Time `json:"entry_date"`
	ExitDate     time.Time `json:"exit_date"`
	NotionPageID string    `json:"notion_page_id"`
	SyncedAt     time.Time `json:"synced_at"`
}
