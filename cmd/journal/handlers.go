package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DulinaPathirana/tradingview-notion-sync/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log *zap.Logger
	db  *gorm.DB
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, db *gorm.DB) *APIHandler {
	return &APIHandler{log: log, db: db}
}

// StatusHandler reports the journal size.
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	var count int64
	if err := h.db.Model(&models.SyncRecord{}).Count(&count).Error; err != nil {
		h.log.Error("Failed to count sync records", zap.Error(err))
		http.Error(w, "Failed to get status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":        "ok",
		"synced_trades": count,
	})
}

// TradesHandler returns all synced trades, most recent entry first.
func (h *APIHandler) TradesHandler(w http.ResponseWriter, r *http.Request) {
	var records []models.SyncRecord
	if err := h.db.Order("entry_date desc").Find(&records).Error; err != nil {
		h.log.Error("Failed to get trades from journal", zap.Error(err))
		http.Error(w, "Failed to get trades", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// StatsDetail holds calculated statistics for a given period.
type StatsDetail struct {
	TotalTrades int64   `json:"total_trades"`
	Wins        int64   `json:"wins"`
	WinRate     float64 `json:"win_rate"`
	TotalPnL    float64 `json:"total_pnl"`
}

// StatsResponse is the structure for the /api/stats endpoint.
type StatsResponse struct {
	Last30Days StatsDetail `json:"last_30_days"`
	AllTime    StatsDetail `json:"all_time"`
}

// StatsHandler calculates and returns trade statistics from the journal.
func (h *APIHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	var records []models.SyncRecord
	if err := h.db.Find(&records).Error; err != nil {
		h.log.Error("Failed to get trades for statistics", zap.Error(err))
		http.Error(w, "Failed to calculate statistics", http.StatusInternalServerError)
		return
	}

	since := time.Now().AddDate(0, 0, -30)

	var recent, allTime StatsDetail
	for _, rec := range records {
		allTime.TotalTrades++
		if rec.Result == string(models.ResultWin) {
			allTime.Wins++
		}
		allTime.TotalPnL += rec.PnLDollars

		if rec.ExitDate.After(since) {
			recent.TotalTrades++
			if rec.Result == string(models.ResultWin) {
				recent.Wins++
			}
			recent.TotalPnL += rec.PnLDollars
		}
	}

	if allTime.TotalTrades > 0 {
		allTime.WinRate = float64(allTime.Wins) / float64(allTime.TotalTrades)
	}
	if recent.TotalTrades > 0 {
		recent.WinRate = float64(recent.Wins) / float64(recent.TotalTrades)
	}

	resp := StatsResponse{Last30Days: recent, AllTime: allTime}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
