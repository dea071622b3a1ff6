package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DulinaPathirana/tradingview-notion-sync/internal/config"
	"github.com/DulinaPathirana/tradingview-notion-sync/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// setupTestServer creates a new test server and a Client configured to use it.
func setupTestServer(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)

	client := resty.New().
		SetBaseURL(server.URL).
		SetAuthToken("test_api_key").
		SetHeader("Notion-Version", notionVersion)
	logger := zap.NewNop() // Use a no-op logger for tests

	c := &Client{
		client:     client,
		databaseID: "test_database_id",
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Inf, 1), // Allow all requests in tests
	}

	return c, server
}

func testTrade() *models.Trade {
	buy := &models.Order{
		Symbol:      "AAPL",
		Side:        models.SideBuy,
		Qty:         10,
		FillPrice:   100.0,
		ClosingTime: time.Date(2025, 10, 30, 14, 22, 10, 0, time.UTC),
	}
	sell := &models.Order{
		Symbol:      "AAPL",
		Side:        models.SideSell,
		Qty:         10,
		FillPrice:   110.0,
		ClosingTime: time.Date(2025, 10, 30, 15, 10, 45, 0, time.UTC),
	}
	return &models.Trade{Symbol: "AAPL", Buy: buy, Sell: sell, MatchedQty: 10}
}

func TestCreatePage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		var received Page
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/pages", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer test_api_key", r.Header.Get("Authorization"))
			assert.Equal(t, notionVersion, r.Header.Get("Notion-Version"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"id": "page-123"}`))
		})

		c, server := setupTestServer(handler)
		defer server.Close()

		// Act
		pageID, err := c.CreatePage(context.Background(), testTrade())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "page-123", pageID)
		assert.Equal(t, "test_database_id", received.Parent.DatabaseID)
		assert.Equal(t, "AAPL - 2025-10-30", received.Properties["Name"].Title[0].Text.Content)
		assert.Equal(t, "Long", received.Properties["Direction"].Select.Name)
		assert.Equal(t, "Win", received.Properties["Result"].Select.Name)
		assert.Equal(t, 100.0, *received.Properties["P/L ($)"].Number)
	})

	t.Run("APIError", func(t *testing.T) {
		// Arrange: a validation error is not retryable.
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"object": "error", "code": "validation_error", "message": "Date is expected"}`))
		})

		c, server := setupTestServer(handler)
		defer server.Close()

		// Act
		pageID, err := c.CreatePage(context.Background(), testTrade())

		// Assert
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create page")
		assert.Contains(t, err.Error(), "request failed")
		assert.Empty(t, pageID)
	})

	t.Run("RetriesOnTooManyRequests", func(t *testing.T) {
		// Arrange: first attempt is rate limited, second succeeds.
		attempts := 0
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts == 1 {
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": "page-456"}`))
		})

		c, server := setupTestServer(handler)
		defer server.Close()

		// Act
		pageID, err := c.CreatePage(context.Background(), testTrade())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "page-456", pageID)
		assert.Equal(t, 2, attempts)
	})
}

func TestNewClient(t *testing.T) {
	cfg := &config.Notion{
		APIKey:         "secret",
		DatabaseID:     "db-1",
		RateLimit:      3,
		RateLimitBurst: 1,
	}
	logger := zap.NewNop()

	c := NewClient(cfg, logger)

	assert.NotNil(t, c)
	assert.Equal(t, "db-1", c.databaseID)
	assert.NotNil(t, c.limiter)
}
