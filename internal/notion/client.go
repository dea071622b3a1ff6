package notion

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/DulinaPathirana/tradingview-notion-sync/internal/config"
	"github.com/DulinaPathirana/tradingview-notion-sync/internal/models"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	baseURL       = "https://api.notion.com/v1"
	notionVersion = "2022-06-28"
)

// ClientInterface defines the interface for the Notion API client.
type ClientInterface interface {
	CreatePage(ctx context.Context, trade *models.Trade) (string, error)
}

// Client is a client for the Notion API.
// It implements the ClientInterface.
type Client struct {
	client     *resty.Client
	databaseID string
	logger     *zap.Logger
	limiter    *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new Notion API client.
func NewClient(cfg *config.Notion, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Notion-Version", notionVersion)

	// Notion documents an integration limit of ~3 requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:     client,
		databaseID: cfg.DatabaseID,
		logger:     logger,
		limiter:    limiter,
	}
}

// pageResponse is the subset of Notion's create-page response we use.
type pageResponse struct {
	ID string `json:"id"`
}

// CreatePage creates one database page for a trade and returns the new
// page's ID.
func (c *Client) CreatePage(ctx context.Context, trade *models.Trade) (string, error) {
	page := NewPage(c.databaseID, trade)

	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(page).
		SetResult(&pageResponse{})

	resp, err := c.doRequest(ctx, "POST", "/pages", req)
	if err != nil {
		c.logger.Error("Failed to create Notion page",
			zap.Error(err),
			zap.String("symbol", trade.Symbol),
		)
		return "", fmt.Errorf("failed to create page: %w", err)
	}

	result := resp.Result().(*pageResponse)
	return result.ID, nil
}

// doRequest handles the actual request execution with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil // Success
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if resp != nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 { // Server errors
				shouldRetry = true
			}
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}

		// If we should retry, calculate wait time
		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}
