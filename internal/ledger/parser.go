package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DulinaPathirana/tradingview-notion-sync/internal/models"
	"go.uber.org/zap"
)

// TimeLayout is the timestamp format used by TradingView exports,
// e.g. "2025-10-30 142210".
const TimeLayout = "2006-01-02 150405"

const statusFilled = "Filled"

// Parser reads TradingView order-history CSV exports into Orders.
type Parser struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewParser creates a new CSV parser.
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{
		logger: logger,
		now:    time.Now,
	}
}

// ParseFile reads the CSV export at path and returns the filled orders it
// contains.
func (p *Parser) ParseFile(path string) ([]*models.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer f.Close()

	orders, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ledger file %s: %w", path, err)
	}
	return orders, nil
}

// Parse reads a TradingView CSV export. Columns are matched by header name,
// so column order does not matter and unknown columns are ignored. Only rows
// with Status "Filled" become Orders; everything else is skipped.
func (p *Parser) Parse(r io.Reader) ([]*models.Order, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var orders []*models.Order
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		if field("Status") != statusFilled {
			continue
		}

		qty := p.parseFloat(field("Qty"))
		order := &models.Order{
			ID:          field("Order ID"),
			Symbol:      field("Symbol"),
			Side:        models.Side(field("Side")),
			Type:        field("Type"),
			Qty:         qty,
			Remaining:   qty,
			LimitPrice:  p.parseFloat(field("Limit Price")),
			StopPrice:   p.parseFloat(field("Stop Price")),
			FillPrice:   p.parseFloat(field("Fill Price")),
			PlacingTime: p.parseTime(field("Placing Time")),
			ClosingTime: p.parseTime(field("Closing Time")),
		}
		orders = append(orders, order)
	}

	p.logger.Info("Parsed filled orders from CSV", zap.Int("count", len(orders)))
	return orders, nil
}

// parseFloat coerces malformed or empty numeric fields to 0 so a bad cell
// never aborts the whole import.
func (p *Parser) parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.logger.Warn("Malformed numeric field, using 0", zap.String("value", s))
		return 0
	}
	return v
}

// parseTime falls back to the current time when a timestamp does not match
// the TradingView layout, keeping the pipeline total.
func (p *Parser) parseTime(s string) time.Time {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		p.logger.Warn("Malformed timestamp, using current time", zap.String("value", s))
		return p.now()
	}
	return t
}
