package notion

import (
	"fmt"
	"math"

	"github.com/DulinaPathirana/tradingview-notion-sync/internal/models"
)

// isoLayout matches Notion's expected date format (ISO-8601, no zone —
// TradingView exports carry no timezone either).
const isoLayout = "2006-01-02T15:04:05"

// Page is the request body for creating a page in a Notion database.
type Page struct {
	Parent     Parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

// Parent identifies the database the page belongs to.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// Property is one database property value. Exactly one field is set per
// property; the rest stay empty and are omitted from the JSON.
type Property struct {
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Number   *float64      `json:"number,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
}

// RichText is a single text fragment.
type RichText struct {
	Text TextContent `json:"text"`
}

// TextContent holds the literal content of a text fragment.
type TextContent struct {
	Content string `json:"content"`
}

// SelectOption names a select value.
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue holds an ISO-8601 date property.
type DateValue struct {
	Start string `json:"start"`
}

// NewPage builds the database page payload for one trade. P/L values are
// rounded to two decimals here, at the reporting boundary; everything
// upstream keeps full precision. Direction is always "Long": short
// (sell-then-buy) sequences are not modeled.
func NewPage(databaseID string, trade *models.Trade) *Page {
	return &Page{
		Parent: Parent{DatabaseID: databaseID},
		Properties: map[string]Property{
			"Name": {
				Title: []RichText{{Text: TextContent{
					Content: fmt.Sprintf("%s - %s", trade.Symbol, trade.EntryDate().Format("2006-01-02")),
				}}},
			},
			"Date": {
				Date: &DateValue{Start: trade.EntryDate().Format(isoLayout)},
			},
			"Symbol": {
				RichText: []RichText{{Text: TextContent{Content: trade.Symbol}}},
			},
			"Direction": {
				Select: &SelectOption{Name: "Long"},
			},
			"Entry Price":   {Number: number(trade.EntryPrice())},
			"Exit Price":    {Number: number(trade.ExitPrice())},
			"Position Size": {Number: number(trade.PositionSize())},
			"P/L ($)":       {Number: number(Round2(trade.PnLDollars()))},
			"P/L (%)":       {Number: number(Round2(trade.PnLPercent()))},
			"Result": {
				Select: &SelectOption{Name: string(trade.Result())},
			},
		},
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func number(v float64) *float64 {
	return &v
}
