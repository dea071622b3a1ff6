package models

import "time"

// Side is the direction of an order as exported by TradingView.
type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// Order represents a single filled order from the TradingView order history.
// Qty is the size as exported and never changes after parsing; Remaining
// starts equal to Qty and is decremented by the matcher as trades consume it.
type Order struct {
	ID          string
	Symbol      string
	Side        Side
	Type        string
	Qty         float64
	Remaining   float64
	LimitPrice  float64
	StopPrice   float64
	FillPrice   float64
	PlacingTime time.Time
	ClosingTime time.Time
}

// IsBuy reports whether the order is a buy.
func (o *Order) IsBuy() bool {
	return o.Side == SideBuy
}

// IsSell reports whether the order is a sell.
func (o *Order) IsSell() bool {
	return o.Side == SideSell
}
