package models

import "time"

// Result classifies a completed trade by the sign of its P/L.
type Result string

const (
	ResultWin       Result = "Win"
	ResultLoss      Result = "Loss"
	ResultBreakeven Result = "Breakeven"
)

// Trade is one matched round trip: a buy and a later sell of the same symbol.
// MatchedQty is captured when the trade is created, so later matches against
// the same orders cannot change it. Derived metrics keep full precision;
// rounding happens only when the trade is formatted for Notion.
type Trade struct {
	Symbol     string
	Buy        *Order
	Sell       *Order
	MatchedQty float64
}

// EntryPrice is the buy order's fill price.
func (t *Trade) EntryPrice() float64 {
	return t.Buy.FillPrice
}

// ExitPrice is the sell order's fill price.
func (t *Trade) ExitPrice() float64 {
	return t.Sell.FillPrice
}

// PositionSize is the quantity paired in this trade.
func (t *Trade) PositionSize() float64 {
	return t.MatchedQty
}

// PnLDollars is the absolute profit or loss of the trade.
func (t *Trade) PnLDollars() float64 {
	return (t.ExitPrice() - t.EntryPrice()) * t.PositionSize()
}

// PnLPercent is the profit or loss as a percentage of the entry price.
// A zero entry price yields 0 rather than dividing by zero.
func (t *Trade) PnLPercent() float64 {
	if t.EntryPrice() == 0 {
		return 0
	}
	return (t.ExitPrice() - t.EntryPrice()) / t.EntryPrice() * 100
}

// Result classifies the trade as Win, Loss or Breakeven.
func (t *Trade) Result() Result {
	pnl := t.PnLDollars()
	switch {
	case pnl > 0:
		return ResultWin
	case pnl < 0:
		return ResultLoss
	default:
		return ResultBreakeven
	}
}

// EntryDate is the closing time of the buy order.
func (t *Trade) EntryDate() time.Time {
	return t.Buy.ClosingTime
}

// ExitDate is the closing time of the sell order.
func (t *Trade) ExitDate() time.Time {
	return t.Sell.ClosingTime
}
