package matcher

import (
	"sort"

	"github.com/DulinaPathirana/tradingview-notion-sync/internal/models"
)

// Book holds one symbol's filled orders split by side, each sorted ascending
// by closing time. Orders with equal closing times keep their input order.
type Book struct {
	Symbol string
	Buys   []*models.Order
	Sells  []*models.Order
}

// Partition groups orders by symbol and side and sorts each side by closing
// time. Books are returned in symbol order so a full matching run over the
// result is reproducible regardless of input ordering.
func Partition(orders []*models.Order) []*Book {
	bySymbol := make(map[string]*Book)
	for _, order := range orders {
		book, ok := bySymbol[order.Symbol]
		if !ok {
			book = &Book{Symbol: order.Symbol}
			bySymbol[order.Symbol] = book
		}
		switch {
		case order.IsBuy():
			book.Buys = append(book.Buys, order)
		case order.IsSell():
			book.Sells = append(book.Sells, order)
		}
	}

	books := make([]*Book, 0, len(bySymbol))
	for _, book := range bySymbol {
		sort.SliceStable(book.Buys, func(i, j int) bool {
			return book.Buys[i].ClosingTime.Before(book.Buys[j].ClosingTime)
		})
		sort.SliceStable(book.Sells, func(i, j int) bool {
			return book.Sells[i].ClosingTime.Before(book.Sells[j].ClosingTime)
		})
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].Symbol < books[j].Symbol
	})
	return books
}

// Match pairs one symbol's buys and sells into trades using a greedy FIFO
// pass: each buy, in closing-time order, is matched against the earliest
// sells that closed strictly after it and still have quantity left. Partial
// fills split across sells; a sell with remaining quantity stays available
// to later buys. The pass is greedy and order-preserving, not a globally
// optimal matching.
//
// Quantity is conserved: each match consumes min(remaining buy, remaining
// sell) from both sides and nothing else, so remaining quantities never go
// negative and residuals plus matched quantities always add up to the
// original totals.
func Match(book *Book) []*models.Trade {
	var trades []*models.Trade
	for _, buy := range book.Buys {
		for _, sell := range book.Sells {
			if !sell.ClosingTime.After(buy.ClosingTime) {
				continue
			}
			if buy.Remaining <= 0 || sell.Remaining <= 0 {
				continue
			}

			matched := buy.Remaining
			if sell.Remaining < matched {
				matched = sell.Remaining
			}
			trades = append(trades, &models.Trade{
				Symbol:     book.Symbol,
				Buy:        buy,
				Sell:       sell,
				MatchedQty: matched,
			})
			buy.Remaining -= matched
			sell.Remaining -= matched

			if buy.Remaining == 0 {
				break
			}
		}
	}
	return trades
}

// MatchAll runs Match over every book and concatenates the results in book
// order.
func MatchAll(books []*Book) []*models.Trade {
	var trades []*models.Trade
	for _, book := range books {
		trades = append(trades, Match(book)...)
	}
	return trades
}
