// Package pricing provides the demo price oracle and the slippage arithmetic
// that converts oracle quotes into ledger unit-price bounds.
package pricing

import "github.com/shopspring/decimal"

// Quotes are fixed for the demo; a production build would read a contract or
// an external oracle feed behind the same interface.
var quotes = map[string]decimal.Decimal{
	"AAPL":  decimal.RequireFromString("175.50"),
	"TSLA":  decimal.RequireFromString("245.00"),
	"GOOGL": decimal.RequireFromString("140.25"),
	"MSFT":  decimal.RequireFromString("380.75"),
	"AMZN":  decimal.RequireFromString("155.00"),
	"NVDA":  decimal.RequireFromString("485.50"),
	"META":  decimal.RequireFromString("315.25"),
	"BRK.B": decimal.RequireFromString("385.00"),
	"SPY":   decimal.RequireFromString("450.00"),
	"QQQ":   decimal.RequireFromString("380.00"),
}

// defaultQuote is returned for any ticker outside the table.
var defaultQuote = decimal.RequireFromString("100.00")

var (
	microUnits = decimal.NewFromInt(1_000_000)
	buyFactor  = decimal.RequireFromString("1.05")
	sellFactor = decimal.RequireFromString("0.95")
)

// Oracle quotes whole-STX prices for the known ticker set. It is deterministic
// and never fails, which keeps every downstream path testable.
type Oracle struct{}

func NewOracle() *Oracle { return &Oracle{} }

// Price returns the quoted price for ticker in whole STX, or the default
// quote for unknown tickers.
func (o *Oracle) Price(ticker string) decimal.Decimal {
	if p, ok := quotes[ticker]; ok {
		return p
	}
	return defaultQuote
}

// MaxBuyUnitPrice converts a whole-STX quote into the buy-side limit in
// micro-STX: floor(price x 1e6 x 1.05). Flooring the upper bound mirrors the
// original contract behavior (see DESIGN.md).
func MaxBuyUnitPrice(price decimal.Decimal) int64 {
	return price.Mul(microUnits).Mul(buyFactor).Floor().IntPart()
}

// MinSellUnitPrice converts a whole-STX quote into the sell-side limit in
// micro-STX: floor(price x 1e6 x 0.95).
func MinSellUnitPrice(price decimal.Decimal) int64 {
	return price.Mul(microUnits).Mul(sellFactor).Floor().IntPart()
}
