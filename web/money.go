package web

import "github.com/shopspring/decimal"

// Money formats a backend-provided amount for display with two decimal
// places. Amounts are displayed, never recomputed here.
func Money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
