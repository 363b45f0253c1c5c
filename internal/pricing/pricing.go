// Package pricing computes cart totals. It is pure: no I/O, no clock, no
// randomness — the same lines and discounts always produce the same totals,
// so the client can recompute on every cart mutation and the backend can
// recompute at commit time and trust both agree.
package pricing

import "github.com/shopspring/decimal"

// Discount types for a cart line.
const (
	DiscountPercent = "PERCENT"
	DiscountAmount  = "AMOUNT"
)

// Line is the pricing view of one cart line.
type Line struct {
	UnitPrice    decimal.Decimal
	Quantity     int
	Discount     decimal.Decimal
	DiscountType string
}

// Gross returns UnitPrice × Quantity.
func (l Line) Gross() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// DiscountValue resolves the line's discount to an amount. PERCENT is computed
// against this line's own gross, never against the running subtotal — line
// order can never change the result.
func (l Line) DiscountValue() decimal.Decimal {
	if l.DiscountType == DiscountPercent {
		return l.Gross().Mul(l.Discount).Div(decimal.NewFromInt(100))
	}
	return l.Discount
}

// Total is the breakdown returned by ComputeTotals.
type Totals struct {
	Subtotal          decimal.Decimal
	ItemDiscountTotal decimal.Decimal
	GlobalDiscount    decimal.Decimal
	Total             decimal.Decimal
}

// ComputeTotals derives the sale totals from the lines and a global discount
// amount. The global discount applies once, after item discounts, and the
// final total is clamped at zero: an excess discount is absorbed, not
// reported as negative.
func ComputeTotals(lines []Line, globalDiscount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	itemDiscounts := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Gross())
		itemDiscounts = itemDiscounts.Add(l.DiscountValue())
	}

	total := subtotal.Sub(itemDiscounts).Sub(globalDiscount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:          subtotal,
		ItemDiscountTotal: itemDiscounts,
		GlobalDiscount:    globalDiscount,
		Total:             total,
	}
}
