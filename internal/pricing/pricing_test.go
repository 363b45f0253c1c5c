package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals_NoDiscounts(t *testing.T) {
	totals := ComputeTotals([]Line{
		{UnitPrice: d("50.00"), Quantity: 1},
		{UnitPrice: d("40.00"), Quantity: 2},
	}, decimal.Zero)

	assert.True(t, totals.Subtotal.Equal(d("130.00")))
	assert.True(t, totals.Total.Equal(d("130.00")))
	assert.True(t, totals.ItemDiscountTotal.IsZero())
}

func TestComputeTotals_PercentDiscountAgainstOwnGross(t *testing.T) {
	// 10% off a 2×40.00 line = 8.00, regardless of what other lines exist.
	totals := ComputeTotals([]Line{
		{UnitPrice: d("40.00"), Quantity: 2, Discount: d("10"), DiscountType: DiscountPercent},
		{UnitPrice: d("100.00"), Quantity: 1},
	}, decimal.Zero)

	assert.True(t, totals.ItemDiscountTotal.Equal(d("8.00")))
	assert.True(t, totals.Total.Equal(d("172.00")))
}

func TestComputeTotals_PercentUnaffectedByLineOrder(t *testing.T) {
	a := []Line{
		{UnitPrice: d("40.00"), Quantity: 2, Discount: d("10"), DiscountType: DiscountPercent},
		{UnitPrice: d("100.00"), Quantity: 1},
	}
	b := []Line{a[1], a[0]}

	assert.True(t, ComputeTotals(a, decimal.Zero).Total.Equal(ComputeTotals(b, decimal.Zero).Total))
}

func TestComputeTotals_AmountDiscount(t *testing.T) {
	totals := ComputeTotals([]Line{
		{UnitPrice: d("50.00"), Quantity: 1, Discount: d("5.00"), DiscountType: DiscountAmount},
	}, decimal.Zero)

	assert.True(t, totals.Total.Equal(d("45.00")))
}

func TestComputeTotals_GlobalDiscountAppliedOnce(t *testing.T) {
	totals := ComputeTotals([]Line{
		{UnitPrice: d("30.00"), Quantity: 1},
		{UnitPrice: d("20.00"), Quantity: 1},
	}, d("10.00"))

	assert.True(t, totals.Total.Equal(d("40.00")))
	assert.True(t, totals.GlobalDiscount.Equal(d("10.00")))
}

func TestComputeTotals_ClampedAtZero(t *testing.T) {
	// Discounts exceeding the subtotal never produce a negative total.
	totals := ComputeTotals([]Line{
		{UnitPrice: d("10.00"), Quantity: 1, Discount: d("8.00"), DiscountType: DiscountAmount},
	}, d("50.00"))

	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, decimal.Zero)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestLine_DiscountValue(t *testing.T) {
	percent := Line{UnitPrice: d("80.00"), Quantity: 1, Discount: d("25"), DiscountType: DiscountPercent}
	assert.True(t, percent.DiscountValue().Equal(d("20.00")))

	amount := Line{UnitPrice: d("80.00"), Quantity: 1, Discount: d("25"), DiscountType: DiscountAmount}
	assert.True(t, amount.DiscountValue().Equal(d("25")))
}

func TestComputeTotals_Deterministic(t *testing.T) {
	lines := []Line{
		{UnitPrice: d("15.90"), Quantity: 3, Discount: d("5"), DiscountType: DiscountPercent},
		{UnitPrice: d("120.00"), Quantity: 1, Discount: d("12.00"), DiscountType: DiscountAmount},
	}
	first := ComputeTotals(lines, d("3.00"))
	for i := 0; i < 10; i++ {
		assert.True(t, first.Total.Equal(ComputeTotals(lines, d("3.00")).Total))
	}
}
