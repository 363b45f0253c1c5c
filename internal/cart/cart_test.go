package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func productRef(id uuid.UUID, name, price string) CatalogRef {
	stock := 10
	return CatalogRef{ProductID: &id, Description: name, UnitPrice: d(price), Stock: &stock}
}

func serviceRef(id uuid.UUID, name, price string) CatalogRef {
	return CatalogRef{ServiceID: &id, Description: name, UnitPrice: d(price)}
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	s := NewStore()
	racaoID := uuid.New()

	s.AddItem(productRef(racaoID, "Ração Premium 1kg", "40.00"), 1)
	line := s.AddItem(productRef(racaoID, "Ração Premium 1kg", "40.00"), 2)

	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 3, line.Quantity)
}

func TestAddItem_DistinctCatalogEntriesStaySeparate(t *testing.T) {
	s := NewStore()
	s.AddItem(productRef(uuid.New(), "Shampoo Antipulgas", "25.00"), 1)
	s.AddItem(serviceRef(uuid.New(), "Banho", "50.00"), 1)

	assert.Len(t, s.Lines(), 2)
}

func TestUpdateQuantity_RemovesLineAtZero(t *testing.T) {
	s := NewStore()
	line := s.AddItem(productRef(uuid.New(), "Petisco", "12.00"), 2)

	require.True(t, s.UpdateQuantity(line.ID, -2))
	assert.True(t, s.Empty())
}

func TestUpdateQuantity_NeverNegative(t *testing.T) {
	s := NewStore()
	line := s.AddItem(productRef(uuid.New(), "Petisco", "12.00"), 1)

	require.True(t, s.UpdateQuantity(line.ID, -5))
	assert.True(t, s.Empty())
}

func TestRemoveItem_UnknownLine(t *testing.T) {
	s := NewStore()
	s.AddItem(serviceRef(uuid.New(), "Tosa", "70.00"), 1)

	assert.False(t, s.RemoveItem(uuid.New()))
	assert.Len(t, s.Lines(), 1)
}

func TestSetLineDiscount_ClampsNegative(t *testing.T) {
	s := NewStore()
	line := s.AddItem(productRef(uuid.New(), "Coleira", "30.00"), 1)

	require.True(t, s.SetLineDiscount(line.ID, d("-5.00"), pricing.DiscountAmount))
	assert.True(t, s.Totals().Total.Equal(d("30.00")))
}

func TestTotals_MixedDiscounts(t *testing.T) {
	s := NewStore()
	banho := s.AddItem(serviceRef(uuid.New(), "Banho", "50.00"), 1)
	s.AddItem(productRef(uuid.New(), "Ração Premium 1kg", "40.00"), 2)

	require.True(t, s.SetLineDiscount(banho.ID, d("10"), pricing.DiscountPercent))
	s.SetGlobalDiscount(d("5.00"))

	totals := s.Totals()
	assert.True(t, totals.Subtotal.Equal(d("130.00")))
	assert.True(t, totals.ItemDiscountTotal.Equal(d("5.00")))
	assert.True(t, totals.Total.Equal(d("120.00")))
}

func TestClear_ResetsEverything(t *testing.T) {
	s := NewStore()
	s.AddItem(productRef(uuid.New(), "Ração", "40.00"), 1)
	s.SetGlobalDiscount(d("10.00"))

	s.Clear()

	assert.True(t, s.Empty())
	assert.True(t, s.GlobalDiscount().IsZero())
	assert.True(t, s.Totals().Total.IsZero())
}

func TestSeedLine_ForExchangeFlow(t *testing.T) {
	s := NewStore()
	productID := uuid.New()
	s.SeedLine(&productID, nil, "Ração Premium 1kg", 2, d("40.00"), d("0"))

	require.Len(t, s.Lines(), 1)
	assert.True(t, s.Totals().Total.Equal(d("80.00")))
}
