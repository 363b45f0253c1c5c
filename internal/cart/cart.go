// Package cart models the ephemeral, client-local state of an in-progress
// sale: the staged line items and the payments tendered against them. Nothing
// here touches the database — the cart only becomes durable when the order
// service commits it.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/pricing"
)

// CatalogRef identifies the catalog entry behind a cart line. Exactly one of
// ProductID / ServiceID is set.
type CatalogRef struct {
	ProductID   *uuid.UUID
	ServiceID   *uuid.UUID
	Description string
	// UnitPrice is snapshotted from the catalog at add time; later catalog
	// price changes do not affect an in-progress cart.
	UnitPrice decimal.Decimal
	// Stock carries the product's stock level at add time, for client-side
	// warnings only. Nil for services.
	Stock *int
}

// Line is one staged entry of the cart.
type Line struct {
	ID           uuid.UUID
	ProductID    *uuid.UUID
	ServiceID    *uuid.UUID
	Description  string
	Quantity     int
	UnitPrice    decimal.Decimal
	Discount     decimal.Decimal
	DiscountType string
	Stock        *int
}

func (l Line) pricingLine() pricing.Line {
	return pricing.Line{
		UnitPrice:    l.UnitPrice,
		Quantity:     l.Quantity,
		Discount:     l.Discount,
		DiscountType: l.DiscountType,
	}
}

// Store accumulates lines for one sale. Not safe for concurrent use: a store
// belongs to a single POS terminal session.
type Store struct {
	lines          []Line
	globalDiscount decimal.Decimal
}

func NewStore() *Store {
	return &Store{}
}

// AddItem stages quantity units of the referenced catalog entry. A line
// referencing the same product/service as an existing line merges by
// incrementing quantity — duplicate lines for one product would double-count
// the stock decrement at commit. Returns the affected line.
func (s *Store) AddItem(ref CatalogRef, quantity int) Line {
	if quantity < 1 {
		quantity = 1
	}
	for i := range s.lines {
		if sameRef(&s.lines[i], ref) {
			s.lines[i].Quantity += quantity
			return s.lines[i]
		}
	}
	line := Line{
		ID:           uuid.New(),
		ProductID:    ref.ProductID,
		ServiceID:    ref.ServiceID,
		Description:  ref.Description,
		Quantity:     quantity,
		UnitPrice:    ref.UnitPrice,
		Discount:     decimal.Zero,
		DiscountType: pricing.DiscountAmount,
		Stock:        ref.Stock,
	}
	s.lines = append(s.lines, line)
	return line
}

func sameRef(l *Line, ref CatalogRef) bool {
	if ref.ProductID != nil {
		return l.ProductID != nil && *l.ProductID == *ref.ProductID
	}
	if ref.ServiceID != nil {
		return l.ServiceID != nil && *l.ServiceID == *ref.ServiceID
	}
	return false
}

// UpdateQuantity applies a delta to a line's quantity. Reaching zero (or
// below) removes the line entirely; negative quantities are never stored.
// Returns false when no line matches.
func (s *Store) UpdateQuantity(lineID uuid.UUID, delta int) bool {
	for i := range s.lines {
		if s.lines[i].ID != lineID {
			continue
		}
		q := s.lines[i].Quantity + delta
		if q <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return true
		}
		s.lines[i].Quantity = q
		return true
	}
	return false
}

// RemoveItem drops a line. Returns false when no line matches.
func (s *Store) RemoveItem(lineID uuid.UUID) bool {
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetLineDiscount sets a per-line discount. Negative values are clamped to zero.
func (s *Store) SetLineDiscount(lineID uuid.UUID, discount decimal.Decimal, discountType string) bool {
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discountType != pricing.DiscountPercent {
		discountType = pricing.DiscountAmount
	}
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines[i].Discount = discount
			s.lines[i].DiscountType = discountType
			return true
		}
	}
	return false
}

// SetGlobalDiscount sets the order-level discount amount, clamped at zero.
func (s *Store) SetGlobalDiscount(amount decimal.Decimal) {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	s.globalDiscount = amount
}

func (s *Store) GlobalDiscount() decimal.Decimal { return s.globalDiscount }

// Clear resets the cart after a successful commit or an explicit reset.
func (s *Store) Clear() {
	s.lines = nil
	s.globalDiscount = decimal.Zero
}

// Empty reports whether the cart has no lines.
func (s *Store) Empty() bool { return len(s.lines) == 0 }

// Lines returns a copy of the staged lines.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Totals recomputes the full breakdown from current state.
func (s *Store) Totals() pricing.Totals {
	pl := make([]pricing.Line, 0, len(s.lines))
	for _, l := range s.lines {
		pl = append(pl, l.pricingLine())
	}
	return pricing.ComputeTotals(pl, s.globalDiscount)
}

// SeedLine pre-populates the cart with an already-priced line. Used by the
// exchange workflow: cancel an order, then open a fresh cart seeded from the
// cancelled order's items.
func (s *Store) SeedLine(productID, serviceID *uuid.UUID, description string, quantity int, unitPrice, discount decimal.Decimal) Line {
	if quantity < 1 {
		quantity = 1
	}
	line := Line{
		ID:           uuid.New(),
		ProductID:    productID,
		ServiceID:    serviceID,
		Description:  description,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Discount:     discount,
		DiscountType: pricing.DiscountAmount,
	}
	s.lines = append(s.lines, line)
	return line
}
