package dto

import "github.com/shopspring/decimal"

// ─── Search ──────────────────────────────────────────────────────────────────

type ProductResult struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}

type ServiceResult struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	BasePrice   decimal.Decimal `json:"base_price"`
	DurationMin int             `json:"duration_min"`
}

// SearchItemsResponse feeds the POS search box: products and services in one
// round trip.
type SearchItemsResponse struct {
	Products []ProductResult `json:"products"`
	Services []ServiceResult `json:"services"`
}

// ─── Price check ─────────────────────────────────────────────────────────────

// PriceCheckResponse is the redis-cached payload of GET /v1/price/:sku.
type PriceCheckResponse struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
}

// ─── Quick registration ──────────────────────────────────────────────────────

// QuickProductRequest registers a product directly from the POS search box
// when an item is not yet in the catalog.
type QuickProductRequest struct {
	Name  string          `json:"name"  validate:"required,min=2"`
	SKU   string          `json:"sku"   validate:"required,min=2"`
	Price decimal.Decimal `json:"price" validate:"required"`
	Stock int             `json:"stock" validate:"min=0"`
}
