package dto

import "github.com/shopspring/decimal"

// CheckoutItem is a pre-priced line used to seed a POS cart, either from a
// scheduled appointment or from a cancelled order (exchange flow).
type CheckoutItem struct {
	ProductID   *string         `json:"product_id,omitempty"`
	ServiceID   *string         `json:"service_id,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
}

// AppointmentCheckoutResponse pre-populates the POS from a scheduled visit.
type AppointmentCheckoutResponse struct {
	AppointmentID string         `json:"appointment_id"`
	CustomerID    string         `json:"customer_id"`
	CustomerName  string         `json:"customer_name"`
	PetName       string         `json:"pet_name"`
	Items         []CheckoutItem `json:"items"`
}
