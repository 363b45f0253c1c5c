package dto

import "github.com/shopspring/decimal"

type CustomerResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	// IsStaff unlocks the PAYROLL_DEDUCTION payment method at the POS.
	IsStaff bool `json:"is_staff"`
}

// QuickCustomerRequest registers a walk-in customer from the POS.
type QuickCustomerRequest struct {
	Name  string  `json:"name"  validate:"required,min=2"`
	Phone *string `json:"phone"`
}

// StatementEntry is one row of a customer's financial statement.
type StatementEntry struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"` // DEBIT | CREDIT
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OrderID     *string         `json:"order_id,omitempty"`
	Reversal    bool            `json:"reversal"`
	CreatedAt   string          `json:"created_at"`
}

type StatementResponse struct {
	CustomerID string           `json:"customer_id"`
	Entries    []StatementEntry `json:"entries"`
	Balance    decimal.Decimal  `json:"balance"` // Σcredits − Σdebits
}
