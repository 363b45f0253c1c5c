package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// OrderItemRequest is one cart line snapshot sent at commit. Exactly one of
// product_id / service_id must be set (validated in the service layer — the
// exclusivity rule is not expressible as a field tag).
type OrderItemRequest struct {
	ProductID    *string         `json:"product_id"    validate:"omitempty,uuid"`
	ServiceID    *string         `json:"service_id"    validate:"omitempty,uuid"`
	Description  string          `json:"description"   validate:"required"`
	Quantity     int             `json:"quantity"      validate:"required,min=1"`
	UnitPrice    decimal.Decimal `json:"unit_price"    validate:"min=0"`
	Discount     decimal.Decimal `json:"discount"      validate:"min=0"`
	DiscountType string          `json:"discount_type" validate:"omitempty,oneof=PERCENT AMOUNT"`
}

type OrderPaymentRequest struct {
	Method       string          `json:"method"       validate:"required,oneof=PIX CASH CREDIT_CARD DEBIT_CARD ACCOUNT_CREDIT FUTURE PAYROLL_DEDUCTION"`
	Amount       decimal.Decimal `json:"amount"       validate:"required"`
	Installments int             `json:"installments" validate:"omitempty,min=1,max=24"`
	StaffID      *string         `json:"staff_id"     validate:"omitempty,uuid"`
	Notes        *string         `json:"notes"`
}

// CommitOrderRequest carries the full cart + payments snapshot. The commit is
// all-or-nothing: order, items, payments, stock decrements and financial
// postings persist together or not at all.
type CommitOrderRequest struct {
	CashSessionID  string                `json:"cash_session_id" validate:"required,uuid"`
	CustomerID     *string               `json:"customer_id"     validate:"omitempty,uuid"`
	AppointmentID  *string               `json:"appointment_id"  validate:"omitempty,uuid"`
	Items          []OrderItemRequest    `json:"items"           validate:"required,min=1,dive"`
	Payments       []OrderPaymentRequest `json:"payments"        validate:"required,min=1,dive"`
	GlobalDiscount decimal.Decimal       `json:"global_discount" validate:"min=0"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderItemResponse struct {
	ProductID   *string         `json:"product_id,omitempty"`
	ServiceID   *string         `json:"service_id,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type OrderPaymentResponse struct {
	Method       string          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	Installments int             `json:"installments"`
}

type OrderResponse struct {
	ID                 string                 `json:"id"`
	SeqID              int                    `json:"seq_id"`
	CashSessionID      string                 `json:"cash_session_id"`
	CustomerID         *string                `json:"customer_id,omitempty"`
	CustomerName       *string                `json:"customer_name,omitempty"`
	Status             string                 `json:"status"`
	Items              []OrderItemResponse    `json:"items"`
	Payments           []OrderPaymentResponse `json:"payments"`
	TotalAmount        decimal.Decimal        `json:"total_amount"`
	DiscountAmount     decimal.Decimal        `json:"discount_amount"`
	FinalAmount        decimal.Decimal        `json:"final_amount"`
	ChangeDue          decimal.Decimal        `json:"change_due"`
	StockConflict      bool                   `json:"stock_conflict"`
	CancellationReason *string                `json:"cancellation_reason,omitempty"`
	CreatedAt          string                 `json:"created_at"`
}

// OrderFilter is bound from the query string of GET /v1/orders.
type OrderFilter struct {
	Date   string `form:"date"`                 // YYYY-MM-DD; empty = today
	Status string `form:"status,default=PAID"`  // PAID | CANCELLED | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
