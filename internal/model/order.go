package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order states. PAID orders have immutable items and payments; CANCELLED is
// terminal — reached from PAID exactly once, never left.
const (
	OrderOpen      = "OPEN"
	OrderPaid      = "PAID"
	OrderCancelled = "CANCELLED"
)

// Payment methods accepted at the POS. PayrollDeduction is only valid when the
// order's customer resolves to a staff member.
const (
	MethodPix              = "PIX"
	MethodCash             = "CASH"
	MethodCreditCard       = "CREDIT_CARD"
	MethodDebitCard        = "DEBIT_CARD"
	MethodAccountCredit    = "ACCOUNT_CREDIT"
	MethodFuture           = "FUTURE"
	MethodPayrollDeduction = "PAYROLL_DEDUCTION"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodPix, MethodCash, MethodCreditCard, MethodDebitCard,
		MethodAccountCredit, MethodFuture, MethodPayrollDeduction:
		return true
	}
	return false
}

// Order is the durable record of a committed sale. Created in a single
// transaction together with its items and payments — all or nothing.
// Orders are never physically deleted; cancellation is a status transition.
type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// SeqID is the human-facing sequential number, taken from a Postgres
	// sequence inside the commit transaction.
	SeqID         int        `gorm:"uniqueIndex;not null"`
	CashSessionID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	SellerID      uuid.UUID  `gorm:"type:uuid;not null"`
	AppointmentID *uuid.UUID `gorm:"type:uuid"`
	Status        string     `gorm:"type:varchar(10);not null;index"`
	// TotalAmount is the gross subtotal; FinalAmount = TotalAmount − DiscountAmount.
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// StockConflict flags a commit that drove some product's stock below zero
	// while stock-floor enforcement was disabled (supervisor review queue).
	StockConflict      bool `gorm:"not null;default:false"`
	CancellationReason *string
	CancelledAt        *time.Time
	CreatedAt          time.Time

	Items    []OrderItem    `gorm:"foreignKey:OrderID"`
	Payments []OrderPayment `gorm:"foreignKey:OrderID"`
	Customer *Customer      `gorm:"foreignKey:CustomerID"`
	Session  *CashSession   `gorm:"foreignKey:CashSessionID"`
}

// OrderItem is an immutable snapshot of one cart line at commit time.
// Exactly one of ProductID / ServiceID is set.
type OrderItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID `gorm:"type:uuid;index"`
	ServiceID   *uuid.UUID `gorm:"type:uuid"`
	Description string     `gorm:"not null"`
	Quantity    int        `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Discount is the resolved per-line discount amount (PERCENT discounts are
	// converted to amounts before the snapshot is taken).
	Discount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// OrderPayment records one tendered payment. The sum over an order's payments
// may exceed FinalAmount (cash change); it is never less on a PAID order.
type OrderPayment struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Method       string          `gorm:"type:varchar(20);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Installments int             `gorm:"not null;default:1"`
	// StaffID identifies the employee whose payroll absorbs a
	// PAYROLL_DEDUCTION payment.
	StaffID *uuid.UUID `gorm:"type:uuid"`
	Notes   *string
	PaidAt  time.Time
}
