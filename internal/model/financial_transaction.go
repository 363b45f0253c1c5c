package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Financial transaction types from the customer's point of view:
// DEBIT increases what the customer owes/spent, CREDIT reduces it.
const (
	TxDebit  = "DEBIT"
	TxCredit = "CREDIT"
)

// FinancialTransaction is one immutable entry in a customer's ledger.
// A committed sale posts a DEBIT for the sale plus a CREDIT per payment;
// cancellation posts the exact inverse entries — rows are never updated.
type FinancialTransaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"not null"`
	Category    string          `gorm:"type:varchar(20);not null;default:'PDV'"`
	OrderID     *uuid.UUID      `gorm:"type:uuid;index"`
	// Reversal marks entries created by a cancellation.
	Reversal    bool      `gorm:"not null;default:false"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}

func (FinancialTransaction) TableName() string { return "financial_transactions" }
