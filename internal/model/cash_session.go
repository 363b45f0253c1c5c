package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cash session states.
const (
	SessionOpen   = "OPEN"
	SessionClosed = "CLOSED"
)

// CashSession represents one open/closed drawer period. At most one session
// may be OPEN system-wide — enforced by a partial unique index on (status)
// WHERE status = 'OPEN', plus a check-then-insert inside the open transaction.
// Sessions are never deleted; closing is the only mutation.
type CashSession struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OpenedByID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClosedByID     *uuid.UUID      `gorm:"type:uuid"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// ClosingBalance is the operator-declared drawer count at close.
	ClosingBalance *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// ExpectedClosingBalance = OpeningBalance + cash in − cash reversed,
	// computed at close time from the session's orders.
	ExpectedClosingBalance *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status                 string           `gorm:"type:varchar(10);not null;default:'OPEN';index"`
	Notes                  *string
	OpenedAt               time.Time
	ClosedAt               *time.Time

	OpenedBy *User `gorm:"foreignKey:OpenedByID"`
}

func (CashSession) TableName() string { return "cash_sessions" }
