package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a client of the shop. When StaffUserID is set the customer is
// also an employee, which unlocks the PAYROLL_DEDUCTION payment method.
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Phone       *string
	Email       *string
	StaffUserID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Active      bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsStaff reports whether this customer resolves to a staff profile.
func (c *Customer) IsStaff() bool { return c.StaffUserID != nil }
