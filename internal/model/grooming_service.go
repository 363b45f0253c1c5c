package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GroomingService is a catalog entry for labor (banho, tosa, hidratação…).
// Services carry no stock — selling one produces no inventory movement.
type GroomingService struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Category    string          `gorm:"not null;default:'banho_e_tosa'"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// DurationMin drives the appointment scheduler, not the POS.
	DurationMin int  `gorm:"not null;default:60"`
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (GroomingService) TableName() string { return "grooming_services" }
