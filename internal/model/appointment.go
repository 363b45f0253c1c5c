package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is owned by the scheduling subsystem; the POS only reads it to
// pre-populate a checkout and writes back the committed order link.
type Appointment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	PetName    string     `gorm:"not null"`
	ServiceID  uuid.UUID  `gorm:"type:uuid;not null"`
	POSOrderID *uuid.UUID `gorm:"type:uuid"`
	ScheduledAt time.Time
	CreatedAt   time.Time

	Customer *Customer        `gorm:"foreignKey:CustomerID"`
	Service  *GroomingService `gorm:"foreignKey:ServiceID"`
}
