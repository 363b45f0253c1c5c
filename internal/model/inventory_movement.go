package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventory movement types.
const (
	MovementSale       = "SALE"
	MovementReturn     = "RETURN"
	MovementAdjustment = "ADJUSTMENT"
)

// InventoryMovement records every stock change on a product. Rows are created
// automatically inside the order commit / cancellation transactions and are
// never modified or deleted.
type InventoryMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"`
	// Quantity is signed: negative = out (sale), positive = in (return/adjust).
	Quantity    int `gorm:"not null"`
	StockBefore int `gorm:"not null"`
	StockAfter  int `gorm:"not null"`
	Reason      string
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (InventoryMovement) TableName() string { return "inventory_movements" }
