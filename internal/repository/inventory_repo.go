package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

type InventoryMovementRepository interface {
	// CreateTx records a movement inside the commit/cancel transaction that
	// caused it; a movement must never outlive a rolled-back stock change.
	CreateTx(tx *gorm.DB, m *model.InventoryMovement) error
	ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]model.InventoryMovement, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.InventoryMovement, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryMovementRepository(db *gorm.DB) InventoryMovementRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) CreateTx(tx *gorm.DB, m *model.InventoryMovement) error {
	return tx.Create(m).Error
}

func (r *inventoryRepo) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]model.InventoryMovement, error) {
	var movs []model.InventoryMovement
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").Limit(limit).
		Find(&movs).Error
	return movs, err
}

func (r *inventoryRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.InventoryMovement, error) {
	var movs []model.InventoryMovement
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}
