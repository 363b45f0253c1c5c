package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

type FinancialRepository interface {
	CreateTx(tx *gorm.DB, t *model.FinancialTransaction) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]model.FinancialTransaction, error)
	// FindByOrder returns the original (non-reversal) entries posted for an
	// order, used to build the exact inverse at cancellation.
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]model.FinancialTransaction, error)
}

type financialRepo struct{ db *gorm.DB }

func NewFinancialRepository(db *gorm.DB) FinancialRepository { return &financialRepo{db: db} }

func (r *financialRepo) CreateTx(tx *gorm.DB, t *model.FinancialTransaction) error {
	return tx.Create(t).Error
}

func (r *financialRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]model.FinancialTransaction, error) {
	var txs []model.FinancialTransaction
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Limit(limit).
		Find(&txs).Error
	return txs, err
}

func (r *financialRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]model.FinancialTransaction, error) {
	var txs []model.FinancialTransaction
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND reversal = false", orderID).
		Order("created_at ASC").
		Find(&txs).Error
	return txs, err
}
