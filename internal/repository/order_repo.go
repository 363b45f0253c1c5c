package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

type OrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	UpdateTx(tx *gorm.DB, o *model.Order) error
	// MarkCancelledTx transitions the order to CANCELLED with a status guard:
	// the conditional UPDATE ... WHERE status='PAID' serializes two terminals
	// cancelling the same order, so exactly one transaction wins and runs the
	// restock + ledger reversal. Returns (false, nil) when the order was no
	// longer PAID.
	MarkCancelledTx(tx *gorm.DB, id uuid.UUID, reason string, at time.Time) (bool, error)
	NextSeqID(tx *gorm.DB) (int, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	// SumCashPaymentsTx returns Σ CASH payments over the session's PAID
	// orders — the drawer delta used for the expected closing balance.
	// Cancelled orders drop out via the status filter. Runs on the close
	// transaction, after the session row is locked, so no commit can race it.
	SumCashPaymentsTx(tx *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error)
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Payments").Preload("Customer").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) UpdateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Save(o).Error
}

func (r *orderRepo) MarkCancelledTx(tx *gorm.DB, id uuid.UUID, reason string, at time.Time) (bool, error) {
	res := tx.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderPaid).
		Updates(map[string]interface{}{
			"status":              model.OrderCancelled,
			"cancellation_reason": reason,
			"cancelled_at":        at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *orderRepo) NextSeqID(tx *gorm.DB) (int, error) {
	// Postgres sequence gives atomic, gap-tolerant display numbers.
	var num int
	err := tx.Raw("SELECT nextval('orders_seq_id_seq')").Scan(&num).Error
	return num, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").Preload("Payments").Preload("Customer").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) SumCashPaymentsTx(tx *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := tx.Raw(`
		SELECT COALESCE(SUM(op.amount), 0)
		FROM order_payments op
		JOIN orders o ON o.id = op.order_id
		WHERE o.cash_session_id = ?
		  AND o.status = ?
		  AND op.method = ?`,
		sessionID, model.OrderPaid, model.MethodCash,
	).Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
