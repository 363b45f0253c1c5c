package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// FindByIDTx locks the product row (FOR UPDATE) so the stock level it
	// reports stays valid for the rest of the transaction — the movement
	// audit trail records before/after values taken from this read.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	Search(ctx context.Context, query string, limit int) ([]model.Product, error)

	// DecrementStockGuardedTx atomically decrements stock, refusing to go
	// below zero: the conditional UPDATE serializes concurrent sales of the
	// last unit. Returns (false, nil) when the guard blocked the decrement.
	DecrementStockGuardedTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error)
	// AdjustStockTx applies a signed delta with no floor — used by unguarded
	// decrements (stock-floor policy off) and by restocking on cancellation.
	AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("sku = ? AND active = true", sku).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Search(ctx context.Context, query string, limit int) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("active = true").
		Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern).
		Order("name ASC").Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) DecrementStockGuardedTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *productRepo) AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}
