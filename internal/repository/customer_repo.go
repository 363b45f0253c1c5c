package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Search(ctx context.Context, query string, limit int) ([]model.Customer, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) Search(ctx context.Context, query string, limit int) ([]model.Customer, error) {
	var customers []model.Customer
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("active = true").
		Where("name ILIKE ? OR phone ILIKE ?", pattern, pattern).
		Order("name ASC").Limit(limit).
		Find(&customers).Error
	return customers, err
}
