package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

type GroomingServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.GroomingService, error)
	Search(ctx context.Context, query string, limit int) ([]model.GroomingService, error)
}

type groomingServiceRepo struct{ db *gorm.DB }

func NewGroomingServiceRepository(db *gorm.DB) GroomingServiceRepository {
	return &groomingServiceRepo{db: db}
}

func (r *groomingServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.GroomingService, error) {
	var s model.GroomingService
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *groomingServiceRepo) Search(ctx context.Context, query string, limit int) ([]model.GroomingService, error) {
	var services []model.GroomingService
	err := r.db.WithContext(ctx).
		Where("active = true").
		Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").Limit(limit).
		Find(&services).Error
	return services, err
}
