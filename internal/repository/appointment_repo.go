package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

type AppointmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// LinkOrderTx records which POS order settled the appointment, inside the
	// commit transaction.
	LinkOrderTx(tx *gorm.DB, appointmentID, orderID uuid.UUID) error
}

type appointmentRepo struct{ db *gorm.DB }

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.WithContext(ctx).Preload("Customer").Preload("Service").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepo) LinkOrderTx(tx *gorm.DB, appointmentID, orderID uuid.UUID) error {
	return tx.Model(&model.Appointment{}).Where("id = ?", appointmentID).
		Update("pos_order_id", orderID).Error
}
