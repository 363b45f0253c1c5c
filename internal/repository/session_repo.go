package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

type SessionRepository interface {
	// CreateTx inserts inside the open transaction. The partial unique index
	// on (status) WHERE status='OPEN' backs the single-open-session invariant
	// against races between two terminals.
	CreateTx(tx *gorm.DB, s *model.CashSession) error
	// FindOpenTx locks the currently open session row (FOR UPDATE) so
	// check-then-insert and close cannot interleave.
	FindOpenTx(tx *gorm.DB) (*model.CashSession, error)
	FindOpen(ctx context.Context) (*model.CashSession, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.CashSession, error)
	UpdateTx(tx *gorm.DB, s *model.CashSession) error
	List(ctx context.Context, page, limit int) ([]model.CashSession, int64, error)
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) DB() *gorm.DB { return r.db }

func (r *sessionRepo) CreateTx(tx *gorm.DB, s *model.CashSession) error {
	return tx.Create(s).Error
}

func (r *sessionRepo) FindOpenTx(tx *gorm.DB) (*model.CashSession, error) {
	var s model.CashSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", model.SessionOpen).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) FindOpen(ctx context.Context) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).Preload("OpenedBy").
		Where("status = ?", model.SessionOpen).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := r.db.WithContext(ctx).Preload("OpenedBy").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) UpdateTx(tx *gorm.DB, s *model.CashSession) error {
	return tx.Save(s).Error
}

func (r *sessionRepo) List(ctx context.Context, page, limit int) ([]model.CashSession, int64, error) {
	var sessions []model.CashSession
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CashSession{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("OpenedBy").
		Order("opened_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}
