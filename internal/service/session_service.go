package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/repository"
)

type SessionService interface {
	Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error)
	Close(ctx context.Context, id, operatorID uuid.UUID, req dto.CloseSessionRequest) (*dto.SessionResponse, error)
	// GetActive returns (nil, nil) when no session is open.
	GetActive(ctx context.Context) (*dto.SessionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	History(ctx context.Context, page, limit int) ([]dto.SessionResponse, int64, error)
}

type sessionService struct {
	repo      repository.SessionRepository
	orderRepo repository.OrderRepository
}

func NewSessionService(repo repository.SessionRepository, orderRepo repository.OrderRepository) SessionService {
	return &sessionService{repo: repo, orderRepo: orderRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Open ──────────────────────────────────────────────────────────────────────
// Check-then-insert inside one transaction; the partial unique index on
// (status) WHERE status='OPEN' backstops the race between two terminals
// opening simultaneously — exactly one insert wins.

func (s *sessionService) Open(ctx context.Context, operatorID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	var session model.CashSession
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existing, err := s.repo.FindOpenTx(tx)
		if err != nil && !notFound(err) {
			return err
		}
		if existing != nil {
			return ErrSessionAlreadyOpen
		}
		session = model.CashSession{
			OpenedByID:     operatorID,
			OpeningBalance: req.OpeningBalance,
			Status:         model.SessionOpen,
			Notes:          req.Notes,
			OpenedAt:       time.Now(),
		}
		return s.repo.CreateTx(tx, &session)
	})
	if txErr != nil {
		return nil, txErr
	}
	return sessionToResponse(&session), nil
}

// ── Close ─────────────────────────────────────────────────────────────────────
// Locks the session row, computes the expected drawer balance from the
// session's PAID cash payments, then records the operator's declared count.
// No automatic reconciliation beyond the difference — reporting concern.

func (s *sessionService) Close(ctx context.Context, id, operatorID uuid.UUID, req dto.CloseSessionRequest) (*dto.SessionResponse, error) {
	var session *model.CashSession
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		session, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			if notFound(err) {
				return ErrSessionNotFound
			}
			return err
		}
		if session.Status == model.SessionClosed {
			return ErrSessionAlreadyClosed
		}

		cashIn, err := s.orderRepo.SumCashPaymentsTx(tx, session.ID)
		if err != nil {
			return err
		}
		expected := session.OpeningBalance.Add(cashIn)

		now := time.Now()
		closing := req.ClosingBalance
		session.ClosingBalance = &closing
		session.ExpectedClosingBalance = &expected
		session.ClosedByID = &operatorID
		session.ClosedAt = &now
		session.Status = model.SessionClosed
		if req.Notes != nil {
			session.Notes = req.Notes
		}
		return s.repo.UpdateTx(tx, session)
	})
	if txErr != nil {
		return nil, txErr
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) GetActive(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := s.repo.FindOpen(ctx)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) History(ctx context.Context, page, limit int) ([]dto.SessionResponse, int64, error) {
	sessions, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *sessionToResponse(&sessions[i]))
	}
	return out, total, nil
}

func sessionToResponse(s *model.CashSession) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:             s.ID.String(),
		Status:         s.Status,
		OpeningBalance: s.OpeningBalance,
		Notes:          s.Notes,
		OpenedAt:       s.OpenedAt.Format(time.RFC3339),
	}
	if s.OpenedBy != nil {
		resp.OpenedBy = s.OpenedBy.Name
	}
	if s.ClosingBalance != nil {
		resp.ClosingBalance = s.ClosingBalance
	}
	if s.ExpectedClosingBalance != nil {
		resp.ExpectedClosingBalance = s.ExpectedClosingBalance
		if s.ClosingBalance != nil {
			diff := s.ClosingBalance.Sub(*s.ExpectedClosingBalance)
			resp.Difference = &diff
		}
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}
