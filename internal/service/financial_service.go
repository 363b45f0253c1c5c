package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/repository"
)

// FinancialService owns the customer ledger. Entries are immutable: a sale
// posts a DEBIT plus one CREDIT per payment, and a cancellation posts the
// exact inverse rows — never an UPDATE or DELETE.
type FinancialService interface {
	// PostSaleTx writes the charge entries for a committed order, inside the
	// commit transaction.
	PostSaleTx(tx *gorm.DB, o *model.Order, actorID uuid.UUID) error
	// ReverseSaleTx writes the inverse entries for a cancelled order, inside
	// the cancellation transaction.
	ReverseSaleTx(tx *gorm.DB, o *model.Order, reason string, actorID uuid.UUID) error
	Statement(ctx context.Context, customerID uuid.UUID) (*dto.StatementResponse, error)
}

type financialService struct {
	repo repository.FinancialRepository
}

func NewFinancialService(repo repository.FinancialRepository) FinancialService {
	return &financialService{repo: repo}
}

func (s *financialService) PostSaleTx(tx *gorm.DB, o *model.Order, actorID uuid.UUID) error {
	if o.CustomerID == nil {
		return nil
	}
	orderRef := o.ID

	// The sale: customer "spent" this money.
	if err := s.repo.CreateTx(tx, &model.FinancialTransaction{
		CustomerID:  *o.CustomerID,
		Type:        model.TxDebit,
		Amount:      o.FinalAmount,
		Description: fmt.Sprintf("Compra PDV #%d", o.SeqID),
		Category:    "PDV",
		OrderID:     &orderRef,
		CreatedByID: actorID,
		CreatedAt:   time.Now(),
	}); err != nil {
		return err
	}

	// The payments: customer "paid" this money.
	for _, p := range o.Payments {
		if err := s.repo.CreateTx(tx, &model.FinancialTransaction{
			CustomerID:  *o.CustomerID,
			Type:        model.TxCredit,
			Amount:      p.Amount,
			Description: fmt.Sprintf("Pagamento PDV #%d (%s)", o.SeqID, p.Method),
			Category:    "PDV",
			OrderID:     &orderRef,
			CreatedByID: actorID,
			CreatedAt:   time.Now(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *financialService) ReverseSaleTx(tx *gorm.DB, o *model.Order, reason string, actorID uuid.UUID) error {
	if o.CustomerID == nil {
		return nil
	}
	orderRef := o.ID

	// Sale reversal: DEBIT becomes CREDIT.
	if err := s.repo.CreateTx(tx, &model.FinancialTransaction{
		CustomerID:  *o.CustomerID,
		Type:        model.TxCredit,
		Amount:      o.FinalAmount,
		Description: fmt.Sprintf("ESTORNO: Compra PDV #%d — %s", o.SeqID, reason),
		Category:    "PDV",
		OrderID:     &orderRef,
		Reversal:    true,
		CreatedByID: actorID,
		CreatedAt:   time.Now(),
	}); err != nil {
		return err
	}

	// Payment reversals: CREDIT becomes DEBIT.
	for _, p := range o.Payments {
		if err := s.repo.CreateTx(tx, &model.FinancialTransaction{
			CustomerID:  *o.CustomerID,
			Type:        model.TxDebit,
			Amount:      p.Amount,
			Description: fmt.Sprintf("ESTORNO: Pagamento PDV #%d (%s)", o.SeqID, p.Method),
			Category:    "PDV",
			OrderID:     &orderRef,
			Reversal:    true,
			CreatedByID: actorID,
			CreatedAt:   time.Now(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *financialService) Statement(ctx context.Context, customerID uuid.UUID) (*dto.StatementResponse, error) {
	txs, err := s.repo.ListByCustomer(ctx, customerID, 200)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.StatementEntry, 0, len(txs))
	balance := decimal.Zero
	for _, t := range txs {
		var orderID *string
		if t.OrderID != nil {
			id := t.OrderID.String()
			orderID = &id
		}
		entries = append(entries, dto.StatementEntry{
			ID:          t.ID.String(),
			Type:        t.Type,
			Amount:      t.Amount,
			Description: t.Description,
			OrderID:     orderID,
			Reversal:    t.Reversal,
			CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		})
		if t.Type == model.TxCredit {
			balance = balance.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
	}
	return &dto.StatementResponse{
		CustomerID: customerID.String(),
		Entries:    entries,
		Balance:    balance,
	}, nil
}
