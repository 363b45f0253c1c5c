package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/repository"
)

type CustomerService interface {
	Search(ctx context.Context, query string, limit int) ([]dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	// QuickCreate registers a walk-in customer from the POS.
	QuickCreate(ctx context.Context, req dto.QuickCustomerRequest) (*dto.CustomerResponse, error)
	Statement(ctx context.Context, id uuid.UUID) (*dto.StatementResponse, error)
}

type customerService struct {
	repo      repository.CustomerRepository
	financial FinancialService
}

func NewCustomerService(repo repository.CustomerRepository, financial FinancialService) CustomerService {
	return &customerService{repo: repo, financial: financial}
}

func (s *customerService) Search(ctx context.Context, query string, limit int) ([]dto.CustomerResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	customers, err := s.repo.Search(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, customerToResponse(&customers[i]))
	}
	return out, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	resp := customerToResponse(customer)
	return &resp, nil
}

func (s *customerService) QuickCreate(ctx context.Context, req dto.QuickCustomerRequest) (*dto.CustomerResponse, error) {
	customer := &model.Customer{
		Name:   strings.TrimSpace(req.Name),
		Phone:  req.Phone,
		Active: true,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	resp := customerToResponse(customer)
	return &resp, nil
}

func (s *customerService) Statement(ctx context.Context, id uuid.UUID) (*dto.StatementResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if notFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return s.financial.Statement(ctx, id)
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		IsStaff: c.IsStaff(),
	}
}
