package service_test

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/repository"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. DB() returns nil so the services run their
// transaction bodies directly (fn(nil)).

type stubSessionRepo struct {
	sessions map[uuid.UUID]*model.CashSession
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[uuid.UUID]*model.CashSession)}
}

func (r *stubSessionRepo) DB() *gorm.DB { return nil }

func (r *stubSessionRepo) CreateTx(_ *gorm.DB, s *model.CashSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) findOpen() (*model.CashSession, error) {
	for _, s := range r.sessions {
		if s.Status == model.SessionOpen {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSessionRepo) FindOpenTx(_ *gorm.DB) (*model.CashSession, error) { return r.findOpen() }

func (r *stubSessionRepo) FindOpen(_ context.Context) (*model.CashSession, error) {
	return r.findOpen()
}

func (r *stubSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSessionRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.CashSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSessionRepo) UpdateTx(_ *gorm.DB, s *model.CashSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *stubSessionRepo) List(_ context.Context, _, _ int) ([]model.CashSession, int64, error) {
	out := make([]model.CashSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

var _ repository.SessionRepository = (*stubSessionRepo)(nil)

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
	seq    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) UpdateTx(_ *gorm.DB, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) MarkCancelledTx(_ *gorm.DB, id uuid.UUID, reason string, at time.Time) (bool, error) {
	o, ok := r.orders[id]
	if !ok || o.Status != model.OrderPaid {
		return false, nil
	}
	o.Status = model.OrderCancelled
	o.CancellationReason = &reason
	cancelledAt := at
	o.CancelledAt = &cancelledAt
	return true, nil
}

func (r *stubOrderRepo) NextSeqID(_ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) SumCashPaymentsTx(_ *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.orders {
		if o.CashSessionID != sessionID || o.Status != model.OrderPaid {
			continue
		}
		for _, p := range o.Payments {
			if p.Method == model.MethodCash {
				sum = sum.Add(p.Amount)
			}
		}
	}
	return sum, nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku && p.Active {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) Search(_ context.Context, query string, limit int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) DecrementStockGuardedTx(_ *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	p, ok := r.products[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubServiceRepo struct {
	services map[uuid.UUID]*model.GroomingService
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{services: make(map[uuid.UUID]*model.GroomingService)}
}

func (r *stubServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.GroomingService, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubServiceRepo) Search(_ context.Context, query string, limit int) ([]model.GroomingService, error) {
	var out []model.GroomingService
	for _, s := range r.services {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(query)) {
			out = append(out, *s)
		}
	}
	return out, nil
}

var _ repository.GroomingServiceRepository = (*stubServiceRepo)(nil)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) Search(_ context.Context, query string, limit int) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, *c)
		}
	}
	return out, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// stubMovementRepo captures inventory movements for assertion.
type stubMovementRepo struct {
	movements []model.InventoryMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.InventoryMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByProduct(_ context.Context, productID uuid.UUID, _ int) ([]model.InventoryMovement, error) {
	var out []model.InventoryMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]model.InventoryMovement, error) {
	var out []model.InventoryMovement
	for _, m := range r.movements {
		if m.OrderID != nil && *m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.InventoryMovementRepository = (*stubMovementRepo)(nil)

// stubFinancialRepo captures ledger entries for assertion.
type stubFinancialRepo struct {
	entries []model.FinancialTransaction
}

func (r *stubFinancialRepo) CreateTx(_ *gorm.DB, t *model.FinancialTransaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.entries = append(r.entries, *t)
	return nil
}

func (r *stubFinancialRepo) ListByCustomer(_ context.Context, customerID uuid.UUID, _ int) ([]model.FinancialTransaction, error) {
	var out []model.FinancialTransaction
	for _, e := range r.entries {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubFinancialRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]model.FinancialTransaction, error) {
	var out []model.FinancialTransaction
	for _, e := range r.entries {
		if e.OrderID != nil && *e.OrderID == orderID && !e.Reversal {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repository.FinancialRepository = (*stubFinancialRepo)(nil)

type stubAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAppointmentRepo) LinkOrderTx(_ *gorm.DB, appointmentID, orderID uuid.UUID) error {
	a, ok := r.appointments[appointmentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.POSOrderID = &orderID
	return nil
}

var _ repository.AppointmentRepository = (*stubAppointmentRepo)(nil)

// stubDispatcher records enqueued low-stock alerts.
type stubDispatcher struct {
	alerts []string // SKUs
}

func (d *stubDispatcher) EnqueueLowStock(_ context.Context, _ uuid.UUID, _, sku string, _, _ int) error {
	d.alerts = append(d.alerts, sku)
	return nil
}
