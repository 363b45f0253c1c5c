package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/pricing"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/repository"
)

// StockAlertDispatcher enqueues a low-stock notification for asynchronous
// delivery. Nil disables alerts (unit tests, worker-less deployments).
type StockAlertDispatcher interface {
	EnqueueLowStock(ctx context.Context, productID uuid.UUID, name, sku string, stock, minStock int) error
}

type OrderService interface {
	// Commit persists a finished cart as a PAID order: order row, item and
	// payment snapshots, stock decrements, inventory movements and customer
	// ledger entries, all in one transaction.
	Commit(ctx context.Context, sellerID uuid.UUID, req dto.CommitOrderRequest) (*dto.OrderResponse, error)
	// Cancel moves a PAID order to CANCELLED, restores stock and posts the
	// inverse ledger entries. Terminal: a cancelled order never changes again.
	Cancel(ctx context.Context, actorID uuid.UUID, orderID uuid.UUID, req dto.CancelOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	// AppointmentCheckout pre-populates a POS cart from a scheduled visit.
	AppointmentCheckout(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentCheckoutResponse, error)
}

type orderService struct {
	orders       repository.OrderRepository
	sessions     repository.SessionRepository
	products     repository.ProductRepository
	services     repository.GroomingServiceRepository
	customers    repository.CustomerRepository
	movements    repository.InventoryMovementRepository
	appointments repository.AppointmentRepository
	financial    FinancialService
	dispatcher   StockAlertDispatcher
	// enforceStockFloor: true aborts a commit that would drive stock negative;
	// false lets it through flagged as a stock conflict.
	enforceStockFloor bool
}

func NewOrderService(
	orders repository.OrderRepository,
	sessions repository.SessionRepository,
	products repository.ProductRepository,
	services repository.GroomingServiceRepository,
	customers repository.CustomerRepository,
	movements repository.InventoryMovementRepository,
	appointments repository.AppointmentRepository,
	financial FinancialService,
	dispatcher StockAlertDispatcher,
	enforceStockFloor bool,
) OrderService {
	return &orderService{
		orders:            orders,
		sessions:          sessions,
		products:          products,
		services:          services,
		customers:         customers,
		movements:         movements,
		appointments:      appointments,
		financial:         financial,
		dispatcher:        dispatcher,
		enforceStockFloor: enforceStockFloor,
	}
}

// resolvedItem is a validated commit line with its catalog row attached.
type resolvedItem struct {
	req     dto.OrderItemRequest
	product *model.Product // nil for service lines
	service *model.GroomingService
}

// lowStockAlert captures, inside the transaction, a product whose stock fell
// to or below its minimum. Dispatched only after a successful commit.
type lowStockAlert struct {
	productID uuid.UUID
	name      string
	sku       string
	stock     int
	minStock  int
}

// ── Commit ────────────────────────────────────────────────────────────────────

func (s *orderService) Commit(ctx context.Context, sellerID uuid.UUID, req dto.CommitOrderRequest) (*dto.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	sessionID, err := uuid.Parse(req.CashSessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	// Resolve catalog rows up front; existence failures abort before any write.
	resolved, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	totals := pricing.ComputeTotals(pricingLines(req.Items), req.GlobalDiscount)

	customer, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := validatePayments(req.Payments, totals.Total, customer); err != nil {
		return nil, err
	}

	var appointmentID *uuid.UUID
	if req.AppointmentID != nil {
		id, err := uuid.Parse(*req.AppointmentID)
		if err != nil {
			return nil, ErrOrderNotFound
		}
		appointmentID = &id
	}

	order := &model.Order{
		CashSessionID:  sessionID,
		SellerID:       sellerID,
		AppointmentID:  appointmentID,
		Status:         model.OrderPaid,
		TotalAmount:    totals.Subtotal,
		// Effective discount, not the nominal one: when the requested
		// discounts exceed the subtotal the total clamps at zero, and the
		// stored row must keep final = total − discount.
		DiscountAmount: totals.Subtotal.Sub(totals.Total),
		FinalAmount:    totals.Total,
		CreatedAt:      time.Now(),
	}
	if customer != nil {
		order.CustomerID = &customer.ID
	}

	var alerts []lowStockAlert

	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		// Lock the session row first: a concurrent close waits for us, and a
		// closed session rejects the sale no matter what the client believed.
		session, err := s.sessions.FindByIDTx(tx, sessionID)
		if err != nil {
			if notFound(err) {
				return ErrSessionNotFound
			}
			return err
		}
		if session.Status != model.SessionOpen {
			return ErrSessionClosed
		}

		seq, err := s.orders.NextSeqID(tx)
		if err != nil {
			return err
		}
		order.SeqID = seq

		order.Items = buildItemSnapshots(resolved)
		order.Payments = buildPaymentSnapshots(req.Payments)

		if err := s.orders.CreateTx(tx, order); err != nil {
			return err
		}

		for _, item := range resolved {
			if item.product == nil {
				continue // services carry no stock
			}
			alert, err := s.decrementStock(tx, order, item)
			if err != nil {
				return err
			}
			if alert != nil {
				alerts = append(alerts, *alert)
			}
		}

		if err := s.financial.PostSaleTx(tx, order, sellerID); err != nil {
			return err
		}

		if appointmentID != nil {
			if err := s.appointments.LinkOrderTx(tx, *appointmentID, order.ID); err != nil {
				return err
			}
		}

		if order.StockConflict {
			return s.orders.UpdateTx(tx, order)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Int("seq_id", order.SeqID).
		Str("order_id", order.ID.String()).
		Str("total", order.FinalAmount.String()).
		Bool("stock_conflict", order.StockConflict).
		Msg("venda registrada")

	s.dispatchAlerts(ctx, alerts)

	if customer != nil {
		order.Customer = customer
	}
	return orderToResponse(order), nil
}

func (s *orderService) resolveItems(ctx context.Context, items []dto.OrderItemRequest) ([]resolvedItem, error) {
	resolved := make([]resolvedItem, 0, len(items))
	for _, it := range items {
		if (it.ProductID == nil) == (it.ServiceID == nil) {
			return nil, ErrEmptyCart
		}
		ri := resolvedItem{req: it}
		if it.ProductID != nil {
			id, err := uuid.Parse(*it.ProductID)
			if err != nil {
				return nil, ErrProductNotFound
			}
			product, err := s.products.FindByID(ctx, id)
			if err != nil {
				if notFound(err) {
					return nil, ErrProductNotFound
				}
				return nil, err
			}
			ri.product = product
		} else {
			id, err := uuid.Parse(*it.ServiceID)
			if err != nil {
				return nil, ErrServiceNotFound
			}
			svc, err := s.services.FindByID(ctx, id)
			if err != nil {
				if notFound(err) {
					return nil, ErrServiceNotFound
				}
				return nil, err
			}
			ri.service = svc
		}
		resolved = append(resolved, ri)
	}
	return resolved, nil
}

func (s *orderService) resolveCustomer(ctx context.Context, customerID *string) (*model.Customer, error) {
	if customerID == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*customerID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// validatePayments re-checks what the client-side reconciler already checked:
// known methods, positive amounts, PAYROLL_DEDUCTION only for staff customers,
// and Σpayments ≥ total.
func validatePayments(payments []dto.OrderPaymentRequest, total decimal.Decimal, customer *model.Customer) error {
	paid := decimal.Zero
	for _, p := range payments {
		if !model.ValidPaymentMethod(p.Method) {
			return ErrInvalidPaymentMethod
		}
		if !p.Amount.IsPositive() {
			return ErrInsufficientPayment
		}
		if p.Method == model.MethodPayrollDeduction && (customer == nil || !customer.IsStaff()) {
			return ErrInvalidPaymentMethod
		}
		paid = paid.Add(p.Amount)
	}
	if paid.LessThan(total) {
		return ErrInsufficientPayment
	}
	return nil
}

func pricingLines(items []dto.OrderItemRequest) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		discountType := it.DiscountType
		if discountType == "" {
			discountType = pricing.DiscountAmount
		}
		lines = append(lines, pricing.Line{
			UnitPrice:    it.UnitPrice,
			Quantity:     it.Quantity,
			Discount:     it.Discount,
			DiscountType: discountType,
		})
	}
	return lines
}

// buildItemSnapshots freezes the cart lines. PERCENT discounts are resolved to
// amounts here so the stored row is self-describing.
func buildItemSnapshots(resolved []resolvedItem) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(resolved))
	for _, ri := range resolved {
		line := pricing.Line{
			UnitPrice:    ri.req.UnitPrice,
			Quantity:     ri.req.Quantity,
			Discount:     ri.req.Discount,
			DiscountType: ri.req.DiscountType,
		}
		if line.DiscountType == "" {
			line.DiscountType = pricing.DiscountAmount
		}
		discount := line.DiscountValue()

		item := model.OrderItem{
			Description: ri.req.Description,
			Quantity:    ri.req.Quantity,
			UnitPrice:   ri.req.UnitPrice,
			Discount:    discount,
			LineTotal:   line.Gross().Sub(discount),
		}
		if ri.product != nil {
			id := ri.product.ID
			item.ProductID = &id
			if item.Description == "" {
				item.Description = ri.product.Name
			}
		}
		if ri.service != nil {
			id := ri.service.ID
			item.ServiceID = &id
			if item.Description == "" {
				item.Description = ri.service.Name
			}
		}
		items = append(items, item)
	}
	return items
}

func buildPaymentSnapshots(payments []dto.OrderPaymentRequest) []model.OrderPayment {
	out := make([]model.OrderPayment, 0, len(payments))
	now := time.Now()
	for _, p := range payments {
		installments := p.Installments
		if installments < 1 {
			installments = 1
		}
		op := model.OrderPayment{
			Method:       p.Method,
			Amount:       p.Amount,
			Installments: installments,
			Notes:        p.Notes,
			PaidAt:       now,
		}
		if p.StaffID != nil {
			if id, err := uuid.Parse(*p.StaffID); err == nil {
				op.StaffID = &id
			}
		}
		out = append(out, op)
	}
	return out
}

// decrementStock takes the sold quantity off the product inside the commit
// transaction and records the movement. Under the stock floor policy a
// shortfall aborts the transaction; otherwise the sale goes through negative
// and the order is flagged for review.
func (s *orderService) decrementStock(tx *gorm.DB, order *model.Order, item resolvedItem) (*lowStockAlert, error) {
	p := item.product
	qty := item.req.Quantity

	// Locking re-read under the transaction; the pre-flight copy may be
	// stale, and the lock keeps before/after honest in the movement row.
	current, err := s.products.FindByIDTx(tx, p.ID)
	if err != nil {
		if notFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	before := current.Stock

	if s.enforceStockFloor {
		ok, err := s.products.DecrementStockGuardedTx(tx, p.ID, qty)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrInsufficientStock
		}
	} else {
		if err := s.products.AdjustStockTx(tx, p.ID, -qty); err != nil {
			return nil, err
		}
		if before-qty < 0 {
			order.StockConflict = true
		}
	}

	after := before - qty
	orderRef := order.ID
	if err := s.movements.CreateTx(tx, &model.InventoryMovement{
		ProductID:   p.ID,
		Type:        model.MovementSale,
		Quantity:    -qty,
		StockBefore: before,
		StockAfter:  after,
		Reason:      "Venda PDV",
		OrderID:     &orderRef,
		CreatedAt:   time.Now(),
	}); err != nil {
		return nil, err
	}

	if after <= current.MinStock {
		return &lowStockAlert{
			productID: p.ID,
			name:      p.Name,
			sku:       p.SKU,
			stock:     after,
			minStock:  current.MinStock,
		}, nil
	}
	return nil, nil
}

func (s *orderService) dispatchAlerts(ctx context.Context, alerts []lowStockAlert) {
	if s.dispatcher == nil {
		return
	}
	for _, a := range alerts {
		if err := s.dispatcher.EnqueueLowStock(ctx, a.productID, a.name, a.sku, a.stock, a.minStock); err != nil {
			log.Warn().Err(err).Str("sku", a.sku).Msg("falha ao enfileirar alerta de estoque")
		}
	}
}

// ── Cancel ────────────────────────────────────────────────────────────────────

func (s *orderService) Cancel(ctx context.Context, actorID uuid.UUID, orderID uuid.UUID, req dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	if len(req.Reason) < 5 {
		return nil, ErrReasonRequired
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if notFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status == model.OrderCancelled {
		return nil, ErrOrderAlreadyCancelled
	}
	if order.Status != model.OrderPaid {
		return nil, ErrOrderNotPaid
	}

	now := time.Now()
	txErr := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		// The pre-transaction read may be stale under concurrent cancels;
		// only the guarded transition decides who runs the restock and the
		// ledger reversal.
		ok, err := s.orders.MarkCancelledTx(tx, order.ID, req.Reason, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOrderAlreadyCancelled
		}
		order.Status = model.OrderCancelled
		order.CancellationReason = &req.Reason
		order.CancelledAt = &now

		// Restock every product line and leave a RETURN trail.
		for _, item := range order.Items {
			if item.ProductID == nil {
				continue
			}
			current, err := s.products.FindByIDTx(tx, *item.ProductID)
			if err != nil {
				if notFound(err) {
					return ErrProductNotFound
				}
				return err
			}
			if err := s.products.AdjustStockTx(tx, *item.ProductID, item.Quantity); err != nil {
				return err
			}
			orderRef := order.ID
			if err := s.movements.CreateTx(tx, &model.InventoryMovement{
				ProductID:   *item.ProductID,
				Type:        model.MovementReturn,
				Quantity:    item.Quantity,
				StockBefore: current.Stock,
				StockAfter:  current.Stock + item.Quantity,
				Reason:      fmt.Sprintf("Cancelamento PDV #%d: %s", order.SeqID, req.Reason),
				OrderID:     &orderRef,
				CreatedAt:   time.Now(),
			}); err != nil {
				return err
			}
		}

		return s.financial.ReverseSaleTx(tx, order, req.Reason, actorID)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Int("seq_id", order.SeqID).
		Str("order_id", order.ID.String()).
		Str("reason", req.Reason).
		Msg("venda cancelada")

	return orderToResponse(order), nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *orderService) Get(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if notFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return orderToResponse(order), nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *orderService) AppointmentCheckout(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentCheckoutResponse, error) {
	appt, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if notFound(err) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	resp := &dto.AppointmentCheckoutResponse{
		AppointmentID: appt.ID.String(),
		CustomerID:    appt.CustomerID.String(),
		PetName:       appt.PetName,
	}
	if appt.Customer != nil {
		resp.CustomerName = appt.Customer.Name
	}
	if appt.Service != nil {
		serviceID := appt.Service.ID.String()
		resp.Items = []dto.CheckoutItem{{
			ServiceID:   &serviceID,
			Description: appt.Service.Name,
			Quantity:    1,
			UnitPrice:   appt.Service.BasePrice,
			Discount:    decimal.Zero,
		}}
	}
	return resp, nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func orderToResponse(o *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:                 o.ID.String(),
		SeqID:              o.SeqID,
		CashSessionID:      o.CashSessionID.String(),
		Status:             o.Status,
		TotalAmount:        o.TotalAmount,
		DiscountAmount:     o.DiscountAmount,
		FinalAmount:        o.FinalAmount,
		StockConflict:      o.StockConflict,
		CancellationReason: o.CancellationReason,
		CreatedAt:          o.CreatedAt.Format(time.RFC3339),
	}
	if o.CustomerID != nil {
		id := o.CustomerID.String()
		resp.CustomerID = &id
	}
	if o.Customer != nil {
		name := o.Customer.Name
		resp.CustomerName = &name
	}

	paid := decimal.Zero
	for _, p := range o.Payments {
		resp.Payments = append(resp.Payments, dto.OrderPaymentResponse{
			Method:       p.Method,
			Amount:       p.Amount,
			Installments: p.Installments,
		})
		paid = paid.Add(p.Amount)
	}
	change := paid.Sub(o.FinalAmount)
	if change.IsNegative() {
		change = decimal.Zero
	}
	resp.ChangeDue = change

	for _, it := range o.Items {
		itemResp := dto.OrderItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			LineTotal:   it.LineTotal,
		}
		if it.ProductID != nil {
			id := it.ProductID.String()
			itemResp.ProductID = &id
		}
		if it.ServiceID != nil {
			id := it.ServiceID.String()
			itemResp.ServiceID = &id
		}
		resp.Items = append(resp.Items, itemResp)
	}
	return resp
}
