package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

var (
	// ErrInvalidAmount rejects zero or negative tendered amounts.
	ErrInvalidAmount = errors.New("valor do pagamento deve ser maior que zero")
	// ErrInvalidMethod rejects unknown methods and PAYROLL_DEDUCTION for
	// customers without a staff profile.
	ErrInvalidMethod = errors.New("forma de pagamento inválida para este cliente")
)

// Payment is one tendered amount staged against the sale total.
type Payment struct {
	ID           uuid.UUID
	Method       string
	Amount       decimal.Decimal
	Installments int
	StaffID      *uuid.UUID
	Notes        *string
}

// Reconciler accumulates tendered payments against a target total. It is the
// client-side authority for "can this sale be finalized" — the backend
// re-validates coverage inside the commit transaction.
type Reconciler struct {
	total    decimal.Decimal
	payments []Payment
	// staffCustomer gates the PAYROLL_DEDUCTION method; set from the selected
	// customer's staff link by the caller.
	staffCustomer bool
}

// NewReconciler starts reconciliation against total. staffCustomer must
// reflect whether the selected customer resolves to a staff member.
func NewReconciler(total decimal.Decimal, staffCustomer bool) *Reconciler {
	return &Reconciler{total: total, staffCustomer: staffCustomer}
}

// AddPayment appends a tendered payment. Split payments are unbounded: any
// number of methods may be combined on one sale.
func (r *Reconciler) AddPayment(p Payment) error {
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !model.ValidPaymentMethod(p.Method) {
		return ErrInvalidMethod
	}
	if p.Method == model.MethodPayrollDeduction && !r.staffCustomer {
		return ErrInvalidMethod
	}
	if p.Installments < 1 {
		p.Installments = 1
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, p)
	return nil
}

// RemovePayment drops a staged payment before commit.
func (r *Reconciler) RemovePayment(id uuid.UUID) bool {
	for i := range r.payments {
		if r.payments[i].ID == id {
			r.payments = append(r.payments[:i], r.payments[i+1:]...)
			return true
		}
	}
	return false
}

// Payments returns a copy of the staged payments.
func (r *Reconciler) Payments() []Payment {
	out := make([]Payment, len(r.payments))
	copy(out, r.payments)
	return out
}

func (r *Reconciler) tendered() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range r.payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// RemainingToPay = max(0, total − Σpayments). Monotonically non-increasing as
// payments are added.
func (r *Reconciler) RemainingToPay() decimal.Decimal {
	rem := r.total.Sub(r.tendered())
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

func (r *Reconciler) cashTendered() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range r.payments {
		if p.Method == model.MethodCash {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// ChangeDue = max(0, Σpayments − total), capped at the cash tendered. Only
// cash funds change; electronic methods charge exact amounts, so an
// overpayment they cannot refund never shows up as change.
func (r *Reconciler) ChangeDue() decimal.Decimal {
	change := r.tendered().Sub(r.total)
	if change.IsNegative() {
		return decimal.Zero
	}
	if cash := r.cashTendered(); change.GreaterThan(cash) {
		return cash
	}
	return change
}

// Payable reports whether the sale can be committed: the total is covered and
// any overpayment is fully refundable from the cash tendered.
func (r *Reconciler) Payable() bool {
	if !r.RemainingToPay().IsZero() {
		return false
	}
	return r.tendered().Sub(r.total).LessThanOrEqual(r.cashTendered())
}
