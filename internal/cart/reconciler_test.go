package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
)

func TestReconciler_NonCashOverpaymentNotPayable(t *testing.T) {
	// 50.00 sale over-tendered with PIX 80.00: electronic methods cannot be
	// refunded as change, so nothing is due and the sale stays blocked.
	r := NewReconciler(d("50.00"), false)
	require.NoError(t, r.AddPayment(Payment{Method: model.MethodPix, Amount: d("80.00")}))

	assert.True(t, r.RemainingToPay().IsZero())
	assert.True(t, r.ChangeDue().IsZero())
	assert.False(t, r.Payable())
}

func TestReconciler_MixedOverpaymentFundedByCash(t *testing.T) {
	// PIX 45.00 + CASH 20.00 on a 50.00 sale: the 15.00 excess fits inside
	// the cash tendered, so it comes back as change.
	r := NewReconciler(d("50.00"), false)
	require.NoError(t, r.AddPayment(Payment{Method: model.MethodPix, Amount: d("45.00")}))
	require.NoError(t, r.AddPayment(Payment{Method: model.MethodCash, Amount: d("20.00")}))

	assert.True(t, r.ChangeDue().Equal(d("15.00")))
	assert.True(t, r.Payable())
}

func TestReconciler_ExactPayment(t *testing.T) {
	r := NewReconciler(d("50.00"), false)
	require.NoError(t, r.AddPayment(Payment{Method: model.MethodPix, Amount: d("50.00")}))

	assert.True(t, r.RemainingToPay().IsZero())
	assert.True(t, r.ChangeDue().IsZero())
	assert.True(t, r.Payable())
}

func TestReconciler_CashOverpaymentYieldsChange(t *testing.T) {
	// Banho 50.00, customer hands over 60.00 in cash.
	r := NewReconciler(d("50.00"), false)
	require.NoError(t, r.AddPayment(Payment{Method: model.MethodCash, Amount: d("60.00")}))

	assert.True(t, r.ChangeDue().Equal(d("10.00")))
	assert.True(t, r.RemainingToPay().IsZero())
	assert.True(t, r.Payable())
}

func TestReconciler_SplitPayments(t *testing.T) {
	r := NewReconciler(d("130.00"), false)
	require.NoError(t, r.AddPayment(Payment{Method: model.MethodPix, Amount: d("80.00")}))

	assert.True(t, r.RemainingToPay().Equal(d("50.00")))
	assert.False(t, r.Payable())

	require.NoError(t, r.AddPayment(Payment{Method: model.MethodCreditCard, Amount: d("50.00"), Installments: 2}))
	assert.True(t, r.Payable())
	assert.True(t, r.ChangeDue().IsZero())
}

func TestReconciler_RejectsNonPositiveAmount(t *testing.T) {
	r := NewReconciler(d("50.00"), false)

	assert.ErrorIs(t, r.AddPayment(Payment{Method: model.MethodPix, Amount: d("0")}), ErrInvalidAmount)
	assert.ErrorIs(t, r.AddPayment(Payment{Method: model.MethodPix, Amount: d("-10.00")}), ErrInvalidAmount)
	assert.Empty(t, r.Payments())
}

func TestReconciler_RejectsUnknownMethod(t *testing.T) {
	r := NewReconciler(d("50.00"), false)
	assert.ErrorIs(t, r.AddPayment(Payment{Method: "CHEQUE", Amount: d("50.00")}), ErrInvalidMethod)
}

func TestReconciler_PayrollDeductionRequiresStaff(t *testing.T) {
	regular := NewReconciler(d("50.00"), false)
	assert.ErrorIs(t,
		regular.AddPayment(Payment{Method: model.MethodPayrollDeduction, Amount: d("50.00")}),
		ErrInvalidMethod)

	staff := NewReconciler(d("50.00"), true)
	assert.NoError(t,
		staff.AddPayment(Payment{Method: model.MethodPayrollDeduction, Amount: d("50.00")}))
	assert.True(t, staff.Payable())
}

func TestReconciler_RemovePayment(t *testing.T) {
	r := NewReconciler(d("100.00"), false)
	require.NoError(t, r.AddPayment(Payment{Method: model.MethodCash, Amount: d("100.00")}))
	require.True(t, r.Payable())

	id := r.Payments()[0].ID
	require.True(t, r.RemovePayment(id))

	assert.False(t, r.Payable())
	assert.True(t, r.RemainingToPay().Equal(d("100.00")))
}

func TestReconciler_RemainingNeverNegative(t *testing.T) {
	r := NewReconciler(d("30.00"), false)
	require.NoError(t, r.AddPayment(Payment{Method: model.MethodCash, Amount: d("100.00")}))

	assert.True(t, r.RemainingToPay().IsZero())
	assert.True(t, r.ChangeDue().Equal(d("70.00")))
}

func TestReconciler_ZeroTotalIsImmediatelyPayable(t *testing.T) {
	// A fully-discounted sale needs no payments at all.
	r := NewReconciler(d("0"), false)
	assert.True(t, r.Payable())
}
