package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/model"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/service"
)

type sessionFixture struct {
	svc      service.SessionService
	sessions *stubSessionRepo
	orders   *stubOrderRepo
	operator uuid.UUID
}

func newSessionFixture() *sessionFixture {
	sessions := newStubSessionRepo()
	orders := newStubOrderRepo()
	return &sessionFixture{
		svc:      service.NewSessionService(sessions, orders),
		sessions: sessions,
		orders:   orders,
		operator: uuid.New(),
	}
}

func TestOpen_CreatesSession(t *testing.T) {
	f := newSessionFixture()

	resp, err := f.svc.Open(context.Background(), f.operator, dto.OpenSessionRequest{
		OpeningBalance: d("150.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.SessionOpen, resp.Status)
	assert.True(t, resp.OpeningBalance.Equal(d("150.00")))
	assert.Nil(t, resp.ClosingBalance)
}

func TestOpen_SecondSessionRejected(t *testing.T) {
	f := newSessionFixture()

	_, err := f.svc.Open(context.Background(), f.operator, dto.OpenSessionRequest{OpeningBalance: d("100.00")})
	require.NoError(t, err)

	_, err = f.svc.Open(context.Background(), f.operator, dto.OpenSessionRequest{OpeningBalance: d("50.00")})
	assert.ErrorIs(t, err, service.ErrSessionAlreadyOpen)
}

func TestClose_ReconcilesCashDrawer(t *testing.T) {
	// Opening 100.00 + one PAID CASH payment of 60.00 → expected 160.00.
	// Operator counts 155.00 → difference -5.00.
	f := newSessionFixture()

	opened, err := f.svc.Open(context.Background(), f.operator, dto.OpenSessionRequest{OpeningBalance: d("100.00")})
	require.NoError(t, err)
	sessionID := uuid.MustParse(opened.ID)

	require.NoError(t, f.orders.CreateTx(nil, &model.Order{
		CashSessionID: sessionID,
		Status:        model.OrderPaid,
		Payments: []model.OrderPayment{
			{Method: model.MethodCash, Amount: d("60.00")},
			{Method: model.MethodPix, Amount: d("30.00")}, // non-cash: ignored
		},
	}))

	resp, err := f.svc.Close(context.Background(), sessionID, f.operator, dto.CloseSessionRequest{
		ClosingBalance: d("155.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.SessionClosed, resp.Status)
	require.NotNil(t, resp.ExpectedClosingBalance)
	assert.True(t, resp.ExpectedClosingBalance.Equal(d("160.00")))
	require.NotNil(t, resp.Difference)
	assert.True(t, resp.Difference.Equal(d("-5.00")))
	require.NotNil(t, resp.ClosedAt)
}

func TestClose_IgnoresCancelledOrders(t *testing.T) {
	f := newSessionFixture()

	opened, err := f.svc.Open(context.Background(), f.operator, dto.OpenSessionRequest{OpeningBalance: d("100.00")})
	require.NoError(t, err)
	sessionID := uuid.MustParse(opened.ID)

	require.NoError(t, f.orders.CreateTx(nil, &model.Order{
		CashSessionID: sessionID,
		Status:        model.OrderCancelled,
		Payments:      []model.OrderPayment{{Method: model.MethodCash, Amount: d("40.00")}},
	}))

	resp, err := f.svc.Close(context.Background(), sessionID, f.operator, dto.CloseSessionRequest{
		ClosingBalance: d("100.00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.ExpectedClosingBalance.Equal(d("100.00")))
	assert.True(t, resp.Difference.IsZero())
}

func TestClose_IsTerminal(t *testing.T) {
	f := newSessionFixture()

	opened, err := f.svc.Open(context.Background(), f.operator, dto.OpenSessionRequest{OpeningBalance: d("100.00")})
	require.NoError(t, err)
	sessionID := uuid.MustParse(opened.ID)

	_, err = f.svc.Close(context.Background(), sessionID, f.operator, dto.CloseSessionRequest{ClosingBalance: d("100.00")})
	require.NoError(t, err)

	_, err = f.svc.Close(context.Background(), sessionID, f.operator, dto.CloseSessionRequest{ClosingBalance: d("100.00")})
	assert.ErrorIs(t, err, service.ErrSessionAlreadyClosed)
}

func TestClose_UnknownSession(t *testing.T) {
	f := newSessionFixture()
	_, err := f.svc.Close(context.Background(), uuid.New(), f.operator, dto.CloseSessionRequest{ClosingBalance: d("0.00")})
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestGetActive_NoneOpen(t *testing.T) {
	f := newSessionFixture()
	resp, err := f.svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestGetActive_ReturnsOpenSession(t *testing.T) {
	f := newSessionFixture()

	opened, err := f.svc.Open(context.Background(), f.operator, dto.OpenSessionRequest{OpeningBalance: d("100.00")})
	require.NoError(t, err)

	resp, err := f.svc.GetActive(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, opened.ID, resp.ID)
}
