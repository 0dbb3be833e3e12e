package usecase

import (
	"context"
	"testing"
	"time"

	"eventhub/internal/data/entity"
	"eventhub/internal/data/repository"
	"eventhub/internal/dto/request"
	"eventhub/internal/gateway"
	"eventhub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const paymentTestSecret = "payment_test_secret"

type paymentFixture struct {
	svc           PaymentService
	payments      *fakePaymentRepo
	registrations *fakeRegistrationRepo
	gw            *fakeGateway

	registration *entity.Registration
	payment      *entity.Payment
}

// newPaymentFixture seeds one pending registration and one pending payment
// tied to provider order "order_abc".
func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	now := time.Now()
	registration := &entity.Registration{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		EventID:       uuid.New(),
		UserID:        uuid.New(),
		PaymentStatus: entity.RegistrationPaymentPending,
	}
	regID := registration.ID
	payment := &entity.Payment{
		BaseNoDelete:    entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		RegistrationID:  &regID,
		Amount:          50000,
		Currency:        "INR",
		Provider:        providerName,
		ProviderOrderID: "order_abc",
		Status:          entity.PaymentStatusPending,
	}

	f := &paymentFixture{
		payments:      newFakePaymentRepo(payment),
		registrations: newFakeRegistrationRepo(registration),
		gw:            &fakeGateway{},
		registration:  registration,
		payment:       payment,
	}

	repo := &repository.Repository{
		Payment:      f.payments,
		Registration: f.registrations,
	}
	config := &utils.Config{Gateway: utils.GatewayConfig{Secret: paymentTestSecret}}
	f.svc = NewPaymentService(repo, f.gw, config, zap.NewNop())
	return f
}

func (f *paymentFixture) verifyReq(orderID, paymentID string) *request.VerifyPaymentRequest {
	return &request.VerifyPaymentRequest{
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: gateway.SignCallback(paymentTestSecret, orderID, paymentID),
	}
}

func TestCreateOrder(t *testing.T) {
	f := newPaymentFixture(t)

	resp, err := f.svc.CreateOrder(context.Background(), &request.CreateOrderRequest{
		Amount:   500,
		Currency: "INR",
	})
	require.NoError(t, err)

	// Major units are converted before the gateway sees the amount
	assert.Equal(t, int64(50000), f.gw.lastAmount)
	assert.Equal(t, int64(50000), resp.Amount)
	assert.NotEmpty(t, f.gw.lastReceipt, "receipt is generated when omitted")

	persisted, err := f.payments.FindByOrderID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, entity.PaymentStatusPending, persisted.Status)
	assert.Equal(t, providerName, persisted.Provider)
	assert.Nil(t, persisted.RegistrationID)
}

func TestCreateOrder_KeepsCallerReceipt(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), &request.CreateOrderRequest{
		Amount:   500,
		Currency: "INR",
		Receipt:  "fest-2026-001",
	})
	require.NoError(t, err)
	assert.Equal(t, "fest-2026-001", f.gw.lastReceipt)
}

func TestCreateOrder_GatewayFailureLeavesNoPayment(t *testing.T) {
	f := newPaymentFixture(t)
	f.gw.createOrderFn = func(ctx context.Context, amount int64, currency, receipt string) (*gateway.Order, error) {
		return nil, entity.ErrGatewayTimeout
	}

	_, err := f.svc.CreateOrder(context.Background(), &request.CreateOrderRequest{
		Amount:   500,
		Currency: "INR",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrGatewayTimeout)

	// Only the seeded payment exists
	assert.Len(t, f.payments.payments, 1)
}

func TestCreateOrder_UnknownRegistration(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), &request.CreateOrderRequest{
		Amount:         500,
		Currency:       "INR",
		RegistrationID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCreateOrder_Validation(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), &request.CreateOrderRequest{
		Amount:   -10,
		Currency: "INR",
	})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = f.svc.CreateOrder(context.Background(), &request.CreateOrderRequest{
		Amount:   500,
		Currency: "RUPEES",
	})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestVerifyPayment(t *testing.T) {
	f := newPaymentFixture(t)

	resp, err := f.svc.VerifyPayment(context.Background(), f.verifyReq("order_abc", "pay_123"))
	require.NoError(t, err)
	assert.True(t, resp.Verified)

	assert.Equal(t, entity.PaymentStatusSuccess, f.payments.status(f.payment.ID))
	assert.Equal(t, entity.RegistrationPaymentCompleted, f.registration.PaymentStatus)
	require.NotNil(t, f.registration.PaymentID)
	assert.Equal(t, f.payment.ID, *f.registration.PaymentID)
}

func TestVerifyPayment_TamperedSignature(t *testing.T) {
	f := newPaymentFixture(t)

	// Signature computed for a different payment id
	req := f.verifyReq("order_abc", "pay_123")
	req.PaymentID = "pay_456"

	resp, err := f.svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Verified)

	assert.Equal(t, entity.PaymentStatusFailed, f.payments.status(f.payment.ID))
	assert.Equal(t, entity.RegistrationPaymentPending, f.registration.PaymentStatus)
}

func TestVerifyPayment_NoSuccessAfterFailure(t *testing.T) {
	f := newPaymentFixture(t)

	req := f.verifyReq("order_abc", "pay_123")
	req.Signature = gateway.SignCallback("wrong_secret", "order_abc", "pay_123")

	resp, err := f.svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Verified)

	// A later well-signed callback cannot resurrect the failed payment
	_, err = f.svc.VerifyPayment(context.Background(), f.verifyReq("order_abc", "pay_123"))
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrPaymentNotPending)
	assert.Equal(t, entity.PaymentStatusFailed, f.payments.status(f.payment.ID))
}

func TestVerifyPayment_UnknownOrder(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.VerifyPayment(context.Background(), f.verifyReq("order_missing", "pay_123"))
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRefund(t *testing.T) {
	f := newPaymentFixture(t)
	_, err := f.svc.VerifyPayment(context.Background(), f.verifyReq("order_abc", "pay_123"))
	require.NoError(t, err)

	resp, err := f.svc.Refund(context.Background(), &request.RefundRequest{
		PaymentID: f.payment.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "rfnd_test", resp.RefundID)

	assert.Equal(t, entity.PaymentStatusRefunded, f.payments.status(f.payment.ID))
	assert.Equal(t, entity.RegistrationPaymentRefunded, f.registration.PaymentStatus)
}

func TestRefund_AlreadyRefunded(t *testing.T) {
	f := newPaymentFixture(t)
	_, err := f.svc.VerifyPayment(context.Background(), f.verifyReq("order_abc", "pay_123"))
	require.NoError(t, err)

	_, err = f.svc.Refund(context.Background(), &request.RefundRequest{PaymentID: f.payment.ID.String()})
	require.NoError(t, err)

	_, err = f.svc.Refund(context.Background(), &request.RefundRequest{PaymentID: f.payment.ID.String()})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrAlreadyRefunded)
}

func TestRefund_PendingPayment(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.Refund(context.Background(), &request.RefundRequest{PaymentID: f.payment.ID.String()})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrConflict)
}

func TestRefund_GatewayFailureLeavesPaymentSettled(t *testing.T) {
	f := newPaymentFixture(t)
	_, err := f.svc.VerifyPayment(context.Background(), f.verifyReq("order_abc", "pay_123"))
	require.NoError(t, err)

	f.gw.refundFn = func(ctx context.Context, providerPaymentID string, amount int64) (*gateway.RefundResult, error) {
		return nil, entity.ErrGateway
	}

	_, err = f.svc.Refund(context.Background(), &request.RefundRequest{PaymentID: f.payment.ID.String()})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrGateway)

	assert.Equal(t, entity.PaymentStatusSuccess, f.payments.status(f.payment.ID))
	assert.Equal(t, entity.RegistrationPaymentCompleted, f.registration.PaymentStatus)
}

func TestRefund_PartialAmount(t *testing.T) {
	f := newPaymentFixture(t)
	_, err := f.svc.VerifyPayment(context.Background(), f.verifyReq("order_abc", "pay_123"))
	require.NoError(t, err)

	var gotAmount int64
	f.gw.refundFn = func(ctx context.Context, providerPaymentID string, amount int64) (*gateway.RefundResult, error) {
		gotAmount = amount
		return &gateway.RefundResult{ID: "rfnd_partial", PaymentID: providerPaymentID, Amount: amount, Status: "processed"}, nil
	}

	_, err = f.svc.Refund(context.Background(), &request.RefundRequest{
		PaymentID: f.payment.ID.String(),
		Amount:    10000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), gotAmount)
}
