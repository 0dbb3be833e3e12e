package gateway

import (
	"context"
)

// Order is the provider-side payment order created for a checkout.
// Amount is in minor currency units.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// RefundResult is the provider's acknowledgement of a refund.
type RefundResult struct {
	ID        string
	PaymentID string
	Amount    int64
	Status    string
}

// Client is the payment provider surface the usecase layer depends on.
// Implementations must honor ctx and fail with entity.ErrGatewayTimeout
// when the provider does not answer within the deadline.
type Client interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
	Refund(ctx context.Context, providerPaymentID string, amount int64) (*RefundResult, error)
}
