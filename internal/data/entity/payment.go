package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment rows are never deleted; they are the financial audit trail.
// Amount is in minor currency units.
type Payment struct {
	BaseNoDelete
	RegistrationID    *uuid.UUID    `db:"registration_id"`
	Amount            int64         `db:"amount"`
	Currency          string        `db:"currency"`
	Provider          string        `db:"provider"`
	ProviderOrderID   string        `db:"provider_order_id"`
	ProviderPaymentID *string       `db:"provider_payment_id"`
	Status            PaymentStatus `db:"status"`
	RefundID          *string       `db:"refund_id"`
}
