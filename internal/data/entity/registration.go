package entity

import (
	"github.com/google/uuid"
)

type RegistrationPaymentStatus string

const (
	RegistrationPaymentPending   RegistrationPaymentStatus = "pending"
	RegistrationPaymentCompleted RegistrationPaymentStatus = "completed"
	RegistrationPaymentRefunded  RegistrationPaymentStatus = "refunded"
)

// Registration is owned by the registration subsystem; the payment service
// flips its payment status after a verified callback or a refund.
type Registration struct {
	BaseNoDelete
	EventID       uuid.UUID                 `db:"event_id"`
	UserID        uuid.UUID                 `db:"user_id"`
	PaymentStatus RegistrationPaymentStatus `db:"payment_status"`
	PaymentID     *uuid.UUID                `db:"payment_id"`
}
