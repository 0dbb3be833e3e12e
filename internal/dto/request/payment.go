package request

// CreateOrderRequest carries the amount in major currency units; the
// service converts to minor units before calling the gateway.
type CreateOrderRequest struct {
	Amount         int64  `json:"amount" validate:"required,gt=0"`
	Currency       string `json:"currency" validate:"required,len=3"`
	Receipt        string `json:"receipt" validate:"omitempty,max=64"`
	RegistrationID string `json:"registrationId" validate:"omitempty,uuid"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required,hexadecimal"`
}

type RefundRequest struct {
	PaymentID string `json:"paymentId" validate:"required,uuid"`
	Amount    int64  `json:"amount" validate:"omitempty,gt=0"`
}
