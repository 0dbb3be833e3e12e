package response

// OrderResponse echoes the provider order; Amount is in minor units.
type OrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type VerifyResponse struct {
	Verified bool `json:"verified"`
}

type RefundResponse struct {
	RefundID string `json:"refundId"`
}
