package wire

import (
	"eventhub/internal/adaptor"
	"eventhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Checkout flow endpoints used by the registration frontend.
	r.Route("/api/payments", func(r chi.Router) {
		r.Post("/create-order", paymentHandler.CreateOrder)
		r.Post("/verify-payment", paymentHandler.VerifyPayment)
		r.Post("/refund", paymentHandler.Refund)
	})
}
