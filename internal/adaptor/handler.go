package adaptor

import (
	"errors"
	"net/http"

	"eventhub/internal/data/entity"
	"eventhub/internal/usecase"
	"eventhub/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Venue   *VenueHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Venue:   NewVenueHandler(service.Venue, log),
		Payment: NewPaymentHandler(service.Payment, log),
	}
}

// handleServiceError maps sentinel error kinds to HTTP responses. Every
// caller gets a distinguishable kind; nothing collapses into a generic 500
// unless it genuinely is one.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrConflict),
		errors.Is(err, entity.ErrVenueHasBookings),
		errors.Is(err, entity.ErrAlreadyRefunded),
		errors.Is(err, entity.ErrPaymentNotPending):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, entity.ErrGatewayTimeout):
		log.Error(operation+" failed - gateway timeout", zap.Error(err))
		utils.ResponseGatewayTimeout(w, "Payment gateway timed out")

	case errors.Is(err, entity.ErrGateway):
		log.Error(operation+" failed - gateway error", zap.Error(err))
		utils.ResponseBadGateway(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
