package usecase

import (
	"eventhub/internal/data/repository"
	"eventhub/internal/gateway"
	"eventhub/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Venue   VenueService
	Payment PaymentService
}

func NewService(repo *repository.Repository, gw gateway.Client, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Venue:   NewVenueService(repo, log),
		Payment: NewPaymentService(repo, gw, config, log),
	}
}
