package wire

import (
	"eventhub/internal/adaptor"
	"eventhub/pkg/middleware"
	"eventhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVenue(
	r chi.Router,
	venueHandler *adaptor.VenueHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/venues - grouped availability listing (public)
	// Supports query params: ?type=Hall&capacity=100&facilities=projector,wifi
	r.Get("/api/venues", venueHandler.GetVenues)

	// GET /api/venues/{id} - venue details with booking intervals (public)
	r.Get("/api/venues/{id}", venueHandler.GetVenueByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/venues", func(r chi.Router) {
		r.Use(middleware.APIKey(config.Admin.APIKey, log))

		r.Post("/", venueHandler.CreateVenue)
		r.Put("/{id}", venueHandler.UpdateVenue)
		r.Delete("/{id}", venueHandler.DeleteVenue)

		// Allocation and manual release
		r.Post("/{id}/allocate", venueHandler.Allocate)
		r.Delete("/{id}/bookings/{bookingId}", venueHandler.ReleaseBooking)
	})
}
