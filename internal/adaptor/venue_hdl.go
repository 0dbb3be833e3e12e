package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"eventhub/internal/data/repository"
	"eventhub/internal/dto/request"
	"eventhub/internal/usecase"
	"eventhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VenueHandler struct {
	service usecase.VenueService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log.With(zap.String("handler", "venue")),
	}
}

// GetVenues handles GET /api/venues (public)
// Query params: ?type=Hall&capacity=100&facilities=projector,wifi
func (h *VenueHandler) GetVenues(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.VenueFilter{
		Type:        query.Get("type"),
		MinCapacity: utils.ParseInt(query.Get("capacity"), 0),
	}

	if facilities := query.Get("facilities"); facilities != "" {
		for _, f := range strings.Split(facilities, ",") {
			if f = strings.TrimSpace(f); f != "" {
				filter.Facilities = append(filter.Facilities, f)
			}
		}
	}

	venues, err := h.service.GetVenues(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "get venues")
		return
	}

	utils.ResponseSuccess(w, "success", venues)
}

// GetVenueByID handles GET /api/venues/{id} (public)
func (h *VenueHandler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	venue, err := h.service.GetVenueByID(r.Context(), venueID)
	if err != nil {
		handleServiceError(w, h.log, err, "get venue by ID")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// CreateVenue handles POST /api/admin/venues
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req request.VenueRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	venue, err := h.service.CreateVenue(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create venue")
		return
	}

	utils.ResponseCreated(w, "success", venue)
}

// UpdateVenue handles PUT /api/admin/venues/{id}
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	var req request.VenueUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	venue, err := h.service.UpdateVenue(r.Context(), venueID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update venue")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// DeleteVenue handles DELETE /api/admin/venues/{id}
func (h *VenueHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	if err := h.service.DeleteVenue(r.Context(), venueID); err != nil {
		handleServiceError(w, h.log, err, "delete venue")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Allocate handles POST /api/admin/venues/{id}/allocate
func (h *VenueHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	var req request.AllocateVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	venue, err := h.service.Allocate(r.Context(), venueID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "allocate venue")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// ReleaseBooking handles DELETE /api/admin/venues/{id}/bookings/{bookingId}
func (h *VenueHandler) ReleaseBooking(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	bookingID := chi.URLParam(r, "bookingId")
	if venueID == "" || bookingID == "" {
		utils.ResponseBadRequest(w, "Venue ID and booking ID are required", nil)
		return
	}

	if err := h.service.ReleaseBooking(r.Context(), venueID, bookingID); err != nil {
		handleServiceError(w, h.log, err, "release booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
