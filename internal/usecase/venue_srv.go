package usecase

import (
	"context"
	"fmt"
	"time"

	"eventhub/internal/data/entity"
	"eventhub/internal/data/repository"
	"eventhub/internal/dto/request"
	"eventhub/internal/dto/response"
	"eventhub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VenueService interface {
	GetVenues(ctx context.Context, filter repository.VenueFilter) (response.GroupedVenuesResponse, error)
	GetVenueByID(ctx context.Context, venueID string) (*response.VenueDetailResponse, error)

	CreateVenue(ctx context.Context, req *request.VenueRequest) (*response.VenueResponse, error)
	UpdateVenue(ctx context.Context, venueID string, req *request.VenueUpdateRequest) (*response.VenueResponse, error)
	DeleteVenue(ctx context.Context, venueID string) error

	Allocate(ctx context.Context, venueID string, req *request.AllocateVenueRequest) (*response.VenueDetailResponse, error)
	ReleaseBooking(ctx context.Context, venueID, bookingID string) error
}

type venueService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVenueService(repo *repository.Repository, log *zap.Logger) VenueService {
	return &venueService{
		repo: repo,
		log:  log.With(zap.String("service", "venue")),
	}
}

func (s *venueService) GetVenues(ctx context.Context, filter repository.VenueFilter) (response.GroupedVenuesResponse, error) {
	venues, err := s.repo.Venue.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get venues from repository",
			zap.Error(err),
			zap.String("type", filter.Type),
			zap.Int("min_capacity", filter.MinCapacity),
		)
		return nil, fmt.Errorf("get venues: %w", err)
	}

	// Partition by effective status; repository order (status, type,
	// capacity) is preserved within each group.
	grouped := make(response.GroupedVenuesResponse)
	for _, venue := range venues {
		status := string(venue.EffectiveStatus)
		grouped[status] = append(grouped[status], response.VenueToResponse(venue))
	}

	s.log.Info("Venues retrieved",
		zap.Int("count", len(venues)),
		zap.Int("status_groups", len(grouped)),
	)

	return grouped, nil
}

func (s *venueService) GetVenueByID(ctx context.Context, venueID string) (*response.VenueDetailResponse, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid venue ID format %s", entity.ErrValidation, venueID)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, entity.ErrNotFound)
	}

	bookings, err := s.repo.VenueBooking.FindByVenueID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bookings for venue %s: %w", venueID, err)
	}

	return buildVenueDetail(venue, bookings), nil
}

func (s *venueService) CreateVenue(ctx context.Context, req *request.VenueRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create venue validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	venue := &entity.Venue{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:            req.Name,
		Type:            entity.VenueType(req.Type),
		Capacity:        req.Capacity,
		Facilities:      req.Facilities,
		Status:          entity.VenueStatusAvailable,
		EffectiveStatus: entity.VenueStatusAvailable,
	}

	if err := s.repo.Venue.Create(ctx, venue); err != nil {
		s.log.Error("Failed to create venue",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create venue: %w", err)
	}

	s.log.Info("Venue created",
		zap.String("venue_id", venue.ID.String()),
		zap.String("name", venue.Name),
		zap.String("type", string(venue.Type)),
	)

	venueResp := response.VenueToResponse(venue)
	return &venueResp, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, venueID string, req *request.VenueUpdateRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid venue ID format %s", entity.ErrValidation, venueID)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, entity.ErrNotFound)
	}

	updated := false

	if req.Name != nil && *req.Name != venue.Name {
		venue.Name = *req.Name
		updated = true
	}

	if req.Type != nil && entity.VenueType(*req.Type) != venue.Type {
		venue.Type = entity.VenueType(*req.Type)
		updated = true
	}

	if req.Capacity != nil && *req.Capacity != venue.Capacity {
		venue.Capacity = *req.Capacity
		updated = true
	}

	if req.Facilities != nil {
		venue.Facilities = *req.Facilities
		updated = true
	}

	if req.Status != nil && entity.VenueStatus(*req.Status) != venue.Status {
		// Booked is filtered out by validation; only base states land here.
		// Status holds the stored base state, never the derived one, so
		// writing the row back cannot persist a transient Booked.
		venue.Status = entity.VenueStatus(*req.Status)
		updated = true
	}

	if updated {
		venue.UpdatedAt = time.Now()
		if err := s.repo.Venue.Update(ctx, venue); err != nil {
			s.log.Error("Failed to update venue",
				zap.Error(err),
				zap.String("venue_id", venueID),
			)
			return nil, fmt.Errorf("update venue %s: %w", venueID, err)
		}

		// Re-read so the response carries the freshly derived status.
		venue, err = s.repo.Venue.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get venue %s: %w", venueID, err)
		}
		if venue == nil {
			return nil, fmt.Errorf("venue %s: %w", venueID, entity.ErrNotFound)
		}
	}

	s.log.Info("Venue updated",
		zap.String("venue_id", venueID),
		zap.Bool("was_updated", updated),
	)

	venueResp := response.VenueToResponse(venue)
	return &venueResp, nil
}

// DeleteVenue soft-deletes a venue. Deactivation is refused while any
// booking interval still ends in the future; those must be released first.
func (s *venueService) DeleteVenue(ctx context.Context, venueID string) error {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return fmt.Errorf("%w: invalid venue ID format %s", entity.ErrValidation, venueID)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get venue %s: %w", venueID, err)
	}
	if venue == nil {
		return fmt.Errorf("venue %s: %w", venueID, entity.ErrNotFound)
	}

	futureCount, err := s.repo.VenueBooking.CountFutureByVenueID(ctx, id)
	if err != nil {
		return fmt.Errorf("count future bookings for venue %s: %w", venueID, err)
	}
	if futureCount > 0 {
		s.log.Warn("Refusing to delete venue with future bookings",
			zap.String("venue_id", venueID),
			zap.Int64("future_bookings", futureCount),
		)
		return fmt.Errorf("venue %s has %d future bookings: %w", venueID, futureCount, entity.ErrVenueHasBookings)
	}

	if err := s.repo.Venue.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete venue",
			zap.Error(err),
			zap.String("venue_id", venueID),
		)
		return fmt.Errorf("delete venue %s: %w", venueID, err)
	}

	s.log.Info("Venue deleted",
		zap.String("venue_id", venueID),
		zap.String("name", venue.Name),
	)

	return nil
}

func (s *venueService) Allocate(ctx context.Context, venueID string, req *request.AllocateVenueRequest) (*response.VenueDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Allocate validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid venue ID format %s", entity.ErrValidation, venueID)
	}

	if !req.StartTime.Before(req.EndTime) {
		return nil, fmt.Errorf("%w: start time must be before end time", entity.ErrValidation)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event ID format %s", entity.ErrValidation, req.EventID)
	}

	requestedBy, err := uuid.Parse(req.RequestedBy)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid requester ID format %s", entity.ErrValidation, req.RequestedBy)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, entity.ErrNotFound)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", req.EventID, err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", req.EventID, entity.ErrNotFound)
	}

	// Advisory precheck against the current interval set for an early,
	// cheap conflict answer. The repository re-runs this test under the
	// venue row lock, which is the authoritative one.
	existing, err := s.repo.VenueBooking.FindByVenueID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bookings for venue %s: %w", venueID, err)
	}
	for _, b := range existing {
		if entity.Overlaps(b.StartTime, b.EndTime, req.StartTime, req.EndTime) {
			return nil, fmt.Errorf("venue %s already booked %s to %s: %w",
				venueID,
				b.StartTime.Format(time.RFC3339),
				b.EndTime.Format(time.RFC3339),
				entity.ErrConflict)
		}
	}

	booking := &entity.VenueBooking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		VenueID:   id,
		EventID:   eventID,
		BookedBy:  requestedBy,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := s.repo.VenueBooking.Allocate(ctx, booking); err != nil {
		s.log.Error("Failed to allocate venue",
			zap.Error(err),
			zap.String("venue_id", venueID),
			zap.String("event_id", req.EventID),
		)
		return nil, fmt.Errorf("allocate venue %s: %w", venueID, err)
	}

	s.log.Info("Venue allocated",
		zap.String("venue_id", venueID),
		zap.String("event_id", req.EventID),
		zap.String("booking_id", booking.ID.String()),
		zap.Time("start_time", req.StartTime),
		zap.Time("end_time", req.EndTime),
	)

	// Audit write is fire-and-forget: its failure is logged, never
	// propagated, and never rolls back the allocation.
	s.writeAudit(ctx, entity.AuditActionVenueAllocated, id, requestedBy,
		fmt.Sprintf("event=%s window=[%s,%s)", req.EventID,
			req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339)))

	bookings := append(existing, booking)
	return buildVenueDetail(venue, bookings), nil
}

func (s *venueService) ReleaseBooking(ctx context.Context, venueID, bookingID string) error {
	vID, err := uuid.Parse(venueID)
	if err != nil {
		return fmt.Errorf("%w: invalid venue ID format %s", entity.ErrValidation, venueID)
	}

	bID, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: invalid booking ID format %s", entity.ErrValidation, bookingID)
	}

	booking, err := s.repo.VenueBooking.FindByID(ctx, bID)
	if err != nil {
		return fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil || booking.VenueID != vID {
		return fmt.Errorf("booking %s on venue %s: %w", bookingID, venueID, entity.ErrNotFound)
	}

	if err := s.repo.VenueBooking.Delete(ctx, bID); err != nil {
		return fmt.Errorf("release booking %s: %w", bookingID, err)
	}

	s.log.Info("Venue booking released",
		zap.String("venue_id", venueID),
		zap.String("booking_id", bookingID),
		zap.String("event_id", booking.EventID.String()),
	)

	s.writeAudit(ctx, entity.AuditActionVenueReleased, vID, booking.BookedBy,
		fmt.Sprintf("event=%s booking=%s", booking.EventID, bookingID))

	return nil
}

func (s *venueService) writeAudit(ctx context.Context, action string, target, actor uuid.UUID, detail string) {
	record := &entity.AuditLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Action:   action,
		TargetID: target,
		Actor:    actor,
		Detail:   detail,
	}

	go func(ctx context.Context) {
		if err := s.repo.Audit.Create(ctx, record); err != nil {
			s.log.Warn("Audit write failed",
				zap.Error(err),
				zap.String("action", action),
				zap.String("target_id", target.String()),
			)
		}
	}(context.WithoutCancel(ctx))
}

func buildVenueDetail(venue *entity.Venue, bookings []*entity.VenueBooking) *response.VenueDetailResponse {
	bookingResponses := make([]response.VenueBookingResponse, len(bookings))
	for i, b := range bookings {
		bookingResponses[i] = response.BookingToResponse(b)
	}

	return &response.VenueDetailResponse{
		VenueResponse: response.VenueToResponse(venue),
		Bookings:      bookingResponses,
	}
}
