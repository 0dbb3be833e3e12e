package response

import (
	"time"

	"eventhub/internal/data/entity"
)

type VenueResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Capacity   int       `json:"capacity"`
	Facilities []string  `json:"facilities"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type VenueBookingResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	BookedBy  string    `json:"booked_by"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type VenueDetailResponse struct {
	VenueResponse
	Bookings []VenueBookingResponse `json:"bookings"`
}

// GroupedVenuesResponse maps effective status to venues in listing order.
type GroupedVenuesResponse map[string][]VenueResponse

func VenueToResponse(venue *entity.Venue) VenueResponse {
	facilities := venue.Facilities
	if facilities == nil {
		facilities = []string{}
	}

	return VenueResponse{
		ID:         venue.ID.String(),
		Name:       venue.Name,
		Type:       string(venue.Type),
		Capacity:   venue.Capacity,
		Facilities: facilities,
		Status:     string(venue.EffectiveStatus),
		CreatedAt:  venue.CreatedAt,
		UpdatedAt:  venue.UpdatedAt,
	}
}

func BookingToResponse(booking *entity.VenueBooking) VenueBookingResponse {
	return VenueBookingResponse{
		ID:        booking.ID.String(),
		EventID:   booking.EventID.String(),
		BookedBy:  booking.BookedBy.String(),
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
	}
}
