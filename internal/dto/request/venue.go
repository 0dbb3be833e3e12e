package request

import "time"

type VenueRequest struct {
	Name       string   `json:"name" validate:"required,min=2,max=100"`
	Type       string   `json:"type" validate:"required,oneof=Auditorium Hall Lab Classroom Outdoor ConferenceRoom Other"`
	Capacity   int      `json:"capacity" validate:"required,gt=0"`
	Facilities []string `json:"facilities" validate:"omitempty,dive,min=1"`
}

// VenueUpdateRequest allows partial updates. Status accepts only the
// stored base states; Booked is derived and cannot be set directly.
type VenueUpdateRequest struct {
	Name       *string   `json:"name" validate:"omitempty,min=2,max=100"`
	Type       *string   `json:"type" validate:"omitempty,oneof=Auditorium Hall Lab Classroom Outdoor ConferenceRoom Other"`
	Capacity   *int      `json:"capacity" validate:"omitempty,gt=0"`
	Facilities *[]string `json:"facilities" validate:"omitempty,dive,min=1"`
	Status     *string   `json:"status" validate:"omitempty,oneof=Available Maintenance Reserved"`
}

type AllocateVenueRequest struct {
	EventID     string    `json:"eventId" validate:"required,uuid"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required"`
	RequestedBy string    `json:"requestedBy" validate:"required,uuid"`
}
