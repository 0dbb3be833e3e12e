package entity

import (
	"time"

	"github.com/google/uuid"
)

type VenueType string

const (
	VenueTypeAuditorium     VenueType = "Auditorium"
	VenueTypeHall           VenueType = "Hall"
	VenueTypeLab            VenueType = "Lab"
	VenueTypeClassroom      VenueType = "Classroom"
	VenueTypeOutdoor        VenueType = "Outdoor"
	VenueTypeConferenceRoom VenueType = "ConferenceRoom"
	VenueTypeOther          VenueType = "Other"
)

type VenueStatus string

const (
	VenueStatusAvailable   VenueStatus = "Available"
	VenueStatusBooked      VenueStatus = "Booked"
	VenueStatusMaintenance VenueStatus = "Maintenance"
	VenueStatusReserved    VenueStatus = "Reserved"
)

// Venue holds a bookable physical space. Status stores only the admin-set
// base state (Available/Maintenance/Reserved); EffectiveStatus is derived
// from the interval set on reads. Booked exists only as an effective
// status and is never written to the row.
type Venue struct {
	Base
	Name            string      `db:"name"`
	Type            VenueType   `db:"type"`
	Capacity        int         `db:"capacity"`
	Facilities      []string    `db:"facilities"`
	Status          VenueStatus `db:"status"`
	EffectiveStatus VenueStatus `db:"effective_status"`
}

// VenueBooking is one confirmed half-open interval [StartTime, EndTime)
// on a venue. Intervals on the same venue are pairwise disjoint.
type VenueBooking struct {
	BaseSimple
	VenueID   uuid.UUID `db:"venue_id"`
	EventID   uuid.UUID `db:"event_id"`
	BookedBy  uuid.UUID `db:"booked_by"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

// Overlaps reports whether two half-open intervals intersect. Abutting
// windows (a ends exactly where b starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Covers reports whether the booking interval contains t.
func (b *VenueBooking) Covers(t time.Time) bool {
	return !t.Before(b.StartTime) && t.Before(b.EndTime)
}
