package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is owned by the events subsystem; the allocation service only
// validates existence and stamps the assigned venue.
type Event struct {
	BaseNoDelete
	Title     string     `db:"title"`
	StartTime time.Time  `db:"start_time"`
	EndTime   time.Time  `db:"end_time"`
	VenueID   *uuid.UUID `db:"venue_id"`
}
