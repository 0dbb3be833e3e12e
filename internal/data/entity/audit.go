package entity

import (
	"github.com/google/uuid"
)

const (
	AuditActionVenueAllocated = "VenueAllocated"
	AuditActionVenueReleased  = "VenueReleased"
)

type AuditLog struct {
	BaseSimple
	Action   string    `db:"action"`
	TargetID uuid.UUID `db:"target_id"`
	Actor    uuid.UUID `db:"actor"`
	Detail   string    `db:"detail"`
}
