package repository

import (
	"eventhub/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Venue        VenueRepository
	VenueBooking VenueBookingRepository
	Event        EventRepository
	Registration RegistrationRepository
	Payment      PaymentRepository
	Audit        AuditRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Venue:        NewVenueRepository(db, log),
		VenueBooking: NewVenueBookingRepository(db, log),
		Event:        NewEventRepository(db, log),
		Registration: NewRegistrationRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Audit:        NewAuditRepository(db, log),
	}
}
