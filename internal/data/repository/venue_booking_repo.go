package repository

import (
	"context"
	"errors"
	"fmt"

	"eventhub/internal/data/entity"
	"eventhub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VenueBookingRepository interface {
	// Allocate inserts the interval only if it does not overlap any
	// confirmed interval on the same venue. The check and the insert run
	// in one transaction holding the venue row lock, so two racing
	// allocations for the same venue serialize.
	Allocate(ctx context.Context, booking *entity.VenueBooking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VenueBooking, error)
	FindByVenueID(ctx context.Context, venueID uuid.UUID) ([]*entity.VenueBooking, error)
	CountFutureByVenueID(ctx context.Context, venueID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type venueBookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVenueBookingRepository(db database.PgxIface, log *zap.Logger) VenueBookingRepository {
	return &venueBookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "venue_booking")),
	}
}

func (r *venueBookingRepository) Allocate(ctx context.Context, booking *entity.VenueBooking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin allocation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the venue row. Concurrent allocations on the same venue queue
	// here; allocations on different venues do not contend.
	var venueID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM venues WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`,
		booking.VenueID,
	).Scan(&venueID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("venue %s: %w", booking.VenueID.String(), entity.ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to lock venue for allocation",
			zap.Error(err),
			zap.String("venue_id", booking.VenueID.String()),
		)
		return fmt.Errorf("lock venue %s: %w", booking.VenueID.String(), err)
	}

	// Half-open overlap test: existing.start < new.end AND new.start < existing.end
	var overlaps bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM venue_bookings
			WHERE venue_id = $1 AND start_time < $3 AND $2 < end_time
		)`,
		booking.VenueID, booking.StartTime, booking.EndTime,
	).Scan(&overlaps)
	if err != nil {
		return fmt.Errorf("check overlap for venue %s: %w", booking.VenueID.String(), err)
	}
	if overlaps {
		return fmt.Errorf("venue %s already booked for an overlapping window: %w",
			booking.VenueID.String(), entity.ErrConflict)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO venue_bookings (id, venue_id, event_id, booked_by, start_time, end_time, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		booking.ID,
		booking.VenueID,
		booking.EventID,
		booking.BookedBy,
		booking.StartTime,
		booking.EndTime,
		booking.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert venue booking",
			zap.Error(err),
			zap.String("venue_id", booking.VenueID.String()),
			zap.String("event_id", booking.EventID.String()),
		)
		return fmt.Errorf("insert booking for venue %s: %w", booking.VenueID.String(), err)
	}

	// Stamp the event with its assigned venue in the same transaction.
	_, err = tx.Exec(ctx,
		`UPDATE events SET venue_id = $1, updated_at = NOW() WHERE id = $2`,
		booking.VenueID, booking.EventID,
	)
	if err != nil {
		return fmt.Errorf("stamp event %s with venue: %w", booking.EventID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit allocation for venue %s: %w", booking.VenueID.String(), err)
	}

	return nil
}

func (r *venueBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VenueBooking, error) {
	query := `
		SELECT id, venue_id, event_id, booked_by, start_time, end_time, created_at
		FROM venue_bookings
		WHERE id = $1
	`

	var booking entity.VenueBooking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.VenueID,
		&booking.EventID,
		&booking.BookedBy,
		&booking.StartTime,
		&booking.EndTime,
		&booking.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *venueBookingRepository) FindByVenueID(ctx context.Context, venueID uuid.UUID) ([]*entity.VenueBooking, error) {
	query := `
		SELECT id, venue_id, event_id, booked_by, start_time, end_time, created_at
		FROM venue_bookings
		WHERE venue_id = $1
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, venueID)
	if err != nil {
		r.log.Error("Failed to find bookings by venue ID",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
		)
		return nil, fmt.Errorf("find bookings by venue ID %s: %w", venueID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.VenueBooking
	for rows.Next() {
		var booking entity.VenueBooking
		err := rows.Scan(
			&booking.ID,
			&booking.VenueID,
			&booking.EventID,
			&booking.BookedBy,
			&booking.StartTime,
			&booking.EndTime,
			&booking.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *venueBookingRepository) CountFutureByVenueID(ctx context.Context, venueID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM venue_bookings WHERE venue_id = $1 AND end_time > NOW()`

	var count int64
	if err := r.db.QueryRow(ctx, query, venueID).Scan(&count); err != nil {
		r.log.Error("Failed to count future bookings",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
		)
		return 0, fmt.Errorf("count future bookings for venue %s: %w", venueID.String(), err)
	}

	return count, nil
}

func (r *venueBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM venue_bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id.String(), entity.ErrNotFound)
	}

	r.log.Info("Venue booking released", zap.String("booking_id", id.String()))
	return nil
}
