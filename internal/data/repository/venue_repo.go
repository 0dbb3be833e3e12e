package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventhub/internal/data/entity"
	"eventhub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// VenueFilter narrows the venue listing. Zero values mean "no filter".
type VenueFilter struct {
	Type        string
	MinCapacity int
	Facilities  []string
}

type VenueRepository interface {
	Create(ctx context.Context, venue *entity.Venue) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error)
	FindAll(ctx context.Context, filter VenueFilter) ([]*entity.Venue, error)
	Update(ctx context.Context, venue *entity.Venue) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type venueRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVenueRepository(db database.PgxIface, log *zap.Logger) VenueRepository {
	return &venueRepository{
		db:  db,
		log: log.With(zap.String("repository", "venue")),
	}
}

func (r *venueRepository) Create(ctx context.Context, venue *entity.Venue) error {
	query := `
		INSERT INTO venues (id, name, type, capacity, facilities, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Type,
		venue.Capacity,
		venue.Facilities,
		venue.Status,
		venue.CreatedAt,
		venue.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create venue",
			zap.Error(err),
			zap.String("name", venue.Name),
		)
		if isDuplicateKey(err) {
			return fmt.Errorf("venue name %s already exists: %w", venue.Name, entity.ErrConflict)
		}
		return fmt.Errorf("create venue %s: %w", venue.Name, err)
	}

	return nil
}

// isDuplicateKey reports a unique constraint violation, which the active
// venue name index raises on both insert and rename.
func isDuplicateKey(err error) bool {
	return strings.Contains(err.Error(), "duplicate key")
}

func (r *venueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	query := `
		SELECT v.id, v.name, v.type, v.capacity, v.facilities, v.status,
			CASE
				WHEN v.status <> 'Available' THEN v.status
				WHEN EXISTS (
					SELECT 1 FROM venue_bookings b
					WHERE b.venue_id = v.id AND b.start_time <= now() AND now() < b.end_time
				) THEN 'Booked'
				ELSE 'Available'
			END AS effective_status,
			v.created_at, v.updated_at, v.deleted_at
		FROM venues v
		WHERE v.id = $1 AND v.deleted_at IS NULL
	`

	var venue entity.Venue
	err := r.db.QueryRow(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Type,
		&venue.Capacity,
		&venue.Facilities,
		&venue.Status,
		&venue.EffectiveStatus,
		&venue.CreatedAt,
		&venue.UpdatedAt,
		&venue.DeletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find venue by ID",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return nil, fmt.Errorf("find venue by ID %s: %w", id.String(), err)
	}

	return &venue, nil
}

// FindAll returns active venues matching the filter. Ordering by effective
// status, then type, then capacity ascending is a listing contract, not a
// display default.
func (r *venueRepository) FindAll(ctx context.Context, filter VenueFilter) ([]*entity.Venue, error) {
	query := `
		SELECT v.id, v.name, v.type, v.capacity, v.facilities, v.status,
			CASE
				WHEN v.status <> 'Available' THEN v.status
				WHEN EXISTS (
					SELECT 1 FROM venue_bookings b
					WHERE b.venue_id = v.id AND b.start_time <= now() AND now() < b.end_time
				) THEN 'Booked'
				ELSE 'Available'
			END AS effective_status,
			v.created_at, v.updated_at
		FROM venues v
		WHERE v.deleted_at IS NULL
	`

	args := []any{}
	argNum := 1

	if filter.Type != "" {
		query += fmt.Sprintf(" AND v.type = $%d", argNum)
		args = append(args, filter.Type)
		argNum++
	}
	if filter.MinCapacity > 0 {
		query += fmt.Sprintf(" AND v.capacity >= $%d", argNum)
		args = append(args, filter.MinCapacity)
		argNum++
	}
	if len(filter.Facilities) > 0 {
		query += fmt.Sprintf(" AND v.facilities @> $%d", argNum)
		args = append(args, filter.Facilities)
		argNum++
	}

	query += " ORDER BY effective_status, v.type, v.capacity"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find venues", zap.Error(err))
		return nil, fmt.Errorf("find venues: %w", err)
	}
	defer rows.Close()

	var venues []*entity.Venue
	for rows.Next() {
		var venue entity.Venue
		err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Type,
			&venue.Capacity,
			&venue.Facilities,
			&venue.Status,
			&venue.EffectiveStatus,
			&venue.CreatedAt,
			&venue.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan venue row", zap.Error(err))
			return nil, fmt.Errorf("scan venue row: %w", err)
		}
		venues = append(venues, &venue)
	}

	return venues, nil
}

func (r *venueRepository) Update(ctx context.Context, venue *entity.Venue) error {
	query := `
		UPDATE venues
		SET name = $2, type = $3, capacity = $4, facilities = $5, status = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Type,
		venue.Capacity,
		venue.Facilities,
		venue.Status,
		venue.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update venue",
			zap.Error(err),
			zap.String("venue_id", venue.ID.String()),
		)
		if isDuplicateKey(err) {
			return fmt.Errorf("venue name %s already exists: %w", venue.Name, entity.ErrConflict)
		}
		return fmt.Errorf("update venue %s: %w", venue.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("venue %s: %w", venue.ID.String(), entity.ErrNotFound)
	}

	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE venues SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete venue",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return fmt.Errorf("delete venue %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("venue %s: %w", id.String(), entity.ErrNotFound)
	}

	r.log.Info("Venue deleted", zap.String("venue_id", id.String()))
	return nil
}
