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

type RegistrationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error)
	MarkCompleted(ctx context.Context, id, paymentID uuid.UUID) error
	MarkRefunded(ctx context.Context, id uuid.UUID) error
}

type registrationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRegistrationRepository(db database.PgxIface, log *zap.Logger) RegistrationRepository {
	return &registrationRepository{
		db:  db,
		log: log.With(zap.String("repository", "registration")),
	}
}

func (r *registrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Registration, error) {
	query := `
		SELECT id, event_id, user_id, payment_status, payment_id, created_at, updated_at
		FROM registrations
		WHERE id = $1
	`

	var reg entity.Registration
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.PaymentStatus,
		&reg.PaymentID,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find registration by ID",
			zap.Error(err),
			zap.String("registration_id", id.String()),
		)
		return nil, fmt.Errorf("find registration by ID %s: %w", id.String(), err)
	}

	return &reg, nil
}

func (r *registrationRepository) MarkCompleted(ctx context.Context, id, paymentID uuid.UUID) error {
	query := `
		UPDATE registrations
		SET payment_status = 'completed', payment_id = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, paymentID)
	if err != nil {
		r.log.Error("Failed to mark registration completed",
			zap.Error(err),
			zap.String("registration_id", id.String()),
		)
		return fmt.Errorf("mark registration %s completed: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("registration %s: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}

func (r *registrationRepository) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE registrations
		SET payment_status = 'refunded', updated_at = NOW()
		WHERE id = $1 AND payment_status = 'completed'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark registration refunded",
			zap.Error(err),
			zap.String("registration_id", id.String()),
		)
		return fmt.Errorf("mark registration %s refunded: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("registration %s: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}
