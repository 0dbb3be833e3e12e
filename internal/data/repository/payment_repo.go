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

// PaymentRepository never deletes rows. State transitions are conditional
// UPDATEs guarded on the prior status so a racing writer or a failed
// gateway call can never half-apply one.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByOrderID(ctx context.Context, providerOrderID string) (*entity.Payment, error)
	MarkSucceeded(ctx context.Context, id uuid.UUID, providerPaymentID string) error
	MarkFailed(ctx context.Context, id uuid.UUID, providerPaymentID string) error
	MarkRefunded(ctx context.Context, id uuid.UUID, refundID string) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, registration_id, amount, currency, provider, provider_order_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.RegistrationID,
		payment.Amount,
		payment.Currency,
		payment.Provider,
		payment.ProviderOrderID,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("provider_order_id", payment.ProviderOrderID),
		)
		return fmt.Errorf("create payment for order %s: %w", payment.ProviderOrderID, err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, registration_id, amount, currency, provider, provider_order_id,
			provider_payment_id, status, refund_id, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id), id.String())
}

func (r *paymentRepository) FindByOrderID(ctx context.Context, providerOrderID string) (*entity.Payment, error) {
	query := `
		SELECT id, registration_id, amount, currency, provider, provider_order_id,
			provider_payment_id, status, refund_id, created_at, updated_at
		FROM payments
		WHERE provider_order_id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, providerOrderID), providerOrderID)
}

func (r *paymentRepository) scanOne(row pgx.Row, ref string) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.RegistrationID,
		&payment.Amount,
		&payment.Currency,
		&payment.Provider,
		&payment.ProviderOrderID,
		&payment.ProviderPaymentID,
		&payment.Status,
		&payment.RefundID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment", zap.Error(err), zap.String("ref", ref))
		return nil, fmt.Errorf("find payment %s: %w", ref, err)
	}

	return &payment, nil
}

func (r *paymentRepository) MarkSucceeded(ctx context.Context, id uuid.UUID, providerPaymentID string) error {
	query := `
		UPDATE payments
		SET status = 'success', provider_payment_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, providerPaymentID)
	if err != nil {
		r.log.Error("Failed to mark payment succeeded",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return fmt.Errorf("mark payment %s succeeded: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", id.String(), entity.ErrPaymentNotPending)
	}

	return nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, id uuid.UUID, providerPaymentID string) error {
	query := `
		UPDATE payments
		SET status = 'failed', provider_payment_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, providerPaymentID)
	if err != nil {
		r.log.Error("Failed to mark payment failed",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return fmt.Errorf("mark payment %s failed: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", id.String(), entity.ErrPaymentNotPending)
	}

	return nil
}

func (r *paymentRepository) MarkRefunded(ctx context.Context, id uuid.UUID, refundID string) error {
	query := `
		UPDATE payments
		SET status = 'refunded', refund_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'success'
	`

	result, err := r.db.Exec(ctx, query, id, refundID)
	if err != nil {
		r.log.Error("Failed to mark payment refunded",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return fmt.Errorf("mark payment %s refunded: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s is not refundable: %w", id.String(), entity.ErrConflict)
	}

	return nil
}
