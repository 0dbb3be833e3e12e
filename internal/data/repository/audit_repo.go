package repository

import (
	"context"
	"fmt"

	"eventhub/internal/data/entity"
	"eventhub/pkg/database"

	"go.uber.org/zap"
)

type AuditRepository interface {
	Create(ctx context.Context, record *entity.AuditLog) error
}

type auditRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditRepository(db database.PgxIface, log *zap.Logger) AuditRepository {
	return &auditRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit")),
	}
}

func (r *auditRepository) Create(ctx context.Context, record *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, action, target_id, actor, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.Action,
		record.TargetID,
		record.Actor,
		record.Detail,
		record.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to write audit record",
			zap.Error(err),
			zap.String("action", record.Action),
			zap.String("target_id", record.TargetID.String()),
		)
		return fmt.Errorf("write audit record %s: %w", record.Action, err)
	}

	return nil
}
