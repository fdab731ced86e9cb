package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
)

type auditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates a new PostgreSQL-backed AuditRepository.
func NewAuditRepo(db *sqlx.DB) port.AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(ctx context.Context, entry *domain.AuditEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_events (id, event_type, actor_user_id, entity_id, metadata, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.EventType, entry.ActorUserID, entry.EntityID, entry.Metadata, entry.OccurredAt)
	if err != nil {
		return fmt.Errorf("auditRepo.Create: %w", err)
	}
	return nil
}

func (r *auditRepo) ListByEntity(ctx context.Context, entityID uuid.UUID, offset, limit int) ([]domain.AuditEvent, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM audit_events WHERE entity_id = $1", entityID)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListByEntity count: %w", err)
	}

	var entries []domain.AuditEvent
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM audit_events
		 WHERE entity_id = $1
		 ORDER BY occurred_at DESC
		 LIMIT $2 OFFSET $3`,
		entityID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListByEntity: %w", err)
	}
	return entries, total, nil
}
