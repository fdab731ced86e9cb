package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
)

type requirementRepo struct {
	db *sqlx.DB
}

// NewRequirementRepo creates a new PostgreSQL-backed RequirementRepository.
func NewRequirementRepo(db *sqlx.DB) port.RequirementRepository {
	return &requirementRepo{db: db}
}

func (r *requirementRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Requirement, error) {
	var req domain.Requirement
	err := r.db.GetContext(ctx, &req, "SELECT * FROM document_requirements WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("requirementRepo.GetByID: %w", err)
	}
	return &req, nil
}

func (r *requirementRepo) ListByLicenseType(ctx context.Context, licenseTypeID uuid.UUID) ([]domain.Requirement, error) {
	var reqs []domain.Requirement
	err := r.db.SelectContext(ctx, &reqs,
		"SELECT * FROM document_requirements WHERE license_type_id = $1 ORDER BY sort_order ASC",
		licenseTypeID)
	if err != nil {
		return nil, fmt.Errorf("requirementRepo.ListByLicenseType: %w", err)
	}
	return reqs, nil
}
