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

type licenseTypeRepo struct {
	db *sqlx.DB
}

// NewLicenseTypeRepo creates a new PostgreSQL-backed LicenseTypeRepository.
func NewLicenseTypeRepo(db *sqlx.DB) port.LicenseTypeRepository {
	return &licenseTypeRepo{db: db}
}

func (r *licenseTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LicenseType, error) {
	var lt domain.LicenseType
	err := r.db.GetContext(ctx, &lt, "SELECT * FROM license_types WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("licenseTypeRepo.GetByID: %w", err)
	}
	return &lt, nil
}
