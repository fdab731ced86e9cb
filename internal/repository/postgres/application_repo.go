package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
)

type applicationRepo struct {
	db *sqlx.DB
}

// NewApplicationRepo creates a new PostgreSQL-backed ApplicationRepository.
func NewApplicationRepo(db *sqlx.DB) port.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	query := `INSERT INTO applications
		(id, owner_user_id, company_id, license_type_id, status, operational_details,
		 submitted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.OwnerUserID, app.CompanyID, app.LicenseTypeID, app.Status,
		app.OperationalDetails, app.SubmittedAt, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("applicationRepo.Create: %w", err)
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	err := r.db.GetContext(ctx, &app, "SELECT * FROM applications WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("applicationRepo.GetByID: %w", err)
	}
	return &app, nil
}

func (r *applicationRepo) ListByOwner(ctx context.Context, ownerUserID uuid.UUID, filter port.ApplicationFilter) ([]domain.Application, int, error) {
	where := []string{"owner_user_id = $1"}
	args := []interface{}{ownerUserID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.LicenseTypeID != nil {
		args = append(args, *filter.LicenseTypeID)
		where = append(where, "license_type_id = $"+strconv.Itoa(len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where = append(where, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where = append(where, "created_at <= $"+strconv.Itoa(len(args)))
	}
	clause := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM applications WHERE "+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("applicationRepo.ListByOwner count: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		"SELECT * FROM applications WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		clause, len(args)-1, len(args))

	var apps []domain.Application
	err = r.db.SelectContext(ctx, &apps, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("applicationRepo.ListByOwner: %w", err)
	}
	return apps, total, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	app.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE applications
		 SET company_id = $1, license_type_id = $2, operational_details = $3, updated_at = $4
		 WHERE id = $5 AND status = $6`,
		app.CompanyID, app.LicenseTypeID, app.OperationalDetails, app.UpdatedAt,
		app.ID, domain.StatusDraft)
	if err != nil {
		return fmt.Errorf("applicationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.ApplicationStatus, submittedAt *time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE applications
		 SET status = $1, submitted_at = COALESCE($2, submitted_at), updated_at = $3
		 WHERE id = $4 AND status = $5`,
		to, submittedAt, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("applicationRepo.TransitionStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
