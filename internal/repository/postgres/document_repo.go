package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) GetBySlot(ctx context.Context, applicationID, requirementID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE application_id = $1 AND requirement_id = $2",
		applicationID, requirementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetBySlot: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM documents WHERE application_id = $1 ORDER BY created_at ASC",
		applicationID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListByApplication: %w", err)
	}
	return docs, nil
}

// ReplaceSlot inserts the new document and deletes any previous occupant of
// its slot in a single transaction. The unique index on
// (application_id, requirement_id) backs the one-document-per-slot invariant;
// the row lock on the old occupant serializes concurrent replaces.
func (r *documentRepo) ReplaceSlot(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	doc.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ReplaceSlot begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var old domain.Document
	var replaced *domain.Document
	err = tx.GetContext(ctx, &old,
		"SELECT * FROM documents WHERE application_id = $1 AND requirement_id = $2 FOR UPDATE",
		doc.ApplicationID, doc.RequirementID)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", old.ID); err != nil {
			return nil, fmt.Errorf("documentRepo.ReplaceSlot delete old: %w", err)
		}
		replaced = &old
	case errors.Is(err, sql.ErrNoRows):
		// empty slot, plain insert
	default:
		return nil, fmt.Errorf("documentRepo.ReplaceSlot lock: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents
		 (id, application_id, requirement_id, filename, mime_type, size_bytes,
		  storage_key, validation_status, uploaded_by_user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		doc.ID, doc.ApplicationID, doc.RequirementID, doc.Filename, doc.MimeType,
		doc.SizeBytes, doc.StorageKey, doc.ValidationStatus, doc.UploadedByUserID,
		doc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ReplaceSlot insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("documentRepo.ReplaceSlot commit: %w", err)
	}
	return replaced, nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
