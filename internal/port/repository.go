package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lesenhub/internal/domain"
)

// ApplicationFilter narrows application listings. Nil/zero fields are ignored.
type ApplicationFilter struct {
	Status        domain.ApplicationStatus
	LicenseTypeID *uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
	Offset        int
	Limit         int
}

// ApplicationRepository defines the contract for application persistence.
// Ownership is enforced by the authorization guard, not by query scoping;
// GetByID loads by id alone so the guard can distinguish not-owner from
// not-found.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID, filter ApplicationFilter) ([]domain.Application, int, error)
	// Update replaces company, license type and operational details wholesale.
	// Restricted to draft rows; returns domain.ErrNotFound when no draft row
	// matched.
	Update(ctx context.Context, app *domain.Application) error
	// TransitionStatus moves a row from one status to another, optionally
	// stamping submitted_at. The from-status guard in the WHERE clause keeps
	// transitions one-way; returns domain.ErrNotFound when no row matched.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.ApplicationStatus, submittedAt *time.Time) error
}

// DocumentRepository defines the contract for document metadata persistence.
type DocumentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	GetBySlot(ctx context.Context, applicationID, requirementID uuid.UUID) (*domain.Document, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.Document, error)
	// ReplaceSlot inserts doc and removes any previous occupant of its
	// (application, requirement) slot in one transaction, returning the
	// replaced document (nil when the slot was empty). A failure leaves the
	// previous occupant fully intact.
	ReplaceSlot(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LicenseTypeRepository reads license-type reference data.
type LicenseTypeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LicenseType, error)
}

// RequirementRepository reads the license-type requirement registry.
// Reference data, read-only.
type RequirementRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Requirement, error)
	ListByLicenseType(ctx context.Context, licenseTypeID uuid.UUID) ([]domain.Requirement, error)
}

// CompanyRepository reads company facts for ownership checks.
type CompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuditRepository persists domain events for compliance.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEvent) error
	ListByEntity(ctx context.Context, entityID uuid.UUID, offset, limit int) ([]domain.AuditEvent, int, error)
}
