package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated applicant. Identity verification is an
// external workflow; only its outcome is stored here.
type User struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	FullName         string    `db:"full_name" json:"full_name"`
	IdentityVerified bool      `db:"identity_verified" json:"identity_verified"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Actor is the acting user as seen by the authorization guard.
type Actor struct {
	ID               uuid.UUID
	IdentityVerified bool
}

// Company represents a registered business. Company verification is an
// external workflow; ownership and status are consumed as facts.
type Company struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerUserID uuid.UUID `db:"owner_user_id" json:"owner_user_id"`
	Name        string    `db:"name" json:"name"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// LicenseType is a category of license issued by the authority.
type LicenseType struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Requirement is a named document type a license type demands.
// Immutable reference data; many requirements per license type.
type Requirement struct {
	ID            uuid.UUID `db:"id" json:"id"`
	LicenseTypeID uuid.UUID `db:"license_type_id" json:"license_type_id"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	Mandatory     bool      `db:"mandatory" json:"mandatory"`
	SortOrder     int       `db:"sort_order" json:"sort_order"`
}

// PremiseAddress is the address of the premise the license covers.
type PremiseAddress struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	State    string `json:"state"`
}

// OperationalDetails is the structured business payload attached to an
// application. It is replaced wholesale on update, never merged.
type OperationalDetails struct {
	PremiseAddress PremiseAddress `json:"premise_address"`
	BusinessName   string         `json:"business_name"`
	OperationType  string         `json:"operation_type,omitempty"`
	EmployeeCount  int            `json:"employee_count,omitempty"`
	Notes          string         `json:"notes,omitempty"`
}

// Value stores OperationalDetails as jsonb.
func (d OperationalDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan reads OperationalDetails from jsonb.
func (d *OperationalDetails) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported operational_details source type %T", src)
	}
}

// FieldErrors returns the structurally-required fields that are missing,
// keyed by field path. An empty map means the payload is well-formed.
func (d *OperationalDetails) FieldErrors() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(d.PremiseAddress.Line1) == "" {
		errs["operational_details.premise_address.line1"] = "address line 1 is required"
	}
	if strings.TrimSpace(d.PremiseAddress.City) == "" {
		errs["operational_details.premise_address.city"] = "city is required"
	}
	if strings.TrimSpace(d.PremiseAddress.Postcode) == "" {
		errs["operational_details.premise_address.postcode"] = "postcode is required"
	}
	if strings.TrimSpace(d.PremiseAddress.State) == "" {
		errs["operational_details.premise_address.state"] = "state is required"
	}
	if strings.TrimSpace(d.BusinessName) == "" {
		errs["operational_details.business_name"] = "business name is required"
	}
	return errs
}

// Application is a license request record owned by one user.
// Status is the only field governing terminality: once Submitted or
// Cancelled, no mutation succeeds.
type Application struct {
	ID                 uuid.UUID          `db:"id" json:"id"`
	OwnerUserID        uuid.UUID          `db:"owner_user_id" json:"owner_user_id"`
	CompanyID          uuid.UUID          `db:"company_id" json:"company_id"`
	LicenseTypeID      uuid.UUID          `db:"license_type_id" json:"license_type_id"`
	Status             ApplicationStatus  `db:"status" json:"status"`
	OperationalDetails OperationalDetails `db:"operational_details" json:"operational_details"`
	SubmittedAt        *time.Time         `db:"submitted_at" json:"submitted_at"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}

// Document is an uploaded file occupying one requirement slot of one
// application. At most one document exists per (application, requirement).
type Document struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	ApplicationID    uuid.UUID        `db:"application_id" json:"application_id"`
	RequirementID    uuid.UUID        `db:"requirement_id" json:"requirement_id"`
	Filename         string           `db:"filename" json:"filename"`
	MimeType         string           `db:"mime_type" json:"mime_type"`
	SizeBytes        int64            `db:"size_bytes" json:"size_bytes"`
	StorageKey       string           `db:"storage_key" json:"-"`
	ValidationStatus ValidationStatus `db:"validation_status" json:"validation_status"`
	UploadedByUserID uuid.UUID        `db:"uploaded_by_user_id" json:"uploaded_by_user_id"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
}

// AuditEvent is a persisted domain event, kept for compliance.
type AuditEvent struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	EventType   EventType       `db:"event_type" json:"event_type"`
	ActorUserID uuid.UUID       `db:"actor_user_id" json:"actor_user_id"`
	EntityID    uuid.UUID       `db:"entity_id" json:"entity_id"`
	Metadata    json.RawMessage `db:"metadata" json:"metadata"`
	OccurredAt  time.Time       `db:"occurred_at" json:"occurred_at"`
}
