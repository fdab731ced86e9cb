package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUploadFailed       = errors.New("file upload to storage failed")

	// ErrDocumentValidated rejects deletion of a reviewer-validated document.
	// A business-rule violation, deliberately distinct from an authorization
	// denial, mapped to 409 at the HTTP layer.
	ErrDocumentValidated = errors.New("document has been validated and cannot be deleted")
)

// AuthorizationError is a denial from the authorization guard. It always
// carries a machine-readable reason; the HTTP layer responds with a generic
// 403 but logs the reason.
type AuthorizationError struct {
	Reason DenyReason
}

func (e *AuthorizationError) Error() string {
	return "authorization denied: " + string(e.Reason)
}

// NewAuthorizationError wraps a deny reason as an error.
func NewAuthorizationError(reason DenyReason) *AuthorizationError {
	return &AuthorizationError{Reason: reason}
}

// ValidationError reports structurally invalid input. Fields maps field path
// to message so every violation is reported together, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

// NewValidationError builds a ValidationError from a field->message map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// CompletenessError is surfaced only on submit: every unmet mandatory
// requirement plus any structural gap in the operational details, reported in
// one pass.
type CompletenessError struct {
	MissingRequirementIDs []uuid.UUID
	Fields                map[string]string
}

func (e *CompletenessError) Error() string {
	return fmt.Sprintf("application incomplete: %d missing requirements, %d field errors",
		len(e.MissingRequirementIDs), len(e.Fields))
}
