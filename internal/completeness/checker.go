// Package completeness decides whether an application is ready for
// submission. Check is a pure function over the application, the license
// type's requirements, and the uploaded documents; it has no side effects and
// is independently testable against synthetic requirement/document sets.
package completeness

import (
	"github.com/google/uuid"

	"lesenhub/internal/domain"
)

// Result is the outcome of a completeness check.
type Result struct {
	Complete bool
	// MissingRequirementIDs lists every mandatory requirement without a
	// document, in the registry's order.
	MissingRequirementIDs []uuid.UUID
	// Fields holds structural gaps in the operational details.
	Fields map[string]string
}

// Check evaluates the two completeness conditions: the operational details
// carry all structurally-required fields, and every mandatory requirement has
// a document. Optional requirements never block; a document's validation
// status is irrelevant before submission.
func Check(app *domain.Application, requirements []domain.Requirement, documents []domain.Document) Result {
	fieldErrs := app.OperationalDetails.FieldErrors()

	occupied := make(map[uuid.UUID]bool, len(documents))
	for _, doc := range documents {
		occupied[doc.RequirementID] = true
	}

	var missing []uuid.UUID
	for _, req := range requirements {
		if req.Mandatory && !occupied[req.ID] {
			missing = append(missing, req.ID)
		}
	}

	return Result{
		Complete:              len(fieldErrs) == 0 && len(missing) == 0,
		MissingRequirementIDs: missing,
		Fields:                fieldErrs,
	}
}

// Err converts an incomplete result into a domain.CompletenessError; nil when
// complete.
func (r Result) Err() error {
	if r.Complete {
		return nil
	}
	return &domain.CompletenessError{
		MissingRequirementIDs: r.MissingRequirementIDs,
		Fields:                r.Fields,
	}
}
