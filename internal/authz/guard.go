// Package authz holds the pure authorization predicates gating every
// application mutation. The functions take explicit actor/entity arguments so
// they are testable without any HTTP or storage context; callers translate a
// denial into a domain.AuthorizationError (or, for already-validated
// documents, the business-rule sentinel).
package authz

import (
	"lesenhub/internal/domain"
)

// Decision is the outcome of a guard check. Reason is set only on deny.
type Decision struct {
	Allowed bool
	Reason  domain.DenyReason
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with a machine-readable reason.
func Deny(reason domain.DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err converts a denial into a domain error; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return domain.NewAuthorizationError(d.Reason)
}

// CanView permits reading an application. Read access requires ownership in
// every state, terminal ones included.
func CanView(actor domain.Actor, app *domain.Application) Decision {
	if actor.ID != app.OwnerUserID {
		return Deny(domain.DenyNotOwner)
	}
	return Allow()
}

// CanMutate permits field updates and document actions: owner and draft only.
func CanMutate(actor domain.Actor, app *domain.Application) Decision {
	if actor.ID != app.OwnerUserID {
		return Deny(domain.DenyNotOwner)
	}
	if app.Status != domain.StatusDraft {
		return Deny(domain.DenyWrongStatus)
	}
	return Allow()
}

// CanSubmit permits submission. Check order matters for error surfacing:
// ownership, then status, then identity verification, then completeness.
// Completeness is computed by the caller so the full gap list can be reported
// when the deny reason is incomplete.
func CanSubmit(actor domain.Actor, app *domain.Application, complete bool) Decision {
	if d := CanMutate(actor, app); !d.Allowed {
		return d
	}
	if !actor.IdentityVerified {
		return Deny(domain.DenyUnverified)
	}
	if !complete {
		return Deny(domain.DenyIncomplete)
	}
	return Allow()
}

// CanCancel permits cancellation: owner and draft only.
func CanCancel(actor domain.Actor, app *domain.Application) Decision {
	return CanMutate(actor, app)
}

// CanUploadDocument permits uploading (or replacing) a requirement document.
func CanUploadDocument(actor domain.Actor, app *domain.Application) Decision {
	return CanMutate(actor, app)
}

// CanDeleteDocument permits deleting a document: owner, draft, and the
// document still unvalidated. Validated documents are immutable.
func CanDeleteDocument(actor domain.Actor, app *domain.Application, doc *domain.Document) Decision {
	if d := CanMutate(actor, app); !d.Allowed {
		return d
	}
	if doc.ValidationStatus == domain.ValidationValidated {
		return Deny(domain.DenyAlreadyValidated)
	}
	return Allow()
}

// CanAssignCompany permits referencing a company on create/update. This is an
// application-field-level check, distinct from application ownership.
func CanAssignCompany(actor domain.Actor, company *domain.Company) Decision {
	if company.OwnerUserID != actor.ID {
		return Deny(domain.DenyNotOwner)
	}
	return Allow()
}
