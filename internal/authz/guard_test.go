package authz_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"lesenhub/internal/authz"
	"lesenhub/internal/domain"
)

func draftApp(owner uuid.UUID) *domain.Application {
	return &domain.Application{
		ID:          uuid.New(),
		OwnerUserID: owner,
		Status:      domain.StatusDraft,
	}
}

func TestCanView_Owner(t *testing.T) {
	owner := uuid.New()
	app := draftApp(owner)

	d := authz.CanView(domain.Actor{ID: owner}, app)
	assert.True(t, d.Allowed)
	assert.NoError(t, d.Err())
}

func TestCanView_OwnerOfTerminalApplication(t *testing.T) {
	owner := uuid.New()
	app := draftApp(owner)
	app.Status = domain.StatusSubmitted

	// Read access survives terminal states.
	assert.True(t, authz.CanView(domain.Actor{ID: owner}, app).Allowed)

	app.Status = domain.StatusCancelled
	assert.True(t, authz.CanView(domain.Actor{ID: owner}, app).Allowed)
}

func TestGuards_NotOwner(t *testing.T) {
	app := draftApp(uuid.New())
	stranger := domain.Actor{ID: uuid.New(), IdentityVerified: true}
	doc := &domain.Document{ValidationStatus: domain.ValidationUnvalidated}

	decisions := map[string]authz.Decision{
		"view":     authz.CanView(stranger, app),
		"mutate":   authz.CanMutate(stranger, app),
		"submit":   authz.CanSubmit(stranger, app, true),
		"cancel":   authz.CanCancel(stranger, app),
		"upload":   authz.CanUploadDocument(stranger, app),
		"deleteDoc": authz.CanDeleteDocument(stranger, app, doc),
	}
	for op, d := range decisions {
		assert.False(t, d.Allowed, op)
		assert.Equal(t, domain.DenyNotOwner, d.Reason, op)
	}
}

func TestCanMutate_WrongStatus(t *testing.T) {
	owner := uuid.New()
	for _, status := range []domain.ApplicationStatus{domain.StatusSubmitted, domain.StatusCancelled} {
		app := draftApp(owner)
		app.Status = status

		d := authz.CanMutate(domain.Actor{ID: owner}, app)
		assert.False(t, d.Allowed)
		assert.Equal(t, domain.DenyWrongStatus, d.Reason)
	}
}

func TestCanSubmit_CheckOrder(t *testing.T) {
	owner := uuid.New()

	// Not owner wins over everything else.
	app := draftApp(owner)
	d := authz.CanSubmit(domain.Actor{ID: uuid.New()}, app, false)
	assert.Equal(t, domain.DenyNotOwner, d.Reason)

	// Wrong status wins over verification and completeness.
	app.Status = domain.StatusSubmitted
	d = authz.CanSubmit(domain.Actor{ID: owner}, app, false)
	assert.Equal(t, domain.DenyWrongStatus, d.Reason)

	// Unverified wins over incompleteness.
	app.Status = domain.StatusDraft
	d = authz.CanSubmit(domain.Actor{ID: owner, IdentityVerified: false}, app, false)
	assert.Equal(t, domain.DenyUnverified, d.Reason)

	// Incomplete is the last gate.
	d = authz.CanSubmit(domain.Actor{ID: owner, IdentityVerified: true}, app, false)
	assert.Equal(t, domain.DenyIncomplete, d.Reason)

	// All gates passed.
	assert.True(t, authz.CanSubmit(domain.Actor{ID: owner, IdentityVerified: true}, app, true).Allowed)
}

func TestCanDeleteDocument_Validated(t *testing.T) {
	owner := uuid.New()
	app := draftApp(owner)
	doc := &domain.Document{ValidationStatus: domain.ValidationValidated}

	d := authz.CanDeleteDocument(domain.Actor{ID: owner}, app, doc)
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.DenyAlreadyValidated, d.Reason)
}

func TestCanDeleteDocument_Unvalidated(t *testing.T) {
	owner := uuid.New()
	app := draftApp(owner)
	doc := &domain.Document{ValidationStatus: domain.ValidationUnvalidated}

	assert.True(t, authz.CanDeleteDocument(domain.Actor{ID: owner}, app, doc).Allowed)
}

func TestCanAssignCompany(t *testing.T) {
	owner := uuid.New()
	company := &domain.Company{ID: uuid.New(), OwnerUserID: owner}

	assert.True(t, authz.CanAssignCompany(domain.Actor{ID: owner}, company).Allowed)

	d := authz.CanAssignCompany(domain.Actor{ID: uuid.New()}, company)
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.DenyNotOwner, d.Reason)
}

func TestDecision_Err(t *testing.T) {
	assert.NoError(t, authz.Allow().Err())

	err := authz.Deny(domain.DenyWrongStatus).Err()
	var authErr *domain.AuthorizationError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, domain.DenyWrongStatus, authErr.Reason)
}
