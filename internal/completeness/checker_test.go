package completeness_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"lesenhub/internal/completeness"
	"lesenhub/internal/domain"
)

func validDetails() domain.OperationalDetails {
	return domain.OperationalDetails{
		PremiseAddress: domain.PremiseAddress{
			Line1:    "12 Jalan Ampang",
			City:     "Kuala Lumpur",
			Postcode: "50450",
			State:    "Wilayah Persekutuan",
		},
		BusinessName: "Kedai Kopi Maju",
	}
}

func requirement(licenseTypeID uuid.UUID, mandatory bool) domain.Requirement {
	return domain.Requirement{
		ID:            uuid.New(),
		LicenseTypeID: licenseTypeID,
		Name:          "requirement",
		Mandatory:     mandatory,
	}
}

func docFor(appID, reqID uuid.UUID) domain.Document {
	return domain.Document{
		ID:            uuid.New(),
		ApplicationID: appID,
		RequirementID: reqID,
	}
}

func TestCheck_Complete(t *testing.T) {
	ltID := uuid.New()
	app := &domain.Application{ID: uuid.New(), LicenseTypeID: ltID, OperationalDetails: validDetails()}

	mandatory := requirement(ltID, true)
	optional := requirement(ltID, false)

	result := completeness.Check(app,
		[]domain.Requirement{mandatory, optional},
		[]domain.Document{docFor(app.ID, mandatory.ID)},
	)

	assert.True(t, result.Complete)
	assert.Empty(t, result.MissingRequirementIDs)
	assert.Empty(t, result.Fields)
	assert.NoError(t, result.Err())
}

func TestCheck_ReportsEveryMissingMandatoryRequirement(t *testing.T) {
	ltID := uuid.New()
	app := &domain.Application{ID: uuid.New(), LicenseTypeID: ltID, OperationalDetails: validDetails()}

	r1 := requirement(ltID, true)
	r2 := requirement(ltID, true)
	r3 := requirement(ltID, true)

	result := completeness.Check(app, []domain.Requirement{r1, r2, r3}, nil)

	assert.False(t, result.Complete)
	assert.Equal(t, []uuid.UUID{r1.ID, r2.ID, r3.ID}, result.MissingRequirementIDs)
}

func TestCheck_OptionalRequirementsNeverBlock(t *testing.T) {
	ltID := uuid.New()
	app := &domain.Application{ID: uuid.New(), LicenseTypeID: ltID, OperationalDetails: validDetails()}

	result := completeness.Check(app,
		[]domain.Requirement{requirement(ltID, false), requirement(ltID, false)},
		nil,
	)

	assert.True(t, result.Complete)
}

func TestCheck_ValidationStatusIrrelevant(t *testing.T) {
	ltID := uuid.New()
	app := &domain.Application{ID: uuid.New(), LicenseTypeID: ltID, OperationalDetails: validDetails()}

	mandatory := requirement(ltID, true)
	doc := docFor(app.ID, mandatory.ID)
	doc.ValidationStatus = domain.ValidationUnvalidated

	// An unvalidated document still fills the slot before submission.
	result := completeness.Check(app, []domain.Requirement{mandatory}, []domain.Document{doc})
	assert.True(t, result.Complete)
}

func TestCheck_StructuralFieldErrors(t *testing.T) {
	ltID := uuid.New()
	details := validDetails()
	details.PremiseAddress.Postcode = ""
	details.BusinessName = "   "
	app := &domain.Application{ID: uuid.New(), LicenseTypeID: ltID, OperationalDetails: details}

	result := completeness.Check(app, nil, nil)

	assert.False(t, result.Complete)
	assert.Contains(t, result.Fields, "operational_details.premise_address.postcode")
	assert.Contains(t, result.Fields, "operational_details.business_name")
}

func TestCheck_BothErrorClassesReportedTogether(t *testing.T) {
	ltID := uuid.New()
	details := validDetails()
	details.PremiseAddress.Line1 = ""
	app := &domain.Application{ID: uuid.New(), LicenseTypeID: ltID, OperationalDetails: details}

	mandatory := requirement(ltID, true)
	result := completeness.Check(app, []domain.Requirement{mandatory}, nil)

	assert.False(t, result.Complete)
	assert.Len(t, result.MissingRequirementIDs, 1)
	assert.Contains(t, result.Fields, "operational_details.premise_address.line1")

	err := result.Err()
	var complErr *domain.CompletenessError
	assert.True(t, errors.As(err, &complErr))
	assert.Equal(t, []uuid.UUID{mandatory.ID}, complErr.MissingRequirementIDs)
	assert.Contains(t, complErr.Fields, "operational_details.premise_address.line1")
}
