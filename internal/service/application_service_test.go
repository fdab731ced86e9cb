package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
	"lesenhub/internal/service"
	"lesenhub/mocks"
)

type appServiceFixture struct {
	appRepo         *mocks.MockApplicationRepo
	documentRepo    *mocks.MockDocumentRepo
	requirementRepo *mocks.MockRequirementRepo
	licenseTypeRepo *mocks.MockLicenseTypeRepo
	companyRepo     *mocks.MockCompanyRepo
	userRepo        *mocks.MockUserRepo
	events          *mocks.MockEventSink
	svc             service.ApplicationService
}

func newAppServiceFixture() *appServiceFixture {
	f := &appServiceFixture{
		appRepo:         new(mocks.MockApplicationRepo),
		documentRepo:    new(mocks.MockDocumentRepo),
		requirementRepo: new(mocks.MockRequirementRepo),
		licenseTypeRepo: new(mocks.MockLicenseTypeRepo),
		companyRepo:     new(mocks.MockCompanyRepo),
		userRepo:        new(mocks.MockUserRepo),
		events:          new(mocks.MockEventSink),
	}
	f.svc = service.NewApplicationService(
		f.appRepo, f.documentRepo, f.requirementRepo,
		f.licenseTypeRepo, f.companyRepo, f.userRepo, f.events,
	)
	return f
}

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

func verifiedUser(id uuid.UUID) *domain.User {
	return &domain.User{
		ID:               id,
		Email:            "applicant@example.my",
		FullName:         "Aisyah binti Rahman",
		IdentityVerified: true,
		IsActive:         true,
	}
}

func activeCompany(owner uuid.UUID) *domain.Company {
	return &domain.Company{
		ID:          uuid.New(),
		OwnerUserID: owner,
		Name:        "Maju Holdings Sdn Bhd",
		Status:      "active",
	}
}

func draftApplication(owner uuid.UUID) *domain.Application {
	return &domain.Application{
		ID:                 uuid.New(),
		OwnerUserID:        owner,
		CompanyID:          uuid.New(),
		LicenseTypeID:      uuid.New(),
		Status:             domain.StatusDraft,
		OperationalDetails: validDetails(),
	}
}

func TestApplicationService_Create_Success(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	company := activeCompany(actorID)
	ltID := uuid.New()

	f.licenseTypeRepo.On("GetByID", mock.Anything, ltID).Return(&domain.LicenseType{ID: ltID}, nil)
	f.companyRepo.On("GetByID", mock.Anything, company.ID).Return(company, nil)
	f.appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)

	app, err := f.svc.Create(context.Background(), service.CreateApplicationInput{
		ActorID:            actorID,
		CompanyID:          company.ID,
		LicenseTypeID:      ltID,
		OperationalDetails: validDetails(),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, app.Status)
	assert.Equal(t, actorID, app.OwnerUserID)
	assert.Nil(t, app.SubmittedAt)
	assert.Equal(t, []domain.EventType{domain.EventApplicationCreated}, f.events.EventTypes())
}

func TestApplicationService_Create_CollectsAllFieldErrors(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	ltID := uuid.New()
	companyID := uuid.New()

	details := validDetails()
	details.BusinessName = ""
	details.PremiseAddress.City = ""

	f.licenseTypeRepo.On("GetByID", mock.Anything, ltID).Return(nil, domain.ErrNotFound)
	f.companyRepo.On("GetByID", mock.Anything, companyID).Return(nil, domain.ErrNotFound)

	_, err := f.svc.Create(context.Background(), service.CreateApplicationInput{
		ActorID:            actorID,
		CompanyID:          companyID,
		LicenseTypeID:      ltID,
		OperationalDetails: details,
	})

	var valErr *domain.ValidationError
	assert.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields, "operational_details.business_name")
	assert.Contains(t, valErr.Fields, "operational_details.premise_address.city")
	assert.Contains(t, valErr.Fields, "license_type_id")
	assert.Contains(t, valErr.Fields, "company_id")
	assert.Empty(t, f.events.Events())
}

func TestApplicationService_Create_UnownedCompany(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	company := activeCompany(uuid.New())
	ltID := uuid.New()

	f.licenseTypeRepo.On("GetByID", mock.Anything, ltID).Return(&domain.LicenseType{ID: ltID}, nil)
	f.companyRepo.On("GetByID", mock.Anything, company.ID).Return(company, nil)

	_, err := f.svc.Create(context.Background(), service.CreateApplicationInput{
		ActorID:            actorID,
		CompanyID:          company.ID,
		LicenseTypeID:      ltID,
		OperationalDetails: validDetails(),
	})

	var valErr *domain.ValidationError
	assert.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Fields, "company_id")
}

func TestApplicationService_Get_NotOwner(t *testing.T) {
	f := newAppServiceFixture()
	app := draftApplication(uuid.New())
	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)

	_, err := f.svc.Get(context.Background(), uuid.New(), app.ID)

	var authErr *domain.AuthorizationError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, domain.DenyNotOwner, authErr.Reason)
	f.documentRepo.AssertNotCalled(t, "ListByApplication", mock.Anything, mock.Anything)
}

func TestApplicationService_Get_ReturnsDocumentsAndCompany(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	app := draftApplication(actorID)
	docs := []domain.Document{{ID: uuid.New(), ApplicationID: app.ID}}
	company := activeCompany(actorID)

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.documentRepo.On("ListByApplication", mock.Anything, app.ID).Return(docs, nil)
	f.companyRepo.On("GetByID", mock.Anything, app.CompanyID).Return(company, nil)

	view, err := f.svc.Get(context.Background(), actorID, app.ID)

	assert.NoError(t, err)
	assert.Equal(t, app, view.Application)
	assert.Equal(t, docs, view.Documents)
	assert.Equal(t, company, view.Company)
}

func TestApplicationService_Update_WholeObjectReplace(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	app := draftApplication(actorID)
	newLT := uuid.New()

	newDetails := validDetails()
	newDetails.Notes = "extended opening hours"

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.licenseTypeRepo.On("GetByID", mock.Anything, newLT).Return(&domain.LicenseType{ID: newLT}, nil)
	f.appRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)

	updated, err := f.svc.Update(context.Background(), service.UpdateApplicationInput{
		ActorID:            actorID,
		ApplicationID:      app.ID,
		CompanyID:          app.CompanyID,
		LicenseTypeID:      newLT,
		OperationalDetails: newDetails,
	})

	assert.NoError(t, err)
	assert.Equal(t, newLT, updated.LicenseTypeID)
	assert.Equal(t, newDetails, updated.OperationalDetails)
	// Unchanged company is not re-validated.
	f.companyRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	assert.Equal(t, []domain.EventType{domain.EventApplicationUpdated}, f.events.EventTypes())
}

func TestApplicationService_Update_AfterSubmission(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	app := draftApplication(actorID)
	app.Status = domain.StatusSubmitted

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)

	_, err := f.svc.Update(context.Background(), service.UpdateApplicationInput{
		ActorID:            actorID,
		ApplicationID:      app.ID,
		CompanyID:          app.CompanyID,
		LicenseTypeID:      app.LicenseTypeID,
		OperationalDetails: validDetails(),
	})

	var authErr *domain.AuthorizationError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, domain.DenyWrongStatus, authErr.Reason)
	f.appRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApplicationService_Update_LostRaceDegeneratesToWrongStatus(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	app := draftApplication(actorID)

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.licenseTypeRepo.On("GetByID", mock.Anything, app.LicenseTypeID).Return(&domain.LicenseType{ID: app.LicenseTypeID}, nil)
	// The status changed between the read and the guarded UPDATE.
	f.appRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(domain.ErrNotFound)

	_, err := f.svc.Update(context.Background(), service.UpdateApplicationInput{
		ActorID:            actorID,
		ApplicationID:      app.ID,
		CompanyID:          app.CompanyID,
		LicenseTypeID:      app.LicenseTypeID,
		OperationalDetails: validDetails(),
	})

	var authErr *domain.AuthorizationError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, domain.DenyWrongStatus, authErr.Reason)
}

func TestApplicationService_Submit_Success(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	app := draftApplication(actorID)
	req := domain.Requirement{ID: uuid.New(), LicenseTypeID: app.LicenseTypeID, Mandatory: true}

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.userRepo.On("GetByID", mock.Anything, actorID).Return(verifiedUser(actorID), nil)
	f.requirementRepo.On("ListByLicenseType", mock.Anything, app.LicenseTypeID).Return([]domain.Requirement{req}, nil)
	f.documentRepo.On("ListByApplication", mock.Anything, app.ID).
		Return([]domain.Document{{ID: uuid.New(), ApplicationID: app.ID, RequirementID: req.ID}}, nil)
	f.appRepo.On("TransitionStatus", mock.Anything, app.ID, domain.StatusDraft, domain.StatusSubmitted, mock.AnythingOfType("*time.Time")).Return(nil)

	submitted, err := f.svc.Submit(context.Background(), actorID, app.ID)

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)
	assert.WithinDuration(t, time.Now().UTC(), *submitted.SubmittedAt, 5*time.Second)

	events := f.events.Events()
	assert.Len(t, events, 1)
	assert.Equal(t, domain.EventApplicationSubmitted, events[0].Type)
	assert.Equal(t, "applicant@example.my", events[0].Metadata["applicant_email"])
}

func TestApplicationService_Submit_Incomplete_ReportsEveryGap(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	app := draftApplication(actorID)
	app.OperationalDetails.PremiseAddress.State = ""

	r1 := domain.Requirement{ID: uuid.New(), LicenseTypeID: app.LicenseTypeID, Mandatory: true}
	r2 := domain.Requirement{ID: uuid.New(), LicenseTypeID: app.LicenseTypeID, Mandatory: true}

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.userRepo.On("GetByID", mock.Anything, actorID).Return(verifiedUser(actorID), nil)
	f.requirementRepo.On("ListByLicenseType", mock.Anything, app.LicenseTypeID).Return([]domain.Requirement{r1, r2}, nil)
	f.documentRepo.On("ListByApplication", mock.Anything, app.ID).Return([]domain.Document{}, nil)

	_, err := f.svc.Submit(context.Background(), actorID, app.ID)

	var complErr *domain.CompletenessError
	assert.True(t, errors.As(err, &complErr))
	assert.Equal(t, []uuid.UUID{r1.ID, r2.ID}, complErr.MissingRequirementIDs)
	assert.Contains(t, complErr.Fields, "operational_details.premise_address.state")
	f.appRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationService_Submit_UnverifiedIdentity(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	app := draftApplication(actorID)
	user := verifiedUser(actorID)
	user.IdentityVerified = false

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.userRepo.On("GetByID", mock.Anything, actorID).Return(user, nil)
	f.requirementRepo.On("ListByLicenseType", mock.Anything, app.LicenseTypeID).Return([]domain.Requirement{}, nil)
	f.documentRepo.On("ListByApplication", mock.Anything, app.ID).Return([]domain.Document{}, nil)

	_, err := f.svc.Submit(context.Background(), actorID, app.ID)

	var authErr *domain.AuthorizationError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, domain.DenyUnverified, authErr.Reason)
}

func TestApplicationService_Cancel_Success(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	app := draftApplication(actorID)

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)
	f.appRepo.On("TransitionStatus", mock.Anything, app.ID, domain.StatusDraft, domain.StatusCancelled, (*time.Time)(nil)).Return(nil)
	f.userRepo.On("GetByID", mock.Anything, actorID).Return(verifiedUser(actorID), nil)

	err := f.svc.Cancel(context.Background(), actorID, app.ID, "no longer needed")

	assert.NoError(t, err)
	events := f.events.Events()
	assert.Len(t, events, 1)
	assert.Equal(t, domain.EventApplicationCancelled, events[0].Type)
	assert.Equal(t, "no longer needed", events[0].Metadata["reason"])
}

func TestApplicationService_Cancel_Twice(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	app := draftApplication(actorID)
	app.Status = domain.StatusCancelled

	f.appRepo.On("GetByID", mock.Anything, app.ID).Return(app, nil)

	err := f.svc.Cancel(context.Background(), actorID, app.ID, "")

	var authErr *domain.AuthorizationError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, domain.DenyWrongStatus, authErr.Reason)
	f.appRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationService_List_PassesFilterThrough(t *testing.T) {
	f := newAppServiceFixture()
	actorID := uuid.New()
	filter := port.ApplicationFilter{Status: domain.StatusDraft, Limit: 20}

	f.appRepo.On("ListByOwner", mock.Anything, actorID, filter).
		Return([]domain.Application{*draftApplication(actorID)}, 1, nil)

	apps, total, err := f.svc.List(context.Background(), actorID, filter)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, apps, 1)
}
