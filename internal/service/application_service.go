package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"lesenhub/internal/authz"
	"lesenhub/internal/completeness"
	"lesenhub/internal/domain"
	"lesenhub/internal/port"
)

// CreateApplicationInput is the DTO for creating an application.
type CreateApplicationInput struct {
	ActorID            uuid.UUID
	CompanyID          uuid.UUID
	LicenseTypeID      uuid.UUID
	OperationalDetails domain.OperationalDetails
}

// UpdateApplicationInput is the DTO for updating an application. The
// operational details are replaced wholesale; callers resend the full object.
type UpdateApplicationInput struct {
	ActorID            uuid.UUID
	ApplicationID      uuid.UUID
	CompanyID          uuid.UUID
	LicenseTypeID      uuid.UUID
	OperationalDetails domain.OperationalDetails
}

// ApplicationView is the read model returned by Get: the application with its
// attached documents and a company summary.
type ApplicationView struct {
	Application *domain.Application `json:"application"`
	Documents   []domain.Document   `json:"documents"`
	Company     *domain.Company     `json:"company"`
}

// ApplicationService is the application lifecycle state machine. Every
// mutation runs the authorization guard first; submit additionally runs the
// completeness check; each successful transition emits a domain event.
type ApplicationService interface {
	Create(ctx context.Context, input CreateApplicationInput) (*domain.Application, error)
	List(ctx context.Context, actorID uuid.UUID, filter port.ApplicationFilter) ([]domain.Application, int, error)
	Get(ctx context.Context, actorID, applicationID uuid.UUID) (*ApplicationView, error)
	Update(ctx context.Context, input UpdateApplicationInput) (*domain.Application, error)
	Submit(ctx context.Context, actorID, applicationID uuid.UUID) (*domain.Application, error)
	Cancel(ctx context.Context, actorID, applicationID uuid.UUID, reason string) error
}

type applicationService struct {
	appRepo         port.ApplicationRepository
	documentRepo    port.DocumentRepository
	requirementRepo port.RequirementRepository
	licenseTypeRepo port.LicenseTypeRepository
	companyRepo     port.CompanyRepository
	userRepo        port.UserRepository
	events          port.EventSink
}

// NewApplicationService creates a new ApplicationService implementation.
func NewApplicationService(
	appRepo port.ApplicationRepository,
	documentRepo port.DocumentRepository,
	requirementRepo port.RequirementRepository,
	licenseTypeRepo port.LicenseTypeRepository,
	companyRepo port.CompanyRepository,
	userRepo port.UserRepository,
	events port.EventSink,
) ApplicationService {
	return &applicationService{
		appRepo:         appRepo,
		documentRepo:    documentRepo,
		requirementRepo: requirementRepo,
		licenseTypeRepo: licenseTypeRepo,
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		events:          events,
	}
}

func (s *applicationService) Create(ctx context.Context, input CreateApplicationInput) (*domain.Application, error) {
	fields := input.OperationalDetails.FieldErrors()
	s.checkLicenseType(ctx, input.LicenseTypeID, fields)
	if err := s.checkCompany(ctx, input.ActorID, input.CompanyID, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	app := &domain.Application{
		ID:                 uuid.New(),
		OwnerUserID:        input.ActorID,
		CompanyID:          input.CompanyID,
		LicenseTypeID:      input.LicenseTypeID,
		Status:             domain.StatusDraft,
		OperationalDetails: input.OperationalDetails,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}

	log.Printf("applicationService.Create: application %s created by user %s (license type %s)",
		app.ID, input.ActorID, input.LicenseTypeID)

	s.events.Emit(ctx, domain.NewEvent(domain.EventApplicationCreated, input.ActorID, app.ID,
		map[string]interface{}{
			"license_type_id": input.LicenseTypeID.String(),
			"company_id":      input.CompanyID.String(),
		}))

	return app, nil
}

func (s *applicationService) List(ctx context.Context, actorID uuid.UUID, filter port.ApplicationFilter) ([]domain.Application, int, error) {
	return s.appRepo.ListByOwner(ctx, actorID, filter)
}

func (s *applicationService) Get(ctx context.Context, actorID, applicationID uuid.UUID) (*ApplicationView, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanView(domain.Actor{ID: actorID}, app).Err(); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByID(ctx, app.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("loading company summary: %w", err)
	}

	return &ApplicationView{Application: app, Documents: docs, Company: company}, nil
}

func (s *applicationService) Update(ctx context.Context, input UpdateApplicationInput) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutate(domain.Actor{ID: input.ActorID}, app).Err(); err != nil {
		return nil, err
	}

	fields := input.OperationalDetails.FieldErrors()
	s.checkLicenseType(ctx, input.LicenseTypeID, fields)
	if input.CompanyID != app.CompanyID {
		if err := s.checkCompany(ctx, input.ActorID, input.CompanyID, fields); err != nil {
			return nil, err
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	app.CompanyID = input.CompanyID
	app.LicenseTypeID = input.LicenseTypeID
	app.OperationalDetails = input.OperationalDetails

	if err := s.appRepo.Update(ctx, app); err != nil {
		// The guarded UPDATE matched no draft row: the status changed under us.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewAuthorizationError(domain.DenyWrongStatus)
		}
		return nil, fmt.Errorf("updating application: %w", err)
	}

	s.events.Emit(ctx, domain.NewEvent(domain.EventApplicationUpdated, input.ActorID, app.ID,
		map[string]interface{}{
			"license_type_id": input.LicenseTypeID.String(),
			"company_id":      input.CompanyID.String(),
		}))

	return app, nil
}

func (s *applicationService) Submit(ctx context.Context, actorID, applicationID uuid.UUID) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	// Re-read the user row rather than trusting a token claim: a verification
	// completed after login must count.
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("loading actor: %w", err)
	}
	actor := domain.Actor{ID: actorID, IdentityVerified: user.IdentityVerified}

	requirements, err := s.requirementRepo.ListByLicenseType(ctx, app.LicenseTypeID)
	if err != nil {
		return nil, fmt.Errorf("loading requirements: %w", err)
	}
	documents, err := s.documentRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	result := completeness.Check(app, requirements, documents)
	if d := authz.CanSubmit(actor, app, result.Complete); !d.Allowed {
		if d.Reason == domain.DenyIncomplete {
			// Surface every gap at once: unmet requirements and structural
			// field errors together.
			return nil, result.Err()
		}
		return nil, d.Err()
	}

	now := time.Now().UTC()
	if err := s.appRepo.TransitionStatus(ctx, app.ID, domain.StatusDraft, domain.StatusSubmitted, &now); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewAuthorizationError(domain.DenyWrongStatus)
		}
		return nil, fmt.Errorf("submitting application: %w", err)
	}
	app.Status = domain.StatusSubmitted
	app.SubmittedAt = &now
	app.UpdatedAt = now

	log.Printf("applicationService.Submit: application %s submitted by user %s", app.ID, actorID)

	s.events.Emit(ctx, domain.NewEvent(domain.EventApplicationSubmitted, actorID, app.ID,
		map[string]interface{}{
			"applicant_email": user.Email,
			"applicant_name":  user.FullName,
			"license_type_id": app.LicenseTypeID.String(),
		}))

	return app, nil
}

func (s *applicationService) Cancel(ctx context.Context, actorID, applicationID uuid.UUID, reason string) error {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if err := authz.CanCancel(domain.Actor{ID: actorID}, app).Err(); err != nil {
		return err
	}

	if err := s.appRepo.TransitionStatus(ctx, app.ID, domain.StatusDraft, domain.StatusCancelled, nil); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewAuthorizationError(domain.DenyWrongStatus)
		}
		return fmt.Errorf("cancelling application: %w", err)
	}

	log.Printf("applicationService.Cancel: application %s cancelled by user %s", app.ID, actorID)

	// The reason lives in the cancellation event, not on the application row.
	metadata := map[string]interface{}{"reason": reason}
	if user, err := s.userRepo.GetByID(ctx, actorID); err == nil {
		metadata["applicant_email"] = user.Email
		metadata["applicant_name"] = user.FullName
	}
	s.events.Emit(ctx, domain.NewEvent(domain.EventApplicationCancelled, actorID, app.ID, metadata))

	return nil
}

// checkLicenseType records a field error when the license type is unknown.
func (s *applicationService) checkLicenseType(ctx context.Context, licenseTypeID uuid.UUID, fields map[string]string) {
	if _, err := s.licenseTypeRepo.GetByID(ctx, licenseTypeID); errors.Is(err, domain.ErrNotFound) {
		fields["license_type_id"] = "unknown license type"
	}
}

// checkCompany records a field error when the referenced company is unknown,
// inactive, or not owned by the actor. Unowned companies are a validation
// concern (the field references the wrong entity), not an application-level
// authorization denial.
func (s *applicationService) checkCompany(ctx context.Context, actorID, companyID uuid.UUID, fields map[string]string) error {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fields["company_id"] = "unknown company"
			return nil
		}
		return fmt.Errorf("loading company: %w", err)
	}
	if d := authz.CanAssignCompany(domain.Actor{ID: actorID}, company); !d.Allowed {
		fields["company_id"] = "company is not owned by the applicant"
		return nil
	}
	if company.Status != domain.CompanyStatusActive {
		fields["company_id"] = "company is not active"
	}
	return nil
}
