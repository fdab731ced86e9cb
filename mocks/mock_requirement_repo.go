package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lesenhub/internal/domain"
)

// MockRequirementRepo is a mock implementation of port.RequirementRepository.
type MockRequirementRepo struct {
	mock.Mock
}

func (m *MockRequirementRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Requirement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Requirement), args.Error(1)
}

func (m *MockRequirementRepo) ListByLicenseType(ctx context.Context, licenseTypeID uuid.UUID) ([]domain.Requirement, error) {
	args := m.Called(ctx, licenseTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Requirement), args.Error(1)
}
