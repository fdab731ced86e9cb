package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lesenhub/internal/domain"
)

// MockLicenseTypeRepo is a mock implementation of port.LicenseTypeRepository.
type MockLicenseTypeRepo struct {
	mock.Mock
}

func (m *MockLicenseTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LicenseType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LicenseType), args.Error(1)
}
