package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
)

// MockApplicationRepo is a mock implementation of port.ApplicationRepository.
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) ListByOwner(ctx context.Context, ownerUserID uuid.UUID, filter port.ApplicationFilter) ([]domain.Application, int, error) {
	args := m.Called(ctx, ownerUserID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Int(1), args.Error(2)
}

func (m *MockApplicationRepo) Update(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.ApplicationStatus, submittedAt *time.Time) error {
	args := m.Called(ctx, id, from, to, submittedAt)
	return args.Error(0)
}
