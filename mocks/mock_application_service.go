package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
	"lesenhub/internal/service"
)

// MockApplicationService is a mock implementation of service.ApplicationService.
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Create(ctx context.Context, input service.CreateApplicationInput) (*domain.Application, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context, actorID uuid.UUID, filter port.ApplicationFilter) ([]domain.Application, int, error) {
	args := m.Called(ctx, actorID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Int(1), args.Error(2)
}

func (m *MockApplicationService) Get(ctx context.Context, actorID, applicationID uuid.UUID) (*service.ApplicationView, error) {
	args := m.Called(ctx, actorID, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationView), args.Error(1)
}

func (m *MockApplicationService) Update(ctx context.Context, input service.UpdateApplicationInput) (*domain.Application, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationService) Submit(ctx context.Context, actorID, applicationID uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, actorID, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationService) Cancel(ctx context.Context, actorID, applicationID uuid.UUID, reason string) error {
	args := m.Called(ctx, actorID, applicationID, reason)
	return args.Error(0)
}
