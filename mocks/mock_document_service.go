package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lesenhub/internal/domain"
	"lesenhub/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, input service.DocumentUploadInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, actorID, applicationID, documentID uuid.UUID) error {
	args := m.Called(ctx, actorID, applicationID, documentID)
	return args.Error(0)
}

func (m *MockDocumentService) GetDownloadURL(ctx context.Context, actorID, applicationID, documentID uuid.UUID) (string, error) {
	args := m.Called(ctx, actorID, applicationID, documentID)
	return args.String(0), args.Error(1)
}
