package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendSubmissionReceipt(ctx context.Context, toEmail, toName, applicationID string) error {
	args := m.Called(ctx, toEmail, toName, applicationID)
	return args.Error(0)
}

func (m *MockNotifier) SendCancellationNotice(ctx context.Context, toEmail, toName, applicationID, reason string) error {
	args := m.Called(ctx, toEmail, toName, applicationID, reason)
	return args.Error(0)
}
