package services_test

import (
	"context"

	"github.com/apexadvisory/rsvp-api/pkg/mailer"
	"github.com/stretchr/testify/mock"
)

// MockSubmissionStore is a mock implementation of SubmissionStore
type MockSubmissionStore struct {
	mock.Mock
}

func (m *MockSubmissionStore) AppendSubmission(ctx context.Context, row any) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

// MockSender is a mock implementation of mailer.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg *mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
