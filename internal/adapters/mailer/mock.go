package mailer

import (
	"context"
	"file-researcher/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(ctx context.Context, email domain.Email) (domain.DeliveryResult, error) {
	args := m.Called(ctx, email)
	result, _ := args.Get(0).(domain.DeliveryResult)
	return result, args.Error(1)
}
