package dispatch

import (
	"context"
	"file-researcher/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockDispatchService struct {
	mock.Mock
}

func NewMockDispatchService() *MockDispatchService {
	return &MockDispatchService{}
}

func (m *MockDispatchService) StartPathBasedTask(ctx context.Context, userID int64, fileSetID int64, recipientEmail string) (string, error) {
	args := m.Called(ctx, userID, fileSetID, recipientEmail)
	return args.String(0), args.Error(1)
}

func (m *MockDispatchService) StartUploadTask(ctx context.Context, userID int64, fileSetID int64, recipientEmail string, uploads []domain.Upload) (string, error) {
	args := m.Called(ctx, userID, fileSetID, recipientEmail, uploads)
	return args.String(0), args.Error(1)
}

func (m *MockDispatchService) StartResendTask(ctx context.Context, userID int64, fileSetID int64, archiveID int64, recipientEmail string) (string, error) {
	args := m.Called(ctx, userID, fileSetID, archiveID, recipientEmail)
	return args.String(0), args.Error(1)
}
