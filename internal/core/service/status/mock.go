package status

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStatusService struct {
	mock.Mock
}

func NewMockStatusService() *MockStatusService {
	return &MockStatusService{}
}

func (m *MockStatusService) MarkSuccess(ctx context.Context, archiveID int64, fileSetID int64) error {
	args := m.Called(ctx, archiveID, fileSetID)
	return args.Error(0)
}

func (m *MockStatusService) MarkFailure(ctx context.Context, archiveID int64, errorMessage string) error {
	args := m.Called(ctx, archiveID, errorMessage)
	return args.Error(0)
}
