package delivery

import (
	"context"
	"file-researcher/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockDeliveryService struct {
	mock.Mock
}

func NewMockDeliveryService() *MockDeliveryService {
	return &MockDeliveryService{}
}

func (m *MockDeliveryService) SendAndFinalize(ctx context.Context, taskID string, archive domain.Archive, fileSet domain.FileSet, archivePath string) error {
	args := m.Called(ctx, taskID, archive, fileSet, archivePath)
	return args.Error(0)
}
