package history

import (
	"context"
	"file-researcher/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockHistoryService struct {
	mock.Mock
}

func NewMockHistoryService() *MockHistoryService {
	return &MockHistoryService{}
}

func (m *MockHistoryService) ListFileSetArchives(ctx context.Context, userID int64, fileSetID int64) ([]domain.Archive, error) {
	args := m.Called(ctx, userID, fileSetID)
	archives, _ := args.Get(0).([]domain.Archive)
	return archives, args.Error(1)
}

func (m *MockHistoryService) ListUserArchives(ctx context.Context, userID int64) ([]domain.Archive, error) {
	args := m.Called(ctx, userID)
	archives, _ := args.Get(0).([]domain.Archive)
	return archives, args.Error(1)
}

func (m *MockHistoryService) GetDeliveryHistory(ctx context.Context, userID int64, archiveID int64) ([]domain.DeliveryAttempt, error) {
	args := m.Called(ctx, userID, archiveID)
	attempts, _ := args.Get(0).([]domain.DeliveryAttempt)
	return attempts, args.Error(1)
}

func (m *MockHistoryService) GetLastRecipient(ctx context.Context, userID int64, archiveID int64) (string, error) {
	args := m.Called(ctx, userID, archiveID)
	return args.String(0), args.Error(1)
}

func (m *MockHistoryService) GetStats(ctx context.Context, userID int64) (*domain.ArchiveStats, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*domain.ArchiveStats)
	return stats, args.Error(1)
}

func (m *MockHistoryService) ListLargeArchives(ctx context.Context, userID int64, minSize int64) ([]domain.Archive, error) {
	args := m.Called(ctx, userID, minSize)
	archives, _ := args.Get(0).([]domain.Archive)
	return archives, args.Error(1)
}
