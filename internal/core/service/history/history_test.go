package history_test

import (
	"context"
	"log/slog"
	"testing"

	"file-researcher/internal/adapters/repository"
	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/service/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHistoryService_ListFileSetArchives_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	service := history.NewHistoryService(mockUow, 10_000_000, slog.Default())
	archives := []domain.Archive{{ID: 1, FileSetID: 3}, {ID: 2, FileSetID: 3}}

	mockUow.GetFileSetRepoMock().On("FindByID", ctx, int64(3), false).Return(&domain.FileSet{ID: 3, UserID: 9}, nil)
	mockUow.GetArchiveRepoMock().On("FindAllByFileSetID", ctx, int64(3)).Return(archives, nil)

	// Act
	result, err := service.ListFileSetArchives(ctx, 9, 3)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, archives, result)
}

func TestHistoryService_ListFileSetArchives_Forbidden(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	service := history.NewHistoryService(mockUow, 10_000_000, slog.Default())

	mockUow.GetFileSetRepoMock().On("FindByID", ctx, int64(3), false).Return(&domain.FileSet{ID: 3, UserID: 1}, nil)

	// Act
	result, err := service.ListFileSetArchives(ctx, 9, 3)

	// Assert
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, result)
	mockUow.GetArchiveRepoMock().AssertNotCalled(t, "FindAllByFileSetID", mock.Anything, mock.Anything)
}

func TestHistoryService_ListFileSetArchives_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	service := history.NewHistoryService(mockUow, 10_000_000, slog.Default())

	mockUow.GetFileSetRepoMock().On("FindByID", ctx, int64(3), false).Return(nil, domain.ErrFileSetNotFound)

	// Act
	_, err := service.ListFileSetArchives(ctx, 9, 3)

	// Assert
	assert.ErrorIs(t, err, domain.ErrFileSetNotFound)
}

func TestHistoryService_GetDeliveryHistory_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	service := history.NewHistoryService(mockUow, 10_000_000, slog.Default())
	attempts := []domain.DeliveryAttempt{{ID: 2, ArchiveID: 5}, {ID: 1, ArchiveID: 5}}

	mockUow.GetArchiveRepoMock().On("FindByID", ctx, int64(5)).Return(&domain.Archive{ID: 5, UserID: 9}, nil)
	mockUow.GetDeliveryAttemptRepoMock().On("FindAllByArchiveID", ctx, int64(5)).Return(attempts, nil)

	// Act
	result, err := service.GetDeliveryHistory(ctx, 9, 5)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, attempts, result)
}

func TestHistoryService_GetLastRecipient_Forbidden(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	service := history.NewHistoryService(mockUow, 10_000_000, slog.Default())

	mockUow.GetArchiveRepoMock().On("FindByID", ctx, int64(5)).Return(&domain.Archive{ID: 5, UserID: 1}, nil)

	// Act
	_, err := service.GetLastRecipient(ctx, 9, 5)

	// Assert
	assert.ErrorIs(t, err, domain.ErrForbidden)
	mockUow.GetDeliveryAttemptRepoMock().AssertNotCalled(t, "FindMostRecentRecipient", mock.Anything, mock.Anything)
}

func TestHistoryService_GetLastRecipient_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	service := history.NewHistoryService(mockUow, 10_000_000, slog.Default())

	mockUow.GetArchiveRepoMock().On("FindByID", ctx, int64(5)).Return(&domain.Archive{ID: 5, UserID: 9}, nil)
	mockUow.GetDeliveryAttemptRepoMock().On("FindMostRecentRecipient", ctx, int64(5)).Return("last@example.com", nil)

	// Act
	recipient, err := service.GetLastRecipient(ctx, 9, 5)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "last@example.com", recipient)
}

func TestHistoryService_ListLargeArchives_DefaultThreshold(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	service := history.NewHistoryService(mockUow, 10_000_000, slog.Default())

	mockUow.GetArchiveRepoMock().On("FindLarge", ctx, int64(9), int64(10_000_000)).Return([]domain.Archive{}, nil)
	mockUow.GetArchiveRepoMock().On("FindLarge", ctx, int64(9), int64(500)).Return([]domain.Archive{{ID: 1}}, nil)

	// Act
	defaulted, err1 := service.ListLargeArchives(ctx, 9, 0)
	explicit, err2 := service.ListLargeArchives(ctx, 9, 500)

	// Assert
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Empty(t, defaulted)
	assert.Len(t, explicit, 1)
	mockUow.GetArchiveRepoMock().AssertExpectations(t)
}

func TestHistoryService_GetStats(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	service := history.NewHistoryService(mockUow, 10_000_000, slog.Default())
	stats := &domain.ArchiveStats{Success: 3, Failed: 1, Pending: 0}

	mockUow.GetArchiveRepoMock().On("CountByStatusForUser", ctx, int64(9)).Return(stats, nil)

	// Act
	result, err := service.GetStats(ctx, 9)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, stats, result)
}
