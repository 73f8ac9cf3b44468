package port

import (
	"context"
	"file-researcher/internal/core/domain"
)

// StatusService performs archive and file set status transitions
type StatusService interface {
	MarkSuccess(ctx context.Context, archiveID int64, fileSetID int64) error
	MarkFailure(ctx context.Context, archiveID int64, errorMessage string) error
}

// DeliveryService sends a persisted archive and finalizes its status
type DeliveryService interface {
	SendAndFinalize(ctx context.Context, taskID string, archive domain.Archive, fileSet domain.FileSet, archivePath string) error
}

// DispatchService is the entry point of the archive and delivery pipeline
type DispatchService interface {
	StartPathBasedTask(ctx context.Context, userID int64, fileSetID int64, recipientEmail string) (string, error)
	StartUploadTask(ctx context.Context, userID int64, fileSetID int64, recipientEmail string, uploads []domain.Upload) (string, error)
	StartResendTask(ctx context.Context, userID int64, fileSetID int64, archiveID int64, recipientEmail string) (string, error)
}

// HistoryService exposes archives and their delivery history
type HistoryService interface {
	ListFileSetArchives(ctx context.Context, userID int64, fileSetID int64) ([]domain.Archive, error)
	ListUserArchives(ctx context.Context, userID int64) ([]domain.Archive, error)
	GetDeliveryHistory(ctx context.Context, userID int64, archiveID int64) ([]domain.DeliveryAttempt, error)
	GetLastRecipient(ctx context.Context, userID int64, archiveID int64) (string, error)
	GetStats(ctx context.Context, userID int64) (*domain.ArchiveStats, error)
	ListLargeArchives(ctx context.Context, userID int64, minSize int64) ([]domain.Archive, error)
}
