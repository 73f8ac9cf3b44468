package history

import (
	"context"
	"log/slog"

	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"
)

type historyService struct {
	uow          port.UnitOfWork
	largeMinSize int64
	logger       *slog.Logger
}

// NewHistoryService creates a new history service, largeMinSize is used when a caller passes no threshold
func NewHistoryService(uow port.UnitOfWork, largeMinSize int64, logger *slog.Logger) port.HistoryService {
	return &historyService{
		uow:          uow,
		largeMinSize: largeMinSize,
		logger:       logger,
	}
}

// ownedArchive loads an archive and checks it belongs to userID
func (h *historyService) ownedArchive(ctx context.Context, userID int64, archiveID int64) (*domain.Archive, error) {
	archive, err := h.uow.ArchiveRepo().FindByID(ctx, archiveID)
	if err != nil {
		return nil, err
	}
	if archive.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return archive, nil
}
