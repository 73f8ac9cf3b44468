package history

import (
	"context"

	"file-researcher/internal/core/domain"
)

// ListFileSetArchives returns every archive built from a file set owned by userID
func (h *historyService) ListFileSetArchives(ctx context.Context, userID int64, fileSetID int64) ([]domain.Archive, error) {
	fileSet, err := h.uow.FileSetRepo().FindByID(ctx, fileSetID, false)
	if err != nil {
		return nil, err
	}
	if fileSet.UserID != userID {
		return nil, domain.ErrForbidden
	}

	return h.uow.ArchiveRepo().FindAllByFileSetID(ctx, fileSetID)
}

// ListUserArchives returns all archives of userID
func (h *historyService) ListUserArchives(ctx context.Context, userID int64) ([]domain.Archive, error) {
	return h.uow.ArchiveRepo().FindAllByUserID(ctx, userID)
}

// ListLargeArchives returns archives of userID bigger than minSize bytes
func (h *historyService) ListLargeArchives(ctx context.Context, userID int64, minSize int64) ([]domain.Archive, error) {
	if minSize <= 0 {
		minSize = h.largeMinSize
	}
	return h.uow.ArchiveRepo().FindLarge(ctx, userID, minSize)
}

// GetStats counts archives of userID by status
func (h *historyService) GetStats(ctx context.Context, userID int64) (*domain.ArchiveStats, error) {
	return h.uow.ArchiveRepo().CountByStatusForUser(ctx, userID)
}
