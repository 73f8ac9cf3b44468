package history

import (
	"context"

	"file-researcher/internal/core/domain"
)

// GetDeliveryHistory returns the delivery attempts of an archive, most recent first
func (h *historyService) GetDeliveryHistory(ctx context.Context, userID int64, archiveID int64) ([]domain.DeliveryAttempt, error) {
	if _, err := h.ownedArchive(ctx, userID, archiveID); err != nil {
		return nil, err
	}
	return h.uow.DeliveryAttemptRepo().FindAllByArchiveID(ctx, archiveID)
}

// GetLastRecipient returns the recipient of the latest delivery attempt of an archive
func (h *historyService) GetLastRecipient(ctx context.Context, userID int64, archiveID int64) (string, error) {
	if _, err := h.ownedArchive(ctx, userID, archiveID); err != nil {
		return "", err
	}
	return h.uow.DeliveryAttemptRepo().FindMostRecentRecipient(ctx, archiveID)
}
