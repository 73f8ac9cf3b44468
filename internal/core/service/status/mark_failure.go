package status

import (
	"context"
	"fmt"

	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"
)

// MarkFailure sets the archive to FAILED and appends a failed delivery attempt
func (s *statusService) MarkFailure(ctx context.Context, archiveID int64, errorMessage string) error {
	err := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		archive, err := uow.ArchiveRepo().FindByID(ctx, archiveID)
		if err != nil {
			return err
		}
		archive.Status = domain.ArchiveStatusFailed
		if err := uow.ArchiveRepo().Save(ctx, *archive); err != nil {
			return err
		}

		msg := errorMessage
		return uow.DeliveryAttemptRepo().Create(ctx, &domain.DeliveryAttempt{
			ArchiveID:      archiveID,
			AttemptedAt:    s.now(),
			Outcome:        domain.AttemptOutcomeFailure,
			ErrorMessage:   &msg,
			RecipientEmail: archive.RecipientEmail,
		})
	})
	if err != nil {
		return fmt.Errorf("marking archive %d as failed: %w", archiveID, err)
	}

	s.logger.Warn("archive marked as failed", "archive_id", archiveID, "reason", errorMessage)
	return nil
}
