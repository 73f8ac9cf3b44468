package status

import (
	"context"
	"fmt"

	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"
)

// MarkSuccess sets the archive to SUCCESS and its file set to SENT in one transaction
func (s *statusService) MarkSuccess(ctx context.Context, archiveID int64, fileSetID int64) error {
	err := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		archive, err := uow.ArchiveRepo().FindByID(ctx, archiveID)
		if err != nil {
			return err
		}
		archive.Status = domain.ArchiveStatusSuccess
		if err := uow.ArchiveRepo().Save(ctx, *archive); err != nil {
			return err
		}

		fileSet, err := uow.FileSetRepo().FindByID(ctx, fileSetID, false)
		if err != nil {
			return err
		}
		fileSet.Status = domain.FileSetStatusSent
		return uow.FileSetRepo().Save(ctx, *fileSet)
	})
	if err != nil {
		return fmt.Errorf("marking archive %d as sent: %w", archiveID, err)
	}

	s.logger.Info("archive marked as sent", "archive_id", archiveID, "file_set_id", fileSetID)
	return nil
}
