package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"file-researcher/internal/core/domain"
)

// deliveryFailure marks errors already reported by the delivery service
type deliveryFailure struct {
	err error
}

func (d *deliveryFailure) Error() string { return d.err.Error() }
func (d *deliveryFailure) Unwrap() error { return d.err }

func isDeliveryFailure(err error) bool {
	var df *deliveryFailure
	return errors.As(err, &df)
}

type request struct {
	userID    int64
	fileSetID int64
	recipient string
	sources   []string
	uploaded  bool
}

// guard turns a panic inside fn into an error
func (s *Service) guard(logger *slog.Logger, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("task panicked", "panic", r)
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn()
}

// runBuildAndSend resolves the file set, builds and persists the archive and hands it to delivery
func (s *Service) runBuildAndSend(ctx context.Context, taskID string, req request) error {
	fileSet, err := s.uow.FileSetRepo().FindByID(ctx, req.fileSetID, !req.uploaded)
	if err != nil {
		return err
	}
	if fileSet.UserID != req.userID {
		return domain.ErrForbidden
	}

	sources := req.sources
	if !req.uploaded {
		if len(fileSet.Files) == 0 {
			return domain.ErrEmptyFileSet
		}
		sources = make([]string, 0, len(fileSet.Files))
		for _, entry := range fileSet.Files {
			sources = append(sources, entry.Path)
		}
	}

	recipient, err := resolveRecipient(req.recipient, fileSet.RecipientEmail)
	if err != nil {
		return err
	}
	if recipient == "" {
		return domain.ErrInvalidRecipient
	}

	sendNumber, err := s.uow.ArchiveRepo().NextSendNumber(ctx, fileSet.ID)
	if err != nil {
		return err
	}

	name := domain.ArchiveName(fileSet.ID, sendNumber)
	archivePath := filepath.Join(s.cfg.WorkDir, name)
	defer s.cleanup.RemoveArchive(archivePath)

	if err := s.build(ctx, taskID, sources, archivePath, !req.uploaded && len(sources) >= s.cfg.ParallelThreshold); err != nil {
		return err
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return fmt.Errorf("reading archive size: %w", err)
	}

	archive := domain.Archive{
		Name:           name,
		Path:           archivePath,
		Size:           info.Size(),
		CreatedAt:      time.Now().UTC(),
		Status:         domain.ArchiveStatusPending,
		RecipientEmail: recipient,
		FileSetID:      fileSet.ID,
		UserID:         fileSet.UserID,
		SendNumber:     sendNumber,
	}
	if err := s.uow.ArchiveRepo().Create(ctx, &archive); err != nil {
		return err
	}

	s.retain(ctx, archive, archivePath)

	if err := s.delivery.SendAndFinalize(ctx, taskID, archive, *fileSet, archivePath); err != nil {
		return &deliveryFailure{err: err}
	}
	return nil
}

// build compresses sources into dest, reporting at most up to the archive band
func (s *Service) build(ctx context.Context, taskID string, sources []string, dest string, parallel bool) error {
	builder, label := s.builders.Sequential, "sequential"
	if parallel {
		builder, label = s.builders.Parallel, "parallel"
	}

	last := 0
	progress := func(percent int, message string) {
		last = percent
		s.notifier.Publish(ctx, taskID, percent, message)
	}

	start := time.Now()
	if err := builder.Build(ctx, sources, dest, progress); err != nil {
		return fmt.Errorf("building archive: %w", err)
	}
	archiveBuildDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	if last < domain.ProgressArchiveDone {
		s.notifier.Publish(ctx, taskID, domain.ProgressArchiveDone, "Archive created")
	}
	return nil
}

// retain copies the archive to object storage when retention is enabled
func (s *Service) retain(ctx context.Context, archive domain.Archive, archivePath string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.PutArchive(ctx, archive.Name, archivePath); err != nil {
		s.logger.Warn("failed to retain archive", "archive_id", archive.ID, "archive", archive.Name, "error", err)
	}
}

// runResend fetches a retained archive and delivers it again
func (s *Service) runResend(ctx context.Context, taskID string, userID, fileSetID, archiveID int64, recipient string) error {
	if s.storage == nil {
		return domain.ErrArchiveNotRetained
	}

	archive, err := s.uow.ArchiveRepo().FindByID(ctx, archiveID)
	if err != nil {
		return err
	}
	if archive.UserID != userID || archive.FileSetID != fileSetID {
		return domain.ErrForbidden
	}

	fileSet, err := s.uow.FileSetRepo().FindByID(ctx, fileSetID, false)
	if err != nil {
		return err
	}

	if recipient != "" {
		archive.RecipientEmail = recipient
	}

	dir, err := os.MkdirTemp(s.cfg.WorkDir, domain.StageDirPrefix+"*")
	if err != nil {
		return fmt.Errorf("creating resend dir: %w", err)
	}
	defer s.cleanup.RemoveStagingDir(dir)

	archivePath := filepath.Join(dir, archive.Name)
	if err := s.storage.FetchArchive(ctx, archive.Name, archivePath); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrArchiveNotRetained, err)
	}
	s.notifier.Publish(ctx, taskID, domain.ProgressArchiveDone, "Archive fetched")

	archive.Status = domain.ArchiveStatusPending
	if err := s.uow.ArchiveRepo().Save(ctx, *archive); err != nil {
		return err
	}

	if err := s.delivery.SendAndFinalize(ctx, taskID, *archive, *fileSet, archivePath); err != nil {
		return &deliveryFailure{err: err}
	}
	return nil
}
