package dispatch

import (
	"context"
	"file-researcher/internal/core/domain"

	"github.com/google/uuid"
)

// StartPathBasedTask archives the resident files of a file set and emails the result
func (s *Service) StartPathBasedTask(_ context.Context, userID int64, fileSetID int64, recipientEmail string) (string, error) {
	recipient, err := normalizeRecipient(recipientEmail)
	if err != nil {
		return "", err
	}

	taskID := uuid.NewString()
	s.launch(taskID, variantPath, func(ctx context.Context) error {
		return s.runBuildAndSend(ctx, taskID, request{
			userID:    userID,
			fileSetID: fileSetID,
			recipient: recipient,
		})
	})
	return taskID, nil
}

// StartUploadTask stages uploads on disk, then archives and emails them in the background
func (s *Service) StartUploadTask(ctx context.Context, userID int64, fileSetID int64, recipientEmail string, uploads []domain.Upload) (string, error) {
	recipient, err := normalizeRecipient(recipientEmail)
	if err != nil {
		return "", err
	}
	if len(uploads) == 0 {
		return "", domain.ErrEmptyFileSet
	}

	taskID := uuid.NewString()
	dir, sources, err := s.stageUploads(ctx, taskID, uploads)
	if err != nil {
		return "", err
	}
	if len(sources) == 0 {
		s.cleanup.RemoveStagingDir(dir)
		return "", domain.ErrEmptyFileSet
	}

	s.launch(taskID, variantUpload, func(ctx context.Context) error {
		defer s.cleanup.RemoveStagingDir(dir)
		return s.runBuildAndSend(ctx, taskID, request{
			userID:    userID,
			fileSetID: fileSetID,
			recipient: recipient,
			sources:   sources,
			uploaded:  true,
		})
	})
	return taskID, nil
}

// StartResendTask delivers a retained archive again, optionally to a new recipient
func (s *Service) StartResendTask(_ context.Context, userID int64, fileSetID int64, archiveID int64, recipientEmail string) (string, error) {
	recipient, err := normalizeRecipient(recipientEmail)
	if err != nil {
		return "", err
	}

	taskID := uuid.NewString()
	s.launch(taskID, variantResend, func(ctx context.Context) error {
		return s.runResend(ctx, taskID, userID, fileSetID, archiveID, recipient)
	})
	return taskID, nil
}

// launch runs fn on a tracked goroutine, errors returned before delivery become a terminal event
func (s *Service) launch(taskID string, variant string, fn func(ctx context.Context) error) {
	tasksStartedTotal.WithLabelValues(variant).Inc()
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		logger := s.logger.With("task_id", taskID, "variant", variant)

		err := s.guard(logger, func() error { return fn(s.ctx) })
		switch {
		case err == nil:
			tasksFinishedTotal.WithLabelValues(variant, "success").Inc()
		case isDeliveryFailure(err):
			tasksFinishedTotal.WithLabelValues(variant, "delivery_failed").Inc()
			logger.Error("task delivery failed", "error", err)
		default:
			tasksFinishedTotal.WithLabelValues(variant, "failed").Inc()
			logger.Error("task failed", "error", err)
			s.notifier.Publish(s.ctx, taskID, domain.ProgressFailed, "Error: "+err.Error())
		}
	}()
}
