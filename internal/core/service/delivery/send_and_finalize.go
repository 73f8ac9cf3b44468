package delivery

import (
	"context"
	"fmt"

	"file-researcher/internal/core/domain"
)

// SendAndFinalize emails the archive at archivePath and records the outcome
func (d *deliveryService) SendAndFinalize(ctx context.Context, taskID string, archive domain.Archive, fileSet domain.FileSet, archivePath string) error {
	d.notifier.Publish(ctx, taskID, domain.ProgressSending, fmt.Sprintf("Sending email to %s...", archive.RecipientEmail))

	result, err := d.mailer.Send(ctx, domain.Email{
		To:             archive.RecipientEmail,
		Subject:        d.message.Subject,
		Body:           d.message.Body,
		AttachmentPath: archivePath,
	})
	if err != nil {
		d.fail(ctx, taskID, archive, err)
		return fmt.Errorf("sending archive %d: %w", archive.ID, err)
	}

	var caveat *string
	if result.Outcome == domain.DeliveryOutcomeDeliveredWithWarning {
		warning := result.Warning
		caveat = &warning
		d.logger.Warn("archive delivered with warning", "task_id", taskID, "archive_id", archive.ID, "warning", warning)
	}

	// the success attempt is written first so a SUCCESS archive always has one
	attempt := &domain.DeliveryAttempt{
		ArchiveID:      archive.ID,
		AttemptedAt:    d.now(),
		Outcome:        domain.AttemptOutcomeSuccess,
		ErrorMessage:   caveat,
		RecipientEmail: archive.RecipientEmail,
	}
	if err := d.uow.DeliveryAttemptRepo().Create(ctx, attempt); err != nil {
		d.notifier.Publish(ctx, taskID, domain.ProgressFailed, "Error: "+err.Error())
		return fmt.Errorf("recording delivery of archive %d: %w", archive.ID, err)
	}

	if err := d.status.MarkSuccess(ctx, archive.ID, fileSet.ID); err != nil {
		d.notifier.Publish(ctx, taskID, domain.ProgressFailed, "Error: "+err.Error())
		return err
	}

	if caveat != nil {
		d.notifier.Publish(ctx, taskID, domain.ProgressCompleted, "Completed with warnings: "+*caveat)
	} else {
		d.notifier.Publish(ctx, taskID, domain.ProgressCompleted, "Completed!")
	}

	d.logger.Info("archive delivered", "task_id", taskID, "archive_id", archive.ID, "recipient", archive.RecipientEmail)
	return nil
}

func (d *deliveryService) fail(ctx context.Context, taskID string, archive domain.Archive, cause error) {
	msg := cause.Error()
	d.logger.Error("archive delivery failed", "task_id", taskID, "archive_id", archive.ID, "error", cause)

	if err := d.status.MarkFailure(ctx, archive.ID, msg); err != nil {
		d.logger.Error("failed to record delivery failure", "task_id", taskID, "archive_id", archive.ID, "error", err)
	}
	d.notifier.Publish(ctx, taskID, domain.ProgressFailed, "Error: "+msg)
}
