package port

import (
	"context"
	"file-researcher/internal/core/domain"
)

// DeliveryAttemptRepository is an interface to define send history interactions
type DeliveryAttemptRepository interface {
	Create(ctx context.Context, attempt *domain.DeliveryAttempt) error
	FindAllByArchiveID(ctx context.Context, archiveID int64) ([]domain.DeliveryAttempt, error)
	FindMostRecentRecipient(ctx context.Context, archiveID int64) (string, error)
}

// Mailer is an interface to define the email transport
type Mailer interface {
	Send(ctx context.Context, email domain.Email) (domain.DeliveryResult, error)
}
