package port

import (
	"context"
	"file-researcher/internal/core/domain"
)

// ProgressNotifier publishes task progress, fire and forget
type ProgressNotifier interface {
	Publish(ctx context.Context, taskID string, percent int, message string)
}

// ProgressSubscriber delivers progress events of one task as they are published
type ProgressSubscriber interface {
	Subscribe(ctx context.Context, taskID string, fn func(update domain.ProgressUpdate)) (func(), error)
}
