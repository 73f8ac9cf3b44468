package port

import (
	"context"
	"time"
)

// CleanupService is service that removes temporary disk state
type CleanupService interface {
	RemoveArchive(path string)
	RemoveStagingDir(dir string)
	SweepOrphans(ctx context.Context, now time.Time) (int, error)
}
