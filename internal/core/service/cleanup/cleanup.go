package cleanup

import (
	"log/slog"
	"time"

	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cleanupFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "file_researcher_cleanup_failures_total",
		Help: "Number of temporary files or directories that could not be removed",
	}, []string{"kind"})

	orphansRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "file_researcher_orphans_removed_total",
		Help: "Number of orphaned work directory entries removed by the sweep",
	})
)

type cleanupService struct {
	workDir   string
	orphanTTL time.Duration
	logger    *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(workDir string, orphanTTL time.Duration, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		workDir:   domain.ResolveWorkDir(workDir),
		orphanTTL: orphanTTL,
		logger:    logger,
	}
}
