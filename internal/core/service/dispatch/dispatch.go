// Package dispatch runs the archive and delivery pipeline in the background.
package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultParallelThreshold is the entry count from which path based tasks use the stager
const DefaultParallelThreshold = 32

const (
	variantPath   = "path"
	variantUpload = "upload"
	variantResend = "resend"
)

var (
	tasksStartedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "file_researcher_tasks_started_total",
		Help: "Number of archive tasks launched",
	}, []string{"variant"})

	tasksFinishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "file_researcher_tasks_finished_total",
		Help: "Number of archive tasks finished by outcome",
	}, []string{"variant", "outcome"})

	archiveBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "file_researcher_archive_build_duration_seconds",
		Help:    "Time spent compressing archives",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
	}, []string{"builder"})
)

// Builders holds the two archive builders a task can pick from
type Builders struct {
	Sequential port.ArchiveBuilder
	Parallel   port.ArchiveBuilder
}

// Config tunes where and how archives are built
type Config struct {
	WorkDir           string
	ParallelThreshold int
}

// Service launches pipeline tasks and tracks them until they return
type Service struct {
	ctx      context.Context
	wg       sync.WaitGroup
	uow      port.UnitOfWork
	builders Builders
	delivery port.DeliveryService
	cleanup  port.CleanupService
	notifier port.ProgressNotifier
	storage  port.ArchiveStorage
	cfg      Config
	logger   *slog.Logger
}

var _ port.DispatchService = (*Service)(nil)

// NewDispatchService creates a dispatcher whose tasks run under ctx. storage may be nil.
func NewDispatchService(
	ctx context.Context,
	uow port.UnitOfWork,
	builders Builders,
	delivery port.DeliveryService,
	cleanup port.CleanupService,
	notifier port.ProgressNotifier,
	storage port.ArchiveStorage,
	cfg Config,
	logger *slog.Logger,
) *Service {
	cfg.WorkDir = domain.ResolveWorkDir(cfg.WorkDir)
	if cfg.ParallelThreshold <= 0 {
		cfg.ParallelThreshold = DefaultParallelThreshold
	}
	return &Service{
		ctx:      ctx,
		uow:      uow,
		builders: builders,
		delivery: delivery,
		cleanup:  cleanup,
		notifier: notifier,
		storage:  storage,
		cfg:      cfg,
		logger:   logger,
	}
}

// Wait blocks until every launched task has returned
func (s *Service) Wait() {
	s.wg.Wait()
}
