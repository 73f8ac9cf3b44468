package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"file-researcher/internal/adapters/eventbroker/nats"
	"file-researcher/internal/adapters/handlers/http/chi"
	"file-researcher/internal/adapters/handlers/http/chi/v1/archive"
	"file-researcher/internal/adapters/mailer/smtp"
	"file-researcher/internal/adapters/repository/postgres"
	"file-researcher/internal/adapters/storage/minio"
	"file-researcher/internal/config"
	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"
	"file-researcher/internal/core/service/cleanup"
	"file-researcher/internal/core/service/delivery"
	"file-researcher/internal/core/service/dispatch"
	"file-researcher/internal/core/service/history"
	"file-researcher/internal/core/service/status"
	"file-researcher/internal/core/service/zipper"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
)

// tasks still running after this delay are cancelled on shutdown
const taskDrainTimeout = 30 * time.Second

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
			os.Exit(1)
		}
	}(db)
	logger.Info("db connection established")

	//progress
	broker, err := nats.NewNATSBroker(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init nats", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := broker.Close(); err != nil {
			logger.Error("failed to close nats", "error", err)
		}
	}()

	//storage
	var storage port.ArchiveStorage
	if cfg.Minio.Enabled() {
		minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
		if err != nil {
			logger.Error("failed to init minio", "error", err)
			os.Exit(1)
		}
		storage = minioAdapter
	} else {
		logger.Warn("archive retention disabled, resend is unavailable")
	}

	mailer, err := smtp.NewSMTPMailer(cfg.SMTP, logger)
	if err != nil {
		logger.Error("failed to init smtp mailer", "error", err)
		os.Exit(1)
	}

	workDir := domain.ResolveWorkDir(cfg.Archive.WorkDir)
	if err := os.MkdirAll(workDir, 0o700); err != nil {
		logger.Error("failed to create work dir", "dir", workDir, "error", err)
		os.Exit(1)
	}

	//services
	unitOfWork := postgres.NewUnitOfWork(db)
	statusService := status.NewStatusService(unitOfWork, logger)
	deliveryService := delivery.NewDeliveryService(unitOfWork, mailer, statusService, broker,
		delivery.Message{Subject: cfg.SMTP.Subject, Body: cfg.SMTP.Body}, logger)
	cleanupService := cleanup.NewCleanupService(workDir, cfg.Cleanup.OrphanTTL, logger)
	historyService := history.NewHistoryService(unitOfWork, cfg.Archive.LargeMinSize, logger)

	taskCtx, cancelTasks := context.WithCancel(context.Background())
	defer cancelTasks()
	dispatchService := dispatch.NewDispatchService(taskCtx, unitOfWork,
		dispatch.Builders{
			Sequential: zipper.NewWriter(logger, cfg.Archive.ProgressInterval),
			Parallel:   zipper.NewStager(workDir, logger),
		},
		deliveryService, cleanupService, broker, storage,
		dispatch.Config{WorkDir: workDir, ParallelThreshold: cfg.Archive.ParallelThreshold},
		logger)

	//http
	archiveHandler := archive.NewArchiveHandlerV1(dispatchService, historyService, broker, cfg.Server.MaxUploadBytes, logger)

	router := chi.NewRouter(logger, archiveHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// init cleanup task
	scheduler, err := initCleanupTask(ctx, cleanupService, cfg.Cleanup.OrphanSchedule, logger)
	if err != nil {
		logger.Error("failed to init cleanup task", "error", err)
		os.Exit(1)
	}

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	<-scheduler.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	drainTasks(dispatchService, cancelTasks, logger)

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

// initCleanupTask sweeps orphaned work files once at startup, then on schedule
func initCleanupTask(ctx context.Context, service port.CleanupService, schedule string, logger *slog.Logger) (*cron.Cron, error) {
	sweep := func() {
		logger.Info("cleanup task starting")
		removed, err := service.SweepOrphans(ctx, time.Now())
		if err != nil {
			logger.Error("failed to sweep orphaned files", "error", err)
			return
		}
		logger.Info("cleanup task completed successfully", "removed", removed)
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(schedule, sweep); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}

	sweep()
	scheduler.Start()
	logger.Info("cleanup task initialized", "schedule", schedule)

	return scheduler, nil
}

// drainTasks waits for in-flight archive tasks, cancelling them after taskDrainTimeout
func drainTasks(service *dispatch.Service, cancel context.CancelFunc, logger *slog.Logger) {
	done := make(chan struct{})
	go func() {
		service.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("archive tasks drained")
	case <-time.After(taskDrainTimeout):
		logger.Warn("archive tasks still running, cancelling")
		cancel()
		<-done
	}
}
