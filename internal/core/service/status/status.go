package status

import (
	"log/slog"
	"time"

	"file-researcher/internal/core/port"
)

type statusService struct {
	uow    port.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// NewStatusService creates a new status service
func NewStatusService(uow port.UnitOfWork, logger *slog.Logger) port.StatusService {
	return &statusService{
		uow:    uow,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}
