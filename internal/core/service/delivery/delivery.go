package delivery

import (
	"log/slog"
	"time"

	"file-researcher/internal/core/port"
)

// Message is the fixed subject and body of delivery emails
type Message struct {
	Subject string
	Body    string
}

type deliveryService struct {
	uow      port.UnitOfWork
	mailer   port.Mailer
	status   port.StatusService
	notifier port.ProgressNotifier
	message  Message
	logger   *slog.Logger
	now      func() time.Time
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(uow port.UnitOfWork, mailer port.Mailer, status port.StatusService, notifier port.ProgressNotifier, message Message, logger *slog.Logger) port.DeliveryService {
	return &deliveryService{
		uow:      uow,
		mailer:   mailer,
		status:   status,
		notifier: notifier,
		message:  message,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}
