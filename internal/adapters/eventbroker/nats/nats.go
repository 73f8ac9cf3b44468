package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"file-researcher/internal/config"
	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"
	"time"

	"github.com/nats-io/nats.go"
)

// Broker publishes and subscribes to task progress over core nats
type Broker struct {
	logger *slog.Logger
	conn   *nats.Conn
	config config.NATSConfig
}

var (
	_ port.ProgressNotifier   = (*Broker)(nil)
	_ port.ProgressSubscriber = (*Broker)(nil)
)

// NewNATSBroker creates a new broker
func NewNATSBroker(cfg config.NATSConfig, logger *slog.Logger) (*Broker, error) {

	opts := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Broker{
		conn:   conn,
		config: cfg,
		logger: logger,
	}, nil
}

func (b *Broker) subject(taskID string) string {
	return b.config.ProgressSubjectPrefix + "." + taskID
}

// Publish sends a progress update, failures are only logged
func (b *Broker) Publish(_ context.Context, taskID string, percent int, message string) {
	data, err := json.Marshal(domain.ProgressUpdate{Percent: percent, Message: message})
	if err != nil {
		b.logger.Error("failed to marshal progress", "task_id", taskID, "error", err)
		return
	}

	if err := b.conn.Publish(b.subject(taskID), data); err != nil {
		b.logger.Warn("failed to publish progress", "task_id", taskID, "error", err)
	}
}

// Subscribe calls fn for every update of taskID until the returned func is called
func (b *Broker) Subscribe(_ context.Context, taskID string, fn func(update domain.ProgressUpdate)) (func(), error) {
	sub, err := b.conn.Subscribe(b.subject(taskID), func(msg *nats.Msg) {
		var update domain.ProgressUpdate
		if err := json.Unmarshal(msg.Data, &update); err != nil {
			b.logger.Warn("failed to decode progress", "task_id", taskID, "error", err)
			return
		}
		fn(update)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to progress: %w", err)
	}

	if err := b.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("failed to flush subscription: %w", err)
	}

	return func() {
		if err := sub.Unsubscribe(); err != nil && err != nats.ErrConnectionClosed {
			b.logger.Warn("failed to unsubscribe", "task_id", taskID, "error", err)
		}
	}, nil
}

// Close graceful shutdown
func (b *Broker) Close() error {
	if b.conn != nil {
		if err := b.conn.Drain(); err != nil {
			b.conn.Close()
			return err
		}
	}
	return nil
}
