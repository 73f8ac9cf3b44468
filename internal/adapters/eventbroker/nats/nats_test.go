package nats_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	nats2 "file-researcher/internal/adapters/eventbroker/nats"
	"file-researcher/internal/config"
	"file-researcher/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type recorder struct {
	mu       sync.Mutex
	updates  []domain.ProgressUpdate
	received chan struct{}
}

func (r *recorder) handle(update domain.ProgressUpdate) {
	r.mu.Lock()
	r.updates = append(r.updates, update)
	r.mu.Unlock()
	r.received <- struct{}{}
}

func setupNATSContainer(t *testing.T) (string, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "nats:2.10-alpine",
		ExposedPorts: []string{"4222/tcp"},
		WaitingFor:   wait.ForLog("Server is ready"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}

	return "nats://" + host + ":" + port.Port(), cleanup
}

func newBroker(t *testing.T, url string) *nats2.Broker {
	cfg := config.NATSConfig{URL: url, ClientName: "test", ProgressSubjectPrefix: "progress"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	broker, err := nats2.NewNATSBroker(cfg, logger)
	require.NoError(t, err)
	return broker
}

func waitFor(t *testing.T, ch chan struct{}) {
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("update not received")
	}
}

func TestBroker_PublishSubscribe(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	broker := newBroker(t, natsURL)
	defer broker.Close()

	rec := &recorder{received: make(chan struct{}, 2)}
	unsubscribe, err := broker.Subscribe(context.Background(), "task-1", rec.handle)
	require.NoError(t, err)
	defer unsubscribe()

	// Act
	broker.Publish(context.Background(), "task-1", 45, "Processing: a.txt")
	broker.Publish(context.Background(), "task-1", 100, "Completed!")
	waitFor(t, rec.received)
	waitFor(t, rec.received)

	// Assert
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.updates, 2)
	assert.Equal(t, domain.ProgressUpdate{Percent: 45, Message: "Processing: a.txt"}, rec.updates[0])
	assert.True(t, rec.updates[1].Terminal())
}

func TestBroker_PublishWireFormat(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	broker := newBroker(t, natsURL)
	defer broker.Close()

	nc, err := nats.Connect(natsURL)
	require.NoError(t, err)
	defer nc.Close()

	sub, err := nc.SubscribeSync("progress.task-2")
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	// Act
	broker.Publish(context.Background(), "task-2", -1, "Error: boom")
	msg, err := sub.NextMsg(3 * time.Second)

	// Assert
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, float64(-1), payload["percent"])
	assert.Equal(t, "Error: boom", payload["message"])
}

func TestBroker_OtherTaskIgnored(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	broker := newBroker(t, natsURL)
	defer broker.Close()

	rec := &recorder{received: make(chan struct{}, 1)}
	unsubscribe, err := broker.Subscribe(context.Background(), "task-3", rec.handle)
	require.NoError(t, err)
	defer unsubscribe()

	// Act
	broker.Publish(context.Background(), "task-4", 10, "Processing: b.txt")

	// Assert
	select {
	case <-rec.received:
		t.Fatal("update of another task should not be delivered")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestBroker_Unsubscribe(t *testing.T) {
	// Arrange
	natsURL, cleanup := setupNATSContainer(t)
	defer cleanup()
	broker := newBroker(t, natsURL)
	defer broker.Close()

	rec := &recorder{received: make(chan struct{}, 1)}
	unsubscribe, err := broker.Subscribe(context.Background(), "task-5", rec.handle)
	require.NoError(t, err)

	// Act
	unsubscribe()
	broker.Publish(context.Background(), "task-5", 50, "late")

	// Assert
	select {
	case <-rec.received:
		t.Fatal("update should not be delivered after unsubscribe")
	case <-time.After(500 * time.Millisecond):
	}
}
