package eventbroker

import (
	"context"
	"file-researcher/internal/core/domain"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockProgressNotifier struct {
	mock.Mock
}

func NewMockProgressNotifier() *MockProgressNotifier {
	return &MockProgressNotifier{}
}

func (m *MockProgressNotifier) Publish(ctx context.Context, taskID string, percent int, message string) {
	m.Called(ctx, taskID, percent, message)
}

// Updates returns the recorded updates of taskID in publish order
func (m *MockProgressNotifier) Updates(taskID string) []domain.ProgressUpdate {
	var updates []domain.ProgressUpdate
	for _, call := range m.Calls {
		if call.Method != "Publish" || call.Arguments.String(1) != taskID {
			continue
		}
		updates = append(updates, domain.ProgressUpdate{
			Percent: call.Arguments.Int(2),
			Message: call.Arguments.String(3),
		})
	}
	return updates
}

type MockProgressSubscriber struct {
	mock.Mock
}

func NewMockProgressSubscriber() *MockProgressSubscriber {
	return &MockProgressSubscriber{}
}

func (m *MockProgressSubscriber) Subscribe(ctx context.Context, taskID string, fn func(update domain.ProgressUpdate)) (func(), error) {
	args := m.Called(ctx, taskID, fn)
	unsubscribe, _ := args.Get(0).(func())
	return unsubscribe, args.Error(1)
}

// ChannelBroker is an in-memory notifier and subscriber pair for tests
type ChannelBroker struct {
	mu   sync.Mutex
	subs map[string][]func(domain.ProgressUpdate)
}

func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{subs: make(map[string][]func(domain.ProgressUpdate))}
}

func (b *ChannelBroker) Publish(_ context.Context, taskID string, percent int, message string) {
	b.mu.Lock()
	subs := append([]func(domain.ProgressUpdate){}, b.subs[taskID]...)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(domain.ProgressUpdate{Percent: percent, Message: message})
	}
}

func (b *ChannelBroker) Subscribe(_ context.Context, taskID string, fn func(update domain.ProgressUpdate)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[taskID] = append(b.subs[taskID], fn)
	idx := len(b.subs[taskID]) - 1

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if idx < len(b.subs[taskID]) {
			b.subs[taskID][idx] = func(domain.ProgressUpdate) {}
		}
	}, nil
}
