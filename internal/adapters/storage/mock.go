package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockArchiveStorage struct {
	mock.Mock
}

func NewMockArchiveStorage() *MockArchiveStorage {
	return &MockArchiveStorage{}
}

func (m *MockArchiveStorage) PutArchive(ctx context.Context, name string, localPath string) error {
	args := m.Called(ctx, name, localPath)
	return args.Error(0)
}

func (m *MockArchiveStorage) FetchArchive(ctx context.Context, name string, localPath string) error {
	args := m.Called(ctx, name, localPath)
	return args.Error(0)
}
