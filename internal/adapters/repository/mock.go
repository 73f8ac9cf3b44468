package repository

import (
	"context"
	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"

	"github.com/stretchr/testify/mock"
)

type MockFileSetRepository struct {
	mock.Mock
}

func NewMockFileSetRepository() *MockFileSetRepository {
	return &MockFileSetRepository{}
}

func (m *MockFileSetRepository) FindByID(ctx context.Context, id int64, withFiles bool) (*domain.FileSet, error) {
	args := m.Called(ctx, id, withFiles)
	fs, _ := args.Get(0).(*domain.FileSet)
	return fs, args.Error(1)
}

func (m *MockFileSetRepository) Save(ctx context.Context, fileSet domain.FileSet) error {
	args := m.Called(ctx, fileSet)
	return args.Error(0)
}

type MockArchiveRepository struct {
	mock.Mock
}

func NewMockArchiveRepository() *MockArchiveRepository {
	return &MockArchiveRepository{}
}

func (m *MockArchiveRepository) Create(ctx context.Context, archive *domain.Archive) error {
	args := m.Called(ctx, archive)
	return args.Error(0)
}

func (m *MockArchiveRepository) Save(ctx context.Context, archive domain.Archive) error {
	args := m.Called(ctx, archive)
	return args.Error(0)
}

func (m *MockArchiveRepository) FindByID(ctx context.Context, id int64) (*domain.Archive, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Archive)
	return a, args.Error(1)
}

func (m *MockArchiveRepository) FindMaxSendNumberByFileSetID(ctx context.Context, fileSetID int64) (int, error) {
	args := m.Called(ctx, fileSetID)
	return args.Int(0), args.Error(1)
}

func (m *MockArchiveRepository) NextSendNumber(ctx context.Context, fileSetID int64) (int, error) {
	args := m.Called(ctx, fileSetID)
	return args.Int(0), args.Error(1)
}

func (m *MockArchiveRepository) FindAllByFileSetID(ctx context.Context, fileSetID int64) ([]domain.Archive, error) {
	args := m.Called(ctx, fileSetID)
	archives, _ := args.Get(0).([]domain.Archive)
	return archives, args.Error(1)
}

func (m *MockArchiveRepository) FindAllByUserID(ctx context.Context, userID int64) ([]domain.Archive, error) {
	args := m.Called(ctx, userID)
	archives, _ := args.Get(0).([]domain.Archive)
	return archives, args.Error(1)
}

func (m *MockArchiveRepository) FindLarge(ctx context.Context, userID int64, minSize int64) ([]domain.Archive, error) {
	args := m.Called(ctx, userID, minSize)
	archives, _ := args.Get(0).([]domain.Archive)
	return archives, args.Error(1)
}

func (m *MockArchiveRepository) CountByStatusForUser(ctx context.Context, userID int64) (*domain.ArchiveStats, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*domain.ArchiveStats)
	return stats, args.Error(1)
}

type MockDeliveryAttemptRepository struct {
	mock.Mock
}

func NewMockDeliveryAttemptRepository() *MockDeliveryAttemptRepository {
	return &MockDeliveryAttemptRepository{}
}

func (m *MockDeliveryAttemptRepository) Create(ctx context.Context, attempt *domain.DeliveryAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockDeliveryAttemptRepository) FindAllByArchiveID(ctx context.Context, archiveID int64) ([]domain.DeliveryAttempt, error) {
	args := m.Called(ctx, archiveID)
	attempts, _ := args.Get(0).([]domain.DeliveryAttempt)
	return attempts, args.Error(1)
}

func (m *MockDeliveryAttemptRepository) FindMostRecentRecipient(ctx context.Context, archiveID int64) (string, error) {
	args := m.Called(ctx, archiveID)
	return args.String(0), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	fileSetRepo         *MockFileSetRepository
	archiveRepo         *MockArchiveRepository
	deliveryAttemptRepo *MockDeliveryAttemptRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		fileSetRepo:         &MockFileSetRepository{},
		archiveRepo:         &MockArchiveRepository{},
		deliveryAttemptRepo: &MockDeliveryAttemptRepository{},
	}
}

func (m *MockUnitOfWork) FileSetRepo() port.FileSetRepository {
	return m.fileSetRepo
}

func (m *MockUnitOfWork) ArchiveRepo() port.ArchiveRepository {
	return m.archiveRepo
}

func (m *MockUnitOfWork) DeliveryAttemptRepo() port.DeliveryAttemptRepository {
	return m.deliveryAttemptRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetFileSetRepoMock() *MockFileSetRepository {
	return m.fileSetRepo
}

func (m *MockUnitOfWork) GetArchiveRepoMock() *MockArchiveRepository {
	return m.archiveRepo
}

func (m *MockUnitOfWork) GetDeliveryAttemptRepoMock() *MockDeliveryAttemptRepository {
	return m.deliveryAttemptRepo
}
