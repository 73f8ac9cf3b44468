package port

import (
	"context"
	"file-researcher/internal/core/domain"
)

// ArchiveRepository is an interface to define archive repository interactions
type ArchiveRepository interface {
	Create(ctx context.Context, archive *domain.Archive) error
	Save(ctx context.Context, archive domain.Archive) error
	FindByID(ctx context.Context, id int64) (*domain.Archive, error)
	FindMaxSendNumberByFileSetID(ctx context.Context, fileSetID int64) (int, error)
	NextSendNumber(ctx context.Context, fileSetID int64) (int, error)
	FindAllByFileSetID(ctx context.Context, fileSetID int64) ([]domain.Archive, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]domain.Archive, error)
	FindLarge(ctx context.Context, userID int64, minSize int64) ([]domain.Archive, error)
	CountByStatusForUser(ctx context.Context, userID int64) (*domain.ArchiveStats, error)
}

// ArchiveStorage keeps built archives so they can be delivered again later
type ArchiveStorage interface {
	PutArchive(ctx context.Context, name string, localPath string) error
	FetchArchive(ctx context.Context, name string, localPath string) error
}

// ProgressFunc receives byte level progress while an archive is written
type ProgressFunc func(percent int, message string)

// ArchiveBuilder writes source files into a single compressed archive
type ArchiveBuilder interface {
	Build(ctx context.Context, sources []string, dest string, progress ProgressFunc) error
}
