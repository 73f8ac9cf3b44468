package port

import (
	"context"
	"file-researcher/internal/core/domain"
)

// FileSetRepository is an interface to define file set repository interactions
type FileSetRepository interface {
	FindByID(ctx context.Context, id int64, withFiles bool) (*domain.FileSet, error)
	Save(ctx context.Context, fileSet domain.FileSet) error
}
