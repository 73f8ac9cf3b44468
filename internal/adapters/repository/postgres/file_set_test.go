package postgres_test

import (
	"context"
	"file-researcher/internal/adapters/repository/postgres"
	"file-researcher/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSqlFileSetRepository(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := postgres.NewSqlFileSetRepository(dbConnection)

	t.Run("FindByID - With files in order", func(t *testing.T) {
		// Arrange
		truncate()
		fileSet := &domain.FileSet{
			Name:           "reports",
			RecipientEmail: "default@example.com",
			UserID:         7,
			Files: []domain.FileEntry{
				{Name: "b.txt", Path: "/data/b.txt", Size: 20, Extension: "txt"},
				{Name: "a.txt", Path: "/data/a.txt", Size: 10, Extension: "txt"},
			},
		}
		postgres.SeedFileSet(t, dbConnection, fileSet)

		// Act
		found, err := repo.FindByID(ctx, fileSet.ID, true)

		// Assert
		require.NoError(t, err)
		require.Equal(t, "reports", found.Name)
		require.Equal(t, int64(7), found.UserID)
		require.Equal(t, domain.FileSetStatusActive, found.Status)
		require.Len(t, found.Files, 2)
		require.Equal(t, "/data/b.txt", found.Files[0].Path)
		require.Equal(t, "/data/a.txt", found.Files[1].Path)
		require.Equal(t, int64(30), found.Files[0].Size+found.Files[1].Size)
	})

	t.Run("FindByID - Without files", func(t *testing.T) {
		// Arrange
		truncate()
		fileSet := &domain.FileSet{Name: "x", UserID: 1, Files: []domain.FileEntry{{Name: "a", Path: "/a"}}}
		postgres.SeedFileSet(t, dbConnection, fileSet)

		// Act
		found, err := repo.FindByID(ctx, fileSet.ID, false)

		// Assert
		require.NoError(t, err)
		require.Empty(t, found.Files)
	})

	t.Run("FindByID - Not found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		found, err := repo.FindByID(ctx, 999, true)

		// Assert
		require.ErrorIs(t, err, domain.ErrFileSetNotFound)
		require.Nil(t, found)
	})

	t.Run("Save - Updates status", func(t *testing.T) {
		// Arrange
		truncate()
		fileSet := &domain.FileSet{Name: "x", UserID: 1}
		postgres.SeedFileSet(t, dbConnection, fileSet)
		fileSet.Status = domain.FileSetStatusSent

		// Act
		err := repo.Save(ctx, *fileSet)

		// Assert
		require.NoError(t, err)
		found, err := repo.FindByID(ctx, fileSet.ID, false)
		require.NoError(t, err)
		require.Equal(t, domain.FileSetStatusSent, found.Status)
	})

	t.Run("Save - Not found", func(t *testing.T) {
		// Arrange
		truncate()

		// Act
		err := repo.Save(ctx, domain.FileSet{ID: 42, Status: domain.FileSetStatusSent})

		// Assert
		require.ErrorIs(t, err, domain.ErrFileSetNotFound)
	})
}
