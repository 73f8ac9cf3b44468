package cleanup_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/service/cleanup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupService_RemoveArchive(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "fileset-1-1.zip")
	require.NoError(t, os.WriteFile(path, []byte("zip"), 0o644))
	service := cleanup.NewCleanupService(dir, time.Hour, slog.Default())

	// Act
	service.RemoveArchive(path)

	// Assert
	assert.NoFileExists(t, path)
}

func TestCleanupService_RemoveArchive_MissingIsIgnored(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	service := cleanup.NewCleanupService(dir, time.Hour, slog.Default())

	// Act & Assert
	assert.NotPanics(t, func() {
		service.RemoveArchive(filepath.Join(dir, "nope.zip"))
		service.RemoveArchive("")
	})
}

func TestCleanupService_RemoveStagingDir_Nested(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	staging := filepath.Join(dir, "upload-abc")
	require.NoError(t, os.MkdirAll(filepath.Join(staging, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "a", "b", "f.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "g.txt"), []byte("y"), 0o644))
	service := cleanup.NewCleanupService(dir, time.Hour, slog.Default())

	// Act
	service.RemoveStagingDir(staging)

	// Assert
	assert.NoDirExists(t, staging)
}

func TestCleanupService_SweepOrphans(t *testing.T) {
	// Arrange
	ctx := context.Background()
	dir := t.TempDir()
	now := time.Now()
	old := now.Add(-2 * time.Hour)

	oldArchive := filepath.Join(dir, "fileset-1-1.zip")
	freshArchive := filepath.Join(dir, "fileset-1-2.zip")
	oldUpload := filepath.Join(dir, "upload-task")
	oldStage := filepath.Join(dir, "stage-123")
	unrelated := filepath.Join(dir, "notes.txt")

	require.NoError(t, os.WriteFile(oldArchive, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(freshArchive, []byte("b"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(oldUpload, "x"), 0o755))
	require.NoError(t, os.MkdirAll(oldStage, 0o755))
	require.NoError(t, os.WriteFile(unrelated, []byte("c"), 0o644))
	for _, p := range []string{oldArchive, oldUpload, oldStage, unrelated} {
		require.NoError(t, os.Chtimes(p, old, old))
	}

	service := cleanup.NewCleanupService(dir, time.Hour, slog.Default())

	// Act
	removed, err := service.SweepOrphans(ctx, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.NoFileExists(t, oldArchive)
	assert.NoDirExists(t, oldUpload)
	assert.NoDirExists(t, oldStage)
	assert.FileExists(t, freshArchive)
	assert.FileExists(t, unrelated)
}

func TestCleanupService_SweepOrphans_MissingDir(t *testing.T) {
	// Arrange
	service := cleanup.NewCleanupService(filepath.Join(t.TempDir(), "missing"), time.Hour, slog.Default())

	// Act
	removed, err := service.SweepOrphans(context.Background(), time.Now())

	// Assert
	assert.Error(t, err)
	assert.Zero(t, removed)
}

func TestCleanupService_SweepOrphans_DefaultWorkDirSparesSharedTemp(t *testing.T) {
	// Arrange
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	now := time.Now()
	old := now.Add(-7 * time.Hour)

	foreignUpload := filepath.Join(tmp, "upload-otherapp-session")
	foreignStage := filepath.Join(tmp, "stage-build-cache")
	foreignArchive := filepath.Join(tmp, "fileset-9-9.zip")
	require.NoError(t, os.MkdirAll(filepath.Join(foreignUpload, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(foreignUpload, "data", "precious.bin"), []byte("keep"), 0o644))
	require.NoError(t, os.MkdirAll(foreignStage, 0o755))
	require.NoError(t, os.WriteFile(foreignArchive, []byte("keep"), 0o644))

	workDir := domain.DefaultWorkDir()
	require.Equal(t, filepath.Join(tmp, domain.WorkDirName), workDir)
	ownUpload := filepath.Join(workDir, "upload-task")
	require.NoError(t, os.MkdirAll(ownUpload, 0o700))

	for _, p := range []string{foreignUpload, foreignStage, foreignArchive, ownUpload} {
		require.NoError(t, os.Chtimes(p, old, old))
	}

	service := cleanup.NewCleanupService("", 6*time.Hour, slog.Default())

	// Act
	removed, err := service.SweepOrphans(context.Background(), now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoDirExists(t, ownUpload)
	assert.FileExists(t, filepath.Join(foreignUpload, "data", "precious.bin"))
	assert.DirExists(t, foreignStage)
	assert.FileExists(t, foreignArchive)
}

func TestCleanupService_SweepOrphans_DefaultWorkDirNotCreatedYet(t *testing.T) {
	// Arrange
	t.Setenv("TMPDIR", t.TempDir())
	service := cleanup.NewCleanupService("", time.Hour, slog.Default())

	// Act
	removed, err := service.SweepOrphans(context.Background(), time.Now())

	// Assert
	require.NoError(t, err)
	assert.Zero(t, removed)
}
