package zipper_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/service/zipper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithCancel() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

func TestStager_Build_CompressesAllFiles(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	work := t.TempDir()
	var sources []string
	for i := 0; i < 40; i++ {
		sources = append(sources, writeFile(t, dir, fmt.Sprintf("f%02d.txt", i), fmt.Sprintf("content-%d", i)))
	}
	dest := filepath.Join(dir, "out.zip")
	s := zipper.NewStager(work, testLogger())

	// Act
	err := s.Build(ctx(), sources, dest, nil)

	// Assert
	require.NoError(t, err)
	names, contents := readArchive(t, dest)
	assert.Len(t, names, 40)
	assert.Equal(t, "content-7", contents["f07.txt"])
}

func TestStager_Build_RemovesStagingDir(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	work := t.TempDir()
	a := writeFile(t, dir, "a.txt", "hello")
	dest := filepath.Join(dir, "out.zip")
	s := zipper.NewStager(work, testLogger())

	// Act
	err := s.Build(ctx(), []string{a}, dest, nil)

	// Assert
	require.NoError(t, err)
	entries, err := os.ReadDir(work)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), domain.StageDirPrefix), "staging dir %s left behind", e.Name())
	}
}

func TestStager_Build_SkipsMissingAndDuplicates(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	work := t.TempDir()
	first := writeFile(t, dir, "x/data.csv", "first")
	second := writeFile(t, dir, "y/data.csv", "second")
	missing := filepath.Join(dir, "nope.csv")
	dest := filepath.Join(dir, "out.zip")
	s := zipper.NewStager(work, testLogger())

	// Act
	err := s.Build(ctx(), []string{first, missing, second}, dest, nil)

	// Assert
	require.NoError(t, err)
	names, contents := readArchive(t, dest)
	assert.Equal(t, []string{"data.csv"}, names)
	assert.Equal(t, "first", contents["data.csv"])
}

func TestStager_Build_MissingWorkDirFails(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "hello")
	s := zipper.NewStager(filepath.Join(dir, "does", "not", "exist"), testLogger())

	// Act
	err := s.Build(ctx(), []string{a}, filepath.Join(dir, "out.zip"), nil)

	// Assert
	assert.Error(t, err)
}
