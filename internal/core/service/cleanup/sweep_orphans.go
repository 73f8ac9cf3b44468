package cleanup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"file-researcher/internal/core/domain"
)

// SweepOrphans removes task scoped work dir entries older than the orphan ttl
func (c *cleanupService) SweepOrphans(ctx context.Context, now time.Time) (int, error) {
	dir := c.workDir
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) && dir == domain.DefaultWorkDir() {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading work dir %s: %w", dir, err)
	}

	cutoff := now.Add(-c.orphanTTL)
	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !isTaskEntry(entry) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			cleanupFailuresTotal.WithLabelValues("orphan").Inc()
			c.logger.Error("failed to remove orphan", "path", path, "error", err)
			continue
		}
		removed++
	}

	orphansRemovedTotal.Add(float64(removed))
	c.logger.Info("orphan sweep completed", "dir", dir, "removed", removed)
	return removed, nil
}

func isTaskEntry(entry os.DirEntry) bool {
	name := entry.Name()
	if entry.IsDir() {
		return strings.HasPrefix(name, domain.UploadDirPrefix) || strings.HasPrefix(name, domain.StageDirPrefix)
	}
	return strings.HasPrefix(name, domain.ArchivePrefix) && strings.HasSuffix(name, domain.ArchiveSuffix)
}
