package cleanup

import (
	"errors"
	"io/fs"
	"os"
)

// RemoveArchive deletes a generated archive file, errors are logged only
func (c *cleanupService) RemoveArchive(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		cleanupFailuresTotal.WithLabelValues("archive").Inc()
		c.logger.Error("failed to remove archive", "path", path, "error", err)
		return
	}
	c.logger.Debug("archive removed", "path", path)
}

// RemoveStagingDir deletes dir and everything below it, errors are logged only
func (c *cleanupService) RemoveStagingDir(dir string) {
	if dir == "" {
		return
	}
	// RemoveAll empties children before their parents
	if err := os.RemoveAll(dir); err != nil {
		cleanupFailuresTotal.WithLabelValues("staging").Inc()
		c.logger.Error("failed to remove staging dir", "dir", dir, "error", err)
		return
	}
	c.logger.Debug("staging dir removed", "dir", dir)
}
