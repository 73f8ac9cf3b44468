package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"file-researcher/internal/core/domain"
)

// stageUploads copies upload contents into a task scoped directory and returns their paths
func (s *Service) stageUploads(ctx context.Context, taskID string, uploads []domain.Upload) (string, []string, error) {
	dir := filepath.Join(s.cfg.WorkDir, domain.UploadDirPrefix+taskID)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", nil, fmt.Errorf("creating upload dir: %w", err)
	}

	seen := make(map[string]struct{}, len(uploads))
	sources := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		if err := ctx.Err(); err != nil {
			s.cleanup.RemoveStagingDir(dir)
			return "", nil, err
		}

		name := filepath.Base(filepath.Clean("/" + upload.Name))
		if name == "/" || name == "." {
			s.logger.Warn("skipping upload without a name", "task_id", taskID)
			continue
		}
		if _, ok := seen[name]; ok {
			s.logger.Warn("skipping duplicate upload name", "task_id", taskID, "entry", name)
			continue
		}
		seen[name] = struct{}{}

		path := filepath.Join(dir, name)
		if err := writeUpload(path, upload.Content); err != nil {
			s.cleanup.RemoveStagingDir(dir)
			return "", nil, fmt.Errorf("staging upload %s: %w", name, err)
		}
		sources = append(sources, path)
	}

	return dir, sources, nil
}

func writeUpload(path string, content io.Reader) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, content); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
