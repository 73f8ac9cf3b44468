package zipper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"
)

// Stager copies sources in parallel into a staging directory, then compresses it
type Stager struct {
	workDir string
	workers int
	logger  *slog.Logger
	copy    func(src, dst string) error
}

// NewStager creates a parallel stager working under workDir
func NewStager(workDir string, logger *slog.Logger) *Stager {
	return &Stager{
		workDir: domain.ResolveWorkDir(workDir),
		workers: 2 * runtime.NumCPU(),
		logger:  logger,
		copy:    copyFile,
	}
}

var _ port.ArchiveBuilder = (*Stager)(nil)

// Build stages and compresses sources into dest. Progress is not reported.
func (s *Stager) Build(ctx context.Context, sources []string, dest string, _ port.ProgressFunc) error {
	stageDir, err := os.MkdirTemp(s.workDir, domain.StageDirPrefix+"*")
	if err != nil {
		return fmt.Errorf("creating staging dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(stageDir); err != nil {
			s.logger.Error("failed to remove staging dir", "dir", stageDir, "error", err)
		}
	}()

	planned := plan(s.logger, sources)
	if err := s.stage(ctx, planned, stageDir); err != nil {
		return fmt.Errorf("staging files: %w", err)
	}

	return compressDir(ctx, stageDir, dest)
}

// stage copies planned files into dir with at most min(n, workers) goroutines
func (s *Stager) stage(ctx context.Context, planned []source, dir string) error {
	if len(planned) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(len(planned), s.workers))

	for _, src := range planned {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dst := filepath.Join(dir, src.name)
			if err := s.copy(src.path, dst); err != nil {
				return fmt.Errorf("copying %s: %w", src.path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Sync()
}

// compressDir writes the regular files directly under dir into dest
func compressDir(ctx context.Context, dir string, dest string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading staging dir: %w", err)
	}

	buf := make([]byte, copyBufferSize)
	return createArchive(dest, func(zw *zip.Writer) error {
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !entry.Type().IsRegular() {
				continue
			}
			if err := addEntry(zw, entry.Name(), filepath.Join(dir, entry.Name()), buf, nil); err != nil {
				return err
			}
		}
		return nil
	})
}
