// Package zipper builds zip archives from files on local disk.
package zipper

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

const copyBufferSize = 32 * 1024

// source is a file planned for archiving under entry name
type source struct {
	path string
	name string
	size int64
}

// plan keeps the existing regular files of paths, one per base name, in input order
func plan(logger *slog.Logger, paths []string) []source {
	planned := make([]source, 0, len(paths))
	seen := make(map[string]string, len(paths))

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("skipping source file", "path", path, "error", err)
			continue
		}
		if !info.Mode().IsRegular() {
			logger.Warn("skipping non regular source", "path", path)
			continue
		}

		name := filepath.Base(path)
		if first, ok := seen[name]; ok {
			logger.Warn("skipping duplicate entry name", "entry", name, "path", path, "kept", first)
			continue
		}
		seen[name] = path
		planned = append(planned, source{path: path, name: name, size: info.Size()})
	}
	return planned
}

// addEntry copies the file at path into a new deflated entry of zw, through wrap when set
func addEntry(zw *zip.Writer, name string, path string, buf []byte, wrap func(io.Writer) io.Writer) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: info.ModTime(),
	}
	entry, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("creating entry %s: %w", name, err)
	}

	var out io.Writer = entry
	if wrap != nil {
		out = wrap(entry)
	}
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		return fmt.Errorf("writing entry %s: %w", name, err)
	}
	return nil
}

// createArchive opens dest and hands a zip writer to fill, closing both
func createArchive(dest string, fill func(zw *zip.Writer) error) (err error) {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", dest, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing archive %s: %w", dest, closeErr)
		}
	}()

	zw := zip.NewWriter(out)
	if err := fill(zw); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive %s: %w", dest, err)
	}
	return nil
}
