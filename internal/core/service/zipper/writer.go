package zipper

import (
	"context"
	"io"
	"log/slog"
	"time"

	"file-researcher/internal/core/domain"
	"file-researcher/internal/core/port"

	"github.com/klauspost/compress/zip"
)

// DefaultProgressInterval is the minimum delay between two progress callbacks
const DefaultProgressInterval = 150 * time.Millisecond

// Writer streams source files into an archive while reporting byte progress
type Writer struct {
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time
}

// NewWriter creates a sequential archive writer
func NewWriter(logger *slog.Logger, interval time.Duration) *Writer {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &Writer{logger: logger, interval: interval, now: time.Now}
}

var _ port.ArchiveBuilder = (*Writer)(nil)

// Build writes every existing source into dest, progress is mapped into 0-90
func (w *Writer) Build(ctx context.Context, sources []string, dest string, progress port.ProgressFunc) error {
	planned := plan(w.logger, sources)

	var total int64
	for _, src := range planned {
		total += src.size
	}

	tracker := &progressTracker{
		total:    total,
		interval: w.interval,
		now:      w.now,
		emit:     progress,
	}
	if tracker.total == 0 {
		tracker.total = 1
	}

	buf := make([]byte, copyBufferSize)
	return createArchive(dest, func(zw *zip.Writer) error {
		for _, src := range planned {
			if err := ctx.Err(); err != nil {
				return err
			}
			tracker.current = src.name
			if err := addEntry(zw, src.name, src.path, buf, tracker.wrap); err != nil {
				return err
			}
		}
		return nil
	})
}

type progressTracker struct {
	total    int64
	written  int64
	last     int
	lastEmit time.Time
	current  string
	interval time.Duration
	now      func() time.Time
	emit     port.ProgressFunc
}

func (p *progressTracker) wrap(w io.Writer) io.Writer {
	return &countingWriter{w: w, tracker: p}
}

func (p *progressTracker) add(n int) {
	p.written += int64(n)
	if p.emit == nil {
		return
	}

	raw := p.written * 100 / p.total
	mapped := int(raw * domain.ProgressArchiveDone / 100)
	if mapped > domain.ProgressArchiveDone {
		mapped = domain.ProgressArchiveDone
	}
	if mapped <= p.last {
		return
	}

	t := p.now()
	if mapped == domain.ProgressArchiveDone || t.Sub(p.lastEmit) >= p.interval {
		p.emit(mapped, "Processing: "+p.current)
		p.last = mapped
		p.lastEmit = t
	}
}

type countingWriter struct {
	w       io.Writer
	tracker *progressTracker
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.tracker.add(n)
	return n, err
}
