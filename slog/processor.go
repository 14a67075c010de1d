package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wetclean"
)

// Ensure LoggingFileProcessor implements wetclean.FileProcessor.
var _ wetclean.FileProcessor = (*LoggingFileProcessor)(nil)

// LoggingFileProcessor wraps a FileProcessor with per-file logging.
type LoggingFileProcessor struct {
	next   wetclean.FileProcessor
	logger *slog.Logger
}

// NewLoggingFileProcessor creates a new LoggingFileProcessor.
func NewLoggingFileProcessor(next wetclean.FileProcessor, logger *slog.Logger) *LoggingFileProcessor {
	return &LoggingFileProcessor{next: next, logger: logger}
}

// ProcessFile delegates to the wrapped processor and logs the outcome.
func (p *LoggingFileProcessor) ProcessFile(ctx context.Context, path string, w io.Writer) (stats wetclean.FileStats, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		p.logger.Log(ctx, level, "process file",
			"path", path,
			"total", stats.Total,
			"kept", stats.Kept,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ProcessFile(ctx, path, w)
}
