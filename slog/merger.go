package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wetclean"
)

// Ensure LoggingMerger implements wetclean.Merger.
var _ wetclean.Merger = (*LoggingMerger)(nil)

// LoggingMerger wraps a Merger with logging.
type LoggingMerger struct {
	next   wetclean.Merger
	logger *slog.Logger
}

// NewLoggingMerger creates a new LoggingMerger.
func NewLoggingMerger(next wetclean.Merger, logger *slog.Logger) *LoggingMerger {
	return &LoggingMerger{next: next, logger: logger}
}

// Merge delegates to the wrapped merger and logs document counts.
func (m *LoggingMerger) Merge(ctx context.Context, paths []string, w io.Writer) (result *wetclean.MergeResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"files", len(paths), "duration", time.Since(begin)}
		if result != nil {
			attrs = append(attrs, "seen", result.Seen, "kept", result.Kept, "duplicates", result.Skipped())
		}
		attrs = append(attrs, "err", err)
		m.logger.InfoContext(ctx, "merge", attrs...)
	}(time.Now())
	return m.next.Merge(ctx, paths, w)
}
