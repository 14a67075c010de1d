package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wetclean"
)

// Ensure LoggingRunService implements wetclean.RunService.
var _ wetclean.RunService = (*LoggingRunService)(nil)

// LoggingRunService wraps a RunService with debug logging of ledger writes.
// Reads are delegated without logging.
type LoggingRunService struct {
	next   wetclean.RunService
	logger *slog.Logger
}

// NewLoggingRunService creates a new LoggingRunService.
func NewLoggingRunService(next wetclean.RunService, logger *slog.Logger) *LoggingRunService {
	return &LoggingRunService{next: next, logger: logger}
}

// CreateRun delegates to the wrapped service and logs the new run ID.
func (s *LoggingRunService) CreateRun(ctx context.Context, run *wetclean.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "create run",
			"id", run.ID,
			"input", run.InputDir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

// FinishRun delegates to the wrapped service and logs the final status.
func (s *LoggingRunService) FinishRun(ctx context.Context, run *wetclean.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "finish run",
			"id", run.ID,
			"status", run.Status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FinishRun(ctx, run)
}

// FindRunByID delegates to the wrapped service.
func (s *LoggingRunService) FindRunByID(ctx context.Context, id string) (*wetclean.Run, error) {
	return s.next.FindRunByID(ctx, id)
}

// FindRuns delegates to the wrapped service.
func (s *LoggingRunService) FindRuns(ctx context.Context, filter wetclean.RunFilter) ([]*wetclean.Run, error) {
	return s.next.FindRuns(ctx, filter)
}

// CreateFileRecord delegates to the wrapped service and logs the file.
func (s *LoggingRunService) CreateFileRecord(ctx context.Context, rec *wetclean.FileRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "create file record",
			"run", rec.RunID,
			"path", rec.Path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateFileRecord(ctx, rec)
}

// FindFileRecords delegates to the wrapped service.
func (s *LoggingRunService) FindFileRecords(ctx context.Context, runID string) ([]*wetclean.FileRecord, error) {
	return s.next.FindFileRecords(ctx, runID)
}
