package mock

import (
	"context"

	"github.com/fwojciec/wetclean"
)

var _ wetclean.RunService = (*RunService)(nil)

// RunService is a mock implementation of wetclean.RunService.
type RunService struct {
	CreateRunFn        func(ctx context.Context, run *wetclean.Run) error
	FinishRunFn        func(ctx context.Context, run *wetclean.Run) error
	FindRunByIDFn      func(ctx context.Context, id string) (*wetclean.Run, error)
	FindRunsFn         func(ctx context.Context, filter wetclean.RunFilter) ([]*wetclean.Run, error)
	CreateFileRecordFn func(ctx context.Context, rec *wetclean.FileRecord) error
	FindFileRecordsFn  func(ctx context.Context, runID string) ([]*wetclean.FileRecord, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *wetclean.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, run *wetclean.Run) error {
	return s.FinishRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*wetclean.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter wetclean.RunFilter) ([]*wetclean.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) CreateFileRecord(ctx context.Context, rec *wetclean.FileRecord) error {
	return s.CreateFileRecordFn(ctx, rec)
}

func (s *RunService) FindFileRecords(ctx context.Context, runID string) ([]*wetclean.FileRecord, error) {
	return s.FindFileRecordsFn(ctx, runID)
}
