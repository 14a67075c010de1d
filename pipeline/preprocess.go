package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/wetclean"
)

// Corpus is the destination of a run. Nothing is visible at the final
// location until Commit.
type Corpus interface {
	io.Writer
	Commit() error
	Abort() error
}

// Pipeline runs the whole preprocessing job: parallel extraction into
// scratch files, then a single-threaded merge into the corpus.
type Pipeline struct {
	Coordinator *Coordinator
	Merger      wetclean.Merger

	// Runs is optional. When set, every run and file outcome is recorded.
	Runs wetclean.RunService

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Summary is the final accounting of one run.
type Summary struct {
	Files       int
	FailedFiles int

	Total             int
	Kept              int
	KeptAfterDedup    int
	DuplicatesRemoved int

	Duration time.Duration

	// RunID is the ledger ID, if a ledger is configured.
	RunID string
}

// RetentionRate returns KeptAfterDedup/Total, or zero when nothing was seen.
func (s *Summary) RetentionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.KeptAfterDedup) / float64(s.Total)
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Run processes files from inputDir into out. On any failure the corpus is
// aborted and every remaining scratch file is removed.
func (p *Pipeline) Run(ctx context.Context, inputDir string, files []string, out Corpus, outputPath string, progress ProgressFunc) (*Summary, error) {
	start := p.now()
	summary := &Summary{Files: len(files)}

	run := &wetclean.Run{
		InputDir:   inputDir,
		OutputPath: outputPath,
		Status:     wetclean.RunRunning,
		Files:      len(files),
		StartedAt:  start,
	}
	if p.Runs != nil {
		if err := p.Runs.CreateRun(ctx, run); err != nil {
			_ = out.Abort()
			return nil, fmt.Errorf("record run: %w", err)
		}
		summary.RunID = run.ID
	}

	var ledgerErr error
	record := func(e ProgressEvent) {
		if p.Runs != nil && e.Result != nil && ledgerErr == nil {
			ledgerErr = p.recordFile(ctx, run.ID, e.Result)
		}
		if progress != nil {
			progress(e)
		}
	}

	coord, err := p.Coordinator.Run(ctx, files, record)
	if coord != nil {
		summary.FailedFiles = coord.Failed()
		summary.Total = coord.Stats.Total
		summary.Kept = coord.Stats.Kept
	}
	if err == nil && ledgerErr != nil {
		p.removeScratch(coord.ScratchPaths)
		err = fmt.Errorf("record file: %w", ledgerErr)
	}
	if err != nil {
		return summary, p.fail(ctx, run, summary, out, err)
	}

	merged, err := p.Merger.Merge(ctx, coord.ScratchPaths, out)
	if err != nil {
		// The merger removes what it consumed; clear the rest.
		p.removeScratch(coord.ScratchPaths)
		return summary, p.fail(ctx, run, summary, out, fmt.Errorf("merge: %w", err))
	}
	if err := out.Commit(); err != nil {
		return summary, p.fail(ctx, run, summary, out, fmt.Errorf("commit corpus: %w", err))
	}

	summary.KeptAfterDedup = merged.Kept
	summary.DuplicatesRemoved = summary.Kept - summary.KeptAfterDedup
	summary.Duration = p.now().Sub(start)

	if p.Runs != nil {
		p.fill(run, summary)
		run.Status = wetclean.RunSucceeded
		if err := p.Runs.FinishRun(ctx, run); err != nil {
			return summary, fmt.Errorf("record run: %w", err)
		}
	}
	return summary, nil
}

func (p *Pipeline) recordFile(ctx context.Context, runID string, r *wetclean.FileResult) error {
	rec := &wetclean.FileRecord{
		RunID: runID,
		Path:  r.Path,
		Total: r.Stats.Total,
		Kept:  r.Stats.Kept,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return p.Runs.CreateFileRecord(ctx, rec)
}

func (p *Pipeline) removeScratch(paths []string) {
	if p.Coordinator == nil || p.Coordinator.Worker == nil {
		return
	}
	for _, path := range paths {
		_ = p.Coordinator.Worker.Scratch.Remove(path)
	}
}

// fail aborts the corpus and records the failure, returning cause.
func (p *Pipeline) fail(ctx context.Context, run *wetclean.Run, summary *Summary, out Corpus, cause error) error {
	summary.Duration = p.now().Sub(run.StartedAt)
	err := cause
	if aerr := out.Abort(); aerr != nil {
		err = errors.Join(err, fmt.Errorf("abort corpus: %w", aerr))
	}
	if p.Runs != nil && run.ID != "" {
		p.fill(run, summary)
		run.Status = wetclean.RunFailed
		run.Error = cause.Error()
		// The caller's context may already be cancelled.
		if ferr := p.Runs.FinishRun(context.WithoutCancel(ctx), run); ferr != nil {
			err = errors.Join(err, fmt.Errorf("record run: %w", ferr))
		}
	}
	return err
}

func (p *Pipeline) fill(run *wetclean.Run, s *Summary) {
	run.FailedFiles = s.FailedFiles
	run.Total = s.Total
	run.Kept = s.Kept
	run.KeptAfterDedup = s.KeptAfterDedup
	run.DuplicatesRemoved = s.DuplicatesRemoved
	run.FinishedAt = p.now()
}
