package pipeline

import (
	"context"
	"runtime"

	"github.com/fwojciec/wetclean"
	"golang.org/x/sync/errgroup"
)

// Coordinator fans archive files out over a bounded worker pool and collects
// results in completion order.
type Coordinator struct {
	Worker *Worker

	// Workers bounds parallelism. Zero means available CPUs. The pool never
	// exceeds the number of files.
	Workers int

	// Policy decides what a failed file does to the run.
	Policy wetclean.FailurePolicy
}

// Result holds the outcome of the parallel stage.
type Result struct {
	Files        int
	Stats        wetclean.FileStats
	ScratchPaths []string
	Failures     []wetclean.FileResult
}

// Failed returns the number of files that could not be processed.
func (r *Result) Failed() int {
	return len(r.Failures)
}

// ProgressEvent reports progress during the parallel stage.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int

	// Stats are the running totals over every successful file so far.
	Stats wetclean.FileStats

	// Result is the file that just finished. Nil for Started and Finished.
	Result *wetclean.FileResult
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress. It is only ever called
// from the goroutine that called Run.
type ProgressFunc func(event ProgressEvent)

// WorkerCount returns the pool size for n files.
func (c *Coordinator) WorkerCount(n int) int {
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return max(1, min(workers, n))
}

// Run processes paths and returns the collected scratch paths and counts.
//
// Under FailAbort the first failure cancels outstanding work, every scratch
// file produced so far is removed, and the failure is returned. Under
// FailSkip failures are recorded in Result.Failures and the run continues.
// Cancelling ctx aborts the run the same way regardless of policy.
func (c *Coordinator) Run(ctx context.Context, paths []string, progress ProgressFunc) (*Result, error) {
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	result := &Result{Files: len(paths)}
	total := len(paths)
	notify(ProgressEvent{Type: ProgressStarted, Total: total})
	if total == 0 {
		notify(ProgressEvent{Type: ProgressFinished})
		return result, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	results := make(chan wetclean.FileResult)

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer close(jobs)
		for _, p := range paths {
			select {
			case jobs <- p:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})
	for range c.WorkerCount(total) {
		g.Go(func() error {
			for p := range jobs {
				results <- c.Worker.Run(gctx, p)
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	var abortErr error
	completed := 0
	for r := range results {
		completed++
		if r.Failed() {
			result.Failures = append(result.Failures, r)
			if abortErr == nil && c.Policy != wetclean.FailSkip {
				abortErr = r.Err
				cancel()
			}
			notify(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, Stats: result.Stats, Result: &r})
			continue
		}
		result.Stats = result.Stats.Add(r.Stats)
		result.ScratchPaths = append(result.ScratchPaths, r.ScratchPath)
		notify(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, Stats: result.Stats, Result: &r})
	}

	if abortErr == nil {
		abortErr = ctx.Err()
	}
	if abortErr != nil {
		for _, p := range result.ScratchPaths {
			_ = c.Worker.Scratch.Remove(p)
		}
		result.ScratchPaths = nil
		return result, abortErr
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total, Stats: result.Stats})
	return result, nil
}
