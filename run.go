package wetclean

import (
	"context"
	"time"
)

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

// RunStatus constants.
const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run is the ledger entry for one pipeline invocation.
type Run struct {
	ID         string    `json:"id"`
	InputDir   string    `json:"inputDir"`
	OutputPath string    `json:"outputPath"`
	Status     RunStatus `json:"status"`

	Files       int `json:"files"`
	FailedFiles int `json:"failedFiles"`

	// Document counts: seen, kept after filtering, kept after dedup.
	Total             int `json:"total"`
	Kept              int `json:"kept"`
	KeptAfterDedup    int `json:"keptAfterDedup"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`

	Error      string    `json:"error"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.InputDir == "" {
		return Errorf(EINVALID, "run input directory required")
	}
	if r.OutputPath == "" {
		return Errorf(EINVALID, "run output path required")
	}
	return nil
}

// RetentionRate returns the fraction of seen documents that survived
// filtering and dedup. Zero when nothing was seen.
func (r *Run) RetentionRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.KeptAfterDedup) / float64(r.Total)
}

// FileRecord is the ledger entry for one archive file of a run.
type FileRecord struct {
	ID        string    `json:"id"`
	RunID     string    `json:"runId"`
	Path      string    `json:"path"`
	Total     int       `json:"total"`
	Kept      int       `json:"kept"`
	Error     string    `json:"error"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the file record contains invalid fields.
func (f *FileRecord) Validate() error {
	if f.RunID == "" {
		return Errorf(EINVALID, "file record run ID required")
	}
	if f.Path == "" {
		return Errorf(EINVALID, "file record path required")
	}
	return nil
}

// RunService represents a service for recording pipeline runs.
type RunService interface {
	// CreateRun records the start of a run.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores the final status and counters of a run.
	// Returns ENOTFOUND if run does not exist.
	FinishRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// CreateFileRecord records the outcome of one archive file.
	CreateFileRecord(ctx context.Context, rec *FileRecord) error

	// FindFileRecords retrieves the file records of a run.
	FindFileRecords(ctx context.Context, runID string) ([]*FileRecord, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID     *string    `json:"id"`
	Status *RunStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
