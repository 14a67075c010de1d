package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/wetclean"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wetclean.RunService = (*RunService)(nil)

// RunService implements wetclean.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

const runColumns = `id, input_dir, output_path, status, files, failed_files, total, kept,
	kept_after_dedup, duplicates_removed, error, started_at, finished_at`

// CreateRun records the start of a run with a generated ID.
func (s *RunService) CreateRun(ctx context.Context, run *wetclean.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.Status == "" {
		run.Status = wetclean.RunRunning
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, input_dir, output_path, status, files, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.InputDir, run.OutputPath, string(run.Status), run.Files,
		run.StartedAt.Format(time.RFC3339))

	return err
}

// FinishRun stores the final status and counters of a run.
func (s *RunService) FinishRun(ctx context.Context, run *wetclean.Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	run.FinishedAt = run.FinishedAt.UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET status = ?, files = ?, failed_files = ?, total = ?, kept = ?,
			kept_after_dedup = ?, duplicates_removed = ?, error = ?, finished_at = ?
		WHERE id = ?
	`, string(run.Status), run.Files, run.FailedFiles, run.Total, run.Kept,
		run.KeptAfterDedup, run.DuplicatesRemoved, run.Error,
		run.FinishedAt.Format(time.RFC3339), run.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return wetclean.Errorf(wetclean.ENOTFOUND, "run not found")
	}
	return nil
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*wetclean.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wetclean.Errorf(wetclean.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter wetclean.RunFilter) ([]*wetclean.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*wetclean.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CreateFileRecord records the outcome of one archive file.
func (s *RunService) CreateFileRecord(ctx context.Context, rec *wetclean.FileRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO file_records (id, run_id, path, total, kept, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.RunID, rec.Path, rec.Total, rec.Kept, rec.Error,
		rec.CreatedAt.Format(time.RFC3339))
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY") {
		return wetclean.Errorf(wetclean.ENOTFOUND, "run not found")
	}
	return err
}

// FindFileRecords retrieves the file records of a run in insertion order.
func (s *RunService) FindFileRecords(ctx context.Context, runID string) ([]*wetclean.FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, path, total, kept, error, created_at
		FROM file_records
		WHERE run_id = ?
		ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*wetclean.FileRecord
	for rows.Next() {
		var rec wetclean.FileRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Path, &rec.Total, &rec.Kept, &rec.Error, &createdAt); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*wetclean.Run, error) {
	var run wetclean.Run
	var status, startedAt, finishedAt string

	if err := row.Scan(&run.ID, &run.InputDir, &run.OutputPath, &status, &run.Files, &run.FailedFiles,
		&run.Total, &run.Kept, &run.KeptAfterDedup, &run.DuplicatesRemoved, &run.Error,
		&startedAt, &finishedAt); err != nil {
		return nil, err
	}
	run.Status = wetclean.RunStatus(status)

	var err error
	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if finishedAt != "" {
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
	}
	return &run, nil
}
