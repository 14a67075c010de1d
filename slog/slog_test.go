package slog_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fwojciec/wetclean"
	"github.com/fwojciec/wetclean/mock"
	wslog "github.com/fwojciec/wetclean/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFileProcessor_ProcessFile(t *testing.T) {
	t.Parallel()

	t.Run("logs counts and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.FileProcessor{
			ProcessFileFn: func(ctx context.Context, path string, w io.Writer) (wetclean.FileStats, error) {
				_, err := io.WriteString(w, "doc")
				return wetclean.FileStats{Total: 12, Kept: 5}, err
			},
		}

		var out bytes.Buffer
		p := wslog.NewLoggingFileProcessor(inner, debugLogger(&buf))
		stats, err := p.ProcessFile(context.Background(), "a.warc.wet.gz", &out)

		require.NoError(t, err)
		assert.Equal(t, wetclean.FileStats{Total: 12, Kept: 5}, stats)
		assert.Equal(t, "doc", out.String())
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "process file")
		assert.Contains(t, output, "path=a.warc.wet.gz")
		assert.Contains(t, output, "total=12")
		assert.Contains(t, output, "kept=5")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs failures at error level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FileProcessor{
			ProcessFileFn: func(ctx context.Context, path string, w io.Writer) (wetclean.FileStats, error) {
				return wetclean.FileStats{Total: 3}, errors.New("corrupt archive")
			},
		}

		p := wslog.NewLoggingFileProcessor(inner, logger)
		_, err := p.ProcessFile(context.Background(), "b.warc.wet.gz", io.Discard)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "err=\"corrupt archive\"")
	})

	t.Run("success is silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FileProcessor{
			ProcessFileFn: func(ctx context.Context, path string, w io.Writer) (wetclean.FileStats, error) {
				return wetclean.FileStats{}, nil
			},
		}

		p := wslog.NewLoggingFileProcessor(inner, logger)
		_, err := p.ProcessFile(context.Background(), "c.warc.wet.gz", io.Discard)

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*wetclean.ExtractResult, error) {
				return &wetclean.ExtractResult{Title: "T", Text: "hello"}, nil
			},
		}

		e := wslog.NewLoggingExtractor(inner, debugLogger(&buf))
		result, err := e.Extract("<p>hello</p>")

		require.NoError(t, err)
		assert.Equal(t, "hello", result.Text)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "bytes=12")
		assert.Contains(t, output, "chars=5")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*wetclean.ExtractResult, error) {
				return nil, errors.New("bad html")
			},
		}

		e := wslog.NewLoggingExtractor(inner, debugLogger(&buf))
		_, err := e.Extract("<")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "chars=0")
		assert.Contains(t, output, "err=\"bad html\"")
	})
}

func TestLoggingMerger_Merge(t *testing.T) {
	t.Parallel()

	t.Run("logs document counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Merger{
			MergeFn: func(ctx context.Context, paths []string, w io.Writer) (*wetclean.MergeResult, error) {
				return &wetclean.MergeResult{Files: len(paths), Seen: 10, Kept: 7}, nil
			},
		}

		m := wslog.NewLoggingMerger(inner, logger)
		result, err := m.Merge(context.Background(), []string{"a", "b"}, io.Discard)

		require.NoError(t, err)
		assert.Equal(t, 7, result.Kept)
		output := buf.String()
		assert.Contains(t, output, "merge")
		assert.Contains(t, output, "files=2")
		assert.Contains(t, output, "seen=10")
		assert.Contains(t, output, "kept=7")
		assert.Contains(t, output, "duplicates=3")
	})

	t.Run("logs error without counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Merger{
			MergeFn: func(ctx context.Context, paths []string, w io.Writer) (*wetclean.MergeResult, error) {
				return nil, errors.New("disk full")
			},
		}

		m := wslog.NewLoggingMerger(inner, logger)
		_, err := m.Merge(context.Background(), []string{"a"}, io.Discard)

		require.Error(t, err)
		output := buf.String()
		assert.NotContains(t, output, "seen=")
		assert.Contains(t, output, "err=\"disk full\"")
	})
}

func TestLoggingRunService(t *testing.T) {
	t.Parallel()

	t.Run("logs ledger writes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RunService{
			CreateRunFn: func(ctx context.Context, run *wetclean.Run) error {
				run.ID = "run-1"
				return nil
			},
			FinishRunFn: func(ctx context.Context, run *wetclean.Run) error {
				return nil
			},
			CreateFileRecordFn: func(ctx context.Context, rec *wetclean.FileRecord) error {
				return errors.New("locked")
			},
		}

		svc := wslog.NewLoggingRunService(inner, debugLogger(&buf))
		ctx := context.Background()
		run := &wetclean.Run{InputDir: "in", OutputPath: "out"}

		require.NoError(t, svc.CreateRun(ctx, run))
		run.Status = wetclean.RunSucceeded
		require.NoError(t, svc.FinishRun(ctx, run))
		require.Error(t, svc.CreateFileRecord(ctx, &wetclean.FileRecord{RunID: run.ID, Path: "a"}))

		output := buf.String()
		assert.Contains(t, output, "create run")
		assert.Contains(t, output, "id=run-1")
		assert.Contains(t, output, "finish run")
		assert.Contains(t, output, "status=succeeded")
		assert.Contains(t, output, "create file record")
		assert.Contains(t, output, "err=locked")
	})

	t.Run("delegates reads", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RunService{
			FindRunByIDFn: func(ctx context.Context, id string) (*wetclean.Run, error) {
				return &wetclean.Run{ID: id}, nil
			},
			FindRunsFn: func(ctx context.Context, filter wetclean.RunFilter) ([]*wetclean.Run, error) {
				return []*wetclean.Run{{ID: "a"}, {ID: "b"}}, nil
			},
			FindFileRecordsFn: func(ctx context.Context, runID string) ([]*wetclean.FileRecord, error) {
				return []*wetclean.FileRecord{{RunID: runID}}, nil
			},
		}

		svc := wslog.NewLoggingRunService(inner, debugLogger(&buf))
		ctx := context.Background()

		run, err := svc.FindRunByID(ctx, "x")
		require.NoError(t, err)
		assert.Equal(t, "x", run.ID)
		runs, err := svc.FindRuns(ctx, wetclean.RunFilter{})
		require.NoError(t, err)
		assert.Len(t, runs, 2)
		recs, err := svc.FindFileRecords(ctx, "x")
		require.NoError(t, err)
		assert.Len(t, recs, 1)
		assert.Empty(t, buf.String())
	})
}
