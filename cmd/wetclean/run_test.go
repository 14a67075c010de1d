package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wetclean"
	main "github.com/fwojciec/wetclean/cmd/wetclean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes deduplicated corpus and summary", func(t *testing.T) {
		t.Parallel()

		// Story: an operator points the tool at a directory of archives
		// Given two archives that share one article
		in := inputDir(t)
		lexicon := writeLexicon(t)
		scratch := t.TempDir()
		out := filepath.Join(t.TempDir(), "corpus.txt")

		// When the run command processes them
		stdout, _, err := run(t, "run", in, out, "--lexicon", lexicon, "--scratch-dir", scratch, "--workers", "2")

		// Then the corpus holds each article once
		require.NoError(t, err)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{variant(0), variant(1), variant(2)}, docs(string(data)))

		// And the summary reports every stage
		assert.Contains(t, stdout, "Processing 2 archives with 2 workers")
		assert.Contains(t, stdout, "Total documents:    5")
		assert.Contains(t, stdout, "After filtering:    4")
		assert.Contains(t, stdout, "After dedup:        3")
		assert.Contains(t, stdout, "Duplicates removed: 1")
		assert.Contains(t, stdout, "Retention rate:     60.0%")
		assert.Contains(t, stdout, "[2/2]")

		// And no scratch files are left behind
		entries, err := os.ReadDir(scratch)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("no-dedup keeps duplicates", func(t *testing.T) {
		t.Parallel()

		in := inputDir(t)
		out := filepath.Join(t.TempDir(), "corpus.txt")

		stdout, _, err := run(t, "run", in, out, "--lexicon", writeLexicon(t), "--scratch-dir", t.TempDir(), "--no-dedup")

		require.NoError(t, err)
		assert.Contains(t, stdout, "After dedup:        4")
		assert.Contains(t, stdout, "Duplicates removed: 0")
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Len(t, docs(string(data)), 4)
	})

	t.Run("limit processes the first archives only", func(t *testing.T) {
		t.Parallel()

		in := inputDir(t)
		out := filepath.Join(t.TempDir(), "corpus.txt")

		stdout, _, err := run(t, "run", in, out, "--lexicon", writeLexicon(t), "--scratch-dir", t.TempDir(), "--limit", "1")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Processing 1 archives")
		assert.Contains(t, stdout, "Total documents:    3")
		assert.Contains(t, stdout, "After dedup:        2")
	})

	t.Run("approximate dedup from config file", func(t *testing.T) {
		t.Parallel()

		in := inputDir(t)
		out := filepath.Join(t.TempDir(), "corpus.txt")
		cfg := filepath.Join(t.TempDir(), "wetclean.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("dedup_mode: approximate\nbloom_capacity: 1000\n"), 0o644))

		stdout, stderr, err := run(t, "--config", cfg, "--verbose", "run", in, out, "--lexicon", writeLexicon(t), "--scratch-dir", t.TempDir())

		require.NoError(t, err)
		assert.Contains(t, stdout, "After dedup:        3")
		assert.Contains(t, stderr, "bloom filter")
		assert.Contains(t, stderr, "capacity=1000")
	})

	t.Run("abort on corrupt archive leaves no corpus", func(t *testing.T) {
		t.Parallel()

		in := inputDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(in, "bad.warc.wet.gz"), []byte("not an archive\r\n"), 0o644))
		scratch := t.TempDir()
		out := filepath.Join(t.TempDir(), "corpus.txt")

		_, stderr, err := run(t, "run", in, out, "--lexicon", writeLexicon(t), "--scratch-dir", scratch)

		require.Error(t, err)
		assert.Contains(t, stderr, "failed ")
		assert.Contains(t, stderr, "bad.warc.wet.gz")
		assert.NotContains(t, stderr, "skip ")
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
		entries, err := os.ReadDir(scratch)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("skip continues past corrupt archive", func(t *testing.T) {
		t.Parallel()

		in := inputDir(t)
		require.NoError(t, os.WriteFile(filepath.Join(in, "bad.warc.wet.gz"), []byte("not an archive\r\n"), 0o644))
		out := filepath.Join(t.TempDir(), "corpus.txt")

		stdout, stderr, err := run(t, "run", in, out, "--lexicon", writeLexicon(t), "--scratch-dir", t.TempDir(), "--skip")

		require.NoError(t, err)
		assert.Contains(t, stderr, "  skip ")
		assert.NotContains(t, stderr, "failed ")
		assert.Contains(t, stdout, "Failed archives:    1 of 3")
		assert.Contains(t, stdout, "After dedup:        3")
	})

	t.Run("extracts HTML responses when enabled", func(t *testing.T) {
		t.Parallel()

		// Given a WARC archive holding captured HTML pages
		in := t.TempDir()
		writeResponseArchive(t, filepath.Join(in, "pages.warc.gz"), variant(3), variant(4))
		out := filepath.Join(t.TempDir(), "corpus.txt")

		// When the run extracts HTML with the goquery extractor
		stdout, _, err := run(t, "run", in, out, "--lexicon", writeLexicon(t), "--scratch-dir", t.TempDir(),
			"--pattern", "*.warc.gz", "--html", "--extractor", "goquery")

		// Then both pages become documents
		require.NoError(t, err)
		assert.Contains(t, stdout, "Total documents:    2")
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{variant(3), variant(4)}, docs(string(data)))
	})

	t.Run("ignores HTML responses by default", func(t *testing.T) {
		t.Parallel()

		in := t.TempDir()
		writeResponseArchive(t, filepath.Join(in, "pages.warc.gz"), variant(3))
		out := filepath.Join(t.TempDir(), "corpus.txt")

		stdout, _, err := run(t, "run", in, out, "--lexicon", writeLexicon(t), "--scratch-dir", t.TempDir(),
			"--pattern", "*.warc.gz")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Total documents:    0")
	})

	t.Run("rejects unknown extractor", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "run", inputDir(t), filepath.Join(t.TempDir(), "c.txt"), "--lexicon", writeLexicon(t), "--extractor", "lynx")

		require.Error(t, err)
		assert.Equal(t, wetclean.EINVALID, wetclean.ErrorCode(err))
	})

	t.Run("records run in ledger", func(t *testing.T) {
		t.Parallel()

		in := inputDir(t)
		out := filepath.Join(t.TempDir(), "corpus.txt")
		db := filepath.Join(t.TempDir(), "ledger.db")

		stdout, _, err := run(t, "--db", db, "run", in, out, "--lexicon", writeLexicon(t), "--scratch-dir", t.TempDir())
		require.NoError(t, err)
		assert.Contains(t, stdout, "Run:")

		stdout, _, err = run(t, "--db", db, "runs")
		require.NoError(t, err)
		assert.Contains(t, stdout, "succeeded")
		assert.Contains(t, stdout, in)
	})

	t.Run("missing lexicon returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		in := inputDir(t)
		out := filepath.Join(t.TempDir(), "corpus.txt")

		_, stderr, err := run(t, "run", in, out, "--lexicon", filepath.Join(t.TempDir(), "absent.txt"))

		require.Error(t, err)
		assert.Equal(t, wetclean.ENOTFOUND, wetclean.ErrorCode(err))
		assert.Contains(t, stderr, "word list not found")
	})

	t.Run("empty input directory returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "corpus.txt")

		_, stderr, err := run(t, "run", t.TempDir(), out, "--lexicon", writeLexicon(t))

		require.Error(t, err)
		assert.Equal(t, wetclean.ENOTFOUND, wetclean.ErrorCode(err))
		assert.Contains(t, stderr, "no archives matching")
	})

	t.Run("invalid config file fails before processing", func(t *testing.T) {
		t.Parallel()

		cfg := filepath.Join(t.TempDir(), "wetclean.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("english_threshold: 7\n"), 0o644))

		_, _, err := run(t, "--config", cfg, "run", inputDir(t), filepath.Join(t.TempDir(), "c.txt"), "--lexicon", writeLexicon(t))

		require.Error(t, err)
		assert.Equal(t, wetclean.EINVALID, wetclean.ErrorCode(err))
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		t.Parallel()

		in := inputDir(t)
		out := filepath.Join(t.TempDir(), "corpus.txt")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var buf, errBuf bytes.Buffer
		err := main.NewMain().Run(ctx, []string{"run", in, out, "--lexicon", writeLexicon(t), "--scratch-dir", t.TempDir()}, &buf, &errBuf)

		require.ErrorIs(t, err, context.Canceled)
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})
}
