package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/wetclean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints defaults", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(t, "config")

		require.NoError(t, err)
		assert.Contains(t, stdout, "min_text_length: 500")
		assert.Contains(t, stdout, "batch_size: 500")
		assert.Contains(t, stdout, "deduplication_enabled: true")
	})

	t.Run("prints file overrides", func(t *testing.T) {
		t.Parallel()

		cfg := filepath.Join(t.TempDir(), "wetclean.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("batch_size: 32\nfailure_policy: skip\n"), 0o644))

		stdout, _, err := run(t, "--config", cfg, "config")

		require.NoError(t, err)
		assert.Contains(t, stdout, "batch_size: 32")
		assert.Contains(t, stdout, "failure_policy: skip")
		assert.Contains(t, stdout, "min_text_length: 500")
	})

	t.Run("missing config file returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "config")

		require.Error(t, err)
		assert.Equal(t, wetclean.ENOTFOUND, wetclean.ErrorCode(err))
		assert.Contains(t, stderr, "config file not found")
	})
}
