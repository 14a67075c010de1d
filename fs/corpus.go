package fs

import (
	"os"
	"path/filepath"
)

// CorpusFile writes the merged corpus with atomic update semantics.
// Data goes to a temporary file next to the target, which is renamed over
// the target on Commit.
type CorpusFile struct {
	path string
	f    *os.File
}

// CreateCorpusFile opens a temporary file in the directory of path.
func CreateCorpusFile(path string) (*CorpusFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &CorpusFile{path: path, f: f}, nil
}

// Path returns the final corpus path.
func (c *CorpusFile) Path() string {
	return c.path
}

func (c *CorpusFile) Write(p []byte) (int, error) {
	return c.f.Write(p)
}

// Commit syncs the temporary file and moves it over the target.
func (c *CorpusFile) Commit() error {
	if err := c.f.Sync(); err != nil {
		_ = c.Abort()
		return err
	}
	if err := c.f.Close(); err != nil {
		_ = os.Remove(c.f.Name())
		return err
	}
	if err := os.Chmod(c.f.Name(), 0644); err != nil {
		_ = os.Remove(c.f.Name())
		return err
	}
	return os.Rename(c.f.Name(), c.path)
}

// Abort discards the temporary file, leaving any existing target untouched.
func (c *CorpusFile) Abort() error {
	_ = c.f.Close()
	if err := os.Remove(c.f.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
