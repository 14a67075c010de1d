// Package fs provides file-based storage for scratch shards, the corpus
// output, and the lexicon word list.
package fs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/wetclean"
	"github.com/google/uuid"
)

// Ensure ScratchStore implements wetclean.ScratchStore at compile time.
var _ wetclean.ScratchStore = (*ScratchStore)(nil)

// scratchBufferSize is the write buffer in front of each scratch file.
const scratchBufferSize = 128 * 1024

// ScratchStore keeps scratch files in one directory.
type ScratchStore struct {
	dir string
}

// NewScratchStore creates a ScratchStore rooted at dir. An empty dir uses the
// system temporary directory.
func NewScratchStore(dir string) *ScratchStore {
	if dir == "" {
		dir = os.TempDir()
	}
	return &ScratchStore{dir: dir}
}

// Dir returns the directory holding scratch files.
func (s *ScratchStore) Dir() string {
	return s.dir
}

// Create allocates a uniquely named, empty scratch file.
func (s *ScratchStore) Create() (wetclean.ScratchFile, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, err
	}
	name := filepath.Join(s.dir, "wetclean-"+uuid.NewString()+".scratch")
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, err
	}
	return &scratchFile{f: f, w: bufio.NewWriterSize(f, scratchBufferSize)}, nil
}

// Open opens a scratch file for reading.
func (s *ScratchStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, wetclean.Errorf(wetclean.ENOTFOUND, "scratch file not found: %s", path)
	}
	return f, err
}

// Remove deletes a scratch file. Removing a missing file is not an error.
func (s *ScratchStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// scratchFile buffers writes to an open scratch file.
type scratchFile struct {
	f *os.File
	w *bufio.Writer
}

func (s *scratchFile) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Close flushes buffered data and closes the file.
func (s *scratchFile) Close() error {
	ferr := s.w.Flush()
	cerr := s.f.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}

func (s *scratchFile) Name() string {
	return s.f.Name()
}
