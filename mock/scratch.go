package mock

import (
	"context"
	"io"

	"github.com/fwojciec/wetclean"
)

var (
	_ wetclean.ScratchStore = (*ScratchStore)(nil)
	_ wetclean.ScratchFile  = (*ScratchFile)(nil)
	_ wetclean.HashSet      = (*HashSet)(nil)
)

// ScratchStore is a mock implementation of wetclean.ScratchStore.
type ScratchStore struct {
	CreateFn func() (wetclean.ScratchFile, error)
	OpenFn   func(path string) (io.ReadCloser, error)
	RemoveFn func(path string) error
}

func (s *ScratchStore) Create() (wetclean.ScratchFile, error) {
	return s.CreateFn()
}

func (s *ScratchStore) Open(path string) (io.ReadCloser, error) {
	return s.OpenFn(path)
}

func (s *ScratchStore) Remove(path string) error {
	return s.RemoveFn(path)
}

// ScratchFile is a mock implementation of wetclean.ScratchFile.
type ScratchFile struct {
	WriteFn func(p []byte) (int, error)
	CloseFn func() error
	NameFn  func() string
}

func (f *ScratchFile) Write(p []byte) (int, error) {
	return f.WriteFn(p)
}

func (f *ScratchFile) Close() error {
	return f.CloseFn()
}

func (f *ScratchFile) Name() string {
	return f.NameFn()
}

// HashSet is a mock implementation of wetclean.HashSet.
type HashSet struct {
	AddFn func(h uint64) bool
	LenFn func() int
}

func (s *HashSet) Add(h uint64) bool {
	return s.AddFn(h)
}

func (s *HashSet) Len() int {
	return s.LenFn()
}

var _ wetclean.Merger = (*Merger)(nil)

// Merger is a mock implementation of wetclean.Merger.
type Merger struct {
	MergeFn func(ctx context.Context, paths []string, w io.Writer) (*wetclean.MergeResult, error)
}

func (m *Merger) Merge(ctx context.Context, paths []string, w io.Writer) (*wetclean.MergeResult, error) {
	return m.MergeFn(ctx, paths, w)
}
