package wetclean

import (
	"context"
	"io"
)

// FileStats counts the documents seen and kept in one archive file.
type FileStats struct {
	Total int `json:"total"`
	Kept  int `json:"kept"`
}

// Add returns the sum of two stats.
func (s FileStats) Add(other FileStats) FileStats {
	return FileStats{
		Total: s.Total + other.Total,
		Kept:  s.Kept + other.Kept,
	}
}

// FileResult is the outcome of processing one archive file into a scratch
// file. Exactly one of ScratchPath or Err is set.
type FileResult struct {
	Path        string
	Stats       FileStats
	ScratchPath string
	Err         error
}

// Failed reports whether the file could not be processed.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// FileProcessor turns one archive file into delimited documents.
type FileProcessor interface {
	// ProcessFile streams the archive at path and writes every accepted
	// document, followed by DocumentDelimiter, to w.
	ProcessFile(ctx context.Context, path string, w io.Writer) (FileStats, error)
}

// ScratchFile is a worker-owned temporary file.
type ScratchFile interface {
	io.WriteCloser
	Name() string
}

// ScratchStore creates, reads, and removes scratch files.
type ScratchStore interface {
	// Create allocates a new empty scratch file.
	Create() (ScratchFile, error)

	// Open opens a scratch file for reading.
	// Returns ENOTFOUND if the file does not exist.
	Open(path string) (io.ReadCloser, error)

	// Remove deletes a scratch file.
	Remove(path string) error
}

// HashSet records 64-bit content hashes seen during one merge.
type HashSet interface {
	// Add inserts h and reports whether it was absent before.
	Add(h uint64) bool

	// Len returns the number of hashes inserted as new.
	Len() int
}

// MergeResult holds the outcome of merging scratch files into a corpus.
type MergeResult struct {
	// Files is the number of scratch files consumed.
	Files int `json:"files"`

	// Seen counts non-blank documents read from scratch files.
	Seen int `json:"seen"`

	// Kept counts documents written to the corpus.
	Kept int `json:"kept"`
}

// Skipped returns the number of documents dropped as duplicates.
func (r *MergeResult) Skipped() int {
	return r.Seen - r.Kept
}

// Merger combines scratch files into one corpus, dropping duplicates.
type Merger interface {
	// Merge streams paths in order into w. Consumed scratch files are
	// removed. Any unreadable scratch file fails the merge.
	Merge(ctx context.Context, paths []string, w io.Writer) (*MergeResult, error)
}
