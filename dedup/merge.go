// Package dedup merges scratch files into the final corpus, dropping exact
// duplicate documents.
package dedup

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wetclean"
)

// DefaultChunkSize is the read size used when ChunkSize is unset.
const DefaultChunkSize = 1 << 20

// outputBufferSize is the write buffer size over the corpus sink.
const outputBufferSize = 128 * 1024

var _ wetclean.Merger = (*Merger)(nil)

// Merger streams scratch files, one at a time, into a single corpus.
// A Merger owns its hash set for the duration of one Merge call and must not
// be used concurrently.
type Merger struct {
	Scratch wetclean.ScratchStore

	// Seen tracks content hashes. A nil Seen disables dedup: every document
	// is copied through.
	Seen wetclean.HashSet

	// ChunkSize is the scratch read size. Zero means DefaultChunkSize.
	ChunkSize int

	// Keep retains scratch files after they are consumed.
	Keep bool
}

// Merge writes every first-seen document from paths, in path order, to w.
// Each scratch file is removed as soon as it has been fully consumed unless
// Keep is set. A scratch file that cannot be read fails the merge.
func (m *Merger) Merge(ctx context.Context, paths []string, w io.Writer) (*wetclean.MergeResult, error) {
	chunkSize := m.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	bw := bufio.NewWriterSize(w, outputBufferSize)
	chunk := make([]byte, chunkSize)
	result := &wetclean.MergeResult{}

	emit := func(raw []byte) error {
		doc := Normalize(raw)
		if doc == "" {
			return nil
		}
		result.Seen++
		if m.Seen != nil && !m.Seen.Add(Hash(doc)) {
			return nil
		}
		result.Kept++
		if _, err := bw.WriteString(doc); err != nil {
			return err
		}
		_, err := bw.WriteString(wetclean.DocumentDelimiter)
		return err
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := m.mergeFile(path, chunk, emit); err != nil {
			return result, err
		}
		result.Files++
		if !m.Keep {
			if err := m.Scratch.Remove(path); err != nil {
				return result, fmt.Errorf("remove scratch %s: %w", path, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return result, fmt.Errorf("flush corpus: %w", err)
	}
	return result, nil
}

func (m *Merger) mergeFile(path string, chunk []byte, emit func([]byte) error) error {
	rc, err := m.Scratch.Open(path)
	if err != nil {
		return fmt.Errorf("open scratch %s: %w", path, err)
	}
	defer rc.Close()

	var s Splitter
	for {
		n, err := rc.Read(chunk)
		if n > 0 {
			if werr := s.Write(chunk[:n], emit); werr != nil {
				return fmt.Errorf("write corpus: %w", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read scratch %s: %w", path, err)
		}
	}
	if err := s.Flush(emit); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}
	return nil
}

// Hash returns the content hash used for dedup.
func Hash(doc string) uint64 {
	return xxhash.Sum64String(doc)
}
