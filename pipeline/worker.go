package pipeline

import (
	"context"
	"fmt"

	"github.com/fwojciec/wetclean"
)

// Worker runs a FileProcessor into a private scratch file.
type Worker struct {
	Processor wetclean.FileProcessor
	Scratch   wetclean.ScratchStore
}

// Run processes one archive file. On success the result names a closed
// scratch file holding the accepted documents. On failure the partial scratch
// file has already been removed and Err is set.
func (w *Worker) Run(ctx context.Context, path string) wetclean.FileResult {
	result := wetclean.FileResult{Path: path}

	f, err := w.Scratch.Create()
	if err != nil {
		result.Err = fmt.Errorf("%s: create scratch: %w", path, err)
		return result
	}

	stats, err := w.Processor.ProcessFile(ctx, path, f)
	result.Stats = stats
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close scratch: %w", cerr)
	}
	if err != nil {
		if rerr := w.Scratch.Remove(f.Name()); rerr != nil {
			err = fmt.Errorf("%w (remove scratch: %v)", err, rerr)
		}
		result.Err = fmt.Errorf("%s: %w", path, err)
		return result
	}

	result.ScratchPath = f.Name()
	return result
}
