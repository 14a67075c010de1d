package mock

import (
	"context"
	"io"

	"github.com/fwojciec/wetclean"
)

var _ wetclean.FileProcessor = (*FileProcessor)(nil)

// FileProcessor is a mock implementation of wetclean.FileProcessor.
type FileProcessor struct {
	ProcessFileFn func(ctx context.Context, path string, w io.Writer) (wetclean.FileStats, error)
}

func (p *FileProcessor) ProcessFile(ctx context.Context, path string, w io.Writer) (wetclean.FileStats, error) {
	return p.ProcessFileFn(ctx, path, w)
}
