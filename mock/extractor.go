package mock

import "github.com/fwojciec/wetclean"

var _ wetclean.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wetclean.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*wetclean.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*wetclean.ExtractResult, error) {
	return e.ExtractFn(html)
}
