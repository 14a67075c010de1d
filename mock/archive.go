package mock

import "github.com/fwojciec/wetclean"

var (
	_ wetclean.ArchiveOpener = (*ArchiveOpener)(nil)
	_ wetclean.RecordReader  = (*RecordReader)(nil)
)

// ArchiveOpener is a mock implementation of wetclean.ArchiveOpener.
type ArchiveOpener struct {
	OpenFn func(path string) (wetclean.RecordReader, error)
}

func (o *ArchiveOpener) Open(path string) (wetclean.RecordReader, error) {
	return o.OpenFn(path)
}

// RecordReader is a mock implementation of wetclean.RecordReader.
type RecordReader struct {
	NextFn  func() (*wetclean.Record, error)
	CloseFn func() error
}

func (r *RecordReader) Next() (*wetclean.Record, error) {
	return r.NextFn()
}

func (r *RecordReader) Close() error {
	return r.CloseFn()
}

var _ wetclean.HTMLDecoder = (*HTMLDecoder)(nil)

// HTMLDecoder is a mock implementation of wetclean.HTMLDecoder.
type HTMLDecoder struct {
	DecodeHTMLFn func(rec *wetclean.Record) ([]byte, bool, error)
}

func (d *HTMLDecoder) DecodeHTML(rec *wetclean.Record) ([]byte, bool, error) {
	return d.DecodeHTMLFn(rec)
}
