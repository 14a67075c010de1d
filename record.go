package wetclean

import "io"

// RecordType is the WARC-Type of an archive record.
type RecordType string

// Record types found in crawl archives.
const (
	RecordWarcinfo   RecordType = "warcinfo"
	RecordRequest    RecordType = "request"
	RecordResponse   RecordType = "response"
	RecordMetadata   RecordType = "metadata"
	RecordConversion RecordType = "conversion"
)

// Record is one entry of a web archive. Body is only valid until the next
// call to RecordReader.Next.
type Record struct {
	Type        RecordType
	TargetURI   string
	ContentType string

	// Length is the declared Content-Length of Body, or -1 if unknown.
	Length int64

	Body io.Reader
}

// RecordReader iterates the records of one archive file in order.
type RecordReader interface {
	// Next returns the next record, or io.EOF when the archive is exhausted.
	Next() (*Record, error)

	Close() error
}

// ArchiveOpener opens archive files for record iteration.
type ArchiveOpener interface {
	Open(path string) (RecordReader, error)
}

// HTMLDecoder pulls the HTML payload out of captured HTTP response records.
type HTMLDecoder interface {
	// DecodeHTML returns the HTML body carried by rec. ok is false when rec
	// is not an HTTP response or its payload is not HTML.
	DecodeHTML(rec *Record) (html []byte, ok bool, err error)
}
