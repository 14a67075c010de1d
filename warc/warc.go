// Package warc reads web archive (WARC) files, including the gzip-compressed
// WET conversion archives produced by crawl projects.
package warc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/wetclean"
	"github.com/klauspost/compress/gzip"
)

// Ensure types implement domain interfaces at compile time.
var (
	_ wetclean.RecordReader  = (*Reader)(nil)
	_ wetclean.ArchiveOpener = (*Opener)(nil)
)

// readerBufferSize is the buffer size used over the decompressed stream.
const readerBufferSize = 64 * 1024

var gzipMagic = []byte{0x1f, 0x8b}

// Reader yields the records of one archive in order.
type Reader struct {
	br      *bufio.Reader
	tp      *textproto.Reader
	body    *recordBody
	closers []io.Closer
	records int
}

// NewReader returns a Reader over r. Gzip input is detected by its magic
// bytes and decompressed as a multi-member stream.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, readerBufferSize)
	rd := &Reader{}

	magic, err := br.Peek(len(gzipMagic))
	if err == nil && bytes.Equal(magic, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		rd.closers = append(rd.closers, gz)
		br = bufio.NewReaderSize(gz, readerBufferSize)
	}

	rd.br = br
	rd.tp = textproto.NewReader(br)
	return rd, nil
}

// Open opens the archive at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wetclean.Errorf(wetclean.ENOTFOUND, "archive not found: %s", path)
		}
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closers = append(r.closers, f)
	return r, nil
}

// Next returns the next record, or io.EOF at the end of the archive.
// Any unread body of the previous record is discarded first.
func (r *Reader) Next() (*wetclean.Record, error) {
	if r.body != nil {
		if _, err := io.Copy(io.Discard, r.body); err != nil {
			return nil, r.wrap(err)
		}
		r.body = nil
	}

	version, err := r.versionLine()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(version, "WARC/") {
		return nil, r.malformed("expected version line, got %q", truncate(version, 32))
	}

	header, err := r.tp.ReadMIMEHeader()
	if err != nil {
		return nil, r.wrap(err)
	}

	raw := header.Get("Content-Length")
	if raw == "" {
		return nil, r.malformed("missing Content-Length")
	}
	length, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || length < 0 {
		return nil, r.malformed("invalid Content-Length %q", raw)
	}

	r.records++
	r.body = &recordBody{r: r.br, n: length}
	return &wetclean.Record{
		Type:        wetclean.RecordType(header.Get("WARC-Type")),
		TargetURI:   header.Get("WARC-Target-URI"),
		ContentType: header.Get("Content-Type"),
		Length:      length,
		Body:        r.body,
	}, nil
}

// recordBody reads exactly the declared content length of one record. Input
// that ends before the declared length is io.ErrUnexpectedEOF.
type recordBody struct {
	r io.Reader
	n int64
}

func (b *recordBody) Read(p []byte) (int, error) {
	if b.n <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > b.n {
		p = p[:b.n]
	}
	n, err := b.r.Read(p)
	b.n -= int64(n)
	if err == io.EOF && b.n > 0 {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

// versionLine skips the blank lines separating records and returns the
// first non-blank line. A clean end of input yields io.EOF.
func (r *Reader) versionLine() (string, error) {
	for {
		line, err := r.br.ReadString('\n')
		if s := strings.TrimSpace(line); s != "" {
			return s, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
		if err != nil {
			return "", r.wrap(err)
		}
	}
}

// Close releases the decompressor and the underlying file.
func (r *Reader) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	r.closers = nil
	return errors.Join(errs...)
}

func (r *Reader) malformed(format string, args ...any) error {
	return wetclean.Errorf(wetclean.EINVALID, "malformed record %d: %s", r.records+1, fmt.Sprintf(format, args...))
}

func (r *Reader) wrap(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("record %d: %w", r.records+1, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Opener implements wetclean.ArchiveOpener for files on disk.
type Opener struct{}

// Open opens the archive at path.
func (Opener) Open(path string) (wetclean.RecordReader, error) {
	return Open(path)
}
