package dedup

import (
	"bytes"
	"strings"

	"github.com/fwojciec/wetclean"
)

var delimiter = []byte(wetclean.DocumentDelimiter)

// Splitter incrementally splits a byte stream on wetclean.DocumentDelimiter.
// Bytes are buffered until a delimiter completes, so a delimiter or a
// multi-byte character straddling two chunks is handled correctly.
type Splitter struct {
	buf []byte
}

// Write appends chunk and calls emit once for every document completed by it,
// in stream order. emit receives the raw document bytes, which are only valid
// for the duration of the call.
func (s *Splitter) Write(chunk []byte, emit func([]byte) error) error {
	// Only the tail that could hold a partial delimiter needs rescanning.
	start := max(0, len(s.buf)-len(delimiter)+1)
	s.buf = append(s.buf, chunk...)

	consumed := 0
	for {
		i := bytes.Index(s.buf[start:], delimiter)
		if i < 0 {
			break
		}
		end := start + i
		if err := emit(s.buf[consumed:end]); err != nil {
			return err
		}
		consumed = end + len(delimiter)
		start = consumed
	}

	if consumed > 0 {
		n := copy(s.buf, s.buf[consumed:])
		s.buf = s.buf[:n]
	}
	return nil
}

// Flush emits whatever remains buffered as one final document and resets the
// splitter.
func (s *Splitter) Flush(emit func([]byte) error) error {
	if len(s.buf) == 0 {
		return nil
	}
	err := emit(s.buf)
	s.buf = s.buf[:0]
	return err
}

// Normalize decodes raw document bytes permissively, dropping invalid UTF-8
// sequences, and trims surrounding whitespace.
func Normalize(raw []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
}
