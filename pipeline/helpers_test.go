package pipeline_test

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/wetclean"
	"github.com/fwojciec/wetclean/mock"
)

// articleLines form a clean article that passes both classifier stages
// against articleLexicon.
var articleLines = []string{
	"The river town wakes slowly while fishermen check their nets along the quiet bank.",
	"Children walk to school past the bakery where warm bread cools in the open window.",
	"Most shops open late in winter because few travelers cross the mountain pass then.",
	"An old stone bridge links the market square with the orchards on the eastern hill.",
	"Farmers bring apples, pears, and honey to sell every Saturday before noon arrives.",
	"In the evening families gather near the harbor to watch boats return with the catch.",
	"Local historians say the first houses were built by traders more than five centuries ago.",
	"Visitors often remark that time seems to move differently in such a patient place.",
}

func article() string {
	return strings.Join(articleLines, "\n")
}

// variant returns a distinct accepted article.
func variant(i int) string {
	lines := append([]string(nil), articleLines...)
	lines[0] = strings.Replace(lines[0], "river", []string{"river", "harbor", "market", "stone", "winter", "orchard"}[i%6], 1)
	return strings.Join(lines, "\n")
}

func articleLexicon() *wetclean.Lexicon {
	p := wetclean.NewPatterns()
	words := p.Words(strings.ToLower(article()), -1)
	words = append(words, "harbor", "market", "stone", "winter", "orchard")
	return wetclean.NewLexicon(words...)
}

func conversion(uri, body string) *wetclean.Record {
	return &wetclean.Record{
		Type:        wetclean.RecordConversion,
		TargetURI:   uri,
		ContentType: "text/plain",
		Length:      int64(len(body)),
		Body:        strings.NewReader(body),
	}
}

// records returns a mock reader yielding recs in order.
func records(recs ...*wetclean.Record) *mock.RecordReader {
	i := 0
	return &mock.RecordReader{
		NextFn: func() (*wetclean.Record, error) {
			if i >= len(recs) {
				return nil, io.EOF
			}
			i++
			return recs[i-1], nil
		},
		CloseFn: func() error { return nil },
	}
}

func opener(recs ...*wetclean.Record) *mock.ArchiveOpener {
	return &mock.ArchiveOpener{
		OpenFn: func(string) (wetclean.RecordReader, error) {
			return records(recs...), nil
		},
	}
}

// countingWriter records each Write call.
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

// explodingReader fails the test if anything reads it.
type explodingReader struct{}

func (explodingReader) Read([]byte) (int, error) {
	return 0, errors.New("body should not be read")
}

// docs splits delimited output into documents.
func docs(s string) []string {
	s = strings.TrimSuffix(s, wetclean.DocumentDelimiter)
	if s == "" {
		return nil
	}
	return strings.Split(s, wetclean.DocumentDelimiter)
}
