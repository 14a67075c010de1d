// Package pipeline turns a directory of crawl archives into a cleaned,
// deduplicated corpus. It coordinates archive reading, boilerplate removal,
// quality classification, and the merge stage.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/wetclean"
)

// Ensure Processor implements wetclean.FileProcessor at compile time.
var _ wetclean.FileProcessor = (*Processor)(nil)

// Processor implements wetclean.FileProcessor. It holds only read-only state
// and may be shared by every worker.
type Processor struct {
	Opener     wetclean.ArchiveOpener
	Cleaner    *wetclean.Cleaner
	Classifier *wetclean.Classifier

	// HTML and Extractor are optional. When both are set and ExtractHTML is
	// enabled, HTML response records are extracted to text and processed
	// like conversion records.
	HTML      wetclean.HTMLDecoder
	Extractor wetclean.Extractor

	config wetclean.Config
}

// NewProcessor creates a Processor sharing one compiled pattern library
// between its cleaner and classifier.
func NewProcessor(opener wetclean.ArchiveOpener, lexicon *wetclean.Lexicon, cfg wetclean.Config) *Processor {
	patterns := wetclean.NewPatterns()
	return &Processor{
		Opener:     opener,
		Cleaner:    wetclean.NewCleaner(patterns, &cfg),
		Classifier: wetclean.NewClassifier(patterns, lexicon, &cfg),
		config:     cfg,
	}
}

// ProcessFile streams the archive at path, writing accepted documents to w in
// archive order. Documents are flushed in batches of Config.BatchSize.
func (p *Processor) ProcessFile(ctx context.Context, path string, w io.Writer) (wetclean.FileStats, error) {
	var stats wetclean.FileStats

	r, err := p.Opener.Open(path)
	if err != nil {
		return stats, err
	}
	defer r.Close()

	batchSize := max(1, p.config.BatchSize)
	var batch bytes.Buffer
	pending := 0

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}

		text, counted, err := p.text(rec)
		if err != nil {
			return stats, err
		}
		if counted {
			stats.Total++
		}
		if text == "" {
			continue
		}

		text = p.Cleaner.RemoveBoilerplate(text)
		if !p.Classifier.Accept(text) {
			continue
		}

		batch.WriteString(text)
		batch.WriteString(wetclean.DocumentDelimiter)
		pending++
		stats.Kept++

		if pending >= batchSize {
			if _, err := w.Write(batch.Bytes()); err != nil {
				return stats, fmt.Errorf("write batch: %w", err)
			}
			batch.Reset()
			pending = 0
		}
	}

	if pending > 0 {
		if _, err := w.Write(batch.Bytes()); err != nil {
			return stats, fmt.Errorf("write batch: %w", err)
		}
	}
	return stats, nil
}

// text returns the decoded text of rec. counted reports whether rec is a
// document record at all; text is empty when the record is skipped by the
// length prefilter or carries nothing usable.
func (p *Processor) text(rec *wetclean.Record) (text string, counted bool, err error) {
	switch {
	case rec.Type == wetclean.RecordConversion:
		// Cheap prefilter on the declared length before reading the body.
		if rec.Length >= 0 && !p.withinBytes(int(rec.Length)) {
			return "", true, nil
		}
		raw, err := io.ReadAll(rec.Body)
		if err != nil {
			return "", true, fmt.Errorf("read record %s: %w", rec.TargetURI, err)
		}
		if !p.withinBytes(len(raw)) {
			return "", true, nil
		}
		return strings.ToValidUTF8(string(raw), ""), true, nil

	case rec.Type == wetclean.RecordResponse && p.config.ExtractHTML && p.HTML != nil && p.Extractor != nil:
		html, ok, err := p.HTML.DecodeHTML(rec)
		if err != nil || !ok {
			// Undecodable responses are skipped like malformed records.
			return "", ok, nil
		}
		res, err := p.Extractor.Extract(string(html))
		if err != nil || res == nil {
			return "", true, nil
		}
		if !p.withinBytes(len(res.Text)) {
			return "", true, nil
		}
		return strings.ToValidUTF8(res.Text, ""), true, nil
	}
	return "", false, nil
}

// withinBytes reports whether n lies strictly between the length bounds.
func (p *Processor) withinBytes(n int) bool {
	return p.config.MinTextLength < n && n < p.config.MaxTextLength
}
