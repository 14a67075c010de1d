package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/wetclean"
)

// Ensure LoggingExtractor implements wetclean.Extractor.
var _ wetclean.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   wetclean.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next wetclean.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs input and output sizes.
func (e *LoggingExtractor) Extract(html string) (result *wetclean.ExtractResult, err error) {
	defer func(begin time.Time) {
		chars := 0
		if result != nil {
			chars = len(result.Text)
		}
		e.logger.Debug("extract",
			"bytes", len(html),
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
