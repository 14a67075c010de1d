// Package readability extracts article text from archived HTML pages.
package readability

import (
	"strings"

	"github.com/fwojciec/wetclean"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements wetclean.Extractor at compile time.
var _ wetclean.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main article from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article as plain text.
func (e *Extractor) Extract(rawHTML string) (*wetclean.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wetclean.Errorf(wetclean.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &wetclean.ExtractResult{
		Title: article.Title,
		Text:  strings.TrimSpace(article.TextContent),
	}, nil
}
