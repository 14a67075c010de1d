// Package goquery extracts the text of archived HTML pages with CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wetclean"
)

// Ensure Extractor implements wetclean.Extractor at compile time.
var _ wetclean.Extractor = (*Extractor)(nil)

// dropSelector matches elements that never carry page text.
const dropSelector = "script, style, noscript, template, svg, iframe, form, button, select, nav, header, footer, aside"

// blockSelector matches the elements whose text becomes one output line.
const blockSelector = "p, h1, h2, h3, h4, h5, h6, li, dt, dd, pre, blockquote, td, th, figcaption"

// Extractor keeps the text of leaf block elements, one per line, after
// removing scripts, styles, and page chrome.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns its block text.
func (e *Extractor) Extract(rawHTML string) (*wetclean.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wetclean.Errorf(wetclean.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, wetclean.Errorf(wetclean.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	body := doc.Find("body")
	body.Find(dropSelector).Remove()

	var lines []string
	body.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		// Nested blocks are emitted by their innermost element.
		if sel.Find(blockSelector).Length() > 0 {
			return
		}
		if line := collapse(sel.Text()); line != "" {
			lines = append(lines, line)
		}
	})
	if len(lines) == 0 {
		if line := collapse(body.Text()); line != "" {
			lines = append(lines, line)
		}
	}

	return &wetclean.ExtractResult{
		Title: title,
		Text:  strings.Join(lines, "\n"),
	}, nil
}

// collapse joins the whitespace-separated fields of s with single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
