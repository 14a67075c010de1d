// Package trafilatura extracts the main text of archived HTML pages.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/wetclean"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements wetclean.Extractor at compile time.
var _ wetclean.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main content out of HTML.
type Extractor struct {
	// Fallback also runs the readability and dom-distiller extractors and
	// keeps the best result. Slower, but recovers more pages.
	Fallback bool
}

// NewExtractor creates a new Extractor with fallback extraction enabled.
func NewExtractor() *Extractor {
	return &Extractor{Fallback: true}
}

// Extract processes raw HTML and returns the main content as plain text.
func (e *Extractor) Extract(rawHTML string) (*wetclean.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, wetclean.Errorf(wetclean.EINVALID, "empty HTML input")
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, wetclean.Errorf(wetclean.EINVALID, "failed to parse HTML: %v", err)
	}
	// The fallback extractors keep short pages whole, menus included.
	removeElements(doc, atom.Nav)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}

	opts := trafilatura.Options{
		EnableFallback: e.Fallback,
	}

	result, err := trafilatura.Extract(&buf, opts)
	if err != nil {
		return nil, err
	}

	return &wetclean.ExtractResult{
		Title: result.Metadata.Title,
		Text:  strings.TrimSpace(result.ContentText),
	}, nil
}

// removeElements detaches every element of the given kinds below n.
func removeElements(n *html.Node, kinds ...atom.Atom) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && containsAtom(kinds, c.DataAtom) {
			n.RemoveChild(c)
		} else {
			removeElements(c, kinds...)
		}
		c = next
	}
}

func containsAtom(kinds []atom.Atom, a atom.Atom) bool {
	for _, k := range kinds {
		if k == a {
			return true
		}
	}
	return false
}
