package wetclean

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the main content as plain text, with paragraphs on their own
	// lines. Boilerplate (nav, footer, sidebar, ads) has been removed.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content as text.
	Extract(html string) (*ExtractResult, error)
}
