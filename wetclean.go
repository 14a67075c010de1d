// Package wetclean extracts natural-language documents from web-crawl archive
// files, strips boilerplate, filters out low-quality text, and merges the
// survivors into a deduplicated corpus.
//
// This package contains domain types, interfaces, and the pure text functions
// (pattern library, boilerplate remover, quality classifier) following Ben
// Johnson's Standard Package Layout. Implementations that depend on I/O or
// third-party libraries live in subdirectories named after their primary
// dependency (e.g., warc/, sqlite/, bloom/, trafilatura/).
package wetclean

// DocumentDelimiter separates documents in scratch files and the final corpus.
// It is not escaped inside document bodies.
const DocumentDelimiter = "\n\n---\n\n"
