package wetclean

import (
	"strings"
	"unicode/utf8"
)

// minCleanLength is the shortest input Clean will look at.
const minCleanLength = 100

// boilerplateTrimLines is the line count above which the header and footer
// bands are trimmed.
const boilerplateTrimLines = 10

// boilerplateBand is the denominator of the fraction trimmed from each end.
const boilerplateBand = 7

// Cleaner strips web boilerplate from extracted page text.
// It holds no mutable state and is safe for concurrent use.
type Cleaner struct {
	patterns      *Patterns
	minLineLength int
}

// NewCleaner returns a Cleaner using the shared pattern library. A nil
// patterns compiles a private copy; a nil cfg uses DefaultConfig.
func NewCleaner(patterns *Patterns, cfg *Config) *Cleaner {
	if patterns == nil {
		patterns = NewPatterns()
	}
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Cleaner{patterns: patterns, minLineLength: c.MinLineLength}
}

// Clean removes markup and boilerplate vocabulary, then normalizes glyphs,
// dividers, and whitespace. Inputs shorter than 100 characters yield "".
func (c *Cleaner) Clean(text string) string {
	if utf8.RuneCountInString(text) < minCleanLength {
		return ""
	}

	// Removal first: it leaves runs of spaces the cleanup rules collapse.
	text = c.patterns.RemoveAll(text, " ")
	for _, rule := range c.patterns.Cleanup {
		text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
	}
	return text
}

// RemoveBoilerplate cleans text, keeps only substantial lines, and drops the
// first and last seventh of them when more than ten remain.
func (c *Cleaner) RemoveBoilerplate(text string) string {
	text = c.Clean(text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) > c.minLineLength {
			lines = append(lines, line)
		}
	}

	if len(lines) > boilerplateTrimLines {
		band := len(lines) / boilerplateBand
		lines = lines[band : len(lines)-band]
	}

	return strings.Join(lines, "\n")
}
