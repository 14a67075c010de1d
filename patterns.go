package wetclean

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CleanupRule replaces every match of Pattern with Replacement.
type CleanupRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Patterns is the compiled pattern library shared by the boilerplate remover
// and the quality classifier. Build it once with NewPatterns; it is never
// modified afterwards and is safe for concurrent use.
type Patterns struct {
	// Removal matches markup, brace blocks, navigation/UI/social/legal/ad
	// vocabulary, and JS-like fragments, case-insensitively. Each alternative
	// is a capture group. Use RemoveAll, which also enforces word boundaries
	// against non-ASCII letters.
	Removal *regexp.Regexp

	// bounded[i] is set when alternative i is a \b-delimited keyword.
	bounded []bool

	// Cleanup rules run in order after Removal.
	Cleanup []CleanupRule

	// Word matches runs of ASCII letters. Use Words, which also enforces
	// word boundaries against non-ASCII letters and digits.
	Word *regexp.Regexp

	// Sentence matches runs of sentence-ending punctuation.
	Sentence *regexp.Regexp

	printable [256]bool
}

// removalAlternatives are joined into Patterns.Removal.
var removalAlternatives = []string{
	// Markup.
	`<[^>]+>`,
	`\{[^}]*\}`,
	// Navigation.
	`\b(?:home|about|contact|login|register|sign\s+in|sign\s+up|menu|navigation|navbar|footer|header|sidebar)\b`,
	// UI.
	`\b(?:skip\s+to|jump\s+to|go\s+to|click\s+here|read\s+more|learn\s+more|subscribe|newsletter|follow\s+us)\b`,
	// Social.
	`\b(?:facebook|twitter|instagram|linkedin|youtube)\b`,
	// Legal.
	`©.*?\d{4}.*?(?:all\s+rights\s+reserved|copyright)`,
	`\b(?:privacy\s+policy|terms\s+of\s+service|cookie\s+policy|gdpr)\b`,
	// Ads.
	`\b(?:advertisement|sponsored|affiliate|buy\s+now|order\s+now|free\s+trial|limited\s+time)\b`,
	// Code.
	`function\s*\([^)]*\)`,
	`var\s+\w+\s*=`,
	`document\.\w+`,
	`window\.\w+`,
	`console\.\w+`,
}

// NewPatterns compiles the pattern library.
func NewPatterns() *Patterns {
	groups := make([]string, len(removalAlternatives))
	bounded := make([]bool, len(removalAlternatives))
	for i, alt := range removalAlternatives {
		groups[i] = "(" + alt + ")"
		bounded[i] = strings.HasPrefix(alt, `\b`)
	}
	p := &Patterns{
		Removal: regexp.MustCompile(`(?i)` + strings.Join(groups, "|")),
		bounded: bounded,
		Cleanup: []CleanupRule{
			{regexp.MustCompile(`[|•→←↑↓◦▪▫□■►◄]+`), " "},
			{regexp.MustCompile(`\s*[-_=]{3,}\s*`), "\n"},
			{regexp.MustCompile(`\*{3,}`), "\n"},
			{regexp.MustCompile(`[ \t]+`), " "},
			{regexp.MustCompile(`\n\s*\n\s*\n+`), "\n\n"},
		},
		Word:     regexp.MustCompile(`[a-zA-Z]+`),
		Sentence: regexp.MustCompile(`[.!?]+`),
	}
	for b := 0x20; b <= 0x7E; b++ {
		p.printable[b] = true
	}
	p.printable['\t'] = true
	p.printable['\n'] = true
	p.printable['\r'] = true
	return p
}

// Words returns up to limit ASCII words from s, in order. A run of ASCII
// letters only counts when it is not glued to another letter, digit, or
// underscore (so "café" and "abc1" yield nothing). A negative limit returns
// every word.
func (p *Patterns) Words(s string, limit int) []string {
	var words []string
	for _, loc := range p.Word.FindAllStringIndex(s, -1) {
		if limit >= 0 && len(words) >= limit {
			break
		}
		if !atWordBoundary(s, loc[0], loc[1]) {
			continue
		}
		words = append(words, s[loc[0]:loc[1]])
	}
	return words
}

// RemoveAll replaces every Removal match in s with repl. A keyword match
// glued to a letter, digit, or underscore on either side is not a match, so
// "contactó" survives while "contact" does not.
func (p *Patterns) RemoveAll(s, repl string) string {
	var b strings.Builder
	last, pos := 0, 0
	for pos < len(s) {
		m := p.Removal.FindStringSubmatchIndex(s[pos:])
		if m == nil {
			break
		}
		start, end := pos+m[0], pos+m[1]
		if end == start || (p.isBounded(m) && !atWordBoundary(s, start, end)) {
			_, size := utf8.DecodeRuneInString(s[start:])
			pos = start + size
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(repl)
		last, pos = end, end
	}
	b.WriteString(s[last:])
	return b.String()
}

// isBounded reports whether the alternative that produced submatch m is a
// word-bounded keyword.
func (p *Patterns) isBounded(m []int) bool {
	for i, bounded := range p.bounded {
		if m[2*(i+1)] >= 0 {
			return bounded
		}
	}
	return false
}

// Sentences splits s on sentence punctuation and returns the trimmed,
// non-empty pieces.
func (p *Patterns) Sentences(s string) []string {
	parts := p.Sentence.Split(s, -1)
	sentences := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// CountPrintable returns the number of printable ASCII bytes in b,
// counting tab, newline, and carriage return as printable.
func (p *Patterns) CountPrintable(b []byte) int {
	n := 0
	for _, c := range b {
		if p.printable[c] {
			n++
		}
	}
	return n
}

// atWordBoundary reports whether s[start:end] is not glued to a word rune on
// either side.
func atWordBoundary(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
