package wetclean

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classifier sampling and structure constants.
const (
	// lexiconSampleChars is how much of the document prefix is scanned for words.
	lexiconSampleChars = 2000
	// lexiconSampleWords caps the number of sampled words.
	lexiconSampleWords = 100

	contentLineMinLength  = 40
	lineDiversityMinLines = 5
	lineDiversityCutoff   = 0.5
	wordDiversityMinWords = 50
	sentenceMinCount      = 3
)

// Rejection names the check that rejected a document. The zero value means
// the document was accepted.
type Rejection string

// Stage 1 rejections.
const (
	RejectLength          Rejection = "length"
	RejectEncoding        Rejection = "encoding"
	RejectScript          Rejection = "script"
	RejectNoWords         Rejection = "no_words"
	RejectLexicon         Rejection = "lexicon"
	RejectRepetitiveLines Rejection = "repetitive_lines"
)

// Stage 2 rejections.
const (
	RejectTooShort       Rejection = "too_short"
	RejectLineDiversity  Rejection = "line_diversity"
	RejectContentRatio   Rejection = "content_ratio"
	RejectWordDiversity  Rejection = "word_diversity"
	RejectSentenceLength Rejection = "sentence_length"
)

// Classifier decides whether extracted text is worth keeping.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	patterns *Patterns
	lexicon  *Lexicon
	config   Config
}

// NewClassifier returns a Classifier. A nil patterns compiles a private copy;
// a nil cfg uses DefaultConfig. The config is copied.
func NewClassifier(patterns *Patterns, lexicon *Lexicon, cfg *Config) *Classifier {
	if patterns == nil {
		patterns = NewPatterns()
	}
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Classifier{patterns: patterns, lexicon: lexicon, config: c}
}

// Config returns a copy of the classifier's configuration.
func (c *Classifier) Config() Config {
	return c.config
}

// Accept reports whether text passes both stages.
func (c *Classifier) Accept(text string) bool {
	return c.IsGood(text) && c.QualityCheck(text)
}

// IsGood runs stage 1: length, encoding, script, lexicon, line uniqueness.
func (c *Classifier) IsGood(text string) bool {
	return c.Stage1(text) == ""
}

// QualityCheck runs stage 2: line and word diversity, content density,
// sentence length.
func (c *Classifier) QualityCheck(text string) bool {
	return c.Stage2(text) == ""
}

// ValidEncoding reports whether the share of printable ASCII bytes in b is
// strictly above the printable ratio threshold. Empty input is invalid.
func (c *Classifier) ValidEncoding(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	ratio := float64(c.patterns.CountPrintable(b)) / float64(len(b))
	return ratio > c.config.PrintableRatioThreshold
}

// Stage1 returns the first stage 1 check text fails, or "" if it passes.
// Checks run cheapest first.
func (c *Classifier) Stage1(text string) Rejection {
	cfg := &c.config

	n := utf8.RuneCountInString(text)
	if n <= cfg.MinTextLength || n >= cfg.MaxTextLength {
		return RejectLength
	}

	if !c.ValidEncoding([]byte(text)) {
		return RejectEncoding
	}

	latin, alpha := countLetters(text)
	if alpha > 0 && float64(latin)/float64(alpha) < cfg.LatinCharThreshold {
		return RejectScript
	}

	sample := strings.ToLower(prefixRunes(text, lexiconSampleChars))
	words := c.patterns.Words(sample, lexiconSampleWords)
	if len(words) == 0 {
		return RejectNoWords
	}
	known := 0
	for _, w := range words {
		if c.lexicon.Contains(w) {
			known++
		}
	}
	if float64(known) < float64(len(words))*cfg.EnglishThreshold {
		return RejectLexicon
	}

	lines := strings.Split(text, "\n")
	if distinctRatio(lines) <= cfg.UniqueLinesThreshold {
		return RejectRepetitiveLines
	}

	return ""
}

// Stage2 returns the first stage 2 check text fails, or "" if it passes.
func (c *Classifier) Stage2(text string) Rejection {
	cfg := &c.config

	if utf8.RuneCountInString(text) < cfg.MinTextLength {
		return RejectTooShort
	}

	lines := strings.Split(text, "\n")
	nonBlank, contentLines := scanLines(lines)

	if len(nonBlank) >= lineDiversityMinLines && distinctRatio(nonBlank) <= lineDiversityCutoff {
		return RejectLineDiversity
	}

	if float64(contentLines)/float64(len(lines)) <= cfg.ContentRatioThreshold {
		return RejectContentRatio
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) >= wordDiversityMinWords && distinctRatio(words) <= cfg.WordDiversityThreshold {
		return RejectWordDiversity
	}

	sentences := c.patterns.Sentences(text)
	if len(sentences) >= sentenceMinCount {
		avg := averageWords(sentences)
		if avg <= cfg.AvgWordsMin || avg >= cfg.AvgWordsMax {
			return RejectSentenceLength
		}
	}

	return ""
}

// Metrics are the derived measurements the classifier looks at.
type Metrics struct {
	Length              int     `json:"length"`
	Bytes               int     `json:"bytes"`
	PrintableRatio      float64 `json:"printableRatio"`
	LatinRatio          float64 `json:"latinRatio"`
	LexiconRatio        float64 `json:"lexiconRatio"`
	Lines               int     `json:"lines"`
	UniqueLineRatio     float64 `json:"uniqueLineRatio"`
	ContentLines        int     `json:"contentLines"`
	Words               int     `json:"words"`
	UniqueWordRatio     float64 `json:"uniqueWordRatio"`
	Sentences           int     `json:"sentences"`
	AvgWordsPerSentence float64 `json:"avgWordsPerSentence"`
}

// Report is a full classification of one text.
type Report struct {
	Stage1  Rejection `json:"stage1"`
	Stage2  Rejection `json:"stage2"`
	Metrics Metrics   `json:"metrics"`
}

// Accepted reports whether both stages passed.
func (r *Report) Accepted() bool {
	return r.Stage1 == "" && r.Stage2 == ""
}

// Explain classifies text and measures every metric, without short-circuiting
// between stages.
func (c *Classifier) Explain(text string) *Report {
	return &Report{
		Stage1:  c.Stage1(text),
		Stage2:  c.Stage2(text),
		Metrics: c.Measure(text),
	}
}

// Measure computes the document metrics.
func (c *Classifier) Measure(text string) Metrics {
	m := Metrics{
		Length: utf8.RuneCountInString(text),
		Bytes:  len(text),
	}
	if m.Bytes > 0 {
		m.PrintableRatio = float64(c.patterns.CountPrintable([]byte(text))) / float64(m.Bytes)
	}

	latin, alpha := countLetters(text)
	if alpha > 0 {
		m.LatinRatio = float64(latin) / float64(alpha)
	}

	sample := c.patterns.Words(strings.ToLower(prefixRunes(text, lexiconSampleChars)), lexiconSampleWords)
	if len(sample) > 0 {
		known := 0
		for _, w := range sample {
			if c.lexicon.Contains(w) {
				known++
			}
		}
		m.LexiconRatio = float64(known) / float64(len(sample))
	}

	lines := strings.Split(text, "\n")
	m.Lines = len(lines)
	m.UniqueLineRatio = distinctRatio(lines)
	_, m.ContentLines = scanLines(lines)

	words := strings.Fields(strings.ToLower(text))
	m.Words = len(words)
	m.UniqueWordRatio = distinctRatio(words)

	sentences := c.patterns.Sentences(text)
	m.Sentences = len(sentences)
	m.AvgWordsPerSentence = averageWords(sentences)

	return m
}

// scanLines returns the stripped non-blank lines and the number of content
// lines among them: longer than 40 characters, containing a space, and not
// entirely uppercase.
func scanLines(lines []string) (nonBlank []string, contentLines int) {
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		nonBlank = append(nonBlank, s)
		if utf8.RuneCountInString(s) > contentLineMinLength && strings.Contains(s, " ") && !isUpper(s) {
			contentLines++
		}
	}
	return nonBlank, contentLines
}

// countLetters returns the number of Latin-1 letters and of all letters.
func countLetters(s string) (latin, alpha int) {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		alpha++
		if r < 256 {
			latin++
		}
	}
	return latin, alpha
}

// isUpper reports whether s has at least one uppercase letter and no lowercase
// or titlecase ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// distinctRatio returns distinct/total for items, or 0 for no items.
func distinctRatio(items []string) float64 {
	if len(items) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it] = struct{}{}
	}
	return float64(len(seen)) / float64(len(items))
}

func averageWords(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}
	return float64(total) / float64(len(sentences))
}

// prefixRunes returns the first n characters of s.
func prefixRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
