package wetclean

import (
	"bufio"
	"io"
	"strings"
)

// Lexicon is a read-only set of lowercase dictionary words.
// It is safe for concurrent use once constructed.
type Lexicon struct {
	words map[string]struct{}
}

// NewLexicon builds a lexicon from words. Words are trimmed and lowercased;
// empty entries are skipped.
func NewLexicon(words ...string) *Lexicon {
	l := &Lexicon{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		l.add(w)
	}
	return l
}

// ReadLexicon builds a lexicon from a word list with one word per line.
func ReadLexicon(r io.Reader) (*Lexicon, error) {
	l := &Lexicon{words: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Lexicon) add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	l.words[word] = struct{}{}
}

// Contains reports whether word is in the lexicon. Lookups are exact;
// callers lowercase their input.
func (l *Lexicon) Contains(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.words[word]
	return ok
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}
