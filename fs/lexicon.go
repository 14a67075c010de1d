package fs

import (
	"fmt"
	"os"

	"github.com/fwojciec/wetclean"
)

// LoadLexicon reads a word list with one word per line.
func LoadLexicon(path string) (*wetclean.Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wetclean.Errorf(wetclean.ENOTFOUND, "word list not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()

	lex, err := wetclean.ReadLexicon(f)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return lex, nil
}
