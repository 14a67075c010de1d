package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/wetclean"
	"github.com/fwojciec/wetclean/fs"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		if os.IsNotExist(err) {
			err = wetclean.Errorf(wetclean.ENOTFOUND, "file not found: %s", c.File)
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}

	lexicon, err := fs.LoadLexicon(c.Lexicon)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}

	cfg := deps.Config
	patterns := wetclean.NewPatterns()
	text := strings.ToValidUTF8(string(raw), "")
	if c.Clean {
		text = wetclean.NewCleaner(patterns, &cfg).RemoveBoilerplate(text)
	}
	report := wetclean.NewClassifier(patterns, lexicon, &cfg).Explain(text)

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	verdict := "rejected"
	if report.Accepted() {
		verdict = "accepted"
	}
	fmt.Fprintf(deps.Stdout, "%s: %s\n", c.File, verdict)
	fmt.Fprintf(deps.Stdout, "  stage 1: %s\n", outcome(report.Stage1))
	fmt.Fprintf(deps.Stdout, "  stage 2: %s\n", outcome(report.Stage2))

	m := report.Metrics
	fmt.Fprintf(deps.Stdout, "  length:            %d chars, %d bytes\n", m.Length, m.Bytes)
	fmt.Fprintf(deps.Stdout, "  printable ratio:   %.3f\n", m.PrintableRatio)
	fmt.Fprintf(deps.Stdout, "  latin ratio:       %.3f\n", m.LatinRatio)
	fmt.Fprintf(deps.Stdout, "  lexicon ratio:     %.3f\n", m.LexiconRatio)
	fmt.Fprintf(deps.Stdout, "  lines:             %d (%.3f unique, %d content)\n", m.Lines, m.UniqueLineRatio, m.ContentLines)
	fmt.Fprintf(deps.Stdout, "  words:             %d (%.3f unique)\n", m.Words, m.UniqueWordRatio)
	fmt.Fprintf(deps.Stdout, "  sentences:         %d (%.1f words avg)\n", m.Sentences, m.AvgWordsPerSentence)
	return nil
}

func outcome(r wetclean.Rejection) string {
	if r == "" {
		return "pass"
	}
	return "fail (" + string(r) + ")"
}
