package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/wetclean"
	"github.com/fwojciec/wetclean/fs"
	"github.com/fwojciec/wetclean/pipeline"
	"golang.org/x/time/rate"
)

// progressInterval throttles per-file progress lines.
const progressInterval = 2 * time.Second

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	c.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}

	files, err := pipeline.Discover(c.InputDir, cfg.InputPattern, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}
	if len(files) == 0 {
		err := wetclean.Errorf(wetclean.ENOTFOUND, "no archives matching %q in %s", cfg.InputPattern, c.InputDir)
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}

	lexicon, err := fs.LoadLexicon(c.Lexicon)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Loaded %s lexicon words\n", pipeline.FormatCount(lexicon.Len()))

	out, err := fs.CreateCorpusFile(c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}

	p := newPipeline(cfg, lexicon, c.ScratchDir, deps.Runs, deps.Logger)
	fmt.Fprintf(deps.Stdout, "Processing %s archives with %d workers\n",
		pipeline.FormatCount(len(files)), p.Coordinator.WorkerCount(len(files)))

	summary, err := p.Run(deps.Ctx, c.InputDir, files, out, c.Output, progressPrinter(deps.Stdout, deps.Stderr, cfg.FailurePolicy, time.Now()))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	printSummary(deps.Stdout, summary, c.Output)
	return nil
}

// apply copies flag overrides into cfg.
func (c *RunCmd) apply(cfg *wetclean.Config) {
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.Pattern != "" {
		cfg.InputPattern = c.Pattern
	}
	if c.Skip {
		cfg.FailurePolicy = wetclean.FailSkip
	}
	if c.NoDedup {
		cfg.DeduplicationEnabled = false
	}
	if c.HTML {
		cfg.ExtractHTML = true
	}
	if c.Extractor != "" {
		cfg.HTMLExtractor = wetclean.ExtractorName(c.Extractor)
	}
}

// progressPrinter reports failures as they happen and completed files at most
// once per progressInterval, plus the last file. Failures read "skip" when the
// run continues past them and "failed" when they abort it.
func progressPrinter(stdout, stderr io.Writer, policy wetclean.FailurePolicy, start time.Time) pipeline.ProgressFunc {
	every := &rate.Sometimes{Interval: progressInterval}
	label := "failed"
	if policy == wetclean.FailSkip {
		label = "skip"
	}
	return func(e pipeline.ProgressEvent) {
		switch e.Type {
		case pipeline.ProgressFailed:
			fmt.Fprintf(stderr, "  %s %s: %v\n", label, pipeline.TruncatePath(e.Result.Path, 60), e.Result.Err)
		case pipeline.ProgressCompleted:
			line := func() {
				elapsed := time.Since(start).Seconds()
				fmt.Fprintf(stdout, "  [%d/%d] %s documents, %s kept (%s)\n",
					e.Completed, e.Total,
					pipeline.FormatCount(e.Stats.Total),
					pipeline.FormatCount(e.Stats.Kept),
					pipeline.FormatRate(e.Stats.Total, elapsed))
			}
			if e.Completed == e.Total {
				line()
				return
			}
			every.Do(line)
		}
	}
}

func printSummary(w io.Writer, s *pipeline.Summary, output string) {
	fmt.Fprintln(w, "Done.")
	fmt.Fprintf(w, "  Total documents:    %s\n", pipeline.FormatCount(s.Total))
	fmt.Fprintf(w, "  After filtering:    %s\n", pipeline.FormatCount(s.Kept))
	fmt.Fprintf(w, "  After dedup:        %s\n", pipeline.FormatCount(s.KeptAfterDedup))
	fmt.Fprintf(w, "  Duplicates removed: %s\n", pipeline.FormatCount(s.DuplicatesRemoved))
	fmt.Fprintf(w, "  Retention rate:     %s\n", pipeline.FormatPercent(s.KeptAfterDedup, s.Total))
	if s.FailedFiles > 0 {
		fmt.Fprintf(w, "  Failed archives:    %d of %d\n", s.FailedFiles, s.Files)
	}
	fmt.Fprintf(w, "  Elapsed:            %s\n", s.Duration.Round(time.Millisecond))
	if s.RunID != "" {
		fmt.Fprintf(w, "  Run:                %s\n", s.RunID)
	}
	if fi, err := os.Stat(output); err == nil {
		fmt.Fprintf(w, "Corpus written to %s (%s)\n", output, pipeline.FormatBytes(fi.Size()))
		return
	}
	fmt.Fprintf(w, "Corpus written to %s\n", output)
}
