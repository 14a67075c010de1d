package main

import (
	"fmt"

	"github.com/fwojciec/wetclean"
	"github.com/fwojciec/wetclean/fs"
	"github.com/fwojciec/wetclean/pipeline"
)

// Run executes the merge command.
func (c *MergeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	if c.NoDedup {
		cfg.DeduplicationEnabled = false
	}

	out, err := fs.CreateCorpusFile(c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}

	// Inputs are removed only once the corpus is committed, so a failed
	// merge leaves every input in place.
	scratch := fs.NewScratchStore("")
	merger := newMerger(cfg, scratch, true, deps.Logger)
	result, err := merger.Merge(deps.Ctx, c.Scratch, out)
	if err != nil {
		_ = out.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}
	if err := out.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if !c.Keep {
		for _, path := range c.Scratch {
			if err := scratch.Remove(path); err != nil {
				fmt.Fprintf(deps.Stderr, "warning: remove %s: %v\n", path, err)
			}
		}
	}

	fmt.Fprintf(deps.Stdout, "Merged %d files: %s documents, %s kept, %s duplicates removed\n",
		result.Files,
		pipeline.FormatCount(result.Seen),
		pipeline.FormatCount(result.Kept),
		pipeline.FormatCount(result.Skipped()))
	return nil
}
