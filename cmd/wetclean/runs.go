package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/wetclean"
	"github.com/fwojciec/wetclean/pipeline"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if deps.Runs == nil {
		err := wetclean.Errorf(wetclean.EINVALID, "no run ledger configured; pass --db or set WETCLEAN_DB")
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}

	if c.ID != "" {
		return c.show(deps)
	}

	filter := wetclean.RunFilter{Limit: c.Limit}
	if c.Status != "" {
		status := wetclean.RunStatus(c.Status)
		switch status {
		case wetclean.RunRunning, wetclean.RunSucceeded, wetclean.RunFailed:
		default:
			err := wetclean.Errorf(wetclean.EINVALID, "unknown status %q", c.Status)
			fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
			return err
		}
		filter.Status = &status
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'wetclean run --db PATH' to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-9s  %s -> %s  kept %s of %s\n",
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Status,
			r.InputDir,
			r.OutputPath,
			pipeline.FormatCount(r.KeptAfterDedup),
			pipeline.FormatCount(r.Total))
	}
	return nil
}

func (c *RunsCmd) show(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}
	recs, err := deps.Runs.FindFileRecords(deps.Ctx, run.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wetclean.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s (%s)\n", run.ID, run.Status)
	fmt.Fprintf(deps.Stdout, "  %s -> %s\n", run.InputDir, run.OutputPath)
	fmt.Fprintf(deps.Stdout, "  total %s, filtered %s, deduplicated %s, duplicates %s\n",
		pipeline.FormatCount(run.Total),
		pipeline.FormatCount(run.Kept),
		pipeline.FormatCount(run.KeptAfterDedup),
		pipeline.FormatCount(run.DuplicatesRemoved))
	if run.Error != "" {
		fmt.Fprintf(deps.Stdout, "  error: %s\n", run.Error)
	}
	for _, rec := range recs {
		if rec.Error != "" {
			fmt.Fprintf(deps.Stdout, "  FAIL %s: %s\n", rec.Path, rec.Error)
			continue
		}
		fmt.Fprintf(deps.Stdout, "  ok   %s  %s/%s\n", rec.Path,
			pipeline.FormatCount(rec.Kept), pipeline.FormatCount(rec.Total))
	}
	return nil
}
