package main

import (
	"fmt"
	"time"

	"github.com/mkowalik/newswatch"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	targetDate, err := c.targetDate(deps.Config)
	if err != nil {
		return err
	}
	deps.Runner.TargetDate = targetDate

	result, err := deps.Runner.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newswatch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "posted %d, skipped %d (already notified)\n",
		result.Posted, result.Skipped)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "failed %d (will retry next run)\n", result.Failed)
	}
	return nil
}

// targetDate resolves the date filter: --all disables it, --date overrides
// it, and by default it is today in the configured timezone.
func (c *RunCmd) targetDate(cfg *newswatch.Config) (string, error) {
	if c.All {
		return "", nil
	}
	if c.Date != "" {
		if _, err := time.Parse(newswatch.DateLayout, c.Date); err != nil {
			return "", newswatch.Errorf(newswatch.EINVALID,
				"invalid --date %q: expected format %s", c.Date, newswatch.DateLayout)
		}
		return c.Date, nil
	}

	loc, err := cfg.Location()
	if err != nil {
		return "", err
	}
	return newswatch.FormatDate(time.Now().In(loc)), nil
}
