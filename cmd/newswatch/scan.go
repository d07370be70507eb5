package main

import (
	"fmt"

	"github.com/mkowalik/newswatch"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	for _, source := range deps.Config.Sources {
		items, err := deps.Scanner.Scan(deps.Ctx, source)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newswatch.ErrorMessage(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "%s: %d items\n", source.Name, len(items))
		for _, item := range items {
			fmt.Fprintf(deps.Stdout, "  %s  %s  %s  %s\n",
				item.Date, item.Category, item.Title, item.URL)
		}
	}
	return nil
}
