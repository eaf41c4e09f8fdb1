package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/jimezsa/jobscrape/internal/scraper"
)

type SitesCmd struct{}

func (c *SitesCmd) Run(ctx *Context) error {
	statuses := scraper.Statuses(ctx.registry())

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "site\tstatus\texample_search_url")
	for _, status := range statuses {
		state := "not implemented"
		if status.Implemented {
			state = "ok"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", status.Name, state, firstNonEmpty(status.SearchURL, "-"))
	}
	return tw.Flush()
}
