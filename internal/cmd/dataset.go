package cmd

import (
	"fmt"
	"strings"

	"github.com/jimezsa/jobscrape/internal/dataset"
	"github.com/jimezsa/jobscrape/internal/export"
	"github.com/jimezsa/jobscrape/internal/scraper"
	"github.com/jimezsa/jobscrape/internal/ui"
)

type DatasetCmd struct {
	Show DatasetShowCmd `cmd:"" help:"Print the rows of a site dataset."`
	Path DatasetPathCmd `cmd:"" help:"Print the dataset file path of a site."`
}

type DatasetShowCmd struct {
	Site   string `help:"Site whose dataset to print." default:"indeed"`
	Format string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Links  string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Last   int    `help:"Only print the last N rows."`

	DatasetDir string `name:"dataset-dir" help:"Directory holding dataset files. Defaults to the config value."`
}

type DatasetPathCmd struct {
	Site       string `help:"Site whose dataset path to print." default:"indeed"`
	DatasetDir string `name:"dataset-dir" help:"Directory holding dataset files. Defaults to the config value."`
}

func datasetPath(ctx *Context, dir, site string) string {
	return dataset.NewWriter(firstNonEmpty(dir, ctx.Config.DatasetDir)).Path(scraper.NormalizeSite(site))
}

func (c *DatasetShowCmd) Run(ctx *Context) error {
	path := datasetPath(ctx, c.DatasetDir, c.Site)
	jobs, err := dataset.ReadAllowMissing(path)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	if c.Last > 0 && len(jobs) > c.Last {
		jobs = jobs[len(jobs)-c.Last:]
	}

	format, err := resolveFormat(ctx, c.Format)
	if err != nil {
		return err
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	linkStyle := export.LinkStyleFull
	if strings.EqualFold(c.Links, string(export.LinkStyleShort)) {
		linkStyle = export.LinkStyleShort
	}
	return export.WriteJobs(ctx.Out, jobs, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && ui.IsTTY(ctx.Out),
		LinkStyle:    linkStyle,
	})
}

func (c *DatasetPathCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, datasetPath(ctx, c.DatasetDir, c.Site))
	return err
}
