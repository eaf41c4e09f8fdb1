package cmd

import (
	"github.com/jimezsa/jobscrape/internal/export"
	"github.com/jimezsa/jobscrape/internal/ui"
)

// resolveFormat picks the output format: global --json/--plain, then --format,
// then a table on terminals and CSV when piped.
func resolveFormat(ctx *Context, format string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if format != "" {
		return export.ParseFormat(format)
	}
	if ui.IsTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}
