// Package export renders stored dataset records for the terminal or other tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobscrape/internal/dataset"
	"github.com/jimezsa/jobscrape/internal/models"
	"github.com/jimezsa/jobscrape/internal/ui"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "tsv":
		return FormatTSV, nil
	case "table", "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func WriteJobs(w io.Writer, jobs []models.Job, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jobs)
	case FormatCSV:
		return writeCSV(w, jobs, ',')
	case FormatTSV:
		return writeCSV(w, jobs, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, jobs)
	default:
		return writeTable(w, jobs, opts)
	}
}

func writeJSON(w io.Writer, jobs []models.Job) error {
	if jobs == nil {
		jobs = []models.Job{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jobs)
}

func writeCSV(w io.Writer, jobs []models.Job, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(dataset.Header); err != nil {
		return err
	}
	for _, job := range jobs {
		if err := writer.Write(dataset.Row(job)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, jobs []models.Job, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(dataset.Header, "\t"))
	output := termenv.NewOutput(w)
	for _, job := range jobs {
		fmt.Fprintln(tw, strings.Join(tableRow(job, output, opts), "\t"))
	}
	return tw.Flush()
}

// writeMarkdown renders a GitHub table with the dataset columns; links become [view](url).
func writeMarkdown(w io.Writer, jobs []models.Job) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No jobs scraped yet.")
		return err
	}

	divider := make([]string, len(dataset.Header))
	for i := range divider {
		divider[i] = "---"
	}
	lines := []string{markdownRow(dataset.Header), markdownRow(divider)}
	for _, job := range jobs {
		row := dataset.Row(job)
		if link := safe(job.Link); link != "" {
			row[len(row)-1] = fmt.Sprintf("[view](<%s>)", link)
		}
		lines = append(lines, markdownRow(row))
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func markdownRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = strings.ReplaceAll(safe(cell), "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func tableRow(job models.Job, output *termenv.Output, opts WriteOptions) []string {
	link := safe(job.Link)
	display := "-"
	if link != "" {
		display = link
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			display = shortURLLabel(link)
		}
		display = ui.ColorizeLink(output, opts.ColorEnabled, display)
		if opts.Hyperlinks {
			display = hyperlink(link, display)
		}
	}
	return []string{
		safe(job.ID),
		safe(job.Name),
		safe(job.Company),
		safe(job.Location),
		display,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
			if parsed.RawQuery != "" {
				label += "?" + parsed.RawQuery
			}
		}
	}
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
