package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscrape/internal/models"
)

// Site adapts one job board: where to search and how to read its results markup.
type Site interface {
	Name() string
	SearchURL(params models.SearchParams) string
	Container(doc *goquery.Document) *goquery.Selection
	Cards(container *goquery.Selection) *goquery.Selection
	Record(card *goquery.Selection) (models.Job, error)
}

// Fetcher returns the rendered markup of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (string, error)
}

// Appender persists the records extracted from one page.
type Appender interface {
	Append(site string, jobs []models.Job) error
}
