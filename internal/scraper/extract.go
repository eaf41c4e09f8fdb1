package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscrape/internal/models"
)

// Page is the outcome of extracting one results page.
type Page struct {
	Jobs      []models.Job
	Cards     int
	Malformed int
	// Skipped holds one ErrMissingField error per well-formed card that could not become a record.
	Skipped []error
}

// Extract parses rendered markup and reads every card of the results container.
// A missing container yields ErrNoResults. Malformed cards are counted and
// cards with a missing field are skipped; neither stops the page.
func Extract(site Site, markup string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Page{}, fmt.Errorf("%s: parse markup: %w", site.Name(), err)
	}
	return ExtractDocument(site, doc)
}

func ExtractDocument(site Site, doc *goquery.Document) (Page, error) {
	container := site.Container(doc)
	if container == nil || container.Length() == 0 {
		return Page{}, fmt.Errorf("%s: %w", site.Name(), ErrNoResults)
	}

	var page Page
	site.Cards(container).Each(func(index int, card *goquery.Selection) {
		page.Cards++
		job, err := site.Record(card)
		switch {
		case err == nil && job.Complete():
			page.Jobs = append(page.Jobs, job)
		case err == nil:
			page.Skipped = append(page.Skipped, fmt.Errorf("card %d: %w", index, missingField("job_link")))
		case errors.Is(err, ErrMalformedCard):
			page.Malformed++
		default:
			page.Skipped = append(page.Skipped, fmt.Errorf("card %d: %w", index, err))
		}
	})
	return page, nil
}
