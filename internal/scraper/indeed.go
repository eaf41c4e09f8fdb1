package scraper

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscrape/internal/models"
)

// IndeedSelectors locate the listing parts on an Indeed results page.
// The title is the Name element whose id is NameIDPrefix followed by the job id.
type IndeedSelectors struct {
	Container    string
	Card         string
	Outline      string
	ID           string
	IDAttr       string
	Name         string
	NameIDPrefix string
	Company      string
	Location     string
}

var DefaultIndeedSelectors = IndeedSelectors{
	Container:    "div#mosaic-provider-jobcards",
	Card:         "li.css-5lfssm.eu4oa1w0",
	Outline:      "div.cardOutline",
	ID:           "a.jcs-JobTitle",
	IDAttr:       "data-jk",
	Name:         "span[id]",
	NameIDPrefix: "jobTitle-",
	Company:      `span[data-testid="company-name"]`,
	Location:     `div[data-testid="text-location"]`,
}

// indeedPageSize is the number of results Indeed shows per page; the start parameter is an offset.
const indeedPageSize = 10

type Indeed struct {
	config    SiteConfig
	selectors IndeedSelectors
}

func NewIndeed(config SiteConfig) *Indeed {
	return &Indeed{config: config, selectors: DefaultIndeedSelectors}
}

func (i *Indeed) Name() string {
	return SiteIndeed
}

func (i *Indeed) SearchURL(params models.SearchParams) string {
	values := url.Values{}
	values.Set("q", params.Skill)
	values.Set("l", params.Location)
	values.Set("start", strconv.Itoa(params.Page*indeedPageSize))
	return searchURL(i.config.SearchURL, values)
}

func (i *Indeed) Container(doc *goquery.Document) *goquery.Selection {
	return doc.Find(i.selectors.Container).First()
}

func (i *Indeed) Cards(container *goquery.Selection) *goquery.Selection {
	return container.Find(i.selectors.Card)
}

func (i *Indeed) Record(card *goquery.Selection) (models.Job, error) {
	outline := card.Find(i.selectors.Outline).First()
	if outline.Length() == 0 {
		return models.Job{}, ErrMalformedCard
	}

	id, err := requiredAttr(outline, i.selectors.ID, i.selectors.IDAttr, "job_id")
	if err != nil {
		return models.Job{}, err
	}
	name, err := i.title(outline, id)
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", id, err)
	}
	company, err := requiredText(outline, i.selectors.Company, "company_name")
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", id, err)
	}
	location, err := requiredText(outline, i.selectors.Location, "job_location")
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", id, err)
	}

	return models.Job{
		ID:       id,
		Name:     name,
		Company:  company,
		Location: location,
		Link:     jobLink(i.config.JobURL, id),
	}, nil
}

// title compares ids as strings so job ids never end up inside a selector.
func (i *Indeed) title(outline *goquery.Selection, id string) (string, error) {
	want := i.selectors.NameIDPrefix + id
	node := outline.Find(i.selectors.Name).FilterFunction(func(_ int, s *goquery.Selection) bool {
		value, _ := s.Attr("id")
		return value == want
	}).First()
	name := strings.TrimSpace(node.Text())
	if name == "" {
		return "", missingField("job_name")
	}
	return name, nil
}
