package scraper

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscrape/internal/models"
)

// MynimoSelectors locate the listing parts on a Mynimo results page.
// The job id is the IDSegment-th path segment of the card href.
type MynimoSelectors struct {
	Container string
	Card      string
	IDSegment int
	Name      string
	Company   string
	Location  string
}

var DefaultMynimoSelectors = MynimoSelectors{
	Container: `div[data-chakra-component="CStack"].css-j7qwjs.css-0`,
	Card:      `a[data-chakra-component="CPseudoBox"].href-button.css-h9szfi`,
	IDSegment: 2,
	Name:      `p[data-chakra-component="CText"].href-button.css-qkcbob`,
	Company:   "h5.company-name-text",
	Location:  `p[data-chakra-component="CText"].css-6of238`,
}

type Mynimo struct {
	config    SiteConfig
	selectors MynimoSelectors
}

func NewMynimo(config SiteConfig) *Mynimo {
	return &Mynimo{config: config, selectors: DefaultMynimoSelectors}
}

func (m *Mynimo) Name() string {
	return SiteMynimo
}

// SearchURL uses the page index directly as the page number.
func (m *Mynimo) SearchURL(params models.SearchParams) string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(params.Page))
	values.Set("search_by", "content")
	values.Set("keyword", params.Skill)
	values.Set("region_name", strings.ToLower(strings.TrimSpace(params.Location)))
	values.Set("category_name_pretty", "")
	values.Set("searchType", "")
	return searchURL(m.config.SearchURL, values)
}

func (m *Mynimo) Container(doc *goquery.Document) *goquery.Selection {
	return doc.Find(m.selectors.Container).First()
}

func (m *Mynimo) Cards(container *goquery.Selection) *goquery.Selection {
	return container.Find(m.selectors.Card)
}

func (m *Mynimo) Record(card *goquery.Selection) (models.Job, error) {
	href, _ := card.Attr("href")
	id := pathSegment(href, m.selectors.IDSegment)
	if id == "" {
		return models.Job{}, missingField("job_id")
	}

	name, err := requiredText(card, m.selectors.Name, "job_name")
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", id, err)
	}
	companyNode, err := requiredNode(card, m.selectors.Company, "company_name")
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", id, err)
	}
	company := lastNodeText(companyNode)
	if company == "" {
		return models.Job{}, fmt.Errorf("%s: %w", id, missingField("company_name"))
	}
	location, err := requiredText(card, m.selectors.Location, "job_location")
	if err != nil {
		return models.Job{}, fmt.Errorf("%s: %w", id, err)
	}

	return models.Job{
		ID:       id,
		Name:     name,
		Company:  company,
		Location: location,
		Link:     jobLink(m.config.JobURL, id),
	}, nil
}
