package scraper

import (
	"errors"
	"strings"
	"testing"

	"github.com/jimezsa/jobscrape/internal/models"
)

const indeedFixture = `
<!doctype html>
<html>
<body>
<div id="mosaic-provider-jobcards">
  <ul>
    <li class="css-5lfssm eu4oa1w0">
      <div class="cardOutline tapItem">
        <h2 class="jobTitle">
          <a class="jcs-JobTitle css-jspxzf" data-jk="a1b2c3d4e5f60718" href="/rc/clk?jk=a1b2c3d4e5f60718">
            <span title="Data Analyst" id="jobTitle-a1b2c3d4e5f60718">
              Data Analyst
            </span>
          </a>
        </h2>
        <span data-testid="company-name"> Accenture </span>
        <div data-testid="text-location">Cebu City, Cebu</div>
      </div>
    </li>
    <li class="css-5lfssm eu4oa1w0">
      <div class="mosaic-zone"></div>
    </li>
    <li class="css-5lfssm eu4oa1w0">
      <div class="cardOutline">
        <h2 class="jobTitle">
          <a class="jcs-JobTitle" data-jk="9f8e7d6c5b4a3921">
            <span id="jobTitle-9f8e7d6c5b4a3921">Junior Data Analyst, Reporting</span>
          </a>
        </h2>
        <span data-testid="company-name">Lexmark</span>
        <div data-testid="text-location">
          Cebu
        </div>
      </div>
    </li>
  </ul>
</div>
</body>
</html>`

func TestIndeedSearchURL(t *testing.T) {
	site := NewIndeed(DefaultSiteConfigs()[SiteIndeed])

	cases := []struct {
		page int
		want []string
	}{
		{0, []string{"q=Data+Analyst", "l=Cebu", "start=0"}},
		{3, []string{"start=30"}},
	}
	for _, tc := range cases {
		got := site.SearchURL(models.SearchParams{Skill: "Data Analyst", Location: "Cebu", Page: tc.page})
		if !strings.HasPrefix(got, "https://ph.indeed.com/jobs?") {
			t.Fatalf("unexpected indeed base: %s", got)
		}
		if !containsAll(got, tc.want) {
			t.Fatalf("SearchURL(page %d) = %s, want parts %v", tc.page, got, tc.want)
		}
	}
}

func TestIndeedExtract(t *testing.T) {
	site := NewIndeed(DefaultSiteConfigs()[SiteIndeed])

	page, err := Extract(site, indeedFixture)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if page.Cards != 3 || page.Malformed != 1 || len(page.Skipped) != 0 {
		t.Fatalf("unexpected page counts: %+v", page)
	}
	want := []models.Job{
		{
			ID:       "a1b2c3d4e5f60718",
			Name:     "Data Analyst",
			Company:  "Accenture",
			Location: "Cebu City, Cebu",
			Link:     "https://ph.indeed.com/viewjob?jk=a1b2c3d4e5f60718",
		},
		{
			ID:       "9f8e7d6c5b4a3921",
			Name:     "Junior Data Analyst, Reporting",
			Company:  "Lexmark",
			Location: "Cebu",
			Link:     "https://ph.indeed.com/viewjob?jk=9f8e7d6c5b4a3921",
		},
	}
	if len(page.Jobs) != len(want) {
		t.Fatalf("expected %d jobs, got %d", len(want), len(page.Jobs))
	}
	for i := range want {
		if page.Jobs[i] != want[i] {
			t.Fatalf("job %d = %+v, want %+v", i, page.Jobs[i], want[i])
		}
	}
}

func TestIndeedRecordMissingField(t *testing.T) {
	html := `
<ul><li class="css-5lfssm eu4oa1w0">
  <div class="cardOutline">
    <a class="jcs-JobTitle" data-jk="abc123"><span id="jobTitle-abc123">SRE</span></a>
    <div data-testid="text-location">Cebu</div>
  </div>
</li></ul>`
	site := NewIndeed(DefaultSiteConfigs()[SiteIndeed])
	card := mustDoc(t, html).Find("li").First()

	_, err := site.Record(card)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("Record() error = %v, want ErrMissingField", err)
	}
	if !strings.Contains(err.Error(), "company_name") || !strings.Contains(err.Error(), "abc123") {
		t.Fatalf("error should carry field and id, got %q", err)
	}
}

func TestIndeedTitleMatchesIDExactly(t *testing.T) {
	html := `
<ul><li class="css-5lfssm eu4oa1w0">
  <div class="cardOutline">
    <a class="jcs-JobTitle" data-jk='ab"c\d'>
      <span id="jobTitle-ab">Wrong Title</span>
      <span id='jobTitle-ab"c\d'>Support Engineer</span>
    </a>
    <span data-testid="company-name">Teleperformance</span>
    <div data-testid="text-location">Cebu</div>
  </div>
</li></ul>`
	site := NewIndeed(DefaultSiteConfigs()[SiteIndeed])
	card := mustDoc(t, html).Find("li").First()

	job, err := site.Record(card)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if job.ID != `ab"c\d` || job.Name != "Support Engineer" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestIndeedCustomJobURL(t *testing.T) {
	site := NewIndeed(SiteConfig{SearchURL: "http://fixture.test/jobs", JobURL: "http://fixture.test/view/{id}"})
	page, err := Extract(site, indeedFixture)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if page.Jobs[0].Link != "http://fixture.test/view/a1b2c3d4e5f60718" {
		t.Fatalf("unexpected link: %s", page.Jobs[0].Link)
	}
	if got := site.SearchURL(models.SearchParams{Skill: "go"}); !strings.HasPrefix(got, "http://fixture.test/jobs?") {
		t.Fatalf("unexpected search url: %s", got)
	}
}

func containsAll(value string, parts []string) bool {
	for _, part := range parts {
		if !strings.Contains(value, part) {
			return false
		}
	}
	return true
}
