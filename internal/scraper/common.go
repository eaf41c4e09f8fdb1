package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobscrape/internal/models"
)

var exampleParams = models.SearchParams{Skill: "developer", Location: "Cebu"}

func requiredNode(scope *goquery.Selection, selector, field string) (*goquery.Selection, error) {
	node := scope.Find(selector).First()
	if node.Length() == 0 {
		return nil, missingField(field)
	}
	return node, nil
}

func requiredText(scope *goquery.Selection, selector, field string) (string, error) {
	node, err := requiredNode(scope, selector, field)
	if err != nil {
		return "", err
	}
	value := strings.TrimSpace(node.Text())
	if value == "" {
		return "", missingField(field)
	}
	return value, nil
}

func requiredAttr(scope *goquery.Selection, selector, attr, field string) (string, error) {
	node, err := requiredNode(scope, selector, field)
	if err != nil {
		return "", err
	}
	value, ok := node.Attr(attr)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", missingField(field)
	}
	return value, nil
}

// lastNodeText returns the trimmed text of the last child node, which may be a bare text node.
func lastNodeText(node *goquery.Selection) string {
	return strings.TrimSpace(node.Contents().Last().Text())
}

func jobLink(template, id string) string {
	return strings.ReplaceAll(template, "{id}", url.PathEscape(id))
}

func searchURL(base string, values url.Values) string {
	if strings.Contains(base, "?") {
		return base + "&" + values.Encode()
	}
	return base + "?" + values.Encode()
}

// pathSegment returns the n-th non-empty segment of an href path.
func pathSegment(href string, n int) string {
	parsed, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	var segments []string
	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if n < 0 || n >= len(segments) {
		return ""
	}
	return segments[n]
}
