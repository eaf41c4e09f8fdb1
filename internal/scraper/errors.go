package scraper

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = errors.New("scraper not implemented")
	ErrUnknownSite    = errors.New("unknown site")

	// ErrNoResults means the results container is absent from the page.
	ErrNoResults = errors.New("no results found")
	// ErrMalformedCard means a card lacks its inner detail wrapper.
	ErrMalformedCard = errors.New("malformed card")
	// ErrMissingField means a card is well formed but one of the five fields is absent or empty.
	ErrMissingField = errors.New("missing required field")

	ErrFetchFailed  = errors.New("fetch failed")
	ErrFetchTimeout = errors.New("fetch timed out")
)

func missingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
