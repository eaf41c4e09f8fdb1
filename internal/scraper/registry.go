package scraper

import (
	"fmt"
	"sort"
	"strings"
)

const (
	SiteIndeed    = "indeed"
	SiteMynimo    = "mynimo"
	SiteJobStreet = "jobstreet"
)

// SiteConfig holds the URL templates of a site. JobURL contains an {id} placeholder.
type SiteConfig struct {
	SearchURL string
	JobURL    string
}

// planned lists site names accepted by the CLI that have no adapter yet.
var planned = []string{SiteJobStreet}

func DefaultSiteConfigs() map[string]SiteConfig {
	return map[string]SiteConfig{
		SiteIndeed: {
			SearchURL: "https://ph.indeed.com/jobs",
			JobURL:    "https://ph.indeed.com/viewjob?jk={id}",
		},
		SiteMynimo: {
			SearchURL: "https://www.mynimo.com/cebu-jobs/search",
			JobURL:    "https://www.mynimo.com/jobs/view/{id}",
		},
	}
}

// Registry builds the site adapters, applying non-empty overrides on top of the defaults.
func Registry(overrides map[string]SiteConfig) map[string]Site {
	configs := DefaultSiteConfigs()
	for name, override := range overrides {
		name = NormalizeSite(name)
		base, ok := configs[name]
		if !ok {
			continue
		}
		if strings.TrimSpace(override.SearchURL) != "" {
			base.SearchURL = strings.TrimSpace(override.SearchURL)
		}
		if strings.TrimSpace(override.JobURL) != "" {
			base.JobURL = strings.TrimSpace(override.JobURL)
		}
		configs[name] = base
	}

	return map[string]Site{
		SiteIndeed: NewIndeed(configs[SiteIndeed]),
		SiteMynimo: NewMynimo(configs[SiteMynimo]),
	}
}

// Lookup resolves a site name. Planned sites return ErrNotImplemented, anything else ErrUnknownSite.
func Lookup(registry map[string]Site, name string) (Site, error) {
	name = NormalizeSite(name)
	if site, ok := registry[name]; ok {
		return site, nil
	}
	for _, p := range planned {
		if p == name {
			return nil, fmt.Errorf("%s: %w", name, ErrNotImplemented)
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnknownSite)
}

// SiteStatus describes one site name known to the CLI.
type SiteStatus struct {
	Name        string `json:"name"`
	Implemented bool   `json:"implemented"`
	SearchURL   string `json:"search_url,omitempty"`
}

func Statuses(registry map[string]Site) []SiteStatus {
	out := make([]SiteStatus, 0, len(registry)+len(planned))
	for name, site := range registry {
		out = append(out, SiteStatus{
			Name:        name,
			Implemented: true,
			SearchURL:   site.SearchURL(exampleParams),
		})
	}
	for _, name := range planned {
		out = append(out, SiteStatus{Name: name})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

func NormalizeSite(site string) string {
	site = strings.ToLower(strings.TrimSpace(site))
	site = strings.TrimPrefix(site, "www.")
	for _, suffix := range []string{".com.ph", ".com"} {
		site = strings.TrimSuffix(site, suffix)
	}
	site = strings.TrimPrefix(site, "ph.")
	return site
}
