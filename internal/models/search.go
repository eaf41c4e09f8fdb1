package models

import "time"

// SearchParams captures the inputs used to build one search results URL.
type SearchParams struct {
	Skill    string
	Location string
	Page     int
}

// FetchOptions contains runtime options shared by page fetchers.
type FetchOptions struct {
	Headless   bool
	ChromePath string
	UserAgent  string
	Settle     time.Duration
	Proxies    []string
}
