package models

import "time"

// PageRequest identifies one page of a paginated endpoint.
type PageRequest struct {
	BaseURL string
	Page    int
}

// PageResponse is the raw body of one page plus what we learned fetching it.
type PageResponse struct {
	URL        string
	Page       int
	Body       string
	StatusCode int
	LoadTime   time.Duration
	FetchedAt  time.Time
}
