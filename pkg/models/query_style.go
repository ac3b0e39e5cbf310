package models

import "fmt"

// QueryStyle selects how the page parameter is appended to a base URL.
type QueryStyle int

const (
	// QueryLegacy appends "?&page=<n>" verbatim.
	QueryLegacy QueryStyle = iota
	// QueryNormalized sets page through the URL's query values.
	QueryNormalized
)

func (q QueryStyle) String() string {
	switch q {
	case QueryNormalized:
		return "normalized"
	default:
		return "legacy"
	}
}

// ParseQueryStyle maps a config value to a QueryStyle. Empty means legacy.
func ParseQueryStyle(s string) (QueryStyle, error) {
	switch s {
	case "", "legacy":
		return QueryLegacy, nil
	case "normalized":
		return QueryNormalized, nil
	default:
		return QueryLegacy, fmt.Errorf("unknown query style %q", s)
	}
}
