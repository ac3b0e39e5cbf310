package fetcher

import (
	"fmt"
	"net/url"
	"strconv"

	"go-pagefetch/pkg/models"
)

// BuildPageURL appends the page parameter to baseURL.
//
// QueryLegacy keeps the historical "?&page=<n>" suffix even though it doubles the
// separator; servers we talk to tolerate the empty leading parameter.
// QueryNormalized merges page into any existing query.
func BuildPageURL(baseURL string, page int, style models.QueryStyle) (string, error) {
	if page < 1 {
		return "", fmt.Errorf("%w: page %d is not positive", ErrInvalidRequest, page)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidRequest, baseURL)
	}

	if style == models.QueryNormalized {
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	return baseURL + "?&page=" + strconv.Itoa(page), nil
}
