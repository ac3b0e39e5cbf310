package fetcher

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrInvalidRequest is returned when the base URL or page number cannot form a request.
	ErrInvalidRequest = errors.New("invalid page request")
	// ErrDisallowed is returned when robots.txt forbids the page.
	ErrDisallowed = errors.New("disallowed by robots.txt")
)

// FetchError is the single error kind for a failed request/response cycle.
// Err holds the underlying cause.
type FetchError struct {
	URL  string
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch page %d from %s: %v", e.Page, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Format prints the cause's stack trace for %+v.
func (e *FetchError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "fetch page %d from %s: %+v", e.Page, e.URL, e.Err)
		return
	}
	io.WriteString(s, e.Error())
}

// StatusError reports an HTTP status of 400 or above.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d %s", e.Code, http.StatusText(e.Code))
}
