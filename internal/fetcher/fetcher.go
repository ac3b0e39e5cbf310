package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go-pagefetch/pkg/models"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
)

// PageFetcher downloads single pages of a paginated endpoint as text.
type PageFetcher struct {
	client        *http.Client
	userAgent     string
	echo          io.Writer
	queryStyle    models.QueryStyle
	detectCharset bool
	domains       *DomainManager
}

type Option func(*PageFetcher)

// WithHTTPClient replaces the default client, which has no timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(f *PageFetcher) { f.client = c }
}

// WithUserAgent sets the User-Agent header. Empty sends no header.
func WithUserAgent(ua string) Option {
	return func(f *PageFetcher) { f.userAgent = ua }
}

// WithEcho prints every fetched body to w before it is returned.
func WithEcho(w io.Writer) Option {
	return func(f *PageFetcher) { f.echo = w }
}

func WithQueryStyle(style models.QueryStyle) Option {
	return func(f *PageFetcher) { f.queryStyle = style }
}

// WithCharsetDetection decodes using the Content-Type charset instead of assuming UTF-8.
func WithCharsetDetection(enabled bool) Option {
	return func(f *PageFetcher) { f.detectCharset = enabled }
}

func WithDomainManager(d *DomainManager) Option {
	return func(f *PageFetcher) { f.domains = d }
}

func New(opts ...Option) *PageFetcher {
	f := &PageFetcher{client: &http.Client{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPage returns the body of baseURL's page as a string.
func (f *PageFetcher) FetchPage(ctx context.Context, baseURL string, page int) (string, error) {
	resp, err := f.Fetch(ctx, models.PageRequest{BaseURL: baseURL, Page: page})
	if err != nil {
		return "", err
	}
	return resp.Body, nil
}

// Fetch performs one GET for req and reads the whole body.
// Every failure is a *FetchError.
func (f *PageFetcher) Fetch(ctx context.Context, req models.PageRequest) (models.PageResponse, error) {
	target, err := BuildPageURL(req.BaseURL, req.Page, f.queryStyle)
	if err != nil {
		return models.PageResponse{Page: req.Page}, fail(req.BaseURL, req.Page, err)
	}
	page := models.PageResponse{URL: target, Page: req.Page}

	if f.domains != nil {
		if !f.domains.IsAllowed(ctx, target) {
			return page, fail(target, req.Page, ErrDisallowed)
		}
		if err := f.domains.Wait(ctx, target); err != nil {
			return page, fail(target, req.Page, fmt.Errorf("rate limit: %w", err))
		}
	}

	start := time.Now()
	resp, err := f.Open(ctx, target)
	if err != nil {
		return page, fail(target, req.Page, err)
	}
	defer resp.Body.Close()

	page.StatusCode = resp.StatusCode
	if resp.StatusCode >= http.StatusBadRequest {
		return page, fail(target, req.Page, &StatusError{Code: resp.StatusCode})
	}

	text, err := f.readText(resp.Body, resp.Header.Get("Content-Type"))
	page.LoadTime = time.Since(start)
	if err != nil {
		return page, fail(target, req.Page, err)
	}
	page.Body = text
	page.FetchedAt = time.Now()

	if f.echo != nil {
		fmt.Fprintln(f.echo, text)
	}
	return page, nil
}

// Open sends the GET request. The caller owns and must close the response body.
func (f *PageFetcher) Open(ctx context.Context, targetURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (f *PageFetcher) readText(r io.Reader, contentType string) (string, error) {
	var decoded io.Reader
	if f.detectCharset {
		cr, err := charset.NewReader(r, contentType)
		if err != nil {
			return "", fmt.Errorf("detect charset: %w", err)
		}
		decoded = cr
	} else {
		decoded = unicode.UTF8.NewDecoder().Reader(r)
	}

	b, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(b), nil
}

func fail(url string, page int, err error) error {
	return &FetchError{URL: url, Page: page, Err: errors.WithStack(err)}
}
