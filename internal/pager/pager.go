package pager

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"go-pagefetch/internal/extract"
	"go-pagefetch/pkg/models"
)

// Fetcher fetches one page.
type Fetcher interface {
	Fetch(ctx context.Context, req models.PageRequest) (models.PageResponse, error)
}

// Sink defines how to persist fetched pages.
type Sink interface {
	Save(ctx context.Context, batch []models.PageResponse) error
}

// TotalPagesKey is the field read from the first page by WalkAll.
const TotalPagesKey = "total_pages"

// Pager walks page ranges one request at a time.
type Pager struct {
	fetcher   Fetcher
	sink      Sink
	batchSize int
}

// New returns a Pager. sink may be nil, in which case pages are only fetched.
func New(f Fetcher, sink Sink, batchSize int) *Pager {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Pager{fetcher: f, sink: sink, batchSize: batchSize}
}

// Walk fetches pages first..last in order. It stops at the first fetch error,
// after flushing whatever was already fetched, and returns that error.
func (p *Pager) Walk(ctx context.Context, baseURL string, first, last int) (int, error) {
	if first < 1 || last < first {
		return 0, fmt.Errorf("invalid page range %d..%d", first, last)
	}

	buffer := make([]models.PageResponse, 0, p.batchSize)
	fetched := 0

	flush := func() error {
		if len(buffer) == 0 || p.sink == nil {
			buffer = buffer[:0]
			return nil
		}
		if err := p.sink.Save(ctx, buffer); err != nil {
			return fmt.Errorf("save batch: %w", err)
		}
		log.Printf("Saved batch of %d pages", len(buffer))
		buffer = buffer[:0]
		return nil
	}

	for page := first; page <= last; page++ {
		resp, err := p.fetcher.Fetch(ctx, models.PageRequest{BaseURL: baseURL, Page: page})
		if err != nil {
			if ferr := flush(); ferr != nil {
				log.Printf("Failed to save batch: %v", ferr)
			}
			return fetched, err
		}
		fetched++

		buffer = append(buffer, resp)
		if len(buffer) >= p.batchSize {
			if err := flush(); err != nil {
				return fetched, err
			}
		}
	}

	return fetched, flush()
}

// WalkAll fetches page 1, reads total_pages from it and walks the rest.
// A body without total_pages is treated as a single page.
func (p *Pager) WalkAll(ctx context.Context, baseURL string) (int, error) {
	first, err := p.fetcher.Fetch(ctx, models.PageRequest{BaseURL: baseURL, Page: 1})
	if err != nil {
		return 0, err
	}
	if p.sink != nil {
		if err := p.sink.Save(ctx, []models.PageResponse{first}); err != nil {
			return 1, fmt.Errorf("save batch: %w", err)
		}
	}

	total := TotalPages(first.Body)
	if total <= 1 {
		return 1, nil
	}
	n, err := p.Walk(ctx, baseURL, 2, total)
	return n + 1, err
}

// TotalPages reads total_pages from a page body, defaulting to 1.
func TotalPages(body string) int {
	raw, ok := extract.Int(TotalPagesKey, body)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
