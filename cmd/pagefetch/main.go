package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-pagefetch/internal/config"
	"go-pagefetch/internal/fetcher"
	"go-pagefetch/internal/pager"
	"go-pagefetch/internal/storage"
)

type options struct {
	cfg    *config.Config
	last   int  // last page of a range; 0 means just cfg.Page
	all    bool // follow total_pages from page 1
	stdout io.Writer
	stderr io.Writer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Flags override the environment (./pagefetch -url=http://... -page=2)
	flag.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "Base URL of the paginated endpoint")
	flag.IntVar(&cfg.Page, "page", cfg.Page, "Page to fetch (1-based)")
	last := flag.Int("to", 0, "Fetch every page from -page up to this one")
	all := flag.Bool("all", false, "Fetch every page, reading total_pages from page 1")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{cfg: cfg, last: *last, all: *all, stdout: os.Stdout, stderr: os.Stderr}
	if err := run(ctx, opts); err != nil {
		log.Fatalf("setup failed: %v", err)
	}
}

// run only returns setup errors. Fetch errors are printed to stderr and
// swallowed so the process still exits 0.
func run(ctx context.Context, opts options) error {
	cfg := opts.cfg
	client := &http.Client{Timeout: cfg.Timeout}

	f := fetcher.New(
		fetcher.WithHTTPClient(client),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithEcho(opts.stdout),
		fetcher.WithQueryStyle(cfg.Style()),
		fetcher.WithCharsetDetection(cfg.DetectCharset),
		fetcher.WithDomainManager(fetcher.NewDomainManager(cfg.RateLimit, cfg.UserAgent, cfg.RespectRobots, client)),
	)

	var sink pager.Sink
	if cfg.DatabaseURL != "" {
		store, err := storage.Open(ctx, cfg.DatabaseURL, 10, 2*time.Second)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sink = storage.NewPageSink(store)
	}

	p := pager.New(f, sink, cfg.BatchSize)

	var err error
	switch {
	case opts.all:
		var n int
		n, err = p.WalkAll(ctx, cfg.BaseURL)
		log.Printf("Fetched %d pages", n)
	case opts.last > cfg.Page:
		var n int
		n, err = p.Walk(ctx, cfg.BaseURL, cfg.Page, opts.last)
		log.Printf("Fetched %d pages", n)
	case sink != nil:
		_, err = p.Walk(ctx, cfg.BaseURL, cfg.Page, cfg.Page)
	default:
		_, err = f.FetchPage(ctx, cfg.BaseURL, cfg.Page)
	}

	if err != nil {
		fmt.Fprintf(opts.stderr, "%+v\n", err)
	}
	return nil
}
