package fetcher

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

// DomainManager keeps per-host politeness state: a rate limiter and, when
// enabled, the robots.txt group that applies to our agent.
type DomainManager struct {
	mu          sync.Mutex
	interval    time.Duration
	agent       string
	checkRobots bool
	client      *http.Client
	limiters    map[string]*rate.Limiter
	robotsCache map[string]*robotstxt.Group
}

// NewDomainManager allows one request per interval per host. A zero interval
// disables limiting. robots.txt is only consulted when checkRobots is set.
func NewDomainManager(interval time.Duration, agent string, checkRobots bool, client *http.Client) *DomainManager {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &DomainManager{
		interval:    interval,
		agent:       agent,
		checkRobots: checkRobots,
		client:      client,
		limiters:    make(map[string]*rate.Limiter),
		robotsCache: make(map[string]*robotstxt.Group),
	}
}

func (d *DomainManager) Wait(ctx context.Context, targetURL string) error {
	if d.interval <= 0 {
		return nil
	}
	u, err := url.Parse(targetURL)
	if err != nil {
		return err
	}

	d.mu.Lock()
	limiter, exists := d.limiters[u.Host]
	if !exists {
		// burst 1: first request goes straight through
		limiter = rate.NewLimiter(rate.Every(d.interval), 1)
		d.limiters[u.Host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

func (d *DomainManager) IsAllowed(ctx context.Context, link string) bool {
	if !d.checkRobots {
		return true
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	group, exists := d.robotsCache[u.Host]
	if !exists {
		group = d.loadRobots(ctx, u)
		d.robotsCache[u.Host] = group
	}

	if group == nil {
		return true // no robots.txt or parse error
	}
	return group.Test(u.Path)
}

func (d *DomainManager) loadRobots(ctx context.Context, u *url.URL) *robotstxt.Group {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.Scheme+"://"+u.Host+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	if d.agent != "" {
		req.Header.Set("User-Agent", d.agent)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	agent := d.agent
	if agent == "" {
		agent = "*"
	}
	return data.FindGroup(agent)
}
