// Package collector walks the gol.gg site and turns game pages into match
// records. Page layouts live in the golgg package; this package owns network
// access, persistence and the order in which pages are visited.
package collector

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	fetchRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golstats_fetch_requests_total",
		Help: "Total number of page requests sent to the stats site",
	})

	fetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "golstats_fetch_failures_total",
		Help: "Total number of page requests that failed or returned non-2xx",
	})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "golstats_fetch_duration_seconds",
		Help:    "Duration of page requests, excluding the politeness delay",
		Buckets: prometheus.DefBuckets,
	})
)

// Fetcher retrieves and parses one page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// FetcherConfig configures an HTTPFetcher.
type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
	DelayMin  time.Duration
	DelayMax  time.Duration
	Client    *http.Client
	Logger    *zap.SugaredLogger
}

// HTTPFetcher is a Fetcher that waits a random delay before every request
// except the first. Requests are never retried.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	delayMin  time.Duration
	delayMax  time.Duration
	logger    *zap.SugaredLogger

	mu      sync.Mutex
	started bool
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewHTTPFetcher creates a fetcher from cfg.
func NewHTTPFetcher(cfg FetcherConfig) *HTTPFetcher {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &HTTPFetcher{
		client:    client,
		userAgent: cfg.UserAgent,
		delayMin:  cfg.DelayMin,
		delayMax:  cfg.DelayMax,
		logger:    logger,
		sleep:     sleepContext,
	}
}

// Fetch GETs url and parses the body as HTML.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	fetchRequests.Inc()
	start := time.Now()
	resp, err := f.client.Do(req)
	fetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		fetchFailures.Inc()
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fetchFailures.Inc()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		fetchFailures.Inc()
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	f.logger.Debugw("Fetched page", "url", url, "status", resp.StatusCode, "duration", time.Since(start))
	return doc, nil
}

func (f *HTTPFetcher) wait(ctx context.Context) error {
	f.mu.Lock()
	first := !f.started
	f.started = true
	f.mu.Unlock()

	if first {
		return nil
	}
	return f.sleep(ctx, f.delay())
}

// delay is uniform in [delayMin, delayMax].
func (f *HTTPFetcher) delay() time.Duration {
	span := f.delayMax - f.delayMin
	if span <= 0 {
		return f.delayMin
	}
	return f.delayMin + time.Duration(rand.Int64N(int64(span)+1))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
