package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ArticleCrawler/internal/domain"
	"ArticleCrawler/internal/logging"
	"ArticleCrawler/internal/ports"
)

const dayLayout = "2006-01-02"

// CrawlDeps wires the driven adapters into the crawl use case.
type CrawlDeps struct {
	Discoverer ports.LinkDiscoverer
	Extractor  ports.ArticleExtractor
	// Location is the target timezone that defines a calendar day.
	Location *time.Location
	Logger   *slog.Logger
	// Sleep pauses between article requests. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
}

// Crawl implements the single-day category crawl.
type Crawl struct {
	discoverer ports.LinkDiscoverer
	extractor  ports.ArticleExtractor
	location   *time.Location
	logger     *slog.Logger
	sleep      func(ctx context.Context, d time.Duration) error
	now        func() time.Time
}

var _ ports.Crawler = (*Crawl)(nil)

// NewCrawl constructs the orchestration component.
func NewCrawl(deps CrawlDeps) *Crawl {
	c := &Crawl{
		discoverer: deps.Discoverer,
		extractor:  deps.Extractor,
		location:   deps.Location,
		logger:     deps.Logger,
		sleep:      deps.Sleep,
		now:        deps.Now,
	}
	if c.location == nil {
		c.location = time.UTC
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.sleep == nil {
		c.sleep = sleepContext
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Crawl discovers up to req.Limit links, extracts each one in discovery order
// and keeps the articles published on req.Day in the target timezone.
// Only a discovery failure or cancellation aborts the run.
func (c *Crawl) Crawl(ctx context.Context, req domain.CrawlRequest) (domain.CrawlResult, error) {
	day := req.Day
	if day.IsZero() {
		day = c.now()
	}
	day = day.In(c.location)

	logger := c.logger.With("run_id", uuid.NewString(), "date", day.Format(dayLayout))
	logger.Info("crawl started", "category", req.CategoryURL, "limit", req.Limit, "delay", req.Delay)

	links, err := c.discoverer.Discover(ctx, req.CategoryURL, req.Limit)
	if err != nil {
		return domain.CrawlResult{}, fmt.Errorf("discover links: %w", err)
	}

	items := make([]domain.ArticleRecord, 0, len(links))
	failed := 0
	for _, link := range links {
		record, err := c.extractor.Extract(ctx, link)
		switch {
		case err != nil:
			failed++
			logger.Warn("article skipped", "url", link, "error", err)
		case PublishedOn(record, day, c.location):
			items = append(items, record)
		default:
			logger.Debug("article outside target day", "url", link)
		}

		if err := c.sleep(ctx, req.Delay); err != nil {
			return domain.CrawlResult{}, fmt.Errorf("crawl interrupted: %w", err)
		}
	}

	logger.Info("crawl finished", "discovered", len(links), "kept", len(items), "failed", failed)

	return domain.CrawlResult{
		DateKST: day.Format(dayLayout),
		Count:   len(items),
		Items:   items,
	}, nil
}

// PublishedOn reports whether the record was published on the calendar day
// of day, both read in loc. Records without a timestamp never match.
func PublishedOn(record domain.ArticleRecord, day time.Time, loc *time.Location) bool {
	if record.PublishedAt == nil {
		return false
	}
	return sameDay(record.PublishedAt.In(loc), day.In(loc))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
