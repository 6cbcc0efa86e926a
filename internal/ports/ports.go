package ports

import (
	"context"

	"ArticleCrawler/internal/domain"
)

// Fetcher retrieves the raw body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// LinkDiscoverer enumerates candidate article URLs on a listing page.
type LinkDiscoverer interface {
	Discover(ctx context.Context, categoryURL string, limit int) ([]string, error)
}

// ArticleExtractor turns one article URL into a record.
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) (domain.ArticleRecord, error)
}

// Crawler runs a complete crawl for one request.
type Crawler interface {
	Crawl(ctx context.Context, req domain.CrawlRequest) (domain.CrawlResult, error)
}
