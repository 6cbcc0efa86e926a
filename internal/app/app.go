package app

import (
	"context"
	"log/slog"

	"ArticleCrawler/internal/config"
	"ArticleCrawler/internal/domain"
	"ArticleCrawler/internal/infrastructure/httpfetch"
	"ArticleCrawler/internal/infrastructure/parser"
	"ArticleCrawler/internal/logging"
	"ArticleCrawler/internal/params"
	"ArticleCrawler/internal/ports"
	"ArticleCrawler/internal/usecase"
)

// Application wires configs to the crawl use case.
type Application struct {
	cfg     config.Config
	crawler *usecase.Crawl
	logger  *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := httpfetch.New(nil, httpfetch.Options{
		UserAgent:    cfg.Crawl.UserAgent,
		Timeout:      cfg.Crawl.Timeout,
		MaxBodyBytes: cfg.Crawl.MaxBodyBytes,
	})
	classifier := parser.NewLinkClassifier(cfg.Crawl.SiteDomain)

	crawler := usecase.NewCrawl(usecase.CrawlDeps{
		Discoverer: parser.NewDiscoverer(fetcher, classifier, baseLogger.With("component", "discoverer")),
		Extractor: parser.NewExtractor(
			fetcher,
			parser.NewTimestampResolver(nil),
			cfg.Location(),
			baseLogger.With("component", "extractor"),
		),
		Location: cfg.Location(),
		Logger:   baseLogger.With("component", "crawl"),
	})

	return &Application{cfg: cfg, crawler: crawler, logger: baseLogger}
}

// Crawler exposes the wired crawl use case to the entry points.
func (a *Application) Crawler() ports.Crawler {
	return a.crawler
}

// Defaults returns the parameter defaults taken from configuration.
func (a *Application) Defaults() params.Defaults {
	return params.Defaults{
		CategoryURL: a.cfg.Crawl.CategoryURL,
		Limit:       a.cfg.Crawl.DefaultLimit,
		Sleep:       a.cfg.Crawl.SleepSeconds(),
	}
}

// Run validates raw parameters and performs one crawl.
func (a *Application) Run(ctx context.Context, raw params.RawParams) (domain.CrawlResult, error) {
	req, err := params.Parse(raw, a.Defaults(), a.cfg.Location())
	if err != nil {
		return domain.CrawlResult{}, err
	}
	return a.crawler.Crawl(ctx, req)
}
