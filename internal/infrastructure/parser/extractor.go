package parser

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ArticleCrawler/internal/domain"
	"ArticleCrawler/internal/ports"
)

// Extractor builds one ArticleRecord per article page.
type Extractor struct {
	fetcher    ports.Fetcher
	timestamps *TimestampResolver
	bodies     BodyResolver
	location   *time.Location
	logger     *slog.Logger
}

var _ ports.ArticleExtractor = (*Extractor)(nil)

// NewExtractor wires the fetcher, the timestamp resolver and the target
// timezone used for the secondary published field.
func NewExtractor(fetcher ports.Fetcher, timestamps *TimestampResolver, location *time.Location, log *slog.Logger) *Extractor {
	if timestamps == nil {
		timestamps = NewTimestampResolver(time.UTC)
	}
	if location == nil {
		location = time.UTC
	}
	return &Extractor{
		fetcher:    fetcher,
		timestamps: timestamps,
		location:   location,
		logger:     log,
	}
}

// Extract fetches and parses pageURL. Fetch and parse failures are returned
// unchanged; missing fields are not errors.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (domain.ArticleRecord, error) {
	doc, err := fetchDocument(ctx, e.fetcher, pageURL)
	if err != nil {
		return domain.ArticleRecord{}, err
	}
	return e.fromDocument(pageURL, doc), nil
}

func (e *Extractor) fromDocument(pageURL string, doc *goquery.Document) domain.ArticleRecord {
	record := domain.ArticleRecord{
		URL:   pageURL,
		Title: visibleText(doc.Find("h1").First()),
		Body:  strings.TrimSpace(e.bodies.Resolve(doc)),
	}

	ts, source, ok := e.timestamps.ResolveWithSource(doc)
	if ok {
		utc := isoFormat(ts.UTC())
		local := isoFormat(ts.In(e.location))
		record.PublishedUTC = &utc
		record.PublishedKST = &local
		record.PublishedAt = &ts
	}

	if e.logger != nil {
		e.logger.Debug("article extracted", "url", pageURL, "timestamp_source", source, "has_timestamp", ok, "body_len", len(record.Body))
	}
	return record
}
