package parser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"ArticleCrawler/internal/ports"
)

// Discoverer collects candidate article links from a category listing page.
type Discoverer struct {
	fetcher    ports.Fetcher
	classifier *LinkClassifier
	logger     *slog.Logger
}

var _ ports.LinkDiscoverer = (*Discoverer)(nil)

// NewDiscoverer wires the fetcher and the classifier used for both passes.
func NewDiscoverer(fetcher ports.Fetcher, classifier *LinkClassifier, log *slog.Logger) *Discoverer {
	if classifier == nil {
		classifier = NewLinkClassifier("")
	}
	return &Discoverer{
		fetcher:    fetcher,
		classifier: classifier,
		logger:     log,
	}
}

// Discover returns up to limit unique article URLs in discovery order.
// Headline links (first anchor of each h3) come first; the remaining anchors
// of the page only top the set up when headlines alone are not enough.
func (d *Discoverer) Discover(ctx context.Context, categoryURL string, limit int) ([]string, error) {
	doc, err := fetchDocument(ctx, d.fetcher, categoryURL)
	if err != nil {
		return nil, fmt.Errorf("category page: %w", err)
	}

	links := newLinkSet()

	doc.Find("h3").Each(func(_ int, h3 *goquery.Selection) {
		anchor := h3.Find("a[href]").First()
		if anchor.Length() == 0 {
			return
		}
		href, _ := anchor.Attr("href")
		d.collect(links, href, categoryURL)
	})
	headlines := links.len()

	if links.len() < limit {
		doc.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
			href, _ := anchor.Attr("href")
			d.collect(links, href, categoryURL)
			return links.len() < limit
		})
	}

	result := links.first(limit)
	d.debug("discovered links", "category", categoryURL, "headline_links", headlines, "total", links.len(), "returned", len(result))
	return result, nil
}

func (d *Discoverer) collect(links *linkSet, href, base string) {
	if !d.classifier.IsArticleURL(href) {
		return
	}
	if link, ok := NormalizeLink(href, base); ok {
		links.add(link)
	}
}

func (d *Discoverer) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
