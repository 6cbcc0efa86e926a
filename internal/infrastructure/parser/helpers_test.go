package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"ArticleCrawler/internal/domain"
)

// pageFetcher serves canned pages and records every requested URL.
type pageFetcher struct {
	pages     map[string]string
	requested []string
}

func (f *pageFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.requested = append(f.requested, url)
	page, ok := f.pages[url]
	if !ok {
		return nil, &domain.FetchError{URL: url, StatusCode: 404}
	}
	return []byte(page), nil
}

func mustDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}
