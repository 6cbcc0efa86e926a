package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ArticleCrawler/internal/domain"
	"ArticleCrawler/internal/infrastructure/httpfetch"
	"ArticleCrawler/internal/infrastructure/parser"
)

var kst = time.FixedZone("KST", 9*60*60)

type stubDiscoverer struct {
	links []string
	err   error

	gotURL   string
	gotLimit int
}

func (s *stubDiscoverer) Discover(_ context.Context, categoryURL string, limit int) ([]string, error) {
	s.gotURL = categoryURL
	s.gotLimit = limit
	return s.links, s.err
}

type stubExtractor struct {
	records map[string]domain.ArticleRecord
	fail    map[string]error
	calls   []string
}

func (s *stubExtractor) Extract(_ context.Context, url string) (domain.ArticleRecord, error) {
	s.calls = append(s.calls, url)
	if err, ok := s.fail[url]; ok {
		return domain.ArticleRecord{}, err
	}
	return s.records[url], nil
}

type sleepRecorder struct {
	calls []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.calls = append(r.calls, d)
	return nil
}

func publishedAt(url string, ts time.Time) domain.ArticleRecord {
	return domain.ArticleRecord{URL: url, PublishedAt: &ts}
}

func TestCrawl_FiltersIsolatesAndKeepsOrder(t *testing.T) {
	day := time.Date(2025, 9, 10, 0, 0, 0, 0, kst)

	discoverer := &stubDiscoverer{links: []string{"a", "b", "c", "d", "e"}}
	extractor := &stubExtractor{
		records: map[string]domain.ArticleRecord{
			"a": publishedAt("a", time.Date(2025, 9, 10, 5, 0, 0, 0, time.UTC)),
			"c": publishedAt("c", time.Date(2025, 9, 9, 10, 0, 0, 0, time.UTC)),
			"d": {URL: "d"},
			"e": publishedAt("e", time.Date(2025, 9, 9, 16, 30, 0, 0, time.UTC)),
		},
		fail: map[string]error{"b": &domain.FetchError{URL: "b", StatusCode: 500}},
	}
	sleeper := &sleepRecorder{}

	crawl := NewCrawl(CrawlDeps{
		Discoverer: discoverer,
		Extractor:  extractor,
		Location:   kst,
		Sleep:      sleeper.sleep,
	})

	result, err := crawl.Crawl(context.Background(), domain.CrawlRequest{
		CategoryURL: "https://techcrunch.com/category/ai/",
		Day:         day,
		Limit:       5,
		Delay:       700 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://techcrunch.com/category/ai/", discoverer.gotURL)
	assert.Equal(t, 5, discoverer.gotLimit)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, extractor.calls)

	assert.Equal(t, "2025-09-10", result.DateKST)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, result.Count, len(result.Items))
	assert.Equal(t, "a", result.Items[0].URL)
	assert.Equal(t, "e", result.Items[1].URL)

	assert.Len(t, sleeper.calls, 5, "pause follows every attempt")
	for _, d := range sleeper.calls {
		assert.Equal(t, 700*time.Millisecond, d)
	}
}

func TestCrawl_DayBoundaryInTargetZone(t *testing.T) {
	lateNight := time.Date(2025, 9, 10, 23, 59, 0, 0, kst)
	justAfter := time.Date(2025, 9, 11, 0, 1, 0, 0, kst)

	extractor := &stubExtractor{records: map[string]domain.ArticleRecord{
		"late":  publishedAt("late", lateNight.UTC()),
		"after": publishedAt("after", justAfter.UTC()),
	}}
	crawl := NewCrawl(CrawlDeps{
		Discoverer: &stubDiscoverer{links: []string{"late", "after"}},
		Extractor:  extractor,
		Location:   kst,
		Sleep:      (&sleepRecorder{}).sleep,
	})

	first, err := crawl.Crawl(context.Background(), domain.CrawlRequest{Day: time.Date(2025, 9, 10, 12, 0, 0, 0, kst), Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 1)
	assert.Equal(t, "late", first.Items[0].URL)

	second, err := crawl.Crawl(context.Background(), domain.CrawlRequest{Day: time.Date(2025, 9, 11, 12, 0, 0, 0, kst), Limit: 2})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "after", second.Items[0].URL)
}

func TestCrawl_DefaultsToTodayInTargetZone(t *testing.T) {
	// 2025-09-10 20:00 UTC is already 2025-09-11 in UTC+9.
	now := time.Date(2025, 9, 10, 20, 0, 0, 0, time.UTC)

	crawl := NewCrawl(CrawlDeps{
		Discoverer: &stubDiscoverer{},
		Extractor:  &stubExtractor{},
		Location:   kst,
		Now:        func() time.Time { return now },
	})

	result, err := crawl.Crawl(context.Background(), domain.CrawlRequest{Limit: 40})
	require.NoError(t, err)

	assert.Equal(t, "2025-09-11", result.DateKST)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Items)
}

func TestCrawl_DiscoveryFailureAborts(t *testing.T) {
	extractor := &stubExtractor{}
	crawl := NewCrawl(CrawlDeps{
		Discoverer: &stubDiscoverer{err: &domain.FetchError{URL: "listing", StatusCode: 503}},
		Extractor:  extractor,
		Location:   kst,
	})

	_, err := crawl.Crawl(context.Background(), domain.CrawlRequest{Limit: 40})
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, 503, fetchErr.StatusCode)
	assert.Empty(t, extractor.calls)
}

func TestCrawl_CancelledDuringPause(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	extractor := &stubExtractor{}
	crawl := NewCrawl(CrawlDeps{
		Discoverer: &stubDiscoverer{links: []string{"a", "b", "c"}},
		Extractor:  extractor,
		Location:   kst,
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return sleepContext(ctx, d)
		},
	})

	_, err := crawl.Crawl(ctx, domain.CrawlRequest{Limit: 3, Delay: time.Hour})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a"}, extractor.calls)
}

func TestSleepContext(t *testing.T) {
	t.Parallel()

	require.NoError(t, sleepContext(context.Background(), 0))
	require.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}

func TestPublishedOn(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 9, 10, 0, 0, 0, 0, kst)

	assert.False(t, PublishedOn(domain.ArticleRecord{}, day, kst))
	assert.True(t, PublishedOn(publishedAt("x", time.Date(2025, 9, 9, 15, 0, 0, 0, time.UTC)), day, kst))
	assert.False(t, PublishedOn(publishedAt("x", time.Date(2025, 9, 9, 14, 59, 0, 0, time.UTC)), day, kst))
}

func TestCrawl_LimitOneFetchesExactlyOneArticle(t *testing.T) {
	var articleHits atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/category/ai/", func(w http.ResponseWriter, r *http.Request) {
		var b strings.Builder
		for i := 1; i <= 5; i++ {
			fmt.Fprintf(&b, `<h3><a href="/2025/09/10/story-%d/">Story %d</a></h3>`, i, i)
		}
		_, _ = w.Write([]byte(b.String()))
	})
	mux.HandleFunc("/2025/", func(w http.ResponseWriter, r *http.Request) {
		articleHits.Add(1)
		_, _ = w.Write([]byte(`<html><head>
			<meta property="article:published_time" content="2025-09-01T05:00:00Z">
		</head><body><h1>Old story</h1><article><p>Body.</p></article></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := httpfetch.New(server.Client(), httpfetch.Options{})
	crawl := NewCrawl(CrawlDeps{
		Discoverer: parser.NewDiscoverer(fetcher, parser.NewLinkClassifier("techcrunch.com"), nil),
		Extractor:  parser.NewExtractor(fetcher, nil, kst, nil),
		Location:   kst,
	})

	result, err := crawl.Crawl(context.Background(), domain.CrawlRequest{
		CategoryURL: server.URL + "/category/ai/",
		Day:         time.Date(2025, 9, 10, 0, 0, 0, 0, kst),
		Limit:       1,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), articleHits.Load())
	assert.Equal(t, 0, result.Count, "the only article is from another day")
	assert.Empty(t, result.Items)
}
