package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ArticleCrawler/internal/domain"
	"ArticleCrawler/internal/ports"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultMaxBodyBytes = 10 << 20
)

// ErrBodyTooLarge is wrapped in the FetchError for a page over the size cap.
var ErrBodyTooLarge = errors.New("response body too large")

// Options tune the outbound request.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// Fetcher issues single GET requests with a fixed browser-like header set.
// There are no retries; every failure is a *domain.FetchError.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

var _ ports.Fetcher = (*Fetcher)(nil)

// New wires an HTTP client; a nil client gets one with the configured timeout.
func New(client *http.Client, opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Fetcher{
		client:       client,
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

// Fetch returns the raw response body of url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("build request: %w", err)}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, f.maxBodyBytes)}
	}

	return body, nil
}
