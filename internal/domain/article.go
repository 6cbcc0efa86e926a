package domain

import "time"

// ArticleRecord is the structured result extracted from one article page.
type ArticleRecord struct {
	URL          string  `json:"url"`
	Title        string  `json:"title"`
	PublishedUTC *string `json:"published_utc"`
	PublishedKST *string `json:"published_kst"`
	Body         string  `json:"body"`

	// PublishedAt is the resolved instant behind both published fields.
	PublishedAt *time.Time `json:"-"`
}

// CrawlResult is the payload returned for one crawl invocation.
type CrawlResult struct {
	DateKST string          `json:"date_kst"`
	Count   int             `json:"count"`
	Items   []ArticleRecord `json:"items"`
}

// CrawlRequest carries the validated parameters of a single crawl.
type CrawlRequest struct {
	CategoryURL string
	// Day is a calendar day in the target timezone; the zero value means today.
	Day   time.Time
	Limit int
	Delay time.Duration
}
