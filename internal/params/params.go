// Package params validates and defaults the invocation parameters shared by
// the CLI, the HTTP server and the Lambda handler.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ArticleCrawler/internal/domain"
)

const (
	MinLimit     = 1
	MaxLimit     = 80
	DefaultLimit = 40

	MinSleep     = 0.0
	MaxSleep     = 2.0
	DefaultSleep = 0.7

	DateLayout = "2006-01-02"
)

var (
	// ErrInvalidDate is returned for a date that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidParameter is returned for an unparsable limit, sleep or category URL.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// RawParams holds parameters exactly as they arrived. Empty means absent.
type RawParams struct {
	CategoryURL string `json:"category_url"`
	Date        string `json:"date"`
	Limit       string `json:"limit"`
	Sleep       string `json:"sleep"`
}

// Defaults apply to absent parameters.
type Defaults struct {
	CategoryURL string
	Limit       int
	Sleep       float64
}

// Parse validates raw and turns it into a crawl request. Day is left zero
// when no date was given so the crawler picks today in loc.
func Parse(raw RawParams, def Defaults, loc *time.Location) (domain.CrawlRequest, error) {
	if loc == nil {
		loc = time.UTC
	}

	req := domain.CrawlRequest{
		CategoryURL: strings.TrimSpace(raw.CategoryURL),
		Limit:       ClampLimit(orDefault(def.Limit, DefaultLimit)),
		Delay:       seconds(ClampSleep(def.Sleep)),
	}

	if req.CategoryURL == "" {
		req.CategoryURL = def.CategoryURL
	}
	if err := checkCategoryURL(req.CategoryURL); err != nil {
		return domain.CrawlRequest{}, err
	}

	if date := strings.TrimSpace(raw.Date); date != "" {
		day, err := time.ParseInLocation(DateLayout, date, loc)
		if err != nil {
			return domain.CrawlRequest{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, date)
		}
		req.Day = day
	}

	if limit := strings.TrimSpace(raw.Limit); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return domain.CrawlRequest{}, fmt.Errorf("%w: limit %q is not an integer", ErrInvalidParameter, limit)
		}
		req.Limit = ClampLimit(n)
	}

	if sleep := strings.TrimSpace(raw.Sleep); sleep != "" {
		f, err := strconv.ParseFloat(sleep, 64)
		if err != nil || math.IsNaN(f) {
			return domain.CrawlRequest{}, fmt.Errorf("%w: sleep %q is not a number", ErrInvalidParameter, sleep)
		}
		req.Delay = seconds(ClampSleep(f))
	}

	return req, nil
}

// ClampLimit bounds n to [MinLimit, MaxLimit].
func ClampLimit(n int) int {
	return max(MinLimit, min(MaxLimit, n))
}

// ClampSleep bounds s to [MinSleep, MaxSleep].
func ClampSleep(s float64) float64 {
	if math.IsNaN(s) {
		return DefaultSleep
	}
	return math.Max(MinSleep, math.Min(MaxSleep, s))
}

// MergeJSON overlays the fields present in a JSON request body onto raw.
// Numbers and strings are both accepted; a body that is not a JSON object
// leaves raw untouched.
func MergeJSON(raw RawParams, body []byte) RawParams {
	if len(strings.TrimSpace(string(body))) == 0 {
		return raw
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return raw
	}

	set := func(key string, dst *string) {
		switch v := fields[key].(type) {
		case string:
			*dst = v
		case float64:
			*dst = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			*dst = strconv.FormatBool(v)
		}
	}
	set("category_url", &raw.CategoryURL)
	set("date", &raw.Date)
	set("limit", &raw.Limit)
	set("sleep", &raw.Sleep)

	return raw
}

func checkCategoryURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: category_url %q must be an absolute http(s) URL", ErrInvalidParameter, raw)
	}
	return nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
