package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const publishedTimeProperty = "article:published_time"

var humanDateExpr = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)[\s\x{00A0}]+(\d{1,2}),[\s\x{00A0}]+(\d{4})`)

var offsetLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// TimestampResolver finds the publish instant of an article page.
type TimestampResolver struct {
	// naive is applied to ISO values that carry no offset.
	naive      *time.Location
	strategies []timestampStrategy
}

type timestampStrategy struct {
	name    string
	resolve func(doc *goquery.Document) (time.Time, bool)
}

// NewTimestampResolver builds the resolver; naive defaults to UTC.
func NewTimestampResolver(naive *time.Location) *TimestampResolver {
	if naive == nil {
		naive = time.UTC
	}
	r := &TimestampResolver{naive: naive}
	r.strategies = []timestampStrategy{
		{name: "meta", resolve: r.fromMeta},
		{name: "json-ld", resolve: r.fromStructuredData},
		{name: "time-element", resolve: r.fromTimeElement},
		{name: "page-text", resolve: fromPageText},
	}
	return r
}

// Resolve returns the first instant found by the strategies in priority order.
func (r *TimestampResolver) Resolve(doc *goquery.Document) (time.Time, bool) {
	ts, _, ok := r.ResolveWithSource(doc)
	return ts, ok
}

// ResolveWithSource is Resolve that also names the winning strategy.
func (r *TimestampResolver) ResolveWithSource(doc *goquery.Document) (time.Time, string, bool) {
	for _, strategy := range r.strategies {
		if ts, ok := strategy.resolve(doc); ok {
			return ts, strategy.name, true
		}
	}
	return time.Time{}, "", false
}

func (r *TimestampResolver) fromMeta(doc *goquery.Document) (time.Time, bool) {
	tag := doc.Find(`meta[property="` + publishedTimeProperty + `"]`).First()
	if tag.Length() == 0 {
		tag = doc.Find(`meta[name="` + publishedTimeProperty + `"]`).First()
	}
	content, ok := tag.Attr("content")
	if !ok || content == "" {
		return time.Time{}, false
	}
	return r.parseISO(content)
}

// fromStructuredData uses the first dated article object of each block. An
// unparseable date abandons the rest of that block, not the whole strategy.
func (r *TimestampResolver) fromStructuredData(doc *goquery.Document) (time.Time, bool) {
	for _, block := range newsBlocks(doc) {
		for _, obj := range block {
			published := stringField(obj, "datePublished")
			if published == "" {
				published = stringField(obj, "dateCreated")
			}
			if published == "" {
				continue
			}
			if ts, ok := r.parseISO(published); ok {
				return ts, true
			}
			break
		}
	}
	return time.Time{}, false
}

func (r *TimestampResolver) fromTimeElement(doc *goquery.Document) (time.Time, bool) {
	el := doc.Find("time").First()
	if el.Length() == 0 {
		return time.Time{}, false
	}
	if value, ok := el.Attr("datetime"); ok && value != "" {
		if ts, ok := r.parseISO(value); ok {
			return ts, true
		}
	}
	return parseHumanDate(visibleText(el))
}

// fromPageText is the lowest-confidence strategy: any date written out in the
// page body, at midnight UTC.
func fromPageText(doc *goquery.Document) (time.Time, bool) {
	return parseHumanDate(visibleText(doc.Selection))
}

// parseISO reads an ISO-8601 value. A literal "Z" means offset zero.
func (r *TimestampResolver) parseISO(value string) (time.Time, bool) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "Z", "+00:00"))
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range offsetLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	for _, layout := range naiveLayouts {
		if ts, err := time.ParseInLocation(layout, value, r.naive); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseHumanDate matches the first "Month D, YYYY" in text. Only that first
// match is considered; an impossible calendar date yields nothing.
func parseHumanDate(text string) (time.Time, bool) {
	m := humanDateExpr.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	month, err := time.Parse("January", m[1])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}

	ts := time.Date(year, month.Month(), day, 0, 0, 0, 0, time.UTC)
	if ts.Day() != day || ts.Month() != month.Month() {
		return time.Time{}, false
	}
	return ts, true
}

// isoFormat renders t like an ISO-8601 timestamp with an explicit offset,
// keeping microseconds only when present.
func isoFormat(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Format("2006-01-02T15:04:05.000000-07:00")
	}
	return t.Format("2006-01-02T15:04:05-07:00")
}
