package parser

import (
	"net/url"
	"regexp"
	"strings"
)

const defaultSiteDomain = "techcrunch.com"

// datedPathExpr is the site's convention for article pages: /20YY/MM/.
var datedPathExpr = regexp.MustCompile(`/20\d{2}/\d{2}/`)

// LinkClassifier decides which hrefs point at dated article pages.
type LinkClassifier struct {
	domain string
}

// NewLinkClassifier accepts relative links and absolute links whose host
// contains siteDomain.
func NewLinkClassifier(siteDomain string) *LinkClassifier {
	siteDomain = strings.ToLower(strings.TrimSpace(siteDomain))
	if siteDomain == "" {
		siteDomain = defaultSiteDomain
	}
	return &LinkClassifier{domain: siteDomain}
}

// IsArticleURL reports whether href is a plausible article URL. Malformed
// hrefs are rejected.
func (c *LinkClassifier) IsArticleURL(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Host)
	if host != "" && !strings.Contains(host, c.domain) {
		return false
	}

	return datedPathExpr.MatchString(u.Path)
}

// NormalizeLink resolves href against baseURL. Absolute hrefs come back
// unchanged.
func NormalizeLink(href, baseURL string) (string, bool) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

// linkSet is an insertion-ordered set of URLs.
type linkSet struct {
	order []string
	seen  map[string]struct{}
}

func newLinkSet() *linkSet {
	return &linkSet{seen: map[string]struct{}{}}
}

func (s *linkSet) add(link string) {
	if _, ok := s.seen[link]; ok {
		return
	}
	s.seen[link] = struct{}{}
	s.order = append(s.order, link)
}

func (s *linkSet) len() int {
	return len(s.order)
}

// first returns up to n links in insertion order.
func (s *linkSet) first(n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n > len(s.order) {
		n = len(s.order)
	}
	out := make([]string, n)
	copy(out, s.order[:n])
	return out
}
