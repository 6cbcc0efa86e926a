package parser

import (
	"encoding/json"

	"github.com/PuerkitoBio/goquery"
)

var newsTypes = map[string]struct{}{
	"NewsArticle": {},
	"Article":     {},
	"BlogPosting": {},
}

// newsBlocks returns, per JSON-LD script in document order, the top-level
// objects typed as articles. Blocks that are not valid JSON are skipped.
func newsBlocks(doc *goquery.Document) [][]map[string]any {
	var out [][]map[string]any

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
			return
		}
		var block []map[string]any
		for _, obj := range jsonLDCandidates(data) {
			if isNewsType(obj["@type"]) {
				block = append(block, obj)
			}
		}
		if len(block) > 0 {
			out = append(out, block)
		}
	})

	return out
}

// jsonLDCandidates wraps a single object in a list. Nested containers such
// as @graph are not searched.
func jsonLDCandidates(data any) []map[string]any {
	var items []any
	switch v := data.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil
	}

	var out []map[string]any
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// isNewsType matches a plain string @type only.
func isNewsType(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	_, ok = newsTypes[s]
	return ok
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
