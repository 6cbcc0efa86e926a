package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	minParagraphRunes = 2
	paragraphSep      = "\n\n"
	excludedRegions   = "aside, figcaption, nav, footer"
)

// BodyResolver extracts the article text. An empty string means no body
// was found.
type BodyResolver struct{}

// Resolve prefers the JSON-LD articleBody and falls back to paragraphs.
func (BodyResolver) Resolve(doc *goquery.Document) string {
	if body, ok := bodyFromStructuredData(doc); ok {
		return body
	}
	return bodyFromParagraphs(doc)
}

func bodyFromStructuredData(doc *goquery.Document) (string, bool) {
	for _, block := range newsBlocks(doc) {
		for _, obj := range block {
			if body := stringField(obj, "articleBody"); body != "" {
				return body, true
			}
		}
	}
	return "", false
}

// bodyFromParagraphs joins the paragraphs of the first <article> (or of the
// whole page) that are not part of sidebars, captions, navigation or footers.
func bodyFromParagraphs(doc *goquery.Document) string {
	container := doc.Find("article").First()
	if container.Length() == 0 {
		container = doc.Selection
	}

	var paragraphs []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if p.ParentsFiltered(excludedRegions).Length() > 0 {
			return
		}
		text := visibleText(p)
		if utf8.RuneCountInString(text) < minParagraphRunes {
			return
		}
		paragraphs = append(paragraphs, text)
	})

	return strings.Join(paragraphs, paragraphSep)
}
