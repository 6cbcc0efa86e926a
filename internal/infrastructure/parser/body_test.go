package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyResolver_PrefersStructuredData(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `<html><head>
		<script type="application/ld+json">{"@type":"NewsArticle","articleBody":"Hello world."}</script>
	</head><body><article><p>Paragraph text that should lose.</p></article></body></html>`)

	assert.Equal(t, "Hello world.", BodyResolver{}.Resolve(doc))
}

func TestBodyResolver_IgnoresGraphContainer(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `<html><head>
		<script type="application/ld+json">{"@graph":[{"@type":"NewsArticle","articleBody":"Nested body."}]}</script>
	</head><body><p>Paragraph body.</p></body></html>`)

	assert.Equal(t, "Paragraph body.", BodyResolver{}.Resolve(doc))
}

func TestBodyResolver_EmptyArticleBodyFallsBack(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `<html><head>
		<script type="application/ld+json">{"@type":"NewsArticle","articleBody":""}</script>
	</head><body><p>First paragraph.</p></body></html>`)

	assert.Equal(t, "First paragraph.", BodyResolver{}.Resolve(doc))
}

func TestBodyResolver_ParagraphsInsideArticle(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `<body>
		<p>Outside the article.</p>
		<article>
			<p>First <b>bold</b> paragraph.</p>
			<aside><p>Sidebar promo.</p></aside>
			<figure><img src="x.png"><figcaption><p>Caption.</p></figcaption></figure>
			<p>x</p>
			<p>   </p>
			<nav><p>Next story</p></nav>
			<p>Second paragraph.</p>
			<footer><p>Footer note.</p></footer>
		</article>
		<article><p>Second article ignored.</p></article>
	</body>`)

	assert.Equal(t, "First bold paragraph.\n\nSecond paragraph.", BodyResolver{}.Resolve(doc))
}

func TestBodyResolver_WholePageWithoutArticle(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `<body>
		<div><p>One.</p></div>
		<footer><p>Copyright.</p></footer>
		<p>Two.</p>
	</body>`)

	assert.Equal(t, "One.\n\nTwo.", BodyResolver{}.Resolve(doc))
}

func TestBodyResolver_NoBody(t *testing.T) {
	t.Parallel()

	doc := mustDocument(t, `<body><h1>Only a title</h1><p>.</p></body>`)

	assert.Equal(t, "", BodyResolver{}.Resolve(doc))
}
