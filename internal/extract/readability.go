package extract

import (
	"bytes"
	"fmt"
	"net/url"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/hyperifyio/wikitext/internal/taxonomy"
)

// DocumentSource is a Source that also exposes the whole document tree.
type DocumentSource interface {
	Source
	Document() *html.Node
}

// ReadabilityExtractor extracts pages that lack the article content
// container using a readability heuristic, then applies the same line
// normalization as WikiExtractor. It is meant as a Fallback.
type ReadabilityExtractor struct {
	Taxonomy *taxonomy.Taxonomy
}

func (e ReadabilityExtractor) Extract(src Source) (Document, error) {
	tax := e.Taxonomy
	if tax == nil {
		tax = taxonomy.Default()
	}
	if tax.IsLandingPage(src.Location()) {
		return Document{}, ErrLandingPage
	}
	ds, ok := src.(DocumentSource)
	if !ok || ds.Document() == nil {
		return Document{}, ErrNotReady
	}
	// Render a copy so readability's own DOM surgery cannot reach the source.
	var buf bytes.Buffer
	if err := html.Render(&buf, ds.Document()); err != nil {
		return Document{}, fmt.Errorf("render document: %w", err)
	}
	pageURL, err := url.Parse(src.Location())
	if err != nil {
		return Document{}, fmt.Errorf("parse page url: %w", err)
	}
	article, err := readability.FromReader(&buf, pageURL)
	if err != nil {
		return Document{}, fmt.Errorf("readability: %w", err)
	}
	return Document{
		Title: cleanLine(tax, article.Title),
		Text:  finalize(cleanParagraph(tax, article.TextContent)),
	}, nil
}
