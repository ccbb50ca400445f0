// Package extract turns a rendered encyclopedia article into clean,
// paragraph-structured plain text.
//
// The pipeline runs on a detached copy of the article's content container:
// noise elements and reference sections are pruned, links are unwrapped, the
// remaining tree is composed into lines and paragraphs, and the merged text
// goes through a final normalization pass. The source tree is never mutated.
package extract

import (
	"github.com/hyperifyio/wikitext/internal/taxonomy"
)

// WikiExtractor implements Extractor for structured encyclopedia articles.
type WikiExtractor struct {
	Taxonomy *taxonomy.Taxonomy
}

// New returns a WikiExtractor using tax, or the built-in taxonomy when tax
// is nil.
func New(tax *taxonomy.Taxonomy) *WikiExtractor {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &WikiExtractor{Taxonomy: tax}
}

// Extract runs the pipeline. It returns ErrLandingPage for site home pages
// and ErrNotReady when the content container is missing; an article whose
// body yields nothing is a valid, empty result.
func (e *WikiExtractor) Extract(src Source) (Document, error) {
	tax := e.Taxonomy
	if tax == nil {
		tax = taxonomy.Default()
	}
	if tax.IsLandingPage(src.Location()) {
		return Document{}, ErrLandingPage
	}
	container := src.ElementByID(tax.ContainerID)
	if container == nil {
		return Document{}, ErrNotReady
	}

	work := cloneTree(container)
	prune(work, tax)

	doc := Document{Text: compose(work, tax)}
	if title := src.ElementByID(tax.TitleID); title != nil {
		doc.Title = cleanLine(tax, textContent(title))
	}
	return doc, nil
}
