package extract

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrLandingPage signals that the page is a site home page. Extraction is
// deliberately skipped and should not be retried for the same navigation.
var ErrLandingPage = errors.New("extract: landing page")

// ErrNotReady signals that the content container is absent, either because
// the page has not finished loading or because it is not an article. The
// caller may retry on the next trigger.
var ErrNotReady = errors.New("extract: content container not found")

// Document is the extraction result handed to renderers.
type Document struct {
	Title string
	Text  string
}

// Source is a read-only view of a rendered page.
type Source interface {
	// Location returns the page URL.
	Location() string
	// ElementByID returns the element with the given id, or nil.
	ElementByID(id string) *html.Node
}

// Extractor defines a minimal interface for content extraction strategies.
// Implementations must not mutate the source tree.
type Extractor interface {
	Extract(src Source) (Document, error)
}

// Page is a Source backed by a parsed HTML document.
type Page struct {
	URL  string
	Root *html.Node
}

// ParsePage parses an HTML document served at pageURL.
func ParsePage(pageURL string, r io.Reader) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Page{URL: pageURL, Root: root}, nil
}

// Location implements Source.
func (p *Page) Location() string { return p.URL }

// Document returns the document root.
func (p *Page) Document() *html.Node { return p.Root }

// ElementByID implements Source with a depth-first search in document order.
func (p *Page) ElementByID(id string) *html.Node {
	if p == nil || p.Root == nil || id == "" {
		return nil
	}
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.ElementNode && attr(cur, "id") == id {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil && res == nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(p.Root)
	return res
}

// FromHTML parses input and runs the default pipeline on it.
func FromHTML(pageURL string, input []byte) (Document, error) {
	page, err := ParsePage(pageURL, bytes.NewReader(input))
	if err != nil {
		return Document{}, err
	}
	return New(nil).Extract(page)
}

// FallbackExtractor runs Primary and, when it reports ErrNotReady, Fallback.
type FallbackExtractor struct {
	Primary  Extractor
	Fallback Extractor
}

func (f FallbackExtractor) Extract(src Source) (Document, error) {
	doc, err := f.Primary.Extract(src)
	if errors.Is(err, ErrNotReady) && f.Fallback != nil {
		return f.Fallback.Extract(src)
	}
	return doc, err
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode || class == "" {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// cloneTree returns a deep, detached copy of n.
func cloneTree(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneTree(child))
	}
	return c
}
