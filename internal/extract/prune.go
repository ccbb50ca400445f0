package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/hyperifyio/wikitext/internal/taxonomy"
)

var (
	bracketed   = regexp.MustCompile(`\[[^\]]*\]`)
	titleColons = regexp.MustCompile(`[：:]`)
)

// prune removes noise from the working copy rooted at root, in place.
func prune(root *html.Node, tax *taxonomy.Taxonomy) {
	removeNoise(root, tax)
	removeSections(root, tax)
	unwrapLinks(root)
}

func removeNoise(root *html.Node, tax *taxonomy.Taxonomy) {
	doc := goquery.NewDocumentFromNode(root)
	for _, m := range tax.Matchers() {
		doc.FindMatcher(m).Remove()
	}
}

// removeSections drops every section whose heading title is removable. The
// sweep ends at the next heading of any level, so nested subsections of a
// removed section go with it.
func removeSections(root *html.Node, tax *taxonomy.Taxonomy) {
	goquery.NewDocumentFromNode(root).Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		h := s.Get(0)
		if !attached(h, root) {
			return
		}
		if !tax.IsRemovableTitle(normalizeTitle(s.Text())) {
			return
		}
		// A heading wrapper carries the heading; its siblings are the section body.
		anchor := h
		if p := h.Parent; p != root && hasClass(p, tax.HeadingClass) {
			anchor = p
		}
		parent := anchor.Parent
		for cur := anchor.NextSibling; cur != nil && !isSectionBoundary(cur, tax); {
			next := cur.NextSibling
			parent.RemoveChild(cur)
			cur = next
		}
		parent.RemoveChild(anchor)
	})
}

// unwrapLinks replaces every anchor with its own children.
func unwrapLinks(root *html.Node) {
	for _, a := range goquery.NewDocumentFromNode(root).Find("a").Nodes {
		parent := a.Parent
		if parent == nil {
			continue
		}
		for c := a.FirstChild; c != nil; c = a.FirstChild {
			a.RemoveChild(c)
			parent.InsertBefore(c, a)
		}
		parent.RemoveChild(a)
	}
}

// normalizeTitle strips bracketed markers and colons from a heading text.
// Case folding happens in the taxonomy lookup.
func normalizeTitle(s string) string {
	s = bracketed.ReplaceAllString(s, "")
	s = titleColons.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch strings.ToLower(n.Data) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func isSectionBoundary(n *html.Node, tax *taxonomy.Taxonomy) bool {
	return isHeading(n) || hasClass(n, tax.HeadingClass)
}

func attached(n, root *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}
