package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/hyperifyio/wikitext/internal/taxonomy"
)

// role is the structural role of an element during composition.
type role int

const (
	roleTransparent role = iota
	roleHeading
	roleList
	roleDefinitionList
	roleBlock
	roleContainer
)

const (
	bullet = "• "
	indent = "  "
)

// composer collects fragments: text lines, or "" for a paragraph break.
type composer struct {
	tax       *taxonomy.Taxonomy
	fragments []string
	// containers holds block elements with structural descendants.
	containers map[*html.Node]bool
}

// compose walks the pruned tree depth-first and returns the merged text.
func compose(root *html.Node, tax *taxonomy.Taxonomy) string {
	c := &composer{tax: tax, containers: make(map[*html.Node]bool)}
	c.markContainers(root)
	c.walkContainer(goquery.NewDocumentFromNode(root).Selection)
	return c.merge()
}

// classify decides the role of an element; the first matching rule wins.
// A block element wrapping other structural elements is a container: its
// structural children are visited and the loose content between them is
// emitted as paragraphs of its own.
func (c *composer) classify(s *goquery.Selection) role {
	if s.HasClass(c.tax.HeadingClass) {
		return roleHeading
	}
	name := goquery.NodeName(s)
	switch name {
	case "ul", "ol":
		return roleList
	case "dl":
		return roleDefinitionList
	}
	if c.tax.IsBlock(name) {
		if c.containers[s.Get(0)] {
			return roleContainer
		}
		return roleBlock
	}
	return roleTransparent
}

// markContainers records, bottom-up, every element that has a structural
// descendant and reports whether n itself is structural or contains one.
func (c *composer) markContainers(n *html.Node) bool {
	inner := false
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if c.markContainers(child) {
			inner = true
		}
	}
	if inner {
		c.containers[n] = true
	}
	return inner || c.isStructural(n)
}

func (c *composer) isStructural(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return hasClass(n, c.tax.HeadingClass) || c.tax.IsBlock(n.Data)
}

func (c *composer) visit(s *goquery.Selection) {
	switch c.classify(s) {
	case roleHeading:
		text := s.Text()
		if headline := s.Find("." + c.tax.HeadlineClass).First(); headline.Length() > 0 {
			text = headline.Text()
		}
		if line := cleanLine(c.tax, text); line != "" {
			c.emit(line)
			c.paragraphBreak()
		}
	case roleList:
		s.ChildrenFiltered("li").Each(func(_ int, item *goquery.Selection) {
			if line := cleanLine(c.tax, item.Text()); line != "" {
				c.emit(bullet + line)
			}
		})
		c.paragraphBreak()
	case roleDefinitionList:
		s.ChildrenFiltered("dt, dd").Each(func(_ int, item *goquery.Selection) {
			prefix := ""
			if goquery.NodeName(item) == "dd" {
				prefix = indent
			}
			if line := cleanLine(c.tax, item.Text()); line != "" {
				c.emit(prefix + line)
			}
		})
		c.paragraphBreak()
	case roleBlock:
		if para := cleanParagraph(c.tax, s.Text()); para != "" {
			c.emit(para)
			c.paragraphBreak()
		}
	case roleContainer:
		c.walkContainer(s)
	case roleTransparent:
		s.Children().Each(func(_ int, child *goquery.Selection) {
			c.visit(child)
		})
	}
}

// walkContainer visits the structural children of s in document order.
// Text and inline elements between them are gathered into runs, and each
// run is emitted as one cleaned paragraph.
func (c *composer) walkContainer(s *goquery.Selection) {
	var run strings.Builder
	flush := func() {
		if para := cleanParagraph(c.tax, run.String()); para != "" {
			c.emit(para)
			c.paragraphBreak()
		}
		run.Reset()
	}
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		n := child.Get(0)
		switch {
		case n.Type == html.TextNode:
			run.WriteString(n.Data)
		case n.Type != html.ElementNode:
		case c.containers[n] || c.isStructural(n):
			flush()
			c.visit(child)
		default:
			run.WriteString(textContent(n))
		}
	})
	flush()
}

func (c *composer) emit(line string) { c.fragments = append(c.fragments, line) }

func (c *composer) paragraphBreak() { c.fragments = append(c.fragments, "") }

func (c *composer) merge() string {
	lines := make([]string, len(c.fragments))
	for i, f := range c.fragments {
		lines[i] = trailingBlanks.ReplaceAllString(f, "")
	}
	merged := strings.Join(lines, "\n")
	merged = blankRuns.ReplaceAllString(merged, "\n\n")
	return finalize(strings.TrimSpace(merged))
}

func textContent(n *html.Node) string {
	return goquery.NewDocumentFromNode(n).Text()
}
