package taxonomy

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/text/cases"
)

// Taxonomy is the set of static tables that classify article noise. A value
// is immutable once built and may be shared by concurrent extractions.
type Taxonomy struct {
	// ContainerID is the id of the element holding the article body.
	ContainerID string
	// TitleID is the id of the element holding the article title.
	TitleID string
	// HeadingClass marks a heading wrapper element.
	HeadingClass string
	// HeadlineClass marks the headline text inside a heading wrapper.
	HeadlineClass string

	selectors []string
	matchers  []cascadia.Selector
	titles    map[string]struct{}
	patterns  []*regexp.Regexp
	blocks    map[string]struct{}
	landing   []string
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the built-in taxonomy. It is built once per process.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := build(Overlay{})
		if err != nil {
			// Built-in tables are constants; a failure here is a programming error.
			panic(fmt.Sprintf("taxonomy: built-in tables invalid: %v", err))
		}
		defaultTax = t
	})
	return defaultTax
}

// Selectors returns a copy of the removable-element selectors.
func (t *Taxonomy) Selectors() []string {
	return append([]string(nil), t.selectors...)
}

// Matchers returns the compiled removable-element selectors in table order.
func (t *Taxonomy) Matchers() []cascadia.Selector {
	return t.matchers
}

// IsRemovableTitle reports whether a normalized section title names a
// section that is dropped with its body.
func (t *Taxonomy) IsRemovableTitle(title string) bool {
	_, ok := t.titles[foldTitle(title)]
	return ok
}

// IsNoiseLine reports whether a cleaned line matches a noise pattern.
func (t *Taxonomy) IsNoiseLine(line string) bool {
	for _, re := range t.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// IsBlock reports whether tag (any case) is a block-level element.
func (t *Taxonomy) IsBlock(tag string) bool {
	_, ok := t.blocks[strings.ToLower(tag)]
	return ok
}

// IsLandingPage reports whether rawURL points at a site home page. The
// percent-decoded form of rawURL is matched too, so fragments written in
// their native script match escaped URLs.
func (t *Taxonomy) IsLandingPage(rawURL string) bool {
	forms := []string{rawURL}
	if decoded, err := url.PathUnescape(rawURL); err == nil && decoded != rawURL {
		forms = append(forms, decoded)
	}
	for _, frag := range t.landing {
		for _, form := range forms {
			if strings.Contains(form, frag) {
				return true
			}
		}
	}
	return false
}

func build(o Overlay) (*Taxonomy, error) {
	t := &Taxonomy{
		ContainerID:   "mw-content-text",
		TitleID:       "firstHeading",
		HeadingClass:  "mw-heading",
		HeadlineClass: "mw-headline",
		titles:        make(map[string]struct{}, len(sectionTitles)+len(o.SectionTitles)),
		blocks:        make(map[string]struct{}, len(blockTags)),
	}

	for _, sel := range append(append([]string{}, removableSelectors...), o.Selectors...) {
		sel = strings.TrimSpace(sel)
		if sel == "" {
			continue
		}
		m, err := cascadia.Compile(sel)
		if err != nil {
			return nil, fmt.Errorf("selector %q: %w", sel, err)
		}
		t.selectors = append(t.selectors, sel)
		t.matchers = append(t.matchers, m)
	}

	for _, title := range append(append([]string{}, sectionTitles...), o.SectionTitles...) {
		if f := foldTitle(title); f != "" {
			t.titles[f] = struct{}{}
		}
	}

	for _, p := range append(append([]string{}, noiseLinePatterns...), o.NoisePatterns...) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("noise pattern %q: %w", p, err)
		}
		t.patterns = append(t.patterns, re)
	}

	for _, tag := range blockTags {
		t.blocks[tag] = struct{}{}
	}

	for _, frag := range append(append([]string{}, landingFragments...), o.LandingFragments...) {
		if frag = strings.TrimSpace(frag); frag != "" {
			t.landing = append(t.landing, frag)
		}
	}
	return t, nil
}

// foldTitle case-folds independent of language so that titles in scripts
// with special casing rules compare equal.
func foldTitle(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
