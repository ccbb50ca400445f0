package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hyperifyio/wikitext/internal/taxonomy"
)

var (
	// whitespace includes Unicode space separators such as NBSP and U+3000.
	whitespace     = regexp.MustCompile(`[\s\x0B\p{Zs}\x{FEFF}\x{2028}\x{2029}]+`)
	footnoteMarker = regexp.MustCompile(`\[\d+\]`)
	editorialNote  = regexp.MustCompile(`\(\s*注释\s*\d+\s*\)`)
	trailingBlanks = regexp.MustCompile(`(?m)[ \t]+$`)
	blanksBeforeNL = regexp.MustCompile(`[ \t]+\n`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)
)

// cleanLine normalizes one line. It returns "" for empty or noise lines.
func cleanLine(tax *taxonomy.Taxonomy, raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	s = whitespace.ReplaceAllString(s, " ")
	s = footnoteMarker.ReplaceAllString(s, "")
	s = editorialNote.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" || tax.IsNoiseLine(s) {
		return ""
	}
	return s
}

// cleanParagraph cleans every line of raw and drops the empty ones.
func cleanParagraph(tax *taxonomy.Taxonomy, raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.ReplaceAll(raw, "\u00a0", " ")
	raw = strings.ReplaceAll(raw, "\r", "")
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if cleaned := cleanLine(tax, line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return strings.Join(out, "\n")
}

// finalize is the pass over the fully merged text.
func finalize(text string) string {
	text = blanksBeforeNL.ReplaceAllString(text, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = spaceScripts(text)
	return strings.TrimSpace(text)
}

// spaceScripts removes blanks between two CJK characters and leaves exactly
// one space at every CJK/Latin boundary, inserting one when there is none.
func spaceScripts(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(runes); {
		r := runes[i]
		if r != ' ' && r != '\t' {
			b.WriteRune(r)
			if i+1 < len(runes) && mixedScripts(r, runes[i+1]) {
				b.WriteByte(' ')
			}
			i++
			continue
		}
		j := i
		for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t') {
			j++
		}
		if i > 0 && j < len(runes) {
			prev, next := runes[i-1], runes[j]
			switch {
			case isCJK(prev) && isCJK(next):
				i = j
				continue
			case mixedScripts(prev, next):
				b.WriteByte(' ')
				i = j
				continue
			}
		}
		b.WriteString(string(runes[i:j]))
		i = j
	}
	return b.String()
}

func mixedScripts(a, b rune) bool {
	return (isCJK(a) && isLatin(b)) || (isLatin(a) && isCJK(b))
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana)
}

func isLatin(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
