// Package stats computes the display statistics shown next to extracted text.
package stats

import (
	"regexp"
	"strings"
	"unicode"
)

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// Stats summarizes a text blob.
type Stats struct {
	Paragraphs int `json:"paragraphs"`
	Characters int `json:"characters"`
	Words      int `json:"words"`
}

// Compute counts paragraphs (pieces between blank lines), non-whitespace
// characters and whitespace-separated words.
func Compute(text string) Stats {
	if text == "" {
		return Stats{}
	}
	var s Stats
	for _, p := range paragraphBreak.Split(text, -1) {
		if p != "" {
			s.Paragraphs++
		}
	}
	for _, r := range text {
		if !unicode.IsSpace(r) {
			s.Characters++
		}
	}
	s.Words = len(strings.Fields(text))
	return s
}
