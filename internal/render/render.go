// Package render presents extraction results: a terminal panel, plain text,
// JSON, or a PDF file.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperifyio/wikitext/internal/copier"
	"github.com/hyperifyio/wikitext/internal/extract"
	"github.com/hyperifyio/wikitext/internal/stats"
)

// View is everything a renderer may show.
type View struct {
	URL       string
	Doc       extract.Document
	Stats     stats.Stats
	CopyLabel copier.Label
}

// NewView computes statistics for doc.
func NewView(pageURL string, doc extract.Document) View {
	return View{URL: pageURL, Doc: doc, Stats: stats.Compute(doc.Text), CopyLabel: copier.LabelIdle}
}

// Renderer writes a view to w.
type Renderer interface {
	Render(w io.Writer, v View) error
}

// Format names accepted by ForFormat.
const (
	FormatPanel = "panel"
	FormatPlain = "plain"
	FormatJSON  = "json"
)

// ForFormat returns the renderer for a format name. Width applies to the
// panel only.
func ForFormat(name string, width int) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatPanel:
		return Panel{Width: width}, nil
	case FormatPlain:
		return Plain{}, nil
	case FormatJSON:
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", name)
	}
}

// Plain writes the text only.
type Plain struct{}

func (Plain) Render(w io.Writer, v View) error {
	if v.Doc.Text == "" {
		return nil
	}
	_, err := io.WriteString(w, v.Doc.Text+"\n")
	return err
}

// JSON writes one object with the text and its statistics.
type JSON struct{}

type jsonView struct {
	URL   string      `json:"url"`
	Title string      `json:"title,omitempty"`
	Text  string      `json:"text"`
	Stats stats.Stats `json:"stats"`
}

func (JSON) Render(w io.Writer, v View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(jsonView{URL: v.URL, Title: v.Doc.Title, Text: v.Doc.Text, Stats: v.Stats})
}
