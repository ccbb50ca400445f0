package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/wikitext/internal/copier"
	"github.com/hyperifyio/wikitext/internal/extract"
)

func sampleView() View {
	return NewView("https://en.wikipedia.org/wiki/Go", extract.Document{
		Title: "Go",
		Text:  "Go is a language.\n\n• Alpha\n• Beta",
	})
}

func TestNewView_ComputesStats(t *testing.T) {
	v := sampleView()
	assert.Equal(t, 2, v.Stats.Paragraphs)
	assert.Equal(t, 8, v.Stats.Words)
	assert.Equal(t, copier.LabelIdle, v.CopyLabel)
}

func TestForFormat(t *testing.T) {
	for name, want := range map[string]Renderer{"": Panel{Width: 60}, "panel": Panel{Width: 60}, "PLAIN": Plain{}, "json": JSON{}} {
		r, err := ForFormat(name, 60)
		require.NoError(t, err)
		assert.Equal(t, want, r)
	}
	_, err := ForFormat("html", 60)
	assert.Error(t, err)
}

func TestPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Plain{}.Render(&buf, sampleView()))
	assert.Equal(t, "Go is a language.\n\n• Alpha\n• Beta\n", buf.String())

	buf.Reset()
	require.NoError(t, Plain{}.Render(&buf, NewView("u", extract.Document{})))
	assert.Empty(t, buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON{}.Render(&buf, sampleView()))
	var got jsonView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Go", got.Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Go", got.URL)
	assert.Equal(t, 2, got.Stats.Paragraphs)
	assert.Contains(t, buf.String(), "• Alpha")
}

func TestPanel(t *testing.T) {
	var buf bytes.Buffer
	v := sampleView()
	v.CopyLabel = copier.LabelCopied
	require.NoError(t, Panel{Width: 72}.Render(&buf, v))
	out := buf.String()
	for _, want := range []string{"Wikipedia Text", "PARAGRAPHS", "CHARACTERS", "WORDS", "COPIED", "Go is a language.", "• Beta"} {
		assert.Contains(t, out, want)
	}
}

func TestWritePDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "article.pdf")
	require.NoError(t, WritePDF(sampleView(), out, ""))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF"))
}
